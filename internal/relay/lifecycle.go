package relay

import "log"

// HandleDisconnect reacts to a transport-reported close. It frees the
// connection's identifier and force-ends every session the departing
// peer was part of, recording each. The other party in such a session
// gets no notification from the relay; it discovers the disconnect
// from its own broken media path.
func (r *Router) HandleDisconnect(conn Conn) {
	id, ok := r.peers.RemoveByConn(conn)
	if !ok {
		// The connection closed before ever registering.
		return
	}
	log.Printf("Peer disconnected: %s", id)

	for _, sess := range r.sessions.EndAllFor(id) {
		r.record(sess)
	}
}
