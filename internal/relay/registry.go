package relay

import "sync"

// Conn is the narrow capability the relay holds on a connected peer: a
// best-effort send. The transport owns the connection; the relay never
// closes it. Delivery failures are swallowed by the implementation.
type Conn interface {
	Send(data []byte)
}

// Registry maps registered identifiers to their live connections. At
// most one connection holds an identifier at any instant.
type Registry struct {
	mu    sync.RWMutex
	peers map[string]Conn
}

func NewRegistry() *Registry {
	return &Registry{peers: make(map[string]Conn)}
}

// Register unconditionally binds id to conn. A later registration of
// the same id displaces the earlier entry without closing or notifying
// the earlier connection, which becomes unreachable by that id.
func (r *Registry) Register(id string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[id] = conn
}

// Lookup returns the connection currently holding id.
func (r *Registry) Lookup(id string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.peers[id]
	return conn, ok
}

// RemoveByConn removes the entry bound to conn and returns its
// identifier. The linear scan is fine: this runs once per disconnect,
// not per message.
func (r *Registry) RemoveByConn(conn Conn) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.peers {
		if c == conn {
			delete(r.peers, id)
			return id, true
		}
	}
	return "", false
}

// Count returns the number of registered peers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}
