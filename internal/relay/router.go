package relay

import (
	"encoding/json"
	"log"

	"github.com/peerdial/signaling/internal/models"
	"github.com/peerdial/signaling/internal/store"
)

// Router is the signaling state machine. It inspects each inbound
// message's type, mutates the registry and tracker as needed, and
// forwards session messages to the addressed peer with the sender
// identifier stamped on as provenance. It is an entirely best-effort
// relay: no error is ever sent back over the wire, and a dropped
// message manifests to clients only as silence.
type Router struct {
	peers    *Registry
	sessions *Tracker
	records  *store.CallLog
}

func NewRouter(peers *Registry, sessions *Tracker, records *store.CallLog) *Router {
	return &Router{
		peers:    peers,
		sessions: sessions,
		records:  records,
	}
}

// HandleMessage routes one raw inbound message from sender. Malformed
// messages are logged and dropped; the connection stays open.
func (r *Router) HandleMessage(sender Conn, raw []byte) {
	var msg models.SignalMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("Failed to parse message: %v", err)
		return
	}

	switch msg.Type {
	case models.SignalTypeRegister:
		// Sender identity rides inside the payload for register only.
		// No acknowledgment goes back; success is implicit.
		var reg models.RegisterPayload
		if err := json.Unmarshal(msg.Payload, &reg); err != nil || reg.ID == "" {
			log.Printf("Register message without a peer id, dropped")
			return
		}
		r.peers.Register(reg.ID, sender)
		log.Printf("Peer registered: %s", reg.ID)

	case models.SignalTypeOffer:
		if msg.Target == "" {
			log.Printf("Offer without a target, dropped")
			return
		}
		// The session starts now even if the target never receives the
		// offer; an unreachable target leaves it orphaned until the
		// sender disconnects or ends the call.
		r.sessions.Begin(msg.ID, msg.Target)
		r.forward(msg)

	case models.SignalTypeEndCall:
		if msg.Target == "" {
			log.Printf("End-call without a target, dropped")
			return
		}
		if sess, ok := r.sessions.End(msg.ID, msg.Target); ok {
			r.record(sess)
		}
		// Forward even without a tracked session so the remote end
		// learns of termination, e.g. rejecting a call before answering.
		r.forward(msg)

	case models.SignalTypeAnswer, models.SignalTypeICE:
		if msg.Target == "" {
			log.Printf("%s without a target, dropped", msg.Type)
			return
		}
		r.forward(msg)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

// forward relays type and payload to the target's connection with the
// sender identifier attached. If the target is not registered the
// message is dropped; the transport offers the sender no failure
// channel.
func (r *Router) forward(msg models.SignalMessage) {
	conn, ok := r.peers.Lookup(msg.Target)
	if !ok {
		log.Printf("Target peer %s not registered, %s dropped", msg.Target, msg.Type)
		return
	}

	out := models.SignalMessage{
		Type:    msg.Type,
		Payload: msg.Payload,
		From:    msg.ID,
	}
	data, err := json.Marshal(out)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}
	conn.Send(data)
}

// record persists a completed session. A store failure loses the
// record but never blocks routing.
func (r *Router) record(sess Session) {
	if err := r.records.Append(sess.Initiator, sess.Target, sess.Seconds); err != nil {
		log.Printf("Failed to record call %s -> %s: %v", sess.Initiator, sess.Target, err)
	}
}
