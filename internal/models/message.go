package models

import "encoding/json"

// SignalType represents the type of a signaling message
type SignalType string

const (
	SignalTypeRegister SignalType = "register"
	SignalTypeOffer    SignalType = "offer"
	SignalTypeAnswer   SignalType = "answer"
	SignalTypeICE      SignalType = "ice"
	SignalTypeEndCall  SignalType = "end-call"
)

// SignalMessage is the wire format for every inbound and outbound
// signaling message. Payload passes through the relay verbatim, with
// one exception: register messages carry the sender identifier inside
// the payload (see RegisterPayload). All other types carry it as the
// top-level "id" field. Forwarded messages get "from" stamped on and
// keep only type and payload from the original.
type SignalMessage struct {
	Type    SignalType      `json:"type"`
	Target  string          `json:"target,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	ID      string          `json:"id,omitempty"`
	From    string          `json:"from,omitempty"`
}

// RegisterPayload is the one payload shape the relay looks inside.
type RegisterPayload struct {
	ID string `json:"id"`
}
