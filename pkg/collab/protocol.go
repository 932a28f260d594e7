// Package collab is a thin real-time layer on top of pkg/delta: a
// Session holds one document plus its recent change history, and a
// Hub fans deltas out to WebSocket-connected clients, rebasing each
// incoming change against whatever concurrent changes it missed.
//
// Grounded on the teacher's pkg/session (the per-document session
// type) and pkg/transport (the WebSocket plumbing and wire protocol),
// generalized from a single plain-text ot.Operation to a delta.Delta
// and from hand-rolled position transforms to pkg/delta.Transform.
package collab

import (
	"encoding/json"
	"time"
)

// MessageType names the kind of protocol message, mirroring the
// teacher's transport.MessageType string-enum style.
type MessageType string

const (
	// MessageTypeWelcome is sent once after a client connects,
	// carrying its assigned client ID and the document's current state.
	MessageTypeWelcome MessageType = "welcome"
	// MessageTypeChange carries a client's proposed change, or (from
	// the server) a change already rebased and accepted into history.
	MessageTypeChange MessageType = "change"
	// MessageTypeError reports a rejected change or protocol violation.
	MessageTypeError MessageType = "error"
)

// Message is the envelope every WebSocket frame is encoded as.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// WelcomeData is MessageTypeWelcome's payload.
type WelcomeData struct {
	ClientID string          `json:"client_id"`
	Version  int             `json:"version"`
	Document json.RawMessage `json:"document"`
}

// ChangeData is MessageTypeChange's payload, both directions: a client
// sends its change against the version it last saw; the server
// rebroadcasts the rebased change against the version it produced.
type ChangeData struct {
	ClientID     string          `json:"client_id"`
	BaseVersion  int             `json:"base_version"`
	Change       json.RawMessage `json:"change"`
	NewVersion   int             `json:"new_version,omitempty"`
}

// ErrorData is MessageTypeError's payload.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newMessage(t MessageType, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Timestamp: time.Now().Unix(), Data: raw}, nil
}
