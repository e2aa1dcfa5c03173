package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/league-ledger/internal/events"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSyncState MessageType = "SYNC_STATE"
	MessageTypePing      MessageType = "PING"

	// Server to Client
	MessageTypeStateSync MessageType = "STATE_SYNC"
	MessageTypePong      MessageType = "PONG"
	MessageTypeEvent     MessageType = "LEAGUE_EVENT"
	MessageTypeError     MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// EventMessage wraps a league event for delivery to feed subscribers.
func EventMessage(event events.Event) ([]byte, error) {
	msg, err := NewMessage(MessageTypeEvent, event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
