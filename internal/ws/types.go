package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"    // client clicked a square
	MessageTypeChanges   MessageType = "changes"   // visual changes caused by a select
	MessageTypeGameState MessageType = "gameState" // full state after a move
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
