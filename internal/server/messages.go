package server

import (
	"encoding/json"
	"time"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

func (t MessageType) String() string { return string(t) }

const (
	// Client → Server
	MessageTypeCommit MessageType = "commit"
	MessageTypeReveal MessageType = "reveal"
	MessageTypeAction MessageType = "action"
	MessageTypeState  MessageType = "state"

	// Server → Client
	MessageTypeEvent    MessageType = "event"
	MessageTypeGameView MessageType = "game_view"
	MessageTypeError    MessageType = "error"
)

// Message is the base WebSocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type CommitData struct {
	HandID string `json:"handId"`
	Commit string `json:"commit"`
}

type RevealData struct {
	HandID string `json:"handId"`
	Seed   string `json:"seed"`
}

type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Server → Client payloads

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EventData struct {
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	GameID  string         `json:"gameId"`
	HandID  string         `json:"handId,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// EventDataFromGame converts an engine event for the wire.
func EventDataFromGame(ev game.Event) EventData {
	return EventData{
		Type:    string(ev.Type),
		At:      ev.At,
		GameID:  ev.GameID,
		HandID:  ev.HandID,
		Payload: ev.Payload,
	}
}
