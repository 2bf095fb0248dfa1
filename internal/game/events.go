package game

import "time"

// EventType identifies a domain event emitted by a session.
type EventType string

const (
	EventHandStarted    EventType = "hand.started"
	EventFairnessCommit EventType = "fairness.commit"
	EventFairnessReveal EventType = "fairness.reveal"
	EventBettingAction  EventType = "betting.action"
	EventStreetDealt    EventType = "street.dealt"
	EventHandEnded      EventType = "hand.ended"
	EventGameUpdated    EventType = "game.updated"
)

// Event is a domain event for the transport layer to fan out. Payloads never
// contain an unrevealed seed or either seat's hole cards.
type Event struct {
	Type    EventType      `json:"type"`
	At      time.Time      `json:"at"`
	GameID  string         `json:"game_id"`
	HandID  string         `json:"hand_id,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Sink receives session events. Publish is called while the session lock is
// held, so implementations must not call back into the session synchronously;
// hand the event off to another goroutine instead.
type Sink interface {
	Publish(Event)
}

func (g *GameSession) emit(typ EventType, payload map[string]any) {
	if g.events == nil {
		return
	}
	ev := Event{
		Type:    typ,
		At:      g.now(),
		GameID:  g.id,
		Payload: payload,
	}
	if g.hand != nil {
		ev.HandID = g.hand.ID
	}
	g.events.Publish(ev)
}
