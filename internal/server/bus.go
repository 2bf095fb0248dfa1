package server

import (
	"sync"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

const subscriberBuffer = 64

// EventBus fans session events out to subscribers. Publish is called from
// inside the session lock, so delivery is non-blocking: a subscriber that
// falls more than a buffer behind loses events and must resynchronise from
// a state snapshot.
type EventBus struct {
	mu   sync.Mutex
	subs map[string]map[chan game.Event]struct{}
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[string]map[chan game.Event]struct{})}
}

// Publish implements game.Sink.
func (b *EventBus) Publish(ev game.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[ev.GameID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a listener for one game's events. The returned cancel
// function unregisters it and closes the channel.
func (b *EventBus) Subscribe(gameID string) (<-chan game.Event, func()) {
	ch := make(chan game.Event, subscriberBuffer)

	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan game.Event]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[gameID][ch]; ok {
			delete(b.subs[gameID], ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}
