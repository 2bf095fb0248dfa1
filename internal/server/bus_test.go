package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

func TestBusFanOut(t *testing.T) {
	bus := NewEventBus()

	ch1, cancel1 := bus.Subscribe("g1")
	defer cancel1()
	ch2, cancel2 := bus.Subscribe("g1")
	defer cancel2()
	other, cancelOther := bus.Subscribe("g2")
	defer cancelOther()

	bus.Publish(game.Event{Type: game.EventGameUpdated, GameID: "g1"})

	for _, ch := range []<-chan game.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, game.EventGameUpdated, ev.Type)
		default:
			t.Fatal("Subscriber should have received the event")
		}
	}

	select {
	case <-other:
		t.Fatal("Other game's subscriber should not receive the event")
	default:
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewEventBus()

	ch, cancel := bus.Subscribe("g1")
	defer cancel()

	// Publish well past the buffer; the slow subscriber loses events but
	// the publisher must not stall.
	for i := 0; i < subscriberBuffer*2; i++ {
		bus.Publish(game.Event{Type: game.EventGameUpdated, GameID: "g1"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriberBuffer, received)
}

func TestBusCancel(t *testing.T) {
	bus := NewEventBus()

	ch, cancel := bus.Subscribe("g1")
	cancel()

	_, open := <-ch
	require.False(t, open, "Cancel should close the channel")

	// Publishing after cancel must not panic or deliver
	bus.Publish(game.Event{Type: game.EventGameUpdated, GameID: "g1"})

	// Double cancel is safe
	cancel()
}

func TestBusPublishWithNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(game.Event{Type: game.EventGameUpdated, GameID: "nobody"})
}
