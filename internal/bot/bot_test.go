package bot

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/evaluator"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// fanout is a minimal in-process sink delivering events to both bots.
type fanout struct {
	mu   sync.Mutex
	subs []chan game.Event
}

func (f *fanout) Publish(ev game.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (f *fanout) subscribe() chan game.Event {
	ch := make(chan game.Event, 256)
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()
	return ch
}

func TestBotsPlayHandsUnattended(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	sink := &fanout{}

	cfg := game.Config{Blinds: game.Blinds{Small: 10, Big: 20}, StartingStack: 200}
	sess := game.NewSession("botmatch", cfg, evaluator.New(), game.WithEventSink(sink))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chA := sink.subscribe()
	chB := sink.subscribe()
	ended := sink.subscribe()

	var wg sync.WaitGroup
	for _, b := range []*Bot{
		New(sess, game.SeatA, logger),
		New(sess, game.SeatB, logger),
	} {
		wg.Add(1)
		go func(b *Bot, events <-chan game.Event) {
			defer wg.Done()
			b.Run(ctx, events)
		}(b, map[game.Seat]chan game.Event{game.SeatA: chA, game.SeatB: chB}[b.seat])
	}

	// Let the bots complete a few hands, or the whole match if it is quick.
	handsEnded := 0
	deadline := time.After(8 * time.Second)
	finished := false
loop:
	for handsEnded < 3 && !finished {
		select {
		case ev := <-ended:
			switch ev.Type {
			case game.EventHandEnded:
				handsEnded++
				// Chips never leak across a hand boundary
				stacks := ev.Payload["stacks"].(map[string]int)
				require.Equal(t, 400, stacks["a"]+stacks["b"],
					"hand %d broke chip conservation", handsEnded)
			case game.EventGameUpdated:
				if sess.Projection(game.SeatA).Status == "finished" {
					finished = true
				}
			}
		case <-deadline:
			break loop
		}
	}
	cancel()
	wg.Wait()

	assert.Positive(t, handsEnded, "bots should finish at least one hand unattended")

	v := sess.Projection(game.SeatA)
	if v.Hand == nil || v.Hand.Ended {
		assert.Equal(t, 400, v.Stacks["a"]+v.Stacks["b"])
	}
}
