package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

// stubEval returns preset ranks in evaluation order (seat a first, then
// seat b), so tests control showdown outcomes without caring which cards
// the shuffle dealt.
type stubEval struct {
	mu    sync.Mutex
	ranks []HandRank
	i     int
}

func (e *stubEval) Evaluate(cards [7]deck.Card) (HandRank, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.ranks[e.i%len(e.ranks)]
	e.i++
	return r, nil
}

func (e *stubEval) Compare(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// evalWins builds a stub where the given seat wins every showdown.
func evalWins(seat Seat) *stubEval {
	if seat == SeatA {
		return &stubEval{ranks: []HandRank{2, 1}}
	}
	return &stubEval{ranks: []HandRank{1, 2}}
}

func evalSplits() *stubEval {
	return &stubEval{ranks: []HandRank{1, 1}}
}

// recorder collects published events for assertions.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(typ EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// newTestSession creates a session with both seats joined, so the first
// hand is started and waiting for commits.
func newTestSession(t *testing.T, cfg Config, eval Evaluator, opts ...Option) *GameSession {
	t.Helper()
	g := NewSession("testgame", cfg, eval, opts...)
	require.NoError(t, g.Join(SeatA))
	require.NoError(t, g.Join(SeatB))
	return g
}

// dealHand runs the commit/reveal protocol for the current hand with the
// given seeds, which deals hole cards and posts the blinds.
func dealHand(t *testing.T, g *GameSession, seedA, seedB string) {
	t.Helper()
	require.NoError(t, g.Commit(SeatA, fairness.Hash(seedA)))
	require.NoError(t, g.Commit(SeatB, fairness.Hash(seedB)))
	require.NoError(t, g.Reveal(SeatA, seedA))
	require.NoError(t, g.Reveal(SeatB, seedB))
}

func act(g *GameSession, seat Seat, typ ActionType, amount int) error {
	return g.Act(seat, Action{Type: typ, Amount: amount})
}

// checkDown checks both seats through flop, turn and river to showdown.
// The hand must be at the start of the flop.
func checkDown(t *testing.T, g *GameSession) {
	t.Helper()
	button, _ := ParseSeat(g.Projection(SeatA).Hand.Button)
	oop := button.Other()
	for i := 0; i < 3; i++ {
		require.NoError(t, act(g, oop, Check, 0))
		require.NoError(t, act(g, button, Check, 0))
	}
}

func recomputeDeckHash(seed string) string {
	return deck.New().Shuffled(seed).Hash()
}

func stacks(g *GameSession) (int, int) {
	v := g.Projection(SeatA)
	return v.Stacks[SeatA.String()], v.Stacks[SeatB.String()]
}
