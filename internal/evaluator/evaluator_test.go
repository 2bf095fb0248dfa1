package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

func hand(t *testing.T, codes ...string) [7]deck.Card {
	t.Helper()
	require.Len(t, codes, 7)
	var cards [7]deck.Card
	for i, code := range codes {
		c, err := deck.Parse(code)
		require.NoError(t, err)
		cards[i] = c
	}
	return cards
}

func evalHand(t *testing.T, e *SevenCard, codes ...string) game.HandRank {
	t.Helper()
	rank, err := e.Evaluate(hand(t, codes...))
	require.NoError(t, err)
	return rank
}

func TestHandOrdering(t *testing.T) {
	e := New()

	royalFlush := evalHand(t, e, "As", "Ks", "Qs", "Js", "Ts", "2h", "3d")
	quads := evalHand(t, e, "Ah", "Ad", "Ac", "As", "Kh", "2c", "3c")
	fullHouse := evalHand(t, e, "Kh", "Kd", "Kc", "2s", "2h", "7c", "9d")
	flush := evalHand(t, e, "Ah", "Jh", "9h", "6h", "3h", "Ks", "2d")
	straight := evalHand(t, e, "9s", "8h", "7d", "6c", "5s", "Ah", "2d")
	pair := evalHand(t, e, "As", "Ah", "7d", "5c", "3s", "9h", "2d")
	highCard := evalHand(t, e, "As", "Kh", "9d", "7c", "5s", "3h", "2d")

	ordered := []game.HandRank{royalFlush, quads, fullHouse, flush, straight, pair, highCard}
	for i := 0; i < len(ordered)-1; i++ {
		assert.Positive(t, e.Compare(ordered[i], ordered[i+1]),
			"hand %d should beat hand %d", i, i+1)
	}
}

func TestBoardPlaysTie(t *testing.T) {
	e := New()

	// Board is a royal flush; both seats play the board
	a := evalHand(t, e, "2h", "3d", "As", "Ks", "Qs", "Js", "Ts")
	b := evalHand(t, e, "7c", "8c", "As", "Ks", "Qs", "Js", "Ts")
	assert.Zero(t, e.Compare(a, b))
}

func TestKickerDecides(t *testing.T) {
	e := New()

	// Same pair of aces, ace-king kicker beats ace-queen kicker
	board := []string{"Ah", "9d", "7c", "5s", "2d"}
	withKing := evalHand(t, e, append([]string{"As", "Kh"}, board...)...)
	withQueen := evalHand(t, e, append([]string{"Ad", "Qh"}, board...)...)
	assert.Positive(t, e.Compare(withKing, withQueen))
}

func TestWheelStraightBeatsPair(t *testing.T) {
	e := New()

	wheel := evalHand(t, e, "Ah", "2d", "3c", "4s", "5h", "9d", "Jc")
	pair := evalHand(t, e, "Kh", "Kd", "3c", "4s", "8h", "9d", "Jc")
	assert.Positive(t, e.Compare(wheel, pair))
}
