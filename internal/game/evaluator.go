package game

import "github.com/Hsooooo/ai-headsup-holdem/internal/deck"

// HandRank is an opaque comparable hand strength produced by the evaluator.
// Higher is stronger; equal ranks tie.
type HandRank int16

// Evaluator ranks 7-card hands. The core consumes it as an external
// collaborator; showdown comparison happens server-side only and hole cards
// never leave the session through it.
type Evaluator interface {
	// Evaluate returns the rank of the best 5-card hand from the 7 cards.
	Evaluate(cards [7]deck.Card) (HandRank, error)

	// Compare returns >0 if a beats b, <0 if b beats a, 0 on a tie.
	Compare(a, b HandRank) int
}
