// Package evaluator adapts the paulhankin/poker 7-card evaluator to the
// game's Evaluator interface.
package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// SevenCard evaluates 7-card hold'em hands. It is stateless and safe for
// concurrent use.
type SevenCard struct{}

// New returns the default evaluator.
func New() *SevenCard {
	return &SevenCard{}
}

// Evaluate returns the rank of the best 5-card hand from the 7 cards.
// Higher ranks are stronger.
func (e *SevenCard) Evaluate(cards [7]deck.Card) (game.HandRank, error) {
	var hand [7]poker.Card
	for i, c := range cards {
		pc, err := convert(c)
		if err != nil {
			return 0, err
		}
		hand[i] = pc
	}
	return game.HandRank(poker.Eval7(&hand)), nil
}

// Compare returns >0 if a beats b, <0 if b beats a, 0 on a tie.
func (e *SevenCard) Compare(a, b game.HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func convert(c deck.Card) (poker.Card, error) {
	var suit poker.Suit
	switch c.Suit {
	case deck.Spades:
		suit = poker.Spade
	case deck.Hearts:
		suit = poker.Heart
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Clubs:
		suit = poker.Club
	default:
		return 0, fmt.Errorf("evaluator: invalid suit in card %v", c)
	}

	// paulhankin/poker ranks run 1 (ace) to 13 (king).
	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}

	card, err := poker.MakeCard(suit, rank)
	if err != nil {
		return 0, fmt.Errorf("evaluator: card %v: %w", c, err)
	}
	return card, nil
}
