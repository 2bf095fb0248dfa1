package game

import (
	"fmt"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
)

// showdown ranks each seat's best 5-of-7 and settles the pot. Reached by
// completing the river round or by an all-in run-out.
func (g *GameSession) showdown() error {
	hand := g.hand
	if len(hand.Board) != 5 {
		return fmt.Errorf("%w: showdown with %d board cards", ErrInternal, len(hand.Board))
	}

	rankA, err := g.evaluateSeat(SeatA)
	if err != nil {
		return fmt.Errorf("evaluate seat a: %w", err)
	}
	rankB, err := g.evaluateSeat(SeatB)
	if err != nil {
		return fmt.Errorf("evaluate seat b: %w", err)
	}

	switch cmp := g.eval.Compare(rankA, rankB); {
	case cmp > 0:
		return g.settle(WinnerSeatA)
	case cmp < 0:
		return g.settle(WinnerSeatB)
	default:
		return g.settle(WinnerSplit)
	}
}

func (g *GameSession) evaluateSeat(seat Seat) (HandRank, error) {
	hand := g.hand
	var cards [7]deck.Card
	cards[0] = hand.hole[seat][0]
	cards[1] = hand.hole[seat][1]
	copy(cards[2:], hand.Board)
	return g.eval.Evaluate(cards)
}

// settle computes the payout from final contributions and the outcome,
// applies it additively to the stacks, and closes the hand.
//
// Heads-up the pot splits as: main pot 2*min(contribA, contribB), plus a
// side amount |contribA - contribB| that simply returns to whichever seat
// contributed more (only a short all-in makes contributions differ).
func (g *GameSession) settle(winner Winner) error {
	hand := g.hand
	b := hand.Betting

	ca, cb := b.Contribs[SeatA], b.Contribs[SeatB]
	minContrib := ca
	sideOwner := SeatB
	if cb < ca {
		minContrib = cb
		sideOwner = SeatA
	}
	main := 2 * minContrib
	side := ca - cb
	if side < 0 {
		side = -side
	}

	var payout [2]int
	switch winner {
	case WinnerSeatA:
		payout[SeatA] += main
	case WinnerSeatB:
		payout[SeatB] += main
	case WinnerSplit:
		// Split as evenly as integers allow; the odd chip goes to the
		// button so the tie-break is deterministic.
		half := main / 2
		payout[SeatA] += half
		payout[SeatB] += half
		payout[hand.Button] += main % 2
	default:
		return fmt.Errorf("%w: settle with no winner", ErrInternal)
	}
	payout[sideOwner] += side

	if payout[SeatA]+payout[SeatB] != b.Pot {
		return fmt.Errorf("%w: payout %d+%d does not match pot %d",
			ErrInternal, payout[SeatA], payout[SeatB], b.Pot)
	}

	g.stacks[SeatA] += payout[SeatA]
	g.stacks[SeatB] += payout[SeatB]

	hand.Ended = true
	hand.Winner = winner
	hand.Payout = payout
	hand.EndedAt = g.now()

	g.onHandEnded()
	return nil
}
