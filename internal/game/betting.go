package game

import (
	"fmt"
	"time"
)

// Street represents one of the four betting rounds.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// ActionType represents a betting action tag.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// ParseActionType decodes an action tag. Unknown tags map to ErrUnknownAction
// when acted on, so callers may pass raw client input straight through.
func ParseActionType(name string) (ActionType, error) {
	switch name {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return -1, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// Action is a seat's betting decision. Amount is the bet size for Bet and
// the new total street-bet ("raise to") for Raise; it is ignored otherwise.
type Action struct {
	Type   ActionType
	Amount int
}

// BettingState is the per-street wagering state of a dealt hand.
type BettingState struct {
	Street     Street
	ToAct      Seat
	CurrentBet int       // highest total wagered this street by either seat
	MinRaise   int       // minimum raise increment
	Bets       [2]int    // per-seat bet this street
	Contribs   [2]int    // per-seat total contribution this hand
	Pot        int       // sum of contributions
	AllIn      [2]bool
	LastAction time.Time
}

// Act applies a betting action for the given seat. All returned errors are
// recoverable; the session stays playable and the same seat is re-prompted.
func (g *GameSession) Act(seat Seat, action Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand := g.hand
	if hand == nil {
		return ErrNoHand
	}
	b := hand.Betting
	if b == nil {
		return ErrNotDealt
	}
	if b.ToAct != seat {
		return ErrNotYourTurn
	}
	if hand.Ended {
		return ErrHandEnded
	}

	// With betting closed by an all-in there is no decision left; any
	// attempt just runs the board out to showdown.
	if bettingClosed(b) {
		return g.runOut()
	}

	myBet := b.Bets[seat]
	toCall := b.CurrentBet - myBet
	if toCall < 0 {
		toCall = 0
	}

	switch action.Type {
	case Fold:
		hand.recordAction(seat, action, 0, g.now())
		g.emitAction(seat, action, 0)
		return g.settle(winnerFor(seat.Other()))

	case Check:
		if toCall != 0 {
			return ErrCannotCheck
		}
		hand.recordAction(seat, action, 0, g.now())
		g.advanceTurn(seat)
		g.emitAction(seat, action, 0)

	case Call:
		if toCall == 0 {
			return ErrNothingToCall
		}
		paid := g.takeFromStack(seat, toCall)
		hand.recordAction(seat, action, paid, g.now())
		g.advanceTurn(seat)
		g.emitAction(seat, action, paid)

	case Bet:
		if b.CurrentBet != 0 {
			return ErrUseRaise
		}
		if action.Amount <= 0 {
			return ErrBadBet
		}
		paid := g.takeFromStack(seat, action.Amount)
		b.CurrentBet = b.Bets[seat]
		if paid > b.MinRaise {
			b.MinRaise = paid
		}
		hand.recordAction(seat, action, paid, g.now())
		g.advanceTurn(seat)
		g.emitAction(seat, action, paid)

	case Raise:
		if b.CurrentBet == 0 {
			return ErrUseBet
		}
		if action.Amount <= 0 {
			return ErrBadRaise
		}
		raiseTo := action.Amount
		allInTo := myBet + g.stacks[seat] // largest total street-bet this seat can reach
		if raiseTo < b.CurrentBet+b.MinRaise && raiseTo < allInTo {
			// A short all-in raise is always permitted; anything else must
			// meet the minimum.
			return ErrRaiseTooSmall
		}
		if raiseTo > allInTo {
			raiseTo = allInTo
		}
		add := raiseTo - myBet
		if add <= 0 {
			return ErrBadRaise
		}
		g.takeFromStack(seat, add)
		b.MinRaise = raiseTo - b.CurrentBet
		b.CurrentBet = raiseTo
		hand.recordAction(seat, action, add, g.now())
		g.advanceTurn(seat)
		g.emitAction(seat, action, add)

	default:
		return ErrUnknownAction
	}

	// A street is complete when both street-bets are equal right after an
	// action. Blinds alone never reach here, so posting can not close the
	// preflop round by itself.
	if b.Bets[SeatA] == b.Bets[SeatB] {
		if err := g.advanceStreet(); err != nil {
			return err
		}
	}

	if !hand.Ended && bettingClosed(b) {
		if err := g.runOut(); err != nil {
			return err
		}
	}

	g.emit(EventGameUpdated, nil)
	return nil
}

// bettingClosed reports whether an all-in has ended all betting for the
// hand. A lone all-in leaves betting open while the other seat still faces
// chips to call; once the other seat has matched (or exceeded, when a blind
// was short) the all-in bet, no decision remains.
func bettingClosed(b *BettingState) bool {
	switch {
	case b.AllIn[SeatA] && b.AllIn[SeatB]:
		return true
	case b.AllIn[SeatA]:
		return b.Bets[SeatB] >= b.Bets[SeatA]
	case b.AllIn[SeatB]:
		return b.Bets[SeatA] >= b.Bets[SeatB]
	default:
		return false
	}
}

// takeFromStack moves up to amt from the seat's stack into its street bet,
// hand contribution and the pot, capping at the remaining stack. A stack
// reaching zero marks the seat all-in. Returns the amount actually moved.
func (g *GameSession) takeFromStack(seat Seat, amt int) int {
	b := g.hand.Betting
	paid := amt
	if paid > g.stacks[seat] {
		paid = g.stacks[seat]
	}
	g.stacks[seat] -= paid
	b.Bets[seat] += paid
	b.Contribs[seat] += paid
	b.Pot += paid
	if g.stacks[seat] == 0 {
		b.AllIn[seat] = true
	}
	return paid
}

func (g *GameSession) advanceTurn(seat Seat) {
	b := g.hand.Betting
	b.LastAction = g.now()
	b.ToAct = seat.Other()
}

// advanceStreet closes the current betting round, deals the next board
// cards, and hands the action to the out-of-position seat. Completing the
// river triggers showdown instead.
func (g *GameSession) advanceStreet() error {
	hand := g.hand
	b := hand.Betting

	if b.Street == River {
		return g.showdown()
	}

	b.Bets = [2]int{}
	b.CurrentBet = 0
	b.MinRaise = g.blinds.Big
	b.ToAct = hand.Button.Other() // out of position acts first postflop

	var n int
	switch b.Street {
	case Preflop:
		b.Street = Flop
		n = 3
	case Flop:
		b.Street = Turn
		n = 1
	case Turn:
		b.Street = River
		n = 1
	}

	if !hand.deck.Burn() {
		return fmt.Errorf("%w: deck exhausted at burn", ErrInternal)
	}
	cards := hand.deck.Deal(n)
	if cards == nil {
		return fmt.Errorf("%w: deck exhausted dealing %s", ErrInternal, b.Street)
	}
	hand.Board = append(hand.Board, cards...)

	g.emit(EventStreetDealt, map[string]any{
		"street": b.Street.String(),
		"board":  hand.boardCodes(),
	})
	return nil
}

// runOut fast-forwards through the remaining streets with no further
// betting input, then runs the showdown.
func (g *GameSession) runOut() error {
	hand := g.hand
	for !hand.Ended && hand.Betting.Street != River {
		if err := g.advanceStreet(); err != nil {
			return err
		}
	}
	if !hand.Ended {
		if err := g.showdown(); err != nil {
			return err
		}
	}
	g.emit(EventGameUpdated, nil)
	return nil
}

func (g *GameSession) emitAction(seat Seat, action Action, paid int) {
	g.emit(EventBettingAction, map[string]any{
		"seat":   seat.String(),
		"action": action.Type.String(),
		"amount": paid,
		"pot":    g.hand.Betting.Pot,
	})
}
