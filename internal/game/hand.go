package game

import (
	"time"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

// HandState is the per-hand aggregate. It is created empty by the session at
// hand start, filled in by the fairness protocol and the betting engine, and
// becomes immutable once Ended is set.
type HandState struct {
	ID       string
	No       int
	Button   Seat
	Board    []deck.Card
	Fairness *fairness.State
	Betting  *BettingState
	Ended    bool
	Winner   Winner
	Payout   [2]int
	Actions  []ActionRecord
	EndedAt  time.Time

	deck  *deck.Deck // nil until both seeds are revealed
	hole  [2][2]deck.Card
	dealt bool
}

// ActionRecord is one applied betting action, kept for hand history.
type ActionRecord struct {
	Seat   string    `json:"seat"`
	Action string    `json:"action"`
	Amount int       `json:"amount,omitempty"`
	At     time.Time `json:"at"`
}

func newHand(id string, no int, button Seat) *HandState {
	return &HandState{
		ID:       id,
		No:       no,
		Button:   button,
		Board:    []deck.Card{},
		Fairness: fairness.NewState(id),
	}
}

// Dealt reports whether hole cards have been dealt.
func (h *HandState) Dealt() bool { return h.dealt }

// Hole returns the hole cards for a seat. ok is false before dealing.
func (h *HandState) Hole(seat Seat) (cards [2]deck.Card, ok bool) {
	if !h.dealt {
		return cards, false
	}
	return h.hole[seat], true
}

func (h *HandState) recordAction(seat Seat, action Action, paid int, at time.Time) {
	amount := paid
	if action.Type == Raise {
		amount = action.Amount // raises are recorded as raise-to
	}
	h.Actions = append(h.Actions, ActionRecord{
		Seat:   seat.String(),
		Action: action.Type.String(),
		Amount: amount,
		At:     at,
	})
}

func (h *HandState) boardCodes() []string {
	return deck.Codes(h.Board)
}

// Commit records a seat's commit hash for the current hand.
func (g *GameSession) Commit(seat Seat, commitHash string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand := g.hand
	if hand == nil {
		return ErrNoHand
	}
	if hand.Ended {
		return ErrHandEnded
	}
	if err := hand.Fairness.SetCommit(int(seat), commitHash); err != nil {
		return err
	}

	g.emit(EventFairnessCommit, map[string]any{"seat": seat.String()})
	g.emit(EventGameUpdated, nil)
	return nil
}

// Reveal records a seat's seed. When both seeds are known the deck seed is
// derived, the deck is shuffled and hashed, hole cards are dealt and blinds
// are posted. Dealing happens exactly once per hand.
func (g *GameSession) Reveal(seat Seat, seed string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand := g.hand
	if hand == nil {
		return ErrNoHand
	}
	if hand.Ended {
		return ErrHandEnded
	}
	if err := hand.Fairness.SetReveal(int(seat), seed); err != nil {
		return err
	}

	g.emit(EventFairnessReveal, map[string]any{"seat": seat.String()})

	if hand.Fairness.BothRevealed() && !hand.dealt {
		if err := g.deal(); err != nil {
			return err
		}
	}

	g.emit(EventGameUpdated, nil)
	return nil
}

// deal shuffles from the derived deck seed, records the deck hash, deals
// hole cards button-first and opens the preflop betting round.
func (g *GameSession) deal() error {
	hand := g.hand

	deckSeed, err := hand.Fairness.DeriveDeckSeed()
	if err != nil {
		return err
	}
	shuffled := deck.New().Shuffled(deckSeed)
	hand.Fairness.DeckSeed = deckSeed
	hand.Fairness.DeckHash = shuffled.Hash()
	hand.deck = shuffled

	for _, seat := range []Seat{hand.Button, hand.Button.Other()} {
		cards := hand.deck.Deal(2)
		if cards == nil {
			return ErrInternal
		}
		hand.hole[seat] = [2]deck.Card{cards[0], cards[1]}
	}
	hand.dealt = true

	g.postBlinds()
	return nil
}

// postBlinds opens the preflop round: the button posts the small blind, the
// other seat the big blind, each capped at the posting seat's stack. Preflop
// first to act is the button.
func (g *GameSession) postBlinds() {
	hand := g.hand
	b := &BettingState{
		Street:     Preflop,
		ToAct:      hand.Button,
		CurrentBet: g.blinds.Big,
		MinRaise:   g.blinds.Big,
		LastAction: g.now(),
	}
	hand.Betting = b

	g.takeFromStack(hand.Button, g.blinds.Small)
	g.takeFromStack(hand.Button.Other(), g.blinds.Big)
}
