package game

import (
	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

// View is a seat-scoped snapshot of a session. It contains the viewing
// seat's own hole cards only; the opponent's cards are never exposed, not
// even after showdown. Revealed seeds and the deck seed appear only once
// the hand has ended, when they become the published fairness proof.
type View struct {
	GameID string          `json:"game_id"`
	You    string          `json:"you"`
	Status string          `json:"status"`
	Blinds map[string]int  `json:"blinds"`
	Stacks map[string]int  `json:"stacks"`
	Joined map[string]bool `json:"joined"`
	HandNo int             `json:"hand_no"`
	Hand   *HandView       `json:"hand,omitempty"`
}

// HandView is the per-hand portion of a View.
type HandView struct {
	HandID     string         `json:"hand_id"`
	Button     string         `json:"button"`
	Phase      string         `json:"phase"`
	Hole       []string       `json:"hole,omitempty"`
	Board      []string       `json:"board"`
	Pot        int            `json:"pot"`
	ToAct      string         `json:"to_act,omitempty"`
	CurrentBet int            `json:"current_bet"`
	MinRaise   int            `json:"min_raise"`
	Bets       map[string]int `json:"bets"`
	AllIn      map[string]bool `json:"all_in"`
	Ended      bool           `json:"ended"`
	Winner     string         `json:"winner,omitempty"`
	Payout     map[string]int `json:"payout,omitempty"`
	Fairness   FairnessView   `json:"fairness"`
}

// FairnessView is the commit/reveal status visible to both seats.
type FairnessView struct {
	Commits     map[string]bool   `json:"commits"`
	Reveals     map[string]bool   `json:"reveals"`
	ShuffleAlgo string            `json:"shuffle_algo"`
	DeckHash    string            `json:"deck_hash,omitempty"`
	DeckSeed    string            `json:"deck_seed,omitempty"` // post-hand only
	Seeds       map[string]string `json:"seeds,omitempty"`     // post-hand only
}

// Projection returns the state of the session as seen by one seat. It may
// be called concurrently with writers; the snapshot is taken under the
// session lock.
func (g *GameSession) Projection(seat Seat) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		GameID: g.id,
		You:    seat.String(),
		Status: g.status.String(),
		Blinds: map[string]int{"small": g.blinds.Small, "big": g.blinds.Big},
		Stacks: seatInts(g.stacks),
		Joined: map[string]bool{
			SeatA.String(): g.joined[SeatA],
			SeatB.String(): g.joined[SeatB],
		},
		HandNo: g.handNo,
	}

	hand := g.hand
	if hand == nil {
		return v
	}

	hv := &HandView{
		HandID: hand.ID,
		Button: hand.Button.String(),
		Phase:  handPhase(hand),
		Board:  hand.boardCodes(),
		Ended:  hand.Ended,
		Winner: hand.Winner.String(),
		Fairness: FairnessView{
			Commits: map[string]bool{
				SeatA.String(): hand.Fairness.Committed(int(SeatA)),
				SeatB.String(): hand.Fairness.Committed(int(SeatB)),
			},
			Reveals: map[string]bool{
				SeatA.String(): hand.Fairness.Revealed(int(SeatA)),
				SeatB.String(): hand.Fairness.Revealed(int(SeatB)),
			},
			ShuffleAlgo: fairness.ShuffleAlgo,
			DeckHash:    hand.Fairness.DeckHash,
		},
	}

	if hole, ok := hand.Hole(seat); ok {
		hv.Hole = deck.Codes(hole[:])
	}

	if b := hand.Betting; b != nil {
		hv.Pot = b.Pot
		hv.CurrentBet = b.CurrentBet
		hv.MinRaise = b.MinRaise
		hv.Bets = seatInts(b.Bets)
		hv.AllIn = map[string]bool{
			SeatA.String(): b.AllIn[SeatA],
			SeatB.String(): b.AllIn[SeatB],
		}
		if !hand.Ended {
			hv.ToAct = b.ToAct.String()
		}
	}

	if hand.Ended {
		hv.Payout = seatInts(hand.Payout)
		hv.Fairness.DeckSeed = hand.Fairness.DeckSeed
		hv.Fairness.Seeds = map[string]string{
			SeatA.String(): hand.Fairness.Seed(int(SeatA)),
			SeatB.String(): hand.Fairness.Seed(int(SeatB)),
		}
	}

	v.Hand = hv
	return v
}

func handPhase(hand *HandState) string {
	switch {
	case hand.Ended:
		return "finished"
	case !hand.dealt:
		return "awaiting_commits"
	default:
		return hand.Betting.Street.String()
	}
}

func seatInts(vals [2]int) map[string]int {
	return map[string]int{
		SeatA.String(): vals[SeatA],
		SeatB.String(): vals[SeatB],
	}
}
