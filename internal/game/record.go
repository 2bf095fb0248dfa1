package game

import (
	"time"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

// HandRecord is the durable account of a finished hand: what history
// storage persists and what auditors verify the fairness proof against.
// Both seats' hole cards appear here because the hand is over and the
// proof requires replaying the full deal.
type HandRecord struct {
	HandID      string              `json:"hand_id"`
	HandNo      int                 `json:"hand_no"`
	GameID      string              `json:"game_id"`
	Button      string              `json:"button"`
	Board       []string            `json:"board"`
	HoleCards   map[string][]string `json:"hole_cards"`
	Actions     []ActionRecord      `json:"actions"`
	Winner      string              `json:"winner"`
	Payout      map[string]int      `json:"payout"`
	Fairness    FairnessRecord      `json:"fairness"`
	FinalStacks map[string]int      `json:"final_stacks"`
	EndedAt     time.Time           `json:"ended_at"`
}

// FairnessRecord is the published proof for one hand. With both seeds and
// the hand ID anyone can recompute the deck seed, the shuffle and the deck
// hash and confirm they match what was published at deal time.
type FairnessRecord struct {
	Commits     map[string]string `json:"commits"`
	Seeds       map[string]string `json:"seeds"`
	DeckSeed    string            `json:"deck_seed"`
	DeckHash    string            `json:"deck_hash"`
	ShuffleAlgo string            `json:"shuffle_algo"`
}

// buildRecord snapshots the current (just-ended) hand. Callers hold g.mu.
func (g *GameSession) buildRecord() HandRecord {
	hand := g.hand
	record := HandRecord{
		HandID:    hand.ID,
		HandNo:    hand.No,
		GameID:    g.id,
		Button:    hand.Button.String(),
		Board:     hand.boardCodes(),
		HoleCards: map[string][]string{},
		Actions:   append([]ActionRecord(nil), hand.Actions...),
		Winner:    hand.Winner.String(),
		Payout:    seatInts(hand.Payout),
		Fairness: FairnessRecord{
			Commits: map[string]string{
				SeatA.String(): hand.Fairness.Commit(int(SeatA)),
				SeatB.String(): hand.Fairness.Commit(int(SeatB)),
			},
			Seeds: map[string]string{
				SeatA.String(): hand.Fairness.Seed(int(SeatA)),
				SeatB.String(): hand.Fairness.Seed(int(SeatB)),
			},
			DeckSeed:    hand.Fairness.DeckSeed,
			DeckHash:    hand.Fairness.DeckHash,
			ShuffleAlgo: fairness.ShuffleAlgo,
		},
		FinalStacks: seatInts(g.stacks),
		EndedAt:     hand.EndedAt,
	}

	for _, seat := range []Seat{SeatA, SeatB} {
		if hole, ok := hand.Hole(seat); ok {
			record.HoleCards[seat.String()] = deck.Codes(hole[:])
		}
	}
	return record
}
