package deck

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/Hsooooo/ai-headsup-holdem/internal/randutil"
)

// Size is the number of cards in a standard deck.
const Size = 52

// Deck is an ordered sequence of 52 cards plus a deal cursor. The card
// sequence is never mutated after construction; dealing only advances the
// cursor, so the full order remains available for auditing.
type Deck struct {
	cards [Size]Card
	next  int
}

// New creates the canonical 52-card deck in its fixed base order:
// rank-major, suit-minor (2s 2h 2d 2c 3s ...). The base order is an input
// to the deterministic shuffle and must be identical on every call.
func New() *Deck {
	d := &Deck{}
	i := 0
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// Shuffled returns a new deck containing this deck's cards permuted by a
// Fisher-Yates shuffle whose random stream is derived from seed alone.
// The same seed produces a byte-identical permutation on any host.
func (d *Deck) Shuffled(seed string) *Deck {
	out := &Deck{cards: d.cards}
	rng := randutil.FromString(seed)
	for i := len(out.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out.cards[i], out.cards[j] = out.cards[j], out.cards[i]
	}
	return out
}

// Hash returns the SHA-256 hex digest of the ordered deck, computed over
// the comma-joined card codes. Publishing it lets either seat recompute
// the shuffle from the revealed seeds and detect tampering.
func (d *Deck) Hash() string {
	sum := sha256.Sum256([]byte(strings.Join(Codes(d.cards[:]), ",")))
	return hex.EncodeToString(sum[:])
}

// Deal removes n cards from the front of the deck. Returns nil if fewer
// than n cards remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Burn discards the next card. Returns false if the deck is exhausted.
func (d *Deck) Burn() bool {
	if d.next >= len(d.cards) {
		return false
	}
	d.next++
	return true
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Cards returns a copy of the full card sequence, dealt or not.
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards[:])
	return cards
}
