// Package fairness implements the per-hand commit/reveal protocol that lets
// both seats verify the deck was fixed before either saw the other's entropy.
// Each seat first publishes sha256(seed), then reveals the seed itself; once
// both seeds are known the deck seed is derived from them in canonical seat
// order, so the result does not depend on who revealed first.
package fairness

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ShuffleAlgo names the published shuffle derivation so a verifier knows
// exactly what to recompute.
const ShuffleAlgo = "sha256(seedA:seedB:handId) + pcg64 + fisher-yates"

var (
	// ErrAlreadyRevealed indicates a seat tried to commit after revealing.
	ErrAlreadyRevealed = errors.New("fairness: seat already revealed")

	// ErrMissingCommit indicates a reveal arrived with no commit on record.
	ErrMissingCommit = errors.New("fairness: no commit for seat")

	// ErrCommitMismatch indicates the revealed seed does not hash to the commit.
	ErrCommitMismatch = errors.New("fairness: seed does not match commit")
)

// State tracks one hand's commit/reveal lifecycle. Seats are indexed 0 and 1
// in canonical order. Commits and seeds are immutable once set, except that a
// commit may be replaced before its seat has revealed.
type State struct {
	HandID   string
	DeckSeed string // present only after both seeds are known
	DeckHash string // recorded by the dealer at deal time

	commits   [2]string
	committed [2]bool
	seeds     [2]string
	revealed  [2]bool
}

// NewState creates the fairness state for a hand.
func NewState(handID string) *State {
	return &State{HandID: handID}
}

// Hash returns the SHA-256 hex digest of s, the digest used for both seed
// commits and deck hashes.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SetCommit records a seat's commit hash. A commit may be overwritten until
// the seat reveals; committing after a reveal is rejected so a seat cannot
// rewrite history once its seed is public.
func (s *State) SetCommit(seat int, commitHash string) error {
	if s.revealed[seat] {
		return ErrAlreadyRevealed
	}
	s.commits[seat] = commitHash
	s.committed[seat] = true
	return nil
}

// SetReveal records a seat's seed after checking it against the commit.
// A failed check leaves the state untouched.
func (s *State) SetReveal(seat int, seed string) error {
	if !s.committed[seat] {
		return ErrMissingCommit
	}
	if s.revealed[seat] {
		return ErrAlreadyRevealed
	}
	if Hash(seed) != s.commits[seat] {
		return ErrCommitMismatch
	}
	s.seeds[seat] = seed
	s.revealed[seat] = true
	return nil
}

// Committed reports whether the seat has a commit on record.
func (s *State) Committed(seat int) bool { return s.committed[seat] }

// Revealed reports whether the seat has revealed its seed.
func (s *State) Revealed(seat int) bool { return s.revealed[seat] }

// BothRevealed reports whether both seeds are known.
func (s *State) BothRevealed() bool { return s.revealed[0] && s.revealed[1] }

// Seed returns the revealed seed for a seat, empty if not yet revealed.
func (s *State) Seed(seat int) string { return s.seeds[seat] }

// Commit returns the commit hash for a seat, empty if none.
func (s *State) Commit(seat int) string { return s.commits[seat] }

// DeriveDeckSeed computes the deck seed from both revealed seeds and the
// hand ID, always in canonical seat order.
func (s *State) DeriveDeckSeed() (string, error) {
	if !s.BothRevealed() {
		return "", fmt.Errorf("fairness: cannot derive deck seed before both reveals")
	}
	return DeckSeed(s.seeds[0], s.seeds[1], s.HandID), nil
}

// DeckSeed derives the deterministic shuffle seed from two seeds and a hand
// ID. Exposed so an outside verifier can recompute it from published values.
func DeckSeed(seedA, seedB, handID string) string {
	return Hash(seedA + ":" + seedB + ":" + handID)
}
