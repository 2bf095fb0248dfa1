package fairness

import (
	"errors"
	"testing"
)

func TestCommitRevealHappyPath(t *testing.T) {
	s := NewState("hand-1")

	if err := s.SetCommit(0, Hash("seed-a")); err != nil {
		t.Fatalf("SetCommit(0): %v", err)
	}
	if err := s.SetCommit(1, Hash("seed-b")); err != nil {
		t.Fatalf("SetCommit(1): %v", err)
	}
	if !s.Committed(0) || !s.Committed(1) {
		t.Fatal("Both seats should be committed")
	}
	if s.BothRevealed() {
		t.Fatal("Nothing revealed yet")
	}

	if err := s.SetReveal(0, "seed-a"); err != nil {
		t.Fatalf("SetReveal(0): %v", err)
	}
	if err := s.SetReveal(1, "seed-b"); err != nil {
		t.Fatalf("SetReveal(1): %v", err)
	}
	if !s.BothRevealed() {
		t.Fatal("Both seats should be revealed")
	}

	got, err := s.DeriveDeckSeed()
	if err != nil {
		t.Fatalf("DeriveDeckSeed: %v", err)
	}
	if want := Hash("seed-a:seed-b:hand-1"); got != want {
		t.Errorf("DeriveDeckSeed = %s, want %s", got, want)
	}
}

func TestRevealWithoutCommit(t *testing.T) {
	s := NewState("hand-1")
	if err := s.SetReveal(0, "seed"); !errors.Is(err, ErrMissingCommit) {
		t.Errorf("Expected ErrMissingCommit, got %v", err)
	}
}

func TestRevealMismatchLeavesStateUntouched(t *testing.T) {
	s := NewState("hand-1")
	if err := s.SetCommit(0, Hash("the-real-seed")); err != nil {
		t.Fatal(err)
	}

	if err := s.SetReveal(0, "wrong-seed"); !errors.Is(err, ErrCommitMismatch) {
		t.Fatalf("Expected ErrCommitMismatch, got %v", err)
	}
	if s.Revealed(0) {
		t.Error("Failed reveal should not mark the seat revealed")
	}

	// The correct seed still goes through afterwards
	if err := s.SetReveal(0, "the-real-seed"); err != nil {
		t.Errorf("Correct reveal after a failed one: %v", err)
	}
}

func TestDoubleReveal(t *testing.T) {
	s := NewState("hand-1")
	if err := s.SetCommit(0, Hash("seed")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetReveal(0, "seed"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetReveal(0, "seed"); !errors.Is(err, ErrAlreadyRevealed) {
		t.Errorf("Expected ErrAlreadyRevealed, got %v", err)
	}
}

func TestCommitOverwriteBeforeReveal(t *testing.T) {
	s := NewState("hand-1")
	if err := s.SetCommit(0, Hash("first")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCommit(0, Hash("second")); err != nil {
		t.Fatalf("Commit overwrite before reveal should be allowed: %v", err)
	}

	if err := s.SetReveal(0, "first"); !errors.Is(err, ErrCommitMismatch) {
		t.Errorf("Old seed should no longer match, got %v", err)
	}
	if err := s.SetReveal(0, "second"); err != nil {
		t.Errorf("New seed should match: %v", err)
	}
}

func TestCommitAfterRevealRejected(t *testing.T) {
	s := NewState("hand-1")
	if err := s.SetCommit(0, Hash("seed")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetReveal(0, "seed"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCommit(0, Hash("rewrite")); !errors.Is(err, ErrAlreadyRevealed) {
		t.Errorf("Expected ErrAlreadyRevealed, got %v", err)
	}
}

func TestDeriveBeforeBothReveals(t *testing.T) {
	s := NewState("hand-1")
	if _, err := s.DeriveDeckSeed(); err == nil {
		t.Error("DeriveDeckSeed should fail before both reveals")
	}

	if err := s.SetCommit(0, Hash("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetReveal(0, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.DeriveDeckSeed(); err == nil {
		t.Error("DeriveDeckSeed should fail with one reveal")
	}
}

func TestDeckSeedCanonicalOrder(t *testing.T) {
	// The derivation is a pure function of the canonical seat order, never
	// of who revealed first.
	first := NewState("hand-9")
	if err := first.SetCommit(0, Hash("a")); err != nil {
		t.Fatal(err)
	}
	if err := first.SetCommit(1, Hash("b")); err != nil {
		t.Fatal(err)
	}
	if err := first.SetReveal(0, "a"); err != nil {
		t.Fatal(err)
	}
	if err := first.SetReveal(1, "b"); err != nil {
		t.Fatal(err)
	}

	second := NewState("hand-9")
	if err := second.SetCommit(0, Hash("a")); err != nil {
		t.Fatal(err)
	}
	if err := second.SetCommit(1, Hash("b")); err != nil {
		t.Fatal(err)
	}
	if err := second.SetReveal(1, "b"); err != nil {
		t.Fatal(err)
	}
	if err := second.SetReveal(0, "a"); err != nil {
		t.Fatal(err)
	}

	s1, err := first.DeriveDeckSeed()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := second.DeriveDeckSeed()
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Error("Deck seed should not depend on reveal order")
	}

	if s1 != DeckSeed("a", "b", "hand-9") {
		t.Error("DeriveDeckSeed should match the standalone derivation")
	}
	if DeckSeed("a", "b", "hand-9") == DeckSeed("b", "a", "hand-9") {
		t.Error("Swapping seat seeds should change the deck seed")
	}
	if DeckSeed("a", "b", "hand-9") == DeckSeed("a", "b", "hand-10") {
		t.Error("Hand ID should bind the deck seed")
	}
}
