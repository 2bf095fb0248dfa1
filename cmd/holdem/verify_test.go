package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/deck"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

func TestVerifyMatchesEngineShuffle(t *testing.T) {
	seed := fairness.DeckSeed("seed-a", "seed-b", "g-hand-1")
	published := deck.New().Shuffled(seed).Hash()

	cmd := &VerifyCmd{
		SeedA:    "seed-a",
		SeedB:    "seed-b",
		HandID:   "g-hand-1",
		Expected: published,
	}
	require.NoError(t, cmd.Run())
}

func TestVerifyDetectsTampering(t *testing.T) {
	seed := fairness.DeckSeed("seed-a", "seed-b", "g-hand-1")
	published := deck.New().Shuffled(seed).Hash()

	for _, cmd := range []*VerifyCmd{
		{SeedA: "tampered", SeedB: "seed-b", HandID: "g-hand-1", Expected: published},
		{SeedA: "seed-a", SeedB: "tampered", HandID: "g-hand-1", Expected: published},
		{SeedA: "seed-a", SeedB: "seed-b", HandID: "g-hand-2", Expected: published},
	} {
		assert.Error(t, cmd.Run())
	}
}
