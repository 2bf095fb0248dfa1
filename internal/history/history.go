// Package history stores completed-hand records per game. The core emits a
// record when a hand ends; this store keeps them in order so clients can
// audit past hands and their fairness proofs.
package history

import (
	"sync"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// Store persists hand records. The in-memory implementation below is the
// default; a durable implementation can replace it behind the same methods.
type Store interface {
	Append(gameID string, record game.HandRecord)
	Hands(gameID string) []game.HandRecord
}

// MemoryStore keeps hand records in memory, ordered by completion.
type MemoryStore struct {
	mu    sync.RWMutex
	hands map[string][]game.HandRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hands: make(map[string][]game.HandRecord)}
}

// Append adds a record to the game's history.
func (s *MemoryStore) Append(gameID string, record game.HandRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands[gameID] = append(s.hands[gameID], record)
}

// Hands returns the game's records in completion order.
func (s *MemoryStore) Hands(gameID string) []game.HandRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]game.HandRecord, len(s.hands[gameID]))
	copy(records, s.hands[gameID])
	return records
}
