// Package game is a pure state-transition library for heads-up no-limit
// Texas Hold'em with commit/reveal fair dealing. A GameSession is an
// explicit value passed into every operation; persistence and lookup by ID
// belong to the caller. All mutating operations serialize on the session's
// mutex, so independent sessions proceed fully in parallel.
package game

import (
	"fmt"
	"sync"
	"time"
)

// Status is the table-level lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusInProgress
	StatusFinished
)

func (s Status) String() string {
	return [...]string{"waiting", "in_progress", "finished"}[s]
}

// Blinds is the fixed small/big blind pair for a session.
type Blinds struct {
	Small int
	Big   int
}

// Config holds the table parameters for a new session.
type Config struct {
	Blinds        Blinds
	StartingStack int
}

// DefaultConfig returns the stakes used when none are configured.
func DefaultConfig() Config {
	return Config{
		Blinds:        Blinds{Small: 10, Big: 20},
		StartingStack: 2000,
	}
}

// Option configures a session at construction.
type Option func(*GameSession)

// WithEventSink attaches a domain-event sink.
func WithEventSink(sink Sink) Option {
	return func(g *GameSession) { g.events = sink }
}

// WithClock overrides the session clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(g *GameSession) { g.now = now }
}

// GameSession owns one heads-up match: two stacks, the blinds, the current
// hand and the match lifecycle. Stacks persist across hands and are mutated
// only by blind posting, bets and settlement payouts.
type GameSession struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	status    Status
	blinds    Blinds
	stacks    [2]int
	joined    [2]bool
	handNo    int
	hand      *HandState
	lastEnded *HandRecord

	eval   Evaluator
	events Sink
	now    func() time.Time
}

// NewSession creates a waiting session. The evaluator is required; it is
// only consulted at showdown.
func NewSession(id string, cfg Config, eval Evaluator, opts ...Option) *GameSession {
	g := &GameSession{
		id:     id,
		status: StatusWaiting,
		blinds: cfg.Blinds,
		stacks: [2]int{cfg.StartingStack, cfg.StartingStack},
		eval:   eval,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.createdAt = g.now()
	return g
}

// ID returns the session identifier.
func (g *GameSession) ID() string { return g.id }

// Join seats a player. The first hand starts as soon as both seats are
// joined. Joining an already-joined seat is an error so a caller cannot
// silently hijack an occupied seat.
func (g *GameSession) Join(seat Seat) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == StatusFinished {
		return ErrGameFinished
	}
	if g.joined[seat] {
		return ErrSeatTaken
	}
	g.joined[seat] = true

	if g.joined[SeatA] && g.joined[SeatB] && g.status == StatusWaiting {
		g.startHand()
	}
	g.emit(EventGameUpdated, nil)
	return nil
}

// startHand begins the next hand: the counter advances, the button
// alternates by hand parity, and a fresh hand waits for commits. Stacks are
// untouched until the betting engine posts blinds after dealing.
// Callers hold g.mu.
func (g *GameSession) startHand() {
	g.handNo++
	button := SeatB
	if g.handNo%2 == 1 {
		button = SeatA
	}
	handID := fmt.Sprintf("%s-hand-%d", g.id, g.handNo)
	g.hand = newHand(handID, g.handNo, button)
	g.status = StatusInProgress

	g.emit(EventHandStarted, map[string]any{
		"hand_no": g.handNo,
		"button":  button.String(),
	})
}

// onHandEnded archives the finished hand and either starts the next one or
// finishes the match when a stack has hit zero. Callers hold g.mu.
func (g *GameSession) onHandEnded() {
	record := g.buildRecord()
	g.lastEnded = &record

	g.emit(EventHandEnded, map[string]any{
		"winner": g.hand.Winner.String(),
		"board":  g.hand.boardCodes(),
		"payout": map[string]int{
			SeatA.String(): g.hand.Payout[SeatA],
			SeatB.String(): g.hand.Payout[SeatB],
		},
		"stacks": map[string]int{
			SeatA.String(): g.stacks[SeatA],
			SeatB.String(): g.stacks[SeatB],
		},
	})

	if g.stacks[SeatA] > 0 && g.stacks[SeatB] > 0 {
		g.startHand()
	} else {
		g.status = StatusFinished
	}
	g.emit(EventGameUpdated, nil)
}

// LastHandRecord returns the record of the most recently ended hand.
func (g *GameSession) LastHandRecord() (HandRecord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastEnded == nil {
		return HandRecord{}, false
	}
	return *g.lastEnded, true
}
