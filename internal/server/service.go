package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
	"github.com/Hsooooo/ai-headsup-holdem/internal/gameid"
	"github.com/Hsooooo/ai-headsup-holdem/internal/history"
)

// ErrGameNotFound indicates an unknown game ID.
var ErrGameNotFound = errors.New("server: game not found")

// GameService owns the session registry and the per-game supervision:
// history capture on hand end and the action-timeout auto-fold. Sessions
// serialize their own mutations; the service only adds lookup and policy.
type GameService struct {
	logger  *log.Logger
	cfg     game.Config
	eval    game.Evaluator
	bus     *EventBus
	history history.Store
	clock   quartz.Clock
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.RWMutex
	games map[string]*game.GameSession
}

// NewGameService creates a service. A zero timeout disables auto-fold.
func NewGameService(logger *log.Logger, cfg game.Config, eval game.Evaluator, bus *EventBus, store history.Store, clock quartz.Clock, timeout time.Duration) *GameService {
	ctx, cancel := context.WithCancel(context.Background())
	return &GameService{
		logger:  logger.WithPrefix("games"),
		cfg:     cfg,
		eval:    eval,
		bus:     bus,
		history: store,
		clock:   clock,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		games:   make(map[string]*game.GameSession),
	}
}

// Stop terminates the per-game watchers.
func (s *GameService) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Bus exposes the event bus for transports and in-process clients.
func (s *GameService) Bus() *EventBus { return s.bus }

// CreateGame creates a new session and starts its watcher.
func (s *GameService) CreateGame() *game.GameSession {
	id := gameid.New()
	sess := game.NewSession(id, s.cfg, s.eval, game.WithEventSink(s.bus))

	s.mu.Lock()
	s.games[id] = sess
	s.mu.Unlock()

	events, cancel := s.bus.Subscribe(id)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.watch(sess, events)
	}()

	s.logger.Info("game created", "game", id)
	return sess
}

// GetGame retrieves a session by ID.
func (s *GameService) GetGame(id string) (*game.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// History returns the completed hands of a game.
func (s *GameService) History(id string) ([]game.HandRecord, error) {
	if _, err := s.GetGame(id); err != nil {
		return nil, err
	}
	return s.history.Hands(id), nil
}

// watch supervises one session: it archives each ended hand and, when an
// action timeout is configured, folds for a seat that stays silent past it.
// The timeout is an external policy on top of Act; the game core itself has
// no notion of time.
func (s *GameService) watch(sess *game.GameSession, events <-chan game.Event) {
	var timer *quartz.Timer
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	defer stopTimer()

	for {
		select {
		case <-s.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			if ev.Type == game.EventHandEnded {
				if record, ok := sess.LastHandRecord(); ok {
					s.history.Append(sess.ID(), record)
				}
			}

			if s.timeout <= 0 {
				continue
			}

			stopTimer()
			if handID, seat, ok := pendingAction(sess); ok {
				timer = s.clock.AfterFunc(s.timeout, func() {
					s.autoFold(sess, handID, seat)
				})
			}
		}
	}
}

// pendingAction reports the seat whose action the current hand is waiting
// for, if any.
func pendingAction(sess *game.GameSession) (handID string, seat game.Seat, ok bool) {
	v := sess.Projection(game.SeatA)
	hand := v.Hand
	if hand == nil || hand.Ended || hand.ToAct == "" {
		return "", 0, false
	}
	seat, err := game.ParseSeat(hand.ToAct)
	if err != nil {
		return "", 0, false
	}
	return hand.HandID, seat, true
}

// autoFold folds for a seat that timed out, re-checking first that the same
// decision is still pending.
func (s *GameService) autoFold(sess *game.GameSession, handID string, seat game.Seat) {
	currentHand, currentSeat, ok := pendingAction(sess)
	if !ok || currentHand != handID || currentSeat != seat {
		return
	}

	s.logger.Warn("action timeout, folding", "game", sess.ID(), "hand", handID, "seat", seat.String())
	if err := sess.Act(seat, game.Action{Type: game.Fold}); err != nil {
		s.logger.Debug("timeout fold rejected", "error", err)
	}
}
