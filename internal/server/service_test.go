package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hsooooo/ai-headsup-holdem/internal/evaluator"
	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
	"github.com/Hsooooo/ai-headsup-holdem/internal/history"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestService(t *testing.T, clock quartz.Clock, timeout time.Duration) *GameService {
	t.Helper()
	svc := NewGameService(
		testLogger(),
		game.DefaultConfig(),
		evaluator.New(),
		NewEventBus(),
		history.NewMemoryStore(),
		clock,
		timeout,
	)
	t.Cleanup(svc.Stop)
	return svc
}

// dealTestHand joins both seats and completes the commit/reveal protocol.
func dealTestHand(t *testing.T, sess *game.GameSession) {
	t.Helper()
	require.NoError(t, sess.Join(game.SeatA))
	require.NoError(t, sess.Join(game.SeatB))
	require.NoError(t, sess.Commit(game.SeatA, fairness.Hash("seed-a")))
	require.NoError(t, sess.Commit(game.SeatB, fairness.Hash("seed-b")))
	require.NoError(t, sess.Reveal(game.SeatA, "seed-a"))
	require.NoError(t, sess.Reveal(game.SeatB, "seed-b"))
}

func TestGetGameNotFound(t *testing.T) {
	svc := newTestService(t, quartz.NewReal(), 0)

	_, err := svc.GetGame("missing")
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = svc.History("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestCreateAndGetGame(t *testing.T) {
	svc := newTestService(t, quartz.NewReal(), 0)

	sess := svc.CreateGame()
	got, err := svc.GetGame(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	hands, err := svc.History(sess.ID())
	require.NoError(t, err)
	assert.Empty(t, hands)
}

func TestWatcherArchivesEndedHands(t *testing.T) {
	svc := newTestService(t, quartz.NewReal(), 0)

	sess := svc.CreateGame()
	dealTestHand(t, sess)
	require.NoError(t, sess.Act(game.SeatA, game.Action{Type: game.Fold}))

	require.Eventually(t, func() bool {
		hands, err := svc.History(sess.ID())
		return err == nil && len(hands) == 1
	}, 2*time.Second, 10*time.Millisecond, "ended hand should reach the history store")

	hands, err := svc.History(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, sess.ID()+"-hand-1", hands[0].HandID)
	assert.Equal(t, "b", hands[0].Winner)
	assert.NotEmpty(t, hands[0].Fairness.DeckSeed)
}

func TestActionTimeoutAutoFolds(t *testing.T) {
	mock := quartz.NewMock(t)
	svc := newTestService(t, mock, 30*time.Second)

	sess := svc.CreateGame()
	dealTestHand(t, sess)

	// Seat a is on the clock preflop. Once the watcher has armed the
	// timer, advancing past the timeout folds the hand for seat a.
	require.Eventually(t, func() bool {
		mock.Advance(30 * time.Second)
		v := sess.Projection(game.SeatA)
		return v.HandNo == 2
	}, 2*time.Second, 10*time.Millisecond, "quiet seat should be folded")

	record, ok := sess.LastHandRecord()
	require.True(t, ok)
	assert.Equal(t, "b", record.Winner)
	require.NotEmpty(t, record.Actions)
	assert.Equal(t, "fold", record.Actions[len(record.Actions)-1].Action)
	assert.Equal(t, "a", record.Actions[len(record.Actions)-1].Seat)
}

func TestZeroTimeoutDisablesAutoFold(t *testing.T) {
	mock := quartz.NewMock(t)
	svc := newTestService(t, mock, 0)

	sess := svc.CreateGame()
	dealTestHand(t, sess)

	mock.Advance(24 * time.Hour)
	time.Sleep(50 * time.Millisecond)

	v := sess.Projection(game.SeatA)
	assert.Equal(t, 1, v.HandNo)
	require.NotNil(t, v.Hand)
	assert.Equal(t, "a", v.Hand.ToAct)
}
