// Package bot implements an auto-player. A bot is an ordinary client of the
// session's public operations: it joins, commits and reveals its own
// entropy, and check/calls every street. Nothing in the game core knows it
// exists.
package bot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// Bot drives one seat of a session.
type Bot struct {
	session *game.GameSession
	seat    game.Seat
	logger  *log.Logger

	seed     string // entropy for the current hand
	seedHand string // hand the seed belongs to
}

// New creates a bot for the given seat.
func New(session *game.GameSession, seat game.Seat, logger *log.Logger) *Bot {
	return &Bot{
		session: session,
		seat:    seat,
		logger:  logger.WithPrefix("bot").With("seat", seat.String()),
	}
}

// Run joins the seat and reacts to session events until the context is
// cancelled, the event stream closes, or the match finishes.
func (b *Bot) Run(ctx context.Context, events <-chan game.Event) {
	if err := b.session.Join(b.seat); err != nil && !errors.Is(err, game.ErrSeatTaken) {
		b.logger.Error("join failed", "error", err)
		return
	}
	b.step()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if b.step() {
				return
			}
		}
	}
}

// step inspects the bot's view of the session and performs at most the next
// obvious move. Returns true when the match is finished.
func (b *Bot) step() (done bool) {
	v := b.session.Projection(b.seat)
	if v.Status == game.StatusFinished.String() {
		b.logger.Info("match finished", "stacks", v.Stacks)
		return true
	}
	hand := v.Hand
	if hand == nil || hand.Ended {
		return false
	}

	me := b.seat.String()

	if hand.Phase == "awaiting_commits" {
		if !hand.Fairness.Commits[me] {
			b.commit(hand.HandID)
		} else if hand.Fairness.Commits[b.seat.Other().String()] && !hand.Fairness.Reveals[me] {
			b.reveal()
		}
		return false
	}

	if hand.ToAct == me {
		b.act(hand)
	}
	return false
}

func (b *Bot) commit(handID string) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		b.logger.Error("entropy read failed", "error", err)
		return
	}
	b.seed = hex.EncodeToString(buf[:])
	b.seedHand = handID

	if err := b.session.Commit(b.seat, fairness.Hash(b.seed)); err != nil {
		b.logger.Debug("commit rejected", "error", err)
	}
}

func (b *Bot) reveal() {
	if err := b.session.Reveal(b.seat, b.seed); err != nil {
		b.logger.Debug("reveal rejected", "error", err)
	}
}

// act plays a plain check/call line: check when nothing is owed, call
// otherwise. All-in states resolve themselves through the engine's run-out.
func (b *Bot) act(hand *game.HandView) {
	action := game.Action{Type: game.Check}
	if hand.CurrentBet > hand.Bets[b.seat.String()] {
		action.Type = game.Call
	}
	if err := b.session.Act(b.seat, action); err != nil {
		b.logger.Debug("action rejected", "action", action.Type.String(), "error", err)
	}
}
