package game

import (
	"errors"

	"github.com/Hsooooo/ai-headsup-holdem/internal/fairness"
)

// All betting and fairness errors are recoverable: the session stays valid
// and the caller can retry with a legal request. Only ErrInternal marks an
// invariant violation that correct use of the public operations should make
// impossible.
var (
	ErrNoHand        = errors.New("game: no hand in progress")
	ErrNotDealt      = errors.New("game: hand not dealt yet")
	ErrHandEnded     = errors.New("game: hand already ended")
	ErrNotYourTurn   = errors.New("game: not your turn")
	ErrCannotCheck   = errors.New("game: cannot check, there is a bet to call")
	ErrNothingToCall = errors.New("game: nothing to call")
	ErrUseRaise      = errors.New("game: there is already a bet, use raise")
	ErrUseBet        = errors.New("game: no bet to raise over, use bet")
	ErrBadBet        = errors.New("game: bet amount must be positive")
	ErrBadRaise      = errors.New("game: raise amount must be positive")
	ErrRaiseTooSmall = errors.New("game: raise below minimum")
	ErrUnknownAction = errors.New("game: unknown action")
	ErrSeatTaken     = errors.New("game: seat already joined")
	ErrGameFinished  = errors.New("game: game is finished")

	// ErrInternal marks an internal consistency fault such as broken chip
	// conservation or an exhausted deck.
	ErrInternal = errors.New("game: internal consistency fault")

	// Fairness protocol outcomes, re-exported so callers see one vocabulary.
	ErrAlreadyRevealed = fairness.ErrAlreadyRevealed
	ErrMissingCommit   = fairness.ErrMissingCommit
	ErrCommitMismatch  = fairness.ErrCommitMismatch
)
