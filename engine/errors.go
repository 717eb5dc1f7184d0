package engine

import (
	"errors"
	"fmt"
)

// Rejection taxonomy. Every error returned by a state transition wraps one of
// these, so callers can classify with errors.Is.
var (
	// ErrIllegalMove covers wrong turn, card not held, first-move and follow-suit violations.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidState covers actions the current stage does not accept.
	ErrInvalidState = errors.New("invalid state")
)

// Fixed rejection reasons. Re-submitting the same illegal move must yield the
// same reason, so these never interpolate mutable state.
var (
	errResolving    = fmt.Errorf("%w: round is being resolved", ErrInvalidState)
	errNotDealt     = fmt.Errorf("%w: game has not been dealt", ErrInvalidState)
	errGameOver     = fmt.Errorf("%w: game is over", ErrInvalidState)
	errNotResolving = fmt.Errorf("%w: no round awaiting resolution", ErrInvalidState)
	errBadSeat      = fmt.Errorf("%w: no such seat", ErrInvalidState)
	errSwapTarget   = fmt.Errorf("%w: swap target must be the next active seat", ErrInvalidState)
	errNoSwapTarget = fmt.Errorf("%w: no other active seat to swap with", ErrInvalidState)
	errTargetPlayed = fmt.Errorf("%w: swap target already played this round", ErrInvalidState)

	errNotYourTurn = fmt.Errorf("%w: not your turn", ErrIllegalMove)
	errCardNotHeld = fmt.Errorf("%w: card not in hand", ErrIllegalMove)
	errFirstMove   = fmt.Errorf("%w: the first card must be the King of Spades", ErrIllegalMove)
	errMustFollow  = fmt.Errorf("%w: must follow the lead suit", ErrIllegalMove)
	errInvalidCard = fmt.Errorf("%w: not a valid card", ErrIllegalMove)
	errEmptyHand   = fmt.Errorf("%w: hand is empty", ErrIllegalMove)
)
