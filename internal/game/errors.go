package game

import (
	"errors"
	"fmt"
)

// Rule violations. The engine wraps these in a *RuleError carrying detail.
var (
	ErrNotYourTurn           = errors.New("not your turn")
	ErrWrongPhase            = errors.New("action not allowed in current phase")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidLocation       = errors.New("invalid board location")
	ErrOccupied              = errors.New("location already occupied")
	ErrDistanceRule          = errors.New("too close to another building")
	ErrNotConnected          = errors.New("must connect to your own road or building")
	ErrPieceLimit            = errors.New("piece limit reached")
	ErrNotYourSettlement     = errors.New("no settlement of yours at this vertex")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrInvalidDiscard        = errors.New("invalid discard")
	ErrTradePending          = errors.New("a trade is already pending")
	ErrNoTradePending        = errors.New("no pending trade")
	ErrInvalidTrade          = errors.New("invalid trade")
	ErrDeckEmpty             = errors.New("no development cards remaining")
	ErrCardNotPlayable       = errors.New("no playable card of that kind")
	ErrCardAlreadyPlayed     = errors.New("already played a development card this turn")
	ErrFreeRoadsPending      = errors.New("free roads must be placed first")
	ErrAlreadyPlaced         = errors.New("already placed this setup turn")
	ErrGameNotStarted        = errors.New("game has not started")
	ErrGameOver              = errors.New("game is over")
	ErrMalformedAction       = errors.New("malformed action")
)

// ErrCorruptState marks programming or state-integrity failures, as opposed
// to a player attempting an illegal move.
var ErrCorruptState = errors.New("corrupt game state")

// RuleError is a rejected action. State is left unchanged.
type RuleError struct {
	Rule   error
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return e.Rule.Error()
	}
	return e.Rule.Error() + ": " + e.Detail
}

func (e *RuleError) Unwrap() error { return e.Rule }

// InvariantError reports a state the engine should never reach.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string { return ErrCorruptState.Error() + ": " + e.Detail }

func (e *InvariantError) Unwrap() error { return ErrCorruptState }

func reject(rule error, format string, args ...any) error {
	return &RuleError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

func corrupt(format string, args ...any) error {
	return &InvariantError{Detail: fmt.Sprintf(format, args...)}
}

// IsRuleViolation reports whether err is a rejected move.
func IsRuleViolation(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// IsCorruptState reports whether err signals a broken state.
func IsCorruptState(err error) bool {
	return errors.Is(err, ErrCorruptState)
}
