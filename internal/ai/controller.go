package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/game"
)

// ErrStalled is returned when the engine keeps rejecting AI actions.
var ErrStalled = errors.New("ai: too many rejected actions")

// Executor applies actions. *game.Engine satisfies it.
type Executor interface {
	Execute(state *game.GameState, action game.Action) (*game.GameState, error)
}

// StepFunc is called after every accepted AI action with the states either
// side of it. Returning an error stops the run.
type StepFunc func(prev, next *game.GameState, action game.Action) error

// StrategyFactory returns the strategy that plays seat p.
type StrategyFactory func(p *game.Player) Strategy

// Option configures a Controller.
type Option func(c *Controller)

// WithMaxActions bounds the actions taken in one Run.
func WithMaxActions(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxActions = n
		}
	}
}

// WithMaxActionsPerTurn sets how many actions a turn may take before the
// controller ends it.
func WithMaxActionsPerTurn(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxPerTurn = n
		}
	}
}

// WithMaxFailures sets how many consecutive rejections abort a Run.
func WithMaxFailures(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxFailures = n
		}
	}
}

// WithStrategyFactory replaces the per-difficulty heuristic strategies.
func WithStrategyFactory(f StrategyFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.strategyFor = f
		}
	}
}

// WithStepDelay pauses between AI actions so that clients can follow along.
func WithStepDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger for forced turn ends and aborted runs.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller plays every AI seat until a human has to act or the game ends.
type Controller struct {
	exec        Executor
	strategyFor StrategyFactory
	maxActions  int
	maxPerTurn  int
	maxFailures int
	delay       time.Duration
	log         zerolog.Logger
}

// NewController creates a controller driving exec.
func NewController(exec Executor, options ...Option) *Controller {
	strategies := make(map[game.AIDifficulty]Strategy, len(difficulties))
	for level, d := range difficulties {
		strategies[level] = NewHeuristicStrategy(d, nil)
	}
	c := &Controller{ // Default values
		exec:        exec,
		maxActions:  500,
		maxPerTurn:  20,
		maxFailures: 3,
		log:         log.Logger,
		strategyFor: func(p *game.Player) Strategy {
			if st, ok := strategies[p.AIDifficulty]; ok {
				return st
			}
			return strategies[game.DifficultyMedium]
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// NextSeat returns the AI seat whose action the game is waiting on, or nil
// when a human must act or the game is not running. Owed discards come
// first, then responses to a pending offer, then the current player.
func NextSeat(s *game.GameState) *game.Player {
	if s.Phase == game.PhaseLobby || s.Phase == game.PhaseFinished {
		return nil
	}
	if s.Phase == game.PhaseMain && s.TurnPhase == game.TurnDiscard && len(s.DiscardingPlayerIDs) > 0 {
		for _, id := range s.DiscardingPlayerIDs {
			if p := s.PlayerByID(id); p != nil && p.IsAI {
				return p
			}
		}
		return nil
	}
	if t := s.PendingTrade; t != nil {
		for _, p := range s.Players {
			if p.IsAI && t.CanRespond(p.ID) {
				return p
			}
		}
		return nil
	}
	if cur := s.CurrentPlayer(); cur != nil && cur.IsAI {
		return cur
	}
	return nil
}

// Due reports whether the game is waiting on playerID, using the same order
// as NextSeat. Remote bots use it to decide when to move.
func Due(s *game.GameState, playerID string) bool {
	if s.Phase == game.PhaseLobby || s.Phase == game.PhaseFinished {
		return false
	}
	if s.Phase == game.PhaseMain && s.TurnPhase == game.TurnDiscard && len(s.DiscardingPlayerIDs) > 0 {
		return s.IsDiscarding(playerID)
	}
	if t := s.PendingTrade; t != nil {
		return t.CanRespond(playerID)
	}
	cur := s.CurrentPlayer()
	return cur != nil && cur.ID == playerID
}

// Run plays AI actions from state and returns the last accepted state. It
// stops when no AI seat is due, the game finishes, the action budget runs
// out, ctx is done, or onStep fails.
func (c *Controller) Run(ctx context.Context, state *game.GameState, onStep StepFunc) (*game.GameState, error) {
	s := state
	actions, perTurn, failures := 0, 0, 0
	seat := s.CurrentPlayerIndex

	for actions < c.maxActions && !s.IsGameOver() {
		if err := c.wait(ctx, actions); err != nil {
			return s, err
		}
		p := NextSeat(s)
		if p == nil {
			return s, nil
		}
		action, err := c.strategyFor(p).ChooseAction(s, p.ID)
		if err != nil {
			return s, err
		}

		next, err := c.exec.Execute(s, action)
		if err != nil {
			if game.IsCorruptState(err) {
				return s, err
			}
			failures++
			c.log.Warn().Err(err).Str("game", s.ID).Str("player", p.ID).
				Str("action", string(action.Type)).Int("failures", failures).Msg("ai action rejected")
			if failures >= c.maxFailures {
				return s, fmt.Errorf("%w: last was %s by %s: %v", ErrStalled, action.Type, p.ID, err)
			}
			continue
		}
		failures = 0
		actions++
		if err := c.emit(onStep, s, next, action); err != nil {
			return next, err
		}
		s = next

		if s.CurrentPlayerIndex != seat {
			seat, perTurn = s.CurrentPlayerIndex, 0
			continue
		}
		perTurn++
		if perTurn >= c.maxPerTurn && c.canForceEnd(s) {
			cur := s.CurrentPlayer()
			c.log.Warn().Str("game", s.ID).Str("player", cur.ID).Int("actions", perTurn).Msg("forcing end of ai turn")
			end := game.EndTurn(cur.ID)
			next, err := c.exec.Execute(s, end)
			if err != nil {
				return s, err
			}
			actions++
			if err := c.emit(onStep, s, next, end); err != nil {
				return next, err
			}
			s = next
			seat, perTurn = s.CurrentPlayerIndex, 0
		}
	}
	if actions >= c.maxActions {
		c.log.Warn().Str("game", s.ID).Int("actions", actions).Msg("ai action budget exhausted")
	}
	return s, nil
}

func (c *Controller) canForceEnd(s *game.GameState) bool {
	cur := s.CurrentPlayer()
	return s.Phase == game.PhaseMain && s.TurnPhase == game.TurnTradeBuild &&
		s.RoadBuildingRoadsLeft == 0 && cur != nil && cur.IsAI
}

func (c *Controller) emit(onStep StepFunc, prev, next *game.GameState, a game.Action) error {
	if onStep == nil {
		return nil
	}
	return onStep(prev, next, a)
}

// wait checks ctx and, after the first action, sleeps for the step delay.
func (c *Controller) wait(ctx context.Context, done int) error {
	if c.delay == 0 || done == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
