// Package sim plays AI-only games for tuning and regression checks.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// Config describes one batch of games.
type Config struct {
	Games      int
	Seats      []game.AIDifficulty // one entry per seat
	Seed       uint64              // game i uses Seed+i
	MaxActions int                 // per game; 0 means 20000
	Logger     zerolog.Logger      // zero value logs nothing
}

// Result is the outcome of one game. Winner is empty when the game hit the
// action budget or stalled.
type Result struct {
	Game             int
	Seed             uint64
	Winner           string
	WinnerDifficulty game.AIDifficulty
	Turns            int
	Actions          int
	VictoryPoints    []int
	Err              error
}

// Finished reports whether the game produced a winner.
func (r Result) Finished() bool { return r.Winner != "" }

// Run plays cfg.Games games one after another.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if len(cfg.Seats) < 2 || len(cfg.Seats) > len(game.AllColors()) {
		return nil, fmt.Errorf("need 2-%d seats, got %d", len(game.AllColors()), len(cfg.Seats))
	}
	results := make([]Result, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := Play(ctx, cfg, i)
		if err != nil {
			return results, err
		}
		cfg.Logger.Debug().Int("game", i).Str("winner", r.Winner).Int("turns", r.Turns).Msg("game played")
		results = append(results, r)
	}
	return results, nil
}

// Play runs game i of cfg to completion. Stalled games are reported in the
// result; other errors abort.
func Play(ctx context.Context, cfg Config, i int) (Result, error) {
	seed := cfg.Seed + uint64(i)
	rng := maps.NewRand(seed)

	gen := maps.NewGenerator(maps.GeneratorOptions{Rand: rng})
	board, err := gen.Generate()
	if err != nil {
		return Result{}, err
	}
	colors := game.AllColors()
	players := make([]*game.Player, len(cfg.Seats))
	for n, level := range cfg.Seats {
		id := fmt.Sprintf("seat%d", n)
		players[n] = game.NewAIPlayer(id, fmt.Sprintf("%s %d", level, n), colors[n], level)
	}
	state, err := game.NewGame(fmt.Sprintf("sim-%d", i), board, gen.DevDeck(), players)
	if err != nil {
		return Result{}, err
	}

	maxActions := cfg.MaxActions
	if maxActions <= 0 {
		maxActions = 20000
	}
	ctrl := ai.NewController(game.NewEngine(rng),
		ai.WithMaxActions(maxActions),
		ai.WithStrategyFactory(strategies(seed)),
		ai.WithLogger(cfg.Logger),
	)

	actions := 0
	final, err := ctrl.Run(ctx, state, func(_, _ *game.GameState, _ game.Action) error {
		actions++
		return nil
	})
	r := Result{Game: i, Seed: seed, Turns: final.TurnNumber, Actions: actions, Err: err}
	if err != nil && !isStall(err) {
		return r, err
	}
	for _, p := range final.Players {
		r.VictoryPoints = append(r.VictoryPoints, p.VictoryPoints)
	}
	if final.IsGameOver() {
		r.Winner = final.Winner
		r.WinnerDifficulty = final.PlayerByID(final.Winner).AIDifficulty
	}
	return r, nil
}

func isStall(err error) bool { return errors.Is(err, ai.ErrStalled) }

// strategies gives every seat its own noise source derived from seed so
// that a game replays exactly.
func strategies(seed uint64) ai.StrategyFactory {
	cache := make(map[string]ai.Strategy)
	return func(p *game.Player) ai.Strategy {
		st, ok := cache[p.ID]
		if !ok {
			seed++
			st = ai.NewHeuristicStrategy(ai.DifficultyFor(p.AIDifficulty), maps.NewRand(seed<<8))
			cache[p.ID] = st
		}
		return st
	}
}

// WinRates returns the share of finished games won by each difficulty.
func WinRates(results []Result) map[game.AIDifficulty]float64 {
	wins := make(map[game.AIDifficulty]int)
	finished := 0
	for _, r := range results {
		if !r.Finished() {
			continue
		}
		finished++
		wins[r.WinnerDifficulty]++
	}
	rates := make(map[game.AIDifficulty]float64, len(wins))
	for level, n := range wins {
		rates[level] = float64(n) / float64(finished)
	}
	return rates
}
