package ai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// newGame seats players on a board generated from seed, ready for setup.
func newGame(t *testing.T, seed uint64, players ...*game.Player) *game.GameState {
	t.Helper()
	gen := maps.NewGenerator(maps.GeneratorOptions{Rand: maps.NewRand(seed)})
	board, err := gen.Generate()
	require.NoError(t, err)
	s, err := game.NewGame(fmt.Sprintf("g%d", seed), board, gen.DevDeck(), players)
	require.NoError(t, err)
	return s
}

func aiSeats(levels ...game.AIDifficulty) []*game.Player {
	colors := game.AllColors()
	out := make([]*game.Player, len(levels))
	for i, level := range levels {
		id := fmt.Sprintf("ai%d", i)
		out[i] = game.NewAIPlayer(id, id, colors[i], level)
	}
	return out
}

// seeded gives every seat its own deterministic heuristic strategy.
func seeded(seed uint64) StrategyFactory {
	cache := make(map[string]Strategy)
	return func(p *game.Player) Strategy {
		st, ok := cache[p.ID]
		if !ok {
			seed++
			st = NewHeuristicStrategy(DifficultyFor(p.AIDifficulty), maps.NewRand(seed))
			cache[p.ID] = st
		}
		return st
	}
}

// strategyFunc adapts a function to Strategy.
type strategyFunc func(s *game.GameState, playerID string) (game.Action, error)

func (f strategyFunc) ChooseAction(s *game.GameState, playerID string) (game.Action, error) {
	return f(s, playerID)
}

// playSetup finishes the placement rounds with every seat taking its first
// legal option.
func playSetup(t *testing.T, e *game.Engine, s *game.GameState) *game.GameState {
	t.Helper()
	for s.Phase.IsSetup() {
		p := s.CurrentPlayer()
		cands := LegalActions(s, p.ID)
		require.NotEmpty(t, cands)
		var err error
		s, err = e.Execute(s, cands[0])
		require.NoError(t, err)
	}
	return s
}
