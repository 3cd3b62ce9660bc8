package ai

import (
	"fmt"
	"strings"

	"hex-settlers/internal/game"
)

// Difficulty tunes one scoring pipeline. Lower randomness and blocking
// awareness make a stronger player.
type Difficulty struct {
	Level                game.AIDifficulty
	Randomness           float64 // scale of the gaussian noise added to scores
	TradeAcceptThreshold float64 // subtracted from a trade response's value
	BlockingAware        bool    // weigh denying opponents and the leader
}

var difficulties = map[game.AIDifficulty]Difficulty{
	game.DifficultyEasy:   {Level: game.DifficultyEasy, Randomness: 0.5, TradeAcceptThreshold: -0.5},
	game.DifficultyMedium: {Level: game.DifficultyMedium, Randomness: 0.15, TradeAcceptThreshold: 0.0},
	game.DifficultyHard:   {Level: game.DifficultyHard, Randomness: 0.0, TradeAcceptThreshold: 0.3, BlockingAware: true},
}

// DifficultyFor returns the preset for level. Unknown levels play as medium.
func DifficultyFor(level game.AIDifficulty) Difficulty {
	if d, ok := difficulties[level]; ok {
		return d
	}
	return difficulties[game.DifficultyMedium]
}

// ParseLevel parses a difficulty name such as "hard".
func ParseLevel(s string) (game.AIDifficulty, error) {
	level := game.AIDifficulty(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := difficulties[level]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return level, nil
}
