package sim

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/internal/game"
)

func TestRun(t *testing.T) {
	cfg := Config{
		Games:      2,
		Seats:      []game.AIDifficulty{game.DifficultyHard, game.DifficultyEasy},
		Seed:       7,
		MaxActions: 400,
	}
	results, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, r := range results {
		require.Equal(t, i, r.Game)
		require.Equal(t, uint64(7+i), r.Seed)
		require.Len(t, r.VictoryPoints, 2)
		require.Greater(t, r.Turns, 1)
		require.LessOrEqual(t, r.Actions, cfg.MaxActions+1)
		if r.Finished() {
			require.Contains(t, []game.AIDifficulty{game.DifficultyHard, game.DifficultyEasy}, r.WinnerDifficulty)
		}
	}
}

func TestRunRejectsBadSeats(t *testing.T) {
	_, err := Run(context.Background(), Config{Games: 1, Seats: []game.AIDifficulty{game.DifficultyEasy}})
	require.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, Config{Games: 3, Seats: []game.AIDifficulty{game.DifficultyEasy, game.DifficultyEasy}})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, results)
}

func TestWinRates(t *testing.T) {
	results := []Result{
		{Winner: "seat0", WinnerDifficulty: game.DifficultyHard},
		{Winner: "seat1", WinnerDifficulty: game.DifficultyEasy},
		{Winner: "seat0", WinnerDifficulty: game.DifficultyHard},
		{Winner: "seat0", WinnerDifficulty: game.DifficultyHard},
		{}, // unfinished games are not counted
	}
	rates := WinRates(results)
	require.InDelta(t, 0.75, rates[game.DifficultyHard], 1e-9)
	require.InDelta(t, 0.25, rates[game.DifficultyEasy], 1e-9)
	require.Empty(t, WinRates(nil))
}

func TestWriteResults(t *testing.T) {
	results := []Result{
		{Game: 0, Seed: 1, Winner: "seat1", WinnerDifficulty: game.DifficultyMedium, Turns: 40, Actions: 300, VictoryPoints: []int{6, 10}},
		{Game: 1, Seed: 2, Turns: 90, Actions: 900, VictoryPoints: []int{8, 7}, Err: errors.New("stalled")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, 2, results))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"game", "seed", "winner", "winner_difficulty", "turns", "actions", "error", "vp_seat0", "vp_seat1"},
		{"0", "1", "seat1", "MEDIUM", "40", "300", "", "6", "10"},
		{"1", "2", "", "", "90", "900", "stalled", "8", "7"},
	}, rows)

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteResultsFile(path, 2, results))
	require.FileExists(t, path)
}
