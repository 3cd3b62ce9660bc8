package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/game"
	"hex-settlers/internal/sim"
)

func main() {
	games := flag.Int("games", 100, "Number of games to play")
	players := flag.Int("players", 4, "Seats per game")
	seed := flag.Uint64("seed", 1, "Seed of the first game")
	difficulty := flag.String("difficulty", "hard,medium,easy,medium", "Comma list of seat difficulties, cycled over the seats")
	maxActions := flag.Int("max-actions", 20000, "Action budget per game")
	out := flag.String("out", "", "CSV output path (default experiments/simulate/<timestamp>.csv)")
	verbose := flag.Bool("v", false, "Log every game")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	seats, err := parseSeats(*difficulty, *players)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -difficulty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simLog := log.Logger.Level(zerolog.ErrorLevel)
	if *verbose {
		simLog = log.Logger
	}

	start := time.Now()
	results, err := sim.Run(ctx, sim.Config{
		Games:      *games,
		Seats:      seats,
		Seed:       *seed,
		MaxActions: *maxActions,
		Logger:     simLog,
	})
	if err != nil {
		log.Error().Err(err).Int("played", len(results)).Msg("simulation stopped early")
	}

	path := *out
	if path == "" {
		path = "experiments/simulate/" + time.Now().UTC().Format("20060102T150405") + ".csv"
	}
	if err := sim.WriteResultsFile(path, len(seats), results); err != nil {
		log.Fatal().Err(err).Msg("failed to write results")
	}

	finished := 0
	for _, r := range results {
		if r.Finished() {
			finished++
		}
	}
	log.Info().
		Int("games", len(results)).
		Int("finished", finished).
		Dur("elapsed", time.Since(start)).
		Str("out", path).
		Msg("simulation complete")

	rates := sim.WinRates(results)
	levels := make([]string, 0, len(rates))
	for level := range rates {
		levels = append(levels, string(level))
	}
	sort.Strings(levels)
	for _, level := range levels {
		log.Info().Str("difficulty", level).Float64("win_rate", rates[game.AIDifficulty(level)]).Msg("win rate")
	}
}

// parseSeats expands a comma list of difficulties to n seats, repeating the
// list as needed.
func parseSeats(list string, n int) ([]game.AIDifficulty, error) {
	var levels []game.AIDifficulty
	for _, name := range strings.Split(list, ",") {
		level, err := ai.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	seats := make([]game.AIDifficulty, n)
	for i := range seats {
		seats[i] = levels[i%len(levels)]
	}
	return seats, nil
}
