// Command client plays one hex-settlers seat remotely with the heuristic AI.
// It either hosts a new game (filling the other seats with server AIs) or
// joins an existing one by id.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/client"
	"hex-settlers/internal/protocol"
)

func main() {
	profile := flag.String("profile", "", "Profile name for separate config (e.g., player1, player2)")
	serverAddr := flag.String("server", "", "Server address (default: last used)")
	name := flag.String("name", "", "Display name when registering")
	gameID := flag.String("game", "", "Game to join; empty hosts a new one")
	password := flag.String("password", "", "Game password")
	players := flag.Int("players", 4, "Seats when hosting")
	serverAI := flag.String("ai", "medium", "Difficulty of the server AIs filling the other seats when hosting")
	difficulty := flag.String("difficulty", "", "Difficulty this bot plays at (default: from config)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	client.SetProfile(*profile)
	cfg, err := client.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load config, using defaults")
	}
	if *serverAddr != "" && *serverAddr != cfg.LastServer {
		cfg.LastServer = *serverAddr
		cfg.SessionToken, cfg.PlayerID = "", ""
	}
	if *name != "" {
		cfg.PlayerName = *name
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = "bot"
	}
	if *difficulty != "" {
		cfg.Difficulty = *difficulty
	}
	level, err := ai.ParseLevel(cfg.Difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -difficulty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.NewAPI(cfg.LastServer)
	api.Token, api.PlayerID = cfg.SessionToken, cfg.PlayerID

	var id string
	err = withSession(ctx, api, cfg, func() error {
		var err error
		if *gameID == "" {
			id, err = host(ctx, api, *players, *password, *serverAI)
		} else {
			id = *gameID
			err = join(ctx, api, id, *password)
		}
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up game")
	}

	conn, err := api.Dial(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}
	defer conn.Close()

	log.Info().Str("game", id).Str("player", api.PlayerID).Str("difficulty", string(level)).Msg("playing")
	bot := client.NewBot(conn, api.PlayerID, ai.NewHeuristicStrategy(ai.DifficultyFor(level), nil), log.Logger)
	final, err := bot.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	winner := final.PlayerByID(final.Winner)
	if winner != nil {
		log.Info().Str("winner", winner.DisplayName).Int("vp", winner.VictoryPoints).Int("turns", final.TurnNumber).Msg("game over")
	}
}

// withSession runs fn, registering first when there is no saved session and
// once more if the server no longer accepts the saved one.
func withSession(ctx context.Context, api *client.API, cfg *client.Config, fn func() error) error {
	register := func() error {
		resp, err := api.Register(ctx, cfg.PlayerName)
		if err != nil {
			return err
		}
		cfg.SessionToken, cfg.PlayerID = resp.SessionToken, resp.PlayerID
		if err := cfg.Save(); err != nil {
			log.Warn().Err(err).Msg("failed to save config")
		}
		return nil
	}

	if api.Token == "" {
		if err := register(); err != nil {
			return err
		}
	}
	err := fn()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		log.Info().Msg("saved session rejected, registering again")
		if err := register(); err != nil {
			return err
		}
		return fn()
	}
	return err
}

// host creates a game, fills it with server AIs and starts it.
func host(ctx context.Context, api *client.API, players int, password, difficulty string) (string, error) {
	id, err := api.CreateGame(ctx, protocol.CreateGameRequest{MaxPlayers: players, Password: password})
	if err != nil {
		return "", err
	}
	for i := 1; i < players; i++ {
		if _, err := api.AddAI(ctx, id, difficulty); err != nil {
			return "", err
		}
	}
	if _, err := api.StartGame(ctx, id); err != nil {
		return "", err
	}
	log.Info().Str("game", id).Int("players", players).Msg("hosted game started")
	return id, nil
}

// join takes a seat; being seated already is fine when reconnecting.
func join(ctx context.Context, api *client.API, id, password string) error {
	_, err := api.JoinGame(ctx, id, password)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		info, infoErr := api.Game(ctx, id)
		if infoErr != nil {
			return err
		}
		for _, p := range info.Players {
			if p.PlayerID == api.PlayerID {
				return nil
			}
		}
	}
	return err
}
