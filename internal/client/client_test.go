package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
	"hex-settlers/internal/server"
	"hex-settlers/pkg/maps"
)

func TestBaseURLs(t *testing.T) {
	tests := []struct {
		addr     string
		wantHTTP string
		wantWS   string
	}{
		{"localhost:30000", "http://localhost:30000", "ws://localhost:30000"},
		{"http://127.0.0.1:8080/", "http://127.0.0.1:8080", "ws://127.0.0.1:8080"},
		{"wss://play.example.com", "https://play.example.com", "wss://play.example.com"},
		{"hex-settlers.onrender.com:30000", "https://hex-settlers.onrender.com", "wss://hex-settlers.onrender.com"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			gotHTTP, gotWS := baseURLs(tt.addr)
			require.Equal(t, tt.wantHTTP, gotHTTP)
			require.Equal(t, tt.wantWS, gotWS)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hex-settlers", "config-p1.json")

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	cfg.SessionToken = "tok"
	cfg.PlayerID = "p1"
	cfg.PlayerName = "Alice"
	require.NoError(t, cfg.saveFile(path))

	got, err := loadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func newServer(t *testing.T) string {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "hexsettlers.db"))
	require.NoError(t, err)
	s := server.NewWithDB(server.Config{JWTSecret: "test-secret", Seed: 9}, db)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Stop(ctx)
	})
	return ts.URL
}

func TestAPIErrors(t *testing.T) {
	api := NewAPI(newServer(t))
	ctx := context.Background()

	_, err := api.CreateGame(ctx, protocol.CreateGameRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, protocol.ErrCodeNotAuthenticated, apiErr.Code)

	_, err = api.Register(ctx, "")
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestBotPlaysAgainstServerAI(t *testing.T) {
	api := NewAPI(newServer(t))
	ctx := context.Background()

	_, err := api.Register(ctx, "bot")
	require.NoError(t, err)
	gameID, err := api.CreateGame(ctx, protocol.CreateGameRequest{MaxPlayers: 2})
	require.NoError(t, err)
	_, err = api.AddAI(ctx, gameID, "easy")
	require.NoError(t, err)

	info, err := api.Game(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, info.Players, 2)

	// Starting first means the socket opens with a snapshot.
	_, err = api.StartGame(ctx, gameID)
	require.NoError(t, err)

	conn, err := api.Dial(ctx, gameID)
	require.NoError(t, err)
	defer conn.Close()

	strategy := ai.NewHeuristicStrategy(ai.DifficultyFor(game.DifficultyMedium), maps.NewRand(3))
	bot := NewBot(conn, api.PlayerID, strategy, zerolog.Nop())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := bot.Run(runCtx)
		done <- err
	}()

	// The bot gets through setup and its first turn, the server AI takes
	// turn 2 and the bot is up again.
	require.Eventually(t, func() bool {
		s, err := api.State(ctx, gameID)
		return err == nil && s.Phase == game.PhaseMain && s.TurnNumber >= 3
	}, 15*time.Second, 50*time.Millisecond)

	s, err := api.State(ctx, gameID)
	require.NoError(t, err)
	pieces := s.CountPieces(api.PlayerID)
	require.GreaterOrEqual(t, pieces.Settlements+pieces.Cities, 2)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop")
	}
}
