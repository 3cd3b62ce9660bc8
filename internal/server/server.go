// Package server implements the hex-settlers game server: REST lobby
// routes, a WebSocket per seated player and the AI turn loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// Config holds server configuration.
type Config struct {
	Addr        string
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration // 0 means 30 days
	AIStepDelay time.Duration // pause between broadcast AI actions
	Seed        uint64        // seeds boards and dice; 0 uses the clock
}

// Server is the main game server.
type Server struct {
	cfg    Config
	db     *database.DB
	store  database.StateStore
	hub    *Hub
	auth   *tokenAuth
	router chi.Router
	server *http.Server

	seedMu sync.Mutex
	seeds  *rand.Rand

	roomsMu sync.Mutex
	rooms   map[string]*room

	ctx    context.Context // canceled by Stop
	cancel context.CancelFunc
	ai     sync.WaitGroup
}

// room serializes everything that reads and writes one game's state.
type room struct {
	mu     sync.Mutex
	engine *game.Engine
	rng    *rand.Rand
}

// New opens the database and creates a server.
func New(cfg Config) (*Server, error) {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewWithDB(cfg, db), nil
}

// NewWithDB creates a server on an open database. The server closes db on
// Stop.
func NewWithDB(cfg Config, db *database.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		db:     db,
		store:  db,
		auth:   newTokenAuth(cfg.JWTSecret, cfg.TokenTTL),
		seeds:  maps.NewRand(cfg.Seed),
		rooms:  make(map[string]*room),
		ctx:    ctx,
		cancel: cancel,
	}
	s.hub = NewHub()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	// The WebSocket outlives any request timeout.
	r.Get("/games/{gameID}/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", s.handleHealth)
		r.Get("/boards", s.handleListBoards)
		r.Post("/players/register", s.handleRegister)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{gameID}", s.handleGetGame)
		r.Get("/games/{gameID}/history", s.handleGetHistory)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/games", s.handleCreateGame)
			r.Post("/games/{gameID}/join", s.handleJoinGame)
			r.Post("/games/{gameID}/ai", s.handleAddAI)
			r.Post("/games/{gameID}/start", s.handleStartGame)
			r.Get("/games/{gameID}/state", s.handleGetState)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	return r
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.router }

// Start serves HTTP on the configured address until Stop.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}

	log.Info().Str("addr", s.cfg.Addr).Str("db", s.cfg.DBPath).Msg("hex-settlers server listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server: HTTP first, then open sockets and
// AI runs, then the database.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.ai.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// room returns the lock and randomness for gameID, creating them on first use.
func (s *Server) room(gameID string) *room {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	if r, ok := s.rooms[gameID]; ok {
		return r
	}
	s.seedMu.Lock()
	seed := s.seeds.Uint64()
	s.seedMu.Unlock()

	rng := maps.NewRand(seed)
	r := &room{engine: game.NewEngine(rng), rng: rng}
	s.rooms[gameID] = r
	return r
}
