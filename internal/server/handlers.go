package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
	"hex-settlers/pkg/maps"
)

const (
	maxDisplayName    = 50
	defaultMaxPlayers = 4
	minPlayers        = 2
)

var (
	errNotHost       = errors.New("only the host can do that")
	errNotSeated     = errors.New("not a player in this game")
	errTooFewPlayers = errors.New("need at least 2 players to start")
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "hex-settlers"})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, protocol.BoardListResponse{Boards: maps.List()})
}

// ==================== Players ====================

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req protocol.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", protocol.ErrInvalidMessage, err))
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	switch {
	case name == "":
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: display name is required", protocol.ErrInvalidMessage))
		return
	case len([]rune(name)) > maxDisplayName:
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: display name longer than %d characters", protocol.ErrInvalidMessage, maxDisplayName))
		return
	}

	player, err := s.db.CreatePlayer(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	token, err := s.auth.Issue(player.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Info().Str("player", player.ID).Str("name", name).Msg("player registered")
	writeJSON(w, http.StatusCreated, protocol.RegisterResponse{
		PlayerID:     player.ID,
		SessionToken: token,
		DisplayName:  player.Name,
	})
}

// ==================== Lobby ====================

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req protocol.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", protocol.ErrInvalidMessage, err))
		return
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = defaultMaxPlayers
	}
	if req.MaxPlayers < minPlayers || req.MaxPlayers > len(game.AllColors()) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: maxPlayers must be %d-%d", protocol.ErrInvalidMessage, minPlayers, len(game.AllColors())))
		return
	}
	if req.BoardID != "" && maps.Get(req.BoardID) == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: unknown board %q", protocol.ErrInvalidMessage, req.BoardID))
		return
	}

	host := currentPlayer(r)
	g, err := s.db.CreateGame(host, req.MaxPlayers, req.Password, req.BoardID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if _, err := s.db.AddPlayerToGame(g.ID, host); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Info().Str("game", g.ID).Str("host", host).Int("max_players", g.MaxPlayers).Msg("game created")
	writeJSON(w, http.StatusCreated, protocol.CreateGameResponse{GameID: g.ID})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	status, err := database.ParseGameStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	games, err := s.db.ListGames(status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := protocol.GameListResponse{Games: make([]protocol.GameInfo, 0, len(games))}
	for _, g := range games {
		info, err := s.gameInfo(g)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Games = append(resp.Games, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	info, err := s.gameInfo(g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	var req protocol.JoinGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", protocol.ErrInvalidMessage, err))
		return
	}
	if err := s.db.CheckGamePassword(g.ID, req.Password); err != nil {
		writeError(w, seatStatus(err), err)
		return
	}

	playerID := currentPlayer(r)
	seat, err := s.db.AddPlayerToGame(g.ID, playerID)
	if err != nil {
		writeError(w, seatStatus(err), err)
		return
	}

	log.Info().Str("game", g.ID).Str("player", playerID).Str("color", string(seat.Color)).Msg("player joined")
	s.broadcastJoined(g.ID, seat)
	writeJSON(w, http.StatusOK, protocol.JoinGameResponse{Color: seat.Color, SeatIndex: seat.SeatIndex})
}

func (s *Server) handleAddAI(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	if g.HostPlayerID != currentPlayer(r) {
		writeError(w, http.StatusForbidden, errNotHost)
		return
	}
	var req protocol.AddAIRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", protocol.ErrInvalidMessage, err))
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(game.DifficultyMedium)
	}
	level, err := ai.ParseLevel(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	seat, err := s.db.AddAIPlayer(g.ID, level)
	if err != nil {
		writeError(w, seatStatus(err), err)
		return
	}

	log.Info().Str("game", g.ID).Str("player", seat.PlayerID).Str("difficulty", string(level)).Msg("ai player added")
	s.broadcastJoined(g.ID, seat)
	writeJSON(w, http.StatusCreated, seatInfo(seat))
}

// handleStartGame deals the board, seats the players in join order and
// hands the first setup turn to seat 0.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	if g.HostPlayerID != currentPlayer(r) {
		writeError(w, http.StatusForbidden, errNotHost)
		return
	}
	if g.Status != database.GameStatusLobby {
		writeError(w, http.StatusBadRequest, database.ErrGameStarted)
		return
	}
	seats, err := s.db.GetGamePlayers(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(seats) < minPlayers {
		writeError(w, http.StatusBadRequest, errTooFewPlayers)
		return
	}

	rm := s.room(g.ID)
	rm.mu.Lock()
	if _, err := s.store.LoadGameState(g.ID); err == nil {
		rm.mu.Unlock()
		writeError(w, http.StatusBadRequest, database.ErrGameStarted)
		return
	}
	state, err := s.dealGame(rm, g, seats)
	if err == nil {
		err = s.store.SaveGameState(g.ID, state)
	}
	rm.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.db.UpdateGameStatus(g.ID, database.GameStatusActive, ""); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.db.AddHistoryEvent(g.ID, "", database.EventGameStarted, fmt.Sprintf("game started with %d players", len(seats))); err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("failed to record history")
	}

	log.Info().Str("game", g.ID).Int("players", len(seats)).Str("board", g.BoardID).Msg("game started")
	s.hub.BroadcastState(g.ID, protocol.TypeGameStarted, state)
	s.triggerAI(g.ID)
	writeJSON(w, http.StatusOK, protocol.GameStatePayload{State: FilterStateForPlayer(state, currentPlayer(r))})
}

// dealGame builds the opening state. The caller holds rm.mu.
func (s *Server) dealGame(rm *room, g *database.Game, seats []*database.GamePlayer) (*game.GameState, error) {
	gen := maps.NewGenerator(maps.GeneratorOptions{Rand: rm.rng})

	var board *maps.Board
	if preset := maps.Get(g.BoardID); preset != nil {
		board = preset.Clone()
	} else {
		var err error
		if board, err = gen.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate board: %w", err)
		}
	}
	if e := log.Debug(); e.Enabled() {
		e.Str("game", g.ID).Msg("dealt board\n" + board.Debug())
	}

	players := make([]*game.Player, 0, len(seats))
	for _, seat := range seats {
		if seat.IsAI {
			players = append(players, game.NewAIPlayer(seat.PlayerID, seat.PlayerName, seat.Color, seat.AIDifficulty))
		} else {
			players = append(players, game.NewPlayer(seat.PlayerID, seat.PlayerName, seat.Color))
		}
	}
	return game.NewGame(g.ID, board, gen.DevDeck(), players)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	playerID := currentPlayer(r)
	seated, err := s.db.IsPlayerInGame(g.ID, playerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !seated {
		writeError(w, http.StatusForbidden, errNotSeated)
		return
	}

	state, err := s.store.LoadGameState(g.ID)
	if errors.Is(err, database.ErrStateNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol.GameStatePayload{State: FilterStateForPlayer(state, playerID)})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	events, err := s.db.GetGameHistory(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := protocol.HistoryResponse{Events: make([]protocol.HistoryEntry, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, protocol.HistoryEntry{
			ID:        e.ID,
			PlayerID:  e.PlayerID,
			EventType: e.EventType,
			Message:   e.Message,
			CreatedAt: e.CreatedAt.UnixMilli(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ==================== Helpers ====================

// lookupGame loads the game named in the path, writing a 404 when missing.
func (s *Server) lookupGame(w http.ResponseWriter, r *http.Request) (*database.Game, bool) {
	g, err := s.db.GetGame(gameIDParam(r))
	if errors.Is(err, database.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return g, true
}

func (s *Server) gameInfo(g *database.Game) (protocol.GameInfo, error) {
	seats, err := s.db.GetGamePlayers(g.ID)
	if err != nil {
		return protocol.GameInfo{}, err
	}
	info := protocol.GameInfo{
		GameID:       g.ID,
		Status:       string(g.Status),
		HostPlayerID: g.HostPlayerID,
		MaxPlayers:   g.MaxPlayers,
		HasPassword:  g.HasPassword,
		BoardID:      g.BoardID,
		Winner:       g.Winner,
		Players:      make([]protocol.GamePlayerInfo, 0, len(seats)),
	}
	for _, seat := range seats {
		info.Players = append(info.Players, seatInfo(seat))
	}
	return info, nil
}

func seatInfo(seat *database.GamePlayer) protocol.GamePlayerInfo {
	return protocol.GamePlayerInfo{
		PlayerID:     seat.PlayerID,
		DisplayName:  seat.PlayerName,
		Color:        seat.Color,
		SeatIndex:    seat.SeatIndex,
		IsAI:         seat.IsAI,
		AIDifficulty: seat.AIDifficulty,
	}
}

// seatStatus maps lobby errors to HTTP status codes.
func seatStatus(err error) int {
	switch {
	case errors.Is(err, database.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrWrongPassword):
		return http.StatusForbidden
	case errors.Is(err, database.ErrGameFull),
		errors.Is(err, database.ErrGameStarted),
		errors.Is(err, database.ErrAlreadyInGame):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) broadcastJoined(gameID string, seat *database.GamePlayer) {
	msg, err := protocol.NewMessage(protocol.TypePlayerJoined, protocol.PlayerJoinedPayload{
		PlayerID:    seat.PlayerID,
		DisplayName: seat.PlayerName,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode join")
		return
	}
	s.hub.Broadcast(gameID, msg)
}
