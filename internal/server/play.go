package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
)

// handleWebSocket upgrades a seated player's connection. Every text frame
// the client sends is one action; the server answers with state updates
// for the whole table and errors for the sender only.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	seated, err := s.db.IsPlayerInGame(g.ID, playerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !seated {
		writeError(w, http.StatusForbidden, errNotSeated)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, g.ID, playerID)
	s.hub.Register(client)
	defer s.hub.Unregister(client)
	log.Debug().Str("game", g.ID).Str("player", playerID).Msg("websocket connected")

	if state, err := s.store.LoadGameState(g.ID); err == nil {
		if msg, err := protocol.NewMessage(protocol.TypeGameStateUpdate, protocol.GameStatePayload{State: FilterStateForPlayer(state, playerID)}); err == nil {
			client.Send(msg)
		}
	}

	go client.WritePump(s.ctx)
	client.ReadPump(s.ctx, func(data []byte) {
		s.handleFrame(client, data)
	})
	log.Debug().Str("game", g.ID).Str("player", playerID).Msg("websocket disconnected")
}

// handleFrame applies one action sent by client.
func (s *Server) handleFrame(client *Client, data []byte) {
	action, err := protocol.DecodeAction(data, client.PlayerID)
	if err != nil {
		client.Send(protocol.NewError(err))
		return
	}

	rm := s.room(client.GameID)
	rm.mu.Lock()
	err = s.apply(rm, client.GameID, action)
	rm.mu.Unlock()

	if err != nil {
		log.Debug().Err(err).Str("game", client.GameID).Str("player", client.PlayerID).
			Str("action", string(action.Type)).Msg("action rejected")
		client.Send(errorMessage(err))
		return
	}
	s.triggerAI(client.GameID)
}

// apply executes action on the saved state. The caller holds rm.mu.
func (s *Server) apply(rm *room, gameID string, action game.Action) error {
	state, err := s.store.LoadGameState(gameID)
	if err != nil {
		return err
	}
	next, err := rm.engine.Execute(state, action)
	if err != nil {
		return err
	}
	return s.commit(gameID, state, next, action)
}

// commit persists an accepted transition and tells the table about it.
func (s *Server) commit(gameID string, prev, next *game.GameState, action game.Action) error {
	if err := s.store.SaveGameState(gameID, next); err != nil {
		return err
	}

	if data, err := json.Marshal(action); err == nil {
		if err := s.db.LogAction(gameID, action.PlayerID, string(action.Type), string(data)); err != nil {
			log.Warn().Err(err).Str("game", gameID).Msg("failed to log action")
		}
	}
	for _, h := range describe(prev, next, action) {
		if err := s.db.AddHistoryEvent(gameID, action.PlayerID, h.eventType, h.message); err != nil {
			log.Warn().Err(err).Str("game", gameID).Msg("failed to record history")
		}
	}
	if next.IsGameOver() && !prev.IsGameOver() {
		if err := s.db.UpdateGameStatus(gameID, database.GameStatusFinished, next.Winner); err != nil {
			log.Error().Err(err).Str("game", gameID).Msg("failed to mark game finished")
		}
		log.Info().Str("game", gameID).Str("winner", next.Winner).Int("turns", next.TurnNumber).Msg("game finished")
	}

	s.hub.BroadcastState(gameID, protocol.TypeGameStateUpdate, next)
	for _, msg := range deltaEvents(prev, next, action) {
		s.hub.Broadcast(gameID, msg)
	}
	return nil
}

// errorMessage builds the error sent back to an acting client.
func errorMessage(err error) *protocol.Message {
	if errors.Is(err, database.ErrStateNotFound) {
		msg, _ := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{
			Code:    protocol.ErrCodeGameNotFound,
			Message: "game has not started",
		})
		return msg
	}
	return protocol.NewError(err)
}

// triggerAI plays any AI seats that are due in the background.
func (s *Server) triggerAI(gameID string) {
	if s.ctx.Err() != nil {
		return
	}
	s.ai.Add(1)
	go func() {
		defer s.ai.Done()
		s.runAI(gameID)
	}()
}

func (s *Server) runAI(gameID string) {
	rm := s.room(gameID)
	rm.mu.Lock()
	defer rm.mu.Unlock()

	state, err := s.store.LoadGameState(gameID)
	if err != nil {
		log.Error().Err(err).Str("game", gameID).Msg("ai: failed to load game state")
		return
	}
	p := ai.NextSeat(state)
	if p == nil {
		return
	}
	log.Debug().Str("game", gameID).Str("player", p.ID).Msg("ai: taking over")

	ctrl := ai.NewController(rm.engine,
		ai.WithStepDelay(s.cfg.AIStepDelay),
		ai.WithLogger(log.Logger),
	)
	_, err = ctrl.Run(s.ctx, state, func(prev, next *game.GameState, action game.Action) error {
		return s.commit(gameID, prev, next, action)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("game", gameID).Msg("ai: run failed")
	}
}

// gameIDParam is the game in the request path.
func gameIDParam(r *http.Request) string {
	return chi.URLParam(r, "gameID")
}
