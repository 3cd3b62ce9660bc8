package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hex-settlers/internal/game"
)

// ErrStateNotFound is returned when a game has no saved state yet.
var ErrStateNotFound = errors.New("game state not found")

// StateStore loads and saves engine states by game id. States handed out
// are shared and must not be modified.
type StateStore interface {
	LoadGameState(gameID string) (*game.GameState, error)
	SaveGameState(gameID string, state *game.GameState) error
}

var _ StateStore = (*DB)(nil)

// SaveGameState saves the current game state.
func (db *DB) SaveGameState(gameID string, state *game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}
	var current string
	if p := state.CurrentPlayer(); p != nil {
		current = p.ID
	}

	_, err = db.conn.Exec(`
		INSERT INTO game_state (game_id, state_json, phase, turn_phase, current_player_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			state_json = excluded.state_json,
			phase = excluded.phase,
			turn_phase = excluded.turn_phase,
			current_player_id = excluded.current_player_id,
			updated_at = excluded.updated_at
	`, gameID, string(data), state.Phase.String(), state.TurnPhase.String(), current, time.Now())
	if err != nil {
		return err
	}

	db.mu.Lock()
	db.states[gameID] = state
	db.mu.Unlock()
	return nil
}

// LoadGameState retrieves the current game state.
func (db *DB) LoadGameState(gameID string) (*game.GameState, error) {
	db.mu.RLock()
	cached, ok := db.states[gameID]
	db.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var data string
	err := db.conn.QueryRow(`SELECT state_json FROM game_state WHERE game_id = ?`, gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}

	db.mu.Lock()
	db.states[gameID] = &state
	db.mu.Unlock()
	return &state, nil
}
