package database

import (
	"database/sql"
	"time"
)

// HistoryEvent represents a single game event in the history log.
type HistoryEvent struct {
	ID        int64
	GameID    string
	PlayerID  string
	EventType string
	Message   string
	CreatedAt time.Time
}

// Event types for game history
const (
	EventGameStarted = "game_started"
	EventDiceRolled  = "dice_rolled"
	EventBuild       = "build"
	EventRobber      = "robber"
	EventTrade       = "trade"
	EventDevCard     = "dev_card"
	EventTurn        = "turn"
	EventGameEnd     = "game_end"
)

// AddHistoryEvent adds a new event to the game history.
func (db *DB) AddHistoryEvent(gameID, playerID, eventType, message string) error {
	_, err := db.conn.Exec(`
		INSERT INTO game_history (game_id, player_id, event_type, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, gameID, nullString(playerID), eventType, message, time.Now())
	return err
}

// GetGameHistory retrieves all history events for a game, ordered chronologically.
func (db *DB) GetGameHistory(gameID string) ([]*HistoryEvent, error) {
	rows, err := db.conn.Query(`
		SELECT id, game_id, player_id, event_type, message, created_at
		FROM game_history
		WHERE game_id = ?
		ORDER BY id ASC
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*HistoryEvent{}
	for rows.Next() {
		e := &HistoryEvent{}
		var playerID sql.NullString
		if err := rows.Scan(&e.ID, &e.GameID, &playerID, &e.EventType, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.PlayerID = playerID.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// LogAction records an accepted action as sent.
func (db *DB) LogAction(gameID, playerID, actionType, actionJSON string) error {
	_, err := db.conn.Exec(`
		INSERT INTO game_actions (game_id, player_id, action_type, action_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, gameID, nullString(playerID), actionType, actionJSON, time.Now())
	return err
}
