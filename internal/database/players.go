package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Player represents a player in the database.
type Player struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// ErrPlayerNotFound is returned when a player is not found.
var ErrPlayerNotFound = errors.New("player not found")

// CreatePlayer creates a new player.
func (db *DB) CreatePlayer(name string) (*Player, error) {
	return db.insertPlayer(uuid.New().String(), name)
}

func (db *DB) insertPlayer(id, name string) (*Player, error) {
	now := time.Now()
	_, err := db.conn.Exec(`
		INSERT INTO players (id, name, created_at, last_seen_at)
		VALUES (?, ?, ?, ?)
	`, id, name, now, now)
	if err != nil {
		return nil, err
	}

	return &Player{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		LastSeenAt: now,
	}, nil
}

// GetPlayer retrieves a player by ID.
func (db *DB) GetPlayer(id string) (*Player, error) {
	var p Player
	err := db.conn.QueryRow(`
		SELECT id, name, created_at, last_seen_at
		FROM players WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.LastSeenAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TouchPlayer updates the last seen timestamp.
func (db *DB) TouchPlayer(id string) error {
	result, err := db.conn.Exec(`
		UPDATE players SET last_seen_at = ? WHERE id = ?
	`, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPlayerNotFound
	}
	return nil
}
