package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hex-settlers/internal/game"
)

// GameStatus represents the current status of a game.
type GameStatus string

const (
	GameStatusLobby    GameStatus = "LOBBY"    // Waiting for players
	GameStatusActive   GameStatus = "ACTIVE"   // Game in progress
	GameStatusFinished GameStatus = "FINISHED" // Game completed
)

// ParseGameStatus validates a status filter. The empty string means any.
func ParseGameStatus(s string) (GameStatus, error) {
	switch st := GameStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case "", GameStatusLobby, GameStatusActive, GameStatusFinished:
		return st, nil
	default:
		return "", fmt.Errorf("unknown game status %q", s)
	}
}

// Game contains game metadata.
type Game struct {
	ID           string
	Status       GameStatus
	HostPlayerID string
	MaxPlayers   int
	HasPassword  bool
	BoardID      string
	Winner       string
	PlayerCount  int
	CreatedAt    time.Time
	StartedAt    *time.Time
	EndedAt      *time.Time
}

// GamePlayer represents a seat in a game.
type GamePlayer struct {
	GameID       string
	PlayerID     string
	PlayerName   string
	SeatIndex    int
	Color        game.PlayerColor
	IsAI         bool
	AIDifficulty game.AIDifficulty
	JoinedAt     time.Time
}

var (
	// ErrGameNotFound is returned when a game is not found.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameFull is returned when a game has reached max players.
	ErrGameFull = errors.New("game is full")
	// ErrAlreadyInGame is returned when player is already in the game.
	ErrAlreadyInGame = errors.New("already in game")
	// ErrGameStarted is returned when seating a player after the lobby closed.
	ErrGameStarted = errors.New("game is not in lobby")
	// ErrWrongPassword is returned when a private game's password does not match.
	ErrWrongPassword = errors.New("wrong game password")
)

// CreateGame creates a new lobby. An empty password makes the game public;
// an empty boardID means the board is generated at start.
func (db *DB) CreateGame(hostPlayerID string, maxPlayers int, password, boardID string) (*Game, error) {
	id := uuid.New().String()

	var hash sql.NullString
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = sql.NullString{String: string(b), Valid: true}
	}

	now := time.Now()
	_, err := db.conn.Exec(`
		INSERT INTO games (id, status, host_player_id, max_players, password_hash, board_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, GameStatusLobby, hostPlayerID, maxPlayers, hash, nullString(boardID), now)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:           id,
		Status:       GameStatusLobby,
		HostPlayerID: hostPlayerID,
		MaxPlayers:   maxPlayers,
		HasPassword:  hash.Valid,
		BoardID:      boardID,
		CreatedAt:    now,
	}, nil
}

const gameColumns = `
	g.id, g.status, g.host_player_id, g.max_players, g.password_hash IS NOT NULL,
	g.board_id, g.winner, g.created_at, g.started_at, g.ended_at,
	(SELECT COUNT(*) FROM game_players WHERE game_id = g.id) AS player_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	var g Game
	var boardID, winner sql.NullString
	var startedAt, endedAt sql.NullTime
	if err := row.Scan(&g.ID, &g.Status, &g.HostPlayerID, &g.MaxPlayers, &g.HasPassword,
		&boardID, &winner, &g.CreatedAt, &startedAt, &endedAt, &g.PlayerCount); err != nil {
		return nil, err
	}
	g.BoardID = boardID.String
	g.Winner = winner.String
	if startedAt.Valid {
		g.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		g.EndedAt = &endedAt.Time
	}
	return &g, nil
}

// GetGame retrieves a game by ID.
func (db *DB) GetGame(id string) (*Game, error) {
	g, err := scanGame(db.conn.QueryRow(`SELECT `+gameColumns+` FROM games g WHERE g.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGames returns games with the given status, newest first. An empty
// status lists every game.
func (db *DB) ListGames(status GameStatus) ([]*Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g`
	var args []any
	if status != "" {
		query += ` WHERE g.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY g.created_at DESC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// AddPlayerToGame seats a player in the next seat with the first free color.
func (db *DB) AddPlayerToGame(gameID, playerID string) (*GamePlayer, error) {
	gp, err := db.seat(gameID, playerID, "")
	if err != nil {
		return nil, err
	}
	if p, err := db.GetPlayer(playerID); err == nil {
		gp.PlayerName = p.Name
	}
	return gp, nil
}

// AddAIPlayer creates a computer player and seats it.
func (db *DB) AddAIPlayer(gameID string, difficulty game.AIDifficulty) (*GamePlayer, error) {
	if _, err := db.GetGame(gameID); err != nil {
		return nil, err
	}

	// A players row is required for the foreign key
	aiID := fmt.Sprintf("ai-%s", uuid.New().String()[:8])
	name := fmt.Sprintf("AI (%s)", strings.ToLower(string(difficulty)))
	if _, err := db.insertPlayer(aiID, name); err != nil {
		return nil, fmt.Errorf("failed to create AI player: %w", err)
	}

	gp, err := db.seat(gameID, aiID, difficulty)
	if err != nil {
		return nil, err
	}
	gp.PlayerName = name
	return gp, nil
}

// seat runs the lobby checks and inserts the seat in one transaction. A
// non-empty difficulty marks the seat as AI.
func (db *DB) seat(gameID, playerID string, difficulty game.AIDifficulty) (*GamePlayer, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status GameStatus
	var maxPlayers int
	err = tx.QueryRow(`SELECT status, max_players FROM games WHERE id = ?`, gameID).Scan(&status, &maxPlayers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != GameStatusLobby {
		return nil, ErrGameStarted
	}

	rows, err := tx.Query(`SELECT player_id, color FROM game_players WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	used := make(map[game.PlayerColor]bool)
	count := 0
	for rows.Next() {
		var pid string
		var color game.PlayerColor
		if err := rows.Scan(&pid, &color); err != nil {
			rows.Close()
			return nil, err
		}
		if pid == playerID {
			rows.Close()
			return nil, ErrAlreadyInGame
		}
		used[color] = true
		count++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if count >= maxPlayers {
		return nil, ErrGameFull
	}

	var color game.PlayerColor
	for _, c := range game.AllColors() {
		if !used[c] {
			color = c
			break
		}
	}
	if color == "" {
		return nil, ErrGameFull
	}

	gp := &GamePlayer{
		GameID:       gameID,
		PlayerID:     playerID,
		SeatIndex:    count,
		Color:        color,
		IsAI:         difficulty != "",
		AIDifficulty: difficulty,
		JoinedAt:     time.Now(),
	}
	_, err = tx.Exec(`
		INSERT INTO game_players (game_id, player_id, seat_index, color, is_ai, ai_difficulty, joined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, gp.GameID, gp.PlayerID, gp.SeatIndex, gp.Color, gp.IsAI, nullString(string(difficulty)), gp.JoinedAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return gp, nil
}

// GetGamePlayers returns all seats in a game in seat order.
func (db *DB) GetGamePlayers(gameID string) ([]*GamePlayer, error) {
	rows, err := db.conn.Query(`
		SELECT gp.game_id, gp.player_id, p.name, gp.seat_index, gp.color,
		       gp.is_ai, gp.ai_difficulty, gp.joined_at
		FROM game_players gp
		LEFT JOIN players p ON gp.player_id = p.id
		WHERE gp.game_id = ?
		ORDER BY gp.seat_index
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []*GamePlayer{}
	for rows.Next() {
		var gp GamePlayer
		var name, difficulty sql.NullString
		if err := rows.Scan(&gp.GameID, &gp.PlayerID, &name, &gp.SeatIndex, &gp.Color,
			&gp.IsAI, &difficulty, &gp.JoinedAt); err != nil {
			return nil, err
		}
		gp.PlayerName = name.String
		if !name.Valid {
			gp.PlayerName = "Unknown"
		}
		gp.AIDifficulty = game.AIDifficulty(difficulty.String)
		players = append(players, &gp)
	}
	return players, rows.Err()
}

// IsPlayerInGame reports whether playerID holds a seat in gameID.
func (db *DB) IsPlayerInGame(gameID, playerID string) (bool, error) {
	var n int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM game_players WHERE game_id = ? AND player_id = ?
	`, gameID, playerID).Scan(&n)
	return n > 0, err
}

// UpdateGameStatus moves a game through its lifecycle. Starting stamps
// started_at, finishing stamps ended_at and records a non-empty winner.
func (db *DB) UpdateGameStatus(gameID string, status GameStatus, winner string) error {
	now := time.Now()
	var result sql.Result
	var err error
	switch status {
	case GameStatusActive:
		result, err = db.conn.Exec(`UPDATE games SET status = ?, started_at = ? WHERE id = ?`, status, now, gameID)
	case GameStatusFinished:
		result, err = db.conn.Exec(`UPDATE games SET status = ?, ended_at = ?, winner = COALESCE(?, winner) WHERE id = ?`,
			status, now, nullString(winner), gameID)
	default:
		result, err = db.conn.Exec(`UPDATE games SET status = ? WHERE id = ?`, status, gameID)
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	return nil
}

// CheckGamePassword returns ErrWrongPassword unless password opens gameID.
// Public games accept any password.
func (db *DB) CheckGamePassword(gameID, password string) error {
	var hash sql.NullString
	err := db.conn.QueryRow(`SELECT password_hash FROM games WHERE id = ?`, gameID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrGameNotFound
	}
	if err != nil {
		return err
	}
	if !hash.Valid {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
