package protocol

import (
	"encoding/json"
	"fmt"

	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// ==================== Player Payloads ====================

// RegisterRequest creates a player.
type RegisterRequest struct {
	DisplayName string `json:"displayName"`
}

// RegisterResponse carries the session token for later requests.
type RegisterResponse struct {
	PlayerID     string `json:"playerId"`
	SessionToken string `json:"sessionToken"`
	DisplayName  string `json:"displayName"`
}

// ==================== Lobby Payloads ====================

// CreateGameRequest is sent to create a new game.
type CreateGameRequest struct {
	MaxPlayers int    `json:"maxPlayers"`
	Password   string `json:"password,omitempty"`
	BoardID    string `json:"boardId,omitempty"` // preset board; empty generates one
}

// CreateGameResponse is the response when a game is created.
type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

// JoinGameRequest is sent to join a game by ID.
type JoinGameRequest struct {
	Password string `json:"password,omitempty"`
}

// JoinGameResponse is the seat assigned on join.
type JoinGameResponse struct {
	Color     game.PlayerColor `json:"color"`
	SeatIndex int              `json:"seatIndex"`
}

// AddAIRequest is sent by the host to add a computer player.
type AddAIRequest struct {
	Difficulty string `json:"difficulty"`
}

// GamePlayerInfo is one seat in a game listing.
type GamePlayerInfo struct {
	PlayerID     string            `json:"playerId"`
	DisplayName  string            `json:"displayName"`
	Color        game.PlayerColor  `json:"color"`
	SeatIndex    int               `json:"seatIndex"`
	IsAI         bool              `json:"isAi,omitempty"`
	AIDifficulty game.AIDifficulty `json:"aiDifficulty,omitempty"`
}

// GameInfo is a summary of a game.
type GameInfo struct {
	GameID       string           `json:"gameId"`
	Status       string           `json:"status"`
	HostPlayerID string           `json:"hostPlayerId"`
	MaxPlayers   int              `json:"maxPlayers"`
	HasPassword  bool             `json:"hasPassword"`
	BoardID      string           `json:"boardId,omitempty"`
	Winner       string           `json:"winner,omitempty"`
	Players      []GamePlayerInfo `json:"players"`
}

// GameListResponse contains a list of games.
type GameListResponse struct {
	Games []GameInfo `json:"games"`
}

// BoardListResponse lists the preset boards.
type BoardListResponse struct {
	Boards []maps.PresetInfo `json:"boards"`
}

// HistoryEntry is one line of the game log.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	PlayerID  string `json:"playerId,omitempty"`
	EventType string `json:"eventType"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

// HistoryResponse contains a game's log in order.
type HistoryResponse struct {
	Events []HistoryEntry `json:"events"`
}

// ==================== Game Payloads ====================

// GameStatePayload carries a state snapshot redacted for its recipient.
type GameStatePayload struct {
	State *game.GameState `json:"state"`
}

// DiceRolledPayload reports a roll.
type DiceRolledPayload struct {
	Die1     int    `json:"die1"`
	Die2     int    `json:"die2"`
	PlayerID string `json:"playerId"`
}

// BuildingPlacedPayload reports a new or upgraded building.
type BuildingPlacedPayload struct {
	Building game.Building `json:"building"`
}

// RoadPlacedPayload reports a new road.
type RoadPlacedPayload struct {
	Road game.Road `json:"road"`
}

// TradeOfferedPayload reports a new pending trade.
type TradeOfferedPayload struct {
	Trade game.TradeOffer `json:"trade"`
}

// TurnChangedPayload names the player now to act.
type TurnChangedPayload struct {
	PlayerID    string `json:"playerId"`
	PlayerIndex int    `json:"playerIndex"`
}

// GameOverPayload names the winner.
type GameOverPayload struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

// PlayerJoinedPayload is sent to a lobby when a seat is filled.
type PlayerJoinedPayload struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

// DecodeAction parses an action frame sent by playerID. Any player id in
// the frame is replaced: clients act only as themselves.
func DecodeAction(data []byte, playerID string) (game.Action, error) {
	var a game.Action
	if err := json.Unmarshal(data, &a); err != nil {
		return game.Action{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if a.Type == "" {
		return game.Action{}, fmt.Errorf("%w: missing type", ErrInvalidMessage)
	}
	a.PlayerID = playerID
	return a, nil
}
