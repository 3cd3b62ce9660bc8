// Package protocol defines the network message types for client-server communication.
package protocol

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"hex-settlers/internal/game"
)

// MessageType identifies the type of message.
type MessageType string

// State snapshots
const (
	TypeGameStateUpdate MessageType = "GAME_STATE_UPDATE"
	TypeGameStarted     MessageType = "GAME_STARTED"
)

// Delta events sent alongside a snapshot
const (
	TypeDiceRolled     MessageType = "DICE_ROLLED"
	TypeBuildingPlaced MessageType = "BUILDING_PLACED"
	TypeRoadPlaced     MessageType = "ROAD_PLACED"
	TypeTradeOffered   MessageType = "TRADE_OFFERED"
	TypeTurnChanged    MessageType = "TURN_CHANGED"
	TypeGameOver       MessageType = "GAME_OVER"
)

// Lobby and system message types
const (
	TypePlayerJoined MessageType = "PLAYER_JOINED"
	TypeError        MessageType = "ERROR"
)

// Message is the envelope for all server messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrInvalidMessage is returned for frames that do not decode to an action.
var ErrInvalidMessage = errors.New("invalid message")

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeInvalidMessage   ErrorCode = "invalid_message"
	ErrCodeNotYourTurn      ErrorCode = "not_your_turn"
	ErrCodeWrongPhase       ErrorCode = "wrong_phase"
	ErrCodeRuleViolation    ErrorCode = "rule_violation"
	ErrCodeGameNotFound     ErrorCode = "game_not_found"
	ErrCodeGameOver         ErrorCode = "game_over"
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	ErrCodeInternalError    ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorCodeFor maps an engine error to the code reported to clients.
func ErrorCodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMessage):
		return ErrCodeInvalidMessage
	case game.IsCorruptState(err):
		return ErrCodeInternalError
	case errors.Is(err, game.ErrNotYourTurn):
		return ErrCodeNotYourTurn
	case errors.Is(err, game.ErrWrongPhase):
		return ErrCodeWrongPhase
	case errors.Is(err, game.ErrGameOver):
		return ErrCodeGameOver
	case errors.Is(err, game.ErrMalformedAction):
		return ErrCodeInvalidMessage
	case game.IsRuleViolation(err):
		return ErrCodeRuleViolation
	default:
		return ErrCodeInternalError
	}
}

// NewError builds an ERROR message for err.
func NewError(err error) *Message {
	code := ErrorCodeFor(err)
	text := err.Error()
	if code == ErrCodeInternalError {
		text = "internal server error"
	}
	msg, _ := NewMessage(TypeError, ErrorPayload{Code: code, Message: text})
	return msg
}
