package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeDiceRolled, DiceRolledPayload{Die1: 3, Die2: 4, PlayerID: "p1"})
	require.NoError(t, err)
	require.Equal(t, TypeDiceRolled, msg.Type)
	require.NotEmpty(t, msg.ID)
	require.NotZero(t, msg.Timestamp)

	var got DiceRolledPayload
	require.NoError(t, msg.ParsePayload(&got))
	require.Equal(t, 7, got.Die1+got.Die2)
	require.Equal(t, "p1", got.PlayerID)
}

func TestDecodeAction(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"PLACE_SETTLEMENT","playerId":"mallory","vertex":"0,-1,S"}`), "alice")
	require.NoError(t, err)
	require.Equal(t, game.ActionPlaceSettlement, a.Type)
	require.Equal(t, "alice", a.PlayerID, "the sender's id always wins")
	require.Equal(t, hexgrid.Vertex{Q: 0, R: -1, Side: hexgrid.SideS}, *a.Vertex)

	_, err = DecodeAction([]byte(`not json`), "alice")
	require.ErrorIs(t, err, ErrInvalidMessage)
	_, err = DecodeAction([]byte(`{"vertex":"0,0,N"}`), "alice")
	require.ErrorIs(t, err, ErrInvalidMessage)
}

func TestErrorCodeFor(t *testing.T) {
	rule := func(sentinel error) error { return &game.RuleError{Rule: sentinel, Detail: "x"} }
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{rule(game.ErrNotYourTurn), ErrCodeNotYourTurn},
		{rule(game.ErrWrongPhase), ErrCodeWrongPhase},
		{rule(game.ErrGameOver), ErrCodeGameOver},
		{rule(game.ErrMalformedAction), ErrCodeInvalidMessage},
		{rule(game.ErrDistanceRule), ErrCodeRuleViolation},
		{&game.InvariantError{Detail: "bank"}, ErrCodeInternalError},
		{fmt.Errorf("%w: eof", ErrInvalidMessage), ErrCodeInvalidMessage},
		{errors.New("disk full"), ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.want, ErrorCodeFor(tt.err))
		})
	}
}

func TestNewErrorHidesInternalDetail(t *testing.T) {
	var p ErrorPayload
	require.NoError(t, NewError(errors.New("disk full at /var/db")).ParsePayload(&p))
	require.Equal(t, ErrCodeInternalError, p.Code)
	require.NotContains(t, p.Message, "/var/db")

	require.NoError(t, NewError(&game.RuleError{Rule: game.ErrOccupied}).ParsePayload(&p))
	require.Equal(t, ErrCodeRuleViolation, p.Code)
	require.Equal(t, game.ErrOccupied.Error(), p.Message)
}
