package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"hex-settlers/internal/ai"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
)

// ErrDisconnected is returned when the socket closes before the game ends.
var ErrDisconnected = errors.New("disconnected before the game ended")

// Bot plays one seat over a game socket with a local strategy.
type Bot struct {
	conn        *Conn
	playerID    string
	strategy    ai.Strategy
	maxFailures int
	log         zerolog.Logger
}

// NewBot creates a bot acting as playerID on conn.
func NewBot(conn *Conn, playerID string, strategy ai.Strategy, logger zerolog.Logger) *Bot {
	return &Bot{conn: conn, playerID: playerID, strategy: strategy, maxFailures: 3, log: logger}
}

// Run answers every state in which the game waits on the bot and returns
// the final state once the game is over. The bot only moves once it has
// drained the messages queued so far, so it never answers a stale state.
func (b *Bot) Run(ctx context.Context) (*game.GameState, error) {
	var state *game.GameState
	dirty := false
	failures := 0

	for {
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case msg, ok := <-b.conn.Messages():
			if !ok {
				return state, ErrDisconnected
			}
			switch msg.Type {
			case protocol.TypeGameStateUpdate, protocol.TypeGameStarted:
				var p protocol.GameStatePayload
				if err := msg.ParsePayload(&p); err != nil {
					return state, err
				}
				state, dirty, failures = p.State, true, 0
				if state.IsGameOver() {
					return state, nil
				}

			case protocol.TypeError:
				var p protocol.ErrorPayload
				if err := msg.ParsePayload(&p); err != nil {
					return state, err
				}
				failures++
				b.log.Warn().Str("code", string(p.Code)).Str("error", p.Message).Int("failures", failures).Msg("action rejected")
				if failures >= b.maxFailures {
					return state, fmt.Errorf("%w: %s", ai.ErrStalled, p.Message)
				}
				dirty = true // retry from the same state

			case protocol.TypeGameOver:
				var p protocol.GameOverPayload
				if err := msg.ParsePayload(&p); err == nil {
					b.log.Info().Str("winner", p.WinnerName).Msg("game over")
				}
			}
		}

		if dirty && state != nil && len(b.conn.Messages()) == 0 {
			dirty = false
			if err := b.move(state); err != nil {
				return state, err
			}
		}
	}
}

func (b *Bot) move(s *game.GameState) error {
	if !ai.Due(s, b.playerID) {
		return nil
	}
	action, err := b.strategy.ChooseAction(s, b.playerID)
	if err != nil {
		return err
	}
	b.log.Debug().Str("action", string(action.Type)).Msg("sending action")
	return b.conn.SendAction(action)
}
