package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

func newState(t *testing.T) *game.GameState {
	t.Helper()
	preset := maps.Get("beginner")
	require.NotNil(t, preset)
	s, err := game.NewGame("g1", preset.Clone(), maps.NewGenerator(maps.GeneratorOptions{Rand: maps.NewRand(1)}).DevDeck(), []*game.Player{
		game.NewPlayer("alice", "Alice", game.ColorRed),
		game.NewPlayer("bob", "Bob", game.ColorBlue),
	})
	require.NoError(t, err)
	return s
}

func types(msgs []*protocol.Message) []protocol.MessageType {
	out := make([]protocol.MessageType, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type
	}
	return out
}

func TestFilterStateForPlayer(t *testing.T) {
	s := newState(t)
	s.Players[0].DevCards = []maps.DevCard{maps.Knight, maps.VictoryPoint}
	s.Players[1].DevCards = []maps.DevCard{maps.Monopoly}
	s.Players[1].NewDevCards = []maps.DevCard{maps.YearOfPlenty}
	deck := len(s.DevDeck)

	view := FilterStateForPlayer(s, "alice")
	require.Equal(t, []maps.DevCard{maps.Knight, maps.VictoryPoint}, view.Players[0].DevCards)
	require.Equal(t, []maps.DevCard{maps.MaskedDevCard}, view.Players[1].DevCards)
	require.Empty(t, view.Players[1].NewDevCards)
	require.Len(t, view.DevDeck, deck)
	for _, c := range view.DevDeck {
		require.Equal(t, maps.MaskedDevCard, c)
	}

	// The original is untouched.
	require.Equal(t, []maps.DevCard{maps.Monopoly}, s.Players[1].DevCards)
	require.Equal(t, []maps.DevCard{maps.YearOfPlenty}, s.Players[1].NewDevCards)
	require.NotEqual(t, maps.MaskedDevCard, s.DevDeck[0])

	spectator := FilterStateForPlayer(s, "")
	require.Equal(t, []maps.DevCard{maps.MaskedDevCard, maps.MaskedDevCard}, spectator.Players[0].DevCards)
}

func TestDeltaEventsForPlacement(t *testing.T) {
	prev := newState(t)
	next := prev.Clone()
	v := hexgrid.Vertex{Q: 0, R: 0, Side: hexgrid.SideN}
	next.Buildings[v] = game.Building{Vertex: v, PlayerID: "alice", Kind: game.Settlement}

	events := deltaEvents(prev, next, game.PlaceSettlement("alice", v))
	require.Equal(t, []protocol.MessageType{protocol.TypeBuildingPlaced}, types(events))

	var p protocol.BuildingPlacedPayload
	require.NoError(t, events[0].ParsePayload(&p))
	require.Equal(t, v, p.Building.Vertex)

	entries := describe(prev, next, game.PlaceSettlement("alice", v))
	require.Len(t, entries, 1)
	require.Equal(t, database.EventBuild, entries[0].eventType)
	require.Equal(t, "Alice built a settlement at 0,0,N", entries[0].message)
}

func TestDeltaEventsForRollAndTurn(t *testing.T) {
	prev := newState(t)
	prev.Phase = game.PhaseMain

	rolled := prev.Clone()
	rolled.DiceRoll = &game.DiceRoll{Die1: 2, Die2: 4}
	rolled.TurnPhase = game.TurnTradeBuild
	events := deltaEvents(prev, rolled, game.RollDice("alice"))
	require.Equal(t, []protocol.MessageType{protocol.TypeDiceRolled}, types(events))

	var roll protocol.DiceRolledPayload
	require.NoError(t, events[0].ParsePayload(&roll))
	require.Equal(t, protocol.DiceRolledPayload{Die1: 2, Die2: 4, PlayerID: "alice"}, roll)
	require.Equal(t, "Alice rolled 6", describe(prev, rolled, game.RollDice("alice"))[0].message)

	ended := rolled.Clone()
	ended.CurrentPlayerIndex = 1
	events = deltaEvents(rolled, ended, game.EndTurn("alice"))
	require.Equal(t, []protocol.MessageType{protocol.TypeTurnChanged}, types(events))

	var turn protocol.TurnChangedPayload
	require.NoError(t, events[0].ParsePayload(&turn))
	require.Equal(t, "bob", turn.PlayerID)
	require.Equal(t, 1, turn.PlayerIndex)
}

func TestDeltaEventsForGameOver(t *testing.T) {
	prev := newState(t)
	prev.Phase = game.PhaseMain
	prev.Players[0].VictoryPoints = 9

	next := prev.Clone()
	v := hexgrid.Vertex{Q: 1, R: 0, Side: hexgrid.SideS}
	next.Buildings[v] = game.Building{Vertex: v, PlayerID: "alice", Kind: game.City}
	next.Players[0].VictoryPoints = 10
	next.Phase = game.PhaseFinished
	next.Winner = "alice"

	action := game.PlaceCity("alice", v)
	events := deltaEvents(prev, next, action)
	require.Equal(t, []protocol.MessageType{protocol.TypeBuildingPlaced, protocol.TypeGameOver}, types(events))

	var over protocol.GameOverPayload
	require.NoError(t, events[1].ParsePayload(&over))
	require.Equal(t, protocol.GameOverPayload{WinnerID: "alice", WinnerName: "Alice"}, over)

	entries := describe(prev, next, action)
	require.Len(t, entries, 2)
	require.Equal(t, database.EventGameEnd, entries[1].eventType)
	require.Equal(t, "Alice won with 10 victory points", entries[1].message)
}

func TestDescribeTrade(t *testing.T) {
	s := newState(t)
	offer := game.OfferTrade("alice", game.Stockpile{Brick: 2}, game.Stockpile{Ore: 1, Wool: 1}, "")
	entries := describe(s, s, offer)
	require.Equal(t, "Alice offered 2 BRICK for 1 ORE, 1 WOOL", entries[0].message)
	require.Equal(t, database.EventTrade, entries[0].eventType)
}
