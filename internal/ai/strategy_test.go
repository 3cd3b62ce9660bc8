package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    game.AIDifficulty
		wantErr bool
	}{
		{"easy", game.DifficultyEasy, false},
		{" Medium ", game.DifficultyMedium, false},
		{"HARD", game.DifficultyHard, false},
		{"impossible", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDifficultyPresets(t *testing.T) {
	easy, medium, hard := DifficultyFor(game.DifficultyEasy), DifficultyFor(game.DifficultyMedium), DifficultyFor(game.DifficultyHard)
	require.Greater(t, easy.Randomness, medium.Randomness)
	require.Greater(t, medium.Randomness, hard.Randomness)
	require.Zero(t, hard.Randomness)
	require.True(t, hard.BlockingAware)
	require.False(t, medium.BlockingAware)
	require.Less(t, easy.TradeAcceptThreshold, hard.TradeAcceptThreshold)
	require.Equal(t, medium, DifficultyFor("UNKNOWN"))
}

func TestChooseAction_SingleCandidate(t *testing.T) {
	e := game.NewEngine(maps.NewRand(1))
	s := playSetup(t, e, newGame(t, 9, aiSeats(game.DifficultyEasy, game.DifficultyEasy)...))

	st := NewHeuristicStrategy(DifficultyFor(game.DifficultyEasy), maps.NewRand(1))
	a, err := st.ChooseAction(s, "ai0")
	require.NoError(t, err)
	require.Equal(t, game.RollDice("ai0"), a)

	// A seat with nothing to do falls back to ending the turn.
	a, err = st.ChooseAction(s, "ai1")
	require.NoError(t, err)
	require.Equal(t, game.EndTurn("ai1"), a)

	_, err = st.ChooseAction(s, "ghost")
	require.Error(t, err)
}

func TestChooseAction_HardTakesBestSetupSpot(t *testing.T) {
	s := newGame(t, 11, aiSeats(game.DifficultyHard, game.DifficultyHard)...)
	st := NewHeuristicStrategy(DifficultyFor(game.DifficultyHard), nil)

	a, err := st.ChooseAction(s, "ai0")
	require.NoError(t, err)
	require.Equal(t, game.ActionPlaceSettlement, a.Type)
	chosen := scoreVertex(s, *a.Vertex, "ai0")
	for _, v := range hexgrid.AllVertices() {
		require.LessOrEqual(t, scoreVertex(s, v, "ai0"), chosen)
	}
}

func TestChooseAction_RobberAvoidsOwnTiles(t *testing.T) {
	e := game.NewEngine(maps.NewRand(1))
	s := playSetup(t, e, newGame(t, 13, aiSeats(game.DifficultyHard, game.DifficultyHard)...))
	s.TurnPhase = game.TurnRobberMove
	st := NewHeuristicStrategy(DifficultyFor(game.DifficultyHard), nil)

	a, err := st.ChooseAction(s, "ai0")
	require.NoError(t, err)
	require.Equal(t, game.ActionMoveRobber, a.Type)
	for _, v := range hexgrid.VerticesOfHex(*a.Hex) {
		if b, ok := s.Buildings[v]; ok {
			require.NotEqual(t, "ai0", b.PlayerID, "robber placed next to own building at %s", v)
		}
	}
}

func TestScoreRobber(t *testing.T) {
	s := newGame(t, 13, aiSeats(game.DifficultyHard, game.DifficultyHard)...)

	var numbered []hexgrid.Hex
	for _, tile := range s.Tiles {
		if tile.Number != 0 {
			numbered = append(numbered, tile.Coord)
		}
	}
	ownHex := numbered[0]
	ownVertex := hexgrid.VerticesOfHex(ownHex)[0]
	s.Buildings[ownVertex] = game.Building{Vertex: ownVertex, PlayerID: "ai0", Kind: game.Settlement}

	touches := func(h hexgrid.Hex, v hexgrid.Vertex) bool {
		for _, w := range hexgrid.VerticesOfHex(h) {
			if w == v {
				return true
			}
		}
		return false
	}
	var rivalHex, emptyHex *hexgrid.Hex
	for i := range numbered {
		h := numbered[i]
		if rivalHex == nil && !touches(h, ownVertex) {
			for _, v := range hexgrid.VerticesOfHex(h) {
				if !touches(ownHex, v) {
					s.Buildings[v] = game.Building{Vertex: v, PlayerID: "ai1", Kind: game.City}
					rivalHex = &h
					break
				}
			}
		}
	}
	require.NotNil(t, rivalHex)
	for i := range numbered {
		h := numbered[i]
		if len(scoreTargets(s, h)) == 0 {
			emptyHex = &h
			break
		}
	}

	require.Less(t, scoreRobber(s, ownHex, "ai0"), 0.0)
	require.Greater(t, scoreRobber(s, *rivalHex, "ai0"), 0.0)
	if emptyHex != nil {
		require.Zero(t, scoreRobber(s, *emptyHex, "ai0"))
	}
	require.Equal(t, barrenRobberScore, scoreRobber(s, s.RobberLocation, "ai0"))
}

// scoreTargets lists the owners of buildings on h.
func scoreTargets(s *game.GameState, h hexgrid.Hex) []string {
	var out []string
	for _, v := range hexgrid.VerticesOfHex(h) {
		if b, ok := s.Buildings[v]; ok {
			out = append(out, b.PlayerID)
		}
	}
	return out
}

func TestResourceNeed(t *testing.T) {
	p := game.NewAIPlayer("ai0", "ai0", game.ColorRed, game.DifficultyMedium)

	p.Resources = game.Stockpile{Grain: 2, Ore: 2}
	require.Equal(t, 4.0, resourceNeed(p, maps.Ore), "the last ore completes a city")

	p.Resources = game.Stockpile{Brick: 1, Lumber: 1, Grain: 1}
	require.Equal(t, 3.5, resourceNeed(p, maps.Wool), "the missing wool completes a settlement")

	p.Resources = game.Stockpile{Brick: 5}
	require.Zero(t, resourceNeed(p, maps.Brick), "brick is not short")
	require.Equal(t, 0.3, resourceSurplus(p, maps.Brick))
	require.Equal(t, 3.0, resourceSurplus(p, maps.Wool))
}

func TestScoreTradeResponse_Thresholds(t *testing.T) {
	e := game.NewEngine(maps.NewRand(1))
	s := playSetup(t, e, newGame(t, 5, aiSeats(game.DifficultyMedium, game.DifficultyMedium)...))
	s.Players[1].Resources = game.Stockpile{Grain: 2, Ore: 2, Wool: 4}
	trade := &game.TradeOffer{ID: "t", FromPlayerID: "ai0", Offering: game.Of(maps.Ore, 1), Requesting: game.Of(maps.Wool, 1)}

	easy := scoreTradeResponse(s, trade, "ai1", DifficultyFor(game.DifficultyEasy))
	hard := scoreTradeResponse(s, trade, "ai1", DifficultyFor(game.DifficultyHard))
	require.InDelta(t, 0.8, easy-hard, 1e-9)
	require.Greater(t, hard, 0.0, "a city-completing ore for spare wool is worth taking")
}

func TestScoreYearOfPlenty(t *testing.T) {
	e := game.NewEngine(maps.NewRand(1))
	s := playSetup(t, e, newGame(t, 5, aiSeats(game.DifficultyMedium, game.DifficultyMedium)...))
	s.Players[0].Resources = game.Stockpile{Grain: 2, Ore: 1}

	require.Equal(t, yearOfPlentyBase+3.0, scorePlayYearOfPlenty(s, "ai0", maps.Ore, maps.Ore))
	require.Equal(t, yearOfPlentyBase, scorePlayYearOfPlenty(s, "ai0", maps.Wool, maps.Wool))
}
