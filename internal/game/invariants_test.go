package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/pkg/hexgrid"
)

func TestCheckInvariants(t *testing.T) {
	e := NewEngine(rolls())
	base := mainState(t, e)
	require.NoError(t, base.CheckInvariants())

	tests := []struct {
		name   string
		mutate func(s *GameState)
	}{
		{"negative resources", func(s *GameState) {
			s.PlayerByID("alice").Resources.Ore = -1
		}},
		{"victory points drift", func(s *GameState) {
			s.PlayerByID("bob").VictoryPoints++
		}},
		{"distance rule", func(s *GameState) {
			v := ownSettlement(t, s, "alice")
			adj := hexgrid.AdjacentVertices(v)[0]
			s.Buildings[adj] = Building{Vertex: adj, PlayerID: "bob", Kind: Settlement}
			recomputeVictoryPoints(s)
		}},
		{"disconnected road", func(s *GameState) {
			for _, e := range hexgrid.AllEdges() {
				if !touchesNetwork(s, "alice", e) {
					s.Roads[e] = Road{Edge: e, PlayerID: "alice"}
					return
				}
			}
		}},
		{"illegal phase pair", func(s *GameState) {
			s.Phase = PhaseSetupForward
			s.TurnPhase = TurnTradeBuild
		}},
		{"two robbers", func(s *GameState) {
			for i := range s.Tiles {
				s.Tiles[i].Robber = true
			}
		}},
		{"discard set outside discard step", func(s *GameState) {
			s.DiscardingPlayerIDs = []string{"alice"}
		}},
		{"too many free roads", func(s *GameState) {
			s.RoadBuildingRoadsLeft = 3
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base.Clone()
			tt.mutate(s)
			err := s.CheckInvariants()
			require.Error(t, err)
			require.True(t, IsCorruptState(err))
			require.False(t, IsRuleViolation(err))
		})
	}
}

func touchesNetwork(s *GameState, playerID string, e hexgrid.Edge) bool {
	for _, v := range hexgrid.VerticesOfEdge(e) {
		if b, ok := s.Buildings[v]; ok && b.PlayerID == playerID {
			return true
		}
		for _, adj := range hexgrid.EdgesOfVertex(v) {
			if r, ok := s.Roads[adj]; ok && r.PlayerID == playerID {
				return true
			}
		}
	}
	return false
}
