package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/pkg/hexgrid"
)

// ringEdges returns the six sides of h in walking order.
func ringEdges(t *testing.T, h hexgrid.Hex) []hexgrid.Edge {
	t.Helper()
	sides := hexgrid.EdgesOfHex(h)
	out := []hexgrid.Edge{sides[0]}
	used := map[hexgrid.Edge]bool{sides[0]: true}
	at := hexgrid.VerticesOfEdge(sides[0])[1]
	for step := 0; step < 6 && len(out) < 6; step++ {
		for _, e := range sides {
			ends := hexgrid.VerticesOfEdge(e)
			if !used[e] && (ends[0] == at || ends[1] == at) {
				out = append(out, e)
				used[e] = true
				at = hexgrid.OtherEnd(e, at)
				break
			}
		}
	}
	require.Len(t, out, 6)
	return out
}

func sharedVertex(a, b hexgrid.Edge) hexgrid.Vertex {
	for _, v := range hexgrid.VerticesOfEdge(a) {
		for _, w := range hexgrid.VerticesOfEdge(b) {
			if v == w {
				return v
			}
		}
	}
	return hexgrid.Vertex{}
}

func roadsOf(playerID string, edges ...hexgrid.Edge) map[hexgrid.Edge]Road {
	out := make(map[hexgrid.Edge]Road, len(edges))
	for _, e := range edges {
		out[e] = Road{Edge: e, PlayerID: playerID}
	}
	return out
}

func TestLongestRoad_Chain(t *testing.T) {
	ring := ringEdges(t, hexgrid.Hex{})
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("length_%d", n), func(t *testing.T) {
			roads := roadsOf("a", ring[:n]...)
			require.Equal(t, n, LongestRoad("a", roads, nil))
		})
	}
}

func TestLongestRoad_Cycle(t *testing.T) {
	ring := ringEdges(t, hexgrid.Hex{})
	require.Equal(t, 6, LongestRoad("a", roadsOf("a", ring...), nil))
}

func TestLongestRoad_OpponentBuildingBreaksChain(t *testing.T) {
	ring := ringEdges(t, hexgrid.Hex{})
	roads := roadsOf("a", ring[:5]...)
	cut := sharedVertex(ring[1], ring[2])
	buildings := map[hexgrid.Vertex]Building{
		cut: {Vertex: cut, PlayerID: "b", Kind: Settlement},
	}
	require.Equal(t, 3, LongestRoad("a", roads, buildings))

	// The player's own building does not break anything.
	buildings[cut] = Building{Vertex: cut, PlayerID: "a", Kind: City}
	require.Equal(t, 5, LongestRoad("a", roads, buildings))
}

func TestLongestRoad_IgnoresOtherPlayers(t *testing.T) {
	ring := ringEdges(t, hexgrid.Hex{})
	roads := roadsOf("a", ring[:2]...)
	for _, e := range ring[2:] {
		roads[e] = Road{Edge: e, PlayerID: "b"}
	}
	require.Equal(t, 2, LongestRoad("a", roads, nil))
	require.Equal(t, 4, LongestRoad("b", roads, nil))
	require.Zero(t, LongestRoad("c", roads, nil))
}

func TestLongestRoad_Branch(t *testing.T) {
	ring := ringEdges(t, hexgrid.Hex{})
	roads := roadsOf("a", ring[:4]...)

	// A spur off the middle of the chain does not lengthen it past the
	// longer arm.
	mid := sharedVertex(ring[1], ring[2])
	for _, e := range hexgrid.EdgesOfVertex(mid) {
		if _, ok := roads[e]; !ok {
			roads[e] = Road{Edge: e, PlayerID: "a"}
		}
	}
	require.Equal(t, 4, LongestRoad("a", roads, nil))
}

func TestAwardHolder(t *testing.T) {
	seats := []*Player{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		name   string
		holder string
		scores map[string]int
		want   string
	}{
		{"below threshold", "", map[string]int{"a": 4, "b": 2}, ""},
		{"first to reach", "", map[string]int{"a": 5, "b": 2}, "a"},
		{"tie without holder", "", map[string]int{"a": 5, "b": 5}, ""},
		{"holder keeps on tie", "a", map[string]int{"a": 5, "b": 5}, "a"},
		{"strictly beaten", "a", map[string]int{"a": 5, "b": 6}, "b"},
		{"holder drops out", "a", map[string]int{"a": 3, "b": 5}, "b"},
		{"holder drops out into tie", "a", map[string]int{"a": 3, "b": 6, "c": 6}, ""},
		{"holder drops below threshold alone", "a", map[string]int{"a": 4}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, awardHolder(tt.holder, tt.scores, seats, LongestRoadMin))
		})
	}
}

func TestLongestRoadRevokedWhenBroken(t *testing.T) {
	s := newTestState(t)
	s.Phase = PhaseMain
	s.TurnPhase = TurnTradeBuild

	ring := ringEdges(t, hexgrid.Hex{})
	start := sharedVertex(ring[5], ring[0])
	s.Buildings[start] = Building{Vertex: start, PlayerID: "alice", Kind: Settlement}
	for _, e := range ring[:5] {
		s.Roads[e] = Road{Edge: e, PlayerID: "alice"}
	}
	updateAwards(s)
	recomputeVictoryPoints(s)
	require.Equal(t, "alice", s.LongestRoadHolder)
	require.Equal(t, 1+AwardPoints, s.PlayerByID("alice").VictoryPoints)

	cut := sharedVertex(ring[2], ring[3])
	s.Buildings[cut] = Building{Vertex: cut, PlayerID: "bob", Kind: Settlement}
	updateAwards(s)
	recomputeVictoryPoints(s)
	require.Empty(t, s.LongestRoadHolder)
	require.Equal(t, 1, s.PlayerByID("alice").VictoryPoints)
}
