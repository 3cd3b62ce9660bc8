package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

// scriptedRand replays fixed values, reduced modulo n, then returns 0.
type scriptedRand struct {
	vals []int
	next int
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.vals) {
		return 0
	}
	v := r.vals[r.next] % n
	r.next++
	return v
}

// rolls scripts dice pairs so that each pair sums to the given totals.
func rolls(totals ...int) *scriptedRand {
	r := &scriptedRand{}
	for _, t := range totals {
		d1 := t / 2
		d2 := t - d1
		r.vals = append(r.vals, d1-1, d2-1)
	}
	return r
}

// newTestState seats alice and bob on a seeded board, ready for setup.
func newTestState(t *testing.T) *GameState {
	t.Helper()
	board, err := maps.NewGenerator(maps.GeneratorOptions{Rand: maps.NewRand(42)}).Generate()
	require.NoError(t, err)
	players := []*Player{
		NewPlayer("alice", "Alice", ColorRed),
		NewPlayer("bob", "Bob", ColorBlue),
	}
	s, err := NewGame("g1", board, maps.NewGenerator(maps.GeneratorOptions{Rand: maps.NewRand(42)}).DevDeck(), players)
	require.NoError(t, err)
	return s
}

// firstSetupVertex returns the first legal setup settlement spot.
func firstSetupVertex(t *testing.T, s *GameState) hexgrid.Vertex {
	t.Helper()
	for _, v := range hexgrid.AllVertices() {
		if ValidateSettlement(s, s.CurrentPlayer().ID, v, true) == nil {
			return v
		}
	}
	t.Fatal("no setup vertex left")
	return hexgrid.Vertex{}
}

// autoSetup plays both setup rounds with the first legal spots.
func autoSetup(t *testing.T, e *Engine, s *GameState) *GameState {
	t.Helper()
	for s.Phase.IsSetup() {
		id := s.CurrentPlayer().ID
		v := firstSetupVertex(t, s)
		var err error
		s, err = e.Execute(s, PlaceSettlement(id, v))
		require.NoError(t, err)

		placed := false
		for _, edge := range hexgrid.EdgesOfVertex(v) {
			if ValidateSetupRoad(s, edge) == nil {
				s, err = e.Execute(s, PlaceRoad(id, edge))
				require.NoError(t, err)
				placed = true
				break
			}
		}
		require.True(t, placed, "no setup road next to %s", v)
	}
	return s
}

// mainState returns a game just past setup, at alice's trade-build step.
func mainState(t *testing.T, e *Engine) *GameState {
	t.Helper()
	s := autoSetup(t, e, newTestState(t))
	s.TurnPhase = TurnTradeBuild
	for _, p := range s.Players {
		p.Resources = Stockpile{}
	}
	return s
}

func ownSettlement(t *testing.T, s *GameState, playerID string) hexgrid.Vertex {
	t.Helper()
	for _, v := range hexgrid.AllVertices() {
		if b, ok := s.Buildings[v]; ok && b.PlayerID == playerID && b.Kind == Settlement {
			return v
		}
	}
	t.Fatalf("%s has no settlement", playerID)
	return hexgrid.Vertex{}
}

func firstRoadSpot(t *testing.T, s *GameState, playerID string) hexgrid.Edge {
	t.Helper()
	for _, e := range hexgrid.AllEdges() {
		if ValidateRoad(s, playerID, e) == nil {
			return e
		}
	}
	t.Fatalf("%s has no road spot", playerID)
	return hexgrid.Edge{}
}

func requireRule(t *testing.T, err error, rule error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, IsRuleViolation(err), "want rule violation, got %v", err)
	require.ErrorIs(t, err, rule)
}

// settlementRoute lays up to two roads for playerID, without cost, until a
// main-phase settlement spot opens up. It returns the extended state and the
// spot, or a nil spot if none is reachable.
func settlementRoute(t *testing.T, s *GameState, playerID string) (*GameState, *hexgrid.Vertex) {
	t.Helper()
	var search func(s *GameState, depth int) (*GameState, *hexgrid.Vertex)
	search = func(s *GameState, depth int) (*GameState, *hexgrid.Vertex) {
		for _, v := range hexgrid.AllVertices() {
			if ValidateSettlement(s, playerID, v, false) == nil {
				return s, &v
			}
		}
		if depth == 0 {
			return s, nil
		}
		for _, e := range hexgrid.AllEdges() {
			if ValidateRoad(s, playerID, e) != nil {
				continue
			}
			next := s.Clone()
			next.Roads[e] = Road{Edge: e, PlayerID: playerID}
			if got, v := search(next, depth-1); v != nil {
				return got, v
			}
		}
		return s, nil
	}
	return search(s, 2)
}
