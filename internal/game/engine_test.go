package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

func TestSetup_SnakeOrder(t *testing.T) {
	e := NewEngine(rolls())
	s := newTestState(t)

	var order []string
	for s.Phase.IsSetup() {
		id := s.CurrentPlayer().ID
		order = append(order, id)
		v := firstSetupVertex(t, s)
		next, err := e.Execute(s, PlaceSettlement(id, v))
		require.NoError(t, err)

		_, err = e.Execute(next, PlaceSettlement(id, firstSetupVertex(t, next)))
		requireRule(t, err, ErrAlreadyPlaced)

		var road hexgrid.Edge
		for _, edge := range hexgrid.EdgesOfVertex(v) {
			if ValidateSetupRoad(next, edge) == nil {
				road = edge
				break
			}
		}
		s, err = e.Execute(next, PlaceRoad(id, road))
		require.NoError(t, err)
	}

	require.Equal(t, []string{"alice", "bob", "bob", "alice"}, order)
	require.Equal(t, PhaseMain, s.Phase)
	require.Equal(t, TurnRollDice, s.TurnPhase)
	require.Equal(t, 0, s.CurrentPlayerIndex)
	for _, p := range s.Players {
		c := s.CountPieces(p.ID)
		require.Equal(t, 2, c.Settlements, p.ID)
		require.Equal(t, 2, c.Roads, p.ID)
		require.GreaterOrEqual(t, p.VictoryPoints, 2, p.ID)
	}
}

func TestSetup_SecondSettlementGrantsResources(t *testing.T) {
	e := NewEngine(rolls())
	s := newTestState(t)

	for s.Phase == PhaseSetupForward {
		id := s.CurrentPlayer().ID
		v := firstSetupVertex(t, s)
		var err error
		s, err = e.Execute(s, PlaceSettlement(id, v))
		require.NoError(t, err)
		require.True(t, s.PlayerByID(id).Resources.IsZero())
		for _, edge := range hexgrid.EdgesOfVertex(v) {
			if ValidateSetupRoad(s, edge) == nil {
				s, err = e.Execute(s, PlaceRoad(id, edge))
				require.NoError(t, err)
				break
			}
		}
	}

	id := s.CurrentPlayer().ID
	require.Equal(t, "bob", id)
	v := firstSetupVertex(t, s)
	want := 0
	for _, h := range hexgrid.HexesOfVertex(v) {
		tile, ok := s.TileAt(h)
		require.True(t, ok)
		if _, ok := tile.Terrain.Resource(); ok {
			want++
		}
	}
	next, err := e.Execute(s, PlaceSettlement(id, v))
	require.NoError(t, err)
	require.Equal(t, want, next.PlayerByID(id).Resources.Total())
}

func TestSetup_RoadMustTouchNewSettlement(t *testing.T) {
	e := NewEngine(rolls())
	s := newTestState(t)

	_, err := e.Execute(s, PlaceRoad("alice", hexgrid.AllEdges()[0]))
	requireRule(t, err, ErrWrongPhase)

	v := firstSetupVertex(t, s)
	s, err = e.Execute(s, PlaceSettlement("alice", v))
	require.NoError(t, err)

	for _, edge := range hexgrid.AllEdges() {
		ends := hexgrid.VerticesOfEdge(edge)
		if ends[0] != v && ends[1] != v {
			_, err = e.Execute(s, PlaceRoad("alice", edge))
			requireRule(t, err, ErrNotConnected)
			break
		}
	}

	_, err = e.Execute(s, RollDice("alice"))
	requireRule(t, err, ErrWrongPhase)
}

func TestSeven_DiscardThenRobber(t *testing.T) {
	e := NewEngine(rolls(7))
	s := mainState(t, e)
	s.TurnPhase = TurnRollDice
	s.PlayerByID("alice").Resources = Stockpile{Brick: 2, Lumber: 2, Ore: 2, Wool: 2}
	s.PlayerByID("bob").Resources = Stockpile{Grain: 3}

	s, err := e.Execute(s, RollDice("alice"))
	require.NoError(t, err)
	require.Equal(t, 7, s.DiceRoll.Total())
	require.Equal(t, TurnDiscard, s.TurnPhase)
	require.Equal(t, []string{"alice"}, s.DiscardingPlayerIDs)

	_, err = e.Execute(s, DiscardResources("alice", Stockpile{Brick: 2}))
	requireRule(t, err, ErrInvalidDiscard)
	_, err = e.Execute(s, DiscardResources("bob", Stockpile{Grain: 1}))
	requireRule(t, err, ErrInvalidDiscard)
	_, err = e.Execute(s, MoveRobber("alice", hexgrid.Hex{}))
	requireRule(t, err, ErrWrongPhase)

	s, err = e.Execute(s, DiscardResources("alice", Stockpile{Brick: 2, Lumber: 2}))
	require.NoError(t, err)
	require.Equal(t, TurnRobberMove, s.TurnPhase)
	require.Empty(t, s.DiscardingPlayerIDs)
	require.Equal(t, 4, s.PlayerByID("alice").Resources.Total())
}

func TestSeven_NoDiscardGoesStraightToRobber(t *testing.T) {
	e := NewEngine(rolls(7))
	s := mainState(t, e)
	s.TurnPhase = TurnRollDice
	s.PlayerByID("alice").Resources = Stockpile{Brick: 7}

	s, err := e.Execute(s, RollDice("alice"))
	require.NoError(t, err)
	require.Equal(t, TurnRobberMove, s.TurnPhase)

	_, err = e.Execute(s, MoveRobber("alice", s.RobberLocation))
	requireRule(t, err, ErrInvalidLocation)

	var dest hexgrid.Hex
	for _, h := range hexgrid.AllHexes() {
		if h != s.RobberLocation {
			dest = h
			break
		}
	}
	s, err = e.Execute(s, MoveRobber("alice", dest))
	require.NoError(t, err)
	require.Equal(t, dest, s.RobberLocation)
	tile, _ := s.TileAt(dest)
	require.True(t, tile.Robber)
	if s.TurnPhase == TurnRobberSteal {
		s, err = e.Execute(s, StealResource("alice", StealTargets(s, dest, "alice")[0]))
		require.NoError(t, err)
	}
	require.Equal(t, TurnTradeBuild, s.TurnPhase)
}

func TestRoll_Production(t *testing.T) {
	e := NewEngine(nil)
	s := mainState(t, e)
	s.TurnPhase = TurnRollDice

	// Pick a number that pays alice and script it.
	total := 0
	var res maps.Resource
	for v, b := range s.Buildings {
		if b.PlayerID != "alice" || total != 0 {
			continue
		}
		for _, h := range hexgrid.HexesOfVertex(v) {
			tile, _ := s.TileAt(h)
			if r, ok := tile.Terrain.Resource(); ok && h != s.RobberLocation {
				total, res = tile.Number, r
				break
			}
		}
	}
	require.NotZero(t, total)
	e = NewEngine(rolls(total))

	next, err := e.Execute(s, RollDice("alice"))
	require.NoError(t, err)
	require.Equal(t, TurnTradeBuild, next.TurnPhase)
	require.GreaterOrEqual(t, next.PlayerByID("alice").Resources.Get(res), 1)
}

func TestCityUpgrade(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	alice := s.PlayerByID("alice")
	alice.Resources = Stockpile{Grain: 2, Ore: 3}
	before := alice.VictoryPoints
	v := ownSettlement(t, s, "alice")

	next, err := e.Execute(s, PlaceCity("alice", v))
	require.NoError(t, err)
	got := next.PlayerByID("alice")
	require.Equal(t, 0, got.Resources.Grain)
	require.Equal(t, 0, got.Resources.Ore)
	require.Equal(t, before+1, got.VictoryPoints)
	require.Equal(t, City, next.Buildings[v].Kind)

	got.Resources = Stockpile{Grain: 2, Ore: 3}
	_, err = e.Execute(next, PlaceCity("alice", v))
	requireRule(t, err, ErrNotYourSettlement)

	_, err = e.Execute(s, PlaceCity("alice", ownSettlement(t, s, "bob")))
	requireRule(t, err, ErrNotYourSettlement)
}

func TestBuild_SettlementNeedsRoadAndResources(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)

	alice := s.PlayerByID("alice")
	alice.Resources = CostSettlement
	s, spot := settlementRoute(t, s, "alice")
	if spot == nil {
		t.Skip("seeded layout leaves no settlement spot two roads out")
	}

	poor := s.Clone()
	poor.PlayerByID("alice").Resources = Stockpile{}
	_, err := e.Execute(poor, PlaceSettlement("alice", *spot))
	requireRule(t, err, ErrInsufficientResources)

	next, err := e.Execute(s, PlaceSettlement("alice", *spot))
	require.NoError(t, err)
	require.Equal(t, 3, next.CountPieces("alice").Settlements)
	require.True(t, next.PlayerByID("alice").Resources.IsZero())
	require.Equal(t, s.PlayerByID("alice").VictoryPoints+1, next.PlayerByID("alice").VictoryPoints)

	_, err = e.Execute(s, PlaceSettlement("alice", ownSettlement(t, s, "bob")))
	requireRule(t, err, ErrOccupied)
}

func TestBuild_RoadRules(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)

	edge := firstRoadSpot(t, s, "alice")
	_, err := e.Execute(s, PlaceRoad("alice", edge))
	requireRule(t, err, ErrInsufficientResources)

	s.PlayerByID("alice").Resources = CostRoad
	for e2, r := range s.Roads {
		if r.PlayerID == "bob" {
			_, err = e.Execute(s, PlaceRoad("alice", e2))
			requireRule(t, err, ErrOccupied)
			break
		}
	}
	for _, e2 := range hexgrid.AllEdges() {
		if _, taken := s.Roads[e2]; !taken && ValidateRoad(s, "alice", e2) != nil {
			_, err = e.Execute(s, PlaceRoad("alice", e2))
			requireRule(t, err, ErrNotConnected)
			break
		}
	}

	next, err := e.Execute(s, PlaceRoad("alice", edge))
	require.NoError(t, err)
	require.True(t, next.PlayerByID("alice").Resources.IsZero())
	require.Equal(t, 3, next.CountPieces("alice").Roads)
}

func TestLargestArmyTransfer(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	alice, bob := s.PlayerByID("alice"), s.PlayerByID("bob")
	alice.KnightsPlayed = 3
	s.LargestArmyHolder = "alice"
	bob.KnightsPlayed = 3
	bob.DevCards = []maps.DevCard{maps.Knight}
	s.CurrentPlayerIndex = 1
	recomputeVictoryPoints(s)
	require.NoError(t, s.CheckInvariants())
	aliceVP, bobVP := alice.VictoryPoints, bob.VictoryPoints

	next, err := e.Execute(s, PlayKnight("bob"))
	require.NoError(t, err)
	require.Equal(t, "bob", next.LargestArmyHolder)
	require.Equal(t, aliceVP-AwardPoints, next.PlayerByID("alice").VictoryPoints)
	require.Equal(t, bobVP+AwardPoints, next.PlayerByID("bob").VictoryPoints)
	require.Equal(t, 4, next.PlayerByID("bob").KnightsPlayed)
	require.Equal(t, TurnRobberMove, next.TurnPhase)
}

func TestLargestArmyTieKeepsHolder(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	s.PlayerByID("alice").KnightsPlayed = 3
	s.LargestArmyHolder = "alice"
	bob := s.PlayerByID("bob")
	bob.KnightsPlayed = 2
	bob.DevCards = []maps.DevCard{maps.Knight}
	s.CurrentPlayerIndex = 1
	recomputeVictoryPoints(s)

	next, err := e.Execute(s, PlayKnight("bob"))
	require.NoError(t, err)
	require.Equal(t, "alice", next.LargestArmyHolder)
}

func TestVictory(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	alice := s.PlayerByID("alice")
	for i := 0; i < 7; i++ {
		alice.DevCards = append(alice.DevCards, maps.VictoryPoint)
	}
	recomputeVictoryPoints(s)
	require.Equal(t, 9, alice.VictoryPoints)
	alice.Resources = CostCity

	next, err := e.Execute(s, PlaceCity("alice", ownSettlement(t, s, "alice")))
	require.NoError(t, err)
	require.Equal(t, PhaseFinished, next.Phase)
	require.Equal(t, "alice", next.Winner)
	require.True(t, next.IsGameOver())

	_, err = e.Execute(next, EndTurn("alice"))
	requireRule(t, err, ErrGameOver)
	_, err = e.Execute(next, DiscardResources("bob", Stockpile{}))
	requireRule(t, err, ErrGameOver)
}

func TestVictoryByDrawingPointCard(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	alice := s.PlayerByID("alice")
	for i := 0; i < 7; i++ {
		alice.DevCards = append(alice.DevCards, maps.VictoryPoint)
	}
	recomputeVictoryPoints(s)
	alice.Resources = CostDevCard
	s.DevDeck = []maps.DevCard{maps.VictoryPoint, maps.Knight}

	next, err := e.Execute(s, BuyDevCard("alice"))
	require.NoError(t, err)
	require.Equal(t, 10, next.PlayerByID("alice").VictoryPoints)
	require.Equal(t, PhaseFinished, next.Phase)
}

func TestRejectionLeavesStateUntouched(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	s.PlayerByID("alice").Resources = Stockpile{Grain: 1}
	snapshot := s.Clone()

	_, err := e.Execute(s, PlaceCity("alice", ownSettlement(t, s, "alice")))
	requireRule(t, err, ErrInsufficientResources)
	_, err = e.Execute(s, EndTurn("bob"))
	requireRule(t, err, ErrNotYourTurn)
	_, err = e.Execute(s, BankTrade("alice", maps.Grain, maps.Ore, 1))
	requireRule(t, err, ErrInvalidTrade)
	require.Equal(t, snapshot, s)
}

func TestActorValidation(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)

	_, err := e.Execute(s, EndTurn("mallory"))
	require.True(t, IsCorruptState(err))
	require.ErrorIs(t, err, ErrUnknownPlayer)
	require.False(t, IsRuleViolation(err))

	_, err = e.Execute(s, Action{Type: ActionPlaceCity, PlayerID: "alice"})
	requireRule(t, err, ErrMalformedAction)

	lobby := s.Clone()
	lobby.Phase = PhaseLobby
	_, err = e.Execute(lobby, RollDice("alice"))
	requireRule(t, err, ErrGameNotStarted)
}

func TestEndTurn(t *testing.T) {
	e := NewEngine(rolls())
	s := mainState(t, e)
	alice := s.PlayerByID("alice")
	alice.NewDevCards = []maps.DevCard{maps.Monopoly}
	alice.PlayedDevCardThisTurn = true
	s.DiceRoll = &DiceRoll{Die1: 2, Die2: 3}

	next, err := e.Execute(s, EndTurn("alice"))
	require.NoError(t, err)
	require.Equal(t, 1, next.CurrentPlayerIndex)
	require.Equal(t, TurnRollDice, next.TurnPhase)
	require.Nil(t, next.DiceRoll)
	got := next.PlayerByID("alice")
	require.Equal(t, []maps.DevCard{maps.Monopoly}, got.DevCards)
	require.Empty(t, got.NewDevCards)
	require.False(t, got.PlayedDevCardThisTurn)

	_, err = e.Execute(next, EndTurn("bob"))
	requireRule(t, err, ErrWrongPhase)
}
