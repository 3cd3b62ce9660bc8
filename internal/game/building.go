package game

import (
	"hex-settlers/pkg/hexgrid"
)

// ValidateSettlement checks location rules for a new settlement at v. Outside
// setup the vertex must also touch one of the player's roads. Costs and piece
// limits are checked by the engine.
func ValidateSettlement(s *GameState, playerID string, v hexgrid.Vertex, setup bool) error {
	if !hexgrid.IsBoardVertex(v) {
		return reject(ErrInvalidLocation, "vertex %s is off the board", v)
	}
	if _, ok := s.Buildings[v]; ok {
		return reject(ErrOccupied, "vertex %s", v)
	}
	for _, adj := range hexgrid.AdjacentVertices(v) {
		if _, ok := s.Buildings[adj]; ok {
			return reject(ErrDistanceRule, "vertex %s neighbours a building at %s", v, adj)
		}
	}
	if setup {
		return nil
	}
	for _, e := range hexgrid.EdgesOfVertex(v) {
		if r, ok := s.Roads[e]; ok && r.PlayerID == playerID {
			return nil
		}
	}
	return reject(ErrNotConnected, "vertex %s has none of your roads", v)
}

// ValidateRoad checks location rules for a new main-phase road on e. One of
// its endpoints must hold the player's building, or be free of opponent
// buildings and touch another of the player's roads.
func ValidateRoad(s *GameState, playerID string, e hexgrid.Edge) error {
	if !hexgrid.IsBoardEdge(e) {
		return reject(ErrInvalidLocation, "edge %s is off the board", e)
	}
	if _, ok := s.Roads[e]; ok {
		return reject(ErrOccupied, "edge %s", e)
	}
	for _, v := range hexgrid.VerticesOfEdge(e) {
		if b, ok := s.Buildings[v]; ok {
			if b.PlayerID == playerID {
				return nil
			}
			continue
		}
		for _, adj := range hexgrid.EdgesOfVertex(v) {
			if adj == e {
				continue
			}
			if r, ok := s.Roads[adj]; ok && r.PlayerID == playerID {
				return nil
			}
		}
	}
	return reject(ErrNotConnected, "edge %s", e)
}

// ValidateSetupRoad checks a setup road: it must touch the settlement placed
// earlier in the same setup turn.
func ValidateSetupRoad(s *GameState, e hexgrid.Edge) error {
	if !s.Setup.PlacedSettlement || s.Setup.LastSettlementVertex == nil {
		return reject(ErrWrongPhase, "place a settlement first")
	}
	if s.Setup.PlacedRoad {
		return reject(ErrAlreadyPlaced, "road already placed this setup turn")
	}
	if !hexgrid.IsBoardEdge(e) {
		return reject(ErrInvalidLocation, "edge %s is off the board", e)
	}
	if _, ok := s.Roads[e]; ok {
		return reject(ErrOccupied, "edge %s", e)
	}
	ends := hexgrid.VerticesOfEdge(e)
	last := *s.Setup.LastSettlementVertex
	if ends[0] != last && ends[1] != last {
		return reject(ErrNotConnected, "edge %s does not touch %s", e, last)
	}
	return nil
}

// ValidateCity checks that v holds one of playerID's settlements.
func ValidateCity(s *GameState, playerID string, v hexgrid.Vertex) error {
	b, ok := s.Buildings[v]
	if !ok || b.PlayerID != playerID {
		return reject(ErrNotYourSettlement, "vertex %s", v)
	}
	if b.Kind != Settlement {
		return reject(ErrNotYourSettlement, "vertex %s is already a city", v)
	}
	return nil
}

// HasRoadSpot reports whether playerID has at least one legal main-phase
// road edge.
func HasRoadSpot(s *GameState, playerID string) bool {
	for _, e := range hexgrid.AllEdges() {
		if ValidateRoad(s, playerID, e) == nil {
			return true
		}
	}
	return false
}

func (e *Engine) placeSettlement(s *GameState, p *Player, v hexgrid.Vertex) error {
	if s.Phase.IsSetup() {
		if s.Setup.PlacedSettlement {
			return reject(ErrAlreadyPlaced, "settlement already placed this setup turn")
		}
		if err := ValidateSettlement(s, p.ID, v, true); err != nil {
			return err
		}
		s.Buildings[v] = Building{Vertex: v, PlayerID: p.ID, Kind: Settlement}
		s.Setup.PlacedSettlement = true
		s.Setup.LastSettlementVertex = &v
		if s.Phase == PhaseSetupReverse {
			grantStartingResources(s, p, v)
		}
		return nil
	}

	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if s.CountPieces(p.ID).Settlements >= MaxSettlements {
		return reject(ErrPieceLimit, "at most %d settlements", MaxSettlements)
	}
	if !p.Resources.CanAfford(CostSettlement) {
		return reject(ErrInsufficientResources, "settlement needs %+v", p.Resources.Shortfall(CostSettlement))
	}
	if err := ValidateSettlement(s, p.ID, v, false); err != nil {
		return err
	}
	p.Resources.Spend(CostSettlement)
	s.Buildings[v] = Building{Vertex: v, PlayerID: p.ID, Kind: Settlement}
	return nil
}

func grantStartingResources(s *GameState, p *Player, v hexgrid.Vertex) {
	for _, h := range hexgrid.HexesOfVertex(v) {
		t, ok := s.TileAt(h)
		if !ok {
			continue
		}
		if r, ok := t.Terrain.Resource(); ok {
			p.Resources.Add(r, 1)
		}
	}
}

func (e *Engine) placeRoad(s *GameState, p *Player, edge hexgrid.Edge) error {
	if s.Phase.IsSetup() {
		if err := ValidateSetupRoad(s, edge); err != nil {
			return err
		}
		s.Roads[edge] = Road{Edge: edge, PlayerID: p.ID}
		s.Setup.PlacedRoad = true
		advanceSetup(s)
		return nil
	}

	if s.CountPieces(p.ID).Roads >= MaxRoads {
		return reject(ErrPieceLimit, "at most %d roads", MaxRoads)
	}

	if s.RoadBuildingRoadsLeft > 0 {
		if err := ValidateRoad(s, p.ID, edge); err != nil {
			return err
		}
		s.Roads[edge] = Road{Edge: edge, PlayerID: p.ID}
		s.RoadBuildingRoadsLeft--
		settleFreeRoads(s, p)
		return nil
	}

	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if !p.Resources.CanAfford(CostRoad) {
		return reject(ErrInsufficientResources, "road needs %+v", p.Resources.Shortfall(CostRoad))
	}
	if err := ValidateRoad(s, p.ID, edge); err != nil {
		return err
	}
	p.Resources.Spend(CostRoad)
	s.Roads[edge] = Road{Edge: edge, PlayerID: p.ID}
	return nil
}

// settleFreeRoads drops owed free roads the player can no longer place.
func settleFreeRoads(s *GameState, p *Player) {
	if s.RoadBuildingRoadsLeft == 0 {
		return
	}
	if left := MaxRoads - s.CountPieces(p.ID).Roads; left < s.RoadBuildingRoadsLeft {
		s.RoadBuildingRoadsLeft = left
	}
	if s.RoadBuildingRoadsLeft > 0 && !HasRoadSpot(s, p.ID) {
		s.RoadBuildingRoadsLeft = 0
	}
}

func (e *Engine) placeCity(s *GameState, p *Player, v hexgrid.Vertex) error {
	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if s.CountPieces(p.ID).Cities >= MaxCities {
		return reject(ErrPieceLimit, "at most %d cities", MaxCities)
	}
	if err := ValidateCity(s, p.ID, v); err != nil {
		return err
	}
	if !p.Resources.CanAfford(CostCity) {
		return reject(ErrInsufficientResources, "city needs %+v", p.Resources.Shortfall(CostCity))
	}
	p.Resources.Spend(CostCity)
	s.Buildings[v] = Building{Vertex: v, PlayerID: p.ID, Kind: City}
	return nil
}
