package game

import (
	"hex-settlers/pkg/hexgrid"
)

// CheckInvariants verifies the properties every accepted transition must
// preserve. A failure is an *InvariantError.
func (s *GameState) CheckInvariants() error {
	if len(s.Players) < 2 || len(s.Players) > len(AllColors()) {
		return corrupt("%d players seated", len(s.Players))
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return corrupt("current player index %d out of range", s.CurrentPlayerIndex)
	}
	if !legalPhase(s.Phase, s.TurnPhase) {
		return corrupt("illegal phase pair %s/%s", s.Phase, s.TurnPhase)
	}

	seated := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if seated[p.ID] {
			return corrupt("player %s seated twice", p.ID)
		}
		seated[p.ID] = true
		if !p.Resources.Valid() {
			return corrupt("player %s has negative resources %+v", p.ID, p.Resources)
		}
		c := s.CountPieces(p.ID)
		if c.Settlements > MaxSettlements || c.Cities > MaxCities || c.Roads > MaxRoads {
			return corrupt("player %s exceeds piece limits %+v", p.ID, c)
		}
	}

	for v, b := range s.Buildings {
		if v != b.Vertex || !hexgrid.IsBoardVertex(v) {
			return corrupt("building at bad vertex %s", v)
		}
		if !seated[b.PlayerID] {
			return corrupt("building at %s owned by unknown player %s", v, b.PlayerID)
		}
		for _, adj := range hexgrid.AdjacentVertices(v) {
			if _, ok := s.Buildings[adj]; ok {
				return corrupt("buildings at %s and %s break the distance rule", v, adj)
			}
		}
	}
	for e, r := range s.Roads {
		if e != r.Edge || !hexgrid.IsBoardEdge(e) {
			return corrupt("road at bad edge %s", e)
		}
		if !seated[r.PlayerID] {
			return corrupt("road at %s owned by unknown player %s", e, r.PlayerID)
		}
	}
	for _, p := range s.Players {
		if e, ok := disconnectedRoad(s, p.ID); ok {
			return corrupt("road %s of %s is not connected to their network", e, p.ID)
		}
	}

	for _, p := range s.Players {
		if want := VictoryPoints(s, p); p.VictoryPoints != want {
			return corrupt("player %s has %d victory points, board says %d", p.ID, p.VictoryPoints, want)
		}
	}
	for _, holder := range []string{s.LongestRoadHolder, s.LargestArmyHolder, s.Winner} {
		if holder != "" && !seated[holder] {
			return corrupt("title held by unknown player %s", holder)
		}
	}

	robbers := 0
	for _, t := range s.Tiles {
		if t.Robber {
			robbers++
			if t.Coord != s.RobberLocation {
				return corrupt("robber flag on %s but location is %s", t.Coord, s.RobberLocation)
			}
		}
	}
	if robbers != 1 {
		return corrupt("%d tiles hold the robber", robbers)
	}

	if (s.TurnPhase == TurnDiscard) != (len(s.DiscardingPlayerIDs) > 0) && s.Phase == PhaseMain {
		return corrupt("discard set %v does not match %s", s.DiscardingPlayerIDs, s.TurnPhase)
	}
	for _, id := range s.DiscardingPlayerIDs {
		if !seated[id] {
			return corrupt("unknown player %s owes a discard", id)
		}
	}
	if s.RoadBuildingRoadsLeft < 0 || s.RoadBuildingRoadsLeft > 2 {
		return corrupt("%d free roads owed", s.RoadBuildingRoadsLeft)
	}
	if t := s.PendingTrade; t != nil && !seated[t.FromPlayerID] {
		return corrupt("trade %s from unknown player %s", t.ID, t.FromPlayerID)
	}
	return nil
}

// disconnectedRoad finds a road of playerID that cannot be reached from any
// of their buildings along their own roads.
func disconnectedRoad(s *GameState, playerID string) (hexgrid.Edge, bool) {
	var open []hexgrid.Vertex
	for v, b := range s.Buildings {
		if b.PlayerID == playerID {
			open = append(open, v)
		}
	}
	seenVertex := make(map[hexgrid.Vertex]bool)
	reached := make(map[hexgrid.Edge]bool)
	for len(open) > 0 {
		v := open[len(open)-1]
		open = open[:len(open)-1]
		if seenVertex[v] {
			continue
		}
		seenVertex[v] = true
		for _, e := range hexgrid.EdgesOfVertex(v) {
			if r, ok := s.Roads[e]; ok && r.PlayerID == playerID && !reached[e] {
				reached[e] = true
				open = append(open, hexgrid.OtherEnd(e, v))
			}
		}
	}
	for e, r := range s.Roads {
		if r.PlayerID == playerID && !reached[e] {
			return e, true
		}
	}
	return hexgrid.Edge{}, false
}
