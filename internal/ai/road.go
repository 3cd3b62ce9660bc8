package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
)

const (
	expansionWeight   = 2.0
	longestRoadWeight = 3.0
	blockingWeight    = 1.0

	claimRoadBonus    = 5.0
	contestRoadBonus  = 3.0
	longRoadThreshold = 3
)

// scoreRoad rates a road on e for playerID.
func scoreRoad(s *game.GameState, e hexgrid.Edge, playerID string, d Difficulty) float64 {
	score := expansionScore(s, e, playerID)*expansionWeight +
		longestRoadScore(s, e, playerID)*longestRoadWeight
	if d.BlockingAware {
		score += blockingScore(s, e, playerID) * blockingWeight
	}
	return score
}

// openSpot reports whether a settlement could stand on v as far as the
// distance rule goes.
func openSpot(s *game.GameState, v hexgrid.Vertex) bool {
	return game.ValidateSettlement(s, "", v, true) == nil
}

func expansionScore(s *game.GameState, e hexgrid.Edge, playerID string) float64 {
	best := 0.0
	for _, v := range hexgrid.VerticesOfEdge(e) {
		if openSpot(s, v) {
			best = max(best, scoreVertex(s, v, playerID))
		}
	}
	return best
}

func longestRoadScore(s *game.GameState, e hexgrid.Edge, playerID string) float64 {
	current := game.LongestRoad(playerID, s.Roads, s.Buildings)

	roads := make(map[hexgrid.Edge]game.Road, len(s.Roads)+1)
	for k, r := range s.Roads {
		roads[k] = r
	}
	roads[e] = game.Road{Edge: e, PlayerID: playerID}
	after := game.LongestRoad(playerID, roads, s.Buildings)

	gain := float64(after - current)
	switch {
	case current < game.LongestRoadMin && after >= game.LongestRoadMin:
		return claimRoadBonus + gain
	case after >= game.LongestRoadMin && s.LongestRoadHolder != playerID:
		return contestRoadBonus + gain
	}
	return gain
}

// blockingScore counts open spots at e's ends that an opponent's road
// already reaches.
func blockingScore(s *game.GameState, e hexgrid.Edge, playerID string) float64 {
	score := 0.0
	for _, v := range hexgrid.VerticesOfEdge(e) {
		if !openSpot(s, v) {
			continue
		}
		for _, adj := range hexgrid.EdgesOfVertex(v) {
			if r, ok := s.Roads[adj]; ok && r.PlayerID != playerID {
				score++
				break
			}
		}
	}
	return score
}
