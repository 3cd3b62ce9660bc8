package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
)

const (
	robberSelfPenalty   = 10.0
	leaderBonusPerPoint = 0.5
	barrenRobberScore   = 0.1
)

// scoreRobber rates moving the robber onto h for playerID: hurt the
// opponents on it, the leader most, and never park it on your own tiles.
func scoreRobber(s *game.GameState, h hexgrid.Hex, playerID string) float64 {
	tile, ok := s.TileAt(h)
	if !ok {
		return 0
	}
	if tile.Number == 0 {
		return barrenRobberScore
	}

	maxVP := 0
	for _, p := range s.Players {
		maxVP = max(maxVP, p.VictoryPoints)
	}

	opponents, self := 0.0, 0.0
	for _, v := range hexgrid.VerticesOfHex(h) {
		b, ok := s.Buildings[v]
		if !ok {
			continue
		}
		weight := 1.0
		if b.Kind == game.City {
			weight = 2.0
		}
		if b.PlayerID == playerID {
			self += weight
			continue
		}
		leader := 0.0
		if owner := s.PlayerByID(b.PlayerID); owner != nil && owner.VictoryPoints >= maxVP && len(s.Players) > 2 {
			leader = float64(owner.VictoryPoints-2) * leaderBonusPerPoint
		}
		opponents += weight + leader
	}
	return pips(tile.Number)*opponents - self*robberSelfPenalty
}
