package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

// Resource weights for settlement spots. Early on roads and settlements
// matter most; later cities and cards do.
var (
	earlyWeights = map[maps.Resource]float64{
		maps.Brick:  1.2,
		maps.Lumber: 1.2,
		maps.Ore:    0.8,
		maps.Grain:  1.0,
		maps.Wool:   0.9,
	}
	lateWeights = map[maps.Resource]float64{
		maps.Brick:  0.7,
		maps.Lumber: 0.7,
		maps.Ore:    1.4,
		maps.Grain:  1.3,
		maps.Wool:   0.8,
	}
)

const (
	diversityBonus     = 1.5
	portBonusSpecific  = 1.5
	portBonusGeneric   = 0.8
	robberPenalty      = 2.0
	cityPointValue     = 3.0
	cityRobberPenalty  = 1.0
	lateGameCities     = 2
	lateGameVictoryPts = 6
)

// pips scales a number's roll chance so that 6 and 8 score about 1.4.
func pips(n int) float64 {
	return maps.DiceProbability(n) * 10
}

func isLateGame(s *game.GameState, playerID string) bool {
	p := s.PlayerByID(playerID)
	if p == nil {
		return false
	}
	return s.CountPieces(playerID).Cities >= lateGameCities || p.VictoryPoints >= lateGameVictoryPts
}

func tileIndex(s *game.GameState) map[hexgrid.Hex]maps.Tile {
	out := make(map[hexgrid.Hex]maps.Tile, len(s.Tiles))
	for _, t := range s.Tiles {
		out[t.Coord] = t
	}
	return out
}

// scoreVertex rates v as a settlement spot for playerID.
func scoreVertex(s *game.GameState, v hexgrid.Vertex, playerID string) float64 {
	tiles := tileIndex(s)
	weights := earlyWeights
	if isLateGame(s, playerID) {
		weights = lateWeights
	}

	score := 0.0
	kinds := make(map[maps.Resource]bool)
	for _, h := range hexgrid.HexesOfVertex(v) {
		t, ok := tiles[h]
		if !ok || t.Number == 0 {
			continue
		}
		r, ok := t.Terrain.Resource()
		if !ok {
			continue
		}
		score += pips(t.Number) * weights[r]
		kinds[r] = true
		if t.Robber {
			score -= robberPenalty
		}
	}
	if len(kinds) > 1 {
		score += diversityBonus * float64(len(kinds)-1)
	}
	return score + portBonus(s, v)
}

// scoreCityUpgrade rates turning the settlement at v into a city.
func scoreCityUpgrade(s *game.GameState, v hexgrid.Vertex) float64 {
	tiles := tileIndex(s)
	production := 0.0
	for _, h := range hexgrid.HexesOfVertex(v) {
		t, ok := tiles[h]
		if !ok || t.Number == 0 {
			continue
		}
		if _, ok := t.Terrain.Resource(); !ok {
			continue
		}
		production += pips(t.Number)
		if t.Robber {
			production -= cityRobberPenalty
		}
	}
	return production + cityPointValue
}

func portBonus(s *game.GameState, v hexgrid.Vertex) float64 {
	for _, port := range s.Ports {
		if port.Vertices[0] != v && port.Vertices[1] != v {
			continue
		}
		if port.Kind == maps.PortGeneric {
			return portBonusGeneric
		}
		return portBonusSpecific
	}
	return 0
}
