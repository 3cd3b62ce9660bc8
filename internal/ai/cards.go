package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

const (
	largestArmyBonus  = 5.0
	knightBase        = 1.0
	roadBuildingBase  = 2.0
	monopolyBase      = 2.0
	yearOfPlentyBase  = 1.5
	monopolyPerCard   = 0.8
	robbedSelfBonus   = 2.0
	savedRoadsBonus   = 1.0
	nearArmyPerKnight = 1.5
)

func scoreBuyDevCard(s *game.GameState, playerID string) float64 {
	p := s.PlayerByID(playerID)
	if p == nil || len(s.DevDeck) == 0 {
		return 0
	}
	score := 1.0
	if needed := knightsToLargestArmy(s, p); needed <= 2 {
		score += float64(3-needed) * nearArmyPerKnight
	}
	// The same cards might build a city instead.
	if p.Resources.CanAfford(game.CostCity) {
		score--
	}
	return score
}

// knightsToLargestArmy estimates how many more knights p must draw to take
// or keep the largest army, counting knights already in hand.
func knightsToLargestArmy(s *game.GameState, p *game.Player) int {
	var target int
	switch holder := s.LargestArmyHolder; {
	case holder == p.ID:
		return 0
	case holder == "":
		target = game.LargestArmyMin
	default:
		h := s.PlayerByID(holder)
		if h == nil {
			target = game.LargestArmyMin
		} else {
			target = h.KnightsPlayed + 1
		}
	}
	inHand := 0
	for _, c := range p.DevCards {
		if c == maps.Knight {
			inHand++
		}
	}
	return max(0, target-p.KnightsPlayed-inHand)
}

func scorePlayKnight(s *game.GameState, playerID string) float64 {
	p := s.PlayerByID(playerID)
	if p == nil {
		return 0
	}
	score := knightBase

	after := p.KnightsPlayed + 1
	switch holder := s.LargestArmyHolder; {
	case holder == "" && after >= game.LargestArmyMin:
		score += largestArmyBonus
	case holder != "" && holder != playerID:
		if h := s.PlayerByID(holder); h != nil && after > h.KnightsPlayed {
			score += largestArmyBonus
		}
	}

	for _, v := range hexgrid.VerticesOfHex(s.RobberLocation) {
		if b, ok := s.Buildings[v]; ok && b.PlayerID == playerID {
			score += robbedSelfBonus
			break
		}
	}
	return score
}

func scorePlayRoadBuilding(s *game.GameState, playerID string) float64 {
	score := roadBuildingBase + savedRoadsBonus
	if game.LongestRoad(playerID, s.Roads, s.Buildings) >= longRoadThreshold && s.LongestRoadHolder != playerID {
		score += contestRoadBonus
	}
	return score
}

func scorePlayMonopoly(s *game.GameState, playerID string, r maps.Resource) float64 {
	held := 0
	for _, p := range s.Players {
		if p.ID != playerID {
			held += p.Resources.Get(r)
		}
	}
	return monopolyBase + float64(held)*monopolyPerCard
}

func scorePlayYearOfPlenty(s *game.GameState, playerID string, r1, r2 maps.Resource) float64 {
	p := s.PlayerByID(playerID)
	if p == nil {
		return 0
	}
	hand := p.Resources
	hand.Add(r1, 1)
	hand.Add(r2, 1)

	score := yearOfPlentyBase
	switch {
	case hand.CanAfford(game.CostCity):
		score += 3.0
	case hand.CanAfford(game.CostSettlement):
		score += 2.0
	}
	return score
}
