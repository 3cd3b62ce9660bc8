package ai

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// Strategy picks the next action for a seat.
type Strategy interface {
	ChooseAction(s *game.GameState, playerID string) (game.Action, error)
}

// NoiseSource draws standard normal values. *rand.Rand satisfies it.
type NoiseSource interface {
	NormFloat64() float64
}

// sharedNoise draws from the package-level source, which is safe for
// concurrent use.
type sharedNoise struct{}

func (sharedNoise) NormFloat64() float64 { return rand.NormFloat64() }

const (
	endTurnScore         = -0.5
	stealPerCard         = 1.0
	mainSettlementBonus  = 5.0
	cityBonus            = 6.0
	freeRoadBonus        = 1.0
	discardSurplusWeight = 0.1
	discardKeptKindBonus = 0.5
)

// HeuristicStrategy scores every legal action with the evaluators and plays
// the best one, perturbed by difficulty-scaled noise.
type HeuristicStrategy struct {
	difficulty Difficulty
	noise      NoiseSource
}

// NewHeuristicStrategy creates a strategy. A nil noise source uses the shared
// package-level generator.
func NewHeuristicStrategy(d Difficulty, noise NoiseSource) *HeuristicStrategy {
	if noise == nil {
		noise = sharedNoise{}
	}
	return &HeuristicStrategy{difficulty: d, noise: noise}
}

// Difficulty returns the strategy's tuning.
func (h *HeuristicStrategy) Difficulty() Difficulty { return h.difficulty }

// ChooseAction returns the best-scoring legal action. With nothing legal it
// falls back to ending the turn.
func (h *HeuristicStrategy) ChooseAction(s *game.GameState, playerID string) (game.Action, error) {
	if s.PlayerByID(playerID) == nil {
		return game.Action{}, fmt.Errorf("ai: unknown player %q", playerID)
	}
	candidates := LegalActions(s, playerID)
	switch len(candidates) {
	case 0:
		return game.EndTurn(playerID), nil
	case 1:
		return candidates[0], nil
	}

	best, bestScore := 0, math.Inf(-1)
	for i, a := range candidates {
		score := h.scoreAction(s, playerID, a)
		if r := h.difficulty.Randomness; r > 0 {
			score += h.noise.NormFloat64() * r * (math.Abs(score) + 1)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return candidates[best], nil
}

func (h *HeuristicStrategy) scoreAction(s *game.GameState, playerID string, a game.Action) float64 {
	switch a.Type {
	case game.ActionPlaceSettlement:
		score := scoreVertex(s, *a.Vertex, playerID)
		if s.Phase == game.PhaseMain {
			score += mainSettlementBonus
		}
		return score
	case game.ActionPlaceCity:
		return scoreCityUpgrade(s, *a.Vertex) + cityBonus
	case game.ActionPlaceRoad:
		score := scoreRoad(s, *a.Edge, playerID, h.difficulty)
		if s.Phase == game.PhaseMain && s.RoadBuildingRoadsLeft > 0 {
			score += freeRoadBonus
		}
		return score
	case game.ActionMoveRobber:
		return scoreRobber(s, *a.Hex, playerID)
	case game.ActionStealResource:
		if t := s.PlayerByID(a.TargetPlayerID); t != nil {
			return float64(t.Resources.Total()) * stealPerCard
		}
		return 0
	case game.ActionDiscardResources:
		return scoreDiscard(s, playerID, *a.Resources)
	case game.ActionBankTrade:
		return scoreBankTrade(s, a, playerID)
	case game.ActionOfferTrade:
		return scoreOffer(s, a, playerID)
	case game.ActionAcceptTrade:
		if s.PendingTrade == nil {
			return 0
		}
		return scoreTradeResponse(s, s.PendingTrade, playerID, h.difficulty)
	case game.ActionDeclineTrade:
		if s.PendingTrade == nil || s.PendingTrade.FromPlayerID == playerID {
			return 0
		}
		return -scoreTradeResponse(s, s.PendingTrade, playerID, h.difficulty)
	case game.ActionBuyDevCard:
		return scoreBuyDevCard(s, playerID)
	case game.ActionPlayKnight:
		return scorePlayKnight(s, playerID)
	case game.ActionPlayRoadBuilding:
		return scorePlayRoadBuilding(s, playerID)
	case game.ActionPlayYearOfPlenty:
		return scorePlayYearOfPlenty(s, playerID, a.Resource1, a.Resource2)
	case game.ActionPlayMonopoly:
		return scorePlayMonopoly(s, playerID, a.Resource)
	case game.ActionRollDice:
		return 0
	case game.ActionEndTurn:
		return endTurnScore
	}
	return 0
}

// scoreDiscard prefers giving up cards from large piles and keeping as many
// kinds in hand as possible.
func scoreDiscard(s *game.GameState, playerID string, cards game.Stockpile) float64 {
	p := s.PlayerByID(playerID)
	if p == nil {
		return 0
	}
	score := 0.0
	kept := p.Resources.Minus(cards)
	for _, r := range maps.AllResources() {
		if n := cards.Get(r); n > 0 {
			score += float64(p.Resources.Get(r)-n) * discardSurplusWeight
		}
	}
	return score + float64(kept.Kinds())*discardKeptKindBonus
}
