package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

const (
	leaderHelpPenalty = 3.0
	bankSurplusFactor = 0.3
	offerDiscount     = 0.7
	offerPenalty      = 0.5
	unknownPlayer     = -10.0
)

func scoreBankTrade(s *game.GameState, a game.Action, playerID string) float64 {
	p := s.PlayerByID(playerID)
	if p == nil {
		return unknownPlayer
	}
	return resourceNeed(p, a.Receiving) - resourceSurplus(p, a.Giving)*float64(a.GivingAmount)*bankSurplusFactor
}

// scoreTradeResponse rates accepting t. Declining scores the negation.
func scoreTradeResponse(s *game.GameState, t *game.TradeOffer, playerID string, d Difficulty) float64 {
	p := s.PlayerByID(playerID)
	if p == nil {
		return unknownPlayer
	}
	score := needOf(p, t.Offering) - valueOf(p, t.Requesting)
	if d.BlockingAware && len(s.Players) > 2 {
		if from := s.PlayerByID(t.FromPlayerID); from != nil && from.VictoryPoints >= leaderPoints(s) {
			score -= leaderHelpPenalty
		}
	}
	return score - d.TradeAcceptThreshold
}

func scoreOffer(s *game.GameState, a game.Action, playerID string) float64 {
	p := s.PlayerByID(playerID)
	if p == nil || a.Offering == nil || a.Requesting == nil {
		return unknownPlayer
	}
	return (needOf(p, *a.Requesting)-valueOf(p, *a.Offering))*offerDiscount - offerPenalty
}

func leaderPoints(s *game.GameState) int {
	best := 0
	for _, p := range s.Players {
		best = max(best, p.VictoryPoints)
	}
	return best
}

func needOf(p *game.Player, cards game.Stockpile) float64 {
	total := 0.0
	for _, r := range maps.AllResources() {
		if n := cards.Get(r); n > 0 {
			total += resourceNeed(p, r) * float64(n)
		}
	}
	return total
}

func valueOf(p *game.Player, cards game.Stockpile) float64 {
	total := 0.0
	for _, r := range maps.AllResources() {
		if n := cards.Get(r); n > 0 {
			total += resourceValue(p, r) * float64(n)
		}
	}
	return total
}

// resourceNeed rates one more card of r by the best build it helps: a
// city over a settlement over a development card. Builds that r alone would
// complete rate higher.
func resourceNeed(p *game.Player, r maps.Resource) float64 {
	held := p.Resources.Get(r)
	need := 0.0

	builds := []struct {
		cost             game.Stockpile
		complete, helper float64
	}{
		{game.CostCity, 4.0, 2.0},
		{game.CostSettlement, 3.0, 1.5},
		{game.CostDevCard, 1.0, 1.0},
	}
	for _, b := range builds {
		if b.cost.Get(r) <= held {
			continue
		}
		if othersCovered(p.Resources, b.cost, r) {
			need = max(need, b.complete)
		} else {
			need = max(need, b.helper)
		}
	}
	if held == 0 {
		need += 0.5
	}
	return need
}

func othersCovered(hand, cost game.Stockpile, except maps.Resource) bool {
	for _, r := range maps.AllResources() {
		if r != except && hand.Get(r) < cost.Get(r) {
			return false
		}
	}
	return true
}

// resourceSurplus is the cost of giving up a card of r; large piles are cheap.
func resourceSurplus(p *game.Player, r maps.Resource) float64 {
	switch n := p.Resources.Get(r); {
	case n >= 5:
		return 0.3
	case n >= 4:
		return 0.5
	case n >= 3:
		return 0.8
	case n >= 2:
		return 1.5
	}
	return 3.0
}

func resourceValue(p *game.Player, r maps.Resource) float64 {
	switch p.Resources.Get(r) {
	case 0:
		return 4.0
	case 1:
		return 3.0
	case 2:
		return 2.0
	case 3:
		return 1.0
	}
	return 0.5
}
