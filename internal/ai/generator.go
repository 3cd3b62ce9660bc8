// Package ai plays hex-settlers seats: it enumerates legal actions, scores
// them with heuristic evaluators and drives the engine for computer players.
package ai

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

// Discard enumeration limits. Large hands have too many ways to discard half,
// so only the first combinations (largest piles first) are considered.
const (
	maxDiscardCombos   = 50
	maxDiscardsOffered = 10
)

// maxOffersPerTurn bounds the peer offers proposed to the strategy in one
// turn. The engine accepts more; this only narrows the candidate set.
const maxOffersPerTurn = 1

// LegalActions lists the actions playerID could send right now that the
// engine would accept. Discards are the exception: at most
// maxDiscardsOffered combinations are listed, not every one.
func LegalActions(s *game.GameState, playerID string) []game.Action {
	p := s.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	switch s.Phase {
	case game.PhaseSetupForward, game.PhaseSetupReverse:
		return setupActions(s, p)
	case game.PhaseMain:
		return mainActions(s, p)
	}
	return nil
}

func setupActions(s *game.GameState, p *game.Player) []game.Action {
	if s.CurrentPlayer().ID != p.ID {
		return nil
	}
	var out []game.Action
	if !s.Setup.PlacedSettlement {
		for _, v := range hexgrid.AllVertices() {
			if game.ValidateSettlement(s, p.ID, v, true) == nil {
				out = append(out, game.PlaceSettlement(p.ID, v))
			}
		}
		return out
	}
	if s.Setup.LastSettlementVertex == nil {
		return nil
	}
	for _, e := range hexgrid.EdgesOfVertex(*s.Setup.LastSettlementVertex) {
		if game.ValidateSetupRoad(s, e) == nil {
			out = append(out, game.PlaceRoad(p.ID, e))
		}
	}
	return out
}

func mainActions(s *game.GameState, p *game.Player) []game.Action {
	if s.TurnPhase == game.TurnDiscard && s.IsDiscarding(p.ID) {
		return discardActions(p)
	}
	if t := s.PendingTrade; t != nil && t.CanRespond(p.ID) {
		return tradeResponses(s, p, t)
	}
	if s.CurrentPlayer().ID != p.ID {
		return nil
	}

	switch s.TurnPhase {
	case game.TurnRollDice:
		out := []game.Action{game.RollDice(p.ID)}
		if p.CanPlayDevCard(maps.Knight) {
			out = append(out, game.PlayKnight(p.ID))
		}
		return out
	case game.TurnRobberMove:
		var out []game.Action
		for _, t := range s.Tiles {
			if t.Coord != s.RobberLocation {
				out = append(out, game.MoveRobber(p.ID, t.Coord))
			}
		}
		return out
	case game.TurnRobberSteal:
		var out []game.Action
		for _, id := range game.StealTargets(s, s.RobberLocation, p.ID) {
			out = append(out, game.StealResource(p.ID, id))
		}
		return out
	case game.TurnTradeBuild:
		if s.RoadBuildingRoadsLeft > 0 {
			return roadActions(s, p)
		}
		return tradeBuildActions(s, p)
	}
	return nil
}

func discardActions(p *game.Player) []game.Action {
	combos := DiscardCombinations(p.Resources, game.DiscardCount(p))
	if len(combos) > maxDiscardsOffered {
		combos = combos[:maxDiscardsOffered]
	}
	out := make([]game.Action, 0, len(combos))
	for _, c := range combos {
		out = append(out, game.DiscardResources(p.ID, c))
	}
	return out
}

// DiscardCombinations enumerates ways to give up exactly n cards from hand,
// taking as many of each kind as possible first. It stops after
// maxDiscardCombos results.
func DiscardCombinations(hand game.Stockpile, n int) []game.Stockpile {
	var kinds []maps.Resource
	for _, r := range maps.AllResources() {
		if hand.Get(r) > 0 {
			kinds = append(kinds, r)
		}
	}

	var out []game.Stockpile
	var walk func(i, left int, cur game.Stockpile)
	walk = func(i, left int, cur game.Stockpile) {
		if left == 0 {
			out = append(out, cur)
			return
		}
		if i >= len(kinds) || len(out) >= maxDiscardCombos {
			return
		}
		take := min(hand.Get(kinds[i]), left)
		for ; take >= 0; take-- {
			next := cur
			next.Add(kinds[i], take)
			walk(i+1, left-take, next)
			if len(out) >= maxDiscardCombos {
				return
			}
		}
	}
	walk(0, n, game.Stockpile{})
	return out
}

func tradeResponses(s *game.GameState, p *game.Player, t *game.TradeOffer) []game.Action {
	var out []game.Action
	from := s.PlayerByID(t.FromPlayerID)
	if from != nil && from.Resources.CanAfford(t.Offering) && p.Resources.CanAfford(t.Requesting) {
		out = append(out, game.AcceptTrade(p.ID, t.ID))
	}
	return append(out, game.DeclineTrade(p.ID, t.ID))
}

func roadActions(s *game.GameState, p *game.Player) []game.Action {
	if s.CountPieces(p.ID).Roads >= game.MaxRoads {
		return nil
	}
	var out []game.Action
	for _, e := range hexgrid.AllEdges() {
		if game.ValidateRoad(s, p.ID, e) == nil {
			out = append(out, game.PlaceRoad(p.ID, e))
		}
	}
	return out
}

func tradeBuildActions(s *game.GameState, p *game.Player) []game.Action {
	var out []game.Action
	pieces := s.CountPieces(p.ID)

	if p.Resources.CanAfford(game.CostSettlement) && pieces.Settlements < game.MaxSettlements {
		for _, v := range hexgrid.AllVertices() {
			if game.ValidateSettlement(s, p.ID, v, false) == nil {
				out = append(out, game.PlaceSettlement(p.ID, v))
			}
		}
	}
	if p.Resources.CanAfford(game.CostCity) && pieces.Cities < game.MaxCities {
		for _, v := range hexgrid.AllVertices() {
			if game.ValidateCity(s, p.ID, v) == nil {
				out = append(out, game.PlaceCity(p.ID, v))
			}
		}
	}
	if p.Resources.CanAfford(game.CostRoad) {
		out = append(out, roadActions(s, p)...)
	}
	if p.Resources.CanAfford(game.CostDevCard) && len(s.DevDeck) > 0 {
		out = append(out, game.BuyDevCard(p.ID))
	}
	out = append(out, cardPlays(s, p)...)
	out = append(out, bankTrades(s, p)...)
	out = append(out, offerCandidates(s, p)...)
	return append(out, game.EndTurn(p.ID))
}

func cardPlays(s *game.GameState, p *game.Player) []game.Action {
	var out []game.Action
	if p.CanPlayDevCard(maps.Knight) {
		out = append(out, game.PlayKnight(p.ID))
	}
	if p.CanPlayDevCard(maps.RoadBuilding) && s.CountPieces(p.ID).Roads < game.MaxRoads && game.HasRoadSpot(s, p.ID) {
		out = append(out, game.PlayRoadBuilding(p.ID))
	}
	all := maps.AllResources()
	if p.CanPlayDevCard(maps.YearOfPlenty) {
		for i, r1 := range all {
			for _, r2 := range all[i:] {
				out = append(out, game.PlayYearOfPlenty(p.ID, r1, r2))
			}
		}
	}
	if p.CanPlayDevCard(maps.Monopoly) {
		for _, r := range all {
			out = append(out, game.PlayMonopoly(p.ID, r))
		}
	}
	return out
}

func bankTrades(s *game.GameState, p *game.Player) []game.Action {
	var out []game.Action
	for _, giving := range maps.AllResources() {
		ratio := game.BankRatio(s, p.ID, giving)
		if p.Resources.Get(giving) < ratio {
			continue
		}
		for _, receiving := range maps.AllResources() {
			if receiving != giving {
				out = append(out, game.BankTrade(p.ID, giving, receiving, ratio))
			}
		}
	}
	return out
}

// offerCandidates proposes one-for-one offers, open to every seat, when a
// single missing card stands between the player and a build and the player
// has a spare card the build does not use.
func offerCandidates(s *game.GameState, p *game.Player) []game.Action {
	if s.PendingTrade != nil || s.OffersThisTurn >= maxOffersPerTurn {
		return nil
	}
	type pair struct{ give, want maps.Resource }
	seen := make(map[pair]bool)
	var out []game.Action
	for _, cost := range []game.Stockpile{game.CostCity, game.CostSettlement, game.CostDevCard} {
		short := p.Resources.Shortfall(cost)
		if short.Total() != 1 {
			continue
		}
		var want maps.Resource
		for _, r := range maps.AllResources() {
			if short.Get(r) > 0 {
				want = r
			}
		}
		spare := p.Resources.Minus(cost)
		for _, give := range maps.AllResources() {
			k := pair{give, want}
			if give == want || spare.Get(give) < 1 || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, game.OfferTrade(p.ID, game.Of(give, 1), game.Of(want, 1), ""))
		}
	}
	return out
}
