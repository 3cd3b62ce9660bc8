package game

import "hex-settlers/pkg/maps"

// Bank trade ratios.
const (
	RatioDefault  = 4
	RatioGeneric  = 3
	RatioSpecific = 2
)

// BankRatio returns how many of r playerID must give the bank for one card:
// 2 with a matching harbor, 3 with a generic harbor, 4 otherwise.
func BankRatio(s *GameState, playerID string, r maps.Resource) int {
	ratio := RatioDefault
	for _, port := range s.Ports {
		if !touchesPort(s, playerID, port) {
			continue
		}
		if pr, ok := port.Kind.Resource(); ok && pr == r {
			return RatioSpecific
		}
		if port.Kind == maps.PortGeneric {
			ratio = RatioGeneric
		}
	}
	return ratio
}

func touchesPort(s *GameState, playerID string, port maps.Port) bool {
	for _, v := range port.Vertices {
		if b, ok := s.Buildings[v]; ok && b.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (e *Engine) offerTrade(s *GameState, p *Player, a Action) error {
	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if s.PendingTrade != nil {
		return reject(ErrTradePending, "offer %s is still open", s.PendingTrade.ID)
	}
	offering, requesting := *a.Offering, *a.Requesting
	if offering.IsZero() || requesting.IsZero() {
		return reject(ErrInvalidTrade, "both sides of an offer need cards")
	}
	if a.ToPlayerID != "" {
		if a.ToPlayerID == p.ID || s.PlayerByID(a.ToPlayerID) == nil {
			return reject(ErrInvalidTarget, "cannot offer to %s", a.ToPlayerID)
		}
	}
	if !p.Resources.CanAfford(offering) {
		return reject(ErrInsufficientResources, "cannot offer cards you do not hold")
	}
	s.PendingTrade = &TradeOffer{
		ID:           e.newID(),
		FromPlayerID: p.ID,
		ToPlayerID:   a.ToPlayerID,
		Offering:     offering,
		Requesting:   requesting,
	}
	s.OffersThisTurn++
	return nil
}

func pendingTrade(s *GameState, tradeID string) (*TradeOffer, error) {
	t := s.PendingTrade
	if t == nil {
		return nil, reject(ErrNoTradePending, "")
	}
	if tradeID != "" && tradeID != t.ID {
		return nil, reject(ErrInvalidTrade, "offer %s is not pending", tradeID)
	}
	return t, nil
}

func (e *Engine) acceptTrade(s *GameState, p *Player, tradeID string) error {
	t, err := pendingTrade(s, tradeID)
	if err != nil {
		return err
	}
	if !t.CanRespond(p.ID) {
		return reject(ErrInvalidTrade, "offer %s is not open to %s", t.ID, p.ID)
	}
	from := s.PlayerByID(t.FromPlayerID)
	if from == nil {
		return corrupt("trade %s from unknown player %s", t.ID, t.FromPlayerID)
	}
	// Hands may have changed since the offer; recheck both sides.
	if !from.Resources.CanAfford(t.Offering) {
		return reject(ErrInsufficientResources, "offerer no longer holds the offered cards")
	}
	if !p.Resources.CanAfford(t.Requesting) {
		return reject(ErrInsufficientResources, "you do not hold the requested cards")
	}
	from.Resources = from.Resources.Minus(t.Offering).Plus(t.Requesting)
	p.Resources = p.Resources.Minus(t.Requesting).Plus(t.Offering)
	s.PendingTrade = nil
	return nil
}

func (e *Engine) declineTrade(s *GameState, p *Player, tradeID string) error {
	t, err := pendingTrade(s, tradeID)
	if err != nil {
		return err
	}
	if p.ID != t.FromPlayerID && !t.CanRespond(p.ID) {
		return reject(ErrInvalidTrade, "offer %s is not open to %s", t.ID, p.ID)
	}
	s.PendingTrade = nil
	return nil
}

func (e *Engine) bankTrade(s *GameState, p *Player, a Action) error {
	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if a.Giving == a.Receiving {
		return reject(ErrInvalidTrade, "cannot trade %s for itself", a.Giving)
	}
	ratio := BankRatio(s, p.ID, a.Giving)
	if a.GivingAmount != ratio {
		return reject(ErrInvalidTrade, "must give exactly %d %s", ratio, a.Giving)
	}
	if !p.Resources.Remove(a.Giving, ratio) {
		return reject(ErrInsufficientResources, "need %d %s", ratio, a.Giving)
	}
	p.Resources.Add(a.Receiving, 1)
	return nil
}
