package game

import "hex-settlers/pkg/maps"

// DevCardPhaseAllowed reports whether card may be played during t. Knights
// may also be played before rolling.
func DevCardPhaseAllowed(card maps.DevCard, t TurnPhase) bool {
	if t == TurnTradeBuild {
		return true
	}
	return card == maps.Knight && t == TurnRollDice
}

func (e *Engine) buyDevCard(s *GameState, p *Player) error {
	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if !p.Resources.CanAfford(CostDevCard) {
		return reject(ErrInsufficientResources, "development card needs %+v", p.Resources.Shortfall(CostDevCard))
	}
	if len(s.DevDeck) == 0 {
		return reject(ErrDeckEmpty, "")
	}
	p.Resources.Spend(CostDevCard)
	card := s.DevDeck[0]
	s.DevDeck = s.DevDeck[1:]
	p.NewDevCards = append(p.NewDevCards, card)
	return nil
}

// playCard removes card from p's playable hand and marks the turn's play.
func playCard(s *GameState, p *Player, card maps.DevCard) error {
	if s.Phase != PhaseMain || !DevCardPhaseAllowed(card, s.TurnPhase) {
		return reject(ErrWrongPhase, "cannot play %s during %s", card, s.TurnPhase)
	}
	if p.PlayedDevCardThisTurn {
		return reject(ErrCardAlreadyPlayed, "")
	}
	if !p.removeDevCard(card) {
		return reject(ErrCardNotPlayable, "no playable %s", card)
	}
	p.PlayedDevCardThisTurn = true
	return nil
}

func (e *Engine) playKnight(s *GameState, p *Player) error {
	if err := playCard(s, p, maps.Knight); err != nil {
		return err
	}
	p.KnightsPlayed++
	s.RobberReturnPhase = s.TurnPhase
	s.TurnPhase = TurnRobberMove
	return nil
}

func (e *Engine) playRoadBuilding(s *GameState, p *Player) error {
	if err := playCard(s, p, maps.RoadBuilding); err != nil {
		return err
	}
	s.RoadBuildingRoadsLeft = 2
	settleFreeRoads(s, p)
	return nil
}

func (e *Engine) playYearOfPlenty(s *GameState, p *Player, r1, r2 maps.Resource) error {
	if err := playCard(s, p, maps.YearOfPlenty); err != nil {
		return err
	}
	p.Resources.Add(r1, 1)
	p.Resources.Add(r2, 1)
	return nil
}

func (e *Engine) playMonopoly(s *GameState, p *Player, r maps.Resource) error {
	if err := playCard(s, p, maps.Monopoly); err != nil {
		return err
	}
	taken := 0
	for _, other := range s.Players {
		if other.ID == p.ID {
			continue
		}
		taken += other.Resources.Get(r)
		other.Resources.Set(r, 0)
	}
	p.Resources.Add(r, taken)
	return nil
}
