package game

import (
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

func (e *Engine) rollDice(s *GameState) error {
	if err := requireTurnPhase(s, TurnRollDice); err != nil {
		return err
	}
	roll := DiceRoll{Die1: e.rng.Intn(6) + 1, Die2: e.rng.Intn(6) + 1}
	s.DiceRoll = &roll

	if roll.Total() == 7 {
		s.RobberReturnPhase = TurnTradeBuild
		s.DiscardingPlayerIDs = s.DiscardingPlayerIDs[:0]
		for _, p := range s.Players {
			if p.Resources.Total() > DiscardThreshold {
				s.DiscardingPlayerIDs = append(s.DiscardingPlayerIDs, p.ID)
			}
		}
		if len(s.DiscardingPlayerIDs) > 0 {
			s.TurnPhase = TurnDiscard
		} else {
			s.TurnPhase = TurnRobberMove
		}
		return nil
	}

	produce(s, roll.Total())
	s.TurnPhase = TurnTradeBuild
	return nil
}

// produce pays out every unblocked tile numbered total: one card per
// settlement and two per city on its corners.
func produce(s *GameState, total int) {
	for _, t := range s.Tiles {
		if t.Number != total || t.Coord == s.RobberLocation {
			continue
		}
		r, ok := t.Terrain.Resource()
		if !ok {
			continue
		}
		for _, v := range hexgrid.VerticesOfHex(t.Coord) {
			b, ok := s.Buildings[v]
			if !ok {
				continue
			}
			p := s.PlayerByID(b.PlayerID)
			if p == nil {
				continue
			}
			if b.Kind == City {
				p.Resources.Add(r, 2)
			} else {
				p.Resources.Add(r, 1)
			}
		}
	}
}

// StealTargets lists the players, other than thief, with a building on hex
// and at least one resource card. Order follows seating.
func StealTargets(s *GameState, hex hexgrid.Hex, thief string) []string {
	touching := make(map[string]bool)
	for _, v := range hexgrid.VerticesOfHex(hex) {
		if b, ok := s.Buildings[v]; ok {
			touching[b.PlayerID] = true
		}
	}
	var out []string
	for _, p := range s.Players {
		if p.ID != thief && touching[p.ID] && p.Resources.Total() > 0 {
			out = append(out, p.ID)
		}
	}
	return out
}

func (e *Engine) moveRobber(s *GameState, p *Player, hex hexgrid.Hex) error {
	if err := requireTurnPhase(s, TurnRobberMove); err != nil {
		return err
	}
	if !hexgrid.IsBoardHex(hex) {
		return reject(ErrInvalidLocation, "hex %s is off the board", hex)
	}
	if hex == s.RobberLocation {
		return reject(ErrInvalidLocation, "robber must move off %s", hex)
	}
	for i := range s.Tiles {
		s.Tiles[i].Robber = s.Tiles[i].Coord == hex
	}
	s.RobberLocation = hex

	if len(StealTargets(s, hex, p.ID)) == 0 {
		finishRobber(s)
	} else {
		s.TurnPhase = TurnRobberSteal
	}
	return nil
}

func (e *Engine) stealResource(s *GameState, p *Player, targetID string) error {
	if err := requireTurnPhase(s, TurnRobberSteal); err != nil {
		return err
	}
	var target *Player
	for _, id := range StealTargets(s, s.RobberLocation, p.ID) {
		if id == targetID {
			target = s.PlayerByID(id)
		}
	}
	if target == nil {
		return reject(ErrInvalidTarget, "%s cannot be robbed here", targetID)
	}

	pick := e.rng.Intn(target.Resources.Total())
	for _, r := range maps.AllResources() {
		n := target.Resources.Get(r)
		if pick < n {
			target.Resources.Remove(r, 1)
			p.Resources.Add(r, 1)
			break
		}
		pick -= n
	}
	finishRobber(s)
	return nil
}

// finishRobber returns to the step the robber interrupted: rolling when a
// knight was played before the dice, otherwise trading and building.
func finishRobber(s *GameState) {
	s.TurnPhase = s.RobberReturnPhase
	s.RobberReturnPhase = TurnTradeBuild
}

// DiscardCount returns how many cards p must give up on a seven.
func DiscardCount(p *Player) int {
	return p.Resources.Total() / 2
}

func (e *Engine) discardResources(s *GameState, p *Player, cards Stockpile) error {
	if err := requireTurnPhase(s, TurnDiscard); err != nil {
		return err
	}
	if !s.IsDiscarding(p.ID) {
		return reject(ErrInvalidDiscard, "%s owes no discard", p.ID)
	}
	if want := DiscardCount(p); cards.Total() != want {
		return reject(ErrInvalidDiscard, "must discard exactly %d cards, got %d", want, cards.Total())
	}
	if !p.Resources.Spend(cards) {
		return reject(ErrInsufficientResources, "cannot discard cards you do not hold")
	}

	remaining := s.DiscardingPlayerIDs[:0]
	for _, id := range s.DiscardingPlayerIDs {
		if id != p.ID {
			remaining = append(remaining, id)
		}
	}
	s.DiscardingPlayerIDs = remaining
	if len(remaining) == 0 {
		s.TurnPhase = TurnRobberMove
	}
	return nil
}
