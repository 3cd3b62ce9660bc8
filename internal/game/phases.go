package game

// requireTurnPhase rejects unless the game is in its main phase at step t.
func requireTurnPhase(s *GameState, t TurnPhase) error {
	if s.Phase != PhaseMain {
		return reject(ErrWrongPhase, "game is in %s", s.Phase)
	}
	if s.TurnPhase != t {
		return reject(ErrWrongPhase, "turn is in %s, need %s", s.TurnPhase, t)
	}
	return nil
}

// legalPhase reports whether the phase pair is one the engine can produce.
func legalPhase(p Phase, t TurnPhase) bool {
	switch p {
	case PhaseLobby, PhaseSetupForward, PhaseSetupReverse:
		return t == TurnRollDice
	case PhaseMain:
		switch t {
		case TurnRollDice, TurnRobberMove, TurnRobberSteal, TurnDiscard, TurnTradeBuild:
			return true
		}
		return false
	case PhaseFinished:
		return true
	}
	return false
}

func (e *Engine) endTurn(s *GameState, p *Player) error {
	if err := requireTurnPhase(s, TurnTradeBuild); err != nil {
		return err
	}
	if s.RoadBuildingRoadsLeft > 0 {
		return reject(ErrFreeRoadsPending, "%d free roads left", s.RoadBuildingRoadsLeft)
	}
	p.resetTurn()
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
	s.TurnPhase = TurnRollDice
	s.RobberReturnPhase = TurnTradeBuild
	s.DiceRoll = nil
	s.PendingTrade = nil
	s.OffersThisTurn = 0
	s.TurnNumber++
	return nil
}
