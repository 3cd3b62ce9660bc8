package game

// advanceSetup moves the snake draft on once a seat has placed its
// settlement and road: forward through every seat, then back again, and
// into the first main turn for seat 0.
func advanceSetup(s *GameState) {
	s.Setup = SetupState{}
	last := len(s.Players) - 1

	switch s.Phase {
	case PhaseSetupForward:
		if s.CurrentPlayerIndex < last {
			s.CurrentPlayerIndex++
			return
		}
		// The last seat places twice in a row.
		s.Phase = PhaseSetupReverse
	case PhaseSetupReverse:
		if s.CurrentPlayerIndex > 0 {
			s.CurrentPlayerIndex--
			return
		}
		s.Phase = PhaseMain
		s.TurnPhase = TurnRollDice
		s.CurrentPlayerIndex = 0
		s.TurnNumber = 1
	}
}

// setupAllows reports whether t may be sent during the placement rounds.
func setupAllows(t ActionType) bool {
	return t == ActionPlaceSettlement || t == ActionPlaceRoad
}
