package game

// awardHolder decides a contested title. The holder keeps it while still
// qualified and not strictly beaten; otherwise it goes to the unique leader
// at or above threshold, or to nobody on a tie.
func awardHolder(holder string, scores map[string]int, order []*Player, threshold int) string {
	best, leaders := 0, []string(nil)
	for _, p := range order {
		n := scores[p.ID]
		switch {
		case n > best:
			best, leaders = n, []string{p.ID}
		case n == best && n > 0:
			leaders = append(leaders, p.ID)
		}
	}
	if holder != "" && scores[holder] >= threshold && scores[holder] == best {
		return holder
	}
	if best >= threshold && len(leaders) == 1 {
		return leaders[0]
	}
	return ""
}

// RoadLengths returns every player's longest road.
func RoadLengths(s *GameState) map[string]int {
	out := make(map[string]int, len(s.Players))
	for _, p := range s.Players {
		out[p.ID] = LongestRoad(p.ID, s.Roads, s.Buildings)
	}
	return out
}

func updateAwards(s *GameState) {
	s.LongestRoadHolder = awardHolder(s.LongestRoadHolder, RoadLengths(s), s.Players, LongestRoadMin)

	knights := make(map[string]int, len(s.Players))
	for _, p := range s.Players {
		knights[p.ID] = p.KnightsPlayed
	}
	s.LargestArmyHolder = awardHolder(s.LargestArmyHolder, knights, s.Players, LargestArmyMin)
}

// VictoryPoints recomputes p's score from the board, held VP cards and titles.
func VictoryPoints(s *GameState, p *Player) int {
	c := s.CountPieces(p.ID)
	vp := c.Settlements + 2*c.Cities + p.victoryCardCount()
	if s.LongestRoadHolder == p.ID {
		vp += AwardPoints
	}
	if s.LargestArmyHolder == p.ID {
		vp += AwardPoints
	}
	return vp
}

func recomputeVictoryPoints(s *GameState) {
	for _, p := range s.Players {
		p.VictoryPoints = VictoryPoints(s, p)
	}
}
