package game

import "hex-settlers/pkg/hexgrid"

// LongestRoad returns the length of playerID's longest simple road path.
// A vertex holding another player's building ends a path; the player's own
// buildings do not. The search is iterative with a per-path edge bitmask.
func LongestRoad(playerID string, roads map[hexgrid.Edge]Road, buildings map[hexgrid.Vertex]Building) int {
	var own []hexgrid.Edge
	for e, r := range roads {
		if r.PlayerID == playerID {
			own = append(own, e)
		}
	}
	if len(own) == 0 {
		return 0
	}

	// Edge index -> bit; MaxRoads fits comfortably in 64 bits.
	incident := make(map[hexgrid.Vertex][]int)
	for i, e := range own {
		for _, v := range hexgrid.VerticesOfEdge(e) {
			incident[v] = append(incident[v], i)
		}
	}

	blocked := func(v hexgrid.Vertex) bool {
		b, ok := buildings[v]
		return ok && b.PlayerID != playerID
	}

	type frame struct {
		at     hexgrid.Vertex
		used   uint64
		length int
	}

	longest := 0
	stack := make([]frame, 0, len(own)*2)
	for start := range incident {
		stack = append(stack[:0], frame{at: start})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.length > longest {
				longest = f.length
			}
			// Never leave through an opponent's vertex, except as the root.
			if f.length > 0 && blocked(f.at) {
				continue
			}
			for _, i := range incident[f.at] {
				bit := uint64(1) << uint(i)
				if f.used&bit != 0 {
					continue
				}
				stack = append(stack, frame{
					at:     hexgrid.OtherEnd(own[i], f.at),
					used:   f.used | bit,
					length: f.length + 1,
				})
			}
		}
	}
	return longest
}
