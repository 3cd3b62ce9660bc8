package server

import (
	"hex-settlers/internal/game"
	"hex-settlers/pkg/maps"
)

// FilterStateForPlayer returns a copy of state as viewerID may see it.
// Opponents' development cards are masked (the count stays visible), cards
// they bought this turn are dropped and the deck order is hidden. The
// input is not modified.
func FilterStateForPlayer(state *game.GameState, viewerID string) *game.GameState {
	view := state.Clone()
	for _, p := range view.Players {
		if p.ID == viewerID {
			continue
		}
		p.DevCards = masked(len(p.DevCards))
		p.NewDevCards = []maps.DevCard{}
	}
	view.DevDeck = masked(len(view.DevDeck))
	return view
}

func masked(n int) []maps.DevCard {
	out := make([]maps.DevCard, n)
	for i := range out {
		out[i] = maps.MaskedDevCard
	}
	return out
}
