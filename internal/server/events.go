package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"hex-settlers/internal/database"
	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
	"hex-settlers/pkg/maps"
)

// deltaEvents lists the events that accompany the snapshot after action
// took prev to next.
func deltaEvents(prev, next *game.GameState, action game.Action) []*protocol.Message {
	var events []*protocol.Message
	add := func(t protocol.MessageType, payload any) {
		msg, err := protocol.NewMessage(t, payload)
		if err != nil {
			log.Error().Err(err).Str("type", string(t)).Msg("failed to encode event")
			return
		}
		events = append(events, msg)
	}

	switch action.Type {
	case game.ActionRollDice:
		if roll := next.DiceRoll; roll != nil {
			add(protocol.TypeDiceRolled, protocol.DiceRolledPayload{Die1: roll.Die1, Die2: roll.Die2, PlayerID: action.PlayerID})
		}
	case game.ActionPlaceSettlement, game.ActionPlaceCity:
		for _, b := range changedBuildings(prev, next) {
			add(protocol.TypeBuildingPlaced, protocol.BuildingPlacedPayload{Building: b})
		}
	case game.ActionPlaceRoad:
		for _, r := range newRoads(prev, next) {
			add(protocol.TypeRoadPlaced, protocol.RoadPlacedPayload{Road: r})
		}
	case game.ActionOfferTrade:
		if t := next.PendingTrade; t != nil {
			add(protocol.TypeTradeOffered, protocol.TradeOfferedPayload{Trade: *t})
		}
	}

	if next.CurrentPlayerIndex != prev.CurrentPlayerIndex && !next.IsGameOver() {
		if p := next.CurrentPlayer(); p != nil {
			add(protocol.TypeTurnChanged, protocol.TurnChangedPayload{PlayerID: p.ID, PlayerIndex: next.CurrentPlayerIndex})
		}
	}
	if next.IsGameOver() && !prev.IsGameOver() {
		if w := next.PlayerByID(next.Winner); w != nil {
			add(protocol.TypeGameOver, protocol.GameOverPayload{WinnerID: w.ID, WinnerName: w.DisplayName})
		}
	}
	return events
}

func changedBuildings(prev, next *game.GameState) []game.Building {
	var out []game.Building
	for v, b := range next.Buildings {
		if old, ok := prev.Buildings[v]; !ok || old != b {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vertex.String() < out[j].Vertex.String() })
	return out
}

func newRoads(prev, next *game.GameState) []game.Road {
	var out []game.Road
	for e, r := range next.Roads {
		if _, ok := prev.Roads[e]; !ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Edge.String() < out[j].Edge.String() })
	return out
}

// historyEntry is one line for the game log.
type historyEntry struct {
	eventType string
	message   string
}

// describe turns an accepted action into log lines.
func describe(prev, next *game.GameState, action game.Action) []historyEntry {
	name := action.PlayerID
	if p := next.PlayerByID(action.PlayerID); p != nil {
		name = p.DisplayName
	}
	line := func(t, format string, args ...any) historyEntry {
		return historyEntry{eventType: t, message: name + " " + fmt.Sprintf(format, args...)}
	}

	var out []historyEntry
	switch action.Type {
	case game.ActionRollDice:
		if next.DiceRoll != nil {
			out = append(out, line(database.EventDiceRolled, "rolled %d", next.DiceRoll.Total()))
		}
	case game.ActionPlaceSettlement:
		out = append(out, line(database.EventBuild, "built a settlement at %s", action.Vertex))
	case game.ActionPlaceCity:
		out = append(out, line(database.EventBuild, "upgraded to a city at %s", action.Vertex))
	case game.ActionPlaceRoad:
		out = append(out, line(database.EventBuild, "built a road at %s", action.Edge))
	case game.ActionMoveRobber:
		out = append(out, line(database.EventRobber, "moved the robber to %s", action.Hex))
	case game.ActionStealResource:
		target := action.TargetPlayerID
		if p := next.PlayerByID(target); p != nil {
			target = p.DisplayName
		}
		out = append(out, line(database.EventRobber, "stole a card from %s", target))
	case game.ActionDiscardResources:
		n := 0
		if action.Resources != nil {
			n = action.Resources.Total()
		}
		out = append(out, line(database.EventRobber, "discarded %d cards", n))
	case game.ActionOfferTrade:
		out = append(out, line(database.EventTrade, "offered %s for %s", bundle(action.Offering), bundle(action.Requesting)))
	case game.ActionAcceptTrade:
		out = append(out, line(database.EventTrade, "accepted the trade"))
	case game.ActionDeclineTrade:
		out = append(out, line(database.EventTrade, "declined the trade"))
	case game.ActionBankTrade:
		out = append(out, line(database.EventTrade, "traded %d %s with the bank for 1 %s", action.GivingAmount, action.Giving, action.Receiving))
	case game.ActionBuyDevCard:
		out = append(out, line(database.EventDevCard, "bought a development card"))
	case game.ActionPlayKnight:
		out = append(out, line(database.EventDevCard, "played a knight"))
	case game.ActionPlayRoadBuilding:
		out = append(out, line(database.EventDevCard, "played road building"))
	case game.ActionPlayYearOfPlenty:
		out = append(out, line(database.EventDevCard, "played year of plenty for %s and %s", action.Resource1, action.Resource2))
	case game.ActionPlayMonopoly:
		out = append(out, line(database.EventDevCard, "played monopoly on %s", action.Resource))
	case game.ActionEndTurn:
		out = append(out, line(database.EventTurn, "ended the turn"))
	}

	if next.IsGameOver() && !prev.IsGameOver() {
		if w := next.PlayerByID(next.Winner); w != nil {
			out = append(out, historyEntry{
				eventType: database.EventGameEnd,
				message:   fmt.Sprintf("%s won with %d victory points", w.DisplayName, w.VictoryPoints),
			})
		}
	}
	return out
}

// bundle formats a stockpile as "2 BRICK, 1 ORE".
func bundle(s *game.Stockpile) string {
	if s == nil {
		return "nothing"
	}
	var parts []string
	for _, r := range maps.AllResources() {
		if n := s.Get(r); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, r))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
