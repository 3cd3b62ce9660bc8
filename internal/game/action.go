package game

import (
	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

// ActionType identifies an Action variant.
type ActionType string

const (
	ActionRollDice         ActionType = "ROLL_DICE"
	ActionPlaceSettlement  ActionType = "PLACE_SETTLEMENT"
	ActionPlaceRoad        ActionType = "PLACE_ROAD"
	ActionPlaceCity        ActionType = "PLACE_CITY"
	ActionMoveRobber       ActionType = "MOVE_ROBBER"
	ActionStealResource    ActionType = "STEAL_RESOURCE"
	ActionDiscardResources ActionType = "DISCARD_RESOURCES"
	ActionOfferTrade       ActionType = "OFFER_TRADE"
	ActionAcceptTrade      ActionType = "ACCEPT_TRADE"
	ActionDeclineTrade     ActionType = "DECLINE_TRADE"
	ActionBankTrade        ActionType = "BANK_TRADE"
	ActionBuyDevCard       ActionType = "BUY_DEVELOPMENT_CARD"
	ActionPlayKnight       ActionType = "PLAY_KNIGHT"
	ActionPlayRoadBuilding ActionType = "PLAY_ROAD_BUILDING"
	ActionPlayYearOfPlenty ActionType = "PLAY_YEAR_OF_PLENTY"
	ActionPlayMonopoly     ActionType = "PLAY_MONOPOLY"
	ActionEndTurn          ActionType = "END_TURN"
)

// Action is a player intent. Type selects which payload fields apply.
type Action struct {
	Type     ActionType `json:"type"`
	PlayerID string     `json:"playerId"`

	Vertex *hexgrid.Vertex `json:"vertex,omitempty"` // settlement, city
	Edge   *hexgrid.Edge   `json:"edge,omitempty"`   // road
	Hex    *hexgrid.Hex    `json:"hex,omitempty"`    // robber

	TargetPlayerID string     `json:"targetPlayerId,omitempty"` // steal
	Resources      *Stockpile `json:"resources,omitempty"`      // discard

	Offering   *Stockpile `json:"offering,omitempty"`
	Requesting *Stockpile `json:"requesting,omitempty"`
	ToPlayerID string     `json:"toPlayerId,omitempty"`
	TradeID    string     `json:"tradeId,omitempty"`

	Giving       maps.Resource `json:"giving,omitempty"`
	Receiving    maps.Resource `json:"receiving,omitempty"`
	GivingAmount int           `json:"givingAmount,omitempty"`

	Resource1 maps.Resource `json:"resource1,omitempty"` // year of plenty
	Resource2 maps.Resource `json:"resource2,omitempty"`
	Resource  maps.Resource `json:"resource,omitempty"` // monopoly
}

// Validate checks that the payload required by Type is present.
func (a Action) Validate() error {
	if a.PlayerID == "" {
		return reject(ErrMalformedAction, "missing player id")
	}
	switch a.Type {
	case ActionRollDice, ActionAcceptTrade, ActionDeclineTrade, ActionBuyDevCard,
		ActionPlayKnight, ActionPlayRoadBuilding, ActionEndTurn:
		return nil
	case ActionPlaceSettlement, ActionPlaceCity:
		if a.Vertex == nil {
			return reject(ErrMalformedAction, "%s needs a vertex", a.Type)
		}
	case ActionPlaceRoad:
		if a.Edge == nil {
			return reject(ErrMalformedAction, "%s needs an edge", a.Type)
		}
	case ActionMoveRobber:
		if a.Hex == nil {
			return reject(ErrMalformedAction, "%s needs a hex", a.Type)
		}
	case ActionStealResource:
		if a.TargetPlayerID == "" {
			return reject(ErrMalformedAction, "%s needs a target player", a.Type)
		}
	case ActionDiscardResources:
		if a.Resources == nil || !a.Resources.Valid() {
			return reject(ErrMalformedAction, "%s needs non-negative resources", a.Type)
		}
	case ActionOfferTrade:
		if a.Offering == nil || a.Requesting == nil || !a.Offering.Valid() || !a.Requesting.Valid() {
			return reject(ErrMalformedAction, "%s needs non-negative offering and requesting", a.Type)
		}
	case ActionBankTrade:
		if !a.Giving.Valid() || !a.Receiving.Valid() {
			return reject(ErrMalformedAction, "%s needs giving and receiving resources", a.Type)
		}
	case ActionPlayYearOfPlenty:
		if !a.Resource1.Valid() || !a.Resource2.Valid() {
			return reject(ErrMalformedAction, "%s needs two resources", a.Type)
		}
	case ActionPlayMonopoly:
		if !a.Resource.Valid() {
			return reject(ErrMalformedAction, "%s needs a resource", a.Type)
		}
	default:
		return reject(ErrMalformedAction, "unknown action type %q", a.Type)
	}
	return nil
}

// RollDice creates a roll action.
func RollDice(playerID string) Action {
	return Action{Type: ActionRollDice, PlayerID: playerID}
}

// PlaceSettlement creates a settlement placement.
func PlaceSettlement(playerID string, v hexgrid.Vertex) Action {
	return Action{Type: ActionPlaceSettlement, PlayerID: playerID, Vertex: &v}
}

// PlaceRoad creates a road placement.
func PlaceRoad(playerID string, e hexgrid.Edge) Action {
	return Action{Type: ActionPlaceRoad, PlayerID: playerID, Edge: &e}
}

// PlaceCity creates a city upgrade.
func PlaceCity(playerID string, v hexgrid.Vertex) Action {
	return Action{Type: ActionPlaceCity, PlayerID: playerID, Vertex: &v}
}

// MoveRobber creates a robber move.
func MoveRobber(playerID string, h hexgrid.Hex) Action {
	return Action{Type: ActionMoveRobber, PlayerID: playerID, Hex: &h}
}

// StealResource creates a steal from target.
func StealResource(playerID, target string) Action {
	return Action{Type: ActionStealResource, PlayerID: playerID, TargetPlayerID: target}
}

// DiscardResources creates a discard.
func DiscardResources(playerID string, cards Stockpile) Action {
	return Action{Type: ActionDiscardResources, PlayerID: playerID, Resources: &cards}
}

// OfferTrade creates a peer offer. An empty to opens it to everyone.
func OfferTrade(playerID string, offering, requesting Stockpile, to string) Action {
	return Action{
		Type:       ActionOfferTrade,
		PlayerID:   playerID,
		Offering:   &offering,
		Requesting: &requesting,
		ToPlayerID: to,
	}
}

// AcceptTrade accepts the pending offer.
func AcceptTrade(playerID, tradeID string) Action {
	return Action{Type: ActionAcceptTrade, PlayerID: playerID, TradeID: tradeID}
}

// DeclineTrade declines or withdraws the pending offer.
func DeclineTrade(playerID, tradeID string) Action {
	return Action{Type: ActionDeclineTrade, PlayerID: playerID, TradeID: tradeID}
}

// BankTrade creates a bank or harbor trade.
func BankTrade(playerID string, giving, receiving maps.Resource, amount int) Action {
	return Action{
		Type:         ActionBankTrade,
		PlayerID:     playerID,
		Giving:       giving,
		Receiving:    receiving,
		GivingAmount: amount,
	}
}

// BuyDevCard creates a development card purchase.
func BuyDevCard(playerID string) Action {
	return Action{Type: ActionBuyDevCard, PlayerID: playerID}
}

// PlayKnight plays a knight.
func PlayKnight(playerID string) Action {
	return Action{Type: ActionPlayKnight, PlayerID: playerID}
}

// PlayRoadBuilding plays road building.
func PlayRoadBuilding(playerID string) Action {
	return Action{Type: ActionPlayRoadBuilding, PlayerID: playerID}
}

// PlayYearOfPlenty plays year of plenty for two resources.
func PlayYearOfPlenty(playerID string, r1, r2 maps.Resource) Action {
	return Action{Type: ActionPlayYearOfPlenty, PlayerID: playerID, Resource1: r1, Resource2: r2}
}

// PlayMonopoly plays monopoly on r.
func PlayMonopoly(playerID string, r maps.Resource) Action {
	return Action{Type: ActionPlayMonopoly, PlayerID: playerID, Resource: r}
}

// EndTurn ends the current turn.
func EndTurn(playerID string) Action {
	return Action{Type: ActionEndTurn, PlayerID: playerID}
}
