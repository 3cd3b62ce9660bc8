package game

import (
	"fmt"

	"github.com/google/uuid"

	"hex-settlers/pkg/maps"
)

// ErrUnknownPlayer is returned when an action names a player who is not
// seated. It unwraps to ErrCorruptState.
var ErrUnknownPlayer = fmt.Errorf("%w: unknown player", ErrCorruptState)

// Rand is the randomness the engine needs for dice and steals.
type Rand interface {
	Intn(n int) int
}

// Engine applies actions to game states. It holds no game state itself.
type Engine struct {
	rng   Rand
	newID func() string
}

// NewEngine creates an engine drawing dice and steals from rng. A nil rng
// uses a clock-seeded source.
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = maps.NewRand(0)
	}
	return &Engine{rng: rng, newID: uuid.NewString}
}

// Execute applies action to a copy of state and returns the copy. On any
// error state is untouched and the returned state is nil.
func (e *Engine) Execute(state *GameState, action Action) (*GameState, error) {
	if state == nil {
		return nil, corrupt("nil state")
	}
	if err := action.Validate(); err != nil {
		return nil, err
	}
	switch state.Phase {
	case PhaseLobby:
		return nil, reject(ErrGameNotStarted, "")
	case PhaseFinished:
		return nil, reject(ErrGameOver, "")
	}
	if state.PlayerByID(action.PlayerID) == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownPlayer, action.PlayerID)
	}
	if err := checkActor(state, action); err != nil {
		return nil, err
	}

	next := state.Clone()
	actor := next.PlayerByID(action.PlayerID)
	if err := e.dispatch(next, actor, action); err != nil {
		return nil, err
	}

	updateAwards(next)
	recomputeVictoryPoints(next)
	if next.Phase == PhaseMain && actor.VictoryPoints >= VictoryPointsToWin {
		next.Phase = PhaseFinished
		next.Winner = actor.ID
		next.PendingTrade = nil
	}
	if err := next.CheckInvariants(); err != nil {
		return nil, err
	}
	return next, nil
}

// checkActor enforces turn order. Discards and trade responses come from
// whoever they concern; everything else is the current player's.
func checkActor(s *GameState, a Action) error {
	switch a.Type {
	case ActionDiscardResources, ActionAcceptTrade, ActionDeclineTrade:
	default:
		if cur := s.CurrentPlayer(); cur == nil || cur.ID != a.PlayerID {
			return reject(ErrNotYourTurn, "waiting on seat %d", s.CurrentPlayerIndex)
		}
	}
	if s.Phase.IsSetup() && !setupAllows(a.Type) {
		return reject(ErrWrongPhase, "%s during %s", a.Type, s.Phase)
	}
	if s.RoadBuildingRoadsLeft > 0 && a.PlayerID == s.CurrentPlayer().ID {
		switch a.Type {
		case ActionPlaceRoad, ActionDeclineTrade:
		default:
			return reject(ErrFreeRoadsPending, "%d free roads left", s.RoadBuildingRoadsLeft)
		}
	}
	return nil
}

func (e *Engine) dispatch(s *GameState, p *Player, a Action) error {
	switch a.Type {
	case ActionRollDice:
		return e.rollDice(s)
	case ActionPlaceSettlement:
		return e.placeSettlement(s, p, *a.Vertex)
	case ActionPlaceRoad:
		return e.placeRoad(s, p, *a.Edge)
	case ActionPlaceCity:
		return e.placeCity(s, p, *a.Vertex)
	case ActionMoveRobber:
		return e.moveRobber(s, p, *a.Hex)
	case ActionStealResource:
		return e.stealResource(s, p, a.TargetPlayerID)
	case ActionDiscardResources:
		return e.discardResources(s, p, *a.Resources)
	case ActionOfferTrade:
		return e.offerTrade(s, p, a)
	case ActionAcceptTrade:
		return e.acceptTrade(s, p, a.TradeID)
	case ActionDeclineTrade:
		return e.declineTrade(s, p, a.TradeID)
	case ActionBankTrade:
		return e.bankTrade(s, p, a)
	case ActionBuyDevCard:
		return e.buyDevCard(s, p)
	case ActionPlayKnight:
		return e.playKnight(s, p)
	case ActionPlayRoadBuilding:
		return e.playRoadBuilding(s, p)
	case ActionPlayYearOfPlenty:
		return e.playYearOfPlenty(s, p, a.Resource1, a.Resource2)
	case ActionPlayMonopoly:
		return e.playMonopoly(s, p, a.Resource)
	case ActionEndTurn:
		return e.endTurn(s, p)
	}
	return reject(ErrMalformedAction, "unknown action type %q", a.Type)
}
