// Package game contains the rules engine for hex-settlers.
//
// GameState is plain data. The only way to change it is Engine.Execute,
// which never mutates its input.
package game

import (
	"fmt"

	"hex-settlers/pkg/hexgrid"
	"hex-settlers/pkg/maps"
)

// Game limits and scoring.
const (
	MaxSettlements     = 5
	MaxCities          = 4
	MaxRoads           = 15
	VictoryPointsToWin = 10
	LongestRoadMin     = 5
	LargestArmyMin     = 3
	AwardPoints        = 2
	DiscardThreshold   = 7
)

// Phase is the stage of the whole game.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseSetupForward
	PhaseSetupReverse
	PhaseMain
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseLobby:        "LOBBY",
	PhaseSetupForward: "SETUP_FORWARD",
	PhaseSetupReverse: "SETUP_REVERSE",
	PhaseMain:         "MAIN",
	PhaseFinished:     "FINISHED",
}

// String returns the phase name.
func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for k, v := range phaseNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// IsSetup reports whether p is one of the two placement rounds.
func (p Phase) IsSetup() bool { return p == PhaseSetupForward || p == PhaseSetupReverse }

// TurnPhase is the step within a main-phase turn.
type TurnPhase int

const (
	TurnRollDice TurnPhase = iota
	TurnRobberMove
	TurnRobberSteal
	TurnDiscard
	TurnTradeBuild
	TurnDone
)

var turnPhaseNames = map[TurnPhase]string{
	TurnRollDice:    "ROLL_DICE",
	TurnRobberMove:  "ROBBER_MOVE",
	TurnRobberSteal: "ROBBER_STEAL",
	TurnDiscard:     "DISCARD",
	TurnTradeBuild:  "TRADE_BUILD",
	TurnDone:        "DONE",
}

// String returns the turn phase name.
func (t TurnPhase) String() string {
	if s, ok := turnPhaseNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// MarshalText encodes the turn phase by name.
func (t TurnPhase) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a turn phase name.
func (t *TurnPhase) UnmarshalText(b []byte) error {
	for k, v := range turnPhaseNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown turn phase %q", b)
}

// BuildingKind distinguishes settlements from cities.
type BuildingKind string

const (
	Settlement BuildingKind = "SETTLEMENT"
	City       BuildingKind = "CITY"
)

// Building is a settlement or city on a vertex.
type Building struct {
	Vertex   hexgrid.Vertex `json:"vertex"`
	PlayerID string         `json:"playerId"`
	Kind     BuildingKind   `json:"kind"`
}

// Road is a road on an edge.
type Road struct {
	Edge     hexgrid.Edge `json:"edge"`
	PlayerID string       `json:"playerId"`
}

// DiceRoll is the last roll of the two dice.
type DiceRoll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// Total returns the sum of both dice.
func (d DiceRoll) Total() int { return d.Die1 + d.Die2 }

// TradeOffer is the single pending peer trade. An empty ToPlayerID means
// the offer is open to every other player.
type TradeOffer struct {
	ID           string    `json:"id"`
	FromPlayerID string    `json:"fromPlayerId"`
	ToPlayerID   string    `json:"toPlayerId,omitempty"`
	Offering     Stockpile `json:"offering"`
	Requesting   Stockpile `json:"requesting"`
}

// CanRespond reports whether playerID may accept or decline as a responder.
func (t *TradeOffer) CanRespond(playerID string) bool {
	if playerID == t.FromPlayerID {
		return false
	}
	return t.ToPlayerID == "" || t.ToPlayerID == playerID
}

// SetupState tracks progress within one setup turn.
type SetupState struct {
	PlacedSettlement     bool            `json:"placedSettlement"`
	PlacedRoad           bool            `json:"placedRoad"`
	LastSettlementVertex *hexgrid.Vertex `json:"lastSettlementVertex,omitempty"`
}

// GameState represents the complete state of a game.
type GameState struct {
	ID                    string                      `json:"id"`
	Tiles                 []maps.Tile                 `json:"tiles"`
	Ports                 []maps.Port                 `json:"ports"`
	Buildings             map[hexgrid.Vertex]Building `json:"buildings"`
	Roads                 map[hexgrid.Edge]Road       `json:"roads"`
	Players               []*Player                   `json:"players"`
	CurrentPlayerIndex    int                         `json:"currentPlayerIndex"`
	Phase                 Phase                       `json:"phase"`
	TurnPhase             TurnPhase                   `json:"turnPhase"`
	RobberLocation        hexgrid.Hex                 `json:"robberLocation"`
	RobberReturnPhase     TurnPhase                   `json:"robberReturnPhase"`
	LongestRoadHolder     string                      `json:"longestRoadHolder,omitempty"`
	LargestArmyHolder     string                      `json:"largestArmyHolder,omitempty"`
	DevDeck               []maps.DevCard              `json:"devDeck"`
	DiceRoll              *DiceRoll                   `json:"diceRoll,omitempty"`
	PendingTrade          *TradeOffer                 `json:"pendingTrade,omitempty"`
	Setup                 SetupState                  `json:"setup"`
	DiscardingPlayerIDs   []string                    `json:"discardingPlayerIds"`
	RoadBuildingRoadsLeft int                         `json:"roadBuildingRoadsLeft"`
	TurnNumber            int                         `json:"turnNumber"`
	OffersThisTurn        int                         `json:"offersThisTurn"`
	Winner                string                      `json:"winner,omitempty"`
}

// NewGame seats players on a generated board, ready for setup.
func NewGame(id string, board *maps.Board, deck []maps.DevCard, players []*Player) (*GameState, error) {
	if len(players) < 2 || len(players) > len(AllColors()) {
		return nil, fmt.Errorf("need 2-%d players, got %d", len(AllColors()), len(players))
	}
	robber, ok := board.RobberTile()
	if !ok {
		return nil, fmt.Errorf("board has no robber tile")
	}
	s := &GameState{
		ID:                  id,
		Tiles:               append([]maps.Tile(nil), board.Tiles...),
		Ports:               append([]maps.Port(nil), board.Ports...),
		Buildings:           make(map[hexgrid.Vertex]Building),
		Roads:               make(map[hexgrid.Edge]Road),
		Players:             make([]*Player, len(players)),
		Phase:               PhaseSetupForward,
		TurnPhase:           TurnRollDice,
		RobberLocation:      robber,
		RobberReturnPhase:   TurnTradeBuild,
		DevDeck:             append([]maps.DevCard{}, deck...),
		DiscardingPlayerIDs: []string{},
	}
	for i, p := range players {
		s.Players[i] = p.Clone()
	}
	return s, nil
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Tiles = append([]maps.Tile(nil), s.Tiles...)
	c.Ports = append([]maps.Port(nil), s.Ports...)
	c.Buildings = make(map[hexgrid.Vertex]Building, len(s.Buildings))
	for k, v := range s.Buildings {
		c.Buildings[k] = v
	}
	c.Roads = make(map[hexgrid.Edge]Road, len(s.Roads))
	for k, v := range s.Roads {
		c.Roads[k] = v
	}
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	c.DevDeck = append([]maps.DevCard{}, s.DevDeck...)
	if s.DiceRoll != nil {
		d := *s.DiceRoll
		c.DiceRoll = &d
	}
	if s.PendingTrade != nil {
		t := *s.PendingTrade
		c.PendingTrade = &t
	}
	if s.Setup.LastSettlementVertex != nil {
		v := *s.Setup.LastSettlementVertex
		c.Setup.LastSettlementVertex = &v
	}
	c.DiscardingPlayerIDs = append([]string{}, s.DiscardingPlayerIDs...)
	return &c
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

// PlayerByID returns the seated player with id, or nil.
func (s *GameState) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat of id, or -1.
func (s *GameState) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// BuildingAt returns the building on v, if any.
func (s *GameState) BuildingAt(v hexgrid.Vertex) (Building, bool) {
	b, ok := s.Buildings[v]
	return b, ok
}

// RoadAt returns the road on e, if any.
func (s *GameState) RoadAt(e hexgrid.Edge) (Road, bool) {
	r, ok := s.Roads[e]
	return r, ok
}

// TileAt returns the tile at h, if any.
func (s *GameState) TileAt(h hexgrid.Hex) (maps.Tile, bool) {
	for _, t := range s.Tiles {
		if t.Coord == h {
			return t, true
		}
	}
	return maps.Tile{}, false
}

// PieceCount holds how many pieces a player has on the board.
type PieceCount struct {
	Settlements int
	Cities      int
	Roads       int
}

// CountPieces counts playerID's pieces on the board.
func (s *GameState) CountPieces(playerID string) PieceCount {
	var c PieceCount
	for _, b := range s.Buildings {
		if b.PlayerID != playerID {
			continue
		}
		if b.Kind == City {
			c.Cities++
		} else {
			c.Settlements++
		}
	}
	for _, r := range s.Roads {
		if r.PlayerID == playerID {
			c.Roads++
		}
	}
	return c
}

// IsDiscarding reports whether playerID still owes a discard.
func (s *GameState) IsDiscarding(playerID string) bool {
	for _, id := range s.DiscardingPlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// IsGameOver reports whether the game has finished.
func (s *GameState) IsGameOver() bool { return s.Phase == PhaseFinished }
