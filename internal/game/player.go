package game

import "hex-settlers/pkg/maps"

// PlayerColor represents a seat color.
type PlayerColor string

const (
	ColorRed    PlayerColor = "RED"
	ColorBlue   PlayerColor = "BLUE"
	ColorWhite  PlayerColor = "WHITE"
	ColorOrange PlayerColor = "ORANGE"
)

// AllColors returns seat colors in assignment order.
func AllColors() []PlayerColor {
	return []PlayerColor{ColorRed, ColorBlue, ColorWhite, ColorOrange}
}

// AIDifficulty selects the computer opponent's tuning.
type AIDifficulty string

const (
	DifficultyEasy   AIDifficulty = "EASY"
	DifficultyMedium AIDifficulty = "MEDIUM"
	DifficultyHard   AIDifficulty = "HARD"
)

// Player is a seated player.
type Player struct {
	ID                    string         `json:"id"`
	DisplayName           string         `json:"displayName"`
	Color                 PlayerColor    `json:"color"`
	Resources             Stockpile      `json:"resources"`
	DevCards              []maps.DevCard `json:"devCards"`
	NewDevCards           []maps.DevCard `json:"newDevCards"`
	KnightsPlayed         int            `json:"knightsPlayed"`
	VictoryPoints         int            `json:"victoryPoints"`
	PlayedDevCardThisTurn bool           `json:"playedDevCardThisTurn"`
	IsAI                  bool           `json:"isAi"`
	AIDifficulty          AIDifficulty   `json:"aiDifficulty,omitempty"`
}

// NewPlayer creates a human player.
func NewPlayer(id, name string, color PlayerColor) *Player {
	return &Player{
		ID:          id,
		DisplayName: name,
		Color:       color,
		DevCards:    []maps.DevCard{},
		NewDevCards: []maps.DevCard{},
	}
}

// NewAIPlayer creates a computer-controlled player.
func NewAIPlayer(id, name string, color PlayerColor, difficulty AIDifficulty) *Player {
	p := NewPlayer(id, name, color)
	p.IsAI = true
	p.AIDifficulty = difficulty
	return p
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	c := *p
	c.DevCards = append([]maps.DevCard{}, p.DevCards...)
	c.NewDevCards = append([]maps.DevCard{}, p.NewDevCards...)
	return &c
}

// HasPlayable reports whether the player holds card from a previous turn.
func (p *Player) HasPlayable(card maps.DevCard) bool {
	for _, c := range p.DevCards {
		if c == card {
			return true
		}
	}
	return false
}

// CanPlayDevCard reports whether card may be played now, ignoring phase.
func (p *Player) CanPlayDevCard(card maps.DevCard) bool {
	return !p.PlayedDevCardThisTurn && p.HasPlayable(card)
}

func (p *Player) removeDevCard(card maps.DevCard) bool {
	for i, c := range p.DevCards {
		if c == card {
			p.DevCards = append(p.DevCards[:i], p.DevCards[i+1:]...)
			return true
		}
	}
	return false
}

// victoryCardCount counts held victory-point cards, new or old.
func (p *Player) victoryCardCount() int {
	n := 0
	for _, c := range p.DevCards {
		if c == maps.VictoryPoint {
			n++
		}
	}
	for _, c := range p.NewDevCards {
		if c == maps.VictoryPoint {
			n++
		}
	}
	return n
}

// resetTurn clears per-turn flags and makes bought cards playable.
func (p *Player) resetTurn() {
	p.DevCards = append(p.DevCards, p.NewDevCards...)
	p.NewDevCards = []maps.DevCard{}
	p.PlayedDevCardThisTurn = false
}
