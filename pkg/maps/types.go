// Package maps generates and validates hex-settlers boards.
package maps

import "hex-settlers/pkg/hexgrid"

// Resource is one of the five tradeable resource kinds.
type Resource string

const (
	Brick  Resource = "BRICK"
	Lumber Resource = "LUMBER"
	Ore    Resource = "ORE"
	Grain  Resource = "GRAIN"
	Wool   Resource = "WOOL"
)

// AllResources lists resource kinds in canonical order.
func AllResources() []Resource {
	return []Resource{Brick, Lumber, Ore, Grain, Wool}
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	switch r {
	case Brick, Lumber, Ore, Grain, Wool:
		return true
	default:
		return false
	}
}

// Terrain is the land type of a tile.
type Terrain string

const (
	Hills     Terrain = "HILLS"
	Forest    Terrain = "FOREST"
	Mountains Terrain = "MOUNTAINS"
	Fields    Terrain = "FIELDS"
	Pasture   Terrain = "PASTURE"
	Desert    Terrain = "DESERT"
)

// Resource returns what the terrain produces. Desert produces nothing.
func (t Terrain) Resource() (Resource, bool) {
	switch t {
	case Hills:
		return Brick, true
	case Forest:
		return Lumber, true
	case Mountains:
		return Ore, true
	case Fields:
		return Grain, true
	case Pasture:
		return Wool, true
	default:
		return "", false
	}
}

// Tile is one board hex. Number is 0 when the tile has no dice token.
type Tile struct {
	Coord   hexgrid.Hex `json:"coord"`
	Terrain Terrain     `json:"terrain"`
	Number  int         `json:"number,omitempty"`
	Robber  bool        `json:"robber,omitempty"`
}

// PortKind is the trade a harbor offers.
type PortKind string

const (
	PortGeneric PortKind = "GENERIC_3_1"
	PortBrick   PortKind = "BRICK_2_1"
	PortLumber  PortKind = "LUMBER_2_1"
	PortOre     PortKind = "ORE_2_1"
	PortGrain   PortKind = "GRAIN_2_1"
	PortWool    PortKind = "WOOL_2_1"
)

// Resource returns the resource a 2:1 port accepts.
func (k PortKind) Resource() (Resource, bool) {
	switch k {
	case PortBrick:
		return Brick, true
	case PortLumber:
		return Lumber, true
	case PortOre:
		return Ore, true
	case PortGrain:
		return Grain, true
	case PortWool:
		return Wool, true
	default:
		return "", false
	}
}

// Ratio is how many cards the port takes for one.
func (k PortKind) Ratio() int {
	if k == PortGeneric {
		return 3
	}
	return 2
}

// Port is a harbor on a coastal edge, usable from either endpoint.
type Port struct {
	Vertices [2]hexgrid.Vertex `json:"vertices"`
	Kind     PortKind          `json:"kind"`
}

// DevCard is a development card kind.
type DevCard string

const (
	Knight        DevCard = "KNIGHT"
	VictoryPoint  DevCard = "VICTORY_POINT"
	RoadBuilding  DevCard = "ROAD_BUILDING"
	YearOfPlenty  DevCard = "YEAR_OF_PLENTY"
	Monopoly      DevCard = "MONOPOLY"
	MaskedDevCard DevCard = "HIDDEN"
)

// Board is a generated tile and port layout.
type Board struct {
	Tiles []Tile `json:"tiles"`
	Ports []Port `json:"ports"`
}

// RobberTile returns the coordinate of the tile holding the robber.
func (b *Board) RobberTile() (hexgrid.Hex, bool) {
	for _, t := range b.Tiles {
		if t.Robber {
			return t.Coord, true
		}
	}
	return hexgrid.Hex{}, false
}

// DiceProbability returns the chance of rolling n with two dice.
func DiceProbability(n int) float64 {
	if n < 2 || n > 12 {
		return 0
	}
	d := n - 7
	if d < 0 {
		d = -d
	}
	return float64(6-d) / 36
}
