package maps

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"hex-settlers/pkg/hexgrid"
)

// Rand is the randomness the generator needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. A zero seed uses the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// GeneratorOptions contains settings for board generation.
type GeneratorOptions struct {
	Rand        Rand // nil uses a clock-seeded source
	MaxAttempts int  // reshuffles allowed to separate hot numbers; 0 means 10000
}

// ErrNoValidLayout is returned when no reshuffle separated the hot numbers.
var ErrNoValidLayout = errors.New("no valid number layout found")

var terrainPool = []Terrain{
	Fields, Fields, Fields, Fields,
	Pasture, Pasture, Pasture, Pasture,
	Forest, Forest, Forest, Forest,
	Hills, Hills, Hills,
	Mountains, Mountains, Mountains,
	Desert,
}

var numberPool = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

var portPool = []PortKind{
	PortGeneric, PortGeneric, PortGeneric, PortGeneric,
	PortBrick, PortLumber, PortOre, PortGrain, PortWool,
}

// Perimeter ring positions that carry a harbor.
var portHexIndices = []int{0, 1, 3, 4, 6, 7, 9, 10, 11}

var devDeckComposition = []struct {
	card  DevCard
	count int
}{
	{Knight, 14},
	{VictoryPoint, 5},
	{RoadBuilding, 2},
	{YearOfPlenty, 2},
	{Monopoly, 2},
}

// Generator handles board generation.
type Generator struct {
	options GeneratorOptions
	rng     Rand
}

// NewGenerator creates a new board generator.
func NewGenerator(opts GeneratorOptions) *Generator {
	g := &Generator{options: opts, rng: opts.Rand}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.options.MaxAttempts <= 0 {
		g.options.MaxAttempts = 10000
	}
	return g
}

// Generate shuffles terrain, numbers and ports onto the standard board.
func (g *Generator) Generate() (*Board, error) {
	tiles, err := g.generateTiles()
	if err != nil {
		return nil, err
	}
	return &Board{Tiles: tiles, Ports: g.generatePorts()}, nil
}

func (g *Generator) generateTiles() ([]Tile, error) {
	coords := hexgrid.AllHexes()
	terrain := append([]Terrain(nil), terrainPool...)
	numbers := append([]int(nil), numberPool...)

	for attempt := 0; attempt < g.options.MaxAttempts; attempt++ {
		g.rng.Shuffle(len(terrain), func(i, j int) { terrain[i], terrain[j] = terrain[j], terrain[i] })
		g.rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

		tiles := make([]Tile, len(coords))
		next := 0
		for i, c := range coords {
			tiles[i] = Tile{Coord: c, Terrain: terrain[i]}
			if terrain[i] == Desert {
				tiles[i].Robber = true
				continue
			}
			tiles[i].Number = numbers[next]
			next++
		}

		if hotNumbersSeparated(tiles) {
			return tiles, nil
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrNoValidLayout, g.options.MaxAttempts)
}

func isHot(n int) bool { return n == 6 || n == 8 }

func hotNumbersSeparated(tiles []Tile) bool {
	numbers := make(map[hexgrid.Hex]int, len(tiles))
	for _, t := range tiles {
		numbers[t.Coord] = t.Number
	}
	for _, t := range tiles {
		if !isHot(t.Number) {
			continue
		}
		for _, n := range hexgrid.Neighbors(t.Coord) {
			if isHot(numbers[n]) {
				return false
			}
		}
	}
	return true
}

// PortEdges returns the fixed coastal edges that carry harbors.
func PortEdges() []hexgrid.Edge {
	ring := hexgrid.PerimeterHexes()
	edges := make([]hexgrid.Edge, 0, len(portHexIndices))
	for _, idx := range portHexIndices {
		for _, e := range hexgrid.EdgesOfHex(ring[idx]) {
			if hexgrid.IsCoastalEdge(e) {
				edges = append(edges, e)
				break
			}
		}
	}
	return edges
}

func (g *Generator) generatePorts() []Port {
	kinds := append([]PortKind(nil), portPool...)
	g.rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	edges := PortEdges()
	ports := make([]Port, len(edges))
	for i, e := range edges {
		ports[i] = Port{Vertices: hexgrid.VerticesOfEdge(e), Kind: kinds[i]}
	}
	return ports
}

// DevDeck returns a shuffled 25-card development deck.
func (g *Generator) DevDeck() []DevCard {
	var deck []DevCard
	for _, c := range devDeckComposition {
		for i := 0; i < c.count; i++ {
			deck = append(deck, c.card)
		}
	}
	g.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
