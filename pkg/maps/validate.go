package maps

import (
	"fmt"

	"hex-settlers/pkg/hexgrid"
)

// Validate checks that b is a legal standard board: every board hex has one
// tile, the terrain, number and port distributions match the standard sets,
// hot numbers are separated and the desert holds the robber.
func Validate(b *Board) error {
	if b == nil {
		return fmt.Errorf("nil board")
	}
	if len(b.Tiles) != len(hexgrid.AllHexes()) {
		return fmt.Errorf("board has %d tiles, want %d", len(b.Tiles), len(hexgrid.AllHexes()))
	}

	terrain := make(map[Terrain]int)
	numbers := make(map[int]int)
	seen := make(map[hexgrid.Hex]bool)
	robbers := 0
	for _, t := range b.Tiles {
		if !hexgrid.IsBoardHex(t.Coord) || seen[t.Coord] {
			return fmt.Errorf("tile at %v is off-board or duplicated", t.Coord)
		}
		seen[t.Coord] = true
		terrain[t.Terrain]++
		if t.Robber {
			robbers++
		}
		if t.Terrain == Desert {
			if t.Number != 0 || !t.Robber {
				return fmt.Errorf("desert at %v must hold the robber and no number", t.Coord)
			}
			continue
		}
		numbers[t.Number]++
	}
	if robbers != 1 {
		return fmt.Errorf("board has %d robbers, want 1", robbers)
	}
	if err := compareCounts(terrain, countOf(terrainPool), "terrain"); err != nil {
		return err
	}
	if err := compareCounts(numbers, countOf(numberPool), "number"); err != nil {
		return err
	}
	if !hotNumbersSeparated(b.Tiles) {
		return fmt.Errorf("adjacent 6/8 numbers")
	}

	if len(b.Ports) != len(portPool) {
		return fmt.Errorf("board has %d ports, want %d", len(b.Ports), len(portPool))
	}
	kinds := make(map[PortKind]int)
	for _, p := range b.Ports {
		kinds[p.Kind]++
		for _, v := range p.Vertices {
			if !hexgrid.IsBoardVertex(v) {
				return fmt.Errorf("port vertex %v is off-board", v)
			}
		}
	}
	return compareCounts(kinds, countOf(portPool), "port")
}

func countOf[T comparable](pool []T) map[T]int {
	out := make(map[T]int)
	for _, v := range pool {
		out[v]++
	}
	return out
}

func compareCounts[T comparable](got, want map[T]int, what string) error {
	for k, n := range want {
		if got[k] != n {
			return fmt.Errorf("%s %v appears %d times, want %d", what, k, got[k], n)
		}
	}
	for k, n := range got {
		if _, ok := want[k]; !ok && n > 0 {
			return fmt.Errorf("unexpected %s %v", what, k)
		}
	}
	return nil
}
