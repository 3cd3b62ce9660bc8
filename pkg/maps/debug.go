package maps

import (
	"fmt"
	"strings"

	"hex-settlers/pkg/hexgrid"
)

var terrainAbbrev = map[Terrain]string{
	Hills:     "Hi",
	Forest:    "Fo",
	Mountains: "Mo",
	Fields:    "Fi",
	Pasture:   "Pa",
	Desert:    "De",
}

// Debug returns a text rendering of the board: one line per hex row with
// terrain and number, the robber marked with *, then the harbors.
func (b *Board) Debug() string {
	var sb strings.Builder

	byCoord := make(map[hexgrid.Hex]Tile, len(b.Tiles))
	for _, t := range b.Tiles {
		byCoord[t.Coord] = t
	}

	sb.WriteString(fmt.Sprintf("Board: %d tiles, %d ports\n", len(b.Tiles), len(b.Ports)))
	for r := -hexgrid.Radius; r <= hexgrid.Radius; r++ {
		indent := r
		if indent < 0 {
			indent = -indent
		}
		sb.WriteString(strings.Repeat("   ", indent))
		for q := -hexgrid.Radius; q <= hexgrid.Radius; q++ {
			t, ok := byCoord[hexgrid.Hex{Q: q, R: r}]
			if !ok {
				continue
			}
			mark := " "
			if t.Robber {
				mark = "*"
			}
			sb.WriteString(fmt.Sprintf("%s%2d%s ", terrainAbbrev[t.Terrain], t.Number, mark))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nPorts:\n")
	for _, p := range b.Ports {
		sb.WriteString(fmt.Sprintf("  %-12s %s - %s\n", p.Kind, p.Vertices[0], p.Vertices[1]))
	}

	return sb.String()
}
