package maps

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"hex-settlers/pkg/hexgrid"
)

// TestGenerateValidBoards generates boards from several seeds and checks each
// against the standard distributions.
func TestGenerateValidBoards(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			gen := NewGenerator(GeneratorOptions{Rand: NewRand(seed)})
			board, err := gen.Generate()
			require.NoError(t, err)
			require.NoError(t, Validate(board))

			robber, ok := board.RobberTile()
			require.True(t, ok)
			for _, tile := range board.Tiles {
				if tile.Coord == robber {
					require.Equal(t, Desert, tile.Terrain)
					require.Zero(t, tile.Number)
				}
			}
		})
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a, err := NewGenerator(GeneratorOptions{Rand: NewRand(42)}).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(GeneratorOptions{Rand: NewRand(42)}).Generate()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestPortEdgesAreCoastal(t *testing.T) {
	edges := PortEdges()
	require.Len(t, edges, 9)
	seen := make(map[hexgrid.Edge]bool)
	for _, e := range edges {
		require.True(t, hexgrid.IsCoastalEdge(e), "port edge %v", e)
		require.False(t, seen[e])
		seen[e] = true
	}
}

func TestDevDeckComposition(t *testing.T) {
	deck := NewGenerator(GeneratorOptions{Rand: NewRand(7)}).DevDeck()
	require.Len(t, deck, 25)

	counts := make(map[DevCard]int)
	for _, c := range deck {
		counts[c]++
	}
	require.Equal(t, map[DevCard]int{
		Knight:       14,
		VictoryPoint: 5,
		RoadBuilding: 2,
		YearOfPlenty: 2,
		Monopoly:     2,
	}, counts)
}

func TestValidateRejectsAdjacentHotNumbers(t *testing.T) {
	board, err := NewGenerator(GeneratorOptions{Rand: NewRand(3)}).Generate()
	require.NoError(t, err)

	// Swap numbers so that a 6 sits next to an 8.
	index := make(map[hexgrid.Hex]int)
	for i, tile := range board.Tiles {
		index[tile.Coord] = i
	}
	var six int
	for i, tile := range board.Tiles {
		if tile.Number == 6 {
			six = i
			break
		}
	}
	var eight int
	for i, tile := range board.Tiles {
		if tile.Number == 8 {
			eight = i
			break
		}
	}
	for _, n := range hexgrid.Neighbors(board.Tiles[six].Coord) {
		j := index[n]
		if board.Tiles[j].Terrain == Desert || j == eight {
			continue
		}
		board.Tiles[j].Number, board.Tiles[eight].Number = board.Tiles[eight].Number, board.Tiles[j].Number
		break
	}
	require.Error(t, Validate(board))
}

func TestDiceProbability(t *testing.T) {
	require.InDelta(t, 6.0/36, DiceProbability(7), 1e-9)
	require.InDelta(t, 1.0/36, DiceProbability(2), 1e-9)
	require.InDelta(t, 1.0/36, DiceProbability(12), 1e-9)
	require.InDelta(t, 5.0/36, DiceProbability(8), 1e-9)
	require.Zero(t, DiceProbability(0))
	require.Zero(t, DiceProbability(13))
}

func TestTerrainResource(t *testing.T) {
	tests := []struct {
		terrain Terrain
		want    Resource
		ok      bool
	}{
		{Hills, Brick, true},
		{Forest, Lumber, true},
		{Mountains, Ore, true},
		{Fields, Grain, true},
		{Pasture, Wool, true},
		{Desert, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.terrain), func(t *testing.T) {
			got, ok := tt.terrain.Resource()
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
	require.Equal(t, 3, PortGeneric.Ratio())
	require.Equal(t, 2, PortOre.Ratio())
}
