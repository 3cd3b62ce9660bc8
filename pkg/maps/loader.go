package maps

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"

	"hex-settlers/pkg/hexgrid"
)

//go:embed data/*.json
var boardFiles embed.FS

// Registry holds all loaded preset boards by ID.
var Registry = make(map[string]*Preset)

// Preset is a fixed, named board layout.
type Preset struct {
	ID          string
	Name        string
	Description string
	Board       *Board
}

// RawPreset is the JSON shape of a preset file. Hexes and edges use the
// text forms of hexgrid coordinates.
type RawPreset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tiles       []struct {
		Hex     hexgrid.Hex `json:"hex"`
		Terrain Terrain     `json:"terrain"`
		Number  int         `json:"number"`
	} `json:"tiles"`
	Ports []struct {
		Edge hexgrid.Edge `json:"edge"`
		Kind PortKind     `json:"kind"`
	} `json:"ports"`
}

// LoadAll loads all embedded presets.
func LoadAll() error {
	entries, err := boardFiles.ReadDir("data")
	if err != nil {
		return fmt.Errorf("failed to read board directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		p, err := Load(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to load board %s: %w", entry.Name(), err)
		}

		Registry[p.ID] = p
	}

	return nil
}

// Load loads a single embedded preset by filename.
func Load(filename string) (*Preset, error) {
	data, err := boardFiles.ReadFile(path.Join("data", filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	return LoadFromJSON(data)
}

// LoadFromJSON parses and validates a preset (for custom boards).
func LoadFromJSON(data []byte) (*Preset, error) {
	var raw RawPreset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse board JSON: %w", err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("board ID is required")
	}

	b := &Board{}
	for _, t := range raw.Tiles {
		b.Tiles = append(b.Tiles, Tile{
			Coord:   t.Hex,
			Terrain: t.Terrain,
			Number:  t.Number,
			Robber:  t.Terrain == Desert,
		})
	}
	for _, p := range raw.Ports {
		if !hexgrid.IsCoastalEdge(p.Edge) {
			return nil, fmt.Errorf("invalid board: port edge %s is not coastal", p.Edge)
		}
		b.Ports = append(b.Ports, Port{Vertices: hexgrid.VerticesOfEdge(p.Edge), Kind: p.Kind})
	}
	if err := Validate(b); err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}

	name := raw.Name
	if name == "" {
		name = raw.ID
	}
	return &Preset{ID: raw.ID, Name: name, Description: raw.Description, Board: b}, nil
}

// Get retrieves a preset from the registry by ID.
func Get(id string) *Preset {
	return Registry[id]
}

// PresetInfo contains basic preset information for listing.
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// List returns all preset IDs and names, sorted by ID.
func List() []PresetInfo {
	infos := make([]PresetInfo, 0, len(Registry))
	for _, p := range Registry {
		infos = append(infos, PresetInfo{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Register adds a preset to the registry.
func Register(p *Preset) {
	if p != nil && p.ID != "" {
		Registry[p.ID] = p
	}
}

// Clone returns a copy of the preset board safe to hand to a game.
func (p *Preset) Clone() *Board {
	return &Board{
		Tiles: append([]Tile(nil), p.Board.Tiles...),
		Ports: append([]Port(nil), p.Board.Ports...),
	}
}
