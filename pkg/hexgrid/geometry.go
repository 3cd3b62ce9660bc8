package hexgrid

// Radius is the ring count of the standard board around the center hex.
const Radius = 2

var directions = [6]Hex{
	{Q: 1, R: -1}, {Q: 1, R: 0}, {Q: 0, R: 1},
	{Q: -1, R: 1}, {Q: -1, R: 0}, {Q: 0, R: -1},
}

// Board-bounded sets, computed once at package init.
var (
	allHexes    = buildHexes()
	hexSet      = toSet(allHexes)
	allVertices = buildVertices()
	vertexSet   = toSet(allVertices)
	allEdges    = buildEdges()
	edgeSet     = toSet(allEdges)
)

func buildHexes() []Hex {
	var hexes []Hex
	for q := -Radius; q <= Radius; q++ {
		for r := -Radius; r <= Radius; r++ {
			if abs(q+r) <= Radius {
				hexes = append(hexes, Hex{Q: q, R: r})
			}
		}
	}
	return hexes
}

func buildVertices() []Vertex {
	seen := make(map[Vertex]struct{})
	var vertices []Vertex
	for _, h := range allHexes {
		for _, v := range VerticesOfHex(h) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	return vertices
}

func buildEdges() []Edge {
	seen := make(map[Edge]struct{})
	var edges []Edge
	for _, h := range allHexes {
		for _, e := range EdgesOfHex(h) {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

func toSet[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// AllHexes returns the 19 board hexes.
func AllHexes() []Hex { return append([]Hex(nil), allHexes...) }

// AllVertices returns the 54 board vertices.
func AllVertices() []Vertex { return append([]Vertex(nil), allVertices...) }

// AllEdges returns the 72 board edges.
func AllEdges() []Edge { return append([]Edge(nil), allEdges...) }

// IsBoardHex reports whether h is on the board.
func IsBoardHex(h Hex) bool {
	_, ok := hexSet[h]
	return ok
}

// IsBoardVertex reports whether v is a corner of some board hex.
func IsBoardVertex(v Vertex) bool {
	_, ok := vertexSet[v]
	return ok
}

// IsBoardEdge reports whether e is a side of some board hex.
func IsBoardEdge(e Edge) bool {
	_, ok := edgeSet[e]
	return ok
}

// Neighbors returns the on-board hexes sharing a side with h.
func Neighbors(h Hex) []Hex {
	out := make([]Hex, 0, 6)
	for _, d := range directions {
		n := Hex{Q: h.Q + d.Q, R: h.R + d.R}
		if IsBoardHex(n) {
			out = append(out, n)
		}
	}
	return out
}

// VerticesOfHex returns the six corners of h clockwise from the left corner.
func VerticesOfHex(h Hex) [6]Vertex {
	q, r := h.Q, h.R
	return [6]Vertex{
		{Q: q, R: r, Side: SideN},
		{Q: q - 1, R: r, Side: SideS},
		{Q: q + 1, R: r - 1, Side: SideN},
		{Q: q, R: r, Side: SideS},
		{Q: q + 1, R: r, Side: SideN},
		{Q: q - 1, R: r + 1, Side: SideS},
	}
}

// EdgesOfHex returns the six sides of h: the three it owns, then the three
// owned by its lower-left, left and upper neighbors.
func EdgesOfHex(h Hex) [6]Edge {
	q, r := h.Q, h.R
	return [6]Edge{
		{Q: q, R: r, Side: SideNE},
		{Q: q, R: r, Side: SideE},
		{Q: q, R: r, Side: SideSE},
		{Q: q - 1, R: r + 1, Side: SideNE},
		{Q: q - 1, R: r, Side: SideE},
		{Q: q, R: r - 1, Side: SideSE},
	}
}

// HexesOfVertex returns the 1-3 board hexes touching v.
func HexesOfVertex(v Vertex) []Hex {
	q, r := v.Q, v.R
	var candidates [3]Hex
	switch v.Side {
	case SideN:
		candidates = [3]Hex{{Q: q, R: r}, {Q: q - 1, R: r}, {Q: q - 1, R: r + 1}}
	case SideS:
		candidates = [3]Hex{{Q: q, R: r}, {Q: q + 1, R: r - 1}, {Q: q + 1, R: r}}
	default:
		return nil
	}
	return filterHexes(candidates[:])
}

// HexesOfEdge returns the 1-2 board hexes on either side of e.
func HexesOfEdge(e Edge) []Hex {
	q, r := e.Q, e.R
	var candidates [2]Hex
	switch e.Side {
	case SideNE:
		candidates = [2]Hex{{Q: q, R: r}, {Q: q + 1, R: r - 1}}
	case SideE:
		candidates = [2]Hex{{Q: q, R: r}, {Q: q + 1, R: r}}
	case SideSE:
		candidates = [2]Hex{{Q: q, R: r}, {Q: q, R: r + 1}}
	default:
		return nil
	}
	return filterHexes(candidates[:])
}

func filterHexes(candidates []Hex) []Hex {
	out := make([]Hex, 0, len(candidates))
	for _, h := range candidates {
		if IsBoardHex(h) {
			out = append(out, h)
		}
	}
	return out
}

// EdgesOfVertex returns the 2-3 board edges meeting at v.
func EdgesOfVertex(v Vertex) []Edge {
	q, r := v.Q, v.R
	var candidates [3]Edge
	switch v.Side {
	case SideN:
		candidates = [3]Edge{
			{Q: q - 1, R: r, Side: SideE},
			{Q: q - 1, R: r + 1, Side: SideNE},
			{Q: q - 1, R: r, Side: SideSE},
		}
	case SideS:
		candidates = [3]Edge{
			{Q: q, R: r, Side: SideNE},
			{Q: q, R: r, Side: SideE},
			{Q: q + 1, R: r - 1, Side: SideSE},
		}
	default:
		return nil
	}
	out := make([]Edge, 0, 3)
	for _, e := range candidates {
		if IsBoardEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// VerticesOfEdge returns the two endpoints of e.
func VerticesOfEdge(e Edge) [2]Vertex {
	q, r := e.Q, e.R
	switch e.Side {
	case SideNE:
		return [2]Vertex{{Q: q + 1, R: r - 1, Side: SideN}, {Q: q, R: r, Side: SideS}}
	case SideE:
		return [2]Vertex{{Q: q, R: r, Side: SideS}, {Q: q + 1, R: r, Side: SideN}}
	default:
		return [2]Vertex{{Q: q + 1, R: r, Side: SideN}, {Q: q - 1, R: r + 1, Side: SideS}}
	}
}

// OtherEnd returns the endpoint of e that is not v.
func OtherEnd(e Edge, v Vertex) Vertex {
	ends := VerticesOfEdge(e)
	if ends[0] == v {
		return ends[1]
	}
	return ends[0]
}

// AdjacentVertices returns the 2-3 vertices one board edge away from v.
// They always carry the opposite side label.
func AdjacentVertices(v Vertex) []Vertex {
	edges := EdgesOfVertex(v)
	out := make([]Vertex, 0, len(edges))
	for _, e := range edges {
		out = append(out, OtherEnd(e, v))
	}
	return out
}

// CoastalVertices returns board vertices touching fewer than 3 hexes.
func CoastalVertices() []Vertex {
	var out []Vertex
	for _, v := range allVertices {
		if len(HexesOfVertex(v)) < 3 {
			out = append(out, v)
		}
	}
	return out
}

// IsCoastalEdge reports whether e is a board edge with a single hex.
func IsCoastalEdge(e Edge) bool {
	return IsBoardEdge(e) && len(HexesOfEdge(e)) == 1
}

// CoastalEdges returns board edges touching exactly one hex.
func CoastalEdges() []Edge {
	var out []Edge
	for _, e := range allEdges {
		if IsCoastalEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// PerimeterHexes returns the outer ring clockwise from (0,-2).
func PerimeterHexes() []Hex {
	return []Hex{
		{Q: 0, R: -2}, {Q: 1, R: -2}, {Q: 2, R: -2}, {Q: 2, R: -1},
		{Q: 2, R: 0}, {Q: 1, R: 1}, {Q: 0, R: 2}, {Q: -1, R: 2},
		{Q: -2, R: 2}, {Q: -2, R: 1}, {Q: -2, R: 0}, {Q: -1, R: -1},
	}
}
