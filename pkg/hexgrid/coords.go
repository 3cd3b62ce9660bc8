// Package hexgrid implements axial-coordinate geometry for the hex board.
//
// Hex, Vertex and Edge encode as text ("q,r", "q,r,N", "q,r,NE") both as
// JSON values and as JSON object keys.
//
// Vertices and edges have exactly one canonical form. A vertex is the N (left)
// or S (right) corner of some hex; an edge is the NE, E or SE side of some hex.
// Every function in this package only ever builds those forms, so two
// derivations of the same physical point always compare equal.
package hexgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Hex is an axial hex coordinate.
type Hex struct {
	Q int
	R int
}

// VertexSide is the canonical corner label of a vertex.
type VertexSide string

const (
	SideN VertexSide = "N"
	SideS VertexSide = "S"
)

// Vertex is a canonical hex corner.
type Vertex struct {
	Q    int
	R    int
	Side VertexSide
}

// EdgeSide is the canonical side label of an edge.
type EdgeSide string

const (
	SideNE EdgeSide = "NE"
	SideE  EdgeSide = "E"
	SideSE EdgeSide = "SE"
)

// Edge is a canonical hex side.
type Edge struct {
	Q    int
	R    int
	Side EdgeSide
}

func (h Hex) String() string    { return fmt.Sprintf("%d,%d", h.Q, h.R) }
func (v Vertex) String() string { return fmt.Sprintf("%d,%d,%s", v.Q, v.R, v.Side) }
func (e Edge) String() string   { return fmt.Sprintf("%d,%d,%s", e.Q, e.R, e.Side) }

// MarshalText lets Hex be used as a JSON object key.
func (h Hex) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText parses "q,r".
func (h *Hex) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 2 {
		return fmt.Errorf("invalid hex %q", b)
	}
	q, r, err := parseQR(parts[0], parts[1])
	if err != nil {
		return fmt.Errorf("invalid hex %q: %w", b, err)
	}
	*h = Hex{Q: q, R: r}
	return nil
}

// MarshalText lets Vertex be used as a JSON object key.
func (v Vertex) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText parses "q,r,N" or "q,r,S".
func (v *Vertex) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 3 {
		return fmt.Errorf("invalid vertex %q", b)
	}
	q, r, err := parseQR(parts[0], parts[1])
	if err != nil {
		return fmt.Errorf("invalid vertex %q: %w", b, err)
	}
	side := VertexSide(parts[2])
	if side != SideN && side != SideS {
		return fmt.Errorf("invalid vertex side %q", parts[2])
	}
	*v = Vertex{Q: q, R: r, Side: side}
	return nil
}

// MarshalText lets Edge be used as a JSON object key.
func (e Edge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText parses "q,r,NE", "q,r,E" or "q,r,SE".
func (e *Edge) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 3 {
		return fmt.Errorf("invalid edge %q", b)
	}
	q, r, err := parseQR(parts[0], parts[1])
	if err != nil {
		return fmt.Errorf("invalid edge %q: %w", b, err)
	}
	side := EdgeSide(parts[2])
	if side != SideNE && side != SideE && side != SideSE {
		return fmt.Errorf("invalid edge side %q", parts[2])
	}
	*e = Edge{Q: q, R: r, Side: side}
	return nil
}

func parseQR(qs, rs string) (int, int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return 0, 0, err
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return 0, 0, err
	}
	return q, r, nil
}
