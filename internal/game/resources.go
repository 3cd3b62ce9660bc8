package game

import "hex-settlers/pkg/maps"

// Stockpile is a count per resource kind. It doubles as a cost and as a
// trade or discard bundle.
type Stockpile struct {
	Brick  int `json:"BRICK"`
	Lumber int `json:"LUMBER"`
	Ore    int `json:"ORE"`
	Grain  int `json:"GRAIN"`
	Wool   int `json:"WOOL"`
}

// Build costs.
var (
	CostRoad       = Stockpile{Brick: 1, Lumber: 1}
	CostSettlement = Stockpile{Brick: 1, Lumber: 1, Grain: 1, Wool: 1}
	CostCity       = Stockpile{Grain: 2, Ore: 3}
	CostDevCard    = Stockpile{Ore: 1, Grain: 1, Wool: 1}
)

// Of returns a stockpile holding n of r.
func Of(r maps.Resource, n int) Stockpile {
	var s Stockpile
	s.Add(r, n)
	return s
}

func (s *Stockpile) slot(r maps.Resource) *int {
	switch r {
	case maps.Brick:
		return &s.Brick
	case maps.Lumber:
		return &s.Lumber
	case maps.Ore:
		return &s.Ore
	case maps.Grain:
		return &s.Grain
	case maps.Wool:
		return &s.Wool
	default:
		return nil
	}
}

// Add adds amount of a resource. Unknown kinds are ignored.
func (s *Stockpile) Add(r maps.Resource, amount int) {
	if p := s.slot(r); p != nil {
		*p += amount
	}
}

// Remove takes amount of a resource. Returns false if insufficient.
func (s *Stockpile) Remove(r maps.Resource, amount int) bool {
	p := s.slot(r)
	if p == nil || *p < amount {
		return false
	}
	*p -= amount
	return true
}

// Get returns the amount of a resource.
func (s Stockpile) Get(r maps.Resource) int {
	if p := s.slot(r); p != nil {
		return *p
	}
	return 0
}

// Set overwrites the amount of a resource.
func (s *Stockpile) Set(r maps.Resource, amount int) {
	if p := s.slot(r); p != nil {
		*p = amount
	}
}

// Total returns the number of cards.
func (s Stockpile) Total() int {
	return s.Brick + s.Lumber + s.Ore + s.Grain + s.Wool
}

// Kinds returns how many resource kinds have at least one card.
func (s Stockpile) Kinds() int {
	n := 0
	for _, r := range maps.AllResources() {
		if s.Get(r) > 0 {
			n++
		}
	}
	return n
}

// IsZero reports whether the stockpile is empty.
func (s Stockpile) IsZero() bool { return s == Stockpile{} }

// Valid reports whether no count is negative.
func (s Stockpile) Valid() bool {
	return s.Brick >= 0 && s.Lumber >= 0 && s.Ore >= 0 && s.Grain >= 0 && s.Wool >= 0
}

// CanAfford checks if the stockpile covers cost.
func (s Stockpile) CanAfford(cost Stockpile) bool {
	return s.Brick >= cost.Brick &&
		s.Lumber >= cost.Lumber &&
		s.Ore >= cost.Ore &&
		s.Grain >= cost.Grain &&
		s.Wool >= cost.Wool
}

// Spend removes cost. Returns false and changes nothing if insufficient.
func (s *Stockpile) Spend(cost Stockpile) bool {
	if !s.CanAfford(cost) {
		return false
	}
	*s = s.Minus(cost)
	return true
}

// Plus returns s + o.
func (s Stockpile) Plus(o Stockpile) Stockpile {
	return Stockpile{
		Brick:  s.Brick + o.Brick,
		Lumber: s.Lumber + o.Lumber,
		Ore:    s.Ore + o.Ore,
		Grain:  s.Grain + o.Grain,
		Wool:   s.Wool + o.Wool,
	}
}

// Minus returns s - o. The result may be negative.
func (s Stockpile) Minus(o Stockpile) Stockpile {
	return Stockpile{
		Brick:  s.Brick - o.Brick,
		Lumber: s.Lumber - o.Lumber,
		Ore:    s.Ore - o.Ore,
		Grain:  s.Grain - o.Grain,
		Wool:   s.Wool - o.Wool,
	}
}

// Shortfall returns what is missing to cover cost.
func (s Stockpile) Shortfall(cost Stockpile) Stockpile {
	var out Stockpile
	for _, r := range maps.AllResources() {
		if d := cost.Get(r) - s.Get(r); d > 0 {
			out.Set(r, d)
		}
	}
	return out
}
