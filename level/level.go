package level

import "slices"

// Grid holds the board cells as rows of columns, indexed [row][col].
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the length of the first row, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at (col, row). Returns false when out of range.
func (g Grid) At(col, row int) (Cell, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return 0, false
	}
	return g[row][col], true
}

// Rectangular reports whether every row has the same length.
// An empty grid is rectangular.
func (g Grid) Rectangular() bool {
	for _, row := range g {
		if len(row) != g.Cols() {
			return false
		}
	}
	return true
}

// Count returns how many cells of the given kind the grid holds.
func (g Grid) Count(kind Cell) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c == kind {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = slices.Clone(row)
	}
	return out
}

// Inventory counts the movable blocks the player may place.
type Inventory struct {
	Reflect int `json:"reflect" yaml:"reflect"`
	Opaque  int `json:"opaque" yaml:"opaque"`
	Refract int `json:"refract" yaml:"refract"`
}

// Total returns the number of movable blocks of every kind.
func (inv Inventory) Total() int {
	return inv.Reflect + inv.Opaque + inv.Refract
}

// Emitter is a laser origin and initial direction on the doubled grid.
type Emitter struct {
	X  int `json:"x" yaml:"x"`
	Y  int `json:"y" yaml:"y"`
	VX int `json:"vx" yaml:"vx"`
	VY int `json:"vy" yaml:"vy"`
}

// Point is a coordinate a laser path must cross.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Level is one parsed puzzle board.
type Level struct {
	// Grid is the board layout. Empty when the source had no grid block.
	Grid Grid `json:"grid" yaml:"grid" jsonschema:"description=Board rows of legend symbols"`

	// Blocks is the movable block inventory.
	Blocks Inventory `json:"blocks" yaml:"blocks"`

	// Emitters are listed in source order.
	Emitters []Emitter `json:"emitters" yaml:"emitters"`

	// Targets are listed in source order; duplicates are kept.
	Targets []Point `json:"targets" yaml:"targets"`
}

// Equal reports whether l and other describe the same board.
// A nil slice and an empty slice compare equal.
func (l *Level) Equal(other *Level) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Blocks != other.Blocks {
		return false
	}
	if !slices.Equal(l.Emitters, other.Emitters) || !slices.Equal(l.Targets, other.Targets) {
		return false
	}
	return slices.EqualFunc(l.Grid, other.Grid, func(a, b []Cell) bool {
		return slices.Equal(a, b)
	})
}

// Clone returns a deep copy of l.
func (l *Level) Clone() *Level {
	if l == nil {
		return nil
	}
	return &Level{
		Grid:     l.Grid.Clone(),
		Blocks:   l.Blocks,
		Emitters: slices.Clone(l.Emitters),
		Targets:  slices.Clone(l.Targets),
	}
}
