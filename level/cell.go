package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Cell is the kind of a single grid square.
type Cell uint8

const (
	CellOpen         Cell = iota // a movable block may be placed here
	CellNoBlock                  // placement forbidden
	CellFixedReflect             // immovable reflect block
	CellFixedOpaque              // immovable opaque block
	CellFixedRefract             // immovable refract block
)

// Legend symbols used by the .bff grid block.
const (
	SymbolOpen         = "o"
	SymbolNoBlock      = "x"
	SymbolFixedReflect = "A"
	SymbolFixedOpaque  = "B"
	SymbolFixedRefract = "C"
)

var cellSymbols = [...]string{
	CellOpen:         SymbolOpen,
	CellNoBlock:      SymbolNoBlock,
	CellFixedReflect: SymbolFixedReflect,
	CellFixedOpaque:  SymbolFixedOpaque,
	CellFixedRefract: SymbolFixedRefract,
}

var cellNames = [...]string{
	CellOpen:         "open",
	CellNoBlock:      "no-block",
	CellFixedReflect: "fixed-reflect",
	CellFixedOpaque:  "fixed-opaque",
	CellFixedRefract: "fixed-refract",
}

// Cells lists every cell kind in legend order.
func Cells() []Cell {
	return []Cell{CellOpen, CellNoBlock, CellFixedReflect, CellFixedOpaque, CellFixedRefract}
}

// ParseCell maps a legend token to its cell kind.
// Returns false for any token outside the legend.
func ParseCell(token string) (Cell, bool) {
	switch token {
	case SymbolOpen:
		return CellOpen, true
	case SymbolNoBlock:
		return CellNoBlock, true
	case SymbolFixedReflect:
		return CellFixedReflect, true
	case SymbolFixedOpaque:
		return CellFixedOpaque, true
	case SymbolFixedRefract:
		return CellFixedRefract, true
	}
	return 0, false
}

// Valid reports whether c is one of the defined kinds.
func (c Cell) Valid() bool {
	return int(c) < len(cellSymbols)
}

// Symbol returns the legend letter for c.
func (c Cell) Symbol() string {
	if !c.Valid() {
		return "?"
	}
	return cellSymbols[c]
}

// String returns a human-readable name for c.
func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
	return cellNames[c]
}

// Fixed reports whether c holds an immovable block.
func (c Cell) Fixed() bool {
	return c == CellFixedReflect || c == CellFixedOpaque || c == CellFixedRefract
}

// MarshalText encodes c as its legend letter. JSON uses this as well.
func (c Cell) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid cell %d", uint8(c))
	}
	return []byte(c.Symbol()), nil
}

// UnmarshalText decodes a legend letter.
func (c *Cell) UnmarshalText(text []byte) error {
	parsed, ok := ParseCell(string(text))
	if !ok {
		return fmt.Errorf("invalid cell symbol %q", text)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Cell) MarshalYAML() (any, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid cell %d", uint8(c))
	}
	return c.Symbol(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler so fixtures can spell rows as
// [o, o, B].
func (c *Cell) UnmarshalYAML(value *yaml.Node) error {
	var symbol string
	if err := value.Decode(&symbol); err != nil {
		return fmt.Errorf("cell must be a legend symbol: %w", err)
	}
	return c.UnmarshalText([]byte(symbol))
}
