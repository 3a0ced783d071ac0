package parser

// Grid block markers. Each is matched against the leading tokens of a line.
var (
	gridStartMarker = []string{"GRID", "START"}
	gridStopMarker  = []string{"GRID", "STOP"}
)

// Directive identifies the kind of a directive line.
type Directive string

// Directives recognized outside a grid block. The value is the line tag.
const (
	DirectiveNone    Directive = ""
	DirectiveReflect Directive = "A"
	DirectiveOpaque  Directive = "B"
	DirectiveRefract Directive = "C"
	DirectiveLaser   Directive = "L"
	DirectivePoint   Directive = "P"

	// DirectiveGrid tags errors raised inside or around a grid block.
	DirectiveGrid Directive = "GRID"
)

// directiveSpec describes the argument shape of a directive.
type directiveSpec struct {
	name  string
	args  int
	usage string
}

var directiveSpecs = map[Directive]directiveSpec{
	DirectiveReflect: {name: "reflect block count", args: 1, usage: "A <int>"},
	DirectiveOpaque:  {name: "opaque block count", args: 1, usage: "B <int>"},
	DirectiveRefract: {name: "refract block count", args: 1, usage: "C <int>"},
	DirectiveLaser:   {name: "laser", args: 4, usage: "L <x> <y> <vx> <vy>"},
	DirectivePoint:   {name: "target point", args: 2, usage: "P <x> <y>"},
	DirectiveGrid:    {name: "grid block", usage: "GRID START ... GRID STOP"},
}

// String returns a readable name such as "reflect block count (A)".
func (d Directive) String() string {
	if d == DirectiveNone {
		return "none"
	}
	ds, ok := directiveSpecs[d]
	if !ok {
		return string(d)
	}
	return ds.name + " (" + string(d) + ")"
}

// Usage returns the expected shape of the directive line.
func (d Directive) Usage() string {
	return directiveSpecs[d].usage
}

// IsCount reports whether d sets a block inventory count.
func (d Directive) IsCount() bool {
	return d == DirectiveReflect || d == DirectiveOpaque || d == DirectiveRefract
}

// hasMarker reports whether tokens begin with the marker tokens.
func hasMarker(tokens, marker []string) bool {
	if len(tokens) < len(marker) {
		return false
	}
	for i, m := range marker {
		if tokens[i] != m {
			return false
		}
	}
	return true
}
