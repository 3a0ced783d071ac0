package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/lazorkit/level"
)

// Parser turns level text into level.Level values.
// A Parser holds only its policy settings and is safe for concurrent use.
type Parser struct {
	// allowUnterminated keeps the rows of a grid block left open at end of input.
	allowUnterminated bool

	// allowDuplicates lets a repeated A/B/C directive overwrite the earlier value.
	allowDuplicates bool
}

// Option configures a Parser.
type Option func(*Parser)

// NewParser creates a strict parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithAllowUnterminatedGrid accepts input that ends inside a grid block,
// keeping the rows read so far.
func WithAllowUnterminatedGrid() Option {
	return func(p *Parser) { p.allowUnterminated = true }
}

// WithAllowDuplicateCounts lets the last A, B, or C line win instead of
// failing with ErrDuplicateDirective.
func WithAllowDuplicateCounts() Option {
	return func(p *Parser) { p.allowDuplicates = true }
}

// WithLenient enables every leniency option. Older hand-written level files
// often rely on both.
func WithLenient() Option {
	return func(p *Parser) {
		p.allowUnterminated = true
		p.allowDuplicates = true
	}
}

// Parse reads a complete level document.
// On error no Level is returned; the error is a *ParseError.
func (p *Parser) Parse(text string) (*level.Level, error) {
	b := newBuilder(p)

	for i, raw := range strings.Split(text, "\n") {
		line, err := Classify(raw, b.mode)
		if err == nil {
			err = b.apply(i+1, line)
		}
		if err != nil {
			return nil, atLine(err, i+1, raw)
		}
	}

	return b.finish()
}

// Parse is a convenience function using a strict parser.
func Parse(text string) (*level.Level, error) {
	return NewParser().Parse(text)
}

// builder accumulates level state across lines. One builder serves exactly
// one Parse call.
type builder struct {
	p *Parser

	mode      Mode
	gridStart int // source line of the open GRID START
	rowLines  []int

	grid     level.Grid
	blocks   level.Inventory
	seen     map[Directive]bool
	emitters []level.Emitter
	targets  []level.Point
}

func newBuilder(p *Parser) *builder {
	return &builder{
		p:        p,
		seen:     make(map[Directive]bool, 3),
		emitters: []level.Emitter{},
		targets:  []level.Point{},
	}
}

// apply advances the state machine by one classified line found at
// source line n.
func (b *builder) apply(n int, line Line) error {
	switch line.Kind {
	case KindIgnored:
		return nil

	case KindGridStart:
		b.mode = ModeInside
		b.gridStart = n

	case KindGridStop:
		b.mode = ModeOutside

	case KindGridRow:
		b.grid = append(b.grid, line.Row)
		b.rowLines = append(b.rowLines, n)

	case KindCount:
		if b.seen[line.Directive] && !b.p.allowDuplicates {
			return &ParseError{
				Directive: line.Directive,
				Detail:    fmt.Sprintf("%s given more than once", line.Directive),
				Err:       ErrDuplicateDirective,
			}
		}
		b.seen[line.Directive] = true
		switch line.Directive {
		case DirectiveReflect:
			b.blocks.Reflect = line.Count
		case DirectiveOpaque:
			b.blocks.Opaque = line.Count
		case DirectiveRefract:
			b.blocks.Refract = line.Count
		}

	case KindEmitter:
		b.emitters = append(b.emitters, line.Emitter)

	case KindTarget:
		b.targets = append(b.targets, line.Target)

	default:
		return fmt.Errorf("unknown line kind %s", line.Kind)
	}

	return nil
}

// finish checks end-of-input invariants and hands over the Level.
func (b *builder) finish() (*level.Level, error) {
	if b.mode == ModeInside && !b.p.allowUnterminated {
		return nil, &ParseError{
			Line:      b.gridStart,
			Directive: DirectiveGrid,
			Detail:    "input ended before GRID STOP",
			Err:       ErrUnterminatedGrid,
		}
	}

	if !b.grid.Rectangular() {
		for i, row := range b.grid {
			if len(row) != b.grid.Cols() {
				return nil, &ParseError{
					Line:      b.rowLines[i],
					Directive: DirectiveGrid,
					Detail:    fmt.Sprintf("row %d has %d cells, row 1 has %d", i+1, len(row), b.grid.Cols()),
					Err:       ErrRaggedGrid,
				}
			}
		}
	}

	grid := b.grid
	if grid == nil {
		grid = level.Grid{}
	}

	return &level.Level{
		Grid:     grid,
		Blocks:   b.blocks,
		Emitters: b.emitters,
		Targets:  b.targets,
	}, nil
}

// atLine attaches source position to a classifier or builder error.
func atLine(err error, n int, raw string) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Line = n
		if perr.Text == "" {
			perr.Text = strings.TrimSpace(raw)
		}
		return perr
	}
	return fmt.Errorf("line %d: %w", n, err)
}
