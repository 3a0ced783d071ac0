package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/randalmurphal/lazorkit/level"
)

// Mode is the classifier state: inside or outside a grid block.
type Mode int

const (
	ModeOutside Mode = iota
	ModeInside
)

// String returns "outside-grid" or "inside-grid".
func (m Mode) String() string {
	if m == ModeInside {
		return "inside-grid"
	}
	return "outside-grid"
}

// LineKind is the classification of a single line.
type LineKind int

const (
	KindIgnored LineKind = iota
	KindGridStart
	KindGridStop
	KindGridRow
	KindCount
	KindEmitter
	KindTarget
)

var lineKindNames = [...]string{
	KindIgnored:   "ignored",
	KindGridStart: "grid-start",
	KindGridStop:  "grid-stop",
	KindGridRow:   "grid-row",
	KindCount:     "count",
	KindEmitter:   "emitter",
	KindTarget:    "target",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return fmt.Sprintf("LineKind(%d)", int(k))
	}
	return lineKindNames[k]
}

// Line is one classified input line. Only the fields matching Kind are set.
type Line struct {
	Kind      LineKind
	Directive Directive

	Count   int           // KindCount
	Row     []level.Cell  // KindGridRow
	Emitter level.Emitter // KindEmitter
	Target  level.Point   // KindTarget
}

// Classify determines what a single line means in the given mode and
// extracts its values. The line is trimmed and split on whitespace before
// any tag is matched, so "Apple 3" is not an A directive.
//
// Errors are *ParseError values with Line unset; the builder fills it in.
func Classify(text string, mode Mode) (Line, error) {
	text = strings.TrimSpace(text)
	tokens := strings.Fields(text)

	if mode == ModeInside {
		return classifyInside(text, tokens)
	}
	return classifyOutside(text, tokens)
}

func classifyInside(text string, tokens []string) (Line, error) {
	switch {
	case hasMarker(tokens, gridStopMarker):
		return Line{Kind: KindGridStop, Directive: DirectiveGrid}, nil
	case hasMarker(tokens, gridStartMarker):
		return Line{}, &ParseError{
			Text:      text,
			Directive: DirectiveGrid,
			Detail:    "GRID START inside an open grid block",
			Err:       ErrUnexpectedMarker,
		}
	case len(tokens) == 0:
		return Line{Kind: KindIgnored}, nil
	}

	row := make([]level.Cell, 0, len(tokens))
	for _, tok := range tokens {
		cell, ok := level.ParseCell(tok)
		if !ok {
			return Line{}, &ParseError{
				Text:      text,
				Directive: DirectiveGrid,
				Token:     tok,
				Detail:    fmt.Sprintf("%q is not one of o, x, A, B, C", tok),
				Err:       ErrInvalidLegendToken,
			}
		}
		row = append(row, cell)
	}
	return Line{Kind: KindGridRow, Directive: DirectiveGrid, Row: row}, nil
}

func classifyOutside(text string, tokens []string) (Line, error) {
	switch {
	case hasMarker(tokens, gridStartMarker):
		return Line{Kind: KindGridStart, Directive: DirectiveGrid}, nil
	case hasMarker(tokens, gridStopMarker):
		return Line{}, &ParseError{
			Text:      text,
			Directive: DirectiveGrid,
			Detail:    "GRID STOP without a matching GRID START",
			Err:       ErrUnexpectedMarker,
		}
	case len(tokens) == 0:
		return Line{Kind: KindIgnored}, nil
	}

	d := Directive(tokens[0])
	ds, ok := directiveSpecs[d]
	if !ok || d == DirectiveGrid {
		return Line{Kind: KindIgnored}, nil
	}

	args := tokens[1:]
	if len(args) != ds.args {
		return Line{}, malformed(d, text, "", fmt.Sprintf("got %d arguments", len(args)))
	}

	switch d {
	case DirectiveLaser:
		var vals [4]int
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return Line{}, malformed(d, text, arg, fmt.Sprintf("%q is not an integer", arg))
			}
			vals[i] = n
		}
		return Line{
			Kind:      KindEmitter,
			Directive: d,
			Emitter:   level.Emitter{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]},
		}, nil

	case DirectivePoint:
		var vals [2]float64
		for i, arg := range args {
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return Line{}, malformed(d, text, arg, fmt.Sprintf("%q is not a number", arg))
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return Line{}, malformed(d, text, arg, fmt.Sprintf("%q is not a finite number", arg))
			}
			vals[i] = f
		}
		return Line{Kind: KindTarget, Directive: d, Target: level.Point{X: vals[0], Y: vals[1]}}, nil

	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Line{}, malformed(d, text, args[0], fmt.Sprintf("%q is not an integer", args[0]))
		}
		return Line{Kind: KindCount, Directive: d, Count: n}, nil
	}
}
