package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/randalmurphal/lazorkit/level"
)

// =============================================================================
// End-to-End Examples
// =============================================================================

func TestParse_SingleRow(t *testing.T) {
	input := "GRID START\no o o\nGRID STOP\nA 1\nB 2\nC 0\nL 2 4 1 -1\nP 3 5\n"

	lvl, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &level.Level{
		Grid:     level.Grid{{level.CellOpen, level.CellOpen, level.CellOpen}},
		Blocks:   level.Inventory{Reflect: 1, Opaque: 2, Refract: 0},
		Emitters: []level.Emitter{{X: 2, Y: 4, VX: 1, VY: -1}},
		Targets:  []level.Point{{X: 3.0, Y: 5.0}},
	}
	if !lvl.Equal(want) {
		t.Errorf("Parse() = %+v, want %+v", lvl, want)
	}
}

func TestParse_FixedBlockRow(t *testing.T) {
	input := strings.Join([]string{
		"GRID START",
		"B o o",
		"o o o",
		"o o o",
		"GRID STOP",
		"A 3",
		"C 3",
		"L 3 6 -1 -1",
		"P 2 3",
	}, "\n")

	lvl, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	first := []level.Cell{level.CellFixedOpaque, level.CellOpen, level.CellOpen}
	for i, c := range first {
		if lvl.Grid[0][i] != c {
			t.Errorf("Grid[0][%d] = %v, want %v", i, lvl.Grid[0][i], c)
		}
	}
	if lvl.Blocks != (level.Inventory{Reflect: 3, Opaque: 0, Refract: 3}) {
		t.Errorf("Blocks = %+v", lvl.Blocks)
	}
	if len(lvl.Targets) != 1 || lvl.Targets[0] != (level.Point{X: 2, Y: 3}) {
		t.Errorf("Targets = %+v, want [{2 3}]", lvl.Targets)
	}
}

func TestParse_MalformedCount(t *testing.T) {
	_, err := Parse("GRID START\no\nGRID STOP\nA abc\n")
	if !errors.Is(err, ErrMalformedDirective) {
		t.Fatalf("Parse() error = %v, want ErrMalformedDirective", err)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *ParseError", err)
	}
	if perr.Directive != DirectiveReflect {
		t.Errorf("Directive = %q, want A", perr.Directive)
	}
	if perr.Token != "abc" {
		t.Errorf("Token = %q, want abc", perr.Token)
	}
	if perr.Line != 4 {
		t.Errorf("Line = %d, want 4", perr.Line)
	}
	if !strings.Contains(err.Error(), `"A <int>"`) {
		t.Errorf("Error() = %q, want expected shape", err.Error())
	}
}

func TestParse_InvalidLegendToken(t *testing.T) {
	_, err := Parse("GRID START\no o o\no z o\nGRID STOP\n")
	if !errors.Is(err, ErrInvalidLegendToken) {
		t.Fatalf("Parse() error = %v, want ErrInvalidLegendToken", err)
	}

	var perr *ParseError
	errors.As(err, &perr)
	if perr.Token != "z" || perr.Line != 3 {
		t.Errorf("ParseError = %+v, want token z on line 3", perr)
	}
}

func TestParse_NoGrid(t *testing.T) {
	lvl, err := Parse("A 2\nL 1 1 1 1\nP 0.5 1\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if lvl.Grid == nil || len(lvl.Grid) != 0 {
		t.Errorf("Grid = %v, want empty non-nil", lvl.Grid)
	}
	if lvl.Blocks.Reflect != 2 {
		t.Errorf("Blocks.Reflect = %d, want 2", lvl.Blocks.Reflect)
	}
	if len(lvl.Emitters) != 1 || len(lvl.Targets) != 1 {
		t.Errorf("Emitters = %v, Targets = %v", lvl.Emitters, lvl.Targets)
	}
}

// =============================================================================
// Property Tests
// =============================================================================

func TestParse_Idempotent(t *testing.T) {
	input := "GRID START\nx o\nA C\nGRID STOP\nB 1\nL 0 1 1 1\nP 1 2\nP 1 2\n"

	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Parse() not idempotent: %+v vs %+v", first, second)
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	input := "P 3 3\nL 1 1 1 1\nP 1 1\nL 2 2 -1 -1\nP 2 2\nP 1 1\n"

	lvl, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantEmitters := []level.Emitter{{X: 1, Y: 1, VX: 1, VY: 1}, {X: 2, Y: 2, VX: -1, VY: -1}}
	wantTargets := []level.Point{{X: 3, Y: 3}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}}

	for i := range wantEmitters {
		if lvl.Emitters[i] != wantEmitters[i] {
			t.Errorf("Emitters[%d] = %+v, want %+v", i, lvl.Emitters[i], wantEmitters[i])
		}
	}
	if len(lvl.Targets) != len(wantTargets) {
		t.Fatalf("len(Targets) = %d, want %d", len(lvl.Targets), len(wantTargets))
	}
	for i := range wantTargets {
		if lvl.Targets[i] != wantTargets[i] {
			t.Errorf("Targets[%d] = %+v, want %+v", i, lvl.Targets[i], wantTargets[i])
		}
	}
}

func TestParse_DefaultCounts(t *testing.T) {
	lvl, err := Parse("GRID START\no\nGRID STOP\nB 4\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if lvl.Blocks != (level.Inventory{Opaque: 4}) {
		t.Errorf("Blocks = %+v, want only opaque 4", lvl.Blocks)
	}

	empty, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") error = %v", err)
	}
	if empty.Blocks != (level.Inventory{}) || len(empty.Emitters) != 0 || len(empty.Targets) != 0 {
		t.Errorf("Parse(\"\") = %+v, want zero level", empty)
	}
}

func TestParse_RaggedGrid(t *testing.T) {
	_, err := Parse("GRID START\no o o\no o\nGRID STOP\n")
	if !errors.Is(err, ErrRaggedGrid) {
		t.Fatalf("Parse() error = %v, want ErrRaggedGrid", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
}

// =============================================================================
// State Machine Tests
// =============================================================================

func TestParse_BlankLinesInsideGrid(t *testing.T) {
	lvl, err := Parse("GRID START\n\no o\n\no o\nGRID STOP\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if lvl.Grid.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", lvl.Grid.Rows())
	}
}

func TestParse_WindowsLineEndings(t *testing.T) {
	lvl, err := Parse("GRID START\r\no x\r\nGRID STOP\r\nA 1\r\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if lvl.Grid.Cols() != 2 || lvl.Blocks.Reflect != 1 {
		t.Errorf("Parse() = %+v", lvl)
	}
}

func TestParse_MultipleGridBlocks(t *testing.T) {
	lvl, err := Parse("GRID START\no\nGRID STOP\nA 1\nGRID START\nx\nGRID STOP\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := level.Grid{{level.CellOpen}, {level.CellNoBlock}}
	if !(&level.Level{Grid: lvl.Grid}).Equal(&level.Level{Grid: want}) {
		t.Errorf("Grid = %v, want %v", lvl.Grid, want)
	}
}

func TestParse_UnexpectedMarkers(t *testing.T) {
	_, err := Parse("GRID START\no\nGRID START\no\nGRID STOP\n")
	if !errors.Is(err, ErrUnexpectedMarker) {
		t.Errorf("nested start: error = %v, want ErrUnexpectedMarker", err)
	}

	_, err = Parse("A 1\nGRID STOP\n")
	if !errors.Is(err, ErrUnexpectedMarker) {
		t.Errorf("stray stop: error = %v, want ErrUnexpectedMarker", err)
	}
}

func TestParse_UnterminatedGrid(t *testing.T) {
	input := "A 1\nGRID START\no o\nx x\n"

	_, err := Parse(input)
	if !errors.Is(err, ErrUnterminatedGrid) {
		t.Fatalf("strict Parse() error = %v, want ErrUnterminatedGrid", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Line != 2 {
		t.Errorf("Line = %d, want 2 (the GRID START line)", perr.Line)
	}

	lvl, err := NewParser(WithAllowUnterminatedGrid()).Parse(input)
	if err != nil {
		t.Fatalf("lenient Parse() error = %v", err)
	}
	if lvl.Grid.Rows() != 2 || lvl.Blocks.Reflect != 1 {
		t.Errorf("lenient Parse() = %+v", lvl)
	}
}

func TestParse_DuplicateCounts(t *testing.T) {
	input := "A 1\nB 2\nA 5\n"

	_, err := Parse(input)
	if !errors.Is(err, ErrDuplicateDirective) {
		t.Fatalf("strict Parse() error = %v, want ErrDuplicateDirective", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		if perr.Line != 3 || perr.Directive != DirectiveReflect || perr.Text != "A 5" {
			t.Errorf("ParseError = %+v", perr)
		}
	}

	lvl, err := NewParser(WithAllowDuplicateCounts()).Parse(input)
	if err != nil {
		t.Fatalf("lenient Parse() error = %v", err)
	}
	if lvl.Blocks.Reflect != 5 {
		t.Errorf("Blocks.Reflect = %d, want 5 (last wins)", lvl.Blocks.Reflect)
	}
}

func TestParse_Lenient(t *testing.T) {
	p := NewParser(WithLenient())
	lvl, err := p.Parse("C 1\nC 2\nGRID START\no\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if lvl.Blocks.Refract != 2 || lvl.Grid.Rows() != 1 {
		t.Errorf("Parse() = %+v", lvl)
	}
}

func TestParse_NoPartialLevelOnError(t *testing.T) {
	lvl, err := Parse("GRID START\no\nGRID STOP\nL 1 2\n")
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if lvl != nil {
		t.Errorf("Parse() returned partial level %+v", lvl)
	}
}

// =============================================================================
// Input Tests
// =============================================================================

func TestParseReader(t *testing.T) {
	lvl, err := NewParser().ParseReader(strings.NewReader("A 2\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if lvl.Blocks.Reflect != 2 {
		t.Errorf("Blocks.Reflect = %d, want 2", lvl.Blocks.Reflect)
	}

	_, err = NewParser().ParseReader(iotest.ErrReader(errors.New("boom")))
	if err == nil || IsSyntaxError(err) {
		t.Errorf("ParseReader() error = %v, want I/O error", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bff")
	bad := filepath.Join(dir, "bad.bff")
	if err := os.WriteFile(good, []byte("GRID START\no\nGRID STOP\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("P 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := ParseFile(good)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if lvl.Grid.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", lvl.Grid.Rows())
	}

	_, err = ParseFile(bad)
	if !errors.Is(err, ErrMalformedDirective) || !IsSyntaxError(err) {
		t.Errorf("ParseFile(bad) error = %v, want ErrMalformedDirective", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q does not name the file", err.Error())
	}

	_, err = ParseFile(filepath.Join(dir, "missing.bff"))
	if err == nil || IsSyntaxError(err) {
		t.Errorf("ParseFile(missing) error = %v, want I/O error", err)
	}
}

func TestParseError_Format(t *testing.T) {
	err := &ParseError{Line: 7, Text: "P 1", Detail: "short", Err: ErrMalformedDirective}
	want := `line 7: malformed directive: short (in "P 1")`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &ParseError{Err: ErrUnterminatedGrid}
	if got := bare.Error(); got != "unterminated grid block" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseError_WithoutSentinel(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Line: 1}, "line 1: parse error"},
		{&ParseError{Line: 2, Detail: "odd input"}, "line 2: odd input"},
		{&ParseError{}, "parse error"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if tt.err.Unwrap() != nil {
			t.Errorf("Unwrap() = %v, want nil", tt.err.Unwrap())
		}
	}
}

func TestParse_NonFiniteTarget(t *testing.T) {
	for _, text := range []string{
		"GRID START\no o\nGRID STOP\nP NaN NaN\n",
		"GRID START\no o\nGRID STOP\nP Inf 1\n",
	} {
		lvl, err := Parse(text)
		if !errors.Is(err, ErrMalformedDirective) {
			t.Fatalf("Parse(%q) error = %v, want %v", text, err, ErrMalformedDirective)
		}
		if lvl != nil {
			t.Errorf("Parse(%q) returned a level alongside the error", text)
		}
		var perr *ParseError
		if errors.As(err, &perr) && perr.Line != 4 {
			t.Errorf("Line = %d, want 4", perr.Line)
		}
	}
}

func TestParse_ErrorLinesCountIgnoredLines(t *testing.T) {
	text := "# level\n\nGRID START\no o\n\no o o\nGRID STOP\n"
	_, err := Parse(text)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if !errors.Is(err, ErrRaggedGrid) {
		t.Fatalf("Parse() error = %v, want %v", err, ErrRaggedGrid)
	}
	if perr.Line != 6 {
		t.Errorf("Line = %d, want 6", perr.Line)
	}
}
