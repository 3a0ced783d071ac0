package level

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLevel is wrapped by every issue Validate reports.
var ErrInvalidLevel = errors.New("invalid level")

// Validate checks the semantic rules the parser does not enforce:
// rectangular grid, non-negative inventory, unit emitter directions,
// coordinates inside the board, and room for every movable block.
// All issues are reported together via errors.Join.
func (l *Level) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...)))
	}

	if !l.Grid.Rectangular() {
		fail("grid rows have differing lengths")
	}

	if l.Blocks.Reflect < 0 {
		fail("reflect block count is negative (%d)", l.Blocks.Reflect)
	}
	if l.Blocks.Opaque < 0 {
		fail("opaque block count is negative (%d)", l.Blocks.Opaque)
	}
	if l.Blocks.Refract < 0 {
		fail("refract block count is negative (%d)", l.Blocks.Refract)
	}

	maxX, maxY := 2*l.Grid.Cols(), 2*l.Grid.Rows()

	for i, e := range l.Emitters {
		if !unit(e.VX) || !unit(e.VY) {
			fail("emitter %d direction (%d, %d) must use components of -1 or 1", i, e.VX, e.VY)
		}
		if e.X < 0 || e.X > maxX || e.Y < 0 || e.Y > maxY {
			fail("emitter %d origin (%d, %d) outside board [0,%d]x[0,%d]", i, e.X, e.Y, maxX, maxY)
		}
	}

	for i, p := range l.Targets {
		if !finite(p.X) || !finite(p.Y) {
			fail("target %d (%g, %g) is not a finite point", i, p.X, p.Y)
			continue
		}
		if p.X < 0 || p.X > float64(maxX) || p.Y < 0 || p.Y > float64(maxY) {
			fail("target %d (%g, %g) outside board [0,%d]x[0,%d]", i, p.X, p.Y, maxX, maxY)
		}
	}

	if open := l.Grid.Count(CellOpen); l.Blocks.Total() > open {
		fail("%d movable blocks but only %d open cells", l.Blocks.Total(), open)
	}

	return errors.Join(errs...)
}

func unit(v int) bool {
	return v == 1 || v == -1
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
