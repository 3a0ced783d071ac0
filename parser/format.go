package parser

import (
	"strconv"
	"strings"

	"github.com/randalmurphal/lazorkit/level"
)

// Format renders l as canonical level text. Parsing the result with a strict
// parser yields a Level equal to l.
//
// Zero block counts are omitted. An empty grid produces no grid block.
func Format(l *level.Level) string {
	var b strings.Builder

	if len(l.Grid) > 0 {
		b.WriteString("GRID START\n")
		for _, row := range l.Grid {
			for i, c := range row {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(c.Symbol())
			}
			b.WriteByte('\n')
		}
		b.WriteString("GRID STOP\n")
	}

	counts := []struct {
		d Directive
		n int
	}{
		{DirectiveReflect, l.Blocks.Reflect},
		{DirectiveOpaque, l.Blocks.Opaque},
		{DirectiveRefract, l.Blocks.Refract},
	}
	for _, c := range counts {
		if c.n != 0 {
			writeDirective(&b, c.d, strconv.Itoa(c.n))
		}
	}

	for _, e := range l.Emitters {
		writeDirective(&b, DirectiveLaser,
			strconv.Itoa(e.X), strconv.Itoa(e.Y), strconv.Itoa(e.VX), strconv.Itoa(e.VY))
	}

	for _, p := range l.Targets {
		writeDirective(&b, DirectivePoint, formatFloat(p.X), formatFloat(p.Y))
	}

	return b.String()
}

func writeDirective(b *strings.Builder, d Directive, args ...string) {
	b.WriteString(string(d))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	b.WriteByte('\n')
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
