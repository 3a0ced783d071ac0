// Package parser reads Lazors level files (.bff) into level.Level values.
//
// Core types:
//   - Parser: Drives the line classifier over a document and builds the Level
//   - Line: One classified input line (grid marker, grid row, directive, or ignored)
//   - ParseError: A failure tied to a source line, wrapping one of the Err* sentinels
//
// The format is line oriented. A grid block sits between GRID START and
// GRID STOP; every other line is either a directive or ignored:
//
//	# Mad 1
//	GRID START
//	o o o o
//	o o o o
//	GRID STOP
//	A 2
//	C 1
//	L 2 7 1 -1
//	P 3 0
//	P 4 3
//
// Example usage:
//
//	p := parser.NewParser()
//	lvl, err := p.ParseFile("mad_1.bff")
//	if err != nil {
//	    var perr *parser.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Printf("line %d: %s\n", perr.Line, perr.Text)
//	    }
//	    return err
//	}
//
// By default the parser is strict: an unterminated grid block and a repeated
// A/B/C directive are errors. WithAllowUnterminatedGrid and
// WithAllowDuplicateCounts accept the looser form some hand-written
// level files use.
//
// Convenience functions:
//
//	lvl, err := parser.Parse(text)
//	lvl, err := parser.ParseFile(path)
//	text := parser.Format(lvl)
package parser
