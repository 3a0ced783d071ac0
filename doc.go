// Package lazorkit reads Lazors puzzle levels.
//
// A Lazors level (.bff file) describes a board of cells, the movable blocks
// the player may place, the lasers and their starting directions, and the
// points every solution must hit. lazorkit turns that text into data.
// Each subpackage can be used independently:
//
//   - level: The Level data model, validation, and JSON Schema
//   - parser: The .bff grammar, parser, and canonical formatter
//   - catalog: Load and watch a directory of level files
//   - config: Parser policy, level directory, and logging settings
//
// The lazorkit command (cmd/lazorkit) wraps these for the shell.
//
// # Quick Start
//
// Parsing a level:
//
//	import "github.com/randalmurphal/lazorkit/parser"
//	lvl, err := parser.ParseFile("mad_1.bff")
//
// Checking it is playable:
//
//	if err := lvl.Validate(); err != nil { ... }
//
// Loading a directory:
//
//	import "github.com/randalmurphal/lazorkit/catalog"
//	c := catalog.New("levels")
//	err := c.Load()
//
// # Design Philosophy
//
//   - Strict by default: malformed input fails with the line that caused it
//   - Parsing and semantic validation are separate steps
//   - Parsed levels are plain values, safe to share once returned
package lazorkit
