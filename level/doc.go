// Package level defines the in-memory representation of a Lazors puzzle board.
//
// Core types:
//   - Cell: One grid square (open, no-block, or a fixed reflect/opaque/refract block)
//   - Grid: Rows of cells, indexed [row][col]
//   - Inventory: Movable blocks available to the player
//   - Emitter: A laser origin and direction on the doubled coordinate grid
//   - Point: A coordinate a laser must pass through
//   - Level: Everything above for one board
//
// Coordinates on emitters and points use the doubled system of the original
// game: cell (col, row) spans x in [2*col, 2*col+2] and y in [2*row, 2*row+2],
// so odd values sit on cell edge midpoints and even values on grid lines.
//
// Levels are produced by the parser package and are treated as read-only by
// consumers. Validate performs the semantic checks the parser leaves out:
//
//	lvl, err := parser.ParseFile("mad_1.bff")
//	if err != nil {
//	    return err
//	}
//	if err := lvl.Validate(); err != nil {
//	    return err
//	}
package level
