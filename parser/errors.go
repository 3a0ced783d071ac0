package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for parse failures. Every error returned by the parser
// wraps exactly one of these.
var (
	// ErrMalformedDirective indicates a directive line with the wrong number
	// of arguments or an argument that is not a number.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrInvalidLegendToken indicates a grid token outside the legend.
	ErrInvalidLegendToken = errors.New("invalid legend token")

	// ErrUnterminatedGrid indicates input ended inside a grid block.
	ErrUnterminatedGrid = errors.New("unterminated grid block")

	// ErrDuplicateDirective indicates a block count directive given twice.
	ErrDuplicateDirective = errors.New("duplicate directive")

	// ErrRaggedGrid indicates grid rows of differing lengths.
	ErrRaggedGrid = errors.New("grid is not rectangular")

	// ErrUnexpectedMarker indicates GRID START inside a grid block or
	// GRID STOP outside one.
	ErrUnexpectedMarker = errors.New("unexpected grid marker")
)

// ParseError ties a parse failure to its source line.
type ParseError struct {
	Line      int       // 1-based line number; 0 when not tied to a line
	Text      string    // The offending line, trimmed
	Directive Directive // Directive being parsed, if any
	Token     string    // The offending token, if any
	Detail    string    // Human-readable explanation
	Err       error     // One of the Err* sentinels
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	switch {
	case e.Err != nil && e.Detail != "":
		b.WriteString(e.Err.Error())
		b.WriteString(": ")
		b.WriteString(e.Detail)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Detail != "":
		b.WriteString(e.Detail)
	default:
		b.WriteString("parse error")
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " (in %q)", e.Text)
	}
	return b.String()
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsSyntaxError reports whether err comes from malformed level text, as
// opposed to I/O failures.
func IsSyntaxError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}

func malformed(d Directive, text, token, detail string) *ParseError {
	return &ParseError{
		Text:      text,
		Directive: d,
		Token:     token,
		Detail:    fmt.Sprintf("%s: %s, want %q", d, detail, d.Usage()),
		Err:       ErrMalformedDirective,
	}
}
