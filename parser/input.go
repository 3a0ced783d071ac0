package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/randalmurphal/lazorkit/level"
)

// ParseReader reads r to the end and parses the result.
func (p *Parser) ParseReader(r io.Reader) (*level.Level, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return p.Parse(string(data))
}

// ParseFile reads and parses the level file at path.
// Parse errors are wrapped with the file path; errors.As still reaches the
// *ParseError.
func (p *Parser) ParseFile(path string) (*level.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level file: %w", err)
	}
	lvl, err := p.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// ParseFile is a convenience function using a strict parser.
func ParseFile(path string) (*level.Level, error) {
	return NewParser().ParseFile(path)
}
