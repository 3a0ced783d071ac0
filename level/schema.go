package level

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema describes a Cell as one of the legend symbols.
func (Cell) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(cellSymbols))
	for _, s := range cellSymbols {
		enum = append(enum, s)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Legend symbol: o open, x no block, A/B/C fixed reflect/opaque/refract",
	}
}

// Schema returns the JSON Schema for the JSON encoding of Level.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&Level{})
	s.Title = "Lazors level"
	return s
}
