package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/lazorkit/level"
)

func newParseCmd(g *globals) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse level files and print them",
		Long: `Parses each level file and prints the result as JSON or YAML.
With one file the level itself is printed; with several, a list of
{file, level} records.

Examples:
  lazorkit parse mad_1.bff
  lazorkit parse -o yaml mad_1.bff tiny_5.bff`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("invalid output format %q: must be json or yaml", output)
			}

			p := g.parser()
			records := make([]parsedFile, 0, len(args))
			for _, path := range args {
				lvl, err := p.ParseFile(path)
				if err != nil {
					return err
				}
				records = append(records, parsedFile{File: path, Level: lvl})
			}

			var v any = records
			if len(records) == 1 {
				v = records[0].Level
			}
			return writeValue(cmd.OutOrStdout(), output, v)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return c
}

type parsedFile struct {
	File  string       `json:"file" yaml:"file"`
	Level *level.Level `json:"level" yaml:"level"`
}

func writeValue(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
