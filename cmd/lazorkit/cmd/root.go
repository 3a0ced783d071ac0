// Package cmd implements the lazorkit command line.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/lazorkit/catalog"
	"github.com/randalmurphal/lazorkit/config"
	"github.com/randalmurphal/lazorkit/parser"
)

// globals holds persistent flag values and the state built from them.
type globals struct {
	cfgFile   string
	logLevel  string
	logFormat string
	lenient   bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the lazorkit command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "lazorkit",
		Short: "Read and check Lazors level files",
		Long: `lazorkit reads Lazors puzzle levels (.bff files) and reports their
grid, block inventory, lasers, and target points.

Examples:
  lazorkit parse levels/mad_1.bff
  lazorkit parse -o yaml levels/*.bff
  lazorkit check levels
  lazorkit fmt levels/mad_1.bff
  lazorkit schema
  lazorkit watch levels`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&g.cfgFile, "config", "", "Config file (.toml, .yaml, or .json)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: text or json")
	root.PersistentFlags().BoolVar(&g.lenient, "lenient", false, "Accept unterminated grids and repeated block counts")

	root.AddCommand(
		newParseCmd(g),
		newCheckCmd(g),
		newFmtCmd(g),
		newSchemaCmd(),
		newWatchCmd(g),
	)

	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup resolves configuration: defaults, then file, then environment,
// then explicit flags.
func (g *globals) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if g.cfgFile != "" {
		loaded, err := config.Load(g.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.LoadFromEnv()

	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logFormat != "" {
		cfg.LogFormat = g.logFormat
	}
	if g.lenient {
		cfg.AllowUnterminatedGrid = true
		cfg.AllowDuplicateCounts = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	g.cfg = cfg
	g.logger = cfg.Logger(cmd.ErrOrStderr())
	g.logger.Debug("configuration resolved",
		slog.String("level_dir", cfg.LevelDir),
		slog.Bool("allow_unterminated_grid", cfg.AllowUnterminatedGrid),
		slog.Bool("allow_duplicate_counts", cfg.AllowDuplicateCounts))
	return nil
}

func (g *globals) parser() *parser.Parser {
	return parser.NewParser(g.cfg.ParserOptions()...)
}

func (g *globals) catalog(args []string) *catalog.Catalog {
	dir := g.cfg.LevelDir
	if len(args) > 0 {
		dir = args[0]
	}
	return catalog.New(dir,
		catalog.WithParser(g.parser()),
		catalog.WithExtension(g.cfg.Extension),
		catalog.WithLogger(g.logger),
		catalog.WithPollInterval(g.cfg.PollInterval),
	)
}
