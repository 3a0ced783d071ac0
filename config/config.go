package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/lazorkit/parser"
)

// Config holds lazorkit settings.
type Config struct {
	// --- Level Files ---

	// LevelDir is the directory scanned for level files.
	// Default: "levels".
	LevelDir string `json:"level_dir" yaml:"level_dir" toml:"level_dir"`

	// Extension is the level file suffix, including the dot.
	// Default: ".bff".
	Extension string `json:"extension" yaml:"extension" toml:"extension"`

	// PollInterval is used by the catalog watcher when fsnotify is unavailable.
	// Default: 1s.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`

	// --- Parser Policy ---

	// AllowUnterminatedGrid accepts files that end inside a grid block.
	AllowUnterminatedGrid bool `json:"allow_unterminated_grid" yaml:"allow_unterminated_grid" toml:"allow_unterminated_grid"`

	// AllowDuplicateCounts lets a repeated A/B/C line overwrite the earlier one.
	AllowDuplicateCounts bool `json:"allow_duplicate_counts" yaml:"allow_duplicate_counts" toml:"allow_duplicate_counts"`

	// --- Logging ---

	// LogLevel is one of "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// LogFormat is "text" or "json". Default: "text".
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LevelDir:     "levels",
		Extension:    ".bff",
		PollInterval: time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads a config file on top of DefaultConfig. The format is chosen by
// extension. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		var raw jsonConfig
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := raw.apply(&cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	return cfg, nil
}

// jsonConfig lets JSON files spell poll_interval as a duration string.
type jsonConfig struct {
	LevelDir              *string `json:"level_dir"`
	Extension             *string `json:"extension"`
	PollInterval          *string `json:"poll_interval"`
	AllowUnterminatedGrid *bool   `json:"allow_unterminated_grid"`
	AllowDuplicateCounts  *bool   `json:"allow_duplicate_counts"`
	LogLevel              *string `json:"log_level"`
	LogFormat             *string `json:"log_format"`
}

func (j jsonConfig) apply(cfg *Config) error {
	if j.LevelDir != nil {
		cfg.LevelDir = *j.LevelDir
	}
	if j.Extension != nil {
		cfg.Extension = *j.Extension
	}
	if j.PollInterval != nil {
		d, err := time.ParseDuration(*j.PollInterval)
		if err != nil {
			return fmt.Errorf("poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if j.AllowUnterminatedGrid != nil {
		cfg.AllowUnterminatedGrid = *j.AllowUnterminatedGrid
	}
	if j.AllowDuplicateCounts != nil {
		cfg.AllowDuplicateCounts = *j.AllowDuplicateCounts
	}
	if j.LogLevel != nil {
		cfg.LogLevel = *j.LogLevel
	}
	if j.LogFormat != nil {
		cfg.LogFormat = *j.LogFormat
	}
	return nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the LAZORKIT_ prefix and take precedence over
// existing values. Unparseable values are ignored.
//
// Supported variables:
//   - LAZORKIT_LEVEL_DIR
//   - LAZORKIT_EXTENSION
//   - LAZORKIT_POLL_INTERVAL (e.g., "500ms")
//   - LAZORKIT_ALLOW_UNTERMINATED_GRID (bool)
//   - LAZORKIT_ALLOW_DUPLICATE_COUNTS (bool)
//   - LAZORKIT_LOG_LEVEL
//   - LAZORKIT_LOG_FORMAT
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("LAZORKIT_LEVEL_DIR"); v != "" {
		c.LevelDir = v
	}
	if v := os.Getenv("LAZORKIT_EXTENSION"); v != "" {
		c.Extension = v
	}
	if v := os.Getenv("LAZORKIT_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = d
		}
	}
	if v := os.Getenv("LAZORKIT_ALLOW_UNTERMINATED_GRID"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowUnterminatedGrid = b
		}
	}
	if v := os.Getenv("LAZORKIT_ALLOW_DUPLICATE_COUNTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowDuplicateCounts = b
		}
	}
	if v := os.Getenv("LAZORKIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LAZORKIT_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.LevelDir == "" {
		return fmt.Errorf("level_dir is required")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension must start with a dot, got %q", c.Extension)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0, got %v", c.PollInterval)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// ParserOptions translates the parser policy into parser options.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.AllowUnterminatedGrid {
		opts = append(opts, parser.WithAllowUnterminatedGrid())
	}
	if c.AllowDuplicateCounts {
		opts = append(opts, parser.WithAllowDuplicateCounts())
	}
	return opts
}

// Logger builds a slog.Logger writing to w with the configured level and
// format. Unknown values fall back to info and text.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
