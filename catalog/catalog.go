package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/lazorkit/level"
	"github.com/randalmurphal/lazorkit/parser"
)

// DefaultExtension is the suffix of level files.
const DefaultExtension = ".bff"

// Entry is one level file and its parse result.
type Entry struct {
	// Name is the path relative to the catalog directory, without extension,
	// using forward slashes (e.g., "mad/mad_1").
	Name string

	// Path is the file path on disk.
	Path string

	// Level is nil when Err is set.
	Level *level.Level

	// Err holds the parse or read failure, if any.
	Err error

	// ModTime is the file modification time when it was last loaded.
	ModTime time.Time
}

// Catalog holds the parsed levels of one directory.
// It is safe for concurrent use.
type Catalog struct {
	dir          string
	ext          string
	parser       *parser.Parser
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.RWMutex
	entries map[string]Entry
}

// Option configures a Catalog.
type Option func(*Catalog)

// New creates a catalog for dir. Nothing is read until Load or Watch.
func New(dir string, opts ...Option) *Catalog {
	c := &Catalog{
		dir:          dir,
		ext:          DefaultExtension,
		parser:       parser.NewParser(),
		logger:       slog.Default(),
		pollInterval: time.Second,
		entries:      make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithParser sets the parser used for every file.
func WithParser(p *parser.Parser) Option {
	return func(c *Catalog) { c.parser = p }
}

// WithExtension sets the level file suffix, including the dot.
func WithExtension(ext string) Option {
	return func(c *Catalog) { c.ext = ext }
}

// WithLogger sets the logger for load and watch events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// WithPollInterval sets how often the polling fallback rescans.
func WithPollInterval(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Load parses every level file under the directory, replacing any previous
// contents. Only a failure to walk the directory is returned; per-file
// errors are recorded on the entries.
func (c *Catalog) Load() error {
	files, err := FindLevelFiles(c.dir, c.ext)
	if err != nil {
		return err
	}

	entries := make(map[string]Entry, len(files))
	for _, path := range files {
		entry := c.loadFile(path)
		entries[entry.Name] = entry
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	c.logger.Info("level catalog loaded",
		slog.String("dir", c.dir),
		slog.Int("levels", len(entries)),
		slog.Int("errors", len(c.Errors())))

	return nil
}

// loadFile parses one file into an Entry and logs failures.
func (c *Catalog) loadFile(path string) Entry {
	entry := Entry{Name: c.nameFor(path), Path: path}

	if info, err := os.Stat(path); err == nil {
		entry.ModTime = info.ModTime()
	}

	lvl, err := c.parser.ParseFile(path)
	if err != nil {
		entry.Err = err
		c.logger.Warn("level failed to parse",
			slog.String("name", entry.Name),
			slog.Any("error", err))
		return entry
	}

	entry.Level = lvl
	c.logger.Debug("level parsed",
		slog.String("name", entry.Name),
		slog.Int("rows", lvl.Grid.Rows()),
		slog.Int("cols", lvl.Grid.Cols()),
		slog.Int("emitters", len(lvl.Emitters)),
		slog.Int("targets", len(lvl.Targets)))
	return entry
}

// nameFor converts a file path into its catalog name.
func (c *Catalog) nameFor(path string) string {
	rel, err := filepath.Rel(c.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, c.ext))
}

// Get returns the entry for name.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Names returns every entry name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Levels returns the successfully parsed levels keyed by name.
func (c *Catalog) Levels() map[string]*level.Level {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*level.Level, len(c.entries))
	for name, e := range c.entries {
		if e.Err == nil {
			out[name] = e.Level
		}
	}
	return out
}

// Errors returns the parse failures keyed by name.
func (c *Catalog) Errors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]error)
	for name, e := range c.entries {
		if e.Err != nil {
			out[name] = e.Err
		}
	}
	return out
}

// Len returns the number of entries, including broken ones.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// FindLevelFiles returns every file under dir ending in ext, sorted by path.
func FindLevelFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk level dir: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
