package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/lazorkit/level"
)

// Op is the kind of change a watch Event reports.
type Op int

const (
	OpUpdated Op = iota // file created or rewritten and reparsed
	OpRemoved           // file deleted or renamed away
)

func (o Op) String() string {
	if o == OpRemoved {
		return "removed"
	}
	return "updated"
}

// Event reports one catalog change.
type Event struct {
	Op   Op
	Name string
	Path string

	// Level is the reparsed level of an updated file.
	Level *level.Level

	// Err is the parse error of an updated file, if it failed to parse.
	Err error
}

// Watch follows the catalog directory and sends an Event for every level
// file that changes. The catalog is updated before the event is sent.
// The channel is closed when ctx is cancelled.
//
// Call Load first; Watch only reports changes from the current state.
// Uses fsnotify with a polling fallback.
func (c *Catalog) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, 64)

	go func() {
		defer close(ch)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			c.logger.Warn("fsnotify unavailable, polling level dir",
				slog.String("dir", c.dir), slog.Any("error", err))
			c.watchPolling(ctx, ch)
			return
		}
		defer watcher.Close()

		if err := c.addDirs(watcher); err != nil {
			c.logger.Warn("cannot watch level dir, polling instead",
				slog.String("dir", c.dir), slog.Any("error", err))
			c.watchPolling(ctx, ch)
			return
		}

		c.watchWithWatcher(ctx, ch, watcher)
	}()

	return ch
}

// addDirs registers the catalog directory and every subdirectory.
func (c *Catalog) addDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// watchWithWatcher uses fsnotify for efficient directory watching.
func (c *Catalog) watchWithWatcher(ctx context.Context, ch chan<- Event, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// New subdirectory: watch it and pick up anything already inside.
					if err := watcher.Add(event.Name); err != nil {
						c.logger.Warn("cannot watch new directory",
							slog.String("dir", event.Name), slog.Any("error", err))
					}
					if !c.refreshAndSend(ctx, ch) {
						return
					}
					continue
				}
			}

			if !strings.HasSuffix(event.Name, c.ext) {
				// Removed or renamed subdirectory: rescan to drop its levels.
				if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					if !c.refreshAndSend(ctx, ch) {
						return
					}
				}
				continue
			}

			var ev Event
			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				ev = c.remove(event.Name)
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				ev = c.update(event.Name)
			default:
				continue
			}

			if !send(ctx, ch, ev) {
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("level dir watch error", slog.Any("error", err))
		}
	}
}

// watchPolling rescans the directory on a ticker when fsnotify isn't available.
func (c *Catalog) watchPolling(ctx context.Context, ch chan<- Event) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.refreshAndSend(ctx, ch) {
				return
			}
		}
	}
}

func (c *Catalog) refreshAndSend(ctx context.Context, ch chan<- Event) bool {
	events, err := c.Refresh()
	if err != nil {
		c.logger.Warn("level dir rescan failed", slog.Any("error", err))
		return true
	}
	for _, ev := range events {
		if !send(ctx, ch, ev) {
			return false
		}
	}
	return true
}

// Refresh compares the directory with the catalog, reparsing new or
// modified files and dropping deleted ones. It returns the changes made.
func (c *Catalog) Refresh() ([]Event, error) {
	files, err := FindLevelFiles(c.dir, c.ext)
	if err != nil {
		return nil, err
	}

	onDisk := make(map[string]bool, len(files))
	var events []Event

	for _, path := range files {
		name := c.nameFor(path)
		onDisk[name] = true

		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		existing, ok := c.Get(name)
		if ok && existing.ModTime.Equal(info.ModTime()) {
			continue
		}
		events = append(events, c.update(path))
	}

	for _, name := range c.Names() {
		if !onDisk[name] {
			existing, _ := c.Get(name)
			events = append(events, c.remove(existing.Path))
		}
	}

	return events, nil
}

// update reparses path and stores the result.
func (c *Catalog) update(path string) Event {
	entry := c.loadFile(path)

	c.mu.Lock()
	c.entries[entry.Name] = entry
	c.mu.Unlock()

	c.logger.Info("level updated", slog.String("name", entry.Name), slog.Bool("ok", entry.Err == nil))
	return Event{Op: OpUpdated, Name: entry.Name, Path: path, Level: entry.Level, Err: entry.Err}
}

// remove drops the entry for path.
func (c *Catalog) remove(path string) Event {
	name := c.nameFor(path)

	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()

	c.logger.Info("level removed", slog.String("name", name))
	return Event{Op: OpRemoved, Name: name, Path: path}
}

func send(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
