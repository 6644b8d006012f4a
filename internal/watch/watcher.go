// SPDX-License-Identifier: MPL-2.0

// Package watch turns filesystem changes under a schema directory into
// debounced reload triggers.
//
// It monitors a directory tree and emits one trigger on a channel after a
// quiet period, coalescing the rapid event bursts editors and sync tools
// produce into a single reload. The consumer (registry.Reloadable.Run) treats
// each trigger as a no-argument request to reload; no file paths cross the
// channel.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before a trigger fires after the last
// filesystem event, so that a temp-file write-then-rename from an editor
// causes one reload rather than two.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores lists path patterns that never produce triggers. These cover
// VCS metadata, editor swap files, and OS metadata that generate
// high-frequency noise inside otherwise quiet schema directories.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dir is the root directory to watch, typically the schema
		// directory a Reloadable loads from. Required.
		Dir string

		// Patterns are doublestar-compatible glob patterns (e.g., "**/*.json")
		// selecting which files produce triggers. An empty slice matches all
		// non-ignored files.
		Patterns []string

		// Ignore are additional doublestar-compatible glob patterns for paths
		// that never produce triggers, merged with the built-in defaults.
		Ignore []string

		// Debounce is the quiet period after the last event before a trigger
		// is emitted. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration
	}

	// Watcher monitors a directory tree and emits debounced reload triggers.
	// Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		debounce time.Duration
		baseDir  string
		triggers chan struct{}

		mu      sync.Mutex
		timer   *time.Timer
		started bool
	}
)

// New creates a Watcher from the given Config. It resolves Dir to an absolute
// path, validates all glob patterns eagerly so bad globs fail here rather
// than silently never matching, and registers every non-ignored directory
// under Dir for monitoring.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch: directory is required")
	}
	absBase, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve directory: %w", err)
	}

	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		debounce: debounce,
		baseDir:  absBase,
		triggers: make(chan struct{}, 1),
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			slog.Warn("close watcher after init failure", "error", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Triggers returns the channel reload triggers are emitted on. The channel
// has capacity one; a trigger arriving while a previous one is still
// unconsumed is dropped, which is safe because each consumed trigger causes
// a full re-read of the source anyway.
func (w *Watcher) Triggers() <-chan struct{} { return w.triggers }

// Run blocks until ctx is cancelled, turning filesystem events into debounced
// triggers. It returns nil on clean context cancellation and propagates fatal
// fsnotify errors (resource exhaustion); transient errors are logged and the
// loop continues. Run must be called exactly once.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("watch: Run called more than once")
	}
	w.started = true
	w.mu.Unlock()

	// Stop any armed timer and release the fsnotify handle on exit. The
	// timer may still fire after Stop returns false; emit is non-blocking,
	// so a late fire only deposits a trigger nobody reads.
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			slog.Warn("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}

			if w.isIgnored(rel) {
				continue
			}

			// Newly created directories are added before pattern matching so
			// recursive watches extend to version directories created after
			// startup, even when the directory name itself matches no pattern.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			if !w.matchesPatterns(rel) {
				continue
			}

			w.mu.Lock()
			if w.timer == nil {
				w.timer = time.AfterFunc(w.debounce, w.emit)
			} else {
				w.timer.Reset(w.debounce)
			}
			w.mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			// isFatalFsnotifyError is platform-specific (see watcher_fatal_*.go).
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			slog.Warn("fsnotify error", "error", err)
		}
	}
}

// emit deposits a trigger without blocking. A full channel means a trigger is
// already pending; the upcoming reload covers this event too.
func (w *Watcher) emit() {
	select {
	case w.triggers <- struct{}{}:
	default:
	}
}

// addDirectories walks the base directory and registers every non-ignored
// directory with fsnotify. Pattern filtering applies to events, not to
// directory registration.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			// Skip inaccessible paths rather than aborting the whole walk;
			// permission errors on individual subdirectories are common.
			slog.Warn("skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}

		if w.isIgnored(rel) || w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// maybeAddDir adds path to the fsnotify watcher if it is a non-ignored
// directory, extending the watch to directories created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil {
		return
	}

	if w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		slog.Warn("add new directory to watch", "path", path, "error", addErr)
	}
}

// isIgnored reports whether the path (relative to Dir) matches any ignore
// pattern.
func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// matchesPatterns reports whether the path (relative to Dir) matches at least
// one watch pattern. No configured patterns means everything matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	out := make([]string, len(defaultIgnores))
	copy(out, defaultIgnores)
	return out
}

// validatePatterns checks that every pattern is a valid doublestar glob. The
// label ("watch" or "ignore") is used in error messages.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
