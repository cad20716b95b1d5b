// Package watcher re-runs the rename pass when new files land in the directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"slicerename/internal/logger"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce       time.Duration          // Quiet period before a pass (default: 2s)
	IgnorePatterns []string               // Glob patterns to ignore; nil selects DefaultIgnorePatterns
	Accept         func(name string) bool // Extra filter on the base name; nil accepts all
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce:       2 * time.Second,
		IgnorePatterns: DefaultIgnorePatterns(),
	}
}

// PassResult is what a single pass reports back to the watcher.
type PassResult struct {
	Renamed int
	Errors  int
}

// PassFunc runs one full pass over the watched directory.
type PassFunc func() (PassResult, error)

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	Passes   int
	Renamed  int
	Errors   int
	Ignored  int // Events dropped by the filter
	Duration time.Duration
}

// Watcher monitors one directory and serializes passes over it.
type Watcher struct {
	config    *WatchConfig
	pass      PassFunc
	filter    *FileFilter
	debouncer *Debouncer
	triggers  chan []string
	log       *slog.Logger

	mu      sync.Mutex
	summary WatchSummary
}

// New creates a new Watcher. If config is nil, defaults are used. A nil logger
// discards diagnostics.
func New(config *WatchConfig, pass PassFunc, log *slog.Logger) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	if log == nil {
		log = logger.Discard().Logger
	}
	w := &Watcher{
		config:   config,
		pass:     pass,
		filter:   NewFileFilter(config.IgnorePatterns, config.Accept),
		triggers: make(chan []string, 1),
		log:      log,
	}
	w.debouncer = NewDebouncer(config.Debounce, w.schedule)
	return w
}

// schedule queues a pass. At most one pass is queued; a pass scans the whole
// directory, so later triggers are folded into the queued one.
func (w *Watcher) schedule(names []string) {
	select {
	case w.triggers <- names:
	default:
	}
}

// Run watches dir until ctx is cancelled. One pass runs as soon as the watch
// is registered, then one more each time the debouncer fires. Passes run on
// the calling goroutine, one at a time.
//
// A pass error ends the session and is returned with the summary so far.
func (w *Watcher) Run(ctx context.Context, dir string) (*WatchSummary, error) {
	start := time.Now()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(absDir); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", absDir, err)
	}
	defer w.debouncer.Cancel()

	w.log.Info("watching", "dir", absDir, "debounce", w.config.Debounce)

	if err := w.runPass(nil); err != nil {
		return w.finish(start), err
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped", "reason", ctx.Err())
			return w.finish(start), nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return w.finish(start), nil
			}
			w.handleEvent(event)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return w.finish(start), nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost; a pass covers anything we missed.
				w.debouncer.Add("")
			}
			w.log.Warn("watch error", "error", err)

		case names := <-w.triggers:
			if err := w.runPass(names); err != nil {
				return w.finish(start), err
			}
		}
	}
}

// handleEvent feeds relevant events to the debouncer. Only creations and
// writes count; a rename away from a slice name is our own doing.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.filter.Wants(event.Name) {
		w.mu.Lock()
		w.summary.Ignored++
		w.mu.Unlock()
		return
	}
	w.log.Debug("file event", "op", event.Op.String(), "file", filepath.Base(event.Name))
	w.debouncer.Add(filepath.Base(event.Name))
}

func (w *Watcher) runPass(names []string) error {
	if len(names) > 0 {
		w.log.Debug("pass triggered", "files", names)
	}

	res, err := w.pass()

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.log.Error("pass failed", "error", err)
		return err
	}
	w.summary.Passes++
	w.summary.Renamed += res.Renamed
	w.summary.Errors += res.Errors
	return nil
}

func (w *Watcher) finish(start time.Time) *WatchSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.summary
	s.Duration = time.Since(start)
	return &s
}

// String formats the summary for the end of a watch session.
func (s *WatchSummary) String() string {
	return fmt.Sprintf("Watch ended: %d passes, %d renamed, %d errors", s.Passes, s.Renamed, s.Errors)
}
