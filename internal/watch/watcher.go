// Package watch re-runs generation when Go sources, manifests or the
// configuration change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"wither-generator/internal/logger"
)

// DefaultDebounce batches bursts of file events into one run.
const DefaultDebounce = 200 * time.Millisecond

// RunFunc performs one generation pass.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Suffix identifies generated files, whose changes are ignored.
	Suffix string
	// Debounce is the quiet period before a run; zero uses DefaultDebounce.
	Debounce time.Duration
}

// Watcher runs a RunFunc whenever relevant files in its directories change.
type Watcher struct {
	dirs []string
	opts Options
	run  RunFunc
}

// New creates a Watcher over dirs.
func New(dirs []string, opts Options, run RunFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return &Watcher{dirs: dirs, opts: opts, run: run}
}

// Run performs one pass immediately, then one pass per batch of changes
// until ctx is done. Failed passes are logged; they do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Info("watching for changes", "directories", len(w.dirs))
	w.pass(ctx)

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping file watcher")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			log.Debug("detected file change, debouncing", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}

			trigger = timer.C
		case <-trigger:
			trigger = nil
			w.pass(ctx)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			log.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) pass(ctx context.Context) {
	log := logger.FromContext(ctx)

	start := time.Now()

	err := w.run(ctx)

	switch {
	case err == nil:
		log.Info("generation finished", "duration", time.Since(start).Round(time.Millisecond))
	case errors.Is(err, context.Canceled):
	default:
		log.Error("generation failed", "error", err)
	}
}

// relevant reports whether an event should trigger a run: changes to Go
// sources, YAML or TOML files, but not to generated output or tests.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".#") || strings.HasSuffix(name, "~") {
		return false
	}

	switch filepath.Ext(name) {
	case ".go":
		if strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, ".unformatted.go") {
			return false
		}

		return w.opts.Suffix == "" || !strings.HasSuffix(name, w.opts.Suffix)
	case ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
