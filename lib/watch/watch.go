// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch reports changes to the files of a data directory.
//
// A [Watcher] observes a fixed set of directories (not recursively) and
// groups bursts of filesystem events into a single [Batch] once the
// directories have been quiet for the debounce interval. Editors often
// write a file as several events (truncate, write, chmod, rename), and
// reloading once per burst is what callers want.
//
// [Watcher.Run] delivers batches on the caller's goroutine, so a reload
// triggered by one batch finishes before the next batch is delivered.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RehanPlayz/oraxen/lib/clock"
)

// DefaultDebounce is the quiet interval used when Options.Debounce is
// zero.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoDirectories is returned by New when none of the requested
// directories exist.
var ErrNoDirectories = errors.New("no directories to watch")

// ErrAlreadyRunning is returned by Run when the watcher has been run
// before.
var ErrAlreadyRunning = errors.New("watcher already running")

// Options configures a [Watcher].
type Options struct {
	// Extension limits reported files to names ending in it. Empty
	// reports every file.
	Extension string

	// Debounce is the quiet interval before a batch is delivered.
	Debounce time.Duration

	// Clock drives the debounce timer. Nil means clock.Real().
	Clock clock.Clock

	Logger *slog.Logger
}

// Batch is a group of changed files.
type Batch struct {
	// Paths are the changed files, sorted and without duplicates.
	Paths []string

	// At is when the batch was delivered.
	At time.Time
}

// Watcher watches directories for file changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dirs     []string
	ext      string
	debounce time.Duration
	clock    clock.Clock
	logger   *slog.Logger
	ready    chan struct{}
	started  atomic.Bool
}

// New starts watching dirs. Directories that do not exist are skipped
// with a warning; if none exist New fails with [ErrNoDirectories].
func New(dirs []string, options Options) (*Watcher, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	debounce := options.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		ext:      options.Extension,
		debounce: debounce,
		clock:    clk,
		logger:   logger,
		ready:    make(chan struct{}),
	}

	for _, dir := range dirs {
		absolute, err := filepath.Abs(dir)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		info, err := os.Stat(absolute)
		if err != nil || !info.IsDir() {
			logger.Warn("not watching missing directory", "dir", absolute)
			continue
		}
		if err := fsw.Add(absolute); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", absolute, err)
		}
		w.dirs = append(w.dirs, absolute)
	}

	if len(w.dirs) == 0 {
		fsw.Close()
		return nil, ErrNoDirectories
	}
	return w, nil
}

// Dirs returns the watched directories as absolute paths.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Ready is closed once Run has started consuming events.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run delivers change batches to handler until ctx is done or the
// watcher is closed. It returns nil on cancellation. A watcher runs at
// most once; later calls return [ErrAlreadyRunning].
func (w *Watcher) Run(ctx context.Context, handler func(Batch)) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	pending := make(map[string]bool)
	var fire <-chan time.Time

	close(w.ready)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = true
			// Each event restarts the quiet interval.
			fire = w.clock.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)
			handler(Batch{Paths: paths, At: w.clock.Now()})
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.ext == "" || strings.HasSuffix(base, w.ext)
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
