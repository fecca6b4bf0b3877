package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// BookWatcher watches a single file, normally the address book.
type BookWatcher struct {
	path      string
	opts      Options
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	events    chan FileEvent
	errors    chan error
	stopCh    chan struct{}

	mu             sync.RWMutex
	stopped        bool
	droppedEvents  atomic.Uint64
	pollingEnabled bool
}

var _ Watcher = (*BookWatcher)(nil)

// New creates a watcher for path. The file itself need not exist yet,
// but its directory must.
func New(path string, opts Options) (*BookWatcher, error) {
	opts = opts.WithDefaults()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	w := &BookWatcher{
		path:      absPath,
		opts:      opts,
		debouncer: NewDebouncer(opts.DebounceWindow),
		events:    make(chan FileEvent, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}

	if !opts.ForcePolling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fsw.Add(filepath.Dir(absPath)); err == nil {
				w.fsWatcher = fsw
				return w, nil
			}
			_ = fsw.Close()
		}
		slog.Warn("fsnotify unavailable, polling book file",
			slog.String("path", absPath),
			slog.Duration("interval", opts.PollInterval))
	}
	w.pollingEnabled = true
	return w, nil
}

// Run watches until ctx is cancelled or Stop is called.
// It returns nil on either, so it can run under an errgroup.
func (w *BookWatcher) Run(ctx context.Context) error {
	defer func() { _ = w.Stop() }()

	go w.forwardDebounced(ctx)

	if w.pollingEnabled {
		p, err := newPoller(w.path)
		if err != nil {
			return fmt.Errorf("stat book file: %w", err)
		}
		p.run(ctx, w.stopCh, w.opts.PollInterval, w.record, w.emitError)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

// handleFsnotifyEvent keeps events for the watched file only.
// Temp and lock files next to it are ignored by the name check.
func (w *BookWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		w.record(OpCreate)
	case event.Op&fsnotify.Write != 0:
		w.record(OpModify)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.record(OpDelete)
	}
}

func (w *BookWatcher) record(op Operation) {
	w.debouncer.Add(FileEvent{
		Path:      w.path,
		Operation: op,
		Timestamp: time.Now(),
	})
}

func (w *BookWatcher) forwardDebounced(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return
			}
			for _, event := range batch {
				w.emit(event)
			}
		}
	}
}

func (w *BookWatcher) emit(event FileEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return
	}

	select {
	case w.events <- event:
	default:
		count := w.droppedEvents.Add(1)
		slog.Warn("book watcher buffer full, dropping event",
			slog.String("op", event.Operation.String()),
			slog.Uint64("total_dropped", count))
	}
}

func (w *BookWatcher) emitError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return
	}

	select {
	case w.errors <- err:
	default:
	}
}

// Stop stops the watcher and releases resources.
func (w *BookWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	w.debouncer.Stop()
	if w.fsWatcher != nil {
		_ = w.fsWatcher.Close()
	}

	close(w.events)
	close(w.errors)
	return nil
}

// Events returns the channel of debounced file events.
func (w *BookWatcher) Events() <-chan FileEvent {
	return w.events
}

// Errors returns the channel of errors.
func (w *BookWatcher) Errors() <-chan error {
	return w.errors
}

// Path returns the absolute path being watched.
func (w *BookWatcher) Path() string {
	return w.path
}

// WatcherType returns "fsnotify" or "polling".
func (w *BookWatcher) WatcherType() string {
	if w.pollingEnabled {
		return "polling"
	}
	return "fsnotify"
}
