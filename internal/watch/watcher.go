// Package watch re-runs a reload callback when project inputs change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitepack/internal/logfields"
	"git.home.luguber.info/inful/sitepack/internal/util/sets"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc is invoked after a debounced change. Calls never overlap.
type ReloadFunc func(ctx context.Context) error

// Watcher monitors a fixed set of files and triggers reloads.
type Watcher struct {
	files        sets.Set[string]
	reload       ReloadFunc
	watcher      *fsnotify.Watcher
	logger       *slog.Logger
	mu           sync.Mutex
	started      bool
	stopChan     chan struct{}
	reloadChan   chan struct{}
	done         sync.WaitGroup
	debounceTime time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounceTime = d } }

func WithLogger(l *slog.Logger) Option { return func(w *Watcher) { w.logger = l } }

// New creates a watcher for the given files. Files need not exist yet.
func New(files []string, reload ReloadFunc, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	abs := sets.New[string]()
	for _, f := range files {
		p, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", f, err)
		}
		abs.Add(p)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		files:        abs,
		reload:       reload,
		watcher:      fw,
		logger:       slog.Default(),
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: DefaultDebounce,
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Start watches the parent directory of every file; watching directories
// survives editors that replace files on save.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	dirs := sets.New[string]()
	for f := range w.files {
		dirs.Add(filepath.Dir(f))
	}
	for _, dir := range sets.Sorted(dirs) {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.started = true

	w.logger.Info("Watching project inputs", logfields.Count(len(w.files)))

	w.done.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and waits for an in-flight reload to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	select {
	case <-w.stopChan:
		w.mu.Unlock()
		return nil
	default:
	}
	close(w.stopChan)
	err := w.watcher.Close()
	w.mu.Unlock()

	w.done.Wait()
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.done.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files.Has(filepath.Clean(event.Name)) {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("Input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				w.logger.Warn("Input removed", logfields.Path(event.Name))
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop runs reloads on its own goroutine, one at a time.
func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.done.Done()
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.reloadChan:
			timer.Reset(w.debounceTime)
		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				w.logger.Error("Reload failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
	}
}
