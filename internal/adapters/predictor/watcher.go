package predictor

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/talentscope/pkg/logger"
)

const defaultDebounce = 250 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the directory must be quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher reloads a Registry when model files in its directory change.
type Watcher struct {
	registry *Registry
	debounce time.Duration
	log      logger.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	reloads int
}

// NewWatcher creates a Watcher for r.
func NewWatcher(r *Registry, opts ...WatcherOption) *Watcher {
	w := &Watcher{registry: r, debounce: defaultDebounce, log: logger.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the registry directory. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrWatcherRunning
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.registry.Dir()); err != nil {
		_ = fsw.Close()
		return err
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx, fsw, w.stopCh, w.doneCh)

	w.log.Info(ctx, "watching predictor directory", logger.String("dir", w.registry.Dir()))
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh, doneCh, fsw := w.stopCh, w.doneCh, w.fsw
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	_ = fsw.Close()
}

// Reloads returns how many reloads the watcher triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	// timer is armed by relevant events and fires once the directory settles
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug(ctx, "model file changed", logger.String("file", ev.Name), logger.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Error(ctx, "predictor watcher error", logger.Error(err))
		case <-timer.C:
			// errors are logged by the registry; the old set stays active
			_ = w.registry.Load(ctx)
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(ev.Name), FileSuffix) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
