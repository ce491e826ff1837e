// Package theme reloads palette files while the terminal is running.
package theme

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/palette"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before reloading.
const DefaultDebounce = 150 * time.Millisecond

// ReloadHandler receives a freshly loaded palette. Handlers run on the
// watcher goroutine and must hand the palette over to the loop, for
// example with runtime.Terminal.PostPalette.
type ReloadHandler func(p palette.Palette)

// Subscription binds an id to a handler.
type Subscription struct {
	ID      string
	Handler ReloadHandler
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for reload results.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher watches one palette file. The containing directory is watched so
// editors that replace the file by renaming are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *logging.Logger

	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	lastErr       error
	reloads       int

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
}

// NewWatcher starts watching path. Run must be called to process events.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrCodeInvalidInput, "invalid palette path").
			WithContext("path", path)
	}
	w := &Watcher{
		path:          abs,
		debounce:      DefaultDebounce,
		subscriptions: make(map[string]*Subscription),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrCodeInternal, "failed to create file watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, tkerrors.Wrap(err, tkerrors.ErrCodeInvalidInput, "failed to watch palette directory").
			WithContext("path", abs)
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Subscribe registers a reload handler and returns its id.
func (w *Watcher) Subscribe(handler ReloadHandler) string {
	if w == nil || handler == nil {
		return ""
	}
	id := ulid.Make().String()
	w.mu.Lock()
	w.subscriptions[id] = &Subscription{ID: id, Handler: handler}
	w.mu.Unlock()
	return id
}

// Unsubscribe removes a subscription.
func (w *Watcher) Unsubscribe(id string) {
	if w == nil || strings.TrimSpace(id) == "" {
		return
	}
	w.mu.Lock()
	delete(w.subscriptions, id)
	w.mu.Unlock()
}

// LastError returns the error of the most recent reload, nil after a
// successful one.
func (w *Watcher) LastError() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Reloads returns how many reloads were delivered.
func (w *Watcher) Reloads() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reloads
}

// Reload loads the file now and notifies the subscribers. A file that
// fails to parse is reported and the subscribers keep their palette.
func (w *Watcher) Reload() error {
	f, err := palette.LoadFile(w.path)

	w.mu.Lock()
	w.lastErr = err
	if err == nil {
		w.reloads++
	}
	subs := make([]*Subscription, 0, len(w.subscriptions))
	for _, sub := range w.subscriptions {
		subs = append(subs, sub)
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn(logging.CategoryPalette, "palette_reload_failed", err.Error(), map[string]any{
			"path": w.path,
		})
		return err
	}
	w.log.Info(logging.CategoryPalette, "palette_reloaded", f.Name, map[string]any{
		"path":        w.path,
		"subscribers": len(subs),
	})
	for _, sub := range subs {
		sub.Handler(f.Palette)
	}
	return nil
}

// Run processes file events until ctx is done or Close is called. Bursts
// of events for the watched file trigger a single Reload once they have
// been quiet for the debounce interval.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(logging.CategoryPalette, "palette_watch_error", err.Error(), map[string]any{
				"path": w.path,
			})
		case <-timer.C:
			_ = w.Reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Close stops watching. Run returns once the event channels close.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}
