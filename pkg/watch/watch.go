// Package watch processes transcripts as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ccollicutt/tsadjust/pkg/files"
)

// DefaultDebounce is how long a file must be quiet before it is processed.
const DefaultDebounce = 500 * time.Millisecond

// HandlerFunc processes one settled file. Errors are reported through the
// watcher's error callback and do not stop the watch.
type HandlerFunc func(ctx context.Context, path string) error

// Watcher runs a handler for every transcript created or written in a directory.
type Watcher struct {
	dir      string
	handler  HandlerFunc
	debounce time.Duration
	onError  func(path string, err error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a file is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the callback for handler and watcher errors.
func WithErrorHandler(fn func(path string, err error)) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.onError = fn
		}
	}
}

// New creates a Watcher for dir.
func New(dir string, handler HandlerFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		handler:  handler,
		debounce: DefaultDebounce,
		onError:  func(string, error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is canceled. Handlers run one at a time, in the
// order files settle.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watching %s: not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	return w.loop(ctx, fsw.Events, fsw.Errors)
}

// loop dispatches events until ctx is canceled or a channel closes. Pending
// deliveries are abandoned on return.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan string, 64)
	d := newDebouncer(w.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !shouldHandle(event) {
				continue
			}
			path := event.Name
			d.debounce(path, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			if err := w.handle(ctx, path); err != nil {
				w.onError(path, err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.onError(w.dir, err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	return w.handler(ctx, path)
}

func shouldHandle(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return files.IsTranscript(filepath.Base(event.Name))
}

// debouncer delays a callback until its key has been quiet for a period.
type debouncer struct {
	duration time.Duration
	mu       sync.Mutex
	timers   map[string]*time.Timer
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{duration: d, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
