// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"
)

// =============================================================================
// TYPES
// =============================================================================

// Op is the kind of change observed.
type Op int

const (
	Modified Op = iota
	Removed
)

func (o Op) String() string {
	if o == Removed {
		return "removed"
	}
	return "modified"
}

// Change is published on Changes.
type Change struct {
	Path string
	Op   Op
	At   time.Time
}

type fingerprint [blake2b.Size256]byte

type tracked struct {
	sum     fingerprint
	missing bool
	limiter *rate.Limiter
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a path must be quiet before it is checked.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithMinInterval sets the minimum spacing between checks of one path.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher tracks a set of files. Methods are safe for concurrent use.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	interval time.Duration

	mu      sync.Mutex
	files   map[string]*tracked
	dirs    map[string]int
	pending map[string]time.Time

	changes chan Change
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsw:      fsw,
		debounce: 250 * time.Millisecond,
		interval: time.Second,
		files:    make(map[string]*tracked),
		dirs:     make(map[string]int),
		pending:  make(map[string]time.Time),
		changes:  make(chan Change, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()
	return w, nil
}

// Changes returns the channel changes are published on. It is closed by
// Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Track starts watching path, or refreshes it, with content as the known
// on-disk bytes. The parent directory is watched so that editors that
// replace files by rename are still seen.
func (w *Watcher) Track(path string, content []byte) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.files[path]
	if !ok {
		if w.dirs[dir] == 0 {
			if err := w.fsw.Add(dir); err != nil {
				return err
			}
		}
		w.dirs[dir]++
		t = &tracked{limiter: rate.NewLimiter(rate.Every(w.interval), 1)}
		w.files[path] = t
	}
	t.sum = blake2b.Sum256(content)
	t.missing = false
	delete(w.pending, path)
	return nil
}

// Untrack stops watching path.
func (w *Watcher) Untrack(path string) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return
	}
	delete(w.files, path)
	delete(w.pending, path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir)
	}
}

// Close stops the watcher and closes Changes. Further calls are no-ops.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

// =============================================================================
// EVENT LOOP
// =============================================================================

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			w.mu.Lock()
			if _, ok := w.files[path]; ok {
				w.pending[path] = time.Now()
			}
			w.mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *Watcher) processPending() {
	defer w.wg.Done()
	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case now := <-ticker.C:
			for _, path := range w.due(now) {
				w.check(path)
			}
		}
	}
}

// due pops the pending paths that have been quiet for the debounce period
// and are within their rate limit.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []string
	for path, last := range w.pending {
		if now.Sub(last) < w.debounce {
			continue
		}
		t, ok := w.files[path]
		if !ok {
			delete(w.pending, path)
			continue
		}
		if !t.limiter.AllowN(now, 1) {
			continue
		}
		delete(w.pending, path)
		out = append(out, path)
	}
	return out
}

// check re-reads path and publishes a Change when it no longer matches.
func (w *Watcher) check(path string) {
	data, err := os.ReadFile(path)

	w.mu.Lock()
	t, ok := w.files[path]
	if !ok {
		w.mu.Unlock()
		return
	}
	var change *Change
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !t.missing {
			t.missing = true
			change = &Change{Path: path, Op: Removed, At: time.Now()}
		}
	case err != nil:
		logrus.WithError(err).WithField("path", path).Debug("watch read failed")
	default:
		sum := fingerprint(blake2b.Sum256(data))
		if t.missing || sum != t.sum {
			t.sum = sum
			t.missing = false
			change = &Change{Path: path, Op: Modified, At: time.Now()}
		}
	}
	w.mu.Unlock()

	if change == nil {
		return
	}
	select {
	case w.changes <- *change:
	default:
		logrus.WithField("path", path).Debug("change dropped, consumer busy")
	}
}
