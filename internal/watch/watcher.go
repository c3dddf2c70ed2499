// Package watch monitors a notes directory and triggers discovery runs
// when documents change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change
// before firing. Editors often write a file several times in a row.
const DefaultDebounce = 2 * time.Second

// Handler is called with the batch of changed paths (relative to the
// watched root) once the debounce window closes.
type Handler func(ctx context.Context, changed []string)

// Watcher monitors a directory tree for note changes.
type Watcher struct {
	root       string
	extensions []string
	debounce   time.Duration
	handler    Handler
	watcher    *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds watcher configuration.
type Config struct {
	Root       string
	Extensions []string // file extensions to react to, without dot
	Debounce   time.Duration
	Handler    Handler
}

// New creates a watcher over cfg.Root. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.Handler == nil {
		return nil, fmt.Errorf("watch handler is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = []string{"md", "markdown", "txt"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		root:       cfg.Root,
		extensions: exts,
		debounce:   debounce,
		handler:    cfg.Handler,
		watcher:    fsw,
		pending:    make(map[string]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start begins watching the root and its subdirectories.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("add watch paths: %w", err)
	}

	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. Any
// pending debounced batch is dropped.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.watcher.Close()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "error", err)

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Watch newly created directories.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
			return
		}
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !w.matchesExtension(name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	relPath, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		relPath = event.Name
	}

	w.mu.Lock()
	w.pending[filepath.ToSlash(relPath)] = struct{}{}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

func (w *Watcher) matchesExtension(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// fire drains the pending set and invokes the handler.
func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	if len(changed) == 0 || w.ctx.Err() != nil {
		return
	}
	w.handler(w.ctx, changed)
}
