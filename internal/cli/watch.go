package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/loomhq/loom/internal/utils"
)

// Watcher re-runs the generator whenever annotated source changes. Events
// are debounced so a burst of editor writes triggers one regeneration, and
// the pipeline's snapshot cache keeps unchanged declarations from being
// re-rendered.
type Watcher struct {
	generator   *Generator
	diagnostics *utils.DiagnosticSystem
	watcher     *fsnotify.Watcher
	debouncer   *debouncer
	wg          sync.WaitGroup
}

// NewWatcher creates a watcher around an existing generator.
func NewWatcher(generator *Generator, diagnosticSystem *utils.DiagnosticSystem) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		generator:   generator,
		diagnostics: diagnosticSystem,
		watcher:     fsWatcher,
		debouncer:   newDebouncer(200 * time.Millisecond),
	}
	return w, nil
}

// Watch runs an initial generation, then blocks regenerating on changes
// until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.debouncer.stop()

	if err := w.generator.Run(ctx); err != nil {
		// The initial run failing is not fatal in watch mode; the user
		// gets another chance on the next save.
		w.diagnostics.Error("Generation failed: %v", err)
	}

	dirs, err := w.generator.scanner.ScanDirectories(w.generator.config.Directories)
	if err != nil {
		return fmt.Errorf("failed to discover watch directories: %w", err)
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.diagnostics.Verbose("Watching directory: %s", dir)
	}

	runs := make(chan struct{}, 1)
	w.debouncer.callback = func(files []string) {
		w.diagnostics.Verbose("Changed: %s", strings.Join(files, ", "))
		select {
		case runs <- struct{}{}:
		default:
			// A run is already queued.
		}
	}

	w.wg.Add(1)
	go w.pump(ctx)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		case <-runs:
			if err := w.generator.Run(ctx); err != nil {
				w.diagnostics.Error("Generation failed: %v", err)
			}
		}
	}
}

// pump forwards relevant filesystem events into the debouncer
func (w *Watcher) pump(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debouncer.add(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.diagnostics.Warn("Watch error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

// relevant keeps write, create, and remove events on hand-written Go files.
// Generated companions are excluded so our own writes never retrigger a run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	if strings.HasPrefix(name, "autogen_") || strings.HasSuffix(name, "_loom.go") {
		return false
	}
	return !strings.HasPrefix(name, ".")
}

// debouncer collects file changes and fires a callback after a quiet period
type debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
}

func newDebouncer(duration time.Duration) *debouncer {
	return &debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

func (d *debouncer) add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

func (d *debouncer) flush() {
	d.mutex.Lock()

	if len(d.files) == 0 {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback(files)
	}
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
