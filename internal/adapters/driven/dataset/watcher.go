package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
	"github.com/custodia-labs/brainview-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.DatasetWatcher = (*Watcher)(nil)

var watchLog = logger.Scoped("watch")

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a dataset file whenever it changes on disk.
type Watcher struct {
	codec    driven.DatasetCodec
	debounce time.Duration
}

// NewWatcher creates a watcher that decodes with codec.
func NewWatcher(codec driven.DatasetCodec) *Watcher {
	if codec == nil {
		codec = NewCodec()
	}
	return &Watcher{codec: codec, debounce: DefaultDebounce}
}

// WithDebounce sets the quiet period before a reload.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch emits the current contents of path, then one event per change.
// The parent directory is watched so atomic replace-on-save is seen.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan domain.DatasetEvent, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan domain.DatasetEvent, 1)
	go w.run(ctx, fw, abs, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, path string, out chan<- domain.DatasetEvent) {
	defer close(out)
	defer fw.Close()

	if !w.emit(ctx, out, w.load(path)) {
		return
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !triggersReload(event, path) {
				continue
			}
			watchLog.Debug("%s %s", event.Op, event.Name)
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch error: %v", err)
		case <-timer.C:
			if !w.emit(ctx, out, w.load(path)) {
				return
			}
		}
	}
}

func (w *Watcher) emit(ctx context.Context, out chan<- domain.DatasetEvent, ev domain.DatasetEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) load(path string) domain.DatasetEvent {
	ev := domain.DatasetEvent{Path: path}
	f, err := os.Open(path)
	if err != nil {
		ev.Err = fmt.Errorf("opening dataset: %w", err)
		return ev
	}
	defer f.Close()

	result, report, err := w.codec.Decode(f)
	if err != nil {
		ev.Err = err
		return ev
	}
	if result.Source == "" {
		result.Source = path
	}
	watchLog.Info("reloaded %s (skipped %d slices, %d voxels)", path, report.SkippedSlices, report.SkippedVoxels)
	ev.Result = result
	return ev
}

// triggersReload reports whether event touches the watched file.
// Chmod alone never changes the contents.
func triggersReload(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
