package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/philipparndt/goobj/internal/logger"
	"github.com/philipparndt/goobj/pkg/geometry"
	"github.com/philipparndt/goobj/pkg/obj"
	"github.com/philipparndt/goobj/pkg/transform"
	"github.com/philipparndt/goobj/pkg/watcher"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Live guards a Model for concurrent readers, editors and background
// reloads. Files are parsed outside the model lock and swapped in
// atomically, so an edit sees either the old mesh or the new one. Loads run
// one at a time and each reads the file after the previous load committed.
type Live struct {
	mu      sync.RWMutex
	loading sync.Mutex
	model   *Model
	watcher *watcher.FileWatcher
}

// NewLive wraps m; m must not be used directly afterwards
func NewLive(m *Model) *Live {
	return &Live{model: m}
}

// Load replaces the geometry with path. A failed load leaves the current
// model untouched.
func (l *Live) Load(path string) error {
	l.loading.Lock()
	defer l.loading.Unlock()

	next, err := l.model.read(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.model.commit(next)
	l.mu.Unlock()

	logger.Info("model loaded", zap.String("path", path))
	return nil
}

// Reload loads the current file again
func (l *Live) Reload() error {
	path := l.Path()
	if path == "" {
		return fmt.Errorf("reload: no file loaded: %w", ErrEmpty)
	}
	return l.Load(path)
}

// Watch reloads the current file whenever it changes on disk until ctx is
// done or Close is called. onReload, if set, receives the result of every
// reload.
func (l *Live) Watch(ctx context.Context, debounce time.Duration, onReload func(error)) error {
	path := l.Path()
	if path == "" {
		return fmt.Errorf("watch: no file loaded: %w", ErrEmpty)
	}

	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return err
	}
	err = fw.Watch([]string{path}, func(string) {
		err := l.Reload()
		if err != nil {
			logger.Error("reload failed, keeping previous model", zap.String("path", path), zap.Error(err))
		}
		if onReload != nil {
			onReload(err)
		}
	})
	if err != nil {
		return multierr.Append(err, fw.Close())
	}

	l.mu.Lock()
	previous := l.watcher
	l.watcher = fw
	l.mu.Unlock()

	fw.Start(ctx)
	if previous != nil {
		return previous.Close()
	}
	return nil
}

// Close stops watching
func (l *Live) Close() error {
	l.mu.Lock()
	fw := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if fw == nil {
		return nil
	}
	return multierr.Combine(fw.RemoveAll(), fw.Close())
}

// Transform applies one edit
func (l *Live) Transform(p transform.Params) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.Transform(p)
}

// ResetTransform normalizes the current mesh
func (l *Live) ResetTransform() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.ResetTransform()
}

// Snapshot returns a copy of the current buffers
func (l *Live) Snapshot() obj.ObjectData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model.Data().Clone()
}

// CalculateBoundingBox returns the bounds of the current mesh
func (l *Live) CalculateBoundingBox() (geometry.BoundingBox, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model.CalculateBoundingBox()
}

// State returns the accumulated edits
func (l *Live) State() transform.Params {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model.State()
}

// Path returns the current file
func (l *Live) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.model.Path()
}
