package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/philipparndt/goobj/pkg/transform"
)

const triangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

const square = "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"

func TestLiveReload(t *testing.T) {
	path := writeOBJ(t, triangle)
	live := NewLive(New())
	if err := live.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(square), 0o644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}
	if err := live.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if got := live.Snapshot().VertexCount(); got != 4 {
		t.Errorf("expected 4 vertices after reload, got %d", got)
	}
}

func TestLiveReloadWithoutFile(t *testing.T) {
	err := NewLive(New()).Reload()
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLiveFailedReloadKeepsModel(t *testing.T) {
	path := writeOBJ(t, triangle)
	live := NewLive(New())
	if err := live.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("v 0 0 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}
	if err := live.Reload(); err == nil {
		t.Fatal("expected reload of a broken file to fail")
	}
	if got := live.Snapshot().VertexCount(); got != 3 {
		t.Errorf("expected the triangle to survive, got %d vertices", got)
	}
}

func largeOBJ(vertices int) string {
	var b strings.Builder
	for i := 0; i < vertices; i++ {
		fmt.Fprintf(&b, "v %d %d %d\n", i, i%7, i%13)
	}
	b.WriteString("f 1 2 3\n")
	return b.String()
}

func TestLiveLoadAfterChangeSeesNewContent(t *testing.T) {
	path := writeOBJ(t, largeOBJ(200000))
	live := NewLive(New())

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		// may read either version; only the later load matters
		_ = live.Load(path)
	}()
	<-started

	if err := os.WriteFile(path, []byte(triangle), 0o644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}
	if err := live.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := live.Snapshot().VertexCount(); got != 3 {
		t.Errorf("expected 3 vertices from the rewritten file, got %d", got)
	}
	<-done
}

func TestLiveConcurrentLoadsOfDifferentFiles(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]int{
		filepath.Join(dir, "triangle.obj"): 3,
		filepath.Join(dir, "square.obj"):   4,
		filepath.Join(dir, "large.obj"):    5000,
	}
	contents := map[int]string{3: triangle, 4: square, 5000: largeOBJ(5000)}
	for path, count := range paths {
		if err := os.WriteFile(path, []byte(contents[count]), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	live := NewLive(New())
	var wg sync.WaitGroup
	for path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if err := live.Load(path); err != nil {
				t.Errorf("Load(%s) failed: %v", path, err)
			}
		}(path)
	}
	wg.Wait()

	want, ok := paths[live.Path()]
	if !ok {
		t.Fatalf("unexpected path %q", live.Path())
	}
	if got := live.Snapshot().VertexCount(); got != want {
		t.Errorf("path %s holds %d vertices, got %d", live.Path(), want, got)
	}
}

func TestLiveConcurrentEditsAndReloads(t *testing.T) {
	path := writeOBJ(t, square)
	live := NewLive(New())
	if err := live.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := live.Reload(); err != nil {
				t.Errorf("Reload failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := live.Transform(transform.Params{Rotation: transform.Delta{Z: 0.1}}); err != nil {
				t.Errorf("Transform failed: %v", err)
			}
			_ = live.Snapshot()
		}()
	}
	wg.Wait()

	if got := live.Snapshot().VertexCount(); got != 4 {
		t.Errorf("expected 4 vertices, got %d", got)
	}
}

func TestLiveWatchReloadsOnChange(t *testing.T) {
	path := writeOBJ(t, triangle)
	live := NewLive(New())
	if err := live.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 4)
	if err := live.Watch(ctx, 20*time.Millisecond, func(err error) {
		select {
		case reloaded <- err:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer live.Close()

	if err := os.WriteFile(path, []byte(square), 0o644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}

	// a reload may catch the file half written; wait for one that succeeds
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case err := <-reloaded:
			done = err == nil
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}

	if got := live.Snapshot().VertexCount(); got != 4 {
		t.Errorf("expected 4 vertices after watch reload, got %d", got)
	}
}

func TestLiveCloseWithoutWatch(t *testing.T) {
	if err := NewLive(New()).Close(); err != nil {
		t.Errorf("expected Close without a watcher to succeed, got %v", err)
	}
}
