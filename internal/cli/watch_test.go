package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsTargetEvent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "embed.txt")

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: target + ".swp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := isTargetEvent(tt.event, target); got != tt.want {
			t.Errorf("isTargetEvent(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestWatchLoop_RebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "embed.txt")
	os.WriteFile(target, []byte(testSnippet), 0o644)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 10)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, target, 20*time.Millisecond, logger, func() {
			rebuilt <- struct{}{}
		})
	}()

	// Unrelated files in the same directory must not trigger a rebuild.
	os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644)
	os.WriteFile(target, []byte(testSnippet+"\n"), 0o644)

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild not triggered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchLoop: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchLoop did not stop")
	}
}

func TestRebuildFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "embed.txt")
	out := filepath.Join(dir, "embed.html")
	os.WriteFile(target, []byte(testSnippet), 0o644)

	f := embedFlags{width: "320", height: "240", format: "html"}
	if err := rebuildFile(target, out, f, newWatchCmd()); err != nil {
		t.Fatalf("rebuildFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := `width="320px" height="240px"`; !strings.Contains(string(data), want) {
		t.Errorf("output %q missing %q", data, want)
	}
}
