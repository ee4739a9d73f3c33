package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// newTestWatcher builds a watcher with short timings suitable for tests.
func newTestWatcher(handler FileHandler) *Watcher {
	config := &WatchConfig{
		DebounceSeconds:   0,
		StableThresholdMs: 50,
		OutputSuffix:      "_cleanup",
	}
	w := New(config, handler)
	// Tighten the debounce below one second for tests.
	w.debouncer = NewDebouncer(50*time.Millisecond, w.processFile)
	return w
}

func TestWatcherNormalizesDroppedScore(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	w := newTestWatcher(func(path string) (bool, error) {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		return true, nil
	})

	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	path := filepath.Join(dir, "export.musicxml")
	if err := os.WriteFile(path, []byte("<score-partwise/>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never called for dropped score")
		}
		time.Sleep(20 * time.Millisecond)
	}

	summary := w.Stop()
	if summary.ScoresNormalized != 1 {
		t.Errorf("ScoresNormalized = %d, want 1", summary.ScoresNormalized)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "export.musicxml" {
		t.Errorf("handled = %v", handled)
	}
}

func TestWatcherIgnoresNonScoreAndOutputFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	called := 0
	w := newTestWatcher(func(path string) (bool, error) {
		mu.Lock()
		called++
		mu.Unlock()
		return true, nil
	})

	if err := w.Start([]string{dir}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, name := range []string{"notes.txt", "export.tmp", "old_cleanup.musicxml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	time.Sleep(500 * time.Millisecond)
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	if called != 0 {
		t.Errorf("handler called %d times for ignored files", called)
	}
}

func TestStopIsIdempotentAboutPending(t *testing.T) {
	w := newTestWatcher(nil)
	if err := w.Start([]string{t.TempDir()}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning = false after Start")
	}
	summary := w.Stop()
	if summary == nil {
		t.Fatal("Stop returned nil summary")
	}
	if w.IsRunning() {
		t.Error("IsRunning = true after Stop")
	}
}
