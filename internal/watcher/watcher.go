// Package watcher provides file system monitoring for automatic score
// normalization. It watches export drop folders and hands each settled
// MusicXML file to a handler once it has finished being written.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	DebounceSeconds   int      // Delay before processing (default: 2)
	StableThresholdMs int      // File size stability threshold in milliseconds (default: 1000)
	IgnorePatterns    []string // Glob patterns to ignore (e.g., "*.tmp", "*.part")
	OutputSuffix      string   // Suffix of Partwise outputs to ignore (avoids re-processing loops)
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceSeconds:   2,
		StableThresholdMs: 1000,
		IgnorePatterns:    DefaultIgnorePatterns(),
	}
}

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	ScoresNormalized int
	FilesSkipped     int
	Failures         int
	Duration         time.Duration
}

// FileHandler is a callback that normalizes one score file.
// It returns whether the score was normalized (false means it was
// skipped, e.g. no labels matched) and any error that occurred.
type FileHandler func(path string) (normalized bool, err error)

// Watcher monitors directories for new score files.
type Watcher struct {
	config      *WatchConfig
	fileHandler FileHandler
	fsWatcher   *fsnotify.Watcher
	fileFilter  *FileFilter
	debouncer   *Debouncer
	stability   *StabilityChecker
	done        chan struct{}
	wg          sync.WaitGroup
	startTime   time.Time

	// Statistics tracking
	mu               sync.Mutex
	scoresNormalized int
	filesSkipped     int
	failures         int
}

// New creates a new Watcher with the given configuration.
// If config is nil, default configuration is used.
// The fileHandler is called for each score file that settles.
func New(config *WatchConfig, fileHandler FileHandler) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	w := &Watcher{
		config:      config,
		fileHandler: fileHandler,
		fileFilter:  NewFileFilter(config.IgnorePatterns, config.OutputSuffix),
		stability:   NewStabilityChecker(time.Duration(config.StableThresholdMs) * time.Millisecond),
		done:        make(chan struct{}),
	}
	w.debouncer = NewDebouncer(time.Duration(config.DebounceSeconds)*time.Second, w.processFile)
	return w
}

// Start begins watching the specified directories for new score files.
// It returns an error if the watcher cannot be initialized.
// The watcher runs until Stop() is called.
func (w *Watcher) Start(dirs []string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			w.fsWatcher.Close()
			return err
		}
		if err := w.fsWatcher.Add(absDir); err != nil {
			w.fsWatcher.Close()
			return err
		}
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop gracefully shuts down the watcher and returns a summary of the session.
func (w *Watcher) Stop() *WatchSummary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return &WatchSummary{
		ScoresNormalized: w.scoresNormalized,
		FilesSkipped:     w.filesSkipped,
		Failures:         w.failures,
		Duration:         time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Creates start the debounce timer; writes reset it so a
			// score still being exported is not picked up early.
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFileEvent(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleFileEvent filters one event and schedules the file for processing.
func (w *Watcher) handleFileEvent(path string) {
	if w.fileFilter.ShouldIgnore(path) {
		return
	}
	w.debouncer.Add(path)
}

// processFile runs after the debounce delay: wait for the file size to
// settle, then hand the score to the handler.
func (w *Watcher) processFile(path string) {
	select {
	case <-w.done:
		return
	default:
	}

	if err := w.stability.WaitForStable(path); err != nil {
		w.mu.Lock()
		w.filesSkipped++
		w.mu.Unlock()
		return
	}

	if w.fileHandler == nil {
		w.mu.Lock()
		w.filesSkipped++
		w.mu.Unlock()
		return
	}

	normalized, err := w.fileHandler(path)
	w.mu.Lock()
	switch {
	case err != nil:
		w.failures++
	case normalized:
		w.scoresNormalized++
	default:
		w.filesSkipped++
	}
	w.mu.Unlock()
}

// GetConfig returns the current watcher configuration.
func (w *Watcher) GetConfig() *WatchConfig {
	return w.config
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
