package orchestrator

import (
	"fmt"
	"sync"

	"partwise/internal/audit"
	"partwise/internal/watcher"
)

// Watch monitors the configured watch directories and normalizes every
// score that lands in them. It blocks until the stop channel is closed
// and returns the watch session summary.
func (o *Orchestrator) Watch(opts Options, stop <-chan struct{}) (*watcher.WatchSummary, error) {
	if err := o.config.ValidateForWatch(); err != nil {
		return nil, err
	}

	if err := o.openAudit(); err != nil {
		return nil, err
	}
	defer o.closeAudit()
	if o.audit != nil {
		if _, err := o.audit.StartRun(Version); err != nil {
			return nil, fmt.Errorf("failed to start audit run: %w", err)
		}
	}

	table := o.config.Table()
	watchConfig := watcher.DefaultWatchConfig()
	watchConfig.OutputSuffix = o.config.OutputSuffix

	// Handlers run on debounce timer goroutines, so totals need a lock.
	var mu sync.Mutex
	var totals audit.RunTotals
	w := watcher.New(watchConfig, func(path string) (bool, error) {
		o.out.Info("Normalizing %s", path)
		result := o.normalizeScore(path, opts, table)
		mu.Lock()
		defer mu.Unlock()
		if result.Err != nil {
			totals.Errors++
			return false, result.Err
		}
		totals.Scores++
		totals.PartsRenamed += result.PartsRenamed
		totals.InstrumentsRenamed += result.InstrumentsRenamed
		totals.Unmatched += result.Unmatched
		o.out.Info("Wrote %s", result.Output)
		return true, nil
	})

	if err := w.Start(o.config.WatchDirectories); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	o.out.Info("Watching %d directories for scores. Press Ctrl+C to stop.",
		len(o.config.WatchDirectories))

	<-stop
	summary := w.Stop()

	if o.audit != nil {
		status := audit.RunStatusCompleted
		if summary.Failures > 0 {
			status = audit.RunStatusFailed
		}
		if err := o.audit.EndRun(status, totals); err != nil {
			return summary, fmt.Errorf("failed to finish audit run: %w", err)
		}
	}

	return summary, nil
}
