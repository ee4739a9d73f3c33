package watcher

import (
	"context"
	"errors"
	"os"
	"time"
)

// ErrFileNotFound is returned when the file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrFileUnstable is returned when the file does not stabilize within the timeout.
var ErrFileUnstable = errors.New("file did not stabilize within timeout")

// StabilityChecker waits for file size to stabilize before processing.
// Notation apps export scores in one go, but large scores and network
// drives can take a while; processing a half-written file would fail
// XML parsing.
type StabilityChecker struct {
	threshold time.Duration // Time the file size must remain unchanged
	timeout   time.Duration // Maximum time to wait for stability
	interval  time.Duration // How often to check file size
}

// NewStabilityChecker creates a new StabilityChecker with the specified threshold.
// The threshold is the duration the file size must remain unchanged to be
// considered stable. Default timeout is 30 seconds, default check interval
// is threshold/4.
func NewStabilityChecker(threshold time.Duration) *StabilityChecker {
	interval := threshold / 4
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	return &StabilityChecker{
		threshold: threshold,
		timeout:   30 * time.Second,
		interval:  interval,
	}
}

// NewStabilityCheckerWithOptions creates a StabilityChecker with custom
// timeout and interval.
func NewStabilityCheckerWithOptions(threshold, timeout, interval time.Duration) *StabilityChecker {
	return &StabilityChecker{
		threshold: threshold,
		timeout:   timeout,
		interval:  interval,
	}
}

// WaitForStable blocks until the file size is stable for the threshold duration.
// It returns an error if the file doesn't exist, cannot be accessed, or doesn't
// stabilize within the timeout period.
func (s *StabilityChecker) WaitForStable(path string) error {
	return s.WaitForStableWithContext(context.Background(), path)
}

// WaitForStableWithContext blocks until the file size is stable, with
// context support for cancellation.
func (s *StabilityChecker) WaitForStableWithContext(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lastSize, err := s.getFileSize(path)
	if err != nil {
		return err
	}
	lastChangeTime := time.Now()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return ErrFileUnstable
			}
			return ctx.Err()
		case <-ticker.C:
			currentSize, err := s.getFileSize(path)
			if err != nil {
				return err
			}

			if currentSize != lastSize {
				lastSize = currentSize
				lastChangeTime = time.Now()
			} else if time.Since(lastChangeTime) >= s.threshold {
				return nil
			}
		}
	}
}

// getFileSize returns the size of the file at the given path.
func (s *StabilityChecker) getFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrFileNotFound
		}
		return 0, err
	}
	return info.Size(), nil
}

// GetThreshold returns the configured stability threshold.
func (s *StabilityChecker) GetThreshold() time.Duration {
	return s.threshold
}
