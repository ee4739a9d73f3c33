package watcher

import (
	"path/filepath"
	"strings"

	"partwise/internal/scanner"
)

// DefaultIgnorePatterns returns the default patterns for temporary files to ignore.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		"*.partial",    // Generic partial file
		".~*",          // Hidden temp files (e.g., .~lock)
	}
}

// FileFilter decides which file events are worth processing.
// Non-score files, temporary files and Partwise's own output files are
// ignored; skipping outputs prevents the watcher from re-processing
// what it just wrote.
type FileFilter struct {
	patterns     []string
	outputSuffix string
}

// NewFileFilter creates a new FileFilter with the given patterns.
// If patterns is nil or empty, default patterns are used.
func NewFileFilter(patterns []string, outputSuffix string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{
		patterns:     patterns,
		outputSuffix: outputSuffix,
	}
}

// ShouldIgnore checks whether a file event should be discarded.
// Glob patterns are matched against the base name only:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [abc] matches any character in the set
func (f *FileFilter) ShouldIgnore(path string) bool {
	if !scanner.IsScoreFile(path) {
		return true
	}
	if scanner.IsOutputFile(path, f.outputSuffix) {
		return true
	}

	filename := filepath.Base(path)
	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}

		// Extension-style patterns like ".tmp" also match as a suffix.
		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// GetPatterns returns the current ignore patterns.
func (f *FileFilter) GetPatterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}

// AddPattern adds a new pattern to the filter.
func (f *FileFilter) AddPattern(pattern string) {
	f.patterns = append(f.patterns, pattern)
}
