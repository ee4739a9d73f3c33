// Package scanner handles directory scanning for Partwise.
// It enumerates MusicXML score files, skipping the tool's own outputs.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScoreExtensions lists the file extensions treated as MusicXML scores.
var ScoreExtensions = []string{".musicxml", ".xml"}

// Options configures scanning behavior.
type Options struct {
	MaxDepth     int    // Maximum depth to scan (0 = immediate only, -1 = unlimited)
	OutputSuffix string // Base-name suffix of Partwise outputs to skip ("" = skip nothing)
}

// DefaultOptions returns the default scan options.
func DefaultOptions() Options {
	return Options{
		MaxDepth: 0,
	}
}

// FileEntry represents a score file found during scanning.
type FileEntry struct {
	Name     string // Filename only
	FullPath string // Absolute path
}

// IsScoreFile reports whether the path has a MusicXML extension.
func IsScoreFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ScoreExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsOutputFile reports whether the path looks like a Partwise output,
// i.e. its base name before the extension ends in the output suffix.
func IsOutputFile(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, suffix)
}

// Scan enumerates score files in the given directory without recursion.
// This is a convenience wrapper around ScanWithOptions with default options.
func Scan(directory string) ([]FileEntry, error) {
	return ScanWithOptions(directory, DefaultOptions())
}

// ScanWithOptions scans a directory for score files with configurable options.
func ScanWithOptions(directory string, opts Options) ([]FileEntry, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{
				Type: DirectoryNotFound,
				Path: directory,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return nil, err
	}

	if !info.IsDir() {
		return nil, &ScanError{
			Type: DirectoryNotFound,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}

	return scanDirectory(directory, opts, 0)
}

// scanDirectory recursively scans a directory up to the configured depth.
func scanDirectory(directory string, opts Options, currentDepth int) ([]FileEntry, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return nil, err
	}

	var files []FileEntry
	for _, entry := range entries {
		fullPath := filepath.Join(directory, entry.Name())

		if entry.IsDir() {
			if opts.MaxDepth == -1 || currentDepth < opts.MaxDepth {
				subFiles, err := scanDirectory(fullPath, opts, currentDepth+1)
				if err != nil {
					return nil, err
				}
				files = append(files, subFiles...)
			}
			continue
		}

		if !IsScoreFile(entry.Name()) || IsOutputFile(entry.Name(), opts.OutputSuffix) {
			continue
		}

		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}
		files = append(files, FileEntry{
			Name:     entry.Name(),
			FullPath: absPath,
		})
	}

	return files, nil
}
