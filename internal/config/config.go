// Package config handles configuration loading and validation for Partwise.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"partwise/internal/audit"
	"partwise/internal/canon"
)

// DefaultOutputSuffix is appended to the input base name when writing
// the normalized score (score.musicxml -> score_cleanup.musicxml).
const DefaultOutputSuffix = "_cleanup"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// AliasRule maps an additional raw name pattern to a canonical family.
// Rules are appended after the built-in table, so built-in entries win
// when both match a label.
type AliasRule struct {
	Pattern string `json:"pattern"`
	Family  string `json:"family"`
}

// Configuration holds all settings for Partwise. Every field is
// optional; the tool runs with built-in defaults when no configuration
// file is given.
type Configuration struct {
	WatchDirectories []string      `json:"watchDirectories,omitempty"`
	OutputSuffix     string        `json:"outputSuffix,omitempty"`
	Aliases          []AliasRule   `json:"aliases,omitempty"`
	Audit            *audit.Config `json:"audit,omitempty"`
}

// Default returns the configuration used when no file is provided.
func Default() *Configuration {
	defaults := audit.DefaultConfig()
	return &Configuration{
		OutputSuffix: DefaultOutputSuffix,
		Audit:        &defaults,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Configuration) Validate() error {
	for i, rule := range c.Aliases {
		if rule.Pattern == "" {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("aliases[%d].pattern cannot be empty", i),
			}
		}
		if rule.Family == "" {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("aliases[%d].family cannot be empty", i),
			}
		}
	}
	if strings.ContainsAny(c.OutputSuffix, "/\\") {
		return &ConfigError{
			Type:    ValidationError,
			Message: "outputSuffix cannot contain path separators",
		}
	}
	return nil
}

// ValidateForWatch checks the additional requirements of watch mode.
func (c *Configuration) ValidateForWatch() error {
	if len(c.WatchDirectories) == 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "watchDirectories must contain at least one directory for watch mode",
		}
	}
	return nil
}

// ApplyDefaults fills in zero values with their defaults.
func (c *Configuration) ApplyDefaults() {
	if c.OutputSuffix == "" {
		c.OutputSuffix = DefaultOutputSuffix
	}
	defaults := audit.DefaultConfig()
	if c.Audit == nil {
		c.Audit = &defaults
		return
	}
	if c.Audit.LogDirectory == "" {
		c.Audit.LogDirectory = defaults.LogDirectory
	}
}

// TableEntries converts the alias rules into canonical table entries.
func (c *Configuration) TableEntries() []canon.Entry {
	entries := make([]canon.Entry, len(c.Aliases))
	for i, rule := range c.Aliases {
		entries[i] = canon.Entry{Pattern: rule.Pattern, Family: rule.Family}
	}
	return entries
}

// Table returns the built-in canonical table extended with the
// configured aliases.
func (c *Configuration) Table() *canon.Table {
	base := canon.NewTable()
	if len(c.Aliases) == 0 {
		return base
	}
	return base.Extend(c.TableEntries())
}

// HasAlias checks if a pattern already exists in the configuration.
func (c *Configuration) HasAlias(pattern string) bool {
	for _, rule := range c.Aliases {
		if rule.Pattern == pattern {
			return true
		}
	}
	return false
}

// AddAliasRule adds a rule if the pattern doesn't already exist.
// Returns true if the rule was added, false if it was a duplicate.
func (c *Configuration) AddAliasRule(rule AliasRule) bool {
	if c.HasAlias(rule.Pattern) {
		return false
	}
	c.Aliases = append(c.Aliases, rule)
	return true
}

// HasWatchDirectory checks if a directory is already configured.
func (c *Configuration) HasWatchDirectory(dir string) bool {
	for _, d := range c.WatchDirectories {
		if d == dir {
			return true
		}
	}
	return false
}

// AddWatchDirectory adds a directory if it doesn't already exist.
// Returns true if the directory was added, false if it was a duplicate.
func (c *Configuration) AddWatchDirectory(dir string) bool {
	if c.HasWatchDirectory(dir) {
		return false
	}
	c.WatchDirectories = append(c.WatchDirectories, dir)
	return true
}

// Load reads and parses a configuration file from the given path.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadOrCreate loads config if it exists, or returns the default
// configuration if the file doesn't exist.
func LoadOrCreate(filePath string) (*Configuration, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(filePath)
}

// Save serializes and writes a configuration to the given path.
func Save(cfg *Configuration, filePath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}

	return nil
}
