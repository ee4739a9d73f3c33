package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partwise.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"watchDirectories": ["/scores/inbox"],
		"outputSuffix": "_generic",
		"aliases": [
			{"pattern": "NI Kontakt Harp", "family": "Harp"}
		]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.WatchDirectories) != 1 || cfg.WatchDirectories[0] != "/scores/inbox" {
		t.Errorf("watchDirectories = %v", cfg.WatchDirectories)
	}
	if cfg.OutputSuffix != "_generic" {
		t.Errorf("outputSuffix = %q, want _generic", cfg.OutputSuffix)
	}
	if cfg.Audit == nil || cfg.Audit.LogDirectory == "" {
		t.Error("audit defaults not applied")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != FileNotFound {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != InvalidJSON {
		t.Errorf("error = %v, want INVALID_JSON", err)
	}
}

func TestValidateRejectsEmptyAliasFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
	}{
		{"empty pattern", Configuration{Aliases: []AliasRule{{Pattern: "", Family: "Harp"}}}},
		{"empty family", Configuration{Aliases: []AliasRule{{Pattern: "NI Harp", Family: ""}}}},
		{"suffix with separator", Configuration{OutputSuffix: "out/clean"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Type != ValidationError {
				t.Errorf("error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestValidateForWatch(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateForWatch(); err == nil {
		t.Error("ValidateForWatch passed with no directories")
	}
	cfg.AddWatchDirectory("/scores/inbox")
	if err := cfg.ValidateForWatch(); err != nil {
		t.Errorf("ValidateForWatch: %v", err)
	}
}

func TestLoadOrCreateReturnsDefaults(t *testing.T) {
	cfg, err := LoadOrCreate(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.OutputSuffix != DefaultOutputSuffix {
		t.Errorf("outputSuffix = %q, want %q", cfg.OutputSuffix, DefaultOutputSuffix)
	}
	if cfg.Audit == nil {
		t.Error("audit defaults missing")
	}
}

func TestTableExtension(t *testing.T) {
	cfg := Default()
	cfg.Aliases = []AliasRule{{Pattern: "EW Hollywood Harp", Family: "Harp"}}

	table := cfg.Table()
	family, ok := table.Resolve("EW Hollywood Harp Gold")
	if !ok || family != "Harp" {
		t.Errorf("Resolve via alias = %q, %v; want Harp, true", family, ok)
	}

	// Built-in entries are unaffected.
	if _, ok := table.Resolve("Timpani"); !ok {
		t.Error("built-in entry lost after extension")
	}
}

func TestAddAliasRuleRejectsDuplicates(t *testing.T) {
	cfg := Default()
	rule := AliasRule{Pattern: "NI Harp", Family: "Harp"}
	if !cfg.AddAliasRule(rule) {
		t.Error("first AddAliasRule returned false")
	}
	if cfg.AddAliasRule(rule) {
		t.Error("duplicate AddAliasRule returned true")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partwise.json")
	cfg := Default()
	cfg.AddWatchDirectory("/scores/inbox")
	cfg.AddAliasRule(AliasRule{Pattern: "NI Harp", Family: "Harp"})

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if !loaded.HasWatchDirectory("/scores/inbox") || !loaded.HasAlias("NI Harp") {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
