package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"partwise/internal/canon"
)

// writeScore writes a minimal score with the given part names to dir.
func writeScore(t *testing.T, dir, name string, partNames ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<score-partwise version="3.1"><part-list>`)
	for i, pn := range partNames {
		fmt.Fprintf(&b, `<score-part id="P%d"><part-name>%s</part-name></score-part>`, i+1, pn)
	}
	b.WriteString(`</part-list>`)
	for i := range partNames {
		fmt.Fprintf(&b, `<part id="P%d"><measure number="1"/></part>`, i+1)
	}
	b.WriteString(`</score-partwise>` + "\n")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write score: %v", err)
	}
	return path
}

func TestDiscoverCollectsUnmatchedNames(t *testing.T) {
	dir := t.TempDir()
	a := writeScore(t, dir, "a.musicxml", "Kazoo Lead", "Violin 1", "Kazoo Lead")
	b := writeScore(t, dir, "b.musicxml", "Kazoo Lead", "Theremin")

	result, err := Discover([]string{a, b}, canon.NewTable(), nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if result.ScoresScanned != 2 {
		t.Errorf("ScoresScanned = %d, want 2", result.ScoresScanned)
	}
	if len(result.NewAliases) != 2 {
		t.Fatalf("NewAliases = %v, want 2 entries", result.NewAliases)
	}

	// Most frequent candidate first.
	first := result.NewAliases[0]
	if first.Pattern != "Kazoo Lead" || first.Occurrences != 3 {
		t.Errorf("first candidate = %+v, want Kazoo Lead with 3 occurrences", first)
	}
	second := result.NewAliases[1]
	if second.Pattern != "Theremin" || second.Occurrences != 1 {
		t.Errorf("second candidate = %+v, want Theremin with 1 occurrence", second)
	}
}

func TestDiscoverSkipsConfiguredPatterns(t *testing.T) {
	dir := t.TempDir()
	path := writeScore(t, dir, "a.musicxml", "Theremin", "Kazoo Lead")

	existing := map[string]bool{"Theremin": true}
	result, err := Discover([]string{path}, canon.NewTable(), existing)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(result.SkippedAliases) != 1 || result.SkippedAliases[0].Pattern != "Theremin" {
		t.Errorf("SkippedAliases = %v", result.SkippedAliases)
	}
	if len(result.NewAliases) != 1 || result.NewAliases[0].Pattern != "Kazoo Lead" {
		t.Errorf("NewAliases = %v", result.NewAliases)
	}
}

func TestDiscoverSurvivesMalformedScore(t *testing.T) {
	dir := t.TempDir()
	good := writeScore(t, dir, "good.musicxml", "Theremin")
	bad := filepath.Join(dir, "bad.musicxml")
	if err := os.WriteFile(bad, []byte("<score-partwise><unclosed"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result, err := Discover([]string{bad, good}, canon.NewTable(), nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if result.ScoresFailed != 1 {
		t.Errorf("ScoresFailed = %d, want 1", result.ScoresFailed)
	}
	if result.ScoresScanned != 1 {
		t.Errorf("ScoresScanned = %d, want 1", result.ScoresScanned)
	}
	if len(result.NewAliases) != 1 {
		t.Errorf("NewAliases = %v", result.NewAliases)
	}
}

func TestDiscoverNoUnmatchedNames(t *testing.T) {
	dir := t.TempDir()
	path := writeScore(t, dir, "a.musicxml", "Violin 1", "Viola")

	result, err := Discover([]string{path}, canon.NewTable(), nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(result.NewAliases) != 0 {
		t.Errorf("NewAliases = %v, want none", result.NewAliases)
	}
}

func TestSuggestFamily(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"03 - Glockenspiel (div.)", "Glockenspiel"},
		{"12. Theremin", "Theremin"},
		{"Flugelhorn 2", "Flugelhorn"},
		{"Waterphone (bowed)", "Waterphone"},
		{"Theremin", ""},   // nothing stripped, no suggestion
		{"01 - 02", ""},    // no letters left
		{"  Ondes 3  ", "Ondes"},
	}

	for _, tt := range tests {
		if got := SuggestFamily(tt.name); got != tt.want {
			t.Errorf("SuggestFamily(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
