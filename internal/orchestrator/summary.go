package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"partwise/internal/audit"
)

// RunSummary contains statistics from a normalization run.
type RunSummary struct {
	Scores             int            // Scores processed successfully
	Failures           int            // Scores that failed to parse, normalize or write
	PartsRenamed       int            // Part labels rewritten across all scores
	InstrumentsRenamed int            // Instrument labels rewritten across all scores
	Unmatched          int            // Labels with no canonical name, left untouched
	Duration           time.Duration  // Total processing time
	ByFamily           map[string]int // Per-family part counts (only populated in verbose mode)
	Results            []ScoreResult  // Per-score outcomes in processing order
}

// add folds one score result into the summary.
func (s *RunSummary) add(r ScoreResult) {
	s.Results = append(s.Results, r)
	if r.Err != nil {
		s.Failures++
		return
	}
	s.Scores++
	s.PartsRenamed += r.PartsRenamed
	s.InstrumentsRenamed += r.InstrumentsRenamed
	s.Unmatched += r.Unmatched
}

// fillByFamily aggregates per-family part counts across all results.
func (s *RunSummary) fillByFamily() {
	s.ByFamily = make(map[string]int)
	for _, r := range s.Results {
		for family, count := range r.ByFamily {
			s.ByFamily[family] += count
		}
	}
}

// totals converts the summary into audit run totals.
func (s *RunSummary) totals() audit.RunTotals {
	return audit.RunTotals{
		Scores:             s.Scores,
		PartsRenamed:       s.PartsRenamed,
		InstrumentsRenamed: s.InstrumentsRenamed,
		Unmatched:          s.Unmatched,
		Errors:             s.Failures,
	}
}

// HasErrors returns true if any score failed during the run.
func (s *RunSummary) HasErrors() bool {
	return s.Failures > 0
}

// PrintSummary returns a formatted summary string.
func (s *RunSummary) PrintSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d scores: %d parts, %d instruments renamed",
		s.Scores, s.PartsRenamed, s.InstrumentsRenamed)
	if s.Unmatched > 0 {
		fmt.Fprintf(&b, ", %d unmatched", s.Unmatched)
	}
	if s.Failures > 0 {
		fmt.Fprintf(&b, ", %d failed", s.Failures)
	}
	fmt.Fprintf(&b, " (%.2fs)", s.Duration.Seconds())

	if len(s.ByFamily) > 0 {
		families := make([]string, 0, len(s.ByFamily))
		for family := range s.ByFamily {
			families = append(families, family)
		}
		sort.Strings(families)
		b.WriteString("\nBy family:")
		for _, family := range families {
			fmt.Fprintf(&b, "\n  %-20s %d", family, s.ByFamily[family])
		}
	}
	return b.String()
}
