package orchestrator

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSummaryAdd(t *testing.T) {
	s := &RunSummary{}
	s.add(ScoreResult{Input: "a.musicxml", PartsRenamed: 2, InstrumentsRenamed: 1, Unmatched: 1})
	s.add(ScoreResult{Input: "b.musicxml", Err: errors.New("boom")})
	s.add(ScoreResult{Input: "c.musicxml", PartsRenamed: 1})

	if s.Scores != 2 || s.Failures != 1 {
		t.Errorf("Scores = %d, Failures = %d", s.Scores, s.Failures)
	}
	if s.PartsRenamed != 3 || s.InstrumentsRenamed != 1 || s.Unmatched != 1 {
		t.Errorf("counts = %d/%d/%d", s.PartsRenamed, s.InstrumentsRenamed, s.Unmatched)
	}
	if !s.HasErrors() {
		t.Error("HasErrors = false")
	}
}

func TestSummaryFillByFamily(t *testing.T) {
	s := &RunSummary{}
	s.add(ScoreResult{ByFamily: map[string]int{"Violin 1": 1, "Timpani": 2}})
	s.add(ScoreResult{ByFamily: map[string]int{"Timpani": 1}})
	s.fillByFamily()

	if s.ByFamily["Timpani"] != 3 || s.ByFamily["Violin 1"] != 1 {
		t.Errorf("ByFamily = %v", s.ByFamily)
	}
}

func TestPrintSummary(t *testing.T) {
	s := &RunSummary{
		Scores:             3,
		PartsRenamed:       5,
		InstrumentsRenamed: 4,
		Duration:           1500 * time.Millisecond,
	}
	got := s.PrintSummary()
	if !strings.Contains(got, "Processed 3 scores") {
		t.Errorf("summary = %q", got)
	}
	if strings.Contains(got, "unmatched") || strings.Contains(got, "failed") {
		t.Errorf("summary mentions zero counts: %q", got)
	}

	s.Unmatched = 2
	s.Failures = 1
	s.ByFamily = map[string]int{"Timpani": 3}
	got = s.PrintSummary()
	for _, want := range []string{"2 unmatched", "1 failed", "By family:", "Timpani"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q: %q", want, got)
		}
	}
}
