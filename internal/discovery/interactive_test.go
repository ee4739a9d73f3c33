package discovery

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptForAliasAcceptWithFamily(t *testing.T) {
	in := strings.NewReader("y\nKazoo\n")
	out := &bytes.Buffer{}
	p := NewInteractivePrompter(in, out)

	result, family, err := p.PromptForAlias(ProposedAlias{Pattern: "Kazoo Lead", Occurrences: 3})
	if err != nil {
		t.Fatalf("PromptForAlias: %v", err)
	}
	if result != PromptAccept {
		t.Errorf("result = %v, want PromptAccept", result)
	}
	if family != "Kazoo" {
		t.Errorf("family = %q, want Kazoo", family)
	}
	if !strings.Contains(out.String(), "Kazoo Lead") {
		t.Error("prompt did not display the name")
	}
}

func TestPromptForAliasAcceptDefaultsToSuggestion(t *testing.T) {
	in := strings.NewReader("yes\n\n")
	out := &bytes.Buffer{}
	p := NewInteractivePrompter(in, out)

	result, family, err := p.PromptForAlias(ProposedAlias{
		Pattern:     "03 - Glockenspiel",
		Suggested:   "Glockenspiel",
		Occurrences: 1,
	})
	if err != nil {
		t.Fatalf("PromptForAlias: %v", err)
	}
	if result != PromptAccept || family != "Glockenspiel" {
		t.Errorf("got (%v, %q), want accept with suggestion", result, family)
	}
}

func TestPromptForAliasAcceptWithoutFamilyRejects(t *testing.T) {
	in := strings.NewReader("y\n\n")
	out := &bytes.Buffer{}
	p := NewInteractivePrompter(in, out)

	result, family, err := p.PromptForAlias(ProposedAlias{Pattern: "Kazoo Lead"})
	if err != nil {
		t.Fatalf("PromptForAlias: %v", err)
	}
	if result != PromptReject || family != "" {
		t.Errorf("got (%v, %q), want reject when no family is given", result, family)
	}
}

func TestPromptForAliasChoices(t *testing.T) {
	tests := []struct {
		input string
		want  PromptResult
	}{
		{"n\n", PromptReject},
		{"no\n", PromptReject},
		{"a\n", PromptAcceptAll},
		{"r\n", PromptRejectAll},
		{"q\n", PromptQuit},
		{"quit\n", PromptQuit},
		{"bogus\n", PromptReject}, // invalid input defaults to reject
	}

	for _, tt := range tests {
		p := NewInteractivePrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		result, _, err := p.PromptForAlias(ProposedAlias{Pattern: "Kazoo Lead"})
		if err != nil {
			t.Fatalf("PromptForAlias(%q): %v", tt.input, err)
		}
		if result != tt.want {
			t.Errorf("input %q: result = %v, want %v", tt.input, result, tt.want)
		}
	}
}

func TestPromptForAliasEOFQuits(t *testing.T) {
	p := NewInteractivePrompter(strings.NewReader(""), &bytes.Buffer{})
	result, _, err := p.PromptForAlias(ProposedAlias{Pattern: "Kazoo Lead"})
	if err != nil {
		t.Fatalf("PromptForAlias: %v", err)
	}
	if result != PromptQuit {
		t.Errorf("result = %v, want PromptQuit on EOF", result)
	}
}
