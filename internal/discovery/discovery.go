// Package discovery handles auto-discovery of alias rules from unmatched
// names in existing scores.
package discovery

import (
	"sort"
	"strings"

	"partwise/internal/canon"
	"partwise/internal/musicxml"
	"partwise/internal/renamer"
)

// ProposedAlias represents an alias rule candidate built from a name that
// no table entry matched.
type ProposedAlias struct {
	Pattern     string // The unmatched name, proposed verbatim as the pattern
	Suggested   string // Heuristic family suggestion, may be empty
	Occurrences int    // How many parts and instruments carried this name
}

// DiscoveryResult contains the results of a discovery scan.
type DiscoveryResult struct {
	NewAliases     []ProposedAlias // Candidates to be added
	SkippedAliases []ProposedAlias // Candidates skipped (pattern already configured)
	ScoresScanned  int             // Number of scores parsed successfully
	ScoresFailed   int             // Number of scores that failed to parse
	NamesAnalyzed  int             // Number of part and instrument names examined
}

// Discover parses the given score files and collects every part and
// instrument name the table cannot resolve. Candidates are returned in
// descending occurrence order so the most common gaps come first.
// Patterns already present in existingAliases are reported as skipped.
func Discover(paths []string, table *canon.Table, existingAliases map[string]bool) (*DiscoveryResult, error) {
	result := &DiscoveryResult{
		NewAliases:     []ProposedAlias{},
		SkippedAliases: []ProposedAlias{},
	}

	occurrences := make(map[string]int)
	var order []string

	for _, path := range paths {
		doc, err := musicxml.ParseFile(path)
		if err != nil {
			// A malformed score should not abort discovery over the rest.
			result.ScoresFailed++
			continue
		}
		result.ScoresScanned++

		res := renamer.Discover(doc, table)
		result.NamesAnalyzed += len(res.Parts) + len(res.Instruments) + len(res.Unmatched)
		for _, u := range res.Unmatched {
			if occurrences[u.Name] == 0 {
				order = append(order, u.Name)
			}
			occurrences[u.Name]++
		}
	}

	// Most frequent first; ties keep first-seen order.
	sort.SliceStable(order, func(i, j int) bool {
		return occurrences[order[i]] > occurrences[order[j]]
	})

	for _, name := range order {
		alias := ProposedAlias{
			Pattern:     name,
			Suggested:   SuggestFamily(name),
			Occurrences: occurrences[name],
		}
		if existingAliases != nil && existingAliases[name] {
			result.SkippedAliases = append(result.SkippedAliases, alias)
		} else {
			result.NewAliases = append(result.NewAliases, alias)
		}
	}

	return result, nil
}

// SuggestFamily derives a family suggestion from an unmatched name by
// stripping the decoration notation apps commonly add: a leading track
// number ("03 - "), parenthesized annotations ("(div.)") and a trailing
// desk number. "03 - Glockenspiel (solo)" suggests "Glockenspiel".
// Returns the empty string when nothing usable remains.
func SuggestFamily(name string) string {
	s := strings.TrimSpace(name)

	if m := leadingNumberPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = parenPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if m := trailingNumberPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	s = strings.Join(strings.Fields(s), " ")
	if s == name || !hasLetter(s) {
		return ""
	}
	return s
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
