package canon

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genLowercaseLabel generates labels over lowercase letters and spaces.
// Every built-in pattern contains at least one uppercase letter or digit,
// so such labels can never match.
func genLowercaseLabel() gopter.Gen {
	return gen.SliceOf(gen.RuneRange('a', 'z')).Map(func(rs []rune) string {
		return string(rs)
	})
}

// genSurroundingText generates decoration placed around a pattern.
func genSurroundingText() gopter.Gen {
	return genLowercaseLabel()
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	table := NewTable()
	entries := table.Entries()

	properties.Property("resolve is deterministic", prop.ForAll(
		func(label string) bool {
			f1, ok1 := table.Resolve(label)
			f2, ok2 := table.Resolve(label)
			return f1 == f2 && ok1 == ok2
		},
		gen.AnyString(),
	))

	properties.Property("lowercase-only labels never match", prop.ForAll(
		func(label string) bool {
			_, ok := table.Resolve(label)
			return !ok
		},
		genLowercaseLabel(),
	))

	properties.Property("labels containing a pattern always match", prop.ForAll(
		func(idx int, before, after string) bool {
			entry := entries[idx%len(entries)]
			label := before + entry.Pattern + after
			_, ok := table.Resolve(label)
			return ok
		},
		gen.IntRange(0, len(entries)-1),
		genSurroundingText(),
		genSurroundingText(),
	))

	properties.Property("bare pattern resolves to a family matched by an entry at or before it", prop.ForAll(
		func(idx int) bool {
			entry := entries[idx%len(entries)]
			family, ok := table.Resolve(entry.Pattern)
			if !ok {
				return false
			}
			// The winner must be the first entry whose pattern the label contains.
			for _, e := range entries {
				if strings.Contains(entry.Pattern, e.Pattern) {
					return family == e.Family
				}
			}
			return false
		},
		gen.IntRange(0, len(entries)-1),
	))

	properties.TestingRun(t)
}
