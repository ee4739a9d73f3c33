package renamer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"partwise/internal/canon"
)

// genRepeatCount generates how many parts share one family.
func genRepeatCount() gopter.Gen {
	return gen.IntRange(1, 12)
}

// proposedNumbers extracts the numeric suffixes assigned to a family.
func proposedNumbers(plan Plan, family string) []int {
	var nums []int
	for _, e := range plan {
		rest, ok := strings.CutPrefix(e.Proposed, family+" ")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}

func TestNumberingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	table := canon.NewTable()

	properties.Property("N same-family parts are numbered 1..N with no gaps", prop.ForAll(
		func(n int) bool {
			parts := make([]testPart, n)
			for i := range parts {
				parts[i] = testPart{id: fmt.Sprintf("P%d", i+1), name: "Glockenspiel"}
			}
			res := Discover(buildScore(t, parts), table)

			nums := proposedNumbers(res.Parts, "Glockenspiel")
			if len(nums) != n {
				return false
			}
			for i, num := range nums {
				if num != i+1 {
					return false
				}
			}
			return true
		},
		genRepeatCount(),
	))

	properties.Property("first-seen entity gets number 1", prop.ForAll(
		func(n int) bool {
			parts := make([]testPart, n)
			for i := range parts {
				parts[i] = testPart{id: fmt.Sprintf("P%d", i+1), name: "Marimba"}
			}
			res := Discover(buildScore(t, parts), table)
			return res.Parts["P1"].Proposed == "Marimba 1"
		},
		genRepeatCount(),
	))

	properties.Property("after cleanup, numbering appears iff the family repeats", prop.ForAll(
		func(n int) bool {
			parts := make([]testPart, n)
			for i := range parts {
				parts[i] = testPart{id: fmt.Sprintf("P%d", i+1), name: "Vibraphone"}
			}
			res := Discover(buildScore(t, parts), table)
			Cleanup(res.Parts, res.PartCounts)

			if n == 1 {
				return res.Parts["P1"].Proposed == "Vibraphone"
			}
			nums := proposedNumbers(res.Parts, "Vibraphone")
			return len(nums) == n && nums[0] == 1 && nums[len(nums)-1] == n
		},
		genRepeatCount(),
	))

	properties.Property("cleanup is idempotent", prop.ForAll(
		func(n int) bool {
			parts := make([]testPart, n)
			for i := range parts {
				parts[i] = testPart{id: fmt.Sprintf("P%d", i+1), name: "Tuba"}
			}
			res := Discover(buildScore(t, parts), table)

			Cleanup(res.Parts, res.PartCounts)
			snapshot := make(map[string]string, len(res.Parts))
			for id, e := range res.Parts {
				snapshot[id] = e.Proposed
			}
			Cleanup(res.Parts, res.PartCounts)
			for id, e := range res.Parts {
				if snapshot[id] != e.Proposed {
					return false
				}
			}
			return true
		},
		genRepeatCount(),
	))

	properties.TestingRun(t)
}
