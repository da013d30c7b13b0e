package rules

import (
	"github.com/agnivade/levenshtein"

	"github.com/yaklabco/mdxlint/pkg/lint"
)

// defaultMaxDistance is how many edits a near miss may be away from a
// known tag or id before no "did you mean" hint is given.
const defaultMaxDistance = 2

func maxDistance(ctx *lint.RuleContext) int {
	return ctx.OptionInt("max_distance", defaultMaxDistance)
}

// closest returns the candidate nearest to word within limit edits. Exact
// matches and ties keep the earliest candidate.
func closest(word string, candidates []string, limit int) (string, bool) {
	best := ""
	bestDist := limit + 1

	for _, c := range candidates {
		if c == word {
			continue
		}
		if d := levenshtein.ComputeDistance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= limit
}
