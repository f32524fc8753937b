// Package suggest finds "did you mean" candidates for misspelled names such as
// tags, icon names and page ids.
package suggest

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Closest returns the candidate that best matches input, or "" if none is
// plausible. Candidates containing the input as a case-insensitive subsequence
// rank first (by edit distance); otherwise the longest candidate that is itself
// a subsequence of the input is returned.
func Closest(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(input, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best := ""
	for _, c := range candidates {
		if c == "" || !fuzzy.MatchFold(c, input) {
			continue
		}
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// Hint formats a suggestion as a message suffix, e.g. ` (did you mean "home"?)`,
// or returns "" when there is no suggestion.
func Hint(input string, candidates []string) string {
	if s := Closest(input, candidates); s != "" && s != input {
		return ` (did you mean "` + s + `"?)`
	}
	return ""
}
