package match

import (
	"sort"
	"strings"
)

// maxSuggestions caps the number of names returned by Closest.
const maxSuggestions = 3

// Threshold returns the largest edit distance at which a candidate still
// counts as a near miss of name: a third of its length, at least one.
func Threshold(name string) int {
	return max(1, len([]rune(name))/3)
}

// Closest returns up to three candidates that are near misses of name,
// nearest first. Comparison ignores case, so "userid" finds "UserID".
// Exact matches are not suggestions and are left out.
func Closest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	target := strings.ToLower(name)
	limit := Threshold(name)
	seen := make(map[string]bool, len(candidates))

	var hits []scored

	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		if d := Levenshtein(target, strings.ToLower(c)); d <= limit {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}

		return hits[i].name < hits[j].name
	})

	if len(hits) > maxSuggestions {
		hits = hits[:maxSuggestions]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}

// DidYouMean formats the closest candidates as a hint, or returns "" when
// none is close enough.
func DidYouMean(name string, candidates []string) string {
	hits := Closest(name, candidates)

	switch len(hits) {
	case 0:
		return ""
	case 1:
		return "did you mean " + hits[0] + "?"
	default:
		return "did you mean one of " + strings.Join(hits, ", ") + "?"
	}
}
