package issue

import "sort"

// adapterPriority is the deterministic tie-break order when overlapping
// issues carry equal confidence and equally useful suggestions. Heavier
// engines produce better-contextualized findings, so they rank first.
var adapterPriority = map[string]int{
	"langproc":   0,
	"rules":      1,
	"dictionary": 2,
	"fuzzy":      3,
	"style":      4,
}

// Merge collapses overlapping same-category issues from different engines
// into one, keeping the strongest version of each. It is idempotent:
// merging already-merged output returns the same set.
//
// Two issues belong to the same group when their ranges intersect and their
// categories match. Within a group the winner is the highest confidence,
// then a non-empty suggestion list, then adapter priority.
func Merge(issues []Issue) []Issue {
	if len(issues) <= 1 {
		return sortIssues(issues)
	}

	sorted := sortIssues(issues)

	var merged []Issue
	for _, cand := range sorted {
		placed := false
		for i := range merged {
			if merged[i].Category == cand.Category && merged[i].Overlaps(cand) {
				merged[i] = better(merged[i], cand)
				placed = true
				break
			}
		}
		if !placed {
			merged = append(merged, cand)
		}
	}

	return sortIssues(merged)
}

// better picks the winner between two overlapping same-category issues.
func better(a, b Issue) Issue {
	if a.Confidence != b.Confidence {
		if a.Confidence > b.Confidence {
			return a
		}
		return b
	}
	aHas, bHas := len(a.Suggestions) > 0, len(b.Suggestions) > 0
	if aHas != bHas {
		if aHas {
			return a
		}
		return b
	}
	if priorityOf(a.Source) <= priorityOf(b.Source) {
		return a
	}
	return b
}

func priorityOf(source string) int {
	if p, ok := adapterPriority[source]; ok {
		return p
	}
	return len(adapterPriority)
}

// sortIssues orders by offset, then length, then category, then source, so
// output is stable across runs on identical input.
func sortIssues(issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return priorityOf(a.Source) < priorityOf(b.Source)
	})
	return out
}
