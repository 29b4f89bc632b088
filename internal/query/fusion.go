package query

import "sort"

// fuseRanked merges two ranked ID lists with reciprocal rank fusion: each
// appearance contributes 1/(k+rank) with zero-based ranks. Ties keep
// first-seen order, vector results first. The merged list is truncated to
// limit when limit is positive.
func fuseRanked(vectorIDs, keywordIDs []string, k, limit int) []string {
	scores := make(map[string]float64, len(vectorIDs)+len(keywordIDs))
	order := make([]string, 0, len(vectorIDs)+len(keywordIDs))

	accumulate := func(ids []string) {
		for rank, id := range ids {
			if _, seen := scores[id]; !seen {
				order = append(order, id)
			}
			scores[id] += 1.0 / float64(k+rank)
		}
	}
	accumulate(vectorIDs)
	accumulate(keywordIDs)

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}
