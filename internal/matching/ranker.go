package matching

import (
	"sort"

	"github.com/google/uuid"
)

// Rank orders results by descending score, then ascending price per seat.
// The sort is stable, so equal results keep their incoming order. A ride
// listed more than once keeps only its best-ranked entry.
func Rank(results []MatchResult) []MatchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PricePerSeat < results[j].PricePerSeat
	})

	seen := make(map[uuid.UUID]struct{}, len(results))
	out := results[:0]
	for _, r := range results {
		if r.ID != uuid.Nil {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}
