package repositories

import (
	"sort"
)

// intersectIDs returns the ids present in both a and b, sorted ascending.
func intersectIDs(a, b []uint) []uint {
	if len(a) > len(b) {
		a, b = b, a
	}
	set := make(map[uint]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}

	out := make([]uint, 0, len(a))
	for _, id := range b {
		if _, ok := set[id]; ok {
			out = append(out, id)
			delete(set, id)
		}
	}
	sortIDs(out)
	return out
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// likeRank is the ranking key of one film.
type likeRank struct {
	filmID uint
	likes  int64
}

// rankByLikes orders by like count descending and film id ascending, then
// truncates to count entries.
func rankByLikes(ranks []likeRank, count int) []likeRank {
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].likes != ranks[j].likes {
			return ranks[i].likes > ranks[j].likes
		}
		return ranks[i].filmID < ranks[j].filmID
	})
	if count < len(ranks) {
		ranks = ranks[:count]
	}
	return ranks
}
