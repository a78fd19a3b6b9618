// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"sort"

	pie "github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// opponentSearch finds an opponent among the candidates still in the pool.
type opponentSearch interface {
	// find returns the index of a candidate rated within [minElo, maxElo],
	// the one nearest to targetElo when several are eligible.
	find(minElo, maxElo, targetElo int) (idx int, found bool)
	// removed is called for every candidate leaving the pool.
	removed(idx int)
}

// linearSearch scans the whole index set, O(n) per pivot.
type linearSearch struct {
	candidates []models.Candidate
	pool       *candidatePool
}

func newLinearSearch(candidates []models.Candidate, pool *candidatePool) *linearSearch {
	return &linearSearch{candidates: candidates, pool: pool}
}

func (s *linearSearch) find(minElo, maxElo, targetElo int) (int, bool) {
	best, bestDistance := -1, 0
	for _, idx := range s.pool.indexSet {
		elo := s.candidates[idx].EloRating
		if elo < minElo || elo > maxElo {
			continue
		}
		distance := mathutil.AbsDiff(elo, targetElo)
		if best < 0 || distance < bestDistance {
			best, bestDistance = idx, distance
		}
	}
	return best, best >= 0
}

func (s *linearSearch) removed(int) {}

// sortedSearch keeps the pool sorted by rating and answers nearest neighbour
// queries with path compressed "next present" pointers in both directions,
// close to O(log n) per pivot.
type sortedSearch struct {
	elos  []int // ratings by rank, ascending
	order []int // candidate index by rank
	rank  []int // rank by candidate index, -1 when not indexed
	// right[r] leads to the smallest present rank >= r, len(elos) when none.
	right []int
	// left[r+1] leads to the largest present rank <= r, shifted so 0 means none.
	left []int
}

func newSortedSearch(candidates []models.Candidate, pool *candidatePool) *sortedSearch {
	order := pie.SortUsing(append([]int(nil), pool.indexSet...), func(a, b int) bool {
		if candidates[a].EloRating == candidates[b].EloRating {
			return a < b
		}
		return candidates[a].EloRating < candidates[b].EloRating
	})

	m := len(order)
	s := &sortedSearch{
		elos:  make([]int, m),
		order: order,
		rank:  make([]int, len(candidates)),
		right: make([]int, m+1),
		left:  make([]int, m+1),
	}
	for i := range s.rank {
		s.rank[i] = -1
	}
	for r, idx := range order {
		s.elos[r] = candidates[idx].EloRating
		s.rank[idx] = r
	}
	for i := 0; i <= m; i++ {
		s.right[i] = i
		s.left[i] = i
	}

	return s
}

func (s *sortedSearch) findRight(r int) int {
	root := r
	for s.right[root] != root {
		root = s.right[root]
	}
	for s.right[r] != root {
		s.right[r], r = root, s.right[r]
	}
	return root
}

func (s *sortedSearch) findLeft(r int) int {
	i := r + 1
	root := i
	for s.left[root] != root {
		root = s.left[root]
	}
	for s.left[i] != root {
		s.left[i], i = root, s.left[i]
	}
	return root - 1
}

func (s *sortedSearch) find(minElo, maxElo, targetElo int) (int, bool) {
	t := sort.SearchInts(s.elos, targetElo)

	best, bestDistance := -1, 0
	if right := s.findRight(t); right < len(s.elos) && s.elos[right] <= maxElo && s.elos[right] >= minElo {
		best, bestDistance = right, s.elos[right]-targetElo
	}
	if left := s.findLeft(t - 1); left >= 0 && s.elos[left] >= minElo && s.elos[left] <= maxElo {
		if distance := targetElo - s.elos[left]; best < 0 || distance < bestDistance {
			best = left
		}
	}

	if best < 0 {
		return -1, false
	}
	return s.order[best], true
}

func (s *sortedSearch) removed(idx int) {
	r := s.rank[idx]
	if r < 0 {
		return
	}
	s.rank[idx] = -1
	s.right[r] = r + 1
	s.left[r+1] = r
}
