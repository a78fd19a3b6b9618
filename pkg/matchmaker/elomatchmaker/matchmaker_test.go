// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/testsetup"
)

func newTestMatchMaker(t *testing.T, opts Options) *MatchMaker {
	t.Helper()
	if opts.ToleranceTable == nil {
		opts.ToleranceTable = models.DefaultToleranceTable
	}
	if opts.MatchPool == "" {
		opts.MatchPool = "test-pool"
	}
	mm, err := New(opts, testsetup.NewMetrics())
	require.NoError(t, err)
	return mm
}

func requireCoverage(t *testing.T, candidates []models.Candidate, matches []models.Match) {
	t.Helper()
	seen := map[string]int{}
	for _, match := range matches {
		for _, id := range match.PlayerIDs() {
			seen[id]++
		}
	}
	for _, c := range candidates {
		if !assert.Equal(t, 1, seen[c.ID], "candidate %s", c.ID) {
			t.Log(spew.Sdump(matches))
			t.FailNow()
		}
	}
	assert.Len(t, seen, len(candidates))
}

func TestMatchMaker_Coverage(t *testing.T) {
	strategies := map[string]int{
		"linear": 0,
		"sorted": 1,
	}
	for name, minPoolSize := range strategies {
		for _, n := range []int{1, 2, 3, 4, 7, 10, 33, 100, 257, 1000} {
			t.Run(fmt.Sprintf("%s_%d", name, n), func(t *testing.T) {
				g := testsetup.ParallelWithGomega(t)
				mm := newTestMatchMaker(t, Options{Seed: int64(n), SortedSearchMinPoolSize: minPoolSize})

				rng := NewRand(int64(n) * 31)
				candidates := make([]models.Candidate, n)
				for i := range candidates {
					candidates[i] = models.Candidate{ID: fmt.Sprintf("p%d", i), EloRating: 800 + rng.IntN(1600)}
				}

				matches, err := mm.Run(g.TestScope, candidates)
				g.Expect(err).ToNot(HaveOccurred())
				requireCoverage(t, candidates, matches)

				for _, match := range matches {
					if match.IsAIGame {
						g.Expect(match.PlayerTwoID).To(BeNil())
						g.Expect(match.PlayerTwoElo).To(BeNil())
						continue
					}
					g.Expect(match.EloGap()).To(BeNumerically("<=", models.DefaultToleranceTable[0].Tolerance))
				}
			})
		}
	}
}

func TestMatchMaker_OddPoolSingleAIMatch(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	recorder := testsetup.NewRecordingMetrics()
	mm, err := New(Options{MatchPool: "test-pool", ToleranceTable: models.DefaultToleranceTable, Seed: 3}, recorder)
	g.Expect(err).ToNot(HaveOccurred())

	candidates := testsetup.GenerateCandidates(21, 1500)
	matches, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).To(HaveLen(11))

	aiMatches := 0
	for _, match := range matches {
		if match.IsAIGame {
			aiMatches++
			g.Expect(match.PlayerTwoID).To(BeNil())
		}
	}
	g.Expect(aiMatches).To(Equal(1))
	g.Expect(recorder.AIReasons).To(Equal(map[string]int{models.AIReasonOddPool: 1}))
}

func TestMatchMaker_EvenPoolAllHuman(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	mm := newTestMatchMaker(t, Options{Seed: 8, SortedSearchMinPoolSize: 2})

	candidates := testsetup.GenerateCandidates(50, 2000)
	matches, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).To(HaveLen(25))
	for _, match := range matches {
		g.Expect(match.IsAIGame).To(BeFalse())
	}
}

func TestMatchMaker_EmptyPool(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	mm := newTestMatchMaker(t, Options{})

	matches, err := mm.Run(g.TestScope, nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).ToNot(BeNil())
	g.Expect(matches).To(BeEmpty())
}

func TestMatchMaker_SingleCandidate(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	mm := newTestMatchMaker(t, Options{})

	matches, err := mm.Run(g.TestScope, []models.Candidate{{ID: "solo", EloRating: 1337}})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(matches).To(Equal([]models.Match{models.NewAIMatch(models.Candidate{ID: "solo", EloRating: 1337})}))
}

func TestMatchMaker_SameSeedSameResult(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	candidates := testsetup.GenerateCandidates(301, 2500)

	first, err := newTestMatchMaker(t, Options{Seed: 1234}).Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	second, err := newTestMatchMaker(t, Options{Seed: 1234}).Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(second).To(Equal(first))
}

func TestMatchMaker_NoTolerance(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	recorder := testsetup.NewRecordingMetrics()
	mm, err := New(Options{
		MatchPool:      "test-pool",
		ToleranceTable: models.ToleranceTable{{MaxPoolSize: 2, Tolerance: 100}},
		Seed:           5,
	}, recorder)
	g.Expect(err).ToNot(HaveOccurred())

	candidates := testsetup.GenerateCandidates(10, 1000)
	matches, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	requireCoverage(t, candidates, matches)

	// pivots see 9, 8 and so on down to 2 remaining before the table applies
	g.Expect(recorder.AIReasons[models.AIReasonNoTolerance]).To(Equal(8))
	g.Expect(matches).To(HaveLen(9))
}

func TestMatchMaker_NoOpponentInRange(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	recorder := testsetup.NewRecordingMetrics()
	mm, err := New(Options{MatchPool: "test-pool", ToleranceTable: models.DefaultToleranceTable, Seed: 9}, recorder)
	g.Expect(err).ToNot(HaveOccurred())

	candidates := []models.Candidate{
		{ID: "low", EloRating: 100},
		{ID: "mid", EloRating: 3000},
		{ID: "high", EloRating: 6000},
		{ID: "top", EloRating: 9000},
	}
	matches, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	requireCoverage(t, candidates, matches)

	g.Expect(matches).To(HaveLen(4))
	for _, match := range matches {
		g.Expect(match.IsAIGame).To(BeTrue())
	}
	g.Expect(recorder.AIReasons[models.AIReasonNoOpponentInRange]).To(Equal(4))
}

func TestMatchMaker_InputNotMutated(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	mm := newTestMatchMaker(t, Options{Seed: 2})

	candidates := testsetup.GenerateCandidates(15, 1200)
	before := append([]models.Candidate(nil), candidates...)

	_, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(candidates).To(Equal(before))
}

func TestMatchMaker_InvalidInput(t *testing.T) {
	mm := newTestMatchMaker(t, Options{})
	scope := testsetup.NewTestScope()

	tests := []struct {
		name       string
		candidates []models.Candidate
	}{
		{name: "empty_id", candidates: []models.Candidate{{ID: "", EloRating: 1}}},
		{name: "active_game", candidates: []models.Candidate{{ID: "a", HasActiveGame: true}}},
		{name: "duplicate_id", candidates: []models.Candidate{{ID: "a"}, {ID: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := mm.Run(scope, tt.candidates)
			assert.ErrorIs(t, err, models.ErrInvalidArgument)
			assert.Nil(t, matches)
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{ToleranceTable: models.ToleranceTable{}}, testsetup.NewMetrics())
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = New(Options{ToleranceTable: models.DefaultToleranceTable, SortedSearchMinPoolSize: -1}, testsetup.NewMetrics())
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestMatchMaker_LargeSortedPool(t *testing.T) {
	if testing.Short() {
		t.Skip("large pool")
	}
	g := testsetup.ParallelWithGomega(t)
	mm := newTestMatchMaker(t, Options{Seed: 77, SortedSearchMinPoolSize: 2048})

	candidates := testsetup.GenerateCandidates(50_001, 60_000)
	matches, err := mm.Run(g.TestScope, candidates)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(len(matches)).To(BeNumerically(">=", 25_001))
	requireCoverage(t, candidates, matches)
}

func TestMatchMaker_ConcurrentInstances(t *testing.T) {
	const instances = 8
	candidates := testsetup.GenerateCandidates(301, 2000)

	engines := make([]*MatchMaker, instances)
	for i := range engines {
		engines[i] = newTestMatchMaker(t, Options{Seed: 21, SortedSearchMinPoolSize: 64})
	}
	assert.NotSame(t, engines[0].indexSets, engines[1].indexSets)

	results := make([][]models.Match, instances)
	errs := make([]error, instances)
	var wg sync.WaitGroup
	for i := range engines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for run := 0; run < 5; run++ {
				results[i], errs[i] = engines[i].Run(testsetup.NewTestScope(), candidates)
			}
		}()
	}
	wg.Wait()

	for i := range engines {
		require.NoError(t, errs[i])
		requireCoverage(t, candidates, results[i])
		assert.Equal(t, results[0], results[i])
	}
}
