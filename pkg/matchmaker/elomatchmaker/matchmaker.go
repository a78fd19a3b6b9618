// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package elomatchmaker provides the ELO based implementation of the Matchmaker interface.
// It pairs every candidate of a snapshot with an opponent of similar rating and falls back
// to AI opponents for the odd one out and for candidates without an eligible opponent.
package elomatchmaker

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mitchellh/copystructure"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/metrics"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

var _ matchmaker.Matchmaker = (*MatchMaker)(nil)

// Options configures a MatchMaker.
type Options struct {
	MatchPool      string
	ToleranceTable models.ToleranceTable
	// Rand is the random source of the run. When nil a source seeded with Seed is used.
	Rand *rand.Rand
	Seed int64
	// SortedSearchMinPoolSize is the pool size from which opponents are looked up
	// on a rating sorted index. 0 disables the sorted index.
	SortedSearchMinPoolSize int
	// Pick chooses the odd candidate peeled off into an AI match, PickLast when nil.
	Pick PickFunc
}

type MatchMaker struct {
	matchPool               string
	ranges                  *RangeCalculator
	sampler                 *EloSampler
	pick                    PickFunc
	sortedSearchMinPoolSize int
	metrics                 metrics.MatchmakingMetrics
	// indexSets recycles index sets between runs of this instance only.
	indexSets *models.Pool
}

// New returns a MatchMaker. A MatchMaker owns its random source and must not
// run concurrently; create one per partition.
func New(opts Options, mmMetrics metrics.MatchmakingMetrics) (*MatchMaker, error) {
	ranges, err := NewRangeCalculator(opts.ToleranceTable)
	if err != nil {
		return nil, err
	}
	if opts.SortedSearchMinPoolSize < 0 {
		return nil, fmt.Errorf("%w: sorted search min pool size cannot be negative", models.ErrInvalidArgument)
	}

	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}
	pick := opts.Pick
	if pick == nil {
		pick = PickLast
	}

	return &MatchMaker{
		matchPool:               opts.MatchPool,
		ranges:                  ranges,
		sampler:                 NewEloSampler(rng),
		pick:                    pick,
		sortedSearchMinPoolSize: opts.SortedSearchMinPoolSize,
		metrics:                 mmMetrics,
		indexSets:               models.NewPool(),
	}, nil
}

// Run pairs the candidates. The input slice is not modified.
func (mm *MatchMaker) Run(rootScope *envelope.Scope, candidates []models.Candidate) ([]models.Match, error) {
	scope := rootScope.NewChildScope("MatchMaker.Run")
	defer scope.Finish()

	if err := models.ValidateCandidates(candidates); err != nil {
		return nil, err
	}

	matches := make([]models.Match, 0, len(candidates)/2+1)
	if len(candidates) == 0 {
		return matches, nil
	}

	startTime := time.Now()
	scope.SetAttributes("candidates", len(candidates))
	scope.Log.Debugf("matching %d candidates", len(candidates))

	snapshot, err := copyCandidates(candidates)
	if err != nil {
		return nil, err
	}

	indexSet := mm.indexSets.NewIndexSet(len(snapshot))
	defer mm.indexSets.ReleaseIndexSet(indexSet)

	oddMatch, err := SanitizeArr(snapshot, &indexSet, mm.pick)
	if err != nil {
		return nil, err
	}
	if oddMatch != nil {
		matches = append(matches, *oddMatch)
		mm.metrics.AddAIFallbackReason(mm.matchPool, models.AIReasonOddPool)
		scope.Log.WithField("candidateID", oddMatch.PlayerOneID).Debug("odd pool, candidate peeled off into an AI match")
	}

	candidatePool := newCandidatePool(len(snapshot), indexSet)
	search := mm.newSearch(snapshot, candidatePool)

	for candidatePool.size() > 0 {
		pivotIdx, err := candidatePool.popPivot()
		if err != nil {
			return nil, err
		}
		search.removed(pivotIdx)
		snapshot[pivotIdx].HasActiveGame = true
		pivot := snapshot[pivotIdx]

		opponentIdx, found, reason, err := mm.findOpponent(search, pivot, candidatePool.size())
		if err != nil {
			return nil, err
		}
		if !found {
			matches = append(matches, models.NewAIMatch(pivot))
			mm.metrics.AddAIFallbackReason(mm.matchPool, reason)
			continue
		}

		if err := candidatePool.remove(opponentIdx); err != nil {
			return nil, err
		}
		search.removed(opponentIdx)
		snapshot[opponentIdx].HasActiveGame = true

		match := models.NewHumanMatch(pivot, snapshot[opponentIdx])
		matches = append(matches, match)
		mm.metrics.AddEloGap(mm.matchPool, match.EloGap())
	}

	if err := verifyCoverage(snapshot, matches); err != nil {
		scope.SetError(err)
		scope.Log.WithError(err).Error("matchmaking result rejected")
		return nil, err
	}

	scope.Log.Debugf("created %d matches from %d candidates in %s", len(matches), len(candidates), time.Since(startTime))

	return matches, nil
}

// findOpponent looks for an opponent of pivot among the remaining candidates.
// When none is found the AI fallback reason is returned.
func (mm *MatchMaker) findOpponent(search opponentSearch, pivot models.Candidate, remaining int) (int, bool, string, error) {
	tolerance, ok, err := mm.ranges.DefineRange(remaining)
	if err != nil {
		return 0, false, "", err
	}
	if !ok {
		return 0, false, models.AIReasonNoTolerance, nil
	}
	if remaining == 0 {
		return 0, false, models.AIReasonNoOpponentInRange, nil
	}

	minElo, maxElo := pivot.EloRating-tolerance, pivot.EloRating+tolerance
	targetElo, err := mm.sampler.GetRandomElo(minElo, maxElo, pivot.EloRating)
	if err != nil {
		return 0, false, "", err
	}

	opponentIdx, found := search.find(minElo, maxElo, targetElo)
	if !found {
		return 0, false, models.AIReasonNoOpponentInRange, nil
	}

	return opponentIdx, true, "", nil
}

func (mm *MatchMaker) newSearch(candidates []models.Candidate, candidatePool *candidatePool) opponentSearch {
	if mm.sortedSearchMinPoolSize > 0 && candidatePool.size() >= mm.sortedSearchMinPoolSize {
		return newSortedSearch(candidates, candidatePool)
	}
	return newLinearSearch(candidates, candidatePool)
}

func copyCandidates(candidates []models.Candidate) ([]models.Candidate, error) {
	copied, err := copystructure.Copy(candidates)
	if err != nil {
		return nil, fmt.Errorf("copy candidate snapshot: %w", err)
	}
	snapshot, ok := copied.([]models.Candidate)
	if !ok {
		return nil, fmt.Errorf("copy candidate snapshot: unexpected type %T", copied)
	}
	return snapshot, nil
}
