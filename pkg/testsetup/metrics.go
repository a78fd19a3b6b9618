// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"
	"time"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) CandidatesInPool(matchPool string, numCandidates int) {}

func (s stubMetricsCollection) AddElapsedTimeMs(matchPool, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddMatchesCreated(matchPool, matchType string, numMatches int) {}

func (s stubMetricsCollection) AddAIFallbackReason(matchPool string, reason string) {}

func (s stubMetricsCollection) AddEloGap(matchPool string, gap int) {}

func (s stubMetricsCollection) AddRunResult(matchPool string, result string) {}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}

// RecordingMetrics counts AI fallback reasons and run results for assertions.
type RecordingMetrics struct {
	stubMetricsCollection

	mu         sync.Mutex
	AIReasons  map[string]int
	RunResults map[string]int
	Matches    map[string]int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		AIReasons:  map[string]int{},
		RunResults: map[string]int{},
		Matches:    map[string]int{},
	}
}

func (r *RecordingMetrics) AddAIFallbackReason(matchPool string, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.AIReasons[reason]++
}

func (r *RecordingMetrics) AddRunResult(matchPool string, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RunResults[result]++
}

func (r *RecordingMetrics) AddMatchesCreated(matchPool, matchType string, numMatches int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Matches[matchType] += numMatches
}
