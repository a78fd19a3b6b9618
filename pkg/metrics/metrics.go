// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	CandidatesInPool(matchPool string, numCandidates int)
	AddElapsedTimeMs(matchPool, function string, elapsedTime time.Duration)
	AddMatchesCreated(matchPool, matchType string, numMatches int)
	AddAIFallbackReason(matchPool string, reason string)
	AddEloGap(matchPool string, gap int)
	AddRunResult(matchPool string, result string)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
