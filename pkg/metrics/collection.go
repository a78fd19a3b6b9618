// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	candidatesInPool  prometheus.GaugeVec
	elapsedTime       prometheus.HistogramVec
	matchesCreated    prometheus.CounterVec
	aiFallbackReasons prometheus.CounterVec
	eloGap            prometheus.HistogramVec
	runResults        prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	candidatesInPool := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "elo_mm_candidates_in_pool",
			Help: "Number of candidates in the snapshot of the last run",
		}, []string{"matchpool"})

	//nolint:promlinter
	elapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elo_mm_elapsed_time_ms",
			Help:    "A histogram of matchmaking run steps elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"matchpool", "function"})

	matchesCreated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elo_mm_matches_created_total",
			Help: "Number of matches created by type",
		}, []string{"matchpool", "type"})

	aiFallbackReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elo_mm_ai_fallback_reasons_total",
			Help: "Number of candidates placed against an AI opponent by reason",
		}, []string{"matchpool", "reason"})

	eloGap := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elo_mm_elo_gap",
			Help:    "A histogram of the rating difference of human matches",
			Buckets: prometheus.LinearBuckets(0, 50, 21),
		}, []string{"matchpool"})

	runResults := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elo_mm_run_results_total",
			Help: "Number of scheduled runs by outcome",
		}, []string{"matchpool", "result"})

	return prometheusMetrics{
		candidatesInPool:  *candidatesInPool,
		elapsedTime:       *elapsedTime,
		matchesCreated:    *matchesCreated,
		aiFallbackReasons: *aiFallbackReasons,
		eloGap:            *eloGap,
		runResults:        *runResults,
	}
}

func (metrics prometheusMetrics) CandidatesInPool(matchPool string, numCandidates int) {
	metrics.candidatesInPool.With(prometheus.Labels{"matchpool": matchPool}).Set(float64(numCandidates))
}

func (metrics prometheusMetrics) AddElapsedTimeMs(matchPool, function string, elapsedTime time.Duration) {
	metrics.elapsedTime.With(prometheus.Labels{"matchpool": matchPool, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddMatchesCreated(matchPool, matchType string, numMatches int) {
	metrics.matchesCreated.With(prometheus.Labels{"matchpool": matchPool, "type": matchType}).Add(float64(numMatches))
}

func (metrics prometheusMetrics) AddAIFallbackReason(matchPool string, reason string) {
	metrics.aiFallbackReasons.With(prometheus.Labels{"matchpool": matchPool, "reason": reason}).Add(float64(1))
}

func (metrics prometheusMetrics) AddEloGap(matchPool string, gap int) {
	metrics.eloGap.With(prometheus.Labels{"matchpool": matchPool}).Observe(float64(gap))
}

func (metrics prometheusMetrics) AddRunResult(matchPool string, result string) {
	metrics.runResults.With(prometheus.Labels{"matchpool": matchPool, "result": result}).Add(float64(1))
}
