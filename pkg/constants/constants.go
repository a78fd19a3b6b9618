// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	ServiceName = "elo-matchmaker"

	// LockKeyPrefix + match pool is the key of the scheduler singleton lock.
	LockKeyPrefix = "matchmaker:run-lock:"

	// ShutdownTimeout bounds the graceful shutdown of the binary.
	ShutdownTimeout = 10 * time.Second
)

const (
	RunMatchesFunction  = "runMatches"
	FetchFunction       = "fetchCandidates"
	PersistFunction     = "persistMatches"
	MatchTypeHuman      = "human"
	MatchTypeAI         = "ai"
	RunResultSuccess    = "success"
	RunResultSkipped    = "skipped_locked"
	RunResultUpstream   = "upstream_unavailable"
	RunResultInvalid    = "invalid_snapshot"
	RunResultPersist    = "persist_failed"
	RunResultEngineFail = "engine_failed"
)

const (
	// MaxSampleAttempts bounds the rejection loop of the rating sampler.
	MaxSampleAttempts = 64
)
