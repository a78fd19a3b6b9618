// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the core interfaces of the ELO batch matchmaker:
// the engine itself and the collaborators the scheduled job wires around it.
package matchmaker

import (
	"context"
	"time"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

/*
Matchmaker takes a snapshot of eligible candidates and pairs every one of them into exactly one match,
falling back to an AI opponent when no human opponent is available. Run is synchronous, performs no I/O
and must not be called concurrently on the same instance. It either returns a match list covering the
whole snapshot or an error, never a partial result.
*/
type Matchmaker interface {
	Run(scope *envelope.Scope, candidates []models.Candidate) ([]models.Match, error)
}

// CandidateProvider provides the snapshot of candidates eligible for the next run.
// Players currently in an active game must already be excluded.
type CandidateProvider interface {
	// FetchCandidates returns an error wrapping models.ErrUpstreamUnavailable when the snapshot cannot be obtained.
	FetchCandidates(ctx context.Context) ([]models.Candidate, error)
}

// MatchWriter creates the game records and starts the game sessions of a run.
type MatchWriter interface {
	// SaveMatches stores every match or none of them.
	SaveMatches(ctx context.Context, runID string, matches []models.Match) error
}

// Lock is a held run lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker guarantees that no two runs execute concurrently over the same pool.
type Locker interface {
	// Acquire returns ok=false without error when the lock is held by someone else.
	Acquire(ctx context.Context, key string, ttl time.Duration) (lock Lock, ok bool, err error)
}
