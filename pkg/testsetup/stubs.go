// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

type StubCandidateProvider struct {
	Candidates []models.Candidate
	Err        error
}

func (s StubCandidateProvider) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Candidate(nil), s.Candidates...), nil
}

// StubMatchWriter keeps every saved batch. When Err is set nothing is kept.
type StubMatchWriter struct {
	Err error

	mu      sync.Mutex
	Batches map[string][]models.Match
}

func NewStubMatchWriter() *StubMatchWriter {
	return &StubMatchWriter{Batches: map[string][]models.Match{}}
}

func (s *StubMatchWriter) SaveMatches(ctx context.Context, runID string, matches []models.Match) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Batches[runID] = append([]models.Match(nil), matches...)
	return nil
}

func (s *StubMatchWriter) Saved() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Match
	for _, batch := range s.Batches {
		all = append(all, batch...)
	}
	return all
}

// StubLocker is an in-process Locker.
type StubLocker struct {
	Err error

	mu   sync.Mutex
	held map[string]bool
}

func NewStubLocker() *StubLocker {
	return &StubLocker{held: map[string]bool{}}
}

func (s *StubLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (matchmaker.Lock, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] {
		return nil, false, nil
	}
	s.held[key] = true
	return &stubLock{locker: s, key: key}, true, nil
}

func (s *StubLocker) IsHeld(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[key]
}

type stubLock struct {
	locker *StubLocker
	key    string
}

func (l *stubLock) Release(ctx context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()
	if !l.locker.held[l.key] {
		return fmt.Errorf("lock %s is not held", l.key)
	}
	delete(l.locker.held, l.key)
	return nil
}

// GenerateCandidates returns count candidates rated from startElo downward, one point apart.
func GenerateCandidates(count int, startElo int) []models.Candidate {
	candidates := make([]models.Candidate, 0, count)
	for i := 0; i < count; i++ {
		candidates = append(candidates, models.Candidate{
			ID:        fmt.Sprintf("player-%d", i),
			EloRating: startElo - i,
		})
	}
	return candidates
}
