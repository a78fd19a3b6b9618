// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package scheduler runs the matchmaking engine as a periodic batch job:
// it takes the run lock, fetches the candidate snapshot, matches every
// partition and persists the whole result at once.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/envelope"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker/elomatchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/metrics"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/utils"
)

type Options struct {
	MatchPool      string
	ToleranceTable models.ToleranceTable
	// Seed of every run, 0 seeds each run from the clock.
	Seed                    int64
	SortedSearchMinPoolSize int
	PartitionSize           int
	MaxConcurrentPartitions int
	LockTTL                 time.Duration
	RunInterval             time.Duration
	RunOnStart              bool
}

type Service struct {
	opts     Options
	provider matchmaker.CandidateProvider
	writer   matchmaker.MatchWriter
	locker   matchmaker.Locker
	metrics  metrics.MatchmakingMetrics

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

func NewService(opts Options, provider matchmaker.CandidateProvider, writer matchmaker.MatchWriter, locker matchmaker.Locker, mmMetrics metrics.MatchmakingMetrics) (*Service, error) {
	if err := opts.ToleranceTable.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxConcurrentPartitions <= 0 {
		opts.MaxConcurrentPartitions = 1
	}
	if opts.LockTTL <= 0 {
		return nil, fmt.Errorf("%w: lock ttl must be greater than 0", models.ErrInvalidArgument)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		opts:     opts,
		provider: provider,
		writer:   writer,
		locker:   locker,
		metrics:  mmMetrics,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start runs RunOnce every RunInterval until Stop is called. A Service starts at most once.
func (s *Service) Start() error {
	if s.opts.RunInterval <= 0 {
		return fmt.Errorf("%w: run interval must be greater than 0", models.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("%w: scheduler already started", models.ErrInvalidArgument)
	}
	if s.ctx.Err() != nil {
		return fmt.Errorf("%w: scheduler already stopped", models.ErrInvalidArgument)
	}
	s.started = true

	s.wg.Add(1)
	go s.runLoop()

	logrus.WithField("interval", s.opts.RunInterval).Info("matchmaking scheduler started")
	return nil
}

// Stop cancels the running job, if any, and waits for the loop to exit.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
	logrus.Info("matchmaking scheduler stopped")
}

func (s *Service) runLoop() {
	defer s.wg.Done()

	if s.opts.RunOnStart {
		s.runAndLog()
	}

	ticker := time.NewTicker(s.opts.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runAndLog()
		}
	}
}

func (s *Service) runAndLog() {
	_, err := s.RunOnce(s.ctx)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrRunInProgress):
		logrus.WithField("matchPool", s.opts.MatchPool).Info("matchmaking run skipped, another run is in progress")
	default:
		logrus.WithError(err).WithField("errorCode", models.ErrorCode(err)).Error("matchmaking run failed, retrying next cycle")
	}
}

// RunOnce executes one matchmaking run over the whole pool.
// Nothing is written unless every partition succeeds.
func (s *Service) RunOnce(ctx context.Context) (*models.RunReport, error) {
	startTime := time.Now()
	runID := utils.NewRunID()
	scope := envelope.NewRunScope(ctx, s.opts.MatchPool, runID)
	defer scope.Finish()

	report, result, err := s.run(scope, runID)
	s.metrics.AddRunResult(s.opts.MatchPool, result)
	if err != nil {
		scope.SetError(err)
		return nil, err
	}

	report.Elapsed = time.Since(startTime)
	s.metrics.AddElapsedTimeMs(s.opts.MatchPool, constants.RunMatchesFunction, report.Elapsed)
	scope.Log.WithFields(logrus.Fields{
		"candidates": report.Candidates,
		"matches":    report.Matches,
		"aiMatches":  report.AIMatches,
		"partitions": report.Partitions,
		"elapsed":    report.Elapsed.String(),
	}).Info("matchmaking run completed")

	return report, nil
}

func (s *Service) run(scope *envelope.Scope, runID string) (*models.RunReport, string, error) {
	lock, ok, err := s.locker.Acquire(scope.Ctx, constants.LockKeyPrefix+s.opts.MatchPool, s.opts.LockTTL)
	if err != nil {
		return nil, constants.RunResultUpstream, fmt.Errorf("%w: acquire run lock: %v", models.ErrUpstreamUnavailable, err)
	}
	if !ok {
		return nil, constants.RunResultSkipped, fmt.Errorf("%w: pool %s", models.ErrRunInProgress, s.opts.MatchPool)
	}
	defer func() {
		// the lock outlives a failed release only until its ttl
		if err := lock.Release(context.WithoutCancel(scope.Ctx)); err != nil {
			scope.Log.WithError(err).Warn("unable to release run lock")
		}
	}()

	fetchStart := time.Now()
	candidates, err := s.provider.FetchCandidates(scope.Ctx)
	s.metrics.AddElapsedTimeMs(s.opts.MatchPool, constants.FetchFunction, time.Since(fetchStart))
	if err != nil {
		if !errors.Is(err, models.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: fetch candidates: %v", models.ErrUpstreamUnavailable, err)
		}
		return nil, constants.RunResultUpstream, err
	}
	s.metrics.CandidatesInPool(s.opts.MatchPool, len(candidates))
	scope.Log.Infof("fetched %d candidates", len(candidates))

	if err := models.ValidateCandidates(candidates); err != nil {
		return nil, constants.RunResultInvalid, err
	}

	partitions := partitionCandidates(candidates, s.opts.PartitionSize)
	matches, err := s.matchPartitions(scope, partitions)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			return nil, constants.RunResultInvalid, err
		}
		return nil, constants.RunResultEngineFail, err
	}

	persistStart := time.Now()
	err = s.writer.SaveMatches(scope.Ctx, runID, matches)
	s.metrics.AddElapsedTimeMs(s.opts.MatchPool, constants.PersistFunction, time.Since(persistStart))
	if err != nil {
		return nil, constants.RunResultPersist, fmt.Errorf("%w: %v", models.ErrPersistFailed, err)
	}

	report := &models.RunReport{
		RunID:      runID,
		Candidates: len(candidates),
		Matches:    len(matches),
		Partitions: len(partitions),
	}
	for _, match := range matches {
		if match.IsAIGame {
			report.AIMatches++
		}
	}
	s.metrics.AddMatchesCreated(s.opts.MatchPool, constants.MatchTypeHuman, report.Matches-report.AIMatches)
	s.metrics.AddMatchesCreated(s.opts.MatchPool, constants.MatchTypeAI, report.AIMatches)

	return report, constants.RunResultSuccess, nil
}

func (s *Service) matchPartitions(scope *envelope.Scope, partitions [][]models.Candidate) ([]models.Match, error) {
	runSeed := s.opts.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	results := make([][]models.Match, len(partitions))
	g, ctx := errgroup.WithContext(scope.Ctx)
	g.SetLimit(s.opts.MaxConcurrentPartitions)

	for i := range partitions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			mm, err := elomatchmaker.New(elomatchmaker.Options{
				MatchPool:               s.opts.MatchPool,
				ToleranceTable:          s.opts.ToleranceTable,
				Seed:                    partitionSeed(runSeed, i),
				SortedSearchMinPoolSize: s.opts.SortedSearchMinPoolSize,
			}, s.metrics)
			if err != nil {
				return err
			}

			partitionScope := scope.WithContext(ctx)
			matches, err := mm.Run(partitionScope, partitions[i])
			if err != nil {
				return fmt.Errorf("partition %d: %w", i, err)
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, matches := range results {
		total += len(matches)
	}
	all := make([]models.Match, 0, total)
	for _, matches := range results {
		all = append(all, matches...)
	}

	return all, nil
}
