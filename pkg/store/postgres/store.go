// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package postgres reads the candidate snapshot from and writes the games of a run to
// the game backend database.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/utils"
)

var (
	_ matchmaker.CandidateProvider = (*Store)(nil)
	_ matchmaker.MatchWriter       = (*Store)(nil)
)

// ErrConflict is returned when a candidate of the run got a game from somewhere else before the run was saved.
var ErrConflict = errors.New("candidate already has an active game")

const (
	fetchPageQuery = `
		SELECT u.id, s.elo
		FROM "user" u
		JOIN user_stats s ON s.id = u."statsId"
		WHERE u.has_game = false
		  AND ($1::uuid IS NULL OR u.id > $1::uuid)
		ORDER BY u.id
		LIMIT $2`

	markPlayingQuery = `
		UPDATE "user"
		SET has_game = true
		WHERE id = ANY($1::uuid[])
		  AND has_game = false`
)

var gameColumns = []string{"id", "playerOneId", "playerTwoId", "isAiGame", "playerOneElo", "playerTwoElo", "runId"}

// Store manages candidates and games in PostgreSQL.
type Store struct {
	db       *sql.DB
	pageSize int
}

func NewStore(db *sql.DB, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 10000
	}
	return &Store{db: db, pageSize: pageSize}
}

// FetchCandidates pages through every waiting user in id order.
// Any failure is reported as models.ErrUpstreamUnavailable.
func (s *Store) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	var (
		candidates []models.Candidate
		after      sql.NullString
	)

	for page := 0; ; page++ {
		batch, err := s.fetchPage(ctx, after)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch page %d: %v", models.ErrUpstreamUnavailable, page, err)
		}
		candidates = append(candidates, batch...)
		logrus.WithField("page", page).Debugf("fetched %d candidates", len(batch))

		if len(batch) < s.pageSize {
			return candidates, nil
		}
		after = sql.NullString{String: batch[len(batch)-1].ID, Valid: true}
	}
}

func (s *Store) fetchPage(ctx context.Context, after sql.NullString) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, fetchPageQuery, after, s.pageSize)
	if err != nil {
		return nil, classifyError("query candidates", err)
	}
	defer rows.Close()

	batch := make([]models.Candidate, 0, s.pageSize)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.EloRating); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		batch = append(batch, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("read candidates", err)
	}

	return batch, nil
}

// SaveMatches inserts the games of a run and flags their players as playing in one transaction.
func (s *Store) SaveMatches(ctx context.Context, runID string, matches []models.Match) (err error) {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classifyError("begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				logrus.WithError(rollbackErr).Warn("unable to roll back games transaction")
			}
		}
	}()

	if err = copyGames(ctx, tx, runID, matches); err != nil {
		return err
	}

	playerIDs := make([]string, 0, len(matches)*2)
	for _, match := range matches {
		playerIDs = append(playerIDs, match.PlayerIDs()...)
	}
	result, err := tx.ExecContext(ctx, markPlayingQuery, pq.Array(playerIDs))
	if err != nil {
		return classifyError("mark players", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return classifyError("mark players", err)
	}
	if int(updated) != len(playerIDs) {
		return fmt.Errorf("%w: %d of %d players could be marked", ErrConflict, updated, len(playerIDs))
	}

	if err = tx.Commit(); err != nil {
		return classifyError("commit games", err)
	}

	return nil
}

func copyGames(ctx context.Context, tx *sql.Tx, runID string, matches []models.Match) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("games", gameColumns...))
	if err != nil {
		return classifyError("prepare games copy", err)
	}
	defer stmt.Close()

	for _, match := range matches {
		if _, err := stmt.ExecContext(ctx, gameRow(utils.NewGameID(), runID, match)...); err != nil {
			return classifyError("copy game", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return classifyError("flush games copy", err)
	}

	return nil
}

// gameRow returns the values of a games row in gameColumns order.
func gameRow(gameID string, runID string, match models.Match) []any {
	var (
		playerTwoID  any
		playerTwoElo any
	)
	if match.PlayerTwoID != nil {
		playerTwoID = *match.PlayerTwoID
	}
	if match.PlayerTwoElo != nil {
		playerTwoElo = *match.PlayerTwoElo
	}
	return []any{gameID, match.PlayerOneID, playerTwoID, match.IsAIGame, match.PlayerOneElo, playerTwoElo, runID}
}

// classifyError flags connection level failures as models.ErrUpstreamUnavailable.
func classifyError(op string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %v", models.ErrUpstreamUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConnectionError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return pgerrcode.IsConnectionException(code) ||
			pgerrcode.IsOperatorIntervention(code) ||
			pgerrcode.IsInsufficientResources(code)
	}

	var netErr net.Error
	return errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr)
}
