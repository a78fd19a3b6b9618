// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"time"

	"github.com/go-openapi/swag"
)

const (
	// AIReasonOddPool is used when the pool has an odd size and one player is peeled off.
	AIReasonOddPool = "odd_pool"
	// AIReasonNoOpponentInRange is used when no remaining candidate is within tolerance.
	AIReasonNoOpponentInRange = "no_opponent_in_range"
	// AIReasonNoTolerance is used when the pool is larger than the biggest configured threshold.
	AIReasonNoTolerance = "no_tolerance"
)

// Match is a game descriptor handed to the persistence collaborator.
// PlayerTwoID and PlayerTwoElo are nil iff IsAIGame is true.
type Match struct {
	PlayerOneID  string  `json:"playerOneId"`
	PlayerTwoID  *string `json:"playerTwoId"`
	IsAIGame     bool    `json:"isAiGame"`
	PlayerOneElo int     `json:"playerOneElo"`
	PlayerTwoElo *int    `json:"playerTwoElo"`
}

// NewHumanMatch creates a match between two candidates.
func NewHumanMatch(playerOne, playerTwo Candidate) Match {
	return Match{
		PlayerOneID:  playerOne.ID,
		PlayerOneElo: playerOne.EloRating,
		PlayerTwoID:  swag.String(playerTwo.ID),
		PlayerTwoElo: swag.Int(playerTwo.EloRating),
		IsAIGame:     false,
	}
}

// NewAIMatch creates a match against an AI controlled opponent.
func NewAIMatch(player Candidate) Match {
	return Match{
		PlayerOneID:  player.ID,
		PlayerOneElo: player.EloRating,
		IsAIGame:     true,
	}
}

// PlayerIDs returns the human player IDs taking part in the match.
func (m Match) PlayerIDs() []string {
	if m.PlayerTwoID == nil {
		return []string{m.PlayerOneID}
	}
	return []string{m.PlayerOneID, *m.PlayerTwoID}
}

// EloGap returns the absolute rating difference of a human match, 0 for AI matches.
func (m Match) EloGap() int {
	if m.IsAIGame || m.PlayerTwoElo == nil {
		return 0
	}
	gap := m.PlayerOneElo - swag.IntValue(m.PlayerTwoElo)
	if gap < 0 {
		return -gap
	}
	return gap
}

// RunReport summarizes one scheduled matchmaking pass.
type RunReport struct {
	RunID      string        `json:"runID"`
	Candidates int           `json:"candidates"`
	Matches    int           `json:"matches"`
	AIMatches  int           `json:"aiMatches"`
	Partitions int           `json:"partitions"`
	Elapsed    time.Duration `json:"elapsed"`
}
