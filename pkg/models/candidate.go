// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"
)

// Candidate is a player waiting in the pool for the current run.
type Candidate struct {
	ID            string `json:"id"`
	EloRating     int    `json:"eloRating"`
	HasActiveGame bool   `json:"hasActiveGame"`
}

// ValidateCandidates rejects a snapshot the matchmaker cannot place safely:
// empty or duplicated IDs, or players that are already in a game.
func ValidateCandidates(candidates []Candidate) error {
	seen := make(map[string]struct{}, len(candidates))
	for i, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("%w: candidate at position %d has empty id", ErrInvalidArgument, i)
		}
		if c.HasActiveGame {
			return fmt.Errorf("%w: candidate %s already has an active game", ErrInvalidArgument, c.ID)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: duplicate candidate id %s", ErrInvalidArgument, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return nil
}
