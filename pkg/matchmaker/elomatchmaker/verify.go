// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// verifyCoverage checks that every candidate appears in exactly one match and
// that AI matches carry no second player.
func verifyCoverage(candidates []models.Candidate, matches []models.Match) error {
	positions := make(map[string]uint, len(candidates))
	for i, c := range candidates {
		positions[c.ID] = uint(i)
	}

	placed := bitset.New(uint(len(candidates)))
	for _, match := range matches {
		if match.IsAIGame != (match.PlayerTwoID == nil) || match.IsAIGame != (match.PlayerTwoElo == nil) {
			return fmt.Errorf("%w: match of %s has inconsistent second player", models.ErrInvariantViolation, match.PlayerOneID)
		}
		for _, id := range match.PlayerIDs() {
			position, ok := positions[id]
			if !ok {
				return fmt.Errorf("%w: unknown candidate %s", models.ErrInvariantViolation, id)
			}
			if placed.Test(position) {
				return fmt.Errorf("%w: candidate %s matched twice", models.ErrInvariantViolation, id)
			}
			placed.Set(position)
		}
	}

	if placed.Count() != uint(len(candidates)) {
		return fmt.Errorf("%w: %d of %d candidates placed", models.ErrInvariantViolation, placed.Count(), len(candidates))
	}

	return nil
}
