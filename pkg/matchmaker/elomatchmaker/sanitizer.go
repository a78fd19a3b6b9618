// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"
	"math/rand/v2"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// PickFunc chooses a position in an index set of length n.
type PickFunc func(n int) int

// PickLast picks the most recently inserted position.
func PickLast(n int) int {
	return n - 1
}

// PickRandom picks a position uniformly from rng.
func PickRandom(rng *rand.Rand) PickFunc {
	return func(n int) int {
		return rng.IntN(n)
	}
}

// SanitizeArr peels one candidate off an odd sized index set into an AI
// match so the rest of the pool can be paired. It returns nil when the index
// set is even. The chosen candidate is marked as having an active game and
// its position is removed from indexSet.
func SanitizeArr(candidates []models.Candidate, indexSet *[]int, pick PickFunc) (*models.Match, error) {
	n := len(*indexSet)
	if n%2 == 0 {
		return nil, nil
	}
	if pick == nil {
		pick = PickLast
	}

	position := pick(n)
	if position < 0 || position >= n {
		return nil, fmt.Errorf("%w: picked position %d of index set with length %d", models.ErrIndexOutOfRange, position, n)
	}
	idx := (*indexSet)[position]
	if idx < 0 || idx >= len(candidates) {
		return nil, fmt.Errorf("%w: index %d of %d candidates", models.ErrIndexOutOfRange, idx, len(candidates))
	}

	candidates[idx].HasActiveGame = true
	if err := SwapPop(indexSet, position); err != nil {
		return nil, err
	}

	match := models.NewAIMatch(candidates[idx])
	return &match, nil
}
