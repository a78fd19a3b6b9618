// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/mathutil"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// EloSampler draws ratings biased toward a reference rating.
type EloSampler struct {
	rng *rand.Rand
}

func NewEloSampler(rng *rand.Rand) *EloSampler {
	return &EloSampler{rng: rng}
}

// GetRandomElo returns a value in [minElo, maxElo] drawn from a normal
// distribution centred on referenceElo with a standard deviation of a sixth
// of the range. Draws outside the range are rejected. After
// constants.MaxSampleAttempts rejections the reference itself is returned.
func (s *EloSampler) GetRandomElo(minElo, maxElo, referenceElo int) (int, error) {
	if minElo > maxElo {
		return 0, fmt.Errorf("%w: min elo %d is greater than max elo %d", models.ErrInvalidArgument, minElo, maxElo)
	}
	if minElo == maxElo {
		return minElo, nil
	}

	mean := mathutil.Clamp(referenceElo, minElo, maxElo)
	normal := distuv.Normal{
		Mu:    float64(mean),
		Sigma: float64(maxElo-minElo) / 6,
		Src:   s.rng,
	}

	for attempt := 0; attempt < constants.MaxSampleAttempts; attempt++ {
		elo := int(math.Round(normal.Rand()))
		if elo >= minElo && elo <= maxElo {
			return elo, nil
		}
	}

	return mean, nil
}
