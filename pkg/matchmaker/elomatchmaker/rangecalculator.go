// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// RangeCalculator maps the number of unmatched candidates to an ELO tolerance.
type RangeCalculator struct {
	table models.ToleranceTable
}

func NewRangeCalculator(table models.ToleranceTable) (*RangeCalculator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &RangeCalculator{table: table}, nil
}

// DefineRange returns the tolerance of the first threshold whose MaxPoolSize
// is greater than poolSize. ok is false when poolSize is beyond the largest
// threshold, in which case the caller falls back to an AI opponent instead of
// scanning an unbounded pool.
func (r *RangeCalculator) DefineRange(poolSize int) (tolerance int, ok bool, err error) {
	if poolSize < 0 {
		return 0, false, fmt.Errorf("%w: pool size %d cannot be negative", models.ErrInvalidArgument, poolSize)
	}

	for _, threshold := range r.table {
		if poolSize < threshold.MaxPoolSize {
			return threshold.Tolerance, true, nil
		}
	}

	return 0, false, nil
}
