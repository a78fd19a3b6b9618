// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"

	validator "github.com/AccelByte/justice-input-validation-go"
)

// ToleranceThreshold maps pools smaller than MaxPoolSize to an accepted ELO spread.
type ToleranceThreshold struct {
	MaxPoolSize int `json:"max_pool_size" yaml:"max_pool_size" valid:"range(1|2147483647)"`
	Tolerance   int `json:"tolerance"     yaml:"tolerance"     optional:"true"  valid:"range(0|2147483647)"`
}

// ToleranceTable is ordered by MaxPoolSize ascending.
type ToleranceTable []ToleranceThreshold

// DefaultToleranceTable is the canonical table: the fewer players are left, the wider the search.
var DefaultToleranceTable = ToleranceTable{
	{MaxPoolSize: 100, Tolerance: 1000},
	{MaxPoolSize: 10_000, Tolerance: 500},
	{MaxPoolSize: 100_000, Tolerance: 250},
	{MaxPoolSize: 1_000_000, Tolerance: 125},
}

func (t ToleranceThreshold) Validate() error {
	if _, err := validator.ValidateStruct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if t.MaxPoolSize <= 0 {
		return fmt.Errorf("%w: max pool size must be greater than 0", ErrInvalidArgument)
	}
	if t.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance cannot be lower than 0", ErrInvalidArgument)
	}
	return nil
}

// Validate checks every threshold and the table ordering: MaxPoolSize strictly
// increasing and Tolerance non-increasing.
func (t ToleranceTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: tolerance table is empty", ErrInvalidArgument)
	}

	for i, threshold := range t {
		if err := threshold.Validate(); err != nil {
			return fmt.Errorf("threshold %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if threshold.MaxPoolSize <= prev.MaxPoolSize {
			return fmt.Errorf("%w: threshold %d max pool size %d must be greater than %d", ErrInvalidArgument, i, threshold.MaxPoolSize, prev.MaxPoolSize)
		}
		if threshold.Tolerance > prev.Tolerance {
			return fmt.Errorf("%w: threshold %d tolerance %d must not exceed %d", ErrInvalidArgument, i, threshold.Tolerance, prev.Tolerance)
		}
	}

	return nil
}
