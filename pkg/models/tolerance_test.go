// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToleranceTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   ToleranceTable
		wantErr bool
	}{
		{
			name:  "default_table",
			table: DefaultToleranceTable,
		},
		{
			name:  "equal_tolerances_allowed",
			table: ToleranceTable{{MaxPoolSize: 10, Tolerance: 100}, {MaxPoolSize: 20, Tolerance: 100}},
		},
		{
			name:    "empty",
			table:   ToleranceTable{},
			wantErr: true,
		},
		{
			name:    "pool_size_not_increasing",
			table:   ToleranceTable{{MaxPoolSize: 10, Tolerance: 100}, {MaxPoolSize: 10, Tolerance: 50}},
			wantErr: true,
		},
		{
			name:    "tolerance_increasing",
			table:   ToleranceTable{{MaxPoolSize: 10, Tolerance: 100}, {MaxPoolSize: 20, Tolerance: 200}},
			wantErr: true,
		},
		{
			name:    "negative_tolerance",
			table:   ToleranceTable{{MaxPoolSize: 10, Tolerance: -1}},
			wantErr: true,
		},
		{
			name:    "zero_pool_size",
			table:   ToleranceTable{{MaxPoolSize: 0, Tolerance: 100}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NoError(t, err)
		})
	}
}
