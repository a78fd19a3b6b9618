// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "default", cfg.MatchPool)
	assert.Equal(t, 86400, cfg.RunIntervalSecond)
	assert.Equal(t, 10, cfg.MaxConcurrentPartitions)

	table, err := cfg.Tolerances()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultToleranceTable, table)
}

func TestParseToleranceTable(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.ToleranceTable
		wantErr bool
	}{
		{
			name: "empty_uses_default",
			raw:  "",
			want: models.DefaultToleranceTable,
		},
		{
			name: "custom",
			raw:  "10:300, 50:200",
			want: models.ToleranceTable{{MaxPoolSize: 10, Tolerance: 300}, {MaxPoolSize: 50, Tolerance: 200}},
		},
		{
			name:    "missing_separator",
			raw:     "10-300",
			wantErr: true,
		},
		{
			name:    "not_a_number",
			raw:     "ten:300",
			wantErr: true,
		},
		{
			name:    "wrong_order",
			raw:     "50:200,10:300",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToleranceTable(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadToleranceTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolerance.yaml")
	content := "thresholds:\n  - max_pool_size: 100\n    tolerance: 800\n  - max_pool_size: 1000\n    tolerance: 400\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := &Config{ToleranceTableFile: path}
	table, err := cfg.Tolerances()
	require.NoError(t, err)
	assert.Equal(t, models.ToleranceTable{{MaxPoolSize: 100, Tolerance: 800}, {MaxPoolSize: 1000, Tolerance: 400}}, table)

	_, err = decodeToleranceTable([]byte("thresholds: []"))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = LoadToleranceTableFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		require.NoError(t, env.Parse(cfg))
		return cfg
	}

	cfg := base()
	cfg.PartitionSize = -1
	assert.ErrorIs(t, cfg.Validate(), models.ErrInvalidArgument)

	cfg = base()
	cfg.MaxConcurrentPartitions = 0
	assert.ErrorIs(t, cfg.Validate(), models.ErrInvalidArgument)

	cfg = base()
	cfg.ToleranceTable = "10:1,5:2"
	assert.ErrorIs(t, cfg.Validate(), models.ErrInvalidArgument)
}
