// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

type toleranceFile struct {
	Thresholds models.ToleranceTable `yaml:"thresholds"`
}

// Tolerances returns the validated tolerance table, read from the yaml file when configured.
func (c *Config) Tolerances() (models.ToleranceTable, error) {
	if c.ToleranceTableFile != "" {
		return LoadToleranceTableFile(c.ToleranceTableFile)
	}
	return ParseToleranceTable(c.ToleranceTable)
}

// ParseToleranceTable parses "maxPoolSize:tolerance" pairs separated by commas.
// An empty string yields the default table.
func ParseToleranceTable(raw string) (models.ToleranceTable, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DefaultToleranceTable, nil
	}

	var table models.ToleranceTable
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed tolerance threshold %q", models.ErrInvalidArgument, pair)
		}
		maxPoolSize, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed max pool size %q", models.ErrInvalidArgument, parts[0])
		}
		tolerance, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed tolerance %q", models.ErrInvalidArgument, parts[1])
		}
		table = append(table, models.ToleranceThreshold{MaxPoolSize: maxPoolSize, Tolerance: tolerance})
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadToleranceTableFile reads a table of the form
//
//	thresholds:
//	  - max_pool_size: 100
//	    tolerance: 1000
func LoadToleranceTableFile(path string) (models.ToleranceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tolerance table file: %w", err)
	}
	return decodeToleranceTable(data)
}

func decodeToleranceTable(data []byte) (models.ToleranceTable, error) {
	var file toleranceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode tolerance table: %v", models.ErrInvalidArgument, err)
	}
	if err := file.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return file.Thresholds, nil
}
