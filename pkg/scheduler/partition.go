// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scheduler

import (
	pie "github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// partitionCandidates splits candidates into rating ordered chunks of at most size candidates.
// An odd size is rounded up so that only the last chunk can be odd. size 0 keeps the whole pool together.
func partitionCandidates(candidates []models.Candidate, size int) [][]models.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	if size <= 0 || size >= len(candidates) {
		return [][]models.Candidate{candidates}
	}
	if size%2 == 1 {
		size++
	}

	sorted := pie.SortUsing(append([]models.Candidate(nil), candidates...), func(a, b models.Candidate) bool {
		if a.EloRating == b.EloRating {
			return a.ID < b.ID
		}
		return a.EloRating < b.EloRating
	})

	partitions := make([][]models.Candidate, 0, (len(sorted)+size-1)/size)
	for start := 0; start < len(sorted); start += size {
		end := start + size
		if end > len(sorted) {
			end = len(sorted)
		}
		partitions = append(partitions, sorted[start:end])
	}

	return partitions
}

// partitionSeed derives a distinct seed per partition from the run seed.
func partitionSeed(runSeed int64, partition int) int64 {
	return runSeed ^ int64(uint64(partition)*0x9e3779b97f4a7c15)
}
