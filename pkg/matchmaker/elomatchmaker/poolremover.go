// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"fmt"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

// SwapPop removes the element at position in O(1) by overwriting it with the
// last element and shrinking the slice. Relative order is not preserved.
func SwapPop(indexArray *[]int, position int) error {
	arr := *indexArray
	last := len(arr) - 1
	if position < 0 || position > last {
		return fmt.Errorf("%w: position %d of index set with length %d", models.ErrIndexOutOfRange, position, len(arr))
	}

	arr[position] = arr[last]
	*indexArray = arr[:last]

	return nil
}

// candidatePool is the PoolIndexSet of one run. positions tracks where every
// still present candidate sits in indexSet so any candidate can be swap-popped.
type candidatePool struct {
	indexSet  []int
	positions []int
}

func newCandidatePool(numCandidates int, indexSet []int) *candidatePool {
	positions := make([]int, numCandidates)
	for i := range positions {
		positions[i] = -1
	}
	for position, idx := range indexSet {
		positions[idx] = position
	}
	return &candidatePool{indexSet: indexSet, positions: positions}
}

func (p *candidatePool) size() int {
	return len(p.indexSet)
}

// popPivot removes the last index of the set.
func (p *candidatePool) popPivot() (int, error) {
	return p.removeAt(len(p.indexSet) - 1)
}

// remove removes the given candidate index from the set.
func (p *candidatePool) remove(idx int) error {
	if idx < 0 || idx >= len(p.positions) || p.positions[idx] < 0 {
		return fmt.Errorf("%w: candidate %d is not in the pool", models.ErrIndexOutOfRange, idx)
	}
	_, err := p.removeAt(p.positions[idx])
	return err
}

func (p *candidatePool) removeAt(position int) (int, error) {
	if position < 0 || position >= len(p.indexSet) {
		return 0, fmt.Errorf("%w: position %d of index set with length %d", models.ErrIndexOutOfRange, position, len(p.indexSet))
	}

	idx := p.indexSet[position]
	moved := p.indexSet[len(p.indexSet)-1]
	if err := SwapPop(&p.indexSet, position); err != nil {
		return 0, err
	}

	p.positions[idx] = -1
	if moved != idx {
		p.positions[moved] = position
	}

	return idx, nil
}
