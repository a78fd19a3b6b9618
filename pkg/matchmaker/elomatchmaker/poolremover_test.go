// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package elomatchmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/models"
)

func TestSwapPop(t *testing.T) {
	tests := []struct {
		name     string
		arr      []int
		position int
		want     []int
	}{
		{
			name:     "removes_by_swapping_with_last",
			arr:      []int{0, 1, 2, 3},
			position: 1,
			want:     []int{0, 3, 2},
		},
		{
			name:     "removes_last",
			arr:      []int{0, 1, 2},
			position: 2,
			want:     []int{0, 1},
		},
		{
			name:     "removes_first",
			arr:      []int{0, 1, 2},
			position: 0,
			want:     []int{2, 1},
		},
		{
			name:     "removes_only",
			arr:      []int{7},
			position: 0,
			want:     []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := tt.arr
			require.NoError(t, SwapPop(&arr, tt.position))
			assert.Equal(t, tt.want, arr)
		})
	}
}

func TestSwapPop_OutOfRange(t *testing.T) {
	arr := []int{0, 1, 2}
	assert.ErrorIs(t, SwapPop(&arr, 3), models.ErrIndexOutOfRange)
	assert.ErrorIs(t, SwapPop(&arr, -1), models.ErrIndexOutOfRange)
	assert.Equal(t, []int{0, 1, 2}, arr)

	var empty []int
	assert.ErrorIs(t, SwapPop(&empty, 0), models.ErrIndexOutOfRange)
}

func TestCandidatePool_Remove(t *testing.T) {
	p := newCandidatePool(5, []int{0, 1, 2, 3, 4})

	require.NoError(t, p.remove(1))
	assert.Equal(t, []int{0, 4, 2, 3}, p.indexSet)
	assert.Equal(t, -1, p.positions[1])
	assert.Equal(t, 1, p.positions[4])

	pivot, err := p.popPivot()
	require.NoError(t, err)
	assert.Equal(t, 3, pivot)
	assert.Equal(t, 3, p.size())

	require.NoError(t, p.remove(4))
	assert.ElementsMatch(t, []int{0, 2}, p.indexSet)
	for position, idx := range p.indexSet {
		assert.Equal(t, position, p.positions[idx])
	}

	assert.ErrorIs(t, p.remove(4), models.ErrIndexOutOfRange)
	assert.ErrorIs(t, p.remove(9), models.ErrIndexOutOfRange)
}
