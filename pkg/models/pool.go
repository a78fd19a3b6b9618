// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	IndexSets *sync2.Pool[[]int]
}

func NewPool() *Pool {
	return &Pool{
		IndexSets: &sync2.Pool[[]int]{
			New: func() []int {
				return make([]int, 0, 1024)
			},
		},
	}
}

// NewIndexSet returns an index set {0 .. n-1} backed by a pooled slice.
func (p *Pool) NewIndexSet(n int) []int {
	indexSet := p.IndexSets.Get()[:0]
	if cap(indexSet) < n {
		indexSet = make([]int, 0, n)
	}
	for i := 0; i < n; i++ {
		indexSet = append(indexSet, i)
	}
	return indexSet
}

// ReleaseIndexSet hands a consumed index set back to the pool.
func (p *Pool) ReleaseIndexSet(indexSet []int) {
	p.IndexSets.Put(indexSet[:0])
}
