// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mathutil

import "cmp"

// Clamp bounds v into [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// AbsDiff returns |x - y|.
func AbsDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}
