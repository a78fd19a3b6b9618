// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned for malformed bounds, negative sizes and bad snapshots.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange signals broken index set bookkeeping. It is never expected in a correct run.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUpstreamUnavailable is returned when the candidate snapshot could not be obtained.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvariantViolation is returned when a run failed to place every candidate exactly once.
	ErrInvariantViolation = errors.New("matchmaking invariant violated")
	// ErrRunInProgress is returned when another instance holds the run lock.
	ErrRunInProgress = errors.New("matchmaking run already in progress")
	// ErrPersistFailed is returned when the batch of matches could not be stored.
	ErrPersistFailed = errors.New("failed to persist matches")
)

var errorCodeMap = map[error]int{
	ErrInvalidArgument:     510301,
	ErrIndexOutOfRange:     510302,
	ErrUpstreamUnavailable: 510303,
	ErrInvariantViolation:  510304,
	ErrRunInProgress:       510305,
	ErrPersistFailed:       510306,
}

// ErrorCode returns a code for the error, looking through wrapped errors.
// It returns 20000 (internal error) if the error is not registered in the map.
func ErrorCode(err error) int {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return 20000
}
