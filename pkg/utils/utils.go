// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package utils

import (
	"strings"

	"github.com/google/uuid"
	ulid "github.com/oklog/ulid/v2"
)

// GenerateUUID generates uuid without hyphens.
func GenerateUUID() string {
	id, _ := uuid.NewRandom()
	return strings.ReplaceAll(id.String(), "-", "")
}

// NewGameID generates the primary key of a persisted game.
func NewGameID() string {
	return uuid.NewString()
}

// NewRunID generates a lexically sortable id for a matchmaking run.
func NewRunID() string {
	return ulid.Make().String()
}
