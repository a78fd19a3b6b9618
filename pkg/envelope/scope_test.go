// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package envelope

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunScope(t *testing.T) {
	scope := NewRunScope(context.Background(), "default", "run-1")
	defer scope.Finish()

	assert.Len(t, scope.TraceID, 32)
	assert.Equal(t, "run-1", scope.Log.Data[runIdLogField])
	assert.Equal(t, "default", scope.Log.Data[poolLogField])

	child := scope.NewChildScope("child")
	defer child.Finish()
	assert.Equal(t, scope.TraceID, child.TraceID)

	// attribute and error helpers must not panic on a non recording span
	child.SetAttributes("duration", time.Second)
	child.SetAttributes("ints", []int{1, 2})
	child.SetAttributes("other", struct{}{})
	child.SetError(errors.New("boom"))
	child.SetError(nil)
}

func TestScope_SetLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	scope := NewRootScope(context.Background(), "test", "0123456789abcdef0123456789abcdef")
	defer scope.Finish()
	scope.SetLogger(logger)
	scope.Log.Info("hello")

	assert.Contains(t, buf.String(), "0123456789abcdef0123456789abcdef")
}

func TestInitTracerProvider_Disabled(t *testing.T) {
	shutdown, err := InitTracerProvider(context.Background(), "test", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	withCtx := NewRootScope(context.Background(), "test", "").WithContext(context.TODO())
	assert.NotNil(t, withCtx.Ctx)
}
