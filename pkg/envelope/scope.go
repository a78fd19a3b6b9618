// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package envelope

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/constants"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/utils"
)

const (
	traceIdLogField = "traceID"
	runIdLogField   = "runID"
	poolLogField    = "matchPool"

	RunIDTag     = "matchmaker.run_id"
	MatchPoolTag = "matchmaker.match_pool"
)

func NewRootScope(rootCtx context.Context, name string, traceID string) *Scope {
	tracer := otel.Tracer(constants.ServiceName)
	ctx, span := tracer.Start(rootCtx, name)

	if traceID == "" || len(traceID) != 32 {
		traceID = span.SpanContext().TraceID().String()
		if !span.SpanContext().HasTraceID() {
			traceID = utils.GenerateUUID()
		}
	}

	return &Scope{
		Ctx:     ctx,
		TraceID: traceID,
		span:    span,
		Log:     logrus.WithField(traceIdLogField, traceID),
	}
}

// NewRunScope creates the root scope of one scheduled matchmaking run.
func NewRunScope(rootCtx context.Context, matchPool string, runID string) *Scope {
	scope := NewRootScope(rootCtx, "matchmaker.Run", "")
	scope.Log = scope.Log.WithFields(logrus.Fields{runIdLogField: runID, poolLogField: matchPool})
	scope.SetAttributes(RunIDTag, runID)
	scope.SetAttributes(MatchPoolTag, matchPool)
	return scope
}

// Scope used as the envelope to combine and transport run-related information by the chain of function calls
type Scope struct {
	Ctx     context.Context
	TraceID string
	span    oteltrace.Span
	Log     *logrus.Entry
}

// SetLogger allows for setting a different logger than the default std logger. This is mostly useful for testing.
func (s *Scope) SetLogger(logger *logrus.Logger) {
	s.Log = logger.WithField(traceIdLogField, s.TraceID)
}

// Finish finishes current scope
func (s *Scope) Finish() {
	s.span.End()
}

// NewChildScope creates new child Scope.
func (s *Scope) NewChildScope(name string) *Scope {
	tracer := s.span.TracerProvider().Tracer(constants.ServiceName)
	ctx, span := tracer.Start(s.Ctx, name)

	return &Scope{
		Ctx:     ctx,
		TraceID: s.TraceID,
		span:    span,
		Log:     s.Log,
	}
}

// WithContext returns a shallow copy of the scope bound to ctx, keeping span and logger.
func (s *Scope) WithContext(ctx context.Context) *Scope {
	return &Scope{
		Ctx:     ctx,
		TraceID: s.TraceID,
		span:    s.span,
		Log:     s.Log,
	}
}

// SetError marks the span as failed and records err on it.
func (s *Scope) SetError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds attributes onto a span based on the value object type
func (s *Scope) SetAttributes(key string, value interface{}) {
	switch v := value.(type) {
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	case []int:
		s.span.SetAttributes(attribute.IntSlice(key, v))
	case time.Duration:
		s.span.SetAttributes(attribute.Int64(key, v.Milliseconds()))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
