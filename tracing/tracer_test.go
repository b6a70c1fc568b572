// Copyright 2026 The podfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (TraceHandle, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewOTelTracer(provider.Tracer(name)), recorder
}

func TestOTelTracerRecordsSpan(t *testing.T) {
	th, recorder := newRecordingTracer()

	_, span := th.StartSpan(context.Background(), SinkCloseSpan)
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, SinkCloseSpan, spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestOTelTracerRecordError(t *testing.T) {
	th, recorder := newRecordingTracer()

	_, span := th.StartSpan(context.Background(), "upload")
	th.RecordError(span, errors.New("boom"))
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestOTelTracerIgnoresNilError(t *testing.T) {
	th, recorder := newRecordingTracer()

	_, span := th.StartSpan(context.Background(), "upload")
	th.RecordError(span, nil)
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}

func TestOTelTracerSetsFileAttributes(t *testing.T) {
	th, recorder := newRecordingTracer()

	_, span := th.StartSpan(context.Background(), SinkCloseSpan)
	th.SetFileAttributes(span, "notes", "/inbox/a.txt", 42)
	th.EndSpan(span)
	_, span = th.StartSpan(context.Background(), "gateway.Stat")
	th.SetFileAttributes(span, "notes", "/inbox", -1)
	th.EndSpan(span)
	_, span = th.StartSpan(context.Background(), "gateway.Exists")
	th.SetFileAttributes(span, "", "", 7)
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String(PodKey, "notes"),
		attribute.String(PathKey, "/inbox/a.txt"),
		attribute.Int64(SizeKey, 42),
	}, spans[0].Attributes())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String(PodKey, "notes"),
		attribute.String(PathKey, "/inbox"),
	}, spans[1].Attributes())
	assert.Empty(t, spans[2].Attributes())
}

type ctxKey struct{}

func TestNoopTracerPassesContextThrough(t *testing.T) {
	th := NewNoopTracer()
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	newCtx, span := th.StartSpan(ctx, "anything")
	th.RecordError(span, errors.New("ignored"))
	th.SetFileAttributes(span, "notes", "/a", 1)
	th.EndSpan(span)

	assert.Equal(t, ctx, newCtx)
	assert.False(t, span.IsRecording())
}
