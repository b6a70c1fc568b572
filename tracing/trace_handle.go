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

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TraceHandle records spans around sink closes and gateway requests. Code
// traces unconditionally and picks the exporting or no-op handle at start-up.
type TraceHandle interface {
	StartSpan(ctx context.Context, traceName string) (context.Context, trace.Span)

	EndSpan(span trace.Span)

	// RecordError marks span as failed with err. A nil err is ignored.
	RecordError(span trace.Span, err error)

	// SetFileAttributes tags span with the pod file a request touches and,
	// when size is non-negative, its payload size in bytes. An empty pod
	// leaves the span untouched.
	SetFileAttributes(span trace.Span, pod string, path string, size int64)
}

type noopTracer struct{}

// NewNoopTracer returns a TraceHandle that records nothing and hands back
// the caller's context unchanged.
func NewNoopTracer() TraceHandle {
	return noopTracer{}
}

func (noopTracer) StartSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (noopTracer) EndSpan(trace.Span) {}

func (noopTracer) RecordError(trace.Span, error) {}

func (noopTracer) SetFileAttributes(trace.Span, string, string, int64) {}
