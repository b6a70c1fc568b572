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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type otelTracer struct {
	tracer trace.Tracer
}

func (o *otelTracer) StartSpan(ctx context.Context, traceName string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, traceName)
}

func (*otelTracer) EndSpan(span trace.Span) {
	span.End()
}

func (*otelTracer) RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (*otelTracer) SetFileAttributes(span trace.Span, pod string, path string, size int64) {
	if pod == "" {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(PodKey, pod),
		attribute.String(PathKey, path),
	}
	if size >= 0 {
		attrs = append(attrs, attribute.Int64(SizeKey, size))
	}
	span.SetAttributes(attrs...)
}

// NewOTelTracer returns a TraceHandle backed by tracer, or by the podfs
// tracer of the global provider when tracer is nil.
func NewOTelTracer(tracer trace.Tracer) TraceHandle {
	if tracer == nil {
		tracer = PodfsTracer()
	}
	return &otelTracer{tracer: tracer}
}
