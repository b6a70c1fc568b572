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

package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/metrics"
	"github.com/fairdatasociety/podfs/tracing"
)

// categorize maps a gateway error onto the error_category attribute value.
func categorize(err error) string {
	var (
		nfe *gateway.NotFoundError
		nee *gateway.NotEmptyError
		tme *gateway.TypeMismatchError
		ce  *gateway.CorruptionError
	)
	switch {
	case errors.As(err, &nfe):
		return metrics.ErrorCategoryNotFound
	case errors.As(err, &nee):
		return metrics.ErrorCategoryNotEmpty
	case errors.As(err, &tme):
		return metrics.ErrorCategoryTypeMismatch
	case errors.As(err, &ce):
		return metrics.ErrorCategoryCorruption
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ErrorCategoryCanceled
	default:
		return metrics.ErrorCategoryOther
	}
}

// NewMonitoringGateway returns a gateway.Gateway that exports metrics and
// spans for every request.
func NewMonitoringGateway(wrapped gateway.Gateway, metricHandle metrics.MetricHandle, traceHandle tracing.TraceHandle) gateway.Gateway {
	if metricHandle == nil {
		metricHandle = metrics.NewNoopMetrics()
	}
	if traceHandle == nil {
		traceHandle = tracing.NewNoopTracer()
	}
	return &monitoringGateway{
		wrapped:      wrapped,
		metricHandle: metricHandle,
		traceHandle:  traceHandle,
	}
}

type monitoringGateway struct {
	wrapped      gateway.Gateway
	metricHandle metrics.MetricHandle
	traceHandle  tracing.TraceHandle
}

// observe starts a span for method on pod:path and returns the context to
// call through with and a function recording the outcome. size is the
// request payload, or -1 when the request carries none.
func (mg *monitoringGateway) observe(ctx context.Context, method string, pod string, path string, size int64) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := mg.traceHandle.StartSpan(ctx, "gateway."+method)
	mg.traceHandle.SetFileAttributes(span, pod, path, size)
	return ctx, func(err error) {
		mg.metricHandle.GatewayRequestCount(ctx, 1, method)
		mg.metricHandle.GatewayRequestLatencies(ctx, time.Since(start), method)
		if err != nil {
			mg.metricHandle.GatewayErrorCount(ctx, 1, method, categorize(err))
			mg.traceHandle.RecordError(span, err)
		}
		mg.traceHandle.EndSpan(span)
	}
}

func (mg *monitoringGateway) Exists(ctx context.Context, ref gateway.Reference) (bool, error) {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodExists, "", "", -1)
	ok, err := mg.wrapped.Exists(ctx, ref)
	done(err)
	return ok, err
}

func (mg *monitoringGateway) Upload(ctx context.Context, pod string, path string, data []byte) (gateway.Reference, error) {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodUpload, pod, path, int64(len(data)))
	ref, err := mg.wrapped.Upload(ctx, pod, path, data)
	done(err)
	return ref, err
}

func (mg *monitoringGateway) Download(ctx context.Context, pod string, path string) ([]byte, error) {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodDownload, pod, path, -1)
	data, err := mg.wrapped.Download(ctx, pod, path)
	done(err)
	return data, err
}

func (mg *monitoringGateway) Stat(ctx context.Context, pod string, path string) (*gateway.Entry, error) {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodStat, pod, path, -1)
	e, err := mg.wrapped.Stat(ctx, pod, path)
	done(err)
	return e, err
}

func (mg *monitoringGateway) ReadDir(ctx context.Context, pod string, dir string) ([]gateway.Entry, error) {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodReadDir, pod, dir, -1)
	entries, err := mg.wrapped.ReadDir(ctx, pod, dir)
	done(err)
	return entries, err
}

func (mg *monitoringGateway) MakeDir(ctx context.Context, pod string, dir string) error {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodMakeDir, pod, dir, -1)
	err := mg.wrapped.MakeDir(ctx, pod, dir)
	done(err)
	return err
}

func (mg *monitoringGateway) Delete(ctx context.Context, pod string, path string) error {
	ctx, done := mg.observe(ctx, metrics.GatewayMethodDelete, pod, path, -1)
	err := mg.wrapped.Delete(ctx, pod, path)
	done(err)
	return err
}
