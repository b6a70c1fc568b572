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

package metrics

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "podfs"

type otelMetrics struct {
	gatewayRequestCount     metric.Int64Counter
	gatewayRequestLatencies metric.Int64Histogram
	gatewayErrorCount       metric.Int64Counter
	sinkOpsCount            metric.Int64Counter
	sinkUploadBytesCount    metric.Int64Counter
	sinkCloseLatencies      metric.Int64Histogram
}

func (o *otelMetrics) GatewayRequestCount(ctx context.Context, inc int64, gatewayMethod string) {
	o.gatewayRequestCount.Add(ctx, inc,
		metric.WithAttributes(attribute.String(GatewayMethodKey, gatewayMethod)))
}

func (o *otelMetrics) GatewayRequestLatencies(ctx context.Context, latency time.Duration, gatewayMethod string) {
	o.gatewayRequestLatencies.Record(ctx, latency.Microseconds(),
		metric.WithAttributes(attribute.String(GatewayMethodKey, gatewayMethod)))
}

func (o *otelMetrics) GatewayErrorCount(ctx context.Context, inc int64, gatewayMethod string, errorCategory string) {
	o.gatewayErrorCount.Add(ctx, inc,
		metric.WithAttributes(
			attribute.String(GatewayMethodKey, gatewayMethod),
			attribute.String(ErrorCategoryKey, errorCategory)))
}

func (o *otelMetrics) SinkOpsCount(ctx context.Context, inc int64, sinkOp string) {
	o.sinkOpsCount.Add(ctx, inc,
		metric.WithAttributes(attribute.String(SinkOpKey, sinkOp)))
}

func (o *otelMetrics) SinkUploadBytesCount(ctx context.Context, inc int64) {
	o.sinkUploadBytesCount.Add(ctx, inc)
}

func (o *otelMetrics) SinkCloseLatencies(ctx context.Context, latency time.Duration, status string) {
	o.sinkCloseLatencies.Record(ctx, latency.Microseconds(),
		metric.WithAttributes(attribute.String(StatusKey, status)))
}

// NewOTelMetrics creates a MetricHandle whose instruments are registered with
// provider, or with the global meter provider when provider is nil.
func NewOTelMetrics(provider metric.MeterProvider) (MetricHandle, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	gatewayRequestCount, err0 := meter.Int64Counter("gateway/request_count",
		metric.WithDescription("The cumulative number of gateway requests processed."))
	gatewayRequestLatencies, err1 := meter.Int64Histogram("gateway/request_latencies",
		metric.WithDescription("The latency distribution of gateway requests."),
		metric.WithUnit("us"))
	gatewayErrorCount, err2 := meter.Int64Counter("gateway/error_count",
		metric.WithDescription("The cumulative number of failed gateway requests."))
	sinkOpsCount, err3 := meter.Int64Counter("sink/ops_count",
		metric.WithDescription("The cumulative number of operations applied to write sinks."))
	sinkUploadBytesCount, err4 := meter.Int64Counter("sink/upload_bytes_count",
		metric.WithDescription("The cumulative number of bytes uploaded by closing sinks."),
		metric.WithUnit("By"))
	sinkCloseLatencies, err5 := meter.Int64Histogram("sink/close_latencies",
		metric.WithDescription("The latency distribution of sink closes."),
		metric.WithUnit("us"))

	if err := errors.Join(err0, err1, err2, err3, err4, err5); err != nil {
		return nil, err
	}

	return &otelMetrics{
		gatewayRequestCount:     gatewayRequestCount,
		gatewayRequestLatencies: gatewayRequestLatencies,
		gatewayErrorCount:       gatewayErrorCount,
		sinkOpsCount:            sinkOpsCount,
		sinkUploadBytesCount:    sinkUploadBytesCount,
		sinkCloseLatencies:      sinkCloseLatencies,
	}, nil
}
