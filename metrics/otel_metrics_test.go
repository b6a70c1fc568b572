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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupOTel(t *testing.T) (MetricHandle, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	m, err := NewOTelMetrics(provider)
	require.NoError(t, err)
	return m, reader
}

// gatherMetrics returns the collected data points keyed by instrument name.
func gatherMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumByAttr(t *testing.T, data metricdata.Aggregation) map[attribute.Set]int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "unexpected aggregation %T", data)

	out := make(map[attribute.Set]int64)
	for _, dp := range sum.DataPoints {
		out[dp.Attributes] = dp.Value
	}
	return out
}

func TestGatewayRequestCount(t *testing.T) {
	m, reader := setupOTel(t)
	ctx := context.Background()

	m.GatewayRequestCount(ctx, 3, GatewayMethodUpload)
	m.GatewayRequestCount(ctx, 2, GatewayMethodUpload)
	m.GatewayRequestCount(ctx, 1, GatewayMethodDownload)

	got := sumByAttr(t, gatherMetrics(t, reader)["gateway/request_count"])
	assert.Equal(t, map[attribute.Set]int64{
		attribute.NewSet(attribute.String(GatewayMethodKey, GatewayMethodUpload)):   5,
		attribute.NewSet(attribute.String(GatewayMethodKey, GatewayMethodDownload)): 1,
	}, got)
}

func TestGatewayErrorCount(t *testing.T) {
	m, reader := setupOTel(t)
	ctx := context.Background()

	m.GatewayErrorCount(ctx, 1, GatewayMethodStat, ErrorCategoryNotFound)
	m.GatewayErrorCount(ctx, 1, GatewayMethodStat, ErrorCategoryNotFound)
	m.GatewayErrorCount(ctx, 1, GatewayMethodDelete, ErrorCategoryNotEmpty)

	got := sumByAttr(t, gatherMetrics(t, reader)["gateway/error_count"])
	assert.Equal(t, map[attribute.Set]int64{
		attribute.NewSet(
			attribute.String(GatewayMethodKey, GatewayMethodStat),
			attribute.String(ErrorCategoryKey, ErrorCategoryNotFound)): 2,
		attribute.NewSet(
			attribute.String(GatewayMethodKey, GatewayMethodDelete),
			attribute.String(ErrorCategoryKey, ErrorCategoryNotEmpty)): 1,
	}, got)
}

func TestSinkCounters(t *testing.T) {
	m, reader := setupOTel(t)
	ctx := context.Background()

	m.SinkOpsCount(ctx, 1, SinkOpWrite)
	m.SinkOpsCount(ctx, 1, SinkOpWrite)
	m.SinkOpsCount(ctx, 1, SinkOpTruncate)
	m.SinkUploadBytesCount(ctx, 7)
	m.SinkUploadBytesCount(ctx, 3)

	data := gatherMetrics(t, reader)
	assert.Equal(t, map[attribute.Set]int64{
		attribute.NewSet(attribute.String(SinkOpKey, SinkOpWrite)):    2,
		attribute.NewSet(attribute.String(SinkOpKey, SinkOpTruncate)): 1,
	}, sumByAttr(t, data["sink/ops_count"]))
	uploaded, ok := data["sink/upload_bytes_count"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, uploaded.DataPoints, 1)
	assert.Equal(t, int64(10), uploaded.DataPoints[0].Value)
}

func TestLatencyHistograms(t *testing.T) {
	m, reader := setupOTel(t)
	ctx := context.Background()

	m.GatewayRequestLatencies(ctx, 2*time.Millisecond, GatewayMethodUpload)
	m.SinkCloseLatencies(ctx, 5*time.Millisecond, StatusOK)
	m.SinkCloseLatencies(ctx, 1*time.Millisecond, StatusOK)

	data := gatherMetrics(t, reader)

	gw, ok := data["gateway/request_latencies"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, gw.DataPoints, 1)
	assert.Equal(t, uint64(1), gw.DataPoints[0].Count)
	assert.Equal(t, int64(2000), gw.DataPoints[0].Sum)

	closes, ok := data["sink/close_latencies"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, closes.DataPoints, 1)
	assert.Equal(t, uint64(2), closes.DataPoints[0].Count)
	assert.Equal(t, int64(6000), closes.DataPoints[0].Sum)
	status, _ := closes.DataPoints[0].Attributes.Value(StatusKey)
	assert.Equal(t, StatusOK, status.AsString())
}

func TestNoopMetricsDoNotPanic(t *testing.T) {
	m := NewNoopMetrics()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.GatewayRequestCount(ctx, 1, GatewayMethodExists)
		m.GatewayRequestLatencies(ctx, time.Second, GatewayMethodExists)
		m.GatewayErrorCount(ctx, 1, GatewayMethodExists, ErrorCategoryOther)
		m.SinkOpsCount(ctx, 1, SinkOpSeek)
		m.SinkUploadBytesCount(ctx, 1)
		m.SinkCloseLatencies(ctx, time.Second, StatusError)
	})
}
