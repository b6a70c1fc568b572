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
	"time"
)

type noopMetrics struct{}

func (*noopMetrics) GatewayRequestCount(ctx context.Context, inc int64, gatewayMethod string) {}

func (*noopMetrics) GatewayRequestLatencies(ctx context.Context, latency time.Duration, gatewayMethod string) {
}

func (*noopMetrics) GatewayErrorCount(ctx context.Context, inc int64, gatewayMethod string, errorCategory string) {
}

func (*noopMetrics) SinkOpsCount(ctx context.Context, inc int64, sinkOp string) {}

func (*noopMetrics) SinkUploadBytesCount(ctx context.Context, inc int64) {}

func (*noopMetrics) SinkCloseLatencies(ctx context.Context, latency time.Duration, status string) {}

func NewNoopMetrics() MetricHandle {
	var n noopMetrics
	return &n
}
