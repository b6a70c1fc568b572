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

// MetricHandle provides an interface for recording metrics.
type MetricHandle interface {
	// GatewayRequestCount - The cumulative number of gateway requests processed.
	GatewayRequestCount(ctx context.Context, inc int64, gatewayMethod string)

	// GatewayRequestLatencies - The latency distribution of gateway requests.
	GatewayRequestLatencies(ctx context.Context, latency time.Duration, gatewayMethod string)

	// GatewayErrorCount - The cumulative number of failed gateway requests.
	GatewayErrorCount(ctx context.Context, inc int64, gatewayMethod string, errorCategory string)

	// SinkOpsCount - The cumulative number of operations applied to write sinks.
	SinkOpsCount(ctx context.Context, inc int64, sinkOp string)

	// SinkUploadBytesCount - The cumulative number of bytes handed to the
	// gateway by closing sinks.
	SinkUploadBytesCount(ctx context.Context, inc int64)

	// SinkCloseLatencies - The latency distribution of sink closes.
	SinkCloseLatencies(ctx context.Context, latency time.Duration, status string)
}
