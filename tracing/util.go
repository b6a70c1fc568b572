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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const name = "github.com/fairdatasociety/podfs"

// Span names.
const (
	SinkCloseSpan = "sink.Close"
)

// Span attribute keys.
const (
	PodKey  = "podfs.pod"
	PathKey = "podfs.path"
	SizeKey = "podfs.size_bytes"
)

// PodfsTracer returns the tracer registered with the global provider.
// Resolved on each call so that providers installed after start-up apply.
func PodfsTracer() trace.Tracer {
	return otel.Tracer(name)
}
