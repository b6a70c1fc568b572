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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fairdatasociety/podfs/cfg"
	"github.com/fairdatasociety/podfs/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupPrometheusDisabled(t *testing.T) {
	opts, shutdown := setupPrometheus(0)

	assert.Nil(t, opts)
	assert.Nil(t, shutdown)
}

func TestMetricsServerServesMetricsPath(t *testing.T) {
	server := newMetricsServer(9100)
	rec := httptest.NewRecorder()

	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ":9100", server.Addr)
}

func TestSetupOTelMetricExportersWithoutPrometheus(t *testing.T) {
	c := &cfg.Config{}

	shutdown := SetupOTelMetricExporters(context.Background(), c)

	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing(t *testing.T) {
	assert.Nil(t, SetupTracing(context.Background(), &cfg.Config{Tracing: cfg.TracingConfig{Mode: cfg.NoTracing}}))

	var shutdown common.ShutdownFn = SetupTracing(context.Background(), &cfg.Config{Tracing: cfg.TracingConfig{Mode: cfg.StdoutTracing}})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
