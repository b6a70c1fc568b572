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

package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSeverityRank(t *testing.T) {
	t.Parallel()

	assert.Less(t, TraceLogSeverity.Rank(), DebugLogSeverity.Rank())
	assert.Less(t, DebugLogSeverity.Rank(), InfoLogSeverity.Rank())
	assert.Less(t, InfoLogSeverity.Rank(), WarningLogSeverity.Rank())
	assert.Less(t, WarningLogSeverity.Rank(), ErrorLogSeverity.Rank())
	assert.Less(t, ErrorLogSeverity.Rank(), OffLogSeverity.Rank())
	assert.Equal(t, -1, LogSeverity("LOUD").Rank())
}

func TestEmptyEnumsTakeDefaults(t *testing.T) {
	t.Parallel()
	var c Compression
	var m TracingMode

	require.NoError(t, c.UnmarshalText([]byte("")))
	require.NoError(t, m.UnmarshalText([]byte("")))

	assert.Equal(t, NoCompression, c)
	assert.Equal(t, NoTracing, m)
}

func TestResolvedPath(t *testing.T) {
	t.Parallel()
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		in       string
		expected string
	}{
		{in: "", expected: ""},
		{in: "/var/log/podfs.log", expected: "/var/log/podfs.log"},
		{in: "logs/podfs.log", expected: filepath.Join(wd, "logs/podfs.log")},
		{in: "~/podfs.log", expected: filepath.Join(home, "podfs.log")},
	}

	for _, tc := range tests {
		var p ResolvedPath

		require.NoError(t, p.UnmarshalText([]byte(tc.in)))

		assert.Equal(t, ResolvedPath(tc.expected), p, "input %q", tc.in)
	}
}
