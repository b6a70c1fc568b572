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
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Format:   "json",
			Severity: InfoLogSeverity,
			LogRotate: LogRotateLoggingConfig{
				MaxFileSizeMb:   DefaultMaxFileSizeMB,
				BackupFileCount: DefaultBackupFileCount,
			},
		},
		Storage: StorageConfig{
			Backend:  MemoryBackend,
			Pod:      DefaultPod,
			RootPath: "/",
		},
		RateLimit: RateLimitConfig{OpsPerSec: -1},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid",
			mutate: func(*Config) {},
		},
		{
			name:    "ZeroLogFileSize",
			mutate:  func(c *Config) { c.Logging.LogRotate.MaxFileSizeMb = 0 },
			wantErr: "max-file-size-mb should be atleast 1",
		},
		{
			name:    "NegativeBackupCount",
			mutate:  func(c *Config) { c.Logging.LogRotate.BackupFileCount = -1 },
			wantErr: "backup-file-count should be 0",
		},
		{
			name:    "BadLogFormat",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "unsupported log format",
		},
		{
			name:    "EmptyPod",
			mutate:  func(c *Config) { c.Storage.Pod = "" },
			wantErr: "pod name must not be empty",
		},
		{
			name:    "PodWithSlash",
			mutate:  func(c *Config) { c.Storage.Pod = "a/b" },
			wantErr: "invalid pod name",
		},
		{
			name:    "NegativeBlobCache",
			mutate:  func(c *Config) { c.Storage.BlobCacheMb = -1 },
			wantErr: "blob-cache-mb should be 0",
		},
		{
			name:    "LocalWithoutDir",
			mutate:  func(c *Config) { c.Storage.Backend = LocalBackend },
			wantErr: "requires storage.local.dir",
		},
		{
			name:    "GCSWithoutBucket",
			mutate:  func(c *Config) { c.Storage.Backend = GCSBackend },
			wantErr: "requires storage.gcs.bucket",
		},
		{
			name: "GCSWithRelativeEndpoint",
			mutate: func(c *Config) {
				c.Storage.Backend = GCSBackend
				c.Storage.Gcs.Bucket = "b"
				c.Storage.Gcs.CustomEndpoint = "localhost"
			},
			wantErr: "error parsing custom-endpoint config",
		},
		{
			name: "S3WithHalfCredentials",
			mutate: func(c *Config) {
				c.Storage.Backend = S3Backend
				c.Storage.S3.Bucket = "b"
				c.Storage.S3.AccessKeyId = "id"
			},
			wantErr: "must be set together",
		},
		{
			name: "S3Valid",
			mutate: func(c *Config) {
				c.Storage.Backend = S3Backend
				c.Storage.S3.Bucket = "b"
				c.Storage.S3.Endpoint = "http://127.0.0.1:9000"
				c.Storage.S3.AccessKeyId = "id"
				c.Storage.S3.SecretAccessKey = "secret"
			},
		},
		{
			name:    "ZeroOpsPerSec",
			mutate:  func(c *Config) { c.RateLimit.OpsPerSec = 0 },
			wantErr: "ops-per-sec should be -1",
		},
		{
			name:    "RateLimitWithoutBurst",
			mutate:  func(c *Config) { c.RateLimit.OpsPerSec = 5 },
			wantErr: "burst should be atleast 1",
		},
		{
			name:    "PrometheusPortOutOfRange",
			mutate:  func(c *Config) { c.Metrics.PrometheusPort = 70000 },
			wantErr: "out of range",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := validConfig()
			tc.mutate(c)

			err := ValidateConfig(c)

			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
