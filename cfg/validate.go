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
	"fmt"
	"net/url"
	"strings"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLogFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unsupported log format %q, expected one of [text, json]", format)
}

func isValidURL(u string) error {
	if u == "" {
		return nil
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", u)
	}
	return nil
}

func isValidPodName(pod string) error {
	if pod == "" {
		return fmt.Errorf("pod name must not be empty")
	}
	if strings.ContainsAny(pod, "/\\") || pod == "." || pod == ".." {
		return fmt.Errorf("invalid pod name %q", pod)
	}
	return nil
}

func isValidStorageConfig(c *StorageConfig) error {
	if err := isValidPodName(c.Pod); err != nil {
		return err
	}

	if c.BlobCacheMb < 0 {
		return fmt.Errorf("blob-cache-mb should be 0 (disabled) or a positive value")
	}

	switch c.Backend {
	case MemoryBackend:
	case LocalBackend:
		if c.Local.Dir == "" {
			return fmt.Errorf("the local backend requires storage.local.dir")
		}
	case GCSBackend:
		if c.Gcs.Bucket == "" {
			return fmt.Errorf("the gcs backend requires storage.gcs.bucket")
		}
		if err := isValidURL(c.Gcs.CustomEndpoint); err != nil {
			return fmt.Errorf("error parsing custom-endpoint config: %w", err)
		}
	case S3Backend:
		if c.S3.Bucket == "" {
			return fmt.Errorf("the s3 backend requires storage.s3.bucket")
		}
		if err := isValidURL(c.S3.Endpoint); err != nil {
			return fmt.Errorf("error parsing s3 endpoint config: %w", err)
		}
		if (c.S3.AccessKeyId == "") != (c.S3.SecretAccessKey == "") {
			return fmt.Errorf("s3 access-key-id and secret-access-key must be set together")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	return nil
}

func isValidRateLimitConfig(c *RateLimitConfig) error {
	if c.OpsPerSec == 0 || c.OpsPerSec < -1 {
		return fmt.Errorf("ops-per-sec should be -1 (no limit) or a positive value")
	}
	if c.OpsPerSec > 0 && c.Burst < 1 {
		return fmt.Errorf("burst should be atleast 1 when rate limiting is enabled")
	}
	return nil
}

func isValidMetricsConfig(c *MetricsConfig) error {
	if c.PrometheusPort < 0 || c.PrometheusPort > 65535 {
		return fmt.Errorf("prometheus-port %d is out of range", c.PrometheusPort)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidLogFormat(config.Logging.Format); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	if err = isValidStorageConfig(&config.Storage); err != nil {
		return fmt.Errorf("error parsing storage config: %w", err)
	}

	if err = isValidRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("error parsing rate-limit config: %w", err)
	}

	if err = isValidMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("error parsing metrics config: %w", err)
	}

	return nil
}
