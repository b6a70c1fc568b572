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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string `yaml:"app-name"`

	Debug DebugConfig `yaml:"debug"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	RateLimit RateLimitConfig `yaml:"rate-limit"`

	Storage StorageConfig `yaml:"storage"`

	Tracing TracingConfig `yaml:"tracing"`
}

type DebugConfig struct {
	ExitOnInvariantViolation bool `yaml:"exit-on-invariant-violation"`

	LogMutex bool `yaml:"log-mutex"`

	LogRequests bool `yaml:"log-requests"`
}

type GcsStorageConfig struct {
	Bucket string `yaml:"bucket"`

	CustomEndpoint string `yaml:"custom-endpoint"`

	Prefix string `yaml:"prefix"`
}

type LocalStorageConfig struct {
	Compression Compression `yaml:"compression"`

	Dir ResolvedPath `yaml:"dir"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format string `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type RateLimitConfig struct {
	Burst int64 `yaml:"burst"`

	OpsPerSec float64 `yaml:"ops-per-sec"`
}

type S3StorageConfig struct {
	AccessKeyId string `yaml:"access-key-id"`

	Bucket string `yaml:"bucket"`

	Endpoint string `yaml:"endpoint"`

	Prefix string `yaml:"prefix"`

	Region string `yaml:"region"`

	SecretAccessKey string `yaml:"secret-access-key"`
}

type StorageConfig struct {
	Backend Backend `yaml:"backend"`

	BlobCacheMb int64 `yaml:"blob-cache-mb"`

	Gcs GcsStorageConfig `yaml:"gcs"`

	Local LocalStorageConfig `yaml:"local"`

	Pod string `yaml:"pod"`

	RootPath string `yaml:"root-path"`

	S3 S3StorageConfig `yaml:"s3"`
}

type TracingConfig struct {
	Mode TracingMode `yaml:"mode"`
}

// flagBinding ties a flag to the viper key of the config field it sets.
type flagBinding struct {
	flag string
	key  string
}

var flagBindings = []flagBinding{
	{"app-name", "app-name"},
	{"backend", "storage.backend"},
	{"blob-cache-mb", "storage.blob-cache-mb"},
	{"custom-endpoint", "storage.gcs.custom-endpoint"},
	{"debug-invariants", "debug.exit-on-invariant-violation"},
	{"debug-mutex", "debug.log-mutex"},
	{"debug-requests", "debug.log-requests"},
	{"gcs-bucket", "storage.gcs.bucket"},
	{"gcs-prefix", "storage.gcs.prefix"},
	{"limit-burst", "rate-limit.burst"},
	{"limit-ops-per-sec", "rate-limit.ops-per-sec"},
	{"local-compression", "storage.local.compression"},
	{"local-dir", "storage.local.dir"},
	{"log-file", "logging.file-path"},
	{"log-format", "logging.format"},
	{"log-rotate-backup-file-count", "logging.log-rotate.backup-file-count"},
	{"log-rotate-compress", "logging.log-rotate.compress"},
	{"log-rotate-max-file-size-mb", "logging.log-rotate.max-file-size-mb"},
	{"log-severity", "logging.severity"},
	{"pod", "storage.pod"},
	{"prometheus-port", "metrics.prometheus-port"},
	{"root-path", "storage.root-path"},
	{"s3-access-key-id", "storage.s3.access-key-id"},
	{"s3-bucket", "storage.s3.bucket"},
	{"s3-endpoint", "storage.s3.endpoint"},
	{"s3-prefix", "storage.s3.prefix"},
	{"s3-region", "storage.s3.region"},
	{"s3-secret-access-key", "storage.s3.secret-access-key"},
	{"tracing-mode", "tracing.mode"},
}

// BindFlags registers every config flag on flagSet and binds it to the
// corresponding key of v.
func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("app-name", "", "", "The application name reported in logs.")

	flagSet.StringP("backend", "", string(MemoryBackend), "Object store backing the pods. One of [memory, local, gcs, s3].")

	flagSet.Int64P("blob-cache-mb", "", DefaultBlobCacheMB, "Size in MiB of the in-memory cache of downloaded file content. 0 disables it.")

	flagSet.StringP("custom-endpoint", "", "", "Alternate GCS endpoint, e.g. for a local emulator.")

	flagSet.BoolP("debug-invariants", "", false, "Exit when internal invariants are violated.")

	flagSet.BoolP("debug-mutex", "", false, "Print debug messages when a mutex is held too long.")

	flagSet.BoolP("debug-requests", "", false, "Log every storage gateway request at TRACE severity.")

	flagSet.StringP("gcs-bucket", "", "", "GCS bucket holding the pods, for the gcs backend.")

	flagSet.StringP("gcs-prefix", "", "", "Object name prefix within the GCS bucket.")

	flagSet.Int64P("limit-burst", "", DefaultLimitBurst, "Maximum number of gateway requests admitted at once when rate limiting.")

	flagSet.Float64P("limit-ops-per-sec", "", -1, "Operations per second limit for gateway requests. -1 means no limit.")

	flagSet.StringP("local-compression", "", string(NoCompression), "Compression applied to objects of the local backend. One of [none, zstd, lz4].")

	flagSet.StringP("local-dir", "", "", "Directory holding the objects of the local backend.")

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stderr.")

	flagSet.StringP("log-format", "", DefaultLogFormat, "The format of the log file: 'text' or 'json'.")

	flagSet.Int64P("log-rotate-backup-file-count", "", DefaultBackupFileCount, "The maximum number of backup log files to retain after they have been rotated. 0 retains all of them.")

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	flagSet.Int64P("log-rotate-max-file-size-mb", "", DefaultMaxFileSizeMB, "The maximum size in megabytes that a log file can reach before it is rotated.")

	flagSet.StringP("log-severity", "", string(InfoLogSeverity), "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	flagSet.StringP("pod", "", DefaultPod, "The pod to operate on.")

	flagSet.Int64P("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port and a path of /metrics. 0 disables it.")

	flagSet.StringP("root-path", "", "/", "Pod path that relative remote paths are resolved against.")

	flagSet.StringP("s3-access-key-id", "", "", "Static access key id for the s3 backend.")

	flagSet.StringP("s3-bucket", "", "", "S3 bucket holding the pods, for the s3 backend.")

	flagSet.StringP("s3-endpoint", "", "", "Endpoint of an S3-compatible service.")

	flagSet.StringP("s3-prefix", "", "", "Object key prefix within the S3 bucket.")

	flagSet.StringP("s3-region", "", DefaultS3Region, "Region of the S3 bucket.")

	flagSet.StringP("s3-secret-access-key", "", "", "Static secret access key for the s3 backend.")

	flagSet.StringP("tracing-mode", "", string(NoTracing), "Trace exporter. One of [none, stdout].")

	for _, b := range flagBindings {
		if err := v.BindPFlag(b.key, flagSet.Lookup(b.flag)); err != nil {
			return err
		}
	}

	return nil
}
