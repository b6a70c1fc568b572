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
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// LogSeverity represents the logging severity and can accept the following values
// "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF"
type LogSeverity string

// Constants for all supported log severities.
const (
	TraceLogSeverity   LogSeverity = "TRACE"
	DebugLogSeverity   LogSeverity = "DEBUG"
	InfoLogSeverity    LogSeverity = "INFO"
	WarningLogSeverity LogSeverity = "WARNING"
	ErrorLogSeverity   LogSeverity = "ERROR"
	OffLogSeverity     LogSeverity = "OFF"
)

// severityRanking maps each level to an integer for validation and comparison.
var severityRanking = map[LogSeverity]int{
	TraceLogSeverity:   0,
	DebugLogSeverity:   1,
	InfoLogSeverity:    2,
	WarningLogSeverity: 3,
	ErrorLogSeverity:   4,
	OffLogSeverity:     5,
}

func (l *LogSeverity) UnmarshalText(text []byte) error {
	level := LogSeverity(strings.ToUpper(string(text)))
	if _, ok := severityRanking[level]; !ok {
		return fmt.Errorf("invalid log severity level: %s. Must be one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]", text)
	}
	*l = level
	return nil
}

// Rank returns the integer representation of the severity rank.
// Returns -1 if the severity is unknown.
func (l LogSeverity) Rank() int {
	if rank, ok := severityRanking[l]; ok {
		return rank
	}
	return -1
}

// Backend selects the object store that pods are kept in.
type Backend string

const (
	MemoryBackend Backend = "memory"
	LocalBackend  Backend = "local"
	GCSBackend    Backend = "gcs"
	S3Backend     Backend = "s3"
)

func (b *Backend) UnmarshalText(text []byte) error {
	txtStr := string(text)
	backend := strings.ToLower(txtStr)
	v := []string{"memory", "local", "gcs", "s3"}
	if !slices.Contains(v, backend) {
		return fmt.Errorf("invalid backend value: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*b = Backend(backend)
	return nil
}

// Compression is the codec applied to objects of the local backend.
type Compression string

const (
	NoCompression   Compression = "none"
	ZstdCompression Compression = "zstd"
	LZ4Compression  Compression = "lz4"
)

func (c *Compression) UnmarshalText(text []byte) error {
	txtStr := string(text)
	compression := strings.ToLower(txtStr)
	if compression == "" {
		compression = string(NoCompression)
	}
	v := []string{"none", "zstd", "lz4"}
	if !slices.Contains(v, compression) {
		return fmt.Errorf("invalid compression value: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*c = Compression(compression)
	return nil
}

// TracingMode selects the trace exporter.
type TracingMode string

const (
	NoTracing     TracingMode = "none"
	StdoutTracing TracingMode = "stdout"
)

func (m *TracingMode) UnmarshalText(text []byte) error {
	txtStr := string(text)
	mode := strings.ToLower(txtStr)
	if mode == "" {
		mode = string(NoTracing)
	}
	v := []string{"none", "stdout"}
	if !slices.Contains(v, mode) {
		return fmt.Errorf("invalid tracing mode: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*m = TracingMode(mode)
	return nil
}

// ResolvedPath represents a file-path which is an absolute path. A leading
// "~" is expanded to the user's home directory.
type ResolvedPath string

func (p *ResolvedPath) UnmarshalText(text []byte) error {
	path, err := resolvePath(string(text))
	if err != nil {
		return err
	}
	*p = ResolvedPath(path)
	return nil
}

func resolvePath(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}

	return filepath.Abs(p)
}
