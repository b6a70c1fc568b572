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

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairdatasociety/podfs/cfg"
)

// Severity levels beyond the ones slog defines.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	// Nothing is logged at or above LevelOff.
	LevelOff = slog.Level(12)
)

const (
	textTimeFormat = "2006/01/02 15:04:05.000000"
	severityKey    = "severity"
	messageKey     = "message"
	timestampKey   = "timestamp"
)

// setLoggingLevel sets the level of programLevel to the given severity, so
// that logs having severity >= the configured value will be logged.
func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	switch level {
	case cfg.TRACE:
		programLevel.Set(LevelTrace)
	case cfg.DEBUG:
		programLevel.Set(LevelDebug)
	case cfg.INFO:
		programLevel.Set(LevelInfo)
	case cfg.WARNING:
		programLevel.Set(LevelWarn)
	case cfg.ERROR:
		programLevel.Set(LevelError)
	case cfg.OFF:
		programLevel.Set(LevelOff)
	}
}

func severityName(level slog.Level) string {
	switch {
	case level < LevelDebug:
		return cfg.TRACE
	case level < LevelInfo:
		return cfg.DEBUG
	case level < LevelWarn:
		return cfg.INFO
	case level < LevelError:
		return cfg.WARNING
	default:
		return cfg.ERROR
	}
}

// replaceAttr renames slog's built-in keys and renders time and level the
// way podfs logs expect them.
func replaceAttr(format, prefix string) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}

		switch a.Key {
		case slog.TimeKey:
			t := a.Value.Time()
			if format == "text" {
				return slog.String(slog.TimeKey, t.Format(textTimeFormat))
			}
			return slog.Group(timestampKey,
				slog.Int64("seconds", t.Unix()),
				slog.Int64("nanos", int64(t.Nanosecond())))
		case slog.LevelKey:
			return slog.String(severityKey, severityName(a.Value.Any().(slog.Level)))
		case slog.MessageKey:
			return slog.String(messageKey, prefix+a.Value.String())
		}
		return a
	}
}

func logf(level slog.Level, format string, v ...any) {
	ctx := context.Background()
	if !defaultLogger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, v...), 0)
	_ = defaultLogger.Handler().Handle(ctx, r)
}
