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

package cmd

import (
	"context"
	"fmt"

	"github.com/fairdatasociety/podfs/cfg"
	"github.com/fairdatasociety/podfs/common"
	"github.com/fairdatasociety/podfs/internal/fsaccess"
	"github.com/fairdatasociety/podfs/internal/locker"
	"github.com/fairdatasociety/podfs/internal/logger"
	"github.com/fairdatasociety/podfs/internal/monitor"
	"github.com/fairdatasociety/podfs/internal/ratelimit"
	"github.com/fairdatasociety/podfs/internal/storage"
	"github.com/fairdatasociety/podfs/internal/storage/fake"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/storage/gcsstore"
	"github.com/fairdatasociety/podfs/internal/storage/localfs"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
	"github.com/fairdatasociety/podfs/internal/storage/pod"
	"github.com/fairdatasociety/podfs/internal/storage/s3store"
	"github.com/fairdatasociety/podfs/internal/writesink"
	"github.com/fairdatasociety/podfs/metrics"
	"github.com/fairdatasociety/podfs/tracing"
	"github.com/jacobsa/timeutil"
)

// session is everything a subcommand needs to talk to the configured pod.
type session struct {
	config   *cfg.Config
	gw       gateway.Gateway
	sinkOpts *writesink.Options
	shutdown common.ShutdownFn
}

func newSession(ctx context.Context, c *cfg.Config) (s *session, err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return nil, fmt.Errorf("init log file: %w", err)
	}

	// Enable invariant checking if requested.
	if c.Debug.ExitOnInvariantViolation {
		locker.EnableInvariantsCheck()
	}
	if c.Debug.LogMutex {
		locker.EnableDebugMessages()
	}

	if str, err := cfg.Stringify(c); err == nil {
		logger.Debugf("podfs config:\n%s", str)
	}

	shutdownFns := []common.ShutdownFn{monitor.SetupOTelMetricExporters(ctx, c)}
	defer func() {
		if err != nil {
			_ = common.JoinShutdownFunc(shutdownFns...)(ctx)
		}
	}()

	metricHandle, err := metrics.NewOTelMetrics(nil)
	if err != nil {
		logger.Errorf("Failed to create metric handle, metrics are disabled: %v", err)
		metricHandle = metrics.NewNoopMetrics()
	}

	traceHandle := tracing.NewNoopTracer()
	if shutdownTracing := monitor.SetupTracing(ctx, c); shutdownTracing != nil {
		shutdownFns = append(shutdownFns, shutdownTracing)
		traceHandle = tracing.NewOTelTracer(nil)
	}

	objects, closeObjects, err := newObjectStore(ctx, c)
	if err != nil {
		return nil, err
	}
	shutdownFns = append(shutdownFns, closeObjects)

	gw, err := newGateway(objects, c, metricHandle, traceHandle)
	if err != nil {
		return nil, err
	}

	return &session{
		config: c,
		gw:     gw,
		sinkOpts: &writesink.Options{
			MetricHandle: metricHandle,
			TraceHandle:  traceHandle,
		},
		shutdown: common.JoinShutdownFunc(shutdownFns...),
	}, nil
}

func (s *session) Close(ctx context.Context) error {
	err := s.shutdown(ctx)
	logger.Close()
	return err
}

// dir returns the handle of the directory at p, resolved against the
// configured root path.
func (s *session) dir(p string) *fsaccess.DirHandle {
	return fsaccess.OpenWithOptions(s.gw, s.config.Storage.Pod, s.resolve(p), s.sinkOpts)
}

// parentAndName splits p, resolved against the root path, into the handle
// of its parent directory and its base name.
func (s *session) parentAndName(p string) (*fsaccess.DirHandle, string, error) {
	dir, name := gateway.SplitPath(s.resolve(p))
	if name == "" {
		return nil, "", fmt.Errorf("%q names the pod root", p)
	}
	return s.dir(dir), name, nil
}

func (s *session) resolve(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return gateway.CleanPath(p)
	}
	return gateway.JoinPath(s.config.Storage.RootPath, p)
}

func newObjectStore(ctx context.Context, c *cfg.Config) (objstore.Store, common.ShutdownFn, error) {
	switch c.Storage.Backend {
	case cfg.LocalBackend:
		codec, err := localfs.ParseCodec(string(c.Storage.Local.Compression))
		if err != nil {
			return nil, nil, err
		}
		store, err := localfs.New(string(c.Storage.Local.Dir), codec)
		if err != nil {
			return nil, nil, fmt.Errorf("local store: %w", err)
		}
		return store, nil, nil

	case cfg.GCSBackend:
		logger.Infof("Creating GCS client...")
		client, err := gcsstore.NewClient(ctx, c.Storage.Gcs.CustomEndpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("gcs client: %w", err)
		}
		closeClient := func(context.Context) error { return client.Close() }
		return gcsstore.New(client, c.Storage.Gcs.Bucket, c.Storage.Gcs.Prefix), closeClient, nil

	case cfg.S3Backend:
		client, err := s3store.NewClient(ctx, s3store.Options{
			Region:          c.Storage.S3.Region,
			Endpoint:        c.Storage.S3.Endpoint,
			AccessKeyID:     c.Storage.S3.AccessKeyId,
			SecretAccessKey: c.Storage.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 client: %w", err)
		}
		return s3store.New(client, c.Storage.S3.Bucket, c.Storage.S3.Prefix), nil, nil

	default:
		logger.Warnf("Using the memory backend, nothing outlives this process.")
		return fake.NewStore(), nil, nil
	}
}

// newGateway stacks the configured wrappers on top of a pod store. The
// monitoring layer is outermost so that its latencies include throttling.
func newGateway(
	objects objstore.Store,
	c *cfg.Config,
	metricHandle metrics.MetricHandle,
	traceHandle tracing.TraceHandle) (gateway.Gateway, error) {
	var gw gateway.Gateway = pod.NewCached(objects, timeutil.RealClock(), uint64(c.Storage.BlobCacheMb)<<20)

	throttle, err := ratelimit.NewThrottleFromConfig(c.RateLimit.OpsPerSec, c.RateLimit.Burst)
	if err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if throttle != nil {
		gw = ratelimit.NewThrottledGateway(throttle, gw)
	}

	if c.Debug.LogRequests {
		gw = storage.NewDebugGateway(gw)
	}

	return monitor.NewMonitoringGateway(gw, metricHandle, traceHandle), nil
}
