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

package storage

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fairdatasociety/podfs/internal/logger"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
)

// NewDebugGateway wraps the supplied gateway in a layer that traces every
// request and its outcome.
func NewDebugGateway(wrapped gateway.Gateway) gateway.Gateway {
	return &debugGateway{
		wrapped: wrapped,
	}
}

type debugGateway struct {
	wrapped gateway.Gateway

	nextRequestID atomic.Uint64
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func (g *debugGateway) mintRequestID() uint64 {
	return g.nextRequestID.Add(1) - 1
}

func (g *debugGateway) requestLogf(id uint64, format string, v ...any) {
	logger.Tracef("gateway: Req %#16x: %s", id, fmt.Sprintf(format, v...))
}

func (g *debugGateway) startRequest(format string, v ...any) (id uint64, desc string, start time.Time) {
	start = time.Now()
	id = g.mintRequestID()
	desc = fmt.Sprintf(format, v...)

	g.requestLogf(id, "<- %s", desc)
	return
}

func (g *debugGateway) finishRequest(id uint64, desc string, start time.Time, err *error) {
	duration := time.Since(start)

	errDesc := "OK"
	if *err != nil {
		errDesc = (*err).Error()
	}

	g.requestLogf(id, "-> %s (%v): %s", desc, duration, errDesc)
}

////////////////////////////////////////////////////////////////////////
// Gateway interface
////////////////////////////////////////////////////////////////////////

func (g *debugGateway) Exists(ctx context.Context, ref gateway.Reference) (ok bool, err error) {
	id, desc, start := g.startRequest("Exists(%s)", ref)
	defer g.finishRequest(id, desc, start, &err)

	ok, err = g.wrapped.Exists(ctx, ref)
	return
}

func (g *debugGateway) Upload(ctx context.Context, pod string, path string, data []byte) (ref gateway.Reference, err error) {
	id, desc, start := g.startRequest("Upload(%q, %q, %d bytes)", pod, path, len(data))
	defer g.finishRequest(id, desc, start, &err)

	ref, err = g.wrapped.Upload(ctx, pod, path, data)
	return
}

func (g *debugGateway) Download(ctx context.Context, pod string, path string) (data []byte, err error) {
	id, desc, start := g.startRequest("Download(%q, %q)", pod, path)
	defer g.finishRequest(id, desc, start, &err)

	data, err = g.wrapped.Download(ctx, pod, path)
	return
}

func (g *debugGateway) Stat(ctx context.Context, pod string, path string) (e *gateway.Entry, err error) {
	id, desc, start := g.startRequest("Stat(%q, %q)", pod, path)
	defer g.finishRequest(id, desc, start, &err)

	e, err = g.wrapped.Stat(ctx, pod, path)
	return
}

func (g *debugGateway) ReadDir(ctx context.Context, pod string, dir string) (entries []gateway.Entry, err error) {
	id, desc, start := g.startRequest("ReadDir(%q, %q)", pod, dir)
	defer g.finishRequest(id, desc, start, &err)

	entries, err = g.wrapped.ReadDir(ctx, pod, dir)
	return
}

func (g *debugGateway) MakeDir(ctx context.Context, pod string, dir string) (err error) {
	id, desc, start := g.startRequest("MakeDir(%q, %q)", pod, dir)
	defer g.finishRequest(id, desc, start, &err)

	err = g.wrapped.MakeDir(ctx, pod, dir)
	return
}

func (g *debugGateway) Delete(ctx context.Context, pod string, path string) (err error) {
	id, desc, start := g.startRequest("Delete(%q, %q)", pod, path)
	defer g.finishRequest(id, desc, start, &err)

	err = g.wrapped.Delete(ctx, pod, path)
	return
}
