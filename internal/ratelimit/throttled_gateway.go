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

package ratelimit

import (
	"context"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
)

// NewThrottledGateway returns a gateway that limits the rate at which it
// calls the wrapped gateway using opThrottle. Every request costs one token.
func NewThrottledGateway(opThrottle Throttle, wrapped gateway.Gateway) gateway.Gateway {
	return &throttledGateway{
		opThrottle: opThrottle,
		wrapped:    wrapped,
	}
}

////////////////////////////////////////////////////////////////////////
// throttledGateway
////////////////////////////////////////////////////////////////////////

type throttledGateway struct {
	opThrottle Throttle
	wrapped    gateway.Gateway
}

func (g *throttledGateway) Exists(ctx context.Context, ref gateway.Reference) (ok bool, err error) {
	// Wait for permission to call through.
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.Exists(ctx, ref)
}

func (g *throttledGateway) Upload(ctx context.Context, pod string, path string, data []byte) (ref gateway.Reference, err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.Upload(ctx, pod, path, data)
}

func (g *throttledGateway) Download(ctx context.Context, pod string, path string) (data []byte, err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.Download(ctx, pod, path)
}

func (g *throttledGateway) Stat(ctx context.Context, pod string, path string) (e *gateway.Entry, err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.Stat(ctx, pod, path)
}

func (g *throttledGateway) ReadDir(ctx context.Context, pod string, dir string) (entries []gateway.Entry, err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.ReadDir(ctx, pod, dir)
}

func (g *throttledGateway) MakeDir(ctx context.Context, pod string, dir string) (err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.MakeDir(ctx, pod, dir)
}

func (g *throttledGateway) Delete(ctx context.Context, pod string, path string) (err error) {
	if err = g.opThrottle.Wait(ctx, 1); err != nil {
		return
	}

	return g.wrapped.Delete(ctx, pod, path)
}
