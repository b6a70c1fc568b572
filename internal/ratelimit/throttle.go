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
	"fmt"

	"golang.org/x/time/rate"
)

// A simple interface for limiting the rate of some event.
//
// Safe for concurrent access.
type Throttle interface {
	// Return the maximum number of tokens that can be requested in a call to
	// Wait.
	Capacity() (c uint64)

	// Acquire the given number of tokens from the underlying token bucket, then
	// sleep until when it says to wake. If the context is cancelled before then,
	// return early with an error.
	//
	// REQUIRES: tokens <= capacity
	Wait(ctx context.Context, tokens uint64) (err error)
}

type limiter struct {
	*rate.Limiter
}

// NewThrottle returns a throttle admitting rateHz events per second with
// bursts of up to capacity.
func NewThrottle(rateHz float64, capacity int) Throttle {
	return &limiter{rate.NewLimiter(rate.Limit(rateHz), capacity)}
}

// NewThrottleFromConfig returns the throttle described by opsPerSec and
// burst, or nil when opsPerSec is not positive, meaning no limit.
func NewThrottleFromConfig(opsPerSec float64, burst int64) (Throttle, error) {
	if opsPerSec <= 0 {
		return nil, nil
	}
	if burst <= 0 {
		return nil, fmt.Errorf("burst must be positive, got %d", burst)
	}
	return NewThrottle(opsPerSec, int(burst)), nil
}

func (l *limiter) Capacity() (c uint64) {
	return uint64(l.Burst())
}

func (l *limiter) Wait(ctx context.Context, tokens uint64) (err error) {
	return l.WaitN(ctx, int(tokens))
}
