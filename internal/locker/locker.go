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

// Package locker provides mutexes with optional invariant checking and
// slow-holder debugging.
package locker

import (
	"runtime"
	"sync"
	"time"

	"github.com/fairdatasociety/podfs/internal/logger"
)

var (
	gEnableInvariantsCheck bool
	gEnableDebugMessages   bool
)

// holdWarningThreshold is how long an exclusive lock may be held before the
// debugging locker reports a potential deadlock.
const holdWarningThreshold = 5 * time.Second

// EnableInvariantsCheck makes lockers created afterwards run their check
// function on every acquire and release.
func EnableInvariantsCheck() {
	gEnableInvariantsCheck = true
}

// EnableDebugMessages makes lockers created afterwards log when an exclusive
// lock is held for too long.
func EnableDebugMessages() {
	gEnableDebugMessages = true
}

// Locker is a sync.Locker, possibly instrumented.
type Locker interface {
	sync.Locker
}

// RWLocker is a Locker that also admits shared holders.
type RWLocker interface {
	Locker
	RLock()
	RUnlock()
}

// New returns an exclusive locker. check, if non-nil, is run after every
// Lock and before every Unlock when invariant checking is enabled.
func New(name string, check func()) Locker {
	if l := newInstrumented(name, check); l != nil {
		return l
	}
	return &sync.Mutex{}
}

// NewRW returns a reader/writer locker. check runs around shared holds too,
// so it must only read the guarded state. Slow-holder debugging covers
// exclusive holds only.
func NewRW(name string, check func()) RWLocker {
	if l := newInstrumented(name, check); l != nil {
		return l
	}
	return &sync.RWMutex{}
}

// instrumented is a sync.RWMutex that checks invariants and watches
// exclusive hold times, each only when enabled at construction.
type instrumented struct {
	mu    sync.RWMutex
	name  string
	check func()
	debug bool

	// Set while an exclusive holder exists and debugging is on.
	//
	// GUARDED_BY(mu)
	holder string
	timer  *time.Timer
}

// newInstrumented returns nil when no instrumentation is enabled.
func newInstrumented(name string, check func()) *instrumented {
	if !gEnableInvariantsCheck {
		check = nil
	}
	if check == nil && !gEnableDebugMessages {
		return nil
	}

	return &instrumented{
		name:  name,
		check: check,
		debug: gEnableDebugMessages,
	}
}

func (l *instrumented) Lock() {
	l.mu.Lock()
	l.checkInvariants()

	if l.debug {
		l.holder = captureStack()
		holder := l.holder
		l.timer = time.AfterFunc(holdWarningThreshold, func() {
			logger.Warnf("locker: %q held for more than %v by:\n%s", l.name, holdWarningThreshold, holder)
		})
	}
}

func (l *instrumented) Unlock() {
	if l.debug {
		l.timer.Stop()
		l.timer = nil
		l.holder = ""
	}

	l.checkInvariants()
	l.mu.Unlock()
}

func (l *instrumented) RLock() {
	l.mu.RLock()
	l.checkInvariants()
}

func (l *instrumented) RUnlock() {
	l.checkInvariants()
	l.mu.RUnlock()
}

func (l *instrumented) checkInvariants() {
	if l.check != nil {
		l.check()
	}
}

func captureStack() string {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false /* all */)
	return string(buf[:n])
}
