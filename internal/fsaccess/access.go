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

// Package fsaccess exposes a pod through directory and file handles in the
// shape of a browser file system access adapter.
package fsaccess

import (
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/writesink"
)

// Handle is the part common to directory and file handles.
type Handle interface {
	Name() string
	Kind() gateway.EntryKind
	Path() string
}

// access is shared by every handle derived from one Open call.
type access struct {
	gw       gateway.Gateway
	pod      string
	sinkOpts *writesink.Options
}

// Open returns the handle of the directory at root in pod.
func Open(gw gateway.Gateway, pod string, root string) *DirHandle {
	return OpenWithOptions(gw, pod, root, nil)
}

// OpenWithOptions is Open with the options used for every writable stream
// created below the returned handle.
func OpenWithOptions(gw gateway.Gateway, pod string, root string, sinkOpts *writesink.Options) *DirHandle {
	a := &access{
		gw:       gw,
		pod:      pod,
		sinkOpts: sinkOpts,
	}

	p := gateway.CleanPath(root)
	_, name := gateway.SplitPath(p)
	if name == "" {
		name = pod
	}
	return &DirHandle{access: a, name: name, path: p}
}
