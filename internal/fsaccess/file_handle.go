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

package fsaccess

import (
	"context"
	"fmt"

	"github.com/fairdatasociety/podfs/internal/locker"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/writesink"
)

// File is a snapshot of a file's content.
type File struct {
	Name    string
	Size    int64
	Content []byte
}

type CreateWritableOptions struct {
	// Start from the file's current content. Nil means true.
	KeepExistingData *bool
}

// FileHandle refers to a file of a pod.
type FileHandle struct {
	access *access
	name   string
	path   string

	mu locker.RWLocker

	// Content address as of the last listing or successful stream close.
	//
	// INVARIANT: !ref.IsZero()
	// GUARDED_BY(mu)
	ref gateway.Reference
}

var _ Handle = (*FileHandle)(nil)

func newFileHandle(a *access, p string, ref gateway.Reference) *FileHandle {
	_, name := gateway.SplitPath(p)
	f := &FileHandle{
		access: a,
		name:   name,
		path:   p,
		ref:    ref,
	}
	f.mu = locker.NewRW("FileHandle: "+p, f.checkInvariants)
	return f
}

// checkInvariants panics if the handle lost its content address. Handles
// are only minted from stat, listing or upload results, all of which carry
// one.
//
// LOCKS_REQUIRED(f.mu)
func (f *FileHandle) checkInvariants() {
	if f.ref.IsZero() {
		panic(fmt.Sprintf("FileHandle(%s): zero reference", f.path))
	}
}

func (f *FileHandle) Name() string {
	return f.name
}

func (f *FileHandle) Kind() gateway.EntryKind {
	return gateway.KindFile
}

func (f *FileHandle) Path() string {
	return f.path
}

func (f *FileHandle) Reference() gateway.Reference {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.ref
}

func (f *FileHandle) setReference(ref gateway.Reference) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ref = ref
}

// IsSameEntry reports whether other refers to the same content.
func (f *FileHandle) IsSameEntry(other *FileHandle) bool {
	return other != nil && f.Reference() == other.Reference()
}

// Exists reports whether the handle's content is retrievable. Probe errors
// count as absence.
func (f *FileHandle) Exists(ctx context.Context) bool {
	return gateway.Has(ctx, f.access.gw, f.Reference())
}

// GetFile downloads the file. Every failure is reported as a
// *gateway.NotFoundError wrapping the cause.
func (f *FileHandle) GetFile(ctx context.Context) (*File, error) {
	data, err := f.access.gw.Download(ctx, f.access.pod, f.path)
	if err != nil {
		return nil, &gateway.NotFoundError{Err: fmt.Errorf("Download(%s): %w", f.path, err)}
	}

	return &File{
		Name:    f.name,
		Size:    int64(len(data)),
		Content: data,
	}, nil
}

// CreateWritable opens a stream replacing the file's content when closed.
func (f *FileHandle) CreateWritable(ctx context.Context, opts CreateWritableOptions) (*WritableStream, error) {
	keep := opts.KeepExistingData == nil || *opts.KeepExistingData

	target := writesink.Target{Pod: f.access.pod, Path: f.path}
	sink, err := writesink.Open(ctx, f.access.gw, target, keep, f.access.sinkOpts)
	if err != nil {
		return nil, err
	}

	return newWritableStream(f, sink), nil
}
