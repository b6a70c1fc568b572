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

	"github.com/fairdatasociety/podfs/internal/locker"
	"github.com/fairdatasociety/podfs/internal/writesink"
)

// WritableStream is a sink bound to a file handle. Unlike the sink it wraps,
// it is safe for concurrent use.
type WritableStream struct {
	file *FileHandle

	mu locker.Locker

	// GUARDED_BY(mu)
	sink *writesink.Sink
}

func newWritableStream(file *FileHandle, sink *writesink.Sink) *WritableStream {
	ws := &WritableStream{
		file: file,
		sink: sink,
	}
	ws.mu = locker.New("WritableStream: "+file.path, ws.checkInvariants)
	return ws
}

// LOCKS_REQUIRED(ws.mu)
func (ws *WritableStream) checkInvariants() {
	ws.sink.CheckInvariants()
}

// Write applies op to the pending content.
func (ws *WritableStream) Write(op writesink.Operation) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.sink.Apply(op)
}

// WriteParams converts a loosely shaped request and applies it.
func (ws *WritableStream) WriteParams(params writesink.WriteParams) error {
	op, err := writesink.ParseWriteParams(params)
	if err != nil {
		return err
	}

	return ws.Write(op)
}

func (ws *WritableStream) Seek(position int64) error {
	return ws.Write(writesink.Seek(position))
}

func (ws *WritableStream) Truncate(size int64) error {
	return ws.Write(writesink.Truncate(size))
}

// Size returns the size of the pending content.
func (ws *WritableStream) Size() int64 {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.sink.Size()
}

// Close uploads the pending content and points the file handle at it.
func (ws *WritableStream) Close(ctx context.Context) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ref, err := ws.sink.Close(ctx)
	if err != nil {
		return err
	}

	ws.file.setReference(ref)
	return nil
}
