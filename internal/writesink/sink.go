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

// Package writesink implements a random-access write sink: positioned
// writes, seeks and truncations are folded into one in-memory image of a
// file, which is uploaded as a single unit when the sink is closed.
package writesink

import (
	"context"
	"fmt"
	"math"

	"github.com/fairdatasociety/podfs/internal/bytebuf"
	"github.com/fairdatasociety/podfs/internal/logger"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/metrics"
	"github.com/fairdatasociety/podfs/tracing"
	"github.com/jacobsa/timeutil"
)

// Uploader stores the complete content of a file.
type Uploader interface {
	Upload(ctx context.Context, pod string, path string, data []byte) (gateway.Reference, error)
}

// Downloader fetches the complete content of a file.
type Downloader interface {
	Download(ctx context.Context, pod string, path string) ([]byte, error)
}

// UploadDownloader is the part of a gateway.Gateway that Open needs.
type UploadDownloader interface {
	Uploader
	Downloader
}

// Target names the remote file a sink writes to.
type Target struct {
	Pod  string
	Path string
}

func (t Target) String() string {
	return t.Pod + ":" + t.Path
}

// Options are optional collaborators of a sink. A nil *Options, or nil
// fields, select no-op metrics and tracing and the real clock.
type Options struct {
	MetricHandle metrics.MetricHandle
	TraceHandle  tracing.TraceHandle
	Clock        timeutil.Clock
}

// MaxFileSize is the largest logical file a sink holds in memory.
const MaxFileSize int64 = 1 << 30

type sinkState int

const (
	stateOpen sinkState = iota
	stateClosing
	stateClosed
)

func (s sinkState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateClosing:
		return "closing"
	case stateClosed:
		return "closed"
	}
	return fmt.Sprintf("sinkState(%d)", int(s))
}

// Sink accumulates operations against one logical file and uploads the
// result on Close.
//
// A Sink is not safe for concurrent use; callers must serialize Apply and
// Close.
type Sink struct {
	uploader Uploader
	target   Target

	metricHandle metrics.MetricHandle
	traceHandle  tracing.TraceHandle
	clock        timeutil.Clock

	/////////////////////////
	// Mutable state
	/////////////////////////

	// INVARIANT: file.Content.Len() == file.Size
	file LogicalFile

	// INVARIANT: 0 <= cursor
	cursor int64

	state sinkState
}

// New returns an open sink that starts from initial and uploads to target
// through uploader when closed.
func New(uploader Uploader, target Target, initial LogicalFile, opts *Options) *Sink {
	if opts == nil {
		opts = &Options{}
	}

	s := &Sink{
		uploader:     uploader,
		target:       target,
		metricHandle: opts.MetricHandle,
		traceHandle:  opts.TraceHandle,
		clock:        opts.Clock,
		file:         initial,
		state:        stateOpen,
	}
	if s.metricHandle == nil {
		s.metricHandle = metrics.NewNoopMetrics()
	}
	if s.traceHandle == nil {
		s.traceHandle = tracing.NewNoopTracer()
	}
	if s.clock == nil {
		s.clock = timeutil.RealClock()
	}
	// Callers may build the file by hand; trust the content over the size.
	s.file.setContent(s.file.Content)

	return s
}

// Open returns a sink for target. When keepExistingData is set the sink
// starts from the file's current remote content, which must exist;
// otherwise it starts empty and the remote file is left untouched until
// Close.
func Open(
	ctx context.Context,
	gw UploadDownloader,
	target Target,
	keepExistingData bool,
	opts *Options) (*Sink, error) {
	name := baseName(target.Path)
	if !keepExistingData {
		return New(gw, target, LogicalFile{Name: name}, opts), nil
	}

	data, err := gw.Download(ctx, target.Pod, target.Path)
	if err != nil {
		return nil, fmt.Errorf("Download(%s): %w", target, err)
	}

	return New(gw, target, NewLogicalFile(name, data), opts), nil
}

// Target returns the file the sink uploads to.
func (s *Sink) Target() Target {
	return s.target
}

// Size returns the current logical size of the file.
func (s *Sink) Size() int64 {
	return s.file.Size
}

// Position returns the current cursor.
func (s *Sink) Position() int64 {
	return s.cursor
}

// Bytes returns a copy of the current content.
func (s *Sink) Bytes() []byte {
	return s.file.Content.Bytes()
}

// Closed reports whether the sink has been successfully closed.
func (s *Sink) Closed() bool {
	return s.state == stateClosed
}

// CheckInvariants panics if any internal invariant is violated.
func (s *Sink) CheckInvariants() {
	// INVARIANT: file.Content.Len() == file.Size
	if s.file.Content.Len() != s.file.Size {
		panic(fmt.Sprintf("content length %d != size %d", s.file.Content.Len(), s.file.Size))
	}

	// INVARIANT: 0 <= cursor
	if s.cursor < 0 {
		panic(fmt.Sprintf("negative cursor: %d", s.cursor))
	}
}

// Apply validates op and applies it to the in-memory file. On error the
// sink is unchanged.
func (s *Sink) Apply(op Operation) error {
	if s.state != stateOpen {
		return invalidStatef("cannot apply %v to a %v sink", op, s.state)
	}

	var err error
	switch op.kind {
	case OpWrite:
		err = s.write(op)
	case OpSeek:
		err = s.seek(op)
	case OpTruncate:
		err = s.truncate(op)
	default:
		err = syntaxErrorf("unknown operation kind %v", op.kind)
	}
	if err != nil {
		return err
	}

	s.metricHandle.SinkOpsCount(context.Background(), 1, op.kind.String())
	return nil
}

// Write applies a plain write of p at the cursor, so that a Sink can be used
// as an io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if p == nil {
		p = []byte{}
	}

	if err := s.Apply(Write(p)); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close uploads the accumulated content in a single call and returns its
// reference. If the upload fails the sink stays open with its content
// intact, so Close may be retried.
func (s *Sink) Close(ctx context.Context) (ref gateway.Reference, err error) {
	if s.state != stateOpen {
		err = invalidStatef("cannot close a %v sink", s.state)
		return
	}

	s.state = stateClosing
	ctx, span := s.traceHandle.StartSpan(ctx, tracing.SinkCloseSpan)
	defer s.traceHandle.EndSpan(span)

	start := s.clock.Now()
	data := s.file.Content.Bytes()
	s.traceHandle.SetFileAttributes(span, s.target.Pod, s.target.Path, int64(len(data)))
	ref, err = s.uploader.Upload(ctx, s.target.Pod, s.target.Path, data)
	latency := s.clock.Now().Sub(start)

	if err != nil {
		s.state = stateOpen
		s.traceHandle.RecordError(span, err)
		s.metricHandle.SinkCloseLatencies(ctx, latency, metrics.StatusError)
		err = fmt.Errorf("Upload(%s): %w", s.target, err)
		return
	}

	s.state = stateClosed
	s.metricHandle.SinkCloseLatencies(ctx, latency, metrics.StatusOK)
	s.metricHandle.SinkUploadBytesCount(ctx, int64(len(data)))
	logger.Tracef("Sink(%s): uploaded %d bytes as %s", s.target, len(data), ref)
	return
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

// write splices data into the file at the cursor, or at the explicit
// position if the operation has one, zero-filling any gap past the end.
func (s *Sink) write(op Operation) error {
	if op.data == nil {
		return syntaxErrorf("write requires a data argument")
	}

	cursor := s.cursor
	if op.hasPosition {
		if op.position < 0 {
			return syntaxErrorf("write position must be non-negative, got %d", op.position)
		}
		cursor = op.position
	}

	content := s.file.Content
	n := int64(len(op.data))
	if n > MaxFileSize || cursor > MaxFileSize-n {
		return &FileTooLargeError{Size: endOf(cursor, n)}
	}

	head := content.Slice(0, cursor)
	padding := bytebuf.Zeros(cursor - head.Len())
	tail := content.Slice(cursor+n, content.Len())

	s.file.setContent(bytebuf.Concat(head, padding, bytebuf.New(op.data), tail))
	s.cursor = cursor + n

	return nil
}

func (s *Sink) seek(op Operation) error {
	if op.position < 0 {
		return syntaxErrorf("seek requires a position argument")
	}

	if op.position > s.file.Size {
		return invalidStatef("seek position %d is beyond the end of the file (size %d)", op.position, s.file.Size)
	}

	s.cursor = op.position
	return nil
}

func (s *Sink) truncate(op Operation) error {
	if op.size < 0 {
		return syntaxErrorf("truncate requires a size argument")
	}

	if op.size > MaxFileSize {
		return &FileTooLargeError{Size: op.size}
	}

	content := s.file.Content
	if op.size <= content.Len() {
		s.file.setContent(content.Slice(0, op.size))
	} else {
		s.file.setContent(bytebuf.Concat(content, bytebuf.Zeros(op.size-content.Len())))
	}

	if s.cursor > op.size {
		s.cursor = op.size
	}

	return nil
}

// endOf returns pos+n, saturating at math.MaxInt64.
func endOf(pos, n int64) int64 {
	if pos > math.MaxInt64-n {
		return math.MaxInt64
	}
	return pos + n
}

func baseName(p string) string {
	_, name := gateway.SplitPath(p)
	return name
}
