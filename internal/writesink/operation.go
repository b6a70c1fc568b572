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

package writesink

import (
	"fmt"
	"strings"
)

// OpKind identifies the variant held by an Operation.
type OpKind int

const (
	OpWrite OpKind = iota
	OpSeek
	OpTruncate
)

func (k OpKind) String() string {
	switch k {
	case OpWrite:
		return "write"
	case OpSeek:
		return "seek"
	case OpTruncate:
		return "truncate"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Operation is one step applied to a sink. Build it with Write, WriteAt, Seek
// or Truncate, or from a loosely shaped payload with ParseWriteParams.
type Operation struct {
	kind OpKind

	// For OpWrite and OpSeek.
	position    int64
	hasPosition bool

	// For OpWrite. A nil slice means the data argument is missing; an empty
	// non-nil slice is a valid zero-length write.
	data []byte

	// For OpTruncate.
	size int64
}

// Write returns a plain write of data at the sink's cursor.
func Write(data []byte) Operation {
	return Operation{kind: OpWrite, data: data}
}

// WriteAt returns a write of data that first moves the cursor to position.
func WriteAt(position int64, data []byte) Operation {
	return Operation{kind: OpWrite, position: position, hasPosition: true, data: data}
}

// Seek returns an operation moving the cursor to position.
func Seek(position int64) Operation {
	return Operation{kind: OpSeek, position: position, hasPosition: true}
}

// Truncate returns an operation resizing the file to size.
func Truncate(size int64) Operation {
	return Operation{kind: OpTruncate, size: size}
}

func (op Operation) Kind() OpKind {
	return op.kind
}

// Position returns the explicit position of a write or seek, if any.
func (op Operation) Position() (int64, bool) {
	return op.position, op.hasPosition
}

func (op Operation) Data() []byte {
	return op.data
}

func (op Operation) Size() int64 {
	return op.size
}

func (op Operation) String() string {
	switch op.kind {
	case OpWrite:
		if op.hasPosition {
			return fmt.Sprintf("write@%d(%d bytes)", op.position, len(op.data))
		}
		return fmt.Sprintf("write(%d bytes)", len(op.data))
	case OpSeek:
		return fmt.Sprintf("seek(%d)", op.position)
	case OpTruncate:
		return fmt.Sprintf("truncate(%d)", op.size)
	}
	return op.kind.String()
}

// WriteParams is the loosely shaped form of an operation, as received from
// callers that describe operations as records. Type is one of "write",
// "seek" or "truncate"; which of the other fields are required depends on it.
type WriteParams struct {
	Type     string
	Position *int64
	Data     []byte
	Size     *int64
}

// ParseWriteParams converts p into an Operation, rejecting missing or
// negative arguments with *SyntaxError.
func ParseWriteParams(p WriteParams) (Operation, error) {
	switch strings.ToLower(p.Type) {
	case "write":
		if p.Data == nil {
			return Operation{}, syntaxErrorf("write requires a data argument")
		}
		if p.Position == nil {
			return Write(p.Data), nil
		}
		if *p.Position < 0 {
			return Operation{}, syntaxErrorf("write position must be non-negative, got %d", *p.Position)
		}
		return WriteAt(*p.Position, p.Data), nil

	case "seek":
		if p.Position == nil || *p.Position < 0 {
			return Operation{}, syntaxErrorf("seek requires a position argument")
		}
		return Seek(*p.Position), nil

	case "truncate":
		if p.Size == nil || *p.Size < 0 {
			return Operation{}, syntaxErrorf("truncate requires a size argument")
		}
		return Truncate(*p.Size), nil
	}

	return Operation{}, syntaxErrorf("unknown operation type %q", p.Type)
}
