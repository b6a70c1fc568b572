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

// Package bytebuf provides an immutable in-memory byte range.
package bytebuf

// Buffer is an immutable byte range. Operations that would change the
// content return a new Buffer instead; no Buffer ever shares a backing array
// that a caller can write to.
//
// The zero value is an empty buffer.
type Buffer struct {
	b []byte
}

// New returns a buffer holding a copy of p.
func New(p []byte) Buffer {
	if len(p) == 0 {
		return Buffer{}
	}

	return Buffer{b: clone(p)}
}

// Zeros returns a buffer of n zero bytes. Negative n is treated as zero.
func Zeros(n int64) Buffer {
	if n <= 0 {
		return Buffer{}
	}

	return Buffer{b: make([]byte, n)}
}

// Len returns the number of bytes in the buffer.
func (buf Buffer) Len() int64 {
	return int64(len(buf.b))
}

// Bytes returns a copy of the buffer's content.
func (buf Buffer) Bytes() []byte {
	return clone(buf.b)
}

// Slice returns the half-open range [start, end). Both bounds are clamped
// to [0, Len()], and an inverted range yields an empty buffer. Slice never
// panics.
func (buf Buffer) Slice(start, end int64) Buffer {
	size := buf.Len()
	start = clamp(start, 0, size)
	end = clamp(end, 0, size)
	if end <= start {
		return Buffer{}
	}

	// The result shares no array with buf, so later concatenation cannot
	// write through into it.
	return Buffer{b: clone(buf.b[start:end])}
}

// Concat returns a new buffer holding the parts back to back. None of the
// parts is modified.
func Concat(parts ...Buffer) Buffer {
	var total int64
	for _, p := range parts {
		total += p.Len()
	}

	if total == 0 {
		return Buffer{}
	}

	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p.b...)
	}

	return Buffer{b: out}
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func clone(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
