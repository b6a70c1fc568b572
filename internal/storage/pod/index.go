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

package pod

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fxamacker/cbor/v2"
)

// indexEntry is the stored form of one path in a pod. The root directory is
// implicit and never stored.
type indexEntry struct {
	Kind      gateway.EntryKind `cbor:"kind"`
	Reference []byte            `cbor:"ref,omitempty"`
	Size      int64             `cbor:"size"`
	Mtime     time.Time         `cbor:"mtime"`
}

// index maps cleaned paths to their entries.
type index map[string]indexEntry

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding: the same index always produces the same
	// bytes, so unchanged pods rewrite identical objects.
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("pod: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("pod: CBOR decoder initialization failed: " + err.Error())
	}
}

func (idx index) lookup(p string) (indexEntry, bool) {
	if p == gateway.RootPath {
		return indexEntry{Kind: gateway.KindDirectory}, true
	}

	e, ok := idx[p]
	return e, ok
}

// children returns the paths directly below dir, sorted.
func (idx index) children(dir string) []string {
	var out []string
	for p := range idx {
		if parent, _ := gateway.SplitPath(p); parent == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (idx index) entry(p string, e indexEntry) gateway.Entry {
	_, name := gateway.SplitPath(p)
	out := gateway.Entry{
		Name:  name,
		Path:  p,
		Kind:  e.Kind,
		Size:  e.Size,
		Mtime: e.Mtime,
	}
	copy(out.Reference[:], e.Reference)
	return out
}

func (s *Store) loadIndex(ctx context.Context, pod string) (index, error) {
	raw, err := s.objects.Get(ctx, indexKey(pod))
	if gateway.IsNotFound(err) {
		return make(index), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading index of pod %q: %w", pod, err)
	}

	idx := make(index)
	if err := decMode.Unmarshal(raw, &idx); err != nil {
		return nil, &gateway.CorruptionError{Err: fmt.Errorf("decoding index of pod %q: %w", pod, err)}
	}
	return idx, nil
}

func (s *Store) saveIndex(ctx context.Context, pod string, idx index) error {
	raw, err := encMode.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding index of pod %q: %w", pod, err)
	}

	if err := s.objects.Put(ctx, indexKey(pod), raw); err != nil {
		return fmt.Errorf("storing index of pod %q: %w", pod, err)
	}
	return nil
}
