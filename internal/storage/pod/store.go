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

// Package pod implements gateway.Gateway on top of an object store. File
// content is stored once per distinct value as a content-addressed blob;
// each pod's directory tree lives in a single index object.
package pod

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fairdatasociety/podfs/internal/lrucache"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
	"github.com/jacobsa/timeutil"
)

// Store is a gateway.Gateway keeping pods in an objstore.Store.
type Store struct {
	objects objstore.Store
	clock   timeutil.Clock

	// Verified blob content keyed by reference. Nil when caching is off.
	// Blobs are immutable, so entries never go stale.
	blobs *lrucache.Cache

	// Serializes read-modify-write cycles of pod indexes. Readers take it
	// shared so they never observe an index between load and save.
	mu sync.RWMutex
}

var _ gateway.Gateway = (*Store)(nil)

// New returns a gateway storing pods in objects, stamping modification times
// from clock.
func New(objects objstore.Store, clock timeutil.Clock) *Store {
	return &Store{
		objects: objects,
		clock:   clock,
	}
}

// NewCached is New with an in-memory cache of up to cacheBytes of downloaded
// content. A zero cacheBytes disables the cache.
func NewCached(objects objstore.Store, clock timeutil.Clock, cacheBytes uint64) *Store {
	s := New(objects, clock)
	if cacheBytes > 0 {
		s.blobs = lrucache.New(cacheBytes)
	}
	return s
}

type blob []byte

func (b blob) Size() uint64 {
	return uint64(len(b))
}

func validatePod(pod string) error {
	if pod == "" || pod == "." || pod == ".." || strings.ContainsAny(pod, "/\\") {
		return fmt.Errorf("invalid pod name %q", pod)
	}
	return nil
}

func notFoundf(format string, v ...any) error {
	return &gateway.NotFoundError{Err: fmt.Errorf(format, v...)}
}

func typeMismatchf(format string, v ...any) error {
	return &gateway.TypeMismatchError{Err: fmt.Errorf(format, v...)}
}

// requireDir checks that dir exists in idx and is a directory.
func requireDir(idx index, pod string, dir string) error {
	e, ok := idx.lookup(dir)
	if !ok {
		return notFoundf("%s:%s: no such directory", pod, dir)
	}
	if e.Kind != gateway.KindDirectory {
		return typeMismatchf("%s:%s: not a directory", pod, dir)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, ref gateway.Reference) (bool, error) {
	return s.objects.Has(ctx, blobKey(ref))
}

func (s *Store) Upload(ctx context.Context, pod string, path string, data []byte) (gateway.Reference, error) {
	if err := validatePod(pod); err != nil {
		return gateway.Reference{}, err
	}
	p := gateway.CleanPath(path)
	if p == gateway.RootPath {
		return gateway.Reference{}, typeMismatchf("%s:%s: cannot upload to the pod root", pod, p)
	}

	ref := ComputeReference(data)
	key := blobKey(ref)
	ok, err := s.objects.Has(ctx, key)
	if err != nil {
		return gateway.Reference{}, fmt.Errorf("Has(%s): %w", key, err)
	}
	if !ok {
		if err := s.objects.Put(ctx, key, data); err != nil {
			return gateway.Reference{}, fmt.Errorf("Put(%s): %w", key, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.loadIndex(ctx, pod)
	if err != nil {
		return gateway.Reference{}, err
	}

	parent, _ := gateway.SplitPath(p)
	if err := requireDir(idx, pod, parent); err != nil {
		return gateway.Reference{}, err
	}
	if e, ok := idx[p]; ok && e.Kind == gateway.KindDirectory {
		return gateway.Reference{}, typeMismatchf("%s:%s: is a directory", pod, p)
	}

	idx[p] = indexEntry{
		Kind:      gateway.KindFile,
		Reference: ref[:],
		Size:      int64(len(data)),
		Mtime:     s.clock.Now().UTC(),
	}
	if err := s.saveIndex(ctx, pod, idx); err != nil {
		return gateway.Reference{}, err
	}

	return ref, nil
}

func (s *Store) Download(ctx context.Context, pod string, path string) ([]byte, error) {
	entry, err := s.Stat(ctx, pod, path)
	if err != nil {
		return nil, err
	}
	if entry.Kind != gateway.KindFile {
		return nil, typeMismatchf("%s:%s: is a directory", pod, entry.Path)
	}

	if s.blobs != nil {
		if v := s.blobs.LookUp(entry.Reference.String()); v != nil {
			return bytes.Clone(v.(blob)), nil
		}
	}

	data, err := s.objects.Get(ctx, blobKey(entry.Reference))
	if err != nil {
		return nil, fmt.Errorf("%s:%s: fetching content %s: %w", pod, entry.Path, entry.Reference, err)
	}

	if got := ComputeReference(data); got != entry.Reference {
		return nil, &gateway.CorruptionError{
			Err: fmt.Errorf("%s:%s: content hashes to %s, expected %s", pod, entry.Path, got, entry.Reference),
		}
	}

	if s.blobs != nil {
		s.blobs.Insert(entry.Reference.String(), blob(bytes.Clone(data)))
	}
	return data, nil
}

func (s *Store) Stat(ctx context.Context, pod string, path string) (*gateway.Entry, error) {
	if err := validatePod(pod); err != nil {
		return nil, err
	}
	p := gateway.CleanPath(path)

	s.mu.RLock()
	idx, err := s.loadIndex(ctx, pod)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	e, ok := idx.lookup(p)
	if !ok {
		return nil, notFoundf("%s:%s: no such file or directory", pod, p)
	}

	entry := idx.entry(p, e)
	return &entry, nil
}

func (s *Store) ReadDir(ctx context.Context, pod string, dir string) ([]gateway.Entry, error) {
	if err := validatePod(pod); err != nil {
		return nil, err
	}
	d := gateway.CleanPath(dir)

	s.mu.RLock()
	idx, err := s.loadIndex(ctx, pod)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if err := requireDir(idx, pod, d); err != nil {
		return nil, err
	}

	children := idx.children(d)
	entries := make([]gateway.Entry, 0, len(children))
	for _, p := range children {
		entries = append(entries, idx.entry(p, idx[p]))
	}
	return entries, nil
}

func (s *Store) MakeDir(ctx context.Context, pod string, dir string) error {
	if err := validatePod(pod); err != nil {
		return err
	}
	d := gateway.CleanPath(dir)
	if d == gateway.RootPath {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.loadIndex(ctx, pod)
	if err != nil {
		return err
	}

	if e, ok := idx[d]; ok {
		if e.Kind != gateway.KindDirectory {
			return typeMismatchf("%s:%s: is a file", pod, d)
		}
		return nil
	}

	parent, _ := gateway.SplitPath(d)
	if err := requireDir(idx, pod, parent); err != nil {
		return err
	}

	idx[d] = indexEntry{
		Kind:  gateway.KindDirectory,
		Mtime: s.clock.Now().UTC(),
	}
	return s.saveIndex(ctx, pod, idx)
}

// Delete removes path from the pod index. Blobs are left in place since
// other paths or pods may share them.
func (s *Store) Delete(ctx context.Context, pod string, path string) error {
	if err := validatePod(pod); err != nil {
		return err
	}
	p := gateway.CleanPath(path)
	if p == gateway.RootPath {
		return typeMismatchf("%s:%s: cannot delete the pod root", pod, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.loadIndex(ctx, pod)
	if err != nil {
		return err
	}

	e, ok := idx[p]
	if !ok {
		return notFoundf("%s:%s: no such file or directory", pod, p)
	}
	if e.Kind == gateway.KindDirectory {
		if n := len(idx.children(p)); n > 0 {
			return &gateway.NotEmptyError{Err: fmt.Errorf("%s:%s: directory has %d entries", pod, p, n)}
		}
	}

	delete(idx, p)
	return s.saveIndex(ctx, pod, idx)
}
