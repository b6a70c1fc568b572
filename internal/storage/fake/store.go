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

// Package fake provides an in-memory object store.
package fake

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
)

// Store is a map-backed objstore.Store that also counts calls, for tests
// that need to observe how a component talks to its storage.
type Store struct {
	mu sync.RWMutex

	// GUARDED_BY(mu)
	objects map[string][]byte

	gets    atomic.Int64
	puts    atomic.Int64
	hases   atomic.Int64
	deletes atomic.Int64
}

var _ objstore.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.gets.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, &gateway.NotFoundError{Err: fmt.Errorf("object %q not found", key)}
	}
	return clone(data), nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	s.puts.Add(1)
	if err := objstore.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = clone(data)
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	s.hases.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[key]
	return ok, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.deletes.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return &gateway.NotFoundError{Err: fmt.Errorf("object %q not found", key)}
	}
	delete(s.objects, key)
	return nil
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) GetCount() int64    { return s.gets.Load() }
func (s *Store) PutCount() int64    { return s.puts.Load() }
func (s *Store) HasCount() int64    { return s.hases.Load() }
func (s *Store) DeleteCount() int64 { return s.deletes.Load() }

func clone(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
