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

// Package lrucache provides a size-bounded LRU cache.
package lrucache

import (
	"container/list"
	"fmt"
	"reflect"
	"sync"
)

// An LRU cache for values indexed by string keys, bounded by the sum of the
// values' sizes rather than their count. Safe for concurrent use.
type Cache struct {
	/////////////////////////
	// Constant data
	/////////////////////////

	// INVARIANT: capacity > 0
	capacity uint64

	/////////////////////////
	// Mutable state
	/////////////////////////

	// Guards all the fields below.
	mu sync.Mutex

	// List of cache entries, with least recently used at the tail.
	//
	// INVARIANT: Each element is of type entry
	entries list.List

	// Index of elements by key.
	//
	// INVARIANT: For each k, v: v.Value.(entry).key == k
	// INVARIANT: Contains all and only the elements of entries
	index map[string]*list.Element

	// INVARIANT: usedSize is the sum of the sizes of all entries
	// INVARIANT: usedSize <= capacity
	usedSize uint64
}

type ValueType interface {
	Size() uint64
}

type entry struct {
	key   string
	value ValueType
}

// New returns a cache holding values whose sizes sum to at most capacity,
// which must be greater than zero.
func New(capacity uint64) *Cache {
	if capacity == 0 {
		panic("lrucache: capacity must be positive")
	}

	return &Cache{
		capacity: capacity,
		index:    make(map[string]*list.Element),
	}
}

// CheckInvariants panics if any internal invariant has been violated.
func (c *Cache) CheckInvariants() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !(c.usedSize <= c.capacity) {
		panic(fmt.Sprintf("Used size %v over capacity %v", c.usedSize, c.capacity))
	}

	var sum uint64
	for e := c.entries.Front(); e != nil; e = e.Next() {
		en, ok := e.Value.(entry)
		if !ok {
			panic(fmt.Sprintf("Unexpected element type: %v", reflect.TypeOf(e.Value)))
		}
		if c.index[en.key] != e {
			panic(fmt.Sprintf("Mismatch for key %v", en.key))
		}
		sum += en.value.Size()
	}

	if c.entries.Len() != len(c.index) {
		panic(fmt.Sprintf("Length mismatch: %v vs. %v", c.entries.Len(), len(c.index)))
	}
	if sum != c.usedSize {
		panic(fmt.Sprintf("Used size %v, entries sum to %v", c.usedSize, sum))
	}
}

// LOCKS_REQUIRED(c.mu)
func (c *Cache) evictOne() ValueType {
	e := c.entries.Back()
	en := e.Value.(entry)

	c.usedSize -= en.value.Size()
	c.entries.Remove(e)
	delete(c.index, en.key)

	return en.value
}

////////////////////////////////////////////////////////////////////////
// Cache interface
////////////////////////////////////////////////////////////////////////

// Insert the supplied value, replacing any previous entry for key, and
// return the values evicted to make room. A value larger than the capacity
// is not stored. The value must be non-nil.
func (c *Cache) Insert(key string, value ValueType) []ValueType {
	if value == nil {
		panic("nil values are not supported")
	}
	if value.Size() > c.capacity {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.index[key]; ok {
		c.usedSize -= e.Value.(entry).value.Size()
		e.Value = entry{key, value}
		c.entries.MoveToFront(e)
	} else {
		c.index[key] = c.entries.PushFront(entry{key, value})
	}
	c.usedSize += value.Size()

	// Evict until we're at or below capacity.
	var evicted []ValueType
	for c.usedSize > c.capacity {
		evicted = append(evicted, c.evictOne())
	}

	return evicted
}

// Erase any entry for the supplied key, returning it or nil.
func (c *Cache) Erase(key string) ValueType {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.index[key]
	if e == nil {
		return nil
	}

	en := e.Value.(entry)
	c.usedSize -= en.value.Size()
	delete(c.index, key)
	c.entries.Remove(e)

	return en.value
}

// LookUp returns the value for key, marking it most recently used, or nil.
func (c *Cache) LookUp(key string) ValueType {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.index[key]
	if e == nil {
		return nil
	}

	c.entries.MoveToFront(e)
	return e.Value.(entry).value
}

// UsedSize returns the sum of the sizes of the cached values.
func (c *Cache) UsedSize() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.usedSize
}

// Len returns the number of cached values.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}
