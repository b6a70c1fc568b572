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

// Tests registered by RunStoreTests.

package testing

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestDeps are the collaborators a conformance run needs.
type StoreTestDeps struct {
	// A fresh, empty store.
	Store objstore.Store
}

// StoreTest checks the behaviour every objstore.Store must share.
type StoreTest struct {
	suite.Suite
	makeDeps func(t *testing.T) StoreTestDeps

	ctx   context.Context
	store objstore.Store
}

// RunStoreTests runs the conformance suite against stores built by makeDeps.
func RunStoreTests(t *testing.T, makeDeps func(t *testing.T) StoreTestDeps) {
	suite.Run(t, &StoreTest{makeDeps: makeDeps})
}

func (t *StoreTest) SetupTest() {
	t.ctx = context.Background()
	t.store = t.makeDeps(t.T()).Store
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func (t *StoreTest) put(key string, data string) {
	require.NoError(t.T(), t.store.Put(t.ctx, key, []byte(data)))
}

func (t *StoreTest) assertMissing(key string) {
	ok, err := t.store.Has(t.ctx, key)
	require.NoError(t.T(), err)
	assert.False(t.T(), ok, "key %q", key)

	_, err = t.store.Get(t.ctx, key)
	var nfe *gateway.NotFoundError
	assert.ErrorAs(t.T(), err, &nfe, "key %q", key)
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (t *StoreTest) TestGetMissing() {
	t.assertMissing("blobs/nothing-here")
}

func (t *StoreTest) TestPutThenGet() {
	t.put("blobs/a", "taco")

	data, err := t.store.Get(t.ctx, "blobs/a")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), "taco", string(data))
	ok, err := t.store.Has(t.ctx, "blobs/a")
	require.NoError(t.T(), err)
	assert.True(t.T(), ok)
}

func (t *StoreTest) TestEmptyObject() {
	t.put("pods/p/index.cbor", "")

	data, err := t.store.Get(t.ctx, "pods/p/index.cbor")

	require.NoError(t.T(), err)
	assert.Empty(t.T(), data)
}

func (t *StoreTest) TestLargeObject() {
	large := bytes.Repeat([]byte("0123456789abcdef"), 1<<14)
	require.NoError(t.T(), t.store.Put(t.ctx, "blobs/large", large))

	data, err := t.store.Get(t.ctx, "blobs/large")

	require.NoError(t.T(), err)
	assert.True(t.T(), bytes.Equal(large, data))
}

func (t *StoreTest) TestPutOverwrites() {
	t.put("k", "burrito")
	t.put("k", "enchilada")

	data, err := t.store.Get(t.ctx, "k")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), "enchilada", string(data))
}

func (t *StoreTest) TestPutDoesNotRetainCallerBuffer() {
	buf := []byte("queso")
	require.NoError(t.T(), t.store.Put(t.ctx, "k", buf))
	buf[0] = 'X'

	data, err := t.store.Get(t.ctx, "k")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), "queso", string(data))
}

func (t *StoreTest) TestKeysAreIndependent() {
	t.put("a/b", "1")
	t.put("a/c", "2")

	require.NoError(t.T(), t.store.Delete(t.ctx, "a/b"))

	t.assertMissing("a/b")
	data, err := t.store.Get(t.ctx, "a/c")
	require.NoError(t.T(), err)
	assert.Equal(t.T(), "2", string(data))
}

func (t *StoreTest) TestDeleteMissing() {
	err := t.store.Delete(t.ctx, "nope")

	var nfe *gateway.NotFoundError
	assert.ErrorAs(t.T(), err, &nfe)
}

func (t *StoreTest) TestConcurrentPuts() {
	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- t.store.Put(t.ctx, fmt.Sprintf("blobs/%02d", i), []byte(fmt.Sprint(i)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t.T(), err)
	}
	for i := range n {
		data, err := t.store.Get(t.ctx, fmt.Sprintf("blobs/%02d", i))
		require.NoError(t.T(), err)
		assert.Equal(t.T(), fmt.Sprint(i), string(data))
	}
}
