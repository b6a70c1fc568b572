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
	"testing"
	"time"

	"github.com/fairdatasociety/podfs/internal/storage/fake"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/jacobsa/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testPod = "docs"

type StoreTest struct {
	suite.Suite
	ctx     context.Context
	clock   timeutil.SimulatedClock
	objects *fake.Store
	store   *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTest))
}

func (t *StoreTest) SetupTest() {
	t.ctx = context.Background()
	t.clock.SetTime(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	t.objects = fake.NewStore()
	t.store = New(t.objects, &t.clock)
}

func (t *StoreTest) TestRootAlwaysExists() {
	e, err := t.store.Stat(t.ctx, testPod, "/")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), gateway.KindDirectory, e.Kind)
	assert.Equal(t.T(), "/", e.Path)
	assert.Equal(t.T(), "", e.Name)
}

func (t *StoreTest) TestUploadThenDownload() {
	ref, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("hello"))
	require.NoError(t.T(), err)
	assert.Equal(t.T(), ComputeReference([]byte("hello")), ref)

	data, err := t.store.Download(t.ctx, testPod, "a.txt")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), []byte("hello"), data)
}

func (t *StoreTest) TestUploadRecordsEntry() {
	ref, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("hello"))
	require.NoError(t.T(), err)

	e, err := t.store.Stat(t.ctx, testPod, "/a.txt")

	require.NoError(t.T(), err)
	assert.Equal(t.T(), "a.txt", e.Name)
	assert.Equal(t.T(), gateway.KindFile, e.Kind)
	assert.Equal(t.T(), int64(5), e.Size)
	assert.Equal(t.T(), ref, e.Reference)
	assert.True(t.T(), e.Mtime.Equal(t.clock.Now()))
}

func (t *StoreTest) TestUploadReplacesContent() {
	_, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("one"))
	require.NoError(t.T(), err)
	t.clock.AdvanceTime(time.Minute)

	_, err = t.store.Upload(t.ctx, testPod, "/a.txt", []byte("second"))
	require.NoError(t.T(), err)

	data, err := t.store.Download(t.ctx, testPod, "/a.txt")
	require.NoError(t.T(), err)
	assert.Equal(t.T(), []byte("second"), data)
	e, err := t.store.Stat(t.ctx, testPod, "/a.txt")
	require.NoError(t.T(), err)
	assert.True(t.T(), e.Mtime.Equal(t.clock.Now()))
}

func (t *StoreTest) TestIdenticalContentIsStoredOnce() {
	ref1, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("same"))
	require.NoError(t.T(), err)
	ref2, err := t.store.Upload(t.ctx, "other", "/b.txt", []byte("same"))
	require.NoError(t.T(), err)

	assert.Equal(t.T(), ref1, ref2)
	assert.Contains(t.T(), t.objects.Keys(), blobKey(ref1))
	// One blob plus one index per pod.
	assert.Equal(t.T(), 3, t.objects.Len())
}

func (t *StoreTest) TestExists() {
	ref, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("x"))
	require.NoError(t.T(), err)

	ok, err := t.store.Exists(t.ctx, ref)
	require.NoError(t.T(), err)
	assert.True(t.T(), ok)

	ok, err = t.store.Exists(t.ctx, ComputeReference([]byte("never stored")))
	require.NoError(t.T(), err)
	assert.False(t.T(), ok)
}

func (t *StoreTest) TestUploadRequiresParent() {
	_, err := t.store.Upload(t.ctx, testPod, "/missing/a.txt", []byte("x"))

	var nfe *gateway.NotFoundError
	assert.ErrorAs(t.T(), err, &nfe)
}

func (t *StoreTest) TestUploadOverDirectoryFails() {
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/d"))

	_, err := t.store.Upload(t.ctx, testPod, "/d", []byte("x"))

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestUploadToRootFails() {
	_, err := t.store.Upload(t.ctx, testPod, "/", []byte("x"))

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestInvalidPodName() {
	_, err := t.store.Upload(t.ctx, "a/b", "/a.txt", []byte("x"))
	assert.Error(t.T(), err)

	_, err = t.store.Stat(t.ctx, "", "/")
	assert.Error(t.T(), err)
}

func (t *StoreTest) TestDownloadMissing() {
	_, err := t.store.Download(t.ctx, testPod, "/nope")

	assert.True(t.T(), gateway.IsNotFound(err))
}

func (t *StoreTest) TestDownloadDirectoryFails() {
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/d"))

	_, err := t.store.Download(t.ctx, testPod, "/d")

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestDownloadDetectsCorruption() {
	ref, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("original"))
	require.NoError(t.T(), err)
	require.NoError(t.T(), t.objects.Put(t.ctx, blobKey(ref), []byte("tampered")))

	_, err = t.store.Download(t.ctx, testPod, "/a.txt")

	var ce *gateway.CorruptionError
	assert.ErrorAs(t.T(), err, &ce)
}

func (t *StoreTest) TestCorruptIndex() {
	require.NoError(t.T(), t.objects.Put(t.ctx, indexKey(testPod), []byte{0xff, 0x00}))

	_, err := t.store.Stat(t.ctx, testPod, "/a.txt")

	var ce *gateway.CorruptionError
	assert.ErrorAs(t.T(), err, &ce)
}

func (t *StoreTest) TestMakeDirIsIdempotent() {
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/d"))
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/d/"))
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/"))

	e, err := t.store.Stat(t.ctx, testPod, "/d")
	require.NoError(t.T(), err)
	assert.Equal(t.T(), gateway.KindDirectory, e.Kind)
}

func (t *StoreTest) TestMakeDirRequiresParent() {
	err := t.store.MakeDir(t.ctx, testPod, "/a/b")

	assert.True(t.T(), gateway.IsNotFound(err))
}

func (t *StoreTest) TestMakeDirOverFileFails() {
	_, err := t.store.Upload(t.ctx, testPod, "/f", []byte("x"))
	require.NoError(t.T(), err)

	err = t.store.MakeDir(t.ctx, testPod, "/f")

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestReadDirListsDirectChildrenSorted() {
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/sub"))
	for _, p := range []string{"/b.txt", "/a.txt", "/sub/deep.txt"} {
		_, err := t.store.Upload(t.ctx, testPod, p, []byte(p))
		require.NoError(t.T(), err)
	}

	entries, err := t.store.ReadDir(t.ctx, testPod, "/")
	require.NoError(t.T(), err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t.T(), []string{"a.txt", "b.txt", "sub"}, names)

	entries, err = t.store.ReadDir(t.ctx, testPod, "/sub")
	require.NoError(t.T(), err)
	require.Len(t.T(), entries, 1)
	assert.Equal(t.T(), "/sub/deep.txt", entries[0].Path)
}

func (t *StoreTest) TestReadDirOfFileFails() {
	_, err := t.store.Upload(t.ctx, testPod, "/f", []byte("x"))
	require.NoError(t.T(), err)

	_, err = t.store.ReadDir(t.ctx, testPod, "/f")

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestReadDirOfEmptyPod() {
	entries, err := t.store.ReadDir(t.ctx, testPod, "/")

	require.NoError(t.T(), err)
	assert.Empty(t.T(), entries)
}

func (t *StoreTest) TestDeleteFile() {
	_, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("x"))
	require.NoError(t.T(), err)

	require.NoError(t.T(), t.store.Delete(t.ctx, testPod, "/a.txt"))

	_, err = t.store.Stat(t.ctx, testPod, "/a.txt")
	assert.True(t.T(), gateway.IsNotFound(err))
}

func (t *StoreTest) TestDeleteMissing() {
	err := t.store.Delete(t.ctx, testPod, "/a.txt")

	assert.True(t.T(), gateway.IsNotFound(err))
}

func (t *StoreTest) TestDeleteNonEmptyDirectory() {
	require.NoError(t.T(), t.store.MakeDir(t.ctx, testPod, "/d"))
	_, err := t.store.Upload(t.ctx, testPod, "/d/a.txt", []byte("x"))
	require.NoError(t.T(), err)

	err = t.store.Delete(t.ctx, testPod, "/d")

	var nee *gateway.NotEmptyError
	assert.ErrorAs(t.T(), err, &nee)

	require.NoError(t.T(), t.store.Delete(t.ctx, testPod, "/d/a.txt"))
	assert.NoError(t.T(), t.store.Delete(t.ctx, testPod, "/d"))
}

func (t *StoreTest) TestDeleteRootFails() {
	err := t.store.Delete(t.ctx, testPod, "/")

	var tme *gateway.TypeMismatchError
	assert.ErrorAs(t.T(), err, &tme)
}

func (t *StoreTest) TestPodsAreIsolated() {
	_, err := t.store.Upload(t.ctx, testPod, "/a.txt", []byte("x"))
	require.NoError(t.T(), err)

	_, err = t.store.Stat(t.ctx, "other", "/a.txt")

	assert.True(t.T(), gateway.IsNotFound(err))
}

func TestComputeReferenceIsKeyed(t *testing.T) {
	a := ComputeReference([]byte("abc"))
	b := ComputeReference([]byte("abc"))
	c := ComputeReference([]byte("abd"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
}

func TestIndexEncodingIsDeterministic(t *testing.T) {
	idx := index{
		"/b": {Kind: gateway.KindFile, Reference: []byte{1}, Size: 1},
		"/a": {Kind: gateway.KindDirectory},
	}

	first, err := encMode.Marshal(idx)
	require.NoError(t, err)
	second, err := encMode.Marshal(idx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCachedDownloadSkipsBlobFetch(t *testing.T) {
	ctx := context.Background()
	objects := fake.NewStore()
	s := NewCached(objects, timeutil.RealClock(), 1<<20)
	_, err := s.Upload(ctx, testPod, "/a", []byte("cached"))
	require.NoError(t, err)

	before := objects.GetCount()
	data, err := s.Download(ctx, testPod, "/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), data)
	// Index and blob.
	assert.Equal(t, before+2, objects.GetCount())

	data[0] = 'X'
	again, err := s.Download(ctx, testPod, "/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), again)
	// Index only.
	assert.Equal(t, before+3, objects.GetCount())
}

func TestZeroCacheSizeDisablesCache(t *testing.T) {
	s := NewCached(fake.NewStore(), timeutil.RealClock(), 0)

	assert.Nil(t, s.blobs)
}
