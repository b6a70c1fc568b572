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

package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storetesting "github.com/fairdatasociety/podfs/internal/storage/fake/testing"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	for _, codec := range []Codec{CodecNone, CodecZstd, CodecLZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			storetesting.RunStoreTests(t, func(t *testing.T) storetesting.StoreTestDeps {
				s, err := New(t.TempDir(), codec)
				require.NoError(t, err)
				return storetesting.StoreTestDeps{Store: s}
			})
		})
	}
}

func TestParseCodec(t *testing.T) {
	for name, expected := range map[string]Codec{"": CodecNone, "none": CodecNone, "zstd": CodecZstd, "lz4": CodecLZ4} {
		c, err := ParseCodec(name)
		require.NoError(t, err)
		assert.Equal(t, expected, c)
	}

	_, err := ParseCodec("gzip")
	assert.Error(t, err)
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	ctx := context.Background()
	data := []byte(strings.Repeat("podfs ", 4096))

	for _, codec := range []Codec{CodecZstd, CodecLZ4} {
		dir := t.TempDir()
		s, err := New(dir, codec)
		require.NoError(t, err)

		require.NoError(t, s.Put(ctx, "blobs/x", data))

		raw, err := os.ReadFile(filepath.Join(dir, "blobs", "x"))
		require.NoError(t, err)
		assert.Equal(t, byte(codec), raw[0])
		assert.Less(t, len(raw), len(data)/4, "codec %v", codec)
	}
}

func TestObjectsReadableAfterCodecChange(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	zs, err := New(dir, CodecZstd)
	require.NoError(t, err)
	require.NoError(t, zs.Put(ctx, "k", []byte("written with zstd")))

	plain, err := New(dir, CodecNone)
	require.NoError(t, err)
	data, err := plain.Get(ctx, "k")

	require.NoError(t, err)
	assert.Equal(t, "written with zstd", string(data))
}

func TestCorruptObject(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir, CodecNone)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"), []byte{0x7f, 1, 2}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0644))

	_, err = s.Get(ctx, "bad")
	var ce *gateway.CorruptionError
	assert.ErrorAs(t, err, &ce)

	_, err = s.Get(ctx, "empty")
	assert.ErrorAs(t, err, &ce)
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir, CodecNone)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "a/b", []byte("1")))
	require.NoError(t, s.Put(ctx, "a/b", []byte("2")))

	entries, err := os.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Name())
}

func TestRejectsEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir(), CodecNone)
	require.NoError(t, err)

	assert.Error(t, s.Put(context.Background(), "../outside", []byte("x")))
}
