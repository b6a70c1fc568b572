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

package fake

import (
	"context"
	"testing"

	storetesting "github.com/fairdatasociety/podfs/internal/storage/fake/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetesting.RunStoreTests(t, func(t *testing.T) storetesting.StoreTestDeps {
		return storetesting.StoreTestDeps{Store: NewStore()}
	})
}

func TestStoreCountsCalls(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Put(ctx, "a", []byte("x")))
	_, _ = s.Get(ctx, "a")
	_, _ = s.Get(ctx, "b")
	_, _ = s.Has(ctx, "a")
	_ = s.Delete(ctx, "a")

	assert.Equal(t, int64(1), s.PutCount())
	assert.Equal(t, int64(2), s.GetCount())
	assert.Equal(t, int64(1), s.HasCount())
	assert.Equal(t, int64(1), s.DeleteCount())
	assert.Equal(t, 0, s.Len())
}

func TestStoreRejectsBadKeys(t *testing.T) {
	s := NewStore()

	assert.Error(t, s.Put(context.Background(), "/abs", []byte("x")))
	assert.Empty(t, s.Keys())
}
