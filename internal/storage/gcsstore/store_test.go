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

package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/storage"
	storetesting "github.com/fairdatasociety/podfs/internal/storage/fake/testing"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

const testBucket = "podfs-test-bucket"

func createFakeServer(t *testing.T, objects ...fakestorage.Object) *fakestorage.Server {
	t.Helper()
	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{
		InitialObjects: objects,
		NoListener:     true,
	})
	require.NoError(t, err)
	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: testBucket})
	t.Cleanup(server.Stop)
	return server
}

func TestStore(t *testing.T) {
	for _, prefix := range []string{"", "podfs/data"} {
		t.Run(fmt.Sprintf("prefix=%q", prefix), func(t *testing.T) {
			storetesting.RunStoreTests(t, func(t *testing.T) storetesting.StoreTestDeps {
				server := createFakeServer(t)
				return storetesting.StoreTestDeps{Store: New(server.Client(), testBucket, prefix)}
			})
		})
	}
}

func TestObjectsLandUnderPrefix(t *testing.T) {
	ctx := context.Background()
	server := createFakeServer(t)
	s := New(server.Client(), testBucket, "/root/")

	require.NoError(t, s.Put(ctx, "blobs/abc", []byte("payload")))

	obj, err := server.GetObject(testBucket, "root/blobs/abc")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(obj.Content))
}

func TestReadsPreexistingObject(t *testing.T) {
	ctx := context.Background()
	server := createFakeServer(t, fakestorage.Object{
		ObjectAttrs: fakestorage.ObjectAttrs{
			BucketName: testBucket,
			Name:       "pods/p/index.cbor",
		},
		Content: []byte("index"),
	})
	s := New(server.Client(), testBucket, "")

	data, err := s.Get(ctx, "pods/p/index.cbor")

	require.NoError(t, err)
	assert.Equal(t, "index", string(data))
}

func TestGetGCSError(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		notFound    bool
		passthrough bool
	}{
		{name: "nil", err: nil},
		{name: "ObjectNotExist", err: storage.ErrObjectNotExist, notFound: true},
		{name: "BucketNotExist", err: storage.ErrBucketNotExist, notFound: true},
		{name: "Http404", err: &googleapi.Error{Code: http.StatusNotFound}, notFound: true},
		{name: "Http500", err: &googleapi.Error{Code: http.StatusInternalServerError}, passthrough: true},
		{name: "Other", err: errors.New("boom"), passthrough: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := getGCSError(tc.err)

			switch {
			case tc.err == nil:
				assert.NoError(t, got)
			case tc.notFound:
				var nfe *gateway.NotFoundError
				require.ErrorAs(t, got, &nfe)
				assert.ErrorIs(t, got, tc.err)
			case tc.passthrough:
				assert.Equal(t, tc.err, got)
			}
		})
	}
}
