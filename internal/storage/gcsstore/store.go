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

// Package gcsstore provides an object store on a Google Cloud Storage
// bucket.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
	"google.golang.org/api/option"
)

// Store is an objstore.Store keeping each object as a GCS object named
// prefix/key.
type Store struct {
	bucket *storage.BucketHandle
	name   string
	prefix string
}

var _ objstore.Store = (*Store)(nil)

// NewClient returns a storage client. When customEndpoint is set the client
// talks to it without authentication, as used for local emulators.
func NewClient(ctx context.Context, customEndpoint string) (*storage.Client, error) {
	var opts []option.ClientOption
	if customEndpoint != "" {
		opts = append(opts, option.WithEndpoint(customEndpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return client, nil
}

// New returns a store on bucket, placing objects under prefix.
func New(client *storage.Client, bucket string, prefix string) *Store {
	return &Store{
		bucket: client.Bucket(bucket),
		name:   bucket,
		prefix: prefix,
	}
}

func (s *Store) object(key string) (*storage.ObjectHandle, error) {
	if err := objstore.ValidateKey(key); err != nil {
		return nil, err
	}
	return s.bucket.Object(objstore.JoinPrefix(s.prefix, key)), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.object(key)
	if err != nil {
		return nil, err
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewReader(%s/%s): %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}

	w := obj.NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	// Objects are written in one request.
	w.ChunkSize = 0

	if _, err = w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s/%s: %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close %s/%s: %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	obj, err := s.object(key)
	if err != nil {
		return false, err
	}

	_, err = obj.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Attrs(%s/%s): %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}

	if err = obj.Delete(ctx); err != nil {
		return fmt.Errorf("Delete(%s/%s): %w", s.name, obj.ObjectName(), getGCSError(err))
	}
	return nil
}
