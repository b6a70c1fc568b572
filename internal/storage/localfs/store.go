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

// Package localfs provides an object store keeping one file per object
// under a root directory.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/storage/objstore"
	"github.com/google/uuid"
)

const tempPrefix = ".podfs-tmp-"

// Store is an objstore.Store on the local file system. Writes go to a
// uniquely named temporary file that is renamed into place, so readers
// never observe a partially written object.
type Store struct {
	dir   string
	codec Codec
}

var _ objstore.Store = (*Store)(nil)

// New returns a store rooted at dir, creating it if needed. New objects are
// encoded with codec.
func New(dir string, codec Codec) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("MkdirAll(%q): %w", dir, err)
	}

	return &Store{dir: dir, codec: codec}, nil
}

func (s *Store) objectPath(key string) (string, error) {
	if err := objstore.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

func notFound(key string, err error) error {
	return &gateway.NotFoundError{Err: fmt.Errorf("object %q: %w", key, err)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.objectPath(key)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key, err)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadFile(%q): %w", p, err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, &gateway.CorruptionError{Err: fmt.Errorf("object %q: %w", key, err)}
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) (err error) {
	p, err := s.objectPath(key)
	if err != nil {
		return err
	}

	encoded, err := encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	parent := filepath.Dir(p)
	if err = os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("MkdirAll(%q): %w", parent, err)
	}

	tmp := filepath.Join(parent, tempPrefix+uuid.NewString())
	if err = os.WriteFile(tmp, encoded, 0644); err != nil {
		return fmt.Errorf("WriteFile(%q): %w", tmp, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = os.Rename(tmp, p); err != nil {
		return fmt.Errorf("Rename(%q): %w", p, err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	p, err := s.objectPath(key)
	if err != nil {
		return false, err
	}

	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Stat(%q): %w", p, err)
	}
	return fi.Mode().IsRegular(), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.objectPath(key)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(key, err)
	}
	if err != nil {
		return fmt.Errorf("Remove(%q): %w", p, err)
	}
	return nil
}
