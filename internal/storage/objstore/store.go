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

// Package objstore defines the keyed object storage that pods are built on.
package objstore

import (
	"context"
	"fmt"
	"strings"
)

// Store holds opaque byte objects under slash separated keys.
//
// Get and Delete of a missing key return *gateway.NotFoundError.
// Implementations must be safe for concurrent access.
type Store interface {
	// Return the full content stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Store data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte) error

	// Report whether an object is stored under key.
	Has(ctx context.Context, key string) (bool, error)

	// Remove the object stored under key.
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that no backend can store safely.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty object key")
	}
	if strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return fmt.Errorf("object key %q must not start or end with '/'", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid object key %q", key)
		}
	}
	return nil
}

// JoinPrefix prepends prefix to key, treating prefix as a directory.
func JoinPrefix(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
