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

package gateway

import (
	"context"
	"time"
)

// EntryKind distinguishes files from directories within a pod.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// Entry describes one file or directory within a pod.
type Entry struct {
	// Base name of the entry. Empty for the pod root.
	Name string

	// Cleaned pod-relative path, always starting with "/".
	Path string

	Kind EntryKind

	// Content address of a file's bytes. Zero for directories.
	Reference Reference

	// Size in bytes of a file's content. Zero for directories.
	Size int64

	Mtime time.Time
}

// Gateway is the storage backend through which pods are read and written.
// Paths are pod-relative and slash separated; see CleanPath.
//
// Implementations must be safe for concurrent access.
type Gateway interface {
	// Report whether content with the given address is retrievable.
	Exists(ctx context.Context, ref Reference) (bool, error)

	// Store data as the complete content of the file at path, replacing any
	// previous content, and return the content address. The parent directory
	// must exist.
	Upload(ctx context.Context, pod string, path string, data []byte) (Reference, error)

	// Fetch the complete content of the file at path. A missing file yields
	// *NotFoundError.
	Download(ctx context.Context, pod string, path string) ([]byte, error)

	// Return the entry at path. A missing path yields *NotFoundError.
	Stat(ctx context.Context, pod string, path string) (*Entry, error)

	// List the direct children of the directory at dir.
	ReadDir(ctx context.Context, pod string, dir string) ([]Entry, error)

	// Create the directory at dir. Creating an existing directory is not an
	// error. The parent directory must exist.
	MakeDir(ctx context.Context, pod string, dir string) error

	// Remove the file or empty directory at path.
	Delete(ctx context.Context, pod string, path string) error
}

// Has probes gw for ref, treating any failure as "does not exist".
func Has(ctx context.Context, gw Gateway, ref Reference) bool {
	ok, err := gw.Exists(ctx, ref)
	if err != nil {
		return false
	}

	return ok
}
