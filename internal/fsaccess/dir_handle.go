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

package fsaccess

import (
	"context"
	"fmt"
	"sort"

	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"golang.org/x/sync/errgroup"
)

// Bounds the deletes in flight during a recursive RemoveEntry, per directory
// level.
const removeParallelism = 8

type GetDirectoryOptions struct {
	Create bool
}

type GetFileOptions struct {
	Create bool
}

type RemoveOptions struct {
	Recursive bool
}

// DirHandle refers to a directory of a pod.
type DirHandle struct {
	access *access
	name   string
	path   string
}

var _ Handle = (*DirHandle)(nil)

func (d *DirHandle) Name() string {
	return d.name
}

func (d *DirHandle) Kind() gateway.EntryKind {
	return gateway.KindDirectory
}

func (d *DirHandle) Path() string {
	return d.path
}

// IsSameEntry reports whether other refers to the same directory.
func (d *DirHandle) IsSameEntry(other *DirHandle) bool {
	return other != nil && d.access.pod == other.access.pod && d.path == other.path
}

// Entries lists the children of the directory: sub-directories first, then
// files, each group sorted by name.
func (d *DirHandle) Entries(ctx context.Context) ([]Handle, error) {
	listing, err := d.access.gw.ReadDir(ctx, d.access.pod, d.path)
	if err != nil {
		return nil, fmt.Errorf("ReadDir(%s): %w", d.path, err)
	}

	var dirs, files []gateway.Entry
	for _, e := range listing {
		if e.Kind == gateway.KindDirectory {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	byName := func(s []gateway.Entry) {
		sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	}
	byName(dirs)
	byName(files)

	out := make([]Handle, 0, len(listing))
	for _, e := range dirs {
		out = append(out, d.dirHandle(e.Name))
	}
	for _, e := range files {
		out = append(out, d.fileHandle(e.Name, e.Reference))
	}
	return out, nil
}

// GetDirectoryHandle returns the handle of the sub-directory name, creating
// it first when opts.Create is set.
func (d *DirHandle) GetDirectoryHandle(ctx context.Context, name string, opts GetDirectoryOptions) (*DirHandle, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	p := gateway.JoinPath(d.path, name)

	if opts.Create {
		if err := d.access.gw.MakeDir(ctx, d.access.pod, p); err != nil {
			return nil, fmt.Errorf("MakeDir(%s): %w", p, err)
		}
		return d.dirHandle(name), nil
	}

	e, err := d.access.gw.Stat(ctx, d.access.pod, p)
	if err != nil {
		return nil, fmt.Errorf("Stat(%s): %w", p, err)
	}
	if e.Kind != gateway.KindDirectory {
		return nil, &gateway.TypeMismatchError{Err: fmt.Errorf("%s is a file", p)}
	}
	return d.dirHandle(name), nil
}

// GetFileHandle returns the handle of the file name. With opts.Create an
// absent file is created empty.
func (d *DirHandle) GetFileHandle(ctx context.Context, name string, opts GetFileOptions) (*FileHandle, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	p := gateway.JoinPath(d.path, name)

	e, err := d.access.gw.Stat(ctx, d.access.pod, p)
	switch {
	case gateway.IsNotFound(err) && opts.Create:
		ref, err := d.access.gw.Upload(ctx, d.access.pod, p, []byte{})
		if err != nil {
			return nil, fmt.Errorf("Upload(%s): %w", p, err)
		}
		return d.fileHandle(name, ref), nil
	case err != nil:
		return nil, fmt.Errorf("Stat(%s): %w", p, err)
	}

	if e.Kind != gateway.KindFile {
		return nil, &gateway.TypeMismatchError{Err: fmt.Errorf("%s is a directory", p)}
	}
	return d.fileHandle(name, e.Reference), nil
}

// RemoveEntry deletes the child name. A non-empty directory is only removed
// when opts.Recursive is set.
func (d *DirHandle) RemoveEntry(ctx context.Context, name string, opts RemoveOptions) error {
	if err := validateName(name); err != nil {
		return err
	}
	p := gateway.JoinPath(d.path, name)

	if opts.Recursive {
		e, err := d.access.gw.Stat(ctx, d.access.pod, p)
		if err != nil {
			return fmt.Errorf("Stat(%s): %w", p, err)
		}
		if e.Kind == gateway.KindDirectory {
			return d.removeTree(ctx, p)
		}
	}

	if err := d.access.gw.Delete(ctx, d.access.pod, p); err != nil {
		return fmt.Errorf("Delete(%s): %w", p, err)
	}
	return nil
}

// removeTree deletes the children of dir concurrently, then dir itself.
func (d *DirHandle) removeTree(ctx context.Context, dir string) error {
	children, err := d.access.gw.ReadDir(ctx, d.access.pod, dir)
	if err != nil {
		return fmt.Errorf("ReadDir(%s): %w", dir, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(removeParallelism)
	for _, child := range children {
		group.Go(func() error {
			if child.Kind == gateway.KindDirectory {
				return d.removeTree(groupCtx, child.Path)
			}
			err := d.access.gw.Delete(groupCtx, d.access.pod, child.Path)
			// Already gone is what we wanted.
			if err != nil && !gateway.IsNotFound(err) {
				return fmt.Errorf("Delete(%s): %w", child.Path, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	err = d.access.gw.Delete(ctx, d.access.pod, dir)
	if err != nil && !gateway.IsNotFound(err) {
		return fmt.Errorf("Delete(%s): %w", dir, err)
	}
	return nil
}

func (d *DirHandle) dirHandle(name string) *DirHandle {
	return &DirHandle{
		access: d.access,
		name:   name,
		path:   gateway.JoinPath(d.path, name),
	}
}

func (d *DirHandle) fileHandle(name string, ref gateway.Reference) *FileHandle {
	return newFileHandle(d.access, gateway.JoinPath(d.path, name), ref)
}
