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
	"path"
	"strings"
)

// RootPath is the path of a pod's root directory.
const RootPath = "/"

// CleanPath returns the canonical form of a pod-relative path: rooted at "/",
// no trailing slash, no "." or ".." elements.
func CleanPath(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

// JoinPath joins dir and name and cleans the result.
func JoinPath(dir string, name string) string {
	return CleanPath(path.Join(dir, name))
}

// SplitPath returns the parent directory and base name of p. The root splits
// into ("/", "").
func SplitPath(p string) (dir string, name string) {
	p = CleanPath(p)
	if p == RootPath {
		return RootPath, ""
	}

	return path.Dir(p), path.Base(p)
}
