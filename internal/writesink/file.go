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

package writesink

import "github.com/fairdatasociety/podfs/internal/bytebuf"

// LogicalFile is the in-memory image of the file a sink is building.
//
// INVARIANT: Content.Len() == Size
type LogicalFile struct {
	Name    string
	Content bytebuf.Buffer
	Size    int64
}

// NewLogicalFile returns a file holding a copy of data.
func NewLogicalFile(name string, data []byte) LogicalFile {
	content := bytebuf.New(data)
	return LogicalFile{
		Name:    name,
		Content: content,
		Size:    content.Len(),
	}
}

func (f *LogicalFile) setContent(content bytebuf.Buffer) {
	f.Content = content
	f.Size = content.Len()
}
