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

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fairdatasociety/podfs/internal/writesink"
)

// parseOperation converts a command line op of the form kind[@pos]:arg into
// a write operation.
func parseOperation(arg string) (writesink.Operation, error) {
	head, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return writesink.Operation{}, fmt.Errorf("operation %q: expected <kind>:<argument>", arg)
	}
	kind, pos, hasPos := strings.Cut(head, "@")
	kind = strings.ToLower(kind)
	if hasPos && kind != "write" {
		return writesink.Operation{}, fmt.Errorf("operation %q: only write takes a position", arg)
	}

	params := writesink.WriteParams{Type: kind}
	switch kind {
	case "write":
		params.Data = []byte(rest)
		if hasPos {
			n, err := strconv.ParseInt(pos, 10, 64)
			if err != nil {
				return writesink.Operation{}, fmt.Errorf("operation %q: position: %w", arg, err)
			}
			params.Position = &n
		}
	case "seek":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return writesink.Operation{}, fmt.Errorf("operation %q: position: %w", arg, err)
		}
		params.Position = &n
	case "truncate":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return writesink.Operation{}, fmt.Errorf("operation %q: size: %w", arg, err)
		}
		params.Size = &n
	}

	return writesink.ParseWriteParams(params)
}
