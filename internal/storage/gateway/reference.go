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
	"encoding/hex"
	"fmt"
	"strings"
)

// ReferenceSize is the length in bytes of a content address.
const ReferenceSize = 32

// Reference is a content address. Its text form is lower-case hex without a
// prefix.
type Reference [ReferenceSize]byte

// ParseReference decodes the text form of a reference. An optional "0x"
// prefix is accepted.
func ParseReference(s string) (ref Reference, err error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(s) != 2*ReferenceSize {
		err = fmt.Errorf("reference %q: expected %d hex characters, got %d", s, 2*ReferenceSize, len(s))
		return
	}

	if _, err = hex.Decode(ref[:], []byte(s)); err != nil {
		err = fmt.Errorf("reference %q: %w", s, err)
		return
	}

	return
}

func (r Reference) String() string {
	return hex.EncodeToString(r[:])
}

// IsZero reports whether r is the zero reference, used for entries that have
// no content such as directories.
func (r Reference) IsZero() bool {
	return r == Reference{}
}

func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reference) UnmarshalText(text []byte) error {
	parsed, err := ParseReference(string(text))
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}
