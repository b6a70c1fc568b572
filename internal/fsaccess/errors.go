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
	"fmt"
	"strings"
)

// InvalidNameError is returned when an entry name cannot name a child of a
// directory.
type InvalidNameError struct {
	Name string
}

func (ine *InvalidNameError) Error() string {
	return fmt.Sprintf("fsaccess.InvalidNameError: invalid entry name %q", ine.Name)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') {
		return &InvalidNameError{Name: name}
	}
	return nil
}
