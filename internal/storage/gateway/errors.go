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
	"errors"
	"fmt"
)

// NotFoundError is returned when a pod, path or object does not exist.
type NotFoundError struct {
	Err error
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("gateway.NotFoundError: %v", nfe.Err)
}

func (nfe *NotFoundError) Unwrap() error {
	return nfe.Err
}

// NotEmptyError is returned when removing a directory that still has
// children.
type NotEmptyError struct {
	Err error
}

func (nee *NotEmptyError) Error() string {
	return fmt.Sprintf("gateway.NotEmptyError: %v", nee.Err)
}

func (nee *NotEmptyError) Unwrap() error {
	return nee.Err
}

// TypeMismatchError is returned when a path names a file where a directory
// was expected, or the other way around.
type TypeMismatchError struct {
	Err error
}

func (tme *TypeMismatchError) Error() string {
	return fmt.Sprintf("gateway.TypeMismatchError: %v", tme.Err)
}

func (tme *TypeMismatchError) Unwrap() error {
	return tme.Err
}

// CorruptionError is returned when stored content does not hash to the
// reference recorded for it.
type CorruptionError struct {
	Err error
}

func (ce *CorruptionError) Error() string {
	return fmt.Sprintf("gateway.CorruptionError: %v", ce.Err)
}

func (ce *CorruptionError) Unwrap() error {
	return ce.Err
}

// IsNotFound reports whether err, or anything it wraps, is a *NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
