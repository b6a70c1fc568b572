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

import "fmt"

// SyntaxError is returned when an operation is missing a required argument
// or carries an argument outside its domain. The sink is left untouched.
type SyntaxError struct {
	Msg string
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("writesink.SyntaxError: %s", se.Msg)
}

// InvalidStateError is returned when an operation is not permitted in the
// sink's current state, such as seeking past the end of the file or writing
// to a closed sink.
type InvalidStateError struct {
	Msg string
}

func (ise *InvalidStateError) Error() string {
	return fmt.Sprintf("writesink.InvalidStateError: %s", ise.Msg)
}

func syntaxErrorf(format string, v ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, v...)}
}

func invalidStatef(format string, v ...any) error {
	return &InvalidStateError{Msg: fmt.Sprintf(format, v...)}
}

// FileTooLargeError is returned when an operation would grow the file past
// MaxFileSize. The sink is left untouched.
type FileTooLargeError struct {
	Size int64
}

func (fe *FileTooLargeError) Error() string {
	return fmt.Sprintf("writesink.FileTooLargeError: resulting size %d exceeds the limit of %d bytes", fe.Size, MaxFileSize)
}
