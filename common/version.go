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

package common

import "fmt"

// Set at build time through
// -ldflags "-X github.com/fairdatasociety/podfs/common.podfsVersion=..."
var podfsVersion = "unknown"

func GetVersion() string {
	return podfsVersion
}

// AppName returns the user agent style identifier of the binary.
func AppName(custom string) string {
	if custom == "" {
		return fmt.Sprintf("podfs/%s", GetVersion())
	}
	return fmt.Sprintf("podfs/%s %s", GetVersion(), custom)
}
