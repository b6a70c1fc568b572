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

package cfg

import (
	"gopkg.in/yaml.v3"
)

const redacted = "<redacted>"

// Stringify renders c as YAML with secrets redacted, for logging the
// effective configuration at start-up.
func Stringify(c *Config) (string, error) {
	cp := *c
	if cp.Storage.S3.SecretAccessKey != "" {
		cp.Storage.S3.SecretAccessKey = redacted
	}

	out, err := yaml.Marshal(&cp)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
