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

package pod

import (
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/zeebo/blake3"
)

// referenceDomainKey keys the BLAKE3 hash that content references are
// computed with. The bytes are the ASCII name of the domain, zero padded.
// Changing it invalidates every stored reference.
var referenceDomainKey = [32]byte{
	'p', 'o', 'd', 'f', 's', '.', 'c', 'o', 'n', 't', 'e', 'n', 't', 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ComputeReference returns the content address of data.
func ComputeReference(data []byte) gateway.Reference {
	hasher, err := blake3.NewKeyed(referenceDomainKey[:])
	if err != nil {
		panic("pod: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	hasher.Write(data)

	var ref gateway.Reference
	copy(ref[:], hasher.Sum(nil))
	return ref
}

func blobKey(ref gateway.Reference) string {
	return "blobs/" + ref.String()
}

func indexKey(pod string) string {
	return "pods/" + pod + "/index.cbor"
}
