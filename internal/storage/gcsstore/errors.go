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

package gcsstore

import (
	"errors"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"google.golang.org/api/googleapi"
)

// getGCSError converts an error returned by the storage client into the
// podfs error for the same condition.
func getGCSError(err error) error {
	if err == nil {
		return nil
	}

	// Http client error.
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusNotFound {
		return &gateway.NotFoundError{Err: err}
	}

	// If the object doesn't exist the client reports ErrObjectNotExist.
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return &gateway.NotFoundError{Err: err}
	}

	return err
}
