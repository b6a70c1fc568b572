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

package metrics

// Attribute keys.
const (
	GatewayMethodKey = "gateway_method"
	ErrorCategoryKey = "error_category"
	SinkOpKey        = "sink_op"
	StatusKey        = "status"
)

// Constants for attribute GatewayMethod.
const (
	GatewayMethodExists   = "Exists"
	GatewayMethodUpload   = "Upload"
	GatewayMethodDownload = "Download"
	GatewayMethodStat     = "Stat"
	GatewayMethodReadDir  = "ReadDir"
	GatewayMethodMakeDir  = "MakeDir"
	GatewayMethodDelete   = "Delete"
)

// Constants for attribute ErrorCategory.
const (
	ErrorCategoryNotFound     = "NOT_FOUND"
	ErrorCategoryNotEmpty     = "NOT_EMPTY"
	ErrorCategoryTypeMismatch = "TYPE_MISMATCH"
	ErrorCategoryCorruption   = "CORRUPTION"
	ErrorCategoryCanceled     = "CANCELED"
	ErrorCategoryOther        = "OTHER"
)

// Constants for attribute SinkOp.
const (
	SinkOpWrite    = "write"
	SinkOpSeek     = "seek"
	SinkOpTruncate = "truncate"
)

// Constants for attribute Status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
