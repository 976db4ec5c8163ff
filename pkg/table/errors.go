// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import "errors"

// Precondition violations (spec §7). HashPartition returns
// ErrUnsupportedType for a key column and ErrNullMaskRejected before any
// kernel dispatch, and Hash returns ErrSeedCountMismatch before hashing;
// ErrUnsupportedType for a payload column comes from the scatter step,
// after the histogram and scans have run. ErrNoKeyColumns is not returned
// by HashPartition, which treats zero key columns as empty input.
var (
	ErrUnsupportedType   = errors.New("table: column type is not fixed-width")
	ErrSeedCountMismatch = errors.New("table: seed vector length does not match column count")
	ErrNullMaskRejected  = errors.New("table: column carries a null mask, which the scatter kernel cannot propagate")
	ErrNoKeyColumns      = errors.New("table: no key columns selected")
)
