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

import (
	"github.com/cordata/hashpart/pkg/types"
	"github.com/cordata/hashpart/pkg/util"
)

// Int64Column builds a fixed-width int64 column from literal values, with
// no null mask. Exported (not _test.go) so pkg/partition and pkg/ingest
// tests can build fixtures without duplicating this helper per package.
func Int64Column(values []int64) *Column {
	c := &Column{Typ: types.Int64, Data: make([]byte, len(values)*8)}
	copy(Slice[int64](c), values)
	return c
}

// Int64ColumnWithNulls is Int64Column plus a null mask; nullRows marks
// which row indices are null (their stored value is irrelevant).
func Int64ColumnWithNulls(values []int64, nullRows []int) *Column {
	c := Int64Column(values)
	mask := &util.Bitmap{}
	mask.Init(len(values))
	for _, r := range nullRows {
		mask.SetInvalid(uint64(r))
	}
	c.Mask = mask
	return c
}
