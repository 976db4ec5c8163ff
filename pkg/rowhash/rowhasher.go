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

package rowhash

import "github.com/cordata/hashpart/pkg/table"

// RowHasher is a pure function of (row index, key subview): calling Hash
// twice with the same view and row always yields the same value, and it
// performs no per-row allocation (spec §4.1 contract).
type RowHasher struct {
	Kernel Kernel
	Seeds  []uint32 // one per column of the view; missing entries use DefaultSeed
}

func NewRowHasher(kernel Kernel, seeds []uint32) *RowHasher {
	return &RowHasher{Kernel: kernel, Seeds: seeds}
}

func (h *RowHasher) seedFor(i int, col *table.Column) uint32 {
	if i < len(h.Seeds) {
		return h.Seeds[i]
	}
	return DefaultSeed(col.Typ)
}

// Hash combines every column's cell hash for row, left to right, exactly
// as spec §4.1 describes: the first column's finalized hash seeds the
// running value, every subsequent column folds in with CombineHash.
func (h *RowHasher) Hash(keys table.View, row int) uint32 {
	n := keys.NumColumns()
	if n == 0 {
		return 0
	}
	col := keys.Column(0)
	acc := cellHash(col, row, h.seedFor(0, col), h.Kernel)
	for i := 1; i < n; i++ {
		col = keys.Column(i)
		acc = CombineHash(acc, cellHash(col, row, h.seedFor(i, col), h.Kernel))
	}
	return acc
}
