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

import (
	"fmt"
	"math"

	"github.com/cordata/hashpart/pkg/table"
	"github.com/cordata/hashpart/pkg/types"
)

// defaultSeeds gives every physical type its own constant so that, absent
// caller-supplied seeds, two columns of different types never accidentally
// hash identically for the same stored bit pattern (spec §6: "seeds
// default to a type-specific constant").
var defaultSeeds = map[types.PhyType]uint32{
	types.Bool:        0x4d2a1f3b,
	types.Int8:        0x1b873593,
	types.Uint8:       0xcc9e2d51,
	types.Int16:       0xe6546b64,
	types.Uint16:      0x85ebca6b,
	types.Int32:       0xc2b2ae35,
	types.Uint32:      0x27d4eb2f,
	types.Date32:      0x165667b1,
	types.Float32:     0xff51afd7,
	types.Int64:       0xc4ceb9fe,
	types.Uint64:      0x2545f491,
	types.Float64:     0x9e3779b9,
	types.Timestamp64: 0x9e3779b1,
}

func DefaultSeed(t types.PhyType) uint32 {
	if s, ok := defaultSeeds[t]; ok {
		return s
	}
	return 0
}

// cellHash computes one cell's finalized 32-bit hash, or the null sentinel
// if the cell is null. It is the per-type dispatch described as "compile-
// time dispatch" in the teacher and spec's Design Notes §9 — here a single
// runtime switch generates the same specialized body per width.
func cellHash(c *table.Column, row int, seed uint32, kernel Kernel) uint32 {
	if c.IsNull(row) {
		return NullSentinel
	}
	switch c.Typ {
	case types.Bool, types.Int8:
		return finalize32(kernel, uint64(table.Slice[int8](c)[row]), seed)
	case types.Uint8:
		return finalize32(kernel, uint64(table.Slice[uint8](c)[row]), seed)
	case types.Int16:
		return finalize32(kernel, uint64(table.Slice[int16](c)[row]), seed)
	case types.Uint16:
		return finalize32(kernel, uint64(table.Slice[uint16](c)[row]), seed)
	case types.Int32:
		return finalize32(kernel, uint64(uint32(table.Slice[int32](c)[row])), seed)
	case types.Date32:
		return finalize32(kernel, uint64(uint32(table.Slice[int32](c)[row])), seed)
	case types.Uint32:
		return finalize32(kernel, uint64(table.Slice[uint32](c)[row]), seed)
	case types.Int64:
		return finalize32(kernel, uint64(table.Slice[int64](c)[row]), seed)
	case types.Timestamp64:
		return finalize32(kernel, uint64(table.Slice[int64](c)[row]), seed)
	case types.Uint64:
		return finalize32(kernel, table.Slice[uint64](c)[row], seed)
	case types.Float32:
		return finalize32(kernel, uint64(math.Float32bits(table.Slice[float32](c)[row])), seed)
	case types.Float64:
		return finalize32(kernel, math.Float64bits(table.Slice[float64](c)[row]), seed)
	default:
		panic(fmt.Sprintf("rowhash: %s must be rejected before reaching the kernel", c.Typ))
	}
}
