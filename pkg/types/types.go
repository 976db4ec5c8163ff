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

// Package types enumerates the physical cell types the partitioner
// understands. Modeled after the teacher's pkg/common PhyType enum, but
// trimmed to only the fixed-width primitives §3 of the spec names:
// variable-width and nested types exist solely so the orchestrator has
// something concrete to reject.
package types

import "fmt"

type PhyType int

const (
	Invalid PhyType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Date32      // days since epoch, 32-bit temporal
	Timestamp64 // nanoseconds since epoch, 64-bit temporal

	// Not fixed-width; rejected wherever the core dispatches on PhyType.
	Varchar
	List
)

var sizes = map[PhyType]int{
	Bool:        1,
	Int8:        1,
	Uint8:       1,
	Int16:       2,
	Uint16:      2,
	Int32:       4,
	Uint32:      4,
	Date32:      4,
	Float32:     4,
	Int64:       8,
	Uint64:      8,
	Float64:     8,
	Timestamp64: 8,
}

var names = map[PhyType]string{
	Invalid:     "INVALID",
	Bool:        "BOOL",
	Int8:        "INT8",
	Int16:       "INT16",
	Int32:       "INT32",
	Int64:       "INT64",
	Uint8:       "UINT8",
	Uint16:      "UINT16",
	Uint32:      "UINT32",
	Uint64:      "UINT64",
	Float32:     "FLOAT32",
	Float64:     "FLOAT64",
	Date32:      "DATE32",
	Timestamp64: "TIMESTAMP64",
	Varchar:     "VARCHAR",
	List:        "LIST",
}

func (t PhyType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("PhyType(%d)", int(t))
}

// FixedWidth reports whether t has a constant per-cell byte size, i.e.
// whether it is one of the types §3 allows as a key or payload column.
func (t PhyType) FixedWidth() bool {
	_, ok := sizes[t]
	return ok
}

// Size returns the per-cell byte width of t. Panics on a non-fixed-width
// type; callers must check FixedWidth first (the orchestrator always does,
// at the precondition-check boundary).
func (t PhyType) Size() int {
	sz, ok := sizes[t]
	if !ok {
		panic(fmt.Sprintf("%s has no fixed width", t))
	}
	return sz
}

// AllFixedWidth lists every type the hashing and scatter kernels have a
// specialization for, in ascending width order.
var AllFixedWidth = []PhyType{
	Bool, Int8, Uint8, Int16, Uint16, Int32, Uint32, Date32, Float32,
	Int64, Uint64, Float64, Timestamp64,
}
