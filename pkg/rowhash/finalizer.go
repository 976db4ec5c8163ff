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

// Package rowhash is component C1: it combines the hashes of every
// key-column cell of a row into one 32-bit value, honoring the null
// policy described in spec §3 and §4.1.
package rowhash

import "github.com/dgryski/go-metro"

// NullSentinel is substituted for a null cell's bit pattern before it is
// combined into the row hash (spec §4.1): the same constant for every
// column, so two rows null in the same column are hash-equivalent there.
const NullSentinel uint32 = 0x9e3779b9

// Kernel names a pluggable 32-bit finalizer. Both are pure, deterministic
// functions of a 32-bit seed; switching kernels changes the hash values
// produced but not the partitioner's observable behavior (spec §9 requires
// only that the core itself be deterministic, not that two kernels agree).
type Kernel int

const (
	Murmur32 Kernel = iota
	Metro32
)

func (k Kernel) String() string {
	switch k {
	case Murmur32:
		return "murmur32"
	case Metro32:
		return "metro32"
	default:
		return "unknown"
	}
}

// fmix32 is MurmurHash3's 32-bit finalizer.
func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// finalize32 applies the selected kernel to a 64-bit widened cell value.
// Narrower cells are zero/sign-extended into x by the caller before this
// is reached (see typed.go), matching the teacher's murmurhash32-widens-
// into-murmurhash64 pattern in pkg/chunk/hash.go.
func finalize32(k Kernel, x uint64, seed uint32) uint32 {
	switch k {
	case Metro32:
		var buf [8]byte
		buf[0] = byte(x)
		buf[1] = byte(x >> 8)
		buf[2] = byte(x >> 16)
		buf[3] = byte(x >> 24)
		buf[4] = byte(x >> 32)
		buf[5] = byte(x >> 40)
		buf[6] = byte(x >> 48)
		buf[7] = byte(x >> 56)
		h := metro.Hash64(buf[:], uint64(seed))
		return uint32(h >> 32)
	default:
		return fmix32(uint32(x) ^ uint32(x>>32) ^ seed)
	}
}

// CombineHash folds another column's hash into the running row hash,
// left to right (spec §4.1). Order-dependent: combining a, then b differs
// from combining b, then a.
func CombineHash(running, other uint32) uint32 {
	return (running * 0x9e3779b1) ^ other
}
