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

// Package partfunc is component C2: maps a 32-bit row hash to a partition
// index. Two variants, selected by the orchestrator on N alone — no other
// partitioner shapes exist (spec §4.2).
package partfunc

import "github.com/cordata/hashpart/pkg/util"

// Func maps a hash to a partition index in [0, N).
type Func func(hash uint32) int

// Bitmask returns the fast-path functor. Precondition: n is a positive
// power of two; violating it silently produces wrong results rather than
// panicking, since the orchestrator is solely responsible for choosing
// between this and Modulo (spec §4.2).
func Bitmask(n int) Func {
	mask := uint32(n - 1)
	return func(hash uint32) int {
		return int(hash & mask)
	}
}

func Modulo(n int) Func {
	u := uint32(n)
	return func(hash uint32) int {
		return int(hash % u)
	}
}

// Select returns the variant the orchestrator should use for n, per spec
// §4.6 step 4: bitmask when n is a positive power of two, modulo otherwise.
func Select(n int) Func {
	if n > 0 && util.IsPowerOfTwo(uint64(n)) {
		return Bitmask(n)
	}
	return Modulo(n)
}
