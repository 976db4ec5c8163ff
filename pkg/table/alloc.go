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

// Allocator is the memory-resource abstraction (spec §3, §6): the sole
// allocator for output column buffers. It has util.BytesAllocator's Alloc
// method but no Free, so a caller can plug in a pooling or device
// allocator without the core depending on how it's implemented.
type Allocator interface {
	Alloc(n int) []byte
}

type DefaultAllocator struct{}

func (DefaultAllocator) Alloc(n int) []byte {
	return make([]byte, n)
}
