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

package util

// BytesAllocator is the stand-in for a device memory resource: bitmap
// storage is requested through GAlloc; the routing tables are plain Go
// slices. Caller-visible output buffers go through table.Allocator
// instead, which has the same Alloc method but no Free and is kept in
// pkg/table so the public API doesn't pull in pkg/util.
type BytesAllocator interface {
	Alloc(sz int) []byte
	Free([]byte)
}

type DefaultAllocator struct{}

func (alloc *DefaultAllocator) Alloc(sz int) []byte {
	return make([]byte, sz)
}

func (alloc *DefaultAllocator) Free([]byte) {}

var GAlloc BytesAllocator = &DefaultAllocator{}
