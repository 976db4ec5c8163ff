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

import (
	"unsafe"
)

// ToSlice reinterprets a flat byte buffer as a []T without copying. pSize
// is the element width; callers are responsible for passing a buffer whose
// length is a multiple of it.
func ToSlice[T any](data []byte, pSize int) []T {
	if len(data) == 0 {
		return nil
	}
	slen := len(data) / pSize
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), slen)
}

// ToBytes is the inverse of ToSlice: reinterprets a []T as its raw bytes.
func ToBytes[T any](data []T, pSize int) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*pSize)
}
