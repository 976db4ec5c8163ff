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

// Bitmap is a null mask: one bit per row, set means valid (non-null).
// A nil/empty Bitmap means "no nulls", matching cudf's null_mask convention
// where an absent mask is interpreted as all-valid.
type Bitmap struct {
	Bits []uint8
}

func EntryCount(cnt int) int {
	return (cnt + 7) / 8
}

func (bm *Bitmap) Invalid() bool {
	return len(bm.Bits) == 0
}

// AllValid reports whether the mask is absent, i.e. every row is valid.
func (bm *Bitmap) AllValid() bool {
	return bm.Invalid()
}

func (bm *Bitmap) Init(count int) {
	bm.Bits = GAlloc.Alloc(EntryCount(count))
	for i := range bm.Bits {
		bm.Bits[i] = 0xFF
	}
}

// ShareWith aliases bm to other's backing bits without copying them. No
// caller in this module uses it; KeyView hands out the source column itself.
func (bm *Bitmap) ShareWith(other *Bitmap) {
	bm.Bits = other.Bits
}

func getEntryIndex(idx uint64) (uint64, uint64) {
	return idx / 8, idx % 8
}

func (bm *Bitmap) RowIsValid(idx uint64) bool {
	if bm.Invalid() {
		return true
	}
	eIdx, pos := getEntryIndex(idx)
	return bm.Bits[eIdx]&(1<<pos) != 0
}

func (bm *Bitmap) SetValid(ridx uint64) {
	if bm.Invalid() {
		return
	}
	eIdx, pos := getEntryIndex(ridx)
	bm.Bits[eIdx] |= 1 << pos
}

func (bm *Bitmap) SetInvalid(ridx uint64) {
	if bm.Invalid() {
		bm.Init(int(ridx) + 1)
	}
	eIdx, pos := getEntryIndex(ridx)
	bm.Bits[eIdx] &= ^(1 << pos)
}

func (bm *Bitmap) Set(ridx uint64, valid bool) {
	if valid {
		bm.SetValid(ridx)
	} else {
		bm.SetInvalid(ridx)
	}
}

func (bm *Bitmap) SetAllInvalid(cnt int) {
	if bm.Invalid() {
		bm.Init(cnt)
	}
	if cnt == 0 {
		return
	}
	lastEidx := EntryCount(cnt) - 1
	for i := 0; i < lastEidx; i++ {
		bm.Bits[i] = 0
	}
	lastBits := cnt % 8
	if lastBits == 0 {
		bm.Bits[lastEidx] = 0
	} else {
		bm.Bits[lastEidx] = 0xFF << lastBits
	}
}

// HasAnyInvalid reports whether at least one of the first cnt rows is null.
// The orchestrator does not call it: its null-aware vs null-oblivious choice
// goes through table.Column.HasNulls, which tests only whether a mask is set.
func (bm *Bitmap) HasAnyInvalid(cnt int) bool {
	if bm.Invalid() {
		return false
	}
	full := cnt / 8
	for i := 0; i < full; i++ {
		if bm.Bits[i] != 0xFF {
			return true
		}
	}
	for i := full * 8; i < cnt; i++ {
		if !bm.RowIsValid(uint64(i)) {
			return true
		}
	}
	return false
}
