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

// Package table stands in for the columnar table representation and its
// device-side views, which spec §1 explicitly treats as an external
// collaborator referenced only through the interfaces §6 names. It is
// deliberately thin: one physical layout (flat, fixed-width, optionally
// null-masked) and no dictionary/constant vector formats, since
// variable-width and nested columns are out of scope (spec §1 Non-goals).
package table

import (
	"github.com/cordata/hashpart/pkg/types"
	"github.com/cordata/hashpart/pkg/util"
)

// Column is one fixed-width column: Data is count*Typ.Size() bytes, and
// Mask is nil whenever the column has no nulls (util.Bitmap already treats
// an empty Bitmap as all-valid, so this falls out for free).
type Column struct {
	Typ  types.PhyType
	Data []byte
	Mask *util.Bitmap
}

func NewColumn(typ types.PhyType, count int, alloc Allocator) *Column {
	return &Column{
		Typ:  typ,
		Data: alloc.Alloc(count * typ.Size()),
	}
}

func (c *Column) Len() int {
	if !c.Typ.FixedWidth() || c.Typ.Size() == 0 {
		return 0
	}
	return len(c.Data) / c.Typ.Size()
}

func (c *Column) HasNulls() bool {
	return c.Mask != nil && !c.Mask.AllValid()
}

func (c *Column) IsNull(row int) bool {
	if c.Mask == nil {
		return false
	}
	return !c.Mask.RowIsValid(uint64(row))
}

// Slice reinterprets the column's bytes as []T. T must match Typ.Size();
// callers are the per-type kernels in pkg/rowhash and pkg/scatter, which
// select T from Typ via a type switch, so the invariant always holds.
func Slice[T any](c *Column) []T {
	return util.ToSlice[T](c.Data, c.Typ.Size())
}

// View is the read-only surface the core needs from a table: enough to
// iterate rows and columns, nothing about how either is physically stored
// beyond the flat Column layout above.
type View interface {
	NumRows() int
	NumColumns() int
	Column(i int) *Column
}

// Table is the default, in-memory View implementation, and also what
// HashPartition returns as its output.
type Table struct {
	Cols     []*Column
	RowCount int
}

func New(cols []*Column, numRows int) *Table {
	return &Table{Cols: cols, RowCount: numRows}
}

func (t *Table) NumColumns() int      { return len(t.Cols) }
func (t *Table) Column(i int) *Column { return t.Cols[i] }
func (t *Table) NumRows() int         { return t.RowCount }

var _ View = (*Table)(nil)

// KeyView projects src onto a caller-chosen, ordered subset of column
// indices without copying any column data — spec §3's "Key subview".
type KeyView struct {
	src     View
	indices []int
}

func NewKeyView(src View, indices []int) *KeyView {
	return &KeyView{src: src, indices: indices}
}

func (k *KeyView) NumRows() int      { return k.src.NumRows() }
func (k *KeyView) NumColumns() int   { return len(k.indices) }
func (k *KeyView) Column(i int) *Column {
	return k.src.Column(k.indices[i])
}

// HasNulls reports whether any projected key column carries a null mask,
// which the orchestrator uses to choose the null-aware vs null-oblivious
// hashing path (spec §4.6 step 3).
func (k *KeyView) HasNulls() bool {
	for i := 0; i < k.NumColumns(); i++ {
		if k.Column(i).HasNulls() {
			return true
		}
	}
	return false
}
