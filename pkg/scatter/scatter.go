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

// Package scatter is component C5: one pass per source column, moving
// cells into their contiguous per-partition output position (spec §4.5).
//
// The real kernel stages rows into block-shared memory through a
// two-level offset table so the final write to global memory is a
// coalesced, partition-contiguous burst. On a CPU there is no coalescing
// benefit to chase and no shared memory to stage through, so this
// implementation computes the same final address directly:
// block_scan[p*numBlocks+b] already equals the absolute output offset at
// which block b's slice of partition p begins (see the comment in
// offsets.Run on why the flat scan gives that for free), and row_local_offset
// is each row's rank within its (block, partition) pair — summing them
// is exactly the staged kernel's destination address, just computed
// without the intermediate shared-memory bounce.
package scatter

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/cordata/hashpart/pkg/histogram"
	"github.com/cordata/hashpart/pkg/offsets"
	"github.com/cordata/hashpart/pkg/table"
	"github.com/cordata/hashpart/pkg/types"
	"github.com/cordata/hashpart/pkg/util"
)

// Run scatters every column of input into a freshly allocated output
// table, using hist and off as the routing tables computed by C3/C4.
// One task per (column, block) pair is submitted to the pool; per-column
// tasks are independent per spec §5, and so are per-block tasks within a
// column, since each writes a disjoint address range.
func Run(
	ctx context.Context,
	input table.View,
	hist *histogram.Result,
	off *offsets.Result,
	alloc table.Allocator,
	workers int,
) (*table.Table, error) {
	r := input.NumRows()
	n := input.NumColumns()
	outCols := make([]*table.Column, n)
	for i := 0; i < n; i++ {
		src := input.Column(i)
		if !src.Typ.FixedWidth() {
			return nil, fmt.Errorf("scatter: column %d: %w", i, table.ErrUnsupportedType)
		}
		outCols[i] = table.NewColumn(src.Typ, r, alloc)
	}
	if r == 0 {
		return table.New(outCols, 0), nil
	}

	blockSize := util.CeilDiv(r, hist.NumBlocks)
	p := pool.New().WithMaxGoroutines(workers)
	for ci := 0; ci < n; ci++ {
		ci := ci
		for b := 0; b < hist.NumBlocks; b++ {
			b := b
			start := b * blockSize
			if start >= r {
				continue
			}
			end := start + blockSize
			if end > r {
				end = r
			}
			p.Go(func() {
				scatterBlock(input.Column(ci), outCols[ci], hist, off, b, start, end)
			})
		}
	}
	p.Wait()

	return table.New(outCols, r), nil
}

func scatterBlock(src, dst *table.Column, hist *histogram.Result, off *offsets.Result, b, start, end int) {
	util.TraceBlock("scatter", b, start, end)
	switch src.Typ {
	case types.Bool, types.Int8:
		scatterTyped[int8](src, dst, hist, off, b, start, end)
	case types.Uint8:
		scatterTyped[uint8](src, dst, hist, off, b, start, end)
	case types.Int16:
		scatterTyped[int16](src, dst, hist, off, b, start, end)
	case types.Uint16:
		scatterTyped[uint16](src, dst, hist, off, b, start, end)
	case types.Int32, types.Date32:
		scatterTyped[int32](src, dst, hist, off, b, start, end)
	case types.Uint32:
		scatterTyped[uint32](src, dst, hist, off, b, start, end)
	case types.Int64, types.Timestamp64:
		scatterTyped[int64](src, dst, hist, off, b, start, end)
	case types.Uint64:
		scatterTyped[uint64](src, dst, hist, off, b, start, end)
	case types.Float32:
		scatterTyped[float32](src, dst, hist, off, b, start, end)
	case types.Float64:
		scatterTyped[float64](src, dst, hist, off, b, start, end)
	default:
		panic(fmt.Sprintf("scatter: %s must be rejected before reaching the kernel", src.Typ))
	}
}

// scatterTyped is generated once per fixed-width type, exactly the
// "runtime switch over the supported fixed-width types" Design Note §9
// calls for — identical behavior across widths except for cell size T.
func scatterTyped[T any](src, dst *table.Column, hist *histogram.Result, off *offsets.Result, b, start, end int) {
	srcData := table.Slice[T](src)
	dstData := table.Slice[T](dst)
	numBlocks := hist.NumBlocks
	for row := start; row < end; row++ {
		part := int(hist.RowPartition[row])
		dest := off.BlockScan[part*numBlocks+b] + int64(hist.RowLocalOffset[row])
		dstData[dest] = srcData[row]
	}
}
