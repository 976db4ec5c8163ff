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

// Package histogram is component C3: for every row it computes the
// destination partition, accumulates per-block and global histograms, and
// records each row's intra-block offset (spec §4.3).
//
// "B blocks of T threads" is translated to Go as B goroutine tasks on a
// bounded pool; each task *is* a block, so the local histogram it builds
// is private data rather than block-shared memory reached through atomics
// — there is nothing else in the goroutine racing to increment it. The
// single array that genuinely is shared across blocks, global_histogram,
// still uses atomics, exactly as spec §4.3/§5 requires.
package histogram

import (
	"context"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/cordata/hashpart/pkg/partfunc"
	"github.com/cordata/hashpart/pkg/rowhash"
	"github.com/cordata/hashpart/pkg/table"
	"github.com/cordata/hashpart/pkg/util"
)

// Result bundles the three routing tables §3 says C3 produces, plus the
// global histogram (not yet scanned — that's C4's job).
type Result struct {
	RowPartition    []int32
	RowLocalOffset  []int32
	BlockHistogram  []int64 // partition-major, length NumBlocks*NumPartitions
	GlobalHistogram []int64 // length NumPartitions
	NumBlocks       int
	NumPartitions   int
}

// BlockHistogramAt returns block_histogram[p][b] using the partition-major
// layout Design Note "Two-level offset table" requires C4 and C5 to see.
func (r *Result) BlockHistogramAt(p, b int) int64 {
	return r.BlockHistogram[p*r.NumBlocks+b]
}

// Run launches the histogram kernel over every row of keys. numBlocks and
// workers are independent: numBlocks controls routing-table granularity
// (spec invariants are block-relative), workers bounds how many blocks run
// concurrently.
func Run(
	ctx context.Context,
	keys table.View,
	hasher *rowhash.RowHasher,
	partFn partfunc.Func,
	numPartitions, numBlocks, workers int,
) (*Result, error) {
	r := keys.NumRows()
	res := &Result{
		RowPartition:    make([]int32, r),
		RowLocalOffset:  make([]int32, r),
		BlockHistogram:  make([]int64, numBlocks*numPartitions),
		GlobalHistogram: make([]int64, numPartitions),
		NumBlocks:       numBlocks,
		NumPartitions:   numPartitions,
	}
	if r == 0 {
		return res, nil
	}

	globalHist := make([]atomic.Int64, numPartitions)
	blockSize := util.CeilDiv(r, numBlocks)

	p := pool.New().WithMaxGoroutines(workers)
	for b := 0; b < numBlocks; b++ {
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
			runBlock(keys, hasher, partFn, res, globalHist, numPartitions, numBlocks, b, start, end)
		})
	}
	p.Wait()

	for part := 0; part < numPartitions; part++ {
		res.GlobalHistogram[part] = globalHist[part].Load()
	}
	util.Debug("histogram kernel complete",
		zap.Int("rows", r), zap.Int("blocks", numBlocks), zap.Int("partitions", numPartitions))
	return res, nil
}

func runBlock(
	keys table.View,
	hasher *rowhash.RowHasher,
	partFn partfunc.Func,
	res *Result,
	globalHist []atomic.Int64,
	numPartitions, numBlocks, b, start, end int,
) {
	util.TraceBlock("histogram", b, start, end)
	local := make([]int32, numPartitions)
	for row := start; row < end; row++ {
		h := hasher.Hash(keys, row)
		part := partFn(h)
		res.RowPartition[row] = int32(part)
		res.RowLocalOffset[row] = local[part]
		local[part]++
	}
	for part := 0; part < numPartitions; part++ {
		res.BlockHistogram[part*numBlocks+b] = int64(local[part])
		if local[part] != 0 {
			globalHist[part].Add(int64(local[part]))
		}
	}
}
