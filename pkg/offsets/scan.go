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

// Package offsets is component C4: two independent exclusive prefix-sum
// passes that turn the histograms C3 produced into write addresses (spec
// §4.4). The two scans have no data dependency on each other, so they run
// concurrently under an errgroup, joined before C5 is allowed to start
// (spec §5).
package offsets

import (
	"context"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/cordata/hashpart/pkg/histogram"
)

// ExclusiveScan overwrites xs in place with its own exclusive prefix sum
// and returns the total (the value that would have been xs[len(xs)], had
// the slice been one longer). Mirrors the teacher's generic numeric
// helpers in pkg/util (e.g. util.AlignValue[T ~uint64|~uint32]).
func ExclusiveScan[T constraints.Integer](xs []T) T {
	var running T
	for i, v := range xs {
		xs[i] = running
		running += v
	}
	return running
}

// Result is what C5 needs: the scanned block histogram (renamed
// block_scan in spec §3) and the partition starting offsets (the scanned
// global histogram).
type Result struct {
	BlockScan        []int64 // same shape as histogram.Result.BlockHistogram
	PartitionOffsets []int   // length NumPartitions, non-decreasing, starts at 0
	Total            int
}

// Run performs both scans described in spec §4.4 concurrently.
func Run(ctx context.Context, hist *histogram.Result) (*Result, error) {
	res := &Result{
		BlockScan:        make([]int64, len(hist.BlockHistogram)),
		PartitionOffsets: make([]int, hist.NumPartitions),
	}
	copy(res.BlockScan, hist.BlockHistogram)
	globalCopy := make([]int64, hist.NumPartitions)
	copy(globalCopy, hist.GlobalHistogram)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		// block_histogram, viewed as a flat length-B*N sequence, is already
		// partition-major (spec §3), so scanning it flat is exactly the
		// per-(partition,block) base address C5 needs.
		ExclusiveScan(res.BlockScan)
		return nil
	})
	g.Go(func() error {
		total := ExclusiveScan(globalCopy)
		for p, v := range globalCopy {
			res.PartitionOffsets[p] = int(v)
		}
		res.Total = int(total)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
