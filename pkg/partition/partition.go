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

// Package partition is component C6, the orchestrator: it validates
// inputs, picks the null-aware/null-oblivious and bitmask/modulo paths,
// drives C3 → C4 → C5 in order, and assembles the result (spec §4.6).
// HashPartition and Hash are the module's only two public entry points
// (spec §6); every kernel package above is otherwise internal.
package partition

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cordata/hashpart/pkg/histogram"
	"github.com/cordata/hashpart/pkg/offsets"
	"github.com/cordata/hashpart/pkg/partfunc"
	"github.com/cordata/hashpart/pkg/rowhash"
	"github.com/cordata/hashpart/pkg/scatter"
	"github.com/cordata/hashpart/pkg/table"
	"github.com/cordata/hashpart/pkg/types"
	"github.com/cordata/hashpart/pkg/util"
)

// HashPartition redistributes every row of input into one of numPartitions
// partitions by hashing the columns named in keyColumnIndices, honoring
// null semantics when any key column carries a null mask. Returns a table
// with the same schema and row count as input, rows permuted so a
// partition's rows are contiguous, and the length-numPartitions vector of
// each partition's starting row index (spec §6).
func HashPartition(
	ctx context.Context,
	input table.View,
	keyColumnIndices []int,
	numPartitions int,
	alloc table.Allocator,
	opts ...Option,
) (*table.Table, []int, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	r := input.NumRows()
	if numPartitions <= 0 || r == 0 || len(keyColumnIndices) == 0 {
		return emptyLike(input, alloc), []int{}, nil
	}

	keys := table.NewKeyView(input, keyColumnIndices)
	for i := 0; i < keys.NumColumns(); i++ {
		if !keys.Column(i).Typ.FixedWidth() {
			return nil, nil, fmt.Errorf("hash_partition: key column %d: %w", keyColumnIndices[i], table.ErrUnsupportedType)
		}
	}

	// spec §4.6 step 3: null-aware iff the key subview has any null mask.
	nullable := keys.HasNulls()

	// spec §4.5/§6: a null mask on any column fails the operation, but only
	// in the null-oblivious configuration — see DESIGN.md for why the
	// blanket wording in §4.5 is read as qualified by §6's precise error
	// condition (scenario §8's test 3 requires a nullable key column to
	// succeed end to end).
	if !nullable {
		for i := 0; i < input.NumColumns(); i++ {
			if input.Column(i).HasNulls() {
				return nil, nil, fmt.Errorf("hash_partition: column %d: %w", i, table.ErrNullMaskRejected)
			}
		}
	}

	hasher := rowhash.NewRowHasher(cfg.Kernel, nil)
	partFn := partfunc.Select(numPartitions) // spec §4.6 step 4

	numBlocks := util.CeilDiv(r, cfg.BlockSize)
	if numBlocks < 1 {
		numBlocks = 1
	}

	util.Debug("hash_partition starting",
		zap.Int("rows", r), zap.Int("partitions", numPartitions),
		zap.Int("blocks", numBlocks), zap.Bool("nullable", nullable),
		zap.String("kernel", cfg.Kernel.String()))

	hist, err := histogram.Run(ctx, keys, hasher, partFn, numPartitions, numBlocks, cfg.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("hash_partition: histogram: %w", err)
	}

	off, err := offsets.Run(ctx, hist)
	if err != nil {
		return nil, nil, fmt.Errorf("hash_partition: offsets: %w", err)
	}

	out, err := scatter.Run(ctx, input, hist, off, alloc, cfg.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("hash_partition: scatter: %w", err)
	}

	return out, off.PartitionOffsets, nil
}

func emptyLike(input table.View, alloc table.Allocator) *table.Table {
	n := input.NumColumns()
	cols := make([]*table.Column, n)
	for i := 0; i < n; i++ {
		cols[i] = table.NewColumn(input.Column(i).Typ, 0, alloc)
	}
	return table.New(cols, 0)
}

// Hash computes component C1's row hash for every row of input as a
// standalone operation (spec §6), independent of partitioning. Seeds
// default per-column when initialHashPerColumn is empty. ctx carries no
// cancellation here (row hashing is not pool-dispatched), but is part of
// the call's signature for symmetry with HashPartition.
func Hash(ctx context.Context, input table.View, initialHashPerColumn []uint32, opts ...Option) (*table.Column, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	n := input.NumColumns()
	if len(initialHashPerColumn) != 0 && len(initialHashPerColumn) != n {
		return nil, table.ErrSeedCountMismatch
	}
	for i := 0; i < n; i++ {
		if !input.Column(i).Typ.FixedWidth() {
			return nil, fmt.Errorf("hash: column %d: %w", i, table.ErrUnsupportedType)
		}
	}

	hasher := rowhash.NewRowHasher(cfg.Kernel, initialHashPerColumn)
	out := table.NewColumn(types.Uint32, input.NumRows(), table.DefaultAllocator{})
	data := table.Slice[uint32](out)
	for row := range data {
		data[row] = hasher.Hash(input, row)
	}
	return out, nil
}
