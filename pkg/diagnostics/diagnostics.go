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

// Package diagnostics is component C8: post-hoc reporting over a
// completed hash_partition result. Nothing here sits on the hot path —
// every function takes the finished output table and partition_offsets
// and derives a report from them.
package diagnostics

import (
	"sort"

	"github.com/axiomhq/hyperloglog"
	"github.com/kamstrup/intmap"

	"github.com/cordata/hashpart/pkg/rowhash"
	"github.com/cordata/hashpart/pkg/table"
)

// PartitionDigest is one partition's reporting summary: its row count and
// an approximate count of distinct keys within it.
type PartitionDigest struct {
	Partition   int
	Size        int
	Cardinality uint64
}

// SizeReport derives per-partition sizes from consecutive offset deltas
// (spec §8's partition-size coherence invariant, restated for diagnostics)
// and returns them sorted descending by size, largest partition first —
// the ordering diagnostics users care about most (a lopsided partitioner
// shows up at the head of the list).
func SizeReport(partitionOffsets []int, totalRows int) []PartitionDigest {
	n := len(partitionOffsets)
	out := make([]PartitionDigest, n)
	for p := 0; p < n; p++ {
		end := totalRows
		if p+1 < n {
			end = partitionOffsets[p+1]
		}
		out[p] = PartitionDigest{Partition: p, Size: end - partitionOffsets[p]}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}

// CardinalityReport estimates, per partition, the number of distinct keys
// it holds. It reuses the row hash C1 already computed for routing rather
// than rehashing, feeding each row's 32-bit hash widened to a digest into
// a per-partition HyperLogLog sketch (axiomhq/hyperloglog). Result is
// keyed by a kamstrup/intmap map from partition index to digest, since
// partition indices are a dense small-integer key space accessed on a
// reporting hot loop — the same specialized-map-over-map[int]T trade the
// core's teacher lineage makes for its own encoder caches.
func CardinalityReport(rowPartition []int32, rowHash []uint32, numPartitions int) *intmap.Map[int, *PartitionDigest] {
	sketches := make([]*hyperloglog.Sketch, numPartitions)
	for p := range sketches {
		sketches[p] = hyperloglog.New14()
	}
	sizes := make([]int, numPartitions)
	for row, h := range rowHash {
		p := int(rowPartition[row])
		sizes[p]++
		var buf [4]byte
		buf[0] = byte(h)
		buf[1] = byte(h >> 8)
		buf[2] = byte(h >> 16)
		buf[3] = byte(h >> 24)
		sketches[p].Insert(buf[:])
	}

	out := intmap.New[int, *PartitionDigest](numPartitions)
	for p := 0; p < numPartitions; p++ {
		out.Put(p, &PartitionDigest{
			Partition:   p,
			Size:        sizes[p],
			Cardinality: sketches[p].Estimate(),
		})
	}
	return out
}

// RowHashesFor recomputes C1's row hash over a key view for use by
// CardinalityReport, so a caller need not have retained the per-row hash
// from the histogram pass.
func RowHashesFor(keys table.View, hasher *rowhash.RowHasher) []uint32 {
	n := keys.NumRows()
	out := make([]uint32, n)
	for row := 0; row < n; row++ {
		out[row] = hasher.Hash(keys, row)
	}
	return out
}
