package scatter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordata/hashpart/pkg/histogram"
	"github.com/cordata/hashpart/pkg/offsets"
	"github.com/cordata/hashpart/pkg/partfunc"
	"github.com/cordata/hashpart/pkg/rowhash"
	"github.com/cordata/hashpart/pkg/table"
)

func buildInput(keys, values []int64) *table.Table {
	return table.New([]*table.Column{
		table.Int64Column(keys),
		table.Int64Column(values),
	}, len(keys))
}

func Test_Run_permutesRowsKeepingKeyValuePairing(t *testing.T) {
	keys := []int64{1, 2, 1, 3, 1}
	values := []int64{30, 10, 40, 90, 20}
	in := buildInput(keys, values)

	hasher := rowhash.NewRowHasher(rowhash.Murmur32, nil)
	keyView := table.NewKeyView(in, []int{0})
	partFn := partfunc.Select(2)

	hist, err := histogram.Run(context.Background(), keyView, hasher, partFn, 2, 1, 2)
	require.NoError(t, err)
	off, err := offsets.Run(context.Background(), hist)
	require.NoError(t, err)

	out, err := Run(context.Background(), in, hist, off, table.DefaultAllocator{}, 2)
	require.NoError(t, err)
	require.Equal(t, len(keys), out.NumRows())

	gotPairs := map[[2]int64]int{}
	outKeys := table.Slice[int64](out.Column(0))
	outVals := table.Slice[int64](out.Column(1))
	for i := range outKeys {
		gotPairs[[2]int64{outKeys[i], outVals[i]}]++
	}
	wantPairs := map[[2]int64]int{}
	for i := range keys {
		wantPairs[[2]int64{keys[i], values[i]}]++
	}
	require.Equal(t, wantPairs, gotPairs)
}

func Test_Run_rowsOfSamePartitionAreContiguous(t *testing.T) {
	keys := []int64{1, 2, 1, 3, 1}
	in := buildInput(keys, keys)

	hasher := rowhash.NewRowHasher(rowhash.Murmur32, nil)
	keyView := table.NewKeyView(in, []int{0})
	partFn := partfunc.Select(2)

	hist, err := histogram.Run(context.Background(), keyView, hasher, partFn, 2, 1, 2)
	require.NoError(t, err)
	off, err := offsets.Run(context.Background(), hist)
	require.NoError(t, err)

	out, err := Run(context.Background(), in, hist, off, table.DefaultAllocator{}, 2)
	require.NoError(t, err)

	// Rows with the same key must always hash to the same partition, and
	// same-partition rows must be contiguous in the output (invariant 5):
	// recompute each output row's partition via the key and assert no
	// partition index reappears after a different one was seen.
	outKeys := table.Slice[int64](out.Column(0))
	var seenOrder []int32
	seenSet := map[int32]bool{}
	for _, k := range outKeys {
		singleRowKeys := table.NewKeyView(buildInput([]int64{k}, []int64{k}), []int{0})
		p := int32(partFn(hasher.Hash(singleRowKeys, 0)))
		if len(seenOrder) == 0 || seenOrder[len(seenOrder)-1] != p {
			require.False(t, seenSet[p], "partition %d reappeared non-contiguously", p)
			seenOrder = append(seenOrder, p)
			seenSet[p] = true
		}
	}
}
