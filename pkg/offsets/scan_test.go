package offsets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordata/hashpart/pkg/histogram"
)

func Test_ExclusiveScan_basic(t *testing.T) {
	xs := []int64{3, 1, 4, 1, 5}
	total := ExclusiveScan(xs)
	require.Equal(t, []int64{0, 3, 4, 8, 9}, xs)
	require.EqualValues(t, 14, total)
}

func Test_ExclusiveScan_empty(t *testing.T) {
	var xs []int64
	require.EqualValues(t, 0, ExclusiveScan(xs))
}

func Test_Run_partitionOffsetsNonDecreasingAndStartAtZero(t *testing.T) {
	hist := &histogram.Result{
		BlockHistogram:  []int64{2, 1, 0, 3, 0, 1}, // partition-major, 2 partitions x 3 blocks
		GlobalHistogram: []int64{3, 4},
		NumBlocks:       3,
		NumPartitions:   2,
	}
	res, err := Run(context.Background(), hist)
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, res.PartitionOffsets)
	require.Equal(t, 7, res.Total)
}

func Test_Run_blockScanGivesAbsoluteAddressWithinPartition(t *testing.T) {
	// Partition 0 has blocks [2,1,0] (total 3), partition 1 has [3,0,1] (total 4).
	hist := &histogram.Result{
		BlockHistogram:  []int64{2, 1, 0, 3, 0, 1},
		GlobalHistogram: []int64{3, 4},
		NumBlocks:       3,
		NumPartitions:   2,
	}
	res, err := Run(context.Background(), hist)
	require.NoError(t, err)

	// partition 0's blocks start at absolute offset 0 (matches PartitionOffsets[0]).
	require.EqualValues(t, 0, res.BlockScan[0*3+0])
	require.EqualValues(t, 2, res.BlockScan[0*3+1])
	require.EqualValues(t, 3, res.BlockScan[0*3+2])
	// partition 1's blocks start at absolute offset 3 (== PartitionOffsets[1]).
	require.EqualValues(t, 3, res.BlockScan[1*3+0])
	require.EqualValues(t, 6, res.BlockScan[1*3+1])
	require.EqualValues(t, 6, res.BlockScan[1*3+2])
}
