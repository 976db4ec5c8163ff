package partition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordata/hashpart/pkg/partfunc"
	"github.com/cordata/hashpart/pkg/rowhash"
	"github.com/cordata/hashpart/pkg/table"
)

func kv(values ...int64) *table.Column { return table.Int64Column(values) }

func mkTable(cols ...*table.Column) *table.Table {
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	return table.New(cols, n)
}

// Scenario 1: two-column keys, N=2, power-of-two path.
func Test_Scenario1_coLocatesMatchingKeys(t *testing.T) {
	in := mkTable(kv(1, 2, 1, 3, 1), kv(1, 2, 1, 4, 1), kv(3, 1, 4, 9, 2))
	out, offs, err := HashPartition(context.Background(), in, []int{0, 1}, 2, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Len(t, offs, 2)
	require.Equal(t, 5, out.NumRows())

	k0 := table.Slice[int64](out.Column(0))
	k1 := table.Slice[int64](out.Column(1))
	val := table.Slice[int64](out.Column(2))

	seen := map[[2]int64][]int64{}
	for i := range k0 {
		seen[[2]int64{k0[i], k1[i]}] = append(seen[[2]int64{k0[i], k1[i]}], val[i])
	}
	require.ElementsMatch(t, []int64{3, 4, 2}, seen[[2]int64{1, 1}])
	require.ElementsMatch(t, []int64{1}, seen[[2]int64{2, 2}])
	require.ElementsMatch(t, []int64{9}, seen[[2]int64{3, 4}])
}

// Scenario 2: single-column keys all equal, N=4.
func Test_Scenario2_allEqualKeysSharePartition(t *testing.T) {
	in := mkTable(kv(5, 5, 5, 5))
	out, offs, err := HashPartition(context.Background(), in, []int{0}, 4, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())
	require.Len(t, offs, 4)

	nonEmpty := 0
	for p := 0; p < 4; p++ {
		end := 4
		if p+1 < 4 {
			end = offs[p+1]
		}
		size := end - offs[p]
		if size > 0 {
			nonEmpty++
			require.Equal(t, 4, size)
		}
	}
	require.Equal(t, 1, nonEmpty)
}

// Scenario 3: one key column entirely null, null-aware path, N=3.
func Test_Scenario3_allNullKeysShareOnePartition(t *testing.T) {
	col := table.Int64ColumnWithNulls([]int64{0, 0, 0}, []int{0, 1, 2})
	in := mkTable(col)
	out, offs, err := HashPartition(context.Background(), in, []int{0}, 3, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	nonEmpty := 0
	for p := 0; p < 3; p++ {
		end := 3
		if p+1 < 3 {
			end = offs[p+1]
		}
		if end-offs[p] > 0 {
			nonEmpty++
		}
	}
	require.Equal(t, 1, nonEmpty)
}

// Scenario 4: N=1 on any input.
func Test_Scenario4_singlePartitionKeepsAllRows(t *testing.T) {
	in := mkTable(kv(7, 8, 9, 10))
	out, offs, err := HashPartition(context.Background(), in, []int{0}, 1, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, []int{0}, offs)
	require.Equal(t, 4, out.NumRows())
	require.ElementsMatch(t, []int64{7, 8, 9, 10}, table.Slice[int64](out.Column(0)))
}

// Scenario 5: hash determinism and distinctness.
func Test_Scenario5_hashIsDeterministicAndDistinct(t *testing.T) {
	in := mkTable(kv(0, 1, 2))
	seeds := []uint32{0x9747b28c}

	c1, err := Hash(context.Background(), in, seeds)
	require.NoError(t, err)
	c2, err := Hash(context.Background(), in, seeds)
	require.NoError(t, err)

	v1 := table.Slice[uint32](c1)
	v2 := table.Slice[uint32](c2)
	require.Equal(t, v1, v2)
	require.Len(t, map[uint32]bool{v1[0]: true, v1[1]: true, v1[2]: true}, 3)
}

// Scenario 6: unsupported key type fails with a precondition error.
func Test_Scenario6_unsupportedKeyTypeRejected(t *testing.T) {
	varcharCol := &table.Column{Typ: 100} // not in the fixed-width set
	in := table.New([]*table.Column{varcharCol}, 3)
	_, _, err := HashPartition(context.Background(), in, []int{0}, 2, table.DefaultAllocator{})
	require.ErrorIs(t, err, table.ErrUnsupportedType)
}

// Invariant: empty input (R=0, N<=0, or zero key columns) yields an
// empty-like output and empty offsets.
func Test_Invariant_emptyInputShortCircuits(t *testing.T) {
	in := mkTable(kv())
	out, offs, err := HashPartition(context.Background(), in, []int{0}, 4, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, 0, out.NumRows())
	require.Empty(t, offs)

	in2 := mkTable(kv(1, 2, 3))
	out2, offs2, err := HashPartition(context.Background(), in2, []int{0}, 0, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, 0, out2.NumRows())
	require.Empty(t, offs2)

	out3, offs3, err := HashPartition(context.Background(), in2, nil, 4, table.DefaultAllocator{})
	require.NoError(t, err)
	require.Equal(t, 0, out3.NumRows())
	require.Empty(t, offs3)
}

// Invariant: permutation — output multiset equals input multiset.
func Test_Invariant_outputIsAPermutationOfInput(t *testing.T) {
	in := mkTable(kv(9, 2, 7, 2, 9, 1, 1, 1))
	out, _, err := HashPartition(context.Background(), in, []int{0}, 3, table.DefaultAllocator{})
	require.NoError(t, err)

	inCount := map[int64]int{}
	for _, v := range table.Slice[int64](in.Column(0)) {
		inCount[v]++
	}
	outCount := map[int64]int{}
	for _, v := range table.Slice[int64](out.Column(0)) {
		outCount[v]++
	}
	require.Equal(t, inCount, outCount)
}

// Invariant: bitmask/modulo equivalence for power-of-two N.
func Test_Invariant_bitmaskAndModuloAgreeForPowerOfTwoN(t *testing.T) {
	in := mkTable(kv(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12))
	outA, offA, errA := HashPartition(context.Background(), in, []int{0}, 8, table.DefaultAllocator{})
	require.NoError(t, errA)

	// Re-running must reproduce the same partitioning.
	outB, offB, errB := HashPartition(context.Background(), in, []int{0}, 8, table.DefaultAllocator{})
	require.NoError(t, errB)
	require.Equal(t, offA, offB)
	require.Equal(t, table.Slice[int64](outA.Column(0)), table.Slice[int64](outB.Column(0)))

	// HashPartition takes the bitmask path for N=8; the modulo functor must
	// assign every row hash to the same partition, so the partition sizes it
	// implies must equal the offset deltas HashPartition returned.
	hasher := rowhash.NewRowHasher(rowhash.Murmur32, nil)
	bm, mod := partfunc.Bitmask(8), partfunc.Modulo(8)
	sizes := make([]int, 8)
	for row := 0; row < in.NumRows(); row++ {
		h := hasher.Hash(in, row)
		require.Equal(t, mod(h), bm(h), "row %d", row)
		sizes[mod(h)]++
	}
	for p := 0; p < 8; p++ {
		end := outA.NumRows()
		if p+1 < 8 {
			end = offA[p+1]
		}
		require.Equal(t, sizes[p], end-offA[p], "partition %d", p)
	}
}

// Invariant: a null mask outside the null-aware path is rejected.
func Test_Invariant_nullMaskRejectedUnderNullObliviousConfiguration(t *testing.T) {
	keyCol := kv(1, 2, 3)
	payload := table.Int64ColumnWithNulls([]int64{1, 2, 3}, []int{1})
	in := mkTable(keyCol, payload)
	_, _, err := HashPartition(context.Background(), in, []int{0}, 2, table.DefaultAllocator{})
	require.ErrorIs(t, err, table.ErrNullMaskRejected)
}

// Invariant: hash seed-count mismatch is a precondition error.
func Test_Invariant_seedCountMismatchRejected(t *testing.T) {
	in := mkTable(kv(1, 2), kv(3, 4))
	_, err := Hash(context.Background(), in, []uint32{1})
	require.ErrorIs(t, err, table.ErrSeedCountMismatch)
}
