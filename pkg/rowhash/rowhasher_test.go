package rowhash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordata/hashpart/pkg/table"
)

func oneColTable(values []int64) *table.Table {
	return table.New([]*table.Column{table.Int64Column(values)}, len(values))
}

func Test_Hash_isDeterministic(t *testing.T) {
	tbl := oneColTable([]int64{0, 1, 2})
	h := NewRowHasher(Murmur32, nil)

	var first, second []uint32
	for row := 0; row < tbl.NumRows(); row++ {
		first = append(first, h.Hash(tbl, row))
	}
	for row := 0; row < tbl.NumRows(); row++ {
		second = append(second, h.Hash(tbl, row))
	}
	require.Equal(t, first, second)
}

func Test_Hash_producesDistinctValuesForDistinctRows(t *testing.T) {
	tbl := oneColTable([]int64{0, 1, 2})
	h := NewRowHasher(Murmur32, nil)

	seen := map[uint32]bool{}
	for row := 0; row < tbl.NumRows(); row++ {
		seen[h.Hash(tbl, row)] = true
	}
	require.Len(t, seen, 3)
}

func Test_Hash_nullSentinelIsStable(t *testing.T) {
	col := table.Int64ColumnWithNulls([]int64{10, 20, 30}, []int{0, 2})
	tbl := table.New([]*table.Column{col}, 3)
	h := NewRowHasher(Murmur32, nil)

	require.Equal(t, h.Hash(tbl, 0), h.Hash(tbl, 2), "two null cells in the same column must hash identically")
	require.NotEqual(t, h.Hash(tbl, 0), h.Hash(tbl, 1))
}

func Test_Hash_kernelChoiceChangesValueNotDeterminism(t *testing.T) {
	tbl := oneColTable([]int64{42})
	murmur := NewRowHasher(Murmur32, nil).Hash(tbl, 0)
	metro := NewRowHasher(Metro32, nil).Hash(tbl, 0)
	require.NotEqual(t, murmur, metro)

	require.Equal(t, murmur, NewRowHasher(Murmur32, nil).Hash(tbl, 0))
	require.Equal(t, metro, NewRowHasher(Metro32, nil).Hash(tbl, 0))
}

func Test_DefaultSeed_variesByType(t *testing.T) {
	seeds := map[uint32]bool{}
	for _, s := range defaultSeeds {
		seeds[s] = true
	}
	require.Greater(t, len(seeds), 1)
}
