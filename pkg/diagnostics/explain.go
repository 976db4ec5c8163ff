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

package diagnostics

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// PlanStage names one of the six fixed stages every hash_partition call
// goes through, in order.
type PlanStage struct {
	Name   string
	Detail string
}

// ExplainTree renders the fixed six-stage pipeline as a printable tree,
// annotated with the row/partition counts of this particular invocation,
// in the same spirit as the teacher's plan-tree printers (root/plan.go's
// String() walking a logical plan). Nothing here is a decision point —
// hash_partition never branches its stage order — so the tree is always
// this same shape; only the annotations vary per call.
func ExplainTree(rows, numPartitions, numBlocks int, kernel fmt.Stringer) string {
	root := treeprint.NewWithRoot(fmt.Sprintf("hash_partition(rows=%d, partitions=%d)", rows, numPartitions))

	hash := root.AddBranch(fmt.Sprintf("hash [kernel=%s]", kernel))
	hash.AddNode("row hasher (C1): one 32-bit hash per row over key columns")

	assign := root.AddBranch("partition-assign")
	assign.AddNode(fmt.Sprintf("partitioner functor (C2), N=%d", numPartitions))

	histo := root.AddBranch(fmt.Sprintf("histogram [blocks=%d]", numBlocks))
	histo.AddNode("block_histogram, global_histogram, row_local_offset (C3)")

	scan := root.AddBranch("scan")
	scan.AddNode("exclusive prefix sum over block_histogram and global_histogram (C4)")

	scatter := root.AddBranch("scatter")
	scatter.AddNode("per (column, block) write to final row position (C5)")

	root.AddNode("assemble output table + partition_offsets")

	return root.String()
}
