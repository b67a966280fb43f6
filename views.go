package bbgraph

import (
	"fmt"
	"strings"
)

// EdgeFeatures returns, for every edge in edge order, the numeric code of
// its EdgeType.
func (b *Builder) EdgeFeatures() []int {
	edgeTypes := b.arrays.edgeTypes
	features := make([]int, len(edgeTypes))
	for i, et := range edgeTypes {
		features[i] = int(et)
	}
	return features
}

// InstructionNodeMask returns, for every node in node order, whether that
// node is an Instruction node.
func (b *Builder) InstructionNodeMask() []bool {
	nodeTypes := b.arrays.nodeTypes
	mask := make([]bool, len(nodeTypes))
	for i, nt := range nodeTypes {
		mask[i] = nt == NodeInstruction
	}
	return mask
}

// DeltaBlockIndex returns, for every Instruction node in node order, the
// 0-based index of the block it belongs to. It panics with an
// InvariantError if the computed index is internally inconsistent with
// NumNodesPerBlock/NumBlocks/NumNodes — such an inconsistency can only
// follow from a bug elsewhere in the Builder, never from caller input.
func (b *Builder) DeltaBlockIndex() []int {
	nodeTypes := b.arrays.nodeTypes
	numNodesPerBlock := b.arrays.numNodesPerBlock
	numBlocks := b.arrays.numBlocks()

	numInstructions := 0
	for _, nt := range nodeTypes {
		if nt == NodeInstruction {
			numInstructions++
		}
	}

	deltaBlockIndex := make([]int, 0, numInstructions)
	block := -1
	blockEnd := 0
	for node := range nodeTypes {
		if nodeTypes[node] != NodeInstruction {
			continue
		}
		for node >= blockEnd && block < numBlocks {
			block++
			blockEnd += int(numNodesPerBlock[block])
		}
		deltaBlockIndex = append(deltaBlockIndex, block)
	}
	// Trailing blocks with no instructions contribute no entries, but the
	// cursor still has to pass over them.
	for block < numBlocks-1 {
		block++
		blockEnd += int(numNodesPerBlock[block])
	}

	if block != numBlocks-1 {
		fatalf("delta_block_index", "final block index %d != num_blocks-1 (%d)", block, numBlocks-1)
	}
	if blockEnd != b.arrays.numNodes() {
		fatalf("delta_block_index", "block cursor %d != num_nodes (%d)", blockEnd, b.arrays.numNodes())
	}
	if len(deltaBlockIndex) != numInstructions {
		fatalf("delta_block_index", "output length %d != num_instructions (%d)", len(deltaBlockIndex), numInstructions)
	}
	return deltaBlockIndex
}

// TokenHistogram sums GlobalFeatures across every block, yielding the
// count of nodes carrying each token across the whole batch.
func (b *Builder) TokenHistogram() []int {
	histogram := make([]int, b.vocab.Size())
	for _, blockHistogram := range b.arrays.globalFeatures {
		for token, count := range blockHistogram {
			histogram[token] += int(count)
		}
	}
	return histogram
}

// DebugString returns a human-readable dump of the Builder's state. The
// key set is stable; the exact textual form is not a contract.
func (b *Builder) DebugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "num_blocks = %d\n", b.NumBlocks())
	fmt.Fprintf(&buf, "num_nodes = %d\n", b.NumNodes())
	fmt.Fprintf(&buf, "num_edges = %d\n", b.NumEdges())
	fmt.Fprintf(&buf, "num_node_tokens = %d\n", b.NumNodeTokens())
	appendIntList(&buf, "num_nodes_per_block", b.arrays.numNodesPerBlock)
	appendIntList(&buf, "num_edges_per_block", b.arrays.numEdgesPerBlock)
	appendStringerList(&buf, "node_types", b.arrays.nodeTypes)
	appendIntList(&buf, "edge_senders", b.arrays.edgeSenders)
	appendIntList(&buf, "edge_receivers", b.arrays.edgeReceivers)
	appendStringerList(&buf, "edge_types", b.arrays.edgeTypes)
	appendBoolList(&buf, "instruction_node_mask", b.InstructionNodeMask())
	appendIntList(&buf, "delta_block_index", b.DeltaBlockIndex())
	return buf.String()
}

type integer interface {
	~int | ~int32
}

func appendIntList[T integer](buf *strings.Builder, name string, items []T) {
	fmt.Fprintf(buf, "%s = [", name)
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%d", item)
	}
	buf.WriteString("]\n")
}

func appendBoolList(buf *strings.Builder, name string, items []bool) {
	fmt.Fprintf(buf, "%s = [", name)
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%t", item)
	}
	buf.WriteString("]\n")
}

func appendStringerList[T fmt.Stringer](buf *strings.Builder, name string, items []T) {
	fmt.Fprintf(buf, "%s = [", name)
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(item.String())
	}
	buf.WriteString("]\n")
}
