package bbgraph

// transaction records the size of every parallel array in a graphArrays at
// the moment a block begins. If the block is abandoned, rollback truncates
// every array back to the recorded size, restoring the Builder to exactly
// its pre-call state, including across error paths that originate deep in
// operand translation.
//
// The zero-cost path is success: commit is a no-op latch, never a copy.
type transaction struct {
	arrays *graphArrays

	prevNumNodesPerBlockLen int
	prevNumEdgesPerBlockLen int
	prevNodeTypesLen        int
	prevNodeFeaturesLen     int
	prevEdgeSendersLen      int
	prevEdgeReceiversLen    int
	prevEdgeTypesLen        int
	prevGlobalFeaturesLen   int

	committed bool
}

func beginTransaction(a *graphArrays) *transaction {
	return &transaction{
		arrays: a,

		prevNumNodesPerBlockLen: len(a.numNodesPerBlock),
		prevNumEdgesPerBlockLen: len(a.numEdgesPerBlock),
		prevNodeTypesLen:        len(a.nodeTypes),
		prevNodeFeaturesLen:     len(a.nodeFeatures),
		prevEdgeSendersLen:      len(a.edgeSenders),
		prevEdgeReceiversLen:    len(a.edgeReceivers),
		prevEdgeTypesLen:        len(a.edgeTypes),
		prevGlobalFeaturesLen:   len(a.globalFeatures),
	}
}

// commit sets the latch that turns rollback into a no-op. It never touches
// the underlying arrays.
func (t *transaction) commit() {
	t.committed = true
}

// rollback truncates every array in the transaction's graphArrays back to
// its recorded start-of-block size. A shrunk array (smaller now than at
// transaction start) means Reset() ran concurrently with this AddBlock,
// which is a fatal programming error under the Builder's single-threaded
// contract.
func (t *transaction) rollback() {
	if t.committed {
		return
	}
	a := t.arrays
	a.numNodesPerBlock = checkAndTruncate(a.numNodesPerBlock, t.prevNumNodesPerBlockLen, "num_nodes_per_block")
	a.numEdgesPerBlock = checkAndTruncate(a.numEdgesPerBlock, t.prevNumEdgesPerBlockLen, "num_edges_per_block")
	a.nodeTypes = checkAndTruncate(a.nodeTypes, t.prevNodeTypesLen, "node_types")
	a.nodeFeatures = checkAndTruncate(a.nodeFeatures, t.prevNodeFeaturesLen, "node_features")
	a.edgeSenders = checkAndTruncate(a.edgeSenders, t.prevEdgeSendersLen, "edge_senders")
	a.edgeReceivers = checkAndTruncate(a.edgeReceivers, t.prevEdgeReceiversLen, "edge_receivers")
	a.edgeTypes = checkAndTruncate(a.edgeTypes, t.prevEdgeTypesLen, "edge_types")
	a.globalFeatures = truncateGlobalFeatures(a.globalFeatures, t.prevGlobalFeaturesLen)
}

func checkAndTruncate[T any](slice []T, prevLen int, name string) []T {
	if len(slice) < prevLen {
		fatalf("transaction rollback", "%s shrank from %d to %d; did Reset() race with AddBlock()?", name, prevLen, len(slice))
	}
	return slice[:prevLen]
}

func truncateGlobalFeatures(slice [][]int32, prevLen int) [][]int32 {
	if len(slice) < prevLen {
		fatalf("transaction rollback", "global_features shrank from %d to %d; did Reset() race with AddBlock()?", prevLen, len(slice))
	}
	return slice[:prevLen]
}
