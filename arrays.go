package bbgraph

// graphArrays is the flat, parallel-array storage backing a Builder's
// batch: every node, edge, and per-block count the Builder has ever
// committed lives here, and nowhere else. Nodes and edges are addressed
// by position in these arrays, never by pointer.
type graphArrays struct {
	nodeTypes    []NodeType
	nodeFeatures []TokenIndex

	edgeSenders   []NodeIndex
	edgeReceivers []NodeIndex
	edgeTypes     []EdgeType

	numNodesPerBlock []int32
	numEdgesPerBlock []int32
	globalFeatures   [][]int32 // one histogram of length vocabSize per block
}

func newGraphArrays() *graphArrays {
	return &graphArrays{}
}

func (a *graphArrays) numNodes() int {
	return len(a.nodeTypes)
}

func (a *graphArrays) numEdges() int {
	return len(a.edgeSenders)
}

func (a *graphArrays) numBlocks() int {
	return len(a.numNodesPerBlock)
}

// addNode appends a node and returns its dense index.
func (a *graphArrays) addNode(nodeType NodeType, token TokenIndex) NodeIndex {
	idx := NodeIndex(a.numNodes())
	a.nodeTypes = append(a.nodeTypes, nodeType)
	a.nodeFeatures = append(a.nodeFeatures, token)
	return idx
}

// addEdge appends an edge. Both endpoints must already be valid node
// indices; this is asserted rather than reported as a recoverable error
// because a caller passing an out-of-range endpoint is a programming bug in
// the translator, never a property of untrusted input.
func (a *graphArrays) addEdge(edgeType EdgeType, sender, receiver NodeIndex) {
	n := NodeIndex(a.numNodes())
	if sender < 0 || sender >= n {
		fatalf("valid edge endpoint", "sender %d out of range [0,%d)", sender, n)
	}
	if receiver < 0 || receiver >= n {
		fatalf("valid edge endpoint", "receiver %d out of range [0,%d)", receiver, n)
	}
	a.edgeSenders = append(a.edgeSenders, sender)
	a.edgeReceivers = append(a.edgeReceivers, receiver)
	a.edgeTypes = append(a.edgeTypes, edgeType)
}

func (a *graphArrays) reset() {
	a.nodeTypes = a.nodeTypes[:0]
	a.nodeFeatures = a.nodeFeatures[:0]
	a.edgeSenders = a.edgeSenders[:0]
	a.edgeReceivers = a.edgeReceivers[:0]
	a.edgeTypes = a.edgeTypes[:0]
	a.numNodesPerBlock = a.numNodesPerBlock[:0]
	a.numEdgesPerBlock = a.numEdgesPerBlock[:0]
	a.globalFeatures = a.globalFeatures[:0]
}
