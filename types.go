package bbgraph

// NodeType is one of the seven node kinds a Builder ever emits.
type NodeType byte

const (
	NodeInstruction NodeType = iota
	NodeRegister
	NodeImmediate
	NodeFpImmediate
	NodeAddressOperand
	NodeMemoryOperand
	NodePrefix

	numNodeTypes = int(NodePrefix) + 1
)

func (nt NodeType) String() string {
	return [numNodeTypes]string{
		"Instruction",
		"Register",
		"Immediate",
		"FpImmediate",
		"AddressOperand",
		"MemoryOperand",
		"Prefix",
	}[nt]
}

// EdgeType is one of the nine edge kinds a Builder ever emits.
type EdgeType byte

const (
	EdgeStructuralDependency EdgeType = iota
	EdgeInputOperands
	EdgeOutputOperands
	EdgeAddressBaseRegister
	EdgeAddressIndexRegister
	EdgeAddressSegmentRegister
	EdgeAddressDisplacement
	EdgeReverseStructuralDependency
	EdgeInstructionPrefix

	numEdgeTypes = int(EdgeInstructionPrefix) + 1
)

func (et EdgeType) String() string {
	return [numEdgeTypes]string{
		"StructuralDependency",
		"InputOperands",
		"OutputOperands",
		"AddressBaseRegister",
		"AddressIndexRegister",
		"AddressSegmentRegister",
		"AddressDisplacement",
		"ReverseStructuralDependency",
		"InstructionPrefix",
	}[et]
}

// TokenIndex is a dense index into a Vocabulary, in [0, |V|).
type TokenIndex int32

// InvalidTokenIndex is returned by lookups that fail to resolve a token.
const InvalidTokenIndex TokenIndex = -1

// NodeIndex is a dense index into a Builder's node arrays, in [0, NumNodes).
type NodeIndex int32

// InvalidNodeIndex marks the absence of a node, e.g. "no previous instruction yet".
const InvalidNodeIndex NodeIndex = -1
