// Package bbgraph converts basic blocks of decoded instructions into a
// typed, heterogeneous directed graph suitable for graph-neural-network
// consumption: instructions, registers, immediates, and addressing
// expressions become nodes; data and control dependencies between them
// become typed edges. Nodes and edges accumulate across successive
// blocks into one shared batch, exposed as flat parallel arrays.
package bbgraph

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// BuilderOptions carries optional, off-by-default behavior toggles.
// The zero value reproduces the base translation algorithm exactly.
type BuilderOptions struct {
	// AddReverseStructuralDependencyEdges additionally emits a
	// ReverseStructuralDependency edge (current -> previous) alongside
	// every StructuralDependency edge (previous -> current).
	AddReverseStructuralDependencyEdges bool
}

// Builder incrementally translates basic blocks into a shared batch of
// graph arrays. It is not safe for concurrent use; callers must serialize
// AddBlock/Reset/accessor calls.
type Builder struct {
	vocab *Vocabulary

	immediateToken   TokenIndex
	fpImmediateToken TokenIndex
	addressToken     TokenIndex
	memoryToken      TokenIndex

	oov              OOVPolicy
	replacementToken TokenIndex

	opts BuilderOptions

	arrays  *graphArrays
	scratch *blockScratch
}

// New constructs a Builder. tokens is the fixed vocabulary; the four
// following strings must each resolve within it. Any configuration error
// (an empty or duplicate-bearing vocabulary, or a required token missing
// from it) is fatal and raised via panic.
func New(tokens []string, immediateToken, fpImmediateToken, addressToken, memoryToken string, oov OOVPolicy) *Builder {
	return NewWithOptions(tokens, immediateToken, fpImmediateToken, addressToken, memoryToken, oov, BuilderOptions{})
}

// NewWithOptions is New with explicit BuilderOptions.
func NewWithOptions(tokens []string, immediateToken, fpImmediateToken, addressToken, memoryToken string, oov OOVPolicy, opts BuilderOptions) *Builder {
	vocab := NewVocabulary(tokens)

	b := &Builder{
		vocab:            vocab,
		immediateToken:   vocab.MustLookup(immediateToken),
		fpImmediateToken: vocab.MustLookup(fpImmediateToken),
		addressToken:     vocab.MustLookup(addressToken),
		memoryToken:      vocab.MustLookup(memoryToken),
		oov:              oov,
		replacementToken: InvalidTokenIndex,
		opts:             opts,
		arrays:           newGraphArrays(),
		scratch:          newBlockScratch(),
	}
	if oov.Behavior == OOVReplaceToken {
		idx, found := vocab.Lookup(oov.Replacement)
		if !found {
			fatalf("NewWithOptions", "%s: %q", ErrBadReplacement, oov.Replacement)
		}
		b.replacementToken = idx
	}
	return b
}

// AddBlock appends one basic block's worth of nodes and edges to the
// Builder's batch. On success it returns (true, nil) and every node and
// edge produced by the block has been committed. On failure (an unknown
// token under OOVReturnError) it returns (false, err) and the Builder is
// left bit-identical to its state before the call.
func (b *Builder) AddBlock(instructions []Instruction) (bool, error) {
	txn := beginTransaction(b.arrays)
	b.scratch.clear()

	prevNumNodes := b.arrays.numNodes()
	prevNumEdges := b.arrays.numEdges()

	previousInstructionNode := InvalidNodeIndex
	for _, instr := range instructions {
		instructionNode, err := b.addNodeToken(NodeInstruction, instr.Mnemonic)
		if err != nil {
			txn.rollback()
			return false, err
		}

		for _, prefix := range instr.Prefixes {
			prefixNode, err := b.addNodeToken(NodePrefix, prefix)
			if err != nil {
				txn.rollback()
				return false, err
			}
			b.arrays.addEdge(EdgeInstructionPrefix, prefixNode, instructionNode)
		}

		if previousInstructionNode != InvalidNodeIndex {
			b.arrays.addEdge(EdgeStructuralDependency, previousInstructionNode, instructionNode)
			if b.opts.AddReverseStructuralDependencyEdges {
				b.arrays.addEdge(EdgeReverseStructuralDependency, instructionNode, previousInstructionNode)
			}
		}

		for _, operand := range instr.InputOperands {
			if err := b.addInputOperand(instructionNode, operand); err != nil {
				txn.rollback()
				return false, err
			}
		}
		for _, operand := range instr.ImplicitInputOperands {
			if err := b.addInputOperand(instructionNode, operand); err != nil {
				txn.rollback()
				return false, err
			}
		}

		for _, operand := range instr.OutputOperands {
			if err := b.addOutputOperand(instructionNode, operand); err != nil {
				txn.rollback()
				return false, err
			}
		}
		for _, operand := range instr.ImplicitOutputOperands {
			if err := b.addOutputOperand(instructionNode, operand); err != nil {
				txn.rollback()
				return false, err
			}
		}

		previousInstructionNode = instructionNode
	}

	histogram := make([]int32, b.vocab.Size())
	for i := prevNumNodes; i < b.arrays.numNodes(); i++ {
		histogram[b.arrays.nodeFeatures[i]]++
	}
	b.arrays.globalFeatures = append(b.arrays.globalFeatures, histogram)

	b.arrays.numNodesPerBlock = append(b.arrays.numNodesPerBlock, int32(b.arrays.numNodes()-prevNumNodes))
	b.arrays.numEdgesPerBlock = append(b.arrays.numEdgesPerBlock, int32(b.arrays.numEdges()-prevNumEdges))

	txn.commit()
	return true, nil
}

// Reset clears every array. The vocabulary and OOV policy are retained.
func (b *Builder) Reset() {
	b.arrays.reset()
}

func (b *Builder) addInputOperand(instructionNode NodeIndex, operand InstructionOperand) error {
	switch operand.Kind {
	case OperandRegister:
		return b.addDependencyOnRegister(instructionNode, operand.RegisterName, EdgeInputOperands)

	case OperandImmediate:
		node := b.arrays.addNode(NodeImmediate, b.immediateToken)
		b.arrays.addEdge(EdgeInputOperands, node, instructionNode)
		return nil

	case OperandFpImmediate:
		node := b.arrays.addNode(NodeFpImmediate, b.fpImmediateToken)
		b.arrays.addEdge(EdgeInputOperands, node, instructionNode)
		return nil

	case OperandAddress:
		addressNode := b.arrays.addNode(NodeAddressOperand, b.addressToken)
		addr := operand.Address

		if addr.BaseRegister != "" {
			if err := b.addDependencyOnRegister(addressNode, addr.BaseRegister, EdgeAddressBaseRegister); err != nil {
				return err
			}
		}
		if addr.IndexRegister != "" {
			if err := b.addDependencyOnRegister(addressNode, addr.IndexRegister, EdgeAddressIndexRegister); err != nil {
				return err
			}
		}
		if addr.SegmentRegister != "" {
			if err := b.addDependencyOnRegister(addressNode, addr.SegmentRegister, EdgeAddressSegmentRegister); err != nil {
				return err
			}
		}
		if addr.Displacement != 0 {
			immediateNode := b.arrays.addNode(NodeImmediate, b.immediateToken)
			b.arrays.addEdge(EdgeAddressDisplacement, immediateNode, addressNode)
		}
		// Scaling is intentionally never consulted: it is decoded by the
		// caller but contributes no node or edge to the graph.

		b.arrays.addEdge(EdgeInputOperands, addressNode, instructionNode)
		return nil

	case OperandMemory:
		node, found := b.scratch.aliasGroup(operand.AliasGroupID)
		if !found {
			node = b.arrays.addNode(NodeMemoryOperand, b.memoryToken)
			b.scratch.setAliasGroup(operand.AliasGroupID, node)
		}
		b.arrays.addEdge(EdgeInputOperands, node, instructionNode)
		return nil

	default:
		fatalf("operand kind", "input operand is Unknown or unrecognized (kind=%d)", operand.Kind)
		return nil // unreachable
	}
}

func (b *Builder) addOutputOperand(instructionNode NodeIndex, operand InstructionOperand) error {
	switch operand.Kind {
	case OperandRegister:
		registerNode, err := b.addNodeToken(NodeRegister, operand.RegisterName)
		if err != nil {
			return err
		}
		b.arrays.addEdge(EdgeOutputOperands, instructionNode, registerNode)
		b.scratch.setRegister(operand.RegisterName, registerNode)
		return nil

	case OperandImmediate, OperandFpImmediate, OperandAddress:
		fatalf("output operand kind", "immediate, fp-immediate, and address operands cannot be output operands")
		return nil // unreachable

	case OperandMemory:
		memoryNode := b.arrays.addNode(NodeMemoryOperand, b.memoryToken)
		b.scratch.setAliasGroup(operand.AliasGroupID, memoryNode)
		b.arrays.addEdge(EdgeOutputOperands, instructionNode, memoryNode)
		return nil

	default:
		fatalf("operand kind", "output operand is Unknown or unrecognized (kind=%d)", operand.Kind)
		return nil // unreachable
	}
}

func (b *Builder) addDependencyOnRegister(dependent NodeIndex, name string, edgeType EdgeType) error {
	registerNode, found := b.scratch.register(name)
	if !found {
		var err error
		registerNode, err = b.addNodeToken(NodeRegister, name)
		if err != nil {
			return err
		}
		b.scratch.setRegister(name, registerNode)
	}
	b.arrays.addEdge(edgeType, registerNode, dependent)
	return nil
}

// addNodeToken resolves token in the vocabulary and appends a node of the
// given type, applying the Builder's OOV policy on a miss.
func (b *Builder) addNodeToken(nodeType NodeType, token string) (NodeIndex, error) {
	index, found := b.vocab.Lookup(token)
	if !found {
		switch b.oov.Behavior {
		case OOVReturnError:
			return InvalidNodeIndex, errors.Wrapf(ErrUnknownToken, "token %q", token)
		case OOVReplaceToken:
			klog.Warningf("bbgraph: unexpected token %q; substituting %q", token, b.oov.Replacement)
			index = b.replacementToken
		}
	}
	return b.arrays.addNode(nodeType, index), nil
}

// NumNodes returns the total number of nodes committed so far.
func (b *Builder) NumNodes() int { return b.arrays.numNodes() }

// NumEdges returns the total number of edges committed so far.
func (b *Builder) NumEdges() int { return b.arrays.numEdges() }

// NumBlocks returns the number of successfully committed blocks.
func (b *Builder) NumBlocks() int { return b.arrays.numBlocks() }

// NumNodeTokens returns |V|, the vocabulary size.
func (b *Builder) NumNodeTokens() int { return b.vocab.Size() }

// NodeTypes is a read-only view of every node's type, in node order.
func (b *Builder) NodeTypes() []NodeType { return b.arrays.nodeTypes }

// NodeFeatures is a read-only view of every node's token feature, in node order.
func (b *Builder) NodeFeatures() []TokenIndex { return b.arrays.nodeFeatures }

// EdgeSenders is a read-only view of every edge's sender, in edge order.
func (b *Builder) EdgeSenders() []NodeIndex { return b.arrays.edgeSenders }

// EdgeReceivers is a read-only view of every edge's receiver, in edge order.
func (b *Builder) EdgeReceivers() []NodeIndex { return b.arrays.edgeReceivers }

// EdgeTypes is a read-only view of every edge's type, in edge order.
func (b *Builder) EdgeTypes() []EdgeType { return b.arrays.edgeTypes }

// NumNodesPerBlock is a read-only view of each block's node count.
func (b *Builder) NumNodesPerBlock() []int32 { return b.arrays.numNodesPerBlock }

// NumEdgesPerBlock is a read-only view of each block's edge count.
func (b *Builder) NumEdgesPerBlock() []int32 { return b.arrays.numEdgesPerBlock }

// GlobalFeatures is a read-only view of each block's token histogram
// (length |V|, indexed by TokenIndex).
func (b *Builder) GlobalFeatures() [][]int32 { return b.arrays.globalFeatures }
