package bbgraph

// OperandKind is the tag of the InstructionOperand sum type.
type OperandKind byte

const (
	// OperandUnknown is the zero value; a malformed operand that must never
	// reach addInputOperand/addOutputOperand in production input.
	OperandUnknown OperandKind = iota
	OperandRegister
	OperandImmediate
	OperandFpImmediate
	OperandAddress
	OperandMemory
)

// AddressOperand decomposes a memory-addressing expression into its
// base/index/segment registers, integer displacement, and scale. Scale is
// decoded but intentionally never consulted by the translator.
type AddressOperand struct {
	BaseRegister    string // empty if absent
	IndexRegister   string // empty if absent
	SegmentRegister string // empty if absent
	Displacement    int64
	Scaling         int32
}

// InstructionOperand is a closed tagged union over the five operand shapes
// the translator understands. Construct one with the Register/Immediate/
// FpImmediate/Address/Memory helpers rather than assembling the struct by
// hand.
type InstructionOperand struct {
	Kind          OperandKind
	RegisterName  string
	Address       AddressOperand
	AliasGroupID  int64
}

// Register builds a register operand.
func Register(name string) InstructionOperand {
	return InstructionOperand{Kind: OperandRegister, RegisterName: name}
}

// Immediate builds an integer-immediate operand.
func Immediate() InstructionOperand {
	return InstructionOperand{Kind: OperandImmediate}
}

// FpImmediate builds a floating-point-immediate operand.
func FpImmediate() InstructionOperand {
	return InstructionOperand{Kind: OperandFpImmediate}
}

// Address builds an addressing-expression operand.
func Address(addr AddressOperand) InstructionOperand {
	return InstructionOperand{Kind: OperandAddress, Address: addr}
}

// Memory builds a memory operand identified by its alias-group id.
func Memory(aliasGroupID int64) InstructionOperand {
	return InstructionOperand{Kind: OperandMemory, AliasGroupID: aliasGroupID}
}

// Instruction is one decoded instruction: a mnemonic token, its ordered
// prefixes, and its four ordered operand lists. Instruction values are
// produced by an external collaborator (a disassembler, or in this repo's
// case bbgraph/asmtext) — the Builder never constructs them itself.
type Instruction struct {
	Mnemonic              string
	Prefixes              []string
	InputOperands         []InstructionOperand
	ImplicitInputOperands []InstructionOperand
	OutputOperands        []InstructionOperand
	ImplicitOutputOperands []InstructionOperand
}
