package asmtext

import (
	"github.com/pkg/errors"

	"github.com/gematria-go/bbgraph"
)

// Parse converts one block's worth of asmtext source into
// bbgraph.Instruction values, ready to hand to Builder.AddBlock. Parse
// performs no vocabulary lookups and no decoding of machine code: it only
// gives literal, already-named mnemonics and operands a struct shape.
func Parse(src string) ([]bbgraph.Instruction, error) {
	block, err := parser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(err, "asmtext: parse failed")
	}

	instructions := make([]bbgraph.Instruction, 0, len(block.Instructions))
	for _, instr := range block.Instructions {
		inputs, outputs, err := splitOperands(instr.Inputs, instr.Outputs)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, bbgraph.Instruction{
			Mnemonic:      instr.Mnemonic,
			Prefixes:      instr.Prefixes,
			InputOperands:  inputs,
			OutputOperands: outputs,
		})
	}
	return instructions, nil
}

func splitOperands(inputs, outputs []*Operand) ([]bbgraph.InstructionOperand, []bbgraph.InstructionOperand, error) {
	in, err := toOperands(inputs)
	if err != nil {
		return nil, nil, err
	}
	out, err := toOperands(outputs)
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}

func toOperands(operands []*Operand) ([]bbgraph.InstructionOperand, error) {
	result := make([]bbgraph.InstructionOperand, 0, len(operands))
	for _, op := range operands {
		converted, err := toOperand(op)
		if err != nil {
			return nil, err
		}
		result = append(result, converted)
	}
	return result, nil
}

func toOperand(op *Operand) (bbgraph.InstructionOperand, error) {
	switch {
	case op.Memory != nil:
		return bbgraph.Memory(op.Memory.AliasGroupID), nil
	case op.Address != nil:
		return bbgraph.Address(bbgraph.AddressOperand{
			BaseRegister:    op.Address.Base,
			IndexRegister:   op.Address.Index,
			SegmentRegister: op.Address.Segment,
			Displacement:    op.Address.Displacement,
			Scaling:         int32(op.Address.Scale),
		}), nil
	case op.FpImmediate != nil:
		return bbgraph.FpImmediate(), nil
	case op.Immediate != nil:
		return bbgraph.Immediate(), nil
	case op.Register != nil:
		return bbgraph.Register(*op.Register), nil
	default:
		return bbgraph.InstructionOperand{}, errors.New("asmtext: operand matched no known alternative")
	}
}
