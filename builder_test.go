package bbgraph

import (
	"strings"
	"testing"
)

func TestNewPanicsOnEmptyVocabulary(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic on an empty vocabulary")
		}
	}()
	New(nil, "_IMM_", "_FP_IMM_", "_ADDR_", "_MEM_", ReturnError())
}

func TestNewPanicsOnDuplicateToken(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic on a duplicate vocabulary token")
		}
	}()
	New([]string{"MOV", "MOV"}, "MOV", "MOV", "MOV", "MOV", ReturnError())
}

func TestNewPanicsOnMissingCoreToken(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic when a required token is absent")
		}
	}()
	New([]string{"MOV"}, "_IMM_", "_FP_IMM_", "_ADDR_", "_MEM_", ReturnError())
}

func TestNewWithOptionsPanicsOnBadReplacementToken(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected New to panic when the OOV replacement token is absent from the vocabulary")
		}
		ierr, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("recovered value is %T, want *InvariantError", r)
		}
		if !strings.Contains(ierr.Error(), ErrBadReplacement.Error()) {
			t.Fatalf("panic detail = %q, want it to mention %q", ierr.Error(), ErrBadReplacement)
		}
	}()
	New(scenarioVocab, "_IMM_", "_FP_IMM_", "_ADDR_", "_MEM_", ReplaceToken("NOT_IN_VOCAB"))
}

func TestAddInputOperandUnknownKindIsFatal(t *testing.T) {
	b := newScenarioBuilder(ReturnError())
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an Unknown input operand kind")
		}
	}()
	b.AddBlock([]Instruction{{
		Mnemonic:      "MOV",
		InputOperands: []InstructionOperand{{Kind: OperandUnknown}},
	}})
}

func TestAddOutputOperandImmediateIsFatal(t *testing.T) {
	b := newScenarioBuilder(ReturnError())
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an Immediate output operand")
		}
	}()
	b.AddBlock([]Instruction{{
		Mnemonic:       "MOV",
		OutputOperands: []InstructionOperand{Immediate()},
	}})
}

func TestAddOutputOperandAddressIsFatal(t *testing.T) {
	b := newScenarioBuilder(ReturnError())
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an Address output operand")
		}
	}()
	b.AddBlock([]Instruction{{
		Mnemonic:       "MOV",
		OutputOperands: []InstructionOperand{Address(AddressOperand{BaseRegister: "RAX"})},
	}})
}

// TestAddBlockReverseStructuralDependency checks that, with
// AddReverseStructuralDependencyEdges set, every StructuralDependency edge
// is accompanied by a ReverseStructuralDependency edge running the other
// way, and nothing else about the block changes.
func TestAddBlockReverseStructuralDependency(t *testing.T) {
	stream := []Instruction{{Mnemonic: "MOV"}, {Mnemonic: "ADD"}, {Mnemonic: "MOV"}}

	plain := newScenarioBuilder(ReturnError())
	if _, err := plain.AddBlock(stream); err != nil {
		t.Fatalf("AddBlock (plain): %v", err)
	}

	reversed := NewWithOptions(scenarioVocab, "_IMM_", "_FP_IMM_", "_ADDR_", "_MEM_", ReturnError(), BuilderOptions{
		AddReverseStructuralDependencyEdges: true,
	})
	if _, err := reversed.AddBlock(stream); err != nil {
		t.Fatalf("AddBlock (reversed): %v", err)
	}

	if reversed.NumNodes() != plain.NumNodes() {
		t.Fatalf("reverse edges must not add nodes: got %d, want %d", reversed.NumNodes(), plain.NumNodes())
	}

	wantForward := 0
	for _, et := range plain.EdgeTypes() {
		if et == EdgeStructuralDependency {
			wantForward++
		}
	}
	gotForward, gotReverse := 0, 0
	for i, et := range reversed.EdgeTypes() {
		switch et {
		case EdgeStructuralDependency:
			gotForward++
			forwardSender, forwardReceiver := reversed.EdgeSenders()[i], reversed.EdgeReceivers()[i]
			hasReverse := false
			for j, et2 := range reversed.EdgeTypes() {
				if et2 == EdgeReverseStructuralDependency && reversed.EdgeSenders()[j] == forwardReceiver && reversed.EdgeReceivers()[j] == forwardSender {
					hasReverse = true
				}
			}
			if !hasReverse {
				t.Errorf("no ReverseStructuralDependency edge found for forward edge %d->%d", forwardSender, forwardReceiver)
			}
		case EdgeReverseStructuralDependency:
			gotReverse++
		}
	}
	if gotForward != wantForward {
		t.Errorf("forward StructuralDependency edge count = %d, want %d", gotForward, wantForward)
	}
	if gotReverse != wantForward {
		t.Errorf("ReverseStructuralDependency edge count = %d, want %d (one per forward edge)", gotReverse, wantForward)
	}
}

func TestResetClearsEverything(t *testing.T) {
	b := newScenarioBuilder(ReturnError())
	if _, err := b.AddBlock(propertyStream()); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	b.Reset()
	if b.NumNodes() != 0 || b.NumEdges() != 0 || b.NumBlocks() != 0 {
		t.Fatalf("after Reset: nodes=%d edges=%d blocks=%d, want all 0", b.NumNodes(), b.NumEdges(), b.NumBlocks())
	}
	if b.NumNodeTokens() != len(scenarioVocab) {
		t.Errorf("Reset must not clear the vocabulary: NumNodeTokens=%d, want %d", b.NumNodeTokens(), len(scenarioVocab))
	}
}
