// Package asmtext implements a small human-authored instruction-stream
// notation, used by tests and the cmd/bbgraph demo to build
// bbgraph.Instruction values without a real disassembler. It parses a
// compact textual form of instructions, operands, and addressing
// expressions with github.com/alecthomas/participle/v2.
package asmtext

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{};,\[\]+*:#]`},
})

// Block is the AST root: a maximal instruction sequence, ";"-separated.
type Block struct {
	Instructions []*Instr `@@ (";" @@)*`
}

// Instr is one instruction: zero or more brace-delimited prefixes, a
// mnemonic, an optional input operand list, and an optional "->"-introduced
// output operand list.
type Instr struct {
	Prefixes []string   `("{" @Ident "}")*`
	Mnemonic string     `@Ident`
	Inputs   []*Operand `(@@ ("," @@)*)?`
	Outputs  []*Operand `(Arrow @@ ("," @@)*)?`
}

// Operand is the tagged union over the five operand shapes asmtext can
// name; exactly one field is non-nil after a successful parse.
type Operand struct {
	Memory      *MemoryRef  `  @@`
	Address     *AddressRef `| @@`
	FpImmediate *float64    `| @Float`
	Immediate   *int64      `| @Int`
	Register    *string     `| @Ident`
}

// MemoryRef is the "mem#<id>" notation for a memory operand identified by
// its alias-group id.
type MemoryRef struct {
	AliasGroupID int64 `"mem" "#" @Int`
}

// AddressRef is the "[base + index*scale + disp : segment]" notation for
// an addressing expression. Every component is optional except the
// brackets themselves.
type AddressRef struct {
	Base         string `"[" (@Ident`
	Index        string `("+" @Ident)?`
	Scale        int64  `("*" @Int)? )?`
	Displacement int64  `("+" @Int)?`
	Segment      string `(":" @Ident)? "]"`
}

var parser = participle.MustBuild[Block](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)
