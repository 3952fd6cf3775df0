// Package instructions maps each binary operator to the x86-64
// instruction(s) the generator emits for it. Operators that need more
// than one line (division, the comparison family) are marked with their
// own Kind, and comparisons also carry the set-on-condition instruction.
package instructions

import "github.com/corebuild/slc/ast"

// Kind identifies which emission shape an operator needs.
type Kind int

const (
	// Simple operators reduce to a single two-operand instruction:
	// "<mnemonic> dst, src".
	Simple Kind = iota

	// Division needs rax/rdx set up around idiv and has no single
	// two-operand form.
	Division

	// Comparison operators need a cmp followed by a set-on-condition
	// byte and a zero-extend, since x86-64 has no single instruction
	// that leaves a 0/1 result in a general-purpose register.
	Comparison
)

// Spec describes how to emit one binary operator.
type Spec struct {
	// Kind selects which of the generator's emission routines applies.
	Kind Kind

	// Mnemonic is the instruction to use for Simple, or the underlying
	// arithmetic/comparison instruction name for Division/Comparison
	// (descriptive only: the generator does not read it for those kinds).
	Mnemonic string

	// SetCC is the set-on-condition suffix (e.g. "setl") used when Kind
	// is Comparison.
	SetCC string
}

// table maps every ast.Operator to its emission Spec.
var table = map[ast.Operator]Spec{
	ast.Add:      {Kind: Simple, Mnemonic: "add"},
	ast.Sub:      {Kind: Simple, Mnemonic: "sub"},
	ast.Mul:      {Kind: Simple, Mnemonic: "imul"},
	ast.Div:      {Kind: Division, Mnemonic: "idiv"},
	ast.ShiftL:   {Kind: Simple, Mnemonic: "shl"},
	ast.Less:     {Kind: Comparison, Mnemonic: "cmp", SetCC: "setl"},
	ast.Greater:  {Kind: Comparison, Mnemonic: "cmp", SetCC: "setg"},
	ast.Equal:    {Kind: Comparison, Mnemonic: "cmp", SetCC: "sete"},
	ast.NotEqual: {Kind: Comparison, Mnemonic: "cmp", SetCC: "setne"},
}

// Lookup returns the emission Spec for op. The bool result is false for
// an operator the table doesn't recognize, which should never happen for
// a well-formed AST produced by the parser.
func Lookup(op ast.Operator) (Spec, bool) {
	spec, ok := table[op]
	return spec, ok
}
