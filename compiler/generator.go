// generator.go walks the optimized AST and emits AMD64 assembly, one
// statement and one expression node at a time.
//
// Every expression leaves its value in rax when it's done; binary
// operators borrow a register from the free pool to hold the left
// operand while the right operand is computed, then fold the two back
// together and release the borrowed register. rcx and rdx are kept out
// of that pool deliberately (see stack.New) since shl and idiv need them
// for fixed purposes.

package compiler

import (
	"fmt"
	"strings"

	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/instructions"
	"github.com/corebuild/slc/stack"
	"github.com/corebuild/slc/symboltable"
)

// generator carries the state threaded through code generation: the
// symbol table assigning stack-frame offsets to variables, the pool of
// free registers, and a label counter for uniquely naming control-flow
// targets.
type generator struct {
	debug bool

	symbols *symboltable.Table
	regs    *stack.Stack

	labelCount int

	// frameOffset is the offset (in bytes, negative, relative to rbp)
	// most recently handed to a variable, or 0 before any; the next
	// variable gets the slot 8 bytes further out. It only ever moves
	// further from zero: once assigned, a slot is never
	// reused, even across block scopes, so there's no risk of two live
	// variables aliasing the same slot.
	frameOffset int
}

func newGenerator(debug bool) *generator {
	return &generator{
		debug:   debug,
		symbols: symboltable.New(),
		regs:    stack.New(),
	}
}

// label returns a fresh, unique label name of the form .L<n>, shared
// across every control-flow construct rather than one counter per kind.
func (g *generator) label() string {
	label := fmt.Sprintf(".L%d", g.labelCount)
	g.labelCount++
	return label
}

// offsetFor returns the stack-frame offset for sym, assigning one the
// first time it's needed. This is the single place a variable's offset
// is ever set, so every later reference to the same *Symbol sees the
// same slot.
func (g *generator) offsetFor(sym *symboltable.Symbol) int {
	if sym.Offset == 0 {
		g.frameOffset -= 8
		sym.Offset = g.frameOffset
	}
	return sym.Offset
}

// frameSize returns the number of bytes of stack space to reserve for
// the current frame, rounded up to a 16-byte boundary to keep the stack
// aligned per the AMD64 calling convention.
func (g *generator) frameSize() int {
	size := -g.frameOffset
	if size%16 != 0 {
		size += 16 - size%16
	}
	return size
}

// generateProgram emits main's body: a sequence of statements at global
// scope. The returned string already includes the prologue/epilogue,
// sized to whatever frame this pass allocated along the way.
func (g *generator) generateProgram(prog *ast.Program) (string, error) {
	var body strings.Builder
	for _, stmt := range prog.Statements {
		out, err := g.generateStatement(stmt)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}

	return g.prologue() + body.String() + g.epilogue(), nil
}

// generateStatement emits one statement-level node.
func (g *generator) generateStatement(node ast.Node) (string, error) {
	switch n := node.(type) {

	case *ast.Block:
		return g.generateBlock(n)

	case *ast.If:
		return g.generateIf(n)

	case *ast.While:
		return g.generateWhile(n)

	case *ast.Assignment:
		return g.generateAssignment(n)

	default:
		return "", fmt.Errorf("internal error: %T is not a statement", node)
	}
}

// generateBlock enters a new lexical scope, generates each statement,
// then exits the scope again. Stack slots already handed out within the
// block are not reclaimed: the frame only ever grows.
func (g *generator) generateBlock(n *ast.Block) (string, error) {
	g.symbols.EnterScope()
	defer g.symbols.ExitScope()

	var body strings.Builder
	for _, stmt := range n.Statements {
		out, err := g.generateStatement(stmt)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return body.String(), nil
}

// generateIf emits a conditional. The condition is evaluated into rax;
// any non-zero value is taken as true.
func (g *generator) generateIf(n *ast.If) (string, error) {
	cond, err := g.generateExpression(n.Condition)
	if err != nil {
		return "", err
	}

	elseLabel := g.label()
	endLabel := g.label()

	then, err := g.generateStatement(n.Then)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(cond)
	fmt.Fprintf(&b, "        cmp rax, 0\n        je %s\n", elseLabel)
	b.WriteString(then)
	fmt.Fprintf(&b, "        jmp %s\n%s:\n", endLabel, elseLabel)

	if n.Else != nil {
		elseBody, err := g.generateStatement(n.Else)
		if err != nil {
			return "", err
		}
		b.WriteString(elseBody)
	}
	fmt.Fprintf(&b, "%s:\n", endLabel)

	return b.String(), nil
}

// generateWhile emits a pre-tested loop: the condition is checked before
// every iteration, including the first.
func (g *generator) generateWhile(n *ast.While) (string, error) {
	topLabel := g.label()
	endLabel := g.label()

	cond, err := g.generateExpression(n.Condition)
	if err != nil {
		return "", err
	}
	body, err := g.generateStatement(n.Body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", topLabel)
	b.WriteString(cond)
	fmt.Fprintf(&b, "        cmp rax, 0\n        je %s\n", endLabel)
	b.WriteString(body)
	fmt.Fprintf(&b, "        jmp %s\n%s:\n", topLabel, endLabel)

	return b.String(), nil
}

// generateAssignment evaluates the right-hand side into rax, declaring
// the destination variable (at the current scope) on first assignment,
// then stores rax into its stack slot.
func (g *generator) generateAssignment(n *ast.Assignment) (string, error) {
	value, err := g.generateExpression(n.Value)
	if err != nil {
		return "", err
	}

	sym, ok := g.symbols.Lookup(n.Name)
	if !ok {
		sym, _ = g.symbols.Add(n.Name, symboltable.Integer)
	}
	offset := g.offsetFor(sym)
	g.symbols.MarkInitialized(n.Name)

	var b strings.Builder
	b.WriteString(value)
	fmt.Fprintf(&b, "        mov [rbp%+d], rax\n", offset)
	return b.String(), nil
}

// generateExpression emits code that leaves its result in rax.
func (g *generator) generateExpression(node ast.Node) (string, error) {
	switch n := node.(type) {

	case *ast.Integer:
		return fmt.Sprintf("        mov rax, %d\n", n.Value), nil

	case *ast.Identifier:
		sym, ok := g.symbols.Lookup(n.Name)
		if !ok {
			return "", fmt.Errorf("line %d: use of undeclared variable %q", n.Pos().Line, n.Name)
		}
		offset := g.offsetFor(sym)
		return fmt.Sprintf("        mov rax, [rbp%+d]\n", offset), nil

	case *ast.BinaryOp:
		return g.generateBinaryOp(n)

	default:
		return "", fmt.Errorf("internal error: %T is not an expression", node)
	}
}

// generateBinaryOp evaluates n.Left and n.Right, combines them per the
// operator, and leaves the result in rax.
func (g *generator) generateBinaryOp(n *ast.BinaryOp) (string, error) {
	spec, ok := instructions.Lookup(n.Op)
	if !ok {
		return "", fmt.Errorf("internal error: unhandled operator %q", n.Op)
	}

	// A shift by a compile-time constant needs no second register at
	// all: the count is encoded directly as an immediate.
	if n.Op == ast.ShiftL {
		if imm, isConst := n.Right.(*ast.Integer); isConst {
			left, err := g.generateExpression(n.Left)
			if err != nil {
				return "", err
			}
			return left + fmt.Sprintf("        shl rax, %d\n", imm.Value), nil
		}
	}

	left, err := g.generateExpression(n.Left)
	if err != nil {
		return "", err
	}

	leftReg, err := g.regs.Acquire()
	if err != nil {
		return "", fmt.Errorf("line %d: %w", n.Pos().Line, err)
	}
	defer g.regs.Release(leftReg)

	right, err := g.generateExpression(n.Right)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(left)
	fmt.Fprintf(&b, "        mov %s, rax\n", leftReg)
	b.WriteString(right)
	// Now leftReg holds the left operand's value, rax holds the right's.

	switch spec.Kind {
	case instructions.Division:
		fmt.Fprintf(&b, "        cmp rax, 0\n        je divide_by_zero\n")
		fmt.Fprintf(&b, "        xchg rax, %s\n", leftReg)
		b.WriteString("        cqo\n")
		fmt.Fprintf(&b, "        idiv %s\n", leftReg)

	case instructions.Comparison:
		fmt.Fprintf(&b, "        cmp %s, rax\n", leftReg)
		fmt.Fprintf(&b, "        %s al\n", spec.SetCC)
		b.WriteString("        movzx rax, al\n")

	default: // Simple
		switch n.Op {
		case ast.Sub:
			fmt.Fprintf(&b, "        sub %s, rax\n", leftReg)
			fmt.Fprintf(&b, "        mov rax, %s\n", leftReg)
		case ast.ShiftL:
			// Reached only when the shift count is itself a runtime
			// value (not a literal, handled above): move it into cl,
			// the one register shl reads a variable count from.
			b.WriteString("        mov rcx, rax\n")
			fmt.Fprintf(&b, "        shl %s, cl\n", leftReg)
			fmt.Fprintf(&b, "        mov rax, %s\n", leftReg)
		default: // Add, Mul: commutative, so rax can be the destination directly
			fmt.Fprintf(&b, "        %s rax, %s\n", spec.Mnemonic, leftReg)
		}
	}

	return b.String(), nil
}
