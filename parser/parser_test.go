package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Context) {
	t.Helper()
	ctx := diag.NewContext()
	prog := ParseProgram(lexer.New(src), ctx)
	return prog, ctx
}

func TestEmptyProgram(t *testing.T) {
	prog, ctx := parse(t, "")
	require.False(t, ctx.HasErrors())
	assert.Empty(t, prog.Statements)
}

func TestSingleAssignment(t *testing.T) {
	prog, ctx := parse(t, "x = 42;")
	require.False(t, ctx.HasErrors())
	require.Len(t, prog.Statements, 1)

	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)

	lit, ok := assign.Value.(*ast.Integer)
	require.True(t, ok)
	assert.Equal(t, int64(42), lit.Value)
}

func TestPrecedenceBindsMultiplicationTighterThanAddition(t *testing.T) {
	prog, ctx := parse(t, "x = 2 + 3 * 4;")
	require.False(t, ctx.HasErrors())

	assign := prog.Statements[0].(*ast.Assignment)
	top := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.Add, top.Op)

	assert.IsType(t, &ast.Integer{}, top.Left)
	right := top.Right.(*ast.BinaryOp)
	assert.Equal(t, ast.Mul, right.Op)
}

func TestLeftAssociativityWithinOneLevel(t *testing.T) {
	prog, ctx := parse(t, "x = 1 - 2 - 3;")
	require.False(t, ctx.HasErrors())

	assign := prog.Statements[0].(*ast.Assignment)
	top := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.Sub, top.Op)

	// left-leaning: ((1 - 2) - 3)
	left := top.Left.(*ast.BinaryOp)
	assert.Equal(t, ast.Sub, left.Op)
	assert.Equal(t, int64(1), left.Left.(*ast.Integer).Value)
	assert.Equal(t, int64(2), left.Right.(*ast.Integer).Value)
	assert.Equal(t, int64(3), top.Right.(*ast.Integer).Value)
}

func TestShiftBindsLooserThanMultiplicationTighterThanAdditive(t *testing.T) {
	prog, ctx := parse(t, "x = 1 + 2 << 3 * 4;")
	require.False(t, ctx.HasErrors())

	// 1 + (2 << (3 * 4)): shift sits between additive and multiplicative.
	assign := prog.Statements[0].(*ast.Assignment)
	top := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.Add, top.Op)

	shift := top.Right.(*ast.BinaryOp)
	assert.Equal(t, ast.ShiftL, shift.Op)

	mul := shift.Right.(*ast.BinaryOp)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	prog, ctx := parse(t, "x = (1 + 2) * 3;")
	require.False(t, ctx.HasErrors())

	assign := prog.Statements[0].(*ast.Assignment)
	top := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.Mul, top.Op)
	assert.IsType(t, &ast.BinaryOp{}, top.Left)
}

func TestIfElse(t *testing.T) {
	prog, ctx := parse(t, `if (x < 10) { y = 1; } else { y = 2; }`)
	require.False(t, ctx.HasErrors())
	require.Len(t, prog.Statements, 1)

	ifStmt, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)

	cond := ifStmt.Condition.(*ast.BinaryOp)
	assert.Equal(t, ast.Less, cond.Op)
}

func TestWhileLoop(t *testing.T) {
	prog, ctx := parse(t, `i = 0; while (i < 10) { i = i + 1; }`)
	require.False(t, ctx.HasErrors())
	require.Len(t, prog.Statements, 2)

	w, ok := prog.Statements[1].(*ast.While)
	require.True(t, ok)
	body := w.Body.(*ast.Block)
	require.Len(t, body.Statements, 1)
}

func TestBlockStatement(t *testing.T) {
	prog, ctx := parse(t, `{ x = 1; y = 2; }`)
	require.False(t, ctx.HasErrors())
	require.Len(t, prog.Statements, 1)

	block, ok := prog.Statements[0].(*ast.Block)
	require.True(t, ok)
	assert.Len(t, block.Statements, 2)
}

func TestPanicModeRecoverySkipsOneTokenAndContinues(t *testing.T) {
	// "$ " lexes to an ERROR token (unexpected statement start); recovery
	// should skip it and parse the following valid assignment.
	prog, ctx := parse(t, "$ x = 1;")
	assert.True(t, ctx.HasErrors())
	require.Len(t, prog.Statements, 1)

	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
}

func TestMissingSemicolonIsReported(t *testing.T) {
	_, ctx := parse(t, "x = 1")
	assert.True(t, ctx.HasErrors())
}

func TestEveryAssignmentAndIdentifierNameIsNonEmpty(t *testing.T) {
	prog, ctx := parse(t, "a = b + 1;")
	require.False(t, ctx.HasErrors())

	assign := prog.Statements[0].(*ast.Assignment)
	assert.NotEmpty(t, assign.Name)

	bin := assign.Value.(*ast.BinaryOp)
	ident := bin.Left.(*ast.Identifier)
	assert.NotEmpty(t, ident.Name)
}
