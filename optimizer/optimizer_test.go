package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/lexer"
	"github.com/corebuild/slc/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := diag.NewContext()
	prog := parser.ParseProgram(lexer.New(src), ctx)
	require.False(t, ctx.HasErrors(), "unexpected parse errors for %q", src)
	return prog
}

func TestConstantFoldingCollapsesArithmetic(t *testing.T) {
	prog := parseProgram(t, "x = 2 + 3 * 4;")
	opts := Options{ConstantFolding: true}
	result := Optimize(prog, opts).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	lit, ok := assign.Value.(*ast.Integer)
	require.True(t, ok, "expected fully-folded Integer, got %T", assign.Value)
	assert.Equal(t, int64(14), lit.Value)
}

func TestConstantFoldingPreservesDivisionByZeroQuirk(t *testing.T) {
	prog := parseProgram(t, "x = 5 / 0;")
	result := Optimize(prog, Options{ConstantFolding: true}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	lit := assign.Value.(*ast.Integer)
	assert.Equal(t, int64(0), lit.Value)
}

func TestConstantFoldingLeavesVariableReferencesAlone(t *testing.T) {
	prog := parseProgram(t, "x = y + 1;")
	result := Optimize(prog, Options{ConstantFolding: true}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	_, ok := assign.Value.(*ast.BinaryOp)
	assert.True(t, ok, "expected the non-constant expression to survive unfolded")
}

func TestDeadCodeEliminationCollapsesConstantTrueIf(t *testing.T) {
	prog := parseProgram(t, "if (1) { x = 1; } else { x = 2; }")
	result := Optimize(prog, Options{ConstantFolding: true, DeadCodeElimination: true}).(*ast.Program)

	// The If is replaced by its taken branch, the then-block.
	require.Len(t, result.Statements, 1)
	block, ok := result.Statements[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 1)
	assign, ok := block.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, int64(1), assign.Value.(*ast.Integer).Value)
}

func TestDeadCodeEliminationCollapsesConstantFalseIf(t *testing.T) {
	prog := parseProgram(t, "if (0) { x = 1; } else { x = 2; }")
	result := Optimize(prog, Options{ConstantFolding: true, DeadCodeElimination: true}).(*ast.Program)

	// The If is replaced by the else-block.
	require.Len(t, result.Statements, 1)
	block := result.Statements[0].(*ast.Block)
	require.Len(t, block.Statements, 1)
	assign := block.Statements[0].(*ast.Assignment)
	assert.Equal(t, int64(2), assign.Value.(*ast.Integer).Value)
}

func TestDeadCodeEliminationDropsIfWithNoElseWhenFalse(t *testing.T) {
	prog := parseProgram(t, "if (0) { x = 1; } y = 2;")
	result := Optimize(prog, Options{ConstantFolding: true, DeadCodeElimination: true}).(*ast.Program)

	require.Len(t, result.Statements, 1)
	assign := result.Statements[0].(*ast.Assignment)
	assert.Equal(t, "y", assign.Name)
}

func TestDeadCodeEliminationDropsConstantFalseWhileLoop(t *testing.T) {
	prog := parseProgram(t, "while (0) { x = 1; } y = 2;")
	result := Optimize(prog, Options{ConstantFolding: true, DeadCodeElimination: true}).(*ast.Program)

	require.Len(t, result.Statements, 1)
	assign := result.Statements[0].(*ast.Assignment)
	assert.Equal(t, "y", assign.Name)
}

func TestDeadCodeEliminationPreservesConstantTrueWhileLoop(t *testing.T) {
	prog := parseProgram(t, "while (1) { x = 1; }")
	result := Optimize(prog, Options{ConstantFolding: true, DeadCodeElimination: true}).(*ast.Program)

	require.Len(t, result.Statements, 1)
	_, ok := result.Statements[0].(*ast.While)
	assert.True(t, ok, "an infinite loop must never be eliminated")
}

func TestStrengthReductionRewritesPowerOfTwoMultiply(t *testing.T) {
	prog := parseProgram(t, "x = y * 8;")
	result := Optimize(prog, Options{StrengthReduction: true}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	bin := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.ShiftL, bin.Op)
	assert.Equal(t, int64(3), bin.Right.(*ast.Integer).Value)
}

func TestStrengthReductionLeavesNonPowerOfTwoMultiplyAlone(t *testing.T) {
	prog := parseProgram(t, "x = y * 7;")
	result := Optimize(prog, Options{StrengthReduction: true}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	bin := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.Mul, bin.Op)
}

func TestStrengthReductionRewritesConstantTimesConstantWithoutFolding(t *testing.T) {
	// With folding disabled, 2 * 4 is not collapsed to 8. Strength
	// reduction only inspects the right operand, so it still fires:
	// the result is a shift of the literal 2 by 2.
	prog := parseProgram(t, "x = 2 * 4;")
	result := Optimize(prog, Options{StrengthReduction: true}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	bin := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.ShiftL, bin.Op)
	assert.Equal(t, int64(2), bin.Right.(*ast.Integer).Value)
}

func TestDefaultOptionsRunsAllThreePassesToFixedPoint(t *testing.T) {
	// Folding produces "y * 8" from "y * (2 + 2 + 4)"; strength reduction,
	// which runs after folding in the same cycle, then rewrites it to a
	// shift. The fixed-point loop runs one more cycle, which changes
	// nothing, and stops.
	prog := parseProgram(t, "x = y * (2 + 2 + 4);")
	result := Optimize(prog, DefaultOptions()).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	bin := assign.Value.(*ast.BinaryOp)
	assert.Equal(t, ast.ShiftL, bin.Op)
	assert.Equal(t, int64(3), bin.Right.(*ast.Integer).Value)
}

func TestOptimizeIsIdempotentOnASecondPass(t *testing.T) {
	prog := parseProgram(t, "x = y * (2 + 2 + 4); if (1) { z = 1; }")
	once := Optimize(prog, DefaultOptions())
	twice := Optimize(once, DefaultOptions())
	assert.Equal(t, once, twice)
}

func TestDisabledPassesAreNoOps(t *testing.T) {
	prog := parseProgram(t, "x = 1 + 2;")
	result := Optimize(prog, Options{}).(*ast.Program)

	assign := result.Statements[0].(*ast.Assignment)
	_, ok := assign.Value.(*ast.BinaryOp)
	assert.True(t, ok, "with every pass disabled the tree must be untouched")
}

func TestBlockScopedStatementsAreAlsoOptimized(t *testing.T) {
	prog := parseProgram(t, "{ x = 1 + 1; if (0) { y = 1; } }")
	result := Optimize(prog, DefaultOptions()).(*ast.Program)

	block := result.Statements[0].(*ast.Block)
	require.Len(t, block.Statements, 1)
	assign := block.Statements[0].(*ast.Assignment)
	assert.Equal(t, int64(2), assign.Value.(*ast.Integer).Value)
}
