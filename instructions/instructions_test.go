package instructions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corebuild/slc/ast"
)

func TestEveryOperatorHasASpec(t *testing.T) {
	operators := []ast.Operator{
		ast.Add, ast.Sub, ast.Mul, ast.Div, ast.ShiftL,
		ast.Less, ast.Greater, ast.Equal, ast.NotEqual,
	}

	for _, op := range operators {
		spec, ok := Lookup(op)
		assert.True(t, ok, "operator %v should have a spec", op)
		assert.NotEmpty(t, spec.Mnemonic)
	}
}

func TestComparisonOperatorsCarryASetCCSuffix(t *testing.T) {
	comparisons := []ast.Operator{ast.Less, ast.Greater, ast.Equal, ast.NotEqual}
	for _, op := range comparisons {
		spec, ok := Lookup(op)
		assert.True(t, ok)
		assert.Equal(t, Comparison, spec.Kind)
		assert.NotEmpty(t, spec.SetCC)
	}
}

func TestDivisionIsItsOwnKind(t *testing.T) {
	spec, ok := Lookup(ast.Div)
	assert.True(t, ok)
	assert.Equal(t, Division, spec.Kind)
}

func TestUnknownOperatorIsNotFound(t *testing.T) {
	_, ok := Lookup(ast.Operator("%"))
	assert.False(t, ok)
}
