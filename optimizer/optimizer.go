// Package optimizer performs AST-to-AST rewrites: constant folding,
// dead-code elimination, and strength reduction, iterated to a fixed
// point. Each pass is a straight Go translation of the corresponding
// function in the reference implementation's optimizer.c, with the C
// tagged-union switch replaced by a Go type-switch over ast.Node.
package optimizer

import "github.com/corebuild/slc/ast"

// maxIterations defensively bounds the fixed-point loop; natural
// convergence happens well before this in practice (each change strictly
// shrinks a well-founded measure — node count or non-power-of-two
// multiplications), so hitting the bound indicates an internal bug rather
// than a legitimately slow-converging program.
const maxIterations = 64

// Options toggles individual passes, mirroring the reference
// implementation's OptimizerOptions exactly.
type Options struct {
	ConstantFolding     bool
	DeadCodeElimination bool
	StrengthReduction   bool
}

// DefaultOptions enables every pass, matching optimizer_create's defaults.
func DefaultOptions() Options {
	return Options{
		ConstantFolding:     true,
		DeadCodeElimination: true,
		StrengthReduction:   true,
	}
}

// pass carries the shared changesMade flag a rewrite pass sets whenever it
// mutates the tree; the driver loops until a full cycle reports none.
type pass struct {
	changesMade bool
}

// Optimize repeatedly runs the enabled passes, in constant-folding →
// dead-code-elimination → strength-reduction order, until a full cycle
// makes no changes. It returns the possibly-replaced root.
func Optimize(root ast.Node, opts Options) ast.Node {
	for i := 0; i < maxIterations; i++ {
		p := &pass{}

		if opts.ConstantFolding {
			root = p.foldConstants(root)
		}
		if opts.DeadCodeElimination {
			root = p.eliminateDeadCode(root)
		}
		if opts.StrengthReduction {
			root = p.reduceStrength(root)
		}

		if !p.changesMade {
			return root
		}
	}
	return root
}

// isConstant reports whether node is foldable to a literal value.
func isConstant(node ast.Node) bool {
	_, ok := node.(*ast.Integer)
	return ok
}

// evaluateConstant evaluates a fully-constant expression. It is only ever
// called once isConstant has confirmed every leaf is an *ast.Integer.
func evaluateConstant(node ast.Node) int64 {
	switch n := node.(type) {
	case *ast.Integer:
		return n.Value

	case *ast.BinaryOp:
		if !isConstant(n.Left) || !isConstant(n.Right) {
			return 0
		}
		left := evaluateConstant(n.Left)
		right := evaluateConstant(n.Right)

		switch n.Op {
		case ast.Add:
			return left + right
		case ast.Sub:
			return left - right
		case ast.Mul:
			return left * right
		case ast.Div:
			if right == 0 {
				// Division by zero folds to the literal 0 rather than
				// being treated as an error, matching the reference
				// implementation.
				return 0
			}
			return left / right
		case ast.Less:
			return boolToInt(left < right)
		case ast.Greater:
			return boolToInt(left > right)
		case ast.Equal:
			return boolToInt(left == right)
		case ast.NotEqual:
			return boolToInt(left != right)
		case ast.ShiftL:
			return left << uint(right)
		}
	}
	return 0
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
