// strength.go implements Pass 3 — strength reduction — a direct
// translation of optimizer_strength_reduction in the reference
// optimizer.c: multiplication by a positive power-of-two constant becomes
// a left shift.
package optimizer

import "github.com/corebuild/slc/ast"

// reduceStrength rewrites node-local "* pow2" into "<< log2(pow2)" before
// recursing into children, matching the reference implementation's
// node-first-then-children order exactly (the rewritten shift amount is a
// freshly-built Integer, so recursing into it afterward is a no-op, but
// preserving the order keeps this a faithful translation).
func (p *pass) reduceStrength(node ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	if bin, ok := node.(*ast.BinaryOp); ok {
		if bin.Op == ast.Mul {
			if rhs, ok := bin.Right.(*ast.Integer); ok {
				if shift, isPow2 := log2PowerOfTwo(rhs.Value); isPow2 {
					bin.Op = ast.ShiftL
					shiftNode := &ast.Integer{Value: shift}
					shiftNode.Position = rhs.Position
					bin.Right = shiftNode
					p.changesMade = true
				}
			}
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Statements {
			n.Statements[i] = p.reduceStrength(stmt)
		}
		return n

	case *ast.Block:
		for i, stmt := range n.Statements {
			n.Statements[i] = p.reduceStrength(stmt)
		}
		return n

	case *ast.If:
		n.Condition = p.reduceStrength(n.Condition)
		n.Then = p.reduceStrength(n.Then)
		if n.Else != nil {
			n.Else = p.reduceStrength(n.Else)
		}
		return n

	case *ast.While:
		n.Condition = p.reduceStrength(n.Condition)
		n.Body = p.reduceStrength(n.Body)
		return n

	case *ast.Assignment:
		n.Value = p.reduceStrength(n.Value)
		return n

	case *ast.BinaryOp:
		n.Left = p.reduceStrength(n.Left)
		n.Right = p.reduceStrength(n.Right)
		return n

	default:
		return node
	}
}

// log2PowerOfTwo reports whether v is a positive power of two, and if so
// its base-2 logarithm (the shift amount). v == 0 is deliberately not
// treated as a power of two here — constant folding handles the v == 0
// case, and a "shift by 0" rewrite would be a no-op that only obscures the
// already-folded zero.
func log2PowerOfTwo(v int64) (shift int64, ok bool) {
	if v <= 0 || v&(v-1) != 0 {
		return 0, false
	}
	for v > 1 {
		v >>= 1
		shift++
	}
	return shift, true
}
