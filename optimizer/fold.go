// fold.go implements Pass 1 — constant folding — a direct translation of
// optimizer_constant_folding in the reference optimizer.c.
package optimizer

import "github.com/corebuild/slc/ast"

// foldConstants recursively transforms node's children, then collapses any
// BinaryOp whose operands are both constant into a single Integer literal.
func (p *pass) foldConstants(node ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Statements {
			n.Statements[i] = p.foldConstants(stmt)
		}
		return n

	case *ast.Block:
		for i, stmt := range n.Statements {
			n.Statements[i] = p.foldConstants(stmt)
		}
		return n

	case *ast.If:
		n.Condition = p.foldConstants(n.Condition)
		n.Then = p.foldConstants(n.Then)
		if n.Else != nil {
			n.Else = p.foldConstants(n.Else)
		}
		return n

	case *ast.While:
		n.Condition = p.foldConstants(n.Condition)
		n.Body = p.foldConstants(n.Body)
		return n

	case *ast.Assignment:
		n.Value = p.foldConstants(n.Value)
		return n

	case *ast.BinaryOp:
		n.Left = p.foldConstants(n.Left)
		n.Right = p.foldConstants(n.Right)

		if isConstant(n.Left) && isConstant(n.Right) {
			result := evaluateConstant(n)
			p.changesMade = true
			folded := &ast.Integer{Value: result}
			folded.Position = n.Position
			return folded
		}
		return n

	default:
		return node
	}
}
