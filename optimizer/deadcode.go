// deadcode.go implements Pass 2 — dead-code elimination — a direct
// translation of optimizer_dead_code_elimination in the reference
// optimizer.c.
package optimizer

import "github.com/corebuild/slc/ast"

// eliminateDeadCode recursively transforms node, collapsing If/While
// statements whose condition is already constant and dropping any child
// of a Block/Program that reduces to nothing.
func (p *pass) eliminateDeadCode(node ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		n.Statements = p.filterDeadStatements(n.Statements)
		return n

	case *ast.Block:
		n.Statements = p.filterDeadStatements(n.Statements)
		return n

	case *ast.If:
		if isConstant(n.Condition) {
			conditionValue := evaluateConstant(n.Condition)
			p.changesMade = true
			if conditionValue != 0 {
				return p.eliminateDeadCode(n.Then)
			}
			return p.eliminateDeadCode(n.Else)
		}

		n.Condition = p.eliminateDeadCode(n.Condition)
		n.Then = p.eliminateDeadCode(n.Then)
		if n.Else != nil {
			n.Else = p.eliminateDeadCode(n.Else)
		}
		return n

	case *ast.While:
		if isConstant(n.Condition) {
			conditionValue := evaluateConstant(n.Condition)
			if conditionValue == 0 {
				p.changesMade = true
				return nil
			}
			// A non-zero constant condition is left intact: the loop is an
			// intentional infinite loop and must be preserved.
		}

		n.Condition = p.eliminateDeadCode(n.Condition)
		n.Body = p.eliminateDeadCode(n.Body)
		return n

	case *ast.Assignment:
		n.Value = p.eliminateDeadCode(n.Value)
		return n

	case *ast.BinaryOp:
		n.Left = p.eliminateDeadCode(n.Left)
		n.Right = p.eliminateDeadCode(n.Right)
		return n

	default:
		return node
	}
}

// filterDeadStatements recurses into each statement, keeping only those
// that don't reduce to nothing. The slice shrinks in place.
func (p *pass) filterDeadStatements(stmts []ast.Node) []ast.Node {
	kept := stmts[:0]
	for _, stmt := range stmts {
		rewritten := p.eliminateDeadCode(stmt)
		if rewritten != nil {
			kept = append(kept, rewritten)
		} else {
			p.changesMade = true
		}
	}
	return kept
}
