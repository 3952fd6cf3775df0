// precedence.go implements the expression grammar's precedence-climbing
// levels, one function per precedence level, lowest precedence
// (comparison) down to primary. Each level parses its higher-precedence
// sub-expression, then folds a left-leaning BinaryOp for as long as the
// current token matches one of its own operators.
package parser

import (
	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/token"
)

var comparisonOps = map[token.Kind]ast.Operator{
	token.LESS:     ast.Less,
	token.GREATER:  ast.Greater,
	token.EQUAL:    ast.Equal,
	token.NOTEQUAL: ast.NotEqual,
}

var additiveOps = map[token.Kind]ast.Operator{
	token.PLUS:  ast.Add,
	token.MINUS: ast.Sub,
}

var multiplicativeOps = map[token.Kind]ast.Operator{
	token.ASTERISK: ast.Mul,
	token.SLASH:    ast.Div,
}

func (p *Parser) parseComparison() ast.Node {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	for {
		op, ok := comparisonOps[p.current.Kind]
		if !ok {
			return left
		}
		pos := ast.At(p.current.Line, p.current.Column)
		p.advance()

		right := p.parseAdditive()
		if right == nil {
			return nil
		}

		node := &ast.BinaryOp{Op: op, Left: left, Right: right}
		node.Position = pos.Position
		left = node
	}
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseShift()
	if left == nil {
		return nil
	}

	for {
		op, ok := additiveOps[p.current.Kind]
		if !ok {
			return left
		}
		pos := ast.At(p.current.Line, p.current.Column)
		p.advance()

		right := p.parseShift()
		if right == nil {
			return nil
		}

		node := &ast.BinaryOp{Op: op, Left: left, Right: right}
		node.Position = pos.Position
		left = node
	}
}

func (p *Parser) parseShift() ast.Node {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for p.current.Kind == token.SHIFTLEFT {
		pos := ast.At(p.current.Line, p.current.Column)
		p.advance()

		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}

		node := &ast.BinaryOp{Op: ast.ShiftL, Left: left, Right: right}
		node.Position = pos.Position
		left = node
	}

	return left
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	for {
		op, ok := multiplicativeOps[p.current.Kind]
		if !ok {
			return left
		}
		pos := ast.At(p.current.Line, p.current.Column)
		p.advance()

		right := p.parsePrimary()
		if right == nil {
			return nil
		}

		node := &ast.BinaryOp{Op: op, Left: left, Right: right}
		node.Position = pos.Position
		left = node
	}
}

func (p *Parser) parsePrimary() ast.Node {
	switch p.current.Kind {
	case token.INTEGER:
		value := parseInt(p.current.Lexeme)
		node := &ast.Integer{Value: value}
		node.Position = ast.Position{Line: p.current.Line, Column: p.current.Column}
		p.advance()
		return node

	case token.IDENTIFIER:
		node := &ast.Identifier{Name: p.current.Lexeme}
		node.Position = ast.Position{Line: p.current.Line, Column: p.current.Column}
		p.advance()
		return node

	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(token.RPAREN, "expected ')'") {
			return nil
		}
		return expr

	default:
		p.error("unexpected token in expression: " + string(p.current.Kind))
		return nil
	}
}

// parseInt converts a validated digit-only lexeme to an int64, saturating
// rather than erroring on overflow: the lexer already guarantees the
// lexeme is all decimal digits and at most maxIntegerLength characters, so
// the only remaining failure mode is a literal wider than int64, which
// this compiler has no obligation to reject per se (see Non-goals).
func parseInt(lexeme string) int64 {
	var v int64
	for _, r := range lexeme {
		d := int64(r - '0')
		next := v*10 + d
		if next < v {
			// Overflow: saturate rather than wrap, since wrapping a
			// source-literal silently would be a worse surprise than
			// clamping it.
			return 1<<63 - 1
		}
		v = next
	}
	return v
}
