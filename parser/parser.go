// Package parser builds an abstract syntax tree from a token stream using
// recursive descent with explicit precedence climbing for expressions.
//
// The shape follows the reference implementation's two-token lookahead
// window (current/peek), primed by two advances at construction, and its
// panic-mode statement-level error recovery: a failed statement parse
// causes the caller to skip one token and try again, rather than aborting
// the whole parse.
package parser

import (
	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/lexer"
	"github.com/corebuild/slc/token"
)

// Parser holds parsing state: the lexer supplying tokens, a two-token
// lookahead window, and the diagnostics context errors are recorded to.
type Parser struct {
	lex *lexer.Lexer
	ctx *diag.Context

	current token.Token
	peek    token.Token
}

// New creates a Parser over lex, priming the lookahead window, recording
// any diagnostics onto ctx.
func New(lex *lexer.Lexer, ctx *diag.Context) *Parser {
	p := &Parser{lex: lex, ctx: ctx}
	p.advance()
	p.advance()
	return p
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

// expect consumes the current token if it matches kind, reporting an error
// and returning false otherwise.
func (p *Parser) expect(kind token.Kind, message string) bool {
	if p.current.Kind == kind {
		p.advance()
		return true
	}
	p.error(message)
	return false
}

// error records a diagnostic at the current token's position.
func (p *Parser) error(message string) {
	p.ctx.Errorf(p.current.Line, p.current.Column, "%s", message)
}

// ParseProgram parses the entire token stream into a Program node. Parse
// failures at statement granularity are recovered from by skipping one
// token and continuing; the returned Program may therefore be a partial
// tree when diagnostics were recorded.
func ParseProgram(lex *lexer.Lexer, ctx *diag.Context) *ast.Program {
	p := New(lex, ctx)

	program := &ast.Program{}
	for p.current.Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.advance()
		}
	}
	return program
}

// parseStatement dispatches on the leading token of a statement.
func (p *Parser) parseStatement() ast.Node {
	switch p.current.Kind {
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IDENTIFIER:
		return p.parseAssignmentStatement()
	default:
		p.error("unexpected token in statement position: " + string(p.current.Kind))
		return nil
	}
}

func (p *Parser) parseIfStatement() ast.Node {
	pos := ast.At(p.current.Line, p.current.Column)
	p.advance() // 'if'

	if !p.expect(token.LPAREN, "expected '(' after 'if'") {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN, "expected ')' after condition") {
		return nil
	}

	then := p.parseStatement()
	if then == nil {
		return nil
	}

	node := &ast.If{Condition: cond, Then: then}
	node.Position = pos.Position

	if p.current.Kind == token.ELSE {
		p.advance()
		elseBody := p.parseStatement()
		if elseBody == nil {
			return nil
		}
		node.Else = elseBody
	}

	return node
}

func (p *Parser) parseWhileStatement() ast.Node {
	pos := ast.At(p.current.Line, p.current.Column)
	p.advance() // 'while'

	if !p.expect(token.LPAREN, "expected '(' after 'while'") {
		return nil
	}
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN, "expected ')' after condition") {
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}

	node := &ast.While{Condition: cond, Body: body}
	node.Position = pos.Position
	return node
}

func (p *Parser) parseBlockStatement() ast.Node {
	pos := ast.At(p.current.Line, p.current.Column)
	p.advance() // '{'

	block := &ast.Block{}
	block.Position = pos.Position

	for p.current.Kind != token.RBRACE && p.current.Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.advance()
		}
	}

	if !p.expect(token.RBRACE, "expected '}' to close block") {
		return nil
	}

	return block
}

func (p *Parser) parseAssignmentStatement() ast.Node {
	pos := ast.At(p.current.Line, p.current.Column)
	name := p.current.Lexeme
	p.advance() // identifier

	if !p.expect(token.ASSIGN, "expected '=' in assignment") {
		return nil
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}

	if !p.expect(token.SEMICOLON, "expected ';' after assignment") {
		return nil
	}

	node := &ast.Assignment{Name: name, Value: value}
	node.Position = pos.Position
	return node
}

// ParseExpression parses a single expression from lex, for callers (and
// tests) that only need the expression grammar.
func ParseExpression(lex *lexer.Lexer, ctx *diag.Context) ast.Node {
	p := New(lex, ctx)
	return p.parseExpression()
}

// parseExpression is the grammar's entry point: comparison is the lowest
// precedence level.
func (p *Parser) parseExpression() ast.Node {
	return p.parseComparison()
}
