package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/corebuild/slc/lexer"
	"github.com/corebuild/slc/token"
)

var (
	keywordColor    = color.New(color.FgCyan)
	identifierColor = color.New(color.FgGreen)
	numberColor     = color.New(color.FgYellow)
	errorColor      = color.New(color.FgRed)
)

// colorFor picks a display color for a token kind, falling back to the
// terminal's default for punctuation.
func colorFor(kind token.Kind) *color.Color {
	switch kind {
	case token.IF, token.ELSE, token.WHILE:
		return keywordColor
	case token.IDENTIFIER:
		return identifierColor
	case token.INTEGER:
		return numberColor
	case token.ERROR:
		return errorColor
	default:
		return nil
	}
}

// printTokens lexes source in full and writes one line per token to w.
func printTokens(w io.Writer, source string) {
	lex := lexer.New(source)
	for {
		tok := lex.NextToken()
		line := fmt.Sprintf("%-12s %-20q line=%d col=%d", tok.Kind, tok.Lexeme, tok.Line, tok.Column)

		if c := colorFor(tok.Kind); c != nil {
			c.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}

		if tok.Kind == token.EOF {
			return
		}
	}
}
