package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/internal/astdump"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/lexer"
	"github.com/corebuild/slc/optimizer"
	"github.com/corebuild/slc/parser"
)

// printAST parses (and, unless noOptimize is set, optimizes) source and
// writes its YAML representation to w. Parse diagnostics are rendered to
// stderr, colorized when it's a terminal, the same way a normal compile
// reports them.
func printAST(w io.Writer, source string, noOptimize bool) error {
	ctx := diag.NewContext()
	prog := parser.ParseProgram(lexer.New(source), ctx)

	if ctx.HasErrors() {
		diag.RenderDiagnostics(os.Stderr, ctx.Diagnostics(), isatty.IsTerminal(os.Stderr.Fd()))
		return errors.New("parse failed")
	}

	var root ast.Node = prog
	if !noOptimize {
		root = optimizer.Optimize(prog, optimizer.DefaultOptions())
	}

	out, err := astdump.Dump(root.(*ast.Program))
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
