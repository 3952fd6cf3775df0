// The compiler-package contains the core of our compiler.
//
// In brief we go through a four-step process:
//
//  1. Use the lexer and parser to turn the source text into an AST.
//
//  2. Rewrite the AST with the optimizer: constant folding, dead-code
//     elimination, and strength reduction, iterated to a fixed point.
//
//  3. Walk the optimized tree, generating AMD64 assembly for each node.
//
//  4. During that walk, resolve and scope every variable reference
//     against a symbol table.
//
// There is one minor complication: variables live in a stack frame, and
// the offset assigned to each one must stay fixed for the lifetime of the
// compile, however many times the variable is referenced.
package compiler

import (
	"fmt"
	"strings"

	"github.com/corebuild/slc/ast"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/lexer"
	"github.com/corebuild/slc/optimizer"
	"github.com/corebuild/slc/parser"
)

// Compiler holds our object-state.
type Compiler struct {

	// debug holds a flag to decide if debugging "stuff" is generated
	// in the output assembly.
	debug bool

	// source holds the program text we're compiling.
	source string

	// options controls which optimizer passes run.
	options optimizer.Options

	// ctx accumulates diagnostics raised by the parser.
	ctx *diag.Context

	// program holds the parsed (and, after Compile, optimized) AST.
	program *ast.Program
}

//
// Our public API consists of:
//  New
//  SetDebug
//  SetOptimizerOptions
//  Diagnostics
//  Compile
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the source text in the constructor.
func New(input string) *Compiler {
	return &Compiler{
		source:  input,
		options: optimizer.DefaultOptions(),
		ctx:     diag.NewContext(),
	}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// SetOptimizerOptions overrides which optimizer passes run; the default,
// set by New, enables all three.
func (c *Compiler) SetOptimizerOptions(opts optimizer.Options) {
	c.options = opts
}

// Diagnostics returns every diagnostic raised while parsing, for callers
// that want to render them themselves rather than relying on the error
// returned from Compile.
func (c *Compiler) Diagnostics() []diag.Diagnostic {
	return c.ctx.Diagnostics()
}

// Compile converts the input program into AMD64 assembly language. A parse
// error does not stop the pipeline: the optimizer and code generator run
// on whatever partial tree the parser recovered, and the partial assembly
// is still returned alongside the error so a caller can inspect it. If
// code generation itself fails, the returned assembly is empty.
func (c *Compiler) Compile() (string, error) {
	c.parse()

	optimized := optimizer.Optimize(c.program, c.options)
	c.program = optimized.(*ast.Program)

	gen := newGenerator(c.debug)
	body, genErr := gen.generateProgram(c.program)

	var asm string
	if genErr == nil {
		asm = header + body
	}

	if c.ctx.HasErrors() {
		var b strings.Builder
		c.ctx.Render(&b, false)
		return asm, fmt.Errorf("%s", strings.TrimRight(b.String(), "\n"))
	}
	return asm, genErr
}

// parse runs the lexer and parser, populating c.program. Parse errors are
// recorded in c.ctx rather than halting the pipeline: ParseProgram always
// returns a (possibly partial) *ast.Program for the caller to keep going
// with.
func (c *Compiler) parse() {
	lex := lexer.New(c.source)
	c.program = parser.ParseProgram(lex, c.ctx)
}
