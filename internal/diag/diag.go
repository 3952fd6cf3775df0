// Package diag implements an accumulating diagnostics context: errors are
// recorded with their source position instead of being written directly
// to standard error, which makes every stage independently testable.
// Rendering (with optional colorization) is a separate step, performed
// once by the CLI layer after a compile finishes.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Diagnostic is a single recorded error, tagged with its source position.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Context accumulates diagnostics during a single compile.
type Context struct {
	diagnostics []Diagnostic
}

// NewContext creates an empty diagnostics context.
func NewContext() *Context {
	return &Context{}
}

// Errorf records a formatted parse/lex error at the given position.
func (c *Context) Errorf(line, column int, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic was recorded.
func (c *Context) HasErrors() bool {
	return len(c.diagnostics) > 0
}

// Diagnostics returns the recorded diagnostics, in recorded order.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// errorLine renders a single diagnostic in the reference implementation's
// exact user-visible form: "Parse error at line L, column C: <message>".
func errorLine(d Diagnostic) string {
	return fmt.Sprintf("Parse error at line %d, column %d: %s", d.Line, d.Column, d.Message)
}

// Render writes every recorded diagnostic to w, one per line, colorized
// red when colorize is true (the CLI layer decides that based on whether
// w is a terminal).
func (c *Context) Render(w io.Writer, colorize bool) {
	RenderDiagnostics(w, c.diagnostics, colorize)
}

// RenderDiagnostics writes diagnostics to w, one per line, colorized red
// when colorize is true. It's exported separately from Context.Render so
// a caller holding only a []Diagnostic slice (for example, one already
// extracted from a finished compile) can still render consistently.
func RenderDiagnostics(w io.Writer, diagnostics []Diagnostic, colorize bool) {
	red := color.New(color.FgRed)
	for _, d := range diagnostics {
		line := errorLine(d)
		if colorize {
			red.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}
