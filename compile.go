package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/corebuild/slc/compiler"
	"github.com/corebuild/slc/internal/config"
	"github.com/corebuild/slc/internal/diag"
	"github.com/corebuild/slc/optimizer"
)

// compileSource loads configPath (if given), applies the debug and
// no-optimize flag overrides on top of it, and compiles source to
// assembly. Any failure is reported to diagStream before compileSource
// returns — parse/lex diagnostics in their "Parse error at line L, column
// C: <message>" form (colorized when diagStream is a terminal), a
// code-generation failure as a plain line. The caller only needs to check
// whether the returned error is nil to decide the exit status; a non-nil
// error may still come with usable partial assembly in the first return
// value, since a parse error doesn't stop the optimizer/codegen stages
// from running on the partial tree.
func compileSource(source, configPath string, debug, noOptimize bool, diagStream *os.File) (string, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintln(diagStream, err)
			return "", err
		}
	} else {
		cfg = config.Default()
	}

	c := compiler.New(source)
	c.SetDebug(debug || cfg.Codegen.Debug)

	if noOptimize {
		c.SetOptimizerOptions(optimizer.Options{})
	} else {
		c.SetOptimizerOptions(optimizer.Options{
			ConstantFolding:     cfg.Optimizer.ConstantFolding,
			DeadCodeElimination: cfg.Optimizer.DeadCodeElimination,
			StrengthReduction:   cfg.Optimizer.StrengthReduction,
		})
	}

	out, compileErr := c.Compile()

	if diagnostics := c.Diagnostics(); len(diagnostics) > 0 {
		diag.RenderDiagnostics(diagStream, diagnostics, isatty.IsTerminal(diagStream.Fd()))
	} else if compileErr != nil {
		fmt.Fprintln(diagStream, compileErr)
	}

	return out, compileErr
}
