// This is the main-driver for our compiler.

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	debug := flag.Bool("debug", false, "Insert a debug breakpoint in the generated assembly.")
	dumpTokens := flag.Bool("dump-tokens", false, "Print the source and its token stream before compiling.")
	dumpAST := flag.Bool("dump-ast", false, "Print the parsed (and optimized) AST as YAML instead of compiling.")
	noOptimize := flag.Bool("no-optimize", false, "Disable every optimizer pass.")
	configPath := flag.String("config", "", "Path to a TOML file overriding optimizer/codegen defaults.")
	tokensREPL := flag.Bool("tokens", false, "Start an interactive token-dump REPL; no positional arguments required.")
	flag.Parse()

	if *tokensREPL {
		runREPL()
		return
	}

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: slc [flags] <input-path> <output-path>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", inputPath, err)
		os.Exit(1)
	}

	if *dumpTokens {
		fmt.Fprintln(os.Stdout, string(source))
		printTokens(os.Stdout, string(source))
	}

	if *dumpAST {
		// printAST already reported any parse diagnostic to stderr itself.
		if err := printAST(os.Stdout, string(source), *noOptimize); err != nil {
			os.Exit(1)
		}
		return
	}

	// compileSource already reported any failure to stderr. A non-nil err
	// may still come with usable assembly in out: a parse error doesn't
	// stop the optimizer/codegen stages from running on the partial tree,
	// so whatever was generated is still worth writing out.
	out, err := compileSource(string(source), *configPath, *debug, *noOptimize, os.Stderr)

	if out != "" {
		if writeErr := writeOutput(outputPath, out); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", outputPath, writeErr)
			os.Exit(1)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// writeOutput creates (or truncates) outputPath and writes contents to it,
// folding any error encountered while closing the file into the result so a
// failed flush on a full disk is never silently swallowed.
func writeOutput(outputPath, contents string) (err error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	_, err = f.WriteString(contents)
	return err
}
