// Package astdump renders a parsed program as YAML, for the CLI's
// -dump-ast flag: a plain-text view of the tree the parser (and, if
// requested, the optimizer) produced, useful for debugging either stage
// without attaching a real debugger.
package astdump

import (
	"gopkg.in/yaml.v3"

	"github.com/corebuild/slc/ast"
)

// Dump renders prog as a YAML document.
func Dump(prog *ast.Program) (string, error) {
	out, err := yaml.Marshal(prog)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
