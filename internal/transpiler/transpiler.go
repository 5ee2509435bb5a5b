// Package transpiler turns a syntax.Module into target-language source text.
//
// A run resolves the module's top-level imports once, then walks the
// statements top to bottom writing lines into a Buffer. Nothing is shared
// between runs, so concurrent calls to Translate are independent.
package transpiler

import (
	"github.com/agentic-research/cclua/api"
	"github.com/agentic-research/cclua/internal/syntax"
)

// entryPoint is called once at the end of the output when defined at top
// level, since top-level source code runs directly but the target needs an
// explicit call.
const entryPoint = "main"

// Translator holds the state of one translation run.
type Translator struct {
	table   api.Table
	imports Bindings
	out     *Buffer
	hasMain bool
}

// Translate renders mod using table to rename API members. On error no
// output is returned.
func Translate(mod *syntax.Module, table api.Table) (string, error) {
	if mod == nil {
		return "", unsupportedNode(nil, "empty module")
	}
	t := &Translator{
		table:   table,
		imports: ResolveImports(mod.Body),
		out:     NewBuffer(),
	}
	if err := t.stmts(mod.Body); err != nil {
		return "", err
	}
	if t.hasMain {
		t.out.Emit(entryPoint + "()")
	}
	return t.out.String(), nil
}
