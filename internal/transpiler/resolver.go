package transpiler

import (
	"strings"

	"github.com/agentic-research/cclua/internal/syntax"
)

// Binding records where a locally bound import name came from.
type Binding struct {
	// Origin is the module named by the import statement.
	Origin string
	// Name is the exported name for `from Origin import Name`; empty for a
	// plain `import Origin`.
	Name string
}

// Bindings maps a local name to its import. Built once per translation and
// read-only afterwards.
type Bindings map[string]Binding

// ResolveImports scans the top-level statements for imports. A name bound
// twice keeps the last binding.
func ResolveImports(body []syntax.Stmt) Bindings {
	b := make(Bindings)
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *syntax.ImportFrom:
			// from . import x: nothing to attribute the names to
			if s.Module == "" {
				continue
			}
			for _, n := range s.Names {
				if n.Name == "*" {
					continue
				}
				local := n.Alias
				if local == "" {
					local = n.Name
				}
				b[local] = Binding{Origin: s.Module, Name: n.Name}
			}
		case *syntax.Import:
			for _, n := range s.Names {
				if n.Alias != "" {
					b[n.Alias] = Binding{Origin: n.Name}
					continue
				}
				// import a.b binds a, which refers to module a
				head, _, _ := strings.Cut(n.Name, ".")
				b[head] = Binding{Origin: head}
			}
		}
	}
	return b
}

// OriginOf returns the origin module of a local name.
func (b Bindings) OriginOf(local string) (string, bool) {
	bind, ok := b[local]
	if !ok {
		return "", false
	}
	return bind.Origin, true
}
