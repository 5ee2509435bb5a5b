package transpiler

import (
	"fmt"
	"strings"

	"github.com/agentic-research/cclua/internal/syntax"
)

// ── Statement Writer (indent-aware) ─────────────────────────────────────────

func (t *Translator) stmts(body []syntax.Stmt) error {
	for _, s := range body {
		if err := t.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// block translates body one level deeper than the current line.
func (t *Translator) block(body []syntax.Stmt) error {
	return t.out.Nested(func() error { return t.stmts(body) })
}

func (t *Translator) stmt(stmt syntax.Stmt) error {
	switch s := stmt.(type) {
	case nil:
		return unsupportedNode(nil, "empty statement")

	case *syntax.Assign:
		return t.assign(s)

	case *syntax.If:
		return t.ifStmt(s)

	case *syntax.While:
		if s.HasElse {
			return unsupportedShape(s, "else clause on while loop")
		}
		cond, err := t.expr(s.Test)
		if err != nil {
			return err
		}
		t.out.Emit(fmt.Sprintf("while %s do", cond))
		if err := t.block(s.Body); err != nil {
			return err
		}
		t.out.Emit("end")
		return nil

	case *syntax.FuncDef:
		return t.funcDef(s)

	case *syntax.ExprStmt:
		line, err := t.expr(s.X)
		if err != nil {
			return err
		}
		t.out.Emit(line)
		return nil

	// Imports were consumed by the resolver; pass has no equivalent.
	case *syntax.Import, *syntax.ImportFrom, *syntax.Pass:
		return nil

	case *syntax.Opaque:
		return unsupportedNode(s, "statement %s", s.Kind)
	}

	return unsupportedNode(stmt, "statement %T", stmt)
}

// ── Assignment ───────────────────────────────────────────────────────────────

// assign always emits a fresh local; reassignment is not distinguished.
func (t *Translator) assign(s *syntax.Assign) error {
	if len(s.Targets) != 1 {
		return unsupportedShape(s, "assignment with %d targets", len(s.Targets))
	}
	target, err := t.expr(s.Targets[0])
	if err != nil {
		return err
	}
	value, err := t.expr(s.Value)
	if err != nil {
		return err
	}
	t.out.Emit(fmt.Sprintf("local %s = %s", target, value))
	return nil
}

// ── If / Else ────────────────────────────────────────────────────────────────

func (t *Translator) ifStmt(s *syntax.If) error {
	cond, err := t.expr(s.Test)
	if err != nil {
		return err
	}
	t.out.Emit(fmt.Sprintf("if %s then", cond))
	if err := t.block(s.Then); err != nil {
		return err
	}
	if len(s.Else) > 0 {
		t.out.Emit("else")
		if err := t.block(s.Else); err != nil {
			return err
		}
	}
	t.out.Emit("end")
	return nil
}

// ── Function Definition ──────────────────────────────────────────────────────

func (t *Translator) funcDef(s *syntax.FuncDef) error {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Kind != syntax.ParamPositional {
			return unsupportedShape(p, "%s %q in function %s", p.Kind, p.Name, s.Name)
		}
		params = append(params, p.Name)
	}

	t.out.Emit(fmt.Sprintf("function %s(%s)", s.Name, strings.Join(params, ", ")))
	if err := t.block(s.Body); err != nil {
		return err
	}
	t.out.Emit("end")

	if s.Name == entryPoint && t.out.Depth() == 0 {
		t.hasMain = true
	}
	return nil
}
