package transpiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agentic-research/cclua/internal/syntax"
)

// ── Expression → String ──────────────────────────────────────────────────────

// expr renders e as target-language source. Binary, unary and comparison
// results are always parenthesized so the target's precedence rules never
// come into play.
func (t *Translator) expr(e syntax.Expr) (string, error) {
	switch e := e.(type) {
	case nil:
		return "", unsupportedNode(nil, "empty expression")

	case *syntax.Str:
		return `"` + e.Value + `"`, nil

	case *syntax.Num:
		return formatNumber(e), nil

	case *syntax.Bool:
		if e.Value {
			return "true", nil
		}
		return "false", nil

	case *syntax.None:
		return "nil", nil

	case *syntax.Name:
		return e.ID, nil

	case *syntax.Attribute:
		return t.attribute(e)

	case *syntax.BinaryOp:
		op, ok := binaryOps[e.Op]
		if !ok {
			return "", unsupportedNode(e, "binary operator %s", e.Op)
		}
		left, err := t.expr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := t.expr(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", left, op, right), nil

	case *syntax.UnaryOp:
		if e.Op != syntax.USub {
			return "", unsupportedNode(e, "unary operator %s", e.Op)
		}
		operand, err := t.expr(e.Operand)
		if err != nil {
			return "", err
		}
		return "(-" + operand + ")", nil

	case *syntax.Compare:
		return t.compare(e)

	case *syntax.Call:
		return t.call(e)

	case *syntax.Opaque:
		return "", unsupportedNode(e, "expression %s", e.Kind)
	}

	return "", unsupportedNode(e, "expression %T", e)
}

// attribute renders X.Member. Members of a name imported from a mapped
// origin go through that origin's naming rule; everything else is verbatim.
func (t *Translator) attribute(e *syntax.Attribute) (string, error) {
	base, err := t.expr(e.X)
	if err != nil {
		return "", err
	}
	member := e.Member
	if ident, ok := e.X.(*syntax.Name); ok {
		if origin, ok := t.imports.OriginOf(ident.ID); ok {
			if m, ok := t.table.Lookup(origin); ok {
				member = m.Member(member)
			}
		}
	}
	return base + "." + member, nil
}

func (t *Translator) compare(e *syntax.Compare) (string, error) {
	if len(e.Ops) == 0 || len(e.Ops) != len(e.Comparators) {
		return "", unsupportedShape(e, "comparison with %d operators and %d right operands", len(e.Ops), len(e.Comparators))
	}
	if len(e.Ops) != 1 {
		return "", unsupportedShape(e, "chained comparison with %d operators", len(e.Ops))
	}
	op, ok := compareOps[e.Ops[0]]
	if !ok {
		return "", unsupportedNode(e, "comparison operator %s", e.Ops[0])
	}
	left, err := t.expr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := t.expr(e.Comparators[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right), nil
}

// call renders Func(args...). The callee is rendered like any other
// expression; a bare imported name is not renamed.
func (t *Translator) call(e *syntax.Call) (string, error) {
	if len(e.Keywords) > 0 {
		return "", unsupportedShape(e, "keyword argument %q", e.Keywords[0].Name)
	}
	fn, err := t.expr(e.Func)
	if err != nil {
		return "", err
	}
	args := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		s, err := t.expr(a)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}
	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", ")), nil
}

// ── Operator Mapping ─────────────────────────────────────────────────────────

var binaryOps = map[syntax.Operator]string{
	syntax.Add:  "+",
	syntax.Sub:  "-",
	syntax.Mult: "*",
	syntax.Div:  "/",
}

var compareOps = map[syntax.Operator]string{
	syntax.Eq:    "==",
	syntax.NotEq: "~=",
	syntax.Lt:    "<",
	syntax.LtE:   "<=",
	syntax.Gt:    ">",
	syntax.GtE:   ">=",
}

// ── Literals ─────────────────────────────────────────────────────────────────

func formatNumber(n *syntax.Num) string {
	if !n.IsFloat {
		if n.Int == nil {
			return "0"
		}
		return n.Int.String()
	}
	return formatFloat(n.Float)
}

// formatFloat follows the source language's repr: positional notation for
// magnitudes in [1e-4, 1e16), exponent notation otherwise, and always a
// fractional part or exponent so the value stays visibly a float.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "math.huge"
	case math.IsInf(f, -1):
		return "(-math.huge)"
	case math.IsNaN(f):
		return "(0/0)"
	}

	var s string
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
