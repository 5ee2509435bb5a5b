package frontend

import (
	"fmt"
	"math/big"

	"github.com/agentic-research/cclua/internal/syntax"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ParseJSON lowers an abstract syntax tree serialized as JSON, the format
// produced by ast-to-JSON dumpers of the source language: one object per
// node, its kind under "_type", its fields under their grammar names and
// positions under "lineno" / "col_offset".
//
//	{"_type": "Module", "body": [{"_type": "Expr", "value": {...}}]}
func ParseJSON(content []byte, filePath string) (*syntax.Module, error) {
	data, err := oj.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json ast %s: %w", filePath, err)
	}
	if kind := nodeType(data); kind != "Module" {
		return nil, fmt.Errorf("%s: root node is %q, want \"Module\"", filePath, kind)
	}
	var l jsonLowerer
	return &syntax.Module{At: l.at(data), Body: l.stmts(field(data, "body"))}, nil
}

var typeKey = jp.C("_type")

// field returns the first match of key under node, or nil.
func field(node any, key string) any {
	return jp.C(key).First(node)
}

func nodeType(node any) string {
	s, _ := typeKey.First(node).(string)
	return s
}

func stringField(node any, key string) string {
	s, _ := field(node, key).(string)
	return s
}

func listField(node any, key string) []any {
	l, _ := field(node, key).([]any)
	return l
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

type jsonLowerer struct{}

func (jsonLowerer) at(node any) syntax.At {
	line, _ := intValue(field(node, "lineno"))
	col, _ := intValue(field(node, "col_offset"))
	if line <= 0 {
		return syntax.At{}
	}
	return syntax.At{Pos: syntax.Pos{Line: int(line), Column: int(col) + 1}}
}

func (l jsonLowerer) opaque(node any, kind string) *syntax.Opaque {
	if kind == "" {
		kind = "malformed node"
	}
	return &syntax.Opaque{At: l.at(node), Kind: kind}
}

// ── Statements ───────────────────────────────────────────────────────────────

func (l jsonLowerer) stmts(v any) []syntax.Stmt {
	list, _ := v.([]any)
	out := make([]syntax.Stmt, 0, len(list))
	for _, n := range list {
		out = append(out, l.stmt(n))
	}
	return out
}

func (l jsonLowerer) stmt(n any) syntax.Stmt {
	switch kind := nodeType(n); kind {
	case "Assign":
		a := &syntax.Assign{At: l.at(n), Value: l.expr(field(n, "value"))}
		for _, t := range listField(n, "targets") {
			a.Targets = append(a.Targets, l.expr(t))
		}
		return a
	case "If":
		return &syntax.If{
			At:   l.at(n),
			Test: l.expr(field(n, "test")),
			Then: l.stmts(field(n, "body")),
			Else: l.stmts(field(n, "orelse")),
		}
	case "While":
		return &syntax.While{
			At:      l.at(n),
			Test:    l.expr(field(n, "test")),
			Body:    l.stmts(field(n, "body")),
			HasElse: len(listField(n, "orelse")) > 0,
		}
	case "FunctionDef":
		if len(listField(n, "decorator_list")) > 0 {
			return l.opaque(n, "decorated definition")
		}
		return &syntax.FuncDef{
			At:     l.at(n),
			Name:   stringField(n, "name"),
			Params: l.params(field(n, "args")),
			Body:   l.stmts(field(n, "body")),
		}
	case "Expr":
		return &syntax.ExprStmt{At: l.at(n), X: l.expr(field(n, "value"))}
	case "Import":
		return &syntax.Import{At: l.at(n), Names: l.aliases(n)}
	case "ImportFrom":
		return &syntax.ImportFrom{At: l.at(n), Module: stringField(n, "module"), Names: l.aliases(n)}
	case "Pass":
		return &syntax.Pass{At: l.at(n)}
	default:
		return l.opaque(n, kind)
	}
}

func (jsonLowerer) aliases(n any) []syntax.ImportName {
	var out []syntax.ImportName
	for _, a := range listField(n, "names") {
		out = append(out, syntax.ImportName{
			Name:  stringField(a, "name"),
			Alias: stringField(a, "asname"),
		})
	}
	return out
}

// params reads an `arguments` node. The trailing len(defaults) positional
// parameters carry defaults.
func (l jsonLowerer) params(args any) []syntax.Param {
	if args == nil {
		return nil
	}
	positional := append(append([]any{}, listField(args, "posonlyargs")...), listField(args, "args")...)
	firstDefault := len(positional) - len(listField(args, "defaults"))

	var out []syntax.Param
	param := func(a any, kind syntax.ParamKind) {
		out = append(out, syntax.Param{At: l.at(a), Name: stringField(a, "arg"), Kind: kind})
	}
	for i, a := range positional {
		if i >= firstDefault {
			param(a, syntax.ParamDefault)
			continue
		}
		param(a, syntax.ParamPositional)
	}
	if v := field(args, "vararg"); v != nil {
		param(v, syntax.ParamVariadic)
	}
	for _, a := range listField(args, "kwonlyargs") {
		param(a, syntax.ParamKeywordOnly)
	}
	if v := field(args, "kwarg"); v != nil {
		param(v, syntax.ParamKeywordVariadic)
	}
	return out
}

// ── Expressions ──────────────────────────────────────────────────────────────

func (l jsonLowerer) expr(n any) syntax.Expr {
	if n == nil {
		return nil
	}
	switch kind := nodeType(n); kind {
	case "Constant", "NameConstant":
		return l.constant(n, field(n, "value"))
	case "Num":
		return l.constant(n, field(n, "n"))
	case "Str":
		return l.constant(n, field(n, "s"))
	case "Name":
		return &syntax.Name{At: l.at(n), ID: stringField(n, "id")}
	case "Attribute":
		return &syntax.Attribute{At: l.at(n), X: l.expr(field(n, "value")), Member: stringField(n, "attr")}
	case "BinOp":
		return &syntax.BinaryOp{
			At:    l.at(n),
			Left:  l.expr(field(n, "left")),
			Op:    operator(field(n, "op")),
			Right: l.expr(field(n, "right")),
		}
	case "UnaryOp":
		return &syntax.UnaryOp{At: l.at(n), Op: operator(field(n, "op")), Operand: l.expr(field(n, "operand"))}
	case "Compare":
		c := &syntax.Compare{At: l.at(n), Left: l.expr(field(n, "left"))}
		for _, op := range listField(n, "ops") {
			c.Ops = append(c.Ops, operator(op))
		}
		for _, r := range listField(n, "comparators") {
			c.Comparators = append(c.Comparators, l.expr(r))
		}
		return c
	case "Call":
		c := &syntax.Call{At: l.at(n), Func: l.expr(field(n, "func"))}
		for _, a := range listField(n, "args") {
			c.Args = append(c.Args, l.expr(a))
		}
		for _, k := range listField(n, "keywords") {
			name := stringField(k, "arg")
			if name == "" {
				name = "**"
			}
			c.Keywords = append(c.Keywords, syntax.Keyword{Name: name, Value: l.expr(field(k, "value"))})
		}
		return c
	default:
		return l.opaque(n, kind)
	}
}

func (l jsonLowerer) constant(n, v any) syntax.Expr {
	at := l.at(n)
	switch c := v.(type) {
	case nil:
		return &syntax.None{At: at}
	case bool:
		return &syntax.Bool{At: at, Value: c}
	case string:
		return &syntax.Str{At: at, Value: c}
	case int64:
		return &syntax.Num{At: at, Int: big.NewInt(c)}
	case int:
		return &syntax.Num{At: at, Int: big.NewInt(int64(c))}
	case float64:
		return &syntax.Num{At: at, Float: c, IsFloat: true}
	case *big.Int:
		return &syntax.Num{At: at, Int: c}
	case fmt.Stringer:
		// integers beyond int64 arrive as a decimal number type
		if i, ok := new(big.Int).SetString(c.String(), 10); ok {
			return &syntax.Num{At: at, Int: i}
		}
	}
	return l.opaque(n, fmt.Sprintf("constant of type %T", v))
}

func operator(op any) syntax.Operator {
	o, _ := syntax.OperatorByName(nodeType(op))
	return o
}
