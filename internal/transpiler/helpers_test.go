package transpiler

import (
	"math/big"

	"github.com/agentic-research/cclua/internal/syntax"
)

// Small constructors so test trees read like the source they stand for.

func name(id string) *syntax.Name { return &syntax.Name{ID: id} }

func str(s string) *syntax.Str { return &syntax.Str{Value: s} }

func num(i int64) *syntax.Num { return &syntax.Num{Int: big.NewInt(i)} }

func flt(f float64) *syntax.Num { return &syntax.Num{Float: f, IsFloat: true} }

func attr(x syntax.Expr, member string) *syntax.Attribute {
	return &syntax.Attribute{X: x, Member: member}
}

func bin(l syntax.Expr, op syntax.Operator, r syntax.Expr) *syntax.BinaryOp {
	return &syntax.BinaryOp{Left: l, Op: op, Right: r}
}

func neg(x syntax.Expr) *syntax.UnaryOp { return &syntax.UnaryOp{Op: syntax.USub, Operand: x} }

func cmp(l syntax.Expr, op syntax.Operator, r syntax.Expr) *syntax.Compare {
	return &syntax.Compare{Left: l, Ops: []syntax.Operator{op}, Comparators: []syntax.Expr{r}}
}

func call(fn syntax.Expr, args ...syntax.Expr) *syntax.Call {
	return &syntax.Call{Func: fn, Args: args}
}

func assign(target, value syntax.Expr) *syntax.Assign {
	return &syntax.Assign{Targets: []syntax.Expr{target}, Value: value}
}

func exprStmt(x syntax.Expr) *syntax.ExprStmt { return &syntax.ExprStmt{X: x} }

func def(fn string, params []string, body ...syntax.Stmt) *syntax.FuncDef {
	ps := make([]syntax.Param, len(params))
	for i, p := range params {
		ps[i] = syntax.Param{Name: p}
	}
	return &syntax.FuncDef{Name: fn, Params: ps, Body: body}
}

func fromImport(module string, names ...syntax.ImportName) *syntax.ImportFrom {
	return &syntax.ImportFrom{Module: module, Names: names}
}

func module(body ...syntax.Stmt) *syntax.Module { return &syntax.Module{Body: body} }
