package frontend

import (
	"context"
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/agentic-research/cclua/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// ParsePython parses source text with tree-sitter and lowers the concrete
// tree to a syntax.Module. Syntax errors are reported as *ValidationError.
// Constructs outside the syntax node set become *syntax.Opaque; rejecting
// them is left to the translator.
func ParsePython(ctx context.Context, content []byte, filePath string) (*syntax.Module, error) {
	root, err := parseTree(ctx, content, filePath)
	if err != nil {
		return nil, err
	}
	if root.HasError() {
		return nil, firstError(root, filePath)
	}

	l := &pyLowerer{src: content}
	return &syntax.Module{At: l.at(root), Body: l.block(root)}, nil
}

type pyLowerer struct {
	src []byte
}

func (l *pyLowerer) at(n *sitter.Node) syntax.At {
	p := n.StartPoint()
	return syntax.At{Pos: syntax.Pos{Line: int(p.Row) + 1, Column: int(p.Column) + 1}}
}

func (l *pyLowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

func (l *pyLowerer) opaque(n *sitter.Node, kind string) *syntax.Opaque {
	return &syntax.Opaque{At: l.at(n), Kind: kind}
}

func typeOf(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Type()
}

// named returns the named children of n, skipping comments.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ── Statements ───────────────────────────────────────────────────────────────

// block lowers the statements of a module or block node.
func (l *pyLowerer) block(n *sitter.Node) []syntax.Stmt {
	var out []syntax.Stmt
	for _, c := range named(n) {
		out = append(out, l.stmt(c))
	}
	return out
}

func (l *pyLowerer) stmt(n *sitter.Node) syntax.Stmt {
	switch n.Type() {
	case "expression_statement":
		return l.exprStatement(n)
	case "if_statement":
		return l.ifStatement(n)
	case "while_statement":
		return &syntax.While{
			At:      l.at(n),
			Test:    l.expr(n.ChildByFieldName("condition")),
			Body:    l.block(n.ChildByFieldName("body")),
			HasElse: n.ChildByFieldName("alternative") != nil,
		}
	case "function_definition":
		return l.funcDef(n)
	case "import_statement":
		return &syntax.Import{At: l.at(n), Names: l.importNames(n, nil)}
	case "import_from_statement":
		return l.importFrom(n)
	case "future_import_statement":
		return &syntax.ImportFrom{At: l.at(n), Module: "__future__", Names: l.importNames(n, nil)}
	case "pass_statement":
		return &syntax.Pass{At: l.at(n)}
	}
	return l.opaque(n, ConstructName(n.Type()))
}

func (l *pyLowerer) exprStatement(n *sitter.Node) syntax.Stmt {
	children := named(n)
	if len(children) != 1 {
		return l.opaque(n, "Tuple")
	}
	c := children[0]
	switch c.Type() {
	case "assignment":
		return l.assignment(c)
	case "augmented_assignment", "yield":
		return l.opaque(c, ConstructName(c.Type()))
	}
	return &syntax.ExprStmt{At: l.at(n), X: l.expr(c)}
}

// assignment flattens `a = b = v`, which the grammar nests right-first, into
// one Assign with every target.
func (l *pyLowerer) assignment(n *sitter.Node) syntax.Stmt {
	a := &syntax.Assign{At: l.at(n)}
	cur := n
	for {
		if cur.ChildByFieldName("type") != nil {
			return l.opaque(cur, "AnnAssign")
		}
		a.Targets = append(a.Targets, l.expr(cur.ChildByFieldName("left")))
		right := cur.ChildByFieldName("right")
		if right == nil {
			return l.opaque(cur, "AnnAssign")
		}
		switch right.Type() {
		case "assignment":
			cur = right
			continue
		case "augmented_assignment":
			return l.opaque(right, "AugAssign")
		}
		a.Value = l.expr(right)
		return a
	}
}

// ifStatement folds elif/else clauses, last first, into nested If nodes.
func (l *pyLowerer) ifStatement(n *sitter.Node) syntax.Stmt {
	var alts []*sitter.Node
	for _, c := range named(n) {
		if t := c.Type(); t == "elif_clause" || t == "else_clause" {
			alts = append(alts, c)
		}
	}

	var orelse []syntax.Stmt
	for i := len(alts) - 1; i >= 0; i-- {
		a := alts[i]
		if a.Type() == "else_clause" {
			orelse = l.block(a.ChildByFieldName("body"))
			continue
		}
		orelse = []syntax.Stmt{&syntax.If{
			At:   l.at(a),
			Test: l.expr(a.ChildByFieldName("condition")),
			Then: l.block(a.ChildByFieldName("consequence")),
			Else: orelse,
		}}
	}

	return &syntax.If{
		At:   l.at(n),
		Test: l.expr(n.ChildByFieldName("condition")),
		Then: l.block(n.ChildByFieldName("consequence")),
		Else: orelse,
	}
}

func (l *pyLowerer) funcDef(n *sitter.Node) syntax.Stmt {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && !c.IsNamed() && c.Type() == "async" {
			return l.opaque(n, "AsyncFunctionDef")
		}
	}
	return &syntax.FuncDef{
		At:     l.at(n),
		Name:   l.text(n.ChildByFieldName("name")),
		Params: l.params(n.ChildByFieldName("parameters")),
		Body:   l.block(n.ChildByFieldName("body")),
	}
}

// params classifies each parameter. Annotations are dropped; a bare `*`
// makes every later parameter keyword-only.
func (l *pyLowerer) params(n *sitter.Node) []syntax.Param {
	if n == nil {
		return nil
	}
	var (
		out     []syntax.Param
		kwOnly  bool
		count   = int(n.ChildCount())
		plainOf = func() syntax.ParamKind {
			if kwOnly {
				return syntax.ParamKeywordOnly
			}
			return syntax.ParamPositional
		}
	)
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if !c.IsNamed() {
			if c.Type() == "*" {
				kwOnly = true
			}
			continue
		}

		p := syntax.Param{At: l.at(c)}
		switch c.Type() {
		case "comment", "positional_separator":
			continue
		case "keyword_separator":
			kwOnly = true
			continue
		case "identifier":
			p.Name, p.Kind = l.text(c), plainOf()
		case "typed_parameter":
			inner := named(c)
			if len(inner) == 0 {
				continue
			}
			switch inner[0].Type() {
			case "list_splat_pattern":
				p.Name, p.Kind = l.splatName(inner[0]), syntax.ParamVariadic
				kwOnly = true
			case "dictionary_splat_pattern":
				p.Name, p.Kind = l.splatName(inner[0]), syntax.ParamKeywordVariadic
			default:
				p.Name, p.Kind = l.text(inner[0]), plainOf()
			}
		case "default_parameter", "typed_default_parameter":
			p.Name, p.Kind = l.text(c.ChildByFieldName("name")), syntax.ParamDefault
		case "list_splat_pattern":
			p.Name, p.Kind = l.splatName(c), syntax.ParamVariadic
			kwOnly = true
		case "dictionary_splat_pattern":
			p.Name, p.Kind = l.splatName(c), syntax.ParamKeywordVariadic
		default:
			p.Name, p.Kind = l.text(c), syntax.ParamDefault
		}
		out = append(out, p)
	}
	return out
}

func (l *pyLowerer) splatName(n *sitter.Node) string {
	if inner := named(n); len(inner) > 0 {
		return l.text(inner[0])
	}
	return strings.TrimLeft(l.text(n), "*")
}

// importNames collects the `name [as alias]` clauses of an import node,
// skipping the module-name child when one is given.
func (l *pyLowerer) importNames(n, module *sitter.Node) []syntax.ImportName {
	var out []syntax.ImportName
	for _, c := range named(n) {
		if module != nil && c.StartByte() == module.StartByte() && c.EndByte() == module.EndByte() {
			continue
		}
		switch c.Type() {
		case "dotted_name", "identifier":
			out = append(out, syntax.ImportName{Name: l.text(c)})
		case "aliased_import":
			out = append(out, syntax.ImportName{
				Name:  l.text(c.ChildByFieldName("name")),
				Alias: l.text(c.ChildByFieldName("alias")),
			})
		case "wildcard_import":
			out = append(out, syntax.ImportName{Name: "*"})
		}
	}
	return out
}

func (l *pyLowerer) importFrom(n *sitter.Node) syntax.Stmt {
	module := n.ChildByFieldName("module_name")
	s := &syntax.ImportFrom{At: l.at(n), Names: l.importNames(n, module)}
	if module == nil {
		return s
	}
	if module.Type() == "relative_import" {
		// from .pkg import x names pkg; from . import x names nothing
		for _, c := range named(module) {
			if c.Type() == "dotted_name" {
				s.Module = l.text(c)
			}
		}
		return s
	}
	s.Module = l.text(module)
	return s
}

// ── Expressions ──────────────────────────────────────────────────────────────

var binaryTokens = map[string]syntax.Operator{
	"+":  syntax.Add,
	"-":  syntax.Sub,
	"*":  syntax.Mult,
	"/":  syntax.Div,
	"//": syntax.FloorDiv,
	"%":  syntax.Mod,
	"**": syntax.Pow,
	"@":  syntax.MatMult,
	"|":  syntax.BitOr,
	"^":  syntax.BitXor,
	"&":  syntax.BitAnd,
	"<<": syntax.LShift,
	">>": syntax.RShift,
}

var unaryTokens = map[string]syntax.Operator{
	"-": syntax.USub,
	"+": syntax.UAdd,
	"~": syntax.Invert,
}

var compareTokens = map[string]syntax.Operator{
	"==":     syntax.Eq,
	"!=":     syntax.NotEq,
	"<>":     syntax.NotEq,
	"<":      syntax.Lt,
	"<=":     syntax.LtE,
	">":      syntax.Gt,
	">=":     syntax.GtE,
	"is":     syntax.Is,
	"is not": syntax.IsNot,
	"in":     syntax.In,
	"not in": syntax.NotIn,
}

func (l *pyLowerer) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier":
		return &syntax.Name{At: l.at(n), ID: l.text(n)}
	case "string":
		return l.str(n)
	case "concatenated_string":
		return l.concatenated(n)
	case "integer":
		return l.integer(n)
	case "float":
		return l.float(n)
	case "true":
		return &syntax.Bool{At: l.at(n), Value: true}
	case "false":
		return &syntax.Bool{At: l.at(n)}
	case "none":
		return &syntax.None{At: l.at(n)}

	case "attribute":
		return &syntax.Attribute{
			At:     l.at(n),
			X:      l.expr(n.ChildByFieldName("object")),
			Member: l.text(n.ChildByFieldName("attribute")),
		}

	case "binary_operator":
		op, ok := binaryTokens[typeOf(n.ChildByFieldName("operator"))]
		if !ok {
			return l.opaque(n, "BinOp")
		}
		return &syntax.BinaryOp{
			At:    l.at(n),
			Left:  l.expr(n.ChildByFieldName("left")),
			Op:    op,
			Right: l.expr(n.ChildByFieldName("right")),
		}

	case "unary_operator":
		op, ok := unaryTokens[typeOf(n.ChildByFieldName("operator"))]
		if !ok {
			return l.opaque(n, "UnaryOp")
		}
		return &syntax.UnaryOp{At: l.at(n), Op: op, Operand: l.expr(n.ChildByFieldName("argument"))}

	case "not_operator":
		return &syntax.UnaryOp{At: l.at(n), Op: syntax.Not, Operand: l.expr(n.ChildByFieldName("argument"))}

	case "comparison_operator":
		return l.comparison(n)

	case "call":
		return l.call(n)

	case "parenthesized_expression":
		inner := named(n)
		if len(inner) != 1 {
			return l.opaque(n, "Tuple")
		}
		return l.expr(inner[0])
	}
	return l.opaque(n, ConstructName(n.Type()))
}

// str copies the body of a string literal verbatim. Formatted and byte
// strings have no plain-text equivalent and stay opaque.
func (l *pyLowerer) str(n *sitter.Node) syntax.Expr {
	raw := l.text(n)
	i := strings.IndexAny(raw, `"'`)
	if i < 0 {
		return l.opaque(n, "string literal")
	}
	prefix := strings.ToLower(raw[:i])
	switch {
	case strings.Contains(prefix, "f"):
		return l.opaque(n, "JoinedStr")
	case strings.Contains(prefix, "b"):
		return l.opaque(n, "bytes literal")
	}

	body := raw[i:]
	quote := body[:1]
	if triple := strings.Repeat(quote, 3); len(body) >= 6 && strings.HasPrefix(body, triple) {
		quote = triple
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return l.opaque(n, "string literal")
	}
	return &syntax.Str{At: l.at(n), Value: body[len(quote) : len(body)-len(quote)]}
}

// concatenated joins adjacent literals, as the source language does at
// compile time.
func (l *pyLowerer) concatenated(n *sitter.Node) syntax.Expr {
	var sb strings.Builder
	for _, c := range named(n) {
		part, ok := l.str(c).(*syntax.Str)
		if !ok {
			return l.opaque(c, "JoinedStr")
		}
		sb.WriteString(part.Value)
	}
	return &syntax.Str{At: l.at(n), Value: sb.String()}
}

func (l *pyLowerer) integer(n *sitter.Node) syntax.Expr {
	text := l.text(n)
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		return l.opaque(n, "complex literal")
	}
	text = strings.TrimRight(text, "lL")
	if !validIntegerPrefix(text) {
		return l.opaque(n, "integer literal")
	}
	v, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return l.opaque(n, "integer literal")
	}
	return &syntax.Num{At: l.at(n), Int: v}
}

// validIntegerPrefix rejects decimals with leading zeros such as 010, which
// the grammar accepts but the source language does not. A leading 0 must
// start a 0x / 0o / 0b prefix or the literal must be all zeros.
func validIntegerPrefix(text string) bool {
	digits := strings.ReplaceAll(text, "_", "")
	if len(digits) < 2 || digits[0] != '0' {
		return true
	}
	switch digits[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return strings.Trim(digits, "0") == ""
}

func (l *pyLowerer) float(n *sitter.Node) syntax.Expr {
	text := l.text(n)
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		return l.opaque(n, "complex literal")
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.opaque(n, "float literal")
	}
	return &syntax.Num{At: l.at(n), Float: f, IsFloat: true}
}

// comparison walks operands and operator tokens in order. Multi-word
// operators (`not in`, `is not`) may arrive as one token or several.
func (l *pyLowerer) comparison(n *sitter.Node) syntax.Expr {
	c := &syntax.Compare{At: l.at(n)}
	var pending []string
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if !child.IsNamed() {
			pending = append(pending, child.Type())
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		operand := l.expr(child)
		if c.Left == nil {
			c.Left = operand
			continue
		}
		op, ok := compareTokens[strings.Join(pending, " ")]
		if !ok {
			return l.opaque(n, "Compare")
		}
		pending = pending[:0]
		c.Ops = append(c.Ops, op)
		c.Comparators = append(c.Comparators, operand)
	}
	return c
}

func (l *pyLowerer) call(n *sitter.Node) syntax.Expr {
	c := &syntax.Call{At: l.at(n), Func: l.expr(n.ChildByFieldName("function"))}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return c
	}
	if args.Type() == "generator_expression" {
		c.Args = append(c.Args, l.opaque(args, "GeneratorExp"))
		return c
	}
	for _, a := range named(args) {
		if a.Type() == "keyword_argument" {
			c.Keywords = append(c.Keywords, syntax.Keyword{
				Name:  l.text(a.ChildByFieldName("name")),
				Value: l.expr(a.ChildByFieldName("value")),
			})
			continue
		}
		c.Args = append(c.Args, l.expr(a))
	}
	return c
}
