// Package syntax defines the tree handed to the translator by a front-end.
//
// The node set is closed: statements implement Stmt, expressions implement
// Expr, and both interfaces carry an unexported marker method so no other
// package can add variants. Constructs a front-end recognizes but does not
// model are carried as *Opaque so the translator can reject them with a
// position attached.
package syntax

import (
	"fmt"
	"math/big"
)

// Pos is a 1-based source position. The zero value means unknown.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every syntax node.
type Node interface {
	Position() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// At is embedded in every node to carry its position.
type At struct {
	Pos Pos
}

func (a At) Position() Pos { return a.Pos }

// ── Statements ───────────────────────────────────────────────────────────────

// Module is the root of a translation unit. It is not itself a statement.
type Module struct {
	At
	Body []Stmt
}

// Assign is `t1 = t2 = ... = value`. The translator accepts one target only.
type Assign struct {
	At
	Targets []Expr
	Value   Expr
}

// If is a conditional. An elif chain is a single *If in Else.
type If struct {
	At
	Test Expr
	Then []Stmt
	Else []Stmt
}

// While is a pre-tested loop.
type While struct {
	At
	Test Expr
	Body []Stmt
	// HasElse is set for `while ...: else:` which has no target equivalent.
	HasElse bool
}

// ParamKind classifies a function parameter.
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamDefault
	ParamVariadic
	ParamKeywordOnly
	ParamKeywordVariadic
)

func (k ParamKind) String() string {
	switch k {
	case ParamPositional:
		return "positional parameter"
	case ParamDefault:
		return "parameter with default value"
	case ParamVariadic:
		return "variadic parameter"
	case ParamKeywordOnly:
		return "keyword-only parameter"
	case ParamKeywordVariadic:
		return "keyword variadic parameter"
	}
	return fmt.Sprintf("ParamKind(%d)", int(k))
}

// Param is one parameter of a FuncDef.
type Param struct {
	At
	Name string
	Kind ParamKind
}

// FuncDef is a function definition.
type FuncDef struct {
	At
	Name   string
	Params []Param
	Body   []Stmt
}

// ExprStmt wraps an expression evaluated for its side effects.
type ExprStmt struct {
	At
	X Expr
}

// ImportName is one `name [as alias]` clause of an import.
type ImportName struct {
	Name  string
	Alias string
}

// Import is `import a.b [as c], ...`.
type Import struct {
	At
	Names []ImportName
}

// ImportFrom is `from module import name [as alias], ...`. Module is empty
// for a purely relative import such as `from . import x`.
type ImportFrom struct {
	At
	Module string
	Names  []ImportName
}

// Pass is the empty statement.
type Pass struct {
	At
}

// ── Expressions ──────────────────────────────────────────────────────────────

// Str is a string literal. Value is copied to the output verbatim.
type Str struct {
	At
	Value string
}

// Num is a numeric literal. Exactly one of Int or Float is meaningful,
// selected by IsFloat.
type Num struct {
	At
	Int     *big.Int
	Float   float64
	IsFloat bool
}

// Bool is True or False.
type Bool struct {
	At
	Value bool
}

// None is the None literal.
type None struct {
	At
}

// Name is a bare identifier.
type Name struct {
	At
	ID string
}

// Attribute is `X.Member`.
type Attribute struct {
	At
	X      Expr
	Member string
}

// BinaryOp is `Left Op Right`.
type BinaryOp struct {
	At
	Left  Expr
	Op    Operator
	Right Expr
}

// UnaryOp is `Op Operand`.
type UnaryOp struct {
	At
	Op      Operator
	Operand Expr
}

// Compare is `Left Ops[0] Comparators[0] Ops[1] Comparators[1] ...`.
// The translator accepts a single operator only.
type Compare struct {
	At
	Left        Expr
	Ops         []Operator
	Comparators []Expr
}

// Keyword is a `name=value` call argument.
type Keyword struct {
	Name  string
	Value Expr
}

// Call is `Func(Args..., Keywords...)`.
type Call struct {
	At
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// ── Unmodelled constructs ────────────────────────────────────────────────────

// Opaque stands in for any construct outside the node set above. Kind names
// the construct for diagnostics. It is both a statement and an expression so
// a front-end can place it anywhere.
type Opaque struct {
	At
	Kind string
}

func (*Assign) stmtNode()     {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*FuncDef) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}
func (*Import) stmtNode()     {}
func (*ImportFrom) stmtNode() {}
func (*Pass) stmtNode()       {}
func (*Opaque) stmtNode()     {}

func (*Str) exprNode()       {}
func (*Num) exprNode()       {}
func (*Bool) exprNode()      {}
func (*None) exprNode()      {}
func (*Name) exprNode()      {}
func (*Attribute) exprNode() {}
func (*BinaryOp) exprNode()  {}
func (*UnaryOp) exprNode()   {}
func (*Compare) exprNode()   {}
func (*Call) exprNode()      {}
func (*Opaque) exprNode()    {}
