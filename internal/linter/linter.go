// Package linter reports source constructs the translator rejects, using
// tree-sitter queries so every occurrence is found in one pass instead of
// stopping at the first.
package linter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agentic-research/cclua/api"
	"github.com/agentic-research/cclua/internal/frontend"
	"github.com/agentic-research/cclua/internal/transpiler"
	sitter "github.com/smacker/go-tree-sitter"
)

// TranslatorRule names diagnostics reported by running the translator over
// the lowered tree when no query rule matched the rejected line.
const TranslatorRule = "translator"

type Diagnostic struct {
	Rule    string
	Message string
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line+1, d.Message)
}

// Rule pairs a tree-sitter query with the message reported for each capture.
type Rule struct {
	Name    string
	Query   string
	Message string
}

// Rules are checked in order. Each query captures the offending node as @n.
var Rules = []Rule{
	{"for-loop", `(for_statement) @n`, "for loops are not translated; use while"},
	{"class", `(class_definition) @n`, "class definitions are not translated"},
	{"return", `(return_statement) @n`, "return statements are not translated"},
	{"break", `[(break_statement) (continue_statement)] @n`, "break and continue are not translated"},
	{"raise", `[(raise_statement) (assert_statement)] @n`, "raise and assert are not translated"},
	{"scope", `[(global_statement) (nonlocal_statement)] @n`, "global and nonlocal declarations are not translated"},
	{"delete", `(delete_statement) @n`, "del statements are not translated"},
	{"match", `(match_statement) @n`, "match statements are not translated"},
	{"type-alias", `(type_alias_statement) @n`, "type aliases are not translated"},
	{"async", `(function_definition "async" @n)`, "async functions are not translated"},
	{"try", `(try_statement) @n`, "try statements are not translated"},
	{"with", `(with_statement) @n`, "with statements are not translated"},
	{"decorator", `(decorated_definition) @n`, "decorated definitions are not translated"},
	{"augmented-assignment", `(augmented_assignment) @n`, "augmented assignment is not translated; write x = x + y"},
	{"chained-assignment", `(assignment right: (assignment)) @n`, "assignment to several targets is not translated"},
	{"annotated-assignment", `(assignment type: (_)) @n`, "annotated assignment is not translated"},
	{"tuple-assignment", `(assignment left: [(pattern_list) (tuple_pattern) (list_pattern)]) @n`, "unpacking assignment is not translated"},
	{"while-else", `(while_statement alternative: (else_clause)) @n`, "else clause on while loop is not translated"},
	{"default-parameter", `[(default_parameter) (typed_default_parameter)] @n`, "parameters with default values are not translated"},
	{"variadic-parameter", `(parameters [(list_splat_pattern) (dictionary_splat_pattern) (keyword_separator) (typed_parameter [(list_splat_pattern) (dictionary_splat_pattern)])] @n)`, "variadic and keyword-only parameters are not translated"},
	{"tuple-expression", `(expression_statement ",") @n`, "tuple expressions are not translated"},
	{"keyword-argument", `(keyword_argument) @n`, "keyword arguments are not translated"},
	{"operator", `(binary_operator operator: ["//" "%" "**" "@" "|" "^" "&" "<<" ">>"] @n)`, "operator has no translation; only + - * / are supported"},
	{"unary-operator", `(unary_operator operator: ["+" "~"] @n)`, "unary operator has no translation; only - is supported"},
	{"not", `(not_operator) @n`, "not is not translated"},
	{"boolean-operator", `(boolean_operator) @n`, "and/or are not translated"},
	{"membership", `(comparison_operator operators: ["in" "not in" "is" "is not"] @n)`, "identity and membership tests are not translated"},
	{"chained-comparison", `(comparison_operator (_) (_) (_)) @n`, "chained comparisons are not translated; split them with a nested if"},
	{"container", `[(list) (tuple) (dictionary) (set)] @n`, "container literals are not translated"},
	{"subscript", `(subscript) @n`, "subscripts are not translated"},
	{"lambda", `(lambda) @n`, "lambdas are not translated"},
	{"comprehension", `[(list_comprehension) (dictionary_comprehension) (set_comprehension) (generator_expression)] @n`, "comprehensions are not translated"},
	{"conditional-expression", `(conditional_expression) @n`, "conditional expressions are not translated"},
	{"formatted-string", `((string) @n (#match? @n "^[a-zA-Z]*[fF]"))`, "formatted strings are not translated"},
	{"bytes", `((string) @n (#match? @n "^[a-zA-Z]*[bB]"))`, "bytes literals are not translated"},
	{"complex", `((integer) @n (#match? @n "[jJ]$")) ((float) @n (#match? @n "[jJ]$"))`, "complex literals are not translated"},
	{"leading-zero", `((integer) @n (#match? @n "^0[0-9_]*[1-9]"))`, "decimal literals with leading zeros are not valid; drop the zeros or use 0o"},
	{"ellipsis", `(ellipsis) @n`, "... is not translated"},
	{"yield", `[(yield) (await)] @n`, "yield and await are not translated"},
	{"walrus", `(named_expression) @n`, "assignment expressions are not translated"},
	{"splat", `[(list_splat) (dictionary_splat)] @n`, "argument unpacking is not translated"},
}

type compiled struct {
	rule  Rule
	query *sitter.Query
}

var compileRules = sync.OnceValues(func() ([]compiled, error) {
	out := make([]compiled, 0, len(Rules))
	for _, r := range Rules {
		q, err := sitter.NewQuery([]byte(r.Query), frontend.Language())
		if err != nil {
			return nil, fmt.Errorf("compile rule %s: %w", r.Name, err)
		}
		out = append(out, compiled{rule: r, query: q})
	}
	return out, nil
})

// Lint checks source content for constructs outside the translatable
// subset. Diagnostics are ordered by position; one rule reports a line once.
// When the queries leave the translator's first rejection unreported, it is
// added under TranslatorRule.
func Lint(ctx context.Context, content []byte) ([]Diagnostic, error) {
	rules, err := compileRules()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(frontend.Language())
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	type seenKey struct {
		rule string
		line uint32
	}
	seen := make(map[seenKey]bool)
	var diags []Diagnostic

	for _, c := range rules {
		qc := sitter.NewQueryCursor()
		qc.Exec(c.query, root)
		for {
			m, ok := qc.NextMatch()
			if !ok {
				break
			}
			m = qc.FilterPredicates(m, content)
			for _, capture := range m.Captures {
				p := capture.Node.StartPoint()
				key := seenKey{c.rule.Name, p.Row}
				if seen[key] {
					continue
				}
				seen[key] = true
				diags = append(diags, Diagnostic{
					Rule:    c.rule.Name,
					Message: c.rule.Message,
					Line:    p.Row,
					Column:  p.Column,
				})
			}
		}
		qc.Close()
	}

	if d, ok := translatorDiagnostic(ctx, content); ok {
		reported := false
		for _, other := range diags {
			if other.Line == d.Line {
				reported = true
				break
			}
		}
		if !reported {
			diags = append(diags, d)
		}
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags, nil
}

// translatorDiagnostic lowers content and translates it, returning the
// rejection as a diagnostic. Sources with syntax errors report nothing here.
func translatorDiagnostic(ctx context.Context, content []byte) (Diagnostic, bool) {
	mod, err := frontend.ParsePython(ctx, content, "")
	if err != nil {
		return Diagnostic{}, false
	}
	_, err = transpiler.Translate(mod, api.DefaultTable())
	var ue *transpiler.UnsupportedError
	if !errors.As(err, &ue) || !ue.Pos.IsValid() {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Rule:    TranslatorRule,
		Message: "unsupported " + ue.Construct,
		Line:    uint32(ue.Pos.Line - 1),
		Column:  uint32(ue.Pos.Column - 1),
	}, true
}
