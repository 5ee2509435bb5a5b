package linter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesOf(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Rule)
	}
	return out
}

func TestLint_RulesCompile(t *testing.T) {
	rules, err := compileRules()
	require.NoError(t, err)
	assert.Len(t, rules, len(Rules))
}

func TestLint_CleanSource(t *testing.T) {
	src := []byte(`from cc_lib import peripheral

def main():
    names = peripheral.get_names()
    n = 3
    while n > 0:
        n = n - 1
    if n == 0:
        print("done")
    else:
        print(-n)
`)
	diags, err := Lint(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestLint_ReportsEachConstruct(t *testing.T) {
	tests := []struct {
		src  string
		rule string
	}{
		{"for i in x:\n    pass\n", "for-loop"},
		{"class A:\n    pass\n", "class"},
		{"def f():\n    return 1\n", "return"},
		{"x += 1\n", "augmented-assignment"},
		{"a = b = 1\n", "chained-assignment"},
		{"x: int = 1\n", "annotated-assignment"},
		{"a, b = 1, 2\n", "tuple-assignment"},
		{"def f(a=1):\n    pass\n", "default-parameter"},
		{"def f(*args):\n    pass\n", "variadic-parameter"},
		{"print(1, end='')\n", "keyword-argument"},
		{"x = a // b\n", "operator"},
		{"x = ~a\n", "unary-operator"},
		{"x = not a\n", "not"},
		{"x = a and b\n", "boolean-operator"},
		{"x = a in b\n", "membership"},
		{"x = [1]\n", "container"},
		{"x = a[0]\n", "subscript"},
		{"x = lambda: 1\n", "lambda"},
		{"x = [i for i in y]\n", "comprehension"},
		{"x = a if b else c\n", "conditional-expression"},
		{"while a:\n    pass\nelse:\n    pass\n", "while-else"},
		{"while a:\n    break\n", "break"},
		{"while a:\n    continue\n", "break"},
		{"raise E\n", "raise"},
		{"assert a\n", "raise"},
		{"def f():\n    global g\n", "scope"},
		{"def f():\n    nonlocal g\n", "scope"},
		{"del a\n", "delete"},
		{"async def f():\n    pass\n", "async"},
		{"def f(*, a):\n    pass\n", "variadic-parameter"},
		{"def f(*a: int):\n    pass\n", "variadic-parameter"},
		{"a, b\n", "tuple-expression"},
		{"x = a < b < c\n", "chained-comparison"},
		{"x = f'{a}'\n", "formatted-string"},
		{"x = f'plain'\n", "formatted-string"},
		{"x = b'raw'\n", "bytes"},
		{"x = rb'raw'\n", "bytes"},
		{"x = 1j\n", "complex"},
		{"x = 2.5J\n", "complex"},
		{"x = 010\n", "leading-zero"},
		{"x = ...\n", "ellipsis"},
		{"def f():\n    yield 1\n", "yield"},
		{"async def f():\n    await g()\n", "yield"},
		{"if (n := 1):\n    pass\n", "walrus"},
		{"f(*a)\n", "splat"},
		{"f(**a)\n", "splat"},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			diags, err := Lint(context.Background(), []byte(tt.src))
			require.NoError(t, err)
			assert.Contains(t, rulesOf(diags), tt.rule)
		})
	}
}

func TestLint_LiteralRulesIgnorePlainLiterals(t *testing.T) {
	src := []byte("a = 'plain'\nb = 0\nc = 00\nd = 0x10\ne = 0o7\nf = 1.5\ng = 100\n")
	diags, err := Lint(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestLint_SimpleComparisonNotChained(t *testing.T) {
	diags, err := Lint(context.Background(), []byte("if a < b:\n    pass\n"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestLint_TranslatorCatchesUnmatchedConstruct(t *testing.T) {
	diags, err := Lint(context.Background(), []byte("x = 1\ny = a <> b\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, TranslatorRule, diags[0].Rule)
	assert.Equal(t, uint32(1), diags[0].Line)
	assert.Equal(t, uint32(4), diags[0].Column)
	assert.Equal(t, "unsupported expression Compare", diags[0].Message)
}

func TestLint_TranslatorSkipsReportedLine(t *testing.T) {
	diags, err := Lint(context.Background(), []byte("x = [1]\n"))
	require.NoError(t, err)
	assert.NotContains(t, rulesOf(diags), TranslatorRule)
}

func TestLint_SyntaxErrorSkipsTranslator(t *testing.T) {
	diags, err := Lint(context.Background(), []byte("def f(:\n"))
	require.NoError(t, err)
	assert.NotContains(t, rulesOf(diags), TranslatorRule)
}

func TestLint_OrderedByPosition(t *testing.T) {
	src := []byte("x = [1]\nfor i in x:\n    y += i\n")
	diags, err := Lint(context.Background(), src)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(diags), 3)
	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Line, diags[i].Line)
	}
	assert.Equal(t, uint32(0), diags[0].Line)
}

func TestLint_OneReportPerRuleAndLine(t *testing.T) {
	diags, err := Lint(context.Background(), []byte("x = [1] + [2]\n"))
	require.NoError(t, err)
	count := 0
	for _, d := range diags {
		if d.Rule == "container" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Message: "for loops are not translated; use while", Line: 4}
	assert.Equal(t, "line 5: for loops are not translated; use while", d.String())
}
