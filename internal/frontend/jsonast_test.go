package frontend

import (
	"testing"

	"github.com/agentic-research/cclua/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `{
  "_type": "Module",
  "body": [
    {
      "_type": "ImportFrom", "lineno": 1, "col_offset": 0, "module": "cc_lib", "level": 0,
      "names": [{"_type": "alias", "name": "peripheral", "asname": null}]
    },
    {
      "_type": "FunctionDef", "lineno": 2, "col_offset": 0, "name": "main", "decorator_list": [],
      "args": {"_type": "arguments", "posonlyargs": [], "args": [{"_type": "arg", "arg": "n"}],
               "vararg": null, "kwonlyargs": [], "kw_defaults": [], "kwarg": null, "defaults": []},
      "body": [
        {
          "_type": "Assign", "lineno": 3, "col_offset": 4,
          "targets": [{"_type": "Name", "id": "names", "ctx": {"_type": "Store"}}],
          "value": {
            "_type": "Call", "lineno": 3, "col_offset": 12,
            "func": {"_type": "Attribute", "value": {"_type": "Name", "id": "peripheral"}, "attr": "get_names"},
            "args": [], "keywords": []
          }
        },
        {
          "_type": "If", "lineno": 4, "col_offset": 4,
          "test": {"_type": "Compare", "left": {"_type": "Name", "id": "n"},
                   "ops": [{"_type": "NotEq"}], "comparators": [{"_type": "Constant", "value": 0}]},
          "body": [{"_type": "Expr", "value": {"_type": "Call", "func": {"_type": "Name", "id": "print"},
                    "args": [{"_type": "BinOp", "left": {"_type": "Name", "id": "n"}, "op": {"_type": "Mult"},
                              "right": {"_type": "Constant", "value": 2.5}}], "keywords": []}}],
          "orelse": [{"_type": "Pass", "lineno": 6, "col_offset": 8}]
        }
      ]
    }
  ]
}`

func TestParseJSON_Sample(t *testing.T) {
	mod, err := ParseJSON([]byte(sampleDump), "dump.json")
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	from := mod.Body[0].(*syntax.ImportFrom)
	assert.Equal(t, "cc_lib", from.Module)
	assert.Equal(t, []syntax.ImportName{{Name: "peripheral"}}, from.Names)

	fn := mod.Body[1].(*syntax.FuncDef)
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, []syntax.Param{{Name: "n", Kind: syntax.ParamPositional}}, fn.Params)
	require.Len(t, fn.Body, 2)

	a := fn.Body[0].(*syntax.Assign)
	assert.Equal(t, syntax.Pos{Line: 3, Column: 5}, a.Position())
	attr := a.Value.(*syntax.Call).Func.(*syntax.Attribute)
	assert.Equal(t, "get_names", attr.Member)

	ifs := fn.Body[1].(*syntax.If)
	c := ifs.Test.(*syntax.Compare)
	assert.Equal(t, []syntax.Operator{syntax.NotEq}, c.Ops)
	assert.Equal(t, "0", c.Comparators[0].(*syntax.Num).Int.String())
	call := ifs.Then[0].(*syntax.ExprStmt).X.(*syntax.Call)
	bin := call.Args[0].(*syntax.BinaryOp)
	assert.Equal(t, syntax.Mult, bin.Op)
	assert.True(t, bin.Right.(*syntax.Num).IsFloat)
	assert.IsType(t, &syntax.Pass{}, ifs.Else[0])
}

func TestParseJSON_Constants(t *testing.T) {
	src := `{"_type": "Module", "body": [
	  {"_type": "Expr", "value": {"_type": "Constant", "value": "hi"}},
	  {"_type": "Expr", "value": {"_type": "Constant", "value": true}},
	  {"_type": "Expr", "value": {"_type": "Constant", "value": null}},
	  {"_type": "Expr", "value": {"_type": "Num", "n": 7}}
	]}`
	mod, err := ParseJSON([]byte(src), "c.json")
	require.NoError(t, err)
	require.Len(t, mod.Body, 4)
	x := func(i int) syntax.Expr { return mod.Body[i].(*syntax.ExprStmt).X }
	assert.Equal(t, "hi", x(0).(*syntax.Str).Value)
	assert.True(t, x(1).(*syntax.Bool).Value)
	assert.IsType(t, &syntax.None{}, x(2))
	assert.Equal(t, "7", x(3).(*syntax.Num).Int.String())
}

func TestParseJSON_ParamKinds(t *testing.T) {
	src := `{"_type": "Module", "body": [{"_type": "FunctionDef", "name": "f", "decorator_list": [], "body": [],
	  "args": {"_type": "arguments",
	    "posonlyargs": [{"_type": "arg", "arg": "p"}],
	    "args": [{"_type": "arg", "arg": "a"}, {"_type": "arg", "arg": "b"}],
	    "vararg": {"_type": "arg", "arg": "rest"},
	    "kwonlyargs": [{"_type": "arg", "arg": "k"}],
	    "kwarg": {"_type": "arg", "arg": "kw"},
	    "defaults": [{"_type": "Constant", "value": 1}]}}]}`
	mod, err := ParseJSON([]byte(src), "f.json")
	require.NoError(t, err)
	fn := mod.Body[0].(*syntax.FuncDef)
	kinds := make([]syntax.ParamKind, 0, len(fn.Params))
	for _, p := range fn.Params {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []syntax.ParamKind{
		syntax.ParamPositional,
		syntax.ParamPositional,
		syntax.ParamDefault,
		syntax.ParamVariadic,
		syntax.ParamKeywordOnly,
		syntax.ParamKeywordVariadic,
	}, kinds)
}

func TestParseJSON_UnknownNodesBecomeOpaque(t *testing.T) {
	src := `{"_type": "Module", "body": [
	  {"_type": "For", "lineno": 1, "col_offset": 0},
	  {"_type": "Expr", "value": {"_type": "ListComp"}},
	  {"_type": "FunctionDef", "name": "f", "decorator_list": [{"_type": "Name", "id": "d"}]}
	]}`
	mod, err := ParseJSON([]byte(src), "o.json")
	require.NoError(t, err)
	require.Len(t, mod.Body, 3)
	assert.Equal(t, "For", mod.Body[0].(*syntax.Opaque).Kind)
	assert.Equal(t, "ListComp", mod.Body[1].(*syntax.ExprStmt).X.(*syntax.Opaque).Kind)
	assert.Equal(t, "decorated definition", mod.Body[2].(*syntax.Opaque).Kind)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"_type": `), "bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")

	_, err = ParseJSON([]byte(`{"_type": "Expression", "body": {}}`), "expr.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Expression"`)
}
