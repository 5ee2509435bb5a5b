package frontend

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Format is an input encoding the front-end can lower to a syntax tree.
type Format int

const (
	FormatUnknown Format = iota
	// FormatPython is source text parsed with tree-sitter.
	FormatPython
	// FormatJSON is an abstract syntax tree dumped as JSON by an external
	// parser, one object per node with its kind under "_type".
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatPython:
		return "python"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectFormat returns the input format for a file extension. Returns
// ok=false for unsupported extensions.
func DetectFormat(filePath string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".py", ".pyw":
		return FormatPython, true
	case ".json":
		return FormatJSON, true
	default:
		return FormatUnknown, false
	}
}

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "py", "python":
		return FormatPython, true
	case "json", "ast":
		return FormatJSON, true
	default:
		return FormatUnknown, false
	}
}

// Language is the tree-sitter grammar for source inputs.
func Language() *sitter.Language {
	return python.GetLanguage()
}

// statementKinds names tree-sitter statement nodes after the source
// language's own abstract grammar, for diagnostics.
var statementKinds = map[string]string{
	"for_statement":        "For",
	"class_definition":     "ClassDef",
	"return_statement":     "Return",
	"try_statement":        "Try",
	"with_statement":       "With",
	"break_statement":      "Break",
	"continue_statement":   "Continue",
	"raise_statement":      "Raise",
	"global_statement":     "Global",
	"nonlocal_statement":   "Nonlocal",
	"delete_statement":     "Delete",
	"assert_statement":     "Assert",
	"decorated_definition": "decorated definition",
	"match_statement":      "Match",
	"print_statement":      "Print",
	"exec_statement":       "Exec",
	"type_alias_statement": "TypeAlias",
	"augmented_assignment": "AugAssign",
	"yield":                "Yield",
}

// expressionKinds does the same for expression nodes.
var expressionKinds = map[string]string{
	"list":                     "List",
	"tuple":                    "Tuple",
	"pattern_list":             "Tuple",
	"tuple_pattern":            "Tuple",
	"list_pattern":             "List",
	"expression_list":          "Tuple",
	"dictionary":               "Dict",
	"set":                      "Set",
	"subscript":                "Subscript",
	"slice":                    "Slice",
	"lambda":                   "Lambda",
	"list_comprehension":       "ListComp",
	"dictionary_comprehension": "DictComp",
	"set_comprehension":        "SetComp",
	"generator_expression":     "GeneratorExp",
	"conditional_expression":   "IfExp",
	"boolean_operator":         "BoolOp",
	"await":                    "Await",
	"named_expression":         "NamedExpr",
	"ellipsis":                 "Ellipsis",
	"list_splat":               "Starred",
	"dictionary_splat":         "double-starred argument",
	"yield":                    "Yield",
}

// ConstructName returns the diagnostic name for a tree-sitter node type.
func ConstructName(nodeType string) string {
	if k, ok := statementKinds[nodeType]; ok {
		return k
	}
	if k, ok := expressionKinds[nodeType]; ok {
		return k
	}
	return nodeType
}
