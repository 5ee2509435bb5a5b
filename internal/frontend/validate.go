package frontend

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ValidationError contains structured information about a syntax error.
type ValidationError struct {
	FilePath string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line+1, e.Column+1, e.Message)
}

// ASTErrors returns all ERROR and MISSING node locations for diagnostic
// reporting. Returns nil if there are none.
func ASTErrors(ctx context.Context, content []byte, filePath string) []ValidationError {
	root, err := parseTree(ctx, content, filePath)
	if err != nil || !root.HasError() {
		return nil
	}
	var errs []ValidationError
	collectErrors(root, filePath, &errs)
	return errs
}

func parseTree(ctx context.Context, content []byte, filePath string) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed for %s: %w", filePath, err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root for %s", filePath)
	}
	return root, nil
}

// firstError builds a *ValidationError for the first ERROR or MISSING node
// under root, which must report HasError.
func firstError(root *sitter.Node, filePath string) error {
	if errNode := findFirstError(root); errNode != nil {
		return newValidationError(errNode, filePath)
	}
	return &ValidationError{FilePath: filePath, Message: "AST contains errors"}
}

func newValidationError(n *sitter.Node, filePath string) *ValidationError {
	msg := "syntax error"
	if n.IsMissing() {
		msg = fmt.Sprintf("syntax error: missing %q", n.Type())
	}
	return &ValidationError{
		FilePath: filePath,
		Line:     n.StartPoint().Row,
		Column:   n.StartPoint().Column,
		Message:  msg,
	}
}

// findFirstError does a depth-first search for the first ERROR node.
func findFirstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := findFirstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// collectErrors gathers all ERROR/MISSING nodes in the tree.
func collectErrors(node *sitter.Node, filePath string, errs *[]ValidationError) {
	if node.IsError() || node.IsMissing() {
		*errs = append(*errs, *newValidationError(node, filePath))
		return // don't recurse into error children
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, filePath, errs)
		}
	}
}
