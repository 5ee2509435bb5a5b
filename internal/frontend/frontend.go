// Package frontend lowers translator inputs to the syntax tree: source text
// through tree-sitter, or an abstract syntax tree already dumped as JSON.
package frontend

import (
	"context"
	"fmt"

	"github.com/agentic-research/cclua/internal/syntax"
)

// Parse lowers content in the given format. FormatUnknown selects the
// format from the file extension, falling back to source text.
func Parse(ctx context.Context, content []byte, filePath string, format Format) (*syntax.Module, error) {
	if format == FormatUnknown {
		if f, ok := DetectFormat(filePath); ok {
			format = f
		} else {
			format = FormatPython
		}
	}
	switch format {
	case FormatPython:
		return ParsePython(ctx, content, filePath)
	case FormatJSON:
		return ParseJSON(content, filePath)
	default:
		return nil, fmt.Errorf("unsupported input format %s", format)
	}
}
