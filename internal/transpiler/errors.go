package transpiler

import (
	"errors"
	"fmt"

	"github.com/agentic-research/cclua/internal/syntax"
)

var (
	// ErrUnsupportedNode marks a node kind or operator the translator does
	// not handle.
	ErrUnsupportedNode = errors.New("unsupported node")
	// ErrUnsupportedShape marks a handled node kind used in a form the
	// translator rejects: several assignment targets, non-positional
	// parameters, chained comparisons, keyword arguments.
	ErrUnsupportedShape = errors.New("unsupported statement shape")
)

// UnsupportedError aborts a translation. It unwraps to ErrUnsupportedNode or
// ErrUnsupportedShape.
type UnsupportedError struct {
	Kind      error
	Construct string
	Pos       syntax.Pos
}

func (e *UnsupportedError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: unsupported %s", e.Pos, e.Construct)
	}
	return "unsupported " + e.Construct
}

func (e *UnsupportedError) Unwrap() error { return e.Kind }

func unsupportedNode(n syntax.Node, format string, args ...any) error {
	return &UnsupportedError{
		Kind:      ErrUnsupportedNode,
		Construct: fmt.Sprintf(format, args...),
		Pos:       position(n),
	}
}

func unsupportedShape(n syntax.Node, format string, args ...any) error {
	return &UnsupportedError{
		Kind:      ErrUnsupportedShape,
		Construct: fmt.Sprintf(format, args...),
		Pos:       position(n),
	}
}

func position(n syntax.Node) syntax.Pos {
	if n == nil {
		return syntax.Pos{}
	}
	return n.Position()
}
