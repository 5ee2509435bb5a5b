package transpiler

import "strings"

// IndentUnit is written once per nesting level in front of each line.
const IndentUnit = "    "

// Buffer accumulates emitted lines. The depth only changes inside Nested, so
// it is back where it started whenever Nested returns.
type Buffer struct {
	lines []string
	depth int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Emit appends one line at the current depth.
func (b *Buffer) Emit(text string) {
	b.lines = append(b.lines, strings.Repeat(IndentUnit, b.depth)+text)
}

// Nested runs fn one level deeper and restores the depth on every exit path,
// including an error return or a panic unwinding through it.
func (b *Buffer) Nested(fn func() error) error {
	b.depth++
	defer func() { b.depth-- }()
	return fn()
}

// Depth reports the current nesting level.
func (b *Buffer) Depth() int { return b.depth }

// Lines returns the emitted lines in order.
func (b *Buffer) Lines() []string { return b.lines }

// String joins the lines with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}
