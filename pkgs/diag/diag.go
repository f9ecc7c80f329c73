// Package diag defines the three closed diagnostic kinds produced by the
// pipeline: LexError, ParseError and IRError. Each carries a source
// position and a human-readable message and formats to the one-line
// "Kind: message at line L, column C" form.
package diag

import (
	"fmt"
	"strings"
)

// LexError reports a failure during tokenization: an unknown character,
// a malformed escape, an unterminated string, or inconsistent indentation.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LexError: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// ParseError reports a syntax error recovered at the next statement
// boundary by the parser's synchronizer.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// IRError reports an unsupported AST node or an invalid lowering
// encountered by the IR generator. Unlike lex/parse errors, IR errors are
// never recovered — generation stops at the first one.
type IRError struct {
	Line    int
	Column  int
	Message string
}

func (e *IRError) Error() string {
	return fmt.Sprintf("IRError: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// Positioned is implemented by all three error kinds.
type Positioned interface {
	error
	Pos() (line, column int)
}

func (e *LexError) Pos() (int, int)   { return e.Line, e.Column }
func (e *ParseError) Pos() (int, int) { return e.Line, e.Column }
func (e *IRError) Pos() (int, int)    { return e.Line, e.Column }

// Snippet renders a Rust/Clang-style two-line pointer under the offending
// column of src, for nicer terminal diagnostics. It is not part of the
// one-line diagnostic contract and callers may ignore it.
func Snippet(src string, line, column int) string {
	lines := strings.Split(src, "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	lineContent := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%4d | %s\n", line, lineContent)
	b.WriteString("     | ")
	if column > 0 && column <= len(lineContent)+1 {
		b.WriteString(strings.Repeat(" ", column-1))
	}
	b.WriteString("^")
	return b.String()
}
