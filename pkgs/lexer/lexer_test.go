package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sourcelang/pytac/pkgs/token"
)

func kinds(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeArithmeticAssignment(t *testing.T) {
	toks, err := Tokenize("x = 1 + 2 * 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(toks)
	want := []token.Type{
		token.IDENTIFIER, token.ASSIGN, token.INTEGER_LITERAL, token.PLUS,
		token.INTEGER_LITERAL, token.MUL, token.INTEGER_LITERAL, token.NEWLINE, token.END,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestIndentationBalancing(t *testing.T) {
	src := "if x:\n    y = 1\n    if z:\n        w = 2\nq = 3\n"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	depth := 0
	maxDepth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.INDENT:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case token.DEDENT:
			depth--
		}
	}
	if depth != 0 {
		t.Errorf("INDENT/DEDENT did not balance: final depth %d", depth)
	}
	if maxDepth != 2 {
		t.Errorf("expected max indentation depth 2, got %d", maxDepth)
	}
}

func TestInconsistentDedentFails(t *testing.T) {
	src := "if x:\n    y = 1\n   z = 2\n"
	if _, err := Tokenize(src); err == nil {
		t.Fatal("expected inconsistent indentation error, got nil")
	}
}

func TestFloorDivDistinctFromDiv(t *testing.T) {
	toks, err := Tokenize("a // b\na / b\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(toks)
	want := []token.Type{
		token.IDENTIFIER, token.FLOORDIV, token.IDENTIFIER, token.NEWLINE,
		token.IDENTIFIER, token.DIV, token.IDENTIFIER, token.NEWLINE, token.END,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestStringEscapesAndFPrefix(t *testing.T) {
	toks, err := Tokenize(`f"hello\nworld"` + "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) < 1 || toks[0].Type != token.STRING_LITERAL {
		t.Fatalf("expected STRING_LITERAL, got %v", toks)
	}
	if !toks[0].IsFString {
		t.Errorf("expected IsFString true")
	}
	if toks[0].StringValue != "hello\nworld" {
		t.Errorf("expected decoded escape, got %q", toks[0].StringValue)
	}
}

func TestTripleQuotedStringAllowsNewlines(t *testing.T) {
	toks, err := Tokenize("\"\"\"line one\nline two\"\"\"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.STRING_LITERAL || toks[0].StringValue != "line one\nline two" {
		t.Fatalf("unexpected triple-quoted string result: %+v", toks[0])
	}
}

func TestUnterminatedStringFails(t *testing.T) {
	if _, err := Tokenize("\"unterminated\n"); err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestUnrecognizedEscapeFails(t *testing.T) {
	if _, err := Tokenize(`"bad\qescape"` + "\n"); err == nil {
		t.Fatal("expected unrecognized escape error")
	}
}

func TestUnknownCharacterFails(t *testing.T) {
	if _, err := Tokenize("x = 1 ! 2\n"); err == nil {
		t.Fatal("expected error for solitary '!'")
	}
}

func TestNumberLiterals(t *testing.T) {
	toks, err := Tokenize("1 1.5 1e3 1.5e-2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.INTEGER_LITERAL, token.FLOAT_LITERAL, token.FLOAT_LITERAL, token.FLOAT_LITERAL,
		token.NEWLINE, token.END,
	}
	if diff := cmp.Diff(want, kinds(toks), cmpopts.EquateComparable()); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordsRecognized(t *testing.T) {
	src := "def if else elif while for in return import from as class pass break continue not and or True False None with\n"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.DEF, token.IF, token.ELSE, token.ELIF, token.WHILE, token.FOR, token.IN, token.RETURN,
		token.IMPORT, token.FROM, token.AS, token.CLASS, token.PASS, token.BREAK, token.CONTINUE,
		token.NOT, token.AND, token.OR, token.TRUE, token.FALSE, token.NONE, token.WITH,
		token.NEWLINE, token.END,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestEndOfFileEmitsRemainingDedents(t *testing.T) {
	toks, err := Tokenize("if x:\n    y = 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := toks[len(toks)-1]
	if last.Type != token.END {
		t.Fatalf("expected final token END, got %s", last.Type)
	}
	if toks[len(toks)-2].Type != token.DEDENT {
		t.Fatalf("expected DEDENT before END, got %s", toks[len(toks)-2].Type)
	}
}
