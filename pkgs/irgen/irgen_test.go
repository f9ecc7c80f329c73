package irgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sourcelang/pytac/pkgs/ir"
	"github.com/sourcelang/pytac/pkgs/lexer"
	"github.com/sourcelang/pytac/pkgs/parser"
)

func mustGenerate(t *testing.T, src string) *ir.Program {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	nodes, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	prog, irErr := Generate(nodes)
	if irErr != nil {
		t.Fatalf("unexpected IR error: %v", irErr)
	}
	return prog
}

// Scenario A — arithmetic and assignment.
func TestArithmeticAssignmentLowersLeftBeforeRight(t *testing.T) {
	prog := mustGenerate(t, "x = 1 + 2 * 3\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "main", Body: []ir.Instr{
			ir.BinaryOp{Op: "*", Left: ir.Const{Value: int64(2)}, Right: ir.Const{Value: int64(3)}, Dest: "t0"},
			ir.BinaryOp{Op: "+", Left: ir.Const{Value: int64(1)}, Right: ir.Var{Name: "t0"}, Dest: "t1"},
			ir.Store{Source: ir.Var{Name: "t1"}, Dest: "x"},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Scenario B — function definition returning an arithmetic expression.
func TestFunctionDefLowersReturnExpression(t *testing.T) {
	prog := mustGenerate(t, "def add(a, b):\n    return a + b\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "add", Params: []string{"a", "b"}, Body: []ir.Instr{
			ir.BinaryOp{Op: "+", Left: ir.Var{Name: "a"}, Right: ir.Var{Name: "b"}, Dest: "t0"},
			ir.Return{Value: ir.Var{Name: "t0"}},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Scenario C — method call on an object.
func TestMethodCallOnObject(t *testing.T) {
	prog := mustGenerate(t, "p.greet()\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "main", Body: []ir.Instr{
			ir.MethodCall{Object: ir.Var{Name: "p"}, Method: "greet", Dest: "t0"},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Scenario D — if/else lowers to the canonical non-dead-jump structure.
func TestIfElseCanonicalStructure(t *testing.T) {
	prog := mustGenerate(t, "if x < 10:\n    y = 1\nelse:\n    y = 2\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "main", Body: []ir.Instr{
			ir.BinaryOp{Op: "<", Left: ir.Var{Name: "x"}, Right: ir.Const{Value: int64(10)}, Dest: "t0"},
			ir.CondJump{Cond: ir.Var{Name: "t0"}, TrueLabel: "L0", FalseLabel: "L1"},
			ir.Label{Name: "L0"},
			ir.Store{Source: ir.Const{Value: int64(1)}, Dest: "y"},
			ir.Jump{Label: "L2"},
			ir.Label{Name: "L1"},
			ir.Store{Source: ir.Const{Value: int64(2)}, Dest: "y"},
			ir.Label{Name: "L2"},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Scenario E — while loop.
func TestWhileCanonicalStructure(t *testing.T) {
	prog := mustGenerate(t, "while n > 0:\n    n = n - 1\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "main", Body: []ir.Instr{
			ir.Label{Name: "L0"},
			ir.BinaryOp{Op: ">", Left: ir.Var{Name: "n"}, Right: ir.Const{Value: int64(0)}, Dest: "t0"},
			ir.CondJump{Cond: ir.Var{Name: "t0"}, TrueLabel: "L1", FalseLabel: "L2"},
			ir.Label{Name: "L1"},
			ir.BinaryOp{Op: "-", Left: ir.Var{Name: "n"}, Right: ir.Const{Value: int64(1)}, Dest: "t1"},
			ir.Store{Source: ir.Var{Name: "t1"}, Dest: "n"},
			ir.Jump{Label: "L0"},
			ir.Label{Name: "L2"},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Scenario F — a constructor call inside a class's own method is
// recognized as ConstructorCall, and self is prepended without mutating
// the parsed FunctionDef.
func TestClassConstructorCallInsideMethod(t *testing.T) {
	prog := mustGenerate(t, "class P:\n    def __init__(self, n):\n        self.n = n\n    def g(self):\n        return P()\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "__init__", Params: []string{"self", "n"}, Body: []ir.Instr{
			ir.Store{Source: ir.Var{Name: "n"}, Dest: "self.n"},
		}},
		{Name: "g", Params: []string{"self"}, Body: []ir.Instr{
			ir.ConstructorCall{Class: "P", Dest: "t0"},
			ir.Return{Value: ir.Var{Name: "t0"}},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// A bare "return" with no value lowers to Return(Const(None)), not a
// Go-nil operand.
func TestBareReturnLowersToNoneConstant(t *testing.T) {
	prog := mustGenerate(t, "def f():\n    return\n")
	want := &ir.Program{Functions: []*ir.Function{
		{Name: "f", Body: []ir.Instr{
			ir.Return{Value: ir.Const{Value: nil}},
		}},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("IR mismatch (-want +got):\n%s", diff)
	}
}

// Every emitted temporary and label is unique within a translation, even
// across statements and nested constructs (invariant 2).
func TestTempsAndLabelsAreUniqueWithinTranslation(t *testing.T) {
	prog := mustGenerate(t, "if a:\n    x = 1 + 2\nelse:\n    y = 3 + 4\nz = 5 + 6\n")
	seenTemps := map[string]bool{}
	seenLabels := map[string]bool{}
	for _, fn := range prog.Functions {
		for _, instr := range fn.Body {
			switch v := instr.(type) {
			case ir.BinaryOp:
				if seenTemps[v.Dest] {
					t.Errorf("temp %q reused", v.Dest)
				}
				seenTemps[v.Dest] = true
			case ir.Label:
				if seenLabels[v.Name] {
					t.Errorf("label %q reused", v.Name)
				}
				seenLabels[v.Name] = true
			}
		}
	}
}

// for and with have no defined lowering and must fail the whole
// translation rather than being silently skipped.
func TestForStatementIsUnsupported(t *testing.T) {
	toks, lexErr := lexer.Tokenize("for x in xs:\n    pass\n")
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	nodes, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	if _, irErr := Generate(nodes); irErr == nil {
		t.Fatalf("expected an IRError for an unsupported for loop")
	}
}

func TestWithStatementIsUnsupported(t *testing.T) {
	toks, lexErr := lexer.Tokenize("with open(f) as fh:\n    pass\n")
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	nodes, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	if _, irErr := Generate(nodes); irErr == nil {
		t.Fatalf("expected an IRError for an unsupported with statement")
	}
}
