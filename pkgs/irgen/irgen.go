// Package irgen walks the AST forest produced by the parser and emits a
// linear, three-address IR program: one ir.Function per source
// function, plus synthesized class methods and a synthesized "main"
// holding any top-level non-function statements.
//
// Dispatch is a type switch over the closed ast.Node set rather than
// virtual methods — the "model the AST as a tagged variant and dispatch
// via pattern matching" design decision — grounded on the same
// tagged-variant convention the ast and ir packages themselves use.
package irgen

import (
	"fmt"

	"github.com/sourcelang/pytac/pkgs/ast"
	"github.com/sourcelang/pytac/pkgs/diag"
	"github.com/sourcelang/pytac/pkgs/ir"
)

// Generator holds the two monotonically increasing counters (temporary,
// label) and the current function/class context for a single
// translation. It is used once per Generate call and discarded.
type Generator struct {
	tempCounter  int
	labelCounter int

	currentFunction string
	currentClass    string
	insideClass     bool
}

// Generate lowers a top-level AST forest into a Program. Generation
// stops at the first unsupported node or invalid lowering — unlike
// parse errors, IR errors are not recovered.
func Generate(nodes []ast.Node) (*ir.Program, *diag.IRError) {
	g := &Generator{}
	prog := &ir.Program{}
	var mainBody []ir.Instr

	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.FunctionDef:
			fn, err := g.lowerFunctionDef(v)
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)
		case *ast.ClassDef:
			fns, err := g.lowerClassDef(v)
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fns...)
		default:
			if err := g.lowerNode(n, &mainBody); err != nil {
				return nil, err
			}
		}
	}

	// The core's normative resolution of the ProgramNode open question:
	// top-level non-function statements are always wrapped in "main",
	// never discarded.
	if len(mainBody) > 0 {
		prog.Functions = append(prog.Functions, &ir.Function{Name: "main", Body: mainBody})
	}
	return prog, nil
}

func (g *Generator) newTemp() string {
	name := fmt.Sprintf("t%d", g.tempCounter)
	g.tempCounter++
	return name
}

func (g *Generator) newLabel() string {
	name := fmt.Sprintf("L%d", g.labelCounter)
	g.labelCounter++
	return name
}

func (g *Generator) lowerFunctionDef(fn *ast.FunctionDef) (*ir.Function, *diag.IRError) {
	prevFunc := g.currentFunction
	g.currentFunction = fn.Name
	defer func() { g.currentFunction = prevFunc }()

	body, err := g.lowerBlock(fn.Body)
	if err != nil {
		return nil, err
	}

	var params []string
	for _, p := range fn.Parameters {
		params = append(params, p.Name)
	}
	return &ir.Function{Name: fn.Name, Params: params, Body: body}, nil
}

// lowerClassDef lowers each method FunctionDef child with "self"
// prepended to its parameter list (unless that list already starts with
// "self"); non-method children are ignored by
// the core. A new FunctionDef is built for the extended parameter list
// rather than mutating the parsed one, per the Design Notes decision.
func (g *Generator) lowerClassDef(cls *ast.ClassDef) ([]*ir.Function, *diag.IRError) {
	prevClass := g.currentClass
	prevInsideClass := g.insideClass
	g.currentClass = cls.Name
	g.insideClass = true
	defer func() {
		g.currentClass = prevClass
		g.insideClass = prevInsideClass
	}()

	var fns []*ir.Function
	for _, member := range cls.Body {
		fnDef, ok := member.(*ast.FunctionDef)
		if !ok {
			continue
		}
		fn, err := g.lowerFunctionDef(withSelfPrepended(fnDef))
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func withSelfPrepended(fn *ast.FunctionDef) *ast.FunctionDef {
	if len(fn.Parameters) > 0 && fn.Parameters[0].Name == "self" {
		return fn
	}
	params := make([]*ast.Parameter, 0, len(fn.Parameters)+1)
	params = append(params, &ast.Parameter{Position: fn.Position, Name: "self"})
	params = append(params, fn.Parameters...)
	return ast.NewFunctionDef(fn.Name, params, fn.Body, fn.Position)
}

func (g *Generator) lowerBlock(nodes []ast.Node) ([]ir.Instr, *diag.IRError) {
	var body []ir.Instr
	for _, n := range nodes {
		if err := g.lowerNode(n, &body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (g *Generator) lowerNode(n ast.Node, body *[]ir.Instr) *diag.IRError {
	switch v := n.(type) {
	case *ast.Return:
		return g.lowerReturn(v, body)
	case *ast.If:
		return g.lowerIf(v, body)
	case *ast.While:
		return g.lowerWhile(v, body)
	case *ast.Pass:
		return nil
	case *ast.Import, *ast.FromImport:
		// Recognized by the parser; the core produces no IR for them.
		return nil
	case *ast.For:
		return g.unsupported(n, "for loops")
	case *ast.With:
		return g.unsupported(n, "with statements")
	case *ast.Break:
		return g.unsupported(n, "break")
	case *ast.Continue:
		return g.unsupported(n, "continue")
	case *ast.FunctionDef, *ast.ClassDef:
		return g.unsupported(n, "nested function/class definitions")
	case ast.Expr:
		_, err := g.lowerExpr(v, body)
		return err
	default:
		return g.unsupported(n, fmt.Sprintf("%T", n))
	}
}

func (g *Generator) lowerReturn(r *ast.Return, body *[]ir.Instr) *diag.IRError {
	if r.Value == nil {
		*body = append(*body, ir.Return{Value: ir.Const{Value: nil}})
		return nil
	}
	op, err := g.lowerExpr(r.Value, body)
	if err != nil {
		return err
	}
	*body = append(*body, ir.Return{Value: op})
	return nil
}

// lowerIf emits the canonical, non-dead-jump structure:
// [...cond..., CondJump, Label(T), ...then..., Jump(end), Label(F), ...else..., Label(end)]
func (g *Generator) lowerIf(n *ast.If, body *[]ir.Instr) *diag.IRError {
	condOp, err := g.lowerExpr(n.Condition, body)
	if err != nil {
		return err
	}

	lTrue, lFalse, lEnd := g.newLabel(), g.newLabel(), g.newLabel()

	*body = append(*body, ir.CondJump{Cond: condOp, TrueLabel: lTrue, FalseLabel: lFalse})
	*body = append(*body, ir.Label{Name: lTrue})
	thenInstrs, err := g.lowerBlock(n.Then)
	if err != nil {
		return err
	}
	*body = append(*body, thenInstrs...)
	*body = append(*body, ir.Jump{Label: lEnd})
	*body = append(*body, ir.Label{Name: lFalse})
	elseInstrs, err := g.lowerBlock(n.Else)
	if err != nil {
		return err
	}
	*body = append(*body, elseInstrs...)
	*body = append(*body, ir.Label{Name: lEnd})
	return nil
}

// lowerWhile emits: [Label(start), ...cond..., CondJump, Label(body), ...body..., Jump(start), Label(end)]
func (g *Generator) lowerWhile(n *ast.While, body *[]ir.Instr) *diag.IRError {
	lStart, lBody, lEnd := g.newLabel(), g.newLabel(), g.newLabel()

	*body = append(*body, ir.Label{Name: lStart})
	condOp, err := g.lowerExpr(n.Condition, body)
	if err != nil {
		return err
	}
	*body = append(*body, ir.CondJump{Cond: condOp, TrueLabel: lBody, FalseLabel: lEnd})
	*body = append(*body, ir.Label{Name: lBody})
	bodyInstrs, err := g.lowerBlock(n.Body)
	if err != nil {
		return err
	}
	*body = append(*body, bodyInstrs...)
	*body = append(*body, ir.Jump{Label: lStart})
	*body = append(*body, ir.Label{Name: lEnd})
	return nil
}

func (g *Generator) unsupported(n ast.Node, what string) *diag.IRError {
	pos := n.Pos()
	return &diag.IRError{Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf("unsupported construct: %s", what)}
}
