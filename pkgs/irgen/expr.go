package irgen

import (
	"fmt"

	"github.com/sourcelang/pytac/pkgs/ast"
	"github.com/sourcelang/pytac/pkgs/diag"
	"github.com/sourcelang/pytac/pkgs/ir"
)

// lowerExpr lowers an expression to the operand it evaluates to,
// appending whatever instructions that evaluation requires to body.
// Binary operands are lowered left-before-right and call arguments in
// source order. An assignment lowers its value before its target, and a
// method call lowers its arguments before the object it is called on.
func (g *Generator) lowerExpr(e ast.Expr, body *[]ir.Instr) (ir.Operand, *diag.IRError) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return ir.Const{Value: v.Value}, nil
	case *ast.FloatLiteral:
		return ir.Const{Value: v.Value}, nil
	case *ast.StringLiteral:
		return ir.Const{Value: v.Value}, nil
	case *ast.BoolLiteral:
		return ir.Const{Value: v.Value}, nil
	case *ast.NoneLiteral:
		return ir.Const{Value: nil}, nil

	case *ast.Identifier:
		return ir.Var{Name: v.Name}, nil

	case *ast.Attribute:
		// obj.attr lowers to a dotted Var with no Load instruction; a
		// consumer that needs an explicit materialization re-synthesizes
		// its own Load from the resulting operand.
		objOp, err := g.lowerExpr(v.Value, body)
		if err != nil {
			return nil, err
		}
		return ir.Var{Name: objOp.String() + "." + v.Name}, nil

	case *ast.BinaryOp:
		left, err := g.lowerExpr(v.Left, body)
		if err != nil {
			return nil, err
		}
		right, err := g.lowerExpr(v.Right, body)
		if err != nil {
			return nil, err
		}
		dest := g.newTemp()
		*body = append(*body, ir.BinaryOp{Op: v.Op, Left: left, Right: right, Dest: dest})
		return ir.Var{Name: dest}, nil

	case *ast.UnaryOp:
		operand, err := g.lowerExpr(v.Operand, body)
		if err != nil {
			return nil, err
		}
		dest := g.newTemp()
		*body = append(*body, ir.UnaryOp{Op: v.Op, Operand: operand, Dest: dest})
		return ir.Var{Name: dest}, nil

	case *ast.Assignment:
		return g.lowerAssignment(v, body)

	case *ast.FunctionCall:
		return g.lowerCall(v, body)

	default:
		return nil, g.unsupported(e, fmt.Sprintf("%T expression", e))
	}
}

// lowerAssignment lowers the value, resolves the target to a Dest name,
// and emits a single Store. The assignment's own value, as an
// expression, is a Var naming the target it wrote — this lets
// "x = y = 1" chain (store 1 -> y, then store y -> x).
func (g *Generator) lowerAssignment(a *ast.Assignment, body *[]ir.Instr) (ir.Operand, *diag.IRError) {
	valueOp, err := g.lowerExpr(a.Value, body)
	if err != nil {
		return nil, err
	}
	dest, err := g.lvalueName(a.Target, body)
	if err != nil {
		return nil, err
	}
	*body = append(*body, ir.Store{Source: valueOp, Dest: dest})
	return ir.Var{Name: dest}, nil
}

// lvalueName resolves an assignment target to the dotted name a Store
// instruction writes into. Only Identifier and Attribute targets are
// supported; Subscript targets have no defined lowering.
func (g *Generator) lvalueName(target ast.Expr, body *[]ir.Instr) (string, *diag.IRError) {
	switch v := target.(type) {
	case *ast.Identifier:
		return v.Name, nil
	case *ast.Attribute:
		objOp, err := g.lowerExpr(v.Value, body)
		if err != nil {
			return "", err
		}
		return objOp.String() + "." + v.Name, nil
	default:
		return "", g.unsupported(target, fmt.Sprintf("%T as an assignment target", target))
	}
}

// lowerCall lowers each argument in source order, then dispatches on the
// shape of the callee: Attribute(obj, m) becomes MethodCall, a bare
// Identifier becomes ConstructorCall while inside a class body and Call
// otherwise.
func (g *Generator) lowerCall(c *ast.FunctionCall, body *[]ir.Instr) (ir.Operand, *diag.IRError) {
	var args []ir.Operand
	for _, a := range c.Args {
		op, err := g.lowerExpr(a, body)
		if err != nil {
			return nil, err
		}
		args = append(args, op)
	}
	for _, name := range c.KeywordOrder {
		op, err := g.lowerExpr(c.KeywordArgs[name], body)
		if err != nil {
			return nil, err
		}
		args = append(args, op)
	}

	dest := g.newTemp()

	switch callee := c.Callable.(type) {
	case *ast.Attribute:
		objOp, err := g.lowerExpr(callee.Value, body)
		if err != nil {
			return nil, err
		}
		*body = append(*body, ir.MethodCall{Object: objOp, Method: callee.Name, Args: args, Dest: dest})

	case *ast.Identifier:
		if g.insideClass {
			*body = append(*body, ir.ConstructorCall{Class: callee.Name, Args: args, Dest: dest})
		} else {
			*body = append(*body, ir.Call{Func: callee.Name, Args: args, Dest: dest})
		}

	default:
		calleeOp, err := g.lowerExpr(c.Callable, body)
		if err != nil {
			return nil, err
		}
		*body = append(*body, ir.Call{Func: calleeOp.String(), Args: args, Dest: dest})
	}

	return ir.Var{Name: dest}, nil
}
