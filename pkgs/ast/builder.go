package ast

// Constructor helpers for building AST nodes. Grounded on the teacher's
// ast.Var/Cmd/Id/Str/Num builder-function convention: one small function
// per node kind rather than exposing bare struct literals everywhere.

func NewInt(v int64, pos Position) *IntLiteral       { return &IntLiteral{Position: pos, Value: v} }
func NewFloat(v float64, pos Position) *FloatLiteral { return &FloatLiteral{Position: pos, Value: v} }
func NewString(v string, isF bool, pos Position) *StringLiteral {
	return &StringLiteral{Position: pos, Value: v, IsFString: isF}
}
func NewBool(v bool, pos Position) *BoolLiteral { return &BoolLiteral{Position: pos, Value: v} }
func NewNone(pos Position) *NoneLiteral         { return &NoneLiteral{Position: pos} }
func NewIdentifier(name string, pos Position) *Identifier {
	return &Identifier{Position: pos, Name: name}
}

func NewBinaryOp(op string, left, right Expr, pos Position) *BinaryOp {
	return &BinaryOp{Position: pos, Op: op, Left: left, Right: right}
}

func NewUnaryOp(op string, operand Expr, pos Position) *UnaryOp {
	return &UnaryOp{Position: pos, Op: op, Operand: operand}
}

func NewAssignment(target, value Expr, pos Position) *Assignment {
	return &Assignment{Position: pos, Target: target, Value: value}
}

func NewFunctionCall(callable Expr, args []Expr, kwargs map[string]Expr, order []string, pos Position) *FunctionCall {
	if kwargs == nil {
		kwargs = map[string]Expr{}
	}
	return &FunctionCall{Position: pos, Callable: callable, Args: args, KeywordArgs: kwargs, KeywordOrder: order}
}

func NewAttribute(value Expr, name string, pos Position) *Attribute {
	return &Attribute{Position: pos, Value: value, Name: name}
}

func NewSubscript(value, index Expr, pos Position) *Subscript {
	return &Subscript{Position: pos, Value: value, Index: index}
}

func NewList(elements []Expr, pos Position) *List {
	return &List{Position: pos, Elements: elements}
}

func NewDict(items []DictItem, pos Position) *Dict {
	return &Dict{Position: pos, Items: items}
}

func NewFunctionDef(name string, params []*Parameter, body []Node, pos Position) *FunctionDef {
	return &FunctionDef{Position: pos, Name: name, Parameters: params, Body: body}
}

func NewClassDef(name string, bases []Expr, body []Node, pos Position) *ClassDef {
	return &ClassDef{Position: pos, Name: name, Bases: bases, Body: body}
}

func NewIf(cond Expr, then, els []Node, pos Position) *If {
	return &If{Position: pos, Condition: cond, Then: then, Else: els}
}

func NewWhile(cond Expr, body []Node, pos Position) *While {
	return &While{Position: pos, Condition: cond, Body: body}
}

func NewFor(target, iterable Expr, body []Node, pos Position) *For {
	return &For{Position: pos, Target: target, Iterable: iterable, Body: body}
}

func NewWith(ctx Expr, alias string, body []Node, pos Position) *With {
	return &With{Position: pos, Context: ctx, Alias: alias, Body: body}
}

func NewReturn(value Expr, pos Position) *Return {
	return &Return{Position: pos, Value: value}
}
