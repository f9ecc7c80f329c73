package parser

import (
	"fmt"

	"github.com/sourcelang/pytac/pkgs/ast"
	"github.com/sourcelang/pytac/pkgs/diag"
	"github.com/sourcelang/pytac/pkgs/token"
)

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.Type) bool { return p.current().Type == t }
func (p *Parser) isAtEnd() bool           { return p.current().Type == token.END }

func (p *Parser) posOf(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

// expect consumes the current token if it has type t, failing with a
// ParseError ("unexpected token where a specific kind was required")
// otherwise.
func (p *Parser) expect(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		tok := p.current()
		p.advance()
		return tok, nil
	}
	tok := p.current()
	return token.Token{}, &diag.ParseError{
		Line: tok.Line, Column: tok.Column,
		Message: fmt.Sprintf("%s, got %s", message, tok.Type),
	}
}

// unexpectedTokenError reports an unexpected token starting an
// expression or statement.
func (p *Parser) unexpectedTokenError(context string) error {
	tok := p.current()
	return &diag.ParseError{
		Line: tok.Line, Column: tok.Column,
		Message: fmt.Sprintf("unexpected token %s starting %s", tok.Type, context),
	}
}

func (p *Parser) addError(err error) {
	if pe, ok := err.(*diag.ParseError); ok {
		p.errors = append(p.errors, pe)
		return
	}
	tok := p.current()
	p.errors = append(p.errors, &diag.ParseError{Line: tok.Line, Column: tok.Column, Message: err.Error()})
}

// synchronize advances to the next NEWLINE, SEMICOLON, or END (consuming
// the NEWLINE or SEMICOLON, even when it is the offending token itself),
// so the parser can resume at the next statement boundary and keep
// collecting diagnostics.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(token.NEWLINE) || p.check(token.SEMICOLON) {
			p.advance()
			return
		}
		p.advance()
	}
}

// cloneExpr copies an lvalue expression. Compound assignment
// (x op= e) shares the parsed target subtree between Assignment.Target
// and BinaryOp.Left by default; this repo clones it instead, per the
// Design Notes decision to prefer cloning over shared mutable subtrees.
// Identifier, Attribute and Subscript nodes are copied recursively; any
// other node (for example a literal or operator expression used as a
// subscript index) is returned as is and stays shared with the target.
func cloneExpr(e ast.Expr) ast.Expr {
	switch v := e.(type) {
	case *ast.Identifier:
		c := *v
		return &c
	case *ast.Attribute:
		c := *v
		c.Value = cloneExpr(v.Value)
		return &c
	case *ast.Subscript:
		c := *v
		c.Value = cloneExpr(v.Value)
		c.Index = cloneExpr(v.Index)
		return &c
	default:
		return e
	}
}

func opText(t token.Type) string {
	switch t {
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.FLOORDIV:
		return "//"
	case token.MOD:
		return "%"
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.EQ:
		return "=="
	case token.NEQ:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	}
	return t.String()
}

func compoundOp(t token.Type) string {
	switch t {
	case token.PLUS_ASSIGN:
		return "+"
	case token.MINUS_ASSIGN:
		return "-"
	case token.MUL_ASSIGN:
		return "*"
	case token.DIV_ASSIGN:
		return "/"
	}
	return ""
}
