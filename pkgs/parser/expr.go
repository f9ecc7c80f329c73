package parser

import (
	"github.com/sourcelang/pytac/pkgs/ast"
	"github.com/sourcelang/pytac/pkgs/token"
)

// parseExpression enters the precedence lattice at its lowest level,
// assignment, per the table in the spec: Assignment < Or < And <
// Equality < Comparison < Term < Factor < Unary < Power < Primary.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case token.ASSIGN:
		pos := p.posOf(p.current())
		p.advance()
		value, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(left, value, pos), nil

	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.MUL_ASSIGN, token.DIV_ASSIGN:
		opTok := p.current()
		pos := p.posOf(opTok)
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		// x op= e  =>  Assignment(x, BinaryOp(op, clone(x), e))
		bin := ast.NewBinaryOp(compoundOp(opTok.Type), cloneExpr(left), value, pos)
		return ast.NewAssignment(left, bin, pos), nil
	}

	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		pos := p.posOf(p.current())
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp("or", left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		pos := p.posOf(p.current())
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp("and", left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQ) || p.check(token.NEQ) {
		opTok := p.current()
		pos := p.posOf(opTok)
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opText(opTok.Type), left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.LT) || p.check(token.GT) || p.check(token.LTE) || p.check(token.GTE) {
		opTok := p.current()
		pos := p.posOf(opTok)
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opText(opTok.Type), left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.current()
		pos := p.posOf(opTok)
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opText(opTok.Type), left, right, pos)
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.MUL) || p.check(token.DIV) || p.check(token.FLOORDIV) || p.check(token.MOD) {
		opTok := p.current()
		pos := p.posOf(opTok)
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opText(opTok.Type), left, right, pos)
	}
	return left, nil
}

// parseUnary handles the prefix operators - and not. Unary minus is
// always emitted as a dedicated UnaryOp node (never desugared to
// BinaryOp("-", 0, x)) per the Design Notes decision.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(token.MINUS) || p.check(token.NOT) {
		opTok := p.current()
		pos := p.posOf(opTok)
		op := "-"
		if opTok.Type == token.NOT {
			op = "not"
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op, operand, pos), nil
	}
	return p.parsePower()
}

// parsePower binds tighter than unary so that -2**2 parses as
// -(2**2), matching the table's Unary < Power ordering; the right
// operand recurses through parseUnary so that 2**-2 is accepted.
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.check(token.POWER) {
		pos := p.posOf(p.current())
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp("**", left, right, pos), nil
	}
	return left, nil
}

// parsePostfix parses a primary expression followed by any chain of
// attribute access, call, and subscript operators.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().Type {
		case token.DOT:
			pos := p.posOf(p.current())
			p.advance()
			nameTok, err := p.expect(token.IDENTIFIER, "expected attribute name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.NewAttribute(expr, nameTok.Lexeme, pos)

		case token.LPAREN:
			pos := p.posOf(p.current())
			p.advance()
			args, kwargs, order, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
				return nil, err
			}
			expr = ast.NewFunctionCall(expr, args, kwargs, order, pos)

		case token.LBRACK:
			pos := p.posOf(p.current())
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACK, "expected ']'"); err != nil {
				return nil, err
			}
			expr = ast.NewSubscript(expr, idx, pos)

		default:
			return expr, nil
		}
	}
}

// parseCallArguments accepts positional expressions and keyword
// arguments. A keyword argument is recognized when an argument
// expression parses as Assignment(Identifier, value); it is removed
// from the positional list and entered into the keyword map under that
// identifier's name.
func (p *Parser) parseCallArguments() ([]ast.Expr, map[string]ast.Expr, []string, error) {
	var args []ast.Expr
	kwargs := map[string]ast.Expr{}
	var order []string

	for !p.check(token.RPAREN) && !p.isAtEnd() {
		e, err := p.parseExpression()
		if err != nil {
			return nil, nil, nil, err
		}

		if assign, ok := e.(*ast.Assignment); ok {
			if ident, ok := assign.Target.(*ast.Identifier); ok {
				kwargs[ident.Name] = assign.Value
				order = append(order, ident.Name)
				if p.check(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		}

		args = append(args, e)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return args, kwargs, order, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case token.INTEGER_LITERAL:
		p.advance()
		return ast.NewInt(tok.IntValue, p.posOf(tok)), nil
	case token.FLOAT_LITERAL:
		p.advance()
		return ast.NewFloat(tok.FloatValue, p.posOf(tok)), nil
	case token.STRING_LITERAL:
		p.advance()
		return ast.NewString(tok.StringValue, tok.IsFString, p.posOf(tok)), nil
	case token.TRUE:
		p.advance()
		return ast.NewBool(true, p.posOf(tok)), nil
	case token.FALSE:
		p.advance()
		return ast.NewBool(false, p.posOf(tok)), nil
	case token.NONE:
		p.advance()
		return ast.NewNone(p.posOf(tok)), nil
	case token.IDENTIFIER:
		p.advance()
		return ast.NewIdentifier(tok.Lexeme, p.posOf(tok)), nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACK:
		return p.parseList()
	case token.LBRACE:
		return p.parseDict()
	default:
		return nil, p.unexpectedTokenError("expression")
	}
}

func (p *Parser) parseList() (ast.Expr, error) {
	start := p.current()
	p.advance() // [
	var elements []ast.Expr
	for !p.check(token.RBRACK) && !p.isAtEnd() {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACK, "expected ']'"); err != nil {
		return nil, err
	}
	return ast.NewList(elements, p.posOf(start)), nil
}

func (p *Parser) parseDict() (ast.Expr, error) {
	start := p.current()
	p.advance() // {
	var items []ast.DictItem
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "expected ':' in dict literal"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.DictItem{Key: key, Value: value})
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE, "expected '}'"); err != nil {
		return nil, err
	}
	return ast.NewDict(items, p.posOf(start)), nil
}
