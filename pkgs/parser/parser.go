// Package parser consumes a token sequence and produces a forest of
// top-level AST nodes by recursive descent with precedence climbing.
// Grounded on the teacher's pkgs/parser/parser.go shape — a cursor over
// a token slice, a synchronize-on-error recovery method, and a
// formatted-error helper — reworked from Devcmd's flat command grammar
// onto this language's indentation-delimited statement grammar.
package parser

import (
	"github.com/sourcelang/pytac/pkgs/ast"
	"github.com/sourcelang/pytac/pkgs/diag"
	"github.com/sourcelang/pytac/pkgs/lexer"
	"github.com/sourcelang/pytac/pkgs/token"
)

// Parser holds the private state of one parse: the token slice, a
// cursor, and the diagnostics collected so far.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*diag.ParseError
}

// Parse consumes tokens and returns the top-level AST forest plus any
// syntax errors recovered along the way. On error, parsing synchronizes
// at the next statement boundary and continues, so the returned forest
// may be a partial prefix of what a fully valid input would produce.
func Parse(tokens []token.Token) ([]ast.Node, []*diag.ParseError) {
	p := &Parser{tokens: tokens}
	var nodes []ast.Node
	for !p.isAtEnd() {
		if p.check(token.NEWLINE) {
			p.advance()
			continue
		}
		if node := p.parseStatement(); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, p.errors
}

// ParseSource tokenizes src and parses it, a convenience wrapper around
// lexer.Tokenize + Parse for callers that only have source text.
func ParseSource(src string) ([]ast.Node, *diag.LexError, []*diag.ParseError) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		return nil, lexErr, nil
	}
	nodes, parseErrs := Parse(toks)
	return nodes, nil, parseErrs
}

// parseStatement dispatches on the first significant token. On failure
// it records the diagnostic and synchronizes, returning nil so the
// caller simply skips appending it.
func (p *Parser) parseStatement() ast.Node {
	tok := p.current()

	var node ast.Node
	var err error

	switch tok.Type {
	case token.DEF:
		node, err = p.parseFunctionDef()
	case token.CLASS:
		node, err = p.parseClassDef()
	case token.IF:
		node, err = p.parseIf()
	case token.WHILE:
		node, err = p.parseWhile()
	case token.FOR:
		node, err = p.parseFor()
	case token.WITH:
		node, err = p.parseWith()
	case token.RETURN:
		node, err = p.parseReturn()
	case token.IMPORT:
		node, err = p.parseImport()
	case token.FROM:
		node, err = p.parseFromImport()
	case token.PASS:
		p.advance()
		node = &ast.Pass{Position: p.posOf(tok)}
	case token.BREAK:
		p.advance()
		node = &ast.Break{Position: p.posOf(tok)}
	case token.CONTINUE:
		p.advance()
		node = &ast.Continue{Position: p.posOf(tok)}
	case token.SEMICOLON:
		p.advance()
		return nil
	default:
		var expr ast.Expr
		expr, err = p.parseExpression()
		node = expr
	}

	if err != nil {
		p.addError(err)
		p.synchronize()
		return nil
	}

	for p.check(token.NEWLINE) || p.check(token.SEMICOLON) {
		p.advance()
	}
	return node
}

// parseBlock parses the body following ':': an optional NEWLINE, then
// either an INDENT-delimited block of statements or, with no INDENT, a
// single-line block containing one statement.
func (p *Parser) parseBlock() ([]ast.Node, error) {
	if _, err := p.expect(token.COLON, "expected ':'"); err != nil {
		return nil, err
	}
	if p.check(token.NEWLINE) {
		p.advance()
	}

	if !p.check(token.INDENT) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil, nil
		}
		return []ast.Node{stmt}, nil
	}

	p.advance() // INDENT
	var body []ast.Node
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		if p.check(token.NEWLINE) {
			p.advance()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
	}
	if _, err := p.expect(token.DEDENT, "expected DEDENT to close block"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseFunctionDef() (ast.Node, error) {
	start := p.current()
	p.advance() // def

	nameTok, err := p.expect(token.IDENTIFIER, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDef(nameTok.Lexeme, params, body, p.posOf(start)), nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	keywordOnly := false

	for !p.check(token.RPAREN) && !p.isAtEnd() {
		if p.check(token.MUL) {
			p.advance()
			keywordOnly = true
			if p.check(token.COMMA) {
				p.advance()
				continue
			}
			break
		}

		nameTok, err := p.expect(token.IDENTIFIER, "expected parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Position: p.posOf(nameTok), Name: nameTok.Lexeme, IsKeywordOnly: keywordOnly}
		if p.check(token.ASSIGN) {
			p.advance()
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)

		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) parseClassDef() (ast.Node, error) {
	start := p.current()
	p.advance() // class

	nameTok, err := p.expect(token.IDENTIFIER, "expected class name")
	if err != nil {
		return nil, err
	}

	var bases []ast.Expr
	if p.check(token.LPAREN) {
		p.advance()
		for !p.check(token.RPAREN) && !p.isAtEnd() {
			b, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			bases = append(bases, b)
			if p.check(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewClassDef(nameTok.Lexeme, bases, body, p.posOf(start)), nil
}

// parseIf lowers a trailing "elif" into Else: [If(...)] so the
// generator only ever sees plain If nodes, per the spec's elif-lowering
// rule. A trailing "else" applies to the innermost chain.
func (p *Parser) parseIf() (ast.Node, error) {
	start := p.current()
	p.advance() // if
	return p.parseIfBody(start)
}

func (p *Parser) parseIfBody(start token.Token) (ast.Node, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Node
	switch {
	case p.check(token.ELIF):
		elifStart := p.current()
		p.advance()
		nested, err := p.parseIfBody(elifStart)
		if err != nil {
			return nil, err
		}
		elseBody = []ast.Node{nested}
	case p.check(token.ELSE):
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIf(cond, thenBody, elseBody, p.posOf(start)), nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	start := p.current()
	p.advance() // while
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(cond, body, p.posOf(start)), nil
}

// parseFor parses the target as a general expression; the core does not
// check that it is an lvalue.
func (p *Parser) parseFor() (ast.Node, error) {
	start := p.current()
	p.advance() // for
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "expected 'in'"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(target, iterable, body, p.posOf(start)), nil
}

func (p *Parser) parseWith() (ast.Node, error) {
	start := p.current()
	p.advance() // with
	ctx, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	alias := ""
	if p.check(token.AS) {
		p.advance()
		nameTok, err := p.expect(token.IDENTIFIER, "expected name after 'as'")
		if err != nil {
			return nil, err
		}
		alias = nameTok.Lexeme
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWith(ctx, alias, body, p.posOf(start)), nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	start := p.current()
	p.advance() // return
	switch p.current().Type {
	case token.NEWLINE, token.SEMICOLON, token.END, token.DEDENT:
		return ast.NewReturn(nil, p.posOf(start)), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(value, p.posOf(start)), nil
}

func (p *Parser) parseImport() (ast.Node, error) {
	start := p.current()
	p.advance() // import

	module, err := p.parseDottedModuleName()
	if err != nil {
		return nil, err
	}

	alias := ""
	if p.check(token.AS) {
		p.advance()
		aliasTok, err := p.expect(token.IDENTIFIER, "expected alias name")
		if err != nil {
			return nil, err
		}
		alias = aliasTok.Lexeme
	}
	return &ast.Import{Position: p.posOf(start), Module: module, Alias: alias}, nil
}

func (p *Parser) parseFromImport() (ast.Node, error) {
	start := p.current()
	p.advance() // from

	module, err := p.parseDottedModuleName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IMPORT, "expected 'import'"); err != nil {
		return nil, err
	}

	var names []ast.ImportName
	if p.check(token.MUL) {
		p.advance()
		names = append(names, ast.ImportName{Name: "*"})
		return &ast.FromImport{Position: p.posOf(start), Module: module, Imports: names}, nil
	}

	for {
		nameTok, err := p.expect(token.IDENTIFIER, "expected imported name")
		if err != nil {
			return nil, err
		}
		imp := ast.ImportName{Name: nameTok.Lexeme}
		if p.check(token.AS) {
			p.advance()
			aliasTok, err := p.expect(token.IDENTIFIER, "expected alias name")
			if err != nil {
				return nil, err
			}
			imp.Alias = aliasTok.Lexeme
		}
		names = append(names, imp)
		if p.check(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return &ast.FromImport{Position: p.posOf(start), Module: module, Imports: names}, nil
}

func (p *Parser) parseDottedModuleName() (string, error) {
	first, err := p.expect(token.IDENTIFIER, "expected module name")
	if err != nil {
		return "", err
	}
	name := first.Lexeme
	for p.check(token.DOT) {
		p.advance()
		part, err := p.expect(token.IDENTIFIER, "expected identifier after '.'")
		if err != nil {
			return "", err
		}
		name += "." + part.Lexeme
	}
	return name, nil
}
