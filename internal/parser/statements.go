package parser

import "github.com/lat-compiler/latc/internal/ast"
import "github.com/lat-compiler/latc/internal/token"

// looksLikeDefinition implements spec.md §4.1's "statement starting with
// two names" rule: a type name (NAME, or NAME with any number of "[]"
// suffixes) immediately followed by another NAME means a local
// Definition; anything else is parsed as an expression statement. It only
// peeks — the cursor is untouched either way.
func (p *Parser) looksLikeDefinition() bool {
	n := 0
	switch p.c.peek(n).Type {
	case token.KW_INT, token.KW_BOOLEAN, token.KW_STRING, token.IDENT:
		n++
	default:
		return false
	}
	for p.c.peek(n).Type == token.LBRACKET && p.c.peek(n+1).Type == token.RBRACKET {
		n += 2
	}
	return p.c.peek(n).Type == token.IDENT
}

// parseBlock parses "{" stmt* "}".
func (p *Parser) parseBlock() *ast.Block {
	open := p.expect(token.LBRACE)
	p.env.push("block", "", open.Pos)
	defer p.env.pop()

	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	closeBrace := p.expect(token.RBRACE)
	return ast.NewBlock(open.Pos, closeBrace.Pos, stmts)
}

// parseStatement dispatches on the current token to one of the statement
// productions in spec.md §3/§4.1.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.c.current().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMICOLON:
		pos := p.c.advance().Pos
		return ast.NewEmpty(pos, pos)
	case token.KW_IF:
		return p.parseIf()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_FOR:
		return p.parseFor()
	case token.KW_RETURN:
		return p.parseReturn()
	}

	if p.looksLikeDefinition() {
		return p.parseDefinition()
	}
	return p.parseSimpleStatement()
}

// parseDefinition parses "type name [= expr] ('," name [= expr])* ';'".
func (p *Parser) parseDefinition() *ast.Definition {
	begin := p.c.current().Pos
	declType := p.parseTypeName(false)

	var vars []ast.VarInit
	for {
		name := p.expect(token.IDENT).Literal
		var init ast.Expr
		if p.accept(token.ASSIGN) {
			init = p.parseExpression()
		}
		vars = append(vars, ast.VarInit{Name: name, Init: init})
		if !p.accept(token.COMMA) {
			break
		}
	}
	end := p.expect(token.SEMICOLON).Pos
	return ast.NewDefinition(begin, end, declType, vars)
}

// parseSimpleStatement parses the remaining statement-start alternative:
// an expression, followed by one of "=" (Assignment), "++" (Incr), "--"
// (Decr), or ";" (ExprStmt).
func (p *Parser) parseSimpleStatement() ast.Stmt {
	begin := p.c.current().Pos
	expr := p.parseExpression()

	switch p.c.current().Type {
	case token.ASSIGN:
		p.c.advance()
		value := p.parseExpression()
		end := p.expect(token.SEMICOLON).Pos
		return ast.NewAssignment(begin, end, expr, value)
	case token.INCR:
		p.c.advance()
		end := p.expect(token.SEMICOLON).Pos
		return ast.NewIncr(begin, end, expr)
	case token.DECR:
		p.c.advance()
		end := p.expect(token.SEMICOLON).Pos
		return ast.NewDecr(begin, end, expr)
	case token.SEMICOLON:
		end := p.c.advance().Pos
		return ast.NewExprStmt(begin, end, expr)
	}

	cur := p.c.current()
	p.fail(cur.Pos, "expected '=', '++', '--' or ';', got %s %q", cur.Type, cur.Literal)
	return nil
}

// parseIf parses "if" "(" cond ")" stmt ["else" stmt].
func (p *Parser) parseIf() *ast.If {
	ifTok := p.expect(token.KW_IF)
	p.env.push("if statement", "", ifTok.Pos)
	defer p.env.pop()

	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()

	var els ast.Stmt
	end := then.End()
	if p.accept(token.KW_ELSE) {
		els = p.parseStatement()
		end = els.End()
	}
	return ast.NewIf(ifTok.Pos, end, cond, then, els)
}

// parseWhile parses "while" "(" cond ")" stmt.
func (p *Parser) parseWhile() *ast.While {
	whileTok := p.expect(token.KW_WHILE)
	p.env.push("while statement", "", whileTok.Pos)
	defer p.env.pop()

	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return ast.NewWhile(whileTok.Pos, body.End(), cond, body)
}

// parseFor parses "for" "(" type name ":" expr ")" stmt, the array
// foreach form spec.md §3's For(elem_type, var_name, array_expr, body)
// describes.
func (p *Parser) parseFor() *ast.For {
	forTok := p.expect(token.KW_FOR)
	p.env.push("for statement", "", forTok.Pos)
	defer p.env.pop()

	p.expect(token.LPAREN)
	elemType := p.parseTypeName(false)
	varName := p.expect(token.IDENT).Literal
	p.expect(token.COLON)
	arr := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return ast.NewFor(forTok.Pos, body.End(), elemType, varName, arr, body)
}

// parseReturn parses "return" [expr] ";".
func (p *Parser) parseReturn() *ast.Return {
	retTok := p.expect(token.KW_RETURN)
	var value ast.Expr
	if !p.at(token.SEMICOLON) {
		value = p.parseExpression()
	}
	end := p.expect(token.SEMICOLON).Pos
	return ast.NewReturn(retTok.Pos, end, value)
}
