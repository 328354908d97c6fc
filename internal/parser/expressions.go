package parser

import (
	"strconv"

	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
)

// binaryOps maps each precedence level (spec.md §4.1's table, lowest
// first) to the tokens/kinds that belong to it. All levels are
// left-associative.
var binaryOps = []map[token.Type]ast.BinaryOpKind{
	{token.OR: ast.Or},
	{token.AND: ast.And},
	{
		token.LT: ast.Lt, token.LE: ast.Le, token.GT: ast.Gt, token.GE: ast.Ge,
		token.EQ: ast.Eq, token.NE: ast.Ne,
	},
	{token.PLUS: ast.Add, token.MINUS: ast.Sub},
	{token.STAR: ast.Mul, token.SLASH: ast.Div, token.PERCENT: ast.Mod},
}

// parseExpression parses a full expression at the lowest precedence (`||`).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseBinaryLevel(0)
}

// parseBinaryLevel implements the precedence climb: each level folds a
// flat run of same-precedence operators left-to-right over the next
// tighter level, exactly as spec.md §4.1 describes.
func (p *Parser) parseBinaryLevel(level int) ast.Expr {
	if level >= len(binaryOps) {
		return p.parseUnary()
	}
	left := p.parseBinaryLevel(level + 1)
	ops := binaryOps[level]
	for {
		op, ok := ops[p.c.current().Type]
		if !ok {
			return left
		}
		p.c.advance()
		right := p.parseBinaryLevel(level + 1)
		left = ast.NewBinaryOp(left.Pos(), right.End(), op, left, right)
	}
}

// parseUnary parses unary `!`/`-`, which bind tighter than any binary
// operator, then falls through to postfix chains.
func (p *Parser) parseUnary() ast.Expr {
	cur := p.c.current()
	switch cur.Type {
	case token.BANG:
		p.c.advance()
		x := p.parseUnary()
		return ast.NewUnaryOp(cur.Pos, x.End(), ast.BoolNeg, x)
	case token.MINUS:
		p.c.advance()
		x := p.parseUnary()
		return ast.NewUnaryOp(cur.Pos, x.End(), ast.IntNeg, x)
	}
	return p.parsePostfix()
}

// canStartSimpleExpr reports whether tt can begin the operand spec.md
// §4.1's cast rule requires after `'(' NAME ')'` for that parenthesized
// form to be read as a cast rather than a parenthesized variable
// reference.
func canStartSimpleExpr(tt token.Type) bool {
	switch tt {
	case token.INT_LIT, token.STRING_LIT, token.KW_TRUE, token.KW_FALSE, token.KW_NULL,
		token.IDENT, token.KW_SELF, token.KW_NEW, token.LPAREN, token.BANG, token.MINUS:
		return true
	}
	return false
}

// parsePostfix parses a primary expression followed by any number of
// `.name`, `[expr]`, `(args)` postfix applications.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.c.current().Type {
		case token.DOT:
			p.c.advance()
			member := p.expect(token.IDENT)
			expr = ast.NewClassMember(expr.Pos(), member.Pos, expr, member.Literal)
		case token.LBRACKET:
			p.c.advance()
			idx := p.parseExpression()
			end := p.expect(token.RBRACKET).Pos
			expr = ast.NewSubscript(expr.Pos(), end, expr, idx)
		case token.LPAREN:
			args, end := p.parseArgs()
			expr = ast.NewCall(expr.Pos(), end, expr, args)
		default:
			return expr
		}
	}
}

// parseArgs parses "(" [expr ("," expr)*] ")", assuming the current token
// is the opening paren.
func (p *Parser) parseArgs() ([]ast.Expr, token.Position) {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	end := p.expect(token.RPAREN).Pos
	return args, end
}

// parsePrimary parses a literal, `self`, a bare identifier, `new ...`, or
// a parenthesized expression/cast.
func (p *Parser) parsePrimary() ast.Expr {
	cur := p.c.current()
	switch cur.Type {
	case token.INT_LIT:
		p.c.advance()
		v, err := strconv.ParseInt(cur.Literal, 10, 64)
		if err != nil {
			p.fail(cur.Pos, "invalid integer literal %q", cur.Literal)
		}
		return ast.NewIntLit(cur.Pos, cur.Pos, v)
	case token.STRING_LIT:
		p.c.advance()
		return ast.NewStringLit(cur.Pos, cur.Pos, cur.Literal)
	case token.KW_TRUE:
		p.c.advance()
		return ast.NewBoolLit(cur.Pos, cur.Pos, true)
	case token.KW_FALSE:
		p.c.advance()
		return ast.NewBoolLit(cur.Pos, cur.Pos, false)
	case token.KW_NULL:
		p.c.advance()
		return ast.NewNullLit(cur.Pos, cur.Pos)
	case token.KW_SELF:
		p.c.advance()
		return ast.NewVariable(cur.Pos, cur.Pos, "self")
	case token.IDENT:
		p.c.advance()
		return ast.NewVariable(cur.Pos, cur.Pos, cur.Literal)
	case token.KW_NEW:
		return p.parseNew()
	case token.LPAREN:
		return p.parseParenOrCast()
	}

	p.fail(cur.Pos, "expected an expression, got %s %q", cur.Type, cur.Literal)
	return nil
}

// parseNew parses `new NAME` (NewObject) or `new NAME '[' expr ']'`
// (NewArray).
func (p *Parser) parseNew() ast.Expr {
	newTok := p.expect(token.KW_NEW)
	name, namePos := p.parseBaseTypeName(false)
	if p.accept(token.LBRACKET) {
		size := p.parseExpression()
		end := p.expect(token.RBRACKET).Pos
		return ast.NewNewArray(newTok.Pos, end, name, size)
	}
	return ast.NewNewObject(newTok.Pos, namePos, name)
}

// parseParenOrCast implements spec.md §4.1's cast-recognition rule: a
// cast is syntactically `'(' NAME ')' simple_expression`; only a single
// name (an identifier or one of the keywords int, boolean, string), never
// an arbitrary type string or expression, may stand between the parens. `(int)x` is a cast; `(1+2)` and `(x)` are not — the
// second because nothing that can start a simple_expression follows it.
// The cursor is marked before the speculative identifier-then-paren read
// and reset if the lookahead doesn't pan out, so `(x)` falls through to
// an ordinary parenthesized expression.
func (p *Parser) parseParenOrCast() ast.Expr {
	openPos := p.c.current().Pos
	mark := p.c.mark()
	p.c.advance() // consume '('

	if t := p.c.current().Type; t == token.IDENT || t == token.KW_INT || t == token.KW_BOOLEAN || t == token.KW_STRING {
		target := p.c.current().Literal
		p.c.advance()
		if p.at(token.RPAREN) {
			p.c.advance()
			if canStartSimpleExpr(p.c.current().Type) {
				x := p.parseUnary()
				return ast.NewCast(openPos, x.End(), target, x)
			}
		}
	}

	p.c.reset(mark)
	p.c.advance() // consume '(' again
	inner := p.parseExpression()
	p.expect(token.RPAREN)
	return inner
}
