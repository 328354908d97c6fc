package parser

import (
	"github.com/lat-compiler/latc/internal/ast"
	"github.com/lat-compiler/latc/internal/token"
)

// parseBaseTypeName parses a single NAME token denoting a type: one of
// the three primitive keywords, "void" when allowVoid is set, or a class
// identifier. It never consumes a following "[]" suffix — callers that
// want the full array-suffixed surface form use parseTypeName; parseNew
// wants just the element name before its own "[" size "]".
func (p *Parser) parseBaseTypeName(allowVoid bool) (string, token.Position) {
	cur := p.c.current()
	var base string
	switch cur.Type {
	case token.KW_INT:
		base = "int"
		p.c.advance()
	case token.KW_BOOLEAN:
		base = "boolean"
		p.c.advance()
	case token.KW_STRING:
		base = "string"
		p.c.advance()
	case token.KW_VOID:
		if !allowVoid {
			p.fail(cur.Pos, "void is not allowed here")
		}
		base = "void"
		p.c.advance()
	case token.IDENT:
		base = cur.Literal
		p.c.advance()
	default:
		p.fail(cur.Pos, "expected a type name, got %s %q", cur.Type, cur.Literal)
	}
	return base, cur.Pos
}

// parseTypeName parses a surface type string: NAME, optionally followed by
// any number of "[]" suffixes, plus the keyword "void" when allowVoid is
// set (spec.md §4.1 "A type string is NAME or NAME '[]'").
func (p *Parser) parseTypeName(allowVoid bool) string {
	base, _ := p.parseBaseTypeName(allowVoid)

	for p.at(token.LBRACKET) && p.c.peek(1).Type == token.RBRACKET {
		p.c.advance()
		p.c.advance()
		base += "[]"
	}
	return base
}

// parseParamList parses a parenthesized, comma-separated parameter list:
// "(" [ type name ("," type name)* ] ")".
func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	if !p.at(token.RPAREN) {
		for {
			typ := p.parseTypeName(false)
			name := p.expect(token.IDENT).Literal
			params = append(params, ast.Param{Type: typ, Name: name})
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseFunction parses a top-level free function:
// type NAME "(" params ")" block.
func (p *Parser) parseFunction() *ast.Function {
	begin := p.c.current().Pos
	retType := p.parseTypeName(true)
	nameTok := p.c.current()
	name := p.expect(token.IDENT).Literal

	p.env.push("function", name, begin)
	defer p.env.pop()

	params := p.parseParamList()
	body := p.parseBlock()

	return &ast.Function{
		NameTok:    nameTok.Pos,
		EndTok:     body.End(),
		Name:       name,
		ReturnType: retType,
		Params:     params,
		Body:       body,
	}
}

// parseClass parses a top-level class declaration:
// "class" NAME ["extends" NAME] "{" member* "}".
//
// A member is either a field declaration (type name ";") or a method
// declaration (type name "(" params ")" block) — disambiguated the same
// way a local Definition vs. expression-statement is: look past the type
// and the name for "(" to know it is a method.
func (p *Parser) parseClass() *ast.Class {
	classTok := p.expect(token.KW_CLASS)
	nameTok := p.c.current()
	name := p.expect(token.IDENT).Literal

	p.env.push("class", name, classTok.Pos)
	defer p.env.pop()

	var super string
	if p.accept(token.KW_EXTENDS) {
		super = p.expect(token.IDENT).Literal
	}

	p.expect(token.LBRACE)
	cls := &ast.Class{NameTok: nameTok.Pos, Name: name, Superclass: super}
	for !p.at(token.RBRACE) {
		memberType := p.parseTypeName(true)
		memberNameTok := p.c.current()
		memberName := p.expect(token.IDENT).Literal

		if p.at(token.LPAREN) {
			p.env.push("method", memberName, memberNameTok.Pos)
			params := p.parseParamList()
			body := p.parseBlock()
			p.env.pop()
			cls.Methods = append(cls.Methods, &ast.Function{
				NameTok:    memberNameTok.Pos,
				EndTok:     body.End(),
				Name:       memberName,
				ReturnType: memberType,
				Params:     params,
				Body:       body,
			})
			continue
		}

		p.expect(token.SEMICOLON)
		cls.Variables = append(cls.Variables, ast.ClassVar{Type: memberType, Name: memberName})
	}
	endTok := p.expect(token.RBRACE)
	cls.EndTok = endTok.Pos
	return cls
}
