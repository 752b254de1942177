// Package parser implements a recursive-descent parser for Goianinha.
//
// The grammar is LL(1). The parser stops at the first syntax error: the
// language defines no error recovery, so there is no resynchronization —
// parsing unwinds and the collected errors are reported to the caller.
package parser

import (
	"fmt"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/lexer"
	"github.com/lucasreis/goianinha/internal/token"
	"github.com/lucasreis/goianinha/internal/types"
)

// Error is a syntax error with its source position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser consumes tokens from a lexer and builds the AST.
type Parser struct {
	l      *lexer.Lexer
	cur    token.Token
	errors []Error
}

// bailout aborts parsing on the first syntax error. It is recovered in
// ParseProgram.
type bailout struct{}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	return p
}

// Errors returns the syntax errors encountered during parsing, including
// lexical errors surfaced by the scanner.
func (p *Parser) Errors() []Error {
	errs := p.errors
	for _, lerr := range p.l.Errors() {
		errs = append(errs, Error{Pos: lerr.Pos, Message: lerr.Message})
	}
	return errs
}

func (p *Parser) advance() {
	p.cur = p.l.NextToken()
}

func (p *Parser) fail(format string, args ...any) {
	p.errors = append(p.errors, Error{Pos: p.cur.Pos, Message: fmt.Sprintf(format, args...)})
	panic(bailout{})
}

// expect consumes the current token when it has the wanted type and fails
// otherwise.
func (p *Parser) expect(t token.TokenType) token.Token {
	if p.cur.Type != t {
		p.fail("esperava %q, encontrou %q", string(t), p.cur.Literal)
	}
	tok := p.cur
	p.advance()
	return tok
}

// ParseProgram parses a whole translation unit. On a syntax error the
// returned program may be partial; callers must check Errors().
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
		}
	}()

	program.Token = p.expect(token.PROGRAMA)
	p.expect(token.LBRACE)

	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		p.parseDecl(program)
	}

	p.expect(token.RBRACE)
	if p.cur.Type != token.EOF {
		p.fail("conteudo apos o fim do programa: %q", p.cur.Literal)
	}

	if program.Main == nil {
		p.errors = append(p.errors, Error{
			Pos:     program.Token.Pos,
			Message: "o programa nao declara a funcao main",
		})
	}

	return program
}

// parseDecl parses one program-level declaration: a variable list or a
// function. Both start with a type and a name.
func (p *Parser) parseDecl(program *ast.Program) {
	typeTok, typ := p.parseType()
	name := p.parseIdentifier()

	if p.cur.Type == token.LPAREN {
		p.parseFunctionDecl(program, typeTok, typ, name)
		return
	}

	program.Decls = append(program.Decls, p.parseVarDeclRest(typeTok, typ, name))
}

func (p *Parser) parseType() (token.Token, types.Type) {
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		p.advance()
		return tok, types.Int
	case token.CAR:
		tok := p.cur
		p.advance()
		return tok, types.Char
	default:
		p.fail("esperava um tipo (int ou car), encontrou %q", p.cur.Literal)
		return token.Token{}, types.Unknown
	}
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.expect(token.ID)
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

// parseVarDeclRest finishes "tipo id , id ... ;" after the first name has
// been consumed.
func (p *Parser) parseVarDeclRest(typeTok token.Token, typ types.Type, first *ast.Identifier) *ast.VarDecl {
	decl := &ast.VarDecl{Token: typeTok, VarType: typ, Names: []*ast.Identifier{first}}
	for p.cur.Type == token.COMMA {
		p.advance()
		decl.Names = append(decl.Names, p.parseIdentifier())
	}
	p.expect(token.SEMICOLON)
	return decl
}

func (p *Parser) parseFunctionDecl(program *ast.Program, typeTok token.Token, typ types.Type, name *ast.Identifier) {
	p.expect(token.LPAREN)

	var params []*ast.Param
	if p.cur.Type != token.RPAREN {
		for {
			paramTok, paramType := p.parseType()
			paramName := p.parseIdentifier()
			params = append(params, &ast.Param{Token: paramTok, ParamType: paramType, Name: paramName})
			if p.cur.Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()

	if name.Value == "main" {
		if typ != types.Int {
			p.errors = append(p.errors, Error{Pos: typeTok.Pos, Message: "a funcao main deve ser declarada int"})
			panic(bailout{})
		}
		if len(params) > 0 {
			p.errors = append(p.errors, Error{Pos: name.Token.Pos, Message: "a funcao main nao recebe parametros"})
			panic(bailout{})
		}
		if program.Main != nil {
			p.errors = append(p.errors, Error{Pos: name.Token.Pos, Message: "funcao main redeclarada"})
			panic(bailout{})
		}
		program.Main = body
		return
	}

	program.Decls = append(program.Decls, &ast.FunctionDecl{
		Token:      typeTok,
		ReturnType: typ,
		Name:       name,
		Params:     params,
		Body:       body,
	})
}

// parseBlock parses "{ declarations commands }". Declarations must come
// before the first command.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.expect(token.LBRACE)}

	for p.cur.Type == token.INT || p.cur.Type == token.CAR {
		typeTok, typ := p.parseType()
		first := p.parseIdentifier()
		block.Decls = append(block.Decls, p.parseVarDeclRest(typeTok, typ, first))
	}

	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		block.Statements = append(block.Statements, p.parseStatement())
	}

	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.SEMICOLON:
		stmt := &ast.EmptyStatement{Token: p.cur}
		p.advance()
		return stmt
	case token.LBRACE:
		return p.parseBlock()
	case token.SE:
		return p.parseIfStatement()
	case token.ENQUANTO:
		return p.parseWhileStatement()
	case token.RETORNE:
		tok := p.cur
		p.advance()
		value := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.ReturnStatement{Token: tok, Value: value}
	case token.LEIA:
		tok := p.cur
		p.advance()
		target := p.parseIdentifier()
		p.expect(token.SEMICOLON)
		return &ast.ReadStatement{Token: tok, Target: target}
	case token.ESCREVA:
		tok := p.cur
		p.advance()
		value := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.WriteStatement{Token: tok, Value: value}
	case token.NOVALINHA:
		tok := p.cur
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.NewlineStatement{Token: tok}
	default:
		tok := p.cur
		expr := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.ExpressionStatement{Token: tok, Expression: expr}
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.expect(token.SE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.ENTAO)
	then := p.parseStatement()

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}
	if p.cur.Type == token.SENAO {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.expect(token.ENQUANTO)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.EXECUTE)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}
