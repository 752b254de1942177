package parser

import (
	"strconv"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/token"
)

// Operator tiers, loosest binding first: ou, e, relational, additive,
// multiplicative, unary. Assignment sits above all of them and is
// right-associative.

func (p *Parser) parseExpression() ast.Expression {
	left := p.parseOr()

	if p.cur.Type == token.ASSIGN {
		target, ok := left.(*ast.Identifier)
		if !ok {
			p.fail("o lado esquerdo de uma atribuicao deve ser um identificador")
		}
		assignTok := p.cur
		p.advance()
		value := p.parseExpression()
		return &ast.AssignExpression{Token: assignTok, Target: target, Value: value}
	}

	return left
}

func (p *Parser) parseOr() ast.Expression {
	return p.parseBinaryChain(p.parseAnd, token.OU)
}

func (p *Parser) parseAnd() ast.Expression {
	return p.parseBinaryChain(p.parseRelational, token.E)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseBinaryChain(p.parseAdditive,
		token.EQ, token.NEQ, token.LT, token.GT, token.LEQ, token.GEQ)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseBinaryChain(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseBinaryChain(p.parseUnary, token.ASTERISK, token.SLASH)
}

// parseBinaryChain parses a left-associative run of the given operators
// over the next-tighter level.
func (p *Parser) parseBinaryChain(next func() ast.Expression, ops ...token.TokenType) ast.Expression {
	left := next()
	for p.curIsOneOf(ops) {
		opTok := p.cur
		p.advance()
		right := next()
		left = &ast.BinaryExpression{
			Token:    opTok,
			Left:     left,
			Operator: opTok.Literal,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) curIsOneOf(ops []token.TokenType) bool {
	for _, op := range ops {
		if p.cur.Type == op {
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Type == token.MINUS || p.cur.Type == token.NOT {
		opTok := p.cur
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.INTCONST:
		tok := p.cur
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.fail("constante inteira invalida: %q", tok.Literal)
		}
		p.advance()
		return &ast.IntLiteral{Token: tok, Value: value}

	case token.CARCONST:
		// The lexeme is exactly 'c', quotes included.
		tok := p.cur
		p.advance()
		return &ast.CharLiteral{Token: tok, Value: tok.Literal[1]}

	case token.CADEIA:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}

	case token.ID:
		ident := p.parseIdentifier()
		if p.cur.Type == token.LPAREN {
			return p.parseCall(ident)
		}
		return ident

	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr

	default:
		p.fail("expressao invalida comecando em %q", p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseCall(fn *ast.Identifier) ast.Expression {
	call := &ast.CallExpression{Token: p.expect(token.LPAREN), Function: fn}

	if p.cur.Type != token.RPAREN {
		for {
			call.Arguments = append(call.Arguments, p.parseExpression())
			if p.cur.Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return call
}
