package ast

import (
	"bytes"

	"github.com/lucasreis/goianinha/internal/token"
)

// IfStatement represents "se (cond) entao cmd" with an optional
// "senao cmd" branch (Else is nil when absent).
type IfStatement struct {
	Token     token.Token // the SE token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }

func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("se (")
	out.WriteString(is.Condition.String())
	out.WriteString(") entao ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" senao ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// WhileStatement represents "enquanto (cond) execute cmd".
type WhileStatement struct {
	Token     token.Token // the ENQUANTO token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }

func (ws *WhileStatement) String() string {
	return "enquanto (" + ws.Condition.String() + ") execute " + ws.Body.String()
}
