package ast

import (
	"bytes"
	"strings"

	"github.com/lucasreis/goianinha/internal/token"
	"github.com/lucasreis/goianinha/internal/types"
)

// VarDecl represents "tipo id1, id2, ...;" at program level or inside a
// block. The original grammar chains the identifiers with sibling links;
// here they live in Names, in source order.
type VarDecl struct {
	Token   token.Token // the INT or CAR token
	VarType types.Type
	Names   []*Identifier
}

func (vd *VarDecl) declarationNode()     {}
func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) Pos() token.Position  { return vd.Token.Pos }

func (vd *VarDecl) String() string {
	names := make([]string, 0, len(vd.Names))
	for _, n := range vd.Names {
		names = append(names, n.Value)
	}
	return vd.VarType.String() + " " + strings.Join(names, ", ") + ";"
}

// Param is one formal parameter of a function declaration.
type Param struct {
	Token     token.Token // the INT or CAR token
	ParamType types.Type
	Name      *Identifier
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() token.Position  { return p.Token.Pos }
func (p *Param) String() string       { return p.ParamType.String() + " " + p.Name.Value }

// FunctionDecl represents a program-level function declaration. Goianinha
// has no nested functions; the parser only produces these at program level.
type FunctionDecl struct {
	Token      token.Token // the return type token
	ReturnType types.Type
	Name       *Identifier
	Params     []*Param
	Body       *Block
}

func (fd *FunctionDecl) declarationNode()     {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDecl) Pos() token.Position  { return fd.Token.Pos }

func (fd *FunctionDecl) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(fd.Params))
	for _, p := range fd.Params {
		params = append(params, p.String())
	}
	out.WriteString(fd.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(fd.Name.Value)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fd.Body.String())
	return out.String()
}
