package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree rooted at node as indented text, one node per
// line, with the source line and the lexeme where one exists. Used by the
// "goianinha ast" subcommand.
func Dump(node Node) string {
	var sb strings.Builder
	dumpNode(&sb, node, 0)
	return sb.String()
}

func dumpLine(sb *strings.Builder, depth int, kind, value string, line int) {
	indent := strings.Repeat("  ", depth)
	if value != "" {
		fmt.Fprintf(sb, "%s- %s (linha %d, valor: %s)\n", indent, kind, line, value)
	} else {
		fmt.Fprintf(sb, "%s- %s (linha %d)\n", indent, kind, line)
	}
}

func dumpNode(sb *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		dumpLine(sb, depth, "Programa", "", n.Pos().Line)
		for _, d := range n.Decls {
			dumpNode(sb, d, depth+1)
		}
		if n.Main != nil {
			dumpLine(sb, depth+1, "Main", "", n.Main.Pos().Line)
			dumpNode(sb, n.Main, depth+2)
		}
	case *VarDecl:
		dumpLine(sb, depth, "DeclVar", n.VarType.String(), n.Pos().Line)
		for _, name := range n.Names {
			dumpNode(sb, name, depth+1)
		}
	case *FunctionDecl:
		dumpLine(sb, depth, "DeclFunc", n.Name.Value, n.Pos().Line)
		for _, p := range n.Params {
			dumpLine(sb, depth+1, "Parametro", p.Name.Value+" : "+p.ParamType.String(), p.Pos().Line)
		}
		dumpNode(sb, n.Body, depth+1)
	case *Block:
		dumpLine(sb, depth, "Bloco", "", n.Pos().Line)
		for _, d := range n.Decls {
			dumpNode(sb, d, depth+1)
		}
		for _, s := range n.Statements {
			dumpNode(sb, s, depth+1)
		}
	case *ExpressionStatement:
		dumpNode(sb, n.Expression, depth)
	case *IfStatement:
		if n.Else != nil {
			dumpLine(sb, depth, "ComandoSeSenao", "", n.Pos().Line)
		} else {
			dumpLine(sb, depth, "ComandoSe", "", n.Pos().Line)
		}
		dumpNode(sb, n.Condition, depth+1)
		dumpNode(sb, n.Then, depth+1)
		dumpNode(sb, n.Else, depth+1)
	case *WhileStatement:
		dumpLine(sb, depth, "ComandoEnquanto", "", n.Pos().Line)
		dumpNode(sb, n.Condition, depth+1)
		dumpNode(sb, n.Body, depth+1)
	case *ReturnStatement:
		dumpLine(sb, depth, "ComandoRetorne", "", n.Pos().Line)
		dumpNode(sb, n.Value, depth+1)
	case *ReadStatement:
		dumpLine(sb, depth, "ComandoLeia", "", n.Pos().Line)
		dumpNode(sb, n.Target, depth+1)
	case *WriteStatement:
		dumpLine(sb, depth, "ComandoEscreva", "", n.Pos().Line)
		dumpNode(sb, n.Value, depth+1)
	case *NewlineStatement:
		dumpLine(sb, depth, "ComandoNovalinha", "", n.Pos().Line)
	case *EmptyStatement:
		dumpLine(sb, depth, "ComandoVazio", "", n.Pos().Line)
	case *AssignExpression:
		dumpLine(sb, depth, "ComandoAtrib", "", n.Pos().Line)
		dumpNode(sb, n.Target, depth+1)
		dumpNode(sb, n.Value, depth+1)
	case *BinaryExpression:
		dumpLine(sb, depth, "ExprBinaria", n.Operator, n.Pos().Line)
		dumpNode(sb, n.Left, depth+1)
		dumpNode(sb, n.Right, depth+1)
	case *UnaryExpression:
		dumpLine(sb, depth, "ExprUnaria", n.Operator, n.Pos().Line)
		dumpNode(sb, n.Operand, depth+1)
	case *CallExpression:
		dumpLine(sb, depth, "ExprChamadaFunc", n.Function.Value, n.Pos().Line)
		for _, a := range n.Arguments {
			dumpNode(sb, a, depth+1)
		}
	case *Identifier:
		dumpLine(sb, depth, "ExprId", n.Value, n.Pos().Line)
	case *IntLiteral:
		dumpLine(sb, depth, "ConstInt", n.Token.Literal, n.Pos().Line)
	case *CharLiteral:
		dumpLine(sb, depth, "ConstCar", n.String(), n.Pos().Line)
	case *StringLiteral:
		dumpLine(sb, depth, "ConstCadeia", n.String(), n.Pos().Line)
	default:
		fmt.Fprintf(sb, "%s- %T\n", strings.Repeat("  ", depth), node)
	}
}
