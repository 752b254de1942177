package semantic

import (
	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/errors"
	"github.com/lucasreis/goianinha/internal/symtab"
	"github.com/lucasreis/goianinha/internal/types"
)

// analyzeExpression infers the data type of expr, annotates the node with
// it, and returns it.
func (a *Analyzer) analyzeExpression(expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		e.SetType(types.Int)
		return types.Int, nil

	case *ast.CharLiteral:
		e.SetType(types.Char)
		return types.Char, nil

	case *ast.StringLiteral:
		// A string constant is only meaningful as an argument to escreva;
		// for type purposes it behaves as car.
		e.SetType(types.Char)
		return types.Char, nil

	case *ast.Identifier:
		sym := a.symbols.Lookup(e.Value)
		if sym == nil {
			return types.Unknown, errors.NewSemanticError(e.Pos().Line,
				"variavel '%s' nao declarada", e.Value)
		}
		e.SetType(sym.DataType)
		return sym.DataType, nil

	case *ast.BinaryExpression:
		return a.analyzeBinary(e)

	case *ast.UnaryExpression:
		operandType, err := a.analyzeExpression(e.Operand)
		if err != nil {
			return types.Unknown, err
		}
		if operandType != types.Int {
			return types.Unknown, errors.NewSemanticError(e.Pos().Line,
				"o operador unario '%s' exige operando int, obteve %s",
				e.Operator, operandType)
		}
		e.SetType(types.Int)
		return types.Int, nil

	case *ast.AssignExpression:
		return a.analyzeAssign(e)

	case *ast.CallExpression:
		return a.analyzeCall(e)

	default:
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"expressao desconhecida %T", expr)
	}
}

func (a *Analyzer) analyzeBinary(expr *ast.BinaryExpression) (types.Type, error) {
	leftType, err := a.analyzeExpression(expr.Left)
	if err != nil {
		return types.Unknown, err
	}
	rightType, err := a.analyzeExpression(expr.Right)
	if err != nil {
		return types.Unknown, err
	}

	switch expr.Operator {
	case "+", "-", "*", "/":
		if leftType != types.Int || rightType != types.Int {
			return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
				"o operador '%s' exige operandos int (%s %s %s)",
				expr.Operator, leftType, expr.Operator, rightType)
		}

	case "==", "!=", "<", ">", "<=", ">=":
		if leftType != rightType || leftType == types.Void {
			return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
				"operandos incompativeis para '%s' (%s %s %s)",
				expr.Operator, leftType, expr.Operator, rightType)
		}

	case "e", "ou":
		if leftType != types.Int || rightType != types.Int {
			return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
				"o operador '%s' exige operandos int (%s %s %s)",
				expr.Operator, leftType, expr.Operator, rightType)
		}

	default:
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"operador binario desconhecido '%s'", expr.Operator)
	}

	// Every binary operator yields int: relationals and logicals produce
	// 0 or 1.
	expr.SetType(types.Int)
	return types.Int, nil
}

func (a *Analyzer) analyzeAssign(expr *ast.AssignExpression) (types.Type, error) {
	sym := a.symbols.Lookup(expr.Target.Value)
	if sym == nil {
		return types.Unknown, errors.NewSemanticError(expr.Target.Pos().Line,
			"variavel '%s' nao declarada", expr.Target.Value)
	}
	expr.Target.SetType(sym.DataType)

	valueType, err := a.analyzeExpression(expr.Value)
	if err != nil {
		return types.Unknown, err
	}
	if valueType != sym.DataType {
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"tipos incompativeis na atribuicao a '%s' (%s = %s)",
			expr.Target.Value, sym.DataType, valueType)
	}

	expr.SetType(sym.DataType)
	return sym.DataType, nil
}

func (a *Analyzer) analyzeCall(expr *ast.CallExpression) (types.Type, error) {
	name := expr.Function.Value

	sym := a.symbols.Lookup(name)
	if sym == nil {
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"funcao '%s' nao declarada", name)
	}
	if sym.Kind != symtab.Function {
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"'%s' nao e uma funcao", name)
	}

	if len(expr.Arguments) != sym.NumParams {
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"a funcao '%s' espera %d argumento(s), recebeu %d",
			name, sym.NumParams, len(expr.Arguments))
	}

	// Argument types are checked against the formals of the declaration
	// node. Functions only exist at program level, so the program's
	// declaration list is the single place to look.
	decl := a.findFunctionDecl(name)
	if decl == nil {
		return types.Unknown, errors.NewSemanticError(expr.Pos().Line,
			"funcao '%s' nao declarada", name)
	}

	for i, arg := range expr.Arguments {
		argType, err := a.analyzeExpression(arg)
		if err != nil {
			return types.Unknown, err
		}
		if argType != decl.Params[i].ParamType {
			return types.Unknown, errors.NewSemanticError(arg.Pos().Line,
				"o argumento %d de '%s' deve ser %s, obteve %s",
				i+1, name, decl.Params[i].ParamType, argType)
		}
	}

	expr.Function.SetType(sym.DataType)
	expr.SetType(sym.DataType)
	return sym.DataType, nil
}

// findFunctionDecl resolves the declaration node of a program-level
// function by name. Goianinha has no nested functions.
func (a *Analyzer) findFunctionDecl(name string) *ast.FunctionDecl {
	for _, decl := range a.program.Decls {
		if fn, ok := decl.(*ast.FunctionDecl); ok && fn.Name.Value == name {
			return fn
		}
	}
	return nil
}
