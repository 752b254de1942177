// Package semantic implements the semantic analyzer for Goianinha.
//
// The analyzer walks the AST once, maintaining a lexically scoped symbol
// table, and checks declaration, scoping, type and arity rules. Expression
// nodes are annotated in place with their inferred data type. Analysis
// stops at the first rule violation: the language defines no error
// accumulation and no recovery.
package semantic

import (
	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/errors"
	"github.com/lucasreis/goianinha/internal/symtab"
	"github.com/lucasreis/goianinha/internal/types"
)

// Analyzer holds the walker state for one analysis pass. A fresh Analyzer
// is used per compilation; the symbol table it builds is discarded when
// the pass completes.
type Analyzer struct {
	symbols *symtab.SymbolTable
	program *ast.Program

	// currentReturnType is the declared return type of the function whose
	// body is being walked. The main body checks against int.
	currentReturnType types.Type

	// frameOffset tracks the next local slot during declaration handling.
	// It moves only for variable and parameter declarations; the code
	// generator recomputes offsets during its own pass.
	frameOffset int
}

// NewAnalyzer creates an analyzer with an empty symbol table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: symtab.New()}
}

// Analyze checks the whole program. It returns nil on success or the
// first *errors.SemanticError encountered.
func (a *Analyzer) Analyze(program *ast.Program) error {
	a.program = program

	a.symbols.EnterScope() // global scope, established before the walk
	defer a.symbols.ExitScope()

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			if err := a.analyzeVarDecl(d); err != nil {
				return err
			}
		case *ast.FunctionDecl:
			if err := a.analyzeFunctionDecl(d); err != nil {
				return err
			}
		}
	}

	if program.Main != nil {
		a.currentReturnType = types.Int // main is declared int
		if err := a.analyzeBlock(program.Main, false); err != nil {
			return err
		}
	}

	return nil
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl) error {
	for _, name := range decl.Names {
		if a.symbols.LookupCurrentScope(name.Value) != nil {
			return errors.NewSemanticError(name.Pos().Line,
				"redeclaracao de '%s' no mesmo escopo", name.Value)
		}
		a.frameOffset -= 4
		a.symbols.InsertVariable(name.Value, decl.VarType, a.frameOffset)
		name.SetType(decl.VarType)
	}
	return nil
}

func (a *Analyzer) analyzeFunctionDecl(decl *ast.FunctionDecl) error {
	if !a.symbols.InsertFunction(decl.Name.Value, len(decl.Params), decl.ReturnType) {
		return errors.NewSemanticError(decl.Name.Pos().Line,
			"redeclaracao de '%s' no mesmo escopo", decl.Name.Value)
	}
	decl.Name.SetType(decl.ReturnType)

	// Parameters and the body's locals share one scope.
	a.symbols.EnterScope()
	defer a.symbols.ExitScope()

	savedOffset := a.frameOffset
	savedReturnType := a.currentReturnType
	a.frameOffset = 0
	a.currentReturnType = decl.ReturnType
	defer func() {
		a.frameOffset = savedOffset
		a.currentReturnType = savedReturnType
	}()

	for _, param := range decl.Params {
		if a.symbols.LookupCurrentScope(param.Name.Value) != nil {
			return errors.NewSemanticError(param.Name.Pos().Line,
				"redeclaracao de '%s' no mesmo escopo", param.Name.Value)
		}
		a.frameOffset -= 4
		a.symbols.InsertParameter(param.Name.Value, param.ParamType, a.frameOffset)
		param.Name.SetType(param.ParamType)
	}

	return a.analyzeBlock(decl.Body, true)
}

// analyzeBlock walks one block. A function body does not open a scope of
// its own: it lives in the scope that already holds the parameters.
func (a *Analyzer) analyzeBlock(block *ast.Block, isFunctionBody bool) error {
	if !isFunctionBody {
		a.symbols.EnterScope()
		defer a.symbols.ExitScope()
	}

	for _, decl := range block.Decls {
		if err := a.analyzeVarDecl(decl); err != nil {
			return err
		}
	}
	for _, stmt := range block.Statements {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return a.analyzeBlock(s, false)

	case *ast.ExpressionStatement:
		_, err := a.analyzeExpression(s.Expression)
		return err

	case *ast.IfStatement:
		condType, err := a.analyzeExpression(s.Condition)
		if err != nil {
			return err
		}
		if condType != types.Int {
			return errors.NewSemanticError(s.Pos().Line,
				"a condicao do 'se' deve ser int, obteve %s", condType)
		}
		if err := a.analyzeStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.analyzeStatement(s.Else)
		}
		return nil

	case *ast.WhileStatement:
		condType, err := a.analyzeExpression(s.Condition)
		if err != nil {
			return err
		}
		if condType != types.Int {
			return errors.NewSemanticError(s.Pos().Line,
				"a condicao do 'enquanto' deve ser int, obteve %s", condType)
		}
		return a.analyzeStatement(s.Body)

	case *ast.ReturnStatement:
		valueType, err := a.analyzeExpression(s.Value)
		if err != nil {
			return err
		}
		if valueType != a.currentReturnType {
			return errors.NewSemanticError(s.Pos().Line,
				"o tipo do retorno (%s) difere do tipo da funcao (%s)",
				valueType, a.currentReturnType)
		}
		return nil

	case *ast.ReadStatement:
		sym := a.symbols.Lookup(s.Target.Value)
		if sym == nil {
			return errors.NewSemanticError(s.Target.Pos().Line,
				"variavel '%s' nao declarada", s.Target.Value)
		}
		s.Target.SetType(sym.DataType)
		return nil

	case *ast.WriteStatement:
		_, err := a.analyzeExpression(s.Value)
		return err

	case *ast.NewlineStatement, *ast.EmptyStatement:
		return nil

	default:
		return errors.NewSemanticError(stmt.Pos().Line,
			"comando desconhecido %T", stmt)
	}
}
