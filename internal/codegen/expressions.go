package codegen

import (
	"github.com/lucasreis/goianinha/internal/ast"
)

// genExpression emits code that leaves the expression's value in $t0.
func (g *Generator) genExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		g.emit("li $t0, %d", e.Value)
		return nil

	case *ast.CharLiteral:
		g.emit("li $t0, %d", e.Value)
		return nil

	case *ast.Identifier:
		offset, err := g.variableAddress(e.Value)
		if err != nil {
			return err
		}
		g.emit("lw $t0, %d($t1)", offset)
		return nil

	case *ast.BinaryExpression:
		return g.genBinary(e)

	case *ast.UnaryExpression:
		return g.genUnary(e)

	case *ast.AssignExpression:
		return g.genAssign(e)

	case *ast.CallExpression:
		return g.genCall(e)

	default:
		return g.internalError("expressao desconhecida %T", expr)
	}
}

// genBinary evaluates the left operand, parks it on the stack while the
// right operand is evaluated, then applies the operator with the left
// value in $t1 and the right value in $t0.
func (g *Generator) genBinary(expr *ast.BinaryExpression) error {
	if err := g.genExpression(expr.Left); err != nil {
		return err
	}
	g.emit("sw $t0, 0($sp)")
	g.emit("addi $sp, $sp, -4")

	if err := g.genExpression(expr.Right); err != nil {
		return err
	}
	g.emit("lw $t1, 4($sp)")

	switch expr.Operator {
	case "+":
		g.emit("add $t0, $t1, $t0")
	case "-":
		g.emit("sub $t0, $t1, $t0")
	case "*":
		g.emit("mult $t1, $t0")
		g.emit("mflo $t0")
	case "/":
		g.emit("div $t1, $t0")
		g.emit("mflo $t0")
	case "==":
		g.emit("sub $t0, $t1, $t0")
		g.emit("sltiu $t0, $t0, 1")
	case "!=":
		g.emit("sub $t0, $t1, $t0")
		g.emit("sltu $t0, $zero, $t0")
	case ">":
		g.emit("slt $t0, $t0, $t1")
	case "<":
		g.emit("slt $t0, $t1, $t0")
	case "<=":
		// a <= b  ==  !(a > b)
		g.emit("slt $t0, $t0, $t1")
		g.emit("xori $t0, $t0, 1")
	case ">=":
		// a >= b  ==  !(a < b)
		g.emit("slt $t0, $t1, $t0")
		g.emit("xori $t0, $t0, 1")
	case "e":
		// normalize both operands to 0/1 before the bitwise and
		g.emit("sltu $t1, $zero, $t1")
		g.emit("sltu $t0, $zero, $t0")
		g.emit("and $t0, $t1, $t0")
	case "ou":
		g.emit("or $t0, $t1, $t0")
		g.emit("sltu $t0, $zero, $t0")
	default:
		return g.internalError("operador binario desconhecido '%s'", expr.Operator)
	}

	g.emit("addi $sp, $sp, 4")
	return nil
}

func (g *Generator) genUnary(expr *ast.UnaryExpression) error {
	if err := g.genExpression(expr.Operand); err != nil {
		return err
	}

	switch expr.Operator {
	case "-":
		g.emit("neg $t0, $t0")
	case "!":
		g.emit("sltiu $t0, $t0, 1")
	default:
		return g.internalError("operador unario desconhecido '%s'", expr.Operator)
	}
	return nil
}

// genAssign evaluates the right-hand side, then stores $t0 through the
// target's frame slot. The assigned value stays in $t0.
func (g *Generator) genAssign(expr *ast.AssignExpression) error {
	if err := g.genExpression(expr.Value); err != nil {
		return err
	}

	offset, err := g.variableAddress(expr.Target.Value)
	if err != nil {
		return err
	}
	g.emit("sw $t0, %d($t1)", offset)
	return nil
}

// genCall places the first four arguments in $a0..$a3 and pushes the rest
// on the stack in traversal order. The caller pops its stack arguments
// after the jump returns.
func (g *Generator) genCall(expr *ast.CallExpression) error {
	stackBytes := 0

	for i, arg := range expr.Arguments {
		if err := g.genExpression(arg); err != nil {
			return err
		}
		if i < 4 {
			g.emit("move $a%d, $t0", i)
		} else {
			g.emit("sw $t0, 0($sp)")
			g.emit("addi $sp, $sp, -4")
			stackBytes += 4
		}
	}

	g.emit("jal %s", expr.Function.Value)

	if stackBytes > 0 {
		g.emit("addi $sp, $sp, %d", stackBytes)
	}
	g.emit("move $t0, $v0")
	return nil
}

// variableAddress emits the static-link walk that leaves the owning
// frame's pointer in $t1 and returns the variable's offset in that frame.
// The hop count is the difference between the current scope depth and the
// symbol's declaration depth; a negative difference means the two passes
// disagree, which is a compiler bug.
func (g *Generator) variableAddress(name string) (int, error) {
	sym := g.symbols.Lookup(name)
	if sym == nil {
		return 0, g.internalError("variavel '%s' nao encontrada", name)
	}

	delta := g.symbols.ScopeCount() - sym.DeclarationDepth
	if delta < 0 {
		return 0, g.internalError(
			"profundidade da variavel '%s' maior que a profundidade atual", name)
	}

	g.emit("move $t1, $fp")
	for i := 0; i < delta; i++ {
		g.emit("lw $t1, 0($t1)")
	}
	return sym.Position, nil
}
