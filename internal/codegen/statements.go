package codegen

import (
	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/types"
)

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return g.genBlock(s)

	case *ast.ExpressionStatement:
		return g.genExpression(s.Expression)

	case *ast.IfStatement:
		return g.genIf(s)

	case *ast.WhileStatement:
		return g.genWhile(s)

	case *ast.ReturnStatement:
		return g.genReturn(s)

	case *ast.ReadStatement:
		return g.genRead(s)

	case *ast.WriteStatement:
		return g.genWrite(s)

	case *ast.NewlineStatement:
		g.emit("li $v0, 4")
		g.emit("la $a0, __newline")
		g.emit("syscall")
		return nil

	case *ast.EmptyStatement:
		return nil

	default:
		return g.internalError("comando desconhecido %T", stmt)
	}
}

func (g *Generator) genIf(stmt *ast.IfStatement) error {
	if stmt.Else == nil {
		labelEnd := g.newLabel()
		if err := g.genExpression(stmt.Condition); err != nil {
			return err
		}
		g.emit("beq $t0, $zero, %s", labelEnd)
		if err := g.genStatement(stmt.Then); err != nil {
			return err
		}
		g.emitLabel(labelEnd)
		return nil
	}

	labelElse := g.newLabel()
	labelEnd := g.newLabel()

	if err := g.genExpression(stmt.Condition); err != nil {
		return err
	}
	g.emit("beq $t0, $zero, %s", labelElse)
	if err := g.genStatement(stmt.Then); err != nil {
		return err
	}
	g.emit("j %s", labelEnd)
	g.emitLabel(labelElse)
	if err := g.genStatement(stmt.Else); err != nil {
		return err
	}
	g.emitLabel(labelEnd)
	return nil
}

func (g *Generator) genWhile(stmt *ast.WhileStatement) error {
	labelStart := g.newLabel()
	labelEnd := g.newLabel()

	g.emitLabel(labelStart)
	if err := g.genExpression(stmt.Condition); err != nil {
		return err
	}
	g.emit("beq $t0, $zero, %s", labelEnd)
	if err := g.genStatement(stmt.Body); err != nil {
		return err
	}
	g.emit("j %s", labelStart)
	g.emitLabel(labelEnd)
	return nil
}

// genReturn moves the value to $v0, unwinds the block frames opened since
// function entry, and emits the function epilogue.
func (g *Generator) genReturn(stmt *ast.ReturnStatement) error {
	if err := g.genExpression(stmt.Value); err != nil {
		return err
	}
	g.emit("move $v0, $t0")

	for i := 0; i < g.blockDepth; i++ {
		g.emit("lw $fp, 0($fp)")
	}
	g.emit("move $sp, $fp")
	g.emit("lw $ra, 4($sp)")
	g.emit("lw $fp, 0($sp)")
	g.emit("addi $sp, $sp, 4")
	g.emit("jr $ra")
	return nil
}

func (g *Generator) genRead(stmt *ast.ReadStatement) error {
	g.emit("li $v0, 5")
	g.emit("syscall")

	offset, err := g.variableAddress(stmt.Target.Value)
	if err != nil {
		return err
	}
	g.emit("sw $v0, %d($t1)", offset)
	return nil
}

func (g *Generator) genWrite(stmt *ast.WriteStatement) error {
	if str, ok := stmt.Value.(*ast.StringLiteral); ok {
		label := g.newLabel()
		g.emitData("%s: .asciiz \"%s\"", label, str.Value)
		g.emit("li $v0, 4")
		g.emit("la $a0, %s", label)
		g.emit("syscall")
		return nil
	}

	if err := g.genExpression(stmt.Value); err != nil {
		return err
	}

	// print_int unless the operand is a car variable, which prints as a
	// character.
	syscall := 1
	if ident, ok := stmt.Value.(*ast.Identifier); ok {
		sym := g.symbols.Lookup(ident.Value)
		if sym == nil {
			return g.internalError("variavel '%s' nao encontrada", ident.Value)
		}
		if sym.DataType == types.Char {
			syscall = 11
		}
	}

	g.emit("li $v0, %d", syscall)
	g.emit("move $a0, $t0")
	g.emit("syscall")
	return nil
}
