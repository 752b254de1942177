// Package codegen implements the MIPS32 code generator for Goianinha.
//
// The generator walks an analyzed AST and emits MARS/SPIM-compatible
// assembly into two append-only buffers, one for .data and one for .text.
// It rebuilds its own symbol table during the walk: every block and
// function pushes a scope, variable uses are resolved by name, and the
// chain of saved frame pointers doubles as the static link for reaching
// enclosing scopes.
//
// Register convention: $t0 carries the current expression value, $t1 the
// base pointer during variable addressing and the left operand of binary
// operations. The first four call arguments travel in $a0..$a3, the rest
// on the stack. Return values come back in $v0.
package codegen

import (
	"fmt"
	"strings"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/symtab"
)

// Generator holds the walker state for one code-generation pass. The
// analyzer must have accepted the program first: any symbol the generator
// cannot resolve is an internal inconsistency, not a user error.
type Generator struct {
	symbols *symtab.SymbolTable
	data    strings.Builder
	text    strings.Builder

	labelCount int
	varOffset  int

	// blockDepth counts the blocks opened since the enclosing function's
	// entry. retorne pops that many frames before the epilogue.
	blockDepth int

	// globalScope is true while program-level declarations are emitted.
	// Variable declarations seen there are deferred and materialized in
	// main's first block, so their storage lives in main's frame.
	globalScope     bool
	deferredGlobals []*ast.VarDecl
}

// New creates a Generator with an empty symbol table.
func New() *Generator {
	return &Generator{symbols: symtab.New()}
}

// Generate emits the program and returns the complete assembly text:
// the .data section (newline string first, then string literals in
// emission order) followed by the .text section.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	g.data.Reset()
	g.text.Reset()
	g.labelCount = 0
	g.varOffset = 0
	g.blockDepth = 0
	g.globalScope = true
	g.deferredGlobals = nil

	if err := g.genProgram(program); err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(".data\n")
	out.WriteString("__newline: .asciiz \"\\n\"\n")
	out.WriteString(g.data.String())
	out.WriteString(".text\n")
	out.WriteString(g.text.String())
	return out.String(), nil
}

// emit appends one instruction line to the .text buffer.
func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(&g.text, "  "+format+"\n", args...)
}

// emitLabel appends a label definition to the .text buffer.
func (g *Generator) emitLabel(label string) {
	fmt.Fprintf(&g.text, "%s:\n", label)
}

// emitRaw appends a directive line without indentation.
func (g *Generator) emitRaw(format string, args ...any) {
	fmt.Fprintf(&g.text, format+"\n", args...)
}

// emitData appends one entry to the .data buffer.
func (g *Generator) emitData(format string, args ...any) {
	fmt.Fprintf(&g.data, format+"\n", args...)
}

// newLabel mints a fresh label. Labels are never reused.
func (g *Generator) newLabel() string {
	label := fmt.Sprintf("L%d", g.labelCount)
	g.labelCount++
	return label
}

func (g *Generator) internalError(format string, args ...any) error {
	return fmt.Errorf("erro interno do gerador: "+format, args...)
}

func (g *Generator) genProgram(program *ast.Program) error {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			// Storage for globals is allocated in main's frame.
			g.deferredGlobals = append(g.deferredGlobals, d)
		case *ast.FunctionDecl:
			if err := g.genFunction(d); err != nil {
				return err
			}
		}
	}

	g.emitRaw(".globl main")
	g.emitLabel("main")

	// prologo de main
	g.emit("addi $sp, $sp, -4")
	g.emit("sw $ra, 4($sp)")
	g.emit("sw $fp, 0($sp)")
	g.emit("move $fp, $sp")
	g.emit("addi $sp, $sp, -4")

	g.globalScope = false
	if program.Main != nil {
		if err := g.genBlock(program.Main); err != nil {
			return err
		}
	}

	// epilogo de main e saida
	g.emit("lw $ra, 4($fp)")
	g.emit("lw $fp, 0($fp)")
	g.emit("addi $sp, $sp, 4")
	g.emit("li $v0, 10")
	g.emit("syscall")
	return nil
}

func (g *Generator) genFunction(decl *ast.FunctionDecl) error {
	savedDepth := g.blockDepth
	g.blockDepth = 0
	defer func() { g.blockDepth = savedDepth }()

	g.emitRaw(".globl %s", decl.Name.Value)
	g.emitLabel(decl.Name.Value)

	// prologo
	g.emit("addi $sp, $sp, -4")
	g.emit("sw $ra, 4($sp)")
	g.emit("sw $fp, 0($sp)")
	g.emit("move $fp, $sp")
	g.emit("addi $sp, $sp, -4")

	g.symbols.EnterScope()
	defer g.symbols.ExitScope()

	savedOffset := g.varOffset
	g.varOffset = 0
	defer func() { g.varOffset = savedOffset }()

	for i, param := range decl.Params {
		if i < 4 {
			// Register arguments get slots in the callee frame, in
			// parameter order.
			g.varOffset -= 4
			g.symbols.InsertParameter(param.Name.Value, param.ParamType, g.varOffset)
			g.emit("sw $a%d, 0($sp)", i)
			g.emit("addi $sp, $sp, -4")
		} else {
			// Stack arguments already live above the saved $fp and $ra
			// in the caller's pushes; map them, do not allocate.
			g.symbols.InsertParameter(param.Name.Value, param.ParamType, 8+4*(i-4))
		}
	}

	return g.genBlock(decl.Body)
}

// genBlock emits a block. Each block is a runtime frame of its own: the
// saved $fp makes the static-link hop count match the scope depth delta.
func (g *Generator) genBlock(block *ast.Block) error {
	g.blockDepth++
	defer func() { g.blockDepth-- }()

	g.emit("sw $fp, 0($sp)")
	g.emit("move $fp, $sp")
	g.emit("addi $sp, $sp, -4")

	g.symbols.EnterScope()
	defer g.symbols.ExitScope()

	savedOffset := g.varOffset
	g.varOffset = 0
	defer func() { g.varOffset = savedOffset }()

	if len(g.deferredGlobals) > 0 && !g.globalScope {
		for _, decl := range g.deferredGlobals {
			g.genVarDecl(decl)
		}
		g.deferredGlobals = nil
	}

	for _, decl := range block.Decls {
		g.genVarDecl(decl)
	}
	for _, stmt := range block.Statements {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}

	g.emit("move $sp, $fp")
	g.emit("lw $fp, 0($sp)")
	return nil
}

// genVarDecl reserves one stack slot per declared name and records the
// frame offset in the current scope.
func (g *Generator) genVarDecl(decl *ast.VarDecl) {
	for _, name := range decl.Names {
		g.varOffset -= 4
		g.emit("addi $sp, $sp, -4")
		g.symbols.InsertVariable(name.Value, decl.VarType, g.varOffset)
	}
}
