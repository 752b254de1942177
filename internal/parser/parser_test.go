package parser

import (
	"strings"
	"testing"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/lexer"
	"github.com/lucasreis/goianinha/internal/types"
)

func parseSource(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return program
}

func parseExpectingErrors(t *testing.T, input string) []Error {
	t.Helper()
	p := New(lexer.New(input))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected parser errors, got none")
	}
	return errs
}

func TestParseProgramStructure(t *testing.T) {
	program := parseSource(t, `
		programa {
			int x, y;
			car c;
			int soma(int a, int b) {
				retorne a + b;
			}
			int main() {
				x = soma(1, 2);
			}
		}`)

	if len(program.Decls) != 3 {
		t.Fatalf("want 3 program-level declarations, got %d", len(program.Decls))
	}
	if program.Main == nil {
		t.Fatal("program main body not set")
	}

	varDecl, ok := program.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("decl 0 is %T, want *ast.VarDecl", program.Decls[0])
	}
	if varDecl.VarType != types.Int || len(varDecl.Names) != 2 {
		t.Errorf("decl 0: want int with 2 names, got %s with %d", varDecl.VarType, len(varDecl.Names))
	}

	charDecl := program.Decls[1].(*ast.VarDecl)
	if charDecl.VarType != types.Char {
		t.Errorf("decl 1: want car, got %s", charDecl.VarType)
	}

	fn, ok := program.Decls[2].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("decl 2 is %T, want *ast.FunctionDecl", program.Decls[2])
	}
	if fn.Name.Value != "soma" || len(fn.Params) != 2 || fn.ReturnType != types.Int {
		t.Errorf("unexpected function decl: %s", fn.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 + 2 < 3 + 4", "((1 + 2) < (3 + 4))"},
		{"a == b e c != d", "((a == b) e (c != d))"},
		{"a e b ou c", "((a e b) ou c)"},
		{"-1 + 2", "((-1) + 2)"},
		{"!a e b", "((!a) e b)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 <= 2 >= 3", "((1 <= 2) >= 3)"},
	}

	for _, tt := range tests {
		program := parseSource(t, "programa { int main() { x = "+tt.input+"; } }")
		stmt := program.Main.Statements[0].(*ast.ExpressionStatement)
		assign := stmt.Expression.(*ast.AssignExpression)
		if got := assign.Value.String(); got != tt.expected {
			t.Errorf("%q parsed as %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	program := parseSource(t, "programa { int main() { a = b = 2; } }")
	stmt := program.Main.Statements[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignExpression)
	if assign.Target.Value != "a" {
		t.Fatalf("outer target = %q, want a", assign.Target.Value)
	}
	inner, ok := assign.Value.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("inner expression is %T, want *ast.AssignExpression", assign.Value)
	}
	if inner.Target.Value != "b" {
		t.Errorf("inner target = %q, want b", inner.Target.Value)
	}
}

func TestIfElseBinding(t *testing.T) {
	program := parseSource(t, `
		programa {
			int main() {
				se (1) entao
					escreva 1;
				senao
					escreva 2;
			}
		}`)

	stmt, ok := program.Main.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", program.Main.Statements[0])
	}
	if stmt.Else == nil {
		t.Error("else branch missing")
	}
}

func TestIfWithoutElse(t *testing.T) {
	program := parseSource(t, "programa { int main() { se (1) entao escreva 1; } }")
	stmt := program.Main.Statements[0].(*ast.IfStatement)
	if stmt.Else != nil {
		t.Error("unexpected else branch")
	}
}

func TestWhileStatement(t *testing.T) {
	program := parseSource(t, `
		programa {
			int main() {
				int i;
				i = 0;
				enquanto (i < 10) execute {
					i = i + 1;
				}
			}
		}`)

	stmt, ok := program.Main.Statements[1].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStatement", program.Main.Statements[1])
	}
	if _, ok := stmt.Body.(*ast.Block); !ok {
		t.Errorf("while body is %T, want *ast.Block", stmt.Body)
	}
}

func TestCallWithFiveArguments(t *testing.T) {
	program := parseSource(t, `
		programa {
			int f(int a, int b, int c, int d, int e1) { retorne a; }
			int main() { x = f(1, 2, 3, 4, 5); }
		}`)

	stmt := program.Main.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expression.(*ast.AssignExpression).Value.(*ast.CallExpression)
	if len(call.Arguments) != 5 {
		t.Errorf("want 5 arguments, got %d", len(call.Arguments))
	}
}

func TestCharAndStringLiterals(t *testing.T) {
	program := parseSource(t, `
		programa {
			int main() {
				c = 'A';
				escreva "ola mundo";
			}
		}`)

	assign := program.Main.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AssignExpression)
	ch, ok := assign.Value.(*ast.CharLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.CharLiteral", assign.Value)
	}
	if ch.Value != 'A' {
		t.Errorf("char value = %q, want 'A'", ch.Value)
	}

	write := program.Main.Statements[1].(*ast.WriteStatement)
	str, ok := write.Value.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("escreva operand is %T, want *ast.StringLiteral", write.Value)
	}
	if str.Value != "ola mundo" {
		t.Errorf("string value = %q", str.Value)
	}
}

func TestBlockDeclarationsBeforeStatements(t *testing.T) {
	program := parseSource(t, `
		programa {
			int main() {
				int a;
				car b;
				a = 1;
			}
		}`)

	if len(program.Main.Decls) != 2 {
		t.Errorf("want 2 block declarations, got %d", len(program.Main.Decls))
	}
	if len(program.Main.Statements) != 1 {
		t.Errorf("want 1 statement, got %d", len(program.Main.Statements))
	}
}

func TestMissingMain(t *testing.T) {
	errs := parseExpectingErrors(t, "programa { int x; }")
	if !strings.Contains(errs[0].Message, "main") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestMainWithParametersRejected(t *testing.T) {
	errs := parseExpectingErrors(t, "programa { int main(int x) { } }")
	if !strings.Contains(errs[0].Message, "parametros") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestMainMustBeInt(t *testing.T) {
	errs := parseExpectingErrors(t, "programa { car main() { } }")
	if !strings.Contains(errs[0].Message, "int") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestSyntaxErrorStopsParsing(t *testing.T) {
	errs := parseExpectingErrors(t, "programa { int main() { x = ; } }")
	if len(errs) != 1 {
		t.Errorf("want exactly 1 error (no recovery), got %d: %v", len(errs), errs)
	}
}

func TestErrorPositions(t *testing.T) {
	errs := parseExpectingErrors(t, "programa {\nint main() {\nx = ;\n}\n}")
	if errs[0].Pos.Line != 3 {
		t.Errorf("error line = %d, want 3", errs[0].Pos.Line)
	}
}
