package semantic

import (
	"strings"
	"testing"

	"github.com/lucasreis/goianinha/internal/ast"
	"github.com/lucasreis/goianinha/internal/errors"
	"github.com/lucasreis/goianinha/internal/lexer"
	"github.com/lucasreis/goianinha/internal/parser"
	"github.com/lucasreis/goianinha/internal/types"
)

func analyzeSource(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return program, NewAnalyzer().Analyze(program)
}

func expectNoErrors(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := analyzeSource(t, input)
	if err != nil {
		t.Fatalf("expected no errors, got: %v", err)
	}
	return program
}

func expectSemanticError(t *testing.T, input, fragment string, line int) {
	t.Helper()
	_, err := analyzeSource(t, input)
	if err == nil {
		t.Fatalf("expected error containing %q, got none", fragment)
	}
	semErr, ok := err.(*errors.SemanticError)
	if !ok {
		t.Fatalf("error is %T, want *errors.SemanticError", err)
	}
	if !strings.Contains(semErr.Message, fragment) {
		t.Errorf("error %q does not contain %q", semErr.Message, fragment)
	}
	if line > 0 && semErr.Line != line {
		t.Errorf("error line = %d, want %d", semErr.Line, line)
	}
}

func TestValidProgram(t *testing.T) {
	expectNoErrors(t, `
		programa {
			int x;
			int fatorial(int n) {
				se (n <= 1) entao
					retorne 1;
				retorne n * fatorial(n - 1);
			}
			int main() {
				x = fatorial(5);
				escreva x;
				novalinha;
			}
		}`)
}

func TestExpressionAnnotation(t *testing.T) {
	program := expectNoErrors(t, `
		programa {
			car c;
			int main() {
				c = 'A';
				escreva c;
			}
		}`)

	assign := program.Main.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AssignExpression)
	if assign.GetType() != types.Char {
		t.Errorf("assignment type = %s, want car", assign.GetType())
	}
	if assign.Target.GetType() != types.Char {
		t.Errorf("target type = %s, want car", assign.Target.GetType())
	}
	if assign.Value.GetType() != types.Char {
		t.Errorf("value type = %s, want car", assign.Value.GetType())
	}

	write := program.Main.Statements[1].(*ast.WriteStatement)
	if write.Value.GetType() != types.Char {
		t.Errorf("escreva operand type = %s, want car", write.Value.GetType())
	}
}

func TestBinaryExpressionsAreInt(t *testing.T) {
	program := expectNoErrors(t, `
		programa {
			int a, b;
			int main() {
				a = 1 + 2 * 3;
				b = a < 10;
				b = a == 7 e b != 0;
			}
		}`)

	for i, stmt := range program.Main.Statements {
		assign := stmt.(*ast.ExpressionStatement).Expression.(*ast.AssignExpression)
		if assign.Value.GetType() != types.Int {
			t.Errorf("statement %d: value type = %s, want int", i, assign.Value.GetType())
		}
	}
}

func TestUndeclaredVariable(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int main() {
				x = 1;
			}
		}`, "nao declarada", 4)
}

func TestUndeclaredVariableInExpression(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int x;
			int main() {
				x = y + 1;
			}
		}`, "nao declarada", 5)
}

func TestRedeclarationSameScope(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int main() {
				int x;
				int x;
			}
		}`, "redeclaracao", 5)
}

func TestRedeclarationInOneList(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int main() {
				int x, x;
			}
		}`, "redeclaracao", 4)
}

func TestShadowingInInnerBlockIsAllowed(t *testing.T) {
	expectNoErrors(t, `
		programa {
			int main() {
				int x;
				x = 1;
				{
					car x;
					x = 'a';
				}
				x = 2;
			}
		}`)
}

func TestAssignmentTypeMismatch(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int x;
			int main() {
				x = 'a';
			}
		}`, "tipos incompativeis", 5)
}

func TestArithmeticRequiresInt(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car c;
			int x;
			int main() {
				c = 'a';
				x = c + 1;
			}
		}`, "exige operandos int", 7)
}

func TestRelationalOperandsMustMatch(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car c;
			int x;
			int main() {
				c = 'a';
				x = c == 1;
			}
		}`, "operandos incompativeis", 7)
}

func TestRelationalSameTypeCharIsAllowed(t *testing.T) {
	expectNoErrors(t, `
		programa {
			car c, d;
			int x;
			int main() {
				c = 'a';
				d = 'b';
				x = c == d;
			}
		}`)
}

func TestUnaryRequiresInt(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car c;
			int x;
			int main() {
				c = 'a';
				x = -c;
			}
		}`, "unario", 7)
}

func TestConditionMustBeIntInIf(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car c;
			int main() {
				c = 'a';
				se (c) entao escreva 1;
			}
		}`, "condicao do 'se'", 6)
}

func TestConditionMustBeIntInWhile(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car c;
			int main() {
				c = 'a';
				enquanto (c) execute escreva 1;
			}
		}`, "condicao do 'enquanto'", 6)
}

func TestReturnTypeMismatch(t *testing.T) {
	expectSemanticError(t, `
		programa {
			car letra() {
				retorne 1;
			}
			int main() {
				escreva letra();
			}
		}`, "retorno", 4)
}

func TestReturnTypeInMainIsInt(t *testing.T) {
	expectNoErrors(t, `
		programa {
			int main() {
				retorne 0;
			}
		}`)
}

func TestArityMismatch(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int f(int x) {
				retorne x;
			}
			int main() {
				f(1, 2);
			}
		}`, "espera 1 argumento(s), recebeu 2", 7)
}

func TestArgumentTypeMismatch(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int f(int x) {
				retorne x;
			}
			int main() {
				f('a');
			}
		}`, "o argumento 1 de 'f' deve ser int", 7)
}

func TestCallUndeclaredFunction(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int main() {
				g(1);
			}
		}`, "funcao 'g' nao declarada", 4)
}

func TestCallingAVariableIsAnError(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int x;
			int main() {
				x(1);
			}
		}`, "nao e uma funcao", 5)
}

func TestParameterSharesScopeWithBody(t *testing.T) {
	// A local redeclaring a parameter collides: both live in one scope.
	expectSemanticError(t, `
		programa {
			int f(int n) {
				int n;
				retorne n;
			}
			int main() {
				f(1);
			}
		}`, "redeclaracao", 4)
}

func TestParameterVisibleInBody(t *testing.T) {
	expectNoErrors(t, `
		programa {
			int dobro(int n) {
				retorne n + n;
			}
			int main() {
				escreva dobro(21);
			}
		}`)
}

func TestGlobalRedeclaration(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int x;
			int x;
			int main() { }
		}`, "redeclaracao", 4)
}

func TestFunctionRedeclaration(t *testing.T) {
	expectSemanticError(t, `
		programa {
			int f(int x) { retorne x; }
			int f(int y) { retorne y; }
			int main() { }
		}`, "redeclaracao", 4)
}

func TestStringArgumentToEscreva(t *testing.T) {
	expectNoErrors(t, `
		programa {
			int main() {
				escreva "ola";
			}
		}`)
}

func TestReanalysisIsIdempotent(t *testing.T) {
	input := `
		programa {
			int x;
			int main() {
				x = 2 + 3;
				escreva x;
			}
		}`

	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}

	if err := NewAnalyzer().Analyze(program); err != nil {
		t.Fatalf("first analysis failed: %v", err)
	}
	first := program.Main.Statements[0].(*ast.ExpressionStatement).Expression.GetType()

	if err := NewAnalyzer().Analyze(program); err != nil {
		t.Fatalf("second analysis failed: %v", err)
	}
	second := program.Main.Statements[0].(*ast.ExpressionStatement).Expression.GetType()

	if first != second {
		t.Errorf("annotations differ across analyses: %s vs %s", first, second)
	}
}
