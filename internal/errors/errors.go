// Package errors provides the diagnostic types of the Goianinha compiler:
// line-annotated semantic errors and caret-formatted syntax errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/lucasreis/goianinha/internal/token"
)

// SemanticError is a fatal semantic diagnostic. The analyzer stops at the
// first one; no output file is produced.
type SemanticError struct {
	Line    int
	Message string
}

// NewSemanticError creates a semantic error for the given source line.
func NewSemanticError(line int, format string, args ...any) *SemanticError {
	return &SemanticError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Error renders the diagnostic in the fixed form expected by the course
// grading tools.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("ERRO SEMÂNTICO (Linha %d): %s", e.Line, e.Message)
}

// CompilerError is a lexical or syntactic diagnostic with source context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a compiler error pointing at pos.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with the offending source line and a caret
// under the error column. ANSI color codes are emitted when color is true.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Erro em %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Erro na linha %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of compiler errors separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(err.Format(color))
	}
	return sb.String()
}
