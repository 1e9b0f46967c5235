package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// QuestError is implemented by every diagnostic the compiler reports.
type QuestError interface {
	error
	Pos() Position
	Kind() string // "Syntax" or "Semantic"
	// Message returns the message without the position prefix.
	Message() string
	Unwrap() error
}

// --- Concrete Error Types ---

// SyntaxError is reported by the lexer and parser, positioned at the offending token.
type SyntaxError struct {
	Position
	Msg   string
	Cause error
}

func (e *SyntaxError) Error() string   { return e.Locator() + " " + e.Msg }
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// SemanticError is reported by the analyzer, positioned at the offending syntax node.
type SemanticError struct {
	Position
	Msg   string
	Cause error
}

func (e *SemanticError) Error() string   { return e.Locator() + " " + e.Msg }
func (e *SemanticError) Pos() Position   { return e.Position }
func (e *SemanticError) Kind() string    { return "Semantic" }
func (e *SemanticError) Message() string { return e.Msg }
func (e *SemanticError) Unwrap() error   { return e.Cause }
func (e *SemanticError) CausedBy(cause error) *SemanticError {
	e.Cause = cause
	return e
}

func NewSyntaxError(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Position: pos, Msg: fmt.Sprintf(format, args...)}
}

func NewSemanticError(pos Position, msg string) *SemanticError {
	return &SemanticError{Position: pos, Msg: msg}
}

// --- Error Reporting ---

// ColorEnabled reports whether diagnostics written to f should be coloured.
func ColorEnabled(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisplayErrors writes each error with its source line and a caret under the
// offending column.
func DisplayErrors(w io.Writer, errs []QuestError, colored bool) {
	kindColor := color.New(color.FgRed, color.Bold)
	markerColor := color.New(color.FgGreen)
	for _, c := range []*color.Color{kindColor, markerColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, err := range errs {
		pos := err.Pos()
		where := ""
		if pos.Source != nil {
			where = pos.Source.DisplayPath() + ": "
		}
		fmt.Fprintf(w, "%s%s %s\n", where, kindColor.Sprintf("%s Error", err.Kind()), err.Error())

		if pos.Source == nil {
			continue
		}
		line := pos.Source.Line(pos.Line)
		if line == "" {
			continue
		}
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\t "))
		fmt.Fprintf(w, "  %s\n", markerColor.Sprint(marker(line, pos.Column)))
	}
}

// marker lines up a caret under column col, reusing the line's tabs so the
// caret stays aligned in tab-indented source.
func marker(line string, col int) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteRune('^')
	return b.String()
}
