// Package emitter lowers a typed Quest program to JavaScript.
package emitter

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/builtins"
	"questc/pkg/types"
)

const fsImport = "import * as fs from 'fs';"

// Emitter turns an analyzed program into JavaScript source. Statements are
// written line by line to the buffer; expressions are returned as text and
// may write the statements they depend on first.
type Emitter struct {
	logger *zap.Logger

	indentLevel int
	buffer      bytes.Buffer
	names       *nameTable
	usesFS      bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger reports emission summaries at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

// New creates an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit converts a program to JavaScript. Every call starts from a clean
// state, so emitting the same tree twice gives the same text.
func (e *Emitter) Emit(program *ast.Program) string {
	e.buffer.Reset()
	e.indentLevel = 0
	e.names = newNameTable()
	e.usesFS = false

	for _, stmt := range program.Statements {
		e.emitStatement(stmt)
	}

	out := strings.TrimSuffix(e.buffer.String(), "\n")
	if e.usesFS {
		out = fsImport + "\n" + out
	}
	e.logger.Debug("Emitted program",
		zap.Int("statements", len(program.Statements)),
		zap.Int("names", e.names.size()),
		zap.Bool("fs", e.usesFS))
	return out
}

// Generate emits program with a default Emitter.
func Generate(program *ast.Program) string {
	return New().Emit(program)
}

// Helper methods

func (e *Emitter) indent() {
	e.indentLevel++
}

func (e *Emitter) dedent() {
	if e.indentLevel > 0 {
		e.indentLevel--
	}
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indentLevel; i++ {
		e.buffer.WriteString("  ")
	}
}

func (e *Emitter) writeLine(format string, args ...interface{}) {
	e.writeIndent()
	fmt.Fprintf(&e.buffer, format, args...)
	e.buffer.WriteString("\n")
}

func (e *Emitter) emitBlock(stmts []ast.Statement) {
	e.indent()
	for _, s := range stmts {
		e.emitStatement(s)
	}
	e.dedent()
}

// Statements

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		name := e.variable(s.Variable)
		e.writeLine("let %s = %s;", name, e.expression(s.Initializer))
	case *ast.TypeDeclaration:
		e.emitClass(s.Class)
	case *ast.FunctionDeclaration:
		e.writeLine("function %s(%s) {", e.function(s.Fun), e.params(s.Fun))
		e.emitBlock(s.Fun.Body)
		e.writeLine("}")
	case *ast.Increment:
		e.writeLine("%s++;", e.expression(s.Target))
	case *ast.Decrement:
		e.writeLine("%s--;", e.expression(s.Target))
	case *ast.Assignment:
		source := e.expression(s.Source)
		e.writeLine("%s = %s;", e.expression(s.Target), source)
	case *ast.BreakStatement:
		e.writeLine("break;")
	case *ast.ReturnStatement:
		e.writeLine("return %s;", e.expression(s.Expression))
	case *ast.ShortReturnStatement:
		e.writeLine("return;")
	case *ast.IfStatement:
		e.emitIf(s)
	case *ast.ShortIfStatement:
		e.writeLine("if (%s) {", e.expression(s.Test))
		e.emitBlock(s.Consequent)
		e.writeLine("}")
	case *ast.WhileStatement:
		e.writeLine("while (%s) {", e.inline(s.Test))
		e.emitBlock(s.Body)
		e.writeLine("}")
	case *ast.RepeatStatement:
		i := e.names.fresh("i")
		e.writeLine("for (let %s = 0; %s < %s; %s++) {", i, i, e.expression(s.Count), i)
		e.emitBlock(s.Body)
		e.writeLine("}")
	case *ast.ForRangeStatement:
		i := e.variable(s.Iterator)
		op := "<"
		if s.Op == ast.RangeInclusive {
			op = "<="
		}
		low := e.expression(s.Low)
		e.writeLine("for (let %s = %s; %s %s %s; %s++) {", i, low, i, op, e.inline(s.High), i)
		e.emitBlock(s.Body)
		e.writeLine("}")
	case *ast.ForStatement:
		i := e.variable(s.Iterator)
		e.writeLine("for (let %s of %s) {", i, e.expression(s.Collection))
		e.emitBlock(s.Body)
		e.writeLine("}")
	case *ast.CallStatement:
		e.emitCallStatement(s.Call)
	default:
		panic(fmt.Sprintf("emitter: unexpected statement %T", s))
	}
}

// emitIf renders an else-if chain as `} else` followed by the trailing if
// one level deeper, without another pair of braces.
func (e *Emitter) emitIf(s *ast.IfStatement) {
	e.writeLine("if (%s) {", e.expression(s.Test))
	e.emitBlock(s.Consequent)
	switch alt := s.Alternate.(type) {
	case ast.Block:
		e.writeLine("} else {")
		e.emitBlock(alt)
		e.writeLine("}")
	case ast.Statement:
		e.writeLine("} else")
		e.indent()
		e.emitStatement(alt)
		e.dedent()
	}
}

// emitClass lowers a class to a JavaScript class whose constructor takes the
// data fields positionally and installs each method as an arrow function
// closed over the instance.
func (e *Emitter) emitClass(class *types.ClassType) {
	e.writeLine("class %s {", e.names.name(class, class.Name))
	e.indent()

	data := class.DataFields()
	params := make([]string, len(data))
	for i, f := range data {
		params[i] = e.field(f)
	}
	e.writeLine("constructor(%s) {", strings.Join(params, ","))
	e.indent()
	for _, f := range class.Fields {
		if !f.IsMethod {
			e.writeLine("this[%s] = %s;", jsString(e.field(f)), e.field(f))
			continue
		}
		decl, ok := f.Method.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		e.writeLine("this[%s] = (%s) => {", jsString(e.field(f)), e.params(decl.Fun))
		e.emitBlock(decl.Fun.Body)
		e.writeLine("};")
	}
	e.dedent()
	e.writeLine("}")

	e.dedent()
	e.writeLine("}")
}

// emitCallStatement runs a call for its effect. Intrinsics whose value only
// reports on the effect (push, writeFile, input) leave no expression line.
func (e *Emitter) emitCallStatement(call ast.Expression) {
	switch c := call.(type) {
	case *ast.Effect:
		e.effect(c)
		return
	case *ast.FunctionCall:
		e.writeLine("%s;", e.callText(c))
		return
	case *ast.BinaryExpression:
		if c.Intrinsic != ast.NotIntrinsic {
			l := e.lowerIntrinsic(c.Intrinsic, e.intrinsicOperands(c)...)
			e.writePrelude(l)
			if !l.effectOnly {
				e.writeLine("%s;", l.value)
			}
			return
		}
	case *ast.UnaryExpression:
		if c.Intrinsic != ast.NotIntrinsic {
			l := e.lowerIntrinsic(c.Intrinsic, e.expression(c.Operand))
			e.writePrelude(l)
			if !l.effectOnly {
				e.writeLine("%s;", l.value)
			}
			return
		}
	}
	e.writeLine("%s;", e.expression(call))
}

// Names

func (e *Emitter) variable(v *ast.Variable) string {
	if v == builtins.Pi {
		return "Math.PI"
	}
	return e.names.name(v, v.Name)
}

func (e *Emitter) function(f *ast.Function) string {
	return e.names.name(f, f.Name)
}

func (e *Emitter) field(f *types.Field) string {
	return e.names.name(f, f.Name)
}

func (e *Emitter) params(f *ast.Function) string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = e.variable(p)
	}
	return strings.Join(names, ", ")
}
