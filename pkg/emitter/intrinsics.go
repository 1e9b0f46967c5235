package emitter

import (
	"fmt"
	"strings"

	"questc/pkg/ast"
	"questc/pkg/types"
)

// lowering is the JavaScript for one intrinsic call: statements that must
// run first, then the value of the call.
type lowering struct {
	prelude []string
	value   string
	// effectOnly marks values that merely report on the prelude; a call
	// statement drops them.
	effectOnly bool
}

func pure(format string, args ...interface{}) lowering {
	return lowering{value: fmt.Sprintf(format, args...)}
}

// lowerIntrinsic maps an intrinsic tag and its rendered arguments to
// JavaScript. Every tag the checker can fold has a case here.
func (e *Emitter) lowerIntrinsic(tag ast.Intrinsic, args ...string) lowering {
	if tag.UsesFileSystem() {
	}
	switch tag {
	case ast.Echo:
		return lowering{
			prelude:    []string{fmt.Sprintf("console.log(%s);", strings.Join(args, ", "))},
			value:      "undefined",
			effectOnly: true,
		}
	case ast.Sqrt, ast.Sin, ast.Cos, ast.Exp:
		return pure("Math.%s(%s)", tag, args[0])
	case ast.Ln:
		return pure("Math.log(%s)", args[0])
	case ast.Hypot:
		return pure("Math.hypot(%s,%s)", args[0], args[1])
	case ast.Length:
		return pure("%s.length", args[0])
	case ast.Pop:
		return pure("%s.pop()", args[0])
	case ast.Push:
		return lowering{
			prelude:    []string{fmt.Sprintf("%s.push(%s);", args[0], args[1])},
			value:      fmt.Sprintf("(%s.length - 1)", args[0]),
			effectOnly: true,
		}
	case ast.RandomInt:
		lo, hi := args[0], args[1]
		return pure("(Math.floor(Math.random() * (%s - %s + 1)) + %s)", hi, lo, lo)
	case ast.ToString:
		return pure("String(%s)", args[0])
	case ast.ToInt:
		return pure("Math.floor(%s)", args[0])
	case ast.ToFloat:
		return pure("parseFloat(%s)", args[0])
	case ast.ReadFile:
		return pure("fs.readFileSync(%s, 'utf8')", args[0])
	case ast.WriteFile:
		return lowering{
			prelude:    []string{fmt.Sprintf("fs.writeFileSync(%s, %s);", args[0], args[1])},
			value:      "true",
			effectOnly: true,
		}
	case ast.Input:
		buffer, read := e.names.fresh("buffer"), e.names.fresh("bytesRead")
		return lowering{
			prelude: []string{
				fmt.Sprintf("process.stdout.write(%s);", args[0]),
				fmt.Sprintf("const %s = Buffer.alloc(1024);", buffer),
				fmt.Sprintf("const %s = fs.readSync(0, %s, 0, %s.length, null);", read, buffer, buffer),
			},
			value:      fmt.Sprintf("%s.toString('utf8', 0, %s).trim()", buffer, read),
			effectOnly: true,
		}
	}
	panic(fmt.Sprintf("emitter: no lowering for intrinsic %q", tag))
}

// intrinsicOperands renders the operands of a two-argument intrinsic. The
// array of a push appears twice in its lowering, so it is bound to a fresh
// name unless reading it again is harmless.
func (e *Emitter) intrinsicOperands(x *ast.BinaryExpression) []string {
	left := e.expression(x.Left)
	if x.Intrinsic == ast.Push && !rereadable(x.Left) {
		name := e.names.fresh("array")
		e.writeLine("const %s = %s;", name, left)
		left = name
	}
	return []string{left, e.expression(x.Right)}
}

func rereadable(x ast.Expression) bool {
	switch x := x.(type) {
	case *ast.Variable, *ast.ThisExpression, *ast.IntLiteral:
		return true
	case *ast.MemberExpression:
		return rereadable(x.Object)
	case *ast.SubscriptExpression:
		return rereadable(x.Array) && rereadable(x.Index)
	}
	return false
}

func (e *Emitter) writePrelude(l lowering) {
	for _, line := range l.prelude {
		e.writeLine("%s", line)
	}
}

func (e *Emitter) effect(x *ast.Effect) {
	e.writePrelude(e.lowerIntrinsic(x.Intrinsic, e.expressions(x.Args)...))
}

// intrinsicValue wraps an intrinsic referenced without being called in an
// arrow function, e.g. `stat f = sqrt;`.
func (e *Emitter) intrinsicValue(f *ast.Function) string {
	params := make([]string, len(f.Typ.ParameterTypes))
	for i := range params {
		params[i] = e.names.fresh("x")
	}
	l := e.lowerIntrinsic(f.Intrinsic, params...)
	list := strings.Join(params, ", ")
	if len(l.prelude) == 0 {
		return fmt.Sprintf("((%s) => %s)", list, l.value)
	}
	body := strings.Join(l.prelude, " ")
	if f.Typ.ReturnType != types.Void {
		body += " return " + l.value + ";"
	}
	return fmt.Sprintf("((%s) => { %s })", list, body)
}
