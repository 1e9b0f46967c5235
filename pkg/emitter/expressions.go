package emitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"questc/pkg/ast"
)

func (e *Emitter) expression(expr ast.Expression) string {
	switch x := expr.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(x.Value, 10)
	case *ast.FloatLiteral:
		return jsNumber(x.Value)
	case *ast.StringLiteral:
		return jsString(x.Value)
	case *ast.BoolLiteral:
		return strconv.FormatBool(x.Value)
	case *ast.Variable:
		return e.variable(x)
	case *ast.Function:
		return e.functionValue(x)
	case *ast.ThisExpression:
		return "this"
	case *ast.Conditional:
		test := e.expression(x.Test)
		return fmt.Sprintf("((%s) ? (%s) : (%s))", test, e.inline(x.Consequent), e.inline(x.Alternate))
	case *ast.BinaryExpression:
		return e.binary(x)
	case *ast.UnaryExpression:
		return e.unary(x)
	case *ast.Effect:
		e.effect(x)
		return "undefined"
	case *ast.SubscriptExpression:
		return fmt.Sprintf("%s[%s]", e.expression(x.Array), e.expression(x.Index))
	case *ast.ArrayExpression:
		return "[" + strings.Join(e.expressions(x.Elements), ",") + "]"
	case *ast.EmptyArray:
		return "[]"
	case *ast.MemberExpression:
		return fmt.Sprintf("(%s[%s])", e.expression(x.Object), jsString(e.field(x.Field)))
	case *ast.FunctionCall:
		text := e.callText(x)
		if x.ReturnsValue() {
			return text
		}
		e.writeLine("%s;", text)
		return "undefined"
	case *ast.ConstructorCall:
		return fmt.Sprintf("new %s(%s)",
			e.names.name(x.Class, x.Class.Name), strings.Join(e.expressions(x.Args), ", "))
	}
	panic(fmt.Sprintf("emitter: unexpected expression %T", expr))
}

func (e *Emitter) expressions(es []ast.Expression) []string {
	out := make([]string, len(es))
	for i, x := range es {
		out[i] = e.expression(x)
	}
	return out
}

var operators = map[string]string{"==": "===", "!=": "!=="}

func (e *Emitter) binary(x *ast.BinaryExpression) string {
	if x.Intrinsic != ast.NotIntrinsic {
		l := e.lowerIntrinsic(x.Intrinsic, e.intrinsicOperands(x)...)
		e.writePrelude(l)
		return l.value
	}
	op := x.Op
	if js, ok := operators[op]; ok {
		op = js
	}
	left := e.expression(x.Left)
	if op == "**" && signedBase(x.Left) {
		// A unary operand may not appear directly left of ** in JavaScript.
		left = "(" + left + ")"
	}
	right := ""
	if op == "&&" || op == "||" {
		right = e.inline(x.Right)
	} else {
		right = e.expression(x.Right)
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

// inline renders expr where JavaScript may evaluate it zero or many times.
// Statements it depends on move into an arrow function called in place.
func (e *Emitter) inline(expr ast.Expression) string {
	outer, level := e.buffer, e.indentLevel
	e.buffer, e.indentLevel = bytes.Buffer{}, 0
	value := e.expression(expr)
	written := strings.TrimSpace(e.buffer.String())
	e.buffer, e.indentLevel = outer, level

	if written == "" {
		return value
	}
	prelude := strings.Split(written, "\n")
	for i, line := range prelude {
		prelude[i] = strings.TrimSpace(line)
	}
	return fmt.Sprintf("(() => { %s return %s; })()", strings.Join(prelude, " "), value)
}

// signedBase reports whether e prints with a leading sign or operator.
func signedBase(e ast.Expression) bool {
	switch x := e.(type) {
	case *ast.UnaryExpression:
		return x.Intrinsic == ast.NotIntrinsic
	case *ast.IntLiteral:
		return x.Value < 0
	case *ast.FloatLiteral:
		return math.Signbit(x.Value)
	}
	return false
}

func (e *Emitter) unary(x *ast.UnaryExpression) string {
	operand := e.expression(x.Operand)
	if x.Intrinsic != ast.NotIntrinsic {
		l := e.lowerIntrinsic(x.Intrinsic, operand)
		e.writePrelude(l)
		return l.value
	}
	if x.Op == "..." {
		return "..." + operand
	}
	return fmt.Sprintf("%s(%s)", x.Op, operand)
}

func (e *Emitter) callText(c *ast.FunctionCall) string {
	return fmt.Sprintf("%s(%s)", e.expression(c.Callee), strings.Join(e.expressions(c.Args), ", "))
}

// functionValue names a function used as a value. Methods are reached
// through the receiver; intrinsics become arrow functions over their
// lowering.
func (e *Emitter) functionValue(f *ast.Function) string {
	if field := f.MethodField(); field != nil {
		return fmt.Sprintf("this[%s]", jsString(e.field(field)))
	}
	if f.IsIntrinsic() {
		return e.intrinsicValue(f)
	}
	return e.function(f)
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// jsNumber spells a float the way JavaScript prints numbers: plain
// decimals in the usual range, exponent notation outside it.
func jsNumber(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
