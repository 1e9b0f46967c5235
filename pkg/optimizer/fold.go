package optimizer

import (
	"math"
	"math/bits"

	"questc/pkg/ast"
)

// foldLiterals evaluates op over two literals of the same kind. Division and
// modulo by zero are left for the host to evaluate.
func foldLiterals(op string, left, right ast.Expression) (ast.Expression, bool) {
	switch l := left.(type) {
	case *ast.IntLiteral:
		if r, ok := right.(*ast.IntLiteral); ok {
			return foldInts(op, l.Value, r.Value)
		}
	case *ast.FloatLiteral:
		if r, ok := right.(*ast.FloatLiteral); ok {
			return foldFloats(op, l.Value, r.Value)
		}
	case *ast.StringLiteral:
		if r, ok := right.(*ast.StringLiteral); ok {
			return foldStrings(op, l.Value, r.Value)
		}
	case *ast.BoolLiteral:
		if r, ok := right.(*ast.BoolLiteral); ok {
			switch op {
			case "==":
				return &ast.BoolLiteral{Value: l.Value == r.Value}, true
			case "!=":
				return &ast.BoolLiteral{Value: l.Value != r.Value}, true
			}
		}
	}
	return nil, false
}

// maxSafeInt is the largest magnitude a JavaScript number holds exactly.
const maxSafeInt = 1<<53 - 1

// foldInts folds only results a JavaScript number reproduces exactly. Ints
// are numbers at run time, so 7 / 2 and -4 % 2 stay unfolded.
func foldInts(op string, a, b int64) (ast.Expression, bool) {
	if !safeInt(a) || !safeInt(b) {
		return nil, false
	}
	switch op {
	case "+":
		return intLiteral(a + b)
	case "-":
		return intLiteral(a - b)
	case "*":
		if (a == 0 && b < 0) || (b == 0 && a < 0) {
			return nil, false
		}
		v, ok := mulInts(a, b)
		if !ok {
			return nil, false
		}
		return intLiteral(v)
	case "/":
		if b == 0 || a%b != 0 || (a == 0 && b < 0) {
			return nil, false
		}
		return intLiteral(a / b)
	case "%":
		if b == 0 || (a < 0 && a%b == 0) {
			return nil, false
		}
		return intLiteral(a % b)
	case "**":
		if b < 0 {
			return nil, false
		}
		v, ok := powInts(a, b)
		if !ok {
			return nil, false
		}
		return intLiteral(v)
	}
	return compare(op, cmpOrdered(a, b))
}

func safeInt(v int64) bool {
	return v >= -maxSafeInt && v <= maxSafeInt
}

func intLiteral(v int64) (ast.Expression, bool) {
	if !safeInt(v) {
		return nil, false
	}
	return &ast.IntLiteral{Value: v}, true
}

func foldFloats(op string, a, b float64) (ast.Expression, bool) {
	switch op {
	case "+":
		return floatLiteral(a + b)
	case "-":
		return floatLiteral(a - b)
	case "*":
		return floatLiteral(a * b)
	case "/":
		if b == 0 {
			return nil, false
		}
		return floatLiteral(a / b)
	case "%":
		if b == 0 {
			return nil, false
		}
		return floatLiteral(math.Mod(a, b))
	case "**":
		return floatLiteral(math.Pow(a, b))
	}
	return compare(op, cmpOrdered(a, b))
}

// floatLiteral refuses results that have no literal spelling.
func floatLiteral(v float64) (ast.Expression, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &ast.FloatLiteral{Value: v}, true
}

func foldStrings(op string, a, b string) (ast.Expression, bool) {
	if op == "+" {
		return &ast.StringLiteral{Value: a + b}, true
	}
	return compare(op, cmpOrdered(a, b))
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compare turns a three-way comparison into the literal result of op.
func compare(op string, c int) (ast.Expression, bool) {
	var v bool
	switch op {
	case "<":
		v = c < 0
	case "<=":
		v = c <= 0
	case ">":
		v = c > 0
	case ">=":
		v = c >= 0
	case "==":
		v = c == 0
	case "!=":
		v = c != 0
	default:
		return nil, false
	}
	return &ast.BoolLiteral{Value: v}, true
}

// mulInts multiplies two safe ints, reporting whether the product is safe.
func mulInts(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(abs(a), abs(b))
	if hi != 0 || lo > maxSafeInt {
		return 0, false
	}
	if (a < 0) != (b < 0) {
		return -int64(lo), true
	}
	return int64(lo), true
}

// powInts raises base to a non-negative exp. Bases other than 0, 1 and -1
// leave the safe range within 53 steps.
func powInts(base, exp int64) (int64, bool) {
	switch {
	case exp == 0 || base == 1:
		return 1, true
	case base == 0:
		return 0, true
	case base == -1:
		if exp%2 == 0 {
			return 1, true
		}
		return -1, true
	}
	result := int64(1)
	for ; exp > 0; exp-- {
		var ok bool
		if result, ok = mulInts(result, base); !ok {
			return 0, false
		}
	}
	return result, true
}

func abs(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
