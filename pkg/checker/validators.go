package checker

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"questc/pkg/ast"
	"questc/pkg/errors"
	"questc/pkg/lexer"
	"questc/pkg/types"
)

// primitiveTypeName matches the names a primitive type is spelled with.
var primitiveTypeName = regexp2.MustCompile(`^(?:int|float|string|boolean|void|any)$`, regexp2.None)

// must fails the analysis with msg at the given token unless condition holds.
func (c *Checker) must(condition bool, msg string, at lexer.Token) {
	if !condition {
		c.fail(at, msg)
	}
}

// fail unwinds to Check with a positioned semantic error.
func (c *Checker) fail(at lexer.Token, msg string) {
	panic(errors.NewSemanticError(errors.Position{
		Line:     at.Line,
		Column:   at.Column,
		StartPos: at.StartPos,
		EndPos:   at.EndPos,
		Source:   c.source,
	}, msg))
}

// --- Declarations ---

func (c *Checker) mustNotAlreadyBeDeclared(name string, at lexer.Token) {
	_, exists := c.env.ResolveImmediate(name)
	c.must(!exists, fmt.Sprintf("Identifier '%s' already declared", name), at)
}

func (c *Checker) mustNotAlreadyBeDeclaredAsParameter(name string, at lexer.Token) {
	_, exists := c.env.ResolveImmediate(name)
	c.must(!exists, fmt.Sprintf("Parameter '%s' already declared", name), at)
}

func (c *Checker) mustHaveBeenFound(found bool, name string, at lexer.Token) {
	c.must(found, fmt.Sprintf("Identifier '%s' not declared", name), at)
}

// --- Type categories ---

func (c *Checker) mustHaveNumericType(e ast.Expression, at lexer.Token) {
	c.must(types.IsNumeric(e.Type()), "Expected a number", at)
}

func (c *Checker) mustHaveNumericOrStringType(e ast.Expression, at lexer.Token) {
	c.must(types.IsNumericOrString(e.Type()), "Expected a number or string", at)
}

func (c *Checker) mustHaveBooleanType(e ast.Expression, at lexer.Token) {
	c.must(e.Type() == types.Boolean, "Expected a boolean", at)
}

func (c *Checker) mustHaveIntegerType(e ast.Expression, at lexer.Token) {
	c.must(e.Type() == types.Int, "Expected an integer", at)
}

func (c *Checker) mustHaveAnArrayType(e ast.Expression, at lexer.Token) *types.ArrayType {
	arr, ok := e.Type().(*types.ArrayType)
	c.must(ok, "Expected an array", at)
	return arr
}

func (c *Checker) mustHaveAClassType(e ast.Expression, at lexer.Token) *types.ClassType {
	ct, ok := e.Type().(*types.ClassType)
	c.must(ok, "Expected a class", at)
	return ct
}

func (c *Checker) mustBothHaveTheSameType(e1, e2 ast.Expression, at lexer.Token) {
	c.must(types.Equivalent(e1.Type(), e2.Type()), "Operands do not have the same type", at)
}

func (c *Checker) mustAllHaveSameType(es []ast.Expression, at lexer.Token) {
	for _, e := range es[1:] {
		c.must(types.Equivalent(e.Type(), es[0].Type()), "Not all elements have the same type", at)
	}
}

// mustBeAType checks what the name spelled in a type position resolved to.
// A primitive must be reached through its own name; classes and composite
// types pass as they are.
func (c *Checker) mustBeAType(spelled string, entity ast.Entity, at lexer.Token) types.Type {
	switch t := entity.(type) {
	case *types.Primitive:
		ok, err := primitiveTypeName.MatchString(spelled)
		c.must(err == nil && ok && spelled == t.Name, "Type expected", at)
		return t
	case *types.ClassType, *types.ArrayType, *types.FunctionType:
		return t.(types.Type)
	}
	c.fail(at, "Type expected")
	return nil
}

func (c *Checker) mustBeAnArrayType(t types.Type, at lexer.Token) *types.ArrayType {
	arr, ok := t.(*types.ArrayType)
	c.must(ok, "Must be an array type", at)
	return arr
}

// --- Classes ---

func (c *Checker) mustNotBeSelfContaining(ct *types.ClassType, at lexer.Token) {
	c.must(!ct.IsSelfContaining(), "Class type must not be self-containing", at)
}

func (c *Checker) mustHaveDistinctFields(ct *types.ClassType, at lexer.Token) {
	c.must(ct.HasDistinctFields(), "Fields must be distinct", at)
}

func (c *Checker) mustHaveMember(ct *types.ClassType, name string, at lexer.Token) *types.Field {
	field, ok := ct.Field(name)
	c.must(ok, "No such field", at)
	return field
}

// --- Assignment ---

// isMutable follows the access chain: an element or field is writable
// exactly when the variable it is reached from is. The receiver is not.
func isMutable(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Variable:
		return e.Mutable
	case *ast.SubscriptExpression:
		return isMutable(e.Array)
	case *ast.MemberExpression:
		return isMutable(e.Object)
	}
	return false
}

// targetName names the root of an access chain for diagnostics.
func targetName(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.Variable:
		return e.Name
	case *ast.Function:
		return e.Name
	case *ast.SubscriptExpression:
		return targetName(e.Array)
	case *ast.MemberExpression:
		return targetName(e.Object)
	case *ast.ThisExpression:
		return "this"
	}
	return "expression"
}

func (c *Checker) mustBeMutable(e ast.Expression, at lexer.Token) {
	c.must(isMutable(e), "Cannot assign to immutable "+targetName(e), at)
}

func (c *Checker) mustBeAssignable(e ast.Expression, to types.Type, at lexer.Token) {
	msg := fmt.Sprintf("Cannot assign a %s to a %s", types.Description(e.Type()), types.Description(to))
	c.must(types.IsAssignable(e.Type(), to), msg, at)
}

// --- Control flow ---

func (c *Checker) mustBeInLoop(at lexer.Token) {
	c.must(c.env.InLoop(), "Break can only appear in a loop", at)
}

func (c *Checker) mustBeInAFunction(at lexer.Token) {
	c.must(c.env.Function() != nil, "Return can only appear in a function", at)
}

func (c *Checker) mustNotReturnAnything(f *ast.Function, at lexer.Token) {
	c.must(f.Typ.ReturnType == types.Void, "Something should be returned", at)
}

func (c *Checker) mustReturnSomething(f *ast.Function, at lexer.Token) {
	c.must(f.Typ.ReturnType != types.Void, "Cannot return a value from this function", at)
}

// --- Calls ---

func (c *Checker) mustHaveCorrectArgumentCount(argCount, paramCount int, at lexer.Token) {
	msg := fmt.Sprintf("%d argument(s) required but %d passed", paramCount, argCount)
	c.must(argCount == paramCount, msg, at)
}
