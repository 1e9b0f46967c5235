package checker

import (
	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/parser"
	"questc/pkg/types"
)

const notCallable = "Call of non-function or non-constructor"

// checkCall analyzes a call. A class name constructs an instance; anything
// else must have a function type. Calls of intrinsics are folded into
// Effect, Unary or Binary nodes tagged with the intrinsic.
func (c *Checker) checkCall(node *parser.CallExpression) ast.Expression {
	if id, ok := node.Function.(*parser.Identifier); ok {
		switch entity := c.resolveName(id).(type) {
		case *types.ClassType:
			return c.checkConstructorCall(node, entity)
		case types.Type:
			c.fail(node.Function.Pos(), notCallable)
		}
	}

	callee := c.checkExpression(node.Function)
	fnType, ok := callee.Type().(*types.FunctionType)
	c.must(ok, notCallable, node.Function.Pos())

	c.mustHaveCorrectArgumentCount(len(node.Arguments), len(fnType.ParameterTypes), node.Token)
	args := c.checkArguments(node.Arguments, fnType.ParameterTypes)

	if fn, ok := callee.(*ast.Function); ok && fn.IsIntrinsic() {
		c.logger.Debug("Folded intrinsic call", zap.Stringer("intrinsic", fn.Intrinsic))
		return foldIntrinsic(fn, args)
	}
	return &ast.FunctionCall{Callee: callee, Args: args, Typ: fnType.ReturnType}
}

// checkConstructorCall takes one argument per data field; methods are not
// constructor parameters.
func (c *Checker) checkConstructorCall(node *parser.CallExpression, class *types.ClassType) ast.Expression {
	data := class.DataFields()
	c.mustHaveCorrectArgumentCount(len(node.Arguments), len(class.Fields)-class.MethodCount(), node.Token)

	targets := make([]types.Type, len(data))
	for i, f := range data {
		targets[i] = f.Type
	}
	return &ast.ConstructorCall{Class: class, Args: c.checkArguments(node.Arguments, targets)}
}

func (c *Checker) checkArguments(nodes []parser.Expression, targets []types.Type) []ast.Expression {
	args := make([]ast.Expression, len(nodes))
	for i, n := range nodes {
		args[i] = c.checkExpression(n)
		c.mustBeAssignable(args[i], targets[i], n.Pos())
	}
	return args
}

func foldIntrinsic(fn *ast.Function, args []ast.Expression) ast.Expression {
	ret := fn.Typ.ReturnType
	switch {
	case ret == types.Void:
		return &ast.Effect{Intrinsic: fn.Intrinsic, Args: args}
	case len(fn.Typ.ParameterTypes) == 1:
		return &ast.UnaryExpression{Op: fn.Name, Operand: args[0], Typ: ret, Intrinsic: fn.Intrinsic}
	default:
		return &ast.BinaryExpression{Op: fn.Name, Left: args[0], Right: args[1], Typ: ret, Intrinsic: fn.Intrinsic}
	}
}
