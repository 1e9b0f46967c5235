package checker

import (
	"fmt"

	"questc/pkg/ast"
	"questc/pkg/parser"
	"questc/pkg/types"
)

const receiverName = "this"

func (c *Checker) checkExpression(node parser.Expression) ast.Expression {
	switch node := node.(type) {
	case *parser.IntegerLiteral:
		return &ast.IntLiteral{Value: node.Value}
	case *parser.FloatLiteral:
		return &ast.FloatLiteral{Value: node.Value}
	case *parser.StringLiteral:
		return &ast.StringLiteral{Value: node.Value}
	case *parser.BooleanLiteral:
		return &ast.BoolLiteral{Value: node.Value}
	case *parser.Identifier:
		return c.checkIdentifier(node)
	case *parser.PrefixExpression:
		return c.checkPrefixExpression(node)
	case *parser.InfixExpression:
		return c.checkInfixExpression(node)
	case *parser.ConditionalExpression:
		test := c.checkExpression(node.Condition)
		c.mustHaveBooleanType(test, node.Condition.Pos())
		consequent := c.checkExpression(node.Consequence)
		alternate := c.checkExpression(node.Alternative)
		c.mustBothHaveTheSameType(consequent, alternate, node.Colon)
		return &ast.Conditional{Test: test, Consequent: consequent, Alternate: alternate, Typ: consequent.Type()}
	case *parser.ArrayLiteral:
		elements := make([]ast.Expression, len(node.Elements))
		for i, e := range node.Elements {
			elements[i] = c.checkExpression(e)
		}
		c.mustAllHaveSameType(elements, node.Elements[0].Pos())
		return ast.NewArrayExpression(elements)
	case *parser.EmptyArrayExpression:
		t := c.resolveType(node.Type)
		return &ast.EmptyArray{Typ: c.mustBeAnArrayType(t, node.Type.Pos())}
	case *parser.IndexExpression:
		array := c.checkExpression(node.Left)
		index := c.checkExpression(node.Index)
		c.mustHaveAnArrayType(array, node.Left.Pos())
		c.mustHaveIntegerType(index, node.Index.Pos())
		return &ast.SubscriptExpression{Array: array, Index: index}
	case *parser.MemberExpression:
		object := c.checkExpression(node.Object)
		class := c.mustHaveAClassType(object, node.Object.Pos())
		field := c.mustHaveMember(class, node.Property.Value, node.Property.Token)
		return &ast.MemberExpression{Object: object, Field: field}
	case *parser.CallExpression:
		return c.checkCall(node)
	}
	c.fail(node.Pos(), "Unsupported expression")
	return nil
}

// resolveName looks up an identifier. An undeclared `this` inside a function
// is the receiver; its class is nil outside a method body. A method named
// without a receiver is reached through `this`, so it needs the same class.
func (c *Checker) resolveName(node *parser.Identifier) ast.Entity {
	entity, found := c.env.Resolve(node.Value)
	if !found && node.Value == receiverName {
		c.mustBeInAFunction(node.Token)
		return &ast.ThisExpression{Class: c.env.Class()}
	}
	c.mustHaveBeenFound(found, node.Value, node.Token)
	if fun, ok := entity.(*ast.Function); ok && fun.Owner != nil {
		c.must(fun.Owner == c.env.Class(), fmt.Sprintf("Method %s can only be used inside its class", node.Value), node.Token)
	}
	return entity
}

func (c *Checker) checkIdentifier(node *parser.Identifier) ast.Expression {
	switch entity := c.resolveName(node).(type) {
	case ast.Expression:
		return entity
	case types.Type:
		c.fail(node.Token, fmt.Sprintf("Type %s cannot be used as a value", types.Description(entity)))
	}
	c.fail(node.Token, fmt.Sprintf("Identifier '%s' not declared", node.Value))
	return nil
}

func (c *Checker) checkPrefixExpression(node *parser.PrefixExpression) ast.Expression {
	operand := c.checkExpression(node.Right)
	var typ types.Type
	switch node.Operator {
	case "...":
		arr := c.mustHaveAnArrayType(operand, node.Right.Pos())
		typ = types.NewArrayType(arr.BaseType)
	case "-":
		c.mustHaveNumericType(operand, node.Right.Pos())
		typ = operand.Type()
	case "!":
		c.mustHaveBooleanType(operand, node.Right.Pos())
		typ = types.Boolean
	}
	return &ast.UnaryExpression{Op: node.Operator, Operand: operand, Typ: typ}
}

func (c *Checker) checkInfixExpression(node *parser.InfixExpression) ast.Expression {
	if node.Operator == "||" || node.Operator == "&&" {
		left := c.checkExpression(node.Left)
		c.mustHaveBooleanType(left, node.Left.Pos())
		right := c.checkExpression(node.Right)
		c.mustHaveBooleanType(right, node.Right.Pos())
		return &ast.BinaryExpression{Op: node.Operator, Left: left, Right: right, Typ: types.Boolean}
	}

	left := c.checkExpression(node.Left)
	right := c.checkExpression(node.Right)
	switch node.Operator {
	case "<", "<=", ">", ">=", "==", "!=":
		if node.Operator != "==" && node.Operator != "!=" {
			c.mustHaveNumericOrStringType(left, node.Left.Pos())
		}
		c.mustBothHaveTheSameType(left, right, node.Token)
		return &ast.BinaryExpression{Op: node.Operator, Left: left, Right: right, Typ: types.Boolean}
	case "+":
		// Only the left operand is constrained, so "total: " + 3 concatenates.
		c.mustHaveNumericOrStringType(left, node.Left.Pos())
	case "-":
		c.mustHaveNumericType(left, node.Left.Pos())
	default: // * / % **
		c.mustHaveNumericType(left, node.Left.Pos())
		c.mustBothHaveTheSameType(left, right, node.Token)
	}
	return &ast.BinaryExpression{Op: node.Operator, Left: left, Right: right, Typ: left.Type()}
}
