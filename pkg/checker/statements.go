package checker

import (
	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/parser"
	"questc/pkg/types"
)

func (c *Checker) checkStatements(stmts []parser.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, c.checkStatement(s))
	}
	return out
}

// checkBlock analyzes a block in its own frame. configure may mark the
// frame as a loop body.
func (c *Checker) checkBlock(block *parser.BlockStatement, configure func(env *Environment)) ast.Block {
	defer c.enterScope(configure)()
	return c.checkStatements(block.Statements)
}

func (c *Checker) checkStatement(node parser.Statement) ast.Statement {
	switch node := node.(type) {
	case *parser.VariableDeclaration:
		return c.checkVariableDeclaration(node)
	case *parser.ClassDeclaration:
		return c.checkClassDeclaration(node)
	case *parser.FunctionDeclaration:
		return c.checkFunctionDeclaration(node, nil)
	case *parser.BumpStatement:
		target := c.checkExpression(node.Target)
		c.mustBeMutable(target, node.Target.Pos())
		c.mustHaveIntegerType(target, node.Target.Pos())
		if node.IsIncrement() {
			return &ast.Increment{Target: target}
		}
		return &ast.Decrement{Target: target}
	case *parser.AssignStatement:
		src := c.checkExpression(node.Value)
		target := c.checkExpression(node.Target)
		c.mustBeMutable(target, node.Target.Pos())
		c.mustBeAssignable(src, target.Type(), node.Target.Pos())
		return &ast.Assignment{Target: target, Source: src}
	case *parser.CallStatement:
		return &ast.CallStatement{Call: c.checkCall(node.Call)}
	case *parser.BreakStatement:
		c.mustBeInLoop(node.Token)
		return &ast.BreakStatement{}
	case *parser.ReturnStatement:
		return c.checkReturnStatement(node)
	case *parser.IfStatement:
		return c.checkIfStatement(node)
	case *parser.WhileStatement:
		test := c.checkExpression(node.Condition)
		c.mustHaveBooleanType(test, node.Condition.Pos())
		return &ast.WhileStatement{Test: test, Body: c.checkBlock(node.Body, inLoop)}
	case *parser.RepeatStatement:
		count := c.checkExpression(node.Count)
		c.mustHaveIntegerType(count, node.Count.Pos())
		return &ast.RepeatStatement{Count: count, Body: c.checkBlock(node.Body, inLoop)}
	case *parser.ForRangeStatement:
		return c.checkForRangeStatement(node)
	case *parser.ForInStatement:
		return c.checkForInStatement(node)
	}
	c.fail(node.Pos(), "Unsupported statement")
	return nil
}

func inLoop(env *Environment) { env.inLoop = true }

func (c *Checker) checkVariableDeclaration(node *parser.VariableDeclaration) *ast.VariableDeclaration {
	c.mustNotAlreadyBeDeclared(node.Name.Value, node.Name.Token)
	initializer := c.checkExpression(node.Value)
	variable := &ast.Variable{
		Name:    node.Name.Value,
		Mutable: node.Mutable(),
		Typ:     initializer.Type(),
	}
	c.declare(variable.Name, variable)
	return &ast.VariableDeclaration{Variable: variable, Initializer: initializer}
}

// checkClassDeclaration registers the class before its body is analyzed so
// methods can refer to it. Fields are appended in declaration order.
func (c *Checker) checkClassDeclaration(node *parser.ClassDeclaration) *ast.TypeDeclaration {
	name := node.Name.Value
	c.mustNotAlreadyBeDeclared(name, node.Name.Token)
	c.must(c.building == nil, "Classes cannot be nested", node.Token)

	class := types.NewClassType(name)
	c.declare(name, class)

	c.building = class
	defer func() { c.building = nil }()
	defer c.enterScope(func(env *Environment) { env.class = class })()

	for _, member := range node.Members {
		switch member := member.(type) {
		case *parser.FieldDeclaration:
			class.Fields = append(class.Fields, &types.Field{
				Name: member.Name.Value,
				Type: c.resolveType(member.Type),
			})
		case *parser.FunctionDeclaration:
			c.checkFunctionDeclaration(member, class)
		}
	}

	c.mustHaveDistinctFields(class, node.Name.Token)
	c.mustNotBeSelfContaining(class, node.Name.Token)
	c.logger.Debug("Class complete", zap.String("class", name), zap.Int("fields", len(class.Fields)))
	return &ast.TypeDeclaration{Class: class}
}

// checkFunctionDeclaration binds the function before its body is analyzed so
// it can recurse. For a method, owner receives the method field as soon as
// the signature is known. Only a method body sees a receiver class.
func (c *Checker) checkFunctionDeclaration(node *parser.FunctionDeclaration, owner *types.ClassType) *ast.FunctionDeclaration {
	name := node.Name.Value
	c.mustNotAlreadyBeDeclared(name, node.Name.Token)

	fun := &ast.Function{Name: name, Owner: owner}
	c.declare(name, fun)

	defer c.enterScope(func(env *Environment) {
		env.inLoop = false
		env.function = fun
		env.class = owner
	})()

	fun.Params = make([]*ast.Variable, 0, len(node.Parameters))
	paramTypes := make([]types.Type, 0, len(node.Parameters))
	for _, p := range node.Parameters {
		param := &ast.Variable{Name: p.Name.Value, Mutable: true, Typ: c.resolveType(p.Type)}
		c.mustNotAlreadyBeDeclaredAsParameter(param.Name, p.Name.Token)
		c.declare(param.Name, param)
		fun.Params = append(fun.Params, param)
		paramTypes = append(paramTypes, param.Typ)
	}

	var returnType types.Type = types.Void
	if node.ReturnType != nil {
		returnType = c.resolveType(node.ReturnType)
	}
	fun.Typ = types.NewFunctionType(paramTypes, returnType)

	decl := &ast.FunctionDeclaration{Fun: fun}
	if owner != nil {
		owner.Fields = append(owner.Fields, &types.Field{
			Name:     name,
			Type:     fun.Typ,
			IsMethod: true,
			Method:   decl,
		})
	}

	fun.Body = c.checkStatements(node.Body.Statements)
	return decl
}

func (c *Checker) checkReturnStatement(node *parser.ReturnStatement) ast.Statement {
	c.mustBeInAFunction(node.Token)
	fun := c.env.Function()
	if node.Value == nil {
		c.mustNotReturnAnything(fun, node.Token)
		return &ast.ShortReturnStatement{}
	}
	c.mustReturnSomething(fun, node.Token)
	value := c.checkExpression(node.Value)
	c.mustBeAssignable(value, fun.Typ.ReturnType, node.Value.Pos())
	return &ast.ReturnStatement{Expression: value}
}

// checkIfStatement returns an *ast.IfStatement when there is a fallback and
// an *ast.ShortIfStatement otherwise.
func (c *Checker) checkIfStatement(node *parser.IfStatement) ast.Statement {
	test := c.checkExpression(node.Condition)
	c.mustHaveBooleanType(test, node.Condition.Pos())
	consequent := c.checkBlock(node.Consequence, nil)

	switch alt := node.Alternative.(type) {
	case nil:
		return &ast.ShortIfStatement{Test: test, Consequent: consequent}
	case *parser.BlockStatement:
		return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: c.checkBlock(alt, nil)}
	case *parser.IfStatement:
		trailing := c.checkIfStatement(alt).(ast.Alternative)
		return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: trailing}
	}
	c.fail(node.Alternative.Pos(), "Unsupported fallback")
	return nil
}

func (c *Checker) checkForRangeStatement(node *parser.ForRangeStatement) *ast.ForRangeStatement {
	low := c.checkExpression(node.Low)
	high := c.checkExpression(node.High)
	c.mustHaveIntegerType(low, node.Low.Pos())
	c.mustHaveIntegerType(high, node.High.Pos())

	op := ast.RangeInclusive
	if node.Operator.Literal == string(ast.RangeExclusive) {
		op = ast.RangeExclusive
	}
	iterator := &ast.Variable{Name: node.Iterator.Value, Typ: types.Int}
	body := c.checkBlock(node.Body, func(env *Environment) {
		env.inLoop = true
		env.Define(iterator.Name, iterator)
	})
	return &ast.ForRangeStatement{Iterator: iterator, Low: low, Op: op, High: high, Body: body}
}

func (c *Checker) checkForInStatement(node *parser.ForInStatement) *ast.ForStatement {
	collection := c.checkExpression(node.Collection)
	arr := c.mustHaveAnArrayType(collection, node.Collection.Pos())

	iterator := &ast.Variable{Name: node.Iterator.Value, Typ: arr.BaseType}
	body := c.checkBlock(node.Body, func(env *Environment) {
		env.inLoop = true
		env.Define(iterator.Name, iterator)
	})
	return &ast.ForStatement{Iterator: iterator, Collection: collection, Body: body}
}
