// Package checker turns a parsed Quest program into the typed AST, enforcing
// the language's static rules. Analysis stops at the first violation.
package checker

import (
	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/builtins"
	"questc/pkg/errors"
	"questc/pkg/parser"
	"questc/pkg/source"
	"questc/pkg/types"
)

// Checker holds the state of one analysis run. It is not safe for
// concurrent use; create one per compilation.
type Checker struct {
	logger *zap.Logger
	lib    *builtins.Table

	source *source.SourceFile
	env    *Environment

	// building is the class whose body is being analyzed. Only one class
	// can be under construction at a time.
	building *types.ClassType
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger routes scope and declaration events to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// NewChecker creates a checker seeded with the shared standard library.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		logger: zap.NewNop(),
		lib:    builtins.StandardLibrary(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check analyzes program and returns its typed AST. On failure the result is
// nil and errs holds the single semantic error that stopped the analysis.
func (c *Checker) Check(program *parser.Program) (result *ast.Program, errs []errors.QuestError) {
	c.source = program.Source
	c.env = NewRootEnvironment(c.lib)
	c.building = nil

	defer func() {
		if r := recover(); r != nil {
			semErr, ok := r.(*errors.SemanticError)
			if !ok {
				panic(r)
			}
			c.logger.Debug("Analysis failed", zap.String("error", semErr.Error()))
			result, errs = nil, []errors.QuestError{semErr}
		}
	}()

	result = &ast.Program{Statements: c.checkStatements(program.Statements)}
	return result, nil
}

// Check is a convenience wrapper for a one-off analysis.
func Check(program *parser.Program) (*ast.Program, []errors.QuestError) {
	return NewChecker().Check(program)
}

// --- Scopes ---

// enterScope pushes a child frame; configure may override the inherited
// context. The returned func pops it and is meant to be deferred.
func (c *Checker) enterScope(configure func(env *Environment)) func() {
	outer := c.env
	c.env = NewEnclosedEnvironment(outer)
	if configure != nil {
		configure(c.env)
	}
	return func() { c.env = outer }
}

func (c *Checker) declare(name string, entity ast.Entity) {
	c.logger.Debug("Declared", zap.String("name", name), zap.String("entity", entityKind(entity)))
	c.env.Define(name, entity)
}

func entityKind(entity ast.Entity) string {
	switch entity.(type) {
	case *ast.Variable:
		return "variable"
	case *ast.Function:
		return "function"
	case *types.ClassType:
		return "class"
	}
	return "type"
}

// --- Types ---

// resolveType converts a written type into a types.Type. Names must resolve
// to something usable as a type.
func (c *Checker) resolveType(node parser.TypeExpression) types.Type {
	switch node := node.(type) {
	case *parser.NamedType:
		entity, found := c.env.Resolve(node.Name)
		c.mustHaveBeenFound(found, node.Name, node.Token)
		return c.mustBeAType(node.Name, entity, node.Token)
	case *parser.ArrayTypeExpression:
		return types.NewArrayType(c.resolveType(node.ElementType))
	case *parser.FunctionTypeExpression:
		params := make([]types.Type, len(node.Parameters))
		for i, p := range node.Parameters {
			params[i] = c.resolveType(p)
		}
		return types.NewFunctionType(params, c.resolveType(node.ReturnType))
	}
	c.fail(node.Pos(), "Type expected")
	return nil
}
