package checker

import (
	"questc/pkg/ast"
	"questc/pkg/builtins"
	"questc/pkg/types"
)

// Environment is one frame of the scope chain. Besides its bindings a frame
// records whether it sits inside a loop, which function it belongs to and
// which class is being declared; child frames inherit all three.
type Environment struct {
	symbols map[string]ast.Entity
	outer   *Environment

	inLoop   bool
	function *ast.Function
	class    *types.ClassType
}

// NewRootEnvironment creates the outermost frame, pre-populated with the
// standard library bindings.
func NewRootEnvironment(lib *builtins.Table) *Environment {
	env := &Environment{symbols: make(map[string]ast.Entity)}
	lib.Each(func(name string, entity ast.Entity) {
		env.symbols[name] = entity
	})
	return env
}

// NewEnclosedEnvironment creates a frame nested within outer. The loop,
// function and class context carry over unless the caller overrides them.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{
		symbols:  make(map[string]ast.Entity),
		outer:    outer,
		inLoop:   outer.inLoop,
		function: outer.function,
		class:    outer.class,
	}
}

// Define binds name in this frame only.
func (e *Environment) Define(name string, entity ast.Entity) {
	e.symbols[name] = entity
}

// Resolve looks name up in this frame and then outward.
func (e *Environment) Resolve(name string) (ast.Entity, bool) {
	for env := e; env != nil; env = env.outer {
		if entity, ok := env.symbols[name]; ok {
			return entity, true
		}
	}
	return nil, false
}

// ResolveImmediate looks name up in this frame only.
func (e *Environment) ResolveImmediate(name string) (ast.Entity, bool) {
	entity, ok := e.symbols[name]
	return entity, ok
}

func (e *Environment) InLoop() bool            { return e.inLoop }
func (e *Environment) Function() *ast.Function { return e.function }
func (e *Environment) Class() *types.ClassType { return e.class }
