package builtins

import (
	"questc/pkg/ast"
)

// BuiltinInitializer is implemented by each group of standard library bindings.
type BuiltinInitializer interface {
	// Name returns the group name (e.g., "Math", "Console")
	Name() string

	// Priority returns initialization order (lower = earlier)
	Priority() int

	// InitTypes binds the group's names for the checker
	InitTypes(ctx *TypeContext) error
}

// TypeContext is handed to each initializer while the table is built.
type TypeContext struct {
	// DefineGlobal binds name in the root scope. Binding a name twice is an error.
	DefineGlobal func(name string, entity ast.Entity) error
}

// Priority constants for initialization order
const (
	PriorityPrimitives  = 0
	PriorityMath        = 100
	PriorityCollections = 101
	PriorityConversions = 102
	PriorityConsole     = 103
	PriorityFileSystem  = 104
)
