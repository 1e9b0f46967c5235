package builtins

import (
	"fmt"
	"sort"
	"sync"

	"questc/pkg/ast"
)

// GetStandardInitializers returns all built-in initializers sorted by priority
func GetStandardInitializers() []BuiltinInitializer {
	initializers := []BuiltinInitializer{
		&FileSystemInitializer{},
		&ConsoleInitializer{},
		&ConversionsInitializer{},
		&CollectionsInitializer{},
		&MathInitializer{},
		&PrimitivesInitializer{},
	}
	sort.SliceStable(initializers, func(i, j int) bool {
		return initializers[i].Priority() < initializers[j].Priority()
	})
	return initializers
}

// Table is the immutable set of standard library bindings seeded into the
// root scope of every analysis.
type Table struct {
	names    []string
	entities map[string]ast.Entity
}

// Lookup returns the entity bound to name.
func (t *Table) Lookup(name string) (ast.Entity, bool) {
	e, ok := t.entities[name]
	return e, ok
}

// Names returns the bound names in definition order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Each calls fn for every binding in definition order.
func (t *Table) Each(fn func(name string, entity ast.Entity)) {
	for _, name := range t.names {
		fn(name, t.entities[name])
	}
}

// Intrinsic returns the intrinsic function bound for tag.
func (t *Table) Intrinsic(tag ast.Intrinsic) *ast.Function {
	fn, _ := t.entities[tag.String()].(*ast.Function)
	return fn
}

var (
	standardOnce  sync.Once
	standardTable *Table
	standardErr   error
)

// StandardLibrary builds the table on first use and shares it afterwards.
func StandardLibrary() *Table {
	standardOnce.Do(func() {
		standardTable, standardErr = NewTable(GetStandardInitializers())
	})
	if standardErr != nil {
		panic(standardErr)
	}
	return standardTable
}

// NewTable runs the initializers in order and collects their bindings.
func NewTable(initializers []BuiltinInitializer) (*Table, error) {
	t := &Table{entities: make(map[string]ast.Entity)}
	for _, bi := range initializers {
		ctx := &TypeContext{
			DefineGlobal: func(name string, entity ast.Entity) error {
				if _, exists := t.entities[name]; exists {
					return fmt.Errorf("%s: %q is already defined", bi.Name(), name)
				}
				t.names = append(t.names, name)
				t.entities[name] = entity
				return nil
			},
		}
		if err := bi.InitTypes(ctx); err != nil {
			return nil, err
		}
	}
	return t, nil
}
