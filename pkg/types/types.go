package types

import (
	"strings"
)

// Type is the interface implemented by all type representations.
type Type interface {
	// String renders the type the way diagnostics show it, e.g. `(int, float)->string`.
	String() string
	// Equals reports structural equivalence (see Equivalent).
	Equals(other Type) bool

	// typeNode closes the set of types to this package.
	typeNode()
}

// --- Primitive Types ---

// Primitive is a built-in scalar type. Primitives are singletons and compare by identity.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string         { return p.Name }
func (p *Primitive) Equals(other Type) bool { return Equivalent(p, other) }
func (p *Primitive) typeNode()              {}

var (
	Int     = &Primitive{Name: "int"}
	Float   = &Primitive{Name: "float"}
	String  = &Primitive{Name: "string"}
	Boolean = &Primitive{Name: "boolean"}
	Void    = &Primitive{Name: "void"}
	Any     = &Primitive{Name: "any"}
)

// Primitives lists every primitive in the order the standard library binds them.
var Primitives = []*Primitive{Int, Float, Boolean, String, Void, Any}

// --- Composite Types ---

// ArrayType is an ordered collection of BaseType values.
type ArrayType struct {
	BaseType Type
}

func NewArrayType(base Type) *ArrayType { return &ArrayType{BaseType: base} }

func (at *ArrayType) String() string         { return "[" + describe(at.BaseType) + "]" }
func (at *ArrayType) Equals(other Type) bool { return Equivalent(at, other) }
func (at *ArrayType) typeNode()              {}

// FunctionType is the signature of a function value.
type FunctionType struct {
	ParameterTypes []Type
	ReturnType     Type
}

func NewFunctionType(params []Type, ret Type) *FunctionType {
	return &FunctionType{ParameterTypes: params, ReturnType: ret}
}

func (ft *FunctionType) String() string {
	params := make([]string, len(ft.ParameterTypes))
	for i, p := range ft.ParameterTypes {
		params[i] = describe(p)
	}
	return "(" + strings.Join(params, ", ") + ")->" + describe(ft.ReturnType)
}
func (ft *FunctionType) Equals(other Type) bool { return Equivalent(ft, other) }
func (ft *FunctionType) typeNode()              {}

// MethodDecl is the declaration behind a method field. The typed AST's
// function declaration implements it.
type MethodDecl interface {
	MethodName() string
}

// Field is one member of a class. Methods are fields whose type is the
// method's function type.
type Field struct {
	Name     string
	Type     Type
	IsMethod bool
	Method   MethodDecl // nil unless IsMethod
}

// ClassType is a nominal record type. Classes compare by identity. Fields is
// filled in while the class body is analyzed, after the class has already
// been bound in scope.
type ClassType struct {
	Name   string
	Fields []*Field
}

func NewClassType(name string) *ClassType { return &ClassType{Name: name} }

func (ct *ClassType) String() string         { return ct.Name }
func (ct *ClassType) Equals(other Type) bool { return Equivalent(ct, other) }
func (ct *ClassType) typeNode()              {}

// Field looks a member up by name.
func (ct *ClassType) Field(name string) (*Field, bool) {
	for _, f := range ct.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// DataFields returns the non-method fields in declaration order; these are
// the constructor's parameters.
func (ct *ClassType) DataFields() []*Field {
	var out []*Field
	for _, f := range ct.Fields {
		if !f.IsMethod {
			out = append(out, f)
		}
	}
	return out
}

// MethodCount is the number of method fields.
func (ct *ClassType) MethodCount() int {
	return len(ct.Fields) - len(ct.DataFields())
}

// HasDistinctFields reports whether no two fields share a name.
func (ct *ClassType) HasDistinctFields() bool {
	seen := make(map[string]bool, len(ct.Fields))
	for _, f := range ct.Fields {
		if seen[f.Name] {
			return false
		}
		seen[f.Name] = true
	}
	return true
}

// IncludesAsField reports whether target is the type of one of ct's fields,
// directly or through a chain of class-typed fields.
func (ct *ClassType) IncludesAsField(target Type) bool {
	return includesAsField(ct, target, map[*ClassType]bool{})
}

func includesAsField(ct *ClassType, target Type, visited map[*ClassType]bool) bool {
	if visited[ct] {
		return false
	}
	visited[ct] = true
	for _, f := range ct.Fields {
		if f.Type == target {
			return true
		}
		if inner, ok := f.Type.(*ClassType); ok && includesAsField(inner, target, visited) {
			return true
		}
	}
	return false
}

// IsSelfContaining reports whether the class includes itself as a field.
func (ct *ClassType) IsSelfContaining() bool {
	return ct.IncludesAsField(ct)
}

// Description is the human readable signature used in diagnostics.
func Description(t Type) string {
	return describe(t)
}

func describe(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
