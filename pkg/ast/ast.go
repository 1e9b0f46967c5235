// Package ast is the typed abstract syntax tree produced by the checker,
// rewritten by the optimizer and lowered by the emitter.
//
// Nodes carry no source positions; positions only matter for diagnostics,
// which are reported before a tree is ever returned.
package ast

import (
	"questc/pkg/types"
)

// --- Interfaces ---

// Node is the base interface for all typed AST nodes.
type Node interface {
	node()
}

// Statement is a node that is lowered to whole lines of output.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that is lowered to inline text and has a static type.
type Expression interface {
	Node
	expressionNode()
	Type() types.Type
}

// Entity is anything a name can be bound to in a scope: a *Variable, a
// *Function, or a types.Type (primitive or class).
type Entity interface{}

// Program is the root of the typed tree.
type Program struct {
	Statements []Statement
}

func (p *Program) node() {}

// --- Entities ---

// Variable is created once by a declaration, parameter or loop header and
// then shared by every node that reads or assigns it.
type Variable struct {
	Name    string
	Mutable bool
	Typ     types.Type
}

func (v *Variable) node()            {}
func (v *Variable) expressionNode()  {}
func (v *Variable) Type() types.Type { return v.Typ }

// Function is a user function, a method, or an intrinsic from the standard
// library. Intrinsics have no parameter entities and no body. Owner is set
// for methods.
type Function struct {
	Name      string
	Params    []*Variable
	Body      []Statement
	Typ       *types.FunctionType
	Intrinsic Intrinsic
	Owner     *types.ClassType
}

func (f *Function) node()            {}
func (f *Function) expressionNode()  {}
func (f *Function) Type() types.Type {
	if f.Typ == nil {
		return nil // signature not analyzed yet
	}
	return f.Typ
}

// IsIntrinsic reports whether calls to f are lowered through the intrinsic table.
func (f *Function) IsIntrinsic() bool { return f.Intrinsic != NotIntrinsic }

// MethodField returns the field of Owner that holds f, or nil for plain functions.
func (f *Function) MethodField() *types.Field {
	if f.Owner == nil {
		return nil
	}
	for _, field := range f.Owner.Fields {
		if decl, ok := field.Method.(*FunctionDeclaration); ok && decl.Fun == f {
			return field
		}
	}
	return nil
}

// --- Statements ---

type VariableDeclaration struct {
	Variable    *Variable
	Initializer Expression
}

// TypeDeclaration declares a class. Methods are reachable through the
// class's method fields.
type TypeDeclaration struct {
	Class *types.ClassType
}

type FunctionDeclaration struct {
	Fun *Function
}

// MethodName lets a declaration stand behind a class's method field.
func (d *FunctionDeclaration) MethodName() string { return d.Fun.Name }

type Increment struct {
	Target Expression
}

type Decrement struct {
	Target Expression
}

type Assignment struct {
	Target Expression
	Source Expression
}

type BreakStatement struct{}

type ReturnStatement struct {
	Expression Expression
}

type ShortReturnStatement struct{}

// Block is a statement list; it is also the plain `fallback { ... }` alternative.
type Block []Statement

// Alternative is what follows `fallback`: a Block, or another if statement
// when the chain continues.
type Alternative interface {
	alternativeNode()
}

// IfStatement has both branches. An else-if chain nests the trailing if
// statement directly as Alternate.
type IfStatement struct {
	Test       Expression
	Consequent Block
	Alternate  Alternative
}

// ShortIfStatement has no fallback.
type ShortIfStatement struct {
	Test       Expression
	Consequent Block
}

type WhileStatement struct {
	Test Expression
	Body Block
}

// RepeatStatement runs Body Count times; a non-positive count runs it zero times.
type RepeatStatement struct {
	Count Expression
	Body  Block
}

// RangeOp selects the comparison of a ranged for loop.
type RangeOp string

const (
	RangeInclusive RangeOp = "..."
	RangeExclusive RangeOp = "..<"
)

type ForRangeStatement struct {
	Iterator *Variable
	Low      Expression
	Op       RangeOp
	High     Expression
	Body     Block
}

// ForStatement iterates over the elements of an array.
type ForStatement struct {
	Iterator   *Variable
	Collection Expression
	Body       Block
}

// CallStatement is a call used for its effect.
type CallStatement struct {
	Call Expression
}

func (*VariableDeclaration) node()  {}
func (*TypeDeclaration) node()      {}
func (*FunctionDeclaration) node()  {}
func (*Increment) node()            {}
func (*Decrement) node()            {}
func (*Assignment) node()           {}
func (*BreakStatement) node()       {}
func (*ReturnStatement) node()      {}
func (*ShortReturnStatement) node() {}
func (Block) node()                 {}
func (*IfStatement) node()          {}
func (*ShortIfStatement) node()     {}
func (*WhileStatement) node()       {}
func (*RepeatStatement) node()      {}
func (*ForRangeStatement) node()    {}
func (*ForStatement) node()         {}
func (*CallStatement) node()        {}

func (*VariableDeclaration) statementNode()  {}
func (*TypeDeclaration) statementNode()      {}
func (*FunctionDeclaration) statementNode()  {}
func (*Increment) statementNode()            {}
func (*Decrement) statementNode()            {}
func (*Assignment) statementNode()           {}
func (*BreakStatement) statementNode()       {}
func (*ReturnStatement) statementNode()      {}
func (*ShortReturnStatement) statementNode() {}
func (*IfStatement) statementNode()          {}
func (*ShortIfStatement) statementNode()     {}
func (*WhileStatement) statementNode()       {}
func (*RepeatStatement) statementNode()      {}
func (*ForRangeStatement) statementNode()    {}
func (*ForStatement) statementNode()         {}
func (*CallStatement) statementNode()        {}

func (Block) alternativeNode()             {}
func (*IfStatement) alternativeNode()      {}
func (*ShortIfStatement) alternativeNode() {}
