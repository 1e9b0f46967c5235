package ast

import (
	"questc/pkg/types"
)

// --- Literals ---

type IntLiteral struct {
	Value int64
}

type FloatLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

type BoolLiteral struct {
	Value bool
}

func (*IntLiteral) Type() types.Type    { return types.Int }
func (*FloatLiteral) Type() types.Type  { return types.Float }
func (*StringLiteral) Type() types.Type { return types.String }
func (*BoolLiteral) Type() types.Type   { return types.Boolean }

// --- Operators ---

// Conditional is `test ? consequent : alternate`.
type Conditional struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Typ        types.Type
}

// BinaryExpression is an infix operator, or a two-argument intrinsic call
// folded into operator form (Intrinsic set, Op its name).
type BinaryExpression struct {
	Op        string
	Left      Expression
	Right     Expression
	Typ       types.Type
	Intrinsic Intrinsic
}

// UnaryExpression is a prefix operator (`-`, `!`, `...`), or a one-argument
// intrinsic call folded into operator form.
type UnaryExpression struct {
	Op        string
	Operand   Expression
	Typ       types.Type
	Intrinsic Intrinsic
}

// Effect is a call of a void intrinsic, e.g. Echo.
type Effect struct {
	Intrinsic Intrinsic
	Args      []Expression
}

func (c *Conditional) Type() types.Type      { return c.Typ }
func (b *BinaryExpression) Type() types.Type { return b.Typ }
func (u *UnaryExpression) Type() types.Type  { return u.Typ }
func (*Effect) Type() types.Type             { return types.Void }

// --- Arrays, members and calls ---

type SubscriptExpression struct {
	Array Expression
	Index Expression
}

// Type is the element type of the subscripted array.
func (s *SubscriptExpression) Type() types.Type {
	if at, ok := s.Array.Type().(*types.ArrayType); ok {
		return at.BaseType
	}
	return nil
}

// ArrayExpression is a non-empty array literal; its type is an array of the
// first element's type.
type ArrayExpression struct {
	Elements []Expression
	Typ      *types.ArrayType
}

func NewArrayExpression(elements []Expression) *ArrayExpression {
	return &ArrayExpression{Elements: elements, Typ: types.NewArrayType(elements[0].Type())}
}

func (a *ArrayExpression) Type() types.Type { return a.Typ }

// EmptyArray is `[T]()`.
type EmptyArray struct {
	Typ *types.ArrayType
}

func (e *EmptyArray) Type() types.Type { return e.Typ }

// MemberExpression reads a field. When Object is a *ThisExpression the field
// is read through the receiver binding.
type MemberExpression struct {
	Object Expression
	Field  *types.Field
}

func (m *MemberExpression) Type() types.Type { return m.Field.Type }

// OnReceiver reports whether the member is accessed through `this`.
func (m *MemberExpression) OnReceiver() bool {
	_, ok := m.Object.(*ThisExpression)
	return ok
}

// FunctionCall calls any function-typed value that is not an intrinsic.
type FunctionCall struct {
	Callee Expression
	Args   []Expression
	Typ    types.Type
}

func (c *FunctionCall) Type() types.Type { return c.Typ }

// ReturnsValue reports whether the call produces a value (non-void return).
func (c *FunctionCall) ReturnsValue() bool { return c.Typ != types.Void }

// ConstructorCall instantiates a class; Args are its data fields in order.
type ConstructorCall struct {
	Class *types.ClassType
	Args  []Expression
}

func (c *ConstructorCall) Type() types.Type { return c.Class }

// ThisExpression is the receiver inside a method of Class.
type ThisExpression struct {
	Class *types.ClassType
}

func (t *ThisExpression) Type() types.Type {
	if t.Class == nil {
		return nil // outside any class
	}
	return t.Class
}

func (*IntLiteral) node()          {}
func (*FloatLiteral) node()        {}
func (*StringLiteral) node()       {}
func (*BoolLiteral) node()         {}
func (*Conditional) node()         {}
func (*BinaryExpression) node()    {}
func (*UnaryExpression) node()     {}
func (*Effect) node()              {}
func (*SubscriptExpression) node() {}
func (*ArrayExpression) node()     {}
func (*EmptyArray) node()          {}
func (*MemberExpression) node()    {}
func (*FunctionCall) node()        {}
func (*ConstructorCall) node()     {}
func (*ThisExpression) node()      {}

func (*IntLiteral) expressionNode()          {}
func (*FloatLiteral) expressionNode()        {}
func (*StringLiteral) expressionNode()       {}
func (*BoolLiteral) expressionNode()         {}
func (*Conditional) expressionNode()         {}
func (*BinaryExpression) expressionNode()    {}
func (*UnaryExpression) expressionNode()     {}
func (*Effect) expressionNode()              {}
func (*SubscriptExpression) expressionNode() {}
func (*ArrayExpression) expressionNode()     {}
func (*EmptyArray) expressionNode()          {}
func (*MemberExpression) expressionNode()    {}
func (*FunctionCall) expressionNode()        {}
func (*ConstructorCall) expressionNode()     {}
func (*ThisExpression) expressionNode()      {}
