package ast

import (
	"fmt"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/xlab/treeprint"

	"questc/pkg/types"
)

// Dump renders the program as an indented tree, one node per line.
func Dump(p *Program) string {
	root := treeprint.New()
	prog := root.AddBranch("Program")
	d := dumper{}
	for _, s := range p.Statements {
		d.statement(prog, s)
	}
	return root.String()
}

var rawConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpRaw renders every field of every node, following pointers.
func DumpRaw(p *Program) string {
	return rawConfig.Sdump(p)
}

type dumper struct{}

func (d dumper) block(t treeprint.Tree, label string, stmts []Statement) {
	b := t.AddBranch(label)
	for _, s := range stmts {
		d.statement(b, s)
	}
}

func (d dumper) statement(t treeprint.Tree, s Statement) {
	switch s := s.(type) {
	case *VariableDeclaration:
		b := t.AddBranch("VariableDeclaration " + entityLabel(s.Variable))
		d.expression(b, s.Initializer)
	case *TypeDeclaration:
		b := t.AddBranch("TypeDeclaration " + s.Class.Name)
		for _, f := range s.Class.Fields {
			if f.IsMethod {
				if decl, ok := f.Method.(*FunctionDeclaration); ok {
					d.function(b, "Method", decl.Fun)
					continue
				}
			}
			b.AddNode(fmt.Sprintf("Field %s: %s", f.Name, types.Description(f.Type)))
		}
	case *FunctionDeclaration:
		d.function(t, "FunctionDeclaration", s.Fun)
	case *Increment:
		d.expression(t.AddBranch("Increment"), s.Target)
	case *Decrement:
		d.expression(t.AddBranch("Decrement"), s.Target)
	case *Assignment:
		b := t.AddBranch("Assignment")
		d.expression(b, s.Target)
		d.expression(b, s.Source)
	case *BreakStatement:
		t.AddNode("BreakStatement")
	case *ReturnStatement:
		d.expression(t.AddBranch("ReturnStatement"), s.Expression)
	case *ShortReturnStatement:
		t.AddNode("ShortReturnStatement")
	case *IfStatement:
		d.ifStatement(t, s)
	case *ShortIfStatement:
		b := t.AddBranch("ShortIfStatement")
		d.expression(b, s.Test)
		d.block(b, "then", s.Consequent)
	case *WhileStatement:
		b := t.AddBranch("WhileStatement")
		d.expression(b, s.Test)
		d.block(b, "body", s.Body)
	case *RepeatStatement:
		b := t.AddBranch("RepeatStatement")
		d.expression(b, s.Count)
		d.block(b, "body", s.Body)
	case *ForRangeStatement:
		b := t.AddBranch(fmt.Sprintf("ForRangeStatement %s %s", entityLabel(s.Iterator), s.Op))
		d.expression(b, s.Low)
		d.expression(b, s.High)
		d.block(b, "body", s.Body)
	case *ForStatement:
		b := t.AddBranch("ForStatement " + entityLabel(s.Iterator))
		d.expression(b, s.Collection)
		d.block(b, "body", s.Body)
	case *CallStatement:
		d.expression(t, s.Call)
	default:
		t.AddNode(fmt.Sprintf("<unknown statement %T>", s))
	}
}

func (d dumper) ifStatement(t treeprint.Tree, s *IfStatement) {
	b := t.AddBranch("IfStatement")
	d.expression(b, s.Test)
	d.block(b, "then", s.Consequent)
	switch alt := s.Alternate.(type) {
	case Block:
		d.block(b, "else", alt)
	case *IfStatement:
		d.ifStatement(b.AddBranch("else"), alt)
	case *ShortIfStatement:
		d.statement(b.AddBranch("else"), alt)
	}
}

func (d dumper) function(t treeprint.Tree, label string, f *Function) {
	b := t.AddBranch(fmt.Sprintf("%s %s: %s", label, f.Name, types.Description(f.Type())))
	for _, p := range f.Params {
		b.AddNode("Param " + entityLabel(p))
	}
	d.block(b, "body", f.Body)
}

func (d dumper) expression(t treeprint.Tree, e Expression) {
	typ := func(e Expression) string { return ": " + types.Description(e.Type()) }
	switch e := e.(type) {
	case *IntLiteral:
		t.AddNode(strconv.FormatInt(e.Value, 10) + typ(e))
	case *FloatLiteral:
		t.AddNode(strconv.FormatFloat(e.Value, 'g', -1, 64) + typ(e))
	case *StringLiteral:
		t.AddNode(strconv.Quote(e.Value) + typ(e))
	case *BoolLiteral:
		t.AddNode(strconv.FormatBool(e.Value) + typ(e))
	case *Variable:
		t.AddNode("Variable " + entityLabel(e))
	case *Function:
		t.AddNode("Function " + e.Name + typ(e))
	case *Conditional:
		b := t.AddBranch("Conditional" + typ(e))
		d.expression(b, e.Test)
		d.expression(b, e.Consequent)
		d.expression(b, e.Alternate)
	case *BinaryExpression:
		b := t.AddBranch(fmt.Sprintf("BinaryExpression %s%s", e.Op, typ(e)))
		d.expression(b, e.Left)
		d.expression(b, e.Right)
	case *UnaryExpression:
		b := t.AddBranch(fmt.Sprintf("UnaryExpression %s%s", e.Op, typ(e)))
		d.expression(b, e.Operand)
	case *Effect:
		b := t.AddBranch(e.Intrinsic.EffectName())
		for _, a := range e.Args {
			d.expression(b, a)
		}
	case *SubscriptExpression:
		b := t.AddBranch("SubscriptExpression" + typ(e))
		d.expression(b, e.Array)
		d.expression(b, e.Index)
	case *ArrayExpression:
		b := t.AddBranch("ArrayExpression" + typ(e))
		for _, el := range e.Elements {
			d.expression(b, el)
		}
	case *EmptyArray:
		t.AddNode("EmptyArray" + typ(e))
	case *MemberExpression:
		b := t.AddBranch(fmt.Sprintf("MemberExpression .%s%s", e.Field.Name, typ(e)))
		d.expression(b, e.Object)
	case *FunctionCall:
		b := t.AddBranch("FunctionCall" + typ(e))
		d.expression(b, e.Callee)
		for _, a := range e.Args {
			d.expression(b, a)
		}
	case *ConstructorCall:
		b := t.AddBranch("ConstructorCall " + e.Class.Name)
		for _, a := range e.Args {
			d.expression(b, a)
		}
	case *ThisExpression:
		t.AddNode("ThisExpression" + typ(e))
	default:
		t.AddNode(fmt.Sprintf("<unknown expression %T>", e))
	}
}

func entityLabel(v *Variable) string {
	label := v.Name + ": " + types.Description(v.Typ)
	if v.Mutable {
		label += " (mutable)"
	}
	return label
}
