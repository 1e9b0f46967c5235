package parser

import (
	"bytes"
	"strconv"
	"strings"

	"questc/pkg/lexer"
	"questc/pkg/source"
)

// --- Interfaces ---

// Node is the base interface for all syntax tree nodes. Every node keeps the
// token it starts at so diagnostics can point back into the source.
type Node interface {
	TokenLiteral() string
	Pos() lexer.Token
	String() string
}

// Statement represents a statement node in the syntax tree.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the syntax tree.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpression is a type as written in source: a name, `[T]`, or `(T, U): R`.
type TypeExpression interface {
	Node
	typeNode()
}

// Member is one entry of a class body: a *FieldDeclaration or a *FunctionDeclaration.
type Member interface {
	Node
	memberNode()
}

// --- Program Node ---

// Program is the root node of the syntax tree.
type Program struct {
	Statements []Statement
	Source     *source.SourceFile // for diagnostics in later passes
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Token{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// --- Statement Nodes ---

// VariableDeclaration is `stat x = e;` (mutable) or `const x = e;`.
type VariableDeclaration struct {
	Token lexer.Token // STAT or CONST
	Name  *Identifier
	Value Expression
}

func (vd *VariableDeclaration) Mutable() bool { return vd.Token.Type == lexer.STAT }

func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDeclaration) Pos() lexer.Token     { return vd.Token }
func (vd *VariableDeclaration) String() string {
	return vd.Token.Literal + " " + vd.Name.String() + " = " + vd.Value.String() + ";"
}

// ClassDeclaration is `class Name { members }`.
type ClassDeclaration struct {
	Token   lexer.Token // CLASS
	Name    *Identifier
	Members []Member
}

func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDeclaration) Pos() lexer.Token     { return cd.Token }
func (cd *ClassDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("class " + cd.Name.String() + " {")
	for _, m := range cd.Members {
		out.WriteString(" " + m.String())
	}
	out.WriteString(" }")
	return out.String()
}

// FieldDeclaration is a data member `name: Type;`.
type FieldDeclaration struct {
	Name *Identifier
	Type TypeExpression
}

func (fd *FieldDeclaration) memberNode()          {}
func (fd *FieldDeclaration) TokenLiteral() string { return fd.Name.TokenLiteral() }
func (fd *FieldDeclaration) Pos() lexer.Token     { return fd.Name.Token }
func (fd *FieldDeclaration) String() string {
	return fd.Name.String() + ": " + fd.Type.String() + ";"
}

// Parameter is `name: Type` in a skill signature.
type Parameter struct {
	Name *Identifier
	Type TypeExpression
}

func (p *Parameter) String() string { return p.Name.String() + ": " + p.Type.String() }

// FunctionDeclaration is `skill name(params): Type { body }`. ReturnType is
// nil when omitted. Inside a class body it declares a method.
type FunctionDeclaration struct {
	Token      lexer.Token // SKILL
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeExpression
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) memberNode()          {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) Pos() lexer.Token     { return fd.Token }
func (fd *FunctionDeclaration) String() string {
	params := make([]string, len(fd.Parameters))
	for i, p := range fd.Parameters {
		params[i] = p.String()
	}
	s := "skill " + fd.Name.String() + "(" + strings.Join(params, ", ") + ")"
	if fd.ReturnType != nil {
		s += ": " + fd.ReturnType.String()
	}
	return s + " " + fd.Body.String()
}

// BumpStatement is `target++;` or `target--;`.
type BumpStatement struct {
	Token  lexer.Token // INC or DEC
	Target Expression
}

func (bs *BumpStatement) IsIncrement() bool { return bs.Token.Type == lexer.INC }

func (bs *BumpStatement) statementNode()       {}
func (bs *BumpStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BumpStatement) Pos() lexer.Token     { return bs.Target.Pos() }
func (bs *BumpStatement) String() string       { return bs.Target.String() + bs.Token.Literal + ";" }

// AssignStatement is `target = value;`.
type AssignStatement struct {
	Token  lexer.Token // ASSIGN
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() lexer.Token     { return as.Target.Pos() }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

// CallStatement is a call whose value, if any, is discarded.
type CallStatement struct {
	Call *CallExpression
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Call.TokenLiteral() }
func (cs *CallStatement) Pos() lexer.Token     { return cs.Call.Pos() }
func (cs *CallStatement) String() string       { return cs.Call.String() + ";" }

type BreakStatement struct {
	Token lexer.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() lexer.Token     { return bs.Token }
func (bs *BreakStatement) String() string       { return "break;" }

// ReturnStatement is `reward value;`; Value is nil for the short form `reward;`.
type ReturnStatement struct {
	Token lexer.Token // REWARD
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Token     { return rs.Token }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "reward;"
	}
	return "reward " + rs.Value.String() + ";"
}

// BlockStatement is a braced statement list.
type BlockStatement struct {
	Token      lexer.Token // LBRACE
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() lexer.Token     { return bs.Token }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range bs.Statements {
		out.WriteString(" " + s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// IfStatement is `encounter (cond) { } [fallback { } | fallback encounter ...]`.
// Alternative is nil, a *BlockStatement, or an *IfStatement for else-if chains.
type IfStatement struct {
	Token       lexer.Token // ENCOUNTER
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Token     { return is.Token }
func (is *IfStatement) String() string {
	s := "encounter (" + is.Condition.String() + ") " + is.Consequence.String()
	if is.Alternative != nil {
		s += " fallback " + is.Alternative.String()
	}
	return s
}

// WhileStatement is `quest (cond) { }`.
type WhileStatement struct {
	Token     lexer.Token // QUEST
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Token     { return ws.Token }
func (ws *WhileStatement) String() string {
	return "quest (" + ws.Condition.String() + ") " + ws.Body.String()
}

// RepeatStatement is `repeat (count) { }`.
type RepeatStatement struct {
	Token lexer.Token // REPEAT
	Count Expression
	Body  *BlockStatement
}

func (rs *RepeatStatement) statementNode()       {}
func (rs *RepeatStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RepeatStatement) Pos() lexer.Token     { return rs.Token }
func (rs *RepeatStatement) String() string {
	return "repeat (" + rs.Count.String() + ") " + rs.Body.String()
}

// ForRangeStatement is `for (i in low...high)` or `for (i in low..<high)`.
type ForRangeStatement struct {
	Token    lexer.Token // FOR
	Iterator *Identifier
	Low      Expression
	Operator lexer.Token // SPREAD or UNTIL
	High     Expression
	Body     *BlockStatement
}

func (fs *ForRangeStatement) statementNode()       {}
func (fs *ForRangeStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForRangeStatement) Pos() lexer.Token     { return fs.Token }
func (fs *ForRangeStatement) String() string {
	return "for (" + fs.Iterator.String() + " in " + fs.Low.String() + fs.Operator.Literal + fs.High.String() + ") " + fs.Body.String()
}

// ForInStatement is `for (x in collection)`.
type ForInStatement struct {
	Token      lexer.Token // FOR
	Iterator   *Identifier
	Collection Expression
	Body       *BlockStatement
}

func (fs *ForInStatement) statementNode()       {}
func (fs *ForInStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForInStatement) Pos() lexer.Token     { return fs.Token }
func (fs *ForInStatement) String() string {
	return "for (" + fs.Iterator.String() + " in " + fs.Collection.String() + ") " + fs.Body.String()
}

// --- Type Expressions ---

// NamedType is a type written as an identifier, e.g. `int` or `Point`.
type NamedType struct {
	Token lexer.Token
	Name  string
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Literal }
func (nt *NamedType) Pos() lexer.Token     { return nt.Token }
func (nt *NamedType) String() string       { return nt.Name }

// ArrayTypeExpression is `[T]`.
type ArrayTypeExpression struct {
	Token       lexer.Token // LBRACKET
	ElementType TypeExpression
}

func (at *ArrayTypeExpression) typeNode()            {}
func (at *ArrayTypeExpression) TokenLiteral() string { return at.Token.Literal }
func (at *ArrayTypeExpression) Pos() lexer.Token     { return at.Token }
func (at *ArrayTypeExpression) String() string       { return "[" + at.ElementType.String() + "]" }

// FunctionTypeExpression is `(T1, T2): R`.
type FunctionTypeExpression struct {
	Token      lexer.Token // LPAREN
	Parameters []TypeExpression
	ReturnType TypeExpression
}

func (ft *FunctionTypeExpression) typeNode()            {}
func (ft *FunctionTypeExpression) TokenLiteral() string { return ft.Token.Literal }
func (ft *FunctionTypeExpression) Pos() lexer.Token     { return ft.Token }
func (ft *FunctionTypeExpression) String() string {
	params := make([]string, len(ft.Parameters))
	for i, p := range ft.Parameters {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + "): " + ft.ReturnType.String()
}

// --- Expression Nodes ---

type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Token     { return i.Token }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Token     { return il.Token }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Pos() lexer.Token     { return fl.Token }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() lexer.Token     { return sl.Token }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Token     { return bl.Token }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// PrefixExpression is `-x`, `!x` or `...x`.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) Pos() lexer.Token     { return pe.Token }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression is a binary operator application. Token is the operator.
type InfixExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() lexer.Token     { return ie.Left.Pos() }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// ConditionalExpression is `cond ? consequence : alternative`. Colon is kept
// because arm type mismatches are reported there.
type ConditionalExpression struct {
	Token       lexer.Token // QUESTION
	Condition   Expression
	Consequence Expression
	Colon       lexer.Token
	Alternative Expression
}

func (ce *ConditionalExpression) expressionNode()      {}
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *ConditionalExpression) Pos() lexer.Token     { return ce.Condition.Pos() }
func (ce *ConditionalExpression) String() string {
	return "(" + ce.Condition.String() + " ? " + ce.Consequence.String() + " : " + ce.Alternative.String() + ")"
}

// ArrayLiteral is a non-empty `[a, b, c]`.
type ArrayLiteral struct {
	Token    lexer.Token // LBRACKET
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) Pos() lexer.Token     { return al.Token }
func (al *ArrayLiteral) String() string {
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// EmptyArrayExpression is `[T]()`.
type EmptyArrayExpression struct {
	Type TypeExpression
}

func (ea *EmptyArrayExpression) expressionNode()      {}
func (ea *EmptyArrayExpression) TokenLiteral() string { return ea.Type.TokenLiteral() }
func (ea *EmptyArrayExpression) Pos() lexer.Token     { return ea.Type.Pos() }
func (ea *EmptyArrayExpression) String() string       { return ea.Type.String() + "()" }

// IndexExpression is `left[index]`.
type IndexExpression struct {
	Token lexer.Token // LBRACKET
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() lexer.Token     { return ie.Left.Pos() }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

// MemberExpression is `object.property`.
type MemberExpression struct {
	Token    lexer.Token // DOT
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) Pos() lexer.Token     { return me.Object.Pos() }
func (me *MemberExpression) String() string {
	return "(" + me.Object.String() + "." + me.Property.String() + ")"
}

// CallExpression is `function(arguments)`. Token is the opening paren, where
// argument count mismatches are reported.
type CallExpression struct {
	Token     lexer.Token // LPAREN
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() lexer.Token     { return ce.Function.Pos() }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}
