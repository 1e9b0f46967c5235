// Package optimizer simplifies a typed Quest program without changing its
// node shapes: literal folding, algebraic identities and dead branch pruning.
package optimizer

import (
	"go.uber.org/zap"

	"questc/pkg/ast"
	"questc/pkg/types"
)

// Optimizer rewrites a typed AST in place. Entities (variables, functions,
// classes) are never replaced, so later passes can still key on identity.
type Optimizer struct {
	logger *zap.Logger

	folded int
	pruned int
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger reports rewrite counts at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Optimizer) { o.logger = logger }
}

func New(opts ...Option) *Optimizer {
	o := &Optimizer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize simplifies p and returns it.
func (o *Optimizer) Optimize(p *ast.Program) *ast.Program {
	o.folded, o.pruned = 0, 0
	p.Statements = o.statements(p.Statements)
	o.logger.Debug("Optimized program",
		zap.Int("folded", o.folded),
		zap.Int("pruned", o.pruned))
	return p
}

// Optimize runs a fresh Optimizer over p.
func Optimize(p *ast.Program) *ast.Program {
	return New().Optimize(p)
}

func (o *Optimizer) statements(stmts []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, o.statement(s)...)
	}
	return out
}

func (o *Optimizer) block(b ast.Block) ast.Block {
	return ast.Block(o.statements(b))
}

// statement returns the replacement for s: usually s itself, nothing when s
// can never run, or the statements of a branch that always runs.
func (o *Optimizer) statement(s ast.Statement) []ast.Statement {
	switch s := s.(type) {
	case *ast.VariableDeclaration:
		s.Initializer = o.expression(s.Initializer)
	case *ast.TypeDeclaration:
		for _, f := range s.Class.Fields {
			if decl, ok := f.Method.(*ast.FunctionDeclaration); ok {
				decl.Fun.Body = o.statements(decl.Fun.Body)
			}
		}
	case *ast.FunctionDeclaration:
		s.Fun.Body = o.statements(s.Fun.Body)
	case *ast.Increment:
		s.Target = o.expression(s.Target)
	case *ast.Decrement:
		s.Target = o.expression(s.Target)
	case *ast.Assignment:
		s.Target = o.expression(s.Target)
		s.Source = o.expression(s.Source)
		if v, ok := s.Target.(*ast.Variable); ok && s.Source == ast.Expression(v) {
			o.pruned++
			return nil
		}
	case *ast.ReturnStatement:
		s.Expression = o.expression(s.Expression)
	case *ast.IfStatement:
		return o.ifStatement(s)
	case *ast.ShortIfStatement:
		s.Test = o.expression(s.Test)
		if test, ok := s.Test.(*ast.BoolLiteral); ok {
			o.pruned++
			if test.Value {
				return o.block(s.Consequent)
			}
			return nil
		}
		s.Consequent = o.block(s.Consequent)
	case *ast.WhileStatement:
		s.Test = o.expression(s.Test)
		if test, ok := s.Test.(*ast.BoolLiteral); ok && !test.Value {
			o.pruned++
			return nil
		}
		s.Body = o.block(s.Body)
	case *ast.RepeatStatement:
		s.Count = o.expression(s.Count)
		if count, ok := s.Count.(*ast.IntLiteral); ok && count.Value <= 0 {
			o.pruned++
			return nil
		}
		s.Body = o.block(s.Body)
	case *ast.ForRangeStatement:
		s.Low = o.expression(s.Low)
		s.High = o.expression(s.High)
		s.Body = o.block(s.Body)
	case *ast.ForStatement:
		s.Collection = o.expression(s.Collection)
		s.Body = o.block(s.Body)
	case *ast.CallStatement:
		s.Call = o.expression(s.Call)
	}
	return []ast.Statement{s}
}

func (o *Optimizer) ifStatement(s *ast.IfStatement) []ast.Statement {
	s.Test = o.expression(s.Test)
	if test, ok := s.Test.(*ast.BoolLiteral); ok {
		o.pruned++
		if test.Value {
			return o.block(s.Consequent)
		}
		switch alt := s.Alternate.(type) {
		case ast.Block:
			return o.block(alt)
		case ast.Statement:
			return o.statement(alt)
		}
		return nil
	}

	s.Consequent = o.block(s.Consequent)
	switch alt := s.Alternate.(type) {
	case ast.Block:
		s.Alternate = o.block(alt)
	case ast.Statement:
		// A trailing if that folds away leaves a plain fallback block.
		rest := o.statement(alt)
		if len(rest) == 1 {
			if next, ok := rest[0].(ast.Alternative); ok {
				s.Alternate = next
				return []ast.Statement{s}
			}
		}
		if len(rest) == 0 {
			return []ast.Statement{&ast.ShortIfStatement{Test: s.Test, Consequent: s.Consequent}}
		}
		s.Alternate = ast.Block(rest)
	}
	return []ast.Statement{s}
}

func (o *Optimizer) expressions(es []ast.Expression) {
	for i, e := range es {
		es[i] = o.expression(e)
	}
}

func (o *Optimizer) expression(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.Conditional:
		e.Test = o.expression(e.Test)
		e.Consequent = o.expression(e.Consequent)
		e.Alternate = o.expression(e.Alternate)
		if test, ok := e.Test.(*ast.BoolLiteral); ok {
			o.folded++
			if test.Value {
				return e.Consequent
			}
			return e.Alternate
		}
	case *ast.BinaryExpression:
		e.Left = o.expression(e.Left)
		e.Right = o.expression(e.Right)
		if e.Intrinsic != ast.NotIntrinsic {
			return e
		}
		if folded, ok := o.binary(e); ok {
			o.folded++
			return folded
		}
	case *ast.UnaryExpression:
		e.Operand = o.expression(e.Operand)
		if e.Intrinsic != ast.NotIntrinsic {
			return e
		}
		if b, ok := e.Operand.(*ast.BoolLiteral); ok && e.Op == "!" {
			o.folded++
			return &ast.BoolLiteral{Value: !b.Value}
		}
	case *ast.Effect:
		o.expressions(e.Args)
	case *ast.SubscriptExpression:
		e.Array = o.expression(e.Array)
		e.Index = o.expression(e.Index)
	case *ast.ArrayExpression:
		o.expressions(e.Elements)
	case *ast.MemberExpression:
		e.Object = o.expression(e.Object)
	case *ast.FunctionCall:
		e.Callee = o.expression(e.Callee)
		o.expressions(e.Args)
	case *ast.ConstructorCall:
		o.expressions(e.Args)
	}
	return e
}

// binary folds an operator node whose result is known statically.
func (o *Optimizer) binary(e *ast.BinaryExpression) (ast.Expression, bool) {
	switch e.Op {
	case "&&", "||":
		return logical(e)
	}
	if folded, ok := foldLiterals(e.Op, e.Left, e.Right); ok {
		return folded, true
	}
	return identity(e)
}

func logical(e *ast.BinaryExpression) (ast.Expression, bool) {
	// The short-circuit value: false for &&, true for ||.
	absorbing := e.Op == "||"
	if l, ok := e.Left.(*ast.BoolLiteral); ok {
		if l.Value == absorbing {
			return l, true
		}
		return e.Right, true
	}
	if r, ok := e.Right.(*ast.BoolLiteral); ok && r.Value != absorbing {
		return e.Left, true
	}
	return nil, false
}

// identity drops a neutral literal operand from numeric arithmetic.
func identity(e *ast.BinaryExpression) (ast.Expression, bool) {
	if !types.IsNumeric(e.Type()) {
		return nil, false
	}
	switch e.Op {
	case "+":
		if isNumber(e.Right, 0) && sameType(e.Left, e) {
			return e.Left, true
		}
		if isNumber(e.Left, 0) && sameType(e.Right, e) {
			return e.Right, true
		}
	case "-":
		if isNumber(e.Right, 0) && sameType(e.Left, e) {
			return e.Left, true
		}
	case "*":
		if isNumber(e.Right, 1) && sameType(e.Left, e) {
			return e.Left, true
		}
		if isNumber(e.Left, 1) && sameType(e.Right, e) {
			return e.Right, true
		}
	case "/":
		if isNumber(e.Right, 1) && sameType(e.Left, e) {
			return e.Left, true
		}
	}
	return nil, false
}

func isNumber(e ast.Expression, n int64) bool {
	switch lit := e.(type) {
	case *ast.IntLiteral:
		return lit.Value == n
	case *ast.FloatLiteral:
		return lit.Value == float64(n)
	}
	return false
}

func sameType(a, b ast.Expression) bool {
	return types.Equivalent(a.Type(), b.Type())
}
