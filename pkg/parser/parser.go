package parser

import (
	"fmt"
	"math"
	"strconv"

	"questc/pkg/errors"
	"questc/pkg/lexer"
	"questc/pkg/source"
)

// --- Debug Flag ---
const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[Parser Debug] "+format+"\n", args...)
	}
}

// --- End Debug Flag ---

// Parser builds a syntax tree from Quest source. Parsing stops at the first
// error: every parse function either returns a complete node or unwinds to
// ParseProgram with a bailout.
type Parser struct {
	source *source.SourceFile
	errors []errors.QuestError

	tokens    []lexer.Token
	position  int // index of peekToken in tokens
	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	// grouped holds expressions that were written inside parentheses; the
	// no-mixing and no-chaining rules only apply to bare operands.
	grouped map[Expression]bool
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// bailout unwinds the parser after an error has been recorded.
type bailout struct{}

// Precedence levels
const (
	_ int = iota
	LOWEST
	TERNARY     // ?:
	LOGICAL     // || and &&, which may not be mixed
	COMPARISON  // < <= == != >= >, non-associative
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ** (right-associative)
	PREFIX      // -x !x ...x
	POSTFIX     // call, index, member
)

var precedences = map[lexer.TokenType]int{
	lexer.QUESTION:    TERNARY,
	lexer.LOGICAL_OR:  LOGICAL,
	lexer.LOGICAL_AND: LOGICAL,
	lexer.LT:          COMPARISON,
	lexer.LE:          COMPARISON,
	lexer.EQ:          COMPARISON,
	lexer.NOT_EQ:      COMPARISON,
	lexer.GE:          COMPARISON,
	lexer.GT:          COMPARISON,
	lexer.PLUS:        SUM,
	lexer.MINUS:       SUM,
	lexer.ASTERISK:    PRODUCT,
	lexer.SLASH:       PRODUCT,
	lexer.PERCENT:     PRODUCT,
	lexer.POWER:       POWER,
	lexer.LPAREN:      POSTFIX,
	lexer.LBRACKET:    POSTFIX,
	lexer.DOT:         POSTFIX,
}

// NewParser tokenizes src up front so that ambiguous prefixes like `[T]()`
// can be tried and rewound.
func NewParser(src *source.SourceFile) *Parser {
	p := &Parser{
		source:  src,
		errors:  []errors.QuestError{},
		grouped: make(map[Expression]bool),
	}

	l := lexer.NewLexer(src.Content)
	for {
		tok := l.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == lexer.EOF || tok.Type == lexer.ILLEGAL {
			break
		}
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.SPREAD, p.parsePrefixExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayExpression)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, t := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	for _, t := range []lexer.TokenType{
		lexer.LT, lexer.LE, lexer.EQ, lexer.NOT_EQ, lexer.GE, lexer.GT,
	} {
		p.registerInfix(t, p.parseComparison)
	}
	p.registerInfix(lexer.LOGICAL_OR, p.parseLogical)
	p.registerInfix(lexer.LOGICAL_AND, p.parseLogical)
	p.registerInfix(lexer.POWER, p.parsePower)
	p.registerInfix(lexer.QUESTION, p.parseConditional)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseMemberExpression)

	p.nextToken()
	p.nextToken()
	return p
}

// Parse is a convenience wrapper around NewParser and ParseProgram.
func Parse(src *source.SourceFile) (*Program, []errors.QuestError) {
	return NewParser(src).ParseProgram()
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []errors.QuestError {
	return p.errors
}

// ParseProgram parses the entire input. On failure the program is nil and the
// error list holds exactly one syntax error.
func (p *Parser) ParseProgram() (program *Program, errs []errors.QuestError) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			program, errs = nil, p.errors
		}
	}()

	program = &Program{Statements: []Statement{}, Source: p.source}
	for !p.curTokenIs(lexer.EOF) {
		program.Statements = append(program.Statements, p.parseStatement())
		p.nextToken()
	}
	return program, p.errors
}

// --- Token Helpers ---

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.position < len(p.tokens) {
		p.peekToken = p.tokens[p.position]
		p.position++
	}
	debugPrint("nextToken(): cur='%s' (%s), peek='%s' (%s)", p.curToken.Literal, p.curToken.Type, p.peekToken.Literal, p.peekToken.Type)
	if p.curToken.Type == lexer.ILLEGAL {
		p.fail(p.curToken, "")
	}
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has type t and fails otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) {
	if !p.peekTokenIs(t) {
		p.peekError(t)
	}
	p.nextToken()
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// speculate runs fn and reports whether it parsed without error. On failure
// the token position is rewound and the recorded error discarded.
func (p *Parser) speculate(fn func()) (ok bool) {
	savedPos, savedCur, savedPeek := p.position, p.curToken, p.peekToken
	savedErrs := len(p.errors)
	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			p.position, p.curToken, p.peekToken = savedPos, savedCur, savedPeek
			p.errors = p.errors[:savedErrs]
			ok = false
		}
	}()
	fn()
	return true
}

// --- Error Handling ---

func (p *Parser) peekError(t lexer.TokenType) {
	p.fail(p.peekToken, fmt.Sprintf("Expected %q", string(t)))
}

func (p *Parser) noPrefixParseFnError() {
	p.fail(p.curToken, "Expected an expression")
}

// fail records a syntax error at tok and unwinds. An ILLEGAL token carries
// the lexer's own message, which wins over msg.
func (p *Parser) fail(tok lexer.Token, msg string) {
	if tok.Type == lexer.ILLEGAL {
		msg = tok.Literal
	} else if tok.Type == lexer.EOF {
		msg += " before end of input"
	}
	p.errors = append(p.errors, errors.NewSyntaxError(errors.Position{
		Line:     tok.Line,
		Column:   tok.Column,
		StartPos: tok.StartPos,
		EndPos:   tok.EndPos,
		Source:   p.source,
	}, "%s", msg))
	panic(bailout{})
}

// --- Statements ---

func (p *Parser) parseStatement() Statement {
	debugPrint("parseStatement(): cur='%s' (%s)", p.curToken.Literal, p.curToken.Type)
	switch p.curToken.Type {
	case lexer.STAT, lexer.CONST:
		return p.parseVariableDeclaration()
	case lexer.CLASS:
		return p.parseClassDeclaration()
	case lexer.SKILL:
		return p.parseFunctionDeclaration()
	case lexer.BREAK:
		stmt := &BreakStatement{Token: p.curToken}
		p.expectPeek(lexer.SEMICOLON)
		return stmt
	case lexer.REWARD:
		return p.parseReturnStatement()
	case lexer.ENCOUNTER:
		return p.parseIfStatement()
	case lexer.QUEST:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.IDENT, lexer.LPAREN, lexer.LBRACKET,
		lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		return p.parseSimpleStatement()
	default:
		p.fail(p.curToken, "Expected a statement")
		return nil
	}
}

func (p *Parser) parseVariableDeclaration() *VariableDeclaration {
	stmt := &VariableDeclaration{Token: p.curToken}
	stmt.Name = p.expectIdentifier()
	p.expectPeek(lexer.ASSIGN)
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.expectPeek(lexer.SEMICOLON)
	return stmt
}

// expectIdentifier advances onto an identifier. Keywords are rejected here,
// which is what keeps `stat for = 3;` from parsing.
func (p *Parser) expectIdentifier() *Identifier {
	if !p.peekTokenIs(lexer.IDENT) {
		p.fail(p.peekToken, "Expected an identifier")
	}
	p.nextToken()
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseClassDeclaration() *ClassDeclaration {
	stmt := &ClassDeclaration{Token: p.curToken}
	stmt.Name = p.expectIdentifier()
	p.expectPeek(lexer.LBRACE)
	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) {
		switch p.curToken.Type {
		case lexer.SKILL:
			stmt.Members = append(stmt.Members, p.parseFunctionDeclaration())
		case lexer.IDENT:
			field := &FieldDeclaration{Name: &Identifier{Token: p.curToken, Value: p.curToken.Literal}}
			p.expectPeek(lexer.COLON)
			field.Type = p.parseType()
			p.expectPeek(lexer.SEMICOLON)
			stmt.Members = append(stmt.Members, field)
		default:
			p.fail(p.curToken, "Expected a field or a skill")
		}
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *FunctionDeclaration {
	stmt := &FunctionDeclaration{Token: p.curToken}
	stmt.Name = p.expectIdentifier()
	p.expectPeek(lexer.LPAREN)
	stmt.Parameters = []*Parameter{}
	if !p.peekTokenIs(lexer.RPAREN) {
		for {
			param := &Parameter{Name: p.expectIdentifier()}
			p.expectPeek(lexer.COLON)
			param.Type = p.parseType()
			stmt.Parameters = append(stmt.Parameters, param)
			if !p.peekTokenIs(lexer.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.peekTokenIs(lexer.RPAREN) {
		p.fail(p.peekToken, `Expected "," or ")"`)
	}
	p.nextToken()
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		stmt.ReturnType = p.parseType()
	}
	p.expectPeek(lexer.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseReturnStatement() *ReturnStatement {
	stmt := &ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.expectPeek(lexer.SEMICOLON)
	return stmt
}

// parseSimpleStatement handles the statements that start with an operand:
// assignment, increment, decrement and a bare call.
func (p *Parser) parseSimpleStatement() Statement {
	target := p.parseExpression(PREFIX)
	switch p.peekToken.Type {
	case lexer.ASSIGN:
		p.requireAssignable(target)
		p.nextToken()
		stmt := &AssignStatement{Token: p.curToken, Target: target}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		p.expectPeek(lexer.SEMICOLON)
		return stmt
	case lexer.INC, lexer.DEC:
		p.requireAssignable(target)
		p.nextToken()
		stmt := &BumpStatement{Token: p.curToken, Target: target}
		p.expectPeek(lexer.SEMICOLON)
		return stmt
	case lexer.SEMICOLON:
		if call, ok := target.(*CallExpression); ok && !p.grouped[call] {
			p.nextToken()
			return &CallStatement{Call: call}
		}
	}
	p.fail(p.peekToken, `Expected "=", "++", "--" or a call`)
	return nil
}

// requireAssignable reports an error at the operator following target unless
// target is a variable, a subscript or a field access.
func (p *Parser) requireAssignable(target Expression) {
	if !p.grouped[target] {
		switch target.(type) {
		case *Identifier, *IndexExpression, *MemberExpression:
			return
		}
	}
	p.fail(p.peekToken, "Expected a variable, subscript or field before "+strconv.Quote(p.peekToken.Literal))
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.curToken, Statements: []Statement{}}
	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.fail(p.curToken, `Expected "}"`)
		}
		block.Statements = append(block.Statements, p.parseStatement())
		p.nextToken()
	}
	return block
}

// parseParenthesized parses `( Exp )` after a statement keyword.
func (p *Parser) parseParenthesized() Expression {
	p.expectPeek(lexer.LPAREN)
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	p.expectPeek(lexer.RPAREN)
	return exp
}

func (p *Parser) parseIfStatement() *IfStatement {
	stmt := &IfStatement{Token: p.curToken}
	stmt.Condition = p.parseParenthesized()
	p.expectPeek(lexer.LBRACE)
	stmt.Consequence = p.parseBlockStatement()
	if p.peekTokenIs(lexer.FALLBACK) {
		p.nextToken()
		switch p.peekToken.Type {
		case lexer.ENCOUNTER:
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		case lexer.LBRACE:
			p.nextToken()
			stmt.Alternative = p.parseBlockStatement()
		default:
			p.fail(p.peekToken, `Expected "{" or "encounter"`)
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *WhileStatement {
	stmt := &WhileStatement{Token: p.curToken}
	stmt.Condition = p.parseParenthesized()
	p.expectPeek(lexer.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseRepeatStatement() *RepeatStatement {
	stmt := &RepeatStatement{Token: p.curToken}
	stmt.Count = p.parseParenthesized()
	p.expectPeek(lexer.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseForStatement handles both `for (i in a...b)` / `for (i in a..<b)` and
// `for (x in collection)`.
func (p *Parser) parseForStatement() Statement {
	forTok := p.curToken
	p.expectPeek(lexer.LPAREN)
	iterator := p.expectIdentifier()
	p.expectPeek(lexer.IN)
	p.nextToken()
	first := p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.SPREAD) || p.peekTokenIs(lexer.UNTIL) {
		p.nextToken()
		stmt := &ForRangeStatement{Token: forTok, Iterator: iterator, Low: first, Operator: p.curToken}
		p.nextToken()
		stmt.High = p.parseExpression(LOWEST)
		p.expectPeek(lexer.RPAREN)
		p.expectPeek(lexer.LBRACE)
		stmt.Body = p.parseBlockStatement()
		return stmt
	}

	stmt := &ForInStatement{Token: forTok, Iterator: iterator, Collection: first}
	p.expectPeek(lexer.RPAREN)
	p.expectPeek(lexer.LBRACE)
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// --- Types ---

// parseType advances onto and parses a type expression starting at peekToken.
func (p *Parser) parseType() TypeExpression {
	p.nextToken()
	switch p.curToken.Type {
	case lexer.IDENT:
		return &NamedType{Token: p.curToken, Name: p.curToken.Literal}
	case lexer.LBRACKET:
		t := &ArrayTypeExpression{Token: p.curToken}
		t.ElementType = p.parseType()
		p.expectPeek(lexer.RBRACKET)
		return t
	case lexer.LPAREN:
		t := &FunctionTypeExpression{Token: p.curToken, Parameters: []TypeExpression{}}
		if !p.peekTokenIs(lexer.RPAREN) {
			for {
				t.Parameters = append(t.Parameters, p.parseType())
				if !p.peekTokenIs(lexer.COMMA) {
					break
				}
				p.nextToken()
			}
		}
		p.expectPeek(lexer.RPAREN)
		p.expectPeek(lexer.COLON)
		t.ReturnType = p.parseType()
		return t
	default:
		p.fail(p.curToken, "Expected a type")
		return nil
	}
}

// --- Expressions ---

func (p *Parser) parseExpression(precedence int) Expression {
	debugPrint("parseExpression(%d): cur='%s' (%s)", precedence, p.curToken.Literal, p.curToken.Type)
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError()
	}
	leftExp := prefix()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.fail(p.curToken, fmt.Sprintf("Integer literal %s is out of range", p.curToken.Literal))
	}
	return &IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil || math.IsInf(value, 0) {
		p.fail(p.curToken, fmt.Sprintf("Float literal %s is out of range", p.curToken.Literal))
	}
	return &FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

// parsePrefixExpression handles -x, !x and ...x. The operand is a primary
// expression with its postfix operators; `**` may not follow it.
func (p *Parser) parsePrefixExpression() Expression {
	exp := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	exp.Right = p.parseExpression(PREFIX)
	return exp
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	p.expectPeek(lexer.RPAREN)
	p.grouped[exp] = true
	return exp
}

// parseArrayExpression disambiguates `[T]()`, an empty array of element type
// T, from a non-empty array literal by trying the former first.
func (p *Parser) parseArrayExpression() Expression {
	var empty *EmptyArrayExpression
	if p.speculate(func() {
		p.position, p.peekToken = p.position-1, p.curToken
		t := p.parseType()
		p.expectPeek(lexer.LPAREN)
		p.expectPeek(lexer.RPAREN)
		empty = &EmptyArrayExpression{Type: t}
	}) {
		return empty
	}

	arr := &ArrayLiteral{Token: p.curToken}
	arr.Elements = p.parseExpressionList(lexer.RBRACKET)
	if len(arr.Elements) == 0 {
		p.fail(p.curToken, "Expected an expression")
	}
	return arr
}

// parseExpressionList parses comma separated expressions up to end. A
// trailing comma is an error at end.
func (p *Parser) parseExpressionList(end lexer.TokenType) []Expression {
	list := []Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	exp := &InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	exp.Right = p.parseExpression(precedence)
	return exp
}

// parseComparison rejects chains like `a < b < c`.
func (p *Parser) parseComparison(left Expression) Expression {
	if prev, ok := left.(*InfixExpression); ok && !p.grouped[left] && precedences[prev.Token.Type] == COMPARISON {
		p.fail(p.curToken, "Comparison operators cannot be chained")
	}
	return p.parseInfixExpression(left)
}

// parseLogical allows chains of one operator only: `a || b || c` or
// `a && b && c`, never a mix without parentheses.
func (p *Parser) parseLogical(left Expression) Expression {
	if prev, ok := left.(*InfixExpression); ok && !p.grouped[left] &&
		precedences[prev.Token.Type] == LOGICAL && prev.Token.Type != p.curToken.Type {
		p.fail(p.curToken, `Cannot mix "&&" and "||" without parentheses`)
	}
	return p.parseInfixExpression(left)
}

// parsePower is right-associative and refuses a bare unary left operand, so
// `-2**2` must be written `-(2**2)` or `(-2)**2`.
func (p *Parser) parsePower(left Expression) Expression {
	if _, ok := left.(*PrefixExpression); ok && !p.grouped[left] {
		p.fail(p.curToken, "Exponentiation of a unary expression needs parentheses")
	}
	exp := &InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	p.nextToken()
	exp.Right = p.parseExpression(POWER - 1)
	return exp
}

func (p *Parser) parseConditional(left Expression) Expression {
	exp := &ConditionalExpression{Token: p.curToken, Condition: left}
	p.nextToken()
	exp.Consequence = p.parseExpression(TERNARY)
	p.expectPeek(lexer.COLON)
	exp.Colon = p.curToken
	p.nextToken()
	exp.Alternative = p.parseExpression(LOWEST)
	return exp
}

// requirePostfixable rejects `500(x)`, `500[x]` and similar; a scalar
// literal cannot be called, indexed or dereferenced.
func (p *Parser) requirePostfixable(left Expression) {
	if p.grouped[left] {
		return
	}
	switch left.(type) {
	case *IntegerLiteral, *FloatLiteral, *StringLiteral, *BooleanLiteral:
		p.fail(p.curToken, fmt.Sprintf("Unexpected %q after a literal", p.curToken.Literal))
	}
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	p.requirePostfixable(function)
	exp := &CallExpression{Token: p.curToken, Function: function}
	exp.Arguments = p.parseExpressionList(lexer.RPAREN)
	return exp
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	p.requirePostfixable(left)
	exp := &IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	p.expectPeek(lexer.RBRACKET)
	return exp
}

func (p *Parser) parseMemberExpression(object Expression) Expression {
	p.requirePostfixable(object)
	exp := &MemberExpression{Token: p.curToken, Object: object}
	exp.Property = p.expectIdentifier()
	return exp
}
