package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(input string) []Token {
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == ILLEGAL {
			return toks
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `stat five = 5;
const half = 0.5;
skill add(x: int, y: int): int {
  reward x + y;
}
/* block
   comment */ encounter (five >= 5 && !false) { echo("hi"); } fallback { break; }
for (i in 1..<10) {} for (j in 1...10) {}
x++; y--; a[0] = 2 ** 3 % 4 / 1 - -2; // trailing
quest (a != b || a == b) { repeat (3) {} }
c.d = e ? f : g;
class`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{STAT, "stat", 1}, {IDENT, "five", 1}, {ASSIGN, "=", 1}, {INT, "5", 1}, {SEMICOLON, ";", 1},
		{CONST, "const", 2}, {IDENT, "half", 2}, {ASSIGN, "=", 2}, {FLOAT, "0.5", 2}, {SEMICOLON, ";", 2},
		{SKILL, "skill", 3}, {IDENT, "add", 3}, {LPAREN, "(", 3}, {IDENT, "x", 3}, {COLON, ":", 3},
		{IDENT, "int", 3}, {COMMA, ",", 3}, {IDENT, "y", 3}, {COLON, ":", 3}, {IDENT, "int", 3},
		{RPAREN, ")", 3}, {COLON, ":", 3}, {IDENT, "int", 3}, {LBRACE, "{", 3},
		{REWARD, "reward", 4}, {IDENT, "x", 4}, {PLUS, "+", 4}, {IDENT, "y", 4}, {SEMICOLON, ";", 4},
		{RBRACE, "}", 5},
		{ENCOUNTER, "encounter", 7}, {LPAREN, "(", 7}, {IDENT, "five", 7}, {GE, ">=", 7}, {INT, "5", 7},
		{LOGICAL_AND, "&&", 7}, {BANG, "!", 7}, {FALSE, "false", 7}, {RPAREN, ")", 7}, {LBRACE, "{", 7},
		{IDENT, "echo", 7}, {LPAREN, "(", 7}, {STRING, "hi", 7}, {RPAREN, ")", 7}, {SEMICOLON, ";", 7},
		{RBRACE, "}", 7}, {FALLBACK, "fallback", 7}, {LBRACE, "{", 7}, {BREAK, "break", 7},
		{SEMICOLON, ";", 7}, {RBRACE, "}", 7},
		{FOR, "for", 8}, {LPAREN, "(", 8}, {IDENT, "i", 8}, {IN, "in", 8}, {INT, "1", 8}, {UNTIL, "..<", 8},
		{INT, "10", 8}, {RPAREN, ")", 8}, {LBRACE, "{", 8}, {RBRACE, "}", 8},
		{FOR, "for", 8}, {LPAREN, "(", 8}, {IDENT, "j", 8}, {IN, "in", 8}, {INT, "1", 8}, {SPREAD, "...", 8},
		{INT, "10", 8}, {RPAREN, ")", 8}, {LBRACE, "{", 8}, {RBRACE, "}", 8},
		{IDENT, "x", 9}, {INC, "++", 9}, {SEMICOLON, ";", 9}, {IDENT, "y", 9}, {DEC, "--", 9}, {SEMICOLON, ";", 9},
		{IDENT, "a", 9}, {LBRACKET, "[", 9}, {INT, "0", 9}, {RBRACKET, "]", 9}, {ASSIGN, "=", 9},
		{INT, "2", 9}, {POWER, "**", 9}, {INT, "3", 9}, {PERCENT, "%", 9}, {INT, "4", 9}, {SLASH, "/", 9},
		{INT, "1", 9}, {MINUS, "-", 9}, {MINUS, "-", 9}, {INT, "2", 9}, {SEMICOLON, ";", 9},
		{QUEST, "quest", 10}, {LPAREN, "(", 10}, {IDENT, "a", 10}, {NOT_EQ, "!=", 10}, {IDENT, "b", 10},
		{LOGICAL_OR, "||", 10}, {IDENT, "a", 10}, {EQ, "==", 10}, {IDENT, "b", 10}, {RPAREN, ")", 10},
		{LBRACE, "{", 10}, {REPEAT, "repeat", 10}, {LPAREN, "(", 10}, {INT, "3", 10}, {RPAREN, ")", 10},
		{LBRACE, "{", 10}, {RBRACE, "}", 10}, {RBRACE, "}", 10},
		{IDENT, "c", 11}, {DOT, ".", 11}, {IDENT, "d", 11}, {ASSIGN, "=", 11}, {IDENT, "e", 11},
		{QUESTION, "?", 11}, {IDENT, "f", 11}, {COLON, ":", 11}, {IDENT, "g", 11}, {SEMICOLON, ";", 11},
		{CLASS, "class", 12},
		{EOF, "", 12},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		require.Equalf(t, tt.expectedType, tok.Type, "tests[%d] literal %q", i, tok.Literal)
		assert.Equalf(t, tt.expectedLiteral, tok.Literal, "tests[%d]", i)
		assert.Equalf(t, tt.expectedLine, tok.Line, "tests[%d] %q", i, tok.Literal)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
	}{
		{"89.123", []TokenType{FLOAT}},
		{"1.3E5", []TokenType{FLOAT}},
		{"1.3E+5", []TokenType{FLOAT}},
		{"1.3e-5", []TokenType{FLOAT}},
		{"5E", []TokenType{INT, IDENT}},
		{"2.5e", []TokenType{FLOAT, IDENT}},
		{"1..<2", []TokenType{INT, UNTIL, INT}},
		{"1...2", []TokenType{INT, SPREAD, INT}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := collect(tt.input)
			var got []TokenType
			for _, tok := range toks[:len(toks)-1] {
				got = append(got, tok.Type)
			}
			assert.Equal(t, tt.types, got)
			assert.Equal(t, EOF, toks[len(toks)-1].Type)
		})
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := collect("stat コンパイラ = π;")
	require.Len(t, toks, 6)
	assert.Equal(t, Token{Type: IDENT, Literal: "コンパイラ", Line: 1, Column: 6, StartPos: 5, EndPos: 20}, toks[1])
	assert.Equal(t, IDENT, toks[3].Type)
	assert.Equal(t, "π", toks[3].Literal)
	assert.Equal(t, 14, toks[3].Column)

	// "é" spelled as e + combining acute normalises to the precomposed rune.
	decomposed := collect("cafe\u0301 = 1;")
	assert.Equal(t, "caf\u00e9", decomposed[0].Literal)
	assert.Equal(t, 7, decomposed[1].Column)
}

func TestStrings(t *testing.T) {
	toks := collect(`"tab\there \"q\" \u{1F600} 😉"`)
	require.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "tab\there \"q\" \U0001F600 😉", toks[0].Literal)
}

func TestIllegal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"non-letter in an identifier", "stat ab😭c = 2;", 1, 8},
		{"malformed number", "stat x= 2.;", 1, 11},
		{"number dereference", "echo(500.x);", 1, 10},
		{"unknown escape", `echo("ab\zcdef");`, 1, 10},
		{"newline in string", "echo(\"ab\ncdef\");", 1, 9},
		{"unterminated string", `echo("abc`, 1, 10},
		{"lone ampersand", "a & b", 1, 3},
		{"two dots", "1..2", 1, 2},
		{"unterminated comment", "x /* never closed", 1, 3},
		{"bad code point", `"\u{110000}"`, 1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(tt.input)
			last := toks[len(toks)-1]
			require.Equal(t, ILLEGAL, last.Type)
			assert.Equal(t, tt.line, last.Line)
			assert.Equal(t, tt.column, last.Column)
		})
	}
}

func TestKeywords(t *testing.T) {
	for word, typ := range keywords {
		assert.Equal(t, typ, LookupIdent(word))
		assert.True(t, IsKeyword(word))
	}
	assert.Equal(t, IDENT, LookupIdent("this"))
	assert.False(t, IsKeyword("echo"))
}
