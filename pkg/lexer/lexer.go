package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // Lexeme; decoded contents for strings, message for ILLEGAL
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number (rune index) where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + Literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"    // 42
	FLOAT  TokenType = "FLOAT"  // 4.2, 1.3E+5
	STRING TokenType = "STRING" // "hello"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LE       TokenType = "<="
	GE       TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	INC      TokenType = "++"
	DEC      TokenType = "--"
	DOT      TokenType = "."
	SPREAD   TokenType = "..." // also the inclusive range operator
	UNTIL    TokenType = "..<" // exclusive range operator

	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	QUESTION    TokenType = "?"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	STAT      TokenType = "STAT"
	CONST     TokenType = "CONST"
	CLASS     TokenType = "CLASS"
	SKILL     TokenType = "SKILL"
	REWARD    TokenType = "REWARD"
	ENCOUNTER TokenType = "ENCOUNTER"
	FALLBACK  TokenType = "FALLBACK"
	QUEST     TokenType = "QUEST"
	REPEAT    TokenType = "REPEAT"
	FOR       TokenType = "FOR"
	IN        TokenType = "IN"
	BREAK     TokenType = "BREAK"
	TRUE      TokenType = "TRUE"
	FALSE     TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"stat":      STAT,
	"const":     CONST,
	"class":     CLASS,
	"skill":     SKILL,
	"reward":    REWARD,
	"encounter": ENCOUNTER,
	"fallback":  FALLBACK,
	"quest":     QUEST,
	"repeat":    REPEAT,
	"for":       FOR,
	"in":        IN,
	"break":     BREAK,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Lexer holds the state of the scanner. It works on runes so identifiers
// may use any Unicode letter; columns count runes.
type Lexer struct {
	input        string
	position     int  // byte offset of ch
	readPosition int  // byte offset after ch
	ch           rune // current rune, 0 at EOF
	line         int
	column       int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// readChar advances to the next rune, keeping line and column current.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.readPosition += size
	}
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// peekCharAt looks n runes past the current one (n=1 is peekChar).
func (l *Lexer) peekCharAt(n int) rune {
	pos := l.readPosition
	var r rune
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var size int
		r, size = utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken scans the input and returns the next token. Lexical errors come
// back as ILLEGAL tokens whose Literal is the message and whose position is
// the offending character.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			line, col, start := l.line, l.column, l.position
			if !l.skipMultilineComment() {
				return Token{Type: ILLEGAL, Literal: "Unterminated comment", Line: line, Column: col, StartPos: start, EndPos: l.position}
			}
			continue
		}
		break
	}

	startLine, startCol, startPos := l.line, l.column, l.position
	tok := func(t TokenType, width int) Token {
		for i := 0; i < width; i++ {
			l.readChar()
		}
		return Token{Type: t, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}

	switch l.ch {
	case 0:
		return Token{Type: EOF, Line: startLine, Column: startCol, StartPos: startPos, EndPos: startPos}
	case '=':
		if l.peekChar() == '=' {
			return tok(EQ, 2)
		}
		return tok(ASSIGN, 1)
	case '!':
		if l.peekChar() == '=' {
			return tok(NOT_EQ, 2)
		}
		return tok(BANG, 1)
	case '+':
		if l.peekChar() == '+' {
			return tok(INC, 2)
		}
		return tok(PLUS, 1)
	case '-':
		if l.peekChar() == '-' {
			return tok(DEC, 2)
		}
		return tok(MINUS, 1)
	case '*':
		if l.peekChar() == '*' {
			return tok(POWER, 2)
		}
		return tok(ASTERISK, 1)
	case '/':
		return tok(SLASH, 1)
	case '%':
		return tok(PERCENT, 1)
	case '<':
		if l.peekChar() == '=' {
			return tok(LE, 2)
		}
		return tok(LT, 1)
	case '>':
		if l.peekChar() == '=' {
			return tok(GE, 2)
		}
		return tok(GT, 1)
	case '&':
		if l.peekChar() == '&' {
			return tok(LOGICAL_AND, 2)
		}
	case '|':
		if l.peekChar() == '|' {
			return tok(LOGICAL_OR, 2)
		}
	case '.':
		if l.peekChar() == '.' {
			switch l.peekCharAt(2) {
			case '.':
				return tok(SPREAD, 3)
			case '<':
				return tok(UNTIL, 3)
			}
			break
		}
		return tok(DOT, 1)
	case '?':
		return tok(QUESTION, 1)
	case ':':
		return tok(COLON, 1)
	case ';':
		return tok(SEMICOLON, 1)
	case ',':
		return tok(COMMA, 1)
	case '(':
		return tok(LPAREN, 1)
	case ')':
		return tok(RPAREN, 1)
	case '{':
		return tok(LBRACE, 1)
	case '}':
		return tok(RBRACE, 1)
	case '[':
		return tok(LBRACKET, 1)
	case ']':
		return tok(RBRACKET, 1)
	case '"':
		return l.readString()
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return Token{Type: LookupIdent(ident), Literal: ident, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
	}

	return l.illegal("Unexpected character " + strconv.QuoteRune(l.ch))
}

// illegal reports an error at the current character.
func (l *Lexer) illegal(msg string) Token {
	return Token{Type: ILLEGAL, Literal: msg, Line: l.line, Column: l.column, StartPos: l.position, EndPos: l.readPosition}
}

// readIdentifier reads a letter followed by letters, combining marks, ASCII
// digits and underscores, and returns it in NFC so that precomposed and
// decomposed spellings name the same entity.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || unicode.IsMark(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return norm.NFC.String(l.input[start:l.position])
}

// readNumber reads digits, an optional fraction and an optional exponent. A
// dot that starts a range operator ends the number; any other dot must be
// followed by a digit.
func (l *Lexer) readNumber() Token {
	startLine, startCol, startPos := l.line, l.column, l.position
	typ := INT
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && l.peekChar() != '.' {
		l.readChar()
		if !isDigit(l.ch) {
			return l.illegal("Expected a digit")
		}
		typ = FLOAT
		for isDigit(l.ch) {
			l.readChar()
		}
		if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return Token{Type: typ, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
}

func (l *Lexer) exponentFollows() bool {
	next := l.peekChar()
	if next == '+' || next == '-' {
		next = l.peekCharAt(2)
	}
	return isDigit(next)
}

// readString reads a double-quoted string literal and returns its decoded
// contents. Raw newlines and unknown escapes are errors at the offending rune.
func (l *Lexer) readString() Token {
	startLine, startCol, startPos := l.line, l.column, l.position
	var builder strings.Builder
	l.readChar() // opening quote

	for {
		switch l.ch {
		case '"':
			l.readChar()
			return Token{Type: STRING, Literal: builder.String(), Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
		case 0:
			return l.illegal("Unterminated string")
		case '\n', '\r':
			return l.illegal("Newline in string")
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			case '\\', '"', '\'':
				builder.WriteRune(l.ch)
			case 'u':
				r, ok := l.readCodePoint()
				if !ok {
					return l.illegal("Malformed code point escape")
				}
				builder.WriteRune(r)
				continue
			default:
				return l.illegal("Unknown escape sequence")
			}
		default:
			builder.WriteRune(l.ch)
		}
		l.readChar()
	}
}

// readCodePoint reads `u{hex}` with the lexer on the `u`, leaving it just past `}`.
func (l *Lexer) readCodePoint() (rune, bool) {
	l.readChar()
	if l.ch != '{' {
		return 0, false
	}
	l.readChar()
	start := l.position
	for isHexDigit(l.ch) {
		l.readChar()
	}
	digits := l.input[start:l.position]
	if l.ch != '}' || len(digits) == 0 || len(digits) > 6 {
		return 0, false
	}
	l.readChar()
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipMultilineComment consumes `/* ... */`. It reports false at EOF.
func (l *Lexer) skipMultilineComment() bool {
	l.readChar()
	l.readChar()
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
