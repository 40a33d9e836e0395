package internal

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"

	"github.com/xiaobogaga/minilang/util"
)

// A simple pull Tokenizer for the teaching language.

// The language has those elements:
// * KeyWord: program, proc, const, int, bool, char, if, else, while, for, print, read, true, false.
//			proc, const, for and read are reserved only, the grammar never uses them.
// * Symbol: =, +, -, *, /, %, ==, !=, <, <=, >, >=, &&, ||, !, (, ), {, }, ;, ,.
// * Constant: integer (fits in 32 bits), character ('a', '\n', '\t', '\'', '\\').
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /**/, //.
//
// Lexical problems never stop the tokenizer, they come back as an ErrorTP token and the
// tokenizer moves past the offending input.

type TokenType int

const (
	ProgramTP           TokenType = iota // program
	ProcTP                               // proc
	ConstTP                              // const
	IntTP                                // int
	BoolTP                               // bool
	CharTP                               // char
	IfTP                                 // if
	ElseTP                               // else
	WhileTP                              // while
	ForTP                                // for
	PrintTP                              // print
	ReadTP                               // read
	TrueTP                               // true
	FalseTP                              // false
	IdentifierTP                         // varA
	IntegerTP                            // 1010
	CharacterTP                          // 'a'
	AssignTP                             // =
	AddTP                                // +
	MinusTP                              // -
	MultiplyTP                           // *
	DivideTP                             // /
	ModTP                                // %
	EqualTP                              // ==
	NotEqualTP                           // !=
	LessTP                               // <
	LessEqualTP                          // <=
	GreaterTP                            // >
	GreaterEqualTP                       // >=
	AndTP                                // &&
	OrTP                                 // ||
	NotTP                                // !
	LeftParentThesesTP                   // (
	RightParentThesesTP                  // )
	LeftBraceTP                          // {
	RightBraceTP                         // }
	SemiColonTP                          // ;
	CommaTP                              // ,
	EOFTP                                // end of input
	ErrorTP                              // lexical error
)

var tokenTypeNames = [...]string{
	ProgramTP:           "PROGRAM",
	ProcTP:              "PROC",
	ConstTP:             "CONST",
	IntTP:               "INT",
	BoolTP:              "BOOL",
	CharTP:              "CHAR",
	IfTP:                "IF",
	ElseTP:              "ELSE",
	WhileTP:             "WHILE",
	ForTP:               "FOR",
	PrintTP:             "PRINT",
	ReadTP:              "READ",
	TrueTP:              "TRUE",
	FalseTP:             "FALSE",
	IdentifierTP:        "ID",
	IntegerTP:           "NUM",
	CharacterTP:         "CHAR_LIT",
	AssignTP:            "ASSIGN",
	AddTP:               "PLUS",
	MinusTP:             "MINUS",
	MultiplyTP:          "STAR",
	DivideTP:            "SLASH",
	ModTP:               "MOD",
	EqualTP:             "EQEQ",
	NotEqualTP:          "NEQ",
	LessTP:              "LT",
	LessEqualTP:         "LE",
	GreaterTP:           "GT",
	GreaterEqualTP:      "GE",
	AndTP:               "ANDAND",
	OrTP:                "OROR",
	NotTP:               "NOT",
	LeftParentThesesTP:  "LPAREN",
	RightParentThesesTP: "RPAREN",
	LeftBraceTP:         "LBRACE",
	RightBraceTP:        "RBRACE",
	SemiColonTP:         "SEMI",
	CommaTP:             "COMMA",
	EOFTP:               "EOF",
	ErrorTP:             "ERROR",
}

func (tp TokenType) String() string {
	if tp < 0 || int(tp) >= len(tokenTypeNames) {
		return "UNKNOWN"
	}
	return tokenTypeNames[tp]
}

// keyWordTokenTPMap is the mapping from identifier to the corresponding TokenTP.
var keyWordTokenTPMap = map[string]TokenType{
	"program": ProgramTP,
	"proc":    ProcTP,
	"const":   ConstTP,
	"int":     IntTP,
	"bool":    BoolTP,
	"char":    CharTP,
	"if":      IfTP,
	"else":    ElseTP,
	"while":   WhileTP,
	"for":     ForTP,
	"print":   PrintTP,
	"read":    ReadTP,
	"true":    TrueTP,
	"false":   FalseTP,
}

// simpleSymbolTokenTPMap holds the symbols which never start a two characters symbol.
var simpleSymbolTokenTPMap = map[byte]TokenType{
	'+': AddTP,
	'-': MinusTP,
	'*': MultiplyTP,
	'/': DivideTP,
	'%': ModTP,
	'(': LeftParentThesesTP,
	')': RightParentThesesTP,
	'{': LeftBraceTP,
	'}': RightBraceTP,
	';': SemiColonTP,
	',': CommaTP,
}

// doubleSymbolTokenTPMap holds the two characters symbols.
var doubleSymbolTokenTPMap = map[string]TokenType{
	"==": EqualTP,
	"!=": NotEqualTP,
	"<=": LessEqualTP,
	">=": GreaterEqualTP,
	"&&": AndTP,
	"||": OrTP,
}

// A symbol that is complete by itself but may also start a two characters symbol.
var prefixSymbolTokenTPMap = map[byte]TokenType{
	'=': AssignTP,
	'<': LessTP,
	'>': GreaterTP,
	'!': NotTP,
}

// Token is immutable once the tokenizer returned it.
type Token struct {
	content string
	value   int // decoded value for IntegerTP and CharacterTP.
	line    int
	column  int
	tp      TokenType
	msg     string // only set for ErrorTP.
}

func (t *Token) Type() TokenType {
	return t.tp
}

func (t *Token) Content() string {
	return t.content
}

func (t *Token) Value() int {
	return t.value
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Column() int {
	return t.column
}

// Message describes the lexical problem of an ErrorTP token.
func (t *Token) Message() string {
	return t.msg
}

// String is the format used by the tokens dump.
func (t *Token) String() string {
	switch t.tp {
	case IntegerTP, CharacterTP:
		return fmt.Sprintf("%d:%d  %-10s  %s  (value=%d)", t.line, t.column, t.tp, t.content, t.value)
	case ErrorTP:
		return fmt.Sprintf("%d:%d  %-10s  %s  (%s)", t.line, t.column, t.tp, t.content, t.msg)
	}
	return fmt.Sprintf("%d:%d  %-10s  %s", t.line, t.column, t.tp, t.content)
}

// TokenSource hands out one token per call. Once the input is exhausted it keeps returning
// an EOFTP token.
type TokenSource interface {
	NextToken() *Token
}

type Tokenizer struct {
	source      []byte
	currentPos  int
	currentLine int
	currentCol  int
}

func NewTokenizer(source []byte) *Tokenizer {
	tokenizer := &Tokenizer{}
	tokenizer.Reset(source)
	return tokenizer
}

func (tokenizer *Tokenizer) Reset(source []byte) {
	tokenizer.source = source
	tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentCol = 0, 1, 1
}

// Tokenize accepts a source `rd` and returns all of its tokens, the last one is always EOFTP.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) (tokens []*Token, err error) {
	source, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	tokenizer.Reset(source)
	for {
		token := tokenizer.NextToken()
		tokens = append(tokens, token)
		if token.tp == EOFTP {
			return tokens, nil
		}
	}
}

// NextToken returns the next token of the source. This method is the main method of this tokenizer.
func (tokenizer *Tokenizer) NextToken() *Token {
	errToken := tokenizer.skipSpaceAndComments()
	if errToken != nil {
		return errToken
	}
	line, column := tokenizer.currentLine, tokenizer.currentCol
	if !tokenizer.hasRemainCharacters() {
		return &Token{content: "<EOF>", line: line, column: column, tp: EOFTP}
	}
	c := tokenizer.peek()
	switch {
	case util.IsLetterOrUnderscore(c):
		return tokenizer.toKeywordOrIdentifier(line, column)
	case util.IsNumber(c):
		return tokenizer.tokenNumber(line, column)
	case c == '\'':
		return tokenizer.tokenCharacter(line, column)
	}
	return tokenizer.tokenSymbol(line, column)
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.source)
}

func (tokenizer *Tokenizer) peek() byte {
	if !tokenizer.hasRemainCharacters() {
		return 0
	}
	return tokenizer.source[tokenizer.currentPos]
}

func (tokenizer *Tokenizer) peekNext() byte {
	if tokenizer.currentPos+1 >= len(tokenizer.source) {
		return 0
	}
	return tokenizer.source[tokenizer.currentPos+1]
}

// stepForward consumes one character and keeps line and column up to date.
func (tokenizer *Tokenizer) stepForward() byte {
	if !tokenizer.hasRemainCharacters() {
		return 0
	}
	c := tokenizer.source[tokenizer.currentPos]
	tokenizer.currentPos++
	if c == '\n' {
		tokenizer.currentLine++
		tokenizer.currentCol = 1
	} else {
		tokenizer.currentCol++
	}
	return c
}

// skipSpaceAndComments steps over blanks, // and /* */ comments. An unterminated /* comment
// is returned as an error token.
func (tokenizer *Tokenizer) skipSpaceAndComments() *Token {
	for tokenizer.hasRemainCharacters() {
		c := tokenizer.peek()
		switch {
		case util.IsSpace(c):
			tokenizer.stepForward()
		case c == '/' && tokenizer.peekNext() == '/':
			for tokenizer.hasRemainCharacters() && tokenizer.peek() != '\n' {
				tokenizer.stepForward()
			}
		case c == '/' && tokenizer.peekNext() == '*':
			line, column := tokenizer.currentLine, tokenizer.currentCol
			if !tokenizer.skipMultipleLineComment() {
				return tokenizer.makeError("/*", line, column, "unterminated comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (tokenizer *Tokenizer) skipMultipleLineComment() bool {
	tokenizer.stepForward()
	tokenizer.stepForward()
	for tokenizer.hasRemainCharacters() {
		if tokenizer.peek() == '*' && tokenizer.peekNext() == '/' {
			tokenizer.stepForward()
			tokenizer.stepForward()
			return true
		}
		tokenizer.stepForward()
	}
	return false
}

func (tokenizer *Tokenizer) toKeywordOrIdentifier(line, column int) *Token {
	startPos := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsLetterOrUnderscoreOrNumber(tokenizer.peek()) {
		tokenizer.stepForward()
	}
	content := string(tokenizer.source[startPos:tokenizer.currentPos])
	tp, isKeyWord := keyWordTokenTPMap[content]
	if !isKeyWord {
		tp = IdentifierTP
	}
	return &Token{content: content, line: line, column: column, tp: tp}
}

func (tokenizer *Tokenizer) tokenNumber(line, column int) *Token {
	startPos := tokenizer.currentPos
	for tokenizer.hasRemainCharacters() && util.IsNumber(tokenizer.peek()) {
		tokenizer.stepForward()
	}
	content := string(tokenizer.source[startPos:tokenizer.currentPos])
	v, err := strconv.ParseInt(content, 10, 32)
	if err != nil {
		return tokenizer.makeError(content, line, column, "integer literal out of range")
	}
	return &Token{content: content, value: int(v), line: line, column: column, tp: IntegerTP}
}

// 'A' or '\n'. On a malformed literal only the characters read so far are consumed.
func (tokenizer *Tokenizer) tokenCharacter(line, column int) *Token {
	startPos := tokenizer.currentPos
	tokenizer.stepForward()
	content := func() string { return string(tokenizer.source[startPos:tokenizer.currentPos]) }
	if !tokenizer.hasRemainCharacters() || tokenizer.peek() == '\n' {
		return tokenizer.makeError(content(), line, column, "unterminated character literal")
	}
	c := tokenizer.stepForward()
	value := int(c)
	if c == '\\' {
		if !tokenizer.hasRemainCharacters() || tokenizer.peek() == '\n' {
			return tokenizer.makeError(content(), line, column, "incomplete escape in character literal")
		}
		switch e := tokenizer.stepForward(); e {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		default:
			// \' and \\ stand for themselves, so does any other escaped character.
			value = int(e)
		}
	}
	if tokenizer.peek() != '\'' {
		return tokenizer.makeError(content(), line, column, "invalid or unterminated character literal")
	}
	tokenizer.stepForward()
	return &Token{content: content(), value: value, line: line, column: column, tp: CharacterTP}
}

func (tokenizer *Tokenizer) tokenSymbol(line, column int) *Token {
	c := tokenizer.peek()
	if tp, ok := doubleSymbolTokenTPMap[string([]byte{c, tokenizer.peekNext()})]; ok {
		tokenizer.stepForward()
		tokenizer.stepForward()
		return &Token{content: string([]byte{c, tokenizer.source[tokenizer.currentPos-1]}), line: line, column: column, tp: tp}
	}
	tokenizer.stepForward()
	if tp, ok := prefixSymbolTokenTPMap[c]; ok {
		return &Token{content: string(c), line: line, column: column, tp: tp}
	}
	if tp, ok := simpleSymbolTokenTPMap[c]; ok {
		return &Token{content: string(c), line: line, column: column, tp: tp}
	}
	return tokenizer.makeError(string(c), line, column, fmt.Sprintf("unrecognized character '%s'", string(c)))
}

func (tokenizer *Tokenizer) makeError(near string, line, column int, msg string) *Token {
	return &Token{content: near, line: line, column: column, tp: ErrorTP, msg: msg}
}
