package internal

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func tokenTypes(tokens []*Token) []TokenType {
	ret := make([]TokenType, 0, len(tokens))
	for _, token := range tokens {
		ret = append(ret, token.tp)
	}
	return ret
}

func TestTokenizer_Tokenize(t *testing.T) {
	testData := []struct {
		content     string
		expectedTPs []TokenType
	}{
		{content: "", expectedTPs: []TokenType{EOFTP}},
		{content: "program { }", expectedTPs: []TokenType{ProgramTP, LeftBraceTP, RightBraceTP, EOFTP}},
		{content: "int x; bool b; char c;", expectedTPs: []TokenType{
			IntTP, IdentifierTP, SemiColonTP, BoolTP, IdentifierTP, SemiColonTP, CharTP, IdentifierTP, SemiColonTP, EOFTP,
		}},
		{content: "a==b!=c<=d>=e&&f||!g", expectedTPs: []TokenType{
			IdentifierTP, EqualTP, IdentifierTP, NotEqualTP, IdentifierTP, LessEqualTP, IdentifierTP, GreaterEqualTP,
			IdentifierTP, AndTP, IdentifierTP, OrTP, NotTP, IdentifierTP, EOFTP,
		}},
		{content: "x = 1 + 2 * 3 / 4 % 5 - 6 < 7 > 8", expectedTPs: []TokenType{
			IdentifierTP, AssignTP, IntegerTP, AddTP, IntegerTP, MultiplyTP, IntegerTP, DivideTP, IntegerTP, ModTP,
			IntegerTP, MinusTP, IntegerTP, LessTP, IntegerTP, GreaterTP, IntegerTP, EOFTP,
		}},
		{content: "if else while print true false (,)", expectedTPs: []TokenType{
			IfTP, ElseTP, WhileTP, PrintTP, TrueTP, FalseTP, LeftParentThesesTP, CommaTP, RightParentThesesTP, EOFTP,
		}},
		{content: "proc const for read", expectedTPs: []TokenType{ProcTP, ConstTP, ForTP, ReadTP, EOFTP}},
		{content: "// comment\nx /* multiple\nline */ y", expectedTPs: []TokenType{IdentifierTP, IdentifierTP, EOFTP}},
		{content: "_a1 a_b programs", expectedTPs: []TokenType{IdentifierTP, IdentifierTP, IdentifierTP, EOFTP}},
		{content: "12abc", expectedTPs: []TokenType{IntegerTP, IdentifierTP, EOFTP}},
		{content: "a / b", expectedTPs: []TokenType{IdentifierTP, DivideTP, IdentifierTP, EOFTP}},
	}
	tokenizer := &Tokenizer{}
	for _, data := range testData {
		tokens, err := tokenizer.Tokenize(bytes.NewReader([]byte(data.content)))
		assert.Nil(t, err)
		assert.Equal(t, data.expectedTPs, tokenTypes(tokens), data.content)
	}
}

func TestTokenizer_Position(t *testing.T) {
	tokens, err := (&Tokenizer{}).Tokenize(bytes.NewReader([]byte("program {\n  int x;\n}")))
	assert.Nil(t, err)
	expected := [][2]int{{1, 1}, {1, 9}, {2, 3}, {2, 7}, {2, 8}, {3, 1}, {3, 2}}
	assert.Equal(t, len(expected), len(tokens))
	for i, token := range tokens {
		assert.Equal(t, expected[i][0], token.Line(), token.String())
		assert.Equal(t, expected[i][1], token.Column(), token.String())
	}
}

func TestTokenizer_Literals(t *testing.T) {
	testData := []struct {
		content       string
		expectedTP    TokenType
		expectedValue int
	}{
		{content: "0", expectedTP: IntegerTP, expectedValue: 0},
		{content: "007", expectedTP: IntegerTP, expectedValue: 7},
		{content: "2147483647", expectedTP: IntegerTP, expectedValue: 2147483647},
		{content: "'A'", expectedTP: CharacterTP, expectedValue: 'A'},
		{content: "' '", expectedTP: CharacterTP, expectedValue: ' '},
		{content: `'\n'`, expectedTP: CharacterTP, expectedValue: '\n'},
		{content: `'\t'`, expectedTP: CharacterTP, expectedValue: '\t'},
		{content: `'\''`, expectedTP: CharacterTP, expectedValue: '\''},
		{content: `'\\'`, expectedTP: CharacterTP, expectedValue: '\\'},
		{content: `'\q'`, expectedTP: CharacterTP, expectedValue: 'q'},
	}
	for _, data := range testData {
		token := NewTokenizer([]byte(data.content)).NextToken()
		assert.Equal(t, data.expectedTP, token.Type(), data.content)
		assert.Equal(t, data.expectedValue, token.Value(), data.content)
		assert.Equal(t, data.content, token.Content())
	}
}

func TestTokenizer_ErrorTokens(t *testing.T) {
	testData := []struct {
		content     string
		expectedTPs []TokenType
	}{
		{content: "a # b", expectedTPs: []TokenType{IdentifierTP, ErrorTP, IdentifierTP, EOFTP}},
		{content: "a & b", expectedTPs: []TokenType{IdentifierTP, ErrorTP, IdentifierTP, EOFTP}},
		{content: "a | b", expectedTPs: []TokenType{IdentifierTP, ErrorTP, IdentifierTP, EOFTP}},
		{content: "99999999999", expectedTPs: []TokenType{ErrorTP, EOFTP}},
		{content: "'", expectedTPs: []TokenType{ErrorTP, EOFTP}},
		{content: "'ab'", expectedTPs: []TokenType{ErrorTP, IdentifierTP, ErrorTP, EOFTP}},
		{content: "x /* never closed", expectedTPs: []TokenType{IdentifierTP, ErrorTP, EOFTP}},
	}
	tokenizer := &Tokenizer{}
	for _, data := range testData {
		tokens, err := tokenizer.Tokenize(bytes.NewReader([]byte(data.content)))
		assert.Nil(t, err)
		assert.Equal(t, data.expectedTPs, tokenTypes(tokens), data.content)
		for _, token := range tokens {
			if token.Type() == ErrorTP {
				assert.NotEmpty(t, token.Message())
			}
		}
	}
}

func TestTokenizer_EOFIsIdempotent(t *testing.T) {
	tokenizer := NewTokenizer([]byte("x"))
	assert.Equal(t, IdentifierTP, tokenizer.NextToken().Type())
	for i := 0; i < 3; i++ {
		token := tokenizer.NextToken()
		assert.Equal(t, EOFTP, token.Type())
		assert.Equal(t, 1, token.Line())
		assert.Equal(t, 2, token.Column())
	}
}

func TestToken_String(t *testing.T) {
	tokenizer := NewTokenizer([]byte("x 42 @"))
	assert.Equal(t, "1:1  ID          x", tokenizer.NextToken().String())
	assert.Equal(t, "1:3  NUM         42  (value=42)", tokenizer.NextToken().String())
	assert.Equal(t, "1:6  ERROR       @  (unrecognized character '@')", tokenizer.NextToken().String())
}
