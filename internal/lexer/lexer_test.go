package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/co-lang/co/internal/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		assert.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestNextToken_Operators(t *testing.T) {
	toks := allTokens(t, `+ - * / // % = += -= *= /= //= %= == != < <= > >=`)
	expected := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.IDIV, token.PERCENT,
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.IDIV_ASSIGN, token.PERCENT_ASSIGN,
		token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE,
	}
	assert.Len(t, toks, len(expected))
	for i, ty := range expected {
		assert.Equal(t, ty, toks[i].Type)
	}
}

func TestNextToken_Keywords(t *testing.T) {
	toks := allTokens(t, `var int float bool str and or not if elseif else while for from to step continue break func void return range`)
	expected := []token.Type{
		token.VAR, token.INT_KW, token.FLOAT_KW, token.BOOL_KW, token.STR_KW,
		token.AND, token.OR, token.NOT, token.IF, token.ELSEIF, token.ELSE,
		token.WHILE, token.FOR, token.FROM, token.TO, token.STEP,
		token.CONTINUE, token.BREAK, token.FUNC, token.VOID, token.RETURN, token.RANGE,
	}
	assert.Len(t, toks, len(expected))
	for i, ty := range expected {
		assert.Equal(t, ty, toks[i].Type, "token %d", i)
	}
}

func TestNextToken_Literals(t *testing.T) {
	toks := allTokens(t, `42 3.14 true false "hello\nworld" x1`)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, "42", toks[0].Lexeme)
	assert.Equal(t, token.FLOAT, toks[1].Type)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	assert.Equal(t, token.BOOL, toks[2].Type)
	assert.Equal(t, token.BOOL, toks[3].Type)
	assert.Equal(t, token.STRING, toks[4].Type)
	assert.Equal(t, "hello\nworld", toks[4].Lexeme)
	assert.Equal(t, token.IDENT, toks[5].Type)
}

func TestNextToken_LineColumnTracking(t *testing.T) {
	l := New("ab\ncd")
	tok1, err := l.NextToken()
	assert.NoError(t, err)
	assert.Equal(t, 1, tok1.Line)

	tok2, err := l.NextToken()
	assert.NoError(t, err)
	assert.Equal(t, 2, tok2.Line)
	assert.Equal(t, "cd", tok2.Lexeme)
}

func TestNextToken_SkipsBlockComments(t *testing.T) {
	toks := allTokens(t, "1 /* a comment\nspanning lines */ 2")
	assert.Len(t, toks, 2)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
}

func TestNextToken_UnexpectedCharacter(t *testing.T) {
	l := New("@")
	_, err := l.NextToken()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"abc`)
	_, err := l.NextToken()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestNextToken_UnlistedEscapePassesCharVerbatim(t *testing.T) {
	l := New(`"\a"`)
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Lexeme)
}

func TestNextToken_UnterminatedEscapeAtEOF(t *testing.T) {
	l := New(`"abc\`)
	_, err := l.NextToken()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestNextToken_IdentifierRejectsUnderscore(t *testing.T) {
	l := New("x_1")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "x", tok.Lexeme)
	_, err = l.NextToken()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestNextToken_EOFIsStable(t *testing.T) {
	l := New("")
	tok, err := l.NextToken()
	assert.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Type)
	tok2, err := l.NextToken()
	assert.NoError(t, err)
	assert.Equal(t, token.EOF, tok2.Type)
}
