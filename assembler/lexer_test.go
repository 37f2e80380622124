package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		require.Nil(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	toks := lexAll(t, "loop: MOVI R0, 0x10 ; comment\n.db 'A', \"hi\"\n[-+*]")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{
		TokenIdent, TokenColon, TokenIdent, TokenIdent, TokenComma, TokenNumber, TokenNewline,
		TokenDot, TokenIdent, TokenChar, TokenComma, TokenString, TokenNewline,
		TokenLBracket, TokenMinus, TokenPlus, TokenStar, TokenRBracket, TokenEOF,
	}, kinds)
}

func TestLexerNumberBases(t *testing.T) {
	toks := lexAll(t, "255 0xFF 0b11111111")
	assert.Equal(t, int64(255), toks[0].Value)
	assert.Equal(t, int64(255), toks[1].Value)
	assert.Equal(t, int64(255), toks[2].Value)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	toks := lexAll(t, "NOP\n  HALT")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	halt := toks[2]
	assert.Equal(t, "HALT", halt.Text)
	assert.Equal(t, 2, halt.Line)
	assert.Equal(t, 3, halt.Col)
}

func TestLexerPushback(t *testing.T) {
	lx := NewLexer("A B")
	first, err := lx.Next()
	require.Nil(t, err)
	lx.Unread(first)
	again, err := lx.Next()
	require.Nil(t, err)
	assert.Equal(t, first, again)
	second, err := lx.Next()
	require.Nil(t, err)
	assert.Equal(t, "B", second.Text)
}

func TestLexerCharEscapes(t *testing.T) {
	cases := map[string]int64{
		`'\n'`: '\n',
		`'\r'`: '\r',
		`'\t'`: '\t',
		`'\0'`: 0,
		`'\\'`: '\\',
		`'\''`: '\'',
		`'x'`:  'x',
	}
	for src, want := range cases {
		toks := lexAll(t, src)
		assert.Equal(t, want, toks[0].Value, "literal %s", src)
	}
}

func TestLexerUnterminatedChar(t *testing.T) {
	lx := NewLexer("'a")
	_, err := lx.Next()
	require.NotNil(t, err)
	assert.Equal(t, ErrUnterminatedString, err.Kind)
}
