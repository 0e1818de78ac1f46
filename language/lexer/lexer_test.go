package lexer

import (
	"testing"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, body string) []Token {
	t.Helper()
	l := New(&gqlerrors.Source{Name: "test", Body: body})
	var toks []Token
	for {
		tok, err := l.Advance()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := tokenize(t, "{ a(b: $c) }")
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []Kind{BraceL, Name, ParenL, Name, Colon, Dollar, Name, ParenR, BraceR, EOF}, kinds)
}

func TestLexerIntVsFloat(t *testing.T) {
	toks := tokenize(t, "1 1.5 1e10 -3")
	require.Equal(t, Int, toks[0].Kind)
	require.Equal(t, Float, toks[1].Kind)
	require.Equal(t, Float, toks[2].Kind)
	require.Equal(t, Int, toks[3].Kind)
	require.Equal(t, "-3", toks[3].Value)
}

func TestLexerLeadingZeroRejected(t *testing.T) {
	l := New(&gqlerrors.Source{Name: "test", Body: "012"})
	_, err := l.Advance()
	require.Error(t, err)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nbA\"c"`)
	require.Equal(t, String, toks[0].Kind)
	require.Equal(t, "a\nbA\"c", toks[0].Value)
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(&gqlerrors.Source{Name: "test", Body: `"abc`})
	_, err := l.Advance()
	require.Error(t, err)
}

func TestLexerBlockString(t *testing.T) {
	toks := tokenize(t, "\"\"\"\n  hello\n  world\n\"\"\"")
	require.Equal(t, String, toks[0].Kind)
	require.True(t, toks[0].Block)
	require.Equal(t, "hello\nworld", toks[0].Value)
}

func TestLexerSpread(t *testing.T) {
	toks := tokenize(t, "...Foo")
	require.Equal(t, Spread, toks[0].Kind)
	require.Equal(t, Name, toks[1].Kind)
	require.Equal(t, "Foo", toks[1].Value)
}

func TestLexerCommaAndWhitespaceInsignificant(t *testing.T) {
	a := tokenize(t, "a,b")
	b := tokenize(t, "a b")
	require.Equal(t, len(a), len(b))
}

func TestLexerComment(t *testing.T) {
	toks := tokenize(t, "# a comment\nfield")
	require.Equal(t, Comment, toks[0].Kind)
	require.Equal(t, Name, toks[1].Kind)
}
