package jpqllex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestLexSimpleSelect(t *testing.T) {
	toks := lexAll(t, "select u from User u")
	kinds := make([]Kind, 0, len(toks))
	lits := make([]string, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		lits = append(lits, tok.Literal)
	}
	assert.Equal(t, []Kind{Keyword, Ident, Keyword, Ident, Ident, EOF}, kinds)
	assert.Equal(t, "select", lits[0])
	assert.Equal(t, "User", lits[3])
}

func TestLexStringWithEscapedQuote(t *testing.T) {
	toks := lexAll(t, "'O''Brien'")
	require.Len(t, toks, 2)
	assert.Equal(t, String, toks[0].Kind)
	assert.Equal(t, "O'Brien", toks[0].Literal)
}

func TestLexNumbers(t *testing.T) {
	toks := lexAll(t, "1 1.5 1e3 2.5f 7L")
	require.Len(t, toks, 6)
	assert.Equal(t, Int, toks[0].Kind)
	assert.Equal(t, Float, toks[1].Kind)
	assert.Equal(t, Float, toks[2].Kind)
	assert.Equal(t, Float, toks[3].Kind)
	assert.Equal(t, Int, toks[4].Kind)
}

func TestLexParameters(t *testing.T) {
	toks := lexAll(t, "?1 :name")
	require.Len(t, toks, 3)
	assert.Equal(t, PositionalParam, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Literal)
	assert.Equal(t, NamedParam, toks[1].Kind)
	assert.Equal(t, "name", toks[1].Literal)
}

func TestLexSpelEscape(t *testing.T) {
	toks := lexAll(t, "#{#name}")
	require.Len(t, toks, 2)
	assert.Equal(t, Spel, toks[0].Kind)
	assert.Equal(t, "#{#name}", toks[0].Literal)
}

func TestLexSpelEscapeWithIndexArgument(t *testing.T) {
	toks := lexAll(t, "#{func([0])}")
	require.Len(t, toks, 2)
	assert.Equal(t, "#{func([0])}", toks[0].Literal)
}

func TestLexTwoCharPunct(t *testing.T) {
	toks := lexAll(t, "<> <= >= ||")
	lits := []string{toks[0].Literal, toks[1].Literal, toks[2].Literal, toks[3].Literal}
	assert.Equal(t, []string{"<>", "<=", ">=", "||"}, lits)
}

func TestLexLineComment(t *testing.T) {
	toks := lexAll(t, "select u -- comment\nfrom User u")
	assert.Equal(t, "select", toks[0].Literal)
	assert.Equal(t, "from", toks[2].Literal)
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	l := New("'abc")
	_, err := l.Next()
	assert.Error(t, err)
}

func TestLexIllegalCharacterErrors(t *testing.T) {
	l := New("@")
	_, err := l.Next()
	assert.Error(t, err)
}

func TestLexTracksLineAndColumn(t *testing.T) {
	toks := lexAll(t, "select\nu")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 1, toks[0].Column)
	assert.Equal(t, 1, toks[1].Column)
}
