package jpqltoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitTextIsLiteral(t *testing.T) {
	tok := Lit("select")
	assert.Equal(t, "select", tok.Text())
	assert.Equal(t, Space, tok.Trailing)
}

func TestDeferredResolvesAtCallTime(t *testing.T) {
	alias := "u"
	tok := Deferred(func() string { return alias + ".name" })
	assert.Equal(t, "u.name", tok.Text())

	alias = "v"
	// Resolution is idempotent but always reflects current state, not a
	// snapshot taken when Deferred was called.
	assert.Equal(t, "v.name", tok.Text())
}

func TestWithTrailingDoesNotMutateOriginal(t *testing.T) {
	base := Lit("(")
	spaced := base.WithTrailing(NoSpace)
	assert.Equal(t, Space, base.Trailing)
	assert.Equal(t, NoSpace, spaced.Trailing)
}

func TestAsDebugOnlyAndWithLineBreak(t *testing.T) {
	tok := Lit("x").AsDebugOnly().WithLineBreak()
	assert.True(t, tok.DebugOnly)
	assert.True(t, tok.LineBreak)
}
