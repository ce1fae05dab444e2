package jpqlcli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasConstructorTrueForConstructorExpression(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHasConstructorCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"select new com.example.Dto(u.id) from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "true\n", buf.String())
}

func TestHasConstructorFalseOtherwise(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHasConstructorCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"select u from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "false\n", buf.String())
}
