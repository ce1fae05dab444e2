package jpqlcli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDerivesCountQuery(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCountCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"select u from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "select count(u) from User u\n", buf.String())
}

func TestCountProjectionOverrideFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCountCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--count-projection", "u.id", "select u from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "select count(u.id) from User u\n", buf.String())
}

func TestCountInvalidQueryFails(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCountCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"select from where"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
