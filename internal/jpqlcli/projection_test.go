package jpqlcli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionPrintsSelectItems(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProjectionCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"select u.id, u.name from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "u.id, u.name\n", buf.String())
}

func TestProjectionInvalidQueryPrintsEmptyByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewProjectionCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"not jpql at all ((("})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "\n", buf.String())
}
