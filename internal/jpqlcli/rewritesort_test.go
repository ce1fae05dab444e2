package jpqlcli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sortFileYAML = `
profiles:
  byName:
    - property: name
      direction: ASC
`

const sortListYAML = `
- property: name
  direction: ASC
`

func TestRewriteSortInjectsOrderBy(t *testing.T) {
	sortFile := filepath.Join(t.TempDir(), "sort.yaml")
	require.NoError(t, writeFile(sortFile, sortFileYAML))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRewriteSortCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--sort-file", sortFile, "--profile", "byName", "select u from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "select u from User u order by u.name asc\n", buf.String())
}

// TestRewriteSortFromAdHocListMatchesProfile exercises the
// "Profile equivalence" property: a bare --sort-file list with no
// --profile produces the same rewrite as the same orders looked up
// from a named profile.
func TestRewriteSortFromAdHocListMatchesProfile(t *testing.T) {
	sortFile := filepath.Join(t.TempDir(), "sort.yaml")
	require.NoError(t, writeFile(sortFile, sortListYAML))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRewriteSortCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--sort-file", sortFile, "select u from User u"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "select u from User u order by u.name asc\n", buf.String())
}

func TestRewriteSortRequiresSortFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRewriteSortCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--profile", "byName", "select u from User u"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRewriteSortUnknownProfileFails(t *testing.T) {
	sortFile := filepath.Join(t.TempDir(), "sort.yaml")
	require.NoError(t, writeFile(sortFile, sortFileYAML))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRewriteSortCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--sort-file", sortFile, "--profile", "doesNotExist", "select u from User u"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
