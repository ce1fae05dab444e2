package jpqlcli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheShowReportsEntryCount(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	rootOpts := &RootOptions{Format: "text"}
	rewriteCmd := NewRewriteCommand(rootOpts)
	rewriteCmd.SetOut(&bytes.Buffer{})
	rewriteCmd.SetArgs([]string{"--cache", cachePath, "select u from User u"})
	require.NoError(t, rewriteCmd.Execute())

	buf := &bytes.Buffer{}
	root := NewCacheCommand(rootOpts)
	root.SetOut(buf)
	root.SetArgs([]string{"show", "--cache", cachePath})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "1 entry")
}

func TestCacheClearEmptiesEntries(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	rootOpts := &RootOptions{Format: "text"}
	rewriteCmd := NewRewriteCommand(rootOpts)
	rewriteCmd.SetOut(&bytes.Buffer{})
	rewriteCmd.SetArgs([]string{"--cache", cachePath, "select u from User u"})
	require.NoError(t, rewriteCmd.Execute())

	clearBuf := &bytes.Buffer{}
	root := NewCacheCommand(rootOpts)
	root.SetOut(clearBuf)
	root.SetArgs([]string{"clear", "--cache", cachePath})
	require.NoError(t, root.Execute())

	showBuf := &bytes.Buffer{}
	root2 := NewCacheCommand(rootOpts)
	root2.SetOut(showBuf)
	root2.SetArgs([]string{"show", "--cache", cachePath})
	require.NoError(t, root2.Execute())
	assert.Contains(t, showBuf.String(), "0 entries")
}
