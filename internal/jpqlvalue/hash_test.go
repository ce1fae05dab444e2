package jpqlvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteCacheKeyStableForSameInput(t *testing.T) {
	key1, err := RewriteCacheKey("select u from User u", map[string]any{"countMode": true})
	require.NoError(t, err)
	key2, err := RewriteCacheKey("select u from User u", map[string]any{"countMode": true})
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 64) // hex-encoded SHA-256
}

func TestRewriteCacheKeyDiffersForDifferentOptions(t *testing.T) {
	key1, err := RewriteCacheKey("select u from User u", map[string]any{"countMode": true})
	require.NoError(t, err)
	key2, err := RewriteCacheKey("select u from User u", map[string]any{"countMode": false})
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2)
}
