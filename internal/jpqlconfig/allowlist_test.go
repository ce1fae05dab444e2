package jpqlconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFunctionAllowListAccepts(t *testing.T) {
	allow, err := ParseFunctionAllowList([]byte("allow: [to_upper, soundex]\n"), "allow.yaml")
	require.NoError(t, err)
	assert.True(t, allow.Allows("to_upper"))
	assert.True(t, allow.Allows("soundex"))
	assert.False(t, allow.Allows("drop_table"))
}

func TestParseFunctionAllowListRejectsInvalidName(t *testing.T) {
	_, err := ParseFunctionAllowList([]byte("allow: [\"not a function\"]\n"), "allow.yaml")
	assert.Error(t, err)
}

func TestParseFunctionAllowListRejectsWrongShape(t *testing.T) {
	_, err := ParseFunctionAllowList([]byte("allow: \"not-a-list\"\n"), "allow.yaml")
	assert.Error(t, err)
}

func TestParseFunctionAllowListEmpty(t *testing.T) {
	allow, err := ParseFunctionAllowList([]byte("allow: []\n"), "allow.yaml")
	require.NoError(t, err)
	assert.False(t, allow.Allows("anything"))
}
