package jpqlrw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

func TestRewritePassthrough(t *testing.T) {
	out, err := Rewrite("select u from User u")
	require.NoError(t, err)
	assert.Equal(t, "select u from User u", out)
}

func TestRewriteInvalidQuery(t *testing.T) {
	_, err := Rewrite("select u from")
	require.Error(t, err)
	var invalid *InvalidQuery
	assert.ErrorAs(t, err, &invalid)
}

func TestRewriteWithSortNoExistingOrderBy(t *testing.T) {
	out, err := RewriteWithSort("select u from User u", []jpqlwalk.SortOrder{{Property: "name"}})
	require.NoError(t, err)
	assert.Equal(t, "select u from User u order by u.name asc", out)
}

func TestRewriteWithSortExtendsExisting(t *testing.T) {
	out, err := RewriteWithSort(
		"select u from User u order by u.id",
		[]jpqlwalk.SortOrder{{Property: "name", Descending: true, IgnoreCase: true}},
	)
	require.NoError(t, err)
	assert.Equal(t, "select u from User u order by u.id, lower(u.name) desc", out)
}

func TestCountQuery(t *testing.T) {
	out, err := CountQuery("select u from User u", "")
	require.NoError(t, err)
	assert.Equal(t, "select count(u) from User u", out)
}

func TestCountQueryDistinct(t *testing.T) {
	out, err := CountQuery("select distinct u.name, u.role from User u", "")
	require.NoError(t, err)
	assert.Equal(t, "select count(distinct u.name, u.role) from User u", out)
}

func TestCountQueryOverride(t *testing.T) {
	out, err := CountQuery("select u from User u", "u.id")
	require.NoError(t, err)
	assert.Equal(t, "select count(u.id) from User u", out)
}

func TestCountQueryInvalid(t *testing.T) {
	_, err := CountQuery("select from from", "")
	require.Error(t, err)
}

func TestDetectAliasWithAs(t *testing.T) {
	assert.Equal(t, "u", DetectAlias("select u from User as u"))
}

func TestDetectAliasInvalidQueryReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", DetectAlias("not jpql at all ((("))
}

func TestProjectionConstructorExpression(t *testing.T) {
	out := Projection("select new com.example.Dto(u.a, u.b) from User u")
	assert.Equal(t, "new com.example.Dto(u.a, u.b)", out)
}

func TestProjectionInvalidQueryReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", Projection("not jpql at all ((("))
}

func TestHasConstructorExpressionTrue(t *testing.T) {
	assert.True(t, HasConstructorExpression("select new com.example.Dto(u.a) from User u"))
}

func TestHasConstructorExpressionFalse(t *testing.T) {
	assert.False(t, HasConstructorExpression("select u from User u"))
}

func TestHasConstructorExpressionInvalidQueryReturnsFalse(t *testing.T) {
	assert.False(t, HasConstructorExpression("select u from"))
}

func TestConstructorForcesCountAliasFallback(t *testing.T) {
	out, err := CountQuery("select new com.example.Dto(u.a, u.b) from User u", "")
	require.NoError(t, err)
	assert.Equal(t, "select count(u) from User u", out)
}

func TestRewriteIdempotent(t *testing.T) {
	query := "select distinct u.name, u.role from User u where u.active = true order by u.name"
	first, err := Rewrite(query)
	require.NoError(t, err)
	second, err := Rewrite(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
