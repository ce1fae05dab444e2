package jpqlrw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
	"github.com/catalystquery/jpqlrw/internal/testsupport"
)

func TestRewriteGoldenSimpleSelect(t *testing.T) {
	testsupport.AssertRewriteGolden(t, "simple_select", "select u from User u")
}

func TestRewriteGoldenJoinFetchWithOn(t *testing.T) {
	testsupport.AssertRewriteGolden(t, "join_fetch_with_on",
		"select u from User u left join fetch u.orders o on o.active = true")
}

func TestRewriteGoldenCaseAndCoalesce(t *testing.T) {
	testsupport.AssertRewriteGolden(t, "case_and_coalesce",
		"select u.name, coalesce(u.nickname, u.name) from User u where case when u.age < 18 then true else false end = true")
}

// TestRewriteDebugTagsDivergeFromPlainRewrite pins down the property
// the golden fixtures otherwise only show indirectly: RewriteDebug
// actually differs from Rewrite, by carrying a bracketed tag naming
// the producing AST node after each token.
func TestRewriteDebugTagsDivergeFromPlainRewrite(t *testing.T) {
	query := "select u from User u where u.age < 18"

	plain, err := jpqlrw.Rewrite(query)
	require.NoError(t, err)

	debug, err := jpqlrw.RewriteDebug(query)
	require.NoError(t, err)

	assert.NotEqual(t, plain, debug)
	assert.Contains(t, debug, "[WhereClause]")
	assert.Contains(t, debug, "[BinaryExpr]")
	assert.Contains(t, debug, "[PathExpr]")
}
