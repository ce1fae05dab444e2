package jpqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystquery/jpqlrw/internal/jpqlast"
)

func TestParseSimpleSelect(t *testing.T) {
	stmt, err := ParseFailFast("select u from User u where u.age > 18")
	require.NoError(t, err)
	sel, ok := stmt.(*jpqlast.SelectStatement)
	require.True(t, ok)
	require.Len(t, sel.From.Roots, 1)
	assert.Equal(t, "User", sel.From.Roots[0].Declaration.(jpqlast.RangeVariableDeclaration).Entity)
	require.NotNil(t, sel.Where)
	bin, ok := sel.Where.Condition.(*jpqlast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ">", bin.Op)
}

func TestParseJoinFetch(t *testing.T) {
	stmt, err := ParseFailFast("select u from User u left join fetch u.orders o where o.total > 100")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	require.Len(t, sel.From.Roots[0].Joins, 1)
	join := sel.From.Roots[0].Joins[0]
	assert.Equal(t, jpqlast.JoinLeft, join.Kind)
	assert.True(t, join.Fetch)
	assert.Equal(t, "o", join.Alias)
}

func TestParseGroupByHavingOrderBy(t *testing.T) {
	stmt, err := ParseFailFast(
		"select u.department, count(u) from User u group by u.department having count(u) > 5 order by u.department desc")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	require.NotNil(t, sel.GroupBy)
	require.NotNil(t, sel.Having)
	require.NotNil(t, sel.OrderBy)
	assert.Equal(t, jpqlast.Desc, sel.OrderBy.Items[0].Direction)
}

func TestParseBetweenInLikeMemberOf(t *testing.T) {
	stmt, err := ParseFailFast(
		"select u from User u where u.age between 18 and 65 and u.status in ('ACTIVE', 'PENDING') " +
			"and u.name like 'A%' and u.role member of u.roles")
	require.NoError(t, err)
	require.NotNil(t, stmt)
}

func TestParseCaseExpression(t *testing.T) {
	stmt, err := ParseFailFast(
		"select case when u.age < 18 then 'minor' else 'adult' end from User u")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	_, ok := sel.Select.Items[0].Expr.(*jpqlast.CaseExpr)
	assert.True(t, ok)
}

func TestParseConstructorExpression(t *testing.T) {
	stmt, err := ParseFailFast("select new com.example.UserDto(u.id, u.name) from User u")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	ctor, ok := sel.Select.Items[0].Expr.(*jpqlast.ConstructorExpr)
	require.True(t, ok)
	assert.Equal(t, "com.example.UserDto", ctor.ClassName)
	assert.Len(t, ctor.Args, 2)
}

func TestParseSubqueryExists(t *testing.T) {
	stmt, err := ParseFailFast(
		"select u from User u where exists (select o from Order o where o.user = u)")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	_, ok := sel.Where.Condition.(*jpqlast.ExistsExpr)
	assert.True(t, ok)
}

func TestParseUpdateStatement(t *testing.T) {
	stmt, err := ParseFailFast("update User u set u.active = false where u.id = :id")
	require.NoError(t, err)
	upd, ok := stmt.(*jpqlast.UpdateStatement)
	require.True(t, ok)
	require.Len(t, upd.Set, 1)
	require.NotNil(t, upd.Where)
}

func TestParseDeleteStatement(t *testing.T) {
	stmt, err := ParseFailFast("delete from User u where u.active = false")
	require.NoError(t, err)
	_, ok := stmt.(*jpqlast.DeleteStatement)
	assert.True(t, ok)
}

func TestParseVendorFunction(t *testing.T) {
	stmt, err := ParseFailFast("select function('to_upper', u.name) from User u")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	fn, ok := sel.Select.Items[0].Expr.(*jpqlast.FunctionExpr)
	require.True(t, ok)
	assert.Equal(t, "to_upper", fn.Literal)
}

func TestParseTemporalLiteral(t *testing.T) {
	stmt, err := ParseFailFast("select u from User u where u.createdAt > {d '2024-01-01'}")
	require.NoError(t, err)
	require.NotNil(t, stmt)
}

func TestParsePermissiveInvalidReturnsNil(t *testing.T) {
	stmt := ParsePermissive("select from where bad syntax (")
	assert.Nil(t, stmt)
}

func TestParseFailFastInvalidReturnsSyntaxError(t *testing.T) {
	_, err := ParseFailFast("select u from User u where")
	require.Error(t, err)
	_, ok := err.(*SyntaxError)
	assert.True(t, ok)
}

func TestParseNestedAggregateDistinct(t *testing.T) {
	stmt, err := ParseFailFast("select count(distinct u.department) from User u")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	fn, ok := sel.Select.Items[0].Expr.(*jpqlast.FunctionExpr)
	require.True(t, ok)
	assert.True(t, fn.Distinct)
}

func TestParseTrimWithFromAndChar(t *testing.T) {
	stmt, err := ParseFailFast("select trim(leading '0' from u.code) from User u")
	require.NoError(t, err)
	sel := stmt.(*jpqlast.SelectStatement)
	trim, ok := sel.Select.Items[0].Expr.(*jpqlast.TrimExpr)
	require.True(t, ok)
	assert.Equal(t, jpqlast.TrimLeading, trim.Spec)
	require.NotNil(t, trim.Char)
}
