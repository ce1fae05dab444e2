package jpqlwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystquery/jpqlrw/internal/jpqlparse"
	"github.com/catalystquery/jpqlrw/internal/jpqlrender"
)

func rewrite(t *testing.T, query string, configure func(*State)) string {
	t.Helper()
	stmt, err := jpqlparse.ParseFailFast(query)
	require.NoError(t, err)
	state := NewState()
	if configure != nil {
		configure(state)
	}
	return jpqlrender.Render(Walk(stmt, state))
}

func TestScenarioNoSortPassthrough(t *testing.T) {
	out := rewrite(t, "select u from User u", nil)
	assert.Equal(t, "select u from User u", out)
}

func TestScenarioInjectSortNoExistingOrderBy(t *testing.T) {
	out := rewrite(t, "select u from User u", func(s *State) {
		s.Sort = []SortOrder{{Property: "name"}}
	})
	assert.Equal(t, "select u from User u order by u.name asc", out)
}

func TestScenarioInjectSortExtendsExistingOrderBy(t *testing.T) {
	out := rewrite(t, "select u from User u order by u.id", func(s *State) {
		s.Sort = []SortOrder{{Property: "name", Descending: true, IgnoreCase: true}}
	})
	assert.Equal(t, "select u from User u order by u.id, lower(u.name) desc", out)
}

func TestScenarioCountMode(t *testing.T) {
	out := rewrite(t, "select u from User u", func(s *State) {
		s.CountMode = true
	})
	assert.Equal(t, "select count(u) from User u", out)
}

func TestScenarioCountModeDistinctPreservesItems(t *testing.T) {
	out := rewrite(t, "select distinct u.name, u.role from User u", func(s *State) {
		s.CountMode = true
	})
	assert.Equal(t, "select count(distinct u.name, u.role) from User u", out)
}

func TestScenarioConstructorForcesAliasFallback(t *testing.T) {
	stmt, err := jpqlparse.ParseFailFast("select new com.example.Dto(u.a, u.b) from User u")
	require.NoError(t, err)

	state := NewState()
	buf := Walk(stmt, state)
	assert.True(t, state.HasConstructorExpression())
	assert.Equal(t, "new com.example.Dto(u.a, u.b)", jpqlrender.Render(state.Projection()))

	countState := NewState()
	countState.CountMode = true
	countOut := jpqlrender.Render(Walk(stmt, countState))
	assert.Equal(t, "select count(u) from User u", countOut)
	_ = buf
}

func TestAliasCapturedFromFirstRangeVariable(t *testing.T) {
	stmt, err := jpqlparse.ParseFailFast("select u from User u")
	require.NoError(t, err)
	state := NewState()
	Walk(stmt, state)
	assert.Equal(t, "u", state.Alias())
}

func TestAliasCapturedWithExplicitAs(t *testing.T) {
	stmt, err := jpqlparse.ParseFailFast("select u from User as u")
	require.NoError(t, err)
	state := NewState()
	out := jpqlrender.Render(Walk(stmt, state))
	assert.Equal(t, "u", state.Alias())
	assert.Equal(t, "select u from User as u", out)
}

func TestCountProjectionOverride(t *testing.T) {
	out := rewrite(t, "select u from User u", func(s *State) {
		s.CountMode = true
		s.CountProjection = "u.id"
	})
	assert.Equal(t, "select count(u.id) from User u", out)
}

func TestFetchJoinWithOnCondition(t *testing.T) {
	out := rewrite(t, "select u from User u left join fetch u.orders o on o.active = true", nil)
	assert.Equal(t, "select u from User u left join fetch u.orders o on o.active = true", out)
}

func TestWhereWithSubqueryExists(t *testing.T) {
	out := rewrite(t, "select u from User u where exists (select o from Order o where o.user = u)", nil)
	assert.Equal(t, "select u from User u where exists (select o from Order o where o.user = u)", out)
}

func TestCaseExpressionRendering(t *testing.T) {
	out := rewrite(t, "select case when u.age < 18 then 'minor' else 'adult' end from User u", nil)
	assert.Equal(t, "select case when u.age < 18 then 'minor' else 'adult' end from User u", out)
}

func TestNoConsecutiveSpacesInOutput(t *testing.T) {
	out := rewrite(t, "select u.name from User u where u.age between 1 and 2", nil)
	assert.NotContains(t, out, "  ")
}

func TestIdempotentRewrite(t *testing.T) {
	query := "select distinct u.name, u.role from User u where u.active = true order by u.name"
	first := rewrite(t, query, nil)
	second := rewrite(t, first, nil)
	assert.Equal(t, first, second)
}

type stubAllowList map[string]bool

func (s stubAllowList) Allows(name string) bool { return s[name] }

func TestVendorFunctionNamesCollectedRegardlessOfMode(t *testing.T) {
	var st *State
	out := rewrite(t, "select function('soundex', u.name) from User u", func(s *State) { st = s })
	assert.Equal(t, "select function('soundex', u.name) from User u", out)
	assert.Equal(t, []string{"soundex"}, st.VendorFunctionNames())
}

func TestFailFastAllowListPermitsListedFunction(t *testing.T) {
	out := rewrite(t, "select function('to_upper', u.name) from User u", func(s *State) {
		s.FailFast = true
		s.AllowList = stubAllowList{"to_upper": true}
	})
	assert.Equal(t, "select function('to_upper', u.name) from User u", out)
}

func TestFailFastAllowListRejectsUnlistedFunction(t *testing.T) {
	stmt, err := jpqlparse.ParseFailFast("select function('drop_table', u.id) from User u")
	require.NoError(t, err)

	state := NewState()
	state.FailFast = true
	state.AllowList = stubAllowList{"to_upper": true}

	assert.Panics(t, func() { Walk(stmt, state) })
}

func TestPermissiveModeNeverConsultsAllowList(t *testing.T) {
	out := rewrite(t, "select function('drop_table', u.id) from User u", func(s *State) {
		s.AllowList = stubAllowList{"to_upper": true}
	})
	assert.Equal(t, "select function('drop_table', u.id) from User u", out)
}

func TestVendorFunctionNamesExposedOnState(t *testing.T) {
	stmt, err := jpqlparse.ParseFailFast("select function('soundex', u.name) from User u where function('metaphone', u.name) = 'X'")
	require.NoError(t, err)
	state := NewState()
	Walk(stmt, state)
	assert.Equal(t, []string{"soundex", "metaphone"}, state.VendorFunctionNames())
}

func TestTreatAsInJoinPath(t *testing.T) {
	out := rewrite(t, "select e from Employee e join treat(e.manager as Executive) m where m.bonus > 0", nil)
	assert.Equal(t, "select e from Employee e join treat(e.manager as Executive) m where m.bonus > 0", out)
}

func TestTreatAsInWhereCondition(t *testing.T) {
	out := rewrite(t, "select e from Employee e where treat(e as Manager) = e", nil)
	assert.Equal(t, "select e from Employee e where treat(e as Manager) = e", out)
}

func TestKeyValueQualifiedMapPaths(t *testing.T) {
	out := rewrite(t, "select key(m), value(m) from Department d join d.employeesByName m", nil)
	assert.Equal(t, "select key(m), value(m) from Department d join d.employeesByName m", out)
}

func TestValueQualifiedMapPathInWhereCondition(t *testing.T) {
	out := rewrite(t, "select d from Department d join d.employeesByName m where value(m) = :target", nil)
	assert.Equal(t, "select d from Department d join d.employeesByName m where value(m) = :target", out)
}
