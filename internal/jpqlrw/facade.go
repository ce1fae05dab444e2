// Package jpqlrw bundles the parser, walker and renderer into the
// named operations of the rewrite engine: rewrite, rewrite with sort,
// count query, alias detection, projection extraction and
// constructor detection. Each operation builds a fresh
// jpqlwalk.State — nothing is
// shared across calls.
package jpqlrw

import (
	"fmt"
	"log/slog"

	"github.com/catalystquery/jpqlrw/internal/jpqlparse"
	"github.com/catalystquery/jpqlrw/internal/jpqlrender"
	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

// InvalidQuery wraps a fail-fast parser failure surfaced by Rewrite,
// RewriteWithSort and CountQuery.
type InvalidQuery struct {
	Query string
	Err   error
}

func (e *InvalidQuery) Error() string {
	return fmt.Sprintf("invalid query: %v", e.Err)
}

func (e *InvalidQuery) Unwrap() error { return e.Err }

// recoverInvariantViolation logs an InternalInvariantViolation panic
// and re-raises it: it is treated as unrecoverable, not a
// returned error, so this only observes it on the way out.
func recoverInvariantViolation(query string) {
	r := recover()
	if r == nil {
		return
	}
	if violation, ok := r.(*jpqlwalk.InternalInvariantViolation); ok {
		slog.Error("internal invariant violation", "query", query, "error", violation.Error())
	}
	panic(r)
}

// Rewrite parses query fail-fast, walks it and renders the result.
func Rewrite(query string) (string, error) {
	defer recoverInvariantViolation(query)
	stmt, err := jpqlparse.ParseFailFast(query)
	if err != nil {
		return "", &InvalidQuery{Query: query, Err: err}
	}
	return jpqlrender.Render(jpqlwalk.Walk(stmt, jpqlwalk.NewState())), nil
}

// RewriteWithSort is Rewrite with an additional sort order injected
// into (or appended to) the query's order-by clause.
func RewriteWithSort(query string, sort []jpqlwalk.SortOrder) (string, error) {
	defer recoverInvariantViolation(query)
	stmt, err := jpqlparse.ParseFailFast(query)
	if err != nil {
		return "", &InvalidQuery{Query: query, Err: err}
	}
	state := jpqlwalk.NewState()
	state.Sort = sort
	return jpqlrender.Render(jpqlwalk.Walk(stmt, state)), nil
}

// CountQuery rewrites query's top-level select clause into a count
// projection. A non-empty countProjection overrides the
// alias-or-select-items logic and is used verbatim as
// the inner projection.
func CountQuery(query, countProjection string) (string, error) {
	defer recoverInvariantViolation(query)
	stmt, err := jpqlparse.ParseFailFast(query)
	if err != nil {
		return "", &InvalidQuery{Query: query, Err: err}
	}
	state := jpqlwalk.NewState()
	state.CountMode = true
	state.CountProjection = countProjection
	return jpqlrender.Render(jpqlwalk.Walk(stmt, state)), nil
}

// DetectAlias parses query permissively and returns the captured
// range-variable alias, or "" if the query does not parse.
func DetectAlias(query string) string {
	defer recoverInvariantViolation(query)
	stmt := jpqlparse.ParsePermissive(query)
	if stmt == nil {
		return ""
	}
	state := jpqlwalk.NewState()
	jpqlwalk.Walk(stmt, state)
	return state.Alias()
}

// Projection parses query permissively and renders the captured
// top-level select items, or "" if the query does not parse.
func Projection(query string) string {
	defer recoverInvariantViolation(query)
	stmt := jpqlparse.ParsePermissive(query)
	if stmt == nil {
		return ""
	}
	state := jpqlwalk.NewState()
	jpqlwalk.Walk(stmt, state)
	return jpqlrender.Render(state.Projection())
}

// HasConstructorExpression parses query fail-fast and reports whether
// any select item is a constructor_expression, or false if the query
// does not parse.
func HasConstructorExpression(query string) bool {
	defer recoverInvariantViolation(query)
	stmt, err := jpqlparse.ParseFailFast(query)
	if err != nil {
		return false
	}
	state := jpqlwalk.NewState()
	jpqlwalk.Walk(stmt, state)
	return state.HasConstructorExpression()
}

// RewriteDebug is Rewrite's diagnostic counterpart: it renders with
// jpqlrender.RenderDebug, tagging every token with its originating
// production, for golden tests that assert on structure rather than
// the plain output string.
func RewriteDebug(query string) (string, error) {
	defer recoverInvariantViolation(query)
	stmt, err := jpqlparse.ParseFailFast(query)
	if err != nil {
		return "", &InvalidQuery{Query: query, Err: err}
	}
	return jpqlrender.RenderDebug(jpqlwalk.Walk(stmt, jpqlwalk.NewState())), nil
}
