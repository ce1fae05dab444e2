// Package testsupport adapts goldie-based snapshot assertions to the
// rewrite engine's debug-render output. Each token in a debug render
// carries a bracketed tag naming the AST node that produced it, so a
// walker change that moves a token to a different node's span shows up
// as a tag change in the diff, not just a silent reordering.
package testsupport

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
)

// AssertRewriteGolden rewrites query with jpqlrw.RewriteDebug and
// compares the debug render against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func AssertRewriteGolden(t *testing.T, name, query string) {
	t.Helper()

	out, err := jpqlrw.RewriteDebug(query)
	if err != nil {
		t.Fatalf("RewriteDebug(%q) failed: %v", query, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(out))
}
