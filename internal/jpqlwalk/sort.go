package jpqlwalk

import (
	"github.com/catalystquery/jpqlrw/internal/jpqlast"
	"github.com/catalystquery/jpqlrw/internal/jpqltoken"
)

// injectSort appends an order-by clause (or extends an existing one)
// with state.Sort. buf already holds everything rendered up to and
// including any existing order_by clause.
func injectSort(buf *jpqltoken.Buffer, state *State, hasExistingOrderBy bool) {
	if !hasExistingOrderBy {
		buf.Push(jpqltoken.Lit("order"))
		buf.Push(jpqltoken.Lit("by"))
	} else {
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(","))
	}

	for _, s := range state.Sort {
		var item jpqltoken.Buffer
		if s.IgnoreCase {
			item.Push(jpqltoken.Lit("lower"))
			item.NoSpace()
			item.Push(jpqltoken.Lit("("))
			item.NoSpace()
		}
		property := s.Property
		item.Push(jpqltoken.Deferred(func() string {
			return state.Alias() + "." + property
		}))
		if s.IgnoreCase {
			item.NoSpace()
			item.Push(jpqltoken.Lit(")"))
		}
		if s.Descending {
			item.Push(jpqltoken.Lit("desc"))
		} else {
			item.Push(jpqltoken.Lit("asc"))
		}
		buf.PushAll(tagContext(item, "SortOrder"))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(","))
	}
	buf.Clip()
	buf.Space()
	*buf = tagContext(*buf, "OrderByClause")
}

// synthesizeCountSelect rewrites the top-level select clause into a
// count projection. A constructor-shaped projection always falls back
// to the bare alias, even under DISTINCT, since count(new Foo(...))
// is not valid JPQL.
func synthesizeCountSelect(sel jpqlast.SelectClause, itemsBuf jpqltoken.Buffer, itemsHaveConstructor bool, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("select"))
	buf.Push(jpqltoken.Lit("count"))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()

	switch {
	case state.CountProjection != "":
		buf.Push(jpqltoken.Lit(state.CountProjection))
	case sel.Distinct && !itemsHaveConstructor:
		buf.Push(jpqltoken.Lit("distinct"))
		buf.PushAll(itemsBuf)
	default:
		buf.Push(aliasToken(state))
	}

	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return tagContext(buf, "CountProjection")
}
