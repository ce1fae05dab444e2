package jpqlwalk

import (
	"fmt"
	"strings"

	"github.com/catalystquery/jpqlrw/internal/jpqlast"
	"github.com/catalystquery/jpqlrw/internal/jpqltoken"
)

// tagContext stamps every token in buf that doesn't already carry a
// Context with the grammar production that produced it; the debug
// renderer shows it as a bracketed tag. Tokens already tagged are
// left alone, so a clause's wrapping
// tokens (keywords it pushes directly) get the clause's own type while
// nested expressions keep the more specific type their own visit
// assigned first. node may be a string for synthetic spans that have
// no corresponding AST node.
func tagContext(buf jpqltoken.Buffer, node any) jpqltoken.Buffer {
	label, ok := node.(string)
	if !ok {
		label = nodeTypeName(node)
	}
	for i := range buf {
		if buf[i].Context == "" {
			buf[i].Context = label
		}
	}
	return buf
}

// nodeTypeName reduces a %T-formatted Go type name to its bare
// identifier, e.g. "*jpqlast.WhereClause" to "WhereClause".
func nodeTypeName(node any) string {
	name := fmt.Sprintf("%T", node)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[idx+1:]
	}
	return strings.TrimPrefix(name, "*")
}

// Walk dispatches on stmt's concrete type and returns the rendered
// token buffer for the whole statement, applying count-mode synthesis
// and sort injection when stmt is the top-level select statement;
// nested select statements (subqueries) never get either treatment.
func Walk(stmt jpqlast.Statement, state *State) jpqltoken.Buffer {
	switch s := stmt.(type) {
	case *jpqlast.SelectStatement:
		return visitSelectStatement(s, state, true)
	case *jpqlast.UpdateStatement:
		return visitUpdateStatement(s, state)
	case *jpqlast.DeleteStatement:
		return visitDeleteStatement(s, state)
	default:
		panicUnhandled(fmt.Sprintf("%T", stmt))
		return nil
	}
}

func visitSelectStatement(stmt *jpqlast.SelectStatement, state *State, topLevel bool) jpqltoken.Buffer {
	selectBuf, itemsBuf, itemsHaveConstructor := visitSelectClause(stmt.Select, state)

	var buf jpqltoken.Buffer
	if topLevel && state.CountMode {
		buf.PushAll(synthesizeCountSelect(stmt.Select, itemsBuf, itemsHaveConstructor, state))
	} else {
		buf.PushAll(selectBuf)
	}
	if topLevel {
		state.projection = append(jpqltoken.Buffer(nil), itemsBuf...)
	}

	buf.PushAll(visitFromClause(stmt.From, state))
	if stmt.Where != nil {
		buf.PushAll(visitWhereClause(stmt.Where, state))
	}
	if stmt.GroupBy != nil {
		buf.PushAll(visitGroupByClause(stmt.GroupBy, state))
	}
	if stmt.Having != nil {
		buf.PushAll(visitHavingClause(stmt.Having, state))
	}
	if stmt.OrderBy != nil {
		buf.PushAll(visitOrderByClause(stmt.OrderBy, state))
	}
	if topLevel && !state.CountMode && len(state.Sort) > 0 {
		injectSort(&buf, state, stmt.OrderBy != nil)
	}
	return tagContext(buf, stmt)
}

func visitUpdateStatement(stmt *jpqlast.UpdateStatement, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("update"))
	buf.PushAll(visitDeclaration(stmt.Entity, state))
	buf.Push(jpqltoken.Lit("set"))

	items := make([]jpqltoken.Buffer, len(stmt.Set))
	for i, assign := range stmt.Set {
		items[i] = visitSetAssignment(assign, state)
	}
	buf.PushAll(joinWithCommas(items))

	if stmt.Where != nil {
		buf.PushAll(visitWhereClause(stmt.Where, state))
	}
	return tagContext(buf, stmt)
}

func visitSetAssignment(a jpqlast.SetAssignment, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(a.Target, state))
	buf.Push(jpqltoken.Lit("="))
	buf.PushAll(visitExpr(a.Value, state))
	return tagContext(buf, a)
}

func visitDeleteStatement(stmt *jpqlast.DeleteStatement, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("delete"))
	buf.Push(jpqltoken.Lit("from"))
	buf.PushAll(visitDeclaration(stmt.Entity, state))
	if stmt.Where != nil {
		buf.PushAll(visitWhereClause(stmt.Where, state))
	}
	return tagContext(buf, stmt)
}

// visitSelectClause returns the full select_clause rendering (used
// outside count mode), the items-only rendering (used for projection
// capture and count-mode item preservation), and whether any select
// item is a constructor expression.
func visitSelectClause(sel jpqlast.SelectClause, state *State) (full, items jpqltoken.Buffer, itemsHaveConstructor bool) {
	for _, it := range sel.Items {
		if _, ok := it.Expr.(*jpqlast.ConstructorExpr); ok {
			itemsHaveConstructor = true
		}
	}
	full.Push(jpqltoken.Lit("select"))
	if sel.Distinct {
		full.Push(jpqltoken.Lit("distinct"))
	}
	items = visitSelectItems(sel.Items, state)
	full.PushAll(items)
	return tagContext(full, sel), items, itemsHaveConstructor
}

func visitSelectItems(selItems []jpqlast.SelectItem, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	if len(selItems) == 0 {
		return buf
	}
	for _, item := range selItems {
		buf.PushAll(visitSelectItem(item, state))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(","))
	}
	buf.Clip()
	buf.Space()
	return buf
}

func visitSelectItem(item jpqlast.SelectItem, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(item.Expr, state))
	if item.Alias != "" {
		buf.Push(jpqltoken.Lit("as"))
		buf.Push(jpqltoken.Lit(item.Alias))
	}
	return tagContext(buf, item)
}

func visitFromClause(clause jpqlast.FromClause, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("from"))
	roots := make([]jpqltoken.Buffer, len(clause.Roots))
	for i, root := range clause.Roots {
		roots[i] = visitFromRoot(root, state)
	}
	buf.PushAll(joinWithCommas(roots))
	return tagContext(buf, clause)
}

func visitFromRoot(root jpqlast.FromRoot, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitDeclaration(root.Declaration, state))
	for _, join := range root.Joins {
		buf.PushAll(visitJoin(join, state))
	}
	return tagContext(buf, root)
}

func visitDeclaration(decl jpqlast.Declaration, state *State) jpqltoken.Buffer {
	switch d := decl.(type) {
	case jpqlast.RangeVariableDeclaration:
		var buf jpqltoken.Buffer
		buf.Push(jpqltoken.Lit(d.Entity))
		if d.As {
			buf.Push(jpqltoken.Lit("as"))
		}
		buf.Push(jpqltoken.Lit(d.Alias))
		state.captureAlias(d.Alias)
		return tagContext(buf, d)
	case jpqlast.CollectionMemberDeclaration:
		var buf jpqltoken.Buffer
		buf.Push(jpqltoken.Lit("in"))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit("("))
		buf.NoSpace()
		buf.PushAll(visitExpr(d.Path, state))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(")"))
		if d.As {
			buf.Push(jpqltoken.Lit("as"))
		}
		buf.Push(jpqltoken.Lit(d.Alias))
		return tagContext(buf, d)
	default:
		panicUnhandled(fmt.Sprintf("%T", decl))
		return nil
	}
}

func visitJoin(join jpqlast.Join, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	switch join.Kind {
	case jpqlast.JoinInner:
		buf.Push(jpqltoken.Lit("join"))
	case jpqlast.JoinLeft:
		buf.Push(jpqltoken.Lit("left"))
		buf.Push(jpqltoken.Lit("join"))
	case jpqlast.JoinOuter:
		buf.Push(jpqltoken.Lit("outer"))
		buf.Push(jpqltoken.Lit("join"))
	default:
		panicUnhandled(fmt.Sprintf("join kind %d", join.Kind))
	}
	if join.Fetch {
		buf.Push(jpqltoken.Lit("fetch"))
	}
	buf.PushAll(visitExpr(join.Path, state))
	if join.Alias != "" {
		buf.Push(jpqltoken.Lit(join.Alias))
	}
	if join.On != nil {
		buf.Push(jpqltoken.Lit("on"))
		buf.PushAll(visitExpr(join.On, state))
	}
	return tagContext(buf, join)
}

func visitWhereClause(w *jpqlast.WhereClause, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("where"))
	buf.PushAll(visitExpr(w.Condition, state))
	return tagContext(buf, w)
}

func visitGroupByClause(g *jpqlast.GroupByClause, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("group"))
	buf.Push(jpqltoken.Lit("by"))
	buf.PushAll(visitExprList(g.Items, state))
	return tagContext(buf, g)
}

func visitHavingClause(h *jpqlast.HavingClause, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("having"))
	buf.PushAll(visitExpr(h.Condition, state))
	return tagContext(buf, h)
}

func visitOrderByClause(o *jpqlast.OrderByClause, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("order"))
	buf.Push(jpqltoken.Lit("by"))
	items := make([]jpqltoken.Buffer, len(o.Items))
	for i, item := range o.Items {
		items[i] = visitOrderByItem(item, state)
	}
	buf.PushAll(joinWithCommas(items))
	return tagContext(buf, o)
}

func visitOrderByItem(item jpqlast.OrderByItem, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(item.Expr, state))
	if item.Explicit {
		if item.Direction == jpqlast.Desc {
			buf.Push(jpqltoken.Lit("desc"))
		} else {
			buf.Push(jpqltoken.Lit("asc"))
		}
	}
	return tagContext(buf, item)
}

// joinWithCommas applies the general comma-separated-list whitespace
// rule to pre-rendered item buffers: no space before a comma, one
// space after.
func joinWithCommas(items []jpqltoken.Buffer) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	if len(items) == 0 {
		return buf
	}
	for _, item := range items {
		buf.PushAll(item)
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(","))
	}
	buf.Clip()
	buf.Space()
	return buf
}

func visitExprList(items []jpqlast.Expr, state *State) jpqltoken.Buffer {
	bufs := make([]jpqltoken.Buffer, len(items))
	for i, item := range items {
		bufs[i] = visitExpr(item, state)
	}
	return joinWithCommas(bufs)
}

// aliasToken returns a lazily-resolved token for the captured alias,
// needed wherever the alias is referenced before it is necessarily
// captured yet: count-mode synthesis runs before the FROM clause that
// captures it, so resolving the alias at render time rather than
// visit time guarantees it sees the final captured value.
func aliasToken(state *State) jpqltoken.Token {
	return jpqltoken.Deferred(state.Alias)
}
