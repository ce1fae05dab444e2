package jpqlwalk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/catalystquery/jpqlrw/internal/jpqlast"
	"github.com/catalystquery/jpqlrw/internal/jpqltoken"
	"github.com/catalystquery/jpqlrw/internal/jpqlvalue"
)

// visitExpr is the exhaustive dispatch over every jpqlast.Expr
// variant. An unhandled concrete type is an
// InternalInvariantViolation — every type jpqlast declares must have a
// case here. Every returned buffer is tagged with expr's concrete type
// before it reaches the caller, so a BinaryExpr's own keyword/operator
// tokens carry "BinaryExpr" while its operands keep whatever more
// specific tag their own dispatch already gave them.
func visitExpr(expr jpqlast.Expr, state *State) jpqltoken.Buffer {
	return tagContext(visitExprDispatch(expr, state), expr)
}

func visitExprDispatch(expr jpqlast.Expr, state *State) jpqltoken.Buffer {
	switch n := expr.(type) {
	case *jpqlast.PathExpr:
		return visitPath(n)
	case *jpqlast.TreatAs:
		return visitTreatAs(n, state)
	case *jpqlast.LiteralExpr:
		return jpqltoken.Buffer{jpqltoken.Lit(renderLiteral(n.Value))}
	case *jpqlast.ParameterExpr:
		return visitParameter(n)
	case *jpqlast.SpelExpr:
		return jpqltoken.Buffer{jpqltoken.Lit(n.Raw)}
	case *jpqlast.BinaryExpr:
		return visitBinary(n, state)
	case *jpqlast.UnaryExpr:
		return visitUnary(n, state)
	case *jpqlast.ParenExpr:
		return emitParen(func(buf *jpqltoken.Buffer) { buf.PushAll(visitExpr(n.Inner, state)) })
	case *jpqlast.BetweenExpr:
		return visitBetween(n, state)
	case *jpqlast.InExpr:
		return visitIn(n, state)
	case *jpqlast.LikeExpr:
		return visitLike(n, state)
	case *jpqlast.NullTestExpr:
		return visitNullTest(n, state)
	case *jpqlast.EmptyTestExpr:
		return visitEmptyTest(n, state)
	case *jpqlast.MemberOfExpr:
		return visitMemberOf(n, state)
	case *jpqlast.ExistsExpr:
		return visitExists(n, state)
	case *jpqlast.QuantifiedExpr:
		return visitQuantified(n, state)
	case *jpqlast.CaseExpr:
		return visitCase(n, state)
	case *jpqlast.CoalesceExpr:
		return emitFunctionCallBuf("coalesce", n.Args, state)
	case *jpqlast.NullIfExpr:
		return emitFunctionCallBuf("nullif", []jpqlast.Expr{n.Left, n.Right}, state)
	case *jpqlast.TrimExpr:
		return visitTrim(n, state)
	case *jpqlast.ExtractExpr:
		return visitExtract(n, state)
	case *jpqlast.TypeExpr:
		return emitFunctionCallBuf("type", []jpqlast.Expr{n.Operand}, state)
	case *jpqlast.FunctionExpr:
		return visitFunction(n, state)
	case *jpqlast.ConstructorExpr:
		return visitConstructor(n, state)
	case *jpqlast.SubqueryExpr:
		return emitParen(func(buf *jpqltoken.Buffer) { buf.PushAll(visitSelectStatement(n.Statement, state, false)) })
	default:
		panicUnhandled(fmt.Sprintf("%T", expr))
		return nil
	}
}

// emitParen applies the parenthesised-expression whitespace rule:
// `(` is NO_SPACE, innerFn emits the contents, then nospace is
// applied before `)`.
func emitParen(innerFn func(buf *jpqltoken.Buffer)) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	innerFn(&buf)
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

// emitFunctionCallBuf applies the function-call whitespace rule for
// the common case of a lowercase name with comma-separated arguments.
func emitFunctionCallBuf(name string, args []jpqlast.Expr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit(name))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.PushAll(visitExprList(args, state))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitPath(path *jpqlast.PathExpr) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	prefix := qualifierPrefix(path.Qualifier)
	if prefix != "" {
		buf.Push(jpqltoken.Lit(prefix))
		buf.Push(jpqltoken.Lit("("))
	}
	buf.Push(jpqltoken.Lit(path.Root))
	for _, seg := range path.Segments {
		buf.Push(jpqltoken.Lit("."))
		buf.Push(jpqltoken.Lit(seg))
	}
	if prefix != "" {
		buf.Push(jpqltoken.Lit(")"))
	}
	buf.ClipPath()
	return buf
}

func qualifierPrefix(q jpqlast.PathQualifier) string {
	switch q {
	case jpqlast.QualifierKey:
		return "key"
	case jpqlast.QualifierValue:
		return "value"
	case jpqlast.QualifierEntry:
		return "entry"
	default:
		return ""
	}
}

func visitDottedName(name string) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	for i, part := range strings.Split(name, ".") {
		if i > 0 {
			buf.Push(jpqltoken.Lit("."))
		}
		buf.Push(jpqltoken.Lit(part))
	}
	buf.ClipPath()
	return buf
}

func visitTreatAs(n *jpqlast.TreatAs, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("treat"))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.PushAll(visitExpr(n.Path, state))
	buf.Push(jpqltoken.Lit("as"))
	buf.Push(jpqltoken.Lit(n.Type))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitParameter(n *jpqlast.ParameterExpr) jpqltoken.Buffer {
	if n.Positional {
		return jpqltoken.Buffer{jpqltoken.Lit("?" + strconv.Itoa(n.Index))}
	}
	return jpqltoken.Buffer{jpqltoken.Lit(":" + n.Name)}
}

func visitBinary(n *jpqlast.BinaryExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Left, state))
	buf.Push(jpqltoken.Lit(binaryOpText(n.Op)))
	buf.PushAll(visitExpr(n.Right, state))
	return buf
}

func binaryOpText(op string) string {
	switch op {
	case "AND":
		return "and"
	case "OR":
		return "or"
	default:
		return op
	}
}

func visitUnary(n *jpqlast.UnaryExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	if n.Op == "NOT" {
		buf.Push(jpqltoken.Lit("not"))
		buf.PushAll(visitExpr(n.Operand, state))
		return buf
	}
	buf.Push(jpqltoken.Lit(n.Op))
	buf.NoSpace()
	buf.PushAll(visitExpr(n.Operand, state))
	return buf
}

func visitBetween(n *jpqlast.BetweenExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Operand, state))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("between"))
	buf.PushAll(visitExpr(n.Lower, state))
	buf.Push(jpqltoken.Lit("and"))
	buf.PushAll(visitExpr(n.Upper, state))
	return buf
}

func visitIn(n *jpqlast.InExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Operand, state))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("in"))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	if n.Subquery != nil {
		buf.PushAll(visitSelectStatement(n.Subquery, state, false))
	} else {
		buf.PushAll(visitExprList(n.Items, state))
	}
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitLike(n *jpqlast.LikeExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Operand, state))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("like"))
	buf.PushAll(visitExpr(n.Pattern, state))
	if n.Escape != nil {
		buf.Push(jpqltoken.Lit("escape"))
		buf.PushAll(visitExpr(n.Escape, state))
	}
	return buf
}

func visitNullTest(n *jpqlast.NullTestExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Operand, state))
	buf.Push(jpqltoken.Lit("is"))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("null"))
	return buf
}

func visitEmptyTest(n *jpqlast.EmptyTestExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Operand, state))
	buf.Push(jpqltoken.Lit("is"))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("empty"))
	return buf
}

func visitMemberOf(n *jpqlast.MemberOfExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.PushAll(visitExpr(n.Item, state))
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("member"))
	buf.Push(jpqltoken.Lit("of"))
	buf.PushAll(visitExpr(n.Collection, state))
	return buf
}

func visitExists(n *jpqlast.ExistsExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	if n.Not {
		buf.Push(jpqltoken.Lit("not"))
	}
	buf.Push(jpqltoken.Lit("exists"))
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.PushAll(visitSelectStatement(n.Subquery, state, false))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitQuantified(n *jpqlast.QuantifiedExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit(quantifierText(n.Quantifier)))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.PushAll(visitSelectStatement(n.Subquery, state, false))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func quantifierText(q jpqlast.Quantifier) string {
	switch q {
	case jpqlast.QuantifierAll:
		return "all"
	case jpqlast.QuantifierAny:
		return "any"
	case jpqlast.QuantifierSome:
		return "some"
	default:
		return ""
	}
}

func visitCase(n *jpqlast.CaseExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("case"))
	if n.Base != nil {
		buf.PushAll(visitExpr(n.Base, state))
	}
	for _, w := range n.Whens {
		buf.Push(jpqltoken.Lit("when"))
		buf.PushAll(visitExpr(w.When, state))
		buf.Push(jpqltoken.Lit("then"))
		buf.PushAll(visitExpr(w.Then, state))
	}
	if n.Else != nil {
		buf.Push(jpqltoken.Lit("else"))
		buf.PushAll(visitExpr(n.Else, state))
	}
	buf.Push(jpqltoken.Lit("end"))
	return buf
}

func visitTrim(n *jpqlast.TrimExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("trim"))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	switch n.Spec {
	case jpqlast.TrimLeading:
		buf.Push(jpqltoken.Lit("leading"))
	case jpqlast.TrimTrailing:
		buf.Push(jpqltoken.Lit("trailing"))
	case jpqlast.TrimBoth:
		buf.Push(jpqltoken.Lit("both"))
	}
	if n.Char != nil {
		buf.PushAll(visitExpr(n.Char, state))
	}
	if n.Spec != jpqlast.TrimUnspecified || n.Char != nil {
		buf.Push(jpqltoken.Lit("from"))
	}
	buf.PushAll(visitExpr(n.Source, state))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitExtract(n *jpqlast.ExtractExpr, state *State) jpqltoken.Buffer {
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("extract"))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(n.Field))
	buf.Push(jpqltoken.Lit("from"))
	buf.PushAll(visitExpr(n.Source, state))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func visitFunction(n *jpqlast.FunctionExpr, state *State) jpqltoken.Buffer {
	switch n.Name {
	case "AVG", "MAX", "MIN", "SUM", "COUNT":
		var buf jpqltoken.Buffer
		buf.Push(jpqltoken.Lit(strings.ToLower(n.Name)))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit("("))
		buf.NoSpace()
		if n.Distinct {
			buf.Push(jpqltoken.Lit("distinct"))
		}
		buf.PushAll(visitExprList(n.Args, state))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(")"))
		return buf
	case "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP":
		return jpqltoken.Buffer{jpqltoken.Lit(strings.ToLower(n.Name))}
	case "LOCAL DATE", "LOCAL TIME", "LOCAL DATETIME":
		var buf jpqltoken.Buffer
		for _, part := range strings.Fields(n.Name) {
			buf.Push(jpqltoken.Lit(strings.ToLower(part)))
		}
		return buf
	case "FUNCTION":
		state.checkVendorFunction(n.Literal)
		var buf jpqltoken.Buffer
		buf.Push(jpqltoken.Lit("function"))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit("("))
		buf.NoSpace()
		buf.Push(jpqltoken.Lit(quoteString(n.Literal)))
		buf.NoSpace()
		if len(n.Args) > 0 {
			buf.Push(jpqltoken.Lit(","))
			buf.PushAll(visitExprList(n.Args, state))
			buf.NoSpace()
		}
		buf.Push(jpqltoken.Lit(")"))
		return buf
	default:
		return emitFunctionCallBuf(strings.ToLower(n.Name), n.Args, state)
	}
}

func visitConstructor(n *jpqlast.ConstructorExpr, state *State) jpqltoken.Buffer {
	state.markConstructorExpression()
	var buf jpqltoken.Buffer
	buf.Push(jpqltoken.Lit("new"))
	buf.PushAll(visitDottedName(n.ClassName))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit("("))
	buf.NoSpace()
	buf.PushAll(visitExprList(n.Args, state))
	buf.NoSpace()
	buf.Push(jpqltoken.Lit(")"))
	return buf
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func renderLiteral(v jpqlvalue.Literal) string {
	switch val := v.(type) {
	case jpqlvalue.Null:
		return "null"
	case jpqlvalue.String:
		return quoteString(string(val))
	case jpqlvalue.Int:
		return strconv.FormatInt(int64(val), 10)
	case jpqlvalue.Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case jpqlvalue.Bool:
		if bool(val) {
			return "true"
		}
		return "false"
	case jpqlvalue.Enum:
		return string(val)
	case jpqlvalue.EntityType:
		return string(val)
	case jpqlvalue.Temporal:
		return renderTemporal(val)
	default:
		panicUnhandled(fmt.Sprintf("%T", v))
		return ""
	}
}

func renderTemporal(t jpqlvalue.Temporal) string {
	var marker string
	switch t.Kind {
	case jpqlvalue.TemporalDate:
		marker = "d"
	case jpqlvalue.TemporalTime:
		marker = "t"
	case jpqlvalue.TemporalTimestamp:
		marker = "ts"
	}
	return "{" + marker + " " + quoteString(t.Text) + "}"
}
