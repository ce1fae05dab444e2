// Package jpqlparse implements the parser adapter: ParsePermissive
// and ParseFailFast over a hand-written recursive-descent parser that
// consumes jpqllex tokens and produces jpqlast nodes. A generated
// parser front end was assumed as an external collaborator, so this
// package is the minimal thing that has to exist for the engine to
// run end to end.
package jpqlparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/catalystquery/jpqlrw/internal/jpqlast"
	"github.com/catalystquery/jpqlrw/internal/jpqllex"
	"github.com/catalystquery/jpqlrw/internal/jpqlvalue"
)

type parser struct {
	tokens []jpqllex.Token
	pos    int
}

func newParser(input string) (*parser, error) {
	lx := jpqllex.New(input)
	var toks []jpqllex.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == jpqllex.EOF {
			break
		}
	}
	return &parser{tokens: toks}, nil
}

func (p *parser) cur() jpqllex.Token  { return p.tokens[p.pos] }
func (p *parser) peekAt(n int) jpqllex.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}
func (p *parser) advance() jpqllex.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) atKeyword(word string) bool {
	tok := p.cur()
	return tok.Kind == jpqllex.Keyword && strings.EqualFold(tok.Literal, word)
}

func (p *parser) atPunct(lit string) bool {
	tok := p.cur()
	return tok.Kind == jpqllex.Punct && tok.Literal == lit
}

func (p *parser) expectKeyword(word string) error {
	if !p.atKeyword(word) {
		return p.errorf("expected %q, got %q", word, p.cur().Literal)
	}
	p.advance()
	return nil
}

func (p *parser) expectPunct(lit string) error {
	if !p.atPunct(lit) {
		return p.errorf("expected %q, got %q", lit, p.cur().Literal)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	tok := p.cur()
	if tok.Kind != jpqllex.Ident {
		return "", p.errorf("expected identifier, got %q", tok.Literal)
	}
	p.advance()
	return tok.Literal, nil
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

// parseStatement dispatches on the leading keyword to one of the three
// top-level statement forms.
func (p *parser) parseStatement() (jpqlast.Statement, error) {
	switch {
	case p.atKeyword("SELECT"):
		return p.parseSelectStatement()
	case p.atKeyword("UPDATE"):
		return p.parseUpdateStatement()
	case p.atKeyword("DELETE"):
		return p.parseDeleteStatement()
	default:
		return nil, p.errorf("expected SELECT, UPDATE or DELETE, got %q", p.cur().Literal)
	}
}

func (p *parser) parseSelectStatement() (*jpqlast.SelectStatement, error) {
	selectClause, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	fromClause, err := p.parseFromClause()
	if err != nil {
		return nil, err
	}
	stmt := &jpqlast.SelectStatement{Select: selectClause, From: fromClause}

	if p.atKeyword("WHERE") {
		where, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	if p.atKeyword("GROUP") {
		gb, err := p.parseGroupByClause()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = gb
	}
	if p.atKeyword("HAVING") {
		having, err := p.parseHavingClause()
		if err != nil {
			return nil, err
		}
		stmt.Having = having
	}
	if p.atKeyword("ORDER") {
		ob, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = ob
	}
	return stmt, nil
}

func (p *parser) parseSelectClause() (jpqlast.SelectClause, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return jpqlast.SelectClause{}, err
	}
	clause := jpqlast.SelectClause{}
	if p.atKeyword("DISTINCT") {
		p.advance()
		clause.Distinct = true
	}
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return jpqlast.SelectClause{}, err
		}
		clause.Items = append(clause.Items, item)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return clause, nil
}

func (p *parser) parseSelectItem() (jpqlast.SelectItem, error) {
	expr, err := p.parseConditionalExpr()
	if err != nil {
		return jpqlast.SelectItem{}, err
	}
	item := jpqlast.SelectItem{Expr: expr}
	if p.atKeyword("AS") {
		p.advance()
		alias, err := p.expectIdent()
		if err != nil {
			return jpqlast.SelectItem{}, err
		}
		item.Alias = alias
	} else if p.cur().Kind == jpqllex.Ident {
		item.Alias = p.advance().Literal
	}
	return item, nil
}

func (p *parser) parseFromClause() (jpqlast.FromClause, error) {
	if err := p.expectKeyword("FROM"); err != nil {
		return jpqlast.FromClause{}, err
	}
	clause := jpqlast.FromClause{}
	for {
		root, err := p.parseFromRoot()
		if err != nil {
			return jpqlast.FromClause{}, err
		}
		clause.Roots = append(clause.Roots, root)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return clause, nil
}

func (p *parser) parseFromRoot() (jpqlast.FromRoot, error) {
	decl, err := p.parseDeclaration()
	if err != nil {
		return jpqlast.FromRoot{}, err
	}
	root := jpqlast.FromRoot{Declaration: decl}
	for p.atJoinStart() {
		join, err := p.parseJoin()
		if err != nil {
			return jpqlast.FromRoot{}, err
		}
		root.Joins = append(root.Joins, join)
	}
	return root, nil
}

func (p *parser) atJoinStart() bool {
	return p.atKeyword("JOIN") || p.atKeyword("INNER") || p.atKeyword("LEFT") || p.atKeyword("OUTER")
}

func (p *parser) parseDeclaration() (jpqlast.Declaration, error) {
	if p.atKeyword("IN") {
		p.advance()
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		path, err := p.parseConditionalExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		decl := jpqlast.CollectionMemberDeclaration{Path: path}
		if p.atKeyword("AS") {
			p.advance()
			decl.As = true
		}
		alias, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl.Alias = alias
		return decl, nil
	}

	// Entity names such as Order collide with reserved words, so a
	// keyword token is accepted here as the entity name.
	var entity string
	if p.cur().Kind == jpqllex.Keyword {
		entity = p.advance().Literal
	} else {
		var err error
		entity, err = p.expectIdent()
		if err != nil {
			return nil, err
		}
	}
	decl := jpqlast.RangeVariableDeclaration{Entity: entity}
	if p.atKeyword("AS") {
		p.advance()
		decl.As = true
	}
	alias, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl.Alias = alias
	return decl, nil
}

func (p *parser) parseJoin() (jpqlast.Join, error) {
	join := jpqlast.Join{Kind: jpqlast.JoinInner}
	switch {
	case p.atKeyword("INNER"):
		p.advance()
		if err := p.expectKeyword("JOIN"); err != nil {
			return jpqlast.Join{}, err
		}
	case p.atKeyword("LEFT"):
		p.advance()
		join.Kind = jpqlast.JoinLeft
		if p.atKeyword("OUTER") {
			p.advance()
		}
		if err := p.expectKeyword("JOIN"); err != nil {
			return jpqlast.Join{}, err
		}
	case p.atKeyword("OUTER"):
		p.advance()
		join.Kind = jpqlast.JoinOuter
		if err := p.expectKeyword("JOIN"); err != nil {
			return jpqlast.Join{}, err
		}
	default:
		if err := p.expectKeyword("JOIN"); err != nil {
			return jpqlast.Join{}, err
		}
	}

	if p.atKeyword("FETCH") {
		p.advance()
		join.Fetch = true
	}

	path, err := p.parseJoinPath()
	if err != nil {
		return jpqlast.Join{}, err
	}
	join.Path = path

	if !join.Fetch {
		if p.atKeyword("AS") {
			p.advance()
		}
		alias, err := p.expectIdent()
		if err != nil {
			return jpqlast.Join{}, err
		}
		join.Alias = alias
	} else if p.cur().Kind == jpqllex.Ident || p.atKeyword("AS") {
		// FETCH joins may still bind an alias for TREAT'd subtype access.
		if p.atKeyword("AS") {
			p.advance()
		}
		if p.cur().Kind == jpqllex.Ident {
			join.Alias = p.advance().Literal
		}
	}

	if p.atKeyword("ON") {
		p.advance()
		cond, err := p.parseConditionalExpr()
		if err != nil {
			return jpqlast.Join{}, err
		}
		join.On = cond
	}
	return join, nil
}

func (p *parser) parseJoinPath() (jpqlast.Expr, error) {
	if p.atKeyword("TREAT") {
		return p.parsePrimary()
	}
	path, err := p.parsePath(jpqlast.PathJoin)
	if err != nil {
		return nil, err
	}
	return path, nil
}

func (p *parser) parseWhereClause() (*jpqlast.WhereClause, error) {
	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	cond, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	return &jpqlast.WhereClause{Condition: cond}, nil
}

func (p *parser) parseGroupByClause() (*jpqlast.GroupByClause, error) {
	if err := p.expectKeyword("GROUP"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("BY"); err != nil {
		return nil, err
	}
	clause := &jpqlast.GroupByClause{}
	for {
		expr, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		clause.Items = append(clause.Items, expr)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return clause, nil
}

func (p *parser) parseHavingClause() (*jpqlast.HavingClause, error) {
	if err := p.expectKeyword("HAVING"); err != nil {
		return nil, err
	}
	cond, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	return &jpqlast.HavingClause{Condition: cond}, nil
}

func (p *parser) parseOrderByClause() (*jpqlast.OrderByClause, error) {
	if err := p.expectKeyword("ORDER"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("BY"); err != nil {
		return nil, err
	}
	clause := &jpqlast.OrderByClause{}
	for {
		expr, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		item := jpqlast.OrderByItem{Expr: expr, Direction: jpqlast.Asc}
		if p.atKeyword("ASC") {
			p.advance()
			item.Explicit = true
		} else if p.atKeyword("DESC") {
			p.advance()
			item.Direction = jpqlast.Desc
			item.Explicit = true
		}
		clause.Items = append(clause.Items, item)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return clause, nil
}

func (p *parser) parseUpdateStatement() (*jpqlast.UpdateStatement, error) {
	if err := p.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}
	entity, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl := jpqlast.RangeVariableDeclaration{Entity: entity}
	if p.atKeyword("AS") {
		p.advance()
		decl.As = true
	}
	if p.cur().Kind == jpqllex.Ident {
		decl.Alias = p.advance().Literal
	}

	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	stmt := &jpqlast.UpdateStatement{Entity: decl}
	for {
		target, err := p.parsePath(jpqlast.PathStateField)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("="); err != nil {
			return nil, err
		}
		value, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, jpqlast.SetAssignment{Target: target, Value: value})
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if p.atKeyword("WHERE") {
		where, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}

func (p *parser) parseDeleteStatement() (*jpqlast.DeleteStatement, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	entity, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl := jpqlast.RangeVariableDeclaration{Entity: entity}
	if p.atKeyword("AS") {
		p.advance()
		decl.As = true
	}
	if p.cur().Kind == jpqllex.Ident {
		decl.Alias = p.advance().Literal
	}
	stmt := &jpqlast.DeleteStatement{Entity: decl}
	if p.atKeyword("WHERE") {
		where, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}

// --- expressions ---

func (p *parser) parseConditionalExpr() (jpqlast.Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (jpqlast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &jpqlast.BinaryExpr{Op: "OR", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (jpqlast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("AND") {
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &jpqlast.BinaryExpr{Op: "AND", Left: left, Right: right}
	}
	return left, nil
}

// parseFactor handles a leading NOT as logical negation (NOT EXISTS
// (...), NOT (cond), NOT u.flag, ...). Operand-level NOT in x NOT
// BETWEEN/IN/LIKE/MEMBER y always follows the operand, so it is
// handled inside parseComparison instead, never here.
func (p *parser) parseFactor() (jpqlast.Expr, error) {
	if p.atKeyword("NOT") {
		p.advance()
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &jpqlast.UnaryExpr{Op: "NOT", Operand: inner}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (jpqlast.Expr, error) {
	operand, err := p.parseArithmeticExpr()
	if err != nil {
		return nil, err
	}

	not := false
	if p.atKeyword("NOT") {
		not = true
		p.advance()
	}

	switch {
	case p.atKeyword("BETWEEN"):
		p.advance()
		lower, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("AND"); err != nil {
			return nil, err
		}
		upper, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		return &jpqlast.BetweenExpr{Not: not, Operand: operand, Lower: lower, Upper: upper}, nil

	case p.atKeyword("IN"):
		p.advance()
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		in := &jpqlast.InExpr{Not: not, Operand: operand}
		if p.atKeyword("SELECT") {
			sub, err := p.parseSelectStatement()
			if err != nil {
				return nil, err
			}
			in.Subquery = sub
		} else {
			for {
				item, err := p.parseArithmeticExpr()
				if err != nil {
					return nil, err
				}
				in.Items = append(in.Items, item)
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return in, nil

	case p.atKeyword("LIKE"):
		p.advance()
		pattern, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		like := &jpqlast.LikeExpr{Not: not, Operand: operand, Pattern: pattern}
		if p.atKeyword("ESCAPE") {
			p.advance()
			escape, err := p.parseArithmeticExpr()
			if err != nil {
				return nil, err
			}
			like.Escape = escape
		}
		return like, nil

	case p.atKeyword("MEMBER"):
		p.advance()
		if p.atKeyword("OF") {
			p.advance()
		}
		collection, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		return &jpqlast.MemberOfExpr{Not: not, Item: operand, Collection: collection}, nil

	case not:
		return nil, p.errorf("unexpected NOT: expected BETWEEN, IN, LIKE or MEMBER")
	}

	if p.atKeyword("IS") {
		p.advance()
		isNot := false
		if p.atKeyword("NOT") {
			isNot = true
			p.advance()
		}
		switch {
		case p.atKeyword("NULL"):
			p.advance()
			return &jpqlast.NullTestExpr{Not: isNot, Operand: operand}, nil
		case p.atKeyword("EMPTY"):
			p.advance()
			return &jpqlast.EmptyTestExpr{Not: isNot, Operand: operand}, nil
		}
		return nil, p.errorf("expected NULL or EMPTY after IS%s", map[bool]string{true: " NOT", false: ""}[isNot])
	}

	if op, ok := p.comparisonOp(); ok {
		p.advance()
		right, err := p.parseComparisonRHS()
		if err != nil {
			return nil, err
		}
		return &jpqlast.BinaryExpr{Op: op, Left: operand, Right: right}, nil
	}

	return operand, nil
}

func (p *parser) comparisonOp() (string, bool) {
	tok := p.cur()
	if tok.Kind != jpqllex.Punct {
		return "", false
	}
	switch tok.Literal {
	case "=", "<>", "<", ">", "<=", ">=":
		return tok.Literal, true
	}
	return "", false
}

func (p *parser) parseComparisonRHS() (jpqlast.Expr, error) {
	var quant jpqlast.Quantifier
	hasQuant := true
	switch {
	case p.atKeyword("ALL"):
		quant = jpqlast.QuantifierAll
	case p.atKeyword("ANY"):
		quant = jpqlast.QuantifierAny
	case p.atKeyword("SOME"):
		quant = jpqlast.QuantifierSome
	default:
		hasQuant = false
	}
	if hasQuant {
		p.advance()
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		sub, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &jpqlast.QuantifiedExpr{Quantifier: quant, Subquery: sub}, nil
	}
	return p.parseArithmeticExpr()
}

func (p *parser) parseArithmeticExpr() (jpqlast.Expr, error) { return p.parseAdditive() }

func (p *parser) parseAdditive() (jpqlast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atPunct("+") || p.atPunct("-") {
		op := p.advance().Literal
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &jpqlast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (jpqlast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atPunct("*") || p.atPunct("/") {
		op := p.advance().Literal
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &jpqlast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (jpqlast.Expr, error) {
	if p.atPunct("+") || p.atPunct("-") {
		op := p.advance().Literal
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &jpqlast.UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePath parses a dotted identifier chain (root.seg1.seg2...) into a
// PathExpr tagged with kind.
func (p *parser) parsePath(kind jpqlast.PathKind) (*jpqlast.PathExpr, error) {
	root, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	path := &jpqlast.PathExpr{Kind: kind, Root: root}
	for p.atPunct(".") {
		p.advance()
		seg, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, seg)
	}
	return path, nil
}

func (p *parser) parseArgList() ([]jpqlast.Expr, error) {
	var args []jpqlast.Expr
	if p.atPunct(")") {
		return args, nil
	}
	for {
		arg, err := p.parseConditionalExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return args, nil
}

func (p *parser) parseIntLiteral(literal string) (int64, error) {
	return strconv.ParseInt(literal, 10, 64)
}

func (p *parser) parseFloatLiteral(literal string) (float64, error) {
	return strconv.ParseFloat(literal, 64)
}

func (p *parser) parsePrimary() (jpqlast.Expr, error) {
	tok := p.cur()

	switch tok.Kind {
	case jpqllex.String:
		p.advance()
		return &jpqlast.LiteralExpr{Value: jpqlvalue.NewString(tok.Literal)}, nil
	case jpqllex.Int:
		p.advance()
		n, err := p.parseIntLiteral(tok.Literal)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &jpqlast.LiteralExpr{Value: jpqlvalue.Int(n)}, nil
	case jpqllex.Float:
		p.advance()
		f, err := p.parseFloatLiteral(strings.TrimRight(tok.Literal, "fFdD"))
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}
		return &jpqlast.LiteralExpr{Value: jpqlvalue.Float(f)}, nil
	case jpqllex.NamedParam:
		p.advance()
		return &jpqlast.ParameterExpr{Name: tok.Literal}, nil
	case jpqllex.PositionalParam:
		p.advance()
		idx, err := p.parseIntLiteral(tok.Literal)
		if err != nil {
			return nil, p.errorf("invalid positional parameter %q", tok.Literal)
		}
		return &jpqlast.ParameterExpr{Positional: true, Index: int(idx)}, nil
	case jpqllex.Spel:
		p.advance()
		return &jpqlast.SpelExpr{Raw: tok.Literal}, nil
	}

	if p.atPunct("(") {
		return p.parseParenOrSubquery()
	}

	if p.atKeyword("TRUE") {
		p.advance()
		return &jpqlast.LiteralExpr{Value: jpqlvalue.Bool(true)}, nil
	}
	if p.atKeyword("FALSE") {
		p.advance()
		return &jpqlast.LiteralExpr{Value: jpqlvalue.Bool(false)}, nil
	}
	if p.atKeyword("NULL") {
		p.advance()
		return &jpqlast.LiteralExpr{Value: jpqlvalue.Null{}}, nil
	}

	if p.atPunct("{") {
		return p.parseTemporalLiteral()
	}

	if p.atKeyword("EXISTS") {
		return p.parseExists()
	}

	if p.atKeyword("CASE") {
		return p.parseCase()
	}
	if p.atKeyword("COALESCE") {
		return p.parseCoalesce()
	}
	if p.atKeyword("NULLIF") {
		return p.parseNullIf()
	}
	if p.atKeyword("TRIM") {
		return p.parseTrim()
	}
	if p.atKeyword("EXTRACT") {
		return p.parseExtract()
	}
	if p.atKeyword("TYPE") {
		return p.parseType()
	}
	if p.atKeyword("TREAT") {
		return p.parseTreat()
	}
	if p.atKeyword("NEW") {
		return p.parseConstructor()
	}
	if p.atKeyword("FUNCTION") {
		return p.parseVendorFunction()
	}
	if p.atKeyword("KEY") || p.atKeyword("VALUE") || p.atKeyword("ENTRY") {
		return p.parseQualifiedPath()
	}
	if p.atKeyword("CURRENT_DATE") || p.atKeyword("CURRENT_TIME") || p.atKeyword("CURRENT_TIMESTAMP") {
		name := p.advance().Literal
		return &jpqlast.FunctionExpr{Name: strings.ToUpper(name)}, nil
	}
	if p.atKeyword("LOCAL") {
		return p.parseLocalDateTime()
	}
	if name, ok := p.aggregateFunctionName(); ok {
		return p.parseAggregateFunction(name)
	}
	if name, ok := p.scalarFunctionName(); ok {
		return p.parseScalarFunction(name)
	}

	if tok.Kind == jpqllex.Ident {
		return p.parseQualifiedOrPlainPath()
	}

	return nil, p.errorf("unexpected token %q", tok.Literal)
}

func (p *parser) atKeywordAhead(n int, word string) bool {
	tok := p.peekAt(n)
	return tok.Kind == jpqllex.Keyword && strings.EqualFold(tok.Literal, word)
}

func (p *parser) parseParenOrSubquery() (jpqlast.Expr, error) {
	p.advance() // consume '('
	if p.atKeyword("SELECT") {
		stmt, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &jpqlast.SubqueryExpr{Statement: stmt}, nil
	}
	inner, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.ParenExpr{Inner: inner}, nil
}

func (p *parser) parseTemporalLiteral() (jpqlast.Expr, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	tok := p.cur()
	if tok.Kind != jpqllex.Ident {
		return nil, p.errorf("expected d, t or ts in temporal literal, got %q", tok.Literal)
	}
	var kind jpqlvalue.TemporalKind
	switch strings.ToLower(tok.Literal) {
	case "d":
		kind = jpqlvalue.TemporalDate
	case "t":
		kind = jpqlvalue.TemporalTime
	case "ts":
		kind = jpqlvalue.TemporalTimestamp
	default:
		return nil, p.errorf("unknown temporal literal marker %q", tok.Literal)
	}
	p.advance()
	strTok := p.cur()
	if strTok.Kind != jpqllex.String {
		return nil, p.errorf("expected string literal in temporal literal, got %q", strTok.Literal)
	}
	p.advance()
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &jpqlast.LiteralExpr{Value: jpqlvalue.Temporal{Kind: kind, Text: strTok.Literal}}, nil
}

func (p *parser) parseLocalDateTime() (jpqlast.Expr, error) {
	p.advance() // LOCAL
	if p.atKeyword("DATE") || p.atKeyword("TIME") || p.atKeyword("DATETIME") {
		name := p.advance().Literal
		return &jpqlast.FunctionExpr{Name: "LOCAL " + strings.ToUpper(name)}, nil
	}
	return nil, p.errorf("expected DATE, TIME or DATETIME after LOCAL, got %q", p.cur().Literal)
}

// parseExists parses EXISTS (subquery). A leading NOT EXISTS is
// handled by parseFactor wrapping this in a UnaryExpr, so Not is
// always false here; the field still exists on ExistsExpr for walkers
// that prefer a flat representation over unwrapping a UnaryExpr.
func (p *parser) parseExists() (jpqlast.Expr, error) {
	if err := p.expectKeyword("EXISTS"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	stmt, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.ExistsExpr{Subquery: stmt}, nil
}

func (p *parser) parseCase() (jpqlast.Expr, error) {
	if err := p.expectKeyword("CASE"); err != nil {
		return nil, err
	}
	expr := &jpqlast.CaseExpr{}
	if !p.atKeyword("WHEN") {
		base, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		expr.Base = base
	}
	for p.atKeyword("WHEN") {
		p.advance()
		var when jpqlast.Expr
		var err error
		if expr.Base != nil {
			when, err = p.parseArithmeticExpr()
		} else {
			when, err = p.parseConditionalExpr()
		}
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		then, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		expr.Whens = append(expr.Whens, jpqlast.WhenClause{When: when, Then: then})
	}
	if p.atKeyword("ELSE") {
		p.advance()
		elseExpr, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		expr.Else = elseExpr
	}
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseCoalesce() (jpqlast.Expr, error) {
	p.advance() // COALESCE
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.CoalesceExpr{Args: args}, nil
}

func (p *parser) parseNullIf() (jpqlast.Expr, error) {
	p.advance() // NULLIF
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	left, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	right, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.NullIfExpr{Left: left, Right: right}, nil
}

// parseTrim handles TRIM([[spec] [char] FROM] source): the spec, char
// and FROM are all optional, so a single-expression lookahead decides
// whether the first parsed expression was the trim character (followed
// by FROM) or the source itself.
func (p *parser) parseTrim() (jpqlast.Expr, error) {
	p.advance() // TRIM
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr := &jpqlast.TrimExpr{}
	switch {
	case p.atKeyword("LEADING"):
		p.advance()
		expr.Spec = jpqlast.TrimLeading
	case p.atKeyword("TRAILING"):
		p.advance()
		expr.Spec = jpqlast.TrimTrailing
	case p.atKeyword("BOTH"):
		p.advance()
		expr.Spec = jpqlast.TrimBoth
	}

	if !p.atKeyword("FROM") {
		first, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		if p.atKeyword("FROM") {
			p.advance()
			expr.Char = first
			source, err := p.parseArithmeticExpr()
			if err != nil {
				return nil, err
			}
			expr.Source = source
		} else {
			expr.Source = first
		}
	} else {
		p.advance() // FROM
		source, err := p.parseArithmeticExpr()
		if err != nil {
			return nil, err
		}
		expr.Source = source
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseExtract() (jpqlast.Expr, error) {
	p.advance() // EXTRACT
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	field, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	source, err := p.parseArithmeticExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.ExtractExpr{Field: field, Source: source}, nil
}

func (p *parser) parseType() (jpqlast.Expr, error) {
	p.advance() // TYPE
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	operand, err := p.parseArithmeticExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.TypeExpr{Operand: operand}, nil
}

func (p *parser) parseTreat() (jpqlast.Expr, error) {
	p.advance() // TREAT
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	path, err := p.parseArithmeticExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	typ, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.TreatAs{Path: path, Type: typ}, nil
}

func (p *parser) parseConstructor() (jpqlast.Expr, error) {
	p.advance() // NEW
	className, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	for p.atPunct(".") {
		p.advance()
		seg, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		className += "." + seg
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.ConstructorExpr{ClassName: className, Args: args}, nil
}

func (p *parser) parseVendorFunction() (jpqlast.Expr, error) {
	p.advance() // FUNCTION
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	nameTok := p.cur()
	if nameTok.Kind != jpqllex.String {
		return nil, p.errorf("expected string literal function name, got %q", nameTok.Literal)
	}
	p.advance()
	expr := &jpqlast.FunctionExpr{Name: "FUNCTION", Literal: nameTok.Literal}
	for p.atPunct(",") {
		p.advance()
		arg, err := p.parseConditionalExpr()
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, arg)
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseQualifiedPath() (jpqlast.Expr, error) {
	qualTok := p.advance()
	var qualifier jpqlast.PathQualifier
	switch strings.ToUpper(qualTok.Literal) {
	case "KEY":
		qualifier = jpqlast.QualifierKey
	case "VALUE":
		qualifier = jpqlast.QualifierValue
	case "ENTRY":
		qualifier = jpqlast.QualifierEntry
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	path, err := p.parsePath(jpqlast.PathStateField)
	if err != nil {
		return nil, err
	}
	path.Qualifier = qualifier
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return path, nil
}

// aggregateFunctionName reports whether the current token starts an
// aggregate function call, returning its canonical uppercase name.
func (p *parser) aggregateFunctionName() (string, bool) {
	tok := p.cur()
	if tok.Kind != jpqllex.Keyword {
		return "", false
	}
	switch strings.ToUpper(tok.Literal) {
	case "AVG", "MAX", "MIN", "SUM", "COUNT":
		return strings.ToUpper(tok.Literal), true
	}
	return "", false
}

func (p *parser) parseAggregateFunction(name string) (jpqlast.Expr, error) {
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr := &jpqlast.FunctionExpr{Name: name}
	if p.atKeyword("DISTINCT") {
		p.advance()
		expr.Distinct = true
	}
	arg, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}
	expr.Args = []jpqlast.Expr{arg}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

// scalarFunctionName reports whether the current token starts one of
// the remaining built-in scalar function calls, returning
// its canonical uppercase name.
func (p *parser) scalarFunctionName() (string, bool) {
	tok := p.cur()
	if tok.Kind != jpqllex.Keyword {
		return "", false
	}
	switch strings.ToUpper(tok.Literal) {
	case "ABS", "CEILING", "FLOOR", "EXP", "LN", "SIGN", "SQRT", "MOD", "POWER", "ROUND",
		"SIZE", "INDEX", "LENGTH", "LOCATE", "LOWER", "UPPER", "CONCAT", "SUBSTRING":
		return strings.ToUpper(tok.Literal), true
	}
	return "", false
}

func (p *parser) parseScalarFunction(name string) (jpqlast.Expr, error) {
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &jpqlast.FunctionExpr{Name: name, Args: args}, nil
}

// parseQualifiedOrPlainPath parses a bare identifier chain as a
// state-field/single-valued-object path. Function-like productions
// (aggregate/scalar functions, NEW, TYPE, ...) are all dispatched
// before this is reached, so anything starting with a plain identifier
// here is a path expression.
func (p *parser) parseQualifiedOrPlainPath() (jpqlast.Expr, error) {
	return p.parsePath(jpqlast.PathStateField)
}
