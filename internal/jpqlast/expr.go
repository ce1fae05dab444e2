package jpqlast

import "github.com/catalystquery/jpqlrw/internal/jpqlvalue"

// Expr is a sealed interface over every JPQL expression production.
// The walker's expression dispatch (jpqlwalk) switches exhaustively
// over these types; a type added here without a matching walker case
// is an InternalInvariantViolation at walk time, never a compile error
// — this package deliberately carries no behavior, only shape.
type Expr interface {
	Node
	exprNode()
}

// PathKind distinguishes the path-style productions grouped
// under one whitespace rule (state-field path, join path expressions,
// simple subpath, collection-valued path, single-valued object path).
// The walker applies the same dotted-path rule to all of them; the
// kind is retained for debug tagging and for the rare cases (KEY/VALUE
// path qualifiers) where a production is PathKind-specific.
type PathKind int

const (
	PathStateField PathKind = iota
	PathCollectionValued
	PathSingleValuedObject
	PathJoin
	PathSimpleSubpath
)

// PathQualifier marks a qualified map path: KEY(e), VALUE(e) or
// ENTRY(e).
type PathQualifier int

const (
	QualifierNone PathQualifier = iota
	QualifierKey
	QualifierValue
	QualifierEntry
)

// PathExpr is a dotted path expression: Root followed by zero or more
// attribute Segments, with an optional map Qualifier wrapping the
// whole path.
type PathExpr struct {
	Kind      PathKind
	Qualifier PathQualifier
	Root      string
	Segments  []string
}

func (*PathExpr) astNode() {}
func (*PathExpr) exprNode() {}

// TreatAs is the TREAT(path AS Subtype) downcast production.
type TreatAs struct {
	Path Expr
	Type string
}

func (*TreatAs) astNode() {}
func (*TreatAs) exprNode() {}

// LiteralExpr wraps a jpqlvalue.Literal as an expression node.
type LiteralExpr struct {
	Value jpqlvalue.Literal
}

func (*LiteralExpr) astNode() {}
func (*LiteralExpr) exprNode() {}

// ParameterExpr is an input_parameter: either positional (?1) or named
// (:name).
type ParameterExpr struct {
	Name       string // set when !Positional
	Index      int    // set when Positional
	Positional bool
}

func (*ParameterExpr) astNode() {}
func (*ParameterExpr) exprNode() {}

// SpelExpr is a passthrough SpEL escape token: #{#name},
// #{#[N]} or #{func(arg)}. Raw carries the escape verbatim, including
// the leading `#{` and trailing `}`, since the walker never inspects
// its contents.
type SpelExpr struct {
	Raw string
}

func (*SpelExpr) astNode() {}
func (*SpelExpr) exprNode() {}

// BinaryExpr covers arithmetic (+ - * /), comparison (= <> < > <= >=)
// and boolean (AND OR) binary operators.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) astNode() {}
func (*BinaryExpr) exprNode() {}

// UnaryExpr covers unary +/- and NOT.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryExpr) astNode() {}
func (*UnaryExpr) exprNode() {}

// ParenExpr is a parenthesized grouped arithmetic or conditional
// expression: (expr).
type ParenExpr struct {
	Inner Expr
}

func (*ParenExpr) astNode() {}
func (*ParenExpr) exprNode() {}

// BetweenExpr is `operand [NOT] BETWEEN lower AND upper`.
type BetweenExpr struct {
	Not     bool
	Operand Expr
	Lower   Expr
	Upper   Expr
}

func (*BetweenExpr) astNode() {}
func (*BetweenExpr) exprNode() {}

// InExpr is `operand [NOT] IN (items...)` or `operand [NOT] IN
// (subquery)`. Exactly one of Items or Subquery is set.
type InExpr struct {
	Not      bool
	Operand  Expr
	Items    []Expr
	Subquery *SelectStatement
}

func (*InExpr) astNode() {}
func (*InExpr) exprNode() {}

// LikeExpr is `operand [NOT] LIKE pattern [ESCAPE escapeChar]`.
type LikeExpr struct {
	Not     bool
	Operand Expr
	Pattern Expr
	Escape  Expr // nil when ESCAPE was not given
}

func (*LikeExpr) astNode() {}
func (*LikeExpr) exprNode() {}

// NullTestExpr is `operand IS [NOT] NULL`.
type NullTestExpr struct {
	Not     bool
	Operand Expr
}

func (*NullTestExpr) astNode() {}
func (*NullTestExpr) exprNode() {}

// EmptyTestExpr is `operand IS [NOT] EMPTY`.
type EmptyTestExpr struct {
	Not     bool
	Operand Expr
}

func (*EmptyTestExpr) astNode() {}
func (*EmptyTestExpr) exprNode() {}

// MemberOfExpr is `item [NOT] MEMBER [OF] collection`.
type MemberOfExpr struct {
	Not        bool
	Item       Expr
	Collection Expr
}

func (*MemberOfExpr) astNode() {}
func (*MemberOfExpr) exprNode() {}

// ExistsExpr is `[NOT] EXISTS (subquery)`.
type ExistsExpr struct {
	Not      bool
	Subquery *SelectStatement
}

func (*ExistsExpr) astNode() {}
func (*ExistsExpr) exprNode() {}

// Quantifier enumerates ALL/ANY/SOME.
type Quantifier int

const (
	QuantifierAll Quantifier = iota
	QuantifierAny
	QuantifierSome
)

// QuantifiedExpr is the right-hand side of a comparison against
// ALL/ANY/SOME (subquery): e.g. `x > ALL (subquery)`. It only ever
// appears as BinaryExpr.Right.
type QuantifiedExpr struct {
	Quantifier Quantifier
	Subquery   *SelectStatement
}

func (*QuantifiedExpr) astNode() {}
func (*QuantifiedExpr) exprNode() {}

// WhenClause is one WHEN cond THEN result arm of a CaseExpr.
type WhenClause struct {
	When Expr
	Then Expr
}

func (WhenClause) astNode() {}

// CaseExpr covers both simple and searched CASE forms. Base is set for
// the simple form (CASE base WHEN literal THEN ... END); it is nil for
// the searched form (CASE WHEN cond THEN ... END), where each
// WhenClause.When is itself a boolean expression.
type CaseExpr struct {
	Base  Expr
	Whens []WhenClause
	Else  Expr // nil when there is no ELSE branch
}

func (*CaseExpr) astNode() {}
func (*CaseExpr) exprNode() {}

// CoalesceExpr is `COALESCE(args...)`.
type CoalesceExpr struct {
	Args []Expr
}

func (*CoalesceExpr) astNode() {}
func (*CoalesceExpr) exprNode() {}

// NullIfExpr is `NULLIF(left, right)`.
type NullIfExpr struct {
	Left  Expr
	Right Expr
}

func (*NullIfExpr) astNode() {}
func (*NullIfExpr) exprNode() {}

// TrimSpec enumerates LEADING/TRAILING/BOTH for TrimExpr.
type TrimSpec int

const (
	TrimUnspecified TrimSpec = iota
	TrimLeading
	TrimTrailing
	TrimBoth
)

// TrimExpr is `TRIM([spec] [char] FROM source)`.
type TrimExpr struct {
	Spec   TrimSpec
	Char   Expr // nil when no trim character was given
	Source Expr
}

func (*TrimExpr) astNode() {}
func (*TrimExpr) exprNode() {}

// ExtractExpr is `EXTRACT(field FROM source)`.
type ExtractExpr struct {
	Field  string
	Source Expr
}

func (*ExtractExpr) astNode() {}
func (*ExtractExpr) exprNode() {}

// TypeExpr is the JPA discriminator function `TYPE(x)`.
type TypeExpr struct {
	Operand Expr
}

func (*TypeExpr) astNode() {}
func (*TypeExpr) exprNode() {}

// FunctionExpr is the catch-all for the rest of the built-in scalar
// and aggregate function list: avg/max/min/sum/count (with Distinct),
// abs/ceiling/floor/exp/ln/sign/sqrt/mod/power/round, size/index,
// length/locate/lower/upper/concat/substring, current_date/
// current_time/current_timestamp, local date/time/datetime, and the
// vendor-extension form FUNCTION('name', args...) (Literal carries
// 'name' for that one form; it is empty otherwise).
type FunctionExpr struct {
	Name     string
	Literal  string
	Distinct bool
	Args     []Expr
}

func (*FunctionExpr) astNode() {}
func (*FunctionExpr) exprNode() {}

// ConstructorExpr is `NEW fully.qualified.ClassName(args...)`. Visiting
// one sets the walker's has_constructor_expression flag.
type ConstructorExpr struct {
	ClassName string
	Args      []Expr
}

func (*ConstructorExpr) astNode() {}
func (*ConstructorExpr) exprNode() {}

// SubqueryExpr is a parenthesized subquery used in expression position
// (as opposed to the subquery operand of InExpr/ExistsExpr/
// QuantifiedExpr, which carry their own *SelectStatement field
// directly).
type SubqueryExpr struct {
	Statement *SelectStatement
}

func (*SubqueryExpr) astNode() {}
func (*SubqueryExpr) exprNode() {}
