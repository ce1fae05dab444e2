package jpqlast

// Clause is a sealed interface over the clause productions that hang
// off a SelectStatement/UpdateStatement/DeleteStatement.
type Clause interface {
	Node
	clauseNode()
}

// SelectClause is the select_clause production: SELECT [DISTINCT] items.
type SelectClause struct {
	Distinct bool
	Items    []SelectItem
}

func (SelectClause) astNode()    {}
func (SelectClause) clauseNode() {}

// SelectItem is one select_item: an expression with an optional alias.
// A constructor-style item has Expr set to a *ConstructorExpr.
type SelectItem struct {
	Expr  Expr
	Alias string
}

func (SelectItem) astNode() {}

// FromClause is the from_clause production: a comma-separated list of
// identification_variable_declarations, each with zero or more joins.
type FromClause struct {
	Roots []FromRoot
}

func (FromClause) astNode()    {}
func (FromClause) clauseNode() {}

// FromRoot is one identification_variable_declaration: a range variable
// or a collection-member declaration, plus any joins hanging off it.
type FromRoot struct {
	Declaration Declaration
	Joins       []Join
}

func (FromRoot) astNode() {}

// Declaration is a sealed interface over the two forms a FromRoot's
// primary declaration can take.
type Declaration interface {
	Node
	declarationNode()
}

// RangeVariableDeclaration is `EntityName [AS] alias`.
type RangeVariableDeclaration struct {
	Entity string
	Alias  string
	As     bool // true if the source used the optional AS keyword
}

func (RangeVariableDeclaration) astNode()           {}
func (RangeVariableDeclaration) declarationNode()   {}

// CollectionMemberDeclaration is `IN (path) [AS] alias`, used for
// subquery FROM lists over a collection-valued path.
type CollectionMemberDeclaration struct {
	Path  Expr
	Alias string
	As    bool
}

func (CollectionMemberDeclaration) astNode()         {}
func (CollectionMemberDeclaration) declarationNode() {}

// JoinKind enumerates the join forms supported: inner,
// left (== left outer) and plain outer joins.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinOuter
)

// Join is one join production: inner/left/outer, with optional FETCH,
// an optional ON condition, and an optional TREAT ... AS ... downcast
// of the joined path.
type Join struct {
	Kind  JoinKind
	Fetch bool
	Path  Expr // the join's path expression, possibly wrapped in *TreatAs
	Alias string
	On    Expr // nil when the join has no ON condition
}

func (Join) astNode() {}

// WhereClause is the where_clause production.
type WhereClause struct {
	Condition Expr
}

func (WhereClause) astNode()    {}
func (WhereClause) clauseNode() {}

// GroupByClause is the groupby_clause production.
type GroupByClause struct {
	Items []Expr
}

func (GroupByClause) astNode()    {}
func (GroupByClause) clauseNode() {}

// HavingClause is the having_clause production.
type HavingClause struct {
	Condition Expr
}

func (HavingClause) astNode()    {}
func (HavingClause) clauseNode() {}

// OrderByClause is the orderby_clause production.
type OrderByClause struct {
	Items []OrderByItem
}

func (OrderByClause) astNode()    {}
func (OrderByClause) clauseNode() {}

// Direction is ASC or DESC for an order-by item.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// OrderByItem is one orderby_item: an expression with an explicit or
// implicit (ASC) direction. Explicit records whether the source
// actually wrote ASC/DESC, since the walker re-renders an implicit
// ascending item without a direction keyword but always writes one for
// an injected sort entry.
type OrderByItem struct {
	Expr      Expr
	Direction Direction
	Explicit  bool
}

func (OrderByItem) astNode() {}
