// Package jpqllex tokenizes JPQL 3.1 source text into a flat token
// stream for jpqlparse. The parser adapter treats it as an external
// collaborator, the same way a generated lexer would be treated;
// something has to produce the token stream end to end, so it lives
// here as a small hand-written scanner rather than a code-generated
// one.
package jpqllex

// Kind enumerates lexical token categories.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	String
	Int
	Float
	PositionalParam // ?1
	NamedParam      // :name
	Spel            // #{...}
	Punct           // ( ) , . = <> < > <= >= + - * / ||
	Illegal
)

// Token is one lexical token with its source position (1-based line
// and column, for SyntaxError reporting).
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}

// keywords is the set of JPQL reserved words recognized case
// insensitively. Multi-word keywords (IS NOT, NOT IN, ...) are
// recognized by the parser composing adjacent single-word keywords,
// not here.
var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "UPDATE": true, "DELETE": true,
	"SET": true, "AS": true, "DISTINCT": true, "NEW": true,
	"JOIN": true, "INNER": true, "LEFT": true, "OUTER": true, "FETCH": true, "ON": true, "TREAT": true, "IN": true,
	"GROUP": true, "BY": true, "HAVING": true, "ORDER": true, "ASC": true, "DESC": true,
	"AND": true, "OR": true, "NOT": true, "BETWEEN": true, "LIKE": true, "ESCAPE": true,
	"IS": true, "NULL": true, "EMPTY": true, "MEMBER": true, "OF": true,
	"EXISTS": true, "ALL": true, "ANY": true, "SOME": true,
	"CASE": true, "WHEN": true, "THEN": true, "ELSE": true, "END": true,
	"COALESCE": true, "NULLIF": true,
	"AVG": true, "MAX": true, "MIN": true, "SUM": true, "COUNT": true,
	"ABS": true, "CEILING": true, "FLOOR": true, "EXP": true, "LN": true, "SIGN": true, "SQRT": true, "MOD": true, "POWER": true, "ROUND": true,
	"SIZE": true, "INDEX": true,
	"CURRENT_DATE": true, "CURRENT_TIME": true, "CURRENT_TIMESTAMP": true,
	"LOCAL": true, "DATE": true, "TIME": true, "DATETIME": true,
	"FUNCTION": true, "EXTRACT": true, "TRIM": true, "LEADING": true, "TRAILING": true, "BOTH": true,
	"SUBSTRING": true, "CONCAT": true, "LENGTH": true, "LOCATE": true, "LOWER": true, "UPPER": true,
	"TYPE": true, "KEY": true, "VALUE": true, "ENTRY": true,
	"TRUE": true, "FALSE": true,
}

// IsKeyword reports whether word (case insensitively) is a JPQL
// reserved word.
func IsKeyword(word string) bool {
	return keywords[upper(word)]
}
