// Package jpqlvalue holds the literal value types that appear in JPQL
// literal AST nodes: string, numeric, boolean, enum, entity-type and
// datetime-timestamp literals. Literal is a sealed
// interface: only the types in this file implement it, which lets
// compilers elsewhere use exhaustive type switches.
package jpqlvalue

import "golang.org/x/text/unicode/norm"

// Literal is a sealed interface over JPQL literal values.
type Literal interface {
	literalNode()
}

// Null represents the JPQL NULL literal.
type Null struct{}

func (Null) literalNode() {}

// String represents a single-quoted JPQL string literal. Text is
// NFC-normalized at construction so two source strings that differ only
// by combining-character representation render identically.
type String string

func (String) literalNode() {}

// NewString builds a String literal, normalizing text to NFC.
func NewString(s string) String {
	return String(norm.NFC.String(s))
}

// Int represents an integer literal (JPQL integer_literal).
type Int int64

func (Int) literalNode() {}

// Float represents a floating point literal (JPQL float_literal).
type Float float64

func (Float) literalNode() {}

// Bool represents a JPQL boolean_literal (TRUE/FALSE).
type Bool bool

func (Bool) literalNode() {}

// Enum represents a JPQL enum_literal, e.g. com.example.Status.ACTIVE.
type Enum string

func (Enum) literalNode() {}

// EntityType represents a JPQL entity_type_literal used with TYPE(x) = Foo.
type EntityType string

func (EntityType) literalNode() {}

// Temporal represents a JPQL datetime-timestamp literal, e.g.
// {d '2024-01-01'} or {ts '2024-01-01 00:00:00'}. Kind distinguishes
// date/time/timestamp form; Text carries the literal body verbatim since
// this package has no reason to parse calendar values.
type Temporal struct {
	Kind TemporalKind
	Text string
}

func (Temporal) literalNode() {}

// TemporalKind enumerates the JDBC escape forms for date/time literals.
type TemporalKind int

const (
	TemporalDate TemporalKind = iota
	TemporalTime
	TemporalTimestamp
)
