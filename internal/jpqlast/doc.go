// Package jpqlast provides the typed parse-tree node types jpqlparse
// produces and jpqlwalk consumes.
//
// Node, Statement, Clause and Expr are sealed interfaces using the
// marker-method pattern: only types declared in this package implement
// them. This enables exhaustive type switches in jpqlwalk the same way
// queryir.Query/queryir.Predicate sealed interfaces enable exhaustive
// type switches in a backend compiler — add a node type here and the
// compiler's switch must grow a case for it or it panics at runtime
// with an InternalInvariantViolation (see jpqlwalk).
//
// This package has no behavior of its own: it is pure data, mirroring
// every clause, join form, path form and expression category the
// JPQL grammar requires coverage for.
package jpqlast
