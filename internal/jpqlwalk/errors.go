package jpqlwalk

import "fmt"

// InternalInvariantViolation represents a grammar production the
// walker cannot handle — it should be impossible, since every
// jpqlast node type has a case in the dispatch. The walker raises it
// as a panic rather than returning it: the walker never fails once
// the tree exists, so an unhandled node kind is not a reachable
// runtime condition, only a coverage gap.
type InternalInvariantViolation struct {
	Kind string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("jpqlwalk: internal invariant violation: unhandled node kind %s", e.Kind)
}

func panicUnhandled(kind string) {
	panic(&InternalInvariantViolation{Kind: kind})
}

// UnknownFunctionError is raised in fail-fast mode when a vendor
// function call's name is not on a configured FunctionAllowList.
// Unlike InternalInvariantViolation this reflects bad
// input rather than a coverage gap. The jpqlrw façade lets it pass
// through; the CLI's rewrite commands recover it and report it as an
// invalid query rather than re-panicking.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("jpqlwalk: vendor function %q is not on the allow-list", e.Name)
}

func panicUnknownFunction(name string) {
	panic(&UnknownFunctionError{Name: name})
}
