// Package jpqlwalk is the syntax-directed visitor that consumes a
// jpqlast parse tree and produces an ordered jpqltoken.Buffer. It is
// a single tagged-variant dispatch in place of a deep per-production
// visitor-method hierarchy: one type switch per node category, walker
// state threaded through as a plain mutable record.
package jpqlwalk

import "github.com/catalystquery/jpqlrw/internal/jpqltoken"

// SortOrder is one entry of a requested sort injection.
type SortOrder struct {
	Property   string
	Descending bool
	IgnoreCase bool
}

// FunctionAllowList reports whether a vendor function name is
// permitted. jpqlconfig.FunctionAllowList satisfies this without
// jpqlwalk importing jpqlconfig.
type FunctionAllowList interface {
	Allows(name string) bool
}

// State is the walker's mutable record, carried by pointer across every
// visit. A State must not be reused across
// concurrent walks; Clone produces an independent copy for derivation
// (e.g. a count-mode walk derived from a base walk).
type State struct {
	Sort            []SortOrder
	CountMode       bool
	CountProjection string // non-empty overrides the count-mode inner projection verbatim

	// FailFast, when true together with a non-nil AllowList, rejects a
	// vendor function('name', ...) call whose name is not on the
	// AllowList by panicking *UnknownFunctionError.
	// Permissive mode never rejects on this basis.
	FailFast  bool
	AllowList FunctionAllowList

	alias                    string
	aliasCaptured            bool
	projection               jpqltoken.Buffer
	hasConstructorExpression bool
	vendorFunctions          []string
}

// NewState builds a zero walker state.
func NewState() *State {
	return &State{}
}

// Clone returns an independent copy of s, sharing no mutable state with
// the original: a derived walk (e.g. count mode) clones the state
// rather than aliasing it, so mutating the derived state never leaks
// back into the base walk.
func (s *State) Clone() *State {
	clone := *s
	clone.Sort = append([]SortOrder(nil), s.Sort...)
	clone.projection = append(jpqltoken.Buffer(nil), s.projection...)
	clone.vendorFunctions = append([]string(nil), s.vendorFunctions...)
	return &clone
}

// Alias returns the captured range-variable alias, or "" if none was
// captured yet.
func (s *State) Alias() string { return s.alias }

// captureAlias sets alias from the first range_variable_declaration
// visited; subsequent declarations do not overwrite it.
func (s *State) captureAlias(text string) {
	if s.aliasCaptured {
		return
	}
	s.alias = text
	s.aliasCaptured = true
}

// Projection returns the captured select-items token slice (without
// the trailing comma).
func (s *State) Projection() jpqltoken.Buffer { return s.projection }

// HasConstructorExpression reports whether any constructor_expression
// was visited during the walk.
func (s *State) HasConstructorExpression() bool { return s.hasConstructorExpression }

func (s *State) markConstructorExpression() {
	s.hasConstructorExpression = true
}

// VendorFunctionNames returns every vendor-extension function('name',
// ...) name encountered during the walk, in visitation order,
// including duplicates.
func (s *State) VendorFunctionNames() []string { return s.vendorFunctions }

// checkVendorFunction records name and, in fail-fast mode with an
// AllowList configured, panics *UnknownFunctionError if name is not
// permitted.
func (s *State) checkVendorFunction(name string) {
	s.vendorFunctions = append(s.vendorFunctions, name)
	if s.FailFast && s.AllowList != nil && !s.AllowList.Allows(name) {
		panicUnknownFunction(name)
	}
}
