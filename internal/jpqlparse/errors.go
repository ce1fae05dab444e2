package jpqlparse

import "fmt"

// SyntaxError is returned by ParseFailFast when the input is not valid
// JPQL. ParsePermissive never returns one — it returns a nil tree
// instead.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
