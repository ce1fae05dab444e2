package jpqlparse

import (
	"github.com/catalystquery/jpqlrw/internal/jpqlast"
	"github.com/catalystquery/jpqlrw/internal/jpqllex"
)

// ParsePermissive parses query and returns its top-level statement, or
// nil if the query is not syntactically valid. Lexer and parser errors
// are suppressed: the caller treats a nil result as "not a valid JPQL
// query" rather than inspecting an error.
func ParsePermissive(query string) jpqlast.Statement {
	stmt, err := parseOnce(query)
	if err != nil {
		return nil
	}
	return stmt
}

// ParseFailFast parses query and returns the first syntax error
// encountered, wrapped as *SyntaxError, or nil on success.
func ParseFailFast(query string) (jpqlast.Statement, error) {
	return parseOnce(query)
}

func parseOnce(query string) (jpqlast.Statement, error) {
	p, err := newParser(query)
	if err != nil {
		return nil, toSyntaxError(err)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, toSyntaxError(err)
	}
	if p.cur().Kind != jpqllex.EOF {
		return nil, toSyntaxError(p.errorf("unexpected trailing token %q", p.cur().Literal))
	}
	return stmt, nil
}

func toSyntaxError(err error) error {
	if se, ok := err.(*SyntaxError); ok {
		return se
	}
	return &SyntaxError{Message: err.Error()}
}
