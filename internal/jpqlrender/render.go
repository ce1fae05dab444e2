// Package jpqlrender concatenates a jpqltoken.Buffer into the final
// JPQL string.
package jpqlrender

import (
	"fmt"
	"strings"

	"github.com/catalystquery/jpqlrw/internal/jpqltoken"
)

// Render filters out debug-only tokens, then concatenates the
// remaining tokens, inserting a single space after any token whose
// Trailing is jpqltoken.Space. Trailing whitespace is trimmed from the
// result.
func Render(buf jpqltoken.Buffer) string {
	var sb strings.Builder
	for _, tok := range buf {
		if tok.DebugOnly {
			continue
		}
		sb.WriteString(tok.Text())
		if tok.Trailing == jpqltoken.Space {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// RenderDebug is the diagnostic variant: it includes every token
// (debug-only ones too), prefixes a newline when a token's LineBreak
// flag is set, and appends a bracketed tag built from the token's
// Context after each token.
func RenderDebug(buf jpqltoken.Buffer) string {
	var sb strings.Builder
	for _, tok := range buf {
		if tok.LineBreak {
			sb.WriteByte('\n')
		}
		sb.WriteString(tok.Text())
		if tok.Context != "" {
			fmt.Fprintf(&sb, "[%s]", tok.Context)
		}
		if tok.Trailing == jpqltoken.Space {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
