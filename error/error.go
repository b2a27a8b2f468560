// Package error defines the fatal-error type the grammar package raises
// when a grammar's text cannot be parsed or fails a structural invariant.
// Analysis results — conflicts, left recursion, left-factor candidates —
// are never errors; they are data returned alongside a successfully
// built Grammar.
package error

import (
	"fmt"
	"strings"
)

// GrammarSyntaxError reports a single problem found while parsing or
// validating a grammar. Line is 1-based; 0 means no specific line applies.
type GrammarSyntaxError struct {
	Cause error
	Line  int
}

func (e *GrammarSyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("error: %v", e.Cause)
	}
	return fmt.Sprintf("line %v: error: %v", e.Line, e.Cause)
}

func (e *GrammarSyntaxError) Unwrap() error {
	return e.Cause
}

// GrammarSyntaxErrors aggregates every syntax error found in a single pass
// over a grammar so a malformed grammar is reported all at once instead of
// one line at a time.
type GrammarSyntaxErrors []*GrammarSyntaxError

func (es GrammarSyntaxErrors) Error() string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
