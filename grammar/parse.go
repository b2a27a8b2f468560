package grammar

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/gramalyze/error"
)

// ParseGrammar parses the textual grammar notation (spec.md §4.1/§6) into
// a Grammar. The format is line-oriented:
//
//   - blank lines are ignored
//   - a head line is "LHS → ALT1 | ALT2 | …"; "->" is accepted as an
//     alias for "→"
//   - a continuation line begins, after leading whitespace, with "|" and
//     supplies one more alternative for the most recently named LHS
//   - a token is any maximal run of non-whitespace, except a
//     single-quoted literal, which is kept together with its quotes
//   - an alternative consisting of "ε" or the word "epsilon" denotes an
//     empty production
//   - the first LHS encountered is the grammar's start symbol
//
// Every symbol that appears in some RHS and is not a declared
// non-terminal is classified as a terminal once parsing finishes.
// Duplicate productions for one LHS are preserved — a grammar may
// legitimately list the same alternative twice.
func ParseGrammar(text string) (*Grammar, error) {
	symTab := NewSymbolTable()

	var errs verr.GrammarSyntaxErrors

	type prodLine struct {
		lhsName string
		tokens  []string
	}
	var lines []prodLine

	var start string
	haveStart := false
	currentLHS := ""
	haveLHS := false

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "|") {
			if !haveLHS {
				errs = append(errs, &verr.GrammarSyntaxError{Line: lineNo + 1, Cause: fmt.Errorf("continuation line appears before any production")})
				continue
			}
			rest := strings.TrimSpace(line[1:])
			for _, alt := range splitTopLevel(rest, '|') {
				lines = append(lines, prodLine{lhsName: currentLHS, tokens: tokenize(alt)})
			}
			continue
		}

		arrowPos, arrowLen := findArrow(line)
		if arrowPos < 0 {
			errs = append(errs, &verr.GrammarSyntaxError{Line: lineNo + 1, Cause: fmt.Errorf("line has neither an arrow nor a leading '|': %q", line)})
			continue
		}

		lhs := strings.TrimSpace(line[:arrowPos])
		rest := strings.TrimSpace(line[arrowPos+arrowLen:])
		if lhs == "" {
			errs = append(errs, &verr.GrammarSyntaxError{Line: lineNo + 1, Cause: fmt.Errorf("arrow line has no left-hand side: %q", line)})
			continue
		}
		if lhs == symbolNameEOF || lhs == symbolNameEpsilon || lhs == "epsilon" {
			errs = append(errs, &verr.GrammarSyntaxError{Line: lineNo + 1, Cause: fmt.Errorf("non-terminal %q shadows a reserved sentinel", lhs)})
			continue
		}

		currentLHS = lhs
		haveLHS = true
		if !haveStart {
			start = lhs
			haveStart = true
		}

		for _, alt := range splitTopLevel(rest, '|') {
			lines = append(lines, prodLine{lhsName: lhs, tokens: tokenize(alt)})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if !haveStart {
		return nil, verr.GrammarSyntaxErrors{{Cause: fmt.Errorf("grammar has no productions")}}
	}

	declared := map[string]bool{}
	for _, l := range lines {
		declared[l.lhsName] = true
	}

	byLHS := map[Symbol][]rawProduction{}
	startSym := symTab.InternNonTerminal(start)
	for name := range declared {
		symTab.InternNonTerminal(name)
		if name == symbolNameEOF || name == symbolNameEpsilon {
			errs = append(errs, &verr.GrammarSyntaxError{Cause: fmt.Errorf("non-terminal %q shadows a reserved sentinel", name)})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	for _, l := range lines {
		lhsSym := symTab.InternNonTerminal(l.lhsName)
		var rhs []Symbol
		if len(l.tokens) == 1 && (l.tokens[0] == symbolNameEpsilon || l.tokens[0] == "epsilon") {
			rhs = []Symbol{Epsilon}
		} else if len(l.tokens) == 0 {
			rhs = []Symbol{Epsilon}
		} else {
			rhs = make([]Symbol, len(l.tokens))
			for i, tok := range l.tokens {
				if declared[tok] {
					rhs[i] = symTab.InternNonTerminal(tok)
				} else {
					rhs[i] = symTab.InternTerminal(tok)
				}
			}
		}
		byLHS[lhsSym] = append(byLHS[lhsSym], rawProduction{lhs: lhsSym, rhs: rhs})
	}

	return NewGrammar(symTab, startSym, byLHS)
}

// findArrow returns the byte offset and length of the first "→" in line;
// only if line has no "→" does it look for the first ASCII alias "->".
// It returns (-1, 0) if neither is present.
func findArrow(line string) (int, int) {
	if i := strings.Index(line, "→"); i >= 0 {
		return i, len("→")
	}
	if i := strings.Index(line, "->"); i >= 0 {
		return i, len("->")
	}
	return -1, 0
}

// splitTopLevel splits s on sep, except where sep occurs inside a
// single-quoted literal.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			cur.WriteByte(c)
		case c == sep && !inQuote:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))
	return parts
}

// tokenize splits an alternative's text into symbol tokens: maximal runs
// of non-whitespace, except that a single-quoted literal is kept
// together with its quotes as one token.
func tokenize(s string) []string {
	var toks []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\'':
			j := i + 1
			for j < len(s) && s[j] != '\'' {
				j++
			}
			if j < len(s) {
				j++ // include closing quote
			}
			toks = append(toks, s[i:j])
			i = j
		case c == ' ' || c == '\t' || c == '\r':
			i++
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '\r' && s[j] != '\'' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}
