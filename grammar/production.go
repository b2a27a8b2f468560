package grammar

import "strings"

// Production is a pair (LHS, RHS): an ordered sequence of symbols
// derivable from the left-hand non-terminal. An empty body is
// represented as a length-one RHS containing Epsilon.
//
// Productions are numbered globally and the numbering is part of the
// public contract (spec.md §3, "Numbering policy"): production 0 is
// always the augmented production S′ → S; the rest are numbered by
// iterating the grammar's non-terminals in lexicographic order and,
// within one non-terminal, in the order they appeared in the source
// text.
type Production struct {
	Num int
	LHS Symbol
	RHS []Symbol
}

// IsEmpty reports whether this is an ε-production. Its RHS is the
// length-one slice []Symbol{Epsilon}.
func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsEpsilon()
}

// Len is the number of real symbols in the body: 0 for an ε-production,
// otherwise len(RHS). Dot positions in LR items range over [0, Len()].
func (p *Production) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return len(p.RHS)
}

// Symbol returns the i'th symbol of the body (0-based), valid only for
// i < Len().
func (p *Production) Symbol(i int) Symbol {
	return p.RHS[i]
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name())
	b.WriteString(" →")
	if p.IsEmpty() {
		b.WriteString(" ε")
		return b.String()
	}
	for _, s := range p.RHS {
		b.WriteByte(' ')
		b.WriteString(s.Name())
	}
	return b.String()
}

// ItemString renders a (production, dot) pair the way the ReportSink
// contract requires: "[lhs → α · β]".
func (p *Production) ItemString(dot int) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(p.LHS.Name())
	b.WriteString(" →")
	n := p.Len()
	if n == 0 {
		b.WriteString(" ·")
	} else {
		for i := 0; i < n; i++ {
			if i == dot {
				b.WriteString(" ·")
			}
			b.WriteByte(' ')
			b.WriteString(p.RHS[i].Name())
		}
		if dot == n {
			b.WriteString(" ·")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// rawProduction is the shape the parser builds before production
// numbers are assigned; it is promoted to a Production once the whole
// grammar has been read and the global numbering can be computed.
type rawProduction struct {
	lhs Symbol
	rhs []Symbol
}
