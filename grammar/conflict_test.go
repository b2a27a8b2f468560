package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The ConflictCatalog is an append-only, discovery-ordered log: left
// recursion and factoring are discovered before LL(1) conflicts, since
// AnalyzeRecursiveDescent runs LeftRecursionAnalyzer first (spec.md
// §4.8).
func TestRecursiveDescentResult_CatalogOrder(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	res := AnalyzeRecursiveDescent(g)
	assert.NotEmpty(t, res.Catalog)

	sawLeftRecursion := false
	sawLL1 := false
	for _, e := range res.Catalog {
		switch e.Kind {
		case LeftRecursionDirectEntry:
			assert.False(t, sawLL1, "left recursion entries must precede LL(1) entries")
			sawLeftRecursion = true
		case LL1FirstFirstEntry, LL1FirstFollowEntry:
			sawLL1 = true
		}
	}
	assert.True(t, sawLeftRecursion)
	assert.True(t, sawLL1)
}

func TestBuildLR0Automaton_CatalogMatchesConflicts(t *testing.T) {
	g := mustParse(t, `
S -> A a | B a
A -> c
B -> c
`)
	a := BuildLR0Automaton(g)
	var rr int
	for _, e := range a.Catalog {
		if e.Kind == ReduceReduceEntry {
			rr++
		}
	}
	assert.Equal(t, len(a.ReduceReduce), rr)
}
