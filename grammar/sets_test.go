package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Grammar {
	t.Helper()
	g, err := ParseGrammar(src)
	require.NoError(t, err)
	return g
}

func symbolNames(set map[Symbol]struct{}) []string {
	var names []string
	for s := range set {
		names = append(names, s.Name())
	}
	return names
}

const g1Source = `
E -> T X
X -> + T X | ε
T -> F Y
Y -> * F Y | ε
F -> ( E ) | id
`

func TestComputeSets_G1(t *testing.T) {
	g := mustParse(t, g1Source)
	sc := ComputeSets(g)

	assert.ElementsMatch(t, []string{"(", "id"}, symbolNames(sc.First(NonTerminal("E"))))
	assert.ElementsMatch(t, []string{"(", "id"}, symbolNames(sc.First(NonTerminal("T"))))
	assert.ElementsMatch(t, []string{"(", "id"}, symbolNames(sc.First(NonTerminal("F"))))

	assert.ElementsMatch(t, []string{"$", ")"}, symbolNames(sc.Follow(NonTerminal("E"))))

	assert.True(t, sc.Nullable(NonTerminal("X")))
	assert.True(t, sc.Nullable(NonTerminal("Y")))
	assert.False(t, sc.Nullable(NonTerminal("E")))
}

// FIRST(X1...Xk) ⊆ FIRST(A) for every production A → X1...Xk (spec.md
// §8 invariant).
func TestComputeSets_FirstOfBodySubsetOfFirstOfHead(t *testing.T) {
	g := mustParse(t, g1Source)
	sc := ComputeSets(g)

	for _, p := range g.Productions {
		if p.LHS == g.AugmentedStart || p.IsEmpty() {
			continue
		}
		bodyFirst := sc.FirstOfString(p.RHS)
		for s := range bodyFirst {
			if s.IsEpsilon() {
				continue
			}
			_, inHead := sc.First(p.LHS)[s]
			assert.True(t, inHead, "FIRST(%v) should contain %v from production %v", p.LHS, s, p)
		}
	}
}

// Re-running the FIRST rule over an already-closed SetComputer must not
// grow any set (idempotence of the least fixpoint), and a second,
// independent computation yields the same FIRST, FOLLOW and nullability.
func TestComputeSets_Idempotent(t *testing.T) {
	g := mustParse(t, g1Source)
	sc1 := ComputeSets(g)
	sc2 := ComputeSets(g)

	for _, p := range g.Productions {
		assert.False(t, sc1.addProductionFirst(p), "FIRST(%v) grew when re-running production %v", p.LHS, p)
	}

	for _, nt := range g.NonTerminals() {
		assert.ElementsMatch(t, symbolNames(sc1.First(nt)), symbolNames(sc2.First(nt)))
		assert.ElementsMatch(t, symbolNames(sc1.Follow(nt)), symbolNames(sc2.Follow(nt)))
		assert.Equal(t, sc1.Nullable(nt), sc2.Nullable(nt))
	}
}

func TestComputeSets_G2LeftRecursive(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	sc := ComputeSets(g)
	assert.ElementsMatch(t, []string{"(", "id"}, symbolNames(sc.First(NonTerminal("E"))))
	assert.ElementsMatch(t, []string{"$", "+", ")"}, symbolNames(sc.Follow(NonTerminal("E"))))
}
