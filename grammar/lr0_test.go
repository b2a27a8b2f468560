package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// G1's repetition pattern (Y -> * F Y | ε) puts the complete item
// [Y -> ε] and the shift item [Y -> · * F Y] in the same state, a
// shift/reduce conflict on "*" under zero lookahead: G1 is LALR(1)
// (spec.md §8, TestBuildLALR_G1) but not LR(0).
func TestBuildLR0Automaton_G1ShiftReduce(t *testing.T) {
	g := mustParse(t, g1Source)
	a := BuildLR0Automaton(g)
	assert.False(t, a.IsLR0())
	found := false
	for _, c := range a.ShiftReduce {
		if c.Terminal.Name() == "*" {
			found = true
		}
	}
	assert.True(t, found)
}

// The classic dragon-book expression grammar has a shift/reduce
// conflict on "*" under zero lookahead: GOTO(state0, T) reaches
// [E -> T ·] (reduce) and [T -> T · * F] (shift) in the same state.
// This is precisely why G2 is LALR(1) (spec.md §8,
// TestBuildLALR_G2IsLALR) but not LR(0).
func TestBuildLR0Automaton_G2ShiftReduce(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	a := BuildLR0Automaton(g)
	assert.False(t, a.IsLR0())
	found := false
	for _, c := range a.ShiftReduce {
		if c.Terminal.Name() == "*" {
			found = true
		}
	}
	assert.True(t, found)
}

// G3's dangling-else grammar carries a shift/reduce conflict on "e" in
// the state containing [S -> i E t S . e S] and [S -> i E t S .]
// (spec.md §8).
func TestBuildLR0Automaton_G3ShiftReduce(t *testing.T) {
	g := mustParse(t, `
S -> i E t S | i E t S e S | a
E -> b
`)
	a := BuildLR0Automaton(g)
	require.NotEmpty(t, a.ShiftReduce)
	found := false
	for _, c := range a.ShiftReduce {
		if c.Terminal.Name() == "e" {
			found = true
		}
	}
	assert.True(t, found)
	assert.False(t, a.IsLR0())
}

// G5 has a reduce/reduce conflict: after seeing "c", the automaton
// cannot decide between reducing A -> c or B -> c (spec.md §8).
func TestBuildLR0Automaton_G5ReduceReduce(t *testing.T) {
	g := mustParse(t, `
S -> A a | B a
A -> c
B -> c
`)
	a := BuildLR0Automaton(g)
	assert.NotEmpty(t, a.ReduceReduce)
	assert.False(t, a.IsLR0())
}

// Every state's item set must already equal its own closure (spec.md
// §8 invariant).
func TestBuildLR0Automaton_StatesAreClosed(t *testing.T) {
	g := mustParse(t, g1Source)
	a := BuildLR0Automaton(g)
	for _, st := range a.States {
		closed := closureLR0(g, newLR0ItemSet(st.Items...))
		assert.ElementsMatch(t, lr0Items(closed), st.Items, "state %d is not closed", st.ID)
	}
}
