package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeLeftRecursion_G1NoRecursion(t *testing.T) {
	g := mustParse(t, g1Source)
	res := AnalyzeLeftRecursion(g)
	assert.Empty(t, res.Direct)
	assert.Empty(t, res.Indirect)
}

func TestAnalyzeLeftRecursion_G2Direct(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	res := AnalyzeLeftRecursion(g)
	seen := map[string]bool{}
	for _, d := range res.Direct {
		seen[d.NonTerminal.Name()] = true
	}
	assert.True(t, seen["E"])
	assert.True(t, seen["T"])
	assert.Empty(t, res.Indirect)
}

func TestAnalyzeLeftRecursion_Indirect(t *testing.T) {
	g := mustParse(t, `
A -> B x | y
B -> A z | w
`)
	res := AnalyzeLeftRecursion(g)
	assert.Empty(t, res.Direct)
	assert.Len(t, res.Indirect, 1)
	cycle := res.Indirect[0].Cycle
	assert.Equal(t, cycle[0], cycle[len(cycle)-1])
	assert.Len(t, cycle, 3)
}

func TestAnalyzeLeftRecursion_G3Factoring(t *testing.T) {
	g := mustParse(t, `
S -> i E t S | i E t S e S | a
E -> b
`)
	res := AnalyzeLeftRecursion(g)
	assert.Empty(t, res.Direct)
	assert.Empty(t, res.Indirect)
	foundS := false
	for _, f := range res.FactorCandidates {
		if f.NonTerminal.Name() == "S" {
			foundS = true
			var names []string
			for _, s := range f.CommonPrefix {
				names = append(names, s.Name())
			}
			assert.Equal(t, []string{"i", "E", "t", "S"}, names)
		}
	}
	assert.True(t, foundS)
}
