package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLL1Table_G1IsLL1(t *testing.T) {
	g := mustParse(t, g1Source)
	sc := ComputeSets(g)
	res := BuildLL1Table(g, sc)

	assert.True(t, res.IsLL1)
	assert.Empty(t, res.Conflicts)

	cell := res.Table.Lookup(NonTerminal("F"), Terminal("id"))
	if assert.NotNil(t, cell) {
		assert.Len(t, cell.Productions, 1)
	}
}

func TestBuildLL1Table_G2NotLL1(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	sc := ComputeSets(g)
	res := BuildLL1Table(g, sc)
	assert.False(t, res.IsLL1)
	assert.NotEmpty(t, res.Conflicts)
}

func TestBuildLL1Table_G4NeedsFactoring(t *testing.T) {
	g := mustParse(t, `
program -> stmt_list
stmt_list -> stmt | stmt stmt_list
stmt -> for_stmt | call_stmt
for_stmt -> "for" ID "=" NUMBER "to" NUMBER ";"
call_stmt -> ID "(" args ")" ";"
args -> arg | arg "," args | ε
arg -> NUMBER | STRING
`)
	sc := ComputeSets(g)
	res := BuildLL1Table(g, sc)
	assert.False(t, res.IsLL1)

	lr := AnalyzeLeftRecursion(g)
	assert.Empty(t, lr.Direct)
	assert.Empty(t, lr.Indirect)

	foundStmtList := false
	for _, f := range lr.FactorCandidates {
		if f.NonTerminal.Name() == "stmt_list" {
			foundStmtList = true
		}
	}
	assert.True(t, foundStmtList)
}

func TestAnalyzeRecursiveDescent_G1BacktrackFree(t *testing.T) {
	g := mustParse(t, g1Source)
	res := AnalyzeRecursiveDescent(g)
	assert.True(t, res.IsSuitable)
	assert.True(t, res.IsBacktrackFree)
}

func TestAnalyzeRecursiveDescent_G2Unsuitable(t *testing.T) {
	g := mustParse(t, `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	res := AnalyzeRecursiveDescent(g)
	assert.False(t, res.IsSuitable)
	assert.False(t, res.IsBacktrackFree)
}
