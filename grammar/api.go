package grammar

// LL1AnalysisResult is the output of analyze_ll1 (spec.md §6): the
// FIRST/FOLLOW sets behind the table, the table itself, and every
// conflict found building it.
type LL1AnalysisResult struct {
	Sets    *SetComputer
	LL1     *LL1Result
	Catalog ConflictCatalog
}

// AnalyzeLL1 runs SetComputer and LL1TableBuilder over g and returns
// their combined result.
func AnalyzeLL1(g *Grammar) *LL1AnalysisResult {
	sc := ComputeSets(g)
	ll1 := BuildLL1Table(g, sc)
	return &LL1AnalysisResult{Sets: sc, LL1: ll1, Catalog: catalogLL1(ll1)}
}

// AnalyzeLR0 builds the canonical LR(0) automaton for g and reports its
// shift/reduce and reduce/reduce conflicts.
func AnalyzeLR0(g *Grammar) *LR0Automaton {
	return BuildLR0Automaton(g)
}

// LALRAnalysisResult is the output of analyze_lalr (spec.md §6): the
// canonical LR(1) collection size, the merged LALR(1) automaton, and its
// conflicts.
type LALRAnalysisResult struct {
	LR1  *LR1Automaton
	LALR *LALRResult
}

// AnalyzeLALR runs SetComputer, then builds the canonical LR(1)
// collection, then merges it into an LALR(1) automaton by core (spec.md
// §4.6, §4.7).
func AnalyzeLALR(g *Grammar) *LALRAnalysisResult {
	sc := ComputeSets(g)
	lr1 := BuildLR1Automaton(g, sc)
	return &LALRAnalysisResult{LR1: lr1, LALR: BuildLALR(g, lr1)}
}
