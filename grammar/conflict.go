package grammar

// ShiftReduceConflict witnesses one state where a shift and a reduce are
// both lawful on the same terminal. ShiftItem is the incomplete item
// whose next symbol is Terminal; ReduceProd is the production a complete
// item in the same state would reduce by.
type ShiftReduceConflict struct {
	State      int
	Terminal   Symbol
	ShiftItem  LR0Item
	ReduceProd *Production
}

// ReduceReduceConflict witnesses one state where two different
// productions are both reducible; Lookaheads is filled in only by the
// LALR merger (LR(0) has no lookahead, so it is left empty there).
type ReduceReduceConflict struct {
	State      int
	Lookaheads []Symbol
	Prod1      *Production
	Prod2      *Production
}

// ConflictKind tags the seven cases a ConflictEntry can carry (spec.md
// §3, "ConflictCatalog entry").
type ConflictKind int

const (
	LeftRecursionDirectEntry ConflictKind = iota
	LeftRecursionIndirectEntry
	LeftFactorCandidateEntry
	LL1FirstFirstEntry
	LL1FirstFollowEntry
	ShiftReduceEntry
	ReduceReduceEntry
)

// ConflictEntry is one append-only record in a ConflictCatalog: a tagged
// variant over the seven conflict shapes an analysis can report. Exactly
// one of the pointer fields matching Kind is non-nil.
type ConflictEntry struct {
	Kind ConflictKind

	LeftRecursionDirect   *DirectLeftRecursion
	LeftRecursionIndirect *IndirectLeftRecursion
	LeftFactor            *LeftFactorCandidate
	LL1                   *LL1Conflict
	ShiftReduce           *ShiftReduceConflict
	ReduceReduce          *ReduceReduceConflict
}

// ConflictCatalog is an append-only, discovery-ordered log of every
// conflict an analysis found (spec.md §4.8): each entry is
// self-contained, so a consumer never needs to re-run the analysis to
// render it.
type ConflictCatalog []ConflictEntry

func catalogLeftRecursion(lr *LeftRecursionResult) ConflictCatalog {
	var cat ConflictCatalog
	for i := range lr.Direct {
		cat = append(cat, ConflictEntry{Kind: LeftRecursionDirectEntry, LeftRecursionDirect: &lr.Direct[i]})
	}
	for i := range lr.Indirect {
		cat = append(cat, ConflictEntry{Kind: LeftRecursionIndirectEntry, LeftRecursionIndirect: &lr.Indirect[i]})
	}
	for i := range lr.FactorCandidates {
		cat = append(cat, ConflictEntry{Kind: LeftFactorCandidateEntry, LeftFactor: &lr.FactorCandidates[i]})
	}
	return cat
}

func catalogLL1(ll1 *LL1Result) ConflictCatalog {
	var cat ConflictCatalog
	for i := range ll1.Conflicts {
		kind := LL1FirstFirstEntry
		if ll1.Conflicts[i].Kind == FirstFollowConflict {
			kind = LL1FirstFollowEntry
		}
		cat = append(cat, ConflictEntry{Kind: kind, LL1: &ll1.Conflicts[i]})
	}
	return cat
}

func catalogLR0(sr []ShiftReduceConflict, rr []ReduceReduceConflict) ConflictCatalog {
	var cat ConflictCatalog
	for i := range sr {
		cat = append(cat, ConflictEntry{Kind: ShiftReduceEntry, ShiftReduce: &sr[i]})
	}
	for i := range rr {
		cat = append(cat, ConflictEntry{Kind: ReduceReduceEntry, ReduceReduce: &rr[i]})
	}
	return cat
}
