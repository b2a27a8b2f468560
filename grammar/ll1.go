package grammar

// LL1Cell holds every production written into one (non-terminal,
// terminal) cell of the predictive table. A cell with more than one
// production is a conflict; the cell retains every production that maps
// there so it can be reported.
type LL1Cell struct {
	NonTerminal Symbol
	Terminal    Symbol
	Productions []*Production
}

// LL1Table is the predictive parsing table: a partial function
// (non-terminal, terminal) → production.
type LL1Table struct {
	cells map[Symbol]map[Symbol]*LL1Cell
}

func newLL1Table() *LL1Table {
	return &LL1Table{cells: map[Symbol]map[Symbol]*LL1Cell{}}
}

func (t *LL1Table) cell(nt, term Symbol) *LL1Cell {
	row, ok := t.cells[nt]
	if !ok {
		row = map[Symbol]*LL1Cell{}
		t.cells[nt] = row
	}
	c, ok := row[term]
	if !ok {
		c = &LL1Cell{NonTerminal: nt, Terminal: term}
		row[term] = c
	}
	return c
}

// Lookup returns the cell for (nt, term), or nil if the cell is empty.
func (t *LL1Table) Lookup(nt, term Symbol) *LL1Cell {
	row, ok := t.cells[nt]
	if !ok {
		return nil
	}
	c, ok := row[term]
	if !ok {
		return nil
	}
	return c
}

// LL1Conflict is a FIRST-FIRST or FIRST-FOLLOW conflict found while
// building the predictive table (spec.md §4.4).
type LL1Conflict struct {
	Kind        LL1ConflictKind
	NonTerminal Symbol
	Terminal    Symbol
	Prod1       *Production
	Prod2       *Production
}

type LL1ConflictKind int

const (
	FirstFirstConflict LL1ConflictKind = iota
	FirstFollowConflict
)

// LL1Result is the output of LL1TableBuilder.
type LL1Result struct {
	First     *SetComputer
	Table     *LL1Table
	Conflicts []LL1Conflict
	IsLL1     bool
}

// BuildLL1Table runs LL1TableBuilder (spec.md §4.4): for every
// production A → α, every terminal in FIRST(α) gets A → α written into
// its cell; if α is nullable, every terminal in FOLLOW(A) gets it too.
// A second write into an occupied cell is a conflict, classified by
// which set (FIRST or FOLLOW) produced the triggering terminal.
func BuildLL1Table(g *Grammar, sc *SetComputer) *LL1Result {
	table := newLL1Table()
	var conflicts []LL1Conflict

	write := func(nt, term Symbol, p *Production, kind LL1ConflictKind) {
		c := table.cell(nt, term)
		if len(c.Productions) > 0 {
			for _, existing := range c.Productions {
				if existing == p {
					return
				}
			}
			conflicts = append(conflicts, LL1Conflict{
				Kind:        kind,
				NonTerminal: nt,
				Terminal:    term,
				Prod1:       c.Productions[0],
				Prod2:       p,
			})
		}
		c.Productions = append(c.Productions, p)
	}

	for _, p := range g.Productions {
		if p.LHS == g.AugmentedStart {
			continue
		}
		firstAlpha := sc.FirstOfString(alphaOf(p))
		for term := range firstAlpha {
			if term.IsEpsilon() {
				continue
			}
			write(p.LHS, term, p, FirstFirstConflict)
		}
		if _, nullable := firstAlpha[Epsilon]; nullable {
			for term := range sc.Follow(p.LHS) {
				write(p.LHS, term, p, FirstFollowConflict)
			}
		}
	}

	return &LL1Result{
		First:     sc,
		Table:     table,
		Conflicts: conflicts,
		IsLL1:     len(conflicts) == 0,
	}
}

func alphaOf(p *Production) []Symbol {
	if p.IsEmpty() {
		return nil
	}
	return p.RHS
}

// RecursiveDescentResult is the output of analyze_recursive_descent
// (spec.md §6): whether the grammar is suitable for a recursive-descent
// parser, and, separately, whether it can be parsed without
// backtracking.
type RecursiveDescentResult struct {
	LeftRecursion   *LeftRecursionResult
	LL1             *LL1Result
	IsSuitable      bool
	IsBacktrackFree bool
	Catalog         ConflictCatalog
}

// AnalyzeRecursiveDescent runs LeftRecursionAnalyzer and LL1TableBuilder
// and combines their results per spec.md §4.4's two predicates:
// suitable-for-recursive-descent requires no left recursion;
// backtrack-free additionally requires no left-factor candidates and no
// LL(1) conflicts.
func AnalyzeRecursiveDescent(g *Grammar) *RecursiveDescentResult {
	sc := ComputeSets(g)
	lr := AnalyzeLeftRecursion(g)
	ll1 := BuildLL1Table(g, sc)

	noLeftRecursion := len(lr.Direct) == 0 && len(lr.Indirect) == 0
	catalog := append(catalogLeftRecursion(lr), catalogLL1(ll1)...)
	return &RecursiveDescentResult{
		LeftRecursion:   lr,
		LL1:             ll1,
		IsSuitable:      noLeftRecursion,
		IsBacktrackFree: noLeftRecursion && len(lr.FactorCandidates) == 0 && ll1.IsLL1,
		Catalog:         catalog,
	}
}
