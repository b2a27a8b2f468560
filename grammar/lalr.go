package grammar

import (
	"sort"
	"strconv"
)

// LALRItem is one core (production, dot) pair together with the union of
// every lookahead terminal any canonical LR(1) state sharing that core
// carried (spec.md §4.7).
type LALRItem struct {
	Core       LR0Item
	Lookaheads []Symbol
}

// LALRState is one state of the LALR(1) automaton: the canonical LR(1)
// states sharing a core, merged into one.
type LALRState struct {
	ID          int
	Items       []LALRItem
	Transitions map[Symbol]int
}

// ActionKind tags one cell of the ACTION table (spec.md §3).
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

// Action is one lawful parsing action in an ACTION cell. State is valid
// only for Shift; Prod is valid only for Reduce.
type Action struct {
	Kind  ActionKind
	State int
	Prod  *Production
}

// ActionTable is the partial function (state, terminal) → [ ]Action
// (spec.md §3): a cell holding more than one action is a conflict,
// already recorded in LALRResult.ShiftReduce/ReduceReduce, but the cell
// itself retains every lawful action.
type ActionTable struct {
	cells map[int]map[Symbol][]Action
}

// Lookup returns every action recorded for (state, term), or nil.
func (t *ActionTable) Lookup(state int, term Symbol) []Action {
	return t.cells[state][term]
}

// GotoTable is the partial function (state, non-terminal) → state.
type GotoTable struct {
	cells map[int]map[Symbol]int
}

// Lookup returns the target state for (state, nt), or ok=false.
func (t *GotoTable) Lookup(state int, nt Symbol) (int, bool) {
	target, ok := t.cells[state][nt]
	return target, ok
}

// LALRResult is the output of the LALR merge: the merged automaton, its
// ACTION/GOTO tables, the state counts before and after merging
// (spec.md §3's lr1_state_count / lalr_states), and the conflicts found
// in the merged automaton.
type LALRResult struct {
	g              *Grammar
	States         []*LALRState
	InitialState   int
	Action         *ActionTable
	Goto           *GotoTable
	LR1StateCount  int
	LALRStateCount int
	ShiftReduce    []ShiftReduceConflict
	ReduceReduce   []ReduceReduceConflict
	Catalog        ConflictCatalog
}

// IsLALR reports whether the merged automaton is free of shift/reduce
// and reduce/reduce conflicts.
func (r *LALRResult) IsLALR() bool {
	return len(r.ShiftReduce) == 0 && len(r.ReduceReduce) == 0
}

// BuildLALR merges a canonical LR(1) collection into an LALR(1)
// automaton by core (spec.md §4.7): two LR(1) states merge iff they have
// identical cores (their items agree on every (production, dot) pair,
// ignoring lookahead); the merged state's lookahead for each core item is
// the union over every state that merges into it. GOTO is well-defined on
// the merged states because GOTO preserves cores, so every LR(1) state
// sharing a core transitions, on each symbol, to states that themselves
// share a single core.
func BuildLALR(g *Grammar, lr1 *LR1Automaton) *LALRResult {
	r := &LALRResult{g: g, LR1StateCount: len(lr1.States)}

	var order []string
	groups := map[string][]*LR1State{}
	coreByKey := map[string][]LR0Item{}
	for _, st := range lr1.States {
		core := coreOf(st.Items)
		key := coreKey(core)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			coreByKey[key] = core
		}
		groups[key] = append(groups[key], st)
	}

	lalrIDOf := map[string]int{}
	for i, key := range order {
		lalrIDOf[key] = i
	}
	lr1ToLALR := map[int]int{}
	for _, st := range lr1.States {
		lr1ToLALR[st.ID] = lalrIDOf[coreKey(coreOf(st.Items))]
	}

	for i, key := range order {
		group := groups[key]
		core := coreByKey[key]

		lookaheads := map[LR0Item]map[Symbol]bool{}
		for _, st := range group {
			for _, it := range st.Items {
				c := it.core()
				if lookaheads[c] == nil {
					lookaheads[c] = map[Symbol]bool{}
				}
				lookaheads[c][it.Lookahead] = true
			}
		}

		var items []LALRItem
		for _, c := range core {
			items = append(items, LALRItem{Core: c, Lookaheads: sortedSymbolSet(lookaheads[c])})
		}

		transitions := map[Symbol]int{}
		for _, st := range group {
			for sym, target := range st.Transitions {
				transitions[sym] = lr1ToLALR[target]
			}
		}

		r.States = append(r.States, &LALRState{ID: i, Items: items, Transitions: transitions})
	}

	r.InitialState = lr1ToLALR[lr1.InitialState]
	r.LALRStateCount = len(r.States)
	r.ShiftReduce, r.ReduceReduce = classifyLALRConflicts(g, r.States)
	r.Catalog = catalogLR0(r.ShiftReduce, r.ReduceReduce)
	r.Action, r.Goto = buildActionGotoTables(g, r.States)
	return r
}

// buildActionGotoTables builds the ACTION and GOTO tables from the
// merged states: a shift action for every terminal transition, an
// accept action on $ for the completed augmented item, a reduce action
// for every (reduce item, lookahead) pair, and a GOTO entry for every
// non-terminal transition. An ACTION cell with more than one action is
// exactly the conflicts recorded in ShiftReduce/ReduceReduce (spec.md
// §4.7): those lists are built separately, by classifyLALRConflicts,
// from the same merged items.
func buildActionGotoTables(g *Grammar, states []*LALRState) (*ActionTable, *GotoTable) {
	at := &ActionTable{cells: map[int]map[Symbol][]Action{}}
	gt := &GotoTable{cells: map[int]map[Symbol]int{}}

	for _, st := range states {
		arow := map[Symbol][]Action{}
		grow := map[Symbol]int{}
		for sym, target := range st.Transitions {
			if sym.IsTerminal() {
				arow[sym] = append(arow[sym], Action{Kind: Shift, State: target})
			} else if sym.IsNonTerminal() {
				grow[sym] = target
			}
		}
		for _, it := range st.Items {
			p := g.Productions[it.Core.ProdNum]
			if it.Core.Dot < p.Len() {
				continue
			}
			if p.LHS == g.AugmentedStart {
				arow[EOF] = append(arow[EOF], Action{Kind: Accept})
				continue
			}
			for _, la := range it.Lookaheads {
				arow[la] = append(arow[la], Action{Kind: Reduce, Prod: p})
			}
		}
		if len(arow) > 0 {
			at.cells[st.ID] = arow
		}
		if len(grow) > 0 {
			gt.cells[st.ID] = grow
		}
	}
	return at, gt
}

// coreOf returns the distinct (production, dot) pairs underlying items,
// sorted by the LR(0) item comparator's ordering.
func coreOf(items []LR1Item) []LR0Item {
	seen := map[LR0Item]bool{}
	var out []LR0Item
	for _, it := range items {
		c := it.core()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProdNum != out[j].ProdNum {
			return out[i].ProdNum < out[j].ProdNum
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}

func coreKey(core []LR0Item) string {
	var key []byte
	for _, c := range core {
		key = append(key, []byte(strconv.Itoa(c.ProdNum))...)
		key = append(key, '.')
		key = append(key, []byte(strconv.Itoa(c.Dot))...)
		key = append(key, ';')
	}
	return string(key)
}

func sortedSymbolSet(set map[Symbol]bool) []Symbol {
	out := make([]Symbol, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// classifyLALRConflicts partitions each merged state's items into shift
// items (incomplete, next symbol a terminal) and reduce items (complete,
// LHS ≠ augmented start), then, unlike the LR(0) classifier, narrows
// shift/reduce conflicts to terminals that actually sit in a reduce
// item's lookahead set — the entire reason to build LALR at all (spec.md
// §4.7).
func classifyLALRConflicts(g *Grammar, states []*LALRState) ([]ShiftReduceConflict, []ReduceReduceConflict) {
	var sr []ShiftReduceConflict
	var rr []ReduceReduceConflict

	for _, st := range states {
		shiftByTerm := map[Symbol]LR0Item{}
		var shiftTerms []Symbol
		type reduceItem struct {
			item       LR0Item
			lookaheads []Symbol
		}
		var reduceItems []reduceItem

		for _, it := range st.Items {
			p := g.Productions[it.Core.ProdNum]
			if it.Core.Dot >= p.Len() {
				if p.LHS == g.AugmentedStart {
					continue
				}
				reduceItems = append(reduceItems, reduceItem{item: it.Core, lookaheads: it.Lookaheads})
				continue
			}
			sym := p.Symbol(it.Core.Dot)
			if sym.IsTerminal() {
				if _, ok := shiftByTerm[sym]; !ok {
					shiftTerms = append(shiftTerms, sym)
				}
				shiftByTerm[sym] = it.Core
			}
		}
		sort.Slice(shiftTerms, func(i, j int) bool { return shiftTerms[i].Name() < shiftTerms[j].Name() })

		for _, term := range shiftTerms {
			shift := shiftByTerm[term]
			for _, red := range reduceItems {
				for _, la := range red.lookaheads {
					if la == term {
						sr = append(sr, ShiftReduceConflict{
							State:      st.ID,
							Terminal:   term,
							ShiftItem:  shift,
							ReduceProd: g.Productions[red.item.ProdNum],
						})
						break
					}
				}
			}
		}

		for i := 0; i < len(reduceItems); i++ {
			for j := i + 1; j < len(reduceItems); j++ {
				shared := intersectSymbols(reduceItems[i].lookaheads, reduceItems[j].lookaheads)
				if len(shared) == 0 {
					continue
				}
				rr = append(rr, ReduceReduceConflict{
					State:      st.ID,
					Lookaheads: shared,
					Prod1:      g.Productions[reduceItems[i].item.ProdNum],
					Prod2:      g.Productions[reduceItems[j].item.ProdNum],
				})
			}
		}
	}
	return sr, rr
}

func intersectSymbols(a, b []Symbol) []Symbol {
	bSet := map[Symbol]bool{}
	for _, s := range b {
		bSet[s] = true
	}
	var out []Symbol
	for _, s := range a {
		if bSet[s] {
			out = append(out, s)
		}
	}
	return out
}
