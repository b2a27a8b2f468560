package grammar

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LR0Item is an (production, dot) pair with no lookahead (spec.md §3).
// production 0 (the augmented start) with dot 0, `[S′ → · S]`, seeds the
// initial state.
type LR0Item struct {
	ProdNum int
	Dot     int
}

func lr0ItemComparator(a, b interface{}) int {
	x, y := a.(LR0Item), b.(LR0Item)
	if x.ProdNum != y.ProdNum {
		return utils.IntComparator(x.ProdNum, y.ProdNum)
	}
	return utils.IntComparator(x.Dot, y.Dot)
}

func newLR0ItemSet(items ...LR0Item) *treeset.Set {
	s := treeset.NewWith(lr0ItemComparator)
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func lr0Items(s *treeset.Set) []LR0Item {
	vals := s.Values()
	out := make([]LR0Item, len(vals))
	for i, v := range vals {
		out[i] = v.(LR0Item)
	}
	return out
}

// lr0ItemSetKey is the canonical identity of an item set: the sorted
// (by the set's own comparator) sequence of its items. Two item sets
// with the same key are, by spec.md §3's definition, the same state.
func lr0ItemSetKey(s *treeset.Set) string {
	var key []byte
	for _, it := range lr0Items(s) {
		key = append(key, []byte(fmt.Sprintf("%d.%d;", it.ProdNum, it.Dot))...)
	}
	return string(key)
}

// nextSymbol returns the symbol immediately after the dot, and ok=false
// if the item is complete (dot at or past the end of an effective body).
func nextSymbol(g *Grammar, it LR0Item) (Symbol, bool) {
	p := g.Productions[it.ProdNum]
	if it.Dot >= p.Len() {
		return Symbol{}, false
	}
	return p.Symbol(it.Dot), true
}

// isComplete reports whether the dot has passed the last real symbol of
// the item's production. An ε-production's single item (dot 0) is
// complete on construction (spec.md §3).
func isComplete(g *Grammar, it LR0Item) bool {
	return it.Dot >= g.Productions[it.ProdNum].Len()
}

// closureLR0 computes Closure(I) over LR(0) items (spec.md §4.5): seed
// with I, then repeatedly add [B → · γ] for every item [A → α · B β]
// with B a non-terminal, until no further item is added.
func closureLR0(g *Grammar, seed *treeset.Set) *treeset.Set {
	result := treeset.NewWith(lr0ItemComparator)
	for _, v := range seed.Values() {
		result.Add(v)
	}
	worklist := lr0Items(seed)
	for len(worklist) > 0 {
		var next []LR0Item
		for _, it := range worklist {
			sym, ok := nextSymbol(g, it)
			if !ok || !sym.IsNonTerminal() {
				continue
			}
			for _, p := range g.ProductionsOf(sym) {
				cand := LR0Item{ProdNum: p.Num, Dot: 0}
				if !result.Contains(cand) {
					result.Add(cand)
					next = append(next, cand)
				}
			}
		}
		worklist = next
	}
	return result
}

// gotoLR0 computes GOTO(I, X) = Closure({item.advance() | item ∈ I,
// item.next_symbol = X}). Returns an empty set if no item advances over
// X.
func gotoLR0(g *Grammar, items *treeset.Set, x Symbol) *treeset.Set {
	advanced := treeset.NewWith(lr0ItemComparator)
	for _, it := range lr0Items(items) {
		sym, ok := nextSymbol(g, it)
		if !ok || sym != x {
			continue
		}
		advanced.Add(LR0Item{ProdNum: it.ProdNum, Dot: it.Dot + 1})
	}
	if advanced.Empty() {
		return advanced
	}
	return closureLR0(g, advanced)
}

// LR0State is one state of the canonical LR(0) collection: a stable id
// plus its (closed) item set and its outgoing transitions.
type LR0State struct {
	ID          int
	Items       []LR0Item
	Transitions map[Symbol]int
}

// LR0Automaton is the canonical LR(0) collection plus its shift/reduce
// and reduce/reduce conflicts (spec.md §4.5).
type LR0Automaton struct {
	g            *Grammar
	States       []*LR0State
	InitialState int
	ShiftReduce  []ShiftReduceConflict
	ReduceReduce []ReduceReduceConflict
	Catalog      ConflictCatalog
}

// IsLR0 reports whether the automaton has no shift/reduce and no
// reduce/reduce conflicts — the grammar can be parsed with zero
// lookahead.
func (a *LR0Automaton) IsLR0() bool {
	return len(a.ShiftReduce) == 0 && len(a.ReduceReduce) == 0
}

// BuildLR0Automaton constructs the canonical LR(0) collection: augment
// the grammar with S′ → S (already production 0 on g), seed state 0 with
// Closure({[S′ → · S]}), then worklist over states and symbols,
// deduplicating states by item-set equality (spec.md §4.5).
func BuildLR0Automaton(g *Grammar) *LR0Automaton {
	a := &LR0Automaton{g: g}

	registry := map[string]int{}
	seed := closureLR0(g, newLR0ItemSet(LR0Item{ProdNum: 0, Dot: 0}))
	seedKey := lr0ItemSetKey(seed)
	registry[seedKey] = 0
	a.States = append(a.States, &LR0State{ID: 0, Items: lr0Items(seed), Transitions: map[Symbol]int{}})
	sets := map[int]*treeset.Set{0: seed}

	var worklist []int
	worklist = append(worklist, 0)
	for len(worklist) > 0 {
		var next []int
		for _, id := range worklist {
			items := sets[id]
			for _, x := range outgoingSymbols(g, items) {
				target := gotoLR0(g, items, x)
				if target.Empty() {
					continue
				}
				key := lr0ItemSetKey(target)
				tid, known := registry[key]
				if !known {
					tid = len(a.States)
					registry[key] = tid
					a.States = append(a.States, &LR0State{ID: tid, Items: lr0Items(target), Transitions: map[Symbol]int{}})
					sets[tid] = target
					next = append(next, tid)
				}
				a.States[id].Transitions[x] = tid
			}
		}
		worklist = next
	}

	a.ShiftReduce, a.ReduceReduce = classifyLR0Conflicts(g, a.States)
	a.Catalog = catalogLR0(a.ShiftReduce, a.ReduceReduce)
	return a
}

// outgoingSymbols returns, in a deterministic (alphabetical) order, every
// symbol that appears as some item's next symbol in items.
func outgoingSymbols(g *Grammar, items *treeset.Set) []Symbol {
	seen := map[Symbol]bool{}
	var syms []Symbol
	for _, it := range lr0Items(items) {
		sym, ok := nextSymbol(g, it)
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name() < syms[j].Name() })
	return syms
}

// classifyLR0Conflicts partitions each state's items into shift items
// (incomplete, next symbol a terminal) and reduce items (complete, LHS ≠
// augmented start), then reports a shift/reduce conflict for each (shift
// terminal, reduce item) pair sharing a state, and a reduce/reduce
// conflict for each unordered pair of reduce items in a state (spec.md
// §4.5). The augmented item [S′ → S ·] is accept, never reduce.
func classifyLR0Conflicts(g *Grammar, states []*LR0State) ([]ShiftReduceConflict, []ReduceReduceConflict) {
	var sr []ShiftReduceConflict
	var rr []ReduceReduceConflict

	for _, st := range states {
		shiftByTerm := map[Symbol]LR0Item{}
		var shiftTerms []Symbol
		var reduceItems []LR0Item
		for _, it := range st.Items {
			if isComplete(g, it) {
				if g.Productions[it.ProdNum].LHS == g.AugmentedStart {
					continue
				}
				reduceItems = append(reduceItems, it)
				continue
			}
			sym, _ := nextSymbol(g, it)
			if sym.IsTerminal() {
				if _, ok := shiftByTerm[sym]; !ok {
					shiftTerms = append(shiftTerms, sym)
				}
				shiftByTerm[sym] = it
			}
		}
		sort.Slice(shiftTerms, func(i, j int) bool { return shiftTerms[i].Name() < shiftTerms[j].Name() })

		for _, term := range shiftTerms {
			shift := shiftByTerm[term]
			for _, red := range reduceItems {
				sr = append(sr, ShiftReduceConflict{
					State:      st.ID,
					Terminal:   term,
					ShiftItem:  shift,
					ReduceProd: g.Productions[red.ProdNum],
				})
			}
		}

		for i := 0; i < len(reduceItems); i++ {
			for j := i + 1; j < len(reduceItems); j++ {
				rr = append(rr, ReduceReduceConflict{
					State: st.ID,
					Prod1: g.Productions[reduceItems[i].ProdNum],
					Prod2: g.Productions[reduceItems[j].ProdNum],
				})
			}
		}
	}
	return sr, rr
}
