package grammar

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LR1Item is an LR(0) item augmented with a single terminal lookahead.
// Two LR(1) items with the same core and different lookaheads are
// distinct (spec.md §3).
type LR1Item struct {
	ProdNum   int
	Dot       int
	Lookahead Symbol
}

func (it LR1Item) core() LR0Item {
	return LR0Item{ProdNum: it.ProdNum, Dot: it.Dot}
}

func lr1ItemComparator(a, b interface{}) int {
	x, y := a.(LR1Item), b.(LR1Item)
	if x.ProdNum != y.ProdNum {
		return utils.IntComparator(x.ProdNum, y.ProdNum)
	}
	if x.Dot != y.Dot {
		return utils.IntComparator(x.Dot, y.Dot)
	}
	return utils.StringComparator(x.Lookahead.Name(), y.Lookahead.Name())
}

func newLR1ItemSet(items ...LR1Item) *treeset.Set {
	s := treeset.NewWith(lr1ItemComparator)
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func lr1Items(s *treeset.Set) []LR1Item {
	vals := s.Values()
	out := make([]LR1Item, len(vals))
	for i, v := range vals {
		out[i] = v.(LR1Item)
	}
	return out
}

// lr1ItemSetKey is the canonical identity of an LR(1) item set,
// including lookaheads, the way lr0ItemSetKey is the identity of an
// LR(0) set.
func lr1ItemSetKey(s *treeset.Set) string {
	var key []byte
	for _, it := range lr1Items(s) {
		key = append(key, []byte(fmt.Sprintf("%d.%d.%s;", it.ProdNum, it.Dot, it.Lookahead.Name()))...)
	}
	return string(key)
}

// closureLR1 computes Closure(I) over LR(1) items (spec.md §4.6): for
// every item [A → α · B β, a] with B a non-terminal, for every
// production B → γ, and for every terminal b ∈ FIRST(βa), add
// [B → · γ, b].
func closureLR1(g *Grammar, sc *SetComputer, seed *treeset.Set) *treeset.Set {
	result := treeset.NewWith(lr1ItemComparator)
	for _, v := range seed.Values() {
		result.Add(v)
	}
	worklist := lr1Items(seed)
	for len(worklist) > 0 {
		var next []LR1Item
		for _, it := range worklist {
			p := g.Productions[it.ProdNum]
			sym, ok := nextSymbolOfLen(p, it.Dot)
			if !ok || !sym.IsNonTerminal() {
				continue
			}
			beta := restOf(p, it.Dot+1)
			firstBetaA := sc.FirstOfString(append(append([]Symbol{}, beta...), it.Lookahead))
			for _, bp := range g.ProductionsOf(sym) {
				for la := range firstBetaA {
					if la.IsEpsilon() {
						continue
					}
					cand := LR1Item{ProdNum: bp.Num, Dot: 0, Lookahead: la}
					if !result.Contains(cand) {
						result.Add(cand)
						next = append(next, cand)
					}
				}
			}
		}
		worklist = next
	}
	return result
}

func nextSymbolOfLen(p *Production, dot int) (Symbol, bool) {
	if dot >= p.Len() {
		return Symbol{}, false
	}
	return p.Symbol(dot), true
}

func restOf(p *Production, from int) []Symbol {
	if from >= p.Len() {
		return nil
	}
	return p.RHS[from:]
}

// gotoLR1 advances the dot over x while preserving lookaheads, then
// takes the closure (spec.md §4.6).
func gotoLR1(g *Grammar, sc *SetComputer, items *treeset.Set, x Symbol) *treeset.Set {
	advanced := treeset.NewWith(lr1ItemComparator)
	for _, it := range lr1Items(items) {
		p := g.Productions[it.ProdNum]
		sym, ok := nextSymbolOfLen(p, it.Dot)
		if !ok || sym != x {
			continue
		}
		advanced.Add(LR1Item{ProdNum: it.ProdNum, Dot: it.Dot + 1, Lookahead: it.Lookahead})
	}
	if advanced.Empty() {
		return advanced
	}
	return closureLR1(g, sc, advanced)
}

// LR1State is one state of the canonical LR(1) collection.
type LR1State struct {
	ID          int
	Items       []LR1Item
	Transitions map[Symbol]int
}

// LR1Automaton is the canonical LR(1) collection, seeded with
// [S′ → · S, $] (spec.md §4.6).
type LR1Automaton struct {
	g            *Grammar
	States       []*LR1State
	InitialState int
}

// BuildLR1Automaton constructs the canonical LR(1) collection: item-set
// equality includes lookaheads, so two states whose LR(0) cores are
// identical but whose lookaheads differ remain distinct states here —
// that splitting is exactly what LALRMerger later undoes.
func BuildLR1Automaton(g *Grammar, sc *SetComputer) *LR1Automaton {
	a := &LR1Automaton{g: g}

	registry := map[string]int{}
	seed := closureLR1(g, sc, newLR1ItemSet(LR1Item{ProdNum: 0, Dot: 0, Lookahead: EOF}))
	seedKey := lr1ItemSetKey(seed)
	registry[seedKey] = 0
	a.States = append(a.States, &LR1State{ID: 0, Items: lr1Items(seed), Transitions: map[Symbol]int{}})
	sets := map[int]*treeset.Set{0: seed}

	var worklist []int
	worklist = append(worklist, 0)
	for len(worklist) > 0 {
		var next []int
		for _, id := range worklist {
			items := sets[id]
			for _, x := range outgoingSymbolsLR1(g, items) {
				target := gotoLR1(g, sc, items, x)
				if target.Empty() {
					continue
				}
				key := lr1ItemSetKey(target)
				tid, known := registry[key]
				if !known {
					tid = len(a.States)
					registry[key] = tid
					a.States = append(a.States, &LR1State{ID: tid, Items: lr1Items(target), Transitions: map[Symbol]int{}})
					sets[tid] = target
					next = append(next, tid)
				}
				a.States[id].Transitions[x] = tid
			}
		}
		worklist = next
	}

	return a
}

func outgoingSymbolsLR1(g *Grammar, items *treeset.Set) []Symbol {
	seen := map[Symbol]bool{}
	var syms []Symbol
	for _, it := range lr1Items(items) {
		p := g.Productions[it.ProdNum]
		sym, ok := nextSymbolOfLen(p, it.Dot)
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name() < syms[j].Name() })
	return syms
}
