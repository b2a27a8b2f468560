package grammar

import "sort"

// LeftRecursionResult is the outcome of LeftRecursionAnalyzer: every
// direct and indirect left-recursion cycle found, plus every
// left-factoring candidate.
type LeftRecursionResult struct {
	Direct           []DirectLeftRecursion
	Indirect         []IndirectLeftRecursion
	FactorCandidates []LeftFactorCandidate
}

// DirectLeftRecursion records one production of the shape A → A α.
type DirectLeftRecursion struct {
	NonTerminal Symbol
	Production  *Production
}

// IndirectLeftRecursion records one cycle of non-terminals reachable
// through the leftmost-derivation edge graph (spec.md §4.3): an edge
// A→B exists iff some production A → B γ exists with B a non-terminal
// that is exactly the first RHS symbol — this module resolves the
// spec's open question by using that literal, non-nullable-prefix rule,
// matching the original analyzer's simpler behavior (see DESIGN.md).
type IndirectLeftRecursion struct {
	Cycle []Symbol
}

// LeftFactorCandidate records a group of two or more productions of one
// non-terminal sharing a common non-empty prefix.
type LeftFactorCandidate struct {
	NonTerminal   Symbol
	CommonPrefix  []Symbol
	Productions   []*Production
}

// AnalyzeLeftRecursion runs the LeftRecursionAnalyzer (spec.md §4.3).
func AnalyzeLeftRecursion(g *Grammar) *LeftRecursionResult {
	res := &LeftRecursionResult{}

	directNTs := map[Symbol]bool{}
	for _, nt := range g.NonTerminals() {
		for _, p := range g.ProductionsOf(nt) {
			if !p.IsEmpty() && p.Symbol(0) == nt {
				res.Direct = append(res.Direct, DirectLeftRecursion{NonTerminal: nt, Production: p})
				directNTs[nt] = true
			}
		}
	}

	res.Indirect = findIndirectLeftRecursionCycles(g)

	for _, nt := range g.NonTerminals() {
		res.FactorCandidates = append(res.FactorCandidates, findLeftFactorCandidates(nt, g.ProductionsOf(nt))...)
	}

	return res
}

// findIndirectLeftRecursionCycles builds the leftmost-first-symbol edge
// graph and reports every strongly connected component of size ≥ 2.
// Self-loops (A → A γ) are direct left recursion, already classified
// separately, and are excluded from this graph by the b == nt check
// below, so every SCC of size 1 is acyclic and not reported.
func findIndirectLeftRecursionCycles(g *Grammar) []IndirectLeftRecursion {
	edges := map[Symbol][]Symbol{}
	for _, nt := range g.NonTerminals() {
		seen := map[Symbol]bool{}
		for _, p := range g.ProductionsOf(nt) {
			if p.IsEmpty() {
				continue
			}
			b := p.Symbol(0)
			if !b.IsNonTerminal() || b == nt || seen[b] {
				continue
			}
			seen[b] = true
			edges[nt] = append(edges[nt], b)
		}
	}

	sccs := tarjanSCC(g.NonTerminals(), edges)

	var out []IndirectLeftRecursion
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		cycle := append(append([]Symbol{}, scc...), scc[0])
		out = append(out, IndirectLeftRecursion{Cycle: cycle})
	}
	return out
}

// tarjanSCC computes the strongly connected components of the graph
// given by edges, restricted to and ordered deterministically over
// nodes. Components are returned in the order they are completed
// (Tarjan's reverse topological order); within a component, nodes are in
// the order they are popped off the stack, the reverse of discovery order.
func tarjanSCC(nodes []Symbol, edges map[Symbol][]Symbol) [][]Symbol {
	index := map[Symbol]int{}
	low := map[Symbol]int{}
	onStack := map[Symbol]bool{}
	var stack []Symbol
	counter := 0
	var sccs [][]Symbol

	var strongconnect func(v Symbol)
	strongconnect = func(v Symbol) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, visited := index[w]; !visited {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			var scc []Symbol
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, v := range nodes {
		if _, visited := index[v]; !visited {
			strongconnect(v)
		}
	}
	return sccs
}

// findLeftFactorCandidates groups prods by first symbol and, for each
// group of size ≥ 2, reports the longest common prefix when it is
// non-empty (spec.md §4.3).
func findLeftFactorCandidates(nt Symbol, prods []*Production) []LeftFactorCandidate {
	groups := map[Symbol][]*Production{}
	var order []Symbol
	for _, p := range prods {
		if p.IsEmpty() {
			continue
		}
		first := p.Symbol(0)
		if _, ok := groups[first]; !ok {
			order = append(order, first)
		}
		groups[first] = append(groups[first], p)
	}

	var out []LeftFactorCandidate
	for _, first := range order {
		group := groups[first]
		if len(group) < 2 {
			continue
		}
		prefix := longestCommonPrefix(group)
		if len(prefix) == 0 {
			continue
		}
		out = append(out, LeftFactorCandidate{
			NonTerminal:  nt,
			CommonPrefix: prefix,
			Productions:  group,
		})
	}
	return out
}

func longestCommonPrefix(prods []*Production) []Symbol {
	minLen := prods[0].Len()
	for _, p := range prods[1:] {
		if p.Len() < minLen {
			minLen = p.Len()
		}
	}
	var prefix []Symbol
	for i := 0; i < minLen; i++ {
		sym := prods[0].Symbol(i)
		for _, p := range prods[1:] {
			if p.Symbol(i) != sym {
				return prefix
			}
		}
		prefix = append(prefix, sym)
	}
	return prefix
}

// sortSymbolsByName returns a copy of syms ordered by name, a
// deterministic, human-legible order. Nothing in this package calls it.
func sortSymbolsByName(syms []Symbol) []Symbol {
	out := append([]Symbol{}, syms...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
