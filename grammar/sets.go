package grammar

// SetComputer holds the three fixpoints every other analysis in this
// package is built on: nullability, FIRST, and FOLLOW. All three are
// least fixpoints over a finite lattice (spec.md §4.2) and are computed
// once, by iterating every production until no set grows.
type SetComputer struct {
	g        *Grammar
	nullable map[Symbol]bool
	first    map[Symbol]map[Symbol]struct{}
	follow   map[Symbol]map[Symbol]struct{}
}

// ComputeSets runs nullability, then FIRST, then FOLLOW to their
// fixpoints and returns the result. The grammar must already be valid
// (as returned by ParseGrammar/NewGrammar).
func ComputeSets(g *Grammar) *SetComputer {
	sc := &SetComputer{g: g}
	sc.computeNullable()
	sc.computeFirst()
	sc.computeFollow()
	return sc
}

func (sc *SetComputer) computeNullable() {
	sc.nullable = map[Symbol]bool{}
	for {
		changed := false
		for _, p := range sc.g.Productions {
			if sc.nullable[p.LHS] {
				continue
			}
			if sc.productionNullable(p) {
				sc.nullable[p.LHS] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

func (sc *SetComputer) productionNullable(p *Production) bool {
	if p.IsEmpty() {
		return true
	}
	for i := 0; i < p.Len(); i++ {
		sym := p.Symbol(i)
		if sym.IsTerminal() {
			return false
		}
		if !sc.nullable[sym] {
			return false
		}
	}
	return true
}

// Nullable reports whether non-terminal a derives the empty string.
func (sc *SetComputer) Nullable(a Symbol) bool {
	return sc.nullable[a]
}

func (sc *SetComputer) computeFirst() {
	sc.first = map[Symbol]map[Symbol]struct{}{}
	for _, t := range sc.g.Terminals() {
		sc.first[t] = map[Symbol]struct{}{t: {}}
	}
	for _, a := range sc.g.NonTerminals() {
		sc.first[a] = map[Symbol]struct{}{}
	}
	sc.first[sc.g.AugmentedStart] = map[Symbol]struct{}{}

	for {
		changed := false
		for _, p := range sc.g.Productions {
			if sc.addProductionFirst(p) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// addProductionFirst adds FIRST(α) (minus the possible ε, which is
// tracked by nullability of p.LHS already computed) into FIRST(p.LHS),
// following the per-production rule of spec.md §4.2.
func (sc *SetComputer) addProductionFirst(p *Production) bool {
	changed := false
	dst := sc.first[p.LHS]
	if p.IsEmpty() {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		sym := p.Symbol(i)
		for s := range sc.first[sym] {
			if _, ok := dst[s]; !ok {
				dst[s] = struct{}{}
				changed = true
			}
		}
		if !sc.symbolNullable(sym) {
			break
		}
	}
	return changed
}

func (sc *SetComputer) symbolNullable(sym Symbol) bool {
	if sym.IsTerminal() {
		return false
	}
	return sc.nullable[sym]
}

// First returns FIRST(a): the terminals a can begin with. It does not
// include ε even if a is nullable — use Nullable for that.
func (sc *SetComputer) First(a Symbol) map[Symbol]struct{} {
	return sc.first[a]
}

// FirstOfString computes FIRST(β) for an arbitrary symbol string,
// including ε in the result when β is nullable (or empty). This is the
// string rule of spec.md §4.2, used directly by LR(1) closure.
func (sc *SetComputer) FirstOfString(beta []Symbol) map[Symbol]struct{} {
	out := map[Symbol]struct{}{}
	for _, sym := range beta {
		if sym.IsTerminal() {
			out[sym] = struct{}{}
			return out
		}
		for s := range sc.first[sym] {
			out[s] = struct{}{}
		}
		if !sc.nullable[sym] {
			return out
		}
	}
	out[Epsilon] = struct{}{}
	return out
}

func (sc *SetComputer) computeFollow() {
	sc.follow = map[Symbol]map[Symbol]struct{}{}
	for _, a := range sc.g.NonTerminals() {
		sc.follow[a] = map[Symbol]struct{}{}
	}
	sc.follow[sc.g.StartSymbol] = map[Symbol]struct{}{EOF: {}}

	for {
		changed := false
		for _, p := range sc.g.Productions {
			if p.IsEmpty() {
				continue
			}
			for i := 0; i < p.Len(); i++ {
				b := p.Symbol(i)
				if !b.IsNonTerminal() {
					continue
				}
				rest := p.RHS[i+1:]
				firstRest := sc.FirstOfString(rest)
				dst := sc.follow[b]
				for s := range firstRest {
					if s.IsEpsilon() {
						continue
					}
					if _, ok := dst[s]; !ok {
						dst[s] = struct{}{}
						changed = true
					}
				}
				if _, nullableTail := firstRest[Epsilon]; nullableTail {
					for s := range sc.follow[p.LHS] {
						if _, ok := dst[s]; !ok {
							dst[s] = struct{}{}
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

// Follow returns FOLLOW(a): the terminals (possibly including EOF) that
// can appear immediately after a in some sentential form.
func (sc *SetComputer) Follow(a Symbol) map[Symbol]struct{} {
	return sc.follow[a]
}
