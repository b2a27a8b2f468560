package grammar

import (
	"fmt"
	"sort"

	verr "github.com/nihei9/gramalyze/error"
)

// Grammar is the typed, validated representation of a context-free
// grammar built either by GrammarParser (from the textual notation, see
// parse.go) or directly via NewGrammar (for grammars constructed in
// code, e.g. tests). It is built once and is immutable thereafter.
type Grammar struct {
	symTab *SymbolTable

	// StartSymbol is the grammar's original start non-terminal.
	StartSymbol Symbol

	// AugmentedStart is a fresh non-terminal (never equal to any
	// original non-terminal) whose sole production is production 0:
	// AugmentedStart → StartSymbol.
	AugmentedStart Symbol

	// Productions is indexed by production number: Productions[0] is
	// always the augmented production.
	Productions []*Production

	byLHS map[Symbol][]*Production
}

// Terminals returns every terminal symbol interned while parsing the
// grammar, alphabetically by name. EOF is never interned, so it is not
// included; callers needing it in the same sweep (e.g. to report an
// ACTION/GOTO table or an LL(1) table column for "$") append
// grammar.EOF themselves.
func (g *Grammar) Terminals() []Symbol { return g.symTab.Terminals() }

// NonTerminals returns every non-terminal of the grammar, alphabetically
// by name. AugmentedStart is not included: it is not one of the
// grammar's "original" non-terminals.
func (g *Grammar) NonTerminals() []Symbol { return g.symTab.NonTerminals() }

// ProductionsOf returns the productions whose LHS is sym, in source
// order, or nil if sym has none. For AugmentedStart it returns its
// single production, Productions[0].
func (g *Grammar) ProductionsOf(sym Symbol) []*Production {
	return g.byLHS[sym]
}

func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar{start: %v, productions: %v}", g.StartSymbol, len(g.Productions))
}

// NewGrammar builds and validates a Grammar from a start symbol and its
// non-terminals' productions, keyed by LHS name in source order. It
// implements the numbering policy and invariants of spec.md §3.
func NewGrammar(symTab *SymbolTable, start Symbol, byLHSInSourceOrder map[Symbol][]rawProduction) (*Grammar, error) {
	var errs verr.GrammarSyntaxErrors

	if _, ok := byLHSInSourceOrder[start]; !ok || len(byLHSInSourceOrder[start]) == 0 {
		errs = append(errs, &verr.GrammarSyntaxError{Cause: fmt.Errorf("start symbol %q has no production", start.Name())})
	}

	lhsNames := make([]string, 0, len(byLHSInSourceOrder))
	byName := map[string]Symbol{}
	for lhs := range byLHSInSourceOrder {
		lhsNames = append(lhsNames, lhs.Name())
		byName[lhs.Name()] = lhs
	}
	sort.Strings(lhsNames)

	augStart := NonTerminal(freshAugmentedName(start.Name(), byLHSInSourceOrder))

	augProd := &Production{Num: 0, LHS: augStart, RHS: []Symbol{start}}
	prods := []*Production{augProd}
	byLHS := map[Symbol][]*Production{augStart: {augProd}}

	num := 1
	for _, name := range lhsNames {
		lhs := byName[name]
		for _, raw := range byLHSInSourceOrder[lhs] {
			p := &Production{Num: num, LHS: raw.lhs, RHS: raw.rhs}
			num++
			prods = append(prods, p)
			byLHS[raw.lhs] = append(byLHS[raw.lhs], p)
		}
	}

	// Every symbol occurring in any RHS is a terminal other than $, a
	// non-terminal with at least one production, or ε as the sole body
	// symbol.
	for _, p := range prods {
		if p.IsEmpty() {
			continue
		}
		for _, sym := range p.RHS {
			if sym == EOF {
				errs = append(errs, &verr.GrammarSyntaxError{Cause: fmt.Errorf("the end-of-input marker %q may not appear in a production body, found in %v", sym.Name(), p)})
				continue
			}
			if sym.IsEpsilon() {
				errs = append(errs, &verr.GrammarSyntaxError{Cause: fmt.Errorf("ε may only appear as the entire body of a production, found in %v", p)})
				continue
			}
			if sym.IsNonTerminal() {
				if _, ok := byLHSInSourceOrder[sym]; !ok {
					errs = append(errs, &verr.GrammarSyntaxError{Cause: fmt.Errorf("non-terminal %q has no production", sym.Name())})
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Grammar{
		symTab:         symTab,
		StartSymbol:    start,
		AugmentedStart: augStart,
		Productions:    prods,
		byLHS:          byLHS,
	}, nil
}

// freshAugmentedName picks a non-terminal name, derived from the start
// symbol, that collides with nothing already declared.
func freshAugmentedName(start string, declared map[Symbol][]rawProduction) string {
	name := start + "′"
	for {
		collides := false
		for lhs := range declared {
			if lhs.Name() == name {
				collides = true
				break
			}
		}
		if !collides {
			return name
		}
		name = name + "′"
	}
}
