package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/nihei9/gramalyze/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "lr0",
		Short:   "Build the canonical LR(0) automaton for a grammar",
		Example: `  gramalyze lr0 grammar.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLR0,
	}
	rootCmd.AddCommand(cmd)
}

func runLR0(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	g, err := grammar.ParseGrammar(string(src))
	if err != nil {
		return err
	}

	a := grammar.AnalyzeLR0(g)
	w := cmd.OutOrStdout()

	printLR0States(w, g, a)

	for _, c := range a.ShiftReduce {
		fmt.Fprintf(w, "shift/reduce conflict in state %d on %s: shift %v, reduce %v\n",
			c.State, c.Terminal, g.Productions[c.ShiftItem.ProdNum].ItemString(c.ShiftItem.Dot), c.ReduceProd)
	}
	for _, c := range a.ReduceReduce {
		fmt.Fprintf(w, "reduce/reduce conflict in state %d: %v vs %v\n", c.State, c.Prod1, c.Prod2)
	}
	fmt.Fprintf(w, "LR(0): %v\n", a.IsLR0())
	return nil
}

func printLR0States(w io.Writer, g *grammar.Grammar, a *grammar.LR0Automaton) {
	for _, st := range a.States {
		fmt.Fprintf(w, "state %d:\n", st.ID)
		for _, it := range st.Items {
			fmt.Fprintf(w, "  %s\n", g.Productions[it.ProdNum].ItemString(it.Dot))
		}
		for _, sym := range sortedTransitionSymbols(st.Transitions) {
			fmt.Fprintf(w, "  on %s -> state %d\n", sym, st.Transitions[sym])
		}
	}
}

func sortedTransitionSymbols(transitions map[grammar.Symbol]int) []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, len(transitions))
	for sym := range transitions {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].String() < syms[j].String() })
	return syms
}
