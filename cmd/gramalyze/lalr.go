package main

import (
	"fmt"

	"github.com/nihei9/gramalyze/grammar"
	"github.com/spf13/cobra"
)

func actionString(a grammar.Action) string {
	switch a.Kind {
	case grammar.Shift:
		return fmt.Sprintf("shift %d", a.State)
	case grammar.Accept:
		return "accept"
	default:
		return fmt.Sprintf("reduce %v", a.Prod)
	}
}

func init() {
	cmd := &cobra.Command{
		Use:     "lalr",
		Short:   "Build the LALR(1) automaton for a grammar via canonical LR(1)",
		Example: `  gramalyze lalr grammar.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLALR,
	}
	rootCmd.AddCommand(cmd)
}

func runLALR(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	g, err := grammar.ParseGrammar(string(src))
	if err != nil {
		return err
	}

	res := grammar.AnalyzeLALR(g)
	w := cmd.OutOrStdout()

	terms := append(append([]grammar.Symbol{}, g.Terminals()...), grammar.EOF)
	nts := g.NonTerminals()

	for _, st := range res.LALR.States {
		fmt.Fprintf(w, "state %d:\n", st.ID)
		for _, it := range st.Items {
			fmt.Fprintf(w, "  %s, %s\n", g.Productions[it.Core.ProdNum].ItemString(it.Core.Dot), symbolSliceString(it.Lookaheads))
		}
		for _, term := range terms {
			for _, a := range res.LALR.Action.Lookup(st.ID, term) {
				fmt.Fprintf(w, "  action[%s] = %s\n", term, actionString(a))
			}
		}
		for _, nt := range nts {
			if target, ok := res.LALR.Goto.Lookup(st.ID, nt); ok {
				fmt.Fprintf(w, "  goto[%s] = state %d\n", nt, target)
			}
		}
	}

	for _, c := range res.LALR.ShiftReduce {
		fmt.Fprintf(w, "shift/reduce conflict in state %d on %s: shift %v, reduce %v\n",
			c.State, c.Terminal, g.Productions[c.ShiftItem.ProdNum].ItemString(c.ShiftItem.Dot), c.ReduceProd)
	}
	for _, c := range res.LALR.ReduceReduce {
		fmt.Fprintf(w, "reduce/reduce conflict in state %d on %s: %v vs %v\n", c.State, symbolSliceString(c.Lookaheads), c.Prod1, c.Prod2)
	}

	fmt.Fprintf(w, "canonical LR(1) states: %d\n", res.LALR.LR1StateCount)
	fmt.Fprintf(w, "LALR(1) states: %d\n", res.LALR.LALRStateCount)
	fmt.Fprintf(w, "LALR(1): %v\n", res.LALR.IsLALR())
	return nil
}
