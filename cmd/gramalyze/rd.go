package main

import (
	"fmt"

	"github.com/nihei9/gramalyze/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "rd",
		Short:   "Check whether a grammar is suitable for a recursive-descent parser",
		Example: `  gramalyze rd grammar.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runRD,
	}
	rootCmd.AddCommand(cmd)
}

func runRD(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	g, err := grammar.ParseGrammar(string(src))
	if err != nil {
		return err
	}

	res := grammar.AnalyzeRecursiveDescent(g)
	w := cmd.OutOrStdout()

	for _, d := range res.LeftRecursion.Direct {
		fmt.Fprintf(w, "direct left recursion: %v\n", d.Production)
	}
	for _, c := range res.LeftRecursion.Indirect {
		fmt.Fprintf(w, "indirect left recursion: %s\n", symbolCycleString(c.Cycle))
	}
	for _, f := range res.LeftRecursion.FactorCandidates {
		fmt.Fprintf(w, "left-factoring candidate: %s, common prefix %s\n", f.NonTerminal, symbolSliceString(f.CommonPrefix))
	}
	for _, c := range res.LL1.Conflicts {
		fmt.Fprintf(w, "%s\n", ll1ConflictString(c))
	}

	fmt.Fprintf(w, "suitable for recursive descent: %v\n", res.IsSuitable)
	fmt.Fprintf(w, "backtrack free: %v\n", res.IsBacktrackFree)
	return nil
}

func symbolCycleString(cycle []grammar.Symbol) string {
	s := ""
	for i, sym := range cycle {
		if i > 0 {
			s += " → "
		}
		s += sym.String()
	}
	return s
}

func symbolSliceString(syms []grammar.Symbol) string {
	s := ""
	for i, sym := range syms {
		if i > 0 {
			s += " "
		}
		s += sym.String()
	}
	return s
}

func ll1ConflictString(c grammar.LL1Conflict) string {
	kind := "FIRST/FIRST"
	if c.Kind == grammar.FirstFollowConflict {
		kind = "FIRST/FOLLOW"
	}
	return fmt.Sprintf("%s conflict at (%s, %s): %v vs %v", kind, c.NonTerminal, c.Terminal, c.Prod1, c.Prod2)
}
