package main

import (
	"fmt"

	"github.com/nihei9/gramalyze/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "ll1",
		Short:   "Build the LL(1) predictive parsing table for a grammar",
		Example: `  gramalyze ll1 grammar.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLL1,
	}
	rootCmd.AddCommand(cmd)
}

func runLL1(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	g, err := grammar.ParseGrammar(string(src))
	if err != nil {
		return err
	}

	res := grammar.AnalyzeLL1(g)
	w := cmd.OutOrStdout()

	terms := append(append([]grammar.Symbol{}, g.Terminals()...), grammar.EOF)
	for _, nt := range g.NonTerminals() {
		for _, term := range terms {
			cell := res.LL1.Table.Lookup(nt, term)
			if cell == nil {
				continue
			}
			for _, p := range cell.Productions {
				fmt.Fprintf(w, "M[%s, %s] = %v\n", nt, term, p)
			}
		}
	}
	for _, c := range res.LL1.Conflicts {
		fmt.Fprintf(w, "%s\n", ll1ConflictString(c))
	}
	fmt.Fprintf(w, "LL(1): %v\n", res.LL1.IsLL1)
	return nil
}
