package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var outputFlags struct {
	path *string
	file *os.File
}

var rootCmd = &cobra.Command{
	Use:   "gramalyze",
	Short: "Analyze a context-free grammar for parser suitability",
	Long: `gramalyze reads a grammar written in a small line-oriented
notation and reports what kind of parser it admits:
- rd: suitability for a recursive-descent parser (left recursion,
  left-factoring, LL(1) conflicts)
- ll1: the LL(1) predictive parsing table and its conflicts
- lr0: the canonical LR(0) automaton and its conflicts
- lalr: the canonical LR(1) collection merged into LALR(1), and its
  conflicts

Every subcommand takes one grammar file path, or reads the grammar from
stdin if no path is given.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if *outputFlags.path == "" {
			return nil
		}
		f, err := os.Create(*outputFlags.path)
		if err != nil {
			return err
		}
		outputFlags.file = f
		cmd.SetOut(f)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if outputFlags.file == nil {
			return nil
		}
		return outputFlags.file.Close()
	},
}

func init() {
	outputFlags.path = rootCmd.PersistentFlags().StringP("output", "o", "", "output file path (default stdout)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// readSource returns the contents of args[0], or of stdin when args is
// empty.
func readSource(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
