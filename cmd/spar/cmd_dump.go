package main

import (
	"fmt"

	"github.com/npillmayer/spar/automaton"
	"github.com/spf13/cobra"
)

type calcGrammar struct {
	*automaton.Grammar
}

func (g *calcGrammar) summary() string {
	return fmt.Sprintf("grammar %s: %d nodes, %d rules, terminals %v",
		g.Name(), g.Size(), g.RuleCount(), g.Terminals())
}

func newDumpCmd() *cobra.Command {
	var fingerprint bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Render the automaton of the calculator grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grammar()
			fmt.Println(g.summary())
			if fingerprint {
				fmt.Println(g.Fingerprint())
				return nil
			}
			g.Dump()
			return nil
		},
	}
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print a hash of the automaton instead")
	return cmd
}
