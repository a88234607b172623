package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/spar/calc"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "eval [statements]",
		Short: "Evaluate calculator statements",
		Long: `Evaluate calculator statements and print the variables they assign.

Statements are taken from the arguments, from a file (--file) or, if neither
is given, from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			switch {
			case file != "":
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				src = string(b)
			case len(args) > 0:
				src = strings.Join(args, " ")
			default:
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				src = string(b)
			}
			tracer().Infof("evaluating %q", src)
			vars, err := calc.NewInterpreter().Eval(src)
			printVars(vars)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read statements from file")
	return cmd
}
