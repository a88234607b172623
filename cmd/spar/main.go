package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/spar/calc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func main() {
	var traceLevel string

	rootCmd := &cobra.Command{
		Use:   "spar",
		Short: "A calculator built on a shift-reduce automaton",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupTracing(traceLevel)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newDumpCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupTracing routes all tracers to Go's log package.
func setupTracing(level string) {
	initDisplay()
	tl := tracing.TraceLevelFromString(level)
	gtrace.CommandTracer = gologadapter.New()
	gtrace.CommandTracer.SetTraceLevel(tl)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("spar").SetTraceLevel(tl) // the selector shares one tracer for all keys
	tracer().Debugf("trace level is %s", tl)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// printVars prints variables in order of their names.
func printVars(vars map[string]interface{}) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		pterm.Info.Println(fmt.Sprintf("%s = %v", name, vars[name]))
	}
}

// grammar returns the calculator grammar or terminates.
func grammar() *calcGrammar {
	g, err := calc.Grammar()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	return &calcGrammar{g}
}
