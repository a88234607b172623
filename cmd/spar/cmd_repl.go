package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/spar/calc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var initFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Long: `Start an interactive calculator session. Enter statements like

    x := 1 + 2;

Commands: :vars lists variables, :reset drops them, :dump renders the
automaton, :quit ends the session (as does <ctrl>D).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl, err := readline.New("spar> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{
				calc: calc.NewInterpreter(),
				repl: repl,
			}
			pterm.Info.Println("Welcome to spar") // colored welcome message
			tracer().Infof("Quit with <ctrl>D")
			intp.loadInitFile(initFile)
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&initFile, "init", "", "initial load")
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	lastInput string
	calc      *calc.Interpreter
	repl      *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line != "" {
			if _, err := intp.Eval(line); err != nil {
				tracer().Errorf("Error line %d: %v", lineno, err)
			}
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a command or a line of statements. It returns true if the
// session should end.
func (intp *Intp) Eval(line string) (bool, error) {
	switch line {
	case ":quit":
		return true, nil
	case ":vars":
		printVars(intp.calc.Vars())
		return false, nil
	case ":reset":
		intp.calc.Reset()
		return false, nil
	case ":dump":
		grammar().Dump()
		return false, nil
	}
	intp.lastInput = line
	vars, err := intp.calc.Eval(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	printVars(vars)
	return false, nil
}
