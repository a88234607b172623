package calc

import (
	"math"

	"github.com/npillmayer/spar/runtime"
)

// Interpreter evaluates calculator programs. Variables assigned by a program
// stay bound for subsequent calls to Eval.
type Interpreter struct {
	env *runtime.Environment
}

// NewInterpreter creates an interpreter with pre-defined constants pi and e.
func NewInterpreter() *Interpreter {
	env := runtime.NewEnvironment()
	env.Builtins().Define("pi", math.Pi).Const = true
	env.Builtins().Define("e", math.E).Const = true
	return &Interpreter{env: env}
}

// Eval parses and executes a program. It returns the variables assigned by the
// program, together with their values. The program is parsed completely
// before the first statement executes; a syntax error leaves all variables
// untouched. If a statement fails, assignments of preceding statements remain
// in effect.
func (intp *Interpreter) Eval(src string) (map[string]interface{}, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	result, err := g.Parse(tokens)
	if err != nil {
		return nil, err
	}
	globals := intp.env.Globals()
	assigned := make(map[string]interface{})
	for _, stmt := range result.([]*statement) {
		value, err := stmt.value(globals)
		if err != nil {
			return assigned, err
		}
		if _, err = globals.Assign(stmt.name, value); err != nil {
			return assigned, err
		}
		tracer().Debugf("%s %s := %v", stmt.span, stmt.name, value)
		assigned[stmt.name] = value
	}
	return assigned, nil
}

// Vars returns all global variables and their values.
func (intp *Interpreter) Vars() map[string]interface{} {
	vars := make(map[string]interface{})
	intp.env.Globals().Bindings().Each(func(name string, b *runtime.Binding) {
		vars[name] = b.Value
	})
	return vars
}

// Each iterates over the global variables in order of their names.
func (intp *Interpreter) Each(f func(name string, value interface{})) {
	intp.env.Globals().Bindings().Each(func(name string, b *runtime.Binding) {
		f(name, b.Value)
	})
}

// Reset drops all global variables.
func (intp *Interpreter) Reset() {
	intp.env.Reset()
}
