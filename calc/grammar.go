package calc

import (
	"fmt"
	"sync"

	"github.com/npillmayer/spar"
	"github.com/npillmayer/spar/automaton"
	"github.com/npillmayer/spar/runtime"
)

// Expressions are compiled into closures, evaluated in a scope.
type expr func(*runtime.Scope) (interface{}, error)

// A statement binds the value of an expression to a name.
type statement struct {
	name  string
	value expr
	span  spar.Span
}

var grammar *automaton.Grammar
var grammarErr error
var grammarOnce sync.Once

// Grammar returns the compiled grammar of the calculator language.
// It is compiled once, on first use.
func Grammar() (*automaton.Grammar, error) {
	grammarOnce.Do(func() {
		grammar, grammarErr = automaton.Compile(makeProgram())
		if grammarErr != nil {
			tracer().Errorf("cannot compile calculator grammar: %v", grammarErr)
		}
	})
	return grammar, grammarErr
}

func makeProgram() *automaton.NonTerminal {
	additive := automaton.Declare("Additive")
	multiplicative := automaton.Declare("Multiplicative")
	unary := automaton.Declare("Unary")
	primary := automaton.Declare("Primary")
	stmt := automaton.Define("Statement", func(r automaton.Registrar) {
		r.Rule().T(ID).T(ASSIGN).N(additive).T(END).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			return &statement{
				name:  v.Value(0).(string),
				value: v.Value(2).(expr),
				span:  v.Span(),
			}, nil
		})
	})
	program := automaton.Declare("Program")
	program.Define(func(r automaton.Registrar) {
		r.Rule().N(stmt).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			return []*statement{v.Value(0).(*statement)}, nil
		})
		r.Rule().N(program).N(stmt).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			return append(v.Value(0).([]*statement), v.Value(1).(*statement)), nil
		})
	})
	additive.Define(func(r automaton.Registrar) {
		r.Rule().N(multiplicative).Reduce(passThrough)
		r.Rule().N(additive).T(PLUS).N(multiplicative).Reduce(binary(add))
		r.Rule().N(additive).T(MINUS).N(multiplicative).Reduce(binary(sub))
	})
	multiplicative.Define(func(r automaton.Registrar) {
		r.Rule().N(unary).Reduce(passThrough)
		r.Rule().N(multiplicative).T(MUL).N(unary).Reduce(binary(mul))
		r.Rule().N(multiplicative).T(DIV).N(unary).Reduce(binary(div))
	})
	unary.Define(func(r automaton.Registrar) {
		r.Rule().N(primary).Reduce(passThrough)
		r.Rule().T(MINUS).N(primary).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			operand := v.Value(1).(expr)
			return expr(func(sc *runtime.Scope) (interface{}, error) {
				x, err := operand(sc)
				if err != nil {
					return nil, err
				}
				return neg(x)
			}), nil
		})
		r.Rule().T(PLUS).N(primary).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			return v.Value(1), nil
		})
	})
	primary.Define(func(r automaton.Registrar) {
		r.Rule().T(NUMBER).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			n := v.Value(0)
			if n == nil {
				return nil, fmt.Errorf("%s: malformed number", v.Span())
			}
			return expr(func(*runtime.Scope) (interface{}, error) {
				return n, nil
			}), nil
		})
		r.Rule().T(ID).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			name, span := v.Value(0).(string), v.Span()
			return expr(func(sc *runtime.Scope) (interface{}, error) {
				x, err := sc.Lookup(name)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", span, err)
				}
				return x, nil
			}), nil
		})
		r.Rule().T(BPAREN).N(additive).T(EPAREN).Reduce(func(v *automaton.NodeView) (interface{}, error) {
			return v.Value(1), nil
		})
	})
	return program
}

func passThrough(v *automaton.NodeView) (interface{}, error) {
	return v.Value(0), nil
}

// binary creates a reducer for binary operators. The position of the operator
// is reported for arithmetic errors.
func binary(op func(x, y interface{}) (interface{}, error)) automaton.Reducer {
	return func(v *automaton.NodeView) (interface{}, error) {
		left, right, span := v.Value(0).(expr), v.Value(2).(expr), v.Get(1).Span
		return expr(func(sc *runtime.Scope) (interface{}, error) {
			x, err := left(sc)
			if err != nil {
				return nil, err
			}
			y, err := right(sc)
			if err != nil {
				return nil, err
			}
			z, err := op(x, y)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", span, err)
			}
			return z, nil
		}), nil
	}
}
