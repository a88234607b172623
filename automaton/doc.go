/*
Package automaton implements a grammar compiler for shared-prefix automata
and a shift-reduce engine driving them.

Building a Grammar

Grammars are specified as a set of non-terminal definitions. A definition
is a Go function receiving a Registrar, which is used to add alternatives
for the non-terminal. Every alternative is paired with a reducer, i.e. a
semantic action called when the alternative has been recognized.
Terminals are given by their token type; non-terminals are referenced by
their *NonTerminal. Non-terminals which are referenced before they are
defined (e.g., for mutual recursion) are declared first and defined later.

Example:

    var sum = automaton.Declare("Sum")
    num := automaton.Define("Num", func(r automaton.Registrar) {
        r.Rule().T("NUMBER").Reduce(func(v *automaton.NodeView) (interface{}, error) {
            return v.Value(0), nil                 // Num  ➞  number
        })
        r.Rule().T("(").N(sum).T(")").Reduce(func(v *automaton.NodeView) (interface{}, error) {
            return v.Value(1), nil                 // Num  ➞  ( Sum )
        })
    })
    sum.Define(func(r automaton.Registrar) {
        r.Rule().N(num).Reduce(pass)               // Sum  ➞  Num
        r.Rule().N(sum).T("+").N(num).Reduce(add)  // Sum  ➞  Sum + Num
    })
    g, err := automaton.Compile(sum)

Compiling a grammar merges the alternatives of all non-terminals reachable
from the top non-terminal into a single automaton. Alternatives sharing a
prefix share the automaton nodes for this prefix, and groups of alternatives
which continue identically are compiled to one and the same node.

Parsing

The engine receives a fully materialized token sequence and drives the
automaton with a classic shift-reduce loop:

    result, err := g.Parse(tokens)

Reducers fire bottom-up, i.e. every reducer sees the values of its children
already synthesized. The value of the top non-terminal is the result of the
parse.

There is no lookahead other than the current token, no conflict detection
and no error recovery. If more than one alternative completes in the same
automaton node, the alternative registered first wins.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automaton

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'spar.automaton'.
func tracer() tracing.Trace {
	return tracing.Select("spar.automaton")
}
