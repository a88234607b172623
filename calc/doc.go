/*
Package calc implements a small calculator language on top of package automaton.

A program is a sequence of assignments, each terminated by a semicolon:

    x := 1 + 2 * 3;
    y := (x - 1) / 2;
    area := pi * y * y;

Expressions support the operators + - * / with the usual precedence, unary
signs and parentheses. Numbers are integers or decimals; integer arithmetic
stays integral as long as results are exact. Variables are bound in a
global scope, which outlives single calls to Eval. The constants pi and e
are pre-defined and may not be re-assigned.

The grammar is

    Program        ➞ Statement  |  Program Statement
    Statement      ➞ ID := Additive ;
    Additive       ➞ Multiplicative  |  Additive + Multiplicative  |  Additive - Multiplicative
    Multiplicative ➞ Unary  |  Multiplicative * Unary  |  Multiplicative / Unary
    Unary          ➞ Primary  |  - Primary  |  + Primary
    Primary        ➞ NUMBER  |  ID  |  ( Additive )

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'spar.calc'.
func tracer() tracing.Trace {
	return tracing.Select("spar.calc")
}
