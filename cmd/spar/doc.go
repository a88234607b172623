/*
Command spar is a command line front-end for the calculator language of
package calc, a showcase for parsers built with package automaton.

	spar eval 'x := 1 + 2; y := x * x;'   # evaluate statements
	spar repl                             # interactive mode
	spar dump                             # render the calculator's automaton

The trace level is set with flag --trace [Debug|Info|Error].

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global command tracer.
func tracer() tracing.Trace {
	return gtrace.CommandTracer
}
