/*
Package spar is a shift-reduce toolbox for small languages.

SPAR compiles grammars, given as a set of non-terminal definitions with
reduction callbacks, into a shared-prefix automaton and parses token
sequences with it. The focus is on-the-fly usage: there is no code
generation step, a grammar is built from Go functions and used right away.
Package structure is as follows:

■ automaton: Package automaton implements the grammar compiler and the
shift-reduce engine driving the compiled automaton.

■ scanner: Package scanner defines the tokenizer interface the engine
consumes, together with a Go-style tokenizer and a lexmachine adapter.

■ runtime: Package runtime provides scopes and variable bindings for
interpreters built on top of the parser.

■ calc: Package calc is a small calculator language, implemented with the
other packages.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package spar
