/*
Package runtime implements a small interpreter runtime, consisting of
scopes and bindings (variable definitions and references).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Bindings and Scope Tree

This module implements data structures for scope trees and tables of
bindings attached to them. Interpreters built on package automaton use
scopes as the environment their reducers evaluate in:

    env := runtime.NewEnvironment()
    env.Builtins().Define("pi", math.Pi).Const = true
    env.Globals().Assign("x", int64(7))
    v, err := env.Current().Lookup("x")


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'spar.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("spar.runtime")
}

// Environment is a runtime environment for an interpreter. It consists of a
// tree of scopes, with a scope for built-in bindings as the root and a scope
// for global variables as its single child.
type Environment struct {
	ScopeTree *ScopeTree  // collect scopes
	UData     interface{} // extension point
}

// NewEnvironment constructs a new runtime environment, initialized with
// scopes for built-ins and globals.
func NewEnvironment() *Environment {
	env := &Environment{ScopeTree: new(ScopeTree)}
	env.ScopeTree.PushNewScope("builtins") // root of the tree
	env.ScopeTree.PushNewScope("globals")
	return env
}

// Builtins returns the outermost scope, which holds built-in bindings.
func (env *Environment) Builtins() *Scope {
	return env.ScopeTree.Root()
}

// Globals returns the scope for global variables.
func (env *Environment) Globals() *Scope {
	return env.ScopeTree.Globals()
}

// Current returns the innermost active scope.
func (env *Environment) Current() *Scope {
	return env.ScopeTree.Current()
}

// Reset drops all scopes above the built-ins and starts with fresh globals.
func (env *Environment) Reset() {
	for env.ScopeTree.Current() != env.ScopeTree.Root() {
		env.ScopeTree.PopScope()
	}
	env.ScopeTree.PushNewScope("globals")
}
