package automaton

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by parsers for token sequences without any tokens.
var ErrEmptyInput = errors.New("empty input: token sequence has no elements")

// ConfigurationError is returned by Compile for options which are unknown or
// carry an unusable value.
type ConfigurationError struct {
	Option string // name of the offending option
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: option '%s': %s", e.Option, e.Reason)
}

// GrammarError is returned by Compile for malformed non-terminal definitions.
type GrammarError struct {
	NonTerminal string // name of the offending non-terminal, if any
	Reason      string
}

func (e *GrammarError) Error() string {
	if e.NonTerminal == "" {
		return "grammar error: " + e.Reason
	}
	return fmt.Sprintf("grammar error in %s: %s", e.NonTerminal, e.Reason)
}

// ParseError is returned by parsers if the input is not a sentence of the
// grammar. The parse stops at the first error.
type ParseError struct {
	Offending *Record  // the input symbol the parser could not handle
	Expected  []string // sorted labels of terminals which would have been acceptable
	Message   string   // message created by the grammar's error formatter
}

func (e *ParseError) Error() string {
	return e.Message
}
