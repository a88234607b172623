package automaton

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ErrorFormatter creates the message of a ParseError from the offending input
// symbol and the labels of all terminals acceptable at the error position.
type ErrorFormatter func(offending *Record, expected []string) string

// RuleConstructor creates the record for a reduced non-terminal, given the
// value returned by the reducer and the records of the consumed children.
type RuleConstructor func(target Symbol, value interface{}, children []*Record) *Record

// TerminalPredicate decides which transition keys of an automaton node are
// reported as acceptable labels in parse errors.
type TerminalPredicate func(Symbol) bool

// Option configures a grammar during compilation.
type Option func(*config) error

type config struct {
	errorFormatter  ErrorFormatter
	ruleConstructor RuleConstructor
	isTerminal      TerminalPredicate
}

func defaultConfig() *config {
	return &config{
		errorFormatter:  DefaultErrorFormatter,
		ruleConstructor: DefaultRuleConstructor,
		isTerminal:      Symbol.IsTerminal,
	}
}

func newConfig(opts []Option) (*config, error) {
	conf := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			return nil, &ConfigurationError{Option: "<nil>", Reason: "option may not be nil"}
		}
		if err := opt(conf); err != nil {
			return nil, err
		}
	}
	return conf, nil
}

// DefaultErrorFormatter renders the type and value of the offending symbol,
// together with the acceptable terminals.
func DefaultErrorFormatter(t *Record, expected []string) string {
	return fmt.Sprintf("error: unexpected %s type value: \"%v\", expected type [%s]",
		t.Sym.Name(), t.Value, strings.Join(expected, ","))
}

// DefaultRuleConstructor clones the last child record, replacing its symbol
// by the target non-terminal and its value by the reducer's result. The span
// of the new record covers all children.
func DefaultRuleConstructor(target Symbol, value interface{}, children []*Record) *Record {
	rec := *children[len(children)-1]
	rec.Sym = target
	rec.Value = value
	for _, ch := range children {
		rec.Span = rec.Span.Extend(ch.Span)
	}
	return &rec
}

// WithErrorFormatter sets the formatter for parse error messages.
func WithErrorFormatter(f ErrorFormatter) Option {
	return func(c *config) error {
		if f == nil {
			return &ConfigurationError{Option: OptErrorFormatter, Reason: "formatter may not be nil"}
		}
		c.errorFormatter = f
		return nil
	}
}

// WithRuleConstructor sets the constructor for records of reduced non-terminals.
func WithRuleConstructor(f RuleConstructor) Option {
	return func(c *config) error {
		if f == nil {
			return &ConfigurationError{Option: OptRuleConstructor, Reason: "constructor may not be nil"}
		}
		c.ruleConstructor = f
		return nil
	}
}

// WithTerminalPredicate sets the predicate filtering transition keys for
// error messages.
func WithTerminalPredicate(p TerminalPredicate) Option {
	return func(c *config) error {
		if p == nil {
			return &ConfigurationError{Option: OptTerminalPredicate, Reason: "predicate may not be nil"}
		}
		c.isTerminal = p
		return nil
	}
}

// Names of options for OptionsFromMap.
const (
	OptErrorFormatter    = "error-formatter"
	OptRuleConstructor   = "rule-constructor"
	OptTerminalPredicate = "terminal-predicate"
)

// OptionsFromMap translates named options into a list of options for Compile.
// Values may either be of the option's function type or plain functions of
// the same signature. Unknown option names and values of wrong type result
// in a ConfigurationError.
//
//    opts, err := OptionsFromMap(map[string]interface{}{
//        "error-formatter": func(t *Record, expected []string) string { … },
//    })
//
func OptionsFromMap(m map[string]interface{}) ([]Option, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	opts := make([]Option, 0, len(m))
	for _, name := range names {
		opt, err := namedOption(name, m[name])
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func namedOption(name string, value interface{}) (Option, error) {
	wrongType := &ConfigurationError{Option: name, Reason: fmt.Sprintf("value of unusable type %T", value)}
	switch name {
	case OptErrorFormatter:
		switch f := value.(type) {
		case ErrorFormatter:
			return WithErrorFormatter(f), nil
		case func(*Record, []string) string:
			return WithErrorFormatter(f), nil
		}
		return nil, wrongType
	case OptRuleConstructor:
		switch f := value.(type) {
		case RuleConstructor:
			return WithRuleConstructor(f), nil
		case func(Symbol, interface{}, []*Record) *Record:
			return WithRuleConstructor(f), nil
		}
		return nil, wrongType
	case OptTerminalPredicate:
		switch f := value.(type) {
		case TerminalPredicate:
			return WithTerminalPredicate(f), nil
		case func(Symbol) bool:
			return WithTerminalPredicate(f), nil
		}
		return nil, wrongType
	}
	return nil, &ConfigurationError{Option: name, Reason: "unknown option"}
}
