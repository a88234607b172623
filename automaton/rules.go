package automaton

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/spar"
)

// --- Non-terminals ---------------------------------------------------------

// Definition is a function defining the alternatives of a non-terminal.
// It is called exactly once per grammar compilation.
type Definition func(Registrar)

// NonTerminal is a named grammar category. Its alternatives are supplied by a
// Definition. Create non-terminals with Declare or Define.
type NonTerminal struct {
	name   string
	define Definition
}

// Declare creates a non-terminal without a definition. This is useful for
// non-terminals which have to be referenced before they can be defined, e.g.
// for mutually recursive non-terminals. A definition has to be attached with
// NonTerminal.Define before compiling a grammar.
func Declare(name string) *NonTerminal {
	return &NonTerminal{name: name}
}

// Define creates a non-terminal with a definition.
func Define(name string, def Definition) *NonTerminal {
	return Declare(name).Define(def)
}

// Define attaches a definition to a (previously declared) non-terminal.
// Returns the non-terminal (for chaining).
func (nt *NonTerminal) Define(def Definition) *NonTerminal {
	nt.define = def
	return nt
}

// Name returns the name of a non-terminal.
func (nt *NonTerminal) Name() string {
	return nt.name
}

func (nt *NonTerminal) String() string {
	return nt.name
}

// --- Rules -----------------------------------------------------------------

// Reducer is a semantic action for an alternative. It receives a view of the
// children records and returns the value for the reduced non-terminal.
// Errors returned by a reducer abort the parse and are passed to the client
// unchanged.
type Reducer func(*NodeView) (interface{}, error)

// Rule is the completion entry of an automaton node: reduce the recent
// Arity symbols to Target.
type Rule struct {
	target  Symbol
	reducer Reducer
	arity   int
	serial  int // order of registration during compilation
}

// Target returns the non-terminal a rule reduces to.
func (r *Rule) Target() Symbol {
	return r.target
}

// Arity returns the number of symbols a rule consumes.
func (r *Rule) Arity() int {
	return r.arity
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s (%d)", r.target.Name(), r.arity)
}

// --- Registrar -------------------------------------------------------------

// Seq is a sequence of grammar symbols, used as an alternative for
// Registrar.Register. Elements are strings or spar.TokTypes for terminals, and
// *NonTerminal for non-terminals.
type Seq []interface{}

// Registrar is handed to non-terminal definitions to add alternatives.
//
// Alternatives may either be added fluently
//
//    r.Rule().T("ID").T("ASSIGN").N(expr).T("END").Reduce(assign)
//
// or as a list of sequences sharing one reducer
//
//    r.Register(first, Seq{"NUMBER"}, Seq{"ID"})
//
// Alternatives with overlapping prefixes are the means for expressing
// alternation.
type Registrar interface {
	Rule() *Alternatives
	Register(reduce Reducer, alternatives ...Seq)
}

// Alternatives is a builder for one or more alternatives sharing a reducer.
// It is created by Registrar.Rule and completed by Reduce.
type Alternatives struct {
	reg  *registrar
	seqs [][]Symbol
}

// T appends a terminal to the current alternative.
func (alt *Alternatives) T(tt spar.TokType) *Alternatives {
	alt.append(Terminal(tt))
	return alt
}

// N appends a non-terminal to the current alternative.
func (alt *Alternatives) N(nt *NonTerminal) *Alternatives {
	if nt == nil {
		alt.reg.fail("reference to nil non-terminal")
		return alt
	}
	alt.append(alt.reg.ctx.symbolFor(nt))
	return alt
}

// Or starts another alternative, which will share the reducer.
func (alt *Alternatives) Or() *Alternatives {
	alt.seqs = append(alt.seqs, nil)
	return alt
}

// Reduce completes the alternatives, attaching a reducer to them.
func (alt *Alternatives) Reduce(reduce Reducer) {
	for _, seq := range alt.seqs {
		alt.reg.add(seq, reduce)
	}
	alt.seqs = nil
}

func (alt *Alternatives) append(sym Symbol) {
	last := len(alt.seqs) - 1
	alt.seqs[last] = append(alt.seqs[last], sym)
}

// registrar implements Registrar. It collects the alternatives of one
// non-terminal into a prefix tree.
type registrar struct {
	ctx    *buildContext
	target Symbol
	root   *trie
}

var _ Registrar = (*registrar)(nil)

func (reg *registrar) Rule() *Alternatives {
	return &Alternatives{reg: reg, seqs: make([][]Symbol, 1)}
}

func (reg *registrar) Register(reduce Reducer, alternatives ...Seq) {
	for _, seq := range alternatives {
		syms := make([]Symbol, 0, len(seq))
		for _, x := range seq {
			switch s := x.(type) {
			case string:
				syms = append(syms, Terminal(spar.TokType(s)))
			case spar.TokType:
				syms = append(syms, Terminal(s))
			case *NonTerminal:
				if s == nil {
					reg.fail("reference to nil non-terminal")
					return
				}
				syms = append(syms, reg.ctx.symbolFor(s))
			default:
				reg.fail(fmt.Sprintf("cannot use %T as a grammar symbol", x))
				return
			}
		}
		reg.add(syms, reduce)
	}
}

// add inserts an alternative into the prefix tree of the non-terminal.
func (reg *registrar) add(seq []Symbol, reduce Reducer) {
	if len(seq) == 0 {
		reg.fail("empty alternative")
		return
	}
	if reduce == nil {
		reg.fail("alternative without reducer")
		return
	}
	t := reg.root
	for _, sym := range seq {
		t = t.child(sym)
	}
	if t.rule != nil { // alternative registered twice: first one wins
		tracer().Infof("%s has duplicate alternative %v, ignoring it", reg.target.Name(), seq)
		return
	}
	t.rule = reg.ctx.newRule(reg.target, reduce, len(seq))
	tracer().Debugf("%s ➞ %v", reg.target.Name(), seq)
}

func (reg *registrar) fail(reason string) {
	reg.ctx.errs = append(reg.ctx.errs, &GrammarError{
		NonTerminal: reg.target.Name(),
		Reason:      reason,
	})
}

// --- Prefix trees ----------------------------------------------------------

// trie is the prefix tree of the alternatives of a non-terminal. Every trie
// node carries a label which is unique within a compilation; the set of
// labels of the trie nodes merged into an automaton node identifies the
// automaton node.
type trie struct {
	label  string
	keys   []Symbol // insertion order
	next   map[Symbol]*trie
	rule   *Rule // completion, if any
	accept bool  // the accept sentinel
}

func newTrie(label string) *trie {
	return &trie{
		label: label,
		next:  make(map[Symbol]*trie),
	}
}

func (t *trie) child(sym Symbol) *trie {
	if ch, ok := t.next[sym]; ok {
		return ch
	}
	ch := newTrie(t.label + "'" + strconv.Itoa(len(t.keys)))
	t.keys = append(t.keys, sym)
	t.next[sym] = ch
	return ch
}
