package automaton

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/sets/treeset"
)

// StartName is the name of the synthetic start non-terminal wrapping the top
// non-terminal of a grammar.
const StartName = "S'"

// buildContext holds everything which is transient during compilation of a
// grammar. It is discarded when Compile returns.
type buildContext struct {
	registry map[*NonTerminal]Symbol // non-terminal identities, assigned on first sight
	defs     map[Symbol]*NonTerminal
	tries    map[Symbol]*trie  // expanded definitions
	memo     map[string]NodeID // canonical label set → node
	nodes    []*Node           // the arena
	rules    []*Rule           // all rules, in order of registration
	errs     []error           // errors collected from definitions
}

func newBuildContext() *buildContext {
	return &buildContext{
		registry: make(map[*NonTerminal]Symbol),
		defs:     make(map[Symbol]*NonTerminal),
		tries:    make(map[Symbol]*trie),
		memo:     make(map[string]NodeID),
	}
}

// A pass is a unit of work: merge a group of prefix tree nodes into the
// automaton node target.
type pass struct {
	target NodeID
	group  []*trie
}

// An edge under construction, collecting everything a node reaches under one key.
type merge struct {
	group  []*trie
	accept bool
}

// Compile builds the automaton for a grammar with top non-terminal top.
//
// Compilation starts with a synthetic rule S' ➞ top, whose completion is the
// accepting state. Work is done breadth first: for every automaton node, the
// prefix tree nodes contributing to it are merged (including the definitions
// of all non-terminals occuring as a next symbol, i.e. the closure), and the
// continuations are grouped by symbol. Every group of continuations becomes
// a successor node. Groups with identical sets of labels are compiled to a
// single node.
//
// Compile returns a ConfigurationError for unusable options and a GrammarError
// for malformed definitions.
func Compile(top *NonTerminal, opts ...Option) (*Grammar, error) {
	conf, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if top == nil {
		return nil, &GrammarError{Reason: "top non-terminal may not be nil"}
	}
	tracer().Debugf("=== compile grammar %s ===========================", top.Name())
	ctx := newBuildContext()
	start := Define(StartName, func(r Registrar) {
		r.Rule().N(top).Reduce(func(v *NodeView) (interface{}, error) {
			return v.Value(0), nil
		})
	})
	startSym := ctx.symbolFor(start)
	seed := newTrie("#")
	seed.child(startSym).accept = true
	root := ctx.newNode("#")
	worklist := linkedlistqueue.New()
	worklist.Enqueue(pass{target: root.id, group: []*trie{seed}})
	for !worklist.Empty() {
		x, _ := worklist.Dequeue()
		ctx.merge(x.(pass), worklist)
	}
	if len(ctx.errs) > 0 {
		return nil, fmt.Errorf("cannot compile grammar %s: %w", top.Name(), errors.Join(ctx.errs...))
	}
	g := &Grammar{
		name:     top.Name(),
		nodes:    ctx.nodes,
		root:     root.id,
		start:    startSym,
		top:      ctx.registry[top],
		rules:    ctx.rules,
		registry: ctx.registry,
		conf:     conf,
	}
	tracer().Infof("grammar %s compiled: %d nodes, %d rules", g.name, len(g.nodes), len(g.rules))
	return g, nil
}

// merge performs a pass.
func (ctx *buildContext) merge(p pass, worklist *linkedlistqueue.Queue) {
	node := ctx.nodes[p.target]
	edges := linkedhashmap.New() // Symbol → *merge, in order of appearance
	expanded := hashset.New()
	group := linkedlistqueue.New()
	for _, t := range p.group {
		group.Enqueue(t)
	}
	for !group.Empty() {
		x, _ := group.Dequeue()
		t := x.(*trie)
		if t.rule != nil {
			if node.completion == nil {
				node.completion = t.rule
			} else if node.completion != t.rule {
				tracer().Infof("node %d: %v completes, too; keeping %v", node.id, t.rule, node.completion)
			}
		}
		for _, sym := range t.keys {
			if sym.IsNonTerminal() && !expanded.Contains(sym) {
				expanded.Add(sym)
				group.Enqueue(ctx.expand(sym))
			}
			var m *merge
			if x, ok := edges.Get(sym); ok {
				m = x.(*merge)
			} else {
				m = &merge{}
				edges.Put(sym, m)
			}
			if ch := t.next[sym]; ch.accept {
				m.accept = true
			} else {
				m.group = append(m.group, ch)
			}
		}
	}
	it := edges.Iterator()
	for it.Next() {
		sym, m := it.Key().(Symbol), it.Value().(*merge)
		if m.accept {
			node.addEdge(sym, AcceptNode)
			continue
		}
		key := labelSet(m.group)
		target, ok := ctx.memo[key]
		if !ok {
			target = ctx.newNode(key).id
			ctx.memo[key] = target
			worklist.Enqueue(pass{target: target, group: m.group})
		}
		node.addEdge(sym, target)
	}
}

// expand returns the prefix tree of a non-terminal's alternatives. The
// definition of a non-terminal is called at most once per compilation.
func (ctx *buildContext) expand(sym Symbol) *trie {
	if t, ok := ctx.tries[sym]; ok {
		return t
	}
	nt := ctx.defs[sym]
	reg := &registrar{
		ctx:    ctx,
		target: sym,
		root:   newTrie(fmt.Sprintf("%s#%d", sym.Name(), sym.id)),
	}
	ctx.tries[sym] = reg.root
	if nt.define == nil {
		reg.fail("non-terminal declared, but never defined")
		return reg.root
	}
	tracer().Debugf("expanding non-terminal %s", sym.Name())
	nt.define(reg)
	return reg.root
}

// symbolFor returns the symbol for a non-terminal, assigning a new ID if the
// non-terminal is seen for the first time.
func (ctx *buildContext) symbolFor(nt *NonTerminal) Symbol {
	if sym, ok := ctx.registry[nt]; ok {
		return sym
	}
	sym := Symbol{kind: nonTerminalSym, id: len(ctx.registry), name: nt.name}
	ctx.registry[nt] = sym
	ctx.defs[sym] = nt
	return sym
}

func (ctx *buildContext) newNode(labels string) *Node {
	node := &Node{
		id:     NodeID(len(ctx.nodes)),
		labels: labels,
		edges:  make(map[Symbol]NodeID),
	}
	ctx.nodes = append(ctx.nodes, node)
	return node
}

func (ctx *buildContext) newRule(target Symbol, reduce Reducer, arity int) *Rule {
	r := &Rule{
		target:  target,
		reducer: reduce,
		arity:   arity,
		serial:  len(ctx.rules),
	}
	ctx.rules = append(ctx.rules, r)
	return r
}

// labelSet is the canonical key for a group of prefix tree nodes: the sorted
// labels, joined by ';'.
func labelSet(group []*trie) string {
	labels := treeset.NewWithStringComparator()
	for _, t := range group {
		labels.Add(t.label)
	}
	var b strings.Builder
	for i, l := range labels.Values() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(l.(string))
	}
	return b.String()
}
