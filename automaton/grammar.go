package automaton

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// NodeID addresses a node within the node table of a grammar.
type NodeID int

// AcceptNode is the accept sentinel. It is reached from the root node of a
// grammar by the synthetic start symbol, and only at the end of input.
const AcceptNode NodeID = -1

// Node is a node of a compiled automaton. It maps symbols to successor nodes
// (shift) and may carry one completion (reduce).
type Node struct {
	id         NodeID
	labels     string // canonical label set this node has been created for
	keys       []Symbol
	edges      map[Symbol]NodeID
	completion *Rule
}

func (n *Node) addEdge(sym Symbol, target NodeID) {
	if _, ok := n.edges[sym]; !ok {
		n.keys = append(n.keys, sym)
	}
	n.edges[sym] = target
}

// ID returns the ID of a node.
func (n *Node) ID() NodeID {
	return n.id
}

// Labels returns the canonical set of prefix tree labels a node has been
// created for. It is mainly useful for debugging.
func (n *Node) Labels() string {
	return n.labels
}

// Keys returns the transition keys of a node, in order of construction.
func (n *Node) Keys() []Symbol {
	return slices.Clone(n.keys)
}

// Next returns the successor node for a symbol.
func (n *Node) Next(sym Symbol) (NodeID, bool) {
	id, ok := n.edges[sym]
	return id, ok
}

// Completion returns the rule to reduce in this node, or nil.
func (n *Node) Completion() *Rule {
	return n.completion
}

func (n *Node) String() string {
	return fmt.Sprintf("(node %d | %d edges)", n.id, len(n.keys))
}

// Grammar is a compiled automaton. Create one with Compile.
//
// A grammar is immutable. It may be used by concurrent parses without
// further synchronization.
type Grammar struct {
	name     string
	nodes    []*Node // node table, indexed by NodeID
	root     NodeID
	start    Symbol // synthetic start symbol S'
	top      Symbol
	rules    []*Rule
	registry map[*NonTerminal]Symbol
	conf     *config
}

// Name returns the name of the grammar, i.e. the name of its top non-terminal.
func (g *Grammar) Name() string {
	return g.name
}

// Root returns the ID of the start node.
func (g *Grammar) Root() NodeID {
	return g.root
}

// Node returns the node for an ID, or nil for the accept sentinel and for
// unknown IDs.
func (g *Grammar) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Size returns the number of nodes of the automaton.
func (g *Grammar) Size() int {
	return len(g.nodes)
}

// Start returns the synthetic start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Top returns the symbol of the top non-terminal.
func (g *Grammar) Top() Symbol {
	return g.top
}

// SymbolFor returns the symbol a non-terminal has been compiled to. Returns
// false if the non-terminal is not part of the grammar.
func (g *Grammar) SymbolFor(nt *NonTerminal) (Symbol, bool) {
	sym, ok := g.registry[nt]
	return sym, ok
}

// RuleCount returns the number of rules (alternatives) of the grammar,
// including the synthetic start rule.
func (g *Grammar) RuleCount() int {
	return len(g.rules)
}

// Terminals returns the sorted token types of all terminals of the grammar.
func (g *Grammar) Terminals() []string {
	seen := make(map[string]bool)
	var terms []string
	for _, n := range g.nodes {
		for _, sym := range n.keys {
			if sym.IsTerminal() && !seen[sym.name] {
				seen[sym.name] = true
				terms = append(terms, sym.name)
			}
		}
	}
	slices.Sort(terms)
	return terms
}

// expected returns the sorted labels of all keys of node n which pass the
// terminal predicate.
func (g *Grammar) expected(n *Node) []string {
	labels := make([]string, 0, len(n.keys))
	for _, sym := range n.keys {
		if g.conf.isTerminal(sym) {
			labels = append(labels, sym.Name())
		}
	}
	slices.Sort(labels)
	return labels
}
