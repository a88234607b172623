package automaton

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/pterm/pterm"
)

// LeveledList creates a leveled list of the automaton, suitable for rendering
// as a tree. Nodes are visited depth first, starting at the root. A node
// reachable from more than one parent is rendered once; later occurences are
// marked as repeated. Completions are rendered as '· ➞ Target (arity)'.
func (g *Grammar) LeveledList() pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: fmt.Sprintf("%s [%d]", g.name, g.root)}}
	visited := map[NodeID]bool{g.root: true}
	return g.dumpNode(g.nodes[g.root], ll, 1, visited)
}

func (g *Grammar) dumpNode(n *Node, ll pterm.LeveledList, level int, visited map[NodeID]bool) pterm.LeveledList {
	if n.completion != nil {
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("· ➞ %s (%d)", n.completion.target.Name(), n.completion.arity),
		})
	}
	for _, sym := range n.keys {
		target := n.edges[sym]
		var text string
		switch {
		case target == AcceptNode:
			text = fmt.Sprintf("%v ➞ accept", sym)
		case visited[target]:
			text = fmt.Sprintf("%v [%d] (repeated)", sym, target)
		default:
			text = fmt.Sprintf("%v [%d]", sym, target)
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
		if target != AcceptNode && !visited[target] {
			visited[target] = true
			ll = g.dumpNode(g.nodes[target], ll, level+1, visited)
		}
	}
	return ll
}

// Dump renders the automaton as a tree to stdout. It is a debugging helper.
func (g *Grammar) Dump() {
	root := pterm.NewTreeFromLeveledList(g.LeveledList())
	pterm.DefaultTree.WithRoot(root).Render()
}

// Shape of a grammar, for hashing.
type grammarShape struct {
	Name  string
	Root  int
	Nodes []nodeShape
}

type nodeShape struct {
	Edges      []string
	Completion string
}

// Fingerprint returns a hash of the structure of the automaton. Compiling
// the same definitions always results in the same fingerprint.
func (g *Grammar) Fingerprint() string {
	shape := grammarShape{Name: g.name, Root: int(g.root), Nodes: make([]nodeShape, len(g.nodes))}
	for i, n := range g.nodes {
		ns := nodeShape{Edges: make([]string, len(n.keys))}
		for j, sym := range n.keys {
			ns.Edges[j] = fmt.Sprintf("%v→%d", sym, n.edges[sym])
		}
		if n.completion != nil {
			ns.Completion = n.completion.String()
		}
		shape.Nodes[i] = ns
	}
	hash, err := structhash.Hash(shape, 1)
	if err != nil { // cannot happen for plain structs
		tracer().Errorf("cannot hash grammar %s: %v", g.name, err)
		return ""
	}
	return hash
}
