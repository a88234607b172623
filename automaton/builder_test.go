package automaton

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCompileSharesNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	top, _ := sumGrammar()
	g, err := Compile(top)
	if err != nil {
		t.Fatal(err)
	}
	root := g.Node(g.Root())
	number, ok := root.Next(Terminal("NUMBER"))
	if !ok {
		t.Fatalf("expected root to have an edge for NUMBER")
	}
	additive, ok := root.Next(g.Top())
	if !ok {
		t.Fatalf("expected root to have an edge for %v", g.Top())
	}
	plus, ok := g.Node(additive).Next(Terminal("PLUS"))
	if !ok {
		t.Fatalf("expected an edge for PLUS after %v", g.Top())
	}
	numberAfterPlus, ok := g.Node(plus).Next(Terminal("NUMBER"))
	if !ok {
		t.Fatalf("expected an edge for NUMBER after PLUS")
	}
	if number != numberAfterPlus {
		t.Errorf("expected NUMBER to lead to shared node %d, have %d", number, numberAfterPlus)
	}
	if c := g.Node(number).Completion(); c == nil || c.Arity() != 1 || c.Target().Name() != "Unary" {
		t.Errorf("expected shared node to complete Unary (1), have %v", c)
	}
	if accept, _ := root.Next(g.Start()); accept != AcceptNode {
		t.Errorf("expected start symbol to lead to accept, leads to %d", accept)
	}
	if g.Node(AcceptNode) != nil {
		t.Errorf("expected accept sentinel not to be a node")
	}
}

func TestCompileExpandsDefinitionsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	h := newHooks()
	top, _ := statementGrammar(h)
	if _, err := Compile(top); err != nil {
		t.Fatal(err)
	}
	for name, count := range h.defCalls {
		if count != 1 {
			t.Errorf("expected definition of %s to be called once, was called %d times", name, count)
		}
	}
	if len(h.defCalls) != 5 {
		t.Errorf("expected 5 definitions to be called, have %v", h.defCalls)
	}
	if _, err := Compile(top); err != nil { // separate compilation, separate caches
		t.Fatal(err)
	}
	if h.defCalls["Primary"] != 2 {
		t.Errorf("expected second compilation to call definitions again")
	}
}

func TestCompileRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	top, nts := statementGrammar(newHooks())
	g, err := Compile(top)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[Symbol]bool)
	for name, nt := range nts {
		sym, ok := g.SymbolFor(nt)
		if !ok {
			t.Errorf("expected %s to be registered", name)
			continue
		}
		if !sym.IsNonTerminal() || sym.Name() != name {
			t.Errorf("unexpected symbol %v for %s", sym, name)
		}
		if seen[sym] {
			t.Errorf("symbol %v assigned twice", sym)
		}
		seen[sym] = true
	}
	if _, ok := g.SymbolFor(Declare("Additive")); ok {
		t.Errorf("expected a non-terminal of the same name to be a different non-terminal")
	}
	// 1 start rule + 1 + 3 + 3 + 3 + 2
	if g.RuleCount() != 13 {
		t.Errorf("expected 13 rules, have %d", g.RuleCount())
	}
	terms := strings.Join(g.Terminals(), " ")
	if terms != "ASSIGN BPAREN DIV END EPAREN ID MINUS MUL NUMBER PLUS" {
		t.Errorf("unexpected terminals: %s", terms)
	}
	if g.Name() != "Statement" {
		t.Errorf("expected grammar to be named after its top non-terminal, is %s", g.Name())
	}
}

func TestCompileFirstAlternativeWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	a := Define("A", func(r Registrar) {
		r.Rule().T("ID").Reduce(func(v *NodeView) (interface{}, error) { return "first", nil })
		r.Rule().T("ID").Reduce(func(v *NodeView) (interface{}, error) { return "second", nil })
	})
	b := Define("B", func(r Registrar) {
		r.Rule().T("ID").Reduce(func(v *NodeView) (interface{}, error) { return "B", nil })
	})
	top := Define("Top", func(r Registrar) {
		r.Rule().N(a).Or().N(b).Reduce(first)
	})
	g, err := Compile(top)
	if err != nil {
		t.Fatal(err)
	}
	result, err := g.Parse(tokenize(t, "x"))
	if err != nil {
		t.Fatal(err)
	}
	if result != "first" {
		t.Errorf("expected first registered alternative to win, have %v", result)
	}
}

func TestCompileGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	undefined := Declare("Undefined")
	grammars := map[string]*NonTerminal{
		"undefined": Define("S", func(r Registrar) {
			r.Register(first, Seq{undefined})
		}),
		"empty": Define("S", func(r Registrar) {
			r.Register(first, Seq{})
		}),
		"no reducer": Define("S", func(r Registrar) {
			r.Register(nil, Seq{"X"})
		}),
		"wrong type": Define("S", func(r Registrar) {
			r.Register(first, Seq{"X", 42})
		}),
		"nil non-terminal": Define("S", func(r Registrar) {
			r.Rule().T("X").N(nil).Reduce(first)
		}),
	}
	for name, top := range grammars {
		_, err := Compile(top)
		var gerr *GrammarError
		if !errors.As(err, &gerr) {
			t.Errorf("%s: expected grammar error, have %v", name, err)
			continue
		}
		t.Logf("%s: %v", name, err)
	}
	if _, err := Compile(nil); err == nil {
		t.Errorf("expected error for nil top non-terminal")
	}
}

func TestDumpMarksRepeatedNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.automaton")
	defer teardown()
	//
	top, _ := sumGrammar()
	g, err := Compile(top)
	if err != nil {
		t.Fatal(err)
	}
	ll := g.LeveledList()
	var repeated, accept, completions int
	for _, item := range ll {
		switch {
		case strings.Contains(item.Text, "(repeated)"):
			repeated++
		case strings.Contains(item.Text, "accept"):
			accept++
		case strings.HasPrefix(item.Text, "·"):
			completions++
		}
	}
	if repeated == 0 || accept != 1 {
		t.Errorf("expected repeated nodes and one accept edge, have %d and %d", repeated, accept)
	}
	if completions != 7 {
		t.Errorf("expected 7 completions in dump, have %d", completions)
	}
	g.Dump()
}
