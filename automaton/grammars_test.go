package automaton

import (
	"testing"

	"github.com/npillmayer/spar"
	"github.com/npillmayer/spar/scanner"
	"github.com/npillmayer/spar/scanner/lexmach"
)

// --- Tokenizing test input -------------------------------------------------

var testLexer *lexmach.LMAdapter

func tokenize(t *testing.T, input string) []spar.Token {
	t.Helper()
	if testLexer == nil {
		init := func(lm *lexmach.LMAdapter) {
			lm.Lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), lm.MakeToken("NUMBER", lexmach.Number))
			lm.Lexer.Add([]byte(`\:\=`), lm.MakeToken("ASSIGN", nil))
			lm.Lexer.Add([]byte(`\;`), lm.MakeToken("END", nil))
			lm.Lexer.Add([]byte(`\,`), lm.MakeToken("COMMA", nil))
			lm.Lexer.Add([]byte(`[A-Za-z][A-Za-z0-9]*`), lm.MakeToken("ID", nil))
			lm.Lexer.Add([]byte(`\(`), lm.MakeToken("BPAREN", nil))
			lm.Lexer.Add([]byte(`\)`), lm.MakeToken("EPAREN", nil))
			lm.Lexer.Add([]byte(`\+`), lm.MakeToken("PLUS", nil))
			lm.Lexer.Add([]byte(`\-`), lm.MakeToken("MINUS", nil))
			lm.Lexer.Add([]byte(`\*`), lm.MakeToken("MUL", nil))
			lm.Lexer.Add([]byte(`\/`), lm.MakeToken("DIV", nil))
			lm.Lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		lm, err := lexmach.NewLMAdapter(init, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		testLexer = lm
	}
	sc, err := testLexer.Scanner(input)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := scanner.Materialize(sc)
	if err != nil {
		t.Fatal(err)
	}
	return tokens
}

// --- Grammars --------------------------------------------------------------

// hooks lets tests observe reductions.
type hooks struct {
	reductions int
	leaves     int
	arityFails int
	defCalls   map[string]int
}

func newHooks() *hooks {
	return &hooks{defCalls: make(map[string]int)}
}

// wrap instruments a reducer: it counts reductions and terminal children and
// checks the arity of the reduction.
func (h *hooks) wrap(arity int, r Reducer) Reducer {
	return func(v *NodeView) (interface{}, error) {
		h.reductions++
		if v.Len() != arity {
			h.arityFails++
		}
		for i := 0; i < v.Len(); i++ {
			if v.Get(i).Sym.IsTerminal() {
				h.leaves++
			}
		}
		return r(v)
	}
}

func first(v *NodeView) (interface{}, error) {
	return v.Value(0), nil
}

func second(v *NodeView) (interface{}, error) {
	return v.Value(1), nil
}

func assignment(v *NodeView) (interface{}, error) {
	return map[string]interface{}{v.Value(0).(string): v.Value(2)}, nil
}

func arith(op func(a, b int64) int64) Reducer {
	return func(v *NodeView) (interface{}, error) {
		return op(v.Value(0).(int64), v.Value(2).(int64)), nil
	}
}

func negate(v *NodeView) (interface{}, error) {
	return -v.Value(1).(int64), nil
}

// statementGrammar creates
//
//    Statement      ➞ ID ASSIGN Additive END
//    Additive       ➞ Multiplicative | Additive PLUS Multiplicative | Additive MINUS Multiplicative
//    Multiplicative ➞ Unary | Multiplicative MUL Unary | Multiplicative DIV Unary
//    Unary          ➞ Primary | MINUS Primary | PLUS Primary
//    Primary        ➞ NUMBER | BPAREN Additive EPAREN
//
func statementGrammar(h *hooks) (*NonTerminal, map[string]*NonTerminal) {
	additive := Declare("Additive")
	multiplicative := Declare("Multiplicative")
	unary := Declare("Unary")
	primary := Declare("Primary")
	statement := Define("Statement", func(r Registrar) {
		h.defCalls["Statement"]++
		r.Register(h.wrap(4, assignment), Seq{"ID", "ASSIGN", additive, "END"})
	})
	additive.Define(func(r Registrar) {
		h.defCalls["Additive"]++
		r.Register(h.wrap(1, first), Seq{multiplicative})
		r.Register(h.wrap(3, arith(func(a, b int64) int64 { return a + b })), Seq{additive, "PLUS", multiplicative})
		r.Register(h.wrap(3, arith(func(a, b int64) int64 { return a - b })), Seq{additive, "MINUS", multiplicative})
	})
	multiplicative.Define(func(r Registrar) {
		h.defCalls["Multiplicative"]++
		r.Register(h.wrap(1, first), Seq{unary})
		r.Register(h.wrap(3, arith(func(a, b int64) int64 { return a * b })), Seq{multiplicative, "MUL", unary})
		r.Register(h.wrap(3, func(v *NodeView) (interface{}, error) {
			d := v.Value(2).(int64)
			if d == 0 {
				return nil, errDivisionByZero
			}
			return v.Value(0).(int64) / d, nil
		}), Seq{multiplicative, "DIV", unary})
	})
	unary.Define(func(r Registrar) {
		h.defCalls["Unary"]++
		r.Register(h.wrap(1, first), Seq{primary})
		r.Register(h.wrap(2, negate), Seq{"MINUS", primary})
		r.Register(h.wrap(2, second), Seq{"PLUS", primary})
	})
	primary.Define(func(r Registrar) {
		h.defCalls["Primary"]++
		r.Register(h.wrap(1, first), Seq{"NUMBER"})
		r.Register(h.wrap(3, second), Seq{"BPAREN", additive, "EPAREN"})
	})
	return statement, map[string]*NonTerminal{
		"Additive":       additive,
		"Multiplicative": multiplicative,
		"Unary":          unary,
		"Primary":        primary,
	}
}

// listGrammar creates
//
//    Statement      ➞ ID ASSIGN Expression END
//    Expression     ➞ NUMBER | ID | NUMBER COMMA ExpressionList | ID COMMA ExpressionList
//    ExpressionList ➞ NUMBER | ID | NUMBER COMMA ExpressionList | ID COMMA ExpressionList
//
func listGrammar() *NonTerminal {
	cons := func(v *NodeView) (interface{}, error) {
		return append([]interface{}{v.Value(0)}, v.Value(2).([]interface{})...), nil
	}
	list := Declare("ExpressionList")
	list.Define(func(r Registrar) {
		r.Register(func(v *NodeView) (interface{}, error) {
			return []interface{}{v.Value(0)}, nil
		}, Seq{"NUMBER"}, Seq{"ID"})
		r.Register(cons, Seq{"NUMBER", "COMMA", list}, Seq{"ID", "COMMA", list})
	})
	expression := Define("Expression", func(r Registrar) {
		r.Register(first, Seq{"NUMBER"}, Seq{"ID"})
		r.Register(cons, Seq{"NUMBER", "COMMA", list}, Seq{"ID", "COMMA", list})
	})
	return Define("Statement", func(r Registrar) {
		r.Register(assignment, Seq{"ID", "ASSIGN", expression, "END"})
	})
}

// sumGrammar creates, using the fluent API,
//
//    Additive ➞ Unary | Additive PLUS Unary | Additive MINUS Unary
//    Unary    ➞ NUMBER | MINUS NUMBER | PLUS NUMBER
//
func sumGrammar() (*NonTerminal, *NonTerminal) {
	unary := Define("Unary", func(r Registrar) {
		r.Rule().T("NUMBER").Reduce(first)
		r.Rule().T("MINUS").T("NUMBER").Reduce(negate)
		r.Rule().T("PLUS").T("NUMBER").Reduce(second)
	})
	additive := Declare("Additive")
	additive.Define(func(r Registrar) {
		r.Rule().N(unary).Reduce(first)
		r.Rule().N(additive).T("PLUS").N(unary).Reduce(arith(func(a, b int64) int64 { return a + b }))
		r.Rule().N(additive).T("MINUS").N(unary).Reduce(arith(func(a, b int64) int64 { return a - b }))
	})
	return additive, unary
}
