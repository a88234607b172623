package automaton

import (
	"fmt"

	"github.com/npillmayer/spar"
	"github.com/npillmayer/spar/scanner"
)

// Record is a symbol on the parse stack. Input tokens are wrapped into
// records when they are shifted; reductions create new records.
type Record struct {
	Sym   Symbol      // terminal, non-terminal or EOF
	Value interface{} // token value or value returned by a reducer
	Token spar.Token  // input token this record stems from; nil for EOF
	Span  spar.Span   // input span covered by this symbol
}

func (r *Record) String() string {
	return fmt.Sprintf("<%s %v>", r.Sym, r.Value)
}

// TokenRecord wraps an input token into a record.
func TokenRecord(t spar.Token) *Record {
	return &Record{
		Sym:   Terminal(t.TokType()),
		Value: t.Value(),
		Token: t,
		Span:  spar.SpanOf(t),
	}
}

// NodeView is a read-only view of the children of a reduction, handed to
// reducers. Indices are 0-based, from left to right.
type NodeView struct {
	children []*Record
}

// Len returns the number of children, i.e. the arity of the rule reduced.
func (v *NodeView) Len() int {
	return len(v.children)
}

// Get returns the record of child i.
func (v *NodeView) Get(i int) *Record {
	return v.children[i]
}

// Value returns the value of child i.
func (v *NodeView) Value(i int) interface{} {
	return v.children[i].Value
}

// Token returns the input token of child i. For non-terminal children this is
// the token which has been inherited by the reduced record, if any.
func (v *NodeView) Token(i int) spar.Token {
	return v.children[i].Token
}

// Values returns the values of all children.
func (v *NodeView) Values() []interface{} {
	vals := make([]interface{}, len(v.children))
	for i, ch := range v.children {
		vals[i] = ch.Value
	}
	return vals
}

// Span returns the input span covered by all children.
func (v *NodeView) Span() spar.Span {
	var span spar.Span
	for _, ch := range v.children {
		span = span.Extend(ch.Span)
	}
	return span
}

// We store frames on the parse stack. Every frame holds a symbol, the automaton
// node it is to be matched against, and the position of the next input token.
type frame struct {
	rec  *Record
	next int    // index of next input token
	node NodeID // node to match rec against
}

// ParseFrom reads all tokens from a tokenizer and parses them.
func (g *Grammar) ParseFrom(tok scanner.Tokenizer) (interface{}, error) {
	tokens, err := scanner.Materialize(tok)
	if err != nil {
		return nil, err
	}
	return g.Parse(tokens)
}

// Parse parses a token sequence and returns the value synthesized for the top
// non-terminal.
//
// If a symbol on top of the stack is a transition key of the current node, it
// is shifted and the next input token is read. Otherwise the parser searches
// the stack, top down, for the first node with a completion and reduces it.
// Frames above this node are discarded and their tokens are read again after
// the reduction. Parsing is successful if the start rule has been reduced and
// the input is exhausted.
//
// Parse returns ErrEmptyInput for an empty token sequence and a *ParseError for
// invalid input. Errors returned by reducers are returned unchanged.
func (g *Grammar) Parse(tokens []spar.Token) (interface{}, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}
	tracer().Debugf("~~~ parse %d tokens with grammar %s ~~~~~~~~~~~~~~~~", len(tokens), g.name)
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{rec: recordAt(tokens, 0), next: 1, node: g.root})
	for {
		tos := stack[len(stack)-1]
		if tos.node == AcceptNode {
			if !tos.rec.Sym.IsEOF() {
				return nil, g.parseError(tos.rec, []string{EOF.Name()})
			}
			tracer().Debugf("accept")
			return stack[0].rec.Value, nil
		}
		node := g.nodes[tos.node]
		if next, ok := node.edges[tos.rec.Sym]; ok { // shift
			tracer().Debugf("shift %v, next node = %d", tos.rec, next)
			stack = append(stack, frame{rec: recordAt(tokens, tos.next), next: tos.next + 1, node: next})
			continue
		}
		// reduce: find the topmost frame with a completion
		stack = stack[:len(stack)-1]
		failing, offending := node, tos.rec
		for node.completion == nil {
			if len(stack) <= 1 {
				return nil, g.parseError(offending, g.expected(failing))
			}
			node = g.nodes[stack[len(stack)-1].node]
			stack = stack[:len(stack)-1]
		}
		rule := node.completion
		if len(stack) < rule.arity {
			return nil, g.parseError(offending, g.expected(failing))
		}
		handle := stack[len(stack)-rule.arity:]
		children := make([]*Record, rule.arity)
		for i, f := range handle {
			children[i] = f.rec
		}
		resume := frame{
			next: handle[len(handle)-1].next, // continue input after the last child
			node: handle[0].node,             // match the new symbol where its first child has been matched
		}
		tracer().Debugf("reduce %v", rule)
		value, err := rule.reducer(&NodeView{children: children})
		if err != nil {
			return nil, err
		}
		if resume.rec = g.conf.ruleConstructor(rule.target, value, children); resume.rec == nil {
			return nil, fmt.Errorf("rule constructor returned no record for %v", rule)
		}
		stack = append(stack[:len(stack)-rule.arity], resume)
	}
}

// recordAt returns the record for input token i, or the EOF record if the input
// is exhausted.
func recordAt(tokens []spar.Token, i int) *Record {
	if i < len(tokens) {
		return TokenRecord(tokens[i])
	}
	end := spar.SpanOf(tokens[len(tokens)-1]).To()
	return &Record{Sym: EOF, Span: spar.Span{end, end}}
}

func (g *Grammar) parseError(offending *Record, expected []string) *ParseError {
	e := &ParseError{
		Offending: offending,
		Expected:  expected,
		Message:   g.conf.errorFormatter(offending, expected),
	}
	tracer().Infof("%s", e.Message)
	return e
}
