package spar

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Terminals of a grammar are identified
// by the token type of the input tokens they match. We do not define any constants
// here, as it is up to applications to define them.
type TokType string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point number:
//
//    TokType = "NUMBER"    // identifier for this kind of tokens (application specific)
//    Value   = 3.1416      // is a float64 value
//
// Tokens may additionally implement Spanner and Lexemer. Parsers will use
// spans and lexemes, if present, for error messages and for the extent of
// reduced symbols.
type Token interface {
	TokType() TokType
	Value() interface{}
}

// Spanner is implemented by tokens which know their position in the input.
type Spanner interface {
	Span() Span
}

// Lexemer is implemented by tokens which keep their lexeme, i.e. the input
// text they have been scanned from.
type Lexemer interface {
	Lexeme() string
}

// SpanOf returns the span of a token, if it implements Spanner. Otherwise
// a null span is returned.
func SpanOf(t Token) Span {
	if s, ok := t.(Spanner); ok {
		return s.Span()
	}
	return Span{}
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, the parser will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is a predicate: is this the null span?
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are
// neutral.
func (s Span) Extend(other Span) Span {
	if other.IsNull() {
		return s
	}
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
