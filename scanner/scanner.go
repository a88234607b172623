/*
Package scanner defines an interface for scanners to be used with parsers of package automaton.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Parsers work on fully materialized token sequences; use Materialize to read all
tokens of a scanner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spar"
)

// tracer traces with key 'spar.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("spar.scanner")
}

// Token types of the default tokenizer. Single-character tokens (operators,
// delimiters) use the character itself as their token type.
const (
	EOF       spar.TokType = "#eof"
	Ident     spar.TokType = "IDENT"
	Int       spar.TokType = "INT"
	Float     spar.TokType = "FLOAT"
	Char      spar.TokType = "CHAR"
	String    spar.TokType = "STRING"
	RawString spar.TokType = "RAWSTRING"
	Comment   spar.TokType = "COMMENT"
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() spar.Token
	SetErrorHandler(func(error))
}

// Materialize reads all tokens from a tokenizer, up to (and excluding) EOF.
// It returns the first error the tokenizer reported, if any.
func Materialize(t Tokenizer) ([]spar.Token, error) {
	var first error
	t.SetErrorHandler(func(err error) {
		logError(err)
		if first == nil {
			first = err
		}
	})
	defer t.SetErrorHandler(nil)
	var tokens []spar.Token
	for token := t.NextToken(); token.TokType() != EOF; token = t.NextToken() {
		tokens = append(tokens, token)
	}
	tracer().Debugf("materialized %d tokens", len(tokens))
	return tokens, first
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() spar.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return MakeDefaultToken(EOF, "", nil, spar.Span{uint64(t.Pos().Offset), uint64(t.Pos().Offset)})
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	lexeme := t.TokenText()
	kind, value := t.classify(t.lastToken, lexeme)
	return MakeDefaultToken(kind, lexeme, value,
		spar.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)})
}

// classify maps a text/scanner token to a token type and converts its value.
func (t *DefaultTokenizer) classify(tok rune, lexeme string) (spar.TokType, interface{}) {
	switch tok {
	case scanner.Ident:
		return Ident, lexeme
	case scanner.Int:
		n, err := strconv.ParseInt(lexeme, 0, 64)
		if err != nil {
			t.Error(fmt.Errorf("%s: %w", t.Position, err))
		}
		return Int, n
	case scanner.Float:
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			t.Error(fmt.Errorf("%s: %w", t.Position, err))
		}
		return Float, f
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(lexeme)
		if err != nil {
			return String, lexeme
		}
		if tok == scanner.RawString {
			return RawString, s
		}
		return String, s
	case scanner.Char:
		return Char, lexeme
	case scanner.Comment:
		return Comment, lexeme
	}
	return spar.TokType(lexeme), lexeme
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   spar.TokType
	lexeme string
	Val    interface{}
	span   spar.Span
}

var _ spar.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ spar.TokType, lexeme string, value interface{}, span spar.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		Val:    value,
		span:   span,
	}
}

// TokType is part of interface spar.Token.
func (t DefaultToken) TokType() spar.TokType {
	return t.kind
}

// Value is part of interface spar.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme returns the input text of a token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span returns the input position of a token.
func (t DefaultToken) Span() spar.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%s(%q)", t.kind, t.lexeme)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
