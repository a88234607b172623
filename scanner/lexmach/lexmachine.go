package lexmach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spar"
	"github.com/npillmayer/spar/scanner"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'spar.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("spar.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	types []spar.TokType // lexmachine token ID → token type
	ids   map[spar.TokType]int
}

// NewLMAdapter creates a new lexmachine adapter. It receives an initializer
// for patterns, a list of literals ('[', ';', …) and a list of keywords
// ("if", "for", …). Literals and keywords are their own token types.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*LMAdapter), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{
		ids: make(map[spar.TokType]int),
	}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), adapter.MakeToken(spar.TokType(lit), nil))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), adapter.MakeToken(spar.TokType(name), nil))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	tracer().Debugf("lexmachine DFA compiled for %d token types", len(adapter.types))
	return adapter, nil
}

// TokenTypes returns the token types known to the adapter, in order of registration.
func (lm *LMAdapter) TokenTypes() []spar.TokType {
	return append([]spar.TokType(nil), lm.types...)
}

func (lm *LMAdapter) idFor(tt spar.TokType) int {
	if id, ok := lm.ids[tt]; ok {
		return id
	}
	id := len(lm.types)
	lm.types = append(lm.types, tt)
	lm.ids[tt] = id
	return id
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, types: lm.types, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	types   []spar.TokType
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() spar.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(len(lms.scanner.Text))
		return scanner.MakeDefaultToken(scanner.EOF, "", nil, spar.Span{end, end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	value := token.Value
	if cerr, ok := value.(conversionError); ok {
		lms.Error(cerr)
		value = nil
	}
	start := uint64(token.TC)
	return scanner.MakeDefaultToken(
		lms.types[token.Type],
		string(token.Lexeme),
		value,
		spar.Span{start, start + uint64(len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Converter converts the lexeme of a match into a token value.
type Converter func(lexeme string) (interface{}, error)

// Int converts lexemes to int64 values.
func Int(lexeme string) (interface{}, error) {
	return strconv.ParseInt(lexeme, 10, 64)
}

// Float converts lexemes to float64 values.
func Float(lexeme string) (interface{}, error) {
	return strconv.ParseFloat(lexeme, 64)
}

// Number converts lexemes to int64 values, if possible, and to float64 values
// otherwise.
func Number(lexeme string) (interface{}, error) {
	if n, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
		return n, nil
	}
	return strconv.ParseFloat(lexeme, 64)
}

type conversionError struct {
	lexeme string
	err    error
}

func (e conversionError) Error() string {
	return fmt.Sprintf("cannot convert %q: %v", e.lexeme, e.err)
}

func (e conversionError) Unwrap() error {
	return e.err
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken creates an action which wraps a scanned match into a token of type tt.
// If conv is non-nil, it is applied to the lexeme to produce the token value;
// otherwise the value is the lexeme itself. Conversion errors are reported to the
// scanner's error handler and yield a nil value.
func (lm *LMAdapter) MakeToken(tt spar.TokType, conv Converter) lexmachine.Action {
	id := lm.idFor(tt)
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		var value interface{} = lexeme
		if conv != nil {
			v, err := conv(lexeme)
			if err != nil {
				value = conversionError{lexeme: lexeme, err: err}
			} else {
				value = v
			}
		}
		return s.Token(id, value, m), nil
	}
}
