package calc

import (
	"sync"

	"github.com/npillmayer/spar"
	"github.com/npillmayer/spar/scanner"
	"github.com/npillmayer/spar/scanner/lexmach"
)

// Token types of the calculator language.
const (
	NUMBER spar.TokType = "NUMBER"
	ID     spar.TokType = "ID"
	ASSIGN spar.TokType = "ASSIGN"
	END    spar.TokType = "END"
	BPAREN spar.TokType = "BPAREN"
	EPAREN spar.TokType = "EPAREN"
	PLUS   spar.TokType = "PLUS"
	MINUS  spar.TokType = "MINUS"
	MUL    spar.TokType = "MUL"
	DIV    spar.TokType = "DIV"
)

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once

func calcLexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		init := func(lm *lexmach.LMAdapter) {
			lm.Lexer.Add([]byte(`//[^\n]*\n?`), lexmach.Skip)
			lm.Lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), lm.MakeToken(NUMBER, lexmach.Number))
			lm.Lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), lm.MakeToken(ID, nil))
			lm.Lexer.Add([]byte(`\:\=`), lm.MakeToken(ASSIGN, nil))
			lm.Lexer.Add([]byte(`\;`), lm.MakeToken(END, nil))
			lm.Lexer.Add([]byte(`\(`), lm.MakeToken(BPAREN, nil))
			lm.Lexer.Add([]byte(`\)`), lm.MakeToken(EPAREN, nil))
			lm.Lexer.Add([]byte(`\+`), lm.MakeToken(PLUS, nil))
			lm.Lexer.Add([]byte(`\-`), lm.MakeToken(MINUS, nil))
			lm.Lexer.Add([]byte(`\*`), lm.MakeToken(MUL, nil))
			lm.Lexer.Add([]byte(`\/`), lm.MakeToken(DIV, nil))
			lm.Lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
		}
		lexer, lexerErr = lexmach.NewLMAdapter(init, nil, nil)
	})
	return lexer, lexerErr
}

// Tokenize splits a calculator program into tokens. Input which does not
// form a token results in an error.
func Tokenize(src string) ([]spar.Token, error) {
	lm, err := calcLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(src)
	if err != nil {
		return nil, err
	}
	tokens, err := scanner.Materialize(sc)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%d tokens", len(tokens))
	return tokens, nil
}
