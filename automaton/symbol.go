package automaton

import (
	"fmt"

	"github.com/npillmayer/spar"
)

type symKind uint8

const (
	terminalSym symKind = iota + 1
	nonTerminalSym
	eofSym
)

// Symbol is a grammar symbol, i.e. a key for transitions within the automaton.
// A symbol is either a terminal, identified by a token type, a non-terminal,
// identified by an ID assigned during grammar compilation, or the end-of-input
// symbol.
//
// Symbols are comparable and may be used as map keys.
type Symbol struct {
	kind symKind
	id   int    // serial ID for non-terminals
	name string // token type for terminals, name for non-terminals
}

// EOF is the symbol marking the end of input. Parsers synthesize it whenever
// the token sequence is exhausted. It is never a valid token type for
// client tokens.
var EOF = Symbol{kind: eofSym, name: "#eof"}

// Terminal returns the terminal symbol for a token type.
func Terminal(tt spar.TokType) Symbol {
	return Symbol{kind: terminalSym, name: string(tt)}
}

// IsTerminal is a predicate: is this symbol a terminal?
func (sym Symbol) IsTerminal() bool {
	return sym.kind == terminalSym
}

// IsNonTerminal is a predicate: is this symbol a non-terminal?
func (sym Symbol) IsNonTerminal() bool {
	return sym.kind == nonTerminalSym
}

// IsEOF is a predicate: is this the end-of-input symbol?
func (sym Symbol) IsEOF() bool {
	return sym.kind == eofSym
}

// Name returns the token type of a terminal or the name of a non-terminal.
func (sym Symbol) Name() string {
	return sym.name
}

// TokType returns the token type of a terminal. For other symbols it returns
// an empty token type.
func (sym Symbol) TokType() spar.TokType {
	if sym.kind != terminalSym {
		return ""
	}
	return spar.TokType(sym.name)
}

func (sym Symbol) String() string {
	switch sym.kind {
	case terminalSym:
		return fmt.Sprintf("%q", sym.name)
	case nonTerminalSym:
		return sym.name
	case eofSym:
		return sym.name
	}
	return "<no symbol>"
}
