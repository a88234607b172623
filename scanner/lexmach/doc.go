/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of package automaton.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.
Package lexmach is very opinionated on how to do the setup of lexmachine:
token types are strings (spar.TokType), and lexmach keeps the mapping to
lexmachine's integer token IDs for the client.

	var literals []string  // The tokens representing literal strings, e.g. ":=", "("
	var keywords []string  // The keyword tokens, e.g. "if", "while"

	init := func(lm *lexmach.LMAdapter) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip     is a pre-defined action which ignores the scanned match
		// lm.MakeToken     creates an action which wraps a scanned match into a
		//                  spar.Token, optionally converting the lexeme to a value
		lm.Lexer.Add([]byte(`[0-9]+`), lm.MakeToken("NUMBER", lexmach.Int))
		lm.Lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := lexmach.NewLMAdapter(init, literals, keywords)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until EOF, usually with scanner.Materialize.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
