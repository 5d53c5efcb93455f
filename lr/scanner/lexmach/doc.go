/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of Pitaya.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The simplest way to get a scanner is to derive it from a grammar. Every terminal
of the grammar will be recognized by its name, and terminals standing for classes
of input may be given a regular expression:

	LM, err := lexmach.ForGrammar(g, map[string]string{
		"id":  `([a-z]|[A-Z])+`,
		"num": `[0-9]+`,
	})

Clients who need more control initialize lexmachine by providing literals,
keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the terminal names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   pitaya.Token
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.TokenStream.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.TokenStream interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}
	accepted, err := parser.Parse(scan)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lexmach
