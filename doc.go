/*
Package pitaya is an LALR(1) parser generator toolbox.

Pitaya builds the canonical LALR(1) automaton for a context-free grammar and
drives a table-based shift-reduce parser with it. Package structure is
as follows:

■ lr: Package lr implements grammars, FIRST-set analysis, the LALR(1) automaton
builder with lookahead propagation, and parser table export.

■ lr/lalr: Package lalr implements the table-driven parser on top of an automaton.

■ lr/scanner: Package scanner defines token streams, the input side of a parser.

■ lr/scanner/lexmach: Package lexmach derives scanners for grammars from lexmachine.

■ lr/gramfile: Package gramfile reads grammars from text files.

■ cmd/pitaya: Command pitaya builds automata from grammar files and parses input.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package pitaya
