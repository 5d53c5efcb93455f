/*
Package gramfile reads grammars from text files.

The file format is line oriented. Every line holds one production, with the
left hand side symbol first, followed by the right hand side symbols, all
separated by whitespace. A line with a single symbol is an epsilon production.
The left hand side of the first production is the start symbol. Symbols which
never appear on the left hand side of a production are terminals.

    E  E + T
    E  T
    T  T * F
    T  F
    F  ( E )
    F  id

Lines starting with '%' are declarations:

    %left  + -      left associative, precedence 0
    %left  * /      left associative, precedence 1
    %right ^        right associative, precedence 2
    %none  ==       non-associative, precedence 3
    %token id num   mark symbols as tokens, precedence 4
    %multi op + -   '+' and '-' may be parsed as 'op'

Every associativity or token declaration increases the precedence level. Any other
line starting with '%' is a comment. Blank lines are skipped.

Usage:

    g, err := gramfile.Read("expressions.gram", f)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package gramfile
