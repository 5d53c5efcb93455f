/*
Package lr implements the construction of LALR(1) parsers.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->
    g, err := b.Grammar()

The builder augments the grammar with a production S' -> S, which will always be
production 0. After the grammar is complete, symbols are renumbered (terminals
before non-terminals, each class in order of first appearance) and productions are
grouped by their left hand side:

   g.Dump()

   0: S' ::= S
   1: S ::= A a
   2: A ::= B D
   3: B ::= b
   4: B ::=
   5: D ::= d
   6: D ::=

Static Grammar Analysis

Nullability and FIRST sets are computed by two independent fixed point
iterations. The automaton builder triggers the analysis itself, but clients
may call it beforehand:

    g.ComputeFirstSets()
    fmt.Println(g.FirstSetsString())

    // Output:
    S': a b d
    S: a b d
    A: b d (empty)
    B: b (empty)
    D: d (empty)

Automaton Construction

Build creates the LALR(1) automaton. States are item sets identified by their
kernels; merging two candidate states with equal kernels splices their lookahead
propagation links. After all states exist, lookaheads are saturated along the
propagation links and reduce actions are entered into the action table.

    a := lr.Build(g, lr.WithConflictHandler(func(c lr.Conflict) {
        fmt.Println(c)
    }))
    s := a.GetState(a.InitialState())

Conflicts are always resolved: a reduce wins over a shift, and of two reduces the
production declared later wins. Package lalr contains a parser driven by the automaton.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pitaya.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.lr")
}
