package lalr

import (
	"errors"
	"testing"

	"github.com/Albeforia/Pitaya"
	"github.com/Albeforia/Pitaya/lr"
	"github.com/Albeforia/Pitaya/lr/scanner"
	"github.com/Albeforia/Pitaya/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func exprAutomaton(t *testing.T) *lr.Automaton {
	b := lr.NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return lr.Build(g)
}

func epsAutomaton(t *testing.T) *lr.Automaton {
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return lr.Build(g)
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	var events []string
	var last Event
	p := NewParser(exprAutomaton(t), WithListener(func(e Event) {
		events = append(events, e.String())
		if e.Type == ReduceEvent {
			last = e
		}
	}))
	accept, err := p.Parse(scanner.Tokens("id", "+", "id", "*", "id"))
	assert.NoError(t, err)
	assert.True(t, accept)
	assert.Equal(t, []string{
		"shift id",
		"reduce F ::= id",
		"reduce T ::= F",
		"reduce E ::= T",
		"shift +",
		"shift id",
		"reduce F ::= id",
		"reduce T ::= F",
		"shift *",
		"shift id",
		"reduce F ::= id",
		"reduce T ::= T * F",
		"reduce E ::= E + T",
		"accept",
	}, events)
	assert.Equal(t, "E ::= E + T", last.Production.String())
	assert.Equal(t, pitaya.Span{0, 5}, last.Span)
	assert.Len(t, p.Reductions(), 8)
}

func TestParseParentheses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	p := NewParser(exprAutomaton(t))
	for _, input := range [][]string{
		{"id"},
		{"(", "id", ")"},
		{"(", "id", "+", "id", ")", "*", "id"},
		{"(", "(", "id", ")", ")"},
	} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.NoError(t, err, "input %v", input)
		assert.True(t, accept, "input %v", input)
	}
}

func TestParseIncompleteInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	p := NewParser(exprAutomaton(t))
	accept, err := p.Parse(scanner.Tokens("id", "+"))
	assert.False(t, accept)
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Nil(t, serr.Token)
		assert.Equal(t, []string{"(", "id"}, serr.Expected)
		assert.Contains(t, serr.Error(), "unexpected end of input")
	}
	accept, err = p.Parse(scanner.Tokens())
	assert.False(t, accept)
	assert.Error(t, err)
}

func TestParseSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	var errorEvents int
	p := NewParser(exprAutomaton(t), WithListener(func(e Event) {
		if e.Type == ErrorEvent {
			errorEvents++
		}
	}))
	accept, err := p.Parse(scanner.Tokens("id", "id"))
	assert.False(t, accept)
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, "id", serr.Token.Terminal())
		assert.Equal(t, uint64(1), serr.Token.Span().From())
	}
	assert.Equal(t, 1, errorEvents)
}

func TestParseUndefinedSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	p := NewParser(exprAutomaton(t))
	for _, bad := range []string{"?", "$", "E"} {
		accept, err := p.Parse(scanner.Tokens("id", "+", bad))
		assert.False(t, accept)
		var uerr *UndefinedSymbolError
		if assert.True(t, errors.As(err, &uerr), "token %q", bad) {
			assert.Equal(t, bad, uerr.Terminal)
			assert.Equal(t, pitaya.Span{2, 3}, uerr.Span)
		}
	}
}

func TestParseEpsilonProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	p := NewParser(epsAutomaton(t))
	for _, input := range [][]string{{"a"}, {"b", "a"}, {"b", "d", "a"}, {"d", "a"}} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.NoError(t, err, "input %v", input)
		assert.True(t, accept, "input %v", input)
	}
	accept, err := p.Parse(scanner.Tokens("a"))
	assert.True(t, accept)
	assert.NoError(t, err)
	var derivation []string
	for _, prod := range p.Reductions() {
		derivation = append(derivation, prod.String())
	}
	assert.Equal(t, []string{"B ::=", "D ::=", "A ::= B D", "S ::= A a"}, derivation)
	for _, input := range [][]string{{"d", "b", "a"}, {"b"}, {"a", "a"}} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.Error(t, err, "input %v", input)
		assert.False(t, accept, "input %v", input)
	}
}

func TestParseMultiTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Multi")
	b.Multi("op", "+", "-")
	b.LHS("S").T("num").T("op").T("num").End()
	b.LHS("S").T("num").T("-").T("-").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(lr.Build(g))
	for _, input := range [][]string{{"num", "+", "num"}, {"num", "op", "num"}, {"num", "-", "-"}} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.NoError(t, err, "input %v", input)
		assert.True(t, accept, "input %v", input)
	}
	// an action for "-" itself takes precedence over its shared terminal
	for _, input := range [][]string{{"num", "-", "num"}, {"num", "+", "-"}} {
		accept, _ := p.Parse(scanner.Tokens(input...))
		assert.False(t, accept, "input %v", input)
	}
}

func TestParseDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Dangling Else")
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").End()
	b.LHS("S").T("other").End()
	b.LHS("E").T("e").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(lr.Build(g))
	accept, err := p.Parse(scanner.Tokens("if", "e", "then", "other"))
	assert.NoError(t, err)
	assert.True(t, accept)
	// the shift on "else" has been discarded in favour of the reduce
	accept, err = p.Parse(scanner.Tokens("if", "e", "then", "other", "else", "other"))
	assert.False(t, accept)
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, "else", serr.Token.Terminal())
	}
}

func TestParseReduceReduceWinner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(lr.Build(g))
	accept, err := p.Parse(scanner.Tokens("x"))
	assert.NoError(t, err)
	assert.True(t, accept)
	if assert.Len(t, p.Reductions(), 2) {
		assert.Equal(t, "B ::= x", p.Reductions()[0].String())
		assert.Equal(t, "S ::= B", p.Reductions()[1].String())
	}
}

func TestParsePrimedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("LL Expressions")
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+").N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(lr.Build(g))
	for _, input := range [][]string{{"id"}, {"id", "+", "id"}, {"id", "+", "id", "+", "id"}} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.NoError(t, err, "input %v", input)
		assert.True(t, accept, "input %v", input)
	}
	for _, input := range [][]string{{"id", "id"}, {"id", "id", "id"}, {"+", "id"}} {
		accept, err := p.Parse(scanner.Tokens(input...))
		assert.Error(t, err, "input %v", input)
		assert.False(t, accept, "input %v", input)
	}
}

func TestParseScannedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	a := exprAutomaton(t)
	LM, err := lexmach.ForGrammar(a.Grammar(), map[string]string{
		"id": `([a-z]|[A-Z])+`,
	})
	if err != nil {
		t.Fatal(err)
	}
	var spans []pitaya.Span
	p := NewParser(a, WithListener(func(e Event) {
		if e.Type == ShiftEvent {
			spans = append(spans, e.Span)
		}
	}))
	sc, err := LM.Scanner("(a + b) * c")
	if err != nil {
		t.Fatal(err)
	}
	accept, err := p.Parse(sc)
	assert.NoError(t, err)
	assert.True(t, accept)
	if assert.Len(t, spans, 7) {
		assert.Equal(t, pitaya.Span{0, 1}, spans[0])
		assert.Equal(t, pitaya.Span{10, 11}, spans[6])
	}
}

func TestReduceWithoutGotoPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	a := exprAutomaton(t)
	g := a.Grammar()
	id := g.SymbolByName("id")
	shift := a.Action(a.InitialState(), id)
	if shift.Type != lr.ShiftAction {
		t.Fatalf("expected shift on id in initial state, have %v", shift)
	}
	var fid *lr.Production
	for _, prod := range g.ProductionsByLHS(g.SymbolByName("F")) {
		if prod.Len() == 1 {
			fid = prod
		}
	}
	// state after 'id' has no goto for F, so it must not sit below the handle
	p := NewParser(a)
	p.stack.Push(stackitem{state: shift.Value})
	p.stack.Push(stackitem{state: shift.Value, sym: id, span: pitaya.Span{0, 1}})
	assert.Panics(t, func() {
		p.reduce(shift.Value, fid, 1)
	})
}
