package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func makeDocGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
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
	return g
}

func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
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
	return g
}

func TestGrammarRearrange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	g.Dump()
	assert.Equal(t, `0: S' ::= S
1: S ::= A a
2: A ::= B D
3: B ::= b
4: B ::=
5: D ::= d
6: D ::=
`, g.String())
	assert.Equal(t, 4, g.TerminalCount())
	assert.Equal(t, 9, g.SymbolCount())
	var names []string
	g.EachSymbol(func(sym *Symbol) {
		names = append(names, sym.Name)
	})
	assert.Equal(t, []string{"$", "a", "b", "d", "S'", "S", "A", "B", "D"}, names)
	assert.Equal(t, 0, g.Endmark().Index())
	assert.Equal(t, "S'", g.Start().Name)
}

func TestProductionsByLHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	T := g.SymbolByName("T")
	prods := g.ProductionsByLHS(T)
	if assert.Len(t, prods, 2) {
		assert.Equal(t, "T ::= T * F", prods[0].String())
		assert.Equal(t, "T ::= F", prods[1].String())
		assert.Equal(t, prods[0].ID()+1, prods[1].ID())
	}
	assert.Empty(t, g.ProductionsByLHS(g.SymbolByName("id")))
	for id := 0; id < g.ProductionCount(); id++ {
		assert.Equal(t, id, g.Production(id).ID())
	}
}

func TestProductionGroupingKeepsRank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Interleaved")
	b.LHS("S").N("A").N("B").End()
	b.LHS("B").T("b").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("c").End()
	g, err := b.Grammar()
	assert.NoError(t, err)
	prods := g.ProductionsByLHS(g.SymbolByName("B"))
	if assert.Len(t, prods, 2) {
		assert.Equal(t, 2, prods[0].Rank())
		assert.Equal(t, 4, prods[1].Rank())
	}
	assert.Equal(t, 0, g.Production(0).Rank())
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	assert.Equal(t, `S': a b d
S: a b d
A: b d (empty)
B: b (empty)
D: d (empty)
`, g.FirstSetsString())
	g = makeExprGrammar(t)
	assert.Equal(t, `E': ( id
E: ( id
T: ( id
F: ( id
`, g.FirstSetsString())
}

func TestFirstSetsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	before := make(map[string]*SymbolSet)
	g.EachSymbol(func(sym *Symbol) {
		if !sym.IsTerminal() {
			before[sym.Name] = sym.FirstSet().Copy()
		}
	})
	assert.False(t, g.ComputeFirstSets(), "second computation should not change anything")
	g.EachSymbol(func(sym *Symbol) {
		if !sym.IsTerminal() {
			assert.True(t, before[sym.Name].Equals(sym.FirstSet()), "FIRST(%s) changed", sym)
		}
	})
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("X").N("Y").T("z").End() // S -> X Y z
	b.LHS("X").N("Y").N("Y").End()        // X -> Y Y
	b.LHS("Y").N("W").End()               // Y -> W
	b.LHS("W").Epsilon()                  // W ->
	b.LHS("W").T("w").End()               // W -> w
	b.LHS("V").N("V").T("v").End()        // V -> V v
	b.LHS("V").T("v").End()               // V -> v
	g, err := b.Grammar()
	assert.NoError(t, err)
	for name, nullable := range map[string]bool{
		"S": false, "X": true, "Y": true, "W": true, "V": false, "z": false,
	} {
		assert.Equal(t, nullable, g.SymbolByName(name).Nullable(), "nullable(%s)", name)
	}
	assert.Equal(t, "z w", g.SymbolByName("S").FirstSet().Names(g))
	assert.Equal(t, "v", g.SymbolByName("V").FirstSet().Names(g))
}

func TestSymbolLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	assert.Nil(t, g.SymbolByName("nope"))
	assert.Equal(t, g.Endmark(), g.Lookup("nope"))
	assert.Equal(t, "id", g.Lookup("id").Name)
	assert.True(t, g.Lookup("id").IsTerminal())
	assert.Equal(t, NonTerminal, g.Lookup("E").Kind())
}

func TestBuilderDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Declarations")
	b.Left(0, "+", "-")
	b.Right(1, "^")
	b.Token("num")
	b.Multi("op", "+", "-")
	b.LHS("E").N("E").Sym("op").N("E").End()
	b.LHS("E").N("E").T("^").N("E").End()
	b.LHS("E").T("num").End()
	g, err := b.Grammar()
	assert.NoError(t, err)
	plus := g.SymbolByName("+")
	assert.Equal(t, LeftAssoc, plus.Associativity())
	assert.Equal(t, 0, plus.Precedence())
	assert.Equal(t, MultiTerminal, plus.Kind())
	assert.Equal(t, "op", plus.SharedTerminal().Name)
	assert.Equal(t, RightAssoc, g.SymbolByName("^").Associativity())
	assert.Equal(t, 1, g.SymbolByName("^").Precedence())
	assert.True(t, g.SymbolByName("num").IsToken())
	assert.Equal(t, -1, g.SymbolByName("num").Precedence())
	assert.Equal(t, Terminal, g.SymbolByName("op").Kind())
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	_, err := NewGrammarBuilder("Empty").Grammar()
	assert.Error(t, err)
	b := NewGrammarBuilder("Undefined")
	b.LHS("S").N("A").End()
	_, err = b.Grammar()
	assert.Error(t, err, "non-terminal A has no productions")
	b = NewGrammarBuilder("Mixed")
	b.LHS("S").T("a").End()
	b.LHS("a").T("b").End()
	_, err = b.Grammar()
	assert.Error(t, err, "terminal a used as LHS")
}

func TestAugmentedStartKeepsUserSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("LL")
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+").N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "E''", g.Start().Name)
	assert.Equal(t, "E'' ::= E", g.Production(0).String())
	assert.Len(t, g.ProductionsByLHS(g.Start()), 1)
	user := g.SymbolByName("E'")
	if assert.NotNil(t, user) {
		assert.NotEqual(t, g.Start(), user)
		prods := g.ProductionsByLHS(user)
		if assert.Len(t, prods, 2) {
			assert.Equal(t, "E' ::= + T E'", prods[0].String())
			assert.Equal(t, "E' ::=", prods[1].String())
		}
	}
}

func TestAugmentedStartMustBeUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.lr")
	defer teardown()
	//
	symtab := NewSymbolTable()
	Sp, S, a := symtab.Intern("S'"), symtab.Intern("S"), symtab.Intern("a")
	_, err := NewGrammar("Twice", symtab, []*Production{
		{LHS: Sp, rhs: []*Symbol{S}},
		{LHS: S, rhs: []*Symbol{a}},
		{LHS: Sp, rhs: []*Symbol{a}},
	})
	assert.Error(t, err)
	symtab = NewSymbolTable()
	Sp, S, a = symtab.Intern("S'"), symtab.Intern("S"), symtab.Intern("a")
	_, err = NewGrammar("Recursive", symtab, []*Production{
		{LHS: Sp, rhs: []*Symbol{S}},
		{LHS: S, rhs: []*Symbol{a, Sp}},
	})
	assert.Error(t, err)
}

func TestSymbolSet(t *testing.T) {
	s := NewSymbolSet(70)
	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.True(t, s.Add(65))
	assert.True(t, s.Contains(65))
	assert.False(t, s.Contains(64))
	assert.False(t, s.Contains(100))
	other := NewSymbolSet(70)
	other.Add(3)
	assert.False(t, s.Union(other))
	other.Add(7)
	assert.True(t, s.Union(other))
	assert.Equal(t, []int{3, 7, 65}, s.Members())
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 70, s.Size())
	c := s.Copy()
	c.Add(0)
	assert.False(t, s.Contains(0))
	assert.Panics(t, func() { s.Add(70) })
}
