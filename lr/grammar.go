package lr

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// === Productions ===========================================================

// Production is a grammar rule
//
//    LHS ::= RHS₁ RHS₂ … RHSₙ
//
// with an ordered (possibly empty) right hand side.
//
// The rank of a production is its position in the order of declaration, the
// ID its position after productions are grouped by left hand side. Production 0
// is the augmented start production S' ::= S.
type Production struct {
	rank int
	id   int
	LHS  *Symbol
	rhs  []*Symbol
}

// ID returns the serial number of a production within the grammar.
func (p *Production) ID() int {
	return p.id
}

// Rank returns the declaration order of a production. It is used to break
// reduce/reduce conflicts.
func (p *Production) Rank() int {
	return p.rank
}

// RHS returns the right hand side symbols of a production.
// Clients should not modify the returned slice.
func (p *Production) RHS() []*Symbol {
	return p.rhs
}

// Len returns the number of symbols of the right hand side.
func (p *Production) Len() int {
	return len(p.rhs)
}

// IsEpsilon is true for productions with an empty right hand side.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(p.LHS.Name)
	b.WriteString(" ::=")
	for _, sym := range p.rhs {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}

// === Grammars ==============================================================

// Grammar is a type for a context free grammar, consisting of symbols and
// productions. Grammars are immutable after creation, except for the results of
// grammar analysis, which are computed once.
//
// Usually clients create grammars using a GrammarBuilder.
type Grammar struct {
	Name        string
	symtab      *SymbolTable
	symbols     []*Symbol     // by index
	terminals   int           // number of terminals (incl. multi-terminals)
	productions []*Production // by ID
	byLHS       [][2]int      // range of production IDs, by non-terminal index
	analysed    bool
}

// NewGrammar creates a grammar from a symbol table and a list of productions, in
// order of declaration. The first production has to be the augmented start
// production.
//
// Symbols not appearing on the left hand side of any production and not declared
// as multi-terminals become terminals. Symbols will be renumbered, with terminals
// first, and productions will be grouped by their left hand side symbol.
func NewGrammar(name string, symtab *SymbolTable, productions []*Production) (*Grammar, error) {
	if len(productions) == 0 {
		return nil, errors.New("grammar has no productions")
	}
	if symtab == nil || symtab.Size() == 0 {
		return nil, errors.New("grammar has no symbol table")
	}
	g := &Grammar{
		Name:   name,
		symtab: symtab,
	}
	for i, p := range productions {
		if p.LHS == nil {
			return nil, fmt.Errorf("production #%d has no left hand side", i)
		}
		if p.LHS.kind == Terminal || p.LHS.kind == MultiTerminal {
			return nil, fmt.Errorf("terminal %q used as left hand side of a production", p.LHS.Name)
		}
		p.LHS.kind = NonTerminal
		p.rank = i
	}
	start := productions[0]
	if start.Len() != 1 || start.rhs[0].kind != NonTerminal {
		return nil, fmt.Errorf("start symbol of grammar %q is undefined", name)
	}
	for _, p := range productions[1:] {
		if p.LHS == start.LHS {
			return nil, fmt.Errorf("augmented start symbol %q has more than one production", start.LHS.Name)
		}
	}
	for _, p := range productions {
		for _, sym := range p.rhs {
			if sym == start.LHS {
				return nil, fmt.Errorf("augmented start symbol %q used on a right hand side", start.LHS.Name)
			}
		}
	}
	var err error
	symtab.Each(func(sym *Symbol) {
		if sym.kind == Undefined {
			sym.kind = Terminal
		}
	})
	symtab.Each(func(sym *Symbol) {
		if sym.kind == MultiTerminal && (sym.shared == nil || sym.shared.kind != Terminal) {
			err = fmt.Errorf("multi-terminal %q does not alias a terminal", sym.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	g.rearrange(productions)
	if g.productions[0] != start {
		panic("production 0 is not the augmented start production")
	}
	tracer().Infof("grammar %q has %d symbols (%d terminals) and %d productions",
		name, len(g.symbols), g.terminals, len(g.productions))
	g.ComputeFirstSets()
	return g, nil
}

// rearrange numbers symbols (terminals first, then non-terminals, in order of
// first appearance) and groups productions by LHS.
func (g *Grammar) rearrange(productions []*Production) {
	g.symbols = make([]*Symbol, 0, g.symtab.Size())
	g.symtab.Each(func(sym *Symbol) {
		g.symbols = append(g.symbols, sym)
	})
	start := productions[0].LHS // always the first non-terminal
	sort.SliceStable(g.symbols, func(i, j int) bool {
		si, sj := g.symbols[i], g.symbols[j]
		ti, tj := si.IsTerminal(), sj.IsTerminal()
		if ti != tj {
			return ti
		}
		if !ti && (si == start || sj == start) {
			return si == start && sj != start
		}
		return si.rank < sj.rank
	})
	for i, sym := range g.symbols {
		sym.index = i
		if sym.IsTerminal() {
			g.terminals++
		}
	}
	g.productions = make([]*Production, len(productions))
	copy(g.productions, productions)
	sort.SliceStable(g.productions, func(i, j int) bool {
		pi, pj := g.productions[i], g.productions[j]
		if pi.LHS.index != pj.LHS.index {
			return pi.LHS.index < pj.LHS.index
		}
		return pi.rank < pj.rank
	})
	g.byLHS = make([][2]int, len(g.symbols)-g.terminals)
	for id, p := range g.productions {
		p.id = id
		r := &g.byLHS[p.LHS.index-g.terminals]
		if r[1] == 0 {
			r[0] = id
		}
		r[1] = id + 1
	}
}

// Symbol returns the symbol with index i.
func (g *Grammar) Symbol(i int) *Symbol {
	return g.symbols[i]
}

// SymbolCount returns the number of symbols, terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// TerminalCount returns the number of terminals, including multi-terminals.
// Terminals have indices 0…TerminalCount()-1.
func (g *Grammar) TerminalCount() int {
	return g.terminals
}

// Endmark returns the end-of-input terminal.
func (g *Grammar) Endmark() *Symbol {
	return g.symbols[0]
}

// Start returns the augmented start symbol S'.
func (g *Grammar) Start() *Symbol {
	return g.productions[0].LHS
}

// Production returns the production with ID id.
func (g *Grammar) Production(id int) *Production {
	if id < 0 || id >= len(g.productions) {
		panic(fmt.Sprintf("production #%d does not exist", id))
	}
	return g.productions[id]
}

// ProductionCount returns the number of productions.
func (g *Grammar) ProductionCount() int {
	return len(g.productions)
}

// ProductionsByLHS returns all productions with left hand side A, in order of
// declaration. For terminals the result is empty.
func (g *Grammar) ProductionsByLHS(A *Symbol) []*Production {
	if A.IsTerminal() {
		return nil
	}
	r := g.byLHS[A.index-g.terminals]
	return g.productions[r[0]:r[1]]
}

// SymbolByName returns the symbol with a given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symtab.Resolve(name)
}

// Lookup returns the symbol with a given name. Unknown names map to the endmark.
func (g *Grammar) Lookup(name string) *Symbol {
	if sym := g.symtab.Resolve(name); sym != nil {
		return sym
	}
	return g.Endmark()
}

// EachSymbol iterates over all symbols in index order.
func (g *Grammar) EachSymbol(f func(*Symbol)) {
	for _, sym := range g.symbols {
		f(sym)
	}
}

// EachProduction iterates over all productions in ID order.
func (g *Grammar) EachProduction(f func(*Production)) {
	for _, p := range g.productions {
		f(p)
	}
}

// Dump is a debugging helper which traces all productions.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s ----------------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.id, p)
	}
	tracer().Debugf("-------------------------------------------------")
}

// String returns the productions, one per line.
func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, p := range g.productions {
		b.WriteString(fmt.Sprintf("%d: %s\n", p.id, p))
	}
	return b.String()
}
