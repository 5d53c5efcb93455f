package lr

import (
	"fmt"
)

// GrammarBuilder is a builder type for grammars. Create one with
// NewGrammarBuilder and add productions with LHS(…):
//
//    b := lr.NewGrammarBuilder("Expressions")
//    b.LHS("E").N("E").T("+").N("T").End()
//    b.LHS("E").N("T").End()
//    …
//    g, err := b.Grammar()
//
// The left hand side of the first production is the start symbol S. The
// builder augments the grammar with a production S' ::= S as production 0.
// If the grammar uses S' itself, the augmented start symbol is named S'' (and
// so on).
type GrammarBuilder struct {
	name        string
	symtab      *SymbolTable
	productions []*Production
	declaredNT  map[*Symbol]bool // symbols used with N(…)
	err         error
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:       name,
		symtab:     NewSymbolTable(),
		declaredNT: make(map[*Symbol]bool),
	}
}

// SymbolTable returns the symbol table the builder interns symbols in.
func (b *GrammarBuilder) SymbolTable() *SymbolTable {
	return b.symtab
}

// LHS starts a new production with left hand side symbol name.
// Add symbols with N(…), T(…) or Sym(…) and finish the production with End()
// or Epsilon().
func (b *GrammarBuilder) LHS(name string) *ProductionBuilder {
	if len(b.productions) == 0 {
		start := b.symtab.Intern(name)
		b.productions = append(b.productions, &Production{
			rhs: []*Symbol{start}, // LHS is set by Grammar()
		})
		tracer().Debugf("grammar %q has start symbol %s", b.name, start)
	}
	lhs := b.symtab.Intern(name)
	if lhs.IsTerminal() {
		b.fail(fmt.Errorf("terminal %q cannot be the left hand side of a production", name))
	}
	return &ProductionBuilder{
		b: b,
		p: &Production{LHS: lhs},
	}
}

// Left declares left associative symbols with a precedence.
func (b *GrammarBuilder) Left(prec int, names ...string) {
	b.declare(LeftAssoc, prec, names)
}

// Right declares right associative symbols with a precedence.
func (b *GrammarBuilder) Right(prec int, names ...string) {
	b.declare(RightAssoc, prec, names)
}

// NonAssoc declares non-associative symbols with a precedence.
func (b *GrammarBuilder) NonAssoc(prec int, names ...string) {
	b.declare(NonAssoc, prec, names)
}

// Precedence sets the precedence of symbols and clears their associativity.
func (b *GrammarBuilder) Precedence(prec int, names ...string) {
	b.declare(NoAssoc, prec, names)
}

func (b *GrammarBuilder) declare(assoc Associativity, prec int, names []string) {
	for _, name := range names {
		sym := b.symtab.Intern(name)
		sym.assoc = assoc
		sym.prec = prec
	}
}

// Token marks symbols as tokens.
func (b *GrammarBuilder) Token(names ...string) {
	for _, name := range names {
		b.symtab.Intern(name).token = true
	}
}

// Multi declares multi-terminals: every alias will be parsed as the terminal
// shared, if the parser does not find an action for the alias itself.
func (b *GrammarBuilder) Multi(shared string, aliases ...string) {
	T := b.symtab.Intern(shared)
	if T.kind == MultiTerminal {
		b.fail(fmt.Errorf("multi-terminal %q cannot be shared by other multi-terminals", shared))
		return
	}
	T.kind = Terminal
	for _, name := range aliases {
		sym := b.symtab.Intern(name)
		if sym == T {
			continue
		}
		sym.kind = MultiTerminal
		sym.shared = T
	}
}

// Grammar returns the grammar built so far, or an error if the productions do
// not form a valid grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.productions) <= 1 {
		return nil, fmt.Errorf("grammar %q has no productions", b.name)
	}
	if b.productions[0].LHS == nil {
		b.productions[0].LHS = b.augmentedStart()
	}
	hasProductions := make(map[*Symbol]bool)
	for _, p := range b.productions {
		hasProductions[p.LHS] = true
	}
	for sym := range b.declaredNT {
		if !hasProductions[sym] {
			return nil, fmt.Errorf("non-terminal %q has no productions", sym.Name)
		}
	}
	return NewGrammar(b.name, b.symtab, b.productions)
}

// augmentedStart interns S' for start symbol S. Names already in use by the
// grammar get more primes appended.
func (b *GrammarBuilder) augmentedStart() *Symbol {
	name := b.productions[0].rhs[0].Name + "'"
	for b.symtab.Resolve(name) != nil {
		name += "'"
	}
	return b.symtab.Intern(name)
}

func (b *GrammarBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// --- Productions -----------------------------------------------------------

// ProductionBuilder collects the right hand side symbols of a production.
type ProductionBuilder struct {
	b *GrammarBuilder
	p *Production
}

// N appends a non-terminal symbol.
func (pb *ProductionBuilder) N(name string) *ProductionBuilder {
	sym := pb.b.symtab.Intern(name)
	if sym.IsTerminal() {
		pb.b.fail(fmt.Errorf("symbol %q used as terminal and as non-terminal", name))
	}
	pb.b.declaredNT[sym] = true
	pb.p.rhs = append(pb.p.rhs, sym)
	return pb
}

// T appends a terminal symbol.
func (pb *ProductionBuilder) T(name string) *ProductionBuilder {
	sym := pb.b.symtab.Intern(name)
	if pb.b.declaredNT[sym] {
		pb.b.fail(fmt.Errorf("symbol %q used as terminal and as non-terminal", name))
	}
	if sym.kind == Undefined {
		sym.kind = Terminal
	}
	pb.p.rhs = append(pb.p.rhs, sym)
	return pb
}

// Sym appends a symbol without declaring its kind. It will become a terminal
// if it never appears on the left hand side of a production.
func (pb *ProductionBuilder) Sym(name string) *ProductionBuilder {
	pb.p.rhs = append(pb.p.rhs, pb.b.symtab.Intern(name))
	return pb
}

// End finishes the production.
func (pb *ProductionBuilder) End() *Production {
	pb.b.productions = append(pb.b.productions, pb.p)
	tracer().Debugf("production %s", pb.p)
	return pb.p
}

// Epsilon finishes the production with an empty right hand side.
func (pb *ProductionBuilder) Epsilon() *Production {
	pb.p.rhs = nil
	return pb.End()
}
