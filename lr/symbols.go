package lr

import (
	"fmt"
)

// SymbolKind distinguishes terminals from non-terminals.
type SymbolKind int8

// Kinds of grammar symbols. Symbols are Undefined until the grammar is
// finalized; every symbol not appearing on the left hand side of a production
// then becomes a Terminal.
const (
	Undefined SymbolKind = iota
	Terminal
	MultiTerminal
	NonTerminal
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case MultiTerminal:
		return "multi-terminal"
	case NonTerminal:
		return "non-terminal"
	}
	return "undefined"
}

// Associativity of a symbol, used for operators.
type Associativity int8

// Associativity values
const (
	NoAssoc Associativity = iota
	LeftAssoc
	RightAssoc
	NonAssoc
)

func (a Associativity) String() string {
	switch a {
	case LeftAssoc:
		return "left"
	case RightAssoc:
		return "right"
	case NonAssoc:
		return "none"
	}
	return "-"
}

// EndmarkName is the name of the end-of-input symbol. It is always the
// first symbol of a symbol table and therefore terminal number 0.
const EndmarkName = "$"

// Symbol is a grammar symbol. Symbols are interned by a SymbolTable; two symbols
// of the same table are equal if they have the same index.
//
// The index is assigned once the grammar is finalized: terminals are numbered
// first, then non-terminals, each in order of first appearance.
// Precedence is -1 if undefined.
type Symbol struct {
	Name     string
	rank     int // order of first appearance
	index    int
	kind     SymbolKind
	assoc    Associativity
	prec     int
	token    bool
	nullable bool
	first    *SymbolSet
	shared   *Symbol // for multi-terminals: the terminal they alias
}

// Index returns the position of the symbol in the grammar's symbol space.
func (sym *Symbol) Index() int {
	return sym.index
}

// Kind returns the kind of this symbol.
func (sym *Symbol) Kind() SymbolKind {
	return sym.kind
}

// IsTerminal is true for terminals and multi-terminals.
func (sym *Symbol) IsTerminal() bool {
	return sym.kind == Terminal || sym.kind == MultiTerminal
}

// Associativity returns the declared associativity of the symbol.
func (sym *Symbol) Associativity() Associativity {
	return sym.assoc
}

// Precedence returns the declared precedence of the symbol, or -1.
func (sym *Symbol) Precedence() int {
	return sym.prec
}

// IsToken is true for symbols declared as tokens (e.g., keywords).
func (sym *Symbol) IsToken() bool {
	return sym.token
}

// Nullable is true if the symbol derives the empty string.
// Valid after grammar analysis.
func (sym *Symbol) Nullable() bool {
	return sym.nullable
}

// FirstSet returns FIRST(sym). Valid for non-terminals after grammar analysis,
// nil for terminals.
func (sym *Symbol) FirstSet() *SymbolSet {
	return sym.first
}

// SharedTerminal returns the terminal a multi-terminal aliases, or nil.
func (sym *Symbol) SharedTerminal() *Symbol {
	return sym.shared
}

func (sym *Symbol) String() string {
	return sym.Name
}

// === Symbol Tables =========================================================

// SymbolTable interns grammar symbols by name. Each grammar owns its own
// table; building a second grammar (e.g. a lexical one next to a syntactical one)
// uses a fresh table or calls Clear.
type SymbolTable struct {
	table   map[string]*Symbol
	symbols []*Symbol // in order of first appearance
}

// NewSymbolTable creates a symbol table containing the endmark symbol.
func NewSymbolTable() *SymbolTable {
	symtab := &SymbolTable{}
	symtab.Clear()
	return symtab
}

// Clear removes all symbols except the endmark.
func (t *SymbolTable) Clear() {
	t.table = make(map[string]*Symbol)
	t.symbols = t.symbols[:0]
	t.Intern(EndmarkName).kind = Terminal
}

// Resolve checks for a symbol in the symbol table.
// Returns a symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	return t.table[name]
}

// ResolveOrDefine finds a symbol in the table, inserting a new one if not found.
// Returns the symbol and a flag, signalling whether the symbol has already
// been present.
func (t *SymbolTable) ResolveOrDefine(name string) (*Symbol, bool) {
	if sym, found := t.table[name]; found {
		return sym, true
	}
	sym := &Symbol{
		Name:  name,
		rank:  len(t.symbols),
		index: -1,
		prec:  -1,
	}
	t.table[name] = sym
	t.symbols = append(t.symbols, sym)
	return sym, false
}

// Intern is the symbol factory. It returns the unique symbol for name.
func (t *SymbolTable) Intern(name string) *Symbol {
	sym, _ := t.ResolveOrDefine(name)
	return sym
}

// Size returns the number of interned symbols.
func (t *SymbolTable) Size() int {
	return len(t.symbols)
}

// Endmark returns the end-of-input symbol.
func (t *SymbolTable) Endmark() *Symbol {
	return t.symbols[0]
}

// Each calls f for every symbol, in order of first appearance.
func (t *SymbolTable) Each(f func(*Symbol)) {
	for _, sym := range t.symbols {
		f(sym)
	}
}

func (t *SymbolTable) String() string {
	return fmt.Sprintf("<symtab [%d]>", len(t.symbols))
}
