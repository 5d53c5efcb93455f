package lr

import (
	"bytes"
	"fmt"
	"sort"
)

// Item is an LR(0) item: a production together with a dot position
//
//    A ::= α • β
//
// Items are compared by production and dot only. The lookahead of an item within
// an automaton state lives in the automaton's item arena.
type Item struct {
	Production int // production ID
	Dot        int // 0…len(RHS)
}

// IsKernel is true for items with the dot not at the start, and for the
// start item S' ::= • S.
func (i Item) IsKernel() bool {
	return i.Dot != 0 || i.Production == 0
}

// Advance returns the item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	return Item{Production: i.Production, Dot: i.Dot + 1}
}

func (i Item) less(j Item) bool {
	if i.Production != j.Production {
		return i.Production < j.Production
	}
	return i.Dot < j.Dot
}

func (i Item) String() string {
	return fmt.Sprintf("(%d,%d)", i.Production, i.Dot)
}

// ItemString renders an item with the symbols of its production, e.g.
// "E ::= E • + T".
func (g *Grammar) ItemString(i Item) string {
	p := g.Production(i.Production)
	var b bytes.Buffer
	b.WriteString(p.LHS.Name)
	b.WriteString(" ::=")
	for k, sym := range p.rhs {
		if k == i.Dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	if i.Dot == len(p.rhs) {
		b.WriteString(" •")
	}
	return b.String()
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the end.
func (g *Grammar) PeekSymbol(i Item) *Symbol {
	p := g.Production(i.Production)
	if i.Dot >= len(p.rhs) {
		return nil
	}
	return p.rhs[i.Dot]
}

func sortItems(items []Item) {
	sort.Slice(items, func(x, y int) bool {
		return items[x].less(items[y])
	})
}

// --- Item arena ------------------------------------------------------------

// itemData is the mutable part of an item within a state. All of them live in
// a single arena owned by the automaton; links are arena indices.
type itemData struct {
	item      Item
	state     int // ID of the owning state
	lookahead *SymbolSet
	complete  bool
	forward   []int // propagate lookaheads to these items
	backward  []int // items this kernel item has been advanced from
}

// === Item Sets =============================================================

// ItemSet is a state of the LALR(1) automaton. It is identified by its kernel
// items; the closure and the actions are derived from the kernel.
type ItemSet struct {
	ID      int
	kernel  []Item         // sorted
	closure map[Item]int   // item → arena index
	order   []int          // arena indices, kernel items first
	actions map[int]Action // by symbol index
	arena   *[]*itemData
}

func newItemSet(id int, arena *[]*itemData) *ItemSet {
	return &ItemSet{
		ID:      id,
		closure: make(map[Item]int),
		actions: make(map[int]Action),
		arena:   arena,
	}
}

// Kernel returns the kernel items of the state, sorted by production and dot.
func (s *ItemSet) Kernel() []Item {
	return s.kernel
}

// Items returns all items of the closure, kernel items first.
func (s *ItemSet) Items() []Item {
	items := make([]Item, len(s.order))
	for k, inx := range s.order {
		items[k] = (*s.arena)[inx].item
	}
	return items
}

// Size returns the number of items in the closure.
func (s *ItemSet) Size() int {
	return len(s.order)
}

// Contains checks if an item is part of the closure.
func (s *ItemSet) Contains(i Item) bool {
	_, ok := s.closure[i]
	return ok
}

// Lookahead returns the lookahead set of an item of this state, or nil if the
// item is not part of the closure.
func (s *ItemSet) Lookahead(i Item) *SymbolSet {
	inx, ok := s.closure[i]
	if !ok {
		return nil
	}
	return (*s.arena)[inx].lookahead
}

// Action returns the action for a symbol. For symbols without an entry the
// action type is ErrorAction.
func (s *ItemSet) Action(sym *Symbol) Action {
	return s.actions[sym.index]
}

// EachAction calls f for every action of this state, in symbol order.
func (s *ItemSet) EachAction(f func(sym int, a Action)) {
	syms := make([]int, 0, len(s.actions))
	for sym := range s.actions {
		syms = append(syms, sym)
	}
	sort.Ints(syms)
	for _, sym := range syms {
		f(sym, s.actions[sym])
	}
}

// ActionCount returns the number of actions of this state.
func (s *ItemSet) ActionCount() int {
	return len(s.actions)
}

func (s *ItemSet) String() string {
	return fmt.Sprintf("(state %d | %d/%d)", s.ID, len(s.kernel), len(s.order))
}

// sameKernel compares a sorted kernel against the kernel of s.
func (s *ItemSet) sameKernel(kernel []Item) bool {
	if len(kernel) != len(s.kernel) {
		return false
	}
	for k := range kernel {
		if kernel[k] != s.kernel[k] {
			return false
		}
	}
	return true
}
