package lr

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
)

// === Automaton =============================================================

// Automaton is the LALR(1) automaton for a grammar. States are numbered from 1,
// state 1 being the initial state. After construction an automaton is
// read-only.
type Automaton struct {
	g         *Grammar
	states    *treemap.Map // state ID → *ItemSet
	arena     []*itemData
	conflicts []Conflict
	stats     Stats
}

// Stats collects figures about an automaton's construction.
type Stats struct {
	States     int   // number of states
	Items      int   // number of items over all states
	Merges     int   // candidate states merged into existing ones
	Links      int   // propagation links
	Passes     int   // passes of the lookahead propagation
	Lookaheads []int // total lookahead count after each pass, starting with the initial one
}

// Grammar returns the grammar the automaton has been built for.
func (a *Automaton) Grammar() *Grammar {
	return a.g
}

// InitialState returns the ID of the start state.
func (a *Automaton) InitialState() int {
	return 1
}

// GetState returns the state with a given ID, or nil.
func (a *Automaton) GetState(id int) *ItemSet {
	s, found := a.states.Get(id)
	if !found {
		return nil
	}
	return s.(*ItemSet)
}

// States returns all states, ordered by ID.
func (a *Automaton) States() []*ItemSet {
	states := make([]*ItemSet, 0, a.states.Size())
	it := a.states.Iterator()
	for it.Next() {
		states = append(states, it.Value().(*ItemSet))
	}
	return states
}

// StateCount returns the number of states.
func (a *Automaton) StateCount() int {
	return a.states.Size()
}

// Action returns the action for a state and a symbol.
func (a *Automaton) Action(state int, sym *Symbol) Action {
	s := a.GetState(state)
	if s == nil {
		return Action{}
	}
	return s.Action(sym)
}

// Conflicts returns all conflicts found (and resolved) during construction.
func (a *Automaton) Conflicts() []Conflict {
	return a.conflicts
}

// Stats returns figures about the construction of the automaton.
func (a *Automaton) Stats() Stats {
	return a.stats
}

// === Construction ==========================================================

// Option configures the automaton builder.
type Option func(*builder)

// WithConflictHandler sets a handler which receives every conflict
// found during construction of the action table.
func WithConflictHandler(h func(Conflict)) Option {
	return func(b *builder) {
		b.onConflict = h
	}
}

type builder struct {
	a          *Automaton
	g          *Grammar
	buckets    map[string][]int // kernel hash → state IDs
	queue      []*ItemSet       // states waiting for successors
	onConflict func(Conflict)
}

// candidate is a kernel item of a state under construction, together with
// the items it has been advanced from.
type candidate struct {
	item     Item
	backward []int
}

// Build constructs the LALR(1) automaton for a grammar.
//
// Construction starts with the item S' ::= • S and explores successor states
// until no new kernels emerge. Then lookaheads are propagated to a fixed point
// and the action table is filled. Conflicts are resolved in favour of reduce
// actions, and between reduce actions in favour of the production declared
// later.
func Build(g *Grammar, opts ...Option) *Automaton {
	b := &builder{
		g:       g,
		buckets: make(map[string][]int),
		a: &Automaton{
			g:      g,
			states: treemap.NewWithIntComparator(),
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	g.ComputeFirstSets()
	tracer().Debugf("=== build LALR(1) automaton for %q ================", g.Name)
	start := b.buildItemSet([]candidate{{item: Item{Production: 0, Dot: 0}}})
	b.a.arena[b.a.GetState(start).order[0]].lookahead.Add(g.Endmark().index)
	for len(b.queue) > 0 {
		s := b.queue[0]
		b.queue = b.queue[1:]
		b.buildSuccessors(s)
	}
	b.fillLookaheads()
	b.fillActions()
	b.a.stats.States = b.a.states.Size()
	b.a.stats.Items = len(b.a.arena)
	tracer().Infof("automaton for %q has %d states, %d items, %d conflicts",
		g.Name, b.a.stats.States, b.a.stats.Items, len(b.a.conflicts))
	return b.a
}

// buildItemSet finds or creates the state for a candidate kernel and returns
// its ID. If a state with the same kernel exists, the backward links of the
// candidate are spliced onto the existing kernel items.
func (b *builder) buildItemSet(cand []candidate) int {
	kernel := make([]Item, len(cand))
	for k, c := range cand {
		kernel[k] = c.item
	}
	sortItems(kernel)
	h := kernelHash(kernel)
	for _, id := range b.buckets[h] {
		s := b.a.GetState(id)
		if !s.sameKernel(kernel) {
			continue
		}
		for _, c := range cand {
			inx := s.closure[c.item]
			b.a.arena[inx].backward = append(b.a.arena[inx].backward, c.backward...)
		}
		b.a.stats.Merges++
		tracer().Debugf("merged candidate %v into state %d", kernel, id)
		return id
	}
	s := newItemSet(b.a.states.Size()+1, &b.a.arena)
	s.kernel = kernel
	backward := make(map[Item][]int, len(cand))
	for _, c := range cand {
		backward[c.item] = c.backward
	}
	for _, item := range kernel {
		inx := b.newItem(s, item)
		b.a.arena[inx].backward = backward[item]
	}
	b.computeClosure(s)
	b.a.states.Put(s.ID, s)
	b.buckets[h] = append(b.buckets[h], s.ID)
	b.queue = append(b.queue, s)
	tracer().Debugf("new state %d with %d kernel items, %d items in closure",
		s.ID, len(kernel), len(s.order))
	return s.ID
}

func (b *builder) newItem(s *ItemSet, item Item) int {
	inx := len(b.a.arena)
	b.a.arena = append(b.a.arena, &itemData{
		item:      item,
		state:     s.ID,
		lookahead: NewSymbolSet(b.g.SymbolCount()),
	})
	s.closure[item] = inx
	s.order = append(s.order, inx)
	return inx
}

// computeClosure adds items B ::= • γ for every item A ::= α • B β. The new
// item receives FIRST(β) as a spontaneous lookahead; if β may vanish, a
// propagation link from A ::= α • B β to the new item is recorded.
func (b *builder) computeClosure(s *ItemSet) {
	for k := 0; k < len(s.order); k++ {
		src := b.a.arena[s.order[k]]
		X := b.g.PeekSymbol(src.item)
		if X == nil || X.IsTerminal() {
			continue
		}
		beta := b.g.Production(src.item.Production).rhs[src.item.Dot+1:]
		for _, p := range b.g.ProductionsByLHS(X) {
			item := Item{Production: p.id, Dot: 0}
			inx, found := s.closure[item]
			if !found {
				inx = b.newItem(s, item)
			}
			if b.g.FirstOfSequence(beta, b.a.arena[inx].lookahead) {
				src.forward = append(src.forward, inx)
			}
		}
	}
}

// buildSuccessors groups the items of a state by the symbol after the dot,
// creates a candidate kernel for each group and enters a shift or goto action.
func (b *builder) buildSuccessors(s *ItemSet) {
	for _, inx := range s.order {
		b.a.arena[inx].complete = false
	}
	for k, inx := range s.order {
		it := b.a.arena[inx]
		if it.complete {
			continue
		}
		X := b.g.PeekSymbol(it.item)
		if X == nil {
			continue
		}
		var cand []candidate
		for _, other := range s.order[k:] {
			o := b.a.arena[other]
			if o.complete || b.g.PeekSymbol(o.item) != X {
				continue
			}
			o.complete = true
			cand = append(cand, candidate{
				item:     o.item.Advance(),
				backward: []int{other},
			})
		}
		target := b.buildItemSet(cand)
		if X.IsTerminal() {
			b.addAction(s, X, Action{Type: ShiftAction, Value: target})
		} else {
			b.addAction(s, X, Action{Type: GotoAction, Value: target})
		}
		tracer().Debugf("state %d --%s--> state %d", s.ID, X, target)
	}
}

// fillLookaheads converts backward links into forward links and propagates
// lookaheads along forward links until no lookahead set changes.
func (b *builder) fillLookaheads() {
	arena := b.a.arena
	for inx, it := range arena {
		for _, src := range it.backward {
			arena[src].forward = append(arena[src].forward, inx)
		}
		it.backward = nil
	}
	for _, it := range arena {
		it.complete = false
		b.a.stats.Links += len(it.forward)
	}
	b.a.stats.Lookaheads = append(b.a.stats.Lookaheads, b.lookaheadTotal())
	for progress := true; progress; {
		progress = false
		b.a.stats.Passes++
		for _, it := range arena {
			if it.complete {
				continue
			}
			it.complete = true
			for _, t := range it.forward {
				if arena[t].lookahead.Union(it.lookahead) {
					arena[t].complete = false
					progress = true
				}
			}
		}
		b.a.stats.Lookaheads = append(b.a.stats.Lookaheads, b.lookaheadTotal())
	}
	tracer().Debugf("lookahead propagation over %d links settled after %d passes",
		b.a.stats.Links, b.a.stats.Passes)
}

func (b *builder) lookaheadTotal() int {
	total := 0
	for _, it := range b.a.arena {
		total += it.lookahead.Count()
	}
	return total
}

// fillActions enters reduce and accept actions for every completed item.
func (b *builder) fillActions() {
	it := b.a.states.Iterator()
	for it.Next() {
		s := it.Value().(*ItemSet)
		for _, inx := range s.order {
			data := b.a.arena[inx]
			p := b.g.Production(data.item.Production)
			if data.item.Dot < p.Len() {
				continue
			}
			data.lookahead.Each(func(t int) {
				if p.id == 0 {
					if t == b.g.Endmark().index {
						b.addAction(s, b.g.Endmark(), Action{Type: AcceptAction})
					}
					return
				}
				b.addAction(s, b.g.Symbol(t), Action{Type: ReduceAction, Value: p.id})
			})
		}
	}
}

// addAction enters an action into the table of a state, resolving conflicts.
func (b *builder) addAction(s *ItemSet, sym *Symbol, action Action) {
	existing, ok := s.actions[sym.index]
	if !ok || existing == action {
		s.actions[sym.index] = action
		return
	}
	c := Conflict{
		State:    s.ID,
		Symbol:   sym,
		Existing: existing,
		Incoming: action,
		g:        b.g,
	}
	switch {
	case existing.Type == ShiftAction && action.Type == ShiftAction:
		panic(fmt.Sprintf("shift/shift conflict in state %d on %s", s.ID, sym))
	case existing.Type == AcceptAction || action.Type == AcceptAction:
		c.Kind = ReduceReduceConflict
		c.Resolved = Action{Type: AcceptAction}
	case existing.Type == ShiftAction && action.Type == ReduceAction:
		c.Kind = ShiftReduceConflict
		c.Resolved = action
	case existing.Type == ReduceAction && action.Type == ShiftAction:
		c.Kind = ShiftReduceConflict
		c.Resolved = existing
	case existing.Type == ReduceAction && action.Type == ReduceAction:
		c.Kind = ReduceReduceConflict
		c.Resolved = existing
		if b.g.Production(action.Value).rank > b.g.Production(existing.Value).rank {
			c.Resolved = action
		}
	default:
		panic(fmt.Sprintf("cannot enter %s into state %d on %s, which has %s",
			action, s.ID, sym, existing))
	}
	s.actions[sym.index] = c.Resolved
	b.a.conflicts = append(b.a.conflicts, c)
	tracer().Infof("%s", c)
	if b.onConflict != nil {
		b.onConflict(c)
	}
}

// kernelHash is the bucket key for a sorted kernel.
func kernelHash(kernel []Item) string {
	h, err := structhash.Hash(struct{ Items []Item }{kernel}, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash kernel %v: %v", kernel, err))
	}
	return h
}
