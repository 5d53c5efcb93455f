package lr

import (
	"bytes"
)

// ComputeFirstSets computes nullability and FIRST sets for all non-terminals.
// NewGrammar calls it, so clients will rarely have to. The computation is a
// pair of fixed point iterations and may be repeated without effect; the return
// value tells if any symbol changed.
func (g *Grammar) ComputeFirstSets() bool {
	if !g.analysed {
		for _, sym := range g.symbols {
			if !sym.IsTerminal() {
				sym.first = NewSymbolSet(len(g.symbols))
			}
		}
		g.analysed = true
	}
	changed := g.computeNullable()
	if g.computeFirst() {
		changed = true
	}
	return changed
}

// computeNullable iterates until no symbol's nullability changes.
// A production's LHS is nullable if all of its RHS symbols are nullable.
func (g *Grammar) computeNullable() bool {
	changed, passes := false, 0
	for progress := true; progress; {
		progress = false
		passes++
		for _, p := range g.productions {
			if p.LHS.nullable {
				continue
			}
			vanishes := true
			for _, sym := range p.rhs {
				if !sym.nullable {
					vanishes = false
					break
				}
			}
			if vanishes {
				p.LHS.nullable = true
				progress, changed = true, true
			}
		}
	}
	tracer().Debugf("nullability settled after %d passes", passes)
	return changed
}

// computeFirst iterates until no FIRST set changes.
func (g *Grammar) computeFirst() bool {
	changed, passes := false, 0
	for progress := true; progress; {
		progress = false
		passes++
		for _, p := range g.productions {
			first := p.LHS.first
			for _, sym := range p.rhs {
				if sym.IsTerminal() {
					if first.Add(sym.index) {
						progress = true
					}
					break
				}
				if sym == p.LHS && !sym.nullable { // direct left recursion
					break
				}
				if first.Union(sym.first) {
					progress = true
				}
				if !sym.nullable {
					break
				}
			}
		}
		if progress {
			changed = true
		}
	}
	tracer().Debugf("FIRST sets settled after %d passes", passes)
	return changed
}

// FirstOfSequence adds FIRST(β) to set, where β is a sequence of symbols.
// It returns true if β can vanish completely (including empty β).
func (g *Grammar) FirstOfSequence(beta []*Symbol, set *SymbolSet) bool {
	for _, sym := range beta {
		if sym.IsTerminal() {
			set.Add(sym.index)
			return false
		}
		set.Union(sym.first)
		if !sym.nullable {
			return false
		}
	}
	return true
}

// FirstSetsString renders FIRST sets of all non-terminals, one per line,
// marking nullable symbols with "(empty)".
func (g *Grammar) FirstSetsString() string {
	var b bytes.Buffer
	for _, sym := range g.symbols[g.terminals:] {
		b.WriteString(sym.Name)
		b.WriteString(":")
		if sym.first != nil {
			sym.first.Each(func(i int) {
				b.WriteString(" ")
				b.WriteString(g.symbols[i].Name)
			})
		}
		if sym.nullable {
			b.WriteString(" (empty)")
		}
		b.WriteString("\n")
	}
	return b.String()
}
