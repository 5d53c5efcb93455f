package lr

import (
	"bytes"

	"github.com/bits-and-blooms/bitset"
)

// SymbolSet is a fixed-size set over the symbol index space of a grammar.
// It is used for FIRST sets and for item lookaheads.
//
// The zero value is not usable; create sets with NewSymbolSet.
type SymbolSet struct {
	bits *bitset.BitSet
	size int
}

// NewSymbolSet creates an empty set for symbol indices 0…n-1.
func NewSymbolSet(n int) *SymbolSet {
	return &SymbolSet{
		bits: bitset.New(uint(n)),
		size: n,
	}
}

// Size returns the cardinality of the symbol space, not the number of members.
func (s *SymbolSet) Size() int {
	return s.size
}

// Count returns the number of members.
func (s *SymbolSet) Count() int {
	return int(s.bits.Count())
}

// Contains tests for membership of a symbol index.
func (s *SymbolSet) Contains(index int) bool {
	if index < 0 || index >= s.size {
		return false
	}
	return s.bits.Test(uint(index))
}

// Add inserts a symbol index. Returns false if the symbol already has been
// a member.
func (s *SymbolSet) Add(index int) bool {
	if index < 0 || index >= s.size {
		panic("symbol index out of range for symbol set")
	}
	if s.bits.Test(uint(index)) {
		return false
	}
	s.bits.Set(uint(index))
	return true
}

// Union adds all members of other to s. Returns true if s changed.
func (s *SymbolSet) Union(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	if other.size != s.size {
		panic("union of symbol sets of different size")
	}
	before := s.bits.Count()
	s.bits.InPlaceUnion(other.bits)
	return s.bits.Count() != before
}

// Equals is true if both sets have the same members.
func (s *SymbolSet) Equals(other *SymbolSet) bool {
	return s.size == other.size && s.bits.Equal(other.bits)
}

// Copy returns an independent copy of s.
func (s *SymbolSet) Copy() *SymbolSet {
	return &SymbolSet{
		bits: s.bits.Clone(),
		size: s.size,
	}
}

// Each calls f for every member, in ascending index order.
func (s *SymbolSet) Each(f func(index int)) {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if int(i) >= s.size {
			break
		}
		f(int(i))
	}
}

// Members returns the member indices in ascending order.
func (s *SymbolSet) Members() []int {
	m := make([]int, 0, s.Count())
	s.Each(func(i int) {
		m = append(m, i)
	})
	return m
}

// Names renders the set members with the names of grammar symbols.
func (s *SymbolSet) Names(g *Grammar) string {
	var b bytes.Buffer
	first := true
	s.Each(func(i int) {
		if !first {
			b.WriteString(" ")
		}
		first = false
		b.WriteString(g.Symbol(i).Name)
	})
	return b.String()
}
