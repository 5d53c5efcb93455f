package lr

import (
	"fmt"
	"io"
	"math"

	"github.com/Albeforia/Pitaya/lr/sparse"
	"github.com/emirpasic/gods/lists/arraylist"
)

// AcceptValue is the flat table encoding of the accept action.
const AcceptValue = math.MaxInt32

// === Flat Tables ===========================================================

// Table is a flat version of an automaton's action table, with rows for
// states and columns for symbols. Entries are encoded as
//
//    shift s, goto s  →  s
//    reduce p         →  -(p+1)
//    accept           →  AcceptValue
//
// Empty entries hold NullValue().
type Table struct {
	matrix *sparse.IntMatrix
	g      *Grammar
}

// Table creates the flat action table for an automaton.
func (a *Automaton) Table() *Table {
	rows := a.StateCount() + 1 // row 0 is unused
	tracer().Infof("ACTION table of size %d x %d", rows, a.g.SymbolCount())
	t := &Table{
		matrix: sparse.NewIntMatrix(rows, a.g.SymbolCount(), sparse.DefaultNullValue),
		g:      a.g,
	}
	for _, s := range a.States() {
		s.EachAction(func(sym int, action Action) {
			t.matrix.Set(s.ID, sym, encode(action))
		})
	}
	return t
}

func encode(a Action) int32 {
	switch a.Type {
	case ShiftAction, GotoAction:
		return int32(a.Value)
	case ReduceAction:
		return -int32(a.Value + 1)
	case AcceptAction:
		return AcceptValue
	}
	panic(fmt.Sprintf("action %s cannot be entered into a table", a))
}

// NullValue is the value of empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// ValueCount returns the number of non-empty entries.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// Value returns the encoded entry for a state and a symbol.
func (t *Table) Value(state int, sym *Symbol) int32 {
	return t.matrix.Value(state, sym.index)
}

// Action decodes the entry for a state and a symbol.
func (t *Table) Action(state int, sym *Symbol) Action {
	v := t.Value(state, sym)
	switch {
	case v == t.NullValue():
		return Action{}
	case v == AcceptValue:
		return Action{Type: AcceptAction}
	case v < 0:
		return Action{Type: ReduceAction, Value: int(-v - 1)}
	case sym.IsTerminal():
		return Action{Type: ShiftAction, Value: int(v)}
	}
	return Action{Type: GotoAction, Value: int(v)}
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, t *Table) string {
	switch {
	case v == t.NullValue():
		return "&nbsp;"
	case v == AcceptValue:
		return "acc"
	case v < 0:
		return fmt.Sprintf("r%d", -v-1)
	}
	return fmt.Sprintf("%d", v)
}

// ActionTableAsHTML exports the action table of an automaton in HTML-format.
func ActionTableAsHTML(a *Automaton, w io.Writer) {
	table := a.Table()
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("ACTION table of %q, size = %d<p>", a.g.Name, table.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	a.g.EachSymbol(func(A *Symbol) {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
	})
	io.WriteString(w, "</tr>\n")
	for _, s := range a.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", s.ID))
		a.g.EachSymbol(func(A *Symbol) {
			io.WriteString(w, "<td>")
			io.WriteString(w, valstring(table.Value(s.ID, A), table))
			io.WriteString(w, "</td>\n")
		})
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// === Graphviz ==============================================================

// automaton edge between 2 states, labelled with a symbol
type edge struct {
	from, to int
	label    *Symbol
}

func (a *Automaton) edges() *arraylist.List {
	edges := arraylist.New()
	for _, s := range a.States() {
		s.EachAction(func(sym int, action Action) {
			if action.Type == ShiftAction || action.Type == GotoAction {
				edges.Add(edge{from: s.ID, to: action.Value, label: a.g.Symbol(sym)})
			}
		})
	}
	return edges
}

// ToGraphviz exports the automaton to the Graphviz Dot format.
func (a *Automaton) ToGraphviz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range a.States() {
		io.WriteString(w, fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, a.nodecolor(s), s.ID, a.forGraphviz(s)))
	}
	it := a.edges().Iterator()
	for it.Next() {
		e := it.Value().(edge)
		io.WriteString(w, fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.from, e.to, escapeDot(e.label.Name)))
	}
	io.WriteString(w, "}\n")
}

func (a *Automaton) nodecolor(s *ItemSet) string {
	if s.actions[a.g.Endmark().index].Type == AcceptAction {
		return "lightgray"
	}
	return "white"
}

func (a *Automaton) forGraphviz(s *ItemSet) string {
	var items string
	for k, item := range s.kernel {
		if k > 0 {
			items += "\\l"
		}
		items += escapeDot(a.g.ItemString(item))
	}
	return items + "\\l"
}

func escapeDot(s string) string {
	var out []rune
	for _, r := range s {
		switch r {
		case '"', '{', '}', '|', '<', '>', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// === Reports ===============================================================

// Report writes a textual description of all states, with kernel items,
// their lookaheads and the actions of each state, followed by the conflicts.
func (a *Automaton) Report(w io.Writer) {
	for _, s := range a.States() {
		fmt.Fprintf(w, "state %d:\n", s.ID)
		for _, item := range s.kernel {
			fmt.Fprintf(w, "    %-30s [%s]\n", a.g.ItemString(item), s.Lookahead(item).Names(a.g))
		}
		s.EachAction(func(sym int, action Action) {
			fmt.Fprintf(w, "    %12s : %s\n", a.g.Symbol(sym), action)
		})
		fmt.Fprintln(w)
	}
	for _, c := range a.conflicts {
		fmt.Fprintln(w, c)
	}
	fmt.Fprintf(w, "%d conflicts\n", len(a.conflicts))
}
