package lr

import (
	"fmt"
)

// ActionType is the kind of a parser action.
type ActionType int8

// Action types. The conflict types are used for conflict reports only; they
// never appear in the action table of a finished automaton.
const (
	ErrorAction ActionType = iota
	ShiftAction
	GotoAction
	ReduceAction
	AcceptAction
	ShiftShiftConflict
	ShiftReduceConflict
	ReduceReduceConflict
)

func (t ActionType) String() string {
	switch t {
	case ShiftAction:
		return "shift"
	case GotoAction:
		return "goto"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	case ShiftShiftConflict:
		return "shift/shift"
	case ShiftReduceConflict:
		return "shift/reduce"
	case ReduceReduceConflict:
		return "reduce/reduce"
	}
	return "error"
}

// Action is an entry of the action table. Value is the target state for shift
// and goto actions, and the production ID for reduce actions.
type Action struct {
	Type  ActionType
	Value int
}

// IsError is true for the empty action.
func (a Action) IsError() bool {
	return a.Type == ErrorAction
}

func (a Action) String() string {
	switch a.Type {
	case ShiftAction, GotoAction, ReduceAction:
		return fmt.Sprintf("%s %d", a.Type, a.Value)
	}
	return a.Type.String()
}

// Conflict is a report about two actions competing for the same
// (state, symbol) entry. Conflicts are always resolved; Resolved is the action
// which went into the table.
type Conflict struct {
	State    int
	Symbol   *Symbol
	Kind     ActionType
	Existing Action
	Incoming Action
	Resolved Action
	g        *Grammar
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d: %s conflict on %q: %s vs %s, resolved as %s",
		c.State, c.Kind, c.Symbol.Name,
		c.actionString(c.Existing), c.actionString(c.Incoming), c.actionString(c.Resolved))
}

func (c Conflict) actionString(a Action) string {
	if a.Type == ReduceAction && c.g != nil {
		return fmt.Sprintf("reduce %d (%s)", a.Value, c.g.Production(a.Value))
	}
	return a.String()
}
