package lalr

import (
	"fmt"

	"github.com/Albeforia/Pitaya"
	"github.com/Albeforia/Pitaya/lr"
)

// EventType is the type of a parse event.
type EventType int8

// Parse events
const (
	ShiftEvent EventType = iota
	ReduceEvent
	AcceptEvent
	ErrorEvent
)

func (t EventType) String() string {
	switch t {
	case ShiftEvent:
		return "shift"
	case ReduceEvent:
		return "reduce"
	case AcceptEvent:
		return "accept"
	}
	return "error"
}

// Event is delivered to a parser's listener for every step of a parse.
//
//    Shift:  Token has been shifted in State, moving to Target
//    Reduce: Production has been reduced in State; Target is the goto state,
//            Span the input covered by the production
//    Accept: the input has been accepted in State
//    Error:  no action for Token (nil at end of input) in State
type Event struct {
	Type       EventType
	State      int
	Token      pitaya.Token
	Production *lr.Production
	Target     int
	Span       pitaya.Span
}

func (e Event) String() string {
	switch e.Type {
	case ShiftEvent:
		return fmt.Sprintf("shift %s", e.Token.Terminal())
	case ReduceEvent:
		return fmt.Sprintf("reduce %s", e.Production)
	case AcceptEvent:
		return "accept"
	}
	if e.Token == nil {
		return "error at end of input"
	}
	return fmt.Sprintf("error at %s", e.Token.Terminal())
}
