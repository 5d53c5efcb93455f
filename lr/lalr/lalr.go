/*
Package lalr provides a table-driven LALR(1)-parser. Clients have to use the
tools of package lr to build the automaton for a grammar. The parser utilizes
the automaton's action table to create a right derivation for a given input,
provided through a token stream.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the automaton from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

This grammar is subjected to automaton construction.

	a := lr.Build(g)

Finally parse some input:

	p := lalr.NewParser(a)
	accepted, err := p.Parse(scanner.Tokens("+", "a"))

Conflicts of the grammar have been resolved during construction, so every
grammar can be parsed; whether the resolution matches the intended language
is up to the grammar author. Clients may follow the parse by registering a
listener for parse events.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lalr

import (
	"fmt"
	"strings"

	"github.com/Albeforia/Pitaya"
	"github.com/Albeforia/Pitaya/lr"
	"github.com/Albeforia/Pitaya/lr/scanner"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pitaya.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.lr")
}

// Parser is an LALR(1)-parser type. Create and initialize one with lalr.NewParser(...)
type Parser struct {
	a          *lr.Automaton
	g          *lr.Grammar
	stack      *arraystack.Stack // of stackitem
	listener   func(Event)
	reductions []*lr.Production
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	state int         // ID of an automaton state
	sym   *lr.Symbol  // symbol which led to this state
	span  pitaya.Span // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(*Parser)

// WithListener sets a listener which receives every parse event.
func WithListener(l func(Event)) Option {
	return func(p *Parser) {
		p.listener = l
	}
}

// NewParser creates an LALR(1) parser for an automaton.
func NewParser(a *lr.Automaton, opts ...Option) *Parser {
	p := &Parser{
		a:     a,
		g:     a.Grammar(),
		stack: arraystack.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reductions returns the productions reduced during the last parse, in order.
// For an accepted input, this is the reverse of a right-most derivation.
func (p *Parser) Reductions() []*lr.Production {
	return p.reductions
}

// Parse parses the input delivered by a token stream.
// It returns true if the input has been accepted. Parsing stops at the first
// error; the error is either a *SyntaxError or an *UndefinedSymbolError.
func (p *Parser) Parse(ts scanner.TokenStream) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.a == nil {
		return false, fmt.Errorf("LALR(1)-parser not initialized")
	}
	p.stack.Clear()
	p.reductions = nil
	p.stack.Push(stackitem{state: p.a.InitialState()})
	var pos uint64
	for ts.HasNext() {
		token := ts.Peek()
		pos = token.Span().From()
		sym, err := p.terminal(token)
		if err != nil {
			p.emit(Event{Type: ErrorEvent, State: p.tos().state, Token: token})
			return false, err
		}
		state := p.tos().state
		action := p.action(state, sym)
		tracer().Debugf("action(%d,%s)=%s", state, sym, action)
		switch action.Type {
		case lr.ShiftAction:
			ts.Next()
			p.stack.Push(stackitem{state: action.Value, sym: sym, span: token.Span()})
			pos = token.Span().To()
			p.emit(Event{Type: ShiftEvent, State: state, Token: token, Target: action.Value, Span: token.Span()})
		case lr.ReduceAction:
			p.reduce(state, p.g.Production(action.Value), pos)
		case lr.AcceptAction:
			p.emit(Event{Type: AcceptEvent, State: state})
			return true, nil
		default:
			p.emit(Event{Type: ErrorEvent, State: state, Token: token})
			return false, p.syntaxError(state, token)
		}
	}
	for { // end of input
		state := p.tos().state
		action := p.a.Action(state, p.g.Endmark())
		tracer().Debugf("action(%d,%s)=%s", state, p.g.Endmark(), action)
		switch action.Type {
		case lr.ReduceAction:
			p.reduce(state, p.g.Production(action.Value), pos)
		case lr.AcceptAction:
			p.emit(Event{Type: AcceptEvent, State: state})
			return true, nil
		default:
			p.emit(Event{Type: ErrorEvent, State: state})
			return false, p.syntaxError(state, nil)
		}
	}
}

// terminal maps a token to a terminal of the grammar. Tokens for unknown
// terminals map to the endmark, which must never appear in the input.
func (p *Parser) terminal(token pitaya.Token) (*lr.Symbol, error) {
	sym := p.g.Lookup(token.Terminal())
	if sym == p.g.Endmark() || !sym.IsTerminal() {
		return nil, &UndefinedSymbolError{
			Terminal: token.Terminal(),
			Lexeme:   token.Lexeme(),
			Span:     token.Span(),
		}
	}
	return sym, nil
}

// action looks up the action for a terminal. Multi-terminals fall back to their
// shared terminal.
func (p *Parser) action(state int, sym *lr.Symbol) lr.Action {
	action := p.a.Action(state, sym)
	if action.IsError() && sym.Kind() == lr.MultiTerminal {
		tracer().Debugf("no action for %s, trying %s", sym, sym.SharedTerminal())
		action = p.a.Action(state, sym.SharedTerminal())
	}
	return action
}

// reduce performs a reduce action for a production
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// After popping them, the goto for the LHS is pushed.
func (p *Parser) reduce(state int, prod *lr.Production, pos uint64) {
	tracer().Infof("reduce %v", prod)
	var handlespan pitaya.Span
	for i := prod.Len() - 1; i >= 0; i-- {
		tos := p.pop()
		if tos.sym != prod.RHS()[i] && tos.sym.SharedTerminal() != prod.RHS()[i] {
			tracer().Errorf("Expected %v on top of stack, got %v", prod.RHS()[i], tos.sym)
		}
		handlespan = handlespan.Extend(tos.span)
	}
	if handlespan.IsNull() { // resulted from an epsilon production
		handlespan = pitaya.Span{pos, pos} // epsilon was just before lookahead
	}
	from := p.tos().state
	gotoAction := p.a.Action(from, prod.LHS)
	if gotoAction.Type != lr.GotoAction {
		panic(fmt.Sprintf("no goto for %s in state %d after reducing %s", prod.LHS, from, prod))
	}
	p.stack.Push(stackitem{state: gotoAction.Value, sym: prod.LHS, span: handlespan})
	p.reductions = append(p.reductions, prod)
	p.emit(Event{
		Type:       ReduceEvent,
		State:      state,
		Production: prod,
		Target:     gotoAction.Value,
		Span:       handlespan,
	})
}

func (p *Parser) tos() stackitem {
	v, ok := p.stack.Peek()
	if !ok {
		panic("parse stack is empty")
	}
	return v.(stackitem)
}

func (p *Parser) pop() stackitem {
	v, ok := p.stack.Pop()
	if !ok || p.stack.Empty() {
		panic("parse stack underflow")
	}
	return v.(stackitem)
}

func (p *Parser) emit(e Event) {
	if p.listener != nil {
		p.listener(e)
	}
}

func (p *Parser) syntaxError(state int, token pitaya.Token) *SyntaxError {
	var expected []string
	p.a.GetState(state).EachAction(func(sym int, a lr.Action) {
		if s := p.g.Symbol(sym); s.IsTerminal() && a.Type != lr.GotoAction {
			expected = append(expected, s.Name)
		}
	})
	err := &SyntaxError{State: state, Token: token, Expected: expected}
	tracer().Errorf("%v", err)
	return err
}

// --- Errors ----------------------------------------------------------------

// SyntaxError is returned if the parser finds no action for the next input
// token. Token is nil if the input ended prematurely.
type SyntaxError struct {
	State    int
	Token    pitaya.Token
	Expected []string // terminals with an action in State
}

func (e *SyntaxError) Error() string {
	exp := strings.Join(e.Expected, " ")
	if e.Token == nil {
		return fmt.Sprintf("syntax error: unexpected end of input, expected one of [%s]", exp)
	}
	return fmt.Sprintf("syntax error at %s: unexpected %q, expected one of [%s]",
		e.Token.Span(), e.Token.Lexeme(), exp)
}

// UndefinedSymbolError is returned for tokens whose terminal is not part of the
// grammar. Scanners deliver input they cannot match with an empty terminal name.
type UndefinedSymbolError struct {
	Terminal string
	Lexeme   string
	Span     pitaya.Span
}

func (e *UndefinedSymbolError) Error() string {
	if e.Terminal == "" {
		return fmt.Sprintf("undefined input %q at %s", e.Lexeme, e.Span)
	}
	return fmt.Sprintf("undefined symbol %q at %s (input %q)", e.Terminal, e.Span, e.Lexeme)
}
