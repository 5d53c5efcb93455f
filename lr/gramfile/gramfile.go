package gramfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Albeforia/Pitaya/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pitaya.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.lr")
}

// Error is returned for malformed lines of a grammar file.
type Error struct {
	Name string // name of the grammar
	Line int    // line number, starting at 1
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

// Read reads a grammar from r. name is used as the name of the grammar and in
// error messages.
func Read(name string, r io.Reader) (*lr.Grammar, error) {
	rd := newReader(name)
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		rd.line++
		words := strings.Fields(lines.Text())
		if len(words) == 0 {
			continue
		}
		for _, w := range words {
			rd.step(w)
		}
		if err := rd.endOfLine(); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", name, err)
	}
	g, err := rd.b.Grammar()
	if err != nil {
		return nil, fmt.Errorf("grammar file %s: %w", name, err)
	}
	return g, nil
}

// --- Reader state machine ----------------------------------------------------

type state int8

const (
	waitLHS     state = iota // at the start of a line
	waitRHS                  // reading the right hand side of a production
	waitDecl                 // after '%', waiting for the declaration keyword
	waitSyms                 // reading the symbols of a declaration
	readComment              // skipping the rest of the line
)

type reader struct {
	name  string
	b     *lr.GrammarBuilder
	state state
	line  int
	prod  *lr.ProductionBuilder
	decl  string   // current declaration keyword
	syms  []string // symbols of the current declaration
	prec  int      // precedence level of the last %left, %right, %none or %token line
}

func newReader(name string) *reader {
	return &reader{
		name: name,
		b:    lr.NewGrammarBuilder(name),
		prec: -1,
	}
}

// step moves the reader to its next state, given the next word of the line.
func (rd *reader) step(word string) {
	switch rd.state {
	case waitLHS:
		if strings.HasPrefix(word, "%") {
			rd.state = waitDecl
			if len(word) > 1 {
				rd.step(word[1:])
			}
			return
		}
		rd.prod = rd.b.LHS(word)
		rd.state = waitRHS
	case waitRHS:
		rd.prod.Sym(word)
	case waitDecl:
		switch word {
		case "left", "right", "none", "token", "multi":
			rd.decl = word
			rd.syms = rd.syms[:0]
			rd.state = waitSyms
		default:
			rd.state = readComment
		}
	case waitSyms:
		rd.syms = append(rd.syms, word)
	case readComment:
	}
}

// endOfLine finishes a production or a declaration.
func (rd *reader) endOfLine() error {
	defer func() { rd.state = waitLHS }()
	switch rd.state {
	case waitRHS:
		p := rd.prod.End()
		tracer().Debugf("%s:%d: %v", rd.name, rd.line, p)
	case waitSyms:
		return rd.declare()
	}
	return nil
}

func (rd *reader) declare() error {
	if len(rd.syms) == 0 {
		return rd.errorf("declaration %%%s without symbols", rd.decl)
	}
	switch rd.decl {
	case "left":
		rd.prec++
		rd.b.Left(rd.prec, rd.syms...)
	case "right":
		rd.prec++
		rd.b.Right(rd.prec, rd.syms...)
	case "none":
		rd.prec++
		rd.b.NonAssoc(rd.prec, rd.syms...)
	case "token":
		rd.prec++
		rd.b.Precedence(rd.prec, rd.syms...)
		rd.b.Token(rd.syms...)
	case "multi":
		if len(rd.syms) < 2 {
			return rd.errorf("%%multi %s needs at least one alias", rd.syms[0])
		}
		rd.b.Multi(rd.syms[0], rd.syms[1:]...)
	}
	tracer().Debugf("%s:%d: %%%s %v", rd.name, rd.line, rd.decl, rd.syms)
	return nil
}

func (rd *reader) errorf(format string, args ...interface{}) *Error {
	return &Error{
		Name: rd.name,
		Line: rd.line,
		Msg:  fmt.Sprintf(format, args...),
	}
}
