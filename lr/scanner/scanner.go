/*
Package scanner defines the token stream interface parsers of package lalr read
their input from.

Two default token sources are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.
Clients with pre-tokenized input may use a slice of tokens instead.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/Albeforia/Pitaya"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pitaya.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.scanner")
}

// TokenStream is the input interface of parsers: a forward-only sequence of
// tokens with a one-token lookahead.
type TokenStream interface {
	HasNext() bool
	Peek() pitaya.Token // next token without consuming it
	Next() pitaya.Token // consume the next token
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	terminal string
	lexeme   string
	Val      interface{}
	span     pitaya.Span
}

var _ pitaya.Token = DefaultToken{}

// MakeDefaultToken creates a token for a grammar terminal.
func MakeDefaultToken(terminal string, lexeme string, span pitaya.Span) DefaultToken {
	return DefaultToken{
		terminal: terminal,
		lexeme:   lexeme,
		span:     span,
	}
}

// Terminal is part of interface pitaya.Token.
func (t DefaultToken) Terminal() string {
	return t.terminal
}

// Value returns a client value attached to the token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface pitaya.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface pitaya.Token.
func (t DefaultToken) Span() pitaya.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.lexeme == t.terminal {
		return t.terminal
	}
	return t.terminal + "/" + t.lexeme
}

// --- Token slices ----------------------------------------------------------

// TokenSlice is a token stream over pre-tokenized input.
type TokenSlice struct {
	tokens []pitaya.Token
	pos    int
}

var _ TokenStream = (*TokenSlice)(nil)

// NewTokenSlice creates a token stream for a list of tokens.
func NewTokenSlice(tokens ...pitaya.Token) *TokenSlice {
	return &TokenSlice{tokens: tokens}
}

// Tokens creates a token stream from terminal names. Every token has its
// terminal name as lexeme and spans one position.
func Tokens(terminals ...string) *TokenSlice {
	tokens := make([]pitaya.Token, len(terminals))
	for i, name := range terminals {
		tokens[i] = MakeDefaultToken(name, name, pitaya.Span{uint64(i), uint64(i + 1)})
	}
	return NewTokenSlice(tokens...)
}

// HasNext is part of interface TokenStream.
func (ts *TokenSlice) HasNext() bool {
	return ts.pos < len(ts.tokens)
}

// Peek is part of interface TokenStream. Returns nil at the end of input.
func (ts *TokenSlice) Peek() pitaya.Token {
	if ts.pos >= len(ts.tokens) {
		return nil
	}
	return ts.tokens[ts.pos]
}

// Next is part of interface TokenStream. Returns nil at the end of input.
func (ts *TokenSlice) Next() pitaya.Token {
	tok := ts.Peek()
	if tok != nil {
		ts.pos++
	}
	return tok
}

// --- Go tokenizer ----------------------------------------------------------

// Token classes of the Go tokenizer and the default terminal names they map to.
// Operators and punctuation map to their own text, as do identifiers declared
// as keywords.
var defaultClasses = map[rune]string{
	scanner.Ident:     "id",
	scanner.Int:       "num",
	scanner.Float:     "num",
	scanner.Char:      "char",
	scanner.String:    "string",
	scanner.RawString: "string",
	scanner.Comment:   "comment",
}

// GoStream is a token stream backed by scanner.Scanner.
// Create one with GoTokenizer.
type GoStream struct {
	scanner.Scanner
	classes      map[rune]string
	keywords     map[string]bool
	lookahead    pitaya.Token
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ TokenStream = (*GoStream)(nil)

// GoTokenizer creates a token stream accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoStream {
	t := &GoStream{
		classes:  make(map[rune]string, len(defaultClasses)),
		keywords: make(map[string]bool),
	}
	for class, name := range defaultClasses {
		t.classes[class] = name
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&ScanError{Pos: s.Position.String(), Msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ScanError is reported to the error handler of a tokenizer.
type ScanError struct {
	Pos string
	Msg string
}

func (e *ScanError) Error() string {
	return e.Pos + ": " + e.Msg
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SetErrorHandler sets an error handler for the scanner.
func (t *GoStream) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// HasNext is part of interface TokenStream.
func (t *GoStream) HasNext() bool {
	return t.Peek() != nil
}

// Peek is part of interface TokenStream. Returns nil at the end of input.
func (t *GoStream) Peek() pitaya.Token {
	if t.lookahead == nil {
		t.lookahead = t.scan()
	}
	return t.lookahead
}

// Next is part of interface TokenStream. Returns nil at the end of input.
func (t *GoStream) Next() pitaya.Token {
	tok := t.Peek()
	t.lookahead = nil
	return tok
}

func (t *GoStream) scan() pitaya.Token {
	r := t.Scan()
	if r == scanner.EOF {
		tracer().Debugf("GoTokenizer reached end of input")
		return nil
	}
	if t.unifyStrings && (r == scanner.RawString || r == scanner.Char) {
		r = scanner.String
	}
	text := t.TokenText()
	terminal, isClass := t.classes[r]
	if !isClass || (r == scanner.Ident && t.keywords[text]) {
		terminal = text
	}
	return DefaultToken{
		terminal: terminal,
		lexeme:   text,
		span:     pitaya.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *GoStream)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *GoStream) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *GoStream) {
		t.unifyStrings = b
	}
}

// Keywords declares identifiers which will be delivered with their own text as
// terminal name, instead of the identifier class name.
func Keywords(words ...string) Option {
	return func(t *GoStream) {
		for _, w := range words {
			t.keywords[w] = true
		}
	}
}

// TerminalFor sets the terminal name for a token class of text/scanner, e.g.
//
//    TerminalFor(scanner.Ident, "ID")
func TerminalFor(class rune, terminal string) Option {
	return func(t *GoStream) {
		t.classes[class] = terminal
	}
}

// Class constants are replicated here for practical reasons.
const (
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)
