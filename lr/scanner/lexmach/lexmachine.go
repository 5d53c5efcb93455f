package lexmach

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Albeforia/Pitaya"
	"github.com/Albeforia/Pitaya/lr"
	"github.com/Albeforia/Pitaya/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'pitaya.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pitaya.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names map[int]string // token ID → terminal name
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating terminal names to token IDs.
// Literals and keywords take priority over the patterns added by init.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{
		names: make(map[int]string, len(tokenIds)),
	}
	for name, id := range tokenIds {
		adapter.names[id] = name
	}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(name), MakeToken(name, tokenIds[name]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

var word = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ForGrammar creates an adapter which recognizes the terminals of a grammar.
// Terminals which look like words become keywords, all others literals. Terminals
// may be given a regular expression in patterns instead, e.g. "id" → `[a-z]+`.
// Whitespace is skipped.
func ForGrammar(g *lr.Grammar, patterns map[string]string) (*LMAdapter, error) {
	var literals, keywords []string
	tokenIds := make(map[string]int)
	g.EachSymbol(func(sym *lr.Symbol) {
		if !sym.IsTerminal() || sym == g.Endmark() {
			return
		}
		tokenIds[sym.Name] = sym.Index()
		if _, ok := patterns[sym.Name]; ok {
			return
		}
		if word.MatchString(sym.Name) {
			keywords = append(keywords, sym.Name)
		} else {
			literals = append(literals, sym.Name)
		}
	})
	var err error
	init := func(lexer *lexmachine.Lexer) {
		names := make([]string, 0, len(patterns))
		for name := range patterns {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			id, ok := tokenIds[name]
			if !ok {
				err = fmt.Errorf("pattern for %q, which is not a terminal of grammar %q", name, g.Name)
				continue
			}
			lexer.Add([]byte(patterns[name]), MakeToken(name, id))
		}
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter, cerr := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, cerr
}

// quote escapes every character of a literal which is not a letter or digit.
func quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UnmatchedInput is the terminal name of tokens for input no pattern matches.
const UnmatchedInput = ""

// Scanner creates a scanner for a given input. The scanner will implement the
// TokenStream interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, names: lm.names, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// TokenStream interface.
type LMScanner struct {
	scanner   *lexmachine.Scanner
	names     map[int]string
	lookahead pitaya.Token
	eof       bool
	Error     func(error)
}

var _ scanner.TokenStream = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// HasNext is part of the TokenStream interface.
func (lms *LMScanner) HasNext() bool {
	return lms.Peek() != nil
}

// Peek is part of the TokenStream interface. Returns nil at the end of input.
func (lms *LMScanner) Peek() pitaya.Token {
	if lms.lookahead == nil && !lms.eof {
		lms.lookahead = lms.nextToken()
	}
	return lms.lookahead
}

// Next is part of the TokenStream interface. Returns nil at the end of input.
func (lms *LMScanner) Next() pitaya.Token {
	tok := lms.Peek()
	lms.lookahead = nil
	return tok
}

// nextToken reads a token from lexmachine. Unconsumed input is reported to the
// error handler and delivered as a token with an empty terminal name, which no
// grammar defines.
func (lms *LMScanner) nextToken() pitaya.Token {
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.Error(err)
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.eof = true
			return nil
		}
		end := ui.FailTC
		if end <= ui.StartTC {
			end = ui.StartTC + 1
		}
		if end > len(ui.Text) {
			end = len(ui.Text)
		}
		lms.scanner.TC = end
		return scanner.MakeDefaultToken(
			UnmatchedInput,
			string(ui.Text[ui.StartTC:end]),
			pitaya.Span{uint64(ui.StartTC), uint64(end)},
		)
	}
	if eof {
		lms.eof = true
		return nil
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		lms.names[token.Type],
		string(token.Lexeme),
		pitaya.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
