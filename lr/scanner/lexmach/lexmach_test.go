package lexmach

import (
	"testing"

	"github.com/Albeforia/Pitaya"
	"github.com/Albeforia/Pitaya/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		count := 0
		for sc.HasNext() {
			token := sc.Next()
			t.Logf(" %6s | %15s | @%5d", token.Terminal(), token.Lexeme(), token.Span().From())
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestKeywordsBeforePatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z])+`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("nil nils t")
	var terminals []string
	for sc.HasNext() {
		terminals = append(terminals, sc.Next().Terminal())
	}
	assert.Equal(t, []string{"nil", "ID", "t"}, terminals)
}

func TestForGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Assignments")
	b.LHS("S").T("let").T("id").T(":=").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g, map[string]string{
		"id":  `([a-z])+`,
		"num": `[0-9]+`,
	})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("let x := 42")
	if err != nil {
		t.Fatal(err)
	}
	var terminals, lexemes []string
	for sc.HasNext() {
		tok := sc.Next()
		terminals = append(terminals, tok.Terminal())
		lexemes = append(lexemes, tok.Lexeme())
	}
	assert.Equal(t, []string{"let", "id", ":=", "num"}, terminals)
	assert.Equal(t, []string{"let", "x", ":=", "42"}, lexemes)
	_, err = ForGrammar(g, map[string]string{"nope": `x`})
	assert.Error(t, err)
}

func TestUnconsumedInputIsReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Letters")
	b.LHS("S").T("a").End()
	g, _ := b.Grammar()
	LM, err := ForGrammar(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("a ? a")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	var terminals, lexemes []string
	var spans []pitaya.Span
	for sc.HasNext() {
		tok := sc.Next()
		terminals = append(terminals, tok.Terminal())
		lexemes = append(lexemes, tok.Lexeme())
		spans = append(spans, tok.Span())
	}
	assert.Equal(t, []string{"a", UnmatchedInput, "a"}, terminals)
	assert.Equal(t, "?", lexemes[1])
	assert.Equal(t, pitaya.Span{2, 3}, spans[1])
	assert.Len(t, errs, 1)
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	for i, tok := range tokens {
		tokenIds[tok] = i + 1
	}
}
