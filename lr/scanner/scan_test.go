package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		count := 0
		for scanner.HasNext() {
			token := scanner.Next()
			t.Logf(" %6s | %15s | @%5d", token.Terminal(), token.Lexeme(), token.Span().From())
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoTokenizerTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	ts := GoTokenizer("test", strings.NewReader(`if x then 'c' else "s" // c`),
		Keywords("if", "then", "else"), UnifyStrings(true), SkipComments(false))
	var terminals []string
	for ts.HasNext() {
		terminals = append(terminals, ts.Next().Terminal())
	}
	assert.Equal(t, []string{"if", "id", "then", "string", "else", "string", "comment"}, terminals)
	assert.Nil(t, ts.Peek())
	assert.Nil(t, ts.Next())
}

func TestGoTokenizerPeek(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pitaya.scanner")
	defer teardown()
	//
	ts := GoTokenizer("test", strings.NewReader("a + 42"), TerminalFor(Int, "INT"))
	tok := ts.Peek()
	assert.Equal(t, tok, ts.Peek())
	assert.Equal(t, tok, ts.Next())
	assert.Equal(t, "+", ts.Next().Terminal())
	tok = ts.Next()
	assert.Equal(t, "INT", tok.Terminal())
	assert.Equal(t, "42", tok.Lexeme())
	assert.Equal(t, uint64(4), tok.Span().From())
	assert.Equal(t, uint64(6), tok.Span().To())
	assert.False(t, ts.HasNext())
}

func TestTokenSlice(t *testing.T) {
	ts := Tokens("id", "+", "id")
	assert.True(t, ts.HasNext())
	assert.Equal(t, "id", ts.Peek().Terminal())
	assert.Equal(t, "id", ts.Next().Terminal())
	assert.Equal(t, "+", ts.Next().Terminal())
	tok := ts.Next()
	assert.Equal(t, uint64(2), tok.Span().From())
	assert.Equal(t, uint64(1), tok.Span().Len())
	assert.False(t, ts.HasNext())
	assert.Nil(t, ts.Peek())
	assert.Nil(t, ts.Next())
}
