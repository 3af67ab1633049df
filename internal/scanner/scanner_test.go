package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/scanner"
	"github.com/freddie-nelson/golox/internal/token"
)

type collectingReporter struct {
	messages []string
}

func (r *collectingReporter) Error(line int, message string)         { r.messages = append(r.messages, message) }
func (r *collectingReporter) TokenError(tok token.Token, msg string) { r.messages = append(r.messages, msg) }
func (r *collectingReporter) HadError() bool                        { return len(r.messages) > 0 }

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestScanTokensBasicPunctuationAndOperators(t *testing.T) {
	r := &collectingReporter{}
	tokens := scanner.New(`(){},.+-;*!= == <= >= <>/ =`, r).ScanTokens()
	require.False(t, r.HadError())

	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Plus, token.Minus, token.Semicolon, token.Star,
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Slash, token.Equal, token.Eof,
	}, kinds(tokens))
}

func TestScanTokensKeywordsIncludingBreakContinue(t *testing.T) {
	r := &collectingReporter{}
	tokens := scanner.New(`break continue class fun this super`, r).ScanTokens()
	require.False(t, r.HadError())

	assert.Equal(t, []token.Kind{
		token.Break, token.Continue, token.Class, token.Fun, token.This, token.Super, token.Eof,
	}, kinds(tokens))
}

func TestScanTokensLineCommentIgnored(t *testing.T) {
	r := &collectingReporter{}
	tokens := scanner.New("1 // trailing comment\n2", r).ScanTokens()
	require.False(t, r.HadError())
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
}

func TestScanTokensNestedBlockComment(t *testing.T) {
	r := &collectingReporter{}
	tokens := scanner.New("1 /* outer /* inner */ still outer */ 2", r).ScanTokens()
	require.False(t, r.HadError())
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
}

func TestScanTokensUnterminatedBlockCommentReportsError(t *testing.T) {
	r := &collectingReporter{}
	scanner.New("1 /* never closed", r).ScanTokens()
	assert.True(t, r.HadError())
	assert.Contains(t, r.messages, "Unterminated block comment.")
}

func TestScanTokensStringAndNumberLiterals(t *testing.T) {
	r := &collectingReporter{}
	tokens := scanner.New(`"hello" 3.14`, r).ScanTokens()
	require.False(t, r.HadError())
	require.Len(t, tokens, 3)
	assert.Equal(t, "hello", tokens[0].Literal)
	assert.Equal(t, 3.14, tokens[1].Literal)
}

func TestScanTokensUnexpectedCharacterReportsError(t *testing.T) {
	r := &collectingReporter{}
	scanner.New("@", r).ScanTokens()
	assert.True(t, r.HadError())
	assert.Contains(t, r.messages, "Unexpected character '@'.")
}
