package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/ast"
	"github.com/freddie-nelson/golox/internal/parser"
	"github.com/freddie-nelson/golox/internal/scanner"
	"github.com/freddie-nelson/golox/internal/token"
)

type collectingReporter struct{ messages []string }

func (r *collectingReporter) Error(line int, message string) { r.messages = append(r.messages, message) }
func (r *collectingReporter) TokenError(tok token.Token, msg string) {
	r.messages = append(r.messages, msg)
}
func (r *collectingReporter) HadError() bool { return len(r.messages) > 0 }

func parseSource(t *testing.T, source string) ([]ast.Stmt, *collectingReporter) {
	t.Helper()
	r := &collectingReporter{}
	tokens := scanner.New(source, r).ScanTokens()
	require.False(t, r.HadError(), "unexpected scan error: %v", r.messages)
	stmts := parser.New(tokens, r).Parse()
	return stmts, r
}

func TestParsePrintArithmeticExpression(t *testing.T) {
	stmts, r := parseSource(t, `print 1 + 2 * 3;`)
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	print, ok := stmts[0].(*ast.Print)
	require.True(t, ok)

	binary, ok := print.Expression.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Plus, binary.Operator.Kind)

	right, ok := binary.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Star, right.Operator.Kind)
}

// TestForDesugaring verifies the `for` desugaring shape: a While node with
// IsFor/HasIncrement set, whose Body is Block{original, increment} when an
// increment clause is present.
func TestForDesugaring(t *testing.T) {
	stmts, r := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.Block)
	require.True(t, ok, "expected initializer wrapper block")
	require.Len(t, outer.Statements, 2)

	loop, ok := outer.Statements[1].(*ast.While)
	require.True(t, ok)
	assert.True(t, loop.IsFor)
	assert.True(t, loop.HasIncrement)

	body, ok := loop.Body.(*ast.Block)
	require.True(t, ok, "expected body wrapped with increment")
	require.Len(t, body.Statements, 2)

	_, isPrint := body.Statements[0].(*ast.Print)
	assert.True(t, isPrint)
	_, isIncrementExpr := body.Statements[1].(*ast.Expression)
	assert.True(t, isIncrementExpr)
}

func TestParseClassWithGetterAndStaticMember(t *testing.T) {
	stmts, r := parseSource(t, `
class Circle {
  init(radius) { this.radius = radius; }
  area { return 3.14159 * this.radius * this.radius; }
  class create(radius) { return Circle(radius); }
}
`)
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	class, ok := stmts[0].(*ast.Class)
	require.True(t, ok)

	require.Len(t, class.Methods, 1)
	assert.Equal(t, "init", class.Methods[0].Name.Lexeme)

	require.Len(t, class.Getters, 1)
	assert.Equal(t, "area", class.Getters[0].Name.Lexeme)
	assert.True(t, class.Getters[0].IsGetter)

	require.Len(t, class.StaticMethods, 1)
	assert.Equal(t, "create", class.StaticMethods[0].Name.Lexeme)
}

func TestParseFunctionExpression(t *testing.T) {
	stmts, r := parseSource(t, `var f = fun (a, b) { return a + b; };`)
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)

	fn, ok := v.Initializer.(*ast.FunctionExpr)
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	_, r := parseSource(t, `1 + 2 = 3;`)
	assert.True(t, r.HadError())
	assert.Contains(t, r.messages, "Invalid assignment target.")
}
