package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/token"
)

func nameToken(lexeme string) token.Token {
	return token.New(token.Identifier, lexeme, nil, 1)
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	v, err := env.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(nameToken("missing"))
	assert.Error(t, err)
}

func TestEnvironmentAssignWalksToEnclosingFrame(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)

	err := inner.Assign(nameToken("a"), 2.0)
	require.NoError(t, err)

	v, err := outer.Get(nameToken("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)

	middle.Define("x", "before")

	assert.Equal(t, "before", inner.GetAt(1, "x"))

	inner.AssignAt(1, nameToken("x"), "after")
	assert.Equal(t, "after", inner.GetAt(1, "x"))
}

func TestFunctionBindPreservesOriginalThis(t *testing.T) {
	// A method captured on one instance keeps seeing that instance even
	// after a different "this" enters scope elsewhere.
	it := New(nil, 255)

	class, err := NewClass(it, "Greeter", nil, map[string]*Function{}, nil, nil, nil)
	require.NoError(t, err)

	instanceA := NewInstance(class)
	instanceA.Set(nameToken("name"), "A")
	instanceB := NewInstance(class)
	instanceB.Set(nameToken("name"), "B")

	closure := NewEnvironment(it.globals)
	greet := NewFunction("greet", nil, nil, closure, false, false)

	boundA := greet.Bind(instanceA)
	_ = greet.Bind(instanceB) // binding a second instance must not disturb boundA's frame

	this, err := boundA.closure.Get(nameToken("this"))
	require.NoError(t, err)
	assert.Same(t, instanceA, this)
}
