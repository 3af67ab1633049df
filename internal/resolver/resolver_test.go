package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/parser"
	"github.com/freddie-nelson/golox/internal/resolver"
	"github.com/freddie-nelson/golox/internal/scanner"
	"github.com/freddie-nelson/golox/internal/token"
)

// fakeReporter records every error message reported against it, instead of
// stopping at the first one — mirroring how the real driver lets the
// resolver surface as many static errors as possible in one pass.
type fakeReporter struct {
	messages []string
	errored  bool
}

func (f *fakeReporter) Error(line int, message string) {
	f.messages = append(f.messages, message)
	f.errored = true
}

func (f *fakeReporter) TokenError(tok token.Token, message string) {
	f.messages = append(f.messages, message)
	f.errored = true
}

func (f *fakeReporter) HadError() bool { return f.errored }

func resolveSource(t *testing.T, source string) *fakeReporter {
	t.Helper()

	r := &fakeReporter{}
	sc := scanner.New(source, r)
	tokens := sc.ScanTokens()
	require.False(t, r.HadError(), "unexpected scan error: %v", r.messages)

	p := parser.New(tokens, r)
	statements := p.Parse()
	require.False(t, r.HadError(), "unexpected parse error: %v", r.messages)

	res := resolver.New(r)
	res.Resolve(statements)

	return r
}

// TestStaticErrorRoundTrips checks that a minimal program triggering each
// static rule produces exactly that rule's error message.
func TestStaticErrorRoundTrips(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
	}{
		{
			"read-local-in-own-initializer",
			`{ var a = a; }`,
			"Can't read local variable in its own initializer.",
		},
		{
			"already-declared-in-scope",
			`{ var a = 1; var a = 2; }`,
			"Already a variable with that name in this scope.",
		},
		{
			"unused-local-variable",
			`{ var a = 1; }`,
			"Unused local variable 'a'.",
		},
		{
			"return-outside-function",
			`return 1;`,
			"Can't return from top-level code.",
		},
		{
			"return-value-in-initializer",
			`class A { init() { return 1; } }`,
			"Can't return a value from an initializer.",
		},
		{
			"break-outside-loop",
			`break;`,
			"Illegal continue statement.",
		},
		{
			"continue-outside-loop",
			`continue;`,
			"Illegal continue statement.",
		},
		{
			"this-outside-class",
			`print this;`,
			"Can't use 'this' outside of a class.",
		},
		{
			"super-outside-class",
			`print super.m;`,
			"Can't use 'super' outside of a derived class.",
		},
		{
			"super-before-super-call",
			`class A { m() { return 1; } } class B < A { init() { super.m(); super(); } }`,
			"Can't access property on superclass until 'super' has been called.",
		},
		{
			"super-call-not-derived",
			`class A { init() { super(); } }`,
			"Can't call 'super' outside of class initializer.",
		},
		{
			"super-call-outside-initializer",
			`class A { init() {} } class B < A { m() { super(); } }`,
			"Can't call 'super' outside of class initializer.",
		},
		{
			"super-call-duplicate",
			`class A { init() {} } class B < A { init() { super(); super(); } }`,
			"Can't call 'super' more than once inside class initializer.",
		},
		{
			"self-inheriting-class",
			`class A < A {}`,
			"A class can't inherit from itself.",
		},
		{
			"duplicate-method-and-getter",
			`class A { m() { return 1; } m { return 2; } }`,
			"Duplicate method and getter name.",
		},
		{
			"static-initializer-with-params",
			`class A { class init(x) {} }`,
			"Class static initializer can't have parameters.",
		},
		{
			"uninitialized-superclass-in-derived-initializer",
			`class A { init() {} } class B < A { init() {} }`,
			"Superclass was not initialized inside subclass initializer.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := resolveSource(t, tc.source)
			assert.True(t, r.HadError())
			assert.Contains(t, r.messages, tc.message)
		})
	}
}

func TestWellFormedProgramResolvesCleanly(t *testing.T) {
	r := resolveSource(t, `
class Animal {
  init(name) { this.name = name; }
  speak() { print this.name + " makes a sound."; }
}
class Dog < Animal {
  init(name) { super(name); }
  speak() { super.speak(); print this.name + " barks."; }
}
Dog("Rex").speak();
`)
	assert.False(t, r.HadError(), "unexpected errors: %v", r.messages)
}
