package golox_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/config"
	"github.com/freddie-nelson/golox/internal/golox"
)

// run executes source as a single script and returns its stdout, with the
// trailing newline trimmed for easy comparison.
func run(t *testing.T, source string) (string, *golox.Runtime) {
	t.Helper()

	var out, errOut bytes.Buffer
	rt := golox.New(config.Default(), &out, &errOut, strings.NewReader(""))

	code := rt.RunFile(writeTempScript(t, source))
	require.Equal(t, golox.ExitOK, code, "stderr: %s", errOut.String())

	return strings.TrimRight(out.String(), "\n"), rt
}

func writeTempScript(t *testing.T, source string) string {
	t.Helper()
	f, err := newTempFile(t, source)
	require.NoError(t, err)
	return f
}

// --- end-to-end scenarios ---

func TestScenario1_ArithmeticPrint(t *testing.T) {
	out, _ := run(t, `print 1 + 2;`)
	assert.Equal(t, "3", out)
}

func TestScenario2_StringNumberConcat(t *testing.T) {
	out, _ := run(t, `var a = "hi"; print a + 1;`)
	assert.Equal(t, "hi1", out)
}

func TestScenario3_ClosureCapturesByReference(t *testing.T) {
	out, _ := run(t, `
fun make() {
  var i = 0;
  fun next() { i = i + 1; return i; }
  return next;
}
var n = make();
print n();
print n();
print n();
`)
	assert.Equal(t, "1\n2\n3", out)
}

func TestScenario4_SuperCallsParentImplementation(t *testing.T) {
	out, _ := run(t, `
class A { greet() { print "a"; } }
class B < A { greet() { super.greet(); print "b"; } }
B().greet();
`)
	assert.Equal(t, "a\nb", out)
}

func TestScenario5_InitializerFieldAssignment(t *testing.T) {
	out, _ := run(t, `
class C { init(x) { this.x = x; } }
print C(7).x;
`)
	assert.Equal(t, "7", out)
}

func TestScenario6_ContinueRunsIncrementBeforeLoopTest(t *testing.T) {
	out, _ := run(t, `
for (var i = 0; i < 3; i = i + 1) {
  if (i == 1) continue;
  print i;
}
`)
	assert.Equal(t, "0\n2", out)
}

func TestScenario7_ClockIsMonotonicNonDecreasing(t *testing.T) {
	out, _ := run(t, `print clock() - clock() <= 0;`)
	assert.Equal(t, "true", out)
}

func TestScenario8_GlobalSelfReferenceAllowedLocalRejected(t *testing.T) {
	// At top level the resolver accepts `var a = a;`; reading the not yet
	// defined global then fails at runtime rather than statically.
	var out, errOut bytes.Buffer
	rt := golox.New(config.Default(), &out, &errOut, strings.NewReader(""))
	code1 := rt.RunFile(writeTempScript(t, `var a = a;`))
	assert.Equal(t, golox.ExitRuntime, code1)
	assert.Equal(t, "", out.String())
	assert.True(t, rt.HadRuntimeError())
	assert.Contains(t, errOut.String(), "Undefined variable 'a'.")

	var out2, errOut2 bytes.Buffer
	rt2 := golox.New(config.Default(), &out2, &errOut2, strings.NewReader(""))
	code := rt2.RunFile(writeTempScript(t, `{ var a = a; }`))
	assert.Equal(t, golox.ExitStatic, code)
	assert.Contains(t, errOut2.String(), "Can't read local variable in its own initializer.")
}
