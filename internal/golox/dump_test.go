package golox_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/freddie-nelson/golox/internal/config"
	"github.com/freddie-nelson/golox/internal/golox"
)

// TestDumpResolutionEmitsResolvedLocals exercises --dump-resolution: the
// resolver's distance map for nested blocks should contain an entry for a
// local read from the enclosing block, queried back out with gjson.
func TestDumpResolutionEmitsResolvedLocals(t *testing.T) {
	var out, errOut bytes.Buffer
	rt := golox.New(config.Default(), &out, &errOut, strings.NewReader(""))
	rt.SetDumpResolution(true)

	path := writeTempScript(t, `
{
  var outer = 1;
  {
    var inner = outer;
    print inner;
  }
}
`)
	code := rt.RunFile(path)
	require.Equal(t, golox.ExitOK, code, "stderr: %s", errOut.String())

	lines := strings.SplitN(out.String(), "\n", 2)
	require.NotEmpty(t, lines)
	dump := lines[0]

	require.True(t, gjson.Valid(dump), "dump is not valid JSON: %s", dump)

	entries := gjson.Parse(dump).Array()
	require.NotEmpty(t, entries)

	found := false
	for _, e := range entries {
		if e.Get("kind").String() == "variable" && e.Get("name").String() == "outer" {
			found = true
			assert.GreaterOrEqual(t, e.Get("distance").Int(), int64(0))
		}
	}
	assert.True(t, found, "expected a resolved 'outer' variable entry in: %s", dump)
}
