package golox_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/freddie-nelson/golox/internal/config"
	"github.com/freddie-nelson/golox/internal/golox"
)

// TestClassHierarchyFixture snapshots the stdout of a larger program
// exercising inheritance, static members, getters and counters together,
// rather than each in isolation.
func TestClassHierarchyFixture(t *testing.T) {
	const source = `
class Shape {
  class create(kind) {
    print "creating " + kind;
  }

  area { return 0; }

  describe() {
    print "a shape with area " + this.area;
  }
}

class Circle < Shape {
  init(radius) {
    super();
    this.radius = radius;
  }

  area { return 3 * this.radius * this.radius; }

  describe() {
    super.describe();
    print "specifically, a circle";
  }
}

Shape.create("circle");
var c = Circle(2);
c.describe();

class Counter {
  class init() {
    this.count = 0;
  }

  class next() {
    Counter.count = Counter.count + 1;
    return Counter.count;
  }
}

print Counter.next();
print Counter.next();
`

	var out, errOut bytes.Buffer
	rt := golox.New(config.Default(), &out, &errOut, strings.NewReader(""))

	path := writeTempScript(t, source)
	code := rt.RunFile(path)
	require.Equal(t, golox.ExitOK, code, "stderr: %s", errOut.String())

	snaps.MatchSnapshot(t, out.String())
}
