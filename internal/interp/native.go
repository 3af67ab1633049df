package interp

import "time"

var processStart = time.Now()

// Clock is the single standard-library primitive the language exposes: a
// zero-argument native function returning wall time in fractional seconds
// since the interpreter process started.
type Clock struct{}

var _ Callable = Clock{}

func (Clock) Call(*Interpreter, []interface{}) (interface{}, error) {
	return time.Since(processStart).Seconds(), nil
}

func (Clock) Arity() int { return 0 }

func (Clock) String() string { return "<native fn>" }
