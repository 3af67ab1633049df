package interp

import (
	"github.com/dolthub/swiss"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/token"
)

// Environment is one lexical scope's name->value frame, plus a link to its
// enclosing frame. Frames are backed by a Swiss-table hash map
// (github.com/dolthub/swiss) instead of a built-in map, since variable
// lookup is the interpreter's hottest path.
type Environment struct {
	values    *swiss.Map[string, interface{}]
	enclosing *Environment
}

// NewEnvironment builds a frame enclosed by parent (nil for the globals
// frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, interface{}](8), enclosing: parent}
}

// Define inserts or overwrites name in the current frame.
func (e *Environment) Define(name string, value interface{}) {
	e.values.Put(name, value)
}

// Get looks up name in the current frame, walking enclosing frames when a
// global lookup is needed (distance unknown). This does NOT stop at the
// first frame — it walks the whole chain, matching the "global path"
// fallback used when the resolver found no local binding.
func (e *Environment) Get(name token.Token) (interface{}, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, loxerr.NewRuntime(name, "Undefined variable '"+name.Lexeme+"'.")
}

// Assign updates name in the first frame (starting here) where it already
// exists, walking outward to the globals frame if necessary.
func (e *Environment) Assign(name token.Token, value interface{}) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return loxerr.NewRuntime(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetAt reads name directly out of the frame `distance` links up the chain.
// The resolver guarantees this frame exists and holds the binding.
func (e *Environment) GetAt(distance int, name string) interface{} {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes value directly into the frame `distance` links up.
func (e *Environment) AssignAt(distance int, name token.Token, value interface{}) {
	e.ancestor(distance).values.Put(name.Lexeme, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
