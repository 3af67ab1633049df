package interp

import (
	"fmt"

	"github.com/freddie-nelson/golox/internal/ast"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/token"
)

// Function wraps a function/method/getter declaration with its closure.
// Function literals (ast.FunctionExpr) carry an empty Name.
type Function struct {
	Name          string
	Params        []token.Token
	Body          []ast.Stmt
	closure       *Environment
	isInitializer bool
	isGetter      bool
}

var _ Callable = (*Function)(nil)

// NewFunction builds a Function closing over env.
func NewFunction(name string, params []token.Token, body []ast.Stmt, closure *Environment, isInitializer, isGetter bool) *Function {
	return &Function{
		Name:          name,
		Params:        params,
		Body:          body,
		closure:       closure,
		isInitializer: isInitializer,
		isGetter:      isGetter,
	}
}

// Bind returns a new Function whose closure encloses the original one, with
// "this" defined as instance — used to produce bound methods/getters (and,
// for static members, with instance being the Class itself).
func (f *Function) Bind(this interface{}) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", this)
	return NewFunction(f.Name, f.Params, f.Body, env, f.isInitializer, f.isGetter)
}

// Call executes the function body in a fresh frame enclosing the closure.
func (f *Function) Call(it *Interpreter, args []interface{}) (interface{}, error) {
	it.callDepth++
	defer func() { it.callDepth-- }()
	if it.callDepth > it.maxCallDepth {
		return nil, loxerr.NewRuntime(token.Token{Line: 0}, "Stack overflow.")
	}

	if it.tracer.Enabled() {
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		it.tracer.Call(name, len(args))
	}

	env := NewEnvironment(f.closure)
	for i, param := range f.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := it.executeBlock(f.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.isInitializer {
				return f.closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int { return len(f.Params) }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}
