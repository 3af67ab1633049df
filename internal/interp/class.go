package interp

import (
	"github.com/dolthub/swiss"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/token"
)

// Class is the runtime object backing a class declaration. A class is
// itself "instance-like": static member access reuses the same
// get protocol as Instance.get, just walking the static tables instead of
// the instance ones.
type Class struct {
	Name       string
	Superclass *Class

	fields        *swiss.Map[string, interface{}]
	methods       *swiss.Map[string, *Function]
	getters       *swiss.Map[string, *Function]
	staticMethods *swiss.Map[string, *Function]
	staticGetters *swiss.Map[string, *Function]
}

var (
	_ Callable = (*Class)(nil)
	_ gettable = (*Class)(nil)
	_ settable = (*Class)(nil)
)

// NewClass builds the class object and, if a static `init` exists, invokes
// it with zero arguments (its arity must be 0, enforced by the resolver).
func NewClass(it *Interpreter, name string, superclass *Class,
	methods, getters, staticMethods, staticGetters map[string]*Function) (*Class, error) {

	c := &Class{
		Name:          name,
		Superclass:    superclass,
		fields:        swiss.NewMap[string, interface{}](4),
		methods:       toSwiss(methods),
		getters:       toSwiss(getters),
		staticMethods: toSwiss(staticMethods),
		staticGetters: toSwiss(staticGetters),
	}

	if init, ok := c.findStaticMethod("init"); ok {
		if _, err := init.Bind(c).Call(it, nil); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func toSwiss(m map[string]*Function) *swiss.Map[string, *Function] {
	sm := swiss.NewMap[string, *Function](uint32(len(m) + 1))
	for k, v := range m {
		sm.Put(k, v)
	}
	return sm
}

func (c *Class) String() string { return c.Name }

// Arity delegates to the instance `init` method, walked through the
// inheritance chain; a class with no initializer takes zero arguments.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, binding and invoking `init` if present.
func (c *Class) Call(it *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) findMethod(name string) (*Function, bool) {
	if f, ok := c.methods.Get(name); ok {
		return f, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

func (c *Class) findGetter(name string) (*Function, bool) {
	if f, ok := c.getters.Get(name); ok {
		return f, true
	}
	if c.Superclass != nil {
		return c.Superclass.findGetter(name)
	}
	return nil, false
}

func (c *Class) findStaticMethod(name string) (*Function, bool) {
	if f, ok := c.staticMethods.Get(name); ok {
		return f, true
	}
	if c.Superclass != nil {
		return c.Superclass.findStaticMethod(name)
	}
	return nil, false
}

func (c *Class) findStaticGetter(name string) (*Function, bool) {
	if f, ok := c.staticGetters.Get(name); ok {
		return f, true
	}
	if c.Superclass != nil {
		return c.Superclass.findStaticGetter(name)
	}
	return nil, false
}

// get implements static member access: own static field, then getter
// (invoked bound to the class itself), then a bound static method.
func (c *Class) get(it *Interpreter, name token.Token) (interface{}, error) {
	if v, ok := c.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if getter, ok := c.findStaticGetter(name.Lexeme); ok {
		return getter.Bind(c).Call(it, nil)
	}
	if method, ok := c.findStaticMethod(name.Lexeme); ok {
		return method.Bind(c), nil
	}
	return nil, loxerr.NewRuntime(name, "Undefined property '"+name.Lexeme+"'.")
}

// Set inserts or overwrites a static field, reached through `this` inside
// a static method/initializer or directly through the class name once
// bound (`ClassName.x = ...`).
func (c *Class) Set(name token.Token, value interface{}) {
	c.fields.Put(name.Lexeme, value)
}
