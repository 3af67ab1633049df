package interp

import (
	"github.com/dolthub/swiss"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/token"
)

// Instance is an object of a user class. Its class link is immutable
// after construction.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, interface{}]
}

var (
	_ gettable = (*Instance)(nil)
	_ settable = (*Instance)(nil)
)

// NewInstance allocates a field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, interface{}](4)}
}

func (i *Instance) String() string { return i.class.Name + " instance" }

// get implements the instance property protocol: own field, then bound
// getter (invoked immediately), then bound method, else a runtime error.
func (i *Instance) get(it *Interpreter, name token.Token) (interface{}, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}

	if getter, ok := i.class.findGetter(name.Lexeme); ok {
		return getter.Bind(i).Call(it, nil)
	}

	if method, ok := i.class.findMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}

	return nil, loxerr.NewRuntime(name, "Undefined property '"+name.Lexeme+"'.")
}

// Set inserts or overwrites a field. Besides instances, only classes (for
// their static fields) have settable fields.
func (i *Instance) Set(name token.Token, value interface{}) {
	i.fields.Put(name.Lexeme, value)
}
