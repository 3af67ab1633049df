package interp

// Callable is implemented by every runtime value that can appear as the
// callee of a Call expression: user functions, bound methods, native
// functions and classes.
type Callable interface {
	Call(it *Interpreter, args []interface{}) (interface{}, error)
	Arity() int
}
