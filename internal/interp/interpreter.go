package interp

import (
	"fmt"
	"io"

	"github.com/freddie-nelson/golox/internal/ast"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/resolver"
	"github.com/freddie-nelson/golox/internal/token"
	"github.com/freddie-nelson/golox/internal/tracer"
)

// Interpreter walks a resolved statement list and executes it. It holds
// the globals frame, the current frame, the resolver's distance map, and
// the output sink `print` writes to.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Locals

	out    io.Writer
	tracer *tracer.Tracer

	callDepth    int
	maxCallDepth int
}

var (
	_ ast.ExprVisitor = (*Interpreter)(nil)
	_ ast.StmtVisitor = (*Interpreter)(nil)
)

// New builds an Interpreter writing `print` output to out. maxCallDepth
// bounds recursive Function.Call nesting (config key maxCallDepth).
func New(out io.Writer, maxCallDepth int) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", Clock{})

	return &Interpreter{
		globals:      globals,
		environment:  globals,
		out:          out,
		maxCallDepth: maxCallDepth,
	}
}

// SetLocals installs the resolver's variable-distance map. Must be called
// before Interpret.
func (it *Interpreter) SetLocals(locals resolver.Locals) {
	it.locals = locals
}

// SetTracer installs a Tracer. A nil tracer is a silent no-op.
func (it *Interpreter) SetTracer(t *tracer.Tracer) {
	it.tracer = t
}

// Interpret executes statements in program order, stopping at the first
// runtime error.
func (it *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execute(stmt ast.Stmt) error {
	if it.tracer.Enabled() {
		it.tracer.Stmt(fmt.Sprintf("%T", stmt), stmtLine(stmt))
	}
	return stmt.Accept(it)
}

// stmtLine extracts a source line from statement kinds that carry a token,
// for trace output only; statements with no token trace as line 0.
func stmtLine(stmt ast.Stmt) int {
	switch s := stmt.(type) {
	case *ast.Return:
		return s.Keyword.Line
	case *ast.Break:
		return s.Keyword.Line
	case *ast.Continue:
		return s.Keyword.Line
	case *ast.Var:
		return s.Name.Line
	case *ast.Function:
		return s.Name.Line
	case *ast.Class:
		return s.Name.Line
	default:
		return 0
	}
}

func (it *Interpreter) evaluate(expr ast.Expr) (interface{}, error) {
	return expr.Accept(it)
}

// executeBlock runs statements in env, restoring the previous frame on
// every exit path (normal completion, error, or a break/continue/return
// signal).
func (it *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := it.environment
	it.environment = env
	defer func() { it.environment = previous }()

	for _, stmt := range statements {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (interface{}, error) {
	if distance, ok := it.locals[expr]; ok {
		return it.environment.GetAt(distance, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

// --- statements ---

func (it *Interpreter) VisitExpressionStmt(s *ast.Expression) error {
	_, err := it.evaluate(s.Expression)
	return err
}

func (it *Interpreter) VisitPrintStmt(s *ast.Print) error {
	v, err := it.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(it.out, Stringify(v))
	return nil
}

func (it *Interpreter) VisitVarStmt(s *ast.Var) error {
	var value interface{}
	if s.Initializer != nil {
		v, err := it.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	it.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (it *Interpreter) VisitBlockStmt(s *ast.Block) error {
	return it.executeBlock(s.Statements, NewEnvironment(it.environment))
}

func (it *Interpreter) VisitIfStmt(s *ast.If) error {
	cond, err := it.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return it.execute(s.Then)
	}
	if s.Else != nil {
		return it.execute(s.Else)
	}
	return nil
}

// VisitWhileStmt implements both `while` and desugared `for` loops. For a
// desugared for-loop with an increment clause, s.Body is
// Block{[originalBody, incrementStmt]}; a `continue` caught here must still
// run the increment before the condition is re-tested.
func (it *Interpreter) VisitWhileStmt(s *ast.While) error {
	for {
		cond, err := it.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}

		err = it.execute(s.Body)
		if err == nil {
			continue
		}

		switch err.(type) {
		case breakSignal:
			return nil
		case continueSignal:
			if s.IsFor && s.HasIncrement {
				if block, ok := s.Body.(*ast.Block); ok && len(block.Statements) == 2 {
					// Run the increment in a fresh frame, as the body's Block
					// would, so its resolved distances land on the right frame.
					if err := it.executeBlock(block.Statements[1:], NewEnvironment(it.environment)); err != nil {
						return err
					}
				}
			}
			continue
		default:
			return err
		}
	}
}

func (it *Interpreter) VisitFunctionStmt(s *ast.Function) error {
	fn := NewFunction(s.Name.Lexeme, s.Params, s.Body, it.environment, false, s.IsGetter)
	it.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (it *Interpreter) VisitReturnStmt(s *ast.Return) error {
	var value interface{}
	if s.Value != nil {
		v, err := it.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

func (it *Interpreter) VisitBreakStmt(*ast.Break) error {
	return breakSignal{}
}

func (it *Interpreter) VisitContinueStmt(*ast.Continue) error {
	return continueSignal{}
}

// VisitClassStmt implements class declaration evaluation: eval the
// superclass, pre-define the name as nil (so methods can close over
// the eventual class value by reference), optionally push a "super" frame,
// build the four member tables, construct the Class (which runs a static
// initializer if present), then bind the name to the finished class.
func (it *Interpreter) VisitClassStmt(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := it.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return loxerr.NewRuntime(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	it.environment.Define(s.Name.Lexeme, nil)

	closure := it.environment
	if superclass != nil {
		closure = NewEnvironment(it.environment)
		closure.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Params, m.Body, closure, m.Name.Lexeme == "init", false)
	}
	getters := make(map[string]*Function, len(s.Getters))
	for _, g := range s.Getters {
		getters[g.Name.Lexeme] = NewFunction(g.Name.Lexeme, nil, g.Body, closure, false, true)
	}
	staticMethods := make(map[string]*Function, len(s.StaticMethods))
	for _, m := range s.StaticMethods {
		staticMethods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Params, m.Body, closure, false, false)
	}
	staticGetters := make(map[string]*Function, len(s.StaticGetters))
	for _, g := range s.StaticGetters {
		staticGetters[g.Name.Lexeme] = NewFunction(g.Name.Lexeme, nil, g.Body, closure, false, true)
	}

	class, err := NewClass(it, s.Name.Lexeme, superclass, methods, getters, staticMethods, staticGetters)
	if err != nil {
		return err
	}

	return it.environment.Assign(s.Name, class)
}

// --- expressions ---

func (it *Interpreter) VisitLiteralExpr(e *ast.Literal) (interface{}, error) {
	return e.Value, nil
}

func (it *Interpreter) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	return it.evaluate(e.Expression)
}

func (it *Interpreter) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.Bang:
		return !isTruthy(right), nil
	case token.Minus:
		n, err := checkNumberOperand(e.Operator, right)
		if err != nil {
			return nil, err
		}
		return -n, nil
	}
	return nil, nil
}

func (it *Interpreter) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.Greater:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.Minus:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Star:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Slash:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, loxerr.NewRuntime(e.Operator, "Cannot divide by 0.")
		}
		return l / r, nil
	case token.Plus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if _, ok := left.(string); ok {
			return Stringify(left) + Stringify(right), nil
		}
		if _, ok := right.(string); ok {
			return Stringify(left) + Stringify(right), nil
		}
		return nil, loxerr.NewRuntime(e.Operator, "Operands must be two numbers or two strings.")
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}

	return nil, nil
}

func (it *Interpreter) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return it.evaluate(e.Right)
}

func (it *Interpreter) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	return it.lookUpVariable(e.Name, e)
}

func (it *Interpreter) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	value, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := it.locals[e]; ok {
		it.environment.AssignAt(distance, e.Name, value)
		return value, nil
	}
	if err := it.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (it *Interpreter) evaluateArgs(exprs []ast.Expr) ([]interface{}, error) {
	args := make([]interface{}, len(exprs))
	for i, a := range exprs {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (it *Interpreter) VisitCallExpr(e *ast.Call) (interface{}, error) {
	callee, err := it.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args, err := it.evaluateArgs(e.Arguments)
	if err != nil {
		return nil, err
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, loxerr.NewRuntime(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, loxerr.NewRuntime(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}
	return callable.Call(it, args)
}

func (it *Interpreter) VisitGetExpr(e *ast.Get) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	g, ok := obj.(gettable)
	if !ok {
		return nil, loxerr.NewRuntime(e.Name, "Only instances have properties.")
	}
	return g.get(it, e.Name)
}

func (it *Interpreter) VisitSetExpr(e *ast.Set) (interface{}, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	s, ok := obj.(settable)
	if !ok {
		return nil, loxerr.NewRuntime(e.Name, "Only instances have fields.")
	}

	value, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	s.Set(e.Name, value)
	return value, nil
}

func (it *Interpreter) VisitThisExpr(e *ast.This) (interface{}, error) {
	return it.lookUpVariable(e.Keyword, e)
}

// VisitSuperExpr resolves `super.method` for both instance and static
// context: which table to search is decided by whether the bound `this`
// at that distance is a *Class (static) or a *Instance.
func (it *Interpreter) VisitSuperExpr(e *ast.Super) (interface{}, error) {
	distance := it.locals[e]
	superclass := it.environment.GetAt(distance, "super").(*Class)
	this := it.environment.GetAt(distance-1, "this")

	if _, static := this.(*Class); static {
		if getter, ok := superclass.findStaticGetter(e.Method.Lexeme); ok {
			return getter.Bind(this).Call(it, nil)
		}
		if method, ok := superclass.findStaticMethod(e.Method.Lexeme); ok {
			return method.Bind(this), nil
		}
		return nil, loxerr.NewRuntime(e.Method, "Undefined property '"+e.Method.Lexeme+"'.")
	}

	if getter, ok := superclass.findGetter(e.Method.Lexeme); ok {
		return getter.Bind(this).Call(it, nil)
	}
	if method, ok := superclass.findMethod(e.Method.Lexeme); ok {
		return method.Bind(this), nil
	}
	return nil, loxerr.NewRuntime(e.Method, "Undefined property '"+e.Method.Lexeme+"'.")
}

// VisitSuperCallExpr resolves `super(...)`, the superclass initializer
// call. A superclass with no `init` accepts a zero-argument call and does
// nothing.
func (it *Interpreter) VisitSuperCallExpr(e *ast.SuperCall) (interface{}, error) {
	distance := it.locals[e]
	superclass := it.environment.GetAt(distance, "super").(*Class)
	this := it.environment.GetAt(distance-1, "this")

	args, err := it.evaluateArgs(e.Arguments)
	if err != nil {
		return nil, err
	}

	init, ok := superclass.findMethod("init")
	if !ok {
		if len(args) != 0 {
			return nil, loxerr.NewRuntime(e.Keyword, fmt.Sprintf("Expected 0 arguments but got %d.", len(args)))
		}
		return nil, nil
	}
	if len(args) != init.Arity() {
		return nil, loxerr.NewRuntime(e.Keyword, fmt.Sprintf("Expected %d arguments but got %d.", init.Arity(), len(args)))
	}

	_, err = init.Bind(this).Call(it, args)
	return nil, err
}

func (it *Interpreter) VisitFunctionExprExpr(e *ast.FunctionExpr) (interface{}, error) {
	return NewFunction("", e.Params, e.Body, it.environment, false, false), nil
}

func checkNumberOperand(operator token.Token, operand interface{}) (float64, error) {
	if n, ok := operand.(float64); ok {
		return n, nil
	}
	return 0, loxerr.NewRuntime(operator, "Operand must be a number.")
}

func checkNumberOperands(operator token.Token, left, right interface{}) (float64, float64, error) {
	l, ok := left.(float64)
	if !ok {
		return 0, 0, loxerr.NewRuntime(operator, "Operands must be numbers.")
	}
	r, ok := right.(float64)
	if !ok {
		return 0, 0, loxerr.NewRuntime(operator, "Operands must be numbers.")
	}
	return l, r, nil
}
