// Package resolver implements the single static pass over a parsed
// program: it fills in a distance map for every variable-bearing
// expression node and rejects programs that violate the language's
// static rules.
package resolver

import (
	"github.com/freddie-nelson/golox/internal/ast"
	"github.com/freddie-nelson/golox/internal/collections"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionMethod
	functionInitializer
	functionStaticInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classDerived
)

type loopType int

const (
	loopNone loopType = iota
	loopWhile
)

// variableState tracks how far along a local binding is: declared (name
// reserved, initializer not yet evaluated), defined (ready to read), or used
// (read or assigned at least once).
type variableState int

const (
	declared variableState = iota
	defined
	used
)

type binding struct {
	name  token.Token
	state variableState
}

// Locals is the resolution map keyed on expression node identity. Absence
// of a key means "resolve from the globals frame at runtime".
type Locals map[ast.Expr]int

// Resolver performs the static pass and populates a Locals map.
type Resolver struct {
	reporter loxerr.Reporter
	locals   Locals
	scopes   *collections.Stack[map[string]*binding]

	currentFunction  functionType
	currentClass     classType
	currentLoop      loopType
	currentSuperCall bool
}

// New builds a Resolver that reports static errors through reporter.
func New(reporter loxerr.Reporter) *Resolver {
	return &Resolver{
		reporter: reporter,
		locals:   make(Locals),
		scopes:   collections.NewStack[map[string]*binding](),
	}
}

// Resolve runs the static pass over a whole program and returns the
// resulting distance map. The caller should not execute the program if
// reporter.HadError() is true afterward.
func (r *Resolver) Resolve(statements []ast.Stmt) Locals {
	r.resolveStatements(statements)
	return r.locals
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	_ = stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	if expr == nil {
		return
	}
	_, _ = expr.Accept(r)
}

// ---- scope stack ----

func (r *Resolver) beginScope() {
	r.scopes.Push(make(map[string]*binding))
}

func (r *Resolver) endScope() {
	scope := r.scopes.Pop()
	for _, b := range scope {
		if b.state != used {
			r.reporter.TokenError(b.name, "Unused local variable '"+b.name.Lexeme+"'.")
		}
	}
}

func (r *Resolver) declare(name token.Token) {
	if r.scopes.IsEmpty() {
		return
	}
	scope := r.scopes.Peek()
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.TokenError(name, "Already a variable with that name in this scope.")
	}
	scope[name.Lexeme] = &binding{name: name, state: declared}
}

func (r *Resolver) define(name token.Token) {
	if r.scopes.IsEmpty() {
		return
	}
	r.scopes.Peek()[name.Lexeme] = &binding{name: name, state: defined}
}

// defineSynthetic defines and immediately marks-used a compiler-introduced
// binding ("this", "super") so it never triggers the unused-variable check.
func (r *Resolver) defineSynthetic(name string) {
	r.scopes.Peek()[name] = &binding{name: token.New(token.Identifier, name, nil, 0), state: used}
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := r.scopes.Size() - 1; i >= 0; i-- {
		scope := r.scopes.At(i)
		if b, ok := scope[name.Lexeme]; ok {
			b.state = used
			r.locals[expr] = r.scopes.Size() - 1 - i
			return
		}
	}
	// Not found in any scope: treat as a global.
}

func (r *Resolver) resolveFunction(name token.Token, params []token.Token, body []ast.Stmt, fnType functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoop := r.currentLoop
	enclosingSuperCall := r.currentSuperCall
	r.currentFunction = fnType
	r.currentLoop = loopNone
	r.currentSuperCall = false

	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(body)
	r.endScope()

	if fnType == functionInitializer && r.currentClass == classDerived && !r.currentSuperCall {
		r.reporter.TokenError(name, "Superclass was not initialized inside subclass initializer.")
	}

	r.currentFunction = enclosingFunction
	r.currentLoop = enclosingLoop
	r.currentSuperCall = enclosingSuperCall
}

// ---- expression visitor ----

var _ ast.ExprVisitor = (*Resolver)(nil)

func (r *Resolver) VisitLiteralExpr(*ast.Literal) (interface{}, error) { return nil, nil }

func (r *Resolver) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	if !r.scopes.IsEmpty() {
		if b, ok := r.scopes.Peek()[e.Name.Lexeme]; ok && b.state == declared {
			r.reporter.TokenError(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.Call) (interface{}, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Arguments {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(e *ast.Get) (interface{}, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(e *ast.Set) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(e *ast.This) (interface{}, error) {
	if r.currentClass == classNone {
		r.reporter.TokenError(e.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(e *ast.Super) (interface{}, error) {
	if r.currentClass == classNone {
		r.reporter.TokenError(e.Keyword, "Can't use 'super' outside of a derived class.")
	} else if r.currentClass != classDerived {
		r.reporter.TokenError(e.Keyword, "Can't use 'super' outside of a derived class.")
	} else if r.currentFunction == functionInitializer && !r.currentSuperCall {
		r.reporter.TokenError(e.Keyword, "Can't access property on superclass until 'super' has been called.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperCallExpr(e *ast.SuperCall) (interface{}, error) {
	switch {
	case r.currentClass == classNone || r.currentClass != classDerived:
		r.reporter.TokenError(e.Keyword, "Can't call 'super' outside of class initializer.")
	case r.currentFunction == functionStaticInitializer:
		r.reporter.TokenError(e.Keyword, "Can't call 'super' outside of class initializer.")
	case r.currentFunction != functionInitializer:
		r.reporter.TokenError(e.Keyword, "Can't call 'super' outside of class initializer.")
	case r.currentSuperCall:
		r.reporter.TokenError(e.Keyword, "Can't call 'super' more than once inside class initializer.")
	default:
		r.currentSuperCall = true
	}

	for _, arg := range e.Arguments {
		r.resolveExpr(arg)
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitFunctionExprExpr(e *ast.FunctionExpr) (interface{}, error) {
	r.resolveFunction(token.Token{}, e.Params, e.Body, functionFunction)
	return nil, nil
}

// ---- statement visitor ----

var _ ast.StmtVisitor = (*Resolver)(nil)

func (r *Resolver) VisitExpressionStmt(s *ast.Expression) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.Print) error {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.Var) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitBlockStmt(s *ast.Block) error {
	r.beginScope()
	r.resolveStatements(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.If) error {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.While) error {
	enclosingLoop := r.currentLoop
	r.currentLoop = loopWhile

	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)

	r.currentLoop = enclosingLoop
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.Function) error {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s.Name, s.Params, s.Body, functionFunction)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.Return) error {
	if r.currentFunction == functionNone {
		r.reporter.TokenError(s.Keyword, "Can't return from top-level code.")
	}

	if s.Value != nil {
		if r.currentFunction == functionInitializer || r.currentFunction == functionStaticInitializer {
			r.reporter.TokenError(s.Keyword, "Can't return a value from an initializer.")
			return nil
		}
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitBreakStmt(s *ast.Break) error {
	if r.currentLoop == loopNone {
		r.reporter.TokenError(s.Keyword, "Illegal continue statement.")
	}
	return nil
}

func (r *Resolver) VisitContinueStmt(s *ast.Continue) error {
	if r.currentLoop == loopNone {
		r.reporter.TokenError(s.Keyword, "Illegal continue statement.")
	}
	return nil
}

func (r *Resolver) VisitClassStmt(s *ast.Class) error {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil && s.Superclass.Name.Lexeme == s.Name.Lexeme {
		r.reporter.TokenError(s.Superclass.Name, "A class can't inherit from itself.")
	}

	if s.Superclass != nil {
		r.currentClass = classDerived
		r.resolveExpr(s.Superclass)
	}

	r.checkDuplicateMembers(s.Methods, s.Getters)
	r.checkDuplicateMembers(s.StaticMethods, s.StaticGetters)

	if s.Superclass != nil {
		r.beginScope()
		r.defineSynthetic("super")
	}

	r.beginScope()
	r.defineSynthetic("this")

	for _, method := range s.Methods {
		fnType := functionMethod
		if method.Name.Lexeme == "init" {
			fnType = functionInitializer
		}
		r.resolveFunction(method.Name, method.Params, method.Body, fnType)
	}
	for _, getter := range s.Getters {
		r.resolveFunction(getter.Name, nil, getter.Body, functionMethod)
	}
	for _, method := range s.StaticMethods {
		fnType := functionStaticInitializer
		if method.Name.Lexeme != "init" {
			fnType = functionMethod
		} else if len(method.Params) > 0 {
			r.reporter.TokenError(method.Name, "Class static initializer can't have parameters.")
		}
		r.resolveFunction(method.Name, method.Params, method.Body, fnType)
	}
	for _, getter := range s.StaticGetters {
		r.resolveFunction(getter.Name, nil, getter.Body, functionMethod)
	}

	r.endScope() // this

	if s.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) checkDuplicateMembers(methods, getters []*ast.Function) {
	names := make(map[string]bool, len(methods))
	for _, m := range methods {
		names[m.Name.Lexeme] = true
	}
	for _, g := range getters {
		if names[g.Name.Lexeme] {
			r.reporter.TokenError(g.Name, "Duplicate method and getter name.")
		}
	}
}
