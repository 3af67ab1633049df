package ast

import "github.com/freddie-nelson/golox/internal/token"

// Stmt is any statement node.
type Stmt interface {
	Accept(v StmtVisitor) error
}

// StmtVisitor is implemented by anything that walks statement nodes.
type StmtVisitor interface {
	VisitExpressionStmt(*Expression) error
	VisitPrintStmt(*Print) error
	VisitVarStmt(*Var) error
	VisitBlockStmt(*Block) error
	VisitIfStmt(*If) error
	VisitWhileStmt(*While) error
	VisitFunctionStmt(*Function) error
	VisitReturnStmt(*Return) error
	VisitBreakStmt(*Break) error
	VisitContinueStmt(*Continue) error
	VisitClassStmt(*Class) error
}

// Expression is a bare expression evaluated for its side effect.
type Expression struct {
	Expression Expr
}

func (s *Expression) Accept(v StmtVisitor) error { return v.VisitExpressionStmt(s) }

// Print evaluates Expression and writes its stringified form to stdout.
type Print struct {
	Expression Expr
}

func (s *Print) Accept(v StmtVisitor) error { return v.VisitPrintStmt(s) }

// Var declares Name, optionally running Initializer.
type Var struct {
	Name        token.Token
	Initializer Expr
}

func (s *Var) Accept(v StmtVisitor) error { return v.VisitVarStmt(s) }

// Block introduces a new lexical scope around Statements.
type Block struct {
	Statements []Stmt
}

func (s *Block) Accept(v StmtVisitor) error { return v.VisitBlockStmt(s) }

// If executes Then when Condition is truthy, else Else (which may be nil).
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *If) Accept(v StmtVisitor) error { return v.VisitIfStmt(s) }

// While loops over Body while Condition holds. IsFor/HasIncrement record
// whether this loop was desugared from a `for` with an increment clause, so
// `continue` can run the increment before re-testing the condition.
type While struct {
	Condition    Expr
	Body         Stmt
	IsFor        bool
	HasIncrement bool
}

func (s *While) Accept(v StmtVisitor) error { return v.VisitWhileStmt(s) }

// Function is a named function/method/getter declaration.
type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	// IsGetter marks a class member declared without a parameter list.
	IsGetter bool
}

func (s *Function) Accept(v StmtVisitor) error { return v.VisitFunctionStmt(s) }

// Return exits the enclosing call, optionally carrying Value.
type Return struct {
	Keyword token.Token
	Value   Expr
}

func (s *Return) Accept(v StmtVisitor) error { return v.VisitReturnStmt(s) }

// Break exits the enclosing loop.
type Break struct {
	Keyword token.Token
}

func (s *Break) Accept(v StmtVisitor) error { return v.VisitBreakStmt(s) }

// Continue resumes the next iteration of the enclosing loop.
type Continue struct {
	Keyword token.Token
}

func (s *Continue) Accept(v StmtVisitor) error { return v.VisitContinueStmt(s) }

// Class declares a class, its optional superclass and its four member
// tables: methods, getters, static methods, static getters.
type Class struct {
	Name          token.Token
	Superclass    *Variable
	Methods       []*Function
	Getters       []*Function
	StaticMethods []*Function
	StaticGetters []*Function
}

func (s *Class) Accept(v StmtVisitor) error { return v.VisitClassStmt(s) }
