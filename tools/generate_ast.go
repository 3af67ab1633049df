// Package tools holds the AST code generator: it writes
// internal/ast/expr.go and internal/ast/stmt.go from the grammar tables
// below, the same way the book's GenerateAst.java produces its Java AST.
// Run via `go run ./cmd/astgen <output dir>` whenever the grammar changes.
package tools

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidArgumentList is returned when the arguments count does not
// match the expected count.
var ErrInvalidArgumentList = errors.New("invalid arguments provided")

// exprTypes mirrors internal/ast/expr.go's grammar, including the
// getter/static/function-expression extensions.
var exprTypes = []string{
	"Literal : Value interface{}",
	"Grouping : Expression Expr",
	"Unary : Operator token.Token, Right Expr",
	"Binary : Left Expr, Operator token.Token, Right Expr",
	"Logical : Left Expr, Operator token.Token, Right Expr",
	"Variable : Name token.Token",
	"Assign : Name token.Token, Value Expr",
	"Call : Callee Expr, Paren token.Token, Arguments []Expr",
	"Get : Object Expr, Name token.Token",
	"Set : Object Expr, Name token.Token, Value Expr",
	"This : Keyword token.Token",
	"Super : Keyword token.Token, Method token.Token",
	"SuperCall : Keyword token.Token, Arguments []Expr",
	"FunctionExpr : Params []token.Token, Body []Stmt",
}

// stmtTypes mirrors internal/ast/stmt.go's grammar.
var stmtTypes = []string{
	"Expression : Expression Expr",
	"Print : Expression Expr",
	"Var : Name token.Token, Initializer Expr",
	"Block : Statements []Stmt",
	"If : Condition Expr, Then Stmt, Else Stmt",
	"While : Condition Expr, Body Stmt, IsFor bool, HasIncrement bool",
	"Function : Name token.Token, Params []token.Token, Body []Stmt, IsGetter bool",
	"Return : Keyword token.Token, Value Expr",
	"Break : Keyword token.Token",
	"Continue : Keyword token.Token",
	"Class : Name token.Token, Superclass *Variable, Methods []*Function, Getters []*Function, StaticMethods []*Function, StaticGetters []*Function",
}

// GenerateAst writes expr.go and stmt.go into args[0] (internal/ast).
func GenerateAst(args []string) error {
	if len(args) != 1 {
		return ErrInvalidArgumentList
	}

	outputDir := args[0]

	if err := defineAst(outputDir, "Expr", "(interface{}, error)", exprTypes); err != nil {
		return err
	}
	if err := defineAst(outputDir, "Stmt", "error", stmtTypes); err != nil {
		return err
	}

	return nil
}

func defineAst(outputDir, baseName, returnType string, astTypes []string) error {
	path := outputDir + "/" + strings.ToLower(baseName) + ".go"

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	w.WriteString("package ast\n\n")
	w.WriteString("import \"github.com/freddie-nelson/golox/internal/token\"\n\n")

	w.WriteString("type " + baseName + " interface {\n")
	w.WriteString(fmt.Sprintf("\tAccept(v %sVisitor) %s\n", baseName, acceptSig(returnType)))
	w.WriteString("}\n\n")

	defineVisitor(w, baseName, returnType, astTypes)

	for _, astType := range astTypes {
		typeName := strings.TrimSpace(strings.Split(astType, ":")[0])
		fields := strings.TrimSpace(strings.Split(astType, ":")[1])
		defineType(w, baseName, returnType, typeName, fields)
	}

	return w.Flush()
}

// acceptSig renders the Accept method's visitor-call return type, which
// Expr and Stmt nodes don't share: Expr.Accept returns a value, Stmt.Accept
// does not.
func acceptSig(returnType string) string {
	return returnType
}

func defineVisitor(w *bufio.Writer, baseName, returnType string, astTypes []string) {
	w.WriteString("type " + baseName + "Visitor interface {\n")
	for _, astType := range astTypes {
		typeName := strings.TrimSpace(strings.Split(astType, ":")[0])
		w.WriteString(fmt.Sprintf("\tVisit%s%s(*%s) %s\n", typeName, baseName, typeName, returnType))
	}
	w.WriteString("}\n\n")
}

func defineType(w *bufio.Writer, baseName, returnType, typeName, fieldList string) {
	w.WriteString("type " + typeName + " struct {\n")

	fields := strings.Split(fieldList, ", ")
	for _, field := range fields {
		w.WriteString("\t" + field + "\n")
	}
	w.WriteString("}\n\n")

	recv := strings.ToLower(string([]rune(typeName)[0]))

	w.WriteString(fmt.Sprintf("func (%s *%s) Accept(v %sVisitor) %s {\n", recv, typeName, baseName, returnType))
	w.WriteString(fmt.Sprintf("\treturn v.Visit%s%s(%s)\n", typeName, baseName, recv))
	w.WriteString("}\n\n")
}
