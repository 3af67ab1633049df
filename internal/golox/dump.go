package golox

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/freddie-nelson/golox/internal/ast"
	"github.com/freddie-nelson/golox/internal/resolver"
)

// writeResolutionDump serializes the resolver's distance map to JSON for
// `--dump-resolution`: one entry per resolved expression, keyed by the
// kind of node and the source line/lexeme of the name it resolved, since
// ast.Expr node identity itself isn't serializable. Built incrementally
// with sjson since the entry count isn't known up front.
func (r *Runtime) writeResolutionDump(statements []ast.Stmt, locals resolver.Locals) {
	doc := "[]"
	i := 0

	for expr, distance := range locals {
		kind, line, lexeme := describeLocal(expr)
		base := fmt.Sprintf("%d", i)

		var err error
		doc, err = sjson.Set(doc, base+".kind", kind)
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, base+".line", line)
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, base+".name", lexeme)
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, base+".distance", distance)
		if err != nil {
			return
		}
		i++
	}

	fmt.Fprintln(r.out, doc)
}

func describeLocal(expr ast.Expr) (kind string, line int, lexeme string) {
	switch e := expr.(type) {
	case *ast.Variable:
		return "variable", e.Name.Line, e.Name.Lexeme
	case *ast.Assign:
		return "assign", e.Name.Line, e.Name.Lexeme
	case *ast.This:
		return "this", e.Keyword.Line, e.Keyword.Lexeme
	case *ast.Super:
		return "super", e.Keyword.Line, e.Method.Lexeme
	case *ast.SuperCall:
		return "super_call", e.Keyword.Line, e.Keyword.Lexeme
	default:
		return "unknown", 0, ""
	}
}
