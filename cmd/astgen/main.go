// Command astgen regenerates internal/ast's expr.go/stmt.go from the
// grammar tables in tools/generate_ast.go.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/freddie-nelson/golox/tools"
)

func main() {
	args := os.Args[1:]

	if err := tools.GenerateAst(args); err != nil {
		if errors.Is(err, tools.ErrInvalidArgumentList) {
			fmt.Println("Usage: astgen <output dir>")
			os.Exit(64)
		}

		fmt.Println("Error generating AST:", err.Error())
		os.Exit(1)
	}
}
