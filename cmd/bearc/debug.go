package main

import (
	"fmt"
	"strings"

	"github.com/swwwjjw/bearlang-app/internal/ast"
)

// printProgram renders an AST in an indented, human-readable form for
// --ast debugging. It is not used by the translation path itself.
func printProgram(prog *ast.Program) {
	fmt.Println("Program")
	for _, stmt := range prog.Statements {
		printStmt(stmt, 1)
	}
}

func printStmt(stmt ast.Stmt, depth int) {
	prefix := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl %s: %s", prefix, s.Name, s.Type)
		if s.Initializer != nil {
			fmt.Printf(" = %s", exprString(s.Initializer))
		}
		fmt.Println()
	case *ast.Assign:
		fmt.Printf("%sAssign %s = %s\n", prefix, s.Name, exprString(s.Value))
	case *ast.Input:
		fmt.Printf("%sInput %s\n", prefix, s.Name)
	case *ast.Output:
		fmt.Printf("%sOutput %s\n", prefix, exprString(s.Value))
	case *ast.If:
		for i, branch := range s.Branches {
			label := "If"
			if i > 0 {
				label = "ElseIf"
			}
			fmt.Printf("%s%s %s\n", prefix, label, exprString(branch.Condition))
			for _, inner := range branch.Body {
				printStmt(inner, depth+1)
			}
		}
		if s.HasElse {
			fmt.Printf("%sElse\n", prefix)
			for _, inner := range s.ElseBranch {
				printStmt(inner, depth+1)
			}
		}
	case *ast.While:
		fmt.Printf("%sWhile %s\n", prefix, exprString(s.Condition))
		for _, inner := range s.Body {
			printStmt(inner, depth+1)
		}
	case *ast.ForRange:
		fmt.Printf("%sForRange %s: %s from %s to %s\n", prefix, s.Name, s.Type,
			exprString(s.From), exprString(s.To))
		for _, inner := range s.Body {
			printStmt(inner, depth+1)
		}
	}
}

func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Type == ast.String {
			return fmt.Sprintf("%q", e.Text)
		}
		return e.Text
	case *ast.Variable:
		return e.Name
	case *ast.Unary:
		return e.Op + exprString(e.Operand)
	case *ast.Binary:
		return "(" + exprString(e.Left) + " " + e.Op + " " + exprString(e.Right) + ")"
	default:
		return "?"
	}
}
