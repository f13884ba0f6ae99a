package parser

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/swwwjjw/bearlang-app/internal/ast"
	"github.com/swwwjjw/bearlang-app/internal/lexer"
	"github.com/swwwjjw/bearlang-app/internal/token"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize(source, 4)
	be.Err(t, err, nil)
	program, err := Parse(tokens)
	be.Err(t, err, nil)
	return program
}

func TestVarDeclWithInitializer(t *testing.T) {
	program := parseSource(t, "целое n = 5\n")
	be.Equal(t, len(program.Statements), 1)
	decl, ok := program.Statements[0].(*ast.VarDecl)
	be.True(t, ok)
	be.Equal(t, decl.Name, "n")
	be.Equal(t, decl.Type, ast.Integer)
	lit, ok := decl.Initializer.(*ast.Literal)
	be.True(t, ok)
	be.Equal(t, lit.Text, "5")
}

func TestVarDeclWithoutInitializer(t *testing.T) {
	program := parseSource(t, "логика b\n")
	decl := program.Statements[0].(*ast.VarDecl)
	be.True(t, decl.Initializer == nil)
	be.Equal(t, decl.Type, ast.Boolean)
}

func TestAssignAndOutput(t *testing.T) {
	program := parseSource(t, "целое n = 5\nn = n + 1\nвывод n\n")
	be.Equal(t, len(program.Statements), 3)
	assign := program.Statements[1].(*ast.Assign)
	be.Equal(t, assign.Name, "n")
	bin := assign.Value.(*ast.Binary)
	be.Equal(t, bin.Op, "+")
	output := program.Statements[2].(*ast.Output)
	be.Equal(t, output.Value.(*ast.Variable).Name, "n")
}

func TestInputStatement(t *testing.T) {
	program := parseSource(t, "целое x\nввод x\n")
	input := program.Statements[1].(*ast.Input)
	be.Equal(t, input.Name, "x")
}

func TestIfElseIfElseChain(t *testing.T) {
	source := "целое x = 0\n" +
		"если (x == 0)\n" +
		"    вывод \"zero\"\n" +
		"иначе если (x < 0)\n" +
		"    вывод \"neg\"\n" +
		"иначе\n" +
		"    вывод \"pos\"\n"
	program := parseSource(t, source)
	ifStmt := program.Statements[1].(*ast.If)
	be.Equal(t, len(ifStmt.Branches), 2)
	be.True(t, ifStmt.HasElse)
	be.Equal(t, len(ifStmt.ElseBranch), 1)

	firstCond := ifStmt.Branches[0].Condition.(*ast.Binary)
	be.Equal(t, firstCond.Op, "==")
	secondCond := ifStmt.Branches[1].Condition.(*ast.Binary)
	be.Equal(t, secondCond.Op, "<")
}

func TestWhileLoop(t *testing.T) {
	source := "целое i = 0\nпока (i < 3)\n    i = i + 1\n"
	program := parseSource(t, source)
	while := program.Statements[1].(*ast.While)
	be.Equal(t, len(while.Body), 1)
}

func TestForRangeInclusive(t *testing.T) {
	source := "для (целое i от 1 до 3)\n    вывод i\n"
	program := parseSource(t, source)
	forStmt := program.Statements[0].(*ast.ForRange)
	be.Equal(t, forStmt.Name, "i")
	be.Equal(t, forStmt.Type, ast.Integer)
	be.Equal(t, forStmt.From.(*ast.Literal).Text, "1")
	be.Equal(t, forStmt.To.(*ast.Literal).Text, "3")
}

func TestPowerIsRightAssociative(t *testing.T) {
	program := parseSource(t, "вывод 2^3^2\n")
	output := program.Statements[0].(*ast.Output)
	top := output.Value.(*ast.Binary)
	be.Equal(t, top.Op, "^")
	be.Equal(t, top.Left.(*ast.Literal).Text, "2")
	nested := top.Right.(*ast.Binary)
	be.Equal(t, nested.Op, "^")
	be.Equal(t, nested.Left.(*ast.Literal).Text, "3")
	be.Equal(t, nested.Right.(*ast.Literal).Text, "2")
}

func TestOperatorPrecedenceCascade(t *testing.T) {
	// a + b * c should parse with '*' binding tighter than '+'.
	program := parseSource(t, "вывод a + b * c\n")
	output := program.Statements[0].(*ast.Output)
	top := output.Value.(*ast.Binary)
	be.Equal(t, top.Op, "+")
	_, rightIsMul := top.Right.(*ast.Binary)
	be.True(t, rightIsMul)
	be.Equal(t, top.Right.(*ast.Binary).Op, "*")
}

func TestLogicalKeywordsMapToSymbolicOps(t *testing.T) {
	program := parseSource(t, "вывод не a и b или c\n")
	output := program.Statements[0].(*ast.Output)
	or := output.Value.(*ast.Binary)
	be.Equal(t, or.Op, "||")
	and := or.Left.(*ast.Binary)
	be.Equal(t, and.Op, "&&")
	not := and.Left.(*ast.Unary)
	be.Equal(t, not.Op, "!")
}

func TestUnexpectedIndentIsParserError(t *testing.T) {
	tokens, err := lexer.Tokenize("целое a = 1\n    целое b = 2\n", 4)
	be.Err(t, err, nil)
	_, err = Parse(tokens)
	be.True(t, err != nil)
}

func TestMissingNewlineAfterStatementIsParserError(t *testing.T) {
	source := "целое a = 1\nвывод a\n"
	tokens, err := lexer.Tokenize(source, 4)
	be.Err(t, err, nil)
	// Excise the Newline that should terminate the VarDecl (index 4) so
	// the parser finds "вывод" where it expects a line break.
	spliced := append(append([]token.Token{}, tokens[:4]...), tokens[5:]...)
	_, err = Parse(spliced)
	be.True(t, err != nil)
}
