// Package codegen walks a BearLang AST and emits a single C++
// translation unit. It maintains a scoped name-mangling table so
// BearLang identifiers, which may contain non-ASCII bytes, become safe
// C++ identifiers.
package codegen

import (
	"fmt"
	"strings"

	"github.com/swwwjjw/bearlang-app/internal/ast"
)

// Preamble selects which fixed prologue statements generated main()
// opens with.
type Preamble int

const (
	// PreambleComplete emits sync_with_stdio, cin.tie, and boolalpha —
	// the canonical default (see design notes: booleans print as
	// true/false rather than 1/0).
	PreambleComplete Preamble = iota
	// PreambleMinimal emits only sync_with_stdio, for callers who rewire
	// cin/cout against tooling that dislikes tied streams.
	PreambleMinimal
)

// Options controls generator behavior that is not dictated by the AST
// itself.
type Options struct {
	Preamble    Preamble
	IndentWidth int // spaces per indentation level; default 4
}

const defaultIndentWidth = 4

func (o Options) indentWidth() int {
	if o.IndentWidth <= 0 {
		return defaultIndentWidth
	}
	return o.IndentWidth
}

var cppTypeNames = map[ast.ValueType]string{
	ast.Integer: "int",
	ast.Double:  "double",
	ast.String:  "std::string",
	ast.Boolean: "bool",
	ast.Unknown: "auto",
}

func cppType(t ast.ValueType) string {
	if name, ok := cppTypeNames[t]; ok {
		return name
	}
	return "auto"
}

// scope maps a BearLang identifier to its mangled C++ name within one
// block body.
type scope map[string]string

// generator holds the mutable state threaded through one Generate call:
// the output buffer, the stack of name scopes, and the vr_N counter. The
// indentation level is passed to each emit call rather than stored. A
// generator is used exactly once.
type generator struct {
	opts    Options
	out     strings.Builder
	scopes  []scope
	counter int
}

// Generate produces the complete C++ source text for program.
func Generate(program *ast.Program, opts Options) string {
	g := &generator{opts: opts, scopes: []scope{{}}}
	g.writePreamble()
	g.emitStatements(program.Statements, 1)
	g.writeLine(1, "return 0;")
	g.out.WriteString("}\n")
	return g.out.String()
}

func (g *generator) writePreamble() {
	g.out.WriteString("#include <cmath>\n")
	g.out.WriteString("#include <iostream>\n")
	g.out.WriteString("#include <string>\n\n")
	g.out.WriteString("int main() {\n")
	g.writeLine(1, "std::ios_base::sync_with_stdio(false);")
	if g.opts.Preamble == PreambleComplete {
		g.writeLine(1, "std::cin.tie(nullptr);")
		g.writeLine(1, "std::cout << std::boolalpha;")
	}
}

func (g *generator) indent(level int) string {
	return strings.Repeat(" ", level*g.opts.indentWidth())
}

func (g *generator) writeLine(level int, text string) {
	g.out.WriteString(g.indent(level))
	g.out.WriteString(text)
	g.out.WriteByte('\n')
}

// --- name mangling ---

func (g *generator) pushScope() {
	g.scopes = append(g.scopes, scope{})
}

func (g *generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// declare allocates a fresh vr_N name for name in the innermost scope.
func (g *generator) declare(name string) string {
	g.counter++
	mangled := fmt.Sprintf("vr_%d", g.counter)
	g.scopes[len(g.scopes)-1][name] = mangled
	return mangled
}

// resolve searches scopes from innermost to outermost. If name was
// never declared, it is emitted unchanged: programs that reference
// undeclared names compile to C++ that will itself fail to compile.
func (g *generator) resolve(name string) string {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if mangled, ok := g.scopes[i][name]; ok {
			return mangled
		}
	}
	return name
}

// --- statements ---

func (g *generator) emitStatements(stmts []ast.Stmt, level int) {
	for _, s := range stmts {
		g.emitStatement(s, level)
	}
}

func (g *generator) emitStatement(stmt ast.Stmt, level int) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(s, level)
	case *ast.Assign:
		g.writeLine(level, fmt.Sprintf("%s = %s;", g.resolve(s.Name), g.emitExpr(s.Value)))
	case *ast.Input:
		g.writeLine(level, fmt.Sprintf("std::cin >> %s;", g.resolve(s.Name)))
	case *ast.Output:
		g.writeLine(level, fmt.Sprintf("std::cout << %s << std::endl;", g.emitExpr(s.Value)))
	case *ast.If:
		g.emitIf(s, level)
	case *ast.While:
		g.emitWhile(s, level)
	case *ast.ForRange:
		g.emitForRange(s, level)
	default:
		panic(fmt.Sprintf("codegen: unhandled statement type %T", stmt))
	}
}

func (g *generator) emitVarDecl(decl *ast.VarDecl, level int) {
	mangled := g.declare(decl.Name)
	var rhs string
	if decl.Initializer != nil {
		rhs = " = " + g.emitExpr(decl.Initializer)
	} else {
		rhs = "{}"
	}
	g.writeLine(level, fmt.Sprintf("%s %s%s;", cppType(decl.Type), mangled, rhs))
}

func (g *generator) emitIf(stmt *ast.If, level int) {
	for i, branch := range stmt.Branches {
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		g.writeLine(level, fmt.Sprintf("%s (%s) {", keyword, g.emitExpr(branch.Condition)))
		g.pushScope()
		g.emitStatements(branch.Body, level+1)
		g.popScope()
		g.writeLine(level, "}")
	}
	if stmt.HasElse {
		g.writeLine(level, "else {")
		g.pushScope()
		g.emitStatements(stmt.ElseBranch, level+1)
		g.popScope()
		g.writeLine(level, "}")
	}
}

func (g *generator) emitWhile(stmt *ast.While, level int) {
	g.writeLine(level, fmt.Sprintf("while (%s) {", g.emitExpr(stmt.Condition)))
	g.pushScope()
	g.emitStatements(stmt.Body, level+1)
	g.popScope()
	g.writeLine(level, "}")
}

// emitForRange pushes the loop's scope before declaring the counter so
// the counter is visible only in the for-header and body, and pops it
// only after the body has been emitted.
func (g *generator) emitForRange(stmt *ast.ForRange, level int) {
	g.pushScope()
	mangled := g.declare(stmt.Name)
	typ := cppType(stmt.Type)
	header := fmt.Sprintf("for (%s %s = %s; %s <= %s; ++%s) {",
		typ, mangled, g.emitExpr(stmt.From), mangled, g.emitExpr(stmt.To), mangled)
	g.writeLine(level, header)
	g.emitStatements(stmt.Body, level+1)
	g.writeLine(level, "}")
	g.popScope()
}

// --- expressions ---

func (g *generator) emitExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.emitLiteral(e)
	case *ast.Variable:
		return g.resolve(e.Name)
	case *ast.Unary:
		return e.Op + "(" + g.emitExpr(e.Operand) + ")"
	case *ast.Binary:
		if e.Op == "^" {
			return fmt.Sprintf("std::pow(%s, %s)", g.emitExpr(e.Left), g.emitExpr(e.Right))
		}
		return fmt.Sprintf("(%s %s %s)", g.emitExpr(e.Left), e.Op, g.emitExpr(e.Right))
	default:
		panic(fmt.Sprintf("codegen: unhandled expression type %T", expr))
	}
}

func (g *generator) emitLiteral(lit *ast.Literal) string {
	switch lit.Type {
	case ast.Integer, ast.Double:
		return lit.Text
	case ast.String:
		return "\"" + escapeString(lit.Text) + "\""
	case ast.Boolean:
		if lit.BoolValue {
			return "true"
		}
		return "false"
	default:
		return lit.Text
	}
}

func escapeString(value string) string {
	var out strings.Builder
	out.Grow(len(value) + 2)
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}
