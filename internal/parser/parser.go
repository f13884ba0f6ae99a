// Package parser is a one-pass recursive-descent parser over the token
// sequence produced by internal/lexer. It has single-token lookahead and
// performs no backtracking and no error recovery: the first syntactic
// error is final.
package parser

import (
	"fmt"

	"github.com/swwwjjw/bearlang-app/internal/ast"
	"github.com/swwwjjw/bearlang-app/internal/token"
)

// Error is raised when the token sequence cannot be parsed.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Parser holds the token slice and a cursor into it.
type Parser struct {
	tokens  []token.Token
	current int
}

// New wraps a token slice for parsing. It does not copy or mutate
// tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes tokens (as produced by lexer.Tokenize) and returns a
// Program, or the first ParserError encountered.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := New(tokens)
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

// --- token cursor helpers ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EndOfFile
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, &Error{Message: message}
}

func (p *Parser) skipNewlines() {
	for p.match(token.Newline) {
	}
}

// expectNewline consumes one Newline and any further newlines after it.
// A trailing Dedent or EndOfFile is also acceptable without a newline,
// covering the end-of-file convenience case.
func (p *Parser) expectNewline(context string) error {
	if p.match(token.Newline) {
		p.skipNewlines()
		return nil
	}
	if p.check(token.Dedent) || p.isAtEnd() {
		return nil
	}
	return &Error{Message: fmt.Sprintf("ожидается перевод строки после %s", context)}
}

func (p *Parser) parseTypeKeyword(context string) (ast.ValueType, error) {
	switch {
	case p.match(token.KeywordInteger):
		return ast.Integer, nil
	case p.match(token.KeywordDouble):
		return ast.Double, nil
	case p.match(token.KeywordString):
		return ast.String, nil
	case p.match(token.KeywordLogic):
		return ast.Boolean, nil
	}
	return ast.Unknown, &Error{Message: fmt.Sprintf("ожидается тип для %s", context)}
}

// --- statements ---

func (p *Parser) parseStatement() (ast.Stmt, error) {
	if p.check(token.Indent) {
		return nil, &Error{Message: "неожиданный отступ"}
	}

	if token.IsTypeKeyword(p.peek().Type) {
		return p.parseVarDecl()
	}

	switch p.peek().Type {
	case token.KeywordInput:
		return p.parseInput()
	case token.KeywordOutput:
		return p.parseOutput()
	case token.KeywordIf:
		return p.parseIf()
	case token.KeywordWhile:
		return p.parseWhile()
	case token.KeywordFor:
		return p.parseFor()
	case token.Identifier:
		return p.parseAssign()
	default:
		return nil, &Error{Message: fmt.Sprintf("неожиданное слово '%s'", p.peek().Lexeme)}
	}
}

func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	typ, err := p.parseTypeKeyword("объявления переменной")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier, "ожидается имя переменной")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.match(token.Assign) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectNewline("объявления переменной"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Type: typ, Name: name.Lexeme, Initializer: init}, nil
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	name := p.advance()
	if _, err := p.consume(token.Assign, "ожидается '=' в присваивании"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline("присваивания"); err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name.Lexeme, Value: value}, nil
}

func (p *Parser) parseInput() (ast.Stmt, error) {
	p.advance() // ввод
	name, err := p.consume(token.Identifier, "ожидается переменная для ввода")
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline("оператора ввода"); err != nil {
		return nil, err
	}
	return &ast.Input{Name: name.Lexeme}, nil
}

func (p *Parser) parseOutput() (ast.Stmt, error) {
	p.advance() // вывод
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline("оператора вывода"); err != nil {
		return nil, err
	}
	return &ast.Output{Value: value}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.advance() // если
	cond, err := p.parseParenCondition("если")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("условия 'если'")
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{Branches: []ast.IfBranch{{Condition: cond, Body: body}}}

	for p.match(token.KeywordElse) {
		if p.match(token.KeywordIf) {
			elseIfCond, err := p.parseParenCondition("иначе если")
			if err != nil {
				return nil, err
			}
			elseIfBody, err := p.parseBlock("условия 'иначе если'")
			if err != nil {
				return nil, err
			}
			stmt.Branches = append(stmt.Branches, ast.IfBranch{Condition: elseIfCond, Body: elseIfBody})
			continue
		}
		elseBody, err := p.parseBlock("блока 'иначе'")
		if err != nil {
			return nil, err
		}
		stmt.ElseBranch = elseBody
		stmt.HasElse = true
		break
	}

	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.advance() // пока
	cond, err := p.parseParenCondition("пока")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("цикла 'пока'")
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	p.advance() // для
	if _, err := p.consume(token.LeftParen, "ожидается '(' после 'для'"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeKeyword("цикла 'для'")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier, "ожидается имя счётчика")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.KeywordFrom, "ожидается слово 'от' в цикле"); err != nil {
		return nil, err
	}
	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.KeywordTo, "ожидается слово 'до' в цикле"); err != nil {
		return nil, err
	}
	to, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "ожидается ')' после заголовка цикла"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("цикла 'для'")
	if err != nil {
		return nil, err
	}
	return &ast.ForRange{Type: typ, Name: name.Lexeme, From: from, To: to, Body: body}, nil
}

func (p *Parser) parseParenCondition(context string) (ast.Expr, error) {
	if _, err := p.consume(token.LeftParen, fmt.Sprintf("ожидается '(' после %s", context)); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, fmt.Sprintf("ожидается ')' после условия %s", context)); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseBlock(context string) ([]ast.Stmt, error) {
	if _, err := p.consume(token.Newline, "ожидается новая строка после "+context); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Indent, "ожидается отступ после "+context); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	p.skipNewlines()
	for !p.check(token.Dedent) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
	}
	if _, err := p.consume(token.Dedent, "ожидается завершение блока "+context); err != nil {
		return nil, err
	}
	return body, nil
}

// --- expressions: Or -> And -> Equality -> Comparison -> Additive ->
// Multiplicative -> Power (right-assoc) -> Unary -> Primary ---

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.KeywordOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(token.KeywordAnd) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(token.Equal) {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "==", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.match(token.Less):
			op = "<"
		case p.match(token.LessEqual):
			op = "<="
		case p.match(token.Greater):
			op = ">"
		case p.match(token.GreaterEqual):
			op = ">="
		default:
			return left, nil
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.match(token.Plus):
			op = "+"
		case p.match(token.Minus):
			op = "-"
		default:
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch {
		case p.match(token.Star):
			op = "*"
		case p.match(token.Slash):
			op = "/"
		case p.match(token.Percent):
			op = "%"
		default:
			return left, nil
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parsePower is right-associative: it recurses into itself on the
// right-hand side so that a^b^c parses as a^(b^c).
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.match(token.Caret) {
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: "^", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(token.Minus) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "-", Operand: operand}, nil
	}
	if p.match(token.KeywordNot) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "!", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.match(token.IntegerLiteral):
		return &ast.Literal{Type: ast.Integer, Text: p.previous().Lexeme}, nil
	case p.match(token.DoubleLiteral):
		return &ast.Literal{Type: ast.Double, Text: p.previous().Lexeme}, nil
	case p.match(token.StringLiteral):
		return &ast.Literal{Type: ast.String, Text: p.previous().Lexeme}, nil
	case p.match(token.KeywordTrue):
		return &ast.Literal{Type: ast.Boolean, Text: "true", BoolValue: true}, nil
	case p.match(token.KeywordFalse):
		return &ast.Literal{Type: ast.Boolean, Text: "false", BoolValue: false}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous().Lexeme}, nil
	case p.match(token.LeftParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "ожидается ')'"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, &Error{Message: fmt.Sprintf("неожиданный токен '%s'", p.peek().Lexeme)}
}
