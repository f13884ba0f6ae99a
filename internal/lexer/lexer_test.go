package lexer

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/swwwjjw/bearlang-app/internal/token"
)

func types(tokens []token.Token) []token.Type {
	out := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestSimpleAssignment(t *testing.T) {
	tokens, err := Tokenize("целое n = 5\n", 4)
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []token.Type{
		token.KeywordInteger, token.Identifier, token.Assign, token.IntegerLiteral,
		token.Newline, token.EndOfFile,
	})
	be.Equal(t, tokens[1].Lexeme, "n")
	be.Equal(t, tokens[3].Lexeme, "5")
}

func TestBlankAndCommentLinesProduceNoTokens(t *testing.T) {
	source := "целое a = 1\n\n// просто комментарий\nвывод a\n"
	tokens, err := Tokenize(source, 4)
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []token.Type{
		token.KeywordInteger, token.Identifier, token.Assign, token.IntegerLiteral, token.Newline,
		token.KeywordOutput, token.Identifier, token.Newline,
		token.EndOfFile,
	})
}

func TestIndentDedent(t *testing.T) {
	source := "если (a == 1)\n    вывод a\n"
	tokens, err := Tokenize(source, 4)
	be.Err(t, err, nil)
	be.Equal(t, types(tokens), []token.Type{
		token.KeywordIf, token.LeftParen, token.Identifier, token.Equal, token.IntegerLiteral, token.RightParen,
		token.Newline, token.Indent,
		token.KeywordOutput, token.Identifier, token.Newline,
		token.Dedent, token.EndOfFile,
	})
}

func TestDedentAtEOFForEachOutstandingLevel(t *testing.T) {
	source := "если (a == 1)\n    если (a == 2)\n        вывод a\n"
	tokens, err := Tokenize(source, 4)
	be.Err(t, err, nil)
	dedents := 0
	for _, tok := range tokens {
		if tok.Type == token.Dedent {
			dedents++
		}
	}
	be.Equal(t, dedents, 2)
}

func TestInconsistentIndentIsLexerError(t *testing.T) {
	source := "если (a == 1)\n    вывод a\n   вывод a\n"
	_, err := Tokenize(source, 4)
	be.True(t, err != nil)
}

func TestTabWidthFour(t *testing.T) {
	source := "если (a == 1)\n\tвывод a\n"
	tokens, err := Tokenize(source, 4)
	be.Err(t, err, nil)
	be.Equal(t, types(tokens)[7], token.Indent)
}

func TestNumberLiterals(t *testing.T) {
	tokens, err := Tokenize("дробное x = 3.14\nцелое y = 3\n", 4)
	be.Err(t, err, nil)
	be.Equal(t, tokens[3].Type, token.DoubleLiteral)
	be.Equal(t, tokens[3].Lexeme, "3.14")

	// "3." is not a number: '.' is only consumed when followed by a digit,
	// and a bare '.' is not itself a valid BearLang token.
	_, err = Tokenize("вывод 3.\n", 4)
	be.True(t, err != nil)
}

func TestStringEscapes(t *testing.T) {
	tokens, err := Tokenize(`вывод "a\"b\n\t\\c"` + "\n", 4)
	be.Err(t, err, nil)
	be.Equal(t, tokens[1].Type, token.StringLiteral)
	be.Equal(t, tokens[1].Lexeme, "a\"b\n\t\\c")
}

func TestUnterminatedStringIsLexerError(t *testing.T) {
	_, err := Tokenize(`вывод "unterminated` + "\n", 4)
	be.True(t, err != nil)
}

func TestNewlineInsideStringIsLexerError(t *testing.T) {
	_, err := Tokenize("вывод \"a\nb\"\n", 4)
	be.True(t, err != nil)
}

func TestUnknownEscapeIsLexerError(t *testing.T) {
	_, err := Tokenize(`вывод "a\qb"` + "\n", 4)
	be.True(t, err != nil)
}

func TestUnknownCharacterIsLexerError(t *testing.T) {
	_, err := Tokenize("вывод a ~ b\n", 4)
	be.True(t, err != nil)
}

func TestTwoCharOperatorsPreferredOverOneChar(t *testing.T) {
	tokens, err := Tokenize("если (a <= b)\n    вывод a\n", 4)
	be.Err(t, err, nil)
	be.Equal(t, tokens[3].Type, token.LessEqual)
}

func TestCyrillicIdentifierRoundTrips(t *testing.T) {
	tokens, err := Tokenize("целое перемен = 1\n", 4)
	be.Err(t, err, nil)
	be.Equal(t, tokens[1].Type, token.Identifier)
	be.Equal(t, tokens[1].Lexeme, "перемен")
}
