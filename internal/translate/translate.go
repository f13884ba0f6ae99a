// Package translate exposes the single entry point the driver calls:
// Translate chains the lexer, parser, and code generator and normalizes
// whichever stage fails into one error shape.
package translate

import (
	"fmt"

	"github.com/swwwjjw/bearlang-app/internal/codegen"
	"github.com/swwwjjw/bearlang-app/internal/lexer"
	"github.com/swwwjjw/bearlang-app/internal/parser"
)

// Stage names which pipeline component produced an Error.
type Stage string

const (
	Lexing     Stage = "lexing"
	Parsing    Stage = "parsing"
	Generation Stage = "generation"
)

// Error wraps a stage failure so callers can report "stage: message"
// without inspecting concrete lexer/parser error types.
type Error struct {
	Stage   Stage
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// PreambleMode selects the generated program's prologue. It mirrors
// codegen.Preamble so callers outside this module don't need to import
// the codegen package just to pick a mode.
type PreambleMode int

const (
	PreambleComplete PreambleMode = iota
	PreambleMinimal
)

// Options controls knobs that are not dictated by BearLang source text
// itself: how wide a tab counts for indentation, and how the generated
// program's prologue and body indentation look.
type Options struct {
	TabWidth    int
	IndentWidth int
	Preamble    PreambleMode
}

// Translate runs source through the lexer, parser, and code generator
// and returns the generated C++ source text, or the first stage error
// encountered. It allocates no state outside the call and is safe to
// invoke concurrently for distinct inputs.
func Translate(source string, opts Options) (string, error) {
	tokens, err := lexer.Tokenize(source, opts.TabWidth)
	if err != nil {
		return "", &Error{Stage: Lexing, Message: err.Error()}
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return "", &Error{Stage: Parsing, Message: err.Error()}
	}

	preamble := codegen.PreambleComplete
	if opts.Preamble == PreambleMinimal {
		preamble = codegen.PreambleMinimal
	}
	output := codegen.Generate(program, codegen.Options{
		Preamble:    preamble,
		IndentWidth: opts.IndentWidth,
	})
	return output, nil
}
