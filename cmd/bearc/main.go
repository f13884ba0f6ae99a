// Command bearc is the BearLang driver: it reads one or more .bear
// source files, runs the translator core, and writes the resulting C++
// translation units to disk. It does not invoke a C++ toolchain and
// does not present an interactive menu; those remain the surrounding
// application's responsibility.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swwwjjw/bearlang-app/internal/config"
	"github.com/swwwjjw/bearlang-app/internal/lexer"
	"github.com/swwwjjw/bearlang-app/internal/parser"
	"github.com/swwwjjw/bearlang-app/internal/translate"
)

var (
	flagConfig   string
	flagOut      string
	flagPreamble string
	flagIndent   int
	flagTabWidth int
	flagTokens   bool
	flagAST      bool
)

var rootCmd = &cobra.Command{
	Use:   "bearc <file.bear>...",
	Short: "Translate BearLang source files into C++ translation units",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML config file (indentWidth, tabWidth, preamble, outputDir)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "directory to write .cpp files into (default: alongside each source file)")
	rootCmd.Flags().StringVar(&flagPreamble, "preamble", "", "minimal|complete (default: complete)")
	rootCmd.Flags().IntVar(&flagIndent, "indent", 0, "spaces per indentation level in generated C++ (default: 4)")
	rootCmd.Flags().IntVar(&flagTabWidth, "tab-width", 0, "columns a source tab counts as (default: 4)")
	rootCmd.Flags().BoolVar(&flagTokens, "tokens", false, "print the token stream for each file instead of translating")
	rootCmd.Flags().BoolVar(&flagAST, "ast", false, "print the parsed AST for each file instead of translating")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	opts := buildOptions(cfg)
	outDir := resolveOutDir(cfg)

	for _, path := range args {
		if err := processFile(path, outDir, opts); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// loadConfig loads --config when given. An explicitly requested path
// that cannot be read or parsed is a fatal error; there is no implicit
// default path, so "no --config" simply means "no config".
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func buildOptions(cfg *config.Config) translate.Options {
	opts := translate.Options{
		TabWidth:    cfg.TabWidth,
		IndentWidth: cfg.IndentWidth,
	}
	if cfg.IsPreambleMinimal() {
		opts.Preamble = translate.PreambleMinimal
	}

	if flagIndent != 0 {
		opts.IndentWidth = flagIndent
	}
	if flagTabWidth != 0 {
		opts.TabWidth = flagTabWidth
	}
	switch flagPreamble {
	case "minimal":
		opts.Preamble = translate.PreambleMinimal
	case "complete":
		opts.Preamble = translate.PreambleComplete
	}
	return opts
}

func resolveOutDir(cfg *config.Config) string {
	if flagOut != "" {
		return flagOut
	}
	return cfg.OutputDir
}

func processFile(path, outDir string, opts translate.Options) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if flagTokens {
		return dumpTokens(string(source), opts.TabWidth)
	}
	if flagAST {
		return dumpAST(string(source), opts.TabWidth)
	}

	output, err := translate.Translate(string(source), opts)
	if err != nil {
		return err
	}

	dest := outputPath(path, outDir)
	if err := os.WriteFile(dest, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	log.Printf("wrote %s", dest)
	return nil
}

func outputPath(source, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".cpp"
	if outDir == "" {
		return filepath.Join(filepath.Dir(source), base)
	}
	return filepath.Join(outDir, base)
}

func dumpTokens(source string, tabWidth int) error {
	tokens, err := lexer.Tokenize(source, tabWidth)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Printf("%3d:%-3d %-12s %q\n", tok.Line, tok.Col, tok.Type, tok.Lexeme)
	}
	return nil
}

func dumpAST(source string, tabWidth int) error {
	tokens, err := lexer.Tokenize(source, tabWidth)
	if err != nil {
		return err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	printProgram(program)
	return nil
}
