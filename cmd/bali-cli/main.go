// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"bali/internal/ast"
	"bali/internal/errors"
	"bali/internal/parser"
)

var cli struct {
	Parse  ParseCmd  `cmd:"" help:"Parse documents and report diagnostics."`
	Format FormatCmd `cmd:"" help:"Rewrite documents into canonical form."`
	Tokens TokensCmd `cmd:"" help:"Dump the token stream of a document."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("bali"),
		kong.Description("Tooling for Bali Document Notation."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// ParseCmd validates documents, printing the first diagnostic of each file
// that fails and a timing summary for each file that parses.
type ParseCmd struct {
	Paths []string `arg:"" type:"existingfile" help:"Documents to parse."`
	Quiet bool     `short:"q" help:"Suppress the success summary."`
}

func (c *ParseCmd) Run() error {
	failed := 0
	for _, path := range c.Paths {
		start := time.Now()
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if _, err := parser.ParseDocument(path, string(source)); err != nil {
			reporter := errors.NewReporter(path, string(source))
			fmt.Print(reporter.Report(err))
			failed++
			continue
		}
		if !c.Quiet {
			color.Green("Successfully parsed %s in %s", path, formatDuration(time.Since(start)))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to parse", failed, len(c.Paths))
	}
	return nil
}

// FormatCmd parses documents and emits their canonical form, either to
// standard output or back into the file.
type FormatCmd struct {
	Paths []string `arg:"" type:"existingfile" help:"Documents to format."`
	Write bool     `short:"w" help:"Rewrite the files in place."`
}

func (c *FormatCmd) Run() error {
	for _, path := range c.Paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		node, err := parser.ParseDocument(path, string(source))
		if err != nil {
			reporter := errors.NewReporter(path, string(source))
			fmt.Print(reporter.Report(err))
			return fmt.Errorf("cannot format %s", path)
		}

		formatted := ast.Format(node)
		if !c.Write {
			fmt.Print(formatted)
			continue
		}
		if formatted == string(source) {
			continue
		}
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return err
		}
		color.Yellow("Reformatted %s", path)
	}
	return nil
}

// TokensCmd lexes a document and dumps the tokens as YAML, one entry per
// token with its kind, lexeme, and position.
type TokensCmd struct {
	Path string `arg:"" type:"existingfile" help:"Document to lex."`
}

type tokenDump struct {
	Kind   string `yaml:"kind"`
	Lexeme string `yaml:"lexeme,omitempty"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
}

func (c *TokensCmd) Run() error {
	source, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	tokens, err := parser.NewScanner(string(source)).ScanTokens()
	if err != nil {
		reporter := errors.NewReporter(c.Path, string(source))
		fmt.Print(reporter.Report(err))
		return fmt.Errorf("cannot lex %s", c.Path)
	}

	dump := make([]tokenDump, 0, len(tokens))
	for _, token := range tokens {
		dump = append(dump, tokenDump{
			Kind:   token.Type.String(),
			Lexeme: token.Lexeme,
			Line:   token.Position.Line,
			Column: token.Position.Column,
		})
	}

	encoded, err := yaml.Marshal(dump)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(encoded)
	return err
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
