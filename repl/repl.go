// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bali/internal/ast"
	"bali/internal/errors"
	"bali/internal/parser"
)

const PROMPT = ">> "

// Start reads one Bali component or expression per line, echoes its
// canonical form, and prints its static value when it has one.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		node, err := parser.ParseExpression("repl", line)
		if err != nil {
			reporter := errors.NewReporter("repl", line)
			fmt.Fprint(out, reporter.Report(err))
			continue
		}

		fmt.Fprintln(out, ast.Format(node))

		value, err := ast.Value(node)
		if err != nil {
			// Expressions are code; they simply have no value to show.
			continue
		}
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(out, "%s %v\n", dim("="), value)
	}
}
