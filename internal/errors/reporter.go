package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bali/internal/ast"
	"bali/internal/parser"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// Diagnostic is a structured parse failure with source context.
type Diagnostic struct {
	Level    ErrorLevel
	Code     string // error code like B0100
	Message  string
	Position parser.Position
	Length   int      // length of the offending region
	Expected []string // token kinds that were valid at this point
	Notes    []string
}

// Reporter formats diagnostics against the source they came from.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Diagnose converts a scan, parse, or generic error into a Diagnostic.
func (r *Reporter) Diagnose(err error) Diagnostic {
	switch e := err.(type) {
	case *parser.ScanError:
		code := ErrorIllegalToken
		if strings.HasPrefix(e.Message, "unterminated") {
			code = ErrorUnterminatedLiteral
		}
		return Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  e.Message,
			Position: e.Position,
			Length:   e.Length,
		}
	case *parser.ParseError:
		expected := make([]string, len(e.Expected))
		for i, tt := range e.Expected {
			expected[i] = tt.String()
		}
		code := ErrorUnexpectedToken
		// A lone EOF expectation means a complete parse had input left over.
		if len(e.Expected) == 1 && e.Expected[0] == parser.EOF {
			code = ErrorTrailingInput
		}
		return Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  e.Message,
			Position: e.Position,
			Length:   len(e.Found.Lexeme),
			Expected: expected,
		}
	case *ast.ConversionError:
		return Diagnostic{
			Level:   Error,
			Code:    ErrorNotStatic,
			Message: e.Error(),
			Position: parser.Position{
				Line:   1,
				Column: 1,
			},
		}
	}
	return Diagnostic{
		Level:   Error,
		Message: err.Error(),
		Position: parser.Position{
			Line:   1,
			Column: 1,
		},
	}
}

// Format renders a diagnostic with a source excerpt and caret marker.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := levelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if d.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelColor(string(d.Level)), d.Message)
	}

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)
	fmt.Fprintf(&out, "%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	if d.Position.Line > 0 && d.Position.Line <= len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, d.Position.Line)),
			dim("│"),
			r.lines[d.Position.Line-1])
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), caret(d.Position.Column, d.Length))
	}

	if len(d.Expected) > 0 {
		helpColor := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s\n",
			indent, helpColor("help:"), "expected "+strings.Join(d.Expected, " or "))
	}
	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	out.WriteString("\n")
	return out.String()
}

// Report formats an error directly.
func (r *Reporter) Report(err error) string {
	return r.Format(r.Diagnose(err))
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func caret(column, length int) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	marker := color.New(color.FgRed, color.Bold).SprintFunc()
	return spaces + marker(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
