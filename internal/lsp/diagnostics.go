package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bali/internal/parser"
)

// ConvertError transforms a scan or parse failure into LSP diagnostics for
// IDE display. Parsing is fail-fast, so at most one diagnostic results.
func ConvertError(err error) []protocol.Diagnostic {
	switch e := err.(type) {
	case *parser.ScanError:
		return []protocol.Diagnostic{positionedDiagnostic(e.Message, "bali-scanner", e.Position, e.Length)}
	case *parser.ParseError:
		length := len(e.Found.Lexeme)
		return []protocol.Diagnostic{positionedDiagnostic(e.Error(), "bali-parser", e.Position, length)}
	}
	return []protocol.Diagnostic{positionedDiagnostic(err.Error(), "bali", parser.Position{Line: 1, Column: 1}, 1)}
}

func positionedDiagnostic(message, source string, position parser.Position, length int) protocol.Diagnostic {
	if length <= 0 {
		length = 1
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(position.Line - 1),
				Character: uint32(position.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(position.Line - 1),
				Character: uint32(position.Column - 1 + length),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(source),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
