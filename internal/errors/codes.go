package errors

// Error codes used in diagnostics and documentation to identify parse
// failures consistently across the toolchain.
//
// Error code ranges:
// B0001-B0099: Lexical errors
// B0100-B0199: Syntax errors
// B0200-B0299: Value conversion errors

const (
	// B0001: An unexpected character or malformed token
	ErrorIllegalToken = "B0001"

	// B0002: An unterminated text, binary, or angle-bracket literal
	ErrorUnterminatedLiteral = "B0002"

	// B0100: A token found where the grammar allows other token kinds
	ErrorUnexpectedToken = "B0100"

	// B0101: Leftover input after a complete document
	ErrorTrailingInput = "B0101"

	// B0200: An expression node used where a static value is required
	ErrorNotStatic = "B0200"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorIllegalToken:
		return "The input contains a character that cannot start any token"
	case ErrorUnterminatedLiteral:
		return "A quoted or bracketed literal is missing its closing delimiter"
	case ErrorUnexpectedToken:
		return "A token was found where the grammar expects something else"
	case ErrorTrailingInput:
		return "Input continues after the end of a complete document"
	case ErrorNotStatic:
		return "Expressions have no static value until they are evaluated"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "B0001" && code < "B0100":
		return "Lexical"
	case code >= "B0100" && code < "B0200":
		return "Syntax"
	case code >= "B0200" && code < "B0300":
		return "Conversion"
	default:
		return "Unknown"
	}
}
