package lsp

import (
	"strings"

	"bali/internal/parser"
)

// The semantic token types advertised in the server legend.
var SemanticTokenTypes = []string{
	"keyword",
	"string",
	"number",
	"variable",
	"function",
	"type",
	"operator",
	"macro",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken is a single LSP semantic token entry. Line and StartChar are
// 0-based; TokenType indexes SemanticTokenTypes and TokenModifiers is a
// bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens lexes the source and classifies every token. Sources
// that fail to lex highlight nothing; the diagnostics channel covers them.
func collectSemanticTokens(source string) []SemanticToken {
	tokens, err := parser.NewScanner(source).ScanTokens()
	if err != nil {
		return nil
	}

	var result []SemanticToken
	for _, token := range tokens {
		name := classifyToken(token.Type)
		if name == "" {
			continue
		}
		result = append(result, splitToken(token, indexOf(name, SemanticTokenTypes))...)
	}
	return result
}

// splitToken emits one entry per source line of a token, since LSP semantic
// tokens cannot span lines. Only text blocks and binaries are multi-line.
func splitToken(token parser.Token, tokenType int) []SemanticToken {
	lines := strings.Split(token.Lexeme, "\n")
	result := make([]SemanticToken, 0, len(lines))
	for i, line := range lines {
		start := 0
		if i == 0 {
			start = token.Position.Column - 1
		}
		if len(line) == 0 {
			continue
		}
		result = append(result, SemanticToken{
			Line:      uint32(token.Position.Line - 1 + i),
			StartChar: uint32(start),
			Length:    uint32(len(line)),
			TokenType: tokenType,
		})
	}
	return result
}

func classifyToken(tt parser.TokenType) string {
	switch tt {
	case parser.SHELL:
		return "macro"
	case parser.TAG:
		return "type"
	case parser.SYMBOL:
		return "variable"
	case parser.IDENTIFIER:
		return "function"
	case parser.TEXT, parser.TEXT_BLOCK, parser.BINARY, parser.RESOURCE:
		return "string"
	case parser.NUMBER, parser.FLOAT, parser.FRACTION, parser.MOMENT,
		parser.DURATION, parser.VERSION, parser.CONSTANT, parser.IMAGINARY,
		parser.UNDEFINED, parser.INFINITY:
		return "number"
	case parser.HANDLE, parser.MATCHING, parser.WITH, parser.FINISH,
		parser.CHECKOUT, parser.FROM, parser.SAVE, parser.TO, parser.DISCARD,
		parser.COMMIT, parser.PUBLISH, parser.QUEUE, parser.ON, parser.WAIT,
		parser.FOR, parser.IF, parser.THEN, parser.ELSE, parser.SELECT,
		parser.DO, parser.WHILE, parser.EACH, parser.IN, parser.CONTINUE,
		parser.BREAK, parser.RETURN, parser.THROW,
		parser.TRUE, parser.FALSE, parser.NONE, parser.ANY:
		return "keyword"
	case parser.AND, parser.SANS, parser.XOR, parser.OR, parser.IS,
		parser.MATCHES, parser.NOT,
		parser.QUESTION, parser.BAR, parser.AT, parser.CARET, parser.STAR,
		parser.SLASH, parser.DOUBLE_SLASH, parser.PLUS, parser.MINUS,
		parser.LESS, parser.EQUAL, parser.GREATER, parser.BANG, parser.ASSIGN:
		return "operator"
	}
	return ""
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
