package parser

import (
	"fmt"
	"strings"

	"bali/internal/ast"
)

// Parser consumes a scanned token stream and produces the canonical syntax
// tree. Parsing is fail-fast: the first syntax error aborts the whole parse
// and no partial tree is ever returned. A parser owns all of its state, so
// separate parses may run concurrently on separate instances.
type Parser struct {
	name    string
	tokens  []Token
	current int
	depth   int // nesting depth of newline-delimited composites
}

type ParseError struct {
	Name     string // the document name given to the entry point
	Message  string
	Position Position
	Expected []TokenType
	Found    Token
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%d:%d", e.Position.Line, e.Position.Column)
	if e.Name != "" {
		location = e.Name + ":" + location
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at %s: %s", location, e.Message)
	}
	expected := make([]string, len(e.Expected))
	for i, tt := range e.Expected {
		expected[i] = tt.String()
	}
	return fmt.Sprintf("syntax error at %s: %s (expected %s, found %s)",
		location, e.Message, strings.Join(expected, " or "), e.Found.Type)
}

func NewParser(name string, tokens []Token) *Parser {
	return &Parser{name: name, tokens: tokens}
}

// ParseDocument parses a whole document: an optional shell line, a single
// component, and a trailing newline.
func ParseDocument(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseDocument()
	})
}

// ParseComponent parses a bare component from a source substring.
func ParseComponent(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseComponent()
	})
}

// ParseElement parses a single element literal.
func ParseElement(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseElement()
	})
}

// ParseStructure parses a bracketed range, array, or table literal.
func ParseStructure(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseStructure()
	})
}

// ParseParameters parses a parenthesized parameter list.
func ParseParameters(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseParameters()
	})
}

// ParseExpression parses a bare expression.
func ParseExpression(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseExpression()
	})
}

// ParseProcedure parses a bare statement sequence.
func ParseProcedure(name, source string) (ast.Node, error) {
	return parse(name, source, func(p *Parser) (ast.Node, error) {
		return p.parseProcedureBody(EOF)
	})
}

func parse(name, source string, rule func(*Parser) (ast.Node, error)) (ast.Node, error) {
	scanner := NewScanner(source)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		return nil, err
	}

	parser := NewParser(name, tokens)
	node, err := rule(parser)
	if err != nil {
		return nil, err
	}
	if err := parser.expectEnd(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseDocument() (ast.Node, error) {
	var children []ast.Node

	if p.check(SHELL) {
		shell := p.advance()
		children = append(children, ast.NewTerminal(ast.SHELL, shell.Lexeme))
		if _, err := p.expect(NEWLINE); err != nil {
			return nil, err
		}
	}

	component, err := p.parseComponent()
	if err != nil {
		return nil, err
	}
	children = append(children, component)

	return ast.NewTree(ast.DOCUMENT, children...), nil
}

// expectEnd consumes trailing newlines and requires the token stream to be
// exhausted.
func (p *Parser) expectEnd() error {
	for p.check(NEWLINE) {
		p.advance()
	}
	if !p.isAtEnd() {
		return p.failExpected("unexpected input after a complete parse", EOF)
	}
	return nil
}
