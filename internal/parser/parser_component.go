package parser

import (
	"strings"

	"bali/internal/ast"
)

// indentation is one level of canonical indentation, matching the formatter.
const indentation = "    "

// elementStarters are the token kinds that can begin an element literal.
var elementStarters = []TokenType{
	TAG, SYMBOL, FRACTION, NUMBER, FLOAT, MOMENT, DURATION, RESOURCE,
	VERSION, BINARY, TEXT_BLOCK, TEXT, TRUE, FALSE, UNDEFINED, INFINITY,
	NONE, ANY, IMAGINARY, CONSTANT,
}

// parseComponent parses an element, structure, or block, optionally suffixed
// with parenthesized parameters. Parameters attach only here, never to bare
// sub-expressions.
func (p *Parser) parseComponent() (ast.Node, error) {
	var entity ast.Node
	var err error

	switch {
	case p.check(LEFT_BRACKET):
		entity, err = p.parseStructure()
	case p.check(LEFT_BRACE):
		entity, err = p.parseBlock()
	default:
		entity, err = p.parseElement()
	}
	if err != nil {
		return nil, err
	}

	if p.check(LEFT_PAREN) {
		parameters, err := p.parseParameters()
		if err != nil {
			return nil, err
		}
		return ast.NewTree(ast.COMPONENT, entity, parameters), nil
	}
	return ast.NewTree(ast.COMPONENT, entity), nil
}

func (p *Parser) parseElement() (ast.Node, error) {
	tok := p.peek()
	switch tok.Type {
	case TAG:
		p.advance()
		return ast.NewTerminal(ast.TAG, tok.Lexeme), nil
	case SYMBOL:
		p.advance()
		return ast.NewTerminal(ast.SYMBOL, tok.Lexeme), nil
	case VERSION:
		p.advance()
		return ast.NewTerminal(ast.VERSION, tok.Lexeme), nil
	case MOMENT:
		p.advance()
		return ast.NewTerminal(ast.MOMENT, tok.Lexeme), nil
	case DURATION:
		p.advance()
		return ast.NewTerminal(ast.DURATION, tok.Lexeme), nil
	case RESOURCE:
		p.advance()
		return ast.NewTerminal(ast.REFERENCE, tok.Lexeme), nil
	case TEXT:
		p.advance()
		return ast.NewTerminal(ast.TEXT, tok.Lexeme), nil
	case TEXT_BLOCK:
		p.advance()
		return ast.NewTerminal(ast.TEXT, p.normalizeMultiline(tok.Lexeme)), nil
	case BINARY:
		p.advance()
		return ast.NewTerminal(ast.BINARY, p.normalizeMultiline(tok.Lexeme)), nil
	case FRACTION:
		p.advance()
		return ast.NewTerminal(ast.PROBABILITY, tok.Lexeme), nil
	case TRUE, FALSE:
		p.advance()
		return ast.NewTerminal(ast.PROBABILITY, tok.Lexeme), nil
	case NUMBER, FLOAT, CONSTANT, IMAGINARY, UNDEFINED, INFINITY:
		p.advance()
		return ast.NewTerminal(ast.NUMBER, tok.Lexeme), nil
	case NONE, ANY:
		p.advance()
		return ast.NewTerminal(ast.TEMPLATE, tok.Lexeme), nil
	case LEFT_PAREN:
		return p.parseComplexNumber()
	}
	return nil, p.failExpected("an element literal was expected", elementStarters...)
}

// complexAhead reports whether the upcoming tokens shape a rectangular or
// polar complex-number literal rather than a precedence expression. Two to
// three tokens of lookahead suffice.
func (p *Parser) complexAhead() bool {
	if !p.check(LEFT_PAREN) {
		return false
	}
	i := p.current + 1
	if p.typeAt(i) == MINUS {
		i++
	}
	switch p.typeAt(i) {
	case NUMBER, FLOAT, FRACTION, CONSTANT, INFINITY:
	default:
		return false
	}
	switch p.typeAt(i + 1) {
	case COMMA, CONSTANT:
		return true
	}
	return false
}

// parseComplexNumber normalizes a rectangular '(a, bi)' or polar '(r e^ ai)'
// literal into a single canonical NUMBER terminal.
func (p *Parser) parseComplexNumber() (ast.Node, error) {
	if _, err := p.expect(LEFT_PAREN); err != nil {
		return nil, err
	}
	real, err := p.signedReal()
	if err != nil {
		return nil, err
	}

	var value string
	switch {
	case p.match(COMMA):
		imaginary, err := p.signedImaginary()
		if err != nil {
			return nil, err
		}
		value = "(" + real + ", " + imaginary + ")"
	case p.check(CONSTANT) && p.peek().Lexeme == "e":
		p.advance()
		if _, err := p.expect(CARET); err != nil {
			return nil, err
		}
		angle, err := p.signedImaginary()
		if err != nil {
			return nil, err
		}
		value = "(" + real + " e^ " + angle + ")"
	default:
		return nil, p.failExpected("a complex number requires an imaginary part", COMMA, CONSTANT)
	}

	if _, err := p.expect(RIGHT_PAREN); err != nil {
		return nil, err
	}
	return ast.NewTerminal(ast.NUMBER, value), nil
}

func (p *Parser) signedReal() (string, error) {
	sign := ""
	if p.match(MINUS) {
		sign = "-"
	}
	if p.checkAny(NUMBER, FLOAT, FRACTION, CONSTANT, INFINITY) {
		return sign + p.advance().Lexeme, nil
	}
	return "", p.failExpected("a real value was expected", NUMBER, FLOAT, FRACTION, CONSTANT, INFINITY)
}

func (p *Parser) signedImaginary() (string, error) {
	sign := ""
	if p.match(MINUS) {
		sign = "-"
	}
	if p.check(IMAGINARY) {
		p.advance()
		return sign + "i", nil
	}
	if p.checkAny(NUMBER, FLOAT) {
		lexeme := p.advance().Lexeme
		if !strings.HasSuffix(lexeme, "i") {
			return "", p.failExpected("an imaginary value must end in 'i'", IMAGINARY)
		}
		return sign + lexeme, nil
	}
	return "", p.failExpected("an imaginary value was expected", NUMBER, FLOAT, IMAGINARY)
}

// parseStructure parses a bracketed range, array, or table. One token of
// lookahead selects among the inline, newline-delimited, and empty surface
// forms; the surface variant is not retained in the tree.
func (p *Parser) parseStructure() (ast.Node, error) {
	if _, err := p.expect(LEFT_BRACKET); err != nil {
		return nil, err
	}

	switch {
	case p.check(RIGHT_BRACKET):
		p.advance()
		return ast.NewTree(ast.ARRAY), nil

	case p.check(COLON):
		p.advance()
		if _, err := p.expect(RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.TABLE), nil

	case p.check(NEWLINE):
		return p.parseMultilineStructure()
	}

	return p.parseInlineStructure()
}

func (p *Parser) parseInlineStructure() (ast.Node, error) {
	if p.associationAhead() {
		associations, err := p.parseInlineAssociations()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.TABLE, associations...), nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.match(RANGE) {
		last, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.RANGE, first, last), nil
	}

	items := []ast.Node{first}
	for p.match(COMMA) {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expect(RIGHT_BRACKET); err != nil {
		return nil, err
	}
	return ast.NewTree(ast.ARRAY, items...), nil
}

func (p *Parser) parseMultilineStructure() (ast.Node, error) {
	p.advance() // the newline after '['
	p.depth++

	isTable := p.associationAhead()
	var items []ast.Node
	for !p.check(RIGHT_BRACKET) && !p.isAtEnd() {
		var item ast.Node
		var err error
		if isTable {
			item, err = p.parseAssociation()
		} else {
			item, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, err := p.expect(NEWLINE); err != nil {
			return nil, err
		}
		for p.check(NEWLINE) {
			p.advance()
		}
	}

	p.depth--
	if _, err := p.expect(RIGHT_BRACKET); err != nil {
		return nil, err
	}

	kind := ast.ARRAY
	if isTable {
		kind = ast.TABLE
	}
	return ast.NewTree(kind, items...), nil
}

// associationAhead reports whether the next tokens shape a 'key: value'
// association: a single-token element key followed by a colon.
func (p *Parser) associationAhead() bool {
	if !p.checkAny(elementStarters...) {
		return false
	}
	return p.typeAt(p.current+1) == COLON
}

func (p *Parser) parseAssociation() (ast.Node, error) {
	key, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.ASSOCIATION, key, value), nil
}

func (p *Parser) parseInlineAssociations() ([]ast.Node, error) {
	var associations []ast.Node
	for {
		association, err := p.parseAssociation()
		if err != nil {
			return nil, err
		}
		associations = append(associations, association)
		if !p.match(COMMA) {
			break
		}
	}
	return associations, nil
}

// parseParameters parses the parenthesized parameter list that may suffix a
// component. Parameters use the same association grammar as tables.
func (p *Parser) parseParameters() (ast.Node, error) {
	if _, err := p.expect(LEFT_PAREN); err != nil {
		return nil, err
	}

	if p.check(NEWLINE) {
		p.advance()
		p.depth++
		var associations []ast.Node
		for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
			association, err := p.parseAssociation()
			if err != nil {
				return nil, err
			}
			associations = append(associations, association)
			if _, err := p.expect(NEWLINE); err != nil {
				return nil, err
			}
			for p.check(NEWLINE) {
				p.advance()
			}
		}
		p.depth--
		if len(associations) == 0 {
			return nil, p.failExpected("a parameter list requires at least one association", elementStarters...)
		}
		if _, err := p.expect(RIGHT_PAREN); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.PARAMETERS, associations...), nil
	}

	associations, err := p.parseInlineAssociations()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RIGHT_PAREN); err != nil {
		return nil, err
	}
	return ast.NewTree(ast.PARAMETERS, associations...), nil
}

// normalizeMultiline strips the indentation implied by the current nesting
// depth from the interior lines of a text block or multi-line binary, so the
// canonical value is independent of where the literal appeared.
func (p *Parser) normalizeMultiline(lexeme string) string {
	if !strings.Contains(lexeme, "\n") {
		return lexeme
	}
	prefix := strings.Repeat(indentation, p.depth)
	lines := strings.Split(lexeme, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimPrefix(lines[i], prefix)
	}
	return strings.Join(lines, "\n")
}
