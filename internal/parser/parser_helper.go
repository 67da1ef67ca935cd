package parser

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) checkAny(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.failExpected("unexpected token", tt)
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) typeAt(i int) TokenType {
	if i >= len(p.tokens) {
		return EOF
	}
	return p.tokens[i].Type
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// failExpected builds the fatal syntax error that unwinds the whole parse.
// It carries the offending token and the set of token kinds that were valid
// at this point.
func (p *Parser) failExpected(message string, expected ...TokenType) error {
	found := p.peek()
	return &ParseError{
		Name:     p.name,
		Message:  message,
		Position: found.Position,
		Expected: expected,
		Found:    found,
	}
}
