package parser

import (
	"bali/internal/ast"
)

// binaryPrecedence orders the infix operators; higher binds tighter. The
// gaps leave room for the prefix operators, which bind between tiers.
var binaryPrecedence = map[TokenType]int{
	QUESTION:     1,
	AND:          2,
	SANS:         2,
	XOR:          2,
	OR:           2,
	LESS:         4,
	EQUAL:        4,
	GREATER:      4,
	IS:           4,
	MATCHES:      4,
	PLUS:         5,
	MINUS:        5,
	STAR:         6,
	SLASH:        6,
	DOUBLE_SLASH: 6,
	CARET:        8,
}

var rightAssociative = map[TokenType]bool{
	CARET:    true,
	QUESTION: true,
}

func binaryKind(tt TokenType) ast.NodeType {
	switch tt {
	case CARET, STAR, SLASH, DOUBLE_SLASH, PLUS, MINUS:
		return ast.ARITHMETIC_EXPRESSION
	case LESS, EQUAL, GREATER, IS, MATCHES:
		return ast.COMPARISON_EXPRESSION
	case AND, SANS, XOR, OR:
		return ast.LOGICAL_EXPRESSION
	}
	return ast.DEFAULT_EXPRESSION
}

func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseExpr(1)
}

// parseExpr implements precedence climbing over the infix operator table.
// Each iteration folds one binary operator whose precedence is at least
// minPrec into the left operand.
func (p *Parser) parseExpr(minPrec int) (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()

		nextPrec := prec + 1
		if rightAssociative[tok.Type] {
			nextPrec = prec
		}
		right, err := p.parseExpr(nextPrec)
		if err != nil {
			return nil, err
		}
		left = ast.NewTreeWithOperator(binaryKind(tok.Type), tok.Lexeme, left, right)
	}
}

// parseUnary parses the prefix operators. Each prefix binds tighter than a
// specific infix tier, so its operand is parsed at that tier's precedence.
func (p *Parser) parseUnary() (ast.Node, error) {
	switch p.peek().Type {
	case AT:
		p.advance()
		operand, err := p.parseExpr(12)
		if err != nil {
			return nil, err
		}
		return ast.NewTree(ast.DEREFERENCE_EXPRESSION, operand), nil
	case MINUS, SLASH, STAR:
		// Numeric, multiplicative, or conjugate inversion; binds above
		// the multiplicative tier and below exponentiation.
		tok := p.advance()
		operand, err := p.parseExpr(7)
		if err != nil {
			return nil, err
		}
		return ast.NewTreeWithOperator(ast.INVERSION_EXPRESSION, tok.Lexeme, operand), nil
	case NOT:
		p.advance()
		operand, err := p.parseExpr(3)
		if err != nil {
			return nil, err
		}
		return ast.NewTree(ast.COMPLEMENT_EXPRESSION, operand), nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(primary)
}

// parsePostfix folds the postfix operators onto a primary: message sends,
// subcomponent indexing, and factorial. All are left associative.
func (p *Parser) parsePostfix(target ast.Node) (ast.Node, error) {
	for {
		switch {
		case p.check(DOT):
			p.advance()
			tok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			name := ast.NewTerminal(ast.IDENTIFIER, tok.Lexeme)
			if _, err := p.expect(LEFT_PAREN); err != nil {
				return nil, err
			}
			arguments, err := p.parseExpressionList(RIGHT_PAREN)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RIGHT_PAREN); err != nil {
				return nil, err
			}
			children := append([]ast.Node{target, name}, arguments...)
			target = ast.NewTree(ast.MESSAGE_EXPRESSION, children...)

		case p.check(LEFT_BRACKET):
			p.advance()
			indices, err := p.parseExpressionList(RIGHT_BRACKET)
			if err != nil {
				return nil, err
			}
			if len(indices) == 0 {
				return nil, p.failExpected("a subcomponent requires at least one index", SYMBOL, NUMBER)
			}
			if _, err := p.expect(RIGHT_BRACKET); err != nil {
				return nil, err
			}
			children := append([]ast.Node{target}, indices...)
			target = ast.NewTree(ast.SUBCOMPONENT_EXPRESSION, children...)

		case p.check(BANG):
			p.advance()
			target = ast.NewTree(ast.FACTORIAL_EXPRESSION, target)

		default:
			return target, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	if p.complexAhead() {
		return p.parseComponent()
	}

	switch p.peek().Type {
	case LEFT_BRACKET, LEFT_BRACE:
		return p.parseComponent()

	case IDENTIFIER:
		tok := p.advance()
		if p.check(LEFT_PAREN) {
			p.advance()
			arguments, err := p.parseExpressionList(RIGHT_PAREN)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RIGHT_PAREN); err != nil {
				return nil, err
			}
			name := ast.NewTerminal(ast.IDENTIFIER, tok.Lexeme)
			children := append([]ast.Node{name}, arguments...)
			return ast.NewTree(ast.FUNCTION_EXPRESSION, children...), nil
		}
		return ast.NewTerminal(ast.VARIABLE, tok.Lexeme), nil

	case LEFT_PAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.PRECEDENCE_EXPRESSION, inner), nil

	case BAR:
		p.advance()
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(BAR); err != nil {
			return nil, err
		}
		return ast.NewTree(ast.MAGNITUDE_EXPRESSION, operand), nil
	}

	if p.checkAny(elementStarters...) {
		return p.parseComponent()
	}
	return nil, p.failExpected("an expression was expected",
		IDENTIFIER, LEFT_PAREN, LEFT_BRACKET, LEFT_BRACE, BAR)
}

// parseExpressionList parses zero or more comma separated expressions up to
// (but not consuming) the terminator.
func (p *Parser) parseExpressionList(terminator TokenType) ([]ast.Node, error) {
	var expressions []ast.Node
	if p.check(terminator) {
		return expressions, nil
	}
	for {
		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expression)
		if !p.match(COMMA) {
			return expressions, nil
		}
	}
}
