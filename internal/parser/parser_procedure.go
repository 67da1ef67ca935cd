package parser

import (
	"bali/internal/ast"
)

// parseBlock parses a braced procedure, producing a BLOCK wrapping a single
// PROCEDURE child.
func (p *Parser) parseBlock() (ast.Node, error) {
	if _, err := p.expect(LEFT_BRACE); err != nil {
		return nil, err
	}
	procedure, err := p.parseProcedureBody(RIGHT_BRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RIGHT_BRACE); err != nil {
		return nil, err
	}
	return ast.NewTree(ast.BLOCK, procedure), nil
}

// parseProcedureBody parses the statements of a procedure up to (but not
// consuming) the terminator. Statements are separated either by semicolons
// on one line or by newlines, never both within one procedure.
func (p *Parser) parseProcedureBody(terminator TokenType) (ast.Node, error) {
	if p.check(terminator) {
		return ast.NewTree(ast.PROCEDURE), nil
	}

	if p.check(NEWLINE) {
		p.advance()
		p.depth++
		var statements []ast.Node
		for !p.check(terminator) && !p.isAtEnd() {
			statement, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			statements = append(statements, statement)
			if !p.check(terminator) {
				if _, err := p.expect(NEWLINE); err != nil {
					return nil, err
				}
			}
			for p.check(NEWLINE) {
				p.advance()
			}
		}
		p.depth--
		return ast.NewTree(ast.PROCEDURE, statements...), nil
	}

	var statements []ast.Node
	for {
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
		if !p.match(SEMICOLON) {
			break
		}
	}
	return ast.NewTree(ast.PROCEDURE, statements...), nil
}

// parseStatement parses a main clause followed by any number of handle
// clauses and at most one finish clause.
func (p *Parser) parseStatement() (ast.Node, error) {
	main, err := p.parseMainClause()
	if err != nil {
		return nil, err
	}

	clauses := []ast.Node{main}
	for p.check(HANDLE) {
		handle, err := p.parseHandleClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, handle)
	}
	if p.check(FINISH) {
		finish, err := p.parseFinishClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, finish)
	}
	return ast.NewTree(ast.STATEMENT, clauses...), nil
}

func (p *Parser) parseMainClause() (ast.Node, error) {
	switch p.peek().Type {
	case CHECKOUT:
		return p.parseCheckoutClause()
	case SAVE:
		return p.parseSaveClause()
	case DISCARD:
		return p.parseSingleExpressionClause(ast.DISCARD_CLAUSE)
	case COMMIT:
		return p.parsePairedClause(TO, ast.COMMIT_CLAUSE)
	case PUBLISH:
		return p.parseSingleExpressionClause(ast.PUBLISH_CLAUSE)
	case QUEUE:
		return p.parsePairedClause(ON, ast.QUEUE_CLAUSE)
	case WAIT:
		return p.parseWaitClause()
	case IF:
		return p.parseIfClause()
	case SELECT:
		return p.parseSelectClause()
	case WHILE:
		return p.parseWhileClause()
	case WITH:
		return p.parseWithClause()
	case CONTINUE:
		p.advance()
		return ast.NewTree(ast.CONTINUE_CLAUSE), nil
	case BREAK:
		p.advance()
		return ast.NewTree(ast.BREAK_CLAUSE), nil
	case RETURN:
		return p.parseReturnClause()
	case THROW:
		return p.parseSingleExpressionClause(ast.THROW_CLAUSE)
	}
	return p.parseEvaluateClause()
}

// parseEvaluateClause parses either a bare expression or a recipient
// assignment. A recipient is a symbol or an indexed subcomponent of one.
func (p *Parser) parseEvaluateClause() (ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.check(ASSIGN) {
		recipient, ok := recipientOf(expr)
		if !ok {
			return nil, p.failExpected("the target of an assignment must be a symbol or an indexed symbol", SYMBOL)
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewTree(ast.EVALUATE_CLAUSE, recipient, value), nil
	}
	return ast.NewTree(ast.EVALUATE_CLAUSE, expr), nil
}

// recipientOf extracts the assignable target from an already parsed
// expression. Symbols reach here wrapped in a component, so the wrapper is
// peeled off to match the shape parseRecipient produces.
func recipientOf(node ast.Node) (ast.Node, bool) {
	switch n := node.(type) {
	case *ast.Terminal:
		if n.Kind() == ast.SYMBOL {
			return n, true
		}
	case *ast.Tree:
		switch n.Kind() {
		case ast.COMPONENT:
			if len(n.Children()) == 1 {
				return recipientOf(n.Child(0))
			}
		case ast.SUBCOMPONENT_EXPRESSION:
			target, ok := recipientOf(n.Child(0))
			if !ok {
				return nil, false
			}
			children := append([]ast.Node{target}, n.Children()[1:]...)
			return ast.NewTree(ast.SUBCOMPONENT_EXPRESSION, children...), true
		}
	}
	return nil, false
}

// parseRecipient parses the assignable target used by checkout and wait
// clauses: a symbol optionally followed by bracketed indices.
func (p *Parser) parseRecipient() (ast.Node, error) {
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return nil, err
	}
	var recipient ast.Node = ast.NewTerminal(ast.SYMBOL, tok.Lexeme)
	if p.check(LEFT_BRACKET) {
		p.advance()
		indices, err := p.parseExpressionList(RIGHT_BRACKET)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_BRACKET); err != nil {
			return nil, err
		}
		children := append([]ast.Node{recipient}, indices...)
		recipient = ast.NewTree(ast.SUBCOMPONENT_EXPRESSION, children...)
	}
	return recipient, nil
}

func (p *Parser) parseCheckoutClause() (ast.Node, error) {
	p.advance()
	recipient, err := p.parseRecipient()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FROM); err != nil {
		return nil, err
	}
	location, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.CHECKOUT_CLAUSE, recipient, location), nil
}

func (p *Parser) parseSaveClause() (ast.Node, error) {
	p.advance()
	draft, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.match(TO) {
		recipient, err := p.parseRecipient()
		if err != nil {
			return nil, err
		}
		return ast.NewTree(ast.SAVE_CLAUSE, draft, recipient), nil
	}
	return ast.NewTree(ast.SAVE_CLAUSE, draft), nil
}

func (p *Parser) parseWaitClause() (ast.Node, error) {
	p.advance()
	if _, err := p.expect(FOR); err != nil {
		return nil, err
	}
	recipient, err := p.parseRecipient()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FROM); err != nil {
		return nil, err
	}
	bag, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.WAIT_CLAUSE, recipient, bag), nil
}

// parseIfClause parses 'if C then B' with any number of 'else if C then B'
// continuations and an optional trailing 'else B'. The children alternate
// condition and block; an odd count means the last child is the else block.
func (p *Parser) parseIfClause() (ast.Node, error) {
	p.advance()
	var children []ast.Node
	for {
		condition, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		children = append(children, condition, block)

		if !p.check(ELSE) {
			break
		}
		p.advance()
		if p.match(IF) {
			continue
		}
		alternative, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		children = append(children, alternative)
		break
	}
	return ast.NewTree(ast.IF_CLAUSE, children...), nil
}

// parseSelectClause parses 'select S (matching P do B)+ (else B)?'. The
// first child is the selector, then pattern/block pairs, then an optional
// trailing else block (even total child count).
func (p *Parser) parseSelectClause() (ast.Node, error) {
	p.advance()
	selector, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	children := []ast.Node{selector}
	if !p.check(MATCHING) {
		return nil, p.failExpected("a select clause requires at least one matching option", MATCHING)
	}
	for p.match(MATCHING) {
		pattern, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(DO); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		children = append(children, pattern, block)
	}
	if p.match(ELSE) {
		alternative, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		children = append(children, alternative)
	}
	return ast.NewTree(ast.SELECT_CLAUSE, children...), nil
}

func (p *Parser) parseWhileClause() (ast.Node, error) {
	p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.WHILE_CLAUSE, condition, block), nil
}

func (p *Parser) parseWithClause() (ast.Node, error) {
	p.advance()
	if _, err := p.expect(EACH); err != nil {
		return nil, err
	}
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return nil, err
	}
	item := ast.NewTerminal(ast.SYMBOL, tok.Lexeme)
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	sequence, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.WITH_CLAUSE, item, sequence, block), nil
}

func (p *Parser) parseReturnClause() (ast.Node, error) {
	p.advance()
	if p.checkAny(NEWLINE, SEMICOLON, RIGHT_BRACE, HANDLE, FINISH, EOF) {
		return ast.NewTree(ast.RETURN_CLAUSE), nil
	}
	result, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.RETURN_CLAUSE, result), nil
}

func (p *Parser) parseHandleClause() (ast.Node, error) {
	p.advance()
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return nil, err
	}
	exception := ast.NewTerminal(ast.SYMBOL, tok.Lexeme)
	if _, err := p.expect(MATCHING); err != nil {
		return nil, err
	}
	pattern, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WITH); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.HANDLE_CLAUSE, exception, pattern, block), nil
}

func (p *Parser) parseFinishClause() (ast.Node, error) {
	p.advance()
	if _, err := p.expect(WITH); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(ast.FINISH_CLAUSE, block), nil
}

func (p *Parser) parseSingleExpressionClause(kind ast.NodeType) (ast.Node, error) {
	p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(kind, expr), nil
}

func (p *Parser) parsePairedClause(preposition TokenType, kind ast.NodeType) (ast.Node, error) {
	p.advance()
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(preposition); err != nil {
		return nil, err
	}
	second, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewTree(kind, first, second), nil
}
