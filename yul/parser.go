package yul

import "fmt"

// Parse reads a program of the accepted Yul subset: a top-level block whose
// statements are usually function definitions. Parse errors are ordinary
// user-facing errors; a successfully parsed tree still carries no types.
func Parse(src string) (*Block, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != tokEOF {
		t := p.peek()
		return nil, fmt.Errorf("line %d: unexpected %q after top-level block", t.Line, t.Value)
	}
	return block, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	return &p.tokens[p.pos]
}

func (p *parser) next() *token {
	t := &p.tokens[p.pos]
	if t.Type != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType) (*token, error) {
	t := p.next()
	if t.Type != typ {
		return nil, fmt.Errorf("line %d: expected %v, got %q", t.Line, typ, t.Value)
	}
	return t, nil
}

func (p *parser) expectKeyword(kw string) error {
	t := p.next()
	if t.Type != tokIdent || t.Value != kw {
		return fmt.Errorf("line %d: expected %q, got %q", t.Line, kw, t.Value)
	}
	return nil
}

func (p *parser) atKeyword(kw string) bool {
	t := p.peek()
	return t.Type == tokIdent && t.Value == kw
}

func (p *parser) parseBlock() (*Block, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	block := &Block{}
	for p.peek().Type != tokRBrace {
		if p.peek().Type == tokEOF {
			return nil, fmt.Errorf("line %d: unexpected end of input in block", p.peek().Line)
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, st)
	}
	p.next() // '}'
	return block, nil
}

func (p *parser) parseStatement() (Statement, error) {
	t := p.peek()

	if t.Type == tokLBrace {
		return p.parseBlock()
	}

	if t.Type == tokIdent {
		switch t.Value {
		case "function":
			return p.parseFunctionDefinition()
		case "let":
			return p.parseVariableDeclaration()
		case "if":
			return p.parseIf()
		case "switch":
			return p.parseSwitch()
		case "for":
			return p.parseForLoop()
		case "break":
			p.next()
			return &Break{}, nil
		case "continue":
			p.next()
			return &Continue{}, nil
		case "leave":
			p.next()
			return &Leave{}, nil
		}
	}

	// Assignment or expression statement. An identifier followed by ',' or
	// ':=' starts an assignment target list.
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(*Identifier); ok && (p.peek().Type == tokComma || p.peek().Type == tokAssign) {
		names := []string{id.Name}
		for p.peek().Type == tokComma {
			p.next()
			nt, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			names = append(names, nt.Value)
		}
		if _, err := p.expect(tokAssign); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{VariableNames: names, Value: value}, nil
	}
	return &ExpressionStatement{Expression: expr}, nil
}

func (p *parser) parseFunctionDefinition() (Statement, error) {
	p.next() // 'function'
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	fn := &FunctionDefinition{Name: name.Value}

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	fn.Parameters, err = p.parseIdentList(tokRParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	if p.peek().Type == tokArrow {
		p.next()
		fn.ReturnVariables, err = p.parseIdentList(tokLBrace)
		if err != nil {
			return nil, err
		}
		if len(fn.ReturnVariables) == 0 {
			return nil, fmt.Errorf("line %d: expected return variables after '->'", p.peek().Line)
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = *body
	return fn, nil
}

// parseIdentList reads a possibly empty comma-separated identifier list,
// stopping before the given terminator.
func (p *parser) parseIdentList(terminator tokenType) ([]string, error) {
	var names []string
	for p.peek().Type != terminator {
		if len(names) > 0 {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		t, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		names = append(names, t.Value)
	}
	return names, nil
}

func (p *parser) parseVariableDeclaration() (Statement, error) {
	p.next() // 'let'
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	decl := &VariableDeclaration{Variables: []string{name.Value}}
	for p.peek().Type == tokComma {
		p.next()
		t, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		decl.Variables = append(decl.Variables, t.Value)
	}
	if p.peek().Type == tokAssign {
		p.next()
		decl.Value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (p *parser) parseIf() (Statement, error) {
	p.next() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &If{Condition: cond, Body: *body}, nil
}

func (p *parser) parseSwitch() (Statement, error) {
	p.next() // 'switch'
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	sw := &Switch{Expression: expr}

	for {
		if p.atKeyword("case") {
			p.next()
			value, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, Case{Value: value, Body: *body})
			continue
		}
		if p.atKeyword("default") {
			line := p.peek().Line
			p.next()
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, Case{Body: *body})
			if p.atKeyword("case") || p.atKeyword("default") {
				return nil, fmt.Errorf("line %d: default case must be last", line)
			}
			continue
		}
		break
	}
	if len(sw.Cases) == 0 {
		return nil, fmt.Errorf("line %d: switch needs at least one case", p.peek().Line)
	}
	return sw, nil
}

func (p *parser) parseForLoop() (Statement, error) {
	p.next() // 'for'
	pre, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	post, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForLoop{Pre: *pre, Condition: cond, Post: *post, Body: *body}, nil
}

func (p *parser) parseExpression() (Expression, error) {
	t := p.peek()

	switch t.Type {
	case tokNumber, tokString:
		return p.parseLiteral()
	case tokIdent:
		if t.Value == "true" || t.Value == "false" {
			return p.parseLiteral()
		}
		p.next()
		if p.peek().Type != tokLParen {
			return &Identifier{Name: t.Value}, nil
		}
		p.next() // '('
		call := &FunctionCall{FunctionName: t.Value}
		for p.peek().Type != tokRParen {
			if len(call.Arguments) > 0 {
				if _, err := p.expect(tokComma); err != nil {
					return nil, err
				}
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
		}
		p.next() // ')'
		return call, nil
	}
	return nil, fmt.Errorf("line %d: expected expression, got %q", t.Line, t.Value)
}

func (p *parser) parseLiteral() (*Literal, error) {
	t := p.next()
	switch t.Type {
	case tokNumber:
		return &Literal{Kind: NumberLiteral, Value: t.Value}, nil
	case tokString:
		return &Literal{Kind: StrLiteral, Value: t.Value}, nil
	case tokIdent:
		if t.Value == "true" || t.Value == "false" {
			return &Literal{Kind: BoolLiteral, Value: t.Value}, nil
		}
	}
	return nil, fmt.Errorf("line %d: expected literal, got %q", t.Line, t.Value)
}
