package syntax

// parser is a recursive-descent parser over the runes of one pattern.
//
// Grammar, tightest binding first:
//
//	primary    = literal | '\' rune | '.' | '^' primary | '(' expression ')'
//	factor     = primary { '*' | '+' }
//	term       = factor { factor }
//	expression = term { '|' term }
type parser struct {
	pattern string
	input   []rune
	pos     int
}

// Parse parses pattern into a syntax tree.
//
// The error, if any, is an *Error wrapping one of ErrUnmatchedParen,
// ErrUnexpectedEOF, ErrUnexpectedToken or ErrTrailingBackslash.
func Parse(pattern string) (Node, error) {
	p := &parser{
		pattern: pattern,
		input:   []rune(pattern),
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// parseExpression only stops early on a ')' that no group opened
	if p.pos < len(p.input) {
		return nil, p.errorf(ErrUnmatchedParen)
	}
	return node, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func MustParse(pattern string) Node {
	node, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return node
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) next() (rune, bool) {
	r, ok := p.peek()
	if ok {
		p.pos++
	}
	return r, ok
}

func (p *parser) errorf(err error) error {
	return &Error{Pattern: p.pattern, Offset: p.pos, Err: err}
}

// parseExpression parses terms separated by '|', folding them to the left.
func (p *parser) parseExpression() (Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		r, ok := p.peek()
		if !ok || r != '|' {
			return node, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &Alternate{Left: node, Right: right}
	}
}

// parseTerm parses factors for as long as the next rune can start one.
func (p *parser) parseTerm() (Node, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		r, ok := p.peek()
		if !ok || !startsFactor(r) {
			return node, nil
		}

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = &Concat{Left: node, Right: right}
	}
}

// parseFactor parses a primary followed by any number of postfix operators.
// Each operator wraps the previous result, so a** is a star of a star.
func (p *parser) parseFactor() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		r, ok := p.peek()
		switch {
		case ok && r == '*':
			node = &Star{Sub: node}
		case ok && r == '+':
			node = &Plus{Sub: node}
		default:
			return node, nil
		}
		p.pos++
	}
}

func (p *parser) parsePrimary() (Node, error) {
	r, ok := p.next()
	if !ok {
		return nil, p.errorf(ErrUnexpectedEOF)
	}

	switch r {
	case '\\':
		// An escaped operator is a literal. Escaping anything else is a
		// no-op: the backslash is dropped and the rune taken as it is.
		escaped, ok := p.next()
		if !ok {
			return nil, p.errorf(ErrTrailingBackslash)
		}
		return &Literal{Rune: escaped}, nil

	case '.':
		return &Any{}, nil

	case '^':
		sub, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &Not{Sub: sub}, nil

	case '(':
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing, ok := p.next(); !ok || closing != ')' {
			return nil, p.errorf(ErrUnmatchedParen)
		}
		return node, nil

	case ')', '*', '+', '|':
		p.pos--
		return nil, p.errorf(ErrUnexpectedToken)
	}

	return &Literal{Rune: r}, nil
}

// startsFactor reports whether r can begin a factor.
func startsFactor(r rune) bool {
	switch r {
	case ')', '*', '+', '|':
		return false
	}
	return true
}
