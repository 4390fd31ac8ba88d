package syntax

// cursor walks the token slice. save/restore/discard implement speculative
// parsing: save before trying an alternative, restore when it does not apply,
// discard once it has been committed to.
type cursor struct {
	toks  []token
	end   int // byte length of the pattern
	index int
	stack []int
}

func (c *cursor) peek() (token, bool) {
	if c.index >= len(c.toks) {
		return token{}, false
	}
	return c.toks[c.index], true
}

func (c *cursor) next() { c.index++ }

// pos is the byte offset of the current token, or the pattern length at the
// end of input.
func (c *cursor) pos() int {
	if tok, ok := c.peek(); ok {
		return tok.pos
	}
	return c.end
}

func (c *cursor) save() { c.stack = append(c.stack, c.index) }

func (c *cursor) restore() {
	c.index = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *cursor) discard() { c.stack = c.stack[:len(c.stack)-1] }

func (c *cursor) at(typ tokenType) bool {
	tok, ok := c.peek()
	return ok && tok.typ == typ
}

type parser struct {
	pattern string
	cur     *cursor
}

// Parse parses pattern into a syntax tree. On failure it returns a
// *SyntaxError and no tree.
//
// Grammar, lowest precedence first:
//
//	union      := concat ('|' union)? | '|' union
//	concat     := factorStar*            // none at all is the empty literal
//	factorStar := factor '*'?
//	factor     := char | '(' union ')'
func Parse(pattern string) (Node, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{pattern: pattern, cur: &cursor{toks: toks, end: len(pattern)}}

	root, err := p.union()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.cur.peek(); ok {
		// concat stops only before '|' or ')', and union consumes '|'
		if tok.typ == tRParen {
			return nil, p.fault(ErrUnexpectedParen)
		}
		return nil, p.fault(ErrInvalidToken)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) fault(err error) *SyntaxError {
	return &SyntaxError{Pattern: p.pattern, Pos: p.cur.pos(), Err: err}
}

func (p *parser) union() (Node, error) {
	if p.cur.at(tUnion) {
		p.cur.next()
		rhs, err := p.union()
		if err != nil {
			return nil, err
		}
		return &Union{Left: Epsilon(), Right: rhs}, nil
	}

	lhs, err := p.concat()
	if err != nil {
		return nil, err
	}
	if !p.cur.at(tUnion) {
		return lhs, nil
	}
	p.cur.next()
	rhs, err := p.union()
	if err != nil {
		return nil, err
	}
	return &Union{Left: lhs, Right: rhs}, nil
}

func (p *parser) concat() (Node, error) {
	var node Node
	for {
		f, ok, err := p.factorStar()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if node == nil {
			node = f
		} else {
			node = &Concat{Left: node, Right: f}
		}
	}
	if node == nil {
		return Epsilon(), nil
	}
	return node, nil
}

// factorStar reports ok == false, with the cursor unmoved, when the next
// token cannot start a factor.
func (p *parser) factorStar() (Node, bool, error) {
	if p.cur.at(tStar) {
		return nil, false, p.fault(ErrMissingRepeatArgument)
	}

	p.cur.save()
	f, ok, err := p.factor()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		p.cur.restore()
		return nil, false, nil
	}
	p.cur.discard()

	if p.cur.at(tStar) {
		p.cur.next()
		if p.cur.at(tStar) {
			return nil, false, p.fault(ErrMissingRepeatArgument)
		}
		return &Star{Inner: f}, true, nil
	}
	return f, true, nil
}

func (p *parser) factor() (Node, bool, error) {
	if n, ok, err := p.group(); err != nil || ok {
		return n, ok, err
	}
	tok, ok := p.cur.peek()
	if !ok || tok.typ != tChar {
		return nil, false, nil
	}
	p.cur.next()
	return &Literal{Char: tok.ch}, true, nil
}

// group parses '(' union ')'. A missing ')' is a hard fault: once '(' is
// consumed there is no other alternative to fall back to.
func (p *parser) group() (Node, bool, error) {
	p.cur.save()
	if !p.cur.at(tLParen) {
		p.cur.restore()
		return nil, false, nil
	}
	p.cur.next()
	p.cur.discard()

	inner, err := p.union()
	if err != nil {
		return nil, false, err
	}
	if !p.cur.at(tRParen) {
		return nil, false, p.fault(ErrMissingParen)
	}
	p.cur.next()
	return &Group{Inner: inner}, true, nil
}
