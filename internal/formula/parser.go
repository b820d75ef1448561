package formula

// Parse parses s according to the grammar in spec §4.2:
//
//	f ::= "false" | "true" | X | "(" f "&&" f ")" | "(" f "||" f ")"
//	    | "<" a ">" f | "[" a "]" f | "mu" X "." f | "nu" X "." f
//
// Binary operators are always parenthesized, so the grammar needs no
// precedence climbing: one token of lookahead at each position determines
// exactly one production. Parse does not annotate binders or check for free
// variables; call Annotate and FreeVariables (or Prepare) for that.
func Parse(s string) (*Node, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	n, err := p.parseFormula()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokEOF {
		return nil, syntaxErrorFromToken("unexpected trailing input after formula", p.peek())
	}

	return n, nil
}

type parser struct {
	toks []token
	cur  int
}

func (p *parser) peek() token {
	return p.toks[p.cur]
}

func (p *parser) next() token {
	t := p.toks[p.cur]
	if p.cur < len(p.toks)-1 {
		p.cur++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.peek()
	if t.kind != k {
		return t, syntaxErrorFromToken("expected "+k.human()+", found "+t.kind.human(), t)
	}
	return p.next(), nil
}

func (p *parser) parseFormula() (*Node, error) {
	t := p.peek()

	switch t.kind {
	case tokFalse:
		p.next()
		return False(), nil

	case tokTrue:
		p.next()
		return True(), nil

	case tokVar:
		p.next()
		return Var(t.lexeme), nil

	case tokLParen:
		p.next()

		left, err := p.parseFormula()
		if err != nil {
			return nil, err
		}

		op := p.peek()
		switch op.kind {
		case tokAnd, tokOr:
			isAnd := op.kind == tokAnd
			p.next()

			right, err := p.parseFormula()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			if isAnd {
				return And(left, right), nil
			}
			return Or(left, right), nil

		case tokRParen:
			// Bare grouping: "(" f ")" with no infix operator. The grammar's
			// binary productions are the only ones that strictly require
			// parentheses, but formulas in the wild parenthesize a bare
			// operand for readability too, so we unwrap and return it as-is.
			p.next()
			return left, nil

		default:
			return nil, syntaxErrorFromToken("expected '&&', '||', or ')', found "+op.kind.human(), op)
		}

	case tokLAngle:
		p.next()
		actionTok, err := p.expect(tokAction)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRAngle); err != nil {
			return nil, err
		}
		child, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Diamond(actionTok.lexeme, child), nil

	case tokLBracket:
		p.next()
		actionTok, err := p.expect(tokAction)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		child, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Box(actionTok.lexeme, child), nil

	case tokMu:
		p.next()
		varTok, err := p.expect(tokVar)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokDot); err != nil {
			return nil, err
		}
		child, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Mu(varTok.lexeme, child), nil

	case tokNu:
		p.next()
		varTok, err := p.expect(tokVar)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokDot); err != nil {
			return nil, err
		}
		child, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		return Nu(varTok.lexeme, child), nil

	default:
		return nil, syntaxErrorFromToken("unexpected "+t.kind.human()+"; expected a formula", t)
	}
}
