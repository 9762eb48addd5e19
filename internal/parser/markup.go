package parser

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
	"restyle/internal/token"
)

// tryParseElement attempts a full markup tree at the current '<'. On any
// structural failure the lexer is rewound and false is returned, so the
// caller can fall back to raw scanning.
func (p *Parser) tryParseElement(col *collector) (ast.NodeID, bool) {
	start := p.peek()
	if start.Kind != token.Lt {
		return ast.NoNodeID, false
	}
	mark := start.Span.Start
	node, ok := p.parseElement(col)
	if !ok {
		p.lx.Rewind(mark)
		return ast.NoNodeID, false
	}
	return node, true
}

func (p *Parser) parseElement(col *collector) (ast.NodeID, bool) {
	lt := p.next() // '<'

	// fragment: <> ... </>
	if p.at(token.Gt) {
		gt := p.next()
		el := ast.Element{
			Name:     source.NoStringID,
			NameSpan: source.Span{File: p.src.ID, Start: gt.Span.Start, End: gt.Span.Start},
			OpenSpan: lt.Span.Cover(gt.Span),
		}
		return p.parseChildren(col, el, lt.Span, gt.Span.End)
	}

	if !p.peek().IsIdentLike() {
		return ast.NoNodeID, false
	}
	nameSpan, nameText, ok := p.parseTagName()
	if !ok {
		return ast.NoNodeID, false
	}

	el := ast.Element{
		Name:     p.arenas.Strings.Intern(nameText),
		NameSpan: nameSpan,
	}

	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.SlashGt:
			p.next()
			el.SelfClosing = true
			sp := source.Span{File: p.src.ID, Start: lt.Span.Start, End: tok.Span.End}
			el.OpenSpan = sp
			el.CloseSpan = sp
			return p.arenas.Nodes.NewElement(sp, el), true

		case tok.Kind == token.Gt:
			p.next()
			el.OpenSpan = source.Span{File: p.src.ID, Start: lt.Span.Start, End: tok.Span.End}
			return p.parseChildren(col, el, lt.Span, tok.Span.End)

		case tok.Kind == token.LBrace:
			// spread attribute: {...expr}
			lb := p.next()
			local := newCollector()
			body := p.scanRaw(rawOpts{closers: []token.Kind{token.RBrace}}, local)
			col.exprs = append(col.exprs, local.exprs...)
			col.roots = append(col.roots, local.roots...)
			if !p.at(token.RBrace) {
				return ast.NoNodeID, false
			}
			rb := p.next()
			sp := lb.Span.Cover(rb.Span)
			var value ast.ExprID = ast.NoExprID
			if !body.Empty() {
				value = p.arenas.Exprs.NewSimple(ast.ExprRaw, body)
			}
			el.Attrs = append(el.Attrs, p.arenas.Nodes.NewAttr(ast.Attr{
				Name:      source.NoStringID,
				NameSpan:  lb.Span,
				Span:      sp,
				Kind:      ast.AttrValueSpread,
				Value:     value,
				ValueSpan: sp,
			}))

		case tok.IsIdentLike():
			attr, ok := p.parseAttr(col)
			if !ok {
				return ast.NoNodeID, false
			}
			el.Attrs = append(el.Attrs, attr)

		default:
			return ast.NoNodeID, false
		}
	}
}

// parseTagName parses `Ident ('.' Ident)*` such as Card.Header.
func (p *Parser) parseTagName() (source.Span, string, bool) {
	first := p.next()
	sp := first.Span
	for p.at(token.Dot) {
		p.next()
		part := p.peek()
		if !part.IsIdentLike() {
			return sp, "", false
		}
		p.next()
		sp = sp.Cover(part.Span)
	}
	return sp, p.spanText(sp), true
}

// parseAttr parses one attribute, including hyphenated names assembled from
// adjacent tokens (data-testid, aria-label).
func (p *Parser) parseAttr(col *collector) (ast.AttrID, bool) {
	nameSpan, ok := p.parseAttrName()
	if !ok {
		return 0, false
	}
	attr := ast.Attr{
		Name:     p.arenas.Strings.Intern(p.spanText(nameSpan)),
		NameSpan: nameSpan,
		Span:     nameSpan,
		Kind:     ast.AttrValueNone,
	}

	if !p.at(token.Assign) {
		return p.arenas.Nodes.NewAttr(attr), true
	}
	p.next()

	switch v := p.peek(); v.Kind {
	case token.StringLit:
		p.next()
		attr.Kind = ast.AttrValueString
		attr.StrSpan = v.Span
		attr.ValueSpan = v.Span
		attr.Span = nameSpan.Cover(v.Span)

	case token.LBrace:
		lb := p.next()
		body, roots := p.parseContainerBody(col)
		if !p.at(token.RBrace) {
			return 0, false
		}
		rb := p.next()
		col.roots = append(col.roots, roots...)
		attr.Kind = ast.AttrValueExpr
		attr.Value = body
		attr.ValueSpan = lb.Span.Cover(rb.Span)
		attr.Span = nameSpan.Cover(rb.Span)

	default:
		p.err(diag.SynExpectAttrValue, v.Span, "expected attribute value after '='")
		return 0, false
	}

	return p.arenas.Nodes.NewAttr(attr), true
}

// parseAttrName joins `ident ('-' ident)*` when the pieces are byte-adjacent.
func (p *Parser) parseAttrName() (source.Span, bool) {
	first := p.peek()
	if !first.IsIdentLike() {
		return source.Span{}, false
	}
	p.next()
	sp := first.Span
	for {
		minus := p.peek()
		if minus.Kind != token.Minus || minus.Span.Start != sp.End {
			break
		}
		p.next()
		part := p.peek()
		if !part.IsIdentLike() || part.Span.Start != minus.Span.End {
			return sp, false
		}
		p.next()
		sp = sp.Cover(part.Span)
	}
	return sp, true
}

// parseChildren consumes element children after the opening '>' and the
// closing tag. pos is the byte offset right after the '>'.
func (p *Parser) parseChildren(col *collector, el ast.Element, ltSpan source.Span, pos uint32) (ast.NodeID, bool) {
	var children []ast.NodeID

	for {
		text := p.lx.MarkupText(pos)
		if !textInsignificant(text) {
			children = append(children, p.arenas.Nodes.NewText(text.Span))
		}
		pos = text.Span.End

		switch nxt := p.peek(); nxt.Kind {
		case token.LtSlash:
			lts := p.next()
			if p.peek().IsIdentLike() {
				closeSpan, closeName, ok := p.parseTagName()
				if !ok {
					return ast.NoNodeID, false
				}
				if !el.Fragment() && closeName != p.spanText(el.NameSpan) {
					p.err(diag.SynMismatchedTag, closeSpan, "closing tag does not match <"+p.spanText(el.NameSpan)+">")
				}
			}
			if !p.at(token.Gt) {
				return ast.NoNodeID, false
			}
			gt := p.next()
			el.CloseSpan = lts.Span.Cover(gt.Span)
			el.Children = children
			sp := source.Span{File: p.src.ID, Start: ltSpan.Start, End: gt.Span.End}
			return p.arenas.Nodes.NewElement(sp, el), true

		case token.Lt:
			child, ok := p.parseElement(col)
			if !ok {
				return ast.NoNodeID, false
			}
			children = append(children, child)
			pos = p.arenas.Nodes.Get(child).Span.End

		case token.LBrace:
			lb := p.next()
			var container ast.NodeID
			if p.at(token.RBrace) {
				rb := p.next()
				container = p.arenas.Nodes.NewExprContainer(lb.Span.Cover(rb.Span), ast.NoExprID, nil)
				pos = rb.Span.End
			} else {
				body, roots := p.parseContainerBody(col)
				if !p.at(token.RBrace) {
					return ast.NoNodeID, false
				}
				rb := p.next()
				container = p.arenas.Nodes.NewExprContainer(lb.Span.Cover(rb.Span), body, roots)
				pos = rb.Span.End
			}
			children = append(children, container)

		case token.EOF:
			p.err(diag.SynUnclosedTag, ltSpan, "unclosed <"+p.spanText(el.NameSpan)+">")
			return ast.NoNodeID, false

		default:
			return ast.NoNodeID, false
		}
	}
}

// textInsignificant reports a markup text run that is whitespace only.
func textInsignificant(tok token.Token) bool {
	if tok.Span.Empty() {
		return true
	}
	for i := 0; i < len(tok.Text); i++ {
		switch tok.Text[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// parseContainerBody parses the inside of `{ ... }` in child or attribute
// position: the whole body as one structured expression when it has a
// recognizable shape, or a raw span with any markup roots found inside.
func (p *Parser) parseContainerBody(col *collector) (ast.ExprID, []ast.NodeID) {
	start := p.peek()

	switch {
	case start.Kind == token.TemplateLit:
		tok := p.next()
		if p.at(token.RBrace) {
			return p.templateFromToken(tok), nil
		}
		p.lx.Rewind(start.Span.Start)

	case start.Kind == token.StringLit:
		tok := p.next()
		if p.at(token.RBrace) {
			return p.arenas.Exprs.NewSimple(ast.ExprString, tok.Span), nil
		}
		p.lx.Rewind(start.Span.Start)

	case start.Kind == token.NumberLit:
		tok := p.next()
		if p.at(token.RBrace) {
			return p.arenas.Exprs.NewSimple(ast.ExprNumber, tok.Span), nil
		}
		p.lx.Rewind(start.Span.Start)

	case start.Kind == token.KwTrue || start.Kind == token.KwFalse:
		tok := p.next()
		if p.at(token.RBrace) {
			return p.arenas.Exprs.NewSimple(ast.ExprBool, tok.Span), nil
		}
		p.lx.Rewind(start.Span.Start)

	case start.Kind == token.Lt:
		if node, ok := p.tryParseElement(col); ok {
			n := p.arenas.Nodes.Get(node)
			if p.at(token.RBrace) {
				return p.arenas.Exprs.NewElement(n.Span, node), nil
			}
			// element is only part of a larger expression
			roots := []ast.NodeID{node}
			local := newCollector()
			rest := p.scanRaw(rawOpts{closers: []token.Kind{token.RBrace}}, local)
			col.exprs = append(col.exprs, local.exprs...)
			roots = append(roots, local.roots...)
			full := n.Span.Cover(rest)
			return p.arenas.Exprs.NewSimple(ast.ExprRaw, full), roots
		}
	}

	if start.Kind == token.KwAsync || start.Kind == token.LParen || start.IsIdentLike() {
		if id, ok := p.tryParseArrow(rawOpts{closers: []token.Kind{token.RBrace}}, col); ok {
			if p.at(token.RBrace) {
				return id, nil
			}
			// arrow followed by more expression, e.g. a call chain
			e := p.arenas.Exprs.Get(id)
			local := newCollector()
			rest := p.scanRaw(rawOpts{closers: []token.Kind{token.RBrace}}, local)
			col.exprs = append(col.exprs, local.exprs...)
			return p.arenas.Exprs.NewSimple(ast.ExprRaw, e.Span.Cover(rest)), local.roots
		}
	}

	local := newCollector()
	sp := p.scanRaw(rawOpts{closers: []token.Kind{token.RBrace}}, local)
	col.exprs = append(col.exprs, local.exprs...)
	if sp.Empty() {
		return ast.NoExprID, local.roots
	}
	return p.arenas.Exprs.NewSimple(ast.ExprRaw, sp), local.roots
}
