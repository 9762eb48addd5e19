package parser

import (
	"restyle/internal/ast"
	"restyle/internal/source"
	"restyle/internal/token"
)

// tryParseArrow attempts an arrow function at the current token. It succeeds
// only when a parameter shape is followed by '=>'; otherwise the lexer is
// rewound and false is returned. A successful arrow is appended to col.exprs.
// The enclosing scan options carry over so an expression body ends where the
// enclosing statement would.
func (p *Parser) tryParseArrow(outer rawOpts, col *collector) (ast.ExprID, bool) {
	start := p.peek()
	mark := start.Span.Start

	// Finds made during the attempt are staged and merged only on success;
	// a failed attempt rewinds and rescans, which would duplicate them.
	stage := newCollector()

	async := false
	if start.Kind == token.KwAsync {
		p.next()
		if !p.at(token.LParen) && !p.peek().IsIdentLike() {
			p.lx.Rewind(mark)
			return ast.NoExprID, false
		}
		async = true
	}

	params, parenthesized, paramsSpan, ok := p.tryArrowParams(stage)
	if !ok || !p.at(token.Arrow) {
		p.lx.Rewind(mark)
		return ast.NoExprID, false
	}
	p.next() // '=>'

	arrow := ast.ArrowExpr{
		Async:         async,
		Parenthesized: parenthesized,
		Params:        params,
		ParamsSpan:    paramsSpan,
	}

	if p.at(token.LBrace) {
		lb := p.next()
		var stmts []ast.ArrowStmt
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			first := p.peek()
			sp := p.scanRaw(rawOpts{
				consumeSemicolon: true,
				closers:          []token.Kind{token.RBrace},
			}, stage)
			if sp.Empty() {
				break
			}
			stmts = append(stmts, ast.ArrowStmt{
				Span:     sp,
				BareExpr: isBareExprStart(first),
				ExprSpan: p.trimTerminator(sp),
			})
		}
		if !p.at(token.RBrace) {
			p.lx.Rewind(mark)
			return ast.NoExprID, false
		}
		rb := p.next()
		arrow.BodyKind = ast.ArrowBodyBlock
		arrow.BodySpan = lb.Span.Cover(rb.Span)
		arrow.BlockStmts = stmts
	} else {
		// ';' at depth 0 always terminates the enclosing statement, never
		// the body expression, so it closes the body scan unconsumed
		bodyClosers := append([]token.Kind{token.Comma, token.Semicolon}, outer.closers...)
		sp := p.scanRaw(rawOpts{
			closers:           bodyClosers,
			stopAtStmtKeyword: outer.stopAtStmtKeyword,
			stopAfterBlock:    outer.stopAfterBlock,
		}, stage)
		if sp.Empty() {
			p.lx.Rewind(mark)
			return ast.NoExprID, false
		}
		arrow.BodyKind = ast.ArrowBodyExpr
		arrow.BodySpan = sp
	}

	full := source.Span{File: p.src.ID, Start: mark, End: arrow.BodySpan.End}
	id := p.arenas.Exprs.NewArrow(full, arrow)
	col.roots = append(col.roots, stage.roots...)
	col.exprs = append(col.exprs, stage.exprs...)
	col.exprs = append(col.exprs, id)
	return id, true
}

// tryArrowParams parses either a bare identifier or a parenthesized list.
func (p *Parser) tryArrowParams(col *collector) ([]ast.ArrowParam, bool, source.Span, bool) {
	tok := p.peek()

	if tok.IsIdentLike() {
		p.next()
		param := ast.ArrowParam{Span: tok.Span, NameSpan: tok.Span}
		return []ast.ArrowParam{param}, false, tok.Span, true
	}

	if tok.Kind != token.LParen {
		return nil, false, source.Span{}, false
	}
	lp := p.next()

	var params []ast.ArrowParam
	for !p.at(token.RParen) {
		param, ok := p.tryArrowParam(col)
		if !ok {
			return nil, true, source.Span{}, false
		}
		params = append(params, param)
		if p.at(token.Comma) {
			p.next()
			continue
		}
		if !p.at(token.RParen) {
			return nil, true, source.Span{}, false
		}
	}
	rp := p.next()
	return params, true, lp.Span.Cover(rp.Span), true
}

func (p *Parser) tryArrowParam(col *collector) (ast.ArrowParam, bool) {
	tok := p.peek()
	var param ast.ArrowParam

	switch {
	case tok.Kind == token.Ellipsis:
		p.next()
		name := p.peek()
		if !name.IsIdentLike() {
			return param, false
		}
		p.next()
		param.NameSpan = name.Span
		param.Span = tok.Span.Cover(name.Span)

	case tok.IsIdentLike():
		p.next()
		param.NameSpan = tok.Span
		param.Span = tok.Span
		if p.at(token.Question) {
			q := p.next()
			param.Span = param.Span.Cover(q.Span)
		}

	case tok.Kind == token.LBrace || tok.Kind == token.LBracket:
		// destructuring pattern; never a bare-identifier candidate
		sp := p.scanRaw(rawOpts{
			closers:     []token.Kind{token.Comma, token.RParen},
			noStructure: true,
		}, newCollector())
		if sp.Empty() {
			return param, false
		}
		param.NameSpan = sp
		param.Span = sp
		param.Typed = true
		return param, true

	default:
		return param, false
	}

	if p.at(token.Colon) {
		p.next()
		sp := p.scanRaw(rawOpts{
			closers:     []token.Kind{token.Comma, token.RParen, token.Assign},
			noStructure: true,
		}, newCollector())
		if sp.Empty() {
			return param, false
		}
		param.Typed = true
		param.Span = param.Span.Cover(sp)
	}

	if p.at(token.Assign) {
		p.next()
		sp := p.scanRaw(rawOpts{closers: []token.Kind{token.Comma, token.RParen}}, col)
		if sp.Empty() {
			return param, false
		}
		param.Typed = true
		param.Span = param.Span.Cover(sp)
	}

	return param, true
}

// isBareExprStart reports whether a statement starting at tok is a plain
// expression statement rather than a declaration or control flow.
func isBareExprStart(tok token.Token) bool {
	switch tok.Kind {
	case token.KwReturn, token.KwConst, token.KwLet, token.KwVar,
		token.KwFunction, token.KwImport, token.KwExport, token.KwType:
		return false
	case token.Ident:
		switch tok.Text {
		case "if", "for", "while", "switch", "throw", "do", "try",
			"class", "debugger", "break", "continue":
			return false
		}
	}
	return true
}

// trimTerminator drops trailing whitespace and one ';' from a statement span.
func (p *Parser) trimTerminator(sp source.Span) source.Span {
	content := p.src.Content
	end := sp.End
	for end > sp.Start && isTrailingSpace(content[end-1]) {
		end--
	}
	if end > sp.Start && content[end-1] == ';' {
		end--
		for end > sp.Start && isTrailingSpace(content[end-1]) {
			end--
		}
	}
	return source.Span{File: sp.File, Start: sp.Start, End: end}
}

func isTrailingSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
