package parser

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/lexer"
	"restyle/internal/source"
	"restyle/internal/token"
)

// parseImportDecl parses one import declaration. The caller has peeked the
// `import` keyword. On malformed input it reports and returns false; the
// caller recovers to the next statement.
func (p *Parser) parseImportDecl() (ast.ItemID, bool) {
	importTok := p.next()
	ref := ast.ModuleRefItem{}

	// side-effect import: import "m";
	if p.at(token.StringLit) {
		mod := p.next()
		ref.SideEffect = true
		return p.finishModuleRef(importTok.Span, mod, ref), true
	}

	typeDecl := false
	if p.at(token.KwType) {
		t := p.next()
		if p.at(token.KwFrom) || p.at(token.Comma) {
			// `type` was a default binding name, not a qualifier
			p.lx.Rewind(t.Span.Start)
		} else {
			typeDecl = true
		}
	}

	var specs []ast.Specifier
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Star:
			star := p.next()
			if !p.at(token.KwAs) {
				p.err(diag.SynExpectIdentAfterAs, p.peek().Span, "expected 'as' after '*'")
				return 0, false
			}
			p.next()
			alias := p.peek()
			if !alias.IsIdentLike() {
				p.err(diag.SynExpectIdentAfterAs, alias.Span, "expected namespace name after 'as'")
				return 0, false
			}
			p.next()
			specs = append(specs, ast.Specifier{
				Kind:     ast.SpecNamespace,
				Name:     source.NoStringID,
				Alias:    p.intern(alias),
				TypeOnly: typeDecl,
				Span:     star.Span.Cover(alias.Span),
			})

		case tok.Kind == token.LBrace:
			named, ok := p.parseNamedSpecs(typeDecl, false)
			if !ok {
				return 0, false
			}
			specs = append(specs, named...)

		case tok.IsIdentLike():
			p.next()
			id := p.intern(tok)
			specs = append(specs, ast.Specifier{
				Kind:     ast.SpecDefault,
				Name:     id,
				Alias:    id,
				TypeOnly: typeDecl,
				Span:     tok.Span,
			})

		default:
			p.err(diag.SynUnexpectedToken, tok.Span, "unexpected token in import clause")
			return 0, false
		}

		if p.at(token.Comma) {
			p.next()
			continue
		}
		break
	}

	if !p.at(token.KwFrom) {
		p.err(diag.SynExpectFrom, p.peek().Span, "expected 'from' in import declaration")
		return 0, false
	}
	p.next()
	if !p.at(token.StringLit) {
		p.err(diag.SynExpectModuleString, p.peek().Span, "expected module string after 'from'")
		return 0, false
	}
	mod := p.next()
	ref.Specs = specs
	return p.finishModuleRef(importTok.Span, mod, ref), true
}

// parseReExportDecl parses `export ... from "m"`. Plain export statements
// (export const, export default, export {A}) do not match; the lexer is
// rewound quietly so the caller can take the raw-statement path.
func (p *Parser) parseReExportDecl() (ast.ItemID, bool) {
	exportTok := p.peek()
	mark := exportTok.Span.Start
	p.next()
	ref := ast.ModuleRefItem{IsExport: true}
	var specs []ast.Specifier

	switch {
	case p.at(token.Star):
		star := p.next()
		if p.at(token.KwAs) {
			p.next()
			alias := p.peek()
			if !alias.IsIdentLike() {
				p.lx.Rewind(mark)
				return 0, false
			}
			p.next()
			specs = append(specs, ast.Specifier{
				Kind:  ast.SpecNamespace,
				Name:  source.NoStringID,
				Alias: p.intern(alias),
				Span:  star.Span.Cover(alias.Span),
			})
		} else {
			ref.HasStar = true
		}

	case p.at(token.KwType) || p.at(token.LBrace):
		typeDecl := false
		if p.at(token.KwType) {
			p.next()
			if !p.at(token.LBrace) {
				// export type Foo = ... is a plain statement
				p.lx.Rewind(mark)
				return 0, false
			}
			typeDecl = true
		}
		named, ok := p.parseNamedSpecs(typeDecl, true)
		if !ok {
			p.lx.Rewind(mark)
			return 0, false
		}
		specs = named

	default:
		p.lx.Rewind(mark)
		return 0, false
	}

	if !p.at(token.KwFrom) {
		// export {A, B}; without a module clause
		p.lx.Rewind(mark)
		return 0, false
	}
	p.next()
	if !p.at(token.StringLit) {
		p.err(diag.SynExpectModuleString, p.peek().Span, "expected module string after 'from'")
		p.lx.Rewind(mark)
		return 0, false
	}
	mod := p.next()
	ref.Specs = specs
	return p.finishModuleRef(exportTok.Span, mod, ref), true
}

// parseNamedSpecs parses `{ a, b as c, type d }`. In quiet mode nothing is
// reported, so a failed re-export probe leaves no trace.
func (p *Parser) parseNamedSpecs(declTypeOnly, quiet bool) ([]ast.Specifier, bool) {
	lb := p.next() // '{'
	var specs []ast.Specifier

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			if !quiet {
				p.err(diag.SynUnclosedDelimiter, lb.Span, "unclosed import group")
			}
			return nil, false
		}

		inlineType := false
		if p.at(token.KwType) {
			t := p.next()
			nxt := p.peek()
			if nxt.IsIdentLike() {
				inlineType = true
			} else {
				// `type` itself is the binding name
				p.lx.Rewind(t.Span.Start)
			}
		}

		name := p.peek()
		if !name.IsIdentLike() {
			if !quiet {
				p.err(diag.SynExpectIdentifier, name.Span, "expected binding name")
			}
			return nil, false
		}
		p.next()
		sp := name.Span
		nameID := p.intern(name)
		aliasID := nameID

		if p.at(token.KwAs) {
			p.next()
			alias := p.peek()
			if !alias.IsIdentLike() {
				if !quiet {
					p.err(diag.SynExpectIdentAfterAs, alias.Span, "expected alias after 'as'")
				}
				return nil, false
			}
			p.next()
			aliasID = p.intern(alias)
			sp = sp.Cover(alias.Span)
		}

		specs = append(specs, ast.Specifier{
			Kind:     ast.SpecNamed,
			Name:     nameID,
			Alias:    aliasID,
			TypeOnly: declTypeOnly || inlineType,
			Span:     sp,
		})

		if p.at(token.Comma) {
			p.next()
			continue
		}
		if !p.at(token.RBrace) {
			if !quiet {
				p.err(diag.SynUnexpectedToken, p.peek().Span, "expected ',' or '}' in import group")
			}
			return nil, false
		}
	}
	rb := p.next()

	if len(specs) == 0 && !quiet && p.opts.Reporter != nil {
		diag.ReportInfo(p.opts.Reporter, diag.SynEmptyImportGroup,
			lb.Span.Cover(rb.Span), "import group binds nothing").Emit()
	}
	return specs, true
}

// finishModuleRef fills module fields, eats an optional ';' and allocates
// the item. The item span includes the terminator.
func (p *Parser) finishModuleRef(start source.Span, mod token.Token, ref ast.ModuleRefItem) ast.ItemID {
	ref.ModuleText = mod.Text
	ref.ModuleSpan = mod.Span
	ref.Module = p.arenas.Strings.Intern(lexer.StringValue(mod.Text))

	end := mod.Span.End
	if p.at(token.Semicolon) {
		s := p.next()
		end = s.Span.End
	}
	sp := source.Span{File: p.src.ID, Start: start.Start, End: end}
	return p.arenas.Items.NewModuleRef(sp, ref)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(tok.Text)
}
