package parser

import (
	"restyle/internal/ast"
	"restyle/internal/source"
	"restyle/internal/token"
)

// collector gathers structured finds during a raw scan: markup roots and
// expressions (arrows, templates) in discovery (document) order. One
// collector is threaded through a whole statement so nested containers and
// attribute values land in the same flat lists.
type collector struct {
	roots []ast.NodeID
	exprs []ast.ExprID
}

func newCollector() *collector { return &collector{} }

type rawOpts struct {
	// consumeSemicolon: ';' at depth 0 ends the run and is consumed.
	consumeSemicolon bool
	// closers end the run at depth 0 without being consumed.
	closers []token.Kind
	// stopAtStmtKeyword stops before import/export on a fresh line at depth 0.
	stopAtStmtKeyword bool
	// stopAfterBlock stops after '}' returning to depth 0 when the next
	// token starts on a new line and can begin a statement.
	stopAfterBlock bool
	// noStructure disables arrow/element/template detection.
	noStructure bool
	// forceFirstConsume consumes the first token even when it matches a
	// closer (error recovery).
	forceFirstConsume bool
}

func isCloser(closers []token.Kind, k token.Kind) bool {
	for _, c := range closers {
		if c == k {
			return true
		}
	}
	return false
}

// isExprPosition reports whether a token in this position starts an
// expression (rather than continuing one), based on the previously
// consumed token.
func isExprPosition(prev token.Kind, consumedAny bool) bool {
	if !consumedAny {
		return true
	}
	switch prev {
	case token.Assign, token.Arrow, token.LParen, token.LBracket, token.LBrace,
		token.Comma, token.Colon, token.Semicolon, token.Question,
		token.AndAnd, token.OrOr, token.Coalesce,
		token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq,
		token.Bang, token.Plus, token.Minus, token.Star, token.Slash,
		token.Percent, token.Amp, token.Pipe, token.Caret,
		token.KwReturn, token.KwDefault:
		return true
	default:
		return false
	}
}

// isContinuation reports whether the token cannot begin a new statement and
// therefore glues to the previous one across a newline.
func isContinuation(tok token.Token) bool {
	switch tok.Kind {
	case token.Dot, token.OptionalDot, token.Comma, token.RParen,
		token.RBracket, token.RBrace, token.Colon, token.Question,
		token.Arrow, token.Assign, token.AndAnd, token.OrOr,
		token.Coalesce, token.Plus, token.Minus, token.Star,
		token.Slash, token.Percent, token.Semicolon:
		return true
	case token.Ident:
		switch tok.Text {
		case "else", "catch", "finally":
			return true
		}
	}
	return false
}

// scanRaw consumes a balanced raw run and returns its span. Structured
// content (markup trees, arrows, template literals) is parsed precisely and
// recorded into col unless opts.noStructure is set.
func (p *Parser) scanRaw(opts rawOpts, col *collector) source.Span {
	first := p.peek()
	startOff := first.Span.Start
	end := startOff
	depth := 0
	prev := token.Invalid
	consumedAny := false
	arrowFailAt := ^uint32(0)

	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}

		if depth == 0 && (consumedAny || !opts.forceFirstConsume) {
			if isCloser(opts.closers, tok.Kind) {
				break
			}
			if opts.consumeSemicolon && tok.Kind == token.Semicolon {
				p.next()
				end = tok.Span.End
				consumedAny = true
				break
			}
			if opts.stopAtStmtKeyword && consumedAny &&
				(tok.Kind == token.KwImport || tok.Kind == token.KwExport) &&
				tok.NewlinesBefore() > 0 {
				break
			}
			if opts.stopAfterBlock && consumedAny && prev == token.RBrace &&
				tok.NewlinesBefore() > 0 && !isContinuation(tok) {
				break
			}
		}

		if !opts.noStructure {
			exprPos := isExprPosition(prev, consumedAny)

			if tok.Kind == token.TemplateLit {
				p.next()
				col.exprs = append(col.exprs, p.templateFromToken(tok))
				prev = tok.Kind
				end = tok.Span.End
				consumedAny = true
				continue
			}

			if exprPos && tok.Kind == token.Lt {
				if node, ok := p.tryParseElement(col); ok {
					col.roots = append(col.roots, node)
					end = p.arenas.Nodes.Get(node).Span.End
					prev = token.RParen // behaves as an operand
					consumedAny = true
					continue
				}
			}

			if exprPos && tok.Span.Start != arrowFailAt &&
				(tok.Kind == token.KwAsync || tok.Kind == token.LParen || tok.IsIdentLike()) {
				if id, ok := p.tryParseArrow(opts, col); ok {
					end = p.arenas.Exprs.Get(id).Span.End
					prev = token.RParen
					consumedAny = true
					continue
				}
				arrowFailAt = tok.Span.Start
				continue
			}
		}

		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				// unbalanced closer belongs to an enclosing construct
				if consumedAny || !opts.forceFirstConsume {
					goto done
				}
			} else {
				depth--
			}
		}

		p.next()
		prev = tok.Kind
		end = tok.Span.End
		consumedAny = true
	}

done:
	return source.Span{File: p.src.ID, Start: startOff, End: end}
}
