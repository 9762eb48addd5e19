package lexer

import (
	"restyle/internal/token"
)

// scanOperatorOrPunct scans punctuation with greedy multi-byte matching.
// Unknown bytes produce a single-byte Invalid token without a report: inside
// markup text runs arbitrary bytes are legal and the parser consumes them as
// raw text spans.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// three-byte operators
	switch {
	case lx.try3('=', '=', '='):
		return mk(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return mk(token.BangEqEq)
	case lx.try3('.', '.', '.'):
		return mk(token.Ellipsis)
	}

	// two-byte operators
	switch {
	case lx.try2('=', '>'):
		return mk(token.Arrow)
	case lx.try2('=', '='):
		return mk(token.EqEq)
	case lx.try2('!', '='):
		return mk(token.BangEq)
	case lx.try2('<', '/'):
		return mk(token.LtSlash)
	case lx.try2('/', '>'):
		return mk(token.SlashGt)
	case lx.try2('<', '='):
		return mk(token.LtEq)
	case lx.try2('>', '='):
		return mk(token.GtEq)
	case lx.try2('&', '&'):
		return mk(token.AndAnd)
	case lx.try2('|', '|'):
		return mk(token.OrOr)
	case lx.try2('?', '?'):
		return mk(token.Coalesce)
	case lx.try2('?', '.'):
		return mk(token.OptionalDot)
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case '<':
		return mk(token.Lt)
	case '>':
		return mk(token.Gt)
	case '/':
		return mk(token.Slash)
	case '=':
		return mk(token.Assign)
	case ':':
		return mk(token.Colon)
	case ';':
		return mk(token.Semicolon)
	case ',':
		return mk(token.Comma)
	case '.':
		return mk(token.Dot)
	case '?':
		return mk(token.Question)
	case '!':
		return mk(token.Bang)
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '%':
		return mk(token.Percent)
	case '&':
		return mk(token.Amp)
	case '|':
		return mk(token.Pipe)
	case '@':
		return mk(token.At)
	case '~':
		return mk(token.Tilde)
	case '^':
		return mk(token.Caret)
	default:
		return mk(token.Invalid)
	}
}
