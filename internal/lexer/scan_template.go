package lexer

import (
	"restyle/internal/token"
)

// scanTemplate scans a whole template literal `...` including embedded
// ${...} interpolations. Interpolations may nest strings, templates, and
// braces; the scanner tracks them so the closing backtick is never taken
// from inside an interpolation.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '`':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.TemplateLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '$':
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '{' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				if !lx.skipInterpolation() {
					sp := lx.cursor.SpanFrom(start)
					lx.report("unterminated-template", sp, "unterminated template interpolation")
					return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
				}
			} else {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report("unterminated-template", sp, "unterminated template literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// skipInterpolation consumes bytes after "${" up to the matching "}".
// Returns false when EOF arrives first.
func (lx *Lexer) skipInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if !lx.skipQuoted(b) {
				return false
			}
		case '`':
			if !lx.skipNestedTemplate() {
				return false
			}
		case '\\':
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		}
	}
	return false
}

func (lx *Lexer) skipQuoted(quote byte) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			return true
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) skipNestedTemplate() bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '`':
			return true
		case '\\':
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '$':
			if lx.cursor.Peek() == '{' {
				lx.cursor.Bump()
				if !lx.skipInterpolation() {
					return false
				}
			}
		}
	}
	return false
}
