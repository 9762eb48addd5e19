package lexer

import (
	"restyle/internal/source"
	"restyle/internal/token"
)

// Lexer produces significant tokens with attached leading trivia.
// It is pull-based: the parser drives it via Next/Peek and may switch it
// into markup-text mode with MarkupText when reading element children.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia collected.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// MarkupText switches into markup-text mode: starting at from, it scans a raw
// text run up to (not including) the next '<' or '{'. The lookahead buffer is
// discarded because the cursor is repositioned.
func (lx *Lexer) MarkupText(from uint32) token.Token {
	lx.look = nil
	lx.hold = nil
	lx.cursor.Off = from
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '<' || b == '{' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.MarkupText,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// Rewind repositions the lexer, discarding lookahead and held trivia.
// The parser uses it for backtracking attempts (arrows, re-exports).
func (lx *Lexer) Rewind(off uint32) {
	lx.look = nil
	lx.hold = nil
	lx.cursor.Off = off
}

// Pos returns the current byte offset (after the last consumed token),
// ignoring lookahead.
func (lx *Lexer) Pos() uint32 {
	if lx.look != nil {
		if len(lx.look.Leading) > 0 {
			return lx.look.Leading[0].Span.Start
		}
		return lx.look.Span.Start
	}
	return lx.cursor.Off
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}
