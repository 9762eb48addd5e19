package token

import (
	"restyle/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is a plain identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentLike reports whether the token can act as an identifier.
func (t Token) IsIdentLike() bool { return t.Kind.IsIdentLike() }

// NewlinesBefore counts the line breaks carried in the token's leading trivia.
func (t Token) NewlinesBefore() int {
	n := 0
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			for _, b := range tr.Text {
				if b == '\n' {
					n++
				}
			}
		}
	}
	return n
}
