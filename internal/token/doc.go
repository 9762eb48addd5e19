// Package token defines lexical token kinds and trivia for the restyle
// front end.
// Invariants:
//   - Token.Text is a copy of the original source slice.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, newlines, and comments never appear in the main token
//     stream; they are attached to the following token as leading Trivia.
//   - Keywords are contextual: `type`, `from`, `as`, and `default` lex as
//     keyword kinds but parsers may treat them as identifiers where the
//     dialect allows it.
package token
