package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwExport represents the 'export' keyword.
	KwExport // export
	// KwFrom represents the contextual 'from' keyword.
	KwFrom // from
	// KwAs represents the contextual 'as' keyword.
	KwAs // as
	// KwType represents the contextual 'type' keyword.
	KwType // type
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwAsync represents the contextual 'async' keyword.
	KwAsync // async
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwTrue and KwFalse are the boolean literals.
	KwTrue  // true
	KwFalse // false
	// KwNull and KwUndefined are the empty-value literals.
	KwNull      // null
	KwUndefined // undefined

	// Literals.
	StringLit   // "..." or '...'
	NumberLit   // 42, 4.2, 0x2a
	TemplateLit // `...${...}...` (whole literal, balanced)
	MarkupText  // raw markup text run (parser-driven lexer mode)

	// Punctuation and operators.
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	Lt          // <
	Gt          // >
	LtSlash     // </
	SlashGt     // />
	Slash       // /
	Assign      // =
	Arrow       // =>
	Colon       // :
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	Ellipsis    // ...
	Question    // ?
	Bang        // !
	Plus        // +
	Minus       // -
	Star        // *
	Percent     // %
	Amp         // &
	AndAnd      // &&
	Pipe        // |
	OrOr        // ||
	Coalesce    // ??
	EqEq        // ==
	EqEqEq      // ===
	BangEq      // !=
	BangEqEq    // !==
	LtEq        // <=
	GtEq        // >=
	At          // @
	Tilde       // ~
	Caret       // ^
	OptionalDot // ?.
)

// IsLiteral reports whether the token kind is a literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLit, NumberLit, TemplateLit, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token kind is a keyword.
func (k Kind) IsKeyword() bool {
	switch k {
	case KwImport, KwExport, KwFrom, KwAs, KwType, KwDefault, KwAsync,
		KwReturn, KwConst, KwLet, KwVar, KwFunction, KwTrue, KwFalse,
		KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsIdentLike reports whether the token kind can act as an identifier in the
// dialect (contextual keywords included).
func (k Kind) IsIdentLike() bool {
	return k == Ident || k == KwFrom || k == KwAs || k == KwType || k == KwDefault || k == KwAsync
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwImport:    "import",
	KwExport:    "export",
	KwFrom:      "from",
	KwAs:        "as",
	KwType:      "type",
	KwDefault:   "default",
	KwAsync:     "async",
	KwReturn:    "return",
	KwConst:     "const",
	KwLet:       "let",
	KwVar:       "var",
	KwFunction:  "function",
	KwTrue:      "true",
	KwFalse:     "false",
	KwNull:      "null",
	KwUndefined: "undefined",
	StringLit:   "String",
	NumberLit:   "Number",
	TemplateLit: "Template",
	MarkupText:  "MarkupText",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Lt:          "<",
	Gt:          ">",
	LtSlash:     "</",
	SlashGt:     "/>",
	Slash:       "/",
	Assign:      "=",
	Arrow:       "=>",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Ellipsis:    "...",
	Question:    "?",
	Bang:        "!",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Percent:     "%",
	Amp:         "&",
	AndAnd:      "&&",
	Pipe:        "|",
	OrOr:        "||",
	Coalesce:    "??",
	EqEq:        "==",
	EqEqEq:      "===",
	BangEq:      "!=",
	BangEqEq:    "!==",
	LtEq:        "<=",
	GtEq:        ">=",
	At:          "@",
	Tilde:       "~",
	Caret:       "^",
	OptionalDot: "?.",
}
