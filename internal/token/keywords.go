package token

var keywords = map[string]Kind{
	"import":    KwImport,
	"export":    KwExport,
	"from":      KwFrom,
	"as":        KwAs,
	"type":      KwType,
	"default":   KwDefault,
	"async":     KwAsync,
	"return":    KwReturn,
	"const":     KwConst,
	"let":       KwLet,
	"var":       KwVar,
	"function":  KwFunction,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"undefined": KwUndefined,
}

// LookupKeyword maps identifier text to its keyword kind, if any.
// Keywords are case-sensitive (lowercase only).
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
