package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedTemplate     Code = 1004

	// Syntactic.
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectModuleString Code = 2004
	SynExpectFrom         Code = 2005
	SynUnclosedTag        Code = 2006
	SynMismatchedTag      Code = 2007
	SynExpectAttrValue    Code = 2008
	SynEmptyImportGroup   Code = 2009
	SynExpectIdentAfterAs Code = 2010

	// Style rules.
	StyleInfo                  Code = 3000
	StyleSiblingSpacing        Code = 3001
	StyleRedundantWrapper      Code = 3002
	StyleRedundantDefaultProp  Code = 3003
	StyleVerboseArrowBody      Code = 3004
	StyleSplitModuleReferences Code = 3005
	StyleTemplateClassName     Code = 3006

	// I/O.
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

// ID returns the stable string form used in CLI output and fix IDs,
// e.g. "RST3005".
func (c Code) ID() string {
	return fmt.Sprintf("RST%04d", uint16(c))
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return c.ID()
}

var codeNames = map[Code]string{
	UnknownCode:                 "unknown",
	LexInfo:                     "lex-info",
	LexUnterminatedString:       "unterminated-string",
	LexUnterminatedBlockComment: "unterminated-block-comment",
	LexUnterminatedTemplate:     "unterminated-template",
	SynInfo:                     "syn-info",
	SynUnexpectedToken:          "unexpected-token",
	SynUnclosedDelimiter:        "unclosed-delimiter",
	SynExpectIdentifier:         "expected-identifier",
	SynExpectModuleString:       "expected-module-string",
	SynExpectFrom:               "expected-from",
	SynUnclosedTag:              "unclosed-tag",
	SynMismatchedTag:            "mismatched-tag",
	SynExpectAttrValue:          "expected-attribute-value",
	SynEmptyImportGroup:         "empty-import-group",
	SynExpectIdentAfterAs:       "expected-identifier-after-as",
	StyleInfo:                   "style-info",
	StyleSiblingSpacing:         "sibling-spacing",
	StyleRedundantWrapper:       "no-redundant-wrapper",
	StyleRedundantDefaultProp:   "no-default-props",
	StyleVerboseArrowBody:       "prefer-expression-arrow",
	StyleSplitModuleReferences:  "merge-module-references",
	StyleTemplateClassName:      "prefer-class-helper",
	IOInfo:                      "io-info",
	IOLoadFileError:             "load-file-error",
}
