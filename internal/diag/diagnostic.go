package diag

import (
	"restyle/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a half-open byte-range replacement against the original
// file content. OldText, when set, lets the fix engine verify the target
// slice before rewriting.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability describes how safely a fix can be applied unattended.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe marks fixes safe for unattended batch apply.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilityMaybeIncorrect marks fixes that need a human glance.
	FixApplicabilityMaybeIncorrect
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilityMaybeIncorrect:
		return "maybe-incorrect"
	}
	return "unknown"
}

// Fix is one suggested rewrite: a set of pairwise non-overlapping edits.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []TextEdit
}

// Diagnostic is one reported violation. Fixes may be empty when no safe
// rewrite could be computed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
