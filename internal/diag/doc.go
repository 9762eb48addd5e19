// Package diag defines the diagnostic and fix data model shared by the
// front end and the style rules.
//
// A Diagnostic carries a severity, a stable code, a primary span, optional
// notes, and zero or more Fixes. A Fix is a list of TextEdits: half-open
// byte-range replacements against the original file content. Edits produced
// by one rule invocation on one file must be pairwise non-overlapping; the
// fix engine rejects overlapping candidates instead of guessing.
//
// Diagnostics are accumulated in a Bag per file and sorted into a stable
// document order before rendering.
package diag
