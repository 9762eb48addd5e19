// Package parser builds the analysis tree for one source file.
//
// It is deliberately partial: import and re-export declarations and markup
// trees are parsed precisely because the rules rewrite them; everything else
// is scanned as balanced raw spans with structured expressions (arrows,
// template literals) lifted out along the way. Raw spans are re-emitted
// verbatim by rewrites, so fidelity is only needed where edits land.
package parser
