// Package rules holds the style checks and the per-file traversal that
// drives them. Each rule value is created fresh for one file, inspects nodes
// in document order, and reports diagnostics with byte-range fixes; a fix's
// edits never overlap each other. Conflicts between different rules are not
// resolved here — the fix engine re-runs the whole set until a fixed point.
package rules
