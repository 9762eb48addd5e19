package fix

import (
	"restyle/internal/diag"
)

// DefaultMaxPasses caps the analyze→apply cycle.
const DefaultMaxPasses = 8

// AnalyzeFunc re-analyzes content and returns its diagnostics. The fixed
// point loop calls it once per pass with the current buffer.
type AnalyzeFunc func(path string, content []byte) ([]diag.Diagnostic, error)

// FixedPointResult reports the outcome of a fixed-point run.
type FixedPointResult struct {
	Content []byte
	Passes  int
	Applied int
	// Settled is true when the last pass applied nothing, i.e. the loop
	// ended because no fixable diagnostics remained rather than by the cap.
	Settled bool
}

// FixedPoint applies every always-safe fix, re-analyzes, and repeats until a
// pass applies nothing or maxPasses is reached. The buffer is modified in
// memory only; writing it back is the caller's concern.
func FixedPoint(path string, content []byte, analyze AnalyzeFunc, maxPasses int) (*FixedPointResult, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	res := &FixedPointResult{Content: content}

	for pass := 0; pass < maxPasses; pass++ {
		diagnostics, err := analyze(path, res.Content)
		if err != nil {
			return res, err
		}
		out, applied := applyAllSafe(res.Content, diagnostics)
		res.Passes = pass + 1
		if applied == 0 {
			res.Settled = true
			return res, nil
		}
		res.Applied += applied
		res.Content = out
	}
	return res, nil
}

// applyAllSafe applies every always-safe fix that does not conflict with an
// earlier one within this pass. Conflicting fixes simply wait for the next
// pass over the re-analyzed buffer.
func applyAllSafe(content []byte, diagnostics []diag.Diagnostic) ([]byte, int) {
	cands, _ := gatherCandidates(diagnostics)
	sortCandidates(cands)

	working := append([]byte(nil), content...)
	var appliedEdits []diag.TextEdit
	applied := 0

	for _, cand := range cands {
		if cand.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
			continue
		}
		edits := append([]diag.TextEdit(nil), cand.fix.Edits...)
		if conflictsWithExisting(appliedEdits, edits) {
			continue
		}
		out, nextApplied, reason := spliceEdits(working, appliedEdits, edits)
		if reason != "" {
			continue
		}
		working = out
		appliedEdits = nextApplied
		applied++
	}
	return working, applied
}
