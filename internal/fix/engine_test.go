package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"restyle/internal/diag"
	"restyle/internal/source"
)

func writeTemp(t *testing.T, content string) (string, *source.FileSet, source.FileID) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "view.tsx")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return path, fs, id
}

func edit(file source.FileID, start, end uint32, newText, oldText string) diag.TextEdit {
	return diag.TextEdit{
		Span:    source.Span{File: file, Start: start, End: end},
		NewText: newText,
		OldText: oldText,
	}
}

func warn(file source.FileID, start, end uint32, fixes ...diag.Fix) diag.Diagnostic {
	d := diag.NewWarning(diag.StyleInfo, source.Span{File: file, Start: start, End: end}, "test")
	d.Fixes = fixes
	return d
}

func TestApplySingleEdit(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa bbb ccc")
	d := warn(id, 4, 7, diag.Fix{Title: "swap", Edits: []diag.TextEdit{
		edit(id, 4, 7, "BBB", "bbb"),
	}})

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].EditCount != 1 {
		t.Fatalf("applied = %+v", res.Applied)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "aaa BBB ccc" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa bbb ccc")
	first := warn(id, 0, 3, diag.Fix{Title: "first", Edits: []diag.TextEdit{
		edit(id, 0, 7, "X", ""),
	}})
	second := warn(id, 4, 7, diag.Fix{Title: "second", Edits: []diag.TextEdit{
		edit(id, 4, 11, "Y", ""),
	}})

	res, err := Apply(fs, []diag.Diagnostic{first, second}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	foundConflict := false
	for _, s := range res.Skipped {
		if s.Title == "second" {
			foundConflict = true
		}
	}
	if !foundConflict {
		t.Fatalf("conflicting fix not skipped: %+v", res.Skipped)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "X ccc" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyDeltaRemapping(t *testing.T) {
	// one fix whose two edits both land after an earlier growing edit
	path, fs, id := writeTemp(t, "one two three")
	d := warn(id, 0, 13, diag.Fix{Title: "multi", Edits: []diag.TextEdit{
		edit(id, 0, 3, "ONE-LONGER", "one"),
		edit(id, 8, 13, "THREE", "three"),
	}})

	if _, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "ONE-LONGER two THREE" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyVerifiesOldText(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa bbb")
	d := warn(id, 0, 3, diag.Fix{Title: "stale", Edits: []diag.TextEdit{
		edit(id, 0, 3, "X", "zzz"),
	}})

	_, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "aaa bbb" {
		t.Fatalf("file modified despite stale OldText: %q", got)
	}
}

func TestApplyModeOnce(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa bbb")
	first := warn(id, 0, 3, diag.Fix{Title: "a", Edits: []diag.TextEdit{edit(id, 0, 3, "X", "")}})
	second := warn(id, 4, 7, diag.Fix{Title: "b", Edits: []diag.TextEdit{edit(id, 4, 7, "Y", "")}})

	res, err := Apply(fs, []diag.Diagnostic{first, second}, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	got, _ := os.ReadFile(path)
	if string(got) != "X bbb" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyModeID(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa bbb")
	d := warn(id, 4, 7, diag.Fix{ID: "pick-me", Title: "b", Edits: []diag.TextEdit{
		edit(id, 4, 7, "Y", ""),
	}})

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeID, TargetID: "pick-me"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "pick-me" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "aaa Y" {
		t.Fatalf("content = %q", got)
	}

	_, err = Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeID, TargetID: "missing"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("missing id: err = %v", err)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.tsx", []byte("aaa"))
	d := warn(id, 0, 3, diag.Fix{Title: "v", Edits: []diag.TextEdit{edit(id, 0, 3, "X", "")}})

	_, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
}

func TestApplyUnsafeSkippedInAllMode(t *testing.T) {
	path, fs, id := writeTemp(t, "aaa")
	d := warn(id, 0, 3, diag.Fix{
		Title:         "risky",
		Applicability: diag.FixApplicabilityMaybeIncorrect,
		Edits:         []diag.TextEdit{edit(id, 0, 3, "X", "")},
	})

	_, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "aaa" {
		t.Fatalf("content = %q", got)
	}
}

func TestSpansConflict(t *testing.T) {
	mk := func(s, e uint32) diag.TextEdit {
		return diag.TextEdit{Span: source.Span{Start: s, End: e}}
	}
	cases := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{mk(0, 5), mk(5, 10), false}, // half-open: touching is fine
		{mk(0, 5), mk(4, 10), true},
		{mk(3, 3), mk(3, 3), false}, // two insertions never conflict
		{mk(3, 3), mk(0, 5), true},  // insertion inside a replacement
		{mk(5, 5), mk(0, 5), false}, // insertion at the end boundary
		{mk(0, 10), mk(2, 4), true},
	}
	for i, c := range cases {
		if got := spansConflict(c.a, c.b); got != c.want {
			t.Fatalf("case %d: spansConflict = %v, want %v", i, got, c.want)
		}
	}
}

func TestCumulativeDelta(t *testing.T) {
	edits := []diag.TextEdit{
		{Span: source.Span{Start: 0, End: 3}, NewText: "XXXXX"},  // +2
		{Span: source.Span{Start: 10, End: 12}, NewText: ""},     // -2
		{Span: source.Span{Start: 20, End: 20}, NewText: "abcd"}, // +4
	}
	cases := []struct {
		pos  int
		want int
	}{
		{0, 0},
		{3, 2},
		{10, 2},
		{12, 0},
		{20, 4},
		{100, 4},
	}
	for _, c := range cases {
		if got := cumulativeDelta(edits, c.pos); got != c.want {
			t.Fatalf("delta(%d) = %d, want %d", c.pos, got, c.want)
		}
	}
}

func TestFixedPointConverges(t *testing.T) {
	// the analyzer keeps renaming a→b while any 'a' remains; two bytes means
	// two passes (one fix per pass because the spans coincide per pass)
	analyze := func(path string, content []byte) ([]diag.Diagnostic, error) {
		var out []diag.Diagnostic
		for i, b := range content {
			if b == 'a' {
				d := diag.NewWarning(diag.StyleInfo,
					source.Span{Start: uint32(i), End: uint32(i + 1)}, "lowercase a")
				d.Fixes = []diag.Fix{{Title: "fix", Edits: []diag.TextEdit{{
					Span:    source.Span{Start: uint32(i), End: uint32(i + 1)},
					NewText: "b",
					OldText: "a",
				}}}}
				out = append(out, d)
				break
			}
		}
		return out, nil
	}

	res, err := FixedPoint("mem.tsx", []byte("axa"), analyze, 8)
	if err != nil {
		t.Fatalf("fixed point: %v", err)
	}
	if !res.Settled {
		t.Fatal("loop did not settle")
	}
	if string(res.Content) != "bxb" {
		t.Fatalf("content = %q", res.Content)
	}
	if res.Applied != 2 || res.Passes != 3 {
		t.Fatalf("applied=%d passes=%d", res.Applied, res.Passes)
	}
}

func TestFixedPointHonorsCap(t *testing.T) {
	// analyzer that always reports a growing fix: must stop at the cap
	analyze := func(path string, content []byte) ([]diag.Diagnostic, error) {
		d := diag.NewWarning(diag.StyleInfo, source.Span{Start: 0, End: 0}, "grow")
		d.Fixes = []diag.Fix{{Title: "grow", Edits: []diag.TextEdit{{
			Span:    source.Span{Start: 0, End: 0},
			NewText: "x",
		}}}}
		return []diag.Diagnostic{d}, nil
	}

	res, err := FixedPoint("mem.tsx", []byte(""), analyze, 4)
	if err != nil {
		t.Fatalf("fixed point: %v", err)
	}
	if res.Settled {
		t.Fatal("diverging input reported as settled")
	}
	if res.Passes != 4 || res.Applied != 4 {
		t.Fatalf("passes=%d applied=%d", res.Passes, res.Applied)
	}
}
