package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"restyle/internal/diag"
	"restyle/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	src := "const a = 1;\nconst bb = 22;\n"
	id := fs.AddVirtual("sample.tsx", []byte(src))

	bag := diag.NewBag(16)
	d := diag.NewWarning(diag.StyleRedundantDefaultProp,
		source.Span{File: id, Start: 19, End: 21}, // "bb"
		"something about bb")
	d = d.WithNote(source.Span{File: id, Start: 6, End: 7}, "related a")
	d.Fixes = []diag.Fix{{
		ID:    "RST3003-sample.tsx-19-0",
		Title: "rename bb",
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: id, Start: 19, End: 21},
			NewText: "b",
			OldText: "bb",
		}},
	}}
	bag.Add(d)
	bag.Sort()
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()

	if !strings.Contains(out, "sample.tsx:2:7:") {
		t.Fatalf("location missing:\n%s", out)
	}
	if !strings.Contains(out, "WARNING RST3003: something about bb") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "const bb = 22;") {
		t.Fatalf("source line missing:\n%s", out)
	}
	// caret under column 7, two bytes wide
	if !strings.Contains(out, "\n        ^~\n") {
		t.Fatalf("underline missing:\n%s", out)
	}
	if !strings.Contains(out, "note: related a") {
		t.Fatalf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "fix: rename bb [RST3003-sample.tsx-19-0]") {
		t.Fatalf("fix line missing:\n%s", out)
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	bag, fs := sampleBag(t)

	var plain bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("escape codes leaked into uncolored output")
	}

	var colored bytes.Buffer
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("colored output has no escape codes")
	}
}

func TestJSONShape(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diags = %d", out.Count, len(out.Diagnostics))
	}

	d := out.Diagnostics[0]
	if d.Code != "RST3003" || d.Name != "no-default-props" || d.Severity != "WARNING" {
		t.Fatalf("diag = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 7 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "related a" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Applicability != "always-safe" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "b" || edit.OldText != "bb" {
		t.Fatalf("edit = %+v", edit)
	}
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "const bb = 22;" {
		t.Fatalf("before = %+v", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "const b = 22;" {
		t.Fatalf("after = %+v", edit.AfterLines)
	}
}

func TestJSONTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.tsx", []byte("abc\n"))
	bag := diag.NewBag(16)
	for i := range 5 {
		bag.Add(diag.NewWarning(diag.StyleInfo,
			source.Span{File: id, Start: uint32(i % 3), End: uint32(i%3) + 1}, "x"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("output = %+v", out)
	}
}
