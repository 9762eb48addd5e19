package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"restyle/internal/diag"
	"restyle/internal/fix"
	"restyle/internal/rules"
	"restyle/internal/source"
)

const dirtySrc = "export const App = () => <Button variant=\"default\">Go</Button>;\n"

const cleanSrc = "export const App = () => <Button>Go</Button>;\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestAnalyzeFileReportsStyle(t *testing.T) {
	root := writeTree(t, map[string]string{"app.tsx": dirtySrc})
	fs := source.NewFileSetWithBase(root)
	id, err := fs.Load(filepath.Join(root, "app.tsx"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	bag := AnalyzeFile(fs, id, rules.DefaultSettings(), 0)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.StyleRedundantDefaultProp {
			found = true
		}
	}
	if !found {
		t.Fatalf("redundant default prop not reported: %+v", bag.Items())
	}
}

func TestAnalyzeContentClean(t *testing.T) {
	ds, err := AnalyzeContent("mem.tsx", []byte(cleanSrc), rules.DefaultSettings(), 0)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(ds) != 0 {
		t.Fatalf("clean source produced diagnostics: %+v", ds)
	}
}

func TestCheckDirWalksAndSkips(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/b.tsx":              cleanSrc,
		"src/a.tsx":              dirtySrc,
		"src/util.ts":            "export const x = 1;\n",
		"node_modules/dep/x.tsx": dirtySrc,
	})

	_, results, err := CheckDir(context.Background(), root, Options{Settings: rules.DefaultSettings()})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// sorted order: a.tsx before b.tsx
	if filepath.Base(results[0].Path) != "a.tsx" || filepath.Base(results[1].Path) != "b.tsx" {
		t.Fatalf("order = %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Bag.Len() == 0 {
		t.Fatal("dirty file produced no diagnostics")
	}
	if results[1].Bag.Len() != 0 {
		t.Fatalf("clean file produced diagnostics: %+v", results[1].Bag.Items())
	}
}

func TestCheckDirSingleFileRoot(t *testing.T) {
	root := writeTree(t, map[string]string{"only.tsx": dirtySrc})
	path := filepath.Join(root, "only.tsx")

	_, results, err := CheckDir(context.Background(), path, Options{Settings: rules.DefaultSettings()})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 1 || results[0].Bag.Len() == 0 {
		t.Fatalf("results = %+v", results)
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("restyle-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	root := writeTree(t, map[string]string{"ok.tsx": cleanSrc})
	opts := Options{Settings: rules.DefaultSettings(), Cache: cache}

	_, first, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first[0].FromCache {
		t.Fatal("first pass must analyze, not hit the cache")
	}

	_, second, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !second[0].FromCache {
		t.Fatal("unchanged clean file missed the cache")
	}

	// different settings must not reuse the entry
	other := opts
	other.Settings.ClassHelper = "clsx"
	_, third, err := CheckDir(context.Background(), root, other)
	if err != nil {
		t.Fatalf("third pass: %v", err)
	}
	if third[0].FromCache {
		t.Fatal("settings change still hit the cache")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("restyle-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var content Digest
	content[0] = 7
	s := rules.DefaultSettings()

	if cache.IsClean(content, s) {
		t.Fatal("empty cache reported clean")
	}
	if err := cache.MarkClean(content, s, "a.tsx"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !cache.IsClean(content, s) {
		t.Fatal("stored entry not found")
	}

	var payload DiskPayload
	ok, err := cache.Get(cleanKey(content, s), &payload)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if payload.Path != "a.tsx" || payload.Schema != diskCacheSchemaVersion {
		t.Fatalf("payload = %+v", payload)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if cache.IsClean(content, s) {
		t.Fatal("entry survived DropAll")
	}
}

func TestSettingsDigestOrderInsensitive(t *testing.T) {
	a := rules.DefaultSettings()
	a.Disabled = []string{"no-default-props", "sibling-spacing"}
	b := rules.DefaultSettings()
	b.Disabled = []string{"sibling-spacing", "no-default-props"}

	if settingsDigest(a) != settingsDigest(b) {
		t.Fatal("disabled order changed the digest")
	}

	b.SpacingIndent = "    "
	if settingsDigest(a) == settingsDigest(b) {
		t.Fatal("distinct settings collided")
	}
}

func TestAnalyzerDrivesFixedPoint(t *testing.T) {
	res, err := fix.FixedPoint("mem.tsx", []byte(dirtySrc),
		Analyzer(rules.DefaultSettings(), 0), 0)
	if err != nil {
		t.Fatalf("fixed point: %v", err)
	}
	if !res.Settled {
		t.Fatal("loop did not settle")
	}
	if string(res.Content) != cleanSrc {
		t.Fatalf("content = %q", res.Content)
	}

	after, err := AnalyzeContent("mem.tsx", res.Content, rules.DefaultSettings(), 0)
	if err != nil {
		t.Fatalf("re-analyze: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("fixed output still dirty: %+v", after)
	}
}
