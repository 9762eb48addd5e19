package rules

import (
	"sort"
	"strings"
	"testing"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/lexer"
	"restyle/internal/parser"
	"restyle/internal/source"
)

func analyze(t *testing.T, src string, s Settings) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsx", []byte(src))
	file := fs.Get(id)
	builder := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(128)
	lx := lexer.New(file, lexer.Options{})
	res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	ctx := &Context{
		File:     file,
		Arenas:   builder,
		Reporter: diag.BagReporter{Bag: bag},
		Settings: s,
	}
	Run(ctx, res.File, All(s))
	bag.Sort()
	return bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// applyAll splices every fix edit into src, bottom-up. Tests are built so
// edits never overlap.
func applyAll(t *testing.T, src string, bag *diag.Bag, code diag.Code) string {
	t.Helper()
	var edits []diag.TextEdit
	for _, d := range bag.Items() {
		if d.Code != code {
			continue
		}
		for _, f := range d.Fixes {
			edits = append(edits, f.Edits...)
		}
	}
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start > edits[j].Span.Start
		}
		return edits[i].Span.End > edits[j].Span.End
	})
	out := src
	for _, e := range edits {
		if e.OldText != "" && out[e.Span.Start:e.Span.End] != e.OldText {
			t.Fatalf("edit target drifted: %q != %q", out[e.Span.Start:e.Span.End], e.OldText)
		}
		out = out[:e.Span.Start] + e.NewText + out[e.Span.End:]
	}
	return out
}

// fixAndRecheck asserts idempotence: applying a rule's fixes leaves nothing
// for the same rule to report.
func fixAndRecheck(t *testing.T, src string, s Settings, code diag.Code) string {
	t.Helper()
	bag := analyze(t, src, s)
	fixed := applyAll(t, src, bag, code)
	again := analyze(t, fixed, s)
	if n := countCode(again, code); n != 0 {
		t.Fatalf("rule not idempotent, %d violations remain in:\n%s", n, fixed)
	}
	return fixed
}

// ===== merge-module-references =====

func TestMergeDefaultAndNamed(t *testing.T) {
	src := `import A from "m"; import {b} from "m";` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import A, {b} from "m";`) {
		t.Fatalf("merged text wrong:\n%s", fixed)
	}
	if strings.Count(fixed, "import") != 1 {
		t.Fatalf("duplicate declarations survive:\n%s", fixed)
	}
}

func TestMergeAfterArrowStatement(t *testing.T) {
	src := `const f = (x) => x + 1;
import { a } from "m";
import { b } from "m";
`
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleSplitModuleReferences); n != 1 {
		t.Fatalf("split-module-references diagnostics = %d, want 1", n)
	}
}

func TestMergeThreeNamedSorted(t *testing.T) {
	src := `import {Card} from "./c";
import {Input} from "./c";
import {Button} from "./c";
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import {Button, Card, Input} from "./c";`) {
		t.Fatalf("merged text wrong:\n%s", fixed)
	}
	if strings.Count(fixed, "import") != 1 {
		t.Fatalf("deletions incomplete:\n%s", fixed)
	}
	if strings.Contains(fixed, "\n\n\n") {
		t.Fatalf("deletions left blank lines:\n%s", fixed)
	}
}

func TestMergeValueBeforeType(t *testing.T) {
	src := `import type {User} from "./api";
import {createUser} from "./api";
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import {createUser, type User} from "./api";`) {
		t.Fatalf("merged text wrong:\n%s", fixed)
	}
}

func TestMergeKeepsFirstModuleSpelling(t *testing.T) {
	src := `import {a} from './m';
import {b} from "./m";
`
	bag := analyze(t, src, DefaultSettings())
	// distinct module strings must not be grouped: './m' and "./m" quote the
	// same path, so they share one unquoted module reference
	if countCode(bag, diag.StyleSplitModuleReferences) != 1 {
		t.Fatalf("expected one merge group, got %d", countCode(bag, diag.StyleSplitModuleReferences))
	}
	fixed := applyAll(t, src, bag, diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import {a, b} from './m';`) {
		t.Fatalf("module text must come from the first declaration:\n%s", fixed)
	}
}

func TestMergeDedupAndAlias(t *testing.T) {
	src := `import {a, b as c} from "m";
import {a, b as c, d} from "m";
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import {a, b as c, d} from "m";`) {
		t.Fatalf("dedup wrong:\n%s", fixed)
	}
}

func TestMergeReExports(t *testing.T) {
	src := `export {Button} from "./parts";
export {Card, type CardProps} from "./parts";
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `export {Button, Card, type CardProps} from "./parts";`) {
		t.Fatalf("re-export merge wrong:\n%s", fixed)
	}
}

func TestMergeNeverMixesImportAndReExport(t *testing.T) {
	src := `import {a} from "m";
export {b} from "m";
`
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleSplitModuleReferences); n != 0 {
		t.Fatalf("import and re-export grouped together: %d", n)
	}
}

func TestMergeStarReExportDiagnosticOnly(t *testing.T) {
	src := `export * from "m";
export {a} from "m";
`
	bag := analyze(t, src, DefaultSettings())
	var found *diag.Diagnostic
	for i, d := range bag.Items() {
		if d.Code == diag.StyleSplitModuleReferences {
			found = &bag.Items()[i]
		}
	}
	if found == nil {
		t.Fatal("expected a diagnostic")
	}
	if len(found.Fixes) != 0 {
		t.Fatal("star re-export group must not carry a fix")
	}
}

func TestMergeSingleGroupUntouched(t *testing.T) {
	src := `import {a} from "m";` + "\n"
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleSplitModuleReferences); n != 0 {
		t.Fatalf("size-1 group produced %d diagnostics", n)
	}
}

func TestMergeNamespaceAndSideEffect(t *testing.T) {
	src := `import * as api from "./api";
import {helper} from "./api";
import "./api";
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleSplitModuleReferences)
	if !strings.Contains(fixed, `import * as api, {helper} from "./api";`) {
		t.Fatalf("namespace merge wrong:\n%s", fixed)
	}
}

// ===== no-default-props =====

func TestDefaultPropRemoved(t *testing.T) {
	src := `const v = <Button variant="default" />;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantDefaultProp)
	if !strings.Contains(fixed, "<Button />") {
		t.Fatalf("attribute not removed cleanly:\n%s", fixed)
	}
}

func TestDefaultPropMiddleAttr(t *testing.T) {
	src := `const v = <Button type="submit" variant="default" disabled />;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantDefaultProp)
	if !strings.Contains(fixed, `<Button type="submit" disabled />`) {
		t.Fatalf("whitespace not absorbed once:\n%s", fixed)
	}
}

func TestDefaultPropFirstAttr(t *testing.T) {
	src := `const v = <Button variant="default" disabled />;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantDefaultProp)
	if !strings.Contains(fixed, `<Button disabled />`) {
		t.Fatalf("leading attribute removal wrong:\n%s", fixed)
	}
}

func TestDefaultPropContainerLiteral(t *testing.T) {
	src := `const v = <Button variant={"default"} />;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantDefaultProp)
	if !strings.Contains(fixed, "<Button />") {
		t.Fatalf("container-wrapped literal not removed:\n%s", fixed)
	}
}

func TestNonDefaultValueKept(t *testing.T) {
	src := `const v = <Button variant="outline" />;` + "\n"
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleRedundantDefaultProp); n != 0 {
		t.Fatalf("non-default value flagged: %d", n)
	}
}

// ===== no-redundant-wrapper =====

func TestWrapperRemoved(t *testing.T) {
	src := `const v = <div><Card title="x" /></div>;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantWrapper)
	if !strings.Contains(fixed, `const v = <Card title="x" />;`) {
		t.Fatalf("wrapper not collapsed:\n%s", fixed)
	}
}

func TestWrapperTwoChildrenKept(t *testing.T) {
	src := `const v = <div><div>Item 1</div><div>Item 2</div></div>;` + "\n"
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleRedundantWrapper); n != 0 {
		t.Fatalf("two-children wrapper flagged %d times", n)
	}
}

func TestWrapperMeaningfulAttrKept(t *testing.T) {
	cases := []string{
		`const v = <div id="x"><Card /></div>;`,
		`const v = <div role="list"><Card /></div>;`,
		`const v = <div data-testid="t"><Card /></div>;`,
		`const v = <div aria-hidden="true"><Card /></div>;`,
		`const v = <div onClick={handler}><Card /></div>;`,
		`const v = <div {...rest}><Card /></div>;`,
		`const v = <div className="flex gap-2"><Card /></div>;`,
		`const v = <div className={dynamic}><Card /></div>;`,
	}
	for _, src := range cases {
		bag := analyze(t, src, DefaultSettings())
		if n := countCode(bag, diag.StyleRedundantWrapper); n != 0 {
			t.Fatalf("meaningful wrapper flagged in %q", src)
		}
	}
}

func TestWrapperCosmeticClassRemoved(t *testing.T) {
	src := `const v = <div className="rounded shadow"><Card /></div>;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleRedundantWrapper)
	if !strings.Contains(fixed, `const v = <Card />;`) {
		t.Fatalf("cosmetic-class wrapper kept:\n%s", fixed)
	}
}

func TestWrapperTextChildKept(t *testing.T) {
	src := `const v = <div>plain text</div>;` + "\n"
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleRedundantWrapper); n != 0 {
		t.Fatal("text-only wrapper flagged")
	}
}

// ===== prefer-expression-arrow =====

func TestArrowCondensed(t *testing.T) {
	src := `const on = (event) => { handle(event); };` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleVerboseArrowBody)
	if !strings.Contains(fixed, `const on = event => handle(event);`) {
		t.Fatalf("arrow not condensed:\n%s", fixed)
	}
}

func TestArrowZeroParams(t *testing.T) {
	src := `const on = () => { close(); };` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleVerboseArrowBody)
	if !strings.Contains(fixed, `const on = () => close();`) {
		t.Fatalf("zero-param render wrong:\n%s", fixed)
	}
}

func TestArrowTypedParamStaysParenthesized(t *testing.T) {
	src := `const on = (n: number) => { track(n); };` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleVerboseArrowBody)
	if !strings.Contains(fixed, `const on = (n: number) => track(n);`) {
		t.Fatalf("typed param render wrong:\n%s", fixed)
	}
}

func TestArrowAsyncPreserved(t *testing.T) {
	src := `const on = async () => { save(); };` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleVerboseArrowBody)
	if !strings.Contains(fixed, `const on = async () => save();`) {
		t.Fatalf("async lost:\n%s", fixed)
	}
}

func TestArrowMultiParamJoined(t *testing.T) {
	src := `const add = (a, b) => { combine(a, b); };` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleVerboseArrowBody)
	if !strings.Contains(fixed, `const add = (a, b) => combine(a, b);`) {
		t.Fatalf("multi-param render wrong:\n%s", fixed)
	}
}

func TestArrowControlFlowKept(t *testing.T) {
	cases := []string{
		`const on = () => { return value; };`,
		`const on = () => { if (x) { go(); } };`,
		`const on = () => { const y = 1; };`,
		`const on = () => { throw new Error("x"); };`,
		`const on = () => { a(); b(); };`,
	}
	for _, src := range cases {
		bag := analyze(t, src, DefaultSettings())
		if n := countCode(bag, diag.StyleVerboseArrowBody); n != 0 {
			t.Fatalf("non-bare body flagged in %q", src)
		}
	}
}

// ===== sibling-spacing =====

func TestSpacingMultilineAfterElement(t *testing.T) {
	src := `const v = (
  <div>
    <Header title="x" />
    <section>
      <p>body</p>
    </section>
  </div>
);
`
	s := DefaultSettings()
	s.SpacingIndent = "    "
	bag := analyze(t, src, s)
	if n := countCode(bag, diag.StyleSiblingSpacing); n != 1 {
		t.Fatalf("spacing violations = %d, want 1", n)
	}
	fixed := fixAndRecheck(t, src, s, diag.StyleSiblingSpacing)
	if !strings.Contains(fixed, "<Header title=\"x\" />\n\n    <section>") {
		t.Fatalf("separator wrong:\n%s", fixed)
	}
}

func TestSpacingElementContainerAdjacency(t *testing.T) {
	src := `const v = (
  <div>
    <Header />
    {items}
  </div>
);
`
	s := DefaultSettings()
	s.SpacingIndent = "    "
	fixAndRecheck(t, src, s, diag.StyleSiblingSpacing)
}

func TestSpacingSatisfiedIsQuiet(t *testing.T) {
	src := `const v = (
  <div>
    <Header />

    {items}
  </div>
);
`
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleSiblingSpacing); n != 0 {
		t.Fatalf("blank-line-separated siblings flagged %d times", n)
	}
}

func TestSpacingSingleLineElementsQuiet(t *testing.T) {
	src := `const v = (
  <div>
    <li>one</li>
    <li>two</li>
  </div>
);
`
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleSiblingSpacing); n != 0 {
		t.Fatalf("single-line element pair flagged %d times", n)
	}
}

// ===== prefer-class-helper =====

func TestClassHelperRewrite(t *testing.T) {
	src := `import {cn} from "@/lib/utils";

const v = <div className={` + "`btn btn-${variant} ${active ? \"on\" : \"off\"}`" + `} />;
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleTemplateClassName)
	if !strings.Contains(fixed, `className={cn("btn btn-", variant, active ? "on" : "off")}`) {
		t.Fatalf("call render wrong:\n%s", fixed)
	}
	if strings.Count(fixed, `from "@/lib/utils"`) != 1 {
		t.Fatalf("import duplicated:\n%s", fixed)
	}
}

func TestClassHelperInsertsImportAfterImports(t *testing.T) {
	src := `import React from "react";

const v = <div className={` + "`a ${b}`" + `} />;
`
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleTemplateClassName)
	if !strings.Contains(fixed, "import React from \"react\";\nimport {cn} from \"@/lib/utils\";") {
		t.Fatalf("import not inserted after last import:\n%s", fixed)
	}
	if !strings.Contains(fixed, `className={cn("a", b)}`) {
		t.Fatalf("call render wrong:\n%s", fixed)
	}
}

func TestClassHelperInsertsImportAtFileStart(t *testing.T) {
	src := `const v = <div className={` + "`a ${b}`" + `} />;` + "\n"
	fixed := fixAndRecheck(t, src, DefaultSettings(), diag.StyleTemplateClassName)
	if !strings.HasPrefix(fixed, "import {cn} from \"@/lib/utils\";\n\nconst v") {
		t.Fatalf("import not inserted at file start:\n%s", fixed)
	}
}

func TestClassHelperPlainTemplateQuiet(t *testing.T) {
	src := "const v = <div className={`static classes`} />;\n"
	bag := analyze(t, src, DefaultSettings())
	if n := countCode(bag, diag.StyleTemplateClassName); n != 0 {
		t.Fatal("template without interpolation flagged")
	}
}

func TestClassHelperConfigurableName(t *testing.T) {
	s := DefaultSettings()
	s.ClassHelper = "clsx"
	s.ClassHelperSource = "clsx"
	src := "const v = <div className={`a ${b}`} />;\n"
	fixed := fixAndRecheck(t, src, s, diag.StyleTemplateClassName)
	if !strings.Contains(fixed, `className={clsx("a", b)}`) {
		t.Fatalf("configured helper not used:\n%s", fixed)
	}
	if !strings.Contains(fixed, `import {clsx} from "clsx";`) {
		t.Fatalf("configured import not inserted:\n%s", fixed)
	}
}

// ===== engine plumbing =====

func TestDisabledRuleSkipped(t *testing.T) {
	s := DefaultSettings()
	s.Disabled = []string{"no-default-props"}
	src := `const v = <Button variant="default" />;` + "\n"
	bag := analyze(t, src, s)
	if n := countCode(bag, diag.StyleRedundantDefaultProp); n != 0 {
		t.Fatal("disabled rule still ran")
	}
}

func TestRuleNamesMatchCodes(t *testing.T) {
	for _, e := range Names() {
		if e.Code.String() != e.Name {
			t.Fatalf("rule %q code renders %q", e.Name, e.Code.String())
		}
	}
}
