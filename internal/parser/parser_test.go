package parser

import (
	"testing"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/lexer"
	"restyle/internal/source"
)

type parsed struct {
	fs  *source.FileSet
	b   *ast.Builder
	f   *ast.File
	bag *diag.Bag
}

func parseSrc(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsx", []byte(src))
	file := fs.Get(id)
	b := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(128)
	lx := lexer.New(file, lexer.Options{})
	res := ParseFile(fs, lx, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{fs: fs, b: b, f: b.Files.Get(res.File), bag: bag}
}

func (p parsed) moduleRef(t *testing.T, i int) *ast.ModuleRefItem {
	t.Helper()
	if i >= len(p.f.Items) {
		t.Fatalf("want item %d, file has %d items", i, len(p.f.Items))
	}
	ref, ok := p.b.Items.ModuleRef(p.f.Items[i])
	if !ok {
		t.Fatalf("item %d is not a module ref", i)
	}
	return ref
}

func (p parsed) stmt(t *testing.T, i int) *ast.RawStmt {
	t.Helper()
	if i >= len(p.f.Items) {
		t.Fatalf("want item %d, file has %d items", i, len(p.f.Items))
	}
	st, ok := p.b.Items.Stmt(p.f.Items[i])
	if !ok {
		t.Fatalf("item %d is not a raw statement", i)
	}
	return st
}

func TestParseImportForms(t *testing.T) {
	p := parseSrc(t, `import React from "react";
import { useState, useEffect as effect } from "react";
import type { Props } from "./types";
import * as path from "node:path";
import Button, { type ButtonProps } from "./button";
import "./globals.css";
import { default as Card } from "./card";
`)
	if len(p.f.Items) != 7 {
		t.Fatalf("items = %d, want 7", len(p.f.Items))
	}

	r0 := p.moduleRef(t, 0)
	if len(r0.Specs) != 1 || r0.Specs[0].Kind != ast.SpecDefault {
		t.Fatalf("default import not recognized: %+v", r0.Specs)
	}
	if p.b.Strings.MustLookup(r0.Module) != "react" {
		t.Fatalf("module = %q", p.b.Strings.MustLookup(r0.Module))
	}
	if r0.ModuleText != `"react"` {
		t.Fatalf("module text = %q", r0.ModuleText)
	}

	r1 := p.moduleRef(t, 1)
	if len(r1.Specs) != 2 {
		t.Fatalf("named specs = %d, want 2", len(r1.Specs))
	}
	if p.b.Strings.MustLookup(r1.Specs[1].Name) != "useEffect" ||
		p.b.Strings.MustLookup(r1.Specs[1].Alias) != "effect" {
		t.Fatalf("alias spec wrong: %+v", r1.Specs[1])
	}

	r2 := p.moduleRef(t, 2)
	if !r2.Specs[0].TypeOnly {
		t.Fatal("decl-level type qualifier not applied")
	}

	r3 := p.moduleRef(t, 3)
	if r3.Specs[0].Kind != ast.SpecNamespace || p.b.Strings.MustLookup(r3.Specs[0].Alias) != "path" {
		t.Fatalf("namespace spec wrong: %+v", r3.Specs[0])
	}

	r4 := p.moduleRef(t, 4)
	if len(r4.Specs) != 2 {
		t.Fatalf("mixed clause specs = %d, want 2", len(r4.Specs))
	}
	if r4.Specs[0].Kind != ast.SpecDefault || r4.Specs[0].TypeOnly {
		t.Fatalf("default spec wrong: %+v", r4.Specs[0])
	}
	if !r4.Specs[1].TypeOnly {
		t.Fatal("inline type qualifier not applied")
	}

	r5 := p.moduleRef(t, 5)
	if !r5.SideEffect || len(r5.Specs) != 0 {
		t.Fatalf("side-effect import wrong: %+v", r5)
	}

	r6 := p.moduleRef(t, 6)
	if r6.Specs[0].Kind != ast.SpecNamed ||
		p.b.Strings.MustLookup(r6.Specs[0].Name) != "default" ||
		p.b.Strings.MustLookup(r6.Specs[0].Alias) != "Card" {
		t.Fatalf("default-as spec wrong: %+v", r6.Specs[0])
	}
}

func TestParseImportTypeAsDefaultName(t *testing.T) {
	p := parseSrc(t, `import type from "./type-helper";`)
	r := p.moduleRef(t, 0)
	if len(r.Specs) != 1 || r.Specs[0].TypeOnly {
		t.Fatalf("binding named type misparsed: %+v", r.Specs)
	}
	if p.b.Strings.MustLookup(r.Specs[0].Name) != "type" {
		t.Fatalf("name = %q", p.b.Strings.MustLookup(r.Specs[0].Name))
	}
}

func TestParseReExports(t *testing.T) {
	p := parseSrc(t, `export { Button } from "./button";
export * from "./helpers";
export * as icons from "./icons";
export type { Variant } from "./variant";
export { local };
export const x = 1;
`)
	r0 := p.moduleRef(t, 0)
	if !r0.IsExport || len(r0.Specs) != 1 {
		t.Fatalf("re-export wrong: %+v", r0)
	}

	r1 := p.moduleRef(t, 1)
	if !r1.HasStar {
		t.Fatal("star re-export not flagged")
	}

	r2 := p.moduleRef(t, 2)
	if r2.HasStar || r2.Specs[0].Kind != ast.SpecNamespace {
		t.Fatalf("namespace re-export wrong: %+v", r2)
	}

	r3 := p.moduleRef(t, 3)
	if !r3.Specs[0].TypeOnly {
		t.Fatal("type re-export not flagged")
	}

	// the last two are plain statements, not module refs
	p.stmt(t, 4)
	p.stmt(t, 5)
}

func TestParseMarkupTree(t *testing.T) {
	p := parseSrc(t, `const view = (
  <div className="stack" data-testid="root">
    <Card.Header title={user.name} />
    <span>It's fine</span>
    {items.map((item) => (
      <Row key={item.id} />
    ))}
  </div>
);
`)
	st := p.stmt(t, 0)
	if len(st.MarkupRoots) != 1 {
		t.Fatalf("roots = %d, want 1", len(st.MarkupRoots))
	}
	el, ok := p.b.Nodes.Element(st.MarkupRoots[0])
	if !ok {
		t.Fatal("root is not an element")
	}
	if p.b.Name(el.Name) != "div" {
		t.Fatalf("root name = %q", p.b.Name(el.Name))
	}
	if len(el.Attrs) != 2 {
		t.Fatalf("attrs = %d, want 2", len(el.Attrs))
	}
	a1 := p.b.Nodes.Attr(el.Attrs[1])
	if p.b.Name(a1.Name) != "data-testid" || a1.Kind != ast.AttrValueString {
		t.Fatalf("hyphenated attr wrong: %+v", a1)
	}

	if len(el.Children) != 3 {
		t.Fatalf("children = %d, want 3 (whitespace dropped)", len(el.Children))
	}

	header, ok := p.b.Nodes.Element(el.Children[0])
	if !ok || p.b.Name(header.Name) != "Card.Header" || !header.SelfClosing {
		t.Fatalf("dotted child wrong: %+v", header)
	}

	span, ok := p.b.Nodes.Element(el.Children[1])
	if !ok || len(span.Children) != 1 {
		t.Fatalf("text child wrong: %+v", span)
	}
	text := p.b.Nodes.Get(span.Children[0])
	if text.Kind != ast.NodeText || p.fs.Get(0).Text(text.Span) != "It's fine" {
		t.Fatalf("apostrophe text wrong: %q", p.fs.Get(0).Text(text.Span))
	}

	cont, ok := p.b.Nodes.Container(el.Children[2])
	if !ok {
		t.Fatal("third child is not a container")
	}
	if len(cont.Roots) != 1 {
		t.Fatalf("container roots = %d, want 1", len(cont.Roots))
	}
	row, ok := p.b.Nodes.Element(cont.Roots[0])
	if !ok || p.b.Name(row.Name) != "Row" {
		t.Fatal("map callback element not reachable")
	}
	foundArrow := false
	for _, id := range st.Exprs {
		if arrow, ok := p.b.Exprs.Arrow(id); ok && arrow.Parenthesized {
			foundArrow = true
		}
	}
	if !foundArrow {
		t.Fatal("map callback arrow not collected")
	}
}

func TestParseFragment(t *testing.T) {
	p := parseSrc(t, `const v = <><a /><b /></>;`)
	st := p.stmt(t, 0)
	el, ok := p.b.Nodes.Element(st.MarkupRoots[0])
	if !ok || !el.Fragment() {
		t.Fatal("fragment not recognized")
	}
	if len(el.Children) != 2 {
		t.Fatalf("fragment children = %d, want 2", len(el.Children))
	}
}

func TestParseArrowShapes(t *testing.T) {
	p := parseSrc(t, `const f = (x) => x + 1;
const g = async (a: number, b = 2) => { return a + b; };
const h = item => item.id;
const k = ({ a, b }) => a;
`)
	if len(p.f.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(p.f.Items))
	}

	arrowOf := func(i int) *ast.ArrowExpr {
		st := p.stmt(t, i)
		for _, id := range st.Exprs {
			if a, ok := p.b.Exprs.Arrow(id); ok {
				return a
			}
		}
		t.Fatalf("no arrow in item %d", i)
		return nil
	}

	f := arrowOf(0)
	if !f.Parenthesized || len(f.Params) != 1 || f.Params[0].Typed {
		t.Fatalf("arrow f wrong: %+v", f)
	}
	if f.BodyKind != ast.ArrowBodyExpr {
		t.Fatal("arrow f should have an expression body")
	}

	g := arrowOf(1)
	if !g.Async || len(g.Params) != 2 || !g.Params[0].Typed {
		t.Fatalf("arrow g wrong: %+v", g)
	}
	if g.BodyKind != ast.ArrowBodyBlock || len(g.BlockStmts) != 1 {
		t.Fatalf("arrow g block wrong: %+v", g.BlockStmts)
	}
	if g.BlockStmts[0].BareExpr {
		t.Fatal("return statement classified as bare expression")
	}

	h := arrowOf(2)
	if h.Parenthesized || len(h.Params) != 1 {
		t.Fatalf("arrow h wrong: %+v", h)
	}

	k := arrowOf(3)
	if !k.Params[0].Typed {
		t.Fatal("destructured param should never render as a bare identifier")
	}
}

func TestParseArrowBodyStopsAtStatementEnd(t *testing.T) {
	p := parseSrc(t, `const f = (x) => x + 1;
import { a } from "m";
import { b } from "m";
`)
	if len(p.f.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(p.f.Items))
	}

	st := p.stmt(t, 0)
	var arrow *ast.ArrowExpr
	for _, id := range st.Exprs {
		if a, ok := p.b.Exprs.Arrow(id); ok {
			arrow = a
		}
	}
	if arrow == nil {
		t.Fatal("arrow not collected")
	}
	if got := p.fs.Get(0).Text(arrow.BodySpan); got != "x + 1" {
		t.Fatalf("body span = %q, want %q", got, "x + 1")
	}

	// the declarations after the arrow statement must stay separate items
	p.moduleRef(t, 1)
	p.moduleRef(t, 2)
}

func TestParseArrowBlockBareStatement(t *testing.T) {
	p := parseSrc(t, `const on = () => { setOpen(true); };`)
	st := p.stmt(t, 0)
	var arrow *ast.ArrowExpr
	for _, id := range st.Exprs {
		if a, ok := p.b.Exprs.Arrow(id); ok {
			arrow = a
		}
	}
	if arrow == nil {
		t.Fatal("arrow not collected")
	}
	if len(arrow.BlockStmts) != 1 || !arrow.BlockStmts[0].BareExpr {
		t.Fatalf("block stmts wrong: %+v", arrow.BlockStmts)
	}
	got := p.fs.Get(0).Text(arrow.BlockStmts[0].ExprSpan)
	if got != "setOpen(true)" {
		t.Fatalf("expr span = %q", got)
	}
}

func TestParseTemplateChunks(t *testing.T) {
	src := "const cls = `btn btn-${variant} ${active ? \"on\" : \"off\"}`;"
	p := parseSrc(t, src)
	st := p.stmt(t, 0)
	var tpl *ast.TemplateExpr
	for _, id := range st.Exprs {
		if tp, ok := p.b.Exprs.Template(id); ok {
			tpl = tp
		}
	}
	if tpl == nil {
		t.Fatal("template not collected")
	}
	if tpl.ExprCount() != 2 {
		t.Fatalf("interpolations = %d, want 2", tpl.ExprCount())
	}
	file := p.fs.Get(0)
	var exprs []string
	for _, c := range tpl.Chunks {
		if c.Kind == ast.ChunkExpr {
			exprs = append(exprs, file.Text(c.Span))
		}
	}
	if exprs[0] != "variant" || exprs[1] != `active ? "on" : "off"` {
		t.Fatalf("chunk texts = %q", exprs)
	}
}

func TestParseAttrValueTemplate(t *testing.T) {
	p := parseSrc(t, "const v = <div className={`a ${b}`} />;")
	st := p.stmt(t, 0)
	el, ok := p.b.Nodes.Element(st.MarkupRoots[0])
	if !ok {
		t.Fatal("no root element")
	}
	attr := p.b.Nodes.Attr(el.Attrs[0])
	if attr.Kind != ast.AttrValueExpr {
		t.Fatalf("attr kind = %v", attr.Kind)
	}
	tpl, ok := p.b.Exprs.Template(attr.Value)
	if !ok || tpl.ExprCount() != 1 {
		t.Fatal("attr value is not the template expression")
	}
}

func TestParseRecoversFromBadImport(t *testing.T) {
	p := parseSrc(t, `import { broken from "./x";
const ok = 1;
`)
	if !p.bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	last := p.f.Items[len(p.f.Items)-1]
	item := p.b.Items.Get(last)
	if p.fs.Get(0).Text(item.Span) != "const ok = 1;" {
		t.Fatalf("recovery span = %q", p.fs.Get(0).Text(item.Span))
	}
}

func TestParseConditionalMarkup(t *testing.T) {
	p := parseSrc(t, `const v = <div>{cond && <Badge level={2} />}</div>;`)
	st := p.stmt(t, 0)
	el, _ := p.b.Nodes.Element(st.MarkupRoots[0])
	cont, ok := p.b.Nodes.Container(el.Children[0])
	if !ok {
		t.Fatal("child is not a container")
	}
	if len(cont.Roots) != 1 {
		t.Fatalf("container roots = %d, want 1", len(cont.Roots))
	}
	badge, ok := p.b.Nodes.Element(cont.Roots[0])
	if !ok || p.b.Name(badge.Name) != "Badge" {
		t.Fatal("nested element not reachable")
	}
}
