package rules

import (
	"restyle/internal/ast"
)

// Run drives one file pass: items first (so whole-file rules see every
// declaration before markup checks fire), then the markup trees and
// collected expressions in document order, then Finish.
func Run(ctx *Context, fileID ast.FileID, rules []Rule) {
	file := ctx.Arenas.Files.Get(fileID)
	if file == nil {
		return
	}

	var elementRules []ElementRule
	var arrowRules []ArrowRule
	var itemRules []ItemRule
	for _, r := range rules {
		if er, ok := r.(ElementRule); ok {
			elementRules = append(elementRules, er)
		}
		if ar, ok := r.(ArrowRule); ok {
			arrowRules = append(arrowRules, ar)
		}
		if ir, ok := r.(ItemRule); ok {
			itemRules = append(itemRules, ir)
		}
	}

	w := walker{ctx: ctx, elements: elementRules, arrows: arrowRules}

	for _, itemID := range file.Items {
		item := ctx.Arenas.Items.Get(itemID)
		if item == nil {
			continue
		}
		for _, r := range itemRules {
			r.CheckItem(ctx, itemID, item)
		}
	}

	for _, itemID := range file.Items {
		stmt, ok := ctx.Arenas.Items.Stmt(itemID)
		if !ok {
			continue
		}
		for _, root := range stmt.MarkupRoots {
			w.walkNode(root)
		}
		for _, exprID := range stmt.Exprs {
			w.checkExpr(exprID)
		}
	}

	for _, r := range itemRules {
		r.Finish(ctx)
	}
}

type walker struct {
	ctx      *Context
	elements []ElementRule
	arrows   []ArrowRule
}

func (w *walker) walkNode(id ast.NodeID) {
	node := w.ctx.Arenas.Nodes.Get(id)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.NodeElement:
		el, ok := w.ctx.Arenas.Nodes.Element(id)
		if !ok {
			return
		}
		for _, r := range w.elements {
			r.CheckElement(w.ctx, id, el)
		}
		for _, attrID := range el.Attrs {
			attr := w.ctx.Arenas.Nodes.Attr(attrID)
			if attr == nil || attr.Kind != ast.AttrValueExpr {
				continue
			}
			if child, ok := w.ctx.Arenas.Exprs.ElementNode(attr.Value); ok {
				w.walkNode(child)
			}
		}
		for _, child := range el.Children {
			w.walkNode(child)
		}

	case ast.NodeExprContainer:
		cont, ok := w.ctx.Arenas.Nodes.Container(id)
		if !ok {
			return
		}
		if child, ok := w.ctx.Arenas.Exprs.ElementNode(cont.Body); ok {
			w.walkNode(child)
		}
		for _, root := range cont.Roots {
			w.walkNode(root)
		}
	}
}

func (w *walker) checkExpr(id ast.ExprID) {
	if arrow, ok := w.ctx.Arenas.Exprs.Arrow(id); ok {
		for _, r := range w.arrows {
			r.CheckArrow(w.ctx, id, arrow)
		}
	}
}
