package rules

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
)

// defaultProps removes attributes that restate a component's default value,
// driven by a configurable {attribute → default literal} catalog.
type defaultProps struct {
	settings Settings
}

func newDefaultProps(s Settings) *defaultProps { return &defaultProps{settings: s} }

func (*defaultProps) Code() diag.Code { return diag.StyleRedundantDefaultProp }
func (*defaultProps) Name() string    { return "no-default-props" }

func (r *defaultProps) CheckElement(ctx *Context, id ast.NodeID, el *ast.Element) {
	for i, attrID := range el.Attrs {
		attr := ctx.Arenas.Nodes.Attr(attrID)
		if attr == nil || attr.Name == source.NoStringID {
			continue
		}
		name := ctx.Name(attr.Name)
		def, ok := r.settings.DefaultProps[name]
		if !ok {
			continue
		}
		value, ok := literalValue(ctx, attr)
		if !ok || value != def {
			continue
		}

		span, ok := removalSpan(ctx, el, i)
		b := diag.ReportWarning(ctx.Reporter, r.Code(), attr.Span,
			name+"="+quoteJS(def)+" restates the default and can be removed")
		if ok {
			b.WithFix("remove the redundant attribute", diag.TextEdit{
				Span:    span,
				NewText: "",
				OldText: ctx.Text(span),
			})
		}
		b.Emit()
	}
}

// literalValue extracts the attribute's literal: a direct string value or an
// expression container wrapping a single literal. Anything else does not
// qualify.
func literalValue(ctx *Context, attr *ast.Attr) (string, bool) {
	switch attr.Kind {
	case ast.AttrValueString:
		return unquote(ctx.Text(attr.StrSpan)), true
	case ast.AttrValueExpr:
		expr := ctx.Arenas.Exprs.Get(attr.Value)
		if expr == nil {
			return "", false
		}
		switch expr.Kind {
		case ast.ExprString:
			return unquote(ctx.Text(expr.Span)), true
		case ast.ExprNumber, ast.ExprBool:
			return ctx.Text(expr.Span), true
		}
	}
	return "", false
}

// removalSpan extends the attribute span over exactly one adjacent
// whitespace run: before it when it is not the first attribute, after it
// when it is the first of several, and back to the element name when it is
// the only one.
func removalSpan(ctx *Context, el *ast.Element, idx int) (source.Span, bool) {
	attr := ctx.Arenas.Nodes.Attr(el.Attrs[idx])
	sp := attr.Span

	switch {
	case idx > 0:
		prev := ctx.Arenas.Nodes.Attr(el.Attrs[idx-1])
		if prev == nil {
			return sp, false
		}
		ext := source.Span{File: sp.File, Start: prev.Span.End, End: sp.End}
		if !whitespaceOnly(ctx.Text(source.Span{File: sp.File, Start: prev.Span.End, End: sp.Start})) {
			return sp, false
		}
		return ext, true

	case len(el.Attrs) > 1:
		next := ctx.Arenas.Nodes.Attr(el.Attrs[idx+1])
		if next == nil {
			return sp, false
		}
		ext := source.Span{File: sp.File, Start: sp.Start, End: next.Span.Start}
		if !whitespaceOnly(ctx.Text(source.Span{File: sp.File, Start: sp.End, End: next.Span.Start})) {
			return sp, false
		}
		return ext, true

	default:
		ext := source.Span{File: sp.File, Start: el.NameSpan.End, End: sp.End}
		if !whitespaceOnly(ctx.Text(source.Span{File: sp.File, Start: el.NameSpan.End, End: sp.Start})) {
			return sp, false
		}
		return ext, true
	}
}

func quoteJS(s string) string {
	return `"` + s + `"`
}
