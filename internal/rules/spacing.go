package rules

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
)

// siblingSpacing requires a blank line between certain adjacent markup
// siblings: a multi-line child after an element, and element/container pairs
// in either order.
type siblingSpacing struct {
	settings Settings
}

func newSiblingSpacing(s Settings) *siblingSpacing { return &siblingSpacing{settings: s} }

func (*siblingSpacing) Code() diag.Code { return diag.StyleSiblingSpacing }
func (*siblingSpacing) Name() string    { return "sibling-spacing" }

func (r *siblingSpacing) CheckElement(ctx *Context, id ast.NodeID, el *ast.Element) {
	kids := significantChildren(ctx, el)
	for i := 1; i < len(kids); i++ {
		prev := ctx.Arenas.Nodes.Get(kids[i-1])
		cur := ctx.Arenas.Nodes.Get(kids[i])
		if prev == nil || cur == nil {
			continue
		}
		if !spacingTrigger(ctx, prev, cur) {
			continue
		}
		if linesBetween(ctx, prev.Span, cur.Span) > 1 {
			continue
		}

		gap := source.Span{File: cur.Span.File, Start: prev.Span.End, End: cur.Span.Start}
		b := diag.ReportWarning(ctx.Reporter, r.Code(), cur.Span,
			"expected a blank line before this sibling").
			WithNote(prev.Span, "previous sibling ends here")
		if whitespaceOnly(ctx.Text(gap)) {
			b.WithFix("insert a blank line between siblings", diag.TextEdit{
				Span:    gap,
				NewText: "\n\n" + r.settings.SpacingIndent,
				OldText: ctx.Text(gap),
			})
		}
		b.Emit()
	}
}

// significantChildren filters out whitespace-insignificant children: the
// parser already drops pure-whitespace text runs, so only empty expression
// containers remain to be skipped.
func significantChildren(ctx *Context, el *ast.Element) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(el.Children))
	for _, id := range el.Children {
		if cont, ok := ctx.Arenas.Nodes.Container(id); ok {
			if cont.Body == ast.NoExprID && len(cont.Roots) == 0 {
				continue
			}
		}
		out = append(out, id)
	}
	return out
}

func spacingTrigger(ctx *Context, prev, cur *ast.Node) bool {
	// element/container adjacency, either order
	if prev.Kind == ast.NodeElement && cur.Kind == ast.NodeExprContainer {
		return true
	}
	if prev.Kind == ast.NodeExprContainer && cur.Kind == ast.NodeElement {
		return true
	}
	// multi-line child after an element sibling
	if prev.Kind == ast.NodeElement && multiLine(ctx, cur.Span) {
		return true
	}
	return false
}

func multiLine(ctx *Context, sp source.Span) bool {
	return ctx.LineOf(sp.Start) != ctx.LineOf(lastOffset(sp))
}

// linesBetween counts start line of the later node minus end line of the
// earlier one.
func linesBetween(ctx *Context, earlier, later source.Span) uint32 {
	endLine := ctx.LineOf(lastOffset(earlier))
	startLine := ctx.LineOf(later.Start)
	if startLine <= endLine {
		return 0
	}
	return startLine - endLine
}

// lastOffset returns the last byte offset inside a half-open span.
func lastOffset(sp source.Span) uint32 {
	if sp.End > sp.Start {
		return sp.End - 1
	}
	return sp.Start
}

func whitespaceOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
