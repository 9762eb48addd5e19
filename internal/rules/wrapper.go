package rules

import (
	"strings"

	"restyle/internal/ast"
	"restyle/internal/diag"
)

// redundantWrapper removes a div/span that adds nothing: no meaningful
// attribute, no layout-affecting class, and exactly one significant child
// that is itself an element or expression container.
type redundantWrapper struct {
	settings Settings
}

func newRedundantWrapper(s Settings) *redundantWrapper { return &redundantWrapper{settings: s} }

func (*redundantWrapper) Code() diag.Code { return diag.StyleRedundantWrapper }
func (*redundantWrapper) Name() string    { return "no-redundant-wrapper" }

// meaningfulAttrs are attributes whose presence makes a wrapper load-bearing.
var meaningfulAttrs = map[string]bool{
	"id":       true,
	"role":     true,
	"key":      true,
	"ref":      true,
	"tabIndex": true,
	"style":    true,
}

// layoutClassPrefixes flag class names that affect layout; a wrapper carrying
// one cannot be removed without changing rendering.
var layoutClassPrefixes = []string{
	"flex", "grid", "gap-", "space-", "divide-",
	"p-", "px-", "py-", "pt-", "pb-", "pl-", "pr-",
	"m-", "mx-", "my-", "mt-", "mb-", "ml-", "mr-",
	"w-", "h-", "min-", "max-", "size-", "basis-", "grow", "shrink",
	"absolute", "relative", "fixed", "sticky", "static",
	"top-", "bottom-", "left-", "right-", "inset-", "z-",
	"block", "inline", "hidden", "overflow-", "float-",
	"items-", "justify-", "content-", "self-", "place-",
	"col-", "row-", "order-",
	"text-", "font-", "leading-", "tracking-",
}

func (r *redundantWrapper) CheckElement(ctx *Context, id ast.NodeID, el *ast.Element) {
	if el.Fragment() || el.SelfClosing {
		return
	}
	name := ctx.Name(el.Name)
	if name != "div" && name != "span" {
		return
	}
	if !r.attrsRemovable(ctx, el) {
		return
	}

	kids := significantChildren(ctx, el)
	if len(kids) != 1 {
		return
	}
	child := ctx.Arenas.Nodes.Get(kids[0])
	if child == nil {
		return
	}
	if child.Kind != ast.NodeElement && child.Kind != ast.NodeExprContainer {
		return
	}

	node := ctx.Arenas.Nodes.Get(id)
	if node == nil {
		return
	}
	diag.ReportWarning(ctx.Reporter, r.Code(), el.OpenSpan,
		"<"+name+"> wrapper adds nothing and can be removed").
		WithFix("replace the wrapper with its child", diag.TextEdit{
			Span:    node.Span,
			NewText: ctx.Text(child.Span),
			OldText: ctx.Text(node.Span),
		}).
		Emit()
}

// attrsRemovable reports whether every attribute of the wrapper is safe to
// drop. Spreads and expression-valued classes cannot be verified, so they
// keep the wrapper.
func (r *redundantWrapper) attrsRemovable(ctx *Context, el *ast.Element) bool {
	for _, attrID := range el.Attrs {
		attr := ctx.Arenas.Nodes.Attr(attrID)
		if attr == nil || attr.Kind == ast.AttrValueSpread {
			return false
		}
		name := ctx.Name(attr.Name)
		if isMeaningfulAttr(name) {
			return false
		}
		if name == "className" {
			if attr.Kind != ast.AttrValueString {
				return false
			}
			classes := unquote(ctx.Text(attr.StrSpan))
			if hasLayoutClass(classes) {
				return false
			}
		}
	}
	return true
}

func isMeaningfulAttr(name string) bool {
	if meaningfulAttrs[name] {
		return true
	}
	if strings.HasPrefix(name, "aria-") || strings.HasPrefix(name, "data-") {
		return true
	}
	// event handlers: onClick, onMouseDown, ...
	if len(name) > 2 && name[0] == 'o' && name[1] == 'n' && name[2] >= 'A' && name[2] <= 'Z' {
		return true
	}
	return false
}

func hasLayoutClass(classList string) bool {
	for _, cls := range strings.Fields(classList) {
		// strip a variant prefix like hover: or md:
		if i := strings.LastIndexByte(cls, ':'); i >= 0 {
			cls = cls[i+1:]
		}
		for _, prefix := range layoutClassPrefixes {
			if strings.HasPrefix(cls, prefix) {
				return true
			}
		}
	}
	return false
}

// unquote strips the surrounding quotes of a string literal slice.
func unquote(lit string) string {
	if len(lit) >= 2 {
		q := lit[0]
		if (q == '"' || q == '\'') && lit[len(lit)-1] == q {
			return lit[1 : len(lit)-1]
		}
	}
	return lit
}
